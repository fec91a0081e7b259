package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
)

// financialCategoryService handles financial category business logic.
type financialCategoryService struct {
	db *gorm.DB
}

// NewFinancialCategoryService creates a new FinancialCategoryServicer.
func NewFinancialCategoryService(db *gorm.DB) FinancialCategoryServicer {
	return &financialCategoryService{db: db}
}

// ListCategories returns the user's categories by name, optionally of one type.
func (s *financialCategoryService) ListCategories(userID string, txType *models.TransactionType) ([]models.FinancialCategory, error) {
	q := s.db.Where("user_id = ?", userID)
	if txType != nil {
		q = q.Where("type = ?", *txType)
	}

	var categories []models.FinancialCategory
	if err := q.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// CreateCategory creates a new category. Names are unique per user.
func (s *financialCategoryService) CreateCategory(userID, name string, txType models.TransactionType, color string) (*models.FinancialCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: name")
	}
	if txType != models.TransactionTypeReceita && txType != models.TransactionTypeDespesa {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Tipo de transação inválido")
	}

	if err := s.ensureNameFree(userID, name, ""); err != nil {
		return nil, err
	}

	category := &models.FinancialCategory{
		UserID: userID,
		Name:   name,
		Type:   txType,
		Color:  color,
	}
	if err := s.db.Create(category).Error; err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateName
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// UpdateCategory renames or recolors a category.
func (s *financialCategoryService) UpdateCategory(userID, categoryID string, name, color *string) (*models.FinancialCategory, error) {
	category, err := s.getCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: name")
		}
		if trimmed != category.Name {
			if err := s.ensureNameFree(userID, trimmed, categoryID); err != nil {
				return nil, err
			}
			updates["name"] = trimmed
		}
	}
	if color != nil {
		updates["color"] = *color
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			if apperrors.IsUniqueViolation(err) {
				return nil, apperrors.ErrDuplicateName
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return category, nil
}

// DeleteCategory soft-deletes a category. Transactions keep their
// category_id for historical records.
func (s *financialCategoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.getCategory(userID, categoryID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *financialCategoryService) getCategory(userID, categoryID string) (*models.FinancialCategory, error) {
	var category models.FinancialCategory
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

func (s *financialCategoryService) ensureNameFree(userID, name, exceptID string) error {
	q := s.db.Model(&models.FinancialCategory{}).Where("user_id = ? AND name = ?", userID, name)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateName
	}
	return nil
}
