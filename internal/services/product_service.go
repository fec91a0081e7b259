package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
)

// productCategoryService handles product category business logic.
type productCategoryService struct {
	db *gorm.DB
}

// NewProductCategoryService creates a new ProductCategoryServicer.
func NewProductCategoryService(db *gorm.DB) ProductCategoryServicer {
	return &productCategoryService{db: db}
}

// ListCategories returns the user's product categories by name.
func (s *productCategoryService) ListCategories(userID string) ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// CreateCategory creates a product category. Names are unique per user.
func (s *productCategoryService) CreateCategory(userID, name string) (*models.ProductCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: name")
	}

	var count int64
	if err := s.db.Model(&models.ProductCategory{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateName
	}

	category := &models.ProductCategory{UserID: userID, Name: name}
	if err := s.db.Create(category).Error; err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateName
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// DeleteCategory soft-deletes a product category. Products keep the
// category name they were saved with.
func (s *productCategoryService) DeleteCategory(userID, categoryID string) error {
	result := s.db.Where("id = ? AND user_id = ?", categoryID, userID).Delete(&models.ProductCategory{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// productService handles finished product business logic.
type productService struct {
	db *gorm.DB
}

// NewProductService creates a new ProductServicer.
func NewProductService(db *gorm.DB) ProductServicer {
	return &productService{db: db}
}

// ListProducts returns the user's products by name.
func (s *productService) ListProducts(userID string) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return products, nil
}

// CreateProduct creates a product.
func (s *productService) CreateProduct(userID string, input ProductInput) (*models.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		Owned:        models.Owned{UserID: userID},
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		Category:     input.Category,
		SellingPrice: input.SellingPrice,
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return product, nil
}

// UpdateProduct replaces every editable field of a product.
func (s *productService) UpdateProduct(userID, productID string, input ProductInput) (*models.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Category = input.Category
	product.SellingPrice = input.SellingPrice
	if err := s.db.Save(&product).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &product, nil
}

// DeleteProduct soft-deletes a product.
func (s *productService) DeleteProduct(userID, productID string) error {
	result := s.db.Where("id = ? AND user_id = ?", productID, userID).Delete(&models.Product{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}

func validateProduct(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: name")
	}
	if input.SellingPrice < 0 {
		return apperrors.ErrInvalidAmount
	}
	return nil
}
