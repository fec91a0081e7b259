package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
)

// labeled is satisfied by pointers to models that embed ColoredLabel.
type labeled[T any] interface {
	*T
	Label() *models.ColoredLabel
}

// labelService implements LabelServicer for any ColoredLabel table.
type labelService[T any, P labeled[T]] struct {
	db       *gorm.DB
	notFound *apperrors.AppError
}

// NewAgendaStatusService creates the service behind /agenda/statuses.
func NewAgendaStatusService(db *gorm.DB) LabelServicer[models.AgendaStatus] {
	return &labelService[models.AgendaStatus, *models.AgendaStatus]{
		db:       db,
		notFound: apperrors.WithMessage(apperrors.ErrNotFound, "Status não encontrado"),
	}
}

// NewAgendaTagService creates the service behind /agenda/tags.
func NewAgendaTagService(db *gorm.DB) LabelServicer[models.AgendaTag] {
	return &labelService[models.AgendaTag, *models.AgendaTag]{
		db:       db,
		notFound: apperrors.WithMessage(apperrors.ErrNotFound, "Tag não encontrada"),
	}
}

// NewOrderStatusService creates the service behind /orders/statuses.
func NewOrderStatusService(db *gorm.DB) LabelServicer[models.OrderStatus] {
	return &labelService[models.OrderStatus, *models.OrderStatus]{
		db:       db,
		notFound: apperrors.WithMessage(apperrors.ErrNotFound, "Status não encontrado"),
	}
}

// List returns the user's labels in creation order.
func (s *labelService[T, P]) List(userID string) ([]T, error) {
	var labels []T
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&labels).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return labels, nil
}

// Create inserts a label after checking the name is free.
func (s *labelService[T, P]) Create(userID, name, color string) (*T, error) {
	name = strings.TrimSpace(name)
	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if color == "" {
		missing = append(missing, "color")
	}
	if len(missing) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: "+strings.Join(missing, ", "))
	}

	if err := s.ensureNameFree(userID, name, ""); err != nil {
		return nil, err
	}

	label := new(T)
	l := P(label).Label()
	l.UserID = userID
	l.Name = name
	l.Color = color

	if err := s.db.Create(label).Error; err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateName
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return label, nil
}

// Update renames or recolors a label.
func (s *labelService[T, P]) Update(userID, id string, name, color *string) (*T, error) {
	label, err := s.get(userID, id)
	if err != nil {
		return nil, err
	}
	l := P(label).Label()

	updates := make(map[string]any)
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: name")
		}
		if trimmed != l.Name {
			if err := s.ensureNameFree(userID, trimmed, id); err != nil {
				return nil, err
			}
			updates["name"] = trimmed
		}
	}
	if color != nil && *color != "" {
		updates["color"] = *color
	}

	if len(updates) > 0 {
		if err := s.db.Model(label).Updates(updates).Error; err != nil {
			if apperrors.IsUniqueViolation(err) {
				return nil, apperrors.ErrDuplicateName
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return label, nil
}

// Delete soft-deletes a label.
func (s *labelService[T, P]) Delete(userID, id string) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(new(T))
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return s.notFound
	}
	return nil
}

func (s *labelService[T, P]) get(userID, id string) (*T, error) {
	label := new(T)
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(label).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return label, nil
}

func (s *labelService[T, P]) ensureNameFree(userID, name, exceptID string) error {
	q := s.db.Model(new(T)).Where("user_id = ? AND name = ?", userID, name)
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
