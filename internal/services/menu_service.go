package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
)

// menuService handles menus (cardápios) and their items.
type menuService struct {
	db *gorm.DB
}

// NewMenuService creates a new MenuServicer.
func NewMenuService(db *gorm.DB) MenuServicer {
	return &menuService{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// ListMenus returns the user's menus, newest first, with their items.
func (s *menuService) ListMenus(userID string) ([]models.Menu, error) {
	var menus []models.Menu
	if err := s.db.Preload("Items", orderedItems).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&menus).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return menus, nil
}

// GetMenu retrieves a menu and its items.
func (s *menuService) GetMenu(userID, menuID string) (*models.Menu, error) {
	var menu models.Menu
	if err := s.db.Preload("Items", orderedItems).
		Where("id = ? AND user_id = ?", menuID, userID).
		First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMenuNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &menu, nil
}

// CreateMenu creates a menu and its items in one transaction.
func (s *menuService) CreateMenu(userID string, input MenuInput) (*models.Menu, error) {
	if err := validateMenu(input); err != nil {
		return nil, err
	}

	menu := &models.Menu{
		Owned:       models.Owned{UserID: userID},
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Active:      input.Active,
		Items:       buildMenuItems("", input.Items),
	}
	if err := s.db.Create(menu).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return menu, nil
}

// UpdateMenu replaces the menu fields and its whole item list.
func (s *menuService) UpdateMenu(userID, menuID string, input MenuInput) (*models.Menu, error) {
	if err := validateMenu(input); err != nil {
		return nil, err
	}
	menu, err := s.GetMenu(userID, menuID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(menu).Select("name", "description", "active").Updates(models.Menu{
			Name:        strings.TrimSpace(input.Name),
			Description: input.Description,
			Active:      input.Active,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Unscoped().Where("menu_id = ?", menu.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		items := buildMenuItems(menu.ID, input.Items)
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetMenu(userID, menuID)
}

// DeleteMenu deletes a menu together with its items.
func (s *menuService) DeleteMenu(userID, menuID string) error {
	menu, err := s.GetMenu(userID, menuID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", menu.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&models.Menu{}, "id = ?", menu.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// DuplicateMenu copies a menu and its items. The copy starts inactive.
func (s *menuService) DuplicateMenu(userID, menuID string) (*models.Menu, error) {
	original, err := s.GetMenu(userID, menuID)
	if err != nil {
		return nil, err
	}

	items := make([]models.MenuItem, len(original.Items))
	for i, item := range original.Items {
		items[i] = models.MenuItem{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Category:    item.Category,
			ImageURL:    item.ImageURL,
			Position:    item.Position,
		}
	}
	copied := &models.Menu{
		Owned:       models.Owned{UserID: userID},
		Name:        original.Name + " (cópia)",
		Description: original.Description,
		Active:      false,
		Items:       items,
	}
	if err := s.db.Create(copied).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return copied, nil
}

func validateMenu(input MenuInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: name")
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.Name) == "" {
			return apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: items.name")
		}
		if item.Price < 0 {
			return apperrors.ErrInvalidAmount
		}
	}
	return nil
}

func buildMenuItems(menuID string, inputs []MenuItemInput) []models.MenuItem {
	items := make([]models.MenuItem, len(inputs))
	for i, in := range inputs {
		items[i] = models.MenuItem{
			MenuID:      menuID,
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			Price:       in.Price,
			Category:    in.Category,
			ImageURL:    in.ImageURL,
			Position:    i,
		}
	}
	return items
}
