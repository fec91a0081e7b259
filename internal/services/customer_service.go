package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
)

// customerService handles customer records.
type customerService struct {
	db *gorm.DB
}

// NewCustomerService creates a new CustomerServicer.
func NewCustomerService(db *gorm.DB) CustomerServicer {
	return &customerService{db: db}
}

// ListCustomers returns the user's customers by name. A non-empty search
// matches name, phone, email or CPF/CNPJ.
func (s *customerService) ListCustomers(userID, search string) ([]models.Customer, error) {
	q := s.db.Where("user_id = ?", userID)
	if term := strings.TrimSpace(search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ? OR cpf_cnpj LIKE ?)", like, like, like, like)
	}

	var customers []models.Customer
	if err := q.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return customers, nil
}

// GetCustomer retrieves a customer by ID for a specific user
func (s *customerService) GetCustomer(userID, customerID string) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.Where("id = ? AND user_id = ?", customerID, userID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &customer, nil
}

// CreateCustomer creates a customer.
func (s *customerService) CreateCustomer(userID string, input CustomerInput) (*models.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: name")
	}

	customer := &models.Customer{Owned: models.Owned{UserID: userID}}
	applyCustomerInput(customer, input)
	if err := s.db.Create(customer).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return customer, nil
}

// UpdateCustomer replaces every editable field of a customer.
func (s *customerService) UpdateCustomer(userID, customerID string, input CustomerInput) (*models.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: name")
	}

	customer, err := s.GetCustomer(userID, customerID)
	if err != nil {
		return nil, err
	}
	applyCustomerInput(customer, input)
	if err := s.db.Save(customer).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer. Orders keep the customer name
// they were created with.
func (s *customerService) DeleteCustomer(userID, customerID string) error {
	result := s.db.Where("id = ? AND user_id = ?", customerID, userID).Delete(&models.Customer{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCustomerNotFound
	}
	return nil
}

func applyCustomerInput(c *models.Customer, input CustomerInput) {
	c.Name = strings.TrimSpace(input.Name)
	c.Phone = input.Phone
	c.Email = strings.TrimSpace(input.Email)
	c.CpfCnpj = input.CpfCnpj
	c.PhotoURL = input.PhotoURL
	c.Notes = input.Notes
}
