package services

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"confeitaria/internal/config"
	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/money"
)

// orderService handles customer orders.
type orderService struct {
	db     *gorm.DB
	policy config.CurrencyParsePolicy
	log    *zap.SugaredLogger
}

// NewOrderService creates a new OrderServicer. policy decides what happens
// to order values that cannot be parsed as a BRL amount.
func NewOrderService(db *gorm.DB, policy config.CurrencyParsePolicy, log *zap.SugaredLogger) OrderServicer {
	return &orderService{db: db, policy: policy, log: log}
}

// ListOrders returns the user's orders by delivery date. The direction comes
// from filter.Sort, then the stored order_sort preference, then ascending.
func (s *orderService) ListOrders(userID string, filter OrderFilter) ([]models.Order, error) {
	direction, err := s.sortDirection(userID, filter.Sort)
	if err != nil {
		return nil, err
	}

	q := s.db.Where("user_id = ?", userID)
	if filter.Range != nil {
		q = q.Where("delivery_date >= ? AND delivery_date < ?",
			models.NewDate(filter.Range.From), models.NewDate(filter.Range.To))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var orders []models.Order
	if err := q.Order("delivery_date " + direction).Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return orders, nil
}

func (s *orderService) sortDirection(userID, requested string) (string, error) {
	sort := strings.ToLower(requested)
	if sort == "" {
		var prefs models.UserPreferences
		err := s.db.Select("order_sort").Where("user_id = ?", userID).First(&prefs).Error
		switch {
		case err == nil:
			sort = prefs.OrderSort
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if sort == "desc" {
		return "DESC", nil
	}
	return "ASC", nil
}

// CreateOrder creates an order. Status defaults to pending.
func (s *orderService) CreateOrder(userID string, input OrderInput) (*models.Order, error) {
	var missing []string
	if strings.TrimSpace(input.Customer) == "" {
		missing = append(missing, "customer")
	}
	if strings.TrimSpace(input.Product) == "" {
		missing = append(missing, "product")
	}
	if input.DeliveryDate.IsZero() {
		missing = append(missing, "delivery_date")
	}
	if len(missing) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: "+strings.Join(missing, ", "))
	}

	value, err := s.parseValue(userID, input.Value)
	if err != nil {
		return nil, err
	}
	customerID, productID := emptyToNil(input.CustomerID), emptyToNil(input.ProductID)
	if err := s.ensureLinks(userID, customerID, productID); err != nil {
		return nil, err
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = models.OrderStatusPending
	}

	order := &models.Order{
		Owned:        models.Owned{UserID: userID},
		Customer:     strings.TrimSpace(input.Customer),
		CustomerID:   customerID,
		Product:      strings.TrimSpace(input.Product),
		ProductID:    productID,
		DeliveryDate: input.DeliveryDate,
		Status:       status,
		Phone:        input.Phone,
		Value:        value,
		Notes:        input.Notes,
	}
	if err := s.db.Create(order).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return order, nil
}

// UpdateOrder applies the non-nil fields of update.
func (s *orderService) UpdateOrder(userID, orderID string, update OrderUpdate) (*models.Order, error) {
	var order models.Order
	if err := s.db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var customerID, productID *string
	if update.CustomerID != nil {
		customerID = emptyToNil(update.CustomerID)
	}
	if update.ProductID != nil {
		productID = emptyToNil(update.ProductID)
	}
	if err := s.ensureLinks(userID, customerID, productID); err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if update.Customer != nil {
		if strings.TrimSpace(*update.Customer) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: customer")
		}
		updates["customer"] = strings.TrimSpace(*update.Customer)
	}
	if update.CustomerID != nil {
		updates["customer_id"] = customerID
	}
	if update.Product != nil {
		if strings.TrimSpace(*update.Product) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: product")
		}
		updates["product"] = strings.TrimSpace(*update.Product)
	}
	if update.ProductID != nil {
		updates["product_id"] = productID
	}
	if update.DeliveryDate != nil {
		updates["delivery_date"] = *update.DeliveryDate
	}
	if update.Status != nil && strings.TrimSpace(*update.Status) != "" {
		updates["status"] = strings.TrimSpace(*update.Status)
	}
	if update.Phone != nil {
		updates["phone"] = *update.Phone
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}
	if update.Value != nil {
		value, err := s.parseValue(userID, *update.Value)
		if err != nil {
			return nil, err
		}
		updates["value"] = value
	}

	if len(updates) > 0 {
		if err := s.db.Model(&order).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", order.ID).First(&order).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &order, nil
}

// DeleteOrder soft-deletes an order.
func (s *orderService) DeleteOrder(userID, orderID string) error {
	result := s.db.Where("id = ? AND user_id = ?", orderID, userID).Delete(&models.Order{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOrderNotFound
	}
	return nil
}

// ensureLinks checks that the linked customer and product, when set, belong
// to the user.
func (s *orderService) ensureLinks(userID string, customerID, productID *string) error {
	if customerID != nil {
		if err := s.ensureOwned(&models.Customer{}, userID, *customerID, apperrors.ErrCustomerNotFound); err != nil {
			return err
		}
	}
	if productID != nil {
		if err := s.ensureOwned(&models.Product{}, userID, *productID, apperrors.ErrProductNotFound); err != nil {
			return err
		}
	}
	return nil
}

func (s *orderService) ensureOwned(model any, userID, id string, notFound *apperrors.AppError) error {
	var count int64
	if err := s.db.Model(model).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return notFound
	}
	return nil
}

// parseValue converts a BRL string to centavos. An empty string means no
// value. Malformed input is rejected under the strict policy and dropped
// with a warning otherwise.
func (s *orderService) parseValue(userID, raw string) (*int64, error) {
	cents, err := money.ParseBRL(raw)
	switch {
	case err == nil:
		return &cents, nil
	case errors.Is(err, money.ErrEmpty):
		return nil, nil
	case s.policy == config.CurrencyStrict:
		return nil, apperrors.ErrInvalidCurrency
	default:
		s.log.Warnw("order value ignored", "user_id", userID, "value", raw, "error", err)
		return nil, nil
	}
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
