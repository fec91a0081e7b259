package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confeitaria/internal/dates"
	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/services"
	"confeitaria/internal/validator"
)

// OrderHandler handles order-related requests.
type OrderHandler struct {
	orderService services.OrderServicer
	activities   services.ActivityServicer
	clock        *dates.Clock
}

// NewOrderHandler creates a new OrderHandler. clock resolves named date
// ranges and delivery dates in the business timezone.
func NewOrderHandler(orderService services.OrderServicer, activities services.ActivityServicer, clock *dates.Clock) *OrderHandler {
	return &OrderHandler{orderService: orderService, activities: activities, clock: clock}
}

// OrderQuery holds the list query parameters.
type OrderQuery struct {
	Sort   string `form:"sort" binding:"omitempty,order_sort"`
	Range  string `form:"range" binding:"omitempty,oneof=today week month"`
	Status string `form:"status" binding:"max=100"`
}

// CreateOrderRequest represents the request payload for creating an order.
// Value is a currency string such as "R$ 1.000,00".
type CreateOrderRequest struct {
	Customer     string  `json:"customer" binding:"required,max=200"`
	CustomerID   *string `json:"customer_id" binding:"omitempty,uuid"`
	Product      string  `json:"product" binding:"required,max=200"`
	ProductID    *string `json:"product_id" binding:"omitempty,uuid"`
	DeliveryDate string  `json:"delivery_date" binding:"required"`
	Status       string  `json:"status" binding:"max=100"`
	Phone        string  `json:"phone" binding:"max=30"`
	Value        string  `json:"value" binding:"max=50"`
	Notes        string  `json:"notes" binding:"max=2000"`
}

// UpdateOrderRequest holds the editable order fields. Omitted fields are
// left unchanged.
type UpdateOrderRequest struct {
	Customer     *string `json:"customer" binding:"omitempty,min=1,max=200"`
	CustomerID   *string `json:"customer_id" binding:"omitempty,uuid"`
	Product      *string `json:"product" binding:"omitempty,min=1,max=200"`
	ProductID    *string `json:"product_id" binding:"omitempty,uuid"`
	DeliveryDate *string `json:"delivery_date"`
	Status       *string `json:"status" binding:"omitempty,max=100"`
	Phone        *string `json:"phone" binding:"omitempty,max=30"`
	Value        *string `json:"value" binding:"omitempty,max=50"`
	Notes        *string `json:"notes" binding:"omitempty,max=2000"`
}

func (h *OrderHandler) parseDeliveryDate(s string) (models.Date, error) {
	t, err := h.clock.Parse(s)
	if err != nil {
		return models.Date{}, apperrors.WithMessage(apperrors.ErrValidation, "Campos inválidos: delivery_date")
	}
	return models.NewDate(t), nil
}

// ListOrders returns the caller's orders by delivery date.
// @Summary     List orders
// @Tags        orders
// @Produce     json
// @Security    BearerAuth
// @Param       sort   query string false "asc or desc; defaults to the stored preference"
// @Param       range  query string false "today, week or month"
// @Param       status query string false "Order status"
// @Success     200 {array}  models.Order
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Router      /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q OrderQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, validator.Describe(err)))
		return
	}

	filter := services.OrderFilter{Sort: q.Sort, Status: q.Status}
	if q.Range != "" {
		r, _ := h.clock.NamedRange(q.Range)
		filter.Range = &r
	}

	orders, err := h.orderService.ListOrders(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// CreateOrder handles the creation of a new order.
// @Summary     Create an order
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateOrderRequest true "Order details"
// @Success     201 {object} models.Order
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateOrderRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	delivery, err := h.parseDeliveryDate(req.DeliveryDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	order, err := h.orderService.CreateOrder(userID, services.OrderInput{
		Customer:     req.Customer,
		CustomerID:   req.CustomerID,
		Product:      req.Product,
		ProductID:    req.ProductID,
		DeliveryDate: delivery,
		Status:       req.Status,
		Phone:        req.Phone,
		Value:        req.Value,
		Notes:        req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityOrder,
		Action:       "Pedido criado",
		Description:  order.Product + " para " + order.Customer,
		ResourceType: "order",
		ResourceID:   order.ID,
		Changes:      map[string]any{"delivery_date": order.DeliveryDate.String(), "value": order.Value},
	})
	c.JSON(http.StatusCreated, order)
}

// UpdateOrder edits an order.
// @Summary     Update an order
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Order ID"
// @Param       request body UpdateOrderRequest true "Fields to change"
// @Success     200 {object} models.Order
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Order not found"
// @Router      /orders/{id} [patch]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	orderID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateOrderRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	update := services.OrderUpdate{
		Customer:   req.Customer,
		CustomerID: req.CustomerID,
		Product:    req.Product,
		ProductID:  req.ProductID,
		Status:     req.Status,
		Phone:      req.Phone,
		Value:      req.Value,
		Notes:      req.Notes,
	}
	if req.DeliveryDate != nil {
		delivery, err := h.parseDeliveryDate(*req.DeliveryDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		update.DeliveryDate = &delivery
	}

	order, err := h.orderService.UpdateOrder(userID, orderID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityOrder,
		Action:       "Pedido atualizado",
		Description:  order.Product + " para " + order.Customer,
		ResourceType: "order",
		ResourceID:   order.ID,
	})
	c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order.
// @Summary     Delete an order
// @Tags        orders
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Order ID"
// @Success     200 {object} SuccessResponse
// @Failure     404 {object} ErrorResponse "Order not found"
// @Router      /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	orderID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.orderService.DeleteOrder(userID, orderID); err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityOrder,
		Action:       "Pedido excluído",
		ResourceType: "order",
		ResourceID:   orderID,
	})
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
