package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// CustomerHandler handles customer-related requests.
type CustomerHandler struct {
	customerService services.CustomerServicer
	activities      services.ActivityServicer
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService services.CustomerServicer, activities services.ActivityServicer) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, activities: activities}
}

// CustomerRequest is the body of customer create and update.
type CustomerRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Phone    string `json:"phone" binding:"max=30"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	CpfCnpj  string `json:"cpf_cnpj" binding:"max=20"`
	PhotoURL string `json:"photo_url" binding:"omitempty,url,max=500"`
	Notes    string `json:"notes" binding:"max=2000"`
}

func (r CustomerRequest) input() services.CustomerInput {
	return services.CustomerInput{
		Name:     r.Name,
		Phone:    r.Phone,
		Email:    r.Email,
		CpfCnpj:  r.CpfCnpj,
		PhotoURL: r.PhotoURL,
		Notes:    r.Notes,
	}
}

// ListCustomers returns the caller's customers.
// @Summary     List customers
// @Tags        customers
// @Produce     json
// @Security    BearerAuth
// @Param       search query string false "Name, phone, email or CPF/CNPJ"
// @Success     200 {array} models.Customer
// @Router      /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	customers, err := h.customerService.ListCustomers(userID, c.Query("search"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer returns one customer.
// @Summary     Get a customer
// @Tags        customers
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Customer ID"
// @Success     200 {object} models.Customer
// @Failure     404 {object} ErrorResponse "Customer not found"
// @Router      /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	customerID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	customer, err := h.customerService.GetCustomer(userID, customerID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// CreateCustomer adds a customer.
// @Summary     Create a customer
// @Tags        customers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CustomerRequest true "Customer"
// @Success     201 {object} models.Customer
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CustomerRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(userID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityCustomer,
		Action:       "Cliente criado",
		Description:  customer.Name,
		ResourceType: "customer",
		ResourceID:   customer.ID,
	})
	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer replaces a customer's fields.
// @Summary     Update a customer
// @Tags        customers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Customer ID"
// @Param       request body CustomerRequest true "Customer"
// @Success     200 {object} models.Customer
// @Failure     404 {object} ErrorResponse "Customer not found"
// @Router      /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	customerID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CustomerRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(userID, customerID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityCustomer,
		Action:       "Cliente atualizado",
		Description:  customer.Name,
		ResourceType: "customer",
		ResourceID:   customer.ID,
	})
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer.
// @Summary     Delete a customer
// @Tags        customers
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Customer ID"
// @Success     200 {object} SuccessResponse
// @Failure     404 {object} ErrorResponse "Customer not found"
// @Router      /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	customerID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.customerService.DeleteCustomer(userID, customerID); err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityCustomer,
		Action:       "Cliente excluído",
		ResourceType: "customer",
		ResourceID:   customerID,
	})
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
