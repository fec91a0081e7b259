package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// AccountHandler handles financial account requests.
type AccountHandler struct {
	accountService services.AccountServicer
	activities     services.ActivityServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer, activities services.ActivityServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService, activities: activities}
}

// CreateAccountRequest represents the request payload for creating an account.
type CreateAccountRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Type  string `json:"type" binding:"omitempty,account_type"`
	Color string `json:"color" binding:"omitempty,hex_color"`
}

// UpdateAccountRequest holds the editable account fields.
type UpdateAccountRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Color    *string `json:"color" binding:"omitempty,hex_color"`
	IsActive *bool   `json:"is_active"`
}

// ListAccounts returns the caller's accounts with balances.
// @Summary     List accounts
// @Tags        financeiro
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.FinancialAccount
// @Router      /financeiro/accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accounts, err := h.accountService.ListAccounts(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// GetAccount returns one account with its balance.
// @Summary     Get an account
// @Tags        financeiro
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     200 {object} models.FinancialAccount
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /financeiro/accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	accountID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.GetAccountByID(userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// CreateAccount adds an account.
// @Summary     Create an account
// @Tags        financeiro
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAccountRequest true "Account"
// @Success     201 {object} models.FinancialAccount
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /financeiro/accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(userID, req.Name, models.AccountType(req.Type), req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityFinancial,
		Action:       "Conta criada",
		Description:  account.Name,
		ResourceType: "account",
		ResourceID:   account.ID,
	})
	c.JSON(http.StatusCreated, account)
}

// UpdateAccount edits an account.
// @Summary     Update an account
// @Tags        financeiro
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Account ID"
// @Param       request body UpdateAccountRequest true "Fields to change"
// @Success     200 {object} models.FinancialAccount
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /financeiro/accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	accountID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(userID, accountID, services.AccountUpdate{
		Name:     req.Name,
		Color:    req.Color,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityFinancial,
		Action:       "Conta atualizada",
		Description:  account.Name,
		ResourceType: "account",
		ResourceID:   account.ID,
	})
	c.JSON(http.StatusOK, account)
}
