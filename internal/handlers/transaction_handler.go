package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"confeitaria/internal/dates"
	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/money"
	"confeitaria/internal/pagination"
	"confeitaria/internal/services"
	"confeitaria/internal/uuid"
	"confeitaria/internal/validator"
)

// TransactionHandler handles ledger requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	activities         services.ActivityServicer
	clock              *dates.Clock
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, activities services.ActivityServicer, clock *dates.Clock) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, activities: activities, clock: clock}
}

// CreateTransactionRequest is a transaction from the transaction form.
// Amount is the absolute value in centavos.
type CreateTransactionRequest struct {
	Type              string   `json:"type" binding:"required,transaction_type"`
	Description       string   `json:"description" binding:"required,max=300"`
	Amount            int64    `json:"amount" binding:"required,gt=0"`
	Date              string   `json:"date" binding:"required"`
	AccountID         string   `json:"account_id" binding:"required,uuid"`
	CategoryID        *string  `json:"category_id" binding:"omitempty,uuid"`
	IsPaid            bool     `json:"is_paid"`
	Observation       string   `json:"observation" binding:"max=2000"`
	Tags              []string `json:"tags" binding:"max=20,dive,max=50"`
	Recurrence        string   `json:"recurrence" binding:"omitempty,recurrence"`
	Installments      int      `json:"installments" binding:"omitempty,min=2,max=360"`
	InstallmentPeriod string   `json:"installment_period" binding:"omitempty,installment_period"`
}

// SetPaidRequest toggles the paid flag.
type SetPaidRequest struct {
	IsPaid *bool `json:"is_paid" binding:"required"`
}

// InstallmentPreviewRequest asks for an installment plan without saving it.
type InstallmentPreviewRequest struct {
	Total        int64  `json:"total" binding:"required,gt=0"`
	Installments int    `json:"installments" binding:"required,min=2,max=360"`
	Period       string `json:"period" binding:"omitempty,installment_period"`
	StartDate    string `json:"start_date" binding:"required"`
}

// InstallmentResponse is one slice of a previewed plan.
type InstallmentResponse struct {
	Number int         `json:"number"`
	Amount int64       `json:"amount"`
	Date   models.Date `json:"date"`
}

func (h *TransactionHandler) parseDate(field, s string) (models.Date, error) {
	t, err := h.clock.Parse(s)
	if err != nil {
		return models.Date{}, apperrors.WithMessage(apperrors.ErrValidation, "Campos inválidos: "+field)
	}
	return models.NewDate(t), nil
}

// ListTransactions returns a page of the caller's transactions, newest first.
// @Summary     List transactions
// @Tags        financeiro
// @Produce     json
// @Security    BearerAuth
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Param       from_date   query string false "First day (YYYY-MM-DD)"
// @Param       to_date     query string false "Last day (YYYY-MM-DD)"
// @Param       type        query string false "receita or despesa"
// @Param       account_id  query string false "Account ID"
// @Param       category_id query string false "Category ID"
// @Param       is_paid     query bool   false "Paid flag"
// @Param       search      query string false "Text in description"
// @Success     200 {object} pagination.PageResponse[models.FinancialTransaction]
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Router      /financeiro/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, validator.Describe(err)))
		return
	}

	filter, err := h.parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TransactionHandler) parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	filter := services.TransactionFilter{Search: c.Query("search")}

	for field, dst := range map[string]**models.Date{"from_date": &filter.FromDate, "to_date": &filter.ToDate} {
		if v := c.Query(field); v != "" {
			d, err := h.parseDate(field, v)
			if err != nil {
				return filter, err
			}
			*dst = &d
		}
	}

	if v := c.Query("type"); v != "" {
		t := models.TransactionType(v)
		if t != models.TransactionTypeReceita && t != models.TransactionTypeDespesa {
			return filter, apperrors.WithMessage(apperrors.ErrValidation, "Campos inválidos: type")
		}
		filter.Type = &t
	}

	for field, dst := range map[string]**string{"account_id": &filter.AccountID, "category_id": &filter.CategoryID} {
		if v := c.Query(field); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				return filter, apperrors.WithMessage(apperrors.ErrValidation, "Campos inválidos: "+field)
			}
			*dst = &id
		}
	}

	if v := c.Query("is_paid"); v != "" {
		paid, err := strconv.ParseBool(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrValidation, "Campos inválidos: is_paid")
		}
		filter.IsPaid = &paid
	}

	return filter, nil
}

// CreateTransaction books a transaction, or an installment plan when
// recurrence is "parcelada". The created rows are returned.
// @Summary     Create a transaction
// @Tags        financeiro
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction"
// @Success     201 {array}  models.FinancialTransaction
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account or category not found"
// @Router      /financeiro/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	date, err := h.parseDate("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.transactionService.CreateTransaction(userID, services.TransactionInput{
		Type:              models.TransactionType(req.Type),
		Description:       req.Description,
		Amount:            req.Amount,
		Date:              date,
		AccountID:         req.AccountID,
		CategoryID:        req.CategoryID,
		IsPaid:            req.IsPaid,
		Observation:       req.Observation,
		Tags:              req.Tags,
		Recurrence:        req.Recurrence,
		Installments:      req.Installments,
		InstallmentPeriod: money.Period(req.InstallmentPeriod),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityFinancial,
		Action:       "Transação criada",
		Description:  req.Description,
		ResourceType: "transaction",
		ResourceID:   rows[0].ID,
		Changes:      map[string]any{"amount": req.Amount, "type": req.Type, "rows": len(rows)},
	})
	c.JSON(http.StatusCreated, rows)
}

// GetTransaction returns one transaction.
// @Summary     Get a transaction
// @Tags        financeiro
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.FinancialTransaction
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /financeiro/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// SetPaid marks a transaction as paid or unpaid.
// @Summary     Toggle paid
// @Tags        financeiro
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Transaction ID"
// @Param       request body SetPaidRequest true "Paid flag"
// @Success     200 {object} models.FinancialTransaction
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /financeiro/transactions/{id}/paid [patch]
func (h *TransactionHandler) SetPaid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetPaidRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.SetPaid(userID, transactionID, *req.IsPaid)
	if err != nil {
		respondWithError(c, err)
		return
	}

	action := "Transação marcada como paga"
	if !tx.IsPaid {
		action = "Transação marcada como pendente"
	}
	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityFinancial,
		Action:       action,
		Description:  tx.Description,
		ResourceType: "transaction",
		ResourceID:   tx.ID,
	})
	c.JSON(http.StatusOK, tx)
}

// DeleteTransaction removes a transaction. Deleting either leg of a
// transfer removes both.
// @Summary     Delete a transaction
// @Tags        financeiro
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} SuccessResponse
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /financeiro/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	transactionID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityFinancial,
		Action:       "Transação excluída",
		ResourceType: "transaction",
		ResourceID:   transactionID,
	})
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// PreviewInstallments splits a total into installments without saving.
// @Summary     Preview installments
// @Tags        financeiro
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body InstallmentPreviewRequest true "Plan"
// @Success     200 {array}  InstallmentResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /financeiro/installments/preview [post]
func (h *TransactionHandler) PreviewInstallments(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req InstallmentPreviewRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	start, err := h.parseDate("start_date", req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	plan, err := h.transactionService.PreviewInstallments(req.Total, req.Installments, money.Period(req.Period), start.Time)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := make([]InstallmentResponse, len(plan))
	for i, inst := range plan {
		resp[i] = InstallmentResponse{Number: inst.Number, Amount: inst.Amount, Date: models.NewDate(inst.Date)}
	}
	c.JSON(http.StatusOK, resp)
}

// Summary totals the paid transactions of a period. Without dates it
// covers the current month.
// @Summary     Period summary
// @Tags        financeiro
// @Produce     json
// @Security    BearerAuth
// @Param       from query string false "First day (YYYY-MM-DD)"
// @Param       to   query string false "Last day (YYYY-MM-DD)"
// @Success     200 {object} services.PeriodSummary
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Router      /financeiro/summary [get]
func (h *TransactionHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, _ := h.clock.NamedRange(dates.RangeMonth)
	from := models.NewDate(month.From)
	to := models.NewDate(month.To.AddDate(0, 0, -1))
	if v := c.Query("from"); v != "" {
		if from, err = h.parseDate("from", v); err != nil {
			respondWithError(c, err)
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = h.parseDate("to", v); err != nil {
			respondWithError(c, err)
			return
		}
	}

	summary, err := h.transactionService.Summarize(userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
