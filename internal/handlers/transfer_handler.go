package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confeitaria/internal/dates"
	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// TransferHandler handles account-to-account transfers.
type TransferHandler struct {
	transferService services.TransferServicer
	activities      services.ActivityServicer
	clock           *dates.Clock
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferService services.TransferServicer, activities services.ActivityServicer, clock *dates.Clock) *TransferHandler {
	return &TransferHandler{transferService: transferService, activities: activities, clock: clock}
}

// CreateTransferRequest represents the request payload for a transfer.
// Amount is in centavos. Account checks happen in the service so that a
// missing account is reported with the transfer's own message.
type CreateTransferRequest struct {
	Description string   `json:"description" binding:"max=300"`
	Amount      int64    `json:"amount"`
	Date        string   `json:"date" binding:"required"`
	FromAccount string   `json:"fromAccount" binding:"omitempty,uuid"`
	ToAccount   string   `json:"toAccount" binding:"omitempty,uuid"`
	Observation string   `json:"observation" binding:"max=2000"`
	Tags        []string `json:"tags" binding:"max=20,dive,max=50"`
}

// CreateTransfer moves money between two of the caller's accounts as a
// paid despesa on the source and a paid receita on the destination.
// @Summary     Create a transfer
// @Tags        financeiro
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransferRequest true "Transfer details"
// @Success     201 {object} services.TransferResult
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Debit or credit failed"
// @Router      /financeiro/transfers [post]
func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransferRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	t, err := h.clock.Parse(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "Campos inválidos: date"))
		return
	}

	result, err := h.transferService.CreateTransfer(userID, services.TransferInput{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        models.NewDate(t),
		FromAccount: req.FromAccount,
		ToAccount:   req.ToAccount,
		Observation: req.Observation,
		Tags:        req.Tags,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	var transferID string
	if result.Despesa != nil && result.Despesa.TransferID != nil {
		transferID = *result.Despesa.TransferID
	}
	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityFinancial,
		Action:       "Transferência criada",
		ResourceType: "transfer",
		ResourceID:   transferID,
		Changes: map[string]any{
			"from_account": req.FromAccount,
			"to_account":   req.ToAccount,
			"amount":       req.Amount,
		},
	})
	c.JSON(http.StatusCreated, result)
}
