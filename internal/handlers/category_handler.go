package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// CategoryHandler handles financial category requests.
type CategoryHandler struct {
	categoryService services.FinancialCategoryServicer
	activities      services.ActivityServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.FinancialCategoryServicer, activities services.ActivityServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, activities: activities}
}

// CreateCategoryRequest represents the request payload for creating a category.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Type  string `json:"type" binding:"required,transaction_type"`
	Color string `json:"color" binding:"omitempty,hex_color"`
}

// UpdateCategoryRequest holds the editable category fields.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Color *string `json:"color" binding:"omitempty,hex_color"`
}

// ListCategories returns the caller's financial categories.
// @Summary     List financial categories
// @Tags        financeiro
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "receita or despesa"
// @Success     200 {array}  models.FinancialCategory
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Router      /financeiro/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var txType *models.TransactionType
	if v := c.Query("type"); v != "" {
		t := models.TransactionType(v)
		if t != models.TransactionTypeReceita && t != models.TransactionTypeDespesa {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "Campos inválidos: type"))
			return
		}
		txType = &t
	}

	categories, err := h.categoryService.ListCategories(userID, txType)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory adds a financial category.
// @Summary     Create a financial category
// @Tags        financeiro
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category"
// @Success     201 {object} models.FinancialCategory
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Name already used"
// @Router      /financeiro/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(userID, req.Name, models.TransactionType(req.Type), req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityFinancial,
		Action:       "Categoria criada",
		Description:  category.Name,
		ResourceType: "financial_category",
		ResourceID:   category.ID,
	})
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory edits a financial category.
// @Summary     Update a financial category
// @Tags        financeiro
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to change"
// @Success     200 {object} models.FinancialCategory
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Name already used"
// @Router      /financeiro/categories/{id} [patch]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	categoryID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(userID, categoryID, req.Name, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityFinancial,
		Action:       "Categoria atualizada",
		Description:  category.Name,
		ResourceType: "financial_category",
		ResourceID:   category.ID,
	})
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a financial category.
// @Summary     Delete a financial category
// @Tags        financeiro
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} SuccessResponse
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /financeiro/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	categoryID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityFinancial,
		Action:       "Categoria excluída",
		ResourceType: "financial_category",
		ResourceID:   categoryID,
	})
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
