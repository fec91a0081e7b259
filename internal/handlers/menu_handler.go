package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// MenuHandler handles menus (cardápios).
type MenuHandler struct {
	menuService services.MenuServicer
	activities  services.ActivityServicer
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(menuService services.MenuServicer, activities services.ActivityServicer) *MenuHandler {
	return &MenuHandler{menuService: menuService, activities: activities}
}

// MenuItemRequest is one item of a menu. Price is in centavos.
type MenuItemRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
	Price       int64  `json:"price" binding:"gte=0"`
	Category    string `json:"category" binding:"max=100"`
	ImageURL    string `json:"image_url" binding:"omitempty,url,max=500"`
}

// MenuRequest is the body of menu create and update. Items are stored in
// the given order and replace existing items.
type MenuRequest struct {
	Name        string            `json:"name" binding:"required,max=200"`
	Description string            `json:"description" binding:"max=2000"`
	Active      bool              `json:"active"`
	Items       []MenuItemRequest `json:"items" binding:"dive"`
}

func (r MenuRequest) input() services.MenuInput {
	in := services.MenuInput{Name: r.Name, Description: r.Description, Active: r.Active}
	for _, item := range r.Items {
		in.Items = append(in.Items, services.MenuItemInput{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Category:    item.Category,
			ImageURL:    item.ImageURL,
		})
	}
	return in
}

func (h *MenuHandler) logMenu(c *gin.Context, userID, action string, menu *models.Menu) {
	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityProduct,
		Action:       action,
		Description:  menu.Name,
		ResourceType: "menu",
		ResourceID:   menu.ID,
	})
}

// ListMenus returns the caller's menus with their items.
// @Summary     List menus
// @Tags        menus
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Menu
// @Router      /menus [get]
func (h *MenuHandler) ListMenus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	menus, err := h.menuService.ListMenus(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, menus)
}

// GetMenu returns one menu.
// @Summary     Get a menu
// @Tags        menus
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Menu ID"
// @Success     200 {object} models.Menu
// @Failure     404 {object} ErrorResponse "Menu not found"
// @Router      /menus/{id} [get]
func (h *MenuHandler) GetMenu(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	menuID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	menu, err := h.menuService.GetMenu(userID, menuID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

// CreateMenu adds a menu with its items.
// @Summary     Create a menu
// @Tags        menus
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body MenuRequest true "Menu"
// @Success     201 {object} models.Menu
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /menus [post]
func (h *MenuHandler) CreateMenu(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MenuRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	menu, err := h.menuService.CreateMenu(userID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.logMenu(c, userID, "Cardápio criado", menu)
	c.JSON(http.StatusCreated, menu)
}

// UpdateMenu replaces a menu and its items.
// @Summary     Update a menu
// @Tags        menus
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string      true "Menu ID"
// @Param       request body MenuRequest true "Menu"
// @Success     200 {object} models.Menu
// @Failure     404 {object} ErrorResponse "Menu not found"
// @Router      /menus/{id} [put]
func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	menuID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MenuRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	menu, err := h.menuService.UpdateMenu(userID, menuID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.logMenu(c, userID, "Cardápio atualizado", menu)
	c.JSON(http.StatusOK, menu)
}

// DeleteMenu removes a menu and its items.
// @Summary     Delete a menu
// @Tags        menus
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Menu ID"
// @Success     200 {object} SuccessResponse
// @Failure     404 {object} ErrorResponse "Menu not found"
// @Router      /menus/{id} [delete]
func (h *MenuHandler) DeleteMenu(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	menuID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.menuService.DeleteMenu(userID, menuID); err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityProduct,
		Action:       "Cardápio excluído",
		ResourceType: "menu",
		ResourceID:   menuID,
	})
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// DuplicateMenu copies a menu as an inactive draft.
// @Summary     Duplicate a menu
// @Tags        menus
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Menu ID"
// @Success     201 {object} models.Menu
// @Failure     404 {object} ErrorResponse "Menu not found"
// @Router      /menus/{id}/duplicate [post]
func (h *MenuHandler) DuplicateMenu(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	menuID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	menu, err := h.menuService.DuplicateMenu(userID, menuID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.logMenu(c, userID, "Cardápio duplicado", menu)
	c.JSON(http.StatusCreated, menu)
}
