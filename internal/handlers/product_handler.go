package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// ProductHandler handles products and product categories.
type ProductHandler struct {
	productService  services.ProductServicer
	categoryService services.ProductCategoryServicer
	activities      services.ActivityServicer
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService services.ProductServicer, categoryService services.ProductCategoryServicer, activities services.ActivityServicer) *ProductHandler {
	return &ProductHandler{productService: productService, categoryService: categoryService, activities: activities}
}

// ProductRequest is the body of product create and update. Prices are in
// centavos; "price" is accepted as an alias of "selling_price".
type ProductRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	Description  string `json:"description" binding:"max=2000"`
	Category     string `json:"category" binding:"max=100"`
	SellingPrice *int64 `json:"selling_price" binding:"omitempty,gte=0"`
	Price        *int64 `json:"price" binding:"omitempty,gte=0"`
}

func (r ProductRequest) input() services.ProductInput {
	in := services.ProductInput{Name: r.Name, Description: r.Description, Category: r.Category}
	switch {
	case r.SellingPrice != nil:
		in.SellingPrice = *r.SellingPrice
	case r.Price != nil:
		in.SellingPrice = *r.Price
	}
	return in
}

// CreateProductCategoryRequest represents the request payload for a product category.
type CreateProductCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// ListProducts returns the caller's products by name.
// @Summary     List products
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Product
// @Router      /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	products, err := h.productService.ListProducts(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct adds a product.
// @Summary     Create a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ProductRequest true "Product"
// @Success     201 {object} models.Product
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProductRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	product, err := h.productService.CreateProduct(userID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityProduct,
		Action:       "Produto criado",
		Description:  product.Name,
		ResourceType: "product",
		ResourceID:   product.ID,
	})
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct replaces a product's fields.
// @Summary     Update a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Product ID"
// @Param       request body ProductRequest true "Product"
// @Success     200 {object} models.Product
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	productID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProductRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	product, err := h.productService.UpdateProduct(userID, productID, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityProduct,
		Action:       "Produto atualizado",
		Description:  product.Name,
		ResourceType: "product",
		ResourceID:   product.ID,
	})
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product.
// @Summary     Delete a product
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Product ID"
// @Success     200 {object} SuccessResponse
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	productID, err := parsePathID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.productService.DeleteProduct(userID, productID); err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityProduct,
		Action:       "Produto excluído",
		ResourceType: "product",
		ResourceID:   productID,
	})
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ListCategories returns the caller's product categories.
// @Summary     List product categories
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.ProductCategory
// @Router      /products/categories [get]
func (h *ProductHandler) ListCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.ListCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory adds a product category.
// @Summary     Create a product category
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProductCategoryRequest true "Category"
// @Success     201 {object} models.ProductCategory
// @Failure     409 {object} ErrorResponse "Name already used"
// @Router      /products/categories [post]
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProductCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recordActivity(c, h.activities, userID, services.ActivityEntry{
		Category:     models.ActivityProduct,
		Action:       "Categoria de produto criada",
		Description:  category.Name,
		ResourceType: "product_category",
		ResourceID:   category.ID,
	})
	c.JSON(http.StatusCreated, category)
}

// DeleteCategory removes a product category.
// @Summary     Delete a product category
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     200 {object} SuccessResponse
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /products/categories/{id} [delete]
func (h *ProductHandler) DeleteCategory(c *gin.Context) {
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
		Category:     models.ActivityProduct,
		Action:       "Categoria de produto excluída",
		ResourceType: "product_category",
		ResourceID:   categoryID,
	})
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
