package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// --- mock product services ---

type mockProductService struct {
	createFn func(userID string, input services.ProductInput) (*models.Product, error)
	updateFn func(userID, productID string, input services.ProductInput) (*models.Product, error)
	deleteFn func(userID, productID string) error
}

func (m *mockProductService) ListProducts(userID string) ([]models.Product, error) {
	return []models.Product{}, nil
}

func (m *mockProductService) CreateProduct(userID string, input services.ProductInput) (*models.Product, error) {
	if m.createFn != nil {
		return m.createFn(userID, input)
	}
	return &models.Product{Name: input.Name, SellingPrice: input.SellingPrice}, nil
}

func (m *mockProductService) UpdateProduct(userID, productID string, input services.ProductInput) (*models.Product, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, productID, input)
	}
	return &models.Product{Name: input.Name, SellingPrice: input.SellingPrice}, nil
}

func (m *mockProductService) DeleteProduct(userID, productID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, productID)
	}
	return nil
}

var _ services.ProductServicer = (*mockProductService)(nil)

type mockProductCategoryService struct {
	createFn func(userID, name string) (*models.ProductCategory, error)
}

func (m *mockProductCategoryService) ListCategories(userID string) ([]models.ProductCategory, error) {
	return []models.ProductCategory{{Name: "Bolos"}}, nil
}

func (m *mockProductCategoryService) CreateCategory(userID, name string) (*models.ProductCategory, error) {
	if m.createFn != nil {
		return m.createFn(userID, name)
	}
	return &models.ProductCategory{UserID: userID, Name: name}, nil
}

func (m *mockProductCategoryService) DeleteCategory(userID, categoryID string) error {
	return nil
}

var _ services.ProductCategoryServicer = (*mockProductCategoryService)(nil)

const testProductID = "0190a4c2-0000-7000-8000-0000000000f1"

func setupProductRouter(handler *ProductHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/products", handler.ListProducts)
	auth.POST("/products", handler.CreateProduct)
	auth.PUT("/products/:id", handler.UpdateProduct)
	auth.DELETE("/products/:id", handler.DeleteProduct)
	auth.GET("/products/categories", handler.ListCategories)
	auth.POST("/products/categories", handler.CreateCategory)
	auth.DELETE("/products/categories/:id", handler.DeleteCategory)
	return r
}

func TestProductHandler_CreateProduct(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantPrice int64
	}{
		{"uses selling_price", `{"name":"Bolo de cenoura","selling_price":4590}`, 4590},
		{"accepts price alias", `{"name":"Bolo de cenoura","price":3990}`, 3990},
		{"prefers selling_price over price", `{"name":"Bolo de cenoura","selling_price":4590,"price":3990}`, 4590},
		{"defaults to zero", `{"name":"Bolo de cenoura"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got services.ProductInput
			products := &mockProductService{
				createFn: func(userID string, input services.ProductInput) (*models.Product, error) {
					got = input
					return &models.Product{Name: input.Name, SellingPrice: input.SellingPrice}, nil
				},
			}
			r := setupProductRouter(NewProductHandler(products, &mockProductCategoryService{}, nil))

			rec := doRequest(r, "POST", "/products", tt.body)

			if rec.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
			}
			if got.SellingPrice != tt.wantPrice {
				t.Errorf("expected price %d, got %d", tt.wantPrice, got.SellingPrice)
			}
		})
	}

	t.Run("returns 400 without name", func(t *testing.T) {
		r := setupProductRouter(NewProductHandler(&mockProductService{}, &mockProductCategoryService{}, nil))

		rec := doRequest(r, "POST", "/products", `{"price":100}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if parseJSON(t, rec)["error"] != "Campos obrigatórios: name" {
			t.Error("expected missing name message")
		}
	})

	t.Run("returns 400 on negative price", func(t *testing.T) {
		r := setupProductRouter(NewProductHandler(&mockProductService{}, &mockProductCategoryService{}, nil))

		rec := doRequest(r, "POST", "/products", `{"name":"x","price":-1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestProductHandler_UpdateProduct(t *testing.T) {
	products := &mockProductService{
		updateFn: func(string, string, services.ProductInput) (*models.Product, error) {
			return nil, apperrors.ErrProductNotFound
		},
	}
	r := setupProductRouter(NewProductHandler(products, &mockProductCategoryService{}, nil))

	rec := doRequest(r, "PUT", "/products/"+testProductID, `{"name":"Torta"}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if parseJSON(t, rec)["error"] != "Produto não encontrado" {
		t.Error("expected product not found message")
	}
}

func TestProductHandler_DeleteProduct(t *testing.T) {
	activities := &mockActivityService{}
	r := setupProductRouter(NewProductHandler(&mockProductService{}, &mockProductCategoryService{}, activities))

	rec := doRequest(r, "DELETE", "/products/"+testProductID, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if logged := activities.logged(); len(logged) != 1 || logged[0].Category != models.ActivityProduct {
		t.Errorf("unexpected activity %+v", logged)
	}
}

func TestProductHandler_Categories(t *testing.T) {
	t.Run("lists categories", func(t *testing.T) {
		r := setupProductRouter(NewProductHandler(&mockProductService{}, &mockProductCategoryService{}, nil))

		rec := doRequest(r, "GET", "/products/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(parseJSONArray(t, rec)) != 1 {
			t.Error("expected one category")
		}
	})

	t.Run("returns 409 on duplicate", func(t *testing.T) {
		categories := &mockProductCategoryService{
			createFn: func(string, string) (*models.ProductCategory, error) {
				return nil, apperrors.ErrDuplicateName
			},
		}
		r := setupProductRouter(NewProductHandler(&mockProductService{}, categories, nil))

		rec := doRequest(r, "POST", "/products/categories", `{"name":"Bolos"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}
