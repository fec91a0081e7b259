package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// --- mock order service ---

type mockOrderService struct {
	listOrdersFn  func(userID string, filter services.OrderFilter) ([]models.Order, error)
	createOrderFn func(userID string, input services.OrderInput) (*models.Order, error)
	updateOrderFn func(userID, orderID string, update services.OrderUpdate) (*models.Order, error)
	deleteOrderFn func(userID, orderID string) error
}

func (m *mockOrderService) ListOrders(userID string, filter services.OrderFilter) ([]models.Order, error) {
	if m.listOrdersFn != nil {
		return m.listOrdersFn(userID, filter)
	}
	return []models.Order{}, nil
}

func (m *mockOrderService) CreateOrder(userID string, input services.OrderInput) (*models.Order, error) {
	if m.createOrderFn != nil {
		return m.createOrderFn(userID, input)
	}
	return &models.Order{}, nil
}

func (m *mockOrderService) UpdateOrder(userID, orderID string, update services.OrderUpdate) (*models.Order, error) {
	if m.updateOrderFn != nil {
		return m.updateOrderFn(userID, orderID, update)
	}
	return &models.Order{}, nil
}

func (m *mockOrderService) DeleteOrder(userID, orderID string) error {
	if m.deleteOrderFn != nil {
		return m.deleteOrderFn(userID, orderID)
	}
	return nil
}

var _ services.OrderServicer = (*mockOrderService)(nil)

const testOrderID = "0190a4c2-0000-7000-8000-0000000000a1"

func setupOrderRouter(handler *OrderHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/orders", handler.ListOrders)
	auth.POST("/orders", handler.CreateOrder)
	auth.PATCH("/orders/:id", handler.UpdateOrder)
	auth.DELETE("/orders/:id", handler.DeleteOrder)
	return r
}

func TestOrderHandler_ListOrders(t *testing.T) {
	t.Run("resolves week range in business timezone", func(t *testing.T) {
		var got services.OrderFilter
		orders := &mockOrderService{
			listOrdersFn: func(userID string, filter services.OrderFilter) ([]models.Order, error) {
				got = filter
				return []models.Order{{Customer: "Ana"}}, nil
			},
		}
		r := setupOrderRouter(NewOrderHandler(orders, nil, testClock()))

		rec := doRequest(r, "GET", "/orders?range=week&sort=desc&status=pending", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Sort != "desc" || got.Status != "pending" {
			t.Errorf("unexpected filter %+v", got)
		}
		if got.Range == nil {
			t.Fatal("expected a range")
		}
		if got.Range.From.Format("2006-01-02") != "2024-06-09" || got.Range.To.Format("2006-01-02") != "2024-06-16" {
			t.Errorf("expected week 2024-06-09..2024-06-16, got %s..%s", got.Range.From, got.Range.To)
		}
		if len(parseJSONArray(t, rec)) != 1 {
			t.Error("expected one order")
		}
	})

	t.Run("returns 400 on unknown sort", func(t *testing.T) {
		r := setupOrderRouter(NewOrderHandler(&mockOrderService{}, nil, testClock()))

		rec := doRequest(r, "GET", "/orders?sort=sideways", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown range", func(t *testing.T) {
		r := setupOrderRouter(NewOrderHandler(&mockOrderService{}, nil, testClock()))

		rec := doRequest(r, "GET", "/orders?range=year", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewOrderHandler(&mockOrderService{}, nil, testClock())
		r := gin.New()
		r.GET("/orders", handler.ListOrders)

		rec := doRequest(r, "GET", "/orders", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
	})
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	t.Run("returns 201 and passes raw value", func(t *testing.T) {
		var got services.OrderInput
		orders := &mockOrderService{
			createOrderFn: func(userID string, input services.OrderInput) (*models.Order, error) {
				got = input
				value := int64(100000)
				return &models.Order{
					Base:         models.Base{ID: testOrderID},
					Owned:        models.Owned{UserID: userID},
					Customer:     input.Customer,
					Product:      input.Product,
					DeliveryDate: input.DeliveryDate,
					Status:       models.OrderStatusPending,
					Value:        &value,
				}, nil
			},
		}
		activities := &mockActivityService{}
		r := setupOrderRouter(NewOrderHandler(orders, activities, testClock()))

		rec := doRequest(r, "POST", "/orders",
			`{"customer":"Ana","product":"Bolo de cenoura","delivery_date":"2024-06-14","value":"R$ 1.000,00"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Value != "R$ 1.000,00" {
			t.Errorf("expected raw value, got %q", got.Value)
		}
		if got.DeliveryDate.String() != "2024-06-14" {
			t.Errorf("expected delivery 2024-06-14, got %s", got.DeliveryDate)
		}
		result := parseJSON(t, rec)
		if result["value"] != float64(100000) || result["delivery_date"] != "2024-06-14" {
			t.Errorf("unexpected body %v", result)
		}
		logged := activities.logged()
		if len(logged) != 1 || logged[0].Category != models.ActivityOrder || logged[0].UserID != testUserID {
			t.Errorf("unexpected activity %+v", logged)
		}
	})

	t.Run("returns 400 listing missing fields", func(t *testing.T) {
		r := setupOrderRouter(NewOrderHandler(&mockOrderService{}, nil, testClock()))

		rec := doRequest(r, "POST", "/orders", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "VALIDATION_ERROR")
		if result["error"] != "Campos obrigatórios: customer, product, delivery_date" {
			t.Errorf("unexpected message %v", result["error"])
		}
	})

	t.Run("returns 400 on bad delivery date", func(t *testing.T) {
		r := setupOrderRouter(NewOrderHandler(&mockOrderService{}, nil, testClock()))

		rec := doRequest(r, "POST", "/orders", `{"customer":"Ana","product":"Bolo","delivery_date":"14/06/2024"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 when strict policy rejects value", func(t *testing.T) {
		orders := &mockOrderService{
			createOrderFn: func(string, services.OrderInput) (*models.Order, error) {
				return nil, apperrors.ErrInvalidCurrency
			},
		}
		r := setupOrderRouter(NewOrderHandler(orders, nil, testClock()))

		rec := doRequest(r, "POST", "/orders", `{"customer":"Ana","product":"Bolo","delivery_date":"2024-06-14","value":"abc"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestOrderHandler_UpdateOrder(t *testing.T) {
	t.Run("returns 200 and passes only given fields", func(t *testing.T) {
		var got services.OrderUpdate
		orders := &mockOrderService{
			updateOrderFn: func(userID, orderID string, update services.OrderUpdate) (*models.Order, error) {
				got = update
				return &models.Order{Base: models.Base{ID: orderID}, Customer: "Ana", Product: "Bolo",
					DeliveryDate: models.NewDate(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC))}, nil
			},
		}
		r := setupOrderRouter(NewOrderHandler(orders, nil, testClock()))

		rec := doRequest(r, "PATCH", "/orders/"+testOrderID, `{"status":"done","delivery_date":"2024-06-20"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Status == nil || *got.Status != "done" {
			t.Error("expected status to be passed")
		}
		if got.Customer != nil || got.Value != nil {
			t.Error("expected omitted fields to stay nil")
		}
		if got.DeliveryDate == nil || got.DeliveryDate.String() != "2024-06-20" {
			t.Error("expected parsed delivery date")
		}
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		r := setupOrderRouter(NewOrderHandler(&mockOrderService{}, nil, testClock()))

		rec := doRequest(r, "PATCH", "/orders/42", `{"status":"done"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestOrderHandler_DeleteOrder(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		r := setupOrderRouter(NewOrderHandler(&mockOrderService{}, nil, testClock()))

		rec := doRequest(r, "DELETE", "/orders/"+testOrderID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["success"] != true {
			t.Error("expected success true")
		}
	})

	t.Run("returns 404 for another user's order", func(t *testing.T) {
		orders := &mockOrderService{
			deleteOrderFn: func(string, string) error { return apperrors.ErrOrderNotFound },
		}
		r := setupOrderRouter(NewOrderHandler(orders, nil, testClock()))

		rec := doRequest(r, "DELETE", "/orders/"+testOrderID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NOT_FOUND")
	})
}
