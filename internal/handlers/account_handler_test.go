package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

type mockAccountService struct {
	createFn func(userID, name string, accountType models.AccountType, color string) (*models.FinancialAccount, error)
	getFn    func(userID, accountID string) (*models.FinancialAccount, error)
	updateFn func(userID, accountID string, update services.AccountUpdate) (*models.FinancialAccount, error)
}

func (m *mockAccountService) CreateAccount(userID, name string, accountType models.AccountType, color string) (*models.FinancialAccount, error) {
	if m.createFn != nil {
		return m.createFn(userID, name, accountType, color)
	}
	return &models.FinancialAccount{Name: name, Type: accountType}, nil
}

func (m *mockAccountService) ListAccounts(userID string) ([]models.FinancialAccount, error) {
	return []models.FinancialAccount{{Name: "Caixa"}, {Name: "Banco"}}, nil
}

func (m *mockAccountService) GetAccountByID(userID, accountID string) (*models.FinancialAccount, error) {
	if m.getFn != nil {
		return m.getFn(userID, accountID)
	}
	return &models.FinancialAccount{}, nil
}

func (m *mockAccountService) UpdateAccount(userID, accountID string, update services.AccountUpdate) (*models.FinancialAccount, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, accountID, update)
	}
	return &models.FinancialAccount{}, nil
}

var _ services.AccountServicer = (*mockAccountService)(nil)

func setupAccountRouter(handler *AccountHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/financeiro/accounts", handler.ListAccounts)
	auth.POST("/financeiro/accounts", handler.CreateAccount)
	auth.GET("/financeiro/accounts/:id", handler.GetAccount)
	auth.PUT("/financeiro/accounts/:id", handler.UpdateAccount)
	return r
}

func TestAccountHandler_CreateAccount(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotType models.AccountType
		accounts := &mockAccountService{
			createFn: func(userID, name string, accountType models.AccountType, color string) (*models.FinancialAccount, error) {
				gotType = accountType
				return &models.FinancialAccount{Name: name, Type: accountType, Color: color}, nil
			},
		}
		activities := &mockActivityService{}
		r := setupAccountRouter(NewAccountHandler(accounts, activities))

		rec := doRequest(r, "POST", "/financeiro/accounts", `{"name":"Poupança","type":"poupanca","color":"#22C55E"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotType != models.AccountTypeSavings {
			t.Errorf("expected poupanca, got %s", gotType)
		}
		if len(activities.logged()) != 1 {
			t.Error("expected activity to be logged")
		}
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := setupAccountRouter(NewAccountHandler(&mockAccountService{}, nil))

		rec := doRequest(r, "POST", "/financeiro/accounts", `{"name":"Cofre","type":"cofre"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION_ERROR")
	})
}

func TestAccountHandler_GetAccount(t *testing.T) {
	accounts := &mockAccountService{
		getFn: func(userID, accountID string) (*models.FinancialAccount, error) {
			return nil, apperrors.ErrAccountNotFound
		},
	}
	r := setupAccountRouter(NewAccountHandler(accounts, nil))

	rec := doRequest(r, "GET", "/financeiro/accounts/"+testAccountA, "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if parseJSON(t, rec)["error"] != "Conta não encontrada" {
		t.Error("expected account not found message")
	}
}

func TestAccountHandler_UpdateAccount(t *testing.T) {
	var got services.AccountUpdate
	accounts := &mockAccountService{
		updateFn: func(userID, accountID string, update services.AccountUpdate) (*models.FinancialAccount, error) {
			got = update
			return &models.FinancialAccount{}, nil
		},
	}
	r := setupAccountRouter(NewAccountHandler(accounts, nil))

	rec := doRequest(r, "PUT", "/financeiro/accounts/"+testAccountA, `{"is_active":false}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.IsActive == nil || *got.IsActive {
		t.Error("expected is_active=false to be passed")
	}
	if got.Name != nil || got.Color != nil {
		t.Error("expected other fields to be left unchanged")
	}
}
