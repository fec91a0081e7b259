package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

// --- mock transfer service ---

type mockTransferService struct {
	createTransferFn func(userID string, input services.TransferInput) (*services.TransferResult, error)
}

func (m *mockTransferService) CreateTransfer(userID string, input services.TransferInput) (*services.TransferResult, error) {
	if m.createTransferFn != nil {
		return m.createTransferFn(userID, input)
	}
	return &services.TransferResult{Success: true}, nil
}

var _ services.TransferServicer = (*mockTransferService)(nil)

const (
	testAccountA = "0190a4c2-0000-7000-8000-00000000aaa1"
	testAccountB = "0190a4c2-0000-7000-8000-00000000bbb2"
)

func setupTransferRouter(handler *TransferHandler) *gin.Engine {
	r := gin.New()
	r.POST("/financeiro/transfers", injectUserID(testUserID), handler.CreateTransfer)
	return r
}

func TestTransferHandler_CreateTransfer(t *testing.T) {
	t.Run("returns 201 with both legs", func(t *testing.T) {
		var got services.TransferInput
		transferID := "0190a4c2-0000-7000-8000-0000000000c1"
		transfers := &mockTransferService{
			createTransferFn: func(userID string, input services.TransferInput) (*services.TransferResult, error) {
				got = input
				return &services.TransferResult{
					Success: true,
					Despesa: &models.FinancialTransaction{Description: "Reserva (saída)", Amount: -input.Amount, TransferID: &transferID},
					Receita: &models.FinancialTransaction{Description: "Reserva (entrada)", Amount: input.Amount, TransferID: &transferID},
					Message: "Transferência criada com sucesso",
				}, nil
			},
		}
		activities := &mockActivityService{}
		r := setupTransferRouter(NewTransferHandler(transfers, activities, testClock()))

		rec := doRequest(r, "POST", "/financeiro/transfers",
			`{"description":"Reserva","amount":5000,"date":"2024-06-12","fromAccount":"`+testAccountA+`","toAccount":"`+testAccountB+`","tags":["caixa"]}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.FromAccount != testAccountA || got.ToAccount != testAccountB || got.Amount != 5000 {
			t.Errorf("unexpected input %+v", got)
		}
		if got.Date.String() != "2024-06-12" {
			t.Errorf("expected date 2024-06-12, got %s", got.Date)
		}
		result := parseJSON(t, rec)
		if result["success"] != true {
			t.Error("expected success true")
		}
		despesa := result["despesa"].(map[string]interface{})
		if despesa["amount"] != float64(-5000) {
			t.Errorf("expected -5000, got %v", despesa["amount"])
		}
		logged := activities.logged()
		if len(logged) != 1 || logged[0].ResourceID != transferID {
			t.Errorf("unexpected activity %+v", logged)
		}
	})

	t.Run("returns 400 from service validation", func(t *testing.T) {
		transfers := &mockTransferService{
			createTransferFn: func(string, services.TransferInput) (*services.TransferResult, error) {
				return nil, apperrors.ErrSameAccountTransfer
			},
		}
		r := setupTransferRouter(NewTransferHandler(transfers, nil, testClock()))

		rec := doRequest(r, "POST", "/financeiro/transfers",
			`{"amount":5000,"date":"2024-06-12","fromAccount":"`+testAccountA+`","toAccount":"`+testAccountA+`"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "VALIDATION_ERROR")
		if result["error"] != "As contas devem ser diferentes" {
			t.Errorf("unexpected message %v", result["error"])
		}
	})

	t.Run("returns 500 with stage code on credit failure", func(t *testing.T) {
		transfers := &mockTransferService{
			createTransferFn: func(string, services.TransferInput) (*services.TransferResult, error) {
				return nil, apperrors.ErrTransferCreditFailed
			},
		}
		r := setupTransferRouter(NewTransferHandler(transfers, nil, testClock()))

		rec := doRequest(r, "POST", "/financeiro/transfers",
			`{"amount":5000,"date":"2024-06-12","fromAccount":"`+testAccountA+`","toAccount":"`+testAccountB+`"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSFER_CREDIT_FAILED")
	})

	t.Run("returns 400 on invalid date", func(t *testing.T) {
		r := setupTransferRouter(NewTransferHandler(&mockTransferService{}, nil, testClock()))

		rec := doRequest(r, "POST", "/financeiro/transfers",
			`{"amount":5000,"date":"ontem","fromAccount":"`+testAccountA+`","toAccount":"`+testAccountB+`"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
