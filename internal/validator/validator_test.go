package validator

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type orderPayload struct {
	Customer     string `json:"customer" binding:"required"`
	Product      string `json:"product" binding:"required"`
	DeliveryDate string `json:"delivery_date" binding:"required"`
	Color        string `json:"color" binding:"omitempty,hex_color"`
	Type         string `json:"type" binding:"omitempty,transaction_type"`
}

func init() {
	Register()
}

func TestCustomTags(t *testing.T) {
	t.Run("accepts_valid_values", func(t *testing.T) {
		p := orderPayload{Customer: "Ana", Product: "Bolo", DeliveryDate: "2024-05-01", Color: "#FFAA00", Type: "receita"}
		if err := binding.Validator.ValidateStruct(&p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects_bad_hex_color", func(t *testing.T) {
		p := orderPayload{Customer: "Ana", Product: "Bolo", DeliveryDate: "2024-05-01", Color: "red"}
		err := binding.Validator.ValidateStruct(&p)
		if err == nil {
			t.Fatal("expected error for invalid color")
		}
		if msg := Describe(err); msg != "Campos inválidos: color" {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("rejects_unknown_transaction_type", func(t *testing.T) {
		p := orderPayload{Customer: "Ana", Product: "Bolo", DeliveryDate: "2024-05-01", Type: "transfer"}
		if err := binding.Validator.ValidateStruct(&p); err == nil {
			t.Fatal("expected error for invalid type")
		}
	})
}

func TestDescribe(t *testing.T) {
	t.Run("lists_missing_fields_by_json_name", func(t *testing.T) {
		err := binding.Validator.ValidateStruct(&orderPayload{})
		want := "Campos obrigatórios: customer, product, delivery_date"
		if got := Describe(err); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("generic_message_for_other_errors", func(t *testing.T) {
		if got := Describe(errors.New("unexpected EOF")); got != "Dados inválidos" {
			t.Errorf("unexpected message %q", got)
		}
	})
}
