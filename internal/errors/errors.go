// Package errors provides the application error taxonomy.
// Services only return *AppError values so handlers can render a
// consistent response without leaking storage-layer details.
package errors

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err was caused by a unique constraint.
// It understands both GORM's translated error and a raw pgx error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Não autorizado", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Email ou senha inválidos", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Permissão negada", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Conta temporariamente bloqueada", StatusCode: http.StatusLocked}
)

// General errors.
var (
	ErrValidation     = &AppError{Code: "VALIDATION_ERROR", Message: "Dados inválidos", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Registro não encontrado", StatusCode: http.StatusNotFound}
	ErrConflict       = &AppError{Code: "CONFLICT", Message: "Registro já existe", StatusCode: http.StatusConflict}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Erro interno do servidor", StatusCode: http.StatusInternalServerError}
)

// User and profile errors.
var (
	ErrUserNotFound    = &AppError{Code: "NOT_FOUND", Message: "Usuário não encontrado", StatusCode: http.StatusNotFound}
	ErrProfileNotFound = &AppError{Code: "NOT_FOUND", Message: "Perfil não encontrado", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail  = &AppError{Code: "CONFLICT", Message: "Já existe um usuário com este email", StatusCode: http.StatusConflict}
	ErrAvatarTooLarge  = &AppError{Code: "VALIDATION_ERROR", Message: "A imagem deve ter no máximo 2MB", StatusCode: http.StatusBadRequest}
	ErrAvatarInvalid   = &AppError{Code: "VALIDATION_ERROR", Message: "Arquivo de imagem inválido", StatusCode: http.StatusBadRequest}
	ErrInviteFailed    = &AppError{Code: "INVITE_FAILED", Message: "Erro ao criar perfil do usuário", StatusCode: http.StatusInternalServerError}
)

// ErrDuplicateName is returned for statuses, tags and categories whose name
// is already taken by the same owner.
var ErrDuplicateName = &AppError{Code: "CONFLICT", Message: "Já existe um registro com este nome", StatusCode: http.StatusConflict}

// Order, product, customer and menu errors.
var (
	ErrOrderNotFound    = &AppError{Code: "NOT_FOUND", Message: "Pedido não encontrado", StatusCode: http.StatusNotFound}
	ErrProductNotFound  = &AppError{Code: "NOT_FOUND", Message: "Produto não encontrado", StatusCode: http.StatusNotFound}
	ErrCustomerNotFound = &AppError{Code: "NOT_FOUND", Message: "Cliente não encontrado", StatusCode: http.StatusNotFound}
	ErrMenuNotFound     = &AppError{Code: "NOT_FOUND", Message: "Cardápio não encontrado", StatusCode: http.StatusNotFound}
	ErrInvalidCurrency  = &AppError{Code: "VALIDATION_ERROR", Message: "Valor monetário inválido", StatusCode: http.StatusBadRequest}
)

// Financial errors.
var (
	ErrAccountNotFound      = &AppError{Code: "NOT_FOUND", Message: "Conta não encontrada", StatusCode: http.StatusNotFound}
	ErrCategoryNotFound     = &AppError{Code: "NOT_FOUND", Message: "Categoria não encontrada", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound  = &AppError{Code: "NOT_FOUND", Message: "Transação não encontrada", StatusCode: http.StatusNotFound}
	ErrInvalidAmount        = &AppError{Code: "VALIDATION_ERROR", Message: "Valor inválido", StatusCode: http.StatusBadRequest}
	ErrMissingAccounts      = &AppError{Code: "VALIDATION_ERROR", Message: "Contas de origem e destino são obrigatórias", StatusCode: http.StatusBadRequest}
	ErrSameAccountTransfer  = &AppError{Code: "VALIDATION_ERROR", Message: "As contas devem ser diferentes", StatusCode: http.StatusBadRequest}
	ErrInvalidInstallments  = &AppError{Code: "VALIDATION_ERROR", Message: "Número de parcelas inválido", StatusCode: http.StatusBadRequest}
	ErrTransferDebitFailed  = &AppError{Code: "TRANSFER_DEBIT_FAILED", Message: "Erro ao criar transação de saída", StatusCode: http.StatusInternalServerError}
	ErrTransferCreditFailed = &AppError{Code: "TRANSFER_CREDIT_FAILED", Message: "Erro ao criar transação de entrada", StatusCode: http.StatusInternalServerError}
)
