package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/money"
	"confeitaria/internal/pagination"
	"confeitaria/internal/uuid"
)

// transactionService handles ledger business logic.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{
		db:             db,
		accountService: accountService,
	}
}

// CreateTransaction books a transaction. With recurrence "parcelada" the
// amount is split into input.Installments rows created in one database
// transaction; otherwise a single row is created. The returned slice is
// ordered by installment number.
func (s *transactionService) CreateTransaction(userID string, input TransactionInput) ([]models.FinancialTransaction, error) {
	if err := validateTransactionInput(input); err != nil {
		return nil, err
	}

	if _, err := s.accountService.GetAccountByID(userID, input.AccountID); err != nil {
		return nil, err
	}
	if input.CategoryID != nil && *input.CategoryID != "" {
		if err := s.ensureCategory(userID, *input.CategoryID); err != nil {
			return nil, err
		}
	} else {
		input.CategoryID = nil
	}

	tags := models.StringList(input.Tags)
	if tags == nil {
		tags = models.StringList{}
	}
	template := models.FinancialTransaction{
		Owned:       models.Owned{UserID: userID},
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Type.Sign() * input.Amount,
		Type:        input.Type,
		Date:        input.Date,
		AccountID:   input.AccountID,
		CategoryID:  input.CategoryID,
		IsPaid:      input.IsPaid,
		Observation: input.Observation,
		Tags:        tags,
		Recurrence:  input.Recurrence,
	}

	if input.Recurrence != models.RecurrenceInstallment {
		if err := s.db.Create(&template).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return []models.FinancialTransaction{template}, nil
	}

	period := input.InstallmentPeriod
	if period == "" {
		period = money.PeriodMonths
	}
	plan, err := money.BuildPlan(input.Amount, input.Installments, period, input.Date.Time)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInstallments, err)
	}

	groupID := uuid.New()
	rows := make([]models.FinancialTransaction, len(plan))
	for i, inst := range plan {
		row := template
		row.Description = fmt.Sprintf("%s (%d/%d)", template.Description, inst.Number, len(plan))
		row.Amount = input.Type.Sign() * inst.Amount
		row.Date = models.NewDate(inst.Date)
		row.IsPaid = i == 0 && input.IsPaid
		row.InstallmentGroupID = &groupID
		row.InstallmentNumber = inst.Number
		row.InstallmentCount = len(plan)
		rows[i] = row
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rows).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func validateTransactionInput(input TransactionInput) error {
	var missing []string
	if strings.TrimSpace(input.Description) == "" {
		missing = append(missing, "description")
	}
	if input.AccountID == "" {
		missing = append(missing, "account_id")
	}
	if input.Date.IsZero() {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: "+strings.Join(missing, ", "))
	}
	if input.Type != models.TransactionTypeReceita && input.Type != models.TransactionTypeDespesa {
		return apperrors.WithMessage(apperrors.ErrValidation, "Tipo de transação inválido")
	}
	if input.Amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	switch input.Recurrence {
	case models.RecurrenceNone, models.RecurrenceFixed:
	case models.RecurrenceInstallment:
		if input.Installments < money.MinInstallments || input.Amount < int64(input.Installments) {
			return apperrors.ErrInvalidInstallments
		}
	default:
		return apperrors.WithMessage(apperrors.ErrValidation, "Recorrência inválida")
	}
	return nil
}

func (s *transactionService) ensureCategory(userID, categoryID string) error {
	var count int64
	if err := s.db.Model(&models.FinancialCategory{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// ListTransactions returns a page of the user's transactions, newest date first.
func (s *transactionService) ListTransactions(userID string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.FinancialTransaction], error) {
	q := s.db.Model(&models.FinancialTransaction{}).Where("user_id = ?", userID)
	q = applyTransactionFilters(q, filter)

	result, err := pagination.Fetch[models.FinancialTransaction](q.Order("date DESC, created_at DESC"), page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// applyTransactionFilters adds WHERE clauses for each non-nil filter field.
func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.IsPaid != nil {
		q = q.Where("is_paid = ?", *f.IsPaid)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		q = q.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.FinancialTransaction, error) {
	var transaction models.FinancialTransaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// SetPaid marks a transaction as paid or unpaid.
func (s *transactionService) SetPaid(userID, transactionID string, paid bool) (*models.FinancialTransaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(transaction).Update("is_paid", paid).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// DeleteTransaction soft-deletes a transaction. Deleting either leg of a
// transfer deletes both legs.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if transaction.TransferID == nil {
		if err := s.db.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND transfer_id = ?", userID, *transaction.TransferID).
			Delete(&models.FinancialTransaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// PreviewInstallments computes a plan without persisting anything.
func (s *transactionService) PreviewInstallments(total int64, count int, period money.Period, origin time.Time) ([]money.Installment, error) {
	if total <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if period == "" {
		period = money.PeriodMonths
	}
	plan, err := money.BuildPlan(total, count, period, origin)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInstallments, err)
	}
	return plan, nil
}

// Summarize totals the paid receitas and despesas dated within [from, to].
// Despesas is reported as a positive number.
func (s *transactionService) Summarize(userID string, from, to models.Date) (*PeriodSummary, error) {
	type typeTotal struct {
		Type  models.TransactionType
		Total int64
	}
	var totals []typeTotal
	if err := s.db.Model(&models.FinancialTransaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND is_paid = ? AND date >= ? AND date <= ?", userID, true, from, to).
		Group("type").
		Scan(&totals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &PeriodSummary{}
	for _, t := range totals {
		switch t.Type {
		case models.TransactionTypeReceita:
			summary.Receitas = t.Total
		case models.TransactionTypeDespesa:
			summary.Despesas = -t.Total
		}
	}
	summary.Saldo = summary.Receitas - summary.Despesas
	return summary, nil
}
