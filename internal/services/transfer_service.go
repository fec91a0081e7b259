package services

import (
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"confeitaria/internal/config"
	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/uuid"
)

const defaultTransferDescription = "Transferência"

// transferService moves money between two of a user's accounts by booking
// a paid despesa on the source and a paid receita on the destination.
type transferService struct {
	db             *gorm.DB
	accountService AccountServicer
	mode           config.ConsistencyMode
	log            *zap.SugaredLogger
}

// NewTransferService creates a new TransferServicer.
func NewTransferService(db *gorm.DB, accountService AccountServicer, mode config.ConsistencyMode, log *zap.SugaredLogger) TransferServicer {
	return &transferService{
		db:             db,
		accountService: accountService,
		mode:           mode,
		log:            log,
	}
}

// CreateTransfer validates the request, checks both accounts belong to the
// user and writes the debit leg followed by the credit leg.
func (s *transferService) CreateTransfer(userID string, input TransferInput) (*TransferResult, error) {
	if input.FromAccount == "" || input.ToAccount == "" {
		return nil, apperrors.ErrMissingAccounts
	}
	if input.FromAccount == input.ToAccount {
		return nil, apperrors.ErrSameAccountTransfer
	}
	if input.Amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if input.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: date")
	}

	if _, err := s.accountService.GetAccountByID(userID, input.FromAccount); err != nil {
		return nil, err
	}
	if _, err := s.accountService.GetAccountByID(userID, input.ToAccount); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = defaultTransferDescription
	}
	tags := models.StringList(input.Tags)
	if tags == nil {
		tags = models.StringList{}
	}
	transferID := uuid.New()

	debit := &models.FinancialTransaction{
		Owned:       models.Owned{UserID: userID},
		Description: description + " (saída)",
		Amount:      -input.Amount,
		Type:        models.TransactionTypeDespesa,
		Date:        input.Date,
		AccountID:   input.FromAccount,
		IsPaid:      true,
		Observation: input.Observation,
		Tags:        tags,
		TransferID:  &transferID,
	}
	credit := &models.FinancialTransaction{
		Owned:       models.Owned{UserID: userID},
		Description: description + " (entrada)",
		Amount:      input.Amount,
		Type:        models.TransactionTypeReceita,
		Date:        input.Date,
		AccountID:   input.ToAccount,
		IsPaid:      true,
		Observation: input.Observation,
		Tags:        tags,
		TransferID:  &transferID,
	}

	err := runSteps(s.db, s.mode, s.log,
		step{
			name: "debit",
			do: func(tx *gorm.DB) error {
				if err := tx.Create(debit).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrTransferDebitFailed, err)
				}
				return nil
			},
			undo: func(db *gorm.DB) error {
				return db.Unscoped().Delete(&models.FinancialTransaction{}, "id = ?", debit.ID).Error
			},
		},
		step{
			name: "credit",
			do: func(tx *gorm.DB) error {
				if err := tx.Create(credit).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrTransferCreditFailed, err)
				}
				return nil
			},
		},
	)
	if err != nil {
		s.log.Errorw("transfer failed",
			"user_id", userID,
			"transfer_id", transferID,
			"mode", s.mode,
			"error", err,
		)
		return nil, err
	}

	return &TransferResult{
		Success: true,
		Despesa: debit,
		Receita: credit,
		Message: "Transferência criada com sucesso",
	}, nil
}
