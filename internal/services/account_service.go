package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
)

// accountService handles financial account business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a new active account for a user.
func (s *accountService) CreateAccount(userID, name string, accountType models.AccountType, color string) (*models.FinancialAccount, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: name")
	}
	if accountType == "" {
		accountType = models.AccountTypeChecking
	}

	account := &models.FinancialAccount{
		Owned:    models.Owned{UserID: userID},
		Name:     name,
		Type:     accountType,
		Color:    color,
		IsActive: true,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// ListAccounts returns the user's accounts, active first, with balances.
func (s *accountService) ListAccounts(userID string) ([]models.FinancialAccount, error) {
	var accounts []models.FinancialAccount
	if err := s.db.Where("user_id = ?", userID).
		Order("is_active DESC, name ASC").
		Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.enrichBalances(userID, accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccountByID retrieves an account by ID for a specific user
func (s *accountService) GetAccountByID(userID, accountID string) (*models.FinancialAccount, error) {
	var account models.FinancialAccount
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	accounts := []models.FinancialAccount{account}
	if err := s.enrichBalances(userID, accounts); err != nil {
		return nil, err
	}
	return &accounts[0], nil
}

// UpdateAccount applies the non-nil fields of update.
func (s *accountService) UpdateAccount(userID, accountID string, update AccountUpdate) (*models.FinancialAccount, error) {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
		updates["name"] = strings.TrimSpace(*update.Name)
	}
	if update.Color != nil {
		updates["color"] = *update.Color
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.FinancialAccount{}).
			Where("id = ? AND user_id = ?", accountID, userID).
			Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.GetAccountByID(userID, accountID)
	}

	return account, nil
}

// enrichBalances sets Balance on each account to the sum of its paid
// transaction amounts.
func (s *accountService) enrichBalances(userID string, accounts []models.FinancialAccount) error {
	if len(accounts) == 0 {
		return nil
	}
	ids := make([]string, len(accounts))
	for i := range accounts {
		ids[i] = accounts[i].ID
	}

	type balanceRow struct {
		AccountID string
		Total     int64
	}
	var rows []balanceRow
	if err := s.db.Model(&models.FinancialTransaction{}).
		Select("account_id, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND is_paid = ? AND account_id IN ?", userID, true, ids).
		Group("account_id").
		Scan(&rows).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	balances := make(map[string]int64, len(rows))
	for _, r := range rows {
		balances[r.AccountID] = r.Total
	}
	for i := range accounts {
		accounts[i].Balance = balances[accounts[i].ID]
	}
	return nil
}
