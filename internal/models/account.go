package models

// AccountType represents the kind of financial account
type AccountType string

const (
	AccountTypeChecking   AccountType = "conta_corrente"
	AccountTypeSavings    AccountType = "poupanca"
	AccountTypeWallet     AccountType = "carteira"
	AccountTypeCreditCard AccountType = "cartao_credito"
)

// FinancialAccount is a bank account, wallet or card that transactions
// are booked against. Balance is derived from paid transactions and is not
// stored.
type FinancialAccount struct {
	Base
	Owned
	Name     string      `gorm:"not null" json:"name"`
	Type     AccountType `gorm:"not null" json:"type"`
	Color    string      `json:"color"`
	IsActive bool        `gorm:"not null" json:"is_active"`
	Balance  int64       `gorm:"-" json:"balance"`
}
