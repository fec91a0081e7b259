package models

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeReceita TransactionType = "receita"
	TransactionTypeDespesa TransactionType = "despesa"
)

// Sign returns +1 for receita and -1 for despesa.
func (t TransactionType) Sign() int64 {
	if t == TransactionTypeDespesa {
		return -1
	}
	return 1
}

// Recurrence values for transactions created from the transaction form.
const (
	RecurrenceNone        = ""
	RecurrenceFixed       = "fixa"
	RecurrenceInstallment = "parcelada"
)

// FinancialTransaction is a ledger entry. Amount is signed centavos and
// its sign always agrees with Type.
type FinancialTransaction struct {
	Base
	Owned
	Description        string          `gorm:"not null" json:"description"`
	Amount             int64           `gorm:"type:bigint;not null" json:"amount"`
	Type               TransactionType `gorm:"not null;index" json:"type"`
	Date               Date            `gorm:"not null;index" json:"date"`
	AccountID          string          `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID         *string         `gorm:"type:uuid" json:"category_id"`
	IsPaid             bool            `gorm:"not null" json:"is_paid"`
	Observation        string          `json:"observation"`
	Tags               StringList      `gorm:"not null" json:"tags"`
	Recurrence         string          `json:"recurrence,omitempty"`
	InstallmentGroupID *string         `gorm:"type:uuid;index" json:"installment_group_id,omitempty"`
	InstallmentNumber  int             `json:"installment_number,omitempty"`
	InstallmentCount   int             `json:"installment_count,omitempty"`
	TransferID         *string         `gorm:"type:uuid;index" json:"transfer_id,omitempty"`
}
