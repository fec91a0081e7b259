package models

// FinancialCategory classifies transactions of one type.
type FinancialCategory struct {
	Base
	UserID string          `gorm:"type:uuid;not null;index:,unique,composite:owner_name,where:deleted_at IS NULL" json:"user_id"`
	Name   string          `gorm:"not null;index:,unique,composite:owner_name,where:deleted_at IS NULL" json:"name"`
	Type   TransactionType `gorm:"not null" json:"type"`
	Color  string          `json:"color"`
}
