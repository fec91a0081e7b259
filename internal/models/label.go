package models

// ColoredLabel is a named, colored, per-user label. Names are unique per
// owner among live rows of the same table.
type ColoredLabel struct {
	Base
	UserID string `gorm:"type:uuid;not null;index:,unique,composite:owner_name,where:deleted_at IS NULL" json:"user_id"`
	Name   string `gorm:"not null;index:,unique,composite:owner_name,where:deleted_at IS NULL" json:"name"`
	Color  string `gorm:"not null" json:"color"`
}

// Label gives generic code access to the embedded fields.
func (l *ColoredLabel) Label() *ColoredLabel { return l }

// AgendaStatus is a status column of the production agenda.
type AgendaStatus struct {
	ColoredLabel
}

// AgendaTag marks agenda entries.
type AgendaTag struct {
	ColoredLabel
}

// OrderStatus is a user-defined order workflow state.
type OrderStatus struct {
	ColoredLabel
}

// ProductCategory groups products in the catalog.
type ProductCategory struct {
	Base
	UserID string `gorm:"type:uuid;not null;index:,unique,composite:owner_name,where:deleted_at IS NULL" json:"user_id"`
	Name   string `gorm:"not null;index:,unique,composite:owner_name,where:deleted_at IS NULL" json:"name"`
}
