package models

// ActivityCategory groups activities in the feed.
type ActivityCategory string

const (
	ActivityOrder     ActivityCategory = "pedido"
	ActivityProduct   ActivityCategory = "produto"
	ActivityCustomer  ActivityCategory = "cliente"
	ActivitySettings  ActivityCategory = "configuracao"
	ActivityFinancial ActivityCategory = "financeiro"
	ActivityUser      ActivityCategory = "usuario"
)

// Activity records a user-visible change for the activities feed.
type Activity struct {
	Base
	Owned
	Category     ActivityCategory `gorm:"not null;index" json:"category"`
	Action       string           `gorm:"not null" json:"action"`
	Description  string           `json:"description"`
	ResourceType string           `json:"resource_type"`
	ResourceID   string           `json:"resource_id"`
	IPAddress    string           `json:"-"`
	Changes      string           `json:"changes,omitempty"`
}
