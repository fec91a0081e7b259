package models

// UserPreferences is the single settings row of a user. It replaces the
// settings the dashboard used to keep in browser storage.
type UserPreferences struct {
	Base
	UserID string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	OrderSort        string `gorm:"not null" json:"order_sort"`
	DefaultView      string `gorm:"not null" json:"default_view"`
	ShowDailyBalance bool   `gorm:"not null" json:"show_daily_balance"`
	StartFromZero    bool   `gorm:"not null" json:"start_from_zero"`

	ShowCpfCnpj bool `gorm:"not null" json:"show_cpf_cnpj"`
	ShowPhoto   bool `gorm:"not null" json:"show_photo"`

	ShowLossFactorIngredients bool `gorm:"not null" json:"show_loss_factor_ingredients"`
	ShowLossFactorBases       bool `gorm:"not null" json:"show_loss_factor_bases"`
	ShowLossFactorProducts    bool `gorm:"not null" json:"show_loss_factor_products"`

	NotifyNewOrdersEmail         bool `gorm:"not null" json:"notify_new_orders_email"`
	NotifyNewOrdersPush          bool `gorm:"not null" json:"notify_new_orders_push"`
	NotifyDeliveryRemindersEmail bool `gorm:"not null" json:"notify_delivery_reminders_email"`
	NotifyDeliveryRemindersPush  bool `gorm:"not null" json:"notify_delivery_reminders_push"`
	NotifyCustomerMessagesEmail  bool `gorm:"not null" json:"notify_customer_messages_email"`
	NotifyCustomerMessagesPush   bool `gorm:"not null" json:"notify_customer_messages_push"`
	NotifyWeeklyReportsEmail     bool `gorm:"not null" json:"notify_weekly_reports_email"`
	NotifyWeeklyReportsPush      bool `gorm:"not null" json:"notify_weekly_reports_push"`
}

// DefaultPreferences returns the settings a user starts with.
func DefaultPreferences(userID string) *UserPreferences {
	return &UserPreferences{
		UserID:                       userID,
		OrderSort:                    "asc",
		DefaultView:                  "monthly",
		ShowDailyBalance:             true,
		ShowCpfCnpj:                  true,
		ShowPhoto:                    true,
		ShowLossFactorIngredients:    true,
		ShowLossFactorBases:          true,
		ShowLossFactorProducts:       true,
		NotifyNewOrdersEmail:         true,
		NotifyNewOrdersPush:          true,
		NotifyDeliveryRemindersEmail: true,
		NotifyDeliveryRemindersPush:  true,
		NotifyWeeklyReportsEmail:     true,
	}
}

// AllModels lists every persisted model in dependency order. Tests use it
// for AutoMigrate; production uses the SQL migrations.
func AllModels() []any {
	return []any{
		&User{},
		&Profile{},
		&UserPreferences{},
		&Activity{},
		&Customer{},
		&Product{},
		&ProductCategory{},
		&Order{},
		&OrderStatus{},
		&AgendaStatus{},
		&AgendaTag{},
		&Menu{},
		&MenuItem{},
		&FinancialAccount{},
		&FinancialCategory{},
		&FinancialTransaction{},
	}
}
