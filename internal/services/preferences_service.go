package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
)

// preferencesService keeps the single settings row of each user.
type preferencesService struct {
	db *gorm.DB
}

// NewPreferencesService creates a new PreferencesServicer.
func NewPreferencesService(db *gorm.DB) PreferencesServicer {
	return &preferencesService{db: db}
}

// GetPreferences returns the stored settings or the defaults when the user
// has never saved any.
func (s *preferencesService) GetPreferences(userID string) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := s.db.Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &prefs, nil
}

// UpdatePreferences merges update into the current settings and stores
// them.
func (s *preferencesService) UpdatePreferences(userID string, update PreferencesUpdate) (*models.UserPreferences, error) {
	prefs, err := s.GetPreferences(userID)
	if err != nil {
		return nil, err
	}
	applyPreferences(prefs, update)

	if prefs.ID != "" {
		err = s.db.Save(prefs).Error
	} else {
		// First save; a concurrent first save for the same user turns
		// into an update of the row it created.
		err = s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(preferenceColumns),
		}).Create(prefs).Error
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetPreferences(userID)
}

var preferenceColumns = []string{
	"updated_at",
	"order_sort", "default_view", "show_daily_balance", "start_from_zero",
	"show_cpf_cnpj", "show_photo",
	"show_loss_factor_ingredients", "show_loss_factor_bases", "show_loss_factor_products",
	"notify_new_orders_email", "notify_new_orders_push",
	"notify_delivery_reminders_email", "notify_delivery_reminders_push",
	"notify_customer_messages_email", "notify_customer_messages_push",
	"notify_weekly_reports_email", "notify_weekly_reports_push",
}

func applyPreferences(p *models.UserPreferences, u PreferencesUpdate) {
	setString := func(dst *string, src *string) {
		if src != nil && *src != "" {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&p.OrderSort, u.OrderSort)
	setString(&p.DefaultView, u.DefaultView)
	setBool(&p.ShowDailyBalance, u.ShowDailyBalance)
	setBool(&p.StartFromZero, u.StartFromZero)
	setBool(&p.ShowCpfCnpj, u.ShowCpfCnpj)
	setBool(&p.ShowPhoto, u.ShowPhoto)
	setBool(&p.ShowLossFactorIngredients, u.ShowLossFactorIngredients)
	setBool(&p.ShowLossFactorBases, u.ShowLossFactorBases)
	setBool(&p.ShowLossFactorProducts, u.ShowLossFactorProducts)
	setBool(&p.NotifyNewOrdersEmail, u.NotifyNewOrdersEmail)
	setBool(&p.NotifyNewOrdersPush, u.NotifyNewOrdersPush)
	setBool(&p.NotifyDeliveryRemindersEmail, u.NotifyDeliveryRemindersEmail)
	setBool(&p.NotifyDeliveryRemindersPush, u.NotifyDeliveryRemindersPush)
	setBool(&p.NotifyCustomerMessagesEmail, u.NotifyCustomerMessagesEmail)
	setBool(&p.NotifyCustomerMessagesPush, u.NotifyCustomerMessagesPush)
	setBool(&p.NotifyWeeklyReportsEmail, u.NotifyWeeklyReportsEmail)
	setBool(&p.NotifyWeeklyReportsPush, u.NotifyWeeklyReportsPush)
}
