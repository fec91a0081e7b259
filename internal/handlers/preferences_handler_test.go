package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"confeitaria/internal/models"
	"confeitaria/internal/services"
)

type mockPreferencesService struct {
	updateFn func(userID string, update services.PreferencesUpdate) (*models.UserPreferences, error)
}

func (m *mockPreferencesService) GetPreferences(userID string) (*models.UserPreferences, error) {
	return models.DefaultPreferences(userID), nil
}

func (m *mockPreferencesService) UpdatePreferences(userID string, update services.PreferencesUpdate) (*models.UserPreferences, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, update)
	}
	return models.DefaultPreferences(userID), nil
}

var _ services.PreferencesServicer = (*mockPreferencesService)(nil)

func setupPreferencesRouter(handler *PreferencesHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/preferences", handler.GetPreferences)
	auth.PUT("/preferences", handler.UpdatePreferences)
	return r
}

func TestPreferencesHandler_GetPreferences(t *testing.T) {
	r := setupPreferencesRouter(NewPreferencesHandler(&mockPreferencesService{}, nil))

	rec := doRequest(r, "GET", "/preferences", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["order_sort"] != "asc" || result["default_view"] != "monthly" {
		t.Errorf("expected defaults, got %v", result)
	}
}

func TestPreferencesHandler_UpdatePreferences(t *testing.T) {
	t.Run("passes only given fields", func(t *testing.T) {
		var got services.PreferencesUpdate
		prefs := &mockPreferencesService{
			updateFn: func(userID string, update services.PreferencesUpdate) (*models.UserPreferences, error) {
				got = update
				return models.DefaultPreferences(userID), nil
			},
		}
		activities := &mockActivityService{}
		r := setupPreferencesRouter(NewPreferencesHandler(prefs, activities))

		rec := doRequest(r, "PUT", "/preferences", `{"order_sort":"desc","notify_new_orders_push":false}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.OrderSort == nil || *got.OrderSort != "desc" {
			t.Error("expected order_sort desc")
		}
		if got.NotifyNewOrdersPush == nil || *got.NotifyNewOrdersPush {
			t.Error("expected notify_new_orders_push false")
		}
		if got.ShowDailyBalance != nil {
			t.Error("expected show_daily_balance untouched")
		}
		if logged := activities.logged(); len(logged) != 1 || logged[0].Category != models.ActivitySettings {
			t.Errorf("unexpected activity %+v", logged)
		}
	})

	t.Run("returns 400 on unknown sort", func(t *testing.T) {
		r := setupPreferencesRouter(NewPreferencesHandler(&mockPreferencesService{}, nil))

		rec := doRequest(r, "PUT", "/preferences", `{"order_sort":"random"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
