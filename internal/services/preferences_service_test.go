package services

import (
	"testing"

	"confeitaria/internal/models"
	"confeitaria/internal/testutil"
)

func TestGetPreferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPreferencesService(db)
	user := testutil.CreateTestUser(t, db)

	prefs, err := svc.GetPreferences(user.ID)
	testutil.AssertNoError(t, err)
	if prefs.ID != "" {
		t.Error("expected defaults to be unsaved")
	}
	if prefs.OrderSort != "asc" || prefs.DefaultView != "monthly" || !prefs.ShowDailyBalance {
		t.Errorf("unexpected defaults %+v", prefs)
	}
}

func TestUpdatePreferences(t *testing.T) {
	t.Run("first_update_persists_defaults_and_changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferencesService(db)
		user := testutil.CreateTestUser(t, db)

		sort, off := "desc", false
		prefs, err := svc.UpdatePreferences(user.ID, PreferencesUpdate{OrderSort: &sort, ShowPhoto: &off})
		testutil.AssertNoError(t, err)

		if prefs.ID == "" {
			t.Fatal("expected preferences to be stored")
		}
		if prefs.OrderSort != "desc" || prefs.ShowPhoto {
			t.Errorf("expected changes applied, got %+v", prefs)
		}
		if !prefs.ShowCpfCnpj || prefs.DefaultView != "monthly" {
			t.Error("expected untouched fields to keep defaults")
		}
	})

	t.Run("second_update_keeps_single_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferencesService(db)
		user := testutil.CreateTestUser(t, db)

		sort := "desc"
		first, err := svc.UpdatePreferences(user.ID, PreferencesUpdate{OrderSort: &sort})
		testutil.AssertNoError(t, err)

		view, on := "daily", true
		second, err := svc.UpdatePreferences(user.ID, PreferencesUpdate{DefaultView: &view, StartFromZero: &on})
		testutil.AssertNoError(t, err)

		if second.ID != first.ID {
			t.Error("expected the same row to be updated")
		}
		if second.OrderSort != "desc" || second.DefaultView != "daily" || !second.StartFromZero {
			t.Errorf("unexpected preferences %+v", second)
		}

		var count int64
		db.Model(&models.UserPreferences{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 row, got %d", count)
		}
	})

	t.Run("empty_string_is_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferencesService(db)
		user := testutil.CreateTestUser(t, db)

		empty := ""
		prefs, err := svc.UpdatePreferences(user.ID, PreferencesUpdate{OrderSort: &empty})
		testutil.AssertNoError(t, err)
		if prefs.OrderSort != "asc" {
			t.Errorf("expected asc, got %s", prefs.OrderSort)
		}
	})
}
