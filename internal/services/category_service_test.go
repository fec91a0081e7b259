package services

import (
	"testing"

	"confeitaria/internal/models"
	"confeitaria/internal/testutil"
)

func TestCreateFinancialCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFinancialCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		category, err := svc.CreateCategory(user.ID, "Insumos", models.TransactionTypeDespesa, "#EF4444")
		testutil.AssertNoError(t, err)

		if category.ID == "" {
			t.Fatal("expected category ID")
		}
		if category.Type != models.TransactionTypeDespesa {
			t.Errorf("expected despesa, got %s", category.Type)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFinancialCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Vendas", models.TransactionTypeReceita, "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Vendas", models.TransactionTypeDespesa, "")
		testutil.AssertAppError(t, err, "CONFLICT")
	})

	t.Run("same_name_other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFinancialCategoryService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user1.ID, "Vendas", models.TransactionTypeReceita, "")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory(user2.ID, "Vendas", models.TransactionTypeReceita, "")
		testutil.AssertNoError(t, err)
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFinancialCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Outros", "transfer", "")
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestListFinancialCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFinancialCategoryService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestFinancialCategory(t, db, user.ID, models.TransactionTypeReceita)
	testutil.CreateTestFinancialCategory(t, db, user.ID, models.TransactionTypeDespesa)
	testutil.CreateTestFinancialCategory(t, db, user.ID, models.TransactionTypeDespesa)

	all, err := svc.ListCategories(user.ID, nil)
	testutil.AssertNoError(t, err)
	if len(all) != 3 {
		t.Errorf("expected 3 categories, got %d", len(all))
	}

	despesa := models.TransactionTypeDespesa
	filtered, err := svc.ListCategories(user.ID, &despesa)
	testutil.AssertNoError(t, err)
	if len(filtered) != 2 {
		t.Errorf("expected 2 despesa categories, got %d", len(filtered))
	}
}

func TestUpdateFinancialCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFinancialCategoryService(db)
	user := testutil.CreateTestUser(t, db)
	a := testutil.CreateTestFinancialCategory(t, db, user.ID, models.TransactionTypeDespesa)
	b := testutil.CreateTestFinancialCategory(t, db, user.ID, models.TransactionTypeDespesa)

	name := "Embalagens"
	updated, err := svc.UpdateCategory(user.ID, a.ID, &name, nil)
	testutil.AssertNoError(t, err)
	if updated.Name != "Embalagens" {
		t.Errorf("expected name Embalagens, got %s", updated.Name)
	}

	_, err = svc.UpdateCategory(user.ID, b.ID, &name, nil)
	testutil.AssertAppError(t, err, "CONFLICT")

	other := testutil.CreateTestUser(t, db)
	_, err = svc.UpdateCategory(other.ID, a.ID, &name, nil)
	testutil.AssertAppError(t, err, "NOT_FOUND")
}

func TestDeleteFinancialCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFinancialCategoryService(db)
	user := testutil.CreateTestUser(t, db)
	category := testutil.CreateTestFinancialCategory(t, db, user.ID, models.TransactionTypeReceita)

	other := testutil.CreateTestUser(t, db)
	testutil.AssertAppError(t, svc.DeleteCategory(other.ID, category.ID), "NOT_FOUND")

	testutil.AssertNoError(t, svc.DeleteCategory(user.ID, category.ID))

	// The name is free again once the category is deleted.
	_, err := svc.CreateCategory(user.ID, category.Name, models.TransactionTypeReceita, "")
	testutil.AssertNoError(t, err)
}
