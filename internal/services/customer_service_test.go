package services

import (
	"testing"

	"confeitaria/internal/testutil"
)

func TestCustomers(t *testing.T) {
	t.Run("create_and_get", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCustomerService(db)
		user := testutil.CreateTestUser(t, db)

		created, err := svc.CreateCustomer(user.ID, CustomerInput{Name: " Maria Souza ", Phone: "(11) 98888-7777", CpfCnpj: "123.456.789-00"})
		testutil.AssertNoError(t, err)
		if created.Name != "Maria Souza" {
			t.Errorf("expected trimmed name, got %q", created.Name)
		}

		got, err := svc.GetCustomer(user.ID, created.ID)
		testutil.AssertNoError(t, err)
		if got.CpfCnpj != "123.456.789-00" {
			t.Errorf("expected cpf to round trip, got %q", got.CpfCnpj)
		}
	})

	t.Run("name_required", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCustomerService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCustomer(user.ID, CustomerInput{Phone: "123"})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("search", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCustomerService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCustomer(user.ID, CustomerInput{Name: "Joana Lima", Email: "joana@example.com"})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCustomer(user.ID, CustomerInput{Name: "Pedro Alves"})
		testutil.AssertNoError(t, err)

		found, err := svc.ListCustomers(user.ID, "JOANA")
		testutil.AssertNoError(t, err)
		if len(found) != 1 || found[0].Name != "Joana Lima" {
			t.Errorf("expected Joana only, got %+v", found)
		}

		all, err := svc.ListCustomers(user.ID, "")
		testutil.AssertNoError(t, err)
		if len(all) != 2 {
			t.Errorf("expected 2 customers, got %d", len(all))
		}
	})

	t.Run("update_delete_isolation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCustomerService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		customer := testutil.CreateTestCustomer(t, db, user.ID)

		_, err := svc.GetCustomer(other.ID, customer.ID)
		testutil.AssertAppError(t, err, "NOT_FOUND")

		updated, err := svc.UpdateCustomer(user.ID, customer.ID, CustomerInput{Name: "Novo Nome", Notes: "sem lactose"})
		testutil.AssertNoError(t, err)
		if updated.Name != "Novo Nome" || updated.Phone != "" || updated.Notes != "sem lactose" {
			t.Errorf("unexpected customer after update %+v", updated)
		}

		testutil.AssertAppError(t, svc.DeleteCustomer(other.ID, customer.ID), "NOT_FOUND")
		testutil.AssertNoError(t, svc.DeleteCustomer(user.ID, customer.ID))
	})
}
