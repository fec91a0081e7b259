package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"confeitaria/internal/models"
	"confeitaria/internal/uuid"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// CreateTestUser creates a user with a hashed password, a unique email and
// an admin profile in a fresh workspace.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithRole(t, db, email, models.RoleAdmin)
}

// CreateTestUserWithRole creates a user and profile with the given role.
func CreateTestUserWithRole(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	profile := &models.Profile{
		ID:          user.ID,
		Email:       email,
		FullName:    "Test User",
		Role:        role,
		WorkspaceID: uuid.New(),
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return user
}

// CreateTestAccount creates an active checking account.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string) *models.FinancialAccount {
	t.Helper()

	account := &models.FinancialAccount{
		Owned:    models.Owned{UserID: userID},
		Name:     fmt.Sprintf("Conta %d", nextID()),
		Type:     models.AccountTypeChecking,
		Color:    "#22C55E",
		IsActive: true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestFinancialCategory creates a category of the given type.
func CreateTestFinancialCategory(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType) *models.FinancialCategory {
	t.Helper()

	category := &models.FinancialCategory{
		UserID: userID,
		Name:   fmt.Sprintf("Categoria %d", nextID()),
		Type:   txType,
		Color:  "#3B82F6",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction books a paid transaction of the given type. amount
// is the absolute value in centavos; the sign follows txType.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, accountID string, txType models.TransactionType, amount int64) *models.FinancialTransaction {
	t.Helper()

	tx := &models.FinancialTransaction{
		Owned:       models.Owned{UserID: userID},
		Description: fmt.Sprintf("Lançamento %d", nextID()),
		Amount:      txType.Sign() * amount,
		Type:        txType,
		Date:        models.NewDate(time.Now()),
		AccountID:   accountID,
		IsPaid:      true,
		Tags:        models.StringList{},
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestOrder creates a pending order delivered on the given date.
func CreateTestOrder(t *testing.T, db *gorm.DB, userID string, delivery time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		Owned:        models.Owned{UserID: userID},
		Customer:     fmt.Sprintf("Cliente %d", nextID()),
		Product:      "Bolo de cenoura",
		DeliveryDate: models.NewDate(delivery),
		Status:       models.OrderStatusPending,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create test order: %v", err)
	}
	return order
}

// CreateTestCustomer creates a customer with a unique name.
func CreateTestCustomer(t *testing.T, db *gorm.DB, userID string) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		Owned: models.Owned{UserID: userID},
		Name:  fmt.Sprintf("Cliente %d", nextID()),
		Phone: "(11) 99999-0000",
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}
	return customer
}

// CreateTestProduct creates a product priced in centavos.
func CreateTestProduct(t *testing.T, db *gorm.DB, userID string, price int64) *models.Product {
	t.Helper()

	product := &models.Product{
		Owned:        models.Owned{UserID: userID},
		Name:         fmt.Sprintf("Produto %d", nextID()),
		Category:     "Bolos",
		SellingPrice: price,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// CreateTestMenu creates an active menu with two items.
func CreateTestMenu(t *testing.T, db *gorm.DB, userID string) *models.Menu {
	t.Helper()

	menu := &models.Menu{
		Owned:  models.Owned{UserID: userID},
		Name:   fmt.Sprintf("Cardápio %d", nextID()),
		Active: true,
		Items: []models.MenuItem{
			{Name: "Brigadeiro", Price: 350, Position: 0},
			{Name: "Beijinho", Price: 350, Position: 1},
		},
	}
	if err := db.Create(menu).Error; err != nil {
		t.Fatalf("failed to create test menu: %v", err)
	}
	return menu
}
