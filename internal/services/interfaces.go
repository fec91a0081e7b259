package services

import (
	"context"
	"time"

	"confeitaria/internal/dates"
	"confeitaria/internal/models"
	"confeitaria/internal/money"
	"confeitaria/internal/pagination"
)

// UserServicer defines the contract for identity and login logic.
type UserServicer interface {
	Register(email, password, fullName string) (*models.User, *models.Profile, error)
	GetUserByID(id string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// ProfileUpdate holds the editable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	FullName *string
	Phone    *string
	Address  *string
	City     *string
	State    *string
	ZipCode  *string
}

// ProfileServicer defines the contract for profile reads, edits and avatars.
type ProfileServicer interface {
	GetProfile(userID string) (*models.Profile, error)
	UpdateProfile(userID string, update ProfileUpdate) (*models.Profile, error)
	UploadAvatar(ctx context.Context, userID string, data []byte) (*models.Profile, error)
}

// InviteInput is a request to add a member to the caller's workspace.
type InviteInput struct {
	Email    string
	Role     models.Role
	FullName string
}

// InviteResult is returned once; the temporary password is never stored in clear.
type InviteResult struct {
	ID                string      `json:"id"`
	Email             string      `json:"email"`
	Role              models.Role `json:"role"`
	FullName          string      `json:"full_name"`
	TemporaryPassword string      `json:"temporaryPassword"`
}

// InviteServicer defines the contract for workspace invitations.
type InviteServicer interface {
	InviteMember(callerID string, input InviteInput) (*InviteResult, error)
}

// PreferencesUpdate holds the editable settings. Nil fields are left unchanged.
type PreferencesUpdate struct {
	OrderSort        *string `json:"order_sort" binding:"omitempty,order_sort"`
	DefaultView      *string `json:"default_view" binding:"omitempty,default_view"`
	ShowDailyBalance *bool   `json:"show_daily_balance"`
	StartFromZero    *bool   `json:"start_from_zero"`

	ShowCpfCnpj *bool `json:"show_cpf_cnpj"`
	ShowPhoto   *bool `json:"show_photo"`

	ShowLossFactorIngredients *bool `json:"show_loss_factor_ingredients"`
	ShowLossFactorBases       *bool `json:"show_loss_factor_bases"`
	ShowLossFactorProducts    *bool `json:"show_loss_factor_products"`

	NotifyNewOrdersEmail         *bool `json:"notify_new_orders_email"`
	NotifyNewOrdersPush          *bool `json:"notify_new_orders_push"`
	NotifyDeliveryRemindersEmail *bool `json:"notify_delivery_reminders_email"`
	NotifyDeliveryRemindersPush  *bool `json:"notify_delivery_reminders_push"`
	NotifyCustomerMessagesEmail  *bool `json:"notify_customer_messages_email"`
	NotifyCustomerMessagesPush   *bool `json:"notify_customer_messages_push"`
	NotifyWeeklyReportsEmail     *bool `json:"notify_weekly_reports_email"`
	NotifyWeeklyReportsPush      *bool `json:"notify_weekly_reports_push"`
}

// PreferencesServicer defines the contract for per-user settings.
type PreferencesServicer interface {
	GetPreferences(userID string) (*models.UserPreferences, error)
	UpdatePreferences(userID string, update PreferencesUpdate) (*models.UserPreferences, error)
}

// ActivityEntry describes one change to record in the activities feed.
type ActivityEntry struct {
	UserID       string
	Category     models.ActivityCategory
	Action       string
	Description  string
	ResourceType string
	ResourceID   string
	IPAddress    string
	Changes      map[string]any
}

// ActivityFilter narrows the activities feed.
type ActivityFilter struct {
	Category *models.ActivityCategory
	Search   string
}

// ActivityServicer defines the contract for the activities feed.
type ActivityServicer interface {
	Log(entry ActivityEntry)
	ListActivities(userID string, filter ActivityFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Activity], error)
}

// OrderInput holds the fields of a new order. Value is the raw currency
// string as typed by the user, e.g. "R$ 1.000,00".
type OrderInput struct {
	Customer     string
	CustomerID   *string
	Product      string
	ProductID    *string
	DeliveryDate models.Date
	Status       string
	Phone        string
	Value        string
	Notes        string
}

// OrderUpdate holds the editable order fields. Nil fields are left unchanged.
type OrderUpdate struct {
	Customer     *string
	CustomerID   *string
	Product      *string
	ProductID    *string
	DeliveryDate *models.Date
	Status       *string
	Phone        *string
	Value        *string
	Notes        *string
}

// OrderFilter narrows and sorts the order list. An empty Sort falls back to
// the user's stored preference.
type OrderFilter struct {
	Sort   string
	Range  *dates.Range
	Status string
}

// OrderServicer defines the contract for orders.
type OrderServicer interface {
	ListOrders(userID string, filter OrderFilter) ([]models.Order, error)
	CreateOrder(userID string, input OrderInput) (*models.Order, error)
	UpdateOrder(userID, orderID string, update OrderUpdate) (*models.Order, error)
	DeleteOrder(userID, orderID string) error
}

// LabelServicer defines the contract shared by agenda statuses, agenda tags
// and order statuses.
type LabelServicer[T any] interface {
	List(userID string) ([]T, error)
	Create(userID, name, color string) (*T, error)
	Update(userID, id string, name, color *string) (*T, error)
	Delete(userID, id string) error
}

// ProductCategoryServicer defines the contract for product categories.
type ProductCategoryServicer interface {
	ListCategories(userID string) ([]models.ProductCategory, error)
	CreateCategory(userID, name string) (*models.ProductCategory, error)
	DeleteCategory(userID, categoryID string) error
}

// ProductInput holds the fields of a product. SellingPrice is in centavos.
type ProductInput struct {
	Name         string
	Description  string
	Category     string
	SellingPrice int64
}

// ProductServicer defines the contract for finished products.
type ProductServicer interface {
	ListProducts(userID string) ([]models.Product, error)
	CreateProduct(userID string, input ProductInput) (*models.Product, error)
	UpdateProduct(userID, productID string, input ProductInput) (*models.Product, error)
	DeleteProduct(userID, productID string) error
}

// CustomerInput holds the fields of a customer.
type CustomerInput struct {
	Name     string
	Phone    string
	Email    string
	CpfCnpj  string
	PhotoURL string
	Notes    string
}

// CustomerServicer defines the contract for customers.
type CustomerServicer interface {
	ListCustomers(userID, search string) ([]models.Customer, error)
	GetCustomer(userID, customerID string) (*models.Customer, error)
	CreateCustomer(userID string, input CustomerInput) (*models.Customer, error)
	UpdateCustomer(userID, customerID string, input CustomerInput) (*models.Customer, error)
	DeleteCustomer(userID, customerID string) error
}

// MenuItemInput is one item of a menu request. Price is in centavos.
type MenuItemInput struct {
	Name        string
	Description string
	Price       int64
	Category    string
	ImageURL    string
}

// MenuInput holds the fields of a menu. Items replace any existing items.
type MenuInput struct {
	Name        string
	Description string
	Active      bool
	Items       []MenuItemInput
}

// MenuServicer defines the contract for menus (cardápios).
type MenuServicer interface {
	ListMenus(userID string) ([]models.Menu, error)
	GetMenu(userID, menuID string) (*models.Menu, error)
	CreateMenu(userID string, input MenuInput) (*models.Menu, error)
	UpdateMenu(userID, menuID string, input MenuInput) (*models.Menu, error)
	DeleteMenu(userID, menuID string) error
	DuplicateMenu(userID, menuID string) (*models.Menu, error)
}

// AccountUpdate holds the editable account fields. Nil fields are left unchanged.
type AccountUpdate struct {
	Name     *string
	Color    *string
	IsActive *bool
}

// AccountServicer defines the contract for financial accounts.
type AccountServicer interface {
	CreateAccount(userID, name string, accountType models.AccountType, color string) (*models.FinancialAccount, error)
	ListAccounts(userID string) ([]models.FinancialAccount, error)
	GetAccountByID(userID, accountID string) (*models.FinancialAccount, error)
	UpdateAccount(userID, accountID string, update AccountUpdate) (*models.FinancialAccount, error)
}

// FinancialCategoryServicer defines the contract for financial categories.
type FinancialCategoryServicer interface {
	ListCategories(userID string, txType *models.TransactionType) ([]models.FinancialCategory, error)
	CreateCategory(userID, name string, txType models.TransactionType, color string) (*models.FinancialCategory, error)
	UpdateCategory(userID, categoryID string, name, color *string) (*models.FinancialCategory, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionInput is a transaction as submitted by the transaction form.
// Amount is the absolute value in centavos; the stored sign follows Type.
type TransactionInput struct {
	Type              models.TransactionType
	Description       string
	Amount            int64
	Date              models.Date
	AccountID         string
	CategoryID        *string
	IsPaid            bool
	Observation       string
	Tags              []string
	Recurrence        string
	Installments      int
	InstallmentPeriod money.Period
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *models.Date
	ToDate     *models.Date
	Type       *models.TransactionType
	AccountID  *string
	CategoryID *string
	IsPaid     *bool
	Search     string
}

// PeriodSummary totals the paid transactions of a date range.
type PeriodSummary struct {
	Receitas int64 `json:"receitas"`
	Despesas int64 `json:"despesas"`
	Saldo    int64 `json:"saldo"`
}

// TransactionServicer defines the contract for the ledger.
type TransactionServicer interface {
	CreateTransaction(userID string, input TransactionInput) ([]models.FinancialTransaction, error)
	ListTransactions(userID string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.FinancialTransaction], error)
	GetTransactionByID(userID, transactionID string) (*models.FinancialTransaction, error)
	SetPaid(userID, transactionID string, paid bool) (*models.FinancialTransaction, error)
	DeleteTransaction(userID, transactionID string) error
	PreviewInstallments(total int64, count int, period money.Period, origin time.Time) ([]money.Installment, error)
	Summarize(userID string, from, to models.Date) (*PeriodSummary, error)
}

// TransferInput moves Amount centavos from one account to another.
type TransferInput struct {
	Description string
	Amount      int64
	Date        models.Date
	FromAccount string
	ToAccount   string
	Observation string
	Tags        []string
}

// TransferResult holds both legs of a completed transfer.
type TransferResult struct {
	Success bool                         `json:"success"`
	Despesa *models.FinancialTransaction `json:"despesa"`
	Receita *models.FinancialTransaction `json:"receita"`
	Message string                       `json:"message"`
}

// TransferServicer defines the contract for account-to-account transfers.
type TransferServicer interface {
	CreateTransfer(userID string, input TransferInput) (*TransferResult, error)
}
