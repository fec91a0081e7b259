// Package server assembles services, handlers and middleware into the
// HTTP router.
package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"confeitaria/internal/config"
	"confeitaria/internal/dates"
	"confeitaria/internal/handlers"
	"confeitaria/internal/logger"
	"confeitaria/internal/middleware"
	"confeitaria/internal/models"
	"confeitaria/internal/services"
	"confeitaria/internal/storage"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Clock       *dates.Clock
	AvatarStore storage.AvatarStore
}

// NewRouter wires every service and handler and registers the routes under
// /api/v1.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	db := d.DB

	// Services
	userService := services.NewUserService(db)
	profileService := services.NewProfileService(db, d.AvatarStore, cfg.AvatarMaxBytes, logger.Named("profile"))
	inviteService := services.NewInviteService(db, profileService, cfg.ConsistencyMode, logger.Named("invite"))
	preferencesService := services.NewPreferencesService(db)
	activityService := services.NewActivityService(db)
	orderService := services.NewOrderService(db, cfg.CurrencyParsePolicy, logger.Named("order"))
	productService := services.NewProductService(db)
	productCategoryService := services.NewProductCategoryService(db)
	customerService := services.NewCustomerService(db)
	menuService := services.NewMenuService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewFinancialCategoryService(db)
	transactionService := services.NewTransactionService(db, accountService)
	transferService := services.NewTransferService(db, accountService, cfg.ConsistencyMode, logger.Named("transfer"))

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, activityService)
	profileHandler := handlers.NewProfileHandler(profileService, activityService, cfg.AvatarMaxBytes)
	inviteHandler := handlers.NewInviteHandler(inviteService, activityService)
	preferencesHandler := handlers.NewPreferencesHandler(preferencesService, activityService)
	activityHandler := handlers.NewActivityHandler(activityService)
	orderHandler := handlers.NewOrderHandler(orderService, activityService, d.Clock)
	orderStatusHandler := handlers.NewLabelHandler(services.NewOrderStatusService(db), activityService, "order_status", models.ActivityOrder)
	agendaStatusHandler := handlers.NewLabelHandler(services.NewAgendaStatusService(db), activityService, "agenda_status", models.ActivitySettings)
	agendaTagHandler := handlers.NewLabelHandler(services.NewAgendaTagService(db), activityService, "agenda_tag", models.ActivitySettings)
	productHandler := handlers.NewProductHandler(productService, productCategoryService, activityService)
	customerHandler := handlers.NewCustomerHandler(customerService, activityService)
	menuHandler := handlers.NewMenuHandler(menuService, activityService)
	accountHandler := handlers.NewAccountHandler(accountService, activityService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, activityService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, activityService, d.Clock)
	transferHandler := handlers.NewTransferHandler(transferService, activityService, d.Clock)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Locally stored avatars are served by the API itself.
	if _, ok := d.AvatarStore.(*storage.LocalAvatarStore); ok && strings.HasPrefix(cfg.AvatarPublicBaseURL, "/") {
		router.Static(cfg.AvatarPublicBaseURL, cfg.AvatarDir)
	}

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.UpdateProfile)
	protected.POST("/profile/avatar", profileHandler.UploadAvatar)

	protected.GET("/settings/preferences", preferencesHandler.GetPreferences)
	protected.PUT("/settings/preferences", preferencesHandler.UpdatePreferences)

	protected.GET("/activities", activityHandler.ListActivities)

	protected.POST("/users/invites", inviteHandler.InviteMember)

	orders := protected.Group("/orders")
	orders.GET("/statuses", orderStatusHandler.List)
	orders.POST("/statuses", orderStatusHandler.Create)
	orders.PATCH("/statuses/:id", orderStatusHandler.Update)
	orders.DELETE("/statuses/:id", orderStatusHandler.Delete)
	orders.GET("", orderHandler.ListOrders)
	orders.POST("", orderHandler.CreateOrder)
	orders.PATCH("/:id", orderHandler.UpdateOrder)
	orders.DELETE("/:id", orderHandler.DeleteOrder)

	agenda := protected.Group("/agenda")
	agenda.GET("/statuses", agendaStatusHandler.List)
	agenda.POST("/statuses", agendaStatusHandler.Create)
	agenda.PATCH("/statuses/:id", agendaStatusHandler.Update)
	agenda.DELETE("/statuses/:id", agendaStatusHandler.Delete)
	agenda.GET("/tags", agendaTagHandler.List)
	agenda.POST("/tags", agendaTagHandler.Create)
	agenda.PATCH("/tags/:id", agendaTagHandler.Update)
	agenda.DELETE("/tags/:id", agendaTagHandler.Delete)

	products := protected.Group("/products")
	products.GET("/categories", productHandler.ListCategories)
	products.POST("/categories", productHandler.CreateCategory)
	products.DELETE("/categories/:id", productHandler.DeleteCategory)
	products.GET("", productHandler.ListProducts)
	products.POST("", productHandler.CreateProduct)
	products.PUT("/:id", productHandler.UpdateProduct)
	products.DELETE("/:id", productHandler.DeleteProduct)

	customers := protected.Group("/customers")
	customers.GET("", customerHandler.ListCustomers)
	customers.POST("", customerHandler.CreateCustomer)
	customers.GET("/:id", customerHandler.GetCustomer)
	customers.PUT("/:id", customerHandler.UpdateCustomer)
	customers.DELETE("/:id", customerHandler.DeleteCustomer)

	menus := protected.Group("/menus")
	menus.GET("", menuHandler.ListMenus)
	menus.POST("", menuHandler.CreateMenu)
	menus.GET("/:id", menuHandler.GetMenu)
	menus.PUT("/:id", menuHandler.UpdateMenu)
	menus.DELETE("/:id", menuHandler.DeleteMenu)
	menus.POST("/:id/duplicate", menuHandler.DuplicateMenu)

	financeiro := protected.Group("/financeiro")
	financeiro.GET("/accounts", accountHandler.ListAccounts)
	financeiro.POST("/accounts", accountHandler.CreateAccount)
	financeiro.GET("/accounts/:id", accountHandler.GetAccount)
	financeiro.PUT("/accounts/:id", accountHandler.UpdateAccount)

	financeiro.GET("/categories", categoryHandler.ListCategories)
	financeiro.POST("/categories", categoryHandler.CreateCategory)
	financeiro.PATCH("/categories/:id", categoryHandler.UpdateCategory)
	financeiro.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	financeiro.GET("/transactions", transactionHandler.ListTransactions)
	financeiro.POST("/transactions", transactionHandler.CreateTransaction)
	financeiro.GET("/transactions/:id", transactionHandler.GetTransaction)
	financeiro.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)
	financeiro.PATCH("/transactions/:id/paid", transactionHandler.SetPaid)
	financeiro.POST("/installments/preview", transactionHandler.PreviewInstallments)
	financeiro.GET("/summary", transactionHandler.Summary)

	financeiro.POST("/transfers", transferHandler.CreateTransfer)

	return router
}
