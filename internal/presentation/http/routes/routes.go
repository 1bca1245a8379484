package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kogello/mazao-api/internal/config"
	"github.com/kogello/mazao-api/internal/domain/enum"
	domainRepo "github.com/kogello/mazao-api/internal/domain/repository"
	"github.com/kogello/mazao-api/internal/presentation/http/handler"
	"github.com/kogello/mazao-api/internal/presentation/http/middleware"
	"github.com/kogello/mazao-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Branch       *handler.BranchHandler
	Product      *handler.ProductHandler
	Counterparty *handler.CounterpartyHandler
	Invoice      *handler.InvoiceHandler
	Payment      *handler.PaymentHandler
	Inventory    *handler.InventoryHandler
	Dashboard    *handler.DashboardHandler
	User         *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	// Auth/Profile
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	// Branches (reads open, writes admin-only in the service layer)
	branches := protected.Group("/branches")
	{
		branches.GET("", h.Branch.List)
		branches.GET("/:id", h.Branch.Get)
		branches.POST("", middleware.RequireRole(enum.RoleAdmin), h.Branch.Create)
		branches.PUT("/:id", middleware.RequireRole(enum.RoleAdmin), h.Branch.Update)
		branches.DELETE("/:id", middleware.RequireRole(enum.RoleAdmin), h.Branch.Delete)
	}

	// Products
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", middleware.RequireRole(enum.RoleAdmin), h.Product.Create)
		products.PUT("/:id", middleware.RequireRole(enum.RoleAdmin), h.Product.Update)
		products.DELETE("/:id", middleware.RequireRole(enum.RoleAdmin), h.Product.Delete)
	}

	// Counterparties, their ledgers and payments. Supplier-side access
	// checks live in the services, keyed off the acting user.
	counterparties := protected.Group("/counterparties")
	{
		counterparties.GET("", h.Counterparty.List)
		counterparties.POST("", middleware.Idempotency(idempotency), h.Counterparty.Create)
		counterparties.GET("/:id", h.Counterparty.Get)
		counterparties.PUT("/:id", h.Counterparty.Update)
		counterparties.DELETE("/:id", h.Counterparty.Delete)
		counterparties.GET("/:id/ledger", h.Counterparty.GetLedger)
		counterparties.GET("/:id/unpaid-invoices", h.Payment.ListUnpaidInvoices)
		counterparties.POST("/:id/payments/preview", h.Payment.PreviewPayment)
		counterparties.POST("/:id/payments", middleware.IdempotencyRequired(idempotency), h.Payment.ProcessPayment)
	}

	// Invoices
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("", middleware.Idempotency(idempotency), h.Invoice.Create)
	}

	// Inventory
	protected.GET("/inventory", h.Inventory.List)

	// Users (Admin)
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(enum.RoleAdmin))
	{
		users.GET("", h.User.List)
		users.PUT("/:id", h.User.Update)
	}
}
