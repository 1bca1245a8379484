package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/kogello/mazao-api/internal/application/service"
	"github.com/kogello/mazao-api/internal/config"
	"github.com/kogello/mazao-api/internal/infrastructure/database"
	"github.com/kogello/mazao-api/internal/infrastructure/repository"
	"github.com/kogello/mazao-api/internal/presentation/http/handler"
	"github.com/kogello/mazao-api/internal/presentation/http/routes"
	"github.com/kogello/mazao-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	counterpartyRepo := repository.NewCounterpartyRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTxManager(db)

	// Initialize services
	notifier := service.NewLogNotifier()
	authService := service.NewAuthService(userRepo, branchRepo, jwtManager)
	userService := service.NewUserService(userRepo, branchRepo)
	branchService := service.NewBranchService(branchRepo)
	productService := service.NewProductService(productRepo)
	inventoryService := service.NewInventoryService(inventoryRepo)
	counterpartyService := service.NewCounterpartyService(counterpartyRepo, invoiceRepo, paymentRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, paymentRepo, counterpartyRepo, productRepo, txManager)
	paymentService := service.NewPaymentService(invoiceRepo, paymentRepo, counterpartyRepo, txManager, notifier)
	ledgerService := service.NewLedgerService(counterpartyRepo, invoiceRepo, paymentRepo)
	dashboardService := service.NewDashboardService(counterpartyRepo, productRepo, invoiceRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Branch:       handler.NewBranchHandler(branchService),
		Product:      handler.NewProductHandler(productService),
		Counterparty: handler.NewCounterpartyHandler(counterpartyService, ledgerService),
		Invoice:      handler.NewInvoiceHandler(invoiceService),
		Payment:      handler.NewPaymentHandler(paymentService),
		Inventory:    handler.NewInventoryHandler(inventoryService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		User:         handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
