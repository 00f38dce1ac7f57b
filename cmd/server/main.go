package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/shivaccounts/backend/internal/application/billing"
	catalogapp "github.com/shivaccounts/backend/internal/application/catalog"
	identityapp "github.com/shivaccounts/backend/internal/application/identity"
	ledgerapp "github.com/shivaccounts/backend/internal/application/ledger"
	partnerapp "github.com/shivaccounts/backend/internal/application/partner"
	reportapp "github.com/shivaccounts/backend/internal/application/report"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/infrastructure/auth"
	"github.com/shivaccounts/backend/internal/infrastructure/cache"
	"github.com/shivaccounts/backend/internal/infrastructure/config"
	"github.com/shivaccounts/backend/internal/infrastructure/logger"
	"github.com/shivaccounts/backend/internal/infrastructure/persistence"
	"github.com/shivaccounts/backend/internal/interfaces/http/handler"
	"github.com/shivaccounts/backend/internal/interfaces/http/middleware"
	"github.com/shivaccounts/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ShivAccounts Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	contactRepo := persistence.NewGormContactRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	entryRepo := persistence.NewGormLedgerEntryRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Report cache shared between the report service and write paths
	reportCache := cache.NewInMemoryReportCache(
		cache.WithLogger(log),
		cache.WithDefaultTTL(cfg.Report.CacheTTL),
	)
	defer reportCache.Close()

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService)

	// Application services
	contactService := partnerapp.NewContactService(contactRepo)
	productService := catalogapp.NewProductService(productRepo)
	accountService := ledgerapp.NewAccountService(accountRepo)
	entryService := ledgerapp.NewEntryService(entryRepo, accountRepo)
	documentService := billingapp.NewDocumentService(documentRepo, paymentRepo, contactRepo, productRepo)
	settlementService := billingapp.NewSettlementService(paymentRepo, documentRepo)
	reportService := reportapp.NewReportService(reportRepo, reportCache)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		System:         handler.NewSystemHandler(db.DB, version),
		Auth:           handler.NewAuthHandler(authService),
		Contacts:       handler.NewContactHandler(contactService),
		Products:       handler.NewProductHandler(productService),
		Accounts:       handler.NewAccountHandler(accountService),
		Entries:        handler.NewEntryHandler(entryService, reportService),
		Invoices:       handler.NewDocumentHandler(billing.FamilyInvoice, documentService, reportService),
		VendorBills:    handler.NewDocumentHandler(billing.FamilyVendorBill, documentService, reportService),
		SaleOrders:     handler.NewDocumentHandler(billing.FamilySaleOrder, documentService, reportService),
		PurchaseOrders: handler.NewDocumentHandler(billing.FamilyPurchaseOrder, documentService, reportService),
		Payments:       handler.NewPaymentHandler(billing.PaymentFamilyCustomer, settlementService, reportService),
		BillPayments:   handler.NewPaymentHandler(billing.PaymentFamilyVendor, settlementService, reportService),
		Reports:        handler.NewReportHandler(reportService),
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine := router.New(router.Config{
		Handlers:   handlers,
		JWTService: jwtService,
		Logger:     log,
		CORS:       corsConfig,
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
