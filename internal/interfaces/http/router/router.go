package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shivaccounts/backend/internal/domain/billing"
	"github.com/shivaccounts/backend/internal/infrastructure/auth"
	"github.com/shivaccounts/backend/internal/infrastructure/logger"
	"github.com/shivaccounts/backend/internal/interfaces/http/handler"
	"github.com/shivaccounts/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers aggregates every HTTP handler the router wires up
type Handlers struct {
	System         *handler.SystemHandler
	Auth           *handler.AuthHandler
	Contacts       *handler.ContactHandler
	Products       *handler.ProductHandler
	Accounts       *handler.AccountHandler
	Entries        *handler.EntryHandler
	Invoices       *handler.DocumentHandler
	VendorBills    *handler.DocumentHandler
	SaleOrders     *handler.DocumentHandler
	PurchaseOrders *handler.DocumentHandler
	Payments       *handler.PaymentHandler
	BillPayments   *handler.PaymentHandler
	Reports        *handler.ReportHandler
}

// Config holds router dependencies
type Config struct {
	Handlers   Handlers
	JWTService *auth.JWTService
	Logger     *zap.Logger
	CORS       middleware.CORSConfig
}

// New builds the gin engine with all routes registered
func New(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(cfg.Logger))
	r.Use(logger.Recovery(cfg.Logger))
	r.Use(middleware.CORSWithConfig(cfg.CORS))
	r.Use(middleware.Secure())

	r.GET("/health", cfg.Handlers.System.Health)

	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", cfg.Handlers.Auth.Login)

	protected := v1.Group("", middleware.JWTAuth(cfg.JWTService))
	registerContactRoutes(protected, cfg.Handlers.Contacts)
	registerProductRoutes(protected, cfg.Handlers.Products)
	registerAccountRoutes(protected, cfg.Handlers.Accounts)
	registerEntryRoutes(protected, cfg.Handlers.Entries)

	registerDocumentRoutes(protected, "invoices", cfg.Handlers.Invoices, billing.FamilyInvoice)
	registerDocumentRoutes(protected, "vendor-bills", cfg.Handlers.VendorBills, billing.FamilyVendorBill)
	registerDocumentRoutes(protected, "sale-orders", cfg.Handlers.SaleOrders, billing.FamilySaleOrder)
	registerDocumentRoutes(protected, "purchase-orders", cfg.Handlers.PurchaseOrders, billing.FamilyPurchaseOrder)

	registerPaymentRoutes(protected, "payments", cfg.Handlers.Payments)
	registerPaymentRoutes(protected, "bill-payments", cfg.Handlers.BillPayments)

	registerReportRoutes(protected, cfg.Handlers.Reports)
	registerUserRoutes(protected, cfg.Handlers.Auth)

	return r
}

func registerContactRoutes(g *gin.RouterGroup, h *handler.ContactHandler) {
	contacts := g.Group("/contacts")
	contacts.POST("", h.Create)
	contacts.GET("", h.List)
	contacts.GET("/:id", h.Get)
	contacts.PUT("/:id", h.Update)
	contacts.DELETE("/:id", h.Delete)
	contacts.POST("/:id/deactivate", h.Deactivate)
	contacts.POST("/:id/activate", h.Activate)
}

func registerProductRoutes(g *gin.RouterGroup, h *handler.ProductHandler) {
	products := g.Group("/products")
	products.POST("", h.Create)
	products.GET("", h.List)
	products.GET("/:id", h.Get)
	products.PUT("/:id", h.Update)
	products.DELETE("/:id", h.Delete)
	products.POST("/:id/deactivate", h.Deactivate)
	products.POST("/:id/activate", h.Activate)
}

func registerAccountRoutes(g *gin.RouterGroup, h *handler.AccountHandler) {
	accounts := g.Group("/accounts")
	accounts.POST("", h.Create)
	accounts.GET("", h.List)
	accounts.GET("/:id", h.Get)
	accounts.PUT("/:id", h.Update)
	accounts.DELETE("/:id", h.Delete)
	accounts.POST("/:id/deactivate", h.Deactivate)
	accounts.POST("/:id/activate", h.Activate)
}

func registerEntryRoutes(g *gin.RouterGroup, h *handler.EntryHandler) {
	entries := g.Group("/ledger-entries")
	entries.GET("", h.List)
	entries.GET("/:id", h.Get)
	entries.POST("/adjustments", h.CreateAdjustment)
}

// registerDocumentRoutes wires one document family under its path
// prefix. Order families additionally expose the convert endpoint.
func registerDocumentRoutes(g *gin.RouterGroup, prefix string, h *handler.DocumentHandler, family billing.DocumentFamily) {
	documents := g.Group("/" + prefix)
	documents.POST("", h.Create)
	documents.GET("", h.List)
	documents.GET("/next-number", h.NextNumber)
	documents.GET("/:id", h.Get)
	documents.PUT("/:id", h.Update)
	documents.POST("/:id/cancel", h.Cancel)
	documents.DELETE("/:id", h.Delete)
	if !family.Settleable() {
		documents.POST("/:id/convert", h.Convert)
	}
}

func registerPaymentRoutes(g *gin.RouterGroup, prefix string, h *handler.PaymentHandler) {
	payments := g.Group("/" + prefix)
	payments.POST("", h.Create)
	payments.GET("", h.List)
	payments.GET("/:id", h.Get)
	payments.DELETE("/:id", h.Delete)
}

func registerReportRoutes(g *gin.RouterGroup, h *handler.ReportHandler) {
	reports := g.Group("/reports")
	reports.GET("/partner-ledger", h.PartnerLedger)
	reports.GET("/profit-loss", h.ProfitAndLoss)
	reports.GET("/balance-sheet", h.BalanceSheet)
	reports.GET("/stock-statement", h.StockStatement)
	reports.GET("/dashboard", h.Dashboard)
}

// registerUserRoutes wires user management, admin only
func registerUserRoutes(g *gin.RouterGroup, h *handler.AuthHandler) {
	users := g.Group("/users", middleware.RequireRole("admin"))
	users.POST("", h.Register)
	users.GET("", h.List)
	users.GET("/:id", h.Get)
	users.PUT("/:id", h.Update)
	users.POST("/:id/deactivate", h.Deactivate)
	users.POST("/:id/activate", h.Activate)
}
