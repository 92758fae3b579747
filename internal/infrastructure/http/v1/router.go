// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/branch"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/product"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/ledger"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/opname"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/reports"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/stock"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/http/v1/handlers"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/http/v1/middleware"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/pkg/logger"
)

// RouterConfig holds the wired services the router mounts.
type RouterConfig struct {
	// Pool is the database connection (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation; nil disables auth
	JWTValidator middleware.JWTValidator

	Products      *product.Service
	Branches      *branch.Service
	MovementTypes *movementtype.Service
	Ledger        *ledger.Service
	Stock         *stock.Service
	Reports       *reports.Service
	Opname        *opname.Service

	// Audit enables the read-only trail endpoint when set
	Audit handlers.AuditHistorySource
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	if cfg.JWTValidator != nil {
		v1.Use(middleware.Auth(cfg.JWTValidator))
	}

	baseHandler := handlers.NewBaseHandler()

	// --- CATALOGS ---
	{
		productHandler := handlers.NewProductHandler(baseHandler, cfg.Products)
		RegisterCatalogRoutes(v1.Group("/products"), productHandler)

		branchHandler := handlers.NewBranchHandler(baseHandler, cfg.Branches)
		RegisterCatalogRoutes(v1.Group("/branches"), branchHandler)

		inTypes := handlers.NewMovementTypeHandler(baseHandler, cfg.MovementTypes, movementtype.DirectionIn)
		RegisterCatalogRoutes(v1.Group("/stock-in-types"), inTypes)

		outTypes := handlers.NewMovementTypeHandler(baseHandler, cfg.MovementTypes, movementtype.DirectionOut)
		RegisterCatalogRoutes(v1.Group("/stock-out-types"), outTypes)
	}

	// --- MOVEMENT LOGS ---
	{
		stockIn := handlers.NewLedgerHandler(baseHandler, cfg.Ledger, movementtype.DirectionIn)
		inGroup := v1.Group("/stock-in")
		inGroup.POST("", stockIn.Record)
		inGroup.POST("/bulk", stockIn.RecordBulk)
		inGroup.GET("", stockIn.List)

		stockOut := handlers.NewLedgerHandler(baseHandler, cfg.Ledger, movementtype.DirectionOut)
		outGroup := v1.Group("/stock-out")
		outGroup.POST("", stockOut.Record)
		outGroup.POST("/bulk", stockOut.RecordBulk)
		outGroup.GET("", stockOut.List)
	}

	// --- BALANCES ---
	{
		stockHandler := handlers.NewStockHandler(baseHandler, cfg.Stock)
		stockGroup := v1.Group("/stock")
		stockGroup.GET("/balances", stockHandler.GetBalances)
		stockGroup.GET("/balances/:productId", stockHandler.GetProductBalances)
	}

	// --- REPORTS ---
	{
		reportsHandler := handlers.NewReportsHandler(baseHandler, cfg.Reports)
		reportsGroup := v1.Group("/reports")
		reportsGroup.GET("/turnover", reportsHandler.GetTurnover)
		reportsGroup.GET("/history/:productId", reportsHandler.GetHistory)
		reportsGroup.GET("/overview", reportsHandler.GetOverview)
	}

	// --- STOCK OPNAME ---
	{
		opnameHandler := handlers.NewOpnameHandler(baseHandler, cfg.Opname)
		opnameGroup := v1.Group("/opname")
		opnameGroup.POST("", opnameHandler.Reconcile)
		opnameGroup.GET("", opnameHandler.List)
	}

	// --- AUDIT TRAIL ---
	if cfg.Audit != nil {
		auditHandler := handlers.NewAuditHandler(cfg.Audit)
		v1.GET("/audit/:entityType/:entityId", auditHandler.History)
	}

	return router
}
