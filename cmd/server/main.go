// Package main is the entry point for the gudang-sah stock API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/config"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/auth"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/branch"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/product"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/ledger"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/opname"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/reports"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/stock"
	v1 "github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/http/v1"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/http/v1/middleware"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres/ledger_repo"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres/opname_repo"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres/report_repo"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres/stock_repo"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting gudang-sah stock server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.URL)
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	branchRepo := catalog_repo.NewBranchRepo(txManager)
	typeRepo := catalog_repo.NewMovementTypeRepo(txManager)
	ledgerRepo := ledger_repo.NewLedgerRepo(txManager)
	summaryRepo := stock_repo.NewSummaryRepo(txManager)
	logScanRepo := stock_repo.NewLogScanRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)
	opnameRepo := opname_repo.NewOpnameRepo(txManager)

	// --- Services ---
	productService := product.NewService(productRepo, txManager, ledgerRepo)
	branchService := branch.NewService(branchRepo, txManager, ledgerRepo)
	typeService := movementtype.NewService(typeRepo, txManager)
	ledgerService := ledger.NewService(ledgerRepo, productRepo, typeRepo, branchRepo, txManager)
	stockService := stock.NewService(summaryRepo, logScanRepo, productRepo)
	reportService := reports.NewService(reportRepo, productRepo, txManager)
	opnameService := opname.NewService(opnameRepo, productRepo, stockService, typeRepo, ledgerService, txManager)

	// Keep the balance projection close to the logs; readers fall back
	// to the log scanner while a rebuild is pending
	if cfg.Stock.RefreshInterval > 0 {
		refreshCtx, stopRefresher := context.WithCancel(ctx)
		defer stopRefresher()
		go stock.NewRefresher(summaryRepo, cfg.Stock.RefreshInterval).Run(refreshCtx)
		log.Infow("summary projection refresher started", "interval", cfg.Stock.RefreshInterval)
	}

	// The well-known adjustment types must exist before any opname runs
	if err := typeService.EnsureAdjustmentTypes(ctx); err != nil {
		log.Fatalw("failed to ensure adjustment types", "error", err)
	}
	log.Info("adjustment movement types ensured")

	// --- Audit ---
	var auditService *postgres.AuditService
	if cfg.Audit.Enabled {
		auditService, err = postgres.NewAuditService(txManager)
		if err != nil {
			log.Fatalw("failed to initialize audit service", "error", err)
		}
		registerAuditHooks(auditService, productService, branchService)
		opnameService.SetAuditor(&reconcileAuditor{audit: auditService})
		log.Info("audit trail enabled")
	}

	// --- JWT ---
	var jwtValidator middleware.JWTValidator
	if cfg.Auth.Enabled {
		jwtConfig := auth.DefaultJWTConfig(cfg.Auth.JWTSecret)
		jwtConfig.Issuer = cfg.Auth.Issuer
		jwtValidator = auth.NewJWTService(jwtConfig)
	} else {
		log.Warn("authentication disabled")
	}

	// --- Router ---
	routerCfg := v1.RouterConfig{
		Pool:          pool,
		Logger:        log,
		JWTValidator:  jwtValidator,
		Products:      productService,
		Branches:      branchService,
		MovementTypes: typeService,
		Ledger:        ledgerService,
		Stock:         stockService,
		Reports:       reportService,
		Opname:        opnameService,
	}
	if auditService != nil {
		routerCfg.Audit = auditService
	}
	router := v1.NewRouter(routerCfg)

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
