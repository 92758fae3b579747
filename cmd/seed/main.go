// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/branch"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/product"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/ledger"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres/ledger_repo"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	typeRepo := catalog_repo.NewMovementTypeRepo(txManager)
	typeService := movementtype.NewService(typeRepo, txManager)

	if err := typeService.EnsureAdjustmentTypes(ctx); err != nil {
		log.Fatalw("failed to ensure adjustment types", "error", err)
	}
	log.Info("adjustment movement types ensured")

	if err := seedMovementTypes(ctx, typeService, log); err != nil {
		log.Fatalw("failed to seed movement types", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding complete")
}

// seedMovementTypes creates the default movement type catalog. Existing
// names are left untouched.
func seedMovementTypes(ctx context.Context, svc *movementtype.Service, log *logger.Logger) error {
	inTypes := []string{"Purchase", "Return", "Transfer In"}
	outTypes := map[string]movementtype.Destination{
		"Sale":         movementtype.DestinationCentral,
		"Branch Ship":  movementtype.DestinationBranch,
		"Supplier Out": movementtype.DestinationSupplier,
	}

	for _, name := range inTypes {
		t := movementtype.New(movementtype.DirectionIn, name)
		if err := svc.Create(ctx, t); err != nil {
			if apperror.IsCode(err, apperror.CodeDuplicate) {
				continue
			}
			return err
		}
		log.Infow("created stock-in type", "name", name)
	}

	for name, dest := range outTypes {
		t := movementtype.New(movementtype.DirectionOut, name)
		t.Destination = dest
		if err := svc.Create(ctx, t); err != nil {
			if apperror.IsCode(err, apperror.CodeDuplicate) {
				continue
			}
			return err
		}
		log.Infow("created stock-out type", "name", name)
	}

	return nil
}

// seedDemoData creates a small demo dataset: a branch, two products and
// opening movements.
func seedDemoData(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	productRepo := catalog_repo.NewProductRepo(txManager)
	branchRepo := catalog_repo.NewBranchRepo(txManager)
	typeRepo := catalog_repo.NewMovementTypeRepo(txManager)
	ledgerRepo := ledger_repo.NewLedgerRepo(txManager)

	productService := product.NewService(productRepo, txManager, ledgerRepo)
	branchService := branch.NewService(branchRepo, txManager, ledgerRepo)
	ledgerService := ledger.NewService(ledgerRepo, productRepo, typeRepo, branchRepo, txManager)

	mainBranch := branch.New("Cabang Utama", "Jl. Raya Cigadung 12, Bandung")
	if err := branchService.Create(ctx, mainBranch); err != nil {
		if !apperror.IsCode(err, apperror.CodeDuplicate) {
			return err
		}
		existing, err := branchService.GetByName(ctx, "Cabang Utama")
		if err != nil {
			return err
		}
		mainBranch = existing
	} else {
		log.Infow("created branch", "name", mainBranch.Name)
	}

	cement := product.New("Semen Tiga Roda 50kg", nil)
	paint := product.New("Cat Tembok Avian", []string{"Putih", "Abu-abu", "Biru"})
	for _, p := range []*product.Product{cement, paint} {
		if err := productService.Create(ctx, p); err != nil {
			return err
		}
		log.Infow("created product", "name", p.Name)
	}

	purchase, err := typeRepo.GetByName(ctx, movementtype.DirectionIn, "Purchase")
	if err != nil {
		return err
	}

	white := "Putih"
	openings := []*ledger.Entry{
		{
			ProductID:  cement.ID,
			Qty:        100,
			TypeID:     purchase.ID,
			Note:       "Opening stock",
			OccurredAt: time.Now().UTC().AddDate(0, 0, -7),
		},
		{
			ProductID:  paint.ID,
			Variant:    &white,
			Qty:        40,
			TypeID:     purchase.ID,
			Note:       "Opening stock",
			OccurredAt: time.Now().UTC().AddDate(0, 0, -7),
		},
	}
	if err := ledgerService.RecordStockInBulk(ctx, openings); err != nil {
		return err
	}
	log.Infow("recorded opening stock", "entries", len(openings))

	return nil
}
