package product

import (
	"context"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	appctx "github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/context"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/tx"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain"
)

// ReferenceChecker reports whether movement history references a product.
type ReferenceChecker interface {
	ProductReferenced(ctx context.Context, productID id.ID) (bool, error)
}

// Service provides product catalog operations.
// Deleting a product that movement history references is rejected;
// removing it would orphan ledger rows and change historical reports.
type Service struct {
	*domain.CatalogService[*Product]

	refs ReferenceChecker
}

// NewService creates the product service with its deletion guard installed.
func NewService(repo domain.CatalogRepository[*Product], txm tx.Manager, refs ReferenceChecker) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "product",
	})
	s := &Service{CatalogService: base, refs: refs}

	base.Hooks().On(domain.BeforeCreate, func(ctx context.Context, p *Product) error {
		if p.CreatedBy == "" {
			p.CreatedBy = appctx.GetUserID(ctx)
		}
		return nil
	})

	base.Hooks().On(domain.BeforeDelete, func(ctx context.Context, p *Product) error {
		used, err := s.refs.ProductReferenced(ctx, p.ID)
		if err != nil {
			return apperror.NewStore("check product references", err)
		}
		if used {
			return apperror.NewReferenceInUse("product", p.ID.String())
		}
		return nil
	})

	return s
}
