package catalog_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/product"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ domain.CatalogRepository[*product.Product] = (*ProductRepo)(nil)

// ProductRepo stores products.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates the product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	cols := postgres.ExtractDBColumns[product.Product]()
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txManager, "products", cols,
			func() *product.Product { return &product.Product{} }),
	}
}

// Update refreshes updated_at alongside the optimistic-lock bump.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	p.UpdatedAt = time.Now().UTC()
	return r.BaseCatalogRepo.Update(ctx, p)
}

// GetByIDs fetches many products in one query.
func (r *ProductRepo) GetByIDs(ctx context.Context, productIDs []id.ID) ([]*product.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"id": productIDs})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*product.Product
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	return items, nil
}
