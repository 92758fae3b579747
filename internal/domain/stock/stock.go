// Package stock derives on-hand balances per (product, variant) from the
// movement logs. Balances are never stored authoritatively: the summary
// projection is a cache, and any doubt falls back to scanning the logs.
package stock

import (
	"context"
	"sort"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/types"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/product"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/pkg/logger"
)

// VariantBalance is the current balance of one variant key.
type VariantBalance struct {
	ProductID id.ID            `json:"productId"`
	Variant   types.VariantKey `json:"variant"`
	Qty       int64            `json:"qty"`
}

// BalanceReader computes balances for products. Two implementations exist:
// the summary-projection reader and the authoritative log scanner.
type BalanceReader interface {
	// ProductBalances returns every variant key with a non-missing balance
	ProductBalances(ctx context.Context, productID id.ID) (map[types.VariantKey]int64, error)

	// BalancesForProducts batches the same lookup for many products
	BalancesForProducts(ctx context.Context, productIDs []id.ID) (map[id.ID]map[types.VariantKey]int64, error)
}

// ProductSource resolves declared variants.
type ProductSource interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
	GetByIDs(ctx context.Context, productIDs []id.ID) ([]*product.Product, error)
}

// Service is the balance aggregator. Reads go to the primary (projection)
// reader first; any primary error falls through to the authoritative
// reader, which reduces the logs directly. Results never depend on which
// tier answered.
type Service struct {
	primary       BalanceReader
	authoritative BalanceReader
	products      ProductSource
}

// NewService creates the aggregator over the two readers.
func NewService(primary, authoritative BalanceReader, products ProductSource) *Service {
	return &Service{
		primary:       primary,
		authoritative: authoritative,
		products:      products,
	}
}

func (s *Service) read(ctx context.Context, productID id.ID) (map[types.VariantKey]int64, error) {
	m, err := s.primary.ProductBalances(ctx, productID)
	if err == nil {
		return m, nil
	}
	logger.Warn(ctx, "summary projection read failed, scanning logs",
		"product_id", productID.String(), "error", err)

	m, err = s.authoritative.ProductBalances(ctx, productID)
	if err != nil {
		return nil, apperror.NewStore("compute balances", err)
	}
	return m, nil
}

func (s *Service) readMany(ctx context.Context, productIDs []id.ID) (map[id.ID]map[types.VariantKey]int64, error) {
	m, err := s.primary.BalancesForProducts(ctx, productIDs)
	if err == nil {
		return m, nil
	}
	logger.Warn(ctx, "summary projection batch read failed, scanning logs",
		"products", len(productIDs), "error", err)

	m, err = s.authoritative.BalancesForProducts(ctx, productIDs)
	if err != nil {
		return nil, apperror.NewStore("compute balances", err)
	}
	return m, nil
}

// merge overlays moved balances onto the declared variant set so that
// declared-but-unmoved variants appear at zero, and undeclared keys seen
// in the logs still show up.
func merge(p *product.Product, moved map[types.VariantKey]int64) []VariantBalance {
	keys := make(map[types.VariantKey]struct{})
	for _, k := range p.Variants.Keys() {
		keys[k] = struct{}{}
	}
	for k := range moved {
		keys[k] = struct{}{}
	}

	out := make([]VariantBalance, 0, len(keys))
	for k := range keys {
		out = append(out, VariantBalance{
			ProductID: p.ID,
			Variant:   k,
			Qty:       moved[k],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Variant < out[j].Variant })
	return out
}

// ProductBalances returns the balance of every variant key of a product:
// declared variants (zero when unmoved) plus any key present in the logs.
// A product without variants yields exactly one sentinel-keyed row.
func (s *Service) ProductBalances(ctx context.Context, productID id.ID) ([]VariantBalance, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, apperror.NewStore("resolve product", err)
	}

	moved, err := s.read(ctx, productID)
	if err != nil {
		return nil, err
	}
	return merge(p, moved), nil
}

// BalanceFor returns the balance of one variant key. Unknown keys answer
// zero rather than erroring; balances may be negative.
func (s *Service) BalanceFor(ctx context.Context, productID id.ID, variant *string) (int64, error) {
	moved, err := s.read(ctx, productID)
	if err != nil {
		return 0, err
	}
	return moved[types.KeyOf(variant)], nil
}

// BalancesForProducts answers the dashboard case: one batched read for
// many products instead of a query per row.
func (s *Service) BalancesForProducts(ctx context.Context, productIDs []id.ID) (map[id.ID][]VariantBalance, error) {
	if len(productIDs) == 0 {
		return map[id.ID][]VariantBalance{}, nil
	}

	prods, err := s.products.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, apperror.NewStore("resolve products", err)
	}

	moved, err := s.readMany(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[id.ID][]VariantBalance, len(prods))
	for _, p := range prods {
		out[p.ID] = merge(p, moved[p.ID])
	}
	return out, nil
}
