package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/tx"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/types"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/product"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/ledger"
)

// ProductSource resolves products for report scoping.
type ProductSource interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// Service is the movement query engine. Multi-query reports run inside a
// read-only transaction so opening balances and range scans see one
// consistent snapshot.
type Service struct {
	repo      Repository
	products  ProductSource
	txManager tx.ReadOnlyManager
}

// NewService creates the reports service.
func NewService(repo Repository, products ProductSource, txm tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, products: products, txManager: txm}
}

// startOfDay truncates to 00:00:00 of the timestamp's day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// endOfDay extends to the last instant of the timestamp's day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func (s *Service) getProduct(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", productID.String())
		}
		return nil, apperror.NewStore("resolve product", err)
	}
	return p, nil
}

// Turnover reports opening, in-range movements and closing per variant key.
// Period bounds are widened to whole days before any comparison.
func (s *Service) Turnover(ctx context.Context, filter TurnoverFilter) (*TurnoverResult, error) {
	p, err := s.getProduct(ctx, filter.ProductID)
	if err != nil {
		return nil, err
	}
	if filter.Variant != nil && *filter.Variant != "" {
		if err := p.ValidateVariantRef(filter.Variant); err != nil {
			return nil, err
		}
	}
	if filter.From.IsZero() || filter.To.IsZero() {
		return nil, apperror.NewValidation("period is required").
			WithDetail("field", "from/to")
	}

	from := startOfDay(filter.From)
	to := endOfDay(filter.To)
	if to.Before(from) {
		return nil, apperror.NewValidation("period end precedes start").
			WithDetail("from", from).
			WithDetail("to", to)
	}

	var (
		opening map[types.VariantKey]int64
		ins     []*ledger.EntryView
		outs    []*ledger.EntryView
	)
	err = s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		if opening, err = s.repo.OpeningByVariant(ctx, p.ID, from); err != nil {
			return apperror.NewStore("compute opening balances", err)
		}
		if ins, err = s.repo.EntriesInRange(ctx, p.ID, movementtype.DirectionIn, from, to); err != nil {
			return apperror.NewStore("read stock-in range", err)
		}
		if outs, err = s.repo.EntriesInRange(ctx, p.ID, movementtype.DirectionOut, from, to); err != nil {
			return apperror.NewStore("read stock-out range", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	keys := s.scopeKeys(p, filter.Variant, opening, ins, outs)

	result := &TurnoverResult{
		ProductID: p.ID,
		From:      from,
		To:        to,
		Variants:  make([]VariantTurnover, 0, len(keys)),
	}
	for _, key := range keys {
		row := VariantTurnover{
			Variant: key,
			Opening: opening[key],
		}
		for _, e := range ins {
			if types.KeyOf(e.Variant) == key {
				row.In = append(row.In, e)
				row.TotalIn += e.Qty
			}
		}
		for _, e := range outs {
			if types.KeyOf(e.Variant) == key {
				row.Out = append(row.Out, e)
				row.TotalOut += e.Qty
			}
		}
		row.Closing = row.Opening + row.TotalIn - row.TotalOut
		result.Variants = append(result.Variants, row)
	}
	return result, nil
}

// scopeKeys decides which variant keys a turnover covers: the requested
// one, or every declared key plus any key the logs mention.
func (s *Service) scopeKeys(p *product.Product, variant *string, opening map[types.VariantKey]int64, ins, outs []*ledger.EntryView) []types.VariantKey {
	if variant != nil && *variant != "" {
		return []types.VariantKey{types.KeyOf(variant)}
	}

	set := make(map[types.VariantKey]struct{})
	for _, k := range p.Variants.Keys() {
		set[k] = struct{}{}
	}
	for k := range opening {
		set[k] = struct{}{}
	}
	for _, e := range ins {
		set[types.KeyOf(e.Variant)] = struct{}{}
	}
	for _, e := range outs {
		set[types.KeyOf(e.Variant)] = struct{}{}
	}

	keys := make([]types.VariantKey, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// History returns the combined movement history of a product. Running
// balances are computed in ascending order per variant key, then the
// slice is reversed so the newest movement comes first.
func (s *Service) History(ctx context.Context, productID id.ID, filter HistoryFilter) ([]HistoryItem, error) {
	p, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if filter.Variant != nil && *filter.Variant != "" {
		if err := p.ValidateVariantRef(filter.Variant); err != nil {
			return nil, err
		}
	}

	var from time.Time
	if filter.From != nil {
		from = startOfDay(*filter.From)
	}
	to := endOfDay(time.Now().UTC())
	if filter.To != nil {
		to = endOfDay(*filter.To)
	}

	opening := map[types.VariantKey]int64{}
	var ins, outs []*ledger.EntryView
	err = s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		if !from.IsZero() {
			if opening, err = s.repo.OpeningByVariant(ctx, p.ID, from); err != nil {
				return apperror.NewStore("compute opening balances", err)
			}
		}
		if ins, err = s.repo.EntriesInRange(ctx, p.ID, movementtype.DirectionIn, from, to); err != nil {
			return apperror.NewStore("read stock-in range", err)
		}
		if outs, err = s.repo.EntriesInRange(ctx, p.ID, movementtype.DirectionOut, from, to); err != nil {
			return apperror.NewStore("read stock-out range", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	merged := make([]*ledger.EntryView, 0, len(ins)+len(outs))
	merged = append(merged, ins...)
	merged = append(merged, outs...)
	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].OccurredAt.Equal(merged[j].OccurredAt) {
			return merged[i].OccurredAt.Before(merged[j].OccurredAt)
		}
		return merged[i].CreatedAt.Before(merged[j].CreatedAt)
	})

	wantKey := types.VariantKey("")
	if filter.Variant != nil && *filter.Variant != "" {
		wantKey = types.KeyOf(filter.Variant)
	}

	running := make(map[types.VariantKey]int64, len(opening))
	for k, v := range opening {
		running[k] = v
	}

	items := make([]HistoryItem, 0, len(merged))
	for _, e := range merged {
		key := types.KeyOf(e.Variant)
		before := running[key]
		after := before + e.Qty
		if e.Direction == movementtype.DirectionOut {
			after = before - e.Qty
		}
		running[key] = after

		if wantKey != "" && key != wantKey {
			continue
		}
		items = append(items, HistoryItem{
			Entry:     e,
			Direction: e.Direction,
			Opening:   before,
			Balance:   after,
		})
	}

	// newest first
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

// DashboardOverview aggregates both logs over a period, with per-day rates.
func (s *Service) DashboardOverview(ctx context.Context, from, to time.Time) (*Overview, error) {
	if from.IsZero() || to.IsZero() {
		return nil, apperror.NewValidation("period is required").
			WithDetail("field", "from/to")
	}
	from = startOfDay(from)
	to = endOfDay(to)
	if to.Before(from) {
		return nil, apperror.NewValidation("period end precedes start").
			WithDetail("from", from).
			WithDetail("to", to)
	}

	totals, err := s.repo.Totals(ctx, from, to)
	if err != nil {
		return nil, apperror.NewStore("aggregate period totals", err)
	}

	days := decimal.NewFromInt(int64(to.Sub(from).Hours()/24) + 1)
	return &Overview{
		From:         from,
		To:           to,
		TotalIn:      totals.TotalIn,
		TotalOut:     totals.TotalOut,
		CountIn:      totals.CountIn,
		CountOut:     totals.CountOut,
		AvgInPerDay:  decimal.NewFromInt(totals.TotalIn).DivRound(days, 2),
		AvgOutPerDay: decimal.NewFromInt(totals.TotalOut).DivRound(days, 2),
	}, nil
}
