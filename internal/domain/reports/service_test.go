package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/types"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/product"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/ledger"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReportRepo struct {
	opening map[types.VariantKey]int64
	ins     []*ledger.EntryView
	outs    []*ledger.EntryView
	totals  RangeTotals

	gotBefore   time.Time
	gotFrom     time.Time
	gotTo       time.Time
	openingRead bool
}

func (f *fakeReportRepo) OpeningByVariant(_ context.Context, _ id.ID, before time.Time) (map[types.VariantKey]int64, error) {
	f.openingRead = true
	f.gotBefore = before
	return f.opening, nil
}

func (f *fakeReportRepo) EntriesInRange(_ context.Context, _ id.ID, direction movementtype.Direction, from, to time.Time) ([]*ledger.EntryView, error) {
	f.gotFrom = from
	f.gotTo = to
	if direction == movementtype.DirectionIn {
		return f.ins, nil
	}
	return f.outs, nil
}

func (f *fakeReportRepo) Totals(_ context.Context, from, to time.Time) (RangeTotals, error) {
	f.gotFrom = from
	f.gotTo = to
	return f.totals, nil
}

type fakeProductSource struct {
	byID map[id.ID]*product.Product
}

func (f *fakeProductSource) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := f.byID[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

func entryView(direction movementtype.Direction, variant *string, qty int64, occurred time.Time) *ledger.EntryView {
	return &ledger.EntryView{
		Entry: ledger.Entry{
			ID:         id.New(),
			Direction:  direction,
			Variant:    variant,
			Qty:        qty,
			OccurredAt: occurred,
			CreatedAt:  occurred,
		},
	}
}

func TestTurnover_OpeningMovementsClosing(t *testing.T) {
	cement := product.New("Semen Tiga Roda 50kg", nil)
	day := func(d int) time.Time { return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC) }

	repo := &fakeReportRepo{
		opening: map[types.VariantKey]int64{types.NoVariant: 70},
		ins: []*ledger.EntryView{
			entryView(movementtype.DirectionIn, nil, 100, day(2)),
			entryView(movementtype.DirectionIn, nil, 50, day(10)),
		},
		outs: []*ledger.EntryView{
			entryView(movementtype.DirectionOut, nil, 30, day(5)),
		},
	}
	svc := NewService(repo, &fakeProductSource{byID: map[id.ID]*product.Product{cement.ID: cement}}, fakeTxManager{})

	res, err := svc.Turnover(context.Background(), TurnoverFilter{
		ProductID: cement.ID,
		From:      day(1),
		To:        day(30),
	})
	require.NoError(t, err)
	require.Len(t, res.Variants, 1)

	row := res.Variants[0]
	assert.Equal(t, types.NoVariant, row.Variant)
	assert.Equal(t, int64(70), row.Opening)
	assert.Equal(t, int64(150), row.TotalIn)
	assert.Equal(t, int64(30), row.TotalOut)
	assert.Equal(t, int64(190), row.Closing)
	assert.Len(t, row.In, 2)
	assert.Len(t, row.Out, 1)
}

func TestTurnover_WidensPeriodToWholeDays(t *testing.T) {
	cement := product.New("Semen Tiga Roda 50kg", nil)
	repo := &fakeReportRepo{}
	svc := NewService(repo, &fakeProductSource{byID: map[id.ID]*product.Product{cement.ID: cement}}, fakeTxManager{})

	res, err := svc.Turnover(context.Background(), TurnoverFilter{
		ProductID: cement.ID,
		From:      time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
		To:        time.Date(2025, 6, 3, 9, 15, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	wantFrom := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, wantFrom, res.From)
	assert.Equal(t, wantFrom, repo.gotBefore)
	assert.Equal(t, 2025, res.To.Year())
	assert.Equal(t, 23, res.To.Hour())
	assert.Equal(t, 3, res.To.Day())
}

func TestTurnover_ScopesAllKeysWhenNoVariantRequested(t *testing.T) {
	paint := product.New("Cat Tembok Avian", []string{"Putih", "Biru"})
	hijau := "Hijau"

	repo := &fakeReportRepo{
		opening: map[types.VariantKey]int64{"Putih": 5},
		ins: []*ledger.EntryView{
			entryView(movementtype.DirectionIn, &hijau, 2, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)),
		},
	}
	svc := NewService(repo, &fakeProductSource{byID: map[id.ID]*product.Product{paint.ID: paint}}, fakeTxManager{})

	res, err := svc.Turnover(context.Background(), TurnoverFilter{
		ProductID: paint.ID,
		From:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var keys []types.VariantKey
	for _, row := range res.Variants {
		keys = append(keys, row.Variant)
	}
	assert.Equal(t, []types.VariantKey{"Biru", "Hijau", "Putih"}, keys)
}

func TestTurnover_SingleVariantScope(t *testing.T) {
	paint := product.New("Cat Tembok Avian", []string{"Putih", "Biru"})
	putih := "Putih"
	biru := "Biru"

	repo := &fakeReportRepo{
		opening: map[types.VariantKey]int64{"Putih": 5, "Biru": 9},
		ins: []*ledger.EntryView{
			entryView(movementtype.DirectionIn, &putih, 10, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)),
			entryView(movementtype.DirectionIn, &biru, 4, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)),
		},
	}
	svc := NewService(repo, &fakeProductSource{byID: map[id.ID]*product.Product{paint.ID: paint}}, fakeTxManager{})

	res, err := svc.Turnover(context.Background(), TurnoverFilter{
		ProductID: paint.ID,
		Variant:   &putih,
		From:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, res.Variants, 1)
	assert.Equal(t, types.VariantKey("Putih"), res.Variants[0].Variant)
	assert.Equal(t, int64(15), res.Variants[0].Closing)
}

func TestTurnover_Validation(t *testing.T) {
	paint := product.New("Cat Tembok Avian", []string{"Putih"})
	svc := NewService(&fakeReportRepo{}, &fakeProductSource{byID: map[id.ID]*product.Product{paint.ID: paint}}, fakeTxManager{})
	ctx := context.Background()

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.Turnover(ctx, TurnoverFilter{ProductID: id.New()})
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("undeclared variant", func(t *testing.T) {
		ungu := "Ungu"
		_, err := svc.Turnover(ctx, TurnoverFilter{ProductID: paint.ID, Variant: &ungu})
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	})

	t.Run("missing period", func(t *testing.T) {
		_, err := svc.Turnover(ctx, TurnoverFilter{ProductID: paint.ID})
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	})

	t.Run("inverted period", func(t *testing.T) {
		_, err := svc.Turnover(ctx, TurnoverFilter{
			ProductID: paint.ID,
			From:      time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			To:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		})
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	})
}

func TestHistory_RunningBalanceNewestFirst(t *testing.T) {
	cement := product.New("Semen Tiga Roda 50kg", nil)
	day := func(d int) time.Time { return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC) }

	repo := &fakeReportRepo{
		opening: map[types.VariantKey]int64{types.NoVariant: 70},
		ins: []*ledger.EntryView{
			entryView(movementtype.DirectionIn, nil, 100, day(2)),
			entryView(movementtype.DirectionIn, nil, 50, day(10)),
		},
		outs: []*ledger.EntryView{
			entryView(movementtype.DirectionOut, nil, 30, day(5)),
		},
	}
	svc := NewService(repo, &fakeProductSource{byID: map[id.ID]*product.Product{cement.ID: cement}}, fakeTxManager{})

	from := day(1)
	items, err := svc.History(context.Background(), cement.ID, HistoryFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, items, 3)

	// newest first: +50 on day 10, -30 on day 5, +100 on day 2
	assert.Equal(t, int64(190), items[0].Balance)
	assert.Equal(t, int64(140), items[0].Opening)
	assert.Equal(t, movementtype.DirectionIn, items[0].Direction)

	assert.Equal(t, int64(140), items[1].Balance)
	assert.Equal(t, int64(170), items[1].Opening)
	assert.Equal(t, movementtype.DirectionOut, items[1].Direction)

	assert.Equal(t, int64(170), items[2].Balance)
	assert.Equal(t, int64(70), items[2].Opening)
}

func TestHistory_NoFromSkipsOpening(t *testing.T) {
	cement := product.New("Semen Tiga Roda 50kg", nil)
	repo := &fakeReportRepo{
		ins: []*ledger.EntryView{
			entryView(movementtype.DirectionIn, nil, 10, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)),
		},
	}
	svc := NewService(repo, &fakeProductSource{byID: map[id.ID]*product.Product{cement.ID: cement}}, fakeTxManager{})

	items, err := svc.History(context.Background(), cement.ID, HistoryFilter{})
	require.NoError(t, err)
	assert.False(t, repo.openingRead, "no period start means the whole log is the history")
	require.Len(t, items, 1)
	assert.Equal(t, int64(0), items[0].Opening)
	assert.Equal(t, int64(10), items[0].Balance)
}

func TestHistory_VariantFilterStillTracksAllKeys(t *testing.T) {
	paint := product.New("Cat Tembok Avian", []string{"Putih", "Biru"})
	putih := "Putih"
	biru := "Biru"
	day := func(d int) time.Time { return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC) }

	repo := &fakeReportRepo{
		ins: []*ledger.EntryView{
			entryView(movementtype.DirectionIn, &putih, 10, day(1)),
			entryView(movementtype.DirectionIn, &biru, 4, day(2)),
			entryView(movementtype.DirectionIn, &putih, 5, day(3)),
		},
	}
	svc := NewService(repo, &fakeProductSource{byID: map[id.ID]*product.Product{paint.ID: paint}}, fakeTxManager{})

	items, err := svc.History(context.Background(), paint.ID, HistoryFilter{Variant: &putih})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(15), items[0].Balance)
	assert.Equal(t, int64(10), items[1].Balance)
}

func TestDashboardOverview(t *testing.T) {
	repo := &fakeReportRepo{totals: RangeTotals{
		TotalIn:  150,
		TotalOut: 30,
		CountIn:  3,
		CountOut: 1,
	}}
	svc := NewService(repo, &fakeProductSource{}, fakeTxManager{})

	// 1..10 June inclusive is 10 days
	from := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)

	ov, err := svc.DashboardOverview(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, int64(150), ov.TotalIn)
	assert.Equal(t, int64(30), ov.TotalOut)
	assert.Equal(t, "15", ov.AvgInPerDay.String())
	assert.Equal(t, "3", ov.AvgOutPerDay.String())
}

func TestDashboardOverview_Validation(t *testing.T) {
	svc := NewService(&fakeReportRepo{}, &fakeProductSource{}, fakeTxManager{})
	ctx := context.Background()

	t.Run("missing period", func(t *testing.T) {
		_, err := svc.DashboardOverview(ctx, time.Time{}, time.Now())
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	})

	t.Run("inverted period", func(t *testing.T) {
		_, err := svc.DashboardOverview(ctx,
			time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	})
}
