package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/types"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/product"
)

type fakeReader struct {
	balances map[id.ID]map[types.VariantKey]int64
	err      error
	calls    int
}

func (f *fakeReader) ProductBalances(_ context.Context, productID id.ID) (map[types.VariantKey]int64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.balances[productID], nil
}

func (f *fakeReader) BalancesForProducts(_ context.Context, productIDs []id.ID) (map[id.ID]map[types.VariantKey]int64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[id.ID]map[types.VariantKey]int64, len(productIDs))
	for _, pid := range productIDs {
		out[pid] = f.balances[pid]
	}
	return out, nil
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

func (f *fakeProductSource) GetByIDs(_ context.Context, productIDs []id.ID) ([]*product.Product, error) {
	var out []*product.Product
	for _, pid := range productIDs {
		if p, ok := f.byID[pid]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestProductBalances_MergesDeclaredAndMoved(t *testing.T) {
	paint := product.New("Cat Tembok Avian", []string{"Putih", "Abu-abu", "Biru"})

	// Biru never moved; "Hijau" moved but was later removed from the catalog.
	primary := &fakeReader{balances: map[id.ID]map[types.VariantKey]int64{
		paint.ID: {"Putih": 40, "Abu-abu": -3, "Hijau": 7},
	}}
	svc := NewService(primary, &fakeReader{}, &fakeProductSource{byID: map[id.ID]*product.Product{paint.ID: paint}})

	balances, err := svc.ProductBalances(context.Background(), paint.ID)
	require.NoError(t, err)

	want := []VariantBalance{
		{ProductID: paint.ID, Variant: "Abu-abu", Qty: -3},
		{ProductID: paint.ID, Variant: "Biru", Qty: 0},
		{ProductID: paint.ID, Variant: "Hijau", Qty: 7},
		{ProductID: paint.ID, Variant: "Putih", Qty: 40},
	}
	assert.Equal(t, want, balances)
}

func TestProductBalances_SameNameProductsStaySeparate(t *testing.T) {
	// Names are display labels; balances follow the id alone.
	old := product.New("Semen Tiga Roda 50kg", nil)
	repack := product.New("Semen Tiga Roda 50kg", nil)

	primary := &fakeReader{balances: map[id.ID]map[types.VariantKey]int64{
		old.ID:    {types.NoVariant: 80},
		repack.ID: {types.NoVariant: 5},
	}}
	svc := NewService(primary, &fakeReader{}, &fakeProductSource{byID: map[id.ID]*product.Product{
		old.ID:    old,
		repack.ID: repack,
	}})

	oldBalances, err := svc.ProductBalances(context.Background(), old.ID)
	require.NoError(t, err)
	assert.Equal(t, []VariantBalance{{ProductID: old.ID, Variant: types.NoVariant, Qty: 80}}, oldBalances)

	batched, err := svc.BalancesForProducts(context.Background(), []id.ID{old.ID, repack.ID})
	require.NoError(t, err)
	require.Len(t, batched, 2)
	assert.Equal(t, int64(80), batched[old.ID][0].Qty)
	assert.Equal(t, int64(5), batched[repack.ID][0].Qty)
}

func TestProductBalances_NoVariantsUsesSentinel(t *testing.T) {
	cement := product.New("Semen Tiga Roda 50kg", nil)

	primary := &fakeReader{balances: map[id.ID]map[types.VariantKey]int64{
		cement.ID: {types.NoVariant: 120},
	}}
	svc := NewService(primary, &fakeReader{}, &fakeProductSource{byID: map[id.ID]*product.Product{cement.ID: cement}})

	balances, err := svc.ProductBalances(context.Background(), cement.ID)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, types.NoVariant, balances[0].Variant)
	assert.Equal(t, int64(120), balances[0].Qty)
}

func TestProductBalances_UnmovedProductIsAllZeros(t *testing.T) {
	cement := product.New("Semen Tiga Roda 50kg", nil)

	svc := NewService(&fakeReader{}, &fakeReader{}, &fakeProductSource{byID: map[id.ID]*product.Product{cement.ID: cement}})

	balances, err := svc.ProductBalances(context.Background(), cement.ID)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, int64(0), balances[0].Qty)
}

func TestProductBalances_UnknownProduct(t *testing.T) {
	svc := NewService(&fakeReader{}, &fakeReader{}, &fakeProductSource{byID: map[id.ID]*product.Product{}})

	_, err := svc.ProductBalances(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestRead_FallsBackToLogScan(t *testing.T) {
	cement := product.New("Semen Tiga Roda 50kg", nil)

	primary := &fakeReader{err: errors.New("matview not populated")}
	authoritative := &fakeReader{balances: map[id.ID]map[types.VariantKey]int64{
		cement.ID: {types.NoVariant: 55},
	}}
	svc := NewService(primary, authoritative, &fakeProductSource{byID: map[id.ID]*product.Product{cement.ID: cement}})

	balances, err := svc.ProductBalances(context.Background(), cement.ID)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, int64(55), balances[0].Qty)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, authoritative.calls)
}

func TestRead_BothTiersFailing(t *testing.T) {
	cement := product.New("Semen Tiga Roda 50kg", nil)

	primary := &fakeReader{err: errors.New("matview not populated")}
	authoritative := &fakeReader{err: errors.New("connection refused")}
	svc := NewService(primary, authoritative, &fakeProductSource{byID: map[id.ID]*product.Product{cement.ID: cement}})

	_, err := svc.ProductBalances(context.Background(), cement.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeStore))
}

func TestBalanceFor(t *testing.T) {
	cement := product.New("Semen Tiga Roda 50kg", nil)
	paint := product.New("Cat Tembok Avian", []string{"Putih"})

	primary := &fakeReader{balances: map[id.ID]map[types.VariantKey]int64{
		cement.ID: {types.NoVariant: -10},
		paint.ID:  {"Putih": 40},
	}}
	svc := NewService(primary, &fakeReader{}, &fakeProductSource{
		byID: map[id.ID]*product.Product{cement.ID: cement, paint.ID: paint},
	})
	ctx := context.Background()

	putih := "Putih"
	hitam := "Hitam"

	t.Run("sentinel key", func(t *testing.T) {
		qty, err := svc.BalanceFor(ctx, cement.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(-10), qty, "balances may go negative")
	})

	t.Run("named variant", func(t *testing.T) {
		qty, err := svc.BalanceFor(ctx, paint.ID, &putih)
		require.NoError(t, err)
		assert.Equal(t, int64(40), qty)
	})

	t.Run("unknown key answers zero", func(t *testing.T) {
		qty, err := svc.BalanceFor(ctx, paint.ID, &hitam)
		require.NoError(t, err)
		assert.Equal(t, int64(0), qty)
	})
}

func TestBalancesForProducts(t *testing.T) {
	cement := product.New("Semen Tiga Roda 50kg", nil)
	paint := product.New("Cat Tembok Avian", []string{"Putih", "Biru"})

	primary := &fakeReader{balances: map[id.ID]map[types.VariantKey]int64{
		cement.ID: {types.NoVariant: 100},
		paint.ID:  {"Putih": 12},
	}}
	svc := NewService(primary, &fakeReader{}, &fakeProductSource{
		byID: map[id.ID]*product.Product{cement.ID: cement, paint.ID: paint},
	})

	out, err := svc.BalancesForProducts(context.Background(), []id.ID{cement.ID, paint.ID})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, int64(100), out[cement.ID][0].Qty)

	paintBalances := out[paint.ID]
	require.Len(t, paintBalances, 2)
	assert.Equal(t, types.VariantKey("Biru"), paintBalances[0].Variant)
	assert.Equal(t, int64(0), paintBalances[0].Qty)
	assert.Equal(t, types.VariantKey("Putih"), paintBalances[1].Variant)
	assert.Equal(t, int64(12), paintBalances[1].Qty)
}

func TestBalancesForProducts_EmptyInput(t *testing.T) {
	primary := &fakeReader{}
	svc := NewService(primary, &fakeReader{}, &fakeProductSource{})

	out, err := svc.BalancesForProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 0, primary.calls)
}
