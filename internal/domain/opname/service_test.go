package opname

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	appctx "github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/context"
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

type fakeOpnameRepo struct {
	records []*Record
	err     error
}

func (f *fakeOpnameRepo) Insert(_ context.Context, r *Record) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, r)
	return nil
}

func (f *fakeOpnameRepo) List(_ context.Context, _ ListFilter) (ListResult, error) {
	return ListResult{}, nil
}

type fakeOpnameProducts struct {
	byID map[id.ID]*product.Product
}

func (f *fakeOpnameProducts) GetByID(_ context.Context, productID id.ID) (*product.Product, error) {
	p, ok := f.byID[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

type fakeBalances struct {
	byKey map[types.VariantKey]int64
}

func (f *fakeBalances) BalanceFor(_ context.Context, _ id.ID, variant *string) (int64, error) {
	return f.byKey[types.KeyOf(variant)], nil
}

type fakeTypeSource struct {
	byDirection map[movementtype.Direction]*movementtype.MovementType
}

func (f *fakeTypeSource) GetByName(_ context.Context, direction movementtype.Direction, name string) (*movementtype.MovementType, error) {
	t, ok := f.byDirection[direction]
	if !ok || t.Name != name {
		return nil, apperror.NewNotFound("movement type", name)
	}
	return t, nil
}

type fakeMovements struct {
	ins  []*ledger.Entry
	outs []*ledger.Entry
	err  error
}

func (f *fakeMovements) RecordStockIn(_ context.Context, e *ledger.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.ins = append(f.ins, e)
	return nil
}

func (f *fakeMovements) RecordStockOut(_ context.Context, e *ledger.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.outs = append(f.outs, e)
	return nil
}

type fakeAuditor struct {
	seen []*Record
}

func (f *fakeAuditor) ReconcileRecorded(_ context.Context, rec *Record) {
	f.seen = append(f.seen, rec)
}

type opnameFixture struct {
	service   *Service
	repo      *fakeOpnameRepo
	movements *fakeMovements

	cement *product.Product
	paint  *product.Product
}

func newOpnameFixture(balance int64) *opnameFixture {
	cement := product.New("Semen Tiga Roda 50kg", nil)
	paint := product.New("Cat Tembok Avian", []string{"Putih"})

	adjIn := movementtype.New(movementtype.DirectionIn, movementtype.AdjustmentTypeName)
	adjOut := movementtype.New(movementtype.DirectionOut, movementtype.AdjustmentTypeName)
	adjOut.Destination = movementtype.DestinationCentral

	repo := &fakeOpnameRepo{}
	movements := &fakeMovements{}
	service := NewService(
		repo,
		&fakeOpnameProducts{byID: map[id.ID]*product.Product{cement.ID: cement, paint.ID: paint}},
		&fakeBalances{byKey: map[types.VariantKey]int64{types.NoVariant: balance, "Putih": balance}},
		&fakeTypeSource{byDirection: map[movementtype.Direction]*movementtype.MovementType{
			movementtype.DirectionIn:  adjIn,
			movementtype.DirectionOut: adjOut,
		}},
		movements,
		fakeTxManager{},
	)

	return &opnameFixture{service: service, repo: repo, movements: movements, cement: cement, paint: paint}
}

func TestReconcile_ReasonRequired(t *testing.T) {
	fx := newOpnameFixture(100)

	_, err := fx.service.Reconcile(context.Background(), Input{
		ProductID: fx.cement.ID,
		QtyAfter:  100,
		Reason:    "   ",
	})
	require.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.Empty(t, fx.repo.records)
}

func TestReconcile_UnknownProduct(t *testing.T) {
	fx := newOpnameFixture(100)

	_, err := fx.service.Reconcile(context.Background(), Input{
		ProductID: id.New(),
		QtyAfter:  100,
		Reason:    "monthly count",
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestReconcile_UndeclaredVariant(t *testing.T) {
	fx := newOpnameFixture(100)
	ungu := "Ungu"

	_, err := fx.service.Reconcile(context.Background(), Input{
		ProductID: fx.paint.ID,
		Variant:   &ungu,
		QtyAfter:  100,
		Reason:    "monthly count",
	})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestReconcile_ZeroDifference(t *testing.T) {
	fx := newOpnameFixture(100)

	res, err := fx.service.Reconcile(context.Background(), Input{
		ProductID: fx.cement.ID,
		QtyAfter:  100,
		Reason:    "monthly count",
	})
	require.NoError(t, err)

	assert.True(t, res.CorrectionApplied)
	assert.Nil(t, res.Warning)
	assert.Equal(t, int64(0), res.Record.QtyDifference)
	require.Len(t, fx.repo.records, 1, "the count is recorded even when nothing changed")
	assert.Empty(t, fx.movements.ins)
	assert.Empty(t, fx.movements.outs)
}

func TestReconcile_ShortageWritesStockOut(t *testing.T) {
	fx := newOpnameFixture(100)
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "counter-1"})

	res, err := fx.service.Reconcile(ctx, Input{
		ProductID: fx.cement.ID,
		QtyAfter:  93,
		Reason:    "damaged bags",
	})
	require.NoError(t, err)

	assert.True(t, res.CorrectionApplied)
	assert.Equal(t, int64(100), res.Record.QtyBefore)
	assert.Equal(t, int64(-7), res.Record.QtyDifference)
	assert.Equal(t, "counter-1", res.Record.CreatedBy)

	require.Len(t, fx.movements.outs, 1)
	out := fx.movements.outs[0]
	assert.Equal(t, int64(7), out.Qty)
	assert.Equal(t, movementtype.DestinationCentral, out.Destination)
	assert.Equal(t, "Stock opname: damaged bags", out.Note)
	assert.Equal(t, "counter-1", out.CreatedBy)
	assert.Empty(t, fx.movements.ins)
}

func TestReconcile_SurplusWritesStockIn(t *testing.T) {
	fx := newOpnameFixture(40)
	putih := "Putih"

	res, err := fx.service.Reconcile(context.Background(), Input{
		ProductID: fx.paint.ID,
		Variant:   &putih,
		QtyAfter:  45,
		Reason:    "found pallet behind rack",
	})
	require.NoError(t, err)

	assert.True(t, res.CorrectionApplied)
	require.Len(t, fx.movements.ins, 1)
	in := fx.movements.ins[0]
	assert.Equal(t, int64(5), in.Qty)
	require.NotNil(t, in.Variant)
	assert.Equal(t, "Putih", *in.Variant)
	assert.Empty(t, fx.movements.outs)
}

func TestReconcile_EmptyVariantTreatedAsNone(t *testing.T) {
	fx := newOpnameFixture(100)
	empty := ""

	res, err := fx.service.Reconcile(context.Background(), Input{
		ProductID: fx.cement.ID,
		Variant:   &empty,
		QtyAfter:  100,
		Reason:    "monthly count",
	})
	require.NoError(t, err)
	assert.Nil(t, res.Record.Variant)
}

func TestReconcile_MissingAdjustmentType(t *testing.T) {
	fx := newOpnameFixture(100)
	fx.service.types = &fakeTypeSource{byDirection: map[movementtype.Direction]*movementtype.MovementType{}}

	res, err := fx.service.Reconcile(context.Background(), Input{
		ProductID: fx.cement.ID,
		QtyAfter:  90,
		Reason:    "monthly count",
	})
	require.NoError(t, err, "the count itself still succeeds")

	assert.False(t, res.CorrectionApplied)
	require.NotNil(t, res.Warning)
	assert.Equal(t, apperror.CodeAdjustmentTypeMissing, res.Warning.Code)
	assert.Equal(t, res.Record.ID.String(), res.Warning.Details["record_id"])
	require.Len(t, fx.repo.records, 1, "the record survives the failed correction")
	assert.Empty(t, fx.movements.outs)
}

func TestReconcile_CorrectionWriteFailure(t *testing.T) {
	fx := newOpnameFixture(100)
	fx.movements.err = errors.New("connection reset")

	res, err := fx.service.Reconcile(context.Background(), Input{
		ProductID: fx.cement.ID,
		QtyAfter:  110,
		Reason:    "monthly count",
	})
	require.NoError(t, err)

	assert.False(t, res.CorrectionApplied)
	require.NotNil(t, res.Warning)
	assert.Equal(t, apperror.CodeStore, res.Warning.Code)
	assert.Equal(t, res.Record.ID.String(), res.Warning.Details["record_id"])
	require.Len(t, fx.repo.records, 1)
}

func TestReconcile_RecordInsertFailure(t *testing.T) {
	fx := newOpnameFixture(100)
	fx.repo.err = errors.New("deadlock detected")

	_, err := fx.service.Reconcile(context.Background(), Input{
		ProductID: fx.cement.ID,
		QtyAfter:  90,
		Reason:    "monthly count",
	})
	require.True(t, apperror.IsCode(err, apperror.CodeStore))
	assert.Empty(t, fx.movements.outs, "no correction without a saved record")
}

func TestReconcile_NotifiesAuditor(t *testing.T) {
	fx := newOpnameFixture(100)
	auditor := &fakeAuditor{}
	fx.service.SetAuditor(auditor)

	res, err := fx.service.Reconcile(context.Background(), Input{
		ProductID: fx.cement.ID,
		QtyAfter:  95,
		Reason:    "monthly count",
	})
	require.NoError(t, err)
	require.Len(t, auditor.seen, 1)
	assert.Equal(t, res.Record.ID, auditor.seen[0].ID)
}
