package movementtype

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain"
)

// fakeTxManager runs the function without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo keeps both direction tables in memory.
type fakeRepo struct {
	byDirection map[Direction]map[id.ID]*MovementType
	referenced  map[id.ID]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byDirection: map[Direction]map[id.ID]*MovementType{
			DirectionIn:  {},
			DirectionOut: {},
		},
		referenced: map[id.ID]bool{},
	}
}

func (r *fakeRepo) Create(_ context.Context, t *MovementType) error {
	r.byDirection[t.Direction][t.ID] = t
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, direction Direction, typeID id.ID) (*MovementType, error) {
	t, ok := r.byDirection[direction][typeID]
	if !ok {
		return nil, apperror.NewNotFound("movement type", typeID.String())
	}
	return t, nil
}

func (r *fakeRepo) GetByName(_ context.Context, direction Direction, name string) (*MovementType, error) {
	for _, t := range r.byDirection[direction] {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, apperror.NewNotFound("movement type", name)
}

func (r *fakeRepo) Update(_ context.Context, t *MovementType) error {
	r.byDirection[t.Direction][t.ID] = t
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, direction Direction, typeID id.ID) error {
	delete(r.byDirection[direction], typeID)
	return nil
}

func (r *fakeRepo) List(_ context.Context, direction Direction, _ domain.ListFilter) (domain.ListResult[*MovementType], error) {
	var items []*MovementType
	for _, t := range r.byDirection[direction] {
		items = append(items, t)
	}
	return domain.ListResult[*MovementType]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *fakeRepo) Exists(_ context.Context, direction Direction, typeID id.ID) (bool, error) {
	_, ok := r.byDirection[direction][typeID]
	return ok, nil
}

func (r *fakeRepo) UpsertByName(ctx context.Context, t *MovementType) (*MovementType, error) {
	if existing, err := r.GetByName(ctx, t.Direction, t.Name); err == nil {
		return existing, nil
	}
	r.byDirection[t.Direction][t.ID] = t
	return t, nil
}

func (r *fakeRepo) Referenced(_ context.Context, _ Direction, typeID id.ID) (bool, error) {
	return r.referenced[typeID], nil
}

func TestService_Create_DuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})

	first := New(DirectionIn, "Purchase")
	require.NoError(t, svc.Create(ctx, first))

	dup := New(DirectionIn, "Purchase")
	err := svc.Create(ctx, dup)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicate))

	// Same name in the other direction is a different table, so allowed
	other := New(DirectionOut, "Purchase")
	other.Destination = DestinationSupplier
	assert.NoError(t, svc.Create(ctx, other))
}

func TestService_Update_KeepsOwnName(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})

	sale := New(DirectionOut, "Sale")
	sale.Destination = DestinationCentral
	require.NoError(t, svc.Create(ctx, sale))

	// Renaming onto its own name is not a conflict
	assert.NoError(t, svc.Update(ctx, sale))

	ship := New(DirectionOut, "Branch Ship")
	ship.Destination = DestinationBranch
	require.NoError(t, svc.Create(ctx, ship))

	ship.Name = "Sale"
	err := svc.Update(ctx, ship)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicate))
}

func TestService_Delete_ReferencedTypeRefused(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})

	purchase := New(DirectionIn, "Purchase")
	require.NoError(t, svc.Create(ctx, purchase))
	repo.referenced[purchase.ID] = true

	err := svc.Delete(ctx, DirectionIn, purchase.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeReferenceInUse))

	// Still present
	_, err = svc.GetByID(ctx, DirectionIn, purchase.ID)
	assert.NoError(t, err)
}

func TestService_EnsureAdjustmentTypes(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, fakeTxManager{})

	require.NoError(t, svc.EnsureAdjustmentTypes(ctx))

	in, err := svc.GetByName(ctx, DirectionIn, AdjustmentTypeName)
	require.NoError(t, err)
	out, err := svc.GetByName(ctx, DirectionOut, AdjustmentTypeName)
	require.NoError(t, err)
	assert.Equal(t, DestinationCentral, out.Destination)

	// Second run reuses the existing rows
	require.NoError(t, svc.EnsureAdjustmentTypes(ctx))
	in2, err := svc.GetByName(ctx, DirectionIn, AdjustmentTypeName)
	require.NoError(t, err)
	assert.Equal(t, in.ID, in2.ID)
	out2, err := svc.GetByName(ctx, DirectionOut, AdjustmentTypeName)
	require.NoError(t, err)
	assert.Equal(t, out.ID, out2.ID)
}
