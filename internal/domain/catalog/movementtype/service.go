package movementtype

import (
	"context"
	"fmt"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/tx"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/pkg/logger"
)

// Repository provides direction-aware access to the two type tables.
type Repository interface {
	Create(ctx context.Context, t *MovementType) error
	GetByID(ctx context.Context, direction Direction, typeID id.ID) (*MovementType, error)
	GetByName(ctx context.Context, direction Direction, name string) (*MovementType, error)
	Update(ctx context.Context, t *MovementType) error
	Delete(ctx context.Context, direction Direction, typeID id.ID) error
	List(ctx context.Context, direction Direction, filter domain.ListFilter) (domain.ListResult[*MovementType], error)
	Exists(ctx context.Context, direction Direction, typeID id.ID) (bool, error)

	// UpsertByName inserts the type or leaves the existing row of the same
	// name untouched, returning the surviving row either way.
	UpsertByName(ctx context.Context, t *MovementType) (*MovementType, error)

	// Referenced reports whether any movement row uses the type.
	Referenced(ctx context.Context, direction Direction, typeID id.ID) (bool, error)
}

// Service provides movement-type catalog operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates the movement-type service.
func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{repo: repo, txManager: txm}
}

// Create inserts a new type after uniqueness validation.
func (s *Service) Create(ctx context.Context, t *MovementType) error {
	if err := t.Validate(ctx); err != nil {
		return err
	}
	if _, err := s.repo.GetByName(ctx, t.Direction, t.Name); err == nil {
		return apperror.NewDuplicate("movement type", "name", t.Name)
	} else if !apperror.IsNotFound(err) {
		return apperror.NewStore("check movement type name", err)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, t); err != nil {
			return fmt.Errorf("create movement type: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a type.
func (s *Service) GetByID(ctx context.Context, direction Direction, typeID id.ID) (*MovementType, error) {
	t, err := s.repo.GetByID(ctx, direction, typeID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("movement type", typeID.String())
		}
		return nil, apperror.NewStore("get movement type", err)
	}
	return t, nil
}

// Update modifies a type with optimistic locking.
func (s *Service) Update(ctx context.Context, t *MovementType) error {
	if err := t.Validate(ctx); err != nil {
		return err
	}
	if existing, err := s.repo.GetByName(ctx, t.Direction, t.Name); err == nil && existing.ID != t.ID {
		return apperror.NewDuplicate("movement type", "name", t.Name)
	} else if err != nil && !apperror.IsNotFound(err) {
		return apperror.NewStore("check movement type name", err)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, t); err != nil {
			return fmt.Errorf("update movement type: %w", err)
		}
		return nil
	})
}

// Delete removes a type unless movement history references it.
func (s *Service) Delete(ctx context.Context, direction Direction, typeID id.ID) error {
	if _, err := s.GetByID(ctx, direction, typeID); err != nil {
		return err
	}

	used, err := s.repo.Referenced(ctx, direction, typeID)
	if err != nil {
		return apperror.NewStore("check movement type references", err)
	}
	if used {
		return apperror.NewReferenceInUse("movement type", typeID.String())
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, direction, typeID); err != nil {
			return fmt.Errorf("delete movement type: %w", err)
		}
		return nil
	})
}

// List retrieves types of one direction.
func (s *Service) List(ctx context.Context, direction Direction, filter domain.ListFilter) (domain.ListResult[*MovementType], error) {
	return s.repo.List(ctx, direction, filter)
}

// Exists checks a type reference.
func (s *Service) Exists(ctx context.Context, direction Direction, typeID id.ID) (bool, error) {
	return s.repo.Exists(ctx, direction, typeID)
}

// GetByName retrieves a type by its unique name.
func (s *Service) GetByName(ctx context.Context, direction Direction, name string) (*MovementType, error) {
	return s.repo.GetByName(ctx, direction, name)
}

// EnsureAdjustmentTypes seeds the well-known reconciliation types in both
// directions. Upsert-by-name keeps the call idempotent: an existing row is
// reused, never recreated, so its id stays stable across restarts.
func (s *Service) EnsureAdjustmentTypes(ctx context.Context) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		in := New(DirectionIn, AdjustmentTypeName)
		if _, err := s.repo.UpsertByName(ctx, in); err != nil {
			return fmt.Errorf("ensure stock-in adjustment type: %w", err)
		}

		out := New(DirectionOut, AdjustmentTypeName)
		out.Destination = DestinationCentral
		if _, err := s.repo.UpsertByName(ctx, out); err != nil {
			return fmt.Errorf("ensure stock-out adjustment type: %w", err)
		}

		logger.Debug(ctx, "adjustment types ensured", "name", AdjustmentTypeName)
		return nil
	})
}
