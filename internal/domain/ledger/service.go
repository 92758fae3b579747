package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	appctx "github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/context"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/tx"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/product"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/pkg/logger"
)

// ProductSource resolves product references for validation.
type ProductSource interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// TypeSource resolves movement-type references for validation.
type TypeSource interface {
	Exists(ctx context.Context, direction movementtype.Direction, typeID id.ID) (bool, error)
}

// BranchSource resolves branch references for validation.
type BranchSource interface {
	Exists(ctx context.Context, branchID id.ID) (bool, error)
}

// Service appends movements to the logs. All referenced entities are
// verified before anything is written.
type Service struct {
	repo      Repository
	products  ProductSource
	types     TypeSource
	branches  BranchSource
	txManager tx.Manager
}

// NewService creates the ledger service.
func NewService(repo Repository, products ProductSource, types TypeSource, branches BranchSource, txm tx.Manager) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		types:     types,
		branches:  branches,
		txManager: txm,
	}
}

// RecordStockIn validates and appends one stock-in entry.
func (s *Service) RecordStockIn(ctx context.Context, e *Entry) error {
	e.Direction = movementtype.DirectionIn
	return s.record(ctx, e)
}

// RecordStockOut validates and appends one stock-out entry.
func (s *Service) RecordStockOut(ctx context.Context, e *Entry) error {
	e.Direction = movementtype.DirectionOut
	return s.record(ctx, e)
}

func (s *Service) record(ctx context.Context, e *Entry) error {
	s.prepare(ctx, e)
	if err := s.validate(ctx, e); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Insert(ctx, e); err != nil {
			return fmt.Errorf("insert %s entry: %w", e.Direction, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "stock movement recorded",
		"direction", string(e.Direction),
		"entry_id", e.ID.String(),
		"product_id", e.ProductID.String(),
		"qty", e.Qty,
	)
	return nil
}

// RecordStockInBulk appends many stock-in entries in one transaction.
func (s *Service) RecordStockInBulk(ctx context.Context, entries []*Entry) error {
	return s.recordBulk(ctx, movementtype.DirectionIn, entries)
}

// RecordStockOutBulk appends many stock-out entries in one transaction.
func (s *Service) RecordStockOutBulk(ctx context.Context, entries []*Entry) error {
	return s.recordBulk(ctx, movementtype.DirectionOut, entries)
}

// recordBulk validates every entry up front, then lands the whole batch
// through one COPY inside one transaction. A single bad entry rejects the
// batch before any write.
func (s *Service) recordBulk(ctx context.Context, direction movementtype.Direction, entries []*Entry) error {
	if len(entries) == 0 {
		return apperror.NewValidation("at least one entry is required").
			WithDetail("field", "entries")
	}

	for i, e := range entries {
		e.Direction = direction
		s.prepare(ctx, e)
		if err := s.validate(ctx, e); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return appErr.WithDetail("index", i)
			}
			return err
		}
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.InsertBatch(ctx, direction, entries); err != nil {
			return fmt.Errorf("insert %s batch: %w", direction, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "stock movement batch recorded",
		"direction", string(direction),
		"count", len(entries),
	)
	return nil
}

// ListStockIn returns stock-in entries matching the filter.
func (s *Service) ListStockIn(ctx context.Context, filter ListFilter) (ListResult, error) {
	filter.Direction = movementtype.DirectionIn
	return s.list(ctx, filter)
}

// ListStockOut returns stock-out entries matching the filter.
func (s *Service) ListStockOut(ctx context.Context, filter ListFilter) (ListResult, error) {
	filter.Direction = movementtype.DirectionOut
	return s.list(ctx, filter)
}

func (s *Service) list(ctx context.Context, filter ListFilter) (ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	res, err := s.repo.List(ctx, filter)
	if err != nil {
		return ListResult{}, apperror.NewStore("list movements", err)
	}
	return res, nil
}

func (s *Service) prepare(ctx context.Context, e *Entry) {
	if id.IsNil(e.ID) {
		e.ID = id.New()
	}
	now := time.Now().UTC()
	if e.OccurredAt.IsZero() {
		e.OccurredAt = now
	}
	e.CreatedAt = now
	if e.CreatedBy == "" {
		e.CreatedBy = appctx.GetUserID(ctx)
	}
	if e.Variant != nil && *e.Variant == "" {
		e.Variant = nil
	}
}

func (s *Service) validate(ctx context.Context, e *Entry) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}

	p, err := s.products.GetByID(ctx, e.ProductID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("product", e.ProductID.String())
		}
		return apperror.NewStore("resolve product", err)
	}
	if err := p.ValidateVariantRef(e.Variant); err != nil {
		return err
	}

	ok, err := s.types.Exists(ctx, e.Direction, e.TypeID)
	if err != nil {
		return apperror.NewStore("resolve movement type", err)
	}
	if !ok {
		return apperror.NewNotFound("movement type", e.TypeID.String())
	}

	if e.BranchID != nil {
		ok, err := s.branches.Exists(ctx, *e.BranchID)
		if err != nil {
			return apperror.NewStore("resolve branch", err)
		}
		if !ok {
			return apperror.NewNotFound("branch", e.BranchID.String())
		}
	}

	return nil
}
