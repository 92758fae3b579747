package opname

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	appctx "github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/context"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/tx"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/product"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/ledger"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/pkg/logger"
)

// Input is one reconciliation request.
type Input struct {
	ProductID id.ID
	Variant   *string
	QtyAfter  int64
	Reason    string
}

// Result reports what the reconciliation did. A populated Warning means
// the count was recorded but the balance was not corrected; the caller
// decides whether to retry the correction as a fresh reconciliation.
type Result struct {
	Record *Record `json:"record"`

	// CorrectionApplied is true when a correcting movement was written
	// (or none was needed because the difference was zero)
	CorrectionApplied bool `json:"correctionApplied"`

	// Warning carries ADJUSTMENT_TYPE_MISSING or STORE_ERROR when the
	// correction could not be written after the record was saved
	Warning *apperror.AppError `json:"warning,omitempty"`
}

// ProductSource resolves products for validation and snapshotting.
type ProductSource interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// BalanceSource snapshots the recorded balance of one variant key.
type BalanceSource interface {
	BalanceFor(ctx context.Context, productID id.ID, variant *string) (int64, error)
}

// TypeSource looks up the well-known adjustment type by name.
type TypeSource interface {
	GetByName(ctx context.Context, direction movementtype.Direction, name string) (*movementtype.MovementType, error)
}

// MovementWriter appends the correcting movement.
type MovementWriter interface {
	RecordStockIn(ctx context.Context, e *ledger.Entry) error
	RecordStockOut(ctx context.Context, e *ledger.Entry) error
}

// Auditor records reconciliations in the audit trail, best effort.
type Auditor interface {
	ReconcileRecorded(ctx context.Context, rec *Record)
}

// Service runs the two-phase reconciliation protocol: the count record is
// persisted first, the correcting movement second, as separate writes. A
// failure between the two leaves the audit trail intact and the balance
// uncorrected, and that state is reported, not rolled back.
type Service struct {
	repo      Repository
	products  ProductSource
	balances  BalanceSource
	types     TypeSource
	movements MovementWriter
	txManager tx.Manager
	auditor   Auditor
}

// SetAuditor installs an optional audit sink for reconciliations.
func (s *Service) SetAuditor(a Auditor) {
	s.auditor = a
}

// NewService creates the reconciliation service.
func NewService(repo Repository, products ProductSource, balances BalanceSource, types TypeSource, movements MovementWriter, txm tx.Manager) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		balances:  balances,
		types:     types,
		movements: movements,
		txManager: txm,
	}
}

// Reconcile records a physical count and, when the count disagrees with
// the recorded balance, writes a correcting movement so the balance
// equals the counted value afterwards.
func (s *Service) Reconcile(ctx context.Context, in Input) (*Result, error) {
	in.Reason = strings.TrimSpace(in.Reason)
	if in.Reason == "" {
		return nil, apperror.NewValidation("reason is required").
			WithDetail("field", "reason")
	}
	if in.Variant != nil && *in.Variant == "" {
		in.Variant = nil
	}

	p, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", in.ProductID.String())
		}
		return nil, apperror.NewStore("resolve product", err)
	}
	if err := p.ValidateVariantRef(in.Variant); err != nil {
		return nil, err
	}

	qtyBefore, err := s.balances.BalanceFor(ctx, in.ProductID, in.Variant)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		ID:            id.New(),
		ProductID:     in.ProductID,
		Variant:       in.Variant,
		QtyBefore:     qtyBefore,
		QtyAfter:      in.QtyAfter,
		QtyDifference: in.QtyAfter - qtyBefore,
		Reason:        in.Reason,
		CreatedBy:     appctx.GetUserID(ctx),
		CreatedAt:     time.Now().UTC(),
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Insert(ctx, rec); err != nil {
			return fmt.Errorf("insert opname record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, apperror.NewStore("save opname record", err)
	}

	if s.auditor != nil {
		s.auditor.ReconcileRecorded(ctx, rec)
	}

	result := &Result{Record: rec, CorrectionApplied: true}
	if rec.QtyDifference == 0 {
		logger.Info(ctx, "opname recorded, balance already correct",
			"record_id", rec.ID.String(),
			"product_id", rec.ProductID.String(),
		)
		return result, nil
	}

	s.correct(ctx, p, rec, result)
	return result, nil
}

// correct writes the adjusting movement for a non-zero difference. The
// record is already committed at this point, so failures degrade to a
// warning on the result instead of an error.
func (s *Service) correct(ctx context.Context, p *product.Product, rec *Record, result *Result) {
	direction := movementtype.DirectionIn
	if rec.QtyDifference < 0 {
		direction = movementtype.DirectionOut
	}

	adjType, err := s.types.GetByName(ctx, direction, movementtype.AdjustmentTypeName)
	if err != nil {
		result.CorrectionApplied = false
		if apperror.IsNotFound(err) {
			result.Warning = apperror.NewAdjustmentTypeMissing(string(direction)).
				WithDetail("record_id", rec.ID.String())
		} else {
			result.Warning = apperror.NewStore("lookup adjustment type", err).
				WithDetail("record_id", rec.ID.String())
		}
		logger.Warn(ctx, "opname correction skipped",
			"record_id", rec.ID.String(),
			"warning", result.Warning.Code,
		)
		return
	}

	qty := rec.QtyDifference
	if qty < 0 {
		qty = -qty
	}
	entry := &ledger.Entry{
		ProductID: rec.ProductID,
		Variant:   rec.Variant,
		Qty:       qty,
		TypeID:    adjType.ID,
		Note:      fmt.Sprintf("Stock opname: %s", rec.Reason),
		CreatedBy: rec.CreatedBy,
	}

	if direction == movementtype.DirectionIn {
		err = s.movements.RecordStockIn(ctx, entry)
	} else {
		entry.Destination = movementtype.DestinationCentral
		err = s.movements.RecordStockOut(ctx, entry)
	}
	if err != nil {
		result.CorrectionApplied = false
		result.Warning = apperror.NewStore("write opname correction", err).
			WithDetail("record_id", rec.ID.String())
		logger.Error(ctx, "opname correction failed, count saved without adjustment",
			"record_id", rec.ID.String(),
			"error", err,
		)
		return
	}

	logger.Info(ctx, "opname correction applied",
		"record_id", rec.ID.String(),
		"direction", string(direction),
		"qty", qty,
	)
}

// List returns reconciliation records newest-first.
func (s *Service) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	res, err := s.repo.List(ctx, filter)
	if err != nil {
		return ListResult{}, apperror.NewStore("list opname records", err)
	}
	return res, nil
}
