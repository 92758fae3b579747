package main

import (
	"context"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/branch"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/product"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/opname"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/pkg/logger"
)

// registerAuditHooks writes catalog mutations to the audit trail.
// Hooks run after the commit; a failed audit write is logged by the
// service, never surfaced to the caller.
func registerAuditHooks(audit *postgres.AuditService, products *product.Service, branches *branch.Service) {
	products.Hooks().On(domain.AfterCreate, func(ctx context.Context, p *product.Product) error {
		return audit.LogChange(ctx, "product", p.ID, postgres.AuditActionCreate, postgres.StructToMap(p))
	})
	products.Hooks().On(domain.AfterUpdate, func(ctx context.Context, p *product.Product) error {
		return audit.LogChange(ctx, "product", p.ID, postgres.AuditActionUpdate, postgres.StructToMap(p))
	})
	products.Hooks().On(domain.AfterDelete, func(ctx context.Context, p *product.Product) error {
		return audit.LogChange(ctx, "product", p.ID, postgres.AuditActionDelete, nil)
	})

	branches.Hooks().On(domain.AfterCreate, func(ctx context.Context, b *branch.Branch) error {
		return audit.LogChange(ctx, "branch", b.ID, postgres.AuditActionCreate, postgres.StructToMap(b))
	})
	branches.Hooks().On(domain.AfterUpdate, func(ctx context.Context, b *branch.Branch) error {
		return audit.LogChange(ctx, "branch", b.ID, postgres.AuditActionUpdate, postgres.StructToMap(b))
	})
	branches.Hooks().On(domain.AfterDelete, func(ctx context.Context, b *branch.Branch) error {
		return audit.LogChange(ctx, "branch", b.ID, postgres.AuditActionDelete, nil)
	})
}

// reconcileAuditor mirrors saved opname records into the audit trail.
type reconcileAuditor struct {
	audit *postgres.AuditService
}

func (a *reconcileAuditor) ReconcileRecorded(ctx context.Context, rec *opname.Record) {
	err := a.audit.LogChange(ctx, "stock_opname", rec.ID, postgres.AuditActionReconcile, postgres.StructToMap(rec))
	if err != nil {
		logger.Warn(ctx, "audit write for reconciliation failed",
			"record_id", rec.ID.String(),
			"error", err,
		)
	}
}
