package stock

import (
	"context"
	"time"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/pkg/logger"
)

// SummaryRefresher rebuilds the balance projection the primary reader
// serves.
type SummaryRefresher interface {
	Refresh(ctx context.Context) error
}

// Refresher keeps the summary projection close to the movement logs by
// rebuilding it on a fixed interval. A failed rebuild is logged and the
// next tick retries; readers fall back to the log scanner in between.
type Refresher struct {
	target   SummaryRefresher
	interval time.Duration
}

// NewRefresher creates a refresher with the given rebuild interval.
func NewRefresher(target SummaryRefresher, interval time.Duration) *Refresher {
	return &Refresher{target: target, interval: interval}
}

// Run rebuilds the projection every interval until the context is
// cancelled. The first rebuild happens immediately.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	if err := r.target.Refresh(ctx); err != nil {
		logger.Warn(ctx, "summary projection refresh failed", "error", err)
	}
}
