package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres"
)

// AuditHistorySource reads the change trail of one entity.
type AuditHistorySource interface {
	GetEntityHistory(ctx context.Context, entityType string, entityID id.ID, limit int) ([]postgres.AuditEntry, error)
}

// AuditHandler exposes the audit trail, read-only.
type AuditHandler struct {
	*BaseHandler
	source AuditHistorySource
}

// NewAuditHandler creates the audit handler.
func NewAuditHandler(source AuditHistorySource) *AuditHandler {
	return &AuditHandler{BaseHandler: NewBaseHandler(), source: source}
}

// History handles GET /audit/:entityType/:entityId.
func (h *AuditHandler) History(c *gin.Context) {
	entityType := c.Param("entityType")
	entityID, err := id.Parse(c.Param("entityId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid entity id").
			WithDetail("entityId", c.Param("entityId")))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	entries, err := h.source.GetEntityHistory(c.Request.Context(), entityType, entityID, limit)
	if err != nil {
		h.Error(c, apperror.NewStore("read audit history", err))
		return
	}

	h.OK(c, gin.H{
		"entityType": entityType,
		"entityId":   entityID.String(),
		"items":      entries,
	})
}
