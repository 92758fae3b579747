package handlers

import (
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/branch"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/http/v1/dto"
)

// BranchHTTPHandler is a type alias to shorten signatures.
type BranchHTTPHandler = CatalogHandler[
	*branch.Branch,
	dto.CreateBranchRequest,
	dto.UpdateBranchRequest,
]

// NewBranchHandler creates the configured generic handler for branches.
func NewBranchHandler(base *BaseHandler, service *branch.Service) *BranchHTTPHandler {
	config := CatalogHandlerConfig[
		*branch.Branch,
		dto.CreateBranchRequest,
		dto.UpdateBranchRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "branch",

		MapCreateDTO: func(req dto.CreateBranchRequest) *branch.Branch {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateBranchRequest, existing *branch.Branch) *branch.Branch {
			req.ApplyTo(existing)
			return existing
		},
	}

	return NewCatalogHandler(base, config)
}
