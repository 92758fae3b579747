package catalog_repo

import (
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/branch"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ domain.CatalogRepository[*branch.Branch] = (*BranchRepo)(nil)

// BranchRepo stores branches.
type BranchRepo struct {
	*BaseCatalogRepo[*branch.Branch]
}

// NewBranchRepo creates the branch repository.
func NewBranchRepo(txManager *postgres.TxManager) *BranchRepo {
	cols := postgres.ExtractDBColumns[branch.Branch]()
	return &BranchRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txManager, "branches", cols,
			func() *branch.Branch { return &branch.Branch{} }),
	}
}
