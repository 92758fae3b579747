// Package branch manages the branch catalog used as a stock-out destination.
package branch

import (
	"context"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/entity"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/tx"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain"
)

// Branch is a receiving location for branch-destined stock-out entries.
type Branch struct {
	entity.Catalog

	Address string `db:"address" json:"address,omitempty"`
}

// New creates a Branch with generated ID.
func New(name, address string) *Branch {
	return &Branch{
		Catalog: entity.NewCatalog(name),
		Address: address,
	}
}

// ReferenceChecker reports whether movement history references a branch.
type ReferenceChecker interface {
	BranchReferenced(ctx context.Context, branchID id.ID) (bool, error)
}

// Service provides branch catalog operations.
type Service struct {
	*domain.CatalogService[*Branch]

	refs ReferenceChecker
}

// NewService creates the branch service with duplicate-name and
// deletion guards installed.
func NewService(repo domain.CatalogRepository[*Branch], txm tx.Manager, refs ReferenceChecker) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Branch]{
		Repo:       repo,
		TxManager:  txm,
		EntityName: "branch",
	})
	s := &Service{CatalogService: base, refs: refs}

	base.Hooks().On(domain.BeforeCreate, func(ctx context.Context, b *Branch) error {
		exists, err := repo.ExistsByName(ctx, b.Name)
		if err != nil {
			return apperror.NewStore("check branch name", err)
		}
		if exists {
			return apperror.NewDuplicate("branch", "name", b.Name)
		}
		return nil
	})

	base.Hooks().On(domain.BeforeDelete, func(ctx context.Context, b *Branch) error {
		used, err := s.refs.BranchReferenced(ctx, b.ID)
		if err != nil {
			return apperror.NewStore("check branch references", err)
		}
		if used {
			return apperror.NewReferenceInUse("branch", b.ID.String())
		}
		return nil
	})

	return s
}
