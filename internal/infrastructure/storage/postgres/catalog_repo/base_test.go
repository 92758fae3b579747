package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/apperror"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/product"
)

func TestParseOrderBy(t *testing.T) {
	repo := NewBaseCatalogRepo(nil, "products",
		[]string{"id", "name", "variants", "version", "created_by", "created_at", "updated_at"},
		func() *product.Product { return &product.Product{} })

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "empty defaults to name", orderBy: "", want: "name ASC"},
		{name: "plain field", orderBy: "created_at", want: "created_at ASC"},
		{name: "explicit ascending", orderBy: "+name", want: "name ASC"},
		{name: "descending", orderBy: "-created_at", want: "created_at DESC"},
		{name: "entity column", orderBy: "updated_at", want: "updated_at ASC"},
		{name: "unknown field", orderBy: "evil; DROP TABLE products", wantErr: true},
		{name: "bare sign", orderBy: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
