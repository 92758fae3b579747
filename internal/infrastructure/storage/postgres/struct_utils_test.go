package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/entity"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	Address string `db:"address" json:"address"`
	Skipped string `db:"-" json:"-"`
}

func TestExtractDBColumns_EmbeddedFields(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{"id", "version", "created_at", "name", "address"}
	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	cat := mockCatalog{
		Catalog: entity.Catalog{
			BaseEntity: entity.BaseEntity{
				ID:      id.New(),
				Version: 5,
			},
			Name: "Main Warehouse",
		},
		Address: "Jl. Raya Cigadung 12",
		Skipped: "not persisted",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "Main Warehouse", m["name"])
	assert.Equal(t, "Jl. Raya Cigadung 12", m["address"])
	assert.NotContains(t, m, "-")
}
