package dto

import (
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/branch"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/movementtype"
	"github.com/cigadungjayakng-ops/gudang-sah-stock-mate/internal/domain/catalog/product"
)

// --- Products ---

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Name     string   `json:"name" binding:"required"`
	Variants []string `json:"variants"`
}

// ToEntity maps the request to a new product.
func (r CreateProductRequest) ToEntity() *product.Product {
	return product.New(r.Name, r.Variants)
}

// UpdateProductRequest for updating products.
type UpdateProductRequest struct {
	Name     *string   `json:"name"`
	Variants *[]string `json:"variants"`
	Version  int       `json:"version" binding:"required,min=1"`
}

// ApplyTo maps the request onto an existing product.
func (r UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Variants != nil {
		p.Variants = *r.Variants
	}
	p.Version = r.Version
}

// --- Branches ---

// CreateBranchRequest for creating branches.
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// ToEntity maps the request to a new branch.
func (r CreateBranchRequest) ToEntity() *branch.Branch {
	return branch.New(r.Name, r.Address)
}

// UpdateBranchRequest for updating branches.
type UpdateBranchRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Version int     `json:"version" binding:"required,min=1"`
}

// ApplyTo maps the request onto an existing branch.
func (r UpdateBranchRequest) ApplyTo(b *branch.Branch) {
	if r.Name != nil {
		b.Name = *r.Name
	}
	if r.Address != nil {
		b.Address = *r.Address
	}
	b.Version = r.Version
}

// --- Movement Types ---

// CreateMovementTypeRequest for creating movement types.
// Direction comes from the route, not the body.
type CreateMovementTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Destination string `json:"destination"`
}

// ToEntity maps the request to a new movement type.
func (r CreateMovementTypeRequest) ToEntity(direction movementtype.Direction) *movementtype.MovementType {
	t := movementtype.New(direction, r.Name)
	t.Destination = movementtype.Destination(r.Destination)
	return t
}

// UpdateMovementTypeRequest for updating movement types.
type UpdateMovementTypeRequest struct {
	Name        *string `json:"name"`
	Destination *string `json:"destination"`
	Version     int     `json:"version" binding:"required,min=1"`
}

// ApplyTo maps the request onto an existing movement type.
func (r UpdateMovementTypeRequest) ApplyTo(t *movementtype.MovementType) {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Destination != nil {
		t.Destination = movementtype.Destination(*r.Destination)
	}
	t.Version = r.Version
}
