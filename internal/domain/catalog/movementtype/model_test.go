package movementtype

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovementType_Validate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		build   func() *MovementType
		wantErr bool
	}{
		{
			name:  "valid in-type",
			build: func() *MovementType { return New(DirectionIn, "Purchase") },
		},
		{
			name: "valid out-type with destination",
			build: func() *MovementType {
				mt := New(DirectionOut, "Sale")
				mt.Destination = DestinationCentral
				return mt
			},
		},
		{
			name:  "valid out-type without destination",
			build: func() *MovementType { return New(DirectionOut, "Misc Out") },
		},
		{
			name:    "empty name",
			build:   func() *MovementType { return New(DirectionIn, "") },
			wantErr: true,
		},
		{
			name:    "unknown direction",
			build:   func() *MovementType { return New("sideways", "Weird") },
			wantErr: true,
		},
		{
			name: "in-type with destination",
			build: func() *MovementType {
				mt := New(DirectionIn, "Purchase")
				mt.Destination = DestinationCentral
				return mt
			},
			wantErr: true,
		},
		{
			name: "out-type with invalid destination",
			build: func() *MovementType {
				mt := New(DirectionOut, "Sale")
				mt.Destination = "moon"
				return mt
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate(ctx)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDestination_Valid(t *testing.T) {
	assert.True(t, DestinationCentral.Valid())
	assert.True(t, DestinationBranch.Valid())
	assert.True(t, DestinationSupplier.Valid())
	assert.False(t, Destination("").Valid())
	assert.False(t, Destination("warehouse").Valid())
}
