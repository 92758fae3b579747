package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyOf(t *testing.T) {
	white := "Putih"
	empty := ""

	assert.Equal(t, NoVariant, KeyOf(nil))
	assert.Equal(t, NoVariant, KeyOf(&empty))
	assert.Equal(t, VariantKey("Putih"), KeyOf(&white))
}

func TestVariantKey_Ptr(t *testing.T) {
	assert.Nil(t, NoVariant.Ptr())
	assert.Nil(t, VariantKey("").Ptr())

	p := VariantKey("Abu-abu").Ptr()
	if assert.NotNil(t, p) {
		assert.Equal(t, "Abu-abu", *p)
	}
}

func TestVariantKey_Roundtrip(t *testing.T) {
	keys := []VariantKey{NoVariant, "Putih", "50kg"}
	for _, k := range keys {
		assert.Equal(t, k, KeyOf(k.Ptr()))
	}
}
