package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type swatch struct {
	Name  string `validate:"required"`
	Color string `validate:"omitempty,hex_color"`
}

func TestIsCurrency(t *testing.T) {
	assert.True(t, IsCurrency("INR"))
	assert.True(t, IsCurrency("USD"))
	assert.False(t, IsCurrency("inr"))
	assert.False(t, IsCurrency("XYZ"))
	assert.False(t, IsCurrency(""))
}

func TestStruct_HexColor(t *testing.T) {
	assert.NoError(t, Struct(swatch{Name: "Food", Color: "#FF6B6B"}))
	assert.NoError(t, Struct(swatch{Name: "Food", Color: "#fff"}))
	assert.NoError(t, Struct(swatch{Name: "Food"}))

	err := Struct(swatch{Name: "Food", Color: "red"})
	field, tag, ok := FirstFieldError(err)
	assert.True(t, ok)
	assert.Equal(t, "Color", field)
	assert.Equal(t, "hex_color", tag)
}

func TestFirstFieldError_NotAValidationError(t *testing.T) {
	_, _, ok := FirstFieldError(assert.AnError)
	assert.False(t, ok)
}
