package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name" validate:"required"`
	Hours float64 `json:"hours" validate:"gte=0.25,lte=24"`
	Kind  string  `json:"kind" validate:"omitempty,oneof=A B"`
}

func TestStruct(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, Struct(sample{Name: "x", Hours: 1}))
	})

	t.Run("UsesJSONFieldNames", func(t *testing.T) {
		err := Struct(sample{Hours: 1})
		require.Error(t, err)

		var ve *Error
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "name", ve.Field)
		assert.Equal(t, "name is required", ve.Message)
	})

	t.Run("RangeMessages", func(t *testing.T) {
		err := Struct(sample{Name: "x", Hours: 0.1})
		require.Error(t, err)
		assert.Equal(t, "hours must be at least 0.25", err.Error())

		err = Struct(sample{Name: "x", Hours: 25})
		require.Error(t, err)
		assert.Equal(t, "hours must be at most 24", err.Error())
	})

	t.Run("OneOf", func(t *testing.T) {
		err := Struct(sample{Name: "x", Hours: 1, Kind: "C"})
		require.Error(t, err)
		assert.Equal(t, "kind must be one of: A B", err.Error())
	})
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(New("date", "date is invalid")))
	assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", New("date", "bad"))))
	assert.False(t, IsValidationError(errors.New("boom")))
}
