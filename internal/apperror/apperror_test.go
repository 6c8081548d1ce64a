package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   error
		code string
	}{
		{"validation", Validation("name must not be empty"), ErrValidation, "validation"},
		{"not found", NotFound("product", "Keyboard"), ErrNotFound, "not_found"},
		{"ambiguous", Ambiguous("category", "Tools", 2), ErrAmbiguous, "ambiguous"},
		{"stock", &InsufficientStockError{ProductID: 1, Requested: 100, Available: 50}, ErrInsufficientStock, "insufficient_stock"},
		{"storage", Storage("insert product", sql.ErrConnDone), ErrStorage, "storage"},
		{"wrapped", fmt.Errorf("purchase: %w", NotFound("product", 9)), ErrNotFound, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.is)
			assert.Equal(t, tt.code, Code(tt.err))
		})
	}
}

func TestStorageKeepsDriverError(t *testing.T) {
	err := Storage("select product", sql.ErrConnDone)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "select product: sql: connection is already closed", err.Error())
}

func TestStorageDoesNotReclassify(t *testing.T) {
	assert.Nil(t, Storage("noop", nil))

	nf := NotFound("category", 3)
	assert.Same(t, nf, Storage("delete category", nf))

	ise := &InsufficientStockError{Available: 2}
	assert.ErrorIs(t, Storage("decrement", ise), ErrInsufficientStock)
}

func TestInsufficientStockMessage(t *testing.T) {
	err := &InsufficientStockError{ProductID: 2, Requested: 100, Available: 50}
	assert.Equal(t, "Not enough stock. Available: 50", err.Error())
}
