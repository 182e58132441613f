package daogen_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amanteaux/daogen"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		assert.Equal(t, "daogen: orders not found", daogen.NewNotFoundError("orders", nil).Error())
		assert.Equal(t, "daogen: orders not found (value=42)", daogen.NewNotFoundError("orders", 42).Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := daogen.NewNotFoundError("orders", 1)
		assert.True(t, errors.Is(err, daogen.ErrNotFound))
		assert.Equal(t, "orders", err.Label())
		assert.Equal(t, 1, err.Value())
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := daogen.NewNotFoundError("orders", nil)
		assert.True(t, daogen.IsNotFound(err))
		assert.True(t, daogen.IsNotFound(fmt.Errorf("wrapper: %w", err)))
		assert.True(t, daogen.IsNotFound(daogen.ErrNotFound))
		assert.False(t, daogen.IsNotFound(errors.New("other error")))
		assert.False(t, daogen.IsNotFound(nil))
	})
}

func TestNotSingularError(t *testing.T) {
	err := daogen.NewNotSingularError("orders", 3)
	assert.Equal(t, "daogen: orders not singular (got 3 rows, expected 1)", err.Error())
	assert.True(t, errors.Is(err, daogen.ErrNotSingular))
	assert.Equal(t, 3, err.Count())
	assert.Equal(t, "orders", err.Label())
	assert.True(t, daogen.IsNotSingular(fmt.Errorf("wrapper: %w", err)))
	assert.False(t, daogen.IsNotSingular(daogen.ErrNotFound))
	assert.False(t, daogen.IsNotSingular(nil))
}

func TestQueryError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &daogen.QueryError{Table: "orders", Op: "fetch", Err: cause}
	assert.Equal(t, "daogen: querying orders (fetch): connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, daogen.IsQueryError(fmt.Errorf("wrapper: %w", err)))
	assert.False(t, daogen.IsQueryError(cause))
	assert.False(t, daogen.IsQueryError(nil))
}

func TestMutationError(t *testing.T) {
	cause := errors.New("duplicate key")
	err := &daogen.MutationError{Table: "orders", Op: "insert", Err: cause}
	assert.Equal(t, "daogen: insert orders: duplicate key", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, daogen.IsMutationError(err))
	assert.False(t, daogen.IsMutationError(nil))
}
