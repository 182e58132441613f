package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewSchemaError("shop.orders", "area", "unmapped type", cause)

		assert.Contains(t, err.Error(), "daogen: schema error")
		assert.Contains(t, err.Error(), "table shop.orders")
		assert.Contains(t, err.Error(), "column area")
		assert.Contains(t, err.Error(), "unmapped type")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with table only", func(t *testing.T) {
		err := &SchemaError{Table: "shop.orders"}
		assert.Contains(t, err.Error(), "table shop.orders")
		assert.NotContains(t, err.Error(), "column")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewSchemaError("shop.orders", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrInvalidSchema", func(t *testing.T) {
		err := NewSchemaError("shop.orders", "", "", nil)
		assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrInvalidSchema))
		assert.False(t, errors.Is(err, ErrMissingConfig))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Extension", ".go", "must not start with a dot")

		assert.Contains(t, err.Error(), "daogen: config error")
		assert.Contains(t, err.Error(), "Extension")
		assert.Contains(t, err.Error(), "(value: .go)")
		assert.Contains(t, err.Error(), "must not start with a dot")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("ChildPackage", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "ChildPackage")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("write", "shop/Orders.go", "cannot write file", cause)

		assert.Contains(t, err.Error(), "daogen: generation error")
		assert.Contains(t, err.Error(), "phase write")
		assert.Contains(t, err.Error(), "file: shop/Orders.go")
		assert.Contains(t, err.Error(), "cannot write file")
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("Error message names the artifact", func(t *testing.T) {
		err := NewGenerationError("render", "gen/daos/AbstractOrdersDao.go", "", errors.New("bad column"))
		assert.NotContains(t, err.Error(), " of ")
		err.Table, err.Mode = "shop.orders", ModeDAOBase
		assert.Equal(t, "daogen: generation error in phase render of dao_base shop.orders (file: gen/daos/AbstractOrdersDao.go): bad column", err.Error())
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("io error")
		err := NewGenerationError("render", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
		assert.True(t, errors.Is(err, ErrGenerationFailed))
	})
}

func TestErrorTypeChecking(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		isSchema bool
		isConfig bool
		isGen    bool
	}{
		{
			name:     "SchemaError",
			err:      NewSchemaError("shop.orders", "", "", nil),
			isSchema: true,
		},
		{
			name:     "ConfigError",
			err:      NewConfigError("Package", nil, ""),
			isConfig: true,
		},
		{
			name:  "GenerationError",
			err:   NewGenerationError("write", "", "", nil),
			isGen: true,
		},
		{
			name: "Skip",
			err:  ErrNoSingleColumnKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isSchema, IsSchemaError(tt.err))
			assert.Equal(t, tt.isConfig, IsConfigError(tt.err))
			assert.Equal(t, tt.isGen, IsGenerationError(tt.err))
		})
	}
}

func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewSchemaError("shop.orders", "area", "invalid", nil))
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "shop.orders", schemaErr.Table)
	assert.Equal(t, "area", schemaErr.Column)

	var configErr *ConfigError
	require.True(t, errors.As(NewConfigError("Package", "x", "invalid"), &configErr))
	assert.Equal(t, "Package", configErr.Option)
	assert.Equal(t, "x", configErr.Value)
}
