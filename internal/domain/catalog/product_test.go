package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates active product with uppercased SKU", func(t *testing.T) {
		product, err := NewProduct("wid-001", "Widget", "pcs")
		require.NoError(t, err)

		assert.Equal(t, "WID-001", product.SKU)
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.True(t, product.Price.IsZero())
		assert.Len(t, product.GetDomainEvents(), 1)
	})

	t.Run("defaults unit to pcs", func(t *testing.T) {
		product, err := NewProduct("WID-002", "Widget", "")
		require.NoError(t, err)
		assert.Equal(t, "pcs", product.Unit)
	})

	t.Run("rejects empty SKU", func(t *testing.T) {
		_, err := NewProduct("", "Widget", "pcs")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("WID-003", "", "pcs")
		assert.Error(t, err)
	})
}

func TestProductSetPrices(t *testing.T) {
	product, err := NewProduct("WID-001", "Widget", "pcs")
	require.NoError(t, err)

	err = product.SetPrices(decimal.NewFromInt(100), decimal.NewFromInt(60))
	require.NoError(t, err)
	assert.True(t, product.Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, product.Cost.Equal(decimal.NewFromInt(60)))

	err = product.SetPrices(decimal.NewFromInt(-1), decimal.Zero)
	assert.Error(t, err)
}

func TestProductSetStockLimits(t *testing.T) {
	product, err := NewProduct("WID-001", "Widget", "pcs")
	require.NoError(t, err)

	maxStock := int64(500)
	require.NoError(t, product.SetStockLimits(10, &maxStock))
	assert.Equal(t, int64(10), product.MinStock)
	assert.Equal(t, int64(500), *product.MaxStock)

	badMax := int64(5)
	assert.Error(t, product.SetStockLimits(10, &badMax))
	assert.Error(t, product.SetStockLimits(-1, nil))
}

func TestProductActivation(t *testing.T) {
	product, err := NewProduct("WID-001", "Widget", "pcs")
	require.NoError(t, err)

	product.Deactivate()
	assert.False(t, product.IsActive())

	product.Activate()
	assert.True(t, product.IsActive())
}
