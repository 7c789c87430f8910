package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ihirwe/stockroom/internal/inventory"
	"github.com/ihirwe/stockroom/internal/model"
)

func TestComputeStats(t *testing.T) {
	t.Run("Should report zeros for an empty list", func(t *testing.T) {
		stats := inventory.ComputeStats(nil)

		assert.Zero(t, stats.TotalProducts)
		assert.Zero(t, stats.TotalValue)
		assert.Zero(t, stats.LowStockCount)
		assert.Zero(t, stats.RecentOrders)
	})

	t.Run("Should sum price times stock", func(t *testing.T) {
		stats := inventory.ComputeStats([]model.Product{
			{Price: 100, Stock: 2},
			{Price: 50, Stock: 1},
		})

		assert.Equal(t, float64(250), stats.TotalValue)
		assert.Equal(t, 2, stats.TotalProducts)
	})

	t.Run("Should count stock at or below the threshold as low", func(t *testing.T) {
		stats := inventory.ComputeStats([]model.Product{
			{Stock: 5},
			{Stock: 15},
			{Stock: 10},
			{Stock: 11},
		})

		assert.Equal(t, 2, stats.LowStockCount)
	})

	t.Run("Should always report zero recent orders", func(t *testing.T) {
		stats := inventory.ComputeStats([]model.Product{{Stock: 1, Price: 1}})

		assert.Zero(t, stats.RecentOrders)
	})
}
