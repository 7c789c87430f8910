package inventory

import "github.com/ihirwe/stockroom/internal/model"

// lowStockThreshold is a fixed policy: at or below this quantity a product
// counts as low stock.
const lowStockThreshold = 10

// Stats are the dashboard aggregates derived from the product list.
type Stats struct {
	TotalProducts int     `json:"total_products"`
	TotalValue    float64 `json:"total_value"`
	LowStockCount int     `json:"low_stock_count"`
	// RecentOrders is always zero. There is no order data source yet; the
	// dashboard card is a placeholder.
	RecentOrders int `json:"recent_orders"`
}

// ComputeStats recomputes all aggregates from scratch. It is pure and cheap
// enough to run on every read.
func ComputeStats(products []model.Product) Stats {
	stats := Stats{
		TotalProducts: len(products),
	}

	for _, p := range products {
		stats.TotalValue += p.Price * float64(p.Stock)
		if p.Stock <= lowStockThreshold {
			stats.LowStockCount++
		}
	}

	return stats
}
