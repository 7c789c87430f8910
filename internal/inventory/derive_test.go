package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ihirwe/stockroom/internal/inventory"
	"github.com/ihirwe/stockroom/internal/model"
	"github.com/ihirwe/stockroom/pkg/ptr"
)

func TestDeriveCategories(t *testing.T) {
	t.Run("Should union declared and product categories without duplicates", func(t *testing.T) {
		products := []model.Product{
			{Name: "Widget", Category: ptr.New("Tools")},
			{Name: "Hammer", Category: ptr.New("Tools")},
			{Name: "Desk", Category: ptr.New("Furniture")},
			{Name: "Cable"},
		}

		got := inventory.DeriveCategories(products, []string{"Office", "Tools"})

		assert.Equal(t, []string{"Office", "Tools", "Furniture"}, got)
	})

	t.Run("Should skip nil and empty category tags", func(t *testing.T) {
		products := []model.Product{
			{Name: "Cable"},
			{Name: "Mouse", Category: ptr.New("")},
		}

		assert.Empty(t, inventory.DeriveCategories(products, nil))
	})

	t.Run("Should deduplicate the declared set itself", func(t *testing.T) {
		got := inventory.DeriveCategories(nil, []string{"Tools", "Tools"})

		assert.Equal(t, []string{"Tools"}, got)
	})
}
