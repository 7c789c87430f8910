package inventory_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihirwe/stockroom/internal/inventory"
	"github.com/ihirwe/stockroom/internal/model"
	"github.com/ihirwe/stockroom/pkg/ptr"
)

func TestExportCSV(t *testing.T) {
	t.Run("Should emit only the header for an empty list", func(t *testing.T) {
		got := string(inventory.ExportCSV(nil))

		assert.Equal(t, "Name,Category,Price (RWF),Stock", got)
	})

	// Rows are comma-joined without quoting, matching the dashboard's
	// download format; grouped prices therefore contain bare commas.
	t.Run("Should render one row per product with grouped prices", func(t *testing.T) {
		products := []model.Product{
			{Name: "Widget", Category: ptr.New("Tools"), Stock: 3, Price: 1000},
			{Name: "Cable", Category: nil, Stock: 25, Price: 200.5},
		}

		lines := strings.Split(string(inventory.ExportCSV(products)), "\n")
		require.Len(t, lines, 3)

		assert.Equal(t, "Name,Category,Price (RWF),Stock", lines[0])
		assert.Equal(t, "Widget,Tools,1,000,3", lines[1])
		assert.Equal(t, "Cable,,200.5,25", lines[2])
	})
}
