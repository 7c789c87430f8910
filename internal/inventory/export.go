package inventory

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ihirwe/stockroom/internal/model"
)

// ExportFilename is the fixed name of the CSV download.
const ExportFilename = "inventory-products.csv"

var exportHeader = []string{"Name", "Category", "Price (RWF)", "Stock"}

// ExportCSV renders the product list as comma-joined, newline-separated rows
// under a fixed header. Prices use en-US digit grouping.
func ExportCSV(products []model.Product) []byte {
	printer := message.NewPrinter(language.AmericanEnglish)

	rows := make([]string, 0, len(products)+1)
	rows = append(rows, strings.Join(exportHeader, ","))

	for _, p := range products {
		category := ""
		if p.Category != nil {
			category = *p.Category
		}

		rows = append(rows, strings.Join([]string{
			p.Name,
			category,
			printer.Sprint(number.Decimal(p.Price)),
			strconv.Itoa(p.Stock),
		}, ","))
	}

	return []byte(strings.Join(rows, "\n"))
}
