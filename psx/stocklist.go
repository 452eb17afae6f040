package psx

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ListURL returns the portal page listing the constituents of an index, or
// the full symbol directory for "ALL".
func ListURL(base, index string) string {
	base = strings.TrimRight(base, "/")
	if index == "ALL" {
		return base + "/symbols"
	}
	return base + "/indices/" + index
}

// ExtractStockList parses a listing table into symbol/name pairs. Rows
// without a symbol cell are dropped.
func ExtractStockList(doc *goquery.Document) []StockListItem {
	var stocks []StockListItem
	doc.Find("table.tbl tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		symbol := strings.ToUpper(strings.TrimSpace(cells.Eq(0).Text()))
		if symbol == "" {
			return
		}
		stocks = append(stocks, StockListItem{
			Symbol: symbol,
			Name:   strings.TrimSpace(cells.Eq(1).Text()),
		})
	})
	return stocks
}
