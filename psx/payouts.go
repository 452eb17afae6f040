package psx

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractPayouts parses the #payouts history table. Columns are date,
// financial results, details, and book closure; rows with fewer than two
// cells are skipped.
func extractPayouts(doc *goquery.Document) []PayoutRecord {
	section := doc.Find("#payouts").First()
	if section.Length() == 0 {
		return nil
	}
	table := section.Find("table.tbl").First()
	if table.Length() == 0 {
		return nil
	}

	var records []PayoutRecord
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		records = append(records, PayoutRecord{
			Date:             cellTextAt(cells, 0),
			FinancialResults: cellTextAt(cells, 1),
			Details:          cellTextAt(cells, 2),
			BookClosure:      cellTextAt(cells, 3),
		})
	})

	return records
}

func cellTextAt(cells *goquery.Selection, i int) *string {
	if i >= cells.Length() {
		return nil
	}
	text := strings.TrimSpace(cells.Eq(i).Text())
	return &text
}
