package psx

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"psxanalyzer/normalize"
)

type ratioField int

const (
	ratioNone ratioField = iota
	ratioNetProfitMargin
	ratioEPSGrowth
	ratioPEG
)

// ratioRowRules classify ratio table rows; first match wins.
var ratioRowRules = []struct {
	keyword string
	field   ratioField
}{
	{keyword: "NET PROFIT MARGIN", field: ratioNetProfitMargin},
	{keyword: "EPS GROWTH", field: ratioEPSGrowth},
	{keyword: "PEG", field: ratioPEG},
}

func classifyRatioRow(label string) ratioField {
	for _, rule := range ratioRowRules {
		if strings.Contains(label, rule.keyword) {
			return rule.field
		}
	}
	return ratioNone
}

// extractRatios parses the #ratios table with the same header/column scheme
// as the financials tables.
func extractRatios(doc *goquery.Document) []RatioYear {
	section := doc.Find("#ratios").First()
	if section.Length() == 0 {
		return nil
	}
	table := section.Find("table.tbl").First()
	if table.Length() == 0 {
		return nil
	}

	headers := tableHeaders(table)
	if len(headers) < 2 {
		return nil
	}
	years := headers[1:]

	cellIndex := make([]int, len(years))
	for i := range years {
		cellIndex[i] = i + 1
	}

	results := make([]RatioYear, len(years))
	for i, year := range years {
		results[i] = RatioYear{Year: year}
	}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		field := classifyRatioRow(strings.ToUpper(strings.TrimSpace(cells.Eq(0).Text())))
		if field == ratioNone {
			return
		}
		for i := range years {
			if cellIndex[i] >= cells.Length() {
				break
			}
			value := normalize.Float(cells.Eq(cellIndex[i]).Text())
			switch field {
			case ratioNetProfitMargin:
				results[i].NetProfitMargin = value
			case ratioEPSGrowth:
				results[i].EPSGrowth = value
			case ratioPEG:
				results[i].PEG = value
			}
		}
	})

	return results
}
