package psx

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"psxanalyzer/normalize"
)

type financialField int

const (
	fieldNone financialField = iota
	fieldSales
	fieldTotalIncome
	fieldProfitAfterTax
	fieldEPS
)

// financialRowRules classify data rows by their label. Evaluated in order,
// first match wins. "SALES" must not fire when "TOTAL" is present so a
// "Total Income / Sales" row cannot be conflated with plain sales, and the
// EPS row matches only on the exact label.
var financialRowRules = []struct {
	keyword string
	exclude string
	exact   bool
	field   financialField
}{
	{keyword: "TOTAL INCOME", field: fieldTotalIncome},
	{keyword: "SALES", exclude: "TOTAL", field: fieldSales},
	{keyword: "PROFIT AFTER", field: fieldProfitAfterTax},
	{keyword: "EPS", exact: true, field: fieldEPS},
}

func classifyFinancialRow(label string) financialField {
	for _, rule := range financialRowRules {
		if rule.exact {
			if label == rule.keyword {
				return rule.field
			}
			continue
		}
		if strings.Contains(label, rule.keyword) {
			if rule.exclude != "" && strings.Contains(label, rule.exclude) {
				continue
			}
			return rule.field
		}
	}
	return fieldNone
}

// tableHeaders returns the trimmed header cell texts of a table, or nil
// when the table has no header row.
func tableHeaders(table *goquery.Selection) []string {
	headerRow := table.Find("thead tr").First()
	if headerRow.Length() == 0 {
		return nil
	}
	var headers []string
	headerRow.Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})
	return headers
}

// parseFinancialsTable turns one financials table (annual or quarterly)
// into period records. The first header cell is the row-label column; each
// remaining header at index i maps to data cell i+1 in every row, and that
// mapping is built once up front rather than re-derived per row. An empty
// header row yields an empty result, not an error.
func parseFinancialsTable(table *goquery.Selection) []FinancialPeriod {
	headers := tableHeaders(table)
	if len(headers) < 2 {
		return nil
	}
	periods := headers[1:]

	cellIndex := make([]int, len(periods))
	for i := range periods {
		cellIndex[i] = i + 1
	}

	results := make([]FinancialPeriod, len(periods))
	for i, period := range periods {
		results[i] = FinancialPeriod{Period: period}
	}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		field := classifyFinancialRow(strings.ToUpper(strings.TrimSpace(cells.Eq(0).Text())))
		if field == fieldNone {
			return
		}
		for i := range periods {
			if cellIndex[i] >= cells.Length() {
				break
			}
			value := normalize.Float(cells.Eq(cellIndex[i]).Text())
			switch field {
			case fieldSales:
				results[i].Sales = value
			case fieldTotalIncome:
				results[i].TotalIncome = value
			case fieldProfitAfterTax:
				results[i].ProfitAfterTax = value
			case fieldEPS:
				results[i].EPS = value
			}
		}
	})

	return results
}

// extractFinancials parses the #financials section; the annual and
// quarterly tabs share one table scheme.
func extractFinancials(doc *goquery.Document) ([]FinancialPeriod, []FinancialPeriod) {
	section := doc.Find("#financials").First()
	if section.Length() == 0 {
		return nil, nil
	}

	var annual, quarterly []FinancialPeriod
	section.Find(".tabs__panel").Each(func(_ int, panel *goquery.Selection) {
		table := panel.Find("table.tbl").First()
		if table.Length() == 0 {
			return
		}
		switch panel.AttrOr("data-name", "") {
		case "Annual":
			annual = parseFinancialsTable(table)
		case "Quarterly":
			quarterly = parseFinancialsTable(table)
		}
	})

	return annual, quarterly
}
