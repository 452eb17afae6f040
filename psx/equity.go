package psx

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"psxanalyzer/normalize"
)

// extractEquity parses the #equity section. Free-float rows carry either a
// share count or a percentage under the same label; the value's percent
// sign disambiguates.
func extractEquity(doc *goquery.Document) EquityData {
	equity := EquityData{}

	section := doc.Find("#equity").First()
	if section.Length() == 0 {
		return equity
	}

	section.Find(".stats_item").Each(func(_ int, item *goquery.Selection) {
		lbl := item.Find(".stats_label").First()
		val := item.Find(".stats_value").First()
		if lbl.Length() == 0 || val.Length() == 0 {
			return
		}
		labelText := strings.ToUpper(strings.TrimSpace(lbl.Text()))
		valText := strings.TrimSpace(val.Text())

		switch {
		case strings.Contains(labelText, "MARKET CAP"):
			equity.MarketCapThousands = normalize.Float(valText)
		case strings.Contains(labelText, "SHARES") && !strings.Contains(labelText, "FREE"):
			equity.TotalShares = normalize.Int(valText)
		case strings.Contains(labelText, "FREE FLOAT"):
			if strings.Contains(valText, "%") {
				equity.FreeFloatPercent = normalize.Float(valText)
			} else {
				equity.FreeFloatShares = normalize.Int(valText)
			}
		}
	})

	return equity
}
