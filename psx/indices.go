package psx

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"psxanalyzer/normalize"
)

// Index change cells combine both figures, e.g. "+120.5 (0.25%)".
var indexChangePattern = regexp.MustCompile(`([+-]?[\d,.]+)\s*\(([+-]?[\d,.]+)%?\)`)

// extractIndices parses the market index ticker strip in the page header.
// Entries missing a name or value are dropped.
func extractIndices(doc *goquery.Document) []IndexPoint {
	ticker := doc.Find(".ticker").First()
	if ticker.Length() == 0 {
		return nil
	}

	var indices []IndexPoint
	ticker.Find(".ticker__item").Each(func(_ int, item *goquery.Selection) {
		nameEl := item.Find(".ticker__name").First()
		valueEl := item.Find(".ticker__value").First()
		if nameEl.Length() == 0 || valueEl.Length() == 0 {
			return
		}

		name := strings.TrimSpace(nameEl.Text())
		value := normalize.Float(valueEl.Text())
		if name == "" || value == nil {
			return
		}

		point := IndexPoint{Name: name, Value: value}
		if changeEl := item.Find(".ticker__change").First(); changeEl.Length() > 0 {
			if m := indexChangePattern.FindStringSubmatch(strings.TrimSpace(changeEl.Text())); m != nil {
				point.Change = normalize.Float(m[1])
				point.ChangePercent = normalize.Float(m[2])
			}
		}

		indices = append(indices, point)
	})

	return indices
}
