package psx

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/phuslu/log"

	"psxanalyzer/normalize"
)

// extractQuote parses the #quote section for the price snapshot.
func extractQuote(doc *goquery.Document) PriceData {
	quote := doc.Find("#quote").First()
	if quote.Length() == 0 {
		log.Warn().Msg("quote section not found")
		return PriceData{}
	}

	price := PriceData{}

	if priceEl := quote.Find(".quote__close").First(); priceEl.Length() > 0 {
		text := strings.TrimSpace(priceEl.Text())
		text = strings.ReplaceAll(text, "Rs.", "")
		text = strings.ReplaceAll(text, "Rs", "")
		price.Current = normalize.Float(text)
	}

	if changeEl := quote.Find(".quote__change").First(); changeEl.Length() > 0 {
		if valEl := changeEl.Find(".change__value").First(); valEl.Length() > 0 {
			price.Change = normalize.Float(valEl.Text())
		}
		if pctEl := changeEl.Find(".change__percent").First(); pctEl.Length() > 0 {
			price.ChangePercent = normalize.Float(strings.Trim(strings.TrimSpace(pctEl.Text()), "() "))
		}
	}

	// Everything below lives on the regular-market tab.
	regPanel := quote.Find(`.tabs__panel[data-name="REG"]`).First()
	if regPanel.Length() == 0 {
		return price
	}

	price.Open = normalize.Float(statValue(regPanel, "Open"))
	price.High = normalize.Float(statValue(regPanel, "High"))
	price.Low = normalize.Float(statValue(regPanel, "Low"))
	price.Volume = normalize.Int(statValue(regPanel, "Volume"))
	price.LDCP = normalize.Float(statValue(regPanel, "LDCP"))
	price.PERatio = normalize.Float(statValue(regPanel, "P/E Ratio"))
	price.YearChangePercent = normalize.Float(statValue(regPanel, "1-Year Change"))
	price.YTDChangePercent = normalize.Float(statValue(regPanel, "YTD Change"))

	low, high := rangeValue(regPanel, "52-WEEK")
	price.Week52Low = normalize.Float(low)
	price.Week52High = normalize.Float(high)

	low, high = rangeValue(regPanel, "DAY RANGE")
	price.DayRangeLow = normalize.Float(low)
	price.DayRangeHigh = normalize.Float(high)

	low, high = rangeValue(regPanel, "CIRCUIT BREAKER")
	price.CircuitBreakerLow = normalize.Float(low)
	price.CircuitBreakerHigh = normalize.Float(high)

	return price
}
