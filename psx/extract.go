// Package psx extracts structured company records from PSX data portal
// pages at https://dps.psx.com.pk/company/{SYMBOL}. All data lives on a
// single server-rendered HTML page; every section is parsed independently
// so one missing panel never blocks the rest.
package psx

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/phuslu/log"
)

// ExtractErrorKind identifies why a whole-page extraction failed.
type ExtractErrorKind int

const (
	// KindNotFound means the page parsed but carries no company identity
	// marker; the symbol is likely invalid.
	KindNotFound ExtractErrorKind = iota
	// KindMalformed means the document is structurally unrecognizable.
	KindMalformed
)

// ExtractError is the only hard failure the extractor produces. Finer
// absences degrade to nil fields instead.
type ExtractError struct {
	Kind   ExtractErrorKind
	Symbol string
}

func (e *ExtractError) Error() string {
	if e.Kind == KindMalformed {
		return fmt.Sprintf("PSX page for '%s' could not be parsed. The page structure may have changed.", e.Symbol)
	}
	return fmt.Sprintf("Could not find company data for '%s'. The symbol may be invalid or the page structure may have changed.", e.Symbol)
}

// SymbolFromURL derives the stock symbol from the URL path's last segment.
func SymbolFromURL(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	parts := strings.Split(trimmed, "/")
	return strings.ToUpper(parts[len(parts)-1])
}

// Extract walks a parsed company page and builds the structured record.
// The quote name element is the page identity marker: without it the whole
// extraction fails; anything else missing leaves nil fields behind.
func Extract(doc *goquery.Document, sourceURL string) (*CompanyReport, error) {
	symbol := SymbolFromURL(sourceURL)

	if strings.TrimSpace(doc.Find("body").Text()) == "" {
		return nil, &ExtractError{Kind: KindMalformed, Symbol: symbol}
	}
	if doc.Find(".quote__name").Length() == 0 {
		return nil, &ExtractError{Kind: KindNotFound, Symbol: symbol}
	}

	log.Debug().Str("symbol", symbol).Msg("extracting company report")

	annual, quarterly := extractFinancials(doc)
	return &CompanyReport{
		Company:             extractProfile(doc, symbol),
		Price:               extractQuote(doc),
		Equity:              extractEquity(doc),
		FinancialsAnnual:    annual,
		FinancialsQuarterly: quarterly,
		Ratios:              extractRatios(doc),
		Payouts:             extractPayouts(doc),
		Indices:             extractIndices(doc),
	}, nil
}

// statValue finds a stats item by loose case-insensitive label match and
// returns its value text. Loose matching tolerates minor label drift on the
// portal; first match wins.
func statValue(container *goquery.Selection, label string) string {
	want := strings.ToLower(label)
	value := ""
	container.Find(".stats_item").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		lbl := item.Find(".stats_label").First()
		val := item.Find(".stats_value").First()
		if lbl.Length() == 0 || val.Length() == 0 {
			return true
		}
		if strings.Contains(strings.ToLower(strings.TrimSpace(lbl.Text())), want) {
			value = strings.TrimSpace(val.Text())
			return false
		}
		return true
	})
	return value
}

// rangeValue finds a range-typed stats row by label and returns the raw
// data-low/data-high attribute pair.
func rangeValue(container *goquery.Selection, label string) (string, string) {
	want := strings.ToUpper(label)
	low, high := "", ""
	container.Find(".stats_item").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		lbl := item.Find(".stats_label").First()
		if lbl.Length() == 0 || !strings.Contains(strings.ToUpper(strings.TrimSpace(lbl.Text())), want) {
			return true
		}
		if nr := item.Find(".numRange").First(); nr.Length() > 0 {
			low = nr.AttrOr("data-low", "")
			high = nr.AttrOr("data-high", "")
		}
		return false
	})
	return low, high
}
