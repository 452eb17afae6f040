package psx

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractProfile parses the company header and the #profile section. Name
// defaults to the symbol and sector to "Unknown" when the header is absent.
func extractProfile(doc *goquery.Document, symbol string) CompanyInfo {
	info := CompanyInfo{
		Name:   symbol,
		Symbol: symbol,
		Sector: "Unknown",
	}

	if nameEl := doc.Find(".quote__name").First(); nameEl.Length() > 0 {
		info.Name = strings.TrimSpace(nameEl.Text())
	}
	if sectorEl := doc.Find(".quote__sector").First(); sectorEl.Length() > 0 {
		info.Sector = strings.TrimSpace(sectorEl.Text())
	}

	profile := doc.Find("#profile").First()
	if profile.Length() == 0 {
		return info
	}

	// The portal markup spells the class "decription".
	if descEl := profile.Find(".profile__item--decription p").First(); descEl.Length() > 0 {
		info.Description = strings.TrimSpace(descEl.Text())
	}

	profile.Find(".profile__item--people .tbl tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		personName := strings.TrimSpace(cells.Eq(0).Text())
		role := strings.ToLower(strings.TrimSpace(cells.Eq(1).Text()))
		switch {
		case strings.Contains(role, "ceo"):
			info.CEO = &personName
		case strings.Contains(role, "chairman"):
			info.Chairman = &personName
		case strings.Contains(role, "secretary"):
			info.Secretary = &personName
		}
	})

	profile.Find(".profile__item .item__head").Each(func(_ int, head *goquery.Selection) {
		headText := strings.ToUpper(strings.TrimSpace(head.Text()))
		nextP := head.NextAllFiltered("p").First()
		if nextP.Length() == 0 {
			return
		}
		switch {
		case strings.Contains(headText, "WEBSITE"):
			text := strings.TrimSpace(nextP.Text())
			if link := nextP.Find("a").First(); link.Length() > 0 {
				text = strings.TrimSpace(link.Text())
			}
			info.Website = &text
		case strings.Contains(headText, "AUDITOR"):
			text := strings.TrimSpace(nextP.Text())
			info.Auditor = &text
		case strings.Contains(headText, "FISCAL YEAR"):
			text := strings.TrimSpace(nextP.Text())
			info.FiscalYearEnd = &text
		}
	})

	return info
}
