package psx

// CompanyInfo holds the static profile of a listed company.
type CompanyInfo struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Sector        string  `json:"sector"`
	Description   string  `json:"description"`
	CEO           *string `json:"ceo"`
	Chairman      *string `json:"chairman"`
	Secretary     *string `json:"secretary"`
	Website       *string `json:"website"`
	Auditor       *string `json:"auditor"`
	FiscalYearEnd *string `json:"fiscal_year_end"`
}

// PriceData is the current trading snapshot. Any field missing from the
// page stays nil; no cross-field consistency is enforced.
type PriceData struct {
	Current            *float64 `json:"current"`
	Change             *float64 `json:"change"`
	ChangePercent      *float64 `json:"change_percent"`
	Open               *float64 `json:"open"`
	High               *float64 `json:"high"`
	Low                *float64 `json:"low"`
	Volume             *int64   `json:"volume"`
	DayRangeLow        *float64 `json:"day_range_low"`
	DayRangeHigh       *float64 `json:"day_range_high"`
	Week52High         *float64 `json:"week52_high"`
	Week52Low          *float64 `json:"week52_low"`
	LDCP               *float64 `json:"ldcp"`
	PERatio            *float64 `json:"pe_ratio"`
	YearChangePercent  *float64 `json:"year_change_percent"`
	YTDChangePercent   *float64 `json:"ytd_change_percent"`
	CircuitBreakerLow  *float64 `json:"circuit_breaker_low"`
	CircuitBreakerHigh *float64 `json:"circuit_breaker_high"`
}

// EquityData covers capitalization and liquidity. The free-float percent is
// reported by the portal on its own; it is not derived from the share counts.
type EquityData struct {
	MarketCapThousands *float64 `json:"market_cap_thousands"`
	TotalShares        *int64   `json:"total_shares"`
	FreeFloatShares    *int64   `json:"free_float_shares"`
	FreeFloatPercent   *float64 `json:"free_float_percent"`
}

// FinancialPeriod is one reporting period, annual ("2024") or quarterly
// ("Q3 2025"). Periods follow source column order; index 0 is most recent.
type FinancialPeriod struct {
	Period         string   `json:"period"`
	Sales          *float64 `json:"sales"`
	TotalIncome    *float64 `json:"total_income"`
	ProfitAfterTax *float64 `json:"profit_after_tax"`
	EPS            *float64 `json:"eps"`
}

// RatioYear is one year of derived ratios, same ordering as FinancialPeriod.
type RatioYear struct {
	Year            string   `json:"year"`
	NetProfitMargin *float64 `json:"net_profit_margin"`
	EPSGrowth       *float64 `json:"eps_growth"`
	PEG             *float64 `json:"peg"`
}

// PayoutRecord is one dividend or book-closure announcement. All fields are
// free text; nothing here is parsed numerically.
type PayoutRecord struct {
	Date             *string `json:"date"`
	FinancialResults *string `json:"financial_results"`
	Details          *string `json:"details"`
	BookClosure      *string `json:"book_closure"`
}

// IndexPoint is one market index reading from the header ticker strip.
type IndexPoint struct {
	Name          string   `json:"name"`
	Value         *float64 `json:"value"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"change_percent"`
}

// StockListItem is one entry of an index constituent listing.
type StockListItem struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// CompanyReport is everything extracted from one company page.
type CompanyReport struct {
	Company             CompanyInfo       `json:"company"`
	Price               PriceData         `json:"price"`
	Equity              EquityData        `json:"equity"`
	FinancialsAnnual    []FinancialPeriod `json:"financials_annual"`
	FinancialsQuarterly []FinancialPeriod `json:"financials_quarterly"`
	Ratios              []RatioYear       `json:"ratios"`
	Payouts             []PayoutRecord    `json:"payouts"`
	Indices             []IndexPoint      `json:"indices"`
}
