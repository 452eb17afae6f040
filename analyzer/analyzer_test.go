package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psxanalyzer/psx"
)

func fptr(v float64) *float64 { return &v }

func annual(profits, eps []*float64) []psx.FinancialPeriod {
	periods := make([]psx.FinancialPeriod, len(profits))
	for i := range profits {
		periods[i] = psx.FinancialPeriod{ProfitAfterTax: profits[i]}
		if i < len(eps) {
			periods[i].EPS = eps[i]
		}
	}
	return periods
}

func ratioYears(margins, growths []*float64) []psx.RatioYear {
	years := make([]psx.RatioYear, len(margins))
	for i := range margins {
		years[i] = psx.RatioYear{NetProfitMargin: margins[i]}
		if i < len(growths) {
			years[i].EPSGrowth = growths[i]
		}
	}
	return years
}

func payouts(n int) []psx.PayoutRecord {
	return make([]psx.PayoutRecord, n)
}

func TestValuation(t *testing.T) {
	tests := []struct {
		name string
		pe   *float64
		want string
	}{
		{"missing", nil, "unknown"},
		{"negative", fptr(-5), "loss_making"},
		{"zero counts as cheap", fptr(0), "undervalued"},
		{"just under fifteen", fptr(14.99), "undervalued"},
		{"fifteen", fptr(15), "fairly_valued"},
		{"twenty five inclusive", fptr(25), "fairly_valued"},
		{"above twenty five", fptr(25.01), "overvalued"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valuation(tt.pe))
		})
	}
}

func TestDividendStatus(t *testing.T) {
	assert.Equal(t, "none", dividendStatus(nil))
	assert.Equal(t, "irregular", dividendStatus(payouts(1)))
	assert.Equal(t, "irregular", dividendStatus(payouts(2)))
	assert.Equal(t, "consistent", dividendStatus(payouts(3)))
	assert.Equal(t, "consistent", dividendStatus(payouts(8)))
}

func TestBusinessVerdict(t *testing.T) {
	tests := []struct {
		name       string
		ratios     []psx.RatioYear
		financials []psx.FinancialPeriod
		want       string
	}{
		{"no data at all", nil, nil, "unknown"},
		{
			"rows present but all values missing",
			[]psx.RatioYear{{Year: "2024"}},
			[]psx.FinancialPeriod{{Period: "2024"}},
			"unknown",
		},
		{
			"profitable with high margins",
			ratioYears([]*float64{fptr(25), fptr(22)}, nil),
			annual([]*float64{fptr(100), fptr(90)}, nil),
			"strong",
		},
		{
			"profitable with middling margins",
			ratioYears([]*float64{fptr(12), fptr(14)}, nil),
			annual([]*float64{fptr(100)}, nil),
			"moderate",
		},
		{
			"a loss year dominates strong margins",
			ratioYears([]*float64{fptr(30)}, nil),
			annual([]*float64{fptr(100), fptr(-5)}, nil),
			"weak",
		},
		{
			"margins only, no profit series",
			ratioYears([]*float64{fptr(30)}, nil),
			nil,
			"strong",
		},
		{
			"profitable but thin margins",
			ratioYears([]*float64{fptr(4)}, nil),
			annual([]*float64{fptr(10)}, nil),
			"moderate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, businessVerdict(tt.ratios, tt.financials))
		})
	}
}

func TestFinancialHealth(t *testing.T) {
	tests := []struct {
		name       string
		financials []psx.FinancialPeriod
		ratios     []psx.RatioYear
		want       string
	}{
		{"no periods", nil, nil, "unknown"},
		{
			"profitable with rising eps and growth",
			annual([]*float64{fptr(100), fptr(80)}, []*float64{fptr(10), fptr(8)}),
			ratioYears([]*float64{nil, nil}, []*float64{fptr(12), fptr(5)}),
			"healthy",
		},
		{
			"profitable but eps flat",
			annual([]*float64{fptr(100), fptr(80)}, []*float64{fptr(8), fptr(8)}),
			nil,
			"stable",
		},
		{
			"loss year",
			annual([]*float64{fptr(100), fptr(-20)}, []*float64{fptr(10), fptr(-2)}),
			nil,
			"concerning",
		},
		{
			"eps only, no profit figures",
			annual([]*float64{nil}, []*float64{fptr(5)}),
			nil,
			"concerning",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, financialHealth(tt.financials, tt.ratios))
		})
	}
}

func TestRiskLevel(t *testing.T) {
	assert.Equal(t, "low", riskLevel("undervalued", "strong", "healthy", "consistent"))
	assert.Equal(t, "moderate", riskLevel("fairly_valued", "moderate", "stable", "consistent"))
	assert.Equal(t, "high", riskLevel("loss_making", "weak", "concerning", "none"))
	// Unknown sub-verdicts add nothing.
	assert.Equal(t, "low", riskLevel("unknown", "unknown", "unknown", "consistent"))
}

func TestAnalyzeEmptyReport(t *testing.T) {
	report := psx.CompanyReport{
		Company: psx.CompanyInfo{Name: "Bare Corp", Symbol: "BARE", Sector: "Unknown"},
	}
	result := Analyze(report)

	assert.Equal(t, "unknown", result.BusinessVerdict)
	assert.Equal(t, "unknown", result.FinancialHealth)
	assert.Equal(t, "none", result.DividendStatus)
	assert.Equal(t, "unknown", result.Valuation)
	assert.Equal(t, "low", result.RiskLevel)

	// One real signal (no dividends) plus three fillers.
	require.Len(t, result.SummaryPoints, 4)
	assert.Contains(t, result.SummaryPoints[1], "Bare Corp operates in the Unknown sector.")
	assert.Contains(t, result.SummaryPoints[2], "BARE")
}

func TestAnalyzeLossMakerScenario(t *testing.T) {
	report := psx.CompanyReport{
		Company: psx.CompanyInfo{Name: "Turnaround Ltd", Symbol: "TURN", Sector: "Cement"},
		Price:   psx.PriceData{PERatio: fptr(-5)},
		FinancialsAnnual: annual(
			[]*float64{fptr(50), fptr(40), fptr(30)},
			[]*float64{fptr(6), fptr(5), fptr(4)},
		),
		Ratios: ratioYears(
			[]*float64{fptr(25), fptr(22), fptr(20)},
			[]*float64{fptr(12), fptr(-3), fptr(8)},
		),
		Payouts: payouts(4),
		Equity:  psx.EquityData{FreeFloatPercent: fptr(45)},
	}
	result := Analyze(report)

	assert.Equal(t, "loss_making", result.Valuation)
	assert.Equal(t, "strong", result.BusinessVerdict)
	assert.Equal(t, "healthy", result.FinancialHealth)
	assert.Equal(t, "consistent", result.DividendStatus)
	assert.Equal(t, "moderate", result.RiskLevel)
}

func TestSummaryPointsBounds(t *testing.T) {
	// A report with every signal present must cap at six points.
	full := psx.CompanyReport{
		Company: psx.CompanyInfo{Name: "Full Corp", Symbol: "FULL", Sector: "Banking"},
		Price:   psx.PriceData{PERatio: fptr(8), YearChangePercent: fptr(15.5)},
		FinancialsAnnual: annual(
			[]*float64{fptr(100), fptr(90), fptr(80)},
			[]*float64{fptr(10), fptr(9), fptr(8)},
		),
		Ratios: ratioYears(
			[]*float64{fptr(30), fptr(28)},
			[]*float64{fptr(11), fptr(9)},
		),
		Payouts: payouts(5),
		Equity:  psx.EquityData{FreeFloatPercent: fptr(80)},
	}
	points := summaryPoints(full, Valuation(full.Price.PERatio))
	assert.Len(t, points, 6)

	for _, report := range []psx.CompanyReport{full, {}} {
		pts := summaryPoints(report, Valuation(report.Price.PERatio))
		assert.GreaterOrEqual(t, len(pts), 4)
		assert.LessOrEqual(t, len(pts), 6)
	}
}

func TestSummaryPointsLossWording(t *testing.T) {
	report := psx.CompanyReport{
		Company:          psx.CompanyInfo{Name: "Red Ink Ltd", Symbol: "RED", Sector: "Textile"},
		FinancialsAnnual: annual([]*float64{fptr(-10), fptr(20), fptr(-5)}, nil),
	}
	points := summaryPoints(report, "unknown")
	assert.Contains(t, points[0], "losses in 2 out of the last 3 years")
}

func TestAnalyzeCompanyEmbedsReport(t *testing.T) {
	report := psx.CompanyReport{
		Company: psx.CompanyInfo{Name: "Engro Holdings", Symbol: "ENGROH", Sector: "Fertilizer"},
	}
	company := AnalyzeCompany(report)
	assert.Equal(t, "ENGROH", company.Company.Symbol)
	assert.Equal(t, "unknown", company.Analysis.Valuation)
}
