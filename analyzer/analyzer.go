// Package analyzer applies rule-based analysis to an extracted company
// record. All verdicts come from simple threshold rules; summary points are
// written in plain English for non-finance users.
package analyzer

import (
	"fmt"
	"math"

	"psxanalyzer/psx"
)

// Result is the output of the rule engine. Every label comes from its own
// fixed closed set; rule functions are total and fall back to "unknown"
// when their inputs are entirely absent.
type Result struct {
	BusinessVerdict string   `json:"business_verdict"`
	FinancialHealth string   `json:"financial_health"`
	DividendStatus  string   `json:"dividend_status"`
	Valuation       string   `json:"valuation"`
	RiskLevel       string   `json:"risk_level"`
	SummaryPoints   []string `json:"summary_points"`
}

// AnalyzedCompany pairs the extracted report with its analysis. It is the
// shape the comparator and the API responses work with.
type AnalyzedCompany struct {
	psx.CompanyReport
	Analysis Result `json:"analysis"`
}

// Valuation classifies the trailing P/E ratio. Thresholds reflect typical
// PSX multiples.
func Valuation(peRatio *float64) string {
	if peRatio == nil {
		return "unknown"
	}
	switch {
	case *peRatio < 0:
		return "loss_making"
	case *peRatio < 15:
		return "undervalued"
	case *peRatio <= 25:
		return "fairly_valued"
	default:
		return "overvalued"
	}
}

// businessVerdict rates the business on profit margins and consistency.
// An empty profit series counts as consistently profitable; the margin
// average alone then drives the verdict.
func businessVerdict(ratios []psx.RatioYear, financials []psx.FinancialPeriod) string {
	if len(ratios) == 0 && len(financials) == 0 {
		return "unknown"
	}

	margins := availableMargins(ratios)
	profits := availableProfits(financials)
	if len(margins) == 0 && len(profits) == 0 {
		return "unknown"
	}

	allProfitable := true
	for _, p := range profits {
		if p <= 0 {
			allProfitable = false
			break
		}
	}

	avgMargin := 0.0
	if len(margins) > 0 {
		sum := 0.0
		for _, m := range margins {
			sum += m
		}
		avgMargin = sum / float64(len(margins))
	}

	switch {
	case allProfitable && avgMargin > 20:
		return "strong"
	case allProfitable && avgMargin > 10:
		return "moderate"
	case !allProfitable:
		return "weak"
	default:
		return "moderate"
	}
}

// financialHealth rates the company on EPS trend, growth-year count, and
// profit sign. Periods are ordered newest first, so a rising trend means
// the value at index 0 beats the oldest one.
func financialHealth(financials []psx.FinancialPeriod, ratios []psx.RatioYear) string {
	if len(financials) == 0 {
		return "unknown"
	}

	var epsValues []float64
	for _, f := range financials {
		if f.EPS != nil {
			epsValues = append(epsValues, *f.EPS)
		}
	}
	profits := availableProfits(financials)
	var growths []float64
	for _, r := range ratios {
		if r.EPSGrowth != nil {
			growths = append(growths, *r.EPSGrowth)
		}
	}

	if len(epsValues) == 0 && len(profits) == 0 {
		return "unknown"
	}

	epsTrendingUp := false
	if len(epsValues) >= 2 {
		epsTrendingUp = epsValues[0] > epsValues[len(epsValues)-1]
	}

	positiveGrowthCount := 0
	for _, g := range growths {
		if g > 0 {
			positiveGrowthCount++
		}
	}

	allPositive := len(profits) > 0
	for _, p := range profits {
		if p <= 0 {
			allPositive = false
			break
		}
	}

	switch {
	case allPositive && epsTrendingUp && positiveGrowthCount >= len(growths)/2:
		return "healthy"
	case allPositive:
		return "stable"
	default:
		return "concerning"
	}
}

// dividendStatus rates the payout history by count alone.
func dividendStatus(payouts []psx.PayoutRecord) string {
	switch {
	case len(payouts) >= 3:
		return "consistent"
	case len(payouts) >= 1:
		return "irregular"
	default:
		return "none"
	}
}

// riskLevel accumulates an integer score from the sub-verdicts.
func riskLevel(valuation, business, health, dividend string) string {
	score := 0

	switch valuation {
	case "overvalued":
		score += 2
	case "fairly_valued":
		score++
	case "loss_making":
		score += 3
	}

	switch business {
	case "weak":
		score += 2
	case "moderate":
		score++
	}

	switch health {
	case "concerning":
		score += 2
	case "stable":
		score++
	}

	if dividend == "none" {
		score++
	}

	switch {
	case score <= 2:
		return "low"
	case score <= 5:
		return "moderate"
	default:
		return "high"
	}
}

// Analyze runs the rule engine over an extracted report.
func Analyze(report psx.CompanyReport) Result {
	valuation := Valuation(report.Price.PERatio)
	business := businessVerdict(report.Ratios, report.FinancialsAnnual)
	health := financialHealth(report.FinancialsAnnual, report.Ratios)
	dividend := dividendStatus(report.Payouts)
	risk := riskLevel(valuation, business, health, dividend)

	return Result{
		BusinessVerdict: business,
		FinancialHealth: health,
		DividendStatus:  dividend,
		Valuation:       valuation,
		RiskLevel:       risk,
		SummaryPoints:   summaryPoints(report, valuation),
	}
}

// AnalyzeCompany wraps the report together with its analysis.
func AnalyzeCompany(report psx.CompanyReport) AnalyzedCompany {
	return AnalyzedCompany{CompanyReport: report, Analysis: Analyze(report)}
}

// summaryPoints generates 4 to 6 plain English points, one per available
// signal. When fewer than four signals exist, generic sentences fill the
// remainder up to the four-point floor.
func summaryPoints(report psx.CompanyReport, valuation string) []string {
	var points []string

	profits := availableProfits(report.FinancialsAnnual)
	if len(profits) > 0 {
		allPositive := true
		lossYears := 0
		for _, p := range profits {
			if p <= 0 {
				allPositive = false
				lossYears++
			}
		}
		if allPositive {
			points = append(points, fmt.Sprintf(
				"The company has been consistently profitable for the past %d years.", len(profits)))
		} else {
			points = append(points, fmt.Sprintf(
				"The company had losses in %d out of the last %d years, which raises some concern.",
				lossYears, len(profits)))
		}
	}

	margins := availableMargins(report.Ratios)
	if len(margins) > 0 {
		latest := margins[0]
		switch {
		case latest > 50:
			points = append(points, fmt.Sprintf(
				"Net profit margin is very high (%.0f%%), meaning most of what they earn becomes profit.", latest))
		case latest > 20:
			points = append(points, fmt.Sprintf(
				"Net profit margin of %.0f%% is strong - the company keeps a good chunk of its revenue as profit.", latest))
		case latest > 10:
			points = append(points, fmt.Sprintf(
				"Net profit margin of %.0f%% is moderate - typical for many industries.", latest))
		default:
			points = append(points, fmt.Sprintf(
				"Net profit margin of %.0f%% is relatively thin, meaning they keep very little of each rupee earned.", latest))
		}
	}

	var growths []float64
	for _, r := range report.Ratios {
		if r.EPSGrowth != nil {
			growths = append(growths, *r.EPSGrowth)
		}
	}
	if len(growths) > 0 {
		latest := growths[0]
		switch {
		case latest > 50:
			points = append(points, fmt.Sprintf(
				"Earnings per share grew by %.0f%% recently - a very strong jump.", latest))
		case latest > 0:
			points = append(points, fmt.Sprintf(
				"Earnings per share grew by %.1f%% recently, showing the company is increasing what each share earns.", latest))
		case latest < -10:
			points = append(points, fmt.Sprintf(
				"Earnings per share dropped by %.1f%% recently, meaning each share earned less than before.", math.Abs(latest)))
		default:
			points = append(points, "Earnings per share have been roughly stable.")
		}
	}

	if pe := report.Price.PERatio; pe != nil {
		switch valuation {
		case "overvalued":
			points = append(points, fmt.Sprintf(
				"P/E ratio of %.1f means the stock is relatively expensive compared to its earnings - investors are paying a premium.", *pe))
		case "undervalued":
			points = append(points, fmt.Sprintf(
				"P/E ratio of %.1f suggests the stock is cheap relative to earnings - it could be a good value.", *pe))
		case "fairly_valued":
			points = append(points, fmt.Sprintf(
				"P/E ratio of %.1f suggests the stock is reasonably priced for what the company earns.", *pe))
		case "loss_making":
			points = append(points,
				"The company currently has a negative P/E ratio, meaning it is losing money.")
		}
	}

	if ff := report.Equity.FreeFloatPercent; ff != nil {
		switch {
		case *ff >= 70:
			points = append(points, fmt.Sprintf(
				"Free float of %.0f%% means the stock is highly liquid - easy to buy and sell on the market.", *ff))
		case *ff >= 30:
			points = append(points, fmt.Sprintf(
				"Free float of %.0f%% provides reasonable liquidity for trading.", *ff))
		default:
			points = append(points, fmt.Sprintf(
				"Free float is only %.0f%%, meaning most shares are held by insiders and it may be harder to trade.", *ff))
		}
	}

	if len(report.Payouts) > 0 {
		points = append(points, fmt.Sprintf(
			"The company has paid dividends %d time(s) recently, which is a positive sign for investors seeking regular income.",
			len(report.Payouts)))
	} else {
		points = append(points,
			"No recent dividend history was found, so this stock is not paying regular returns to shareholders.")
	}

	if yc := report.Price.YearChangePercent; yc != nil {
		if *yc > 0 {
			points = append(points, fmt.Sprintf("The stock price is up %.1f%% over the past year.", *yc))
		} else if *yc < 0 {
			points = append(points, fmt.Sprintf("The stock price is down %.1f%% over the past year.", math.Abs(*yc)))
		}
	}

	if len(points) > 6 {
		points = points[:6]
	}

	fillers := []string{
		fmt.Sprintf("%s operates in the %s sector.", report.Company.Name, report.Company.Sector),
		fmt.Sprintf("Detailed financial history for %s was not available on the PSX data portal.", report.Company.Symbol),
		"Consider reviewing the company's published accounts for a fuller picture before investing.",
	}
	for i := 0; len(points) < 4 && i < len(fillers); i++ {
		points = append(points, fillers[i])
	}

	return points
}

func availableProfits(financials []psx.FinancialPeriod) []float64 {
	var profits []float64
	for _, f := range financials {
		if f.ProfitAfterTax != nil {
			profits = append(profits, *f.ProfitAfterTax)
		}
	}
	return profits
}

func availableMargins(ratios []psx.RatioYear) []float64 {
	var margins []float64
	for _, r := range ratios {
		if r.NetProfitMargin != nil {
			margins = append(margins, *r.NetProfitMargin)
		}
	}
	return margins
}
