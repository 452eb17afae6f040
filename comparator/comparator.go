// Package comparator produces a side-by-side comparison of two analyzed
// stocks across seven fixed metrics and a plain English verdict.
package comparator

import (
	"fmt"
	"math"
	"strings"

	"psxanalyzer/analyzer"
	"psxanalyzer/psx"
)

// Metric is one pairwise outcome. Winner is "a", "b", or "tie"; ties are
// decided by a metric-specific tolerance band.
type Metric struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	ValueA      any    `json:"value_a"`
	ValueB      any    `json:"value_b"`
	DisplayA    string `json:"display_a"`
	DisplayB    string `json:"display_b"`
	Winner      string `json:"winner"`
	Explanation string `json:"explanation"`
}

// Result aggregates the seven metrics. ScoreA + ScoreB + ties is always 7.
type Result struct {
	Metrics []Metric `json:"metrics"`
	ScoreA  int      `json:"score_a"`
	ScoreB  int      `json:"score_b"`
	Verdict string   `json:"verdict"`
}

// Compare evaluates both stocks across all seven metrics and tallies wins.
func Compare(a, b analyzer.AnalyzedCompany) Result {
	metrics := []Metric{
		comparePE(a, b),
		compareNetProfitMargin(a, b),
		compareEPSGrowth(a, b),
		compareYearChange(a, b),
		compareFreeFloat(a, b),
		compareRisk(a, b),
		compareDividends(a, b),
	}

	scoreA, scoreB := 0, 0
	for _, m := range metrics {
		switch m.Winner {
		case "a":
			scoreA++
		case "b":
			scoreB++
		}
	}

	return Result{
		Metrics: metrics,
		ScoreA:  scoreA,
		ScoreB:  scoreB,
		Verdict: verdict(metrics, scoreA, scoreB, a.Company.Symbol, b.Company.Symbol),
	}
}

// comparePE prefers the lower positive P/E. A negative P/E always loses to
// a positive one; two negatives tie.
func comparePE(a, b analyzer.AnalyzedCompany) Metric {
	peA, peB := a.Price.PERatio, b.Price.PERatio
	nameA, nameB := a.Company.Symbol, b.Company.Symbol

	m := Metric{
		Label:       "P/E Ratio (Price to Earnings)",
		Description: "Lower means cheaper relative to earnings",
		ValueA:      peA,
		ValueB:      peB,
		DisplayA:    fmtValue(peA),
		DisplayB:    fmtValue(peB),
		Winner:      "tie",
		Explanation: "P/E data is not available for both stocks.",
	}

	switch {
	case peA != nil && peB != nil:
		aValid := *peA > 0
		bValid := *peB > 0
		switch {
		case aValid && bValid:
			if math.Abs(*peA-*peB) < 1.0 {
				m.Explanation = "Both stocks have similar P/E ratios."
			} else if *peA < *peB {
				m.Winner = "a"
				m.Explanation = fmt.Sprintf("%s is cheaper relative to its earnings.", nameA)
			} else {
				m.Winner = "b"
				m.Explanation = fmt.Sprintf("%s is cheaper relative to its earnings.", nameB)
			}
		case aValid:
			m.Winner = "a"
			m.Explanation = fmt.Sprintf("%s is loss-making (negative P/E), while %s is profitable.", nameB, nameA)
		case bValid:
			m.Winner = "b"
			m.Explanation = fmt.Sprintf("%s is loss-making (negative P/E), while %s is profitable.", nameA, nameB)
		default:
			m.Explanation = "Both stocks have negative P/E ratios (loss-making)."
		}
	case peA != nil:
		m.Winner = "a"
		m.Explanation = fmt.Sprintf("P/E data is only available for %s.", nameA)
	case peB != nil:
		m.Winner = "b"
		m.Explanation = fmt.Sprintf("P/E data is only available for %s.", nameB)
	}

	return m
}

// latestMargin returns the most recent available net profit margin.
func latestMargin(ratios []psx.RatioYear) *float64 {
	for _, r := range ratios {
		if r.NetProfitMargin != nil {
			return r.NetProfitMargin
		}
	}
	return nil
}

func compareNetProfitMargin(a, b analyzer.AnalyzedCompany) Metric {
	marginA, marginB := latestMargin(a.Ratios), latestMargin(b.Ratios)
	nameA, nameB := a.Company.Symbol, b.Company.Symbol

	m := Metric{
		Label:       "Net Profit Margin",
		Description: "Higher means company keeps more profit",
		ValueA:      marginA,
		ValueB:      marginB,
		DisplayA:    fmtPercent(marginA),
		DisplayB:    fmtPercent(marginB),
		Winner:      "tie",
		Explanation: "Net profit margin data is not available for both stocks.",
	}

	switch {
	case marginA != nil && marginB != nil:
		if math.Abs(*marginA-*marginB) < 1.0 {
			m.Explanation = "Both stocks have similar profit margins."
		} else if *marginA > *marginB {
			m.Winner = "a"
			m.Explanation = fmt.Sprintf("%s keeps more of its revenue as profit.", nameA)
		} else {
			m.Winner = "b"
			m.Explanation = fmt.Sprintf("%s keeps more of its revenue as profit.", nameB)
		}
	case marginA != nil:
		m.Winner = "a"
		m.Explanation = fmt.Sprintf("Margin data is only available for %s.", nameA)
	case marginB != nil:
		m.Winner = "b"
		m.Explanation = fmt.Sprintf("Margin data is only available for %s.", nameB)
	}

	return m
}

// latestGrowth returns the most recent available EPS growth.
func latestGrowth(ratios []psx.RatioYear) *float64 {
	for _, r := range ratios {
		if r.EPSGrowth != nil {
			return r.EPSGrowth
		}
	}
	return nil
}

func compareEPSGrowth(a, b analyzer.AnalyzedCompany) Metric {
	growthA, growthB := latestGrowth(a.Ratios), latestGrowth(b.Ratios)
	nameA, nameB := a.Company.Symbol, b.Company.Symbol

	m := Metric{
		Label:       "EPS Growth",
		Description: "Higher means per-share profit is growing faster",
		ValueA:      growthA,
		ValueB:      growthB,
		DisplayA:    fmtSignedPercent(growthA),
		DisplayB:    fmtSignedPercent(growthB),
		Winner:      "tie",
		Explanation: "EPS growth data is not available for both stocks.",
	}

	switch {
	case growthA != nil && growthB != nil:
		if math.Abs(*growthA-*growthB) < 1.0 {
			m.Explanation = "Both stocks have similar EPS growth."
		} else if *growthA > *growthB {
			m.Winner = "a"
			if *growthB < 0 && *growthA > 0 {
				m.Explanation = fmt.Sprintf("%s's per-share earnings are growing while %s's are shrinking.", nameA, nameB)
			} else {
				m.Explanation = fmt.Sprintf("%s's per-share earnings are growing faster.", nameA)
			}
		} else {
			m.Winner = "b"
			if *growthA < 0 && *growthB > 0 {
				m.Explanation = fmt.Sprintf("%s's per-share earnings are growing while %s's are shrinking.", nameB, nameA)
			} else {
				m.Explanation = fmt.Sprintf("%s's per-share earnings are growing faster.", nameB)
			}
		}
	case growthA != nil:
		m.Winner = "a"
		m.Explanation = fmt.Sprintf("EPS growth data is only available for %s.", nameA)
	case growthB != nil:
		m.Winner = "b"
		m.Explanation = fmt.Sprintf("EPS growth data is only available for %s.", nameB)
	}

	return m
}

func compareYearChange(a, b analyzer.AnalyzedCompany) Metric {
	changeA, changeB := a.Price.YearChangePercent, b.Price.YearChangePercent
	nameA, nameB := a.Company.Symbol, b.Company.Symbol

	m := Metric{
		Label:       "1-Year Price Change",
		Description: "Higher means better stock price performance",
		ValueA:      changeA,
		ValueB:      changeB,
		DisplayA:    fmtSignedPercent(changeA),
		DisplayB:    fmtSignedPercent(changeB),
		Winner:      "tie",
		Explanation: "1-year price change data is not available for both stocks.",
	}

	switch {
	case changeA != nil && changeB != nil:
		if math.Abs(*changeA-*changeB) < 1.0 {
			m.Explanation = "Both stocks had similar price performance over the past year."
		} else if *changeA > *changeB {
			m.Winner = "a"
			m.Explanation = fmt.Sprintf("%s stock price grew more in the past year.", nameA)
		} else {
			m.Winner = "b"
			m.Explanation = fmt.Sprintf("%s stock price grew more in the past year.", nameB)
		}
	case changeA != nil:
		m.Winner = "a"
		m.Explanation = fmt.Sprintf("1-year change data is only available for %s.", nameA)
	case changeB != nil:
		m.Winner = "b"
		m.Explanation = fmt.Sprintf("1-year change data is only available for %s.", nameB)
	}

	return m
}

func compareFreeFloat(a, b analyzer.AnalyzedCompany) Metric {
	ffA, ffB := a.Equity.FreeFloatPercent, b.Equity.FreeFloatPercent
	nameA, nameB := a.Company.Symbol, b.Company.Symbol

	m := Metric{
		Label:       "Free Float (Liquidity)",
		Description: "Higher means easier to buy and sell",
		ValueA:      ffA,
		ValueB:      ffB,
		DisplayA:    fmtPercent(ffA),
		DisplayB:    fmtPercent(ffB),
		Winner:      "tie",
		Explanation: "Free float data is not available for both stocks.",
	}

	switch {
	case ffA != nil && ffB != nil:
		if math.Abs(*ffA-*ffB) < 2.0 {
			m.Explanation = "Both stocks have similar free float levels."
		} else if *ffA > *ffB {
			m.Winner = "a"
			m.Explanation = fmt.Sprintf("%s is easier to trade due to higher free float.", nameA)
		} else {
			m.Winner = "b"
			m.Explanation = fmt.Sprintf("%s is easier to trade due to higher free float.", nameB)
		}
	case ffA != nil:
		m.Winner = "a"
		m.Explanation = fmt.Sprintf("Free float data is only available for %s.", nameA)
	case ffB != nil:
		m.Winner = "b"
		m.Explanation = fmt.Sprintf("Free float data is only available for %s.", nameB)
	}

	return m
}

var riskRank = map[string]int{"low": 1, "moderate": 2, "high": 3}

func compareRisk(a, b analyzer.AnalyzedCompany) Metric {
	riskA, riskB := a.Analysis.RiskLevel, b.Analysis.RiskLevel
	nameA, nameB := a.Company.Symbol, b.Company.Symbol

	m := Metric{
		Label:       "Risk Level",
		Description: "Lower risk is generally better",
		ValueA:      riskA,
		ValueB:      riskB,
		DisplayA:    capitalize(riskA),
		DisplayB:    capitalize(riskB),
	}

	rankA := rankOrDefault(riskRank, riskA, 2)
	rankB := rankOrDefault(riskRank, riskB, 2)

	switch {
	case rankA == rankB:
		m.Winner = "tie"
		m.Explanation = "Both stocks carry a similar level of risk."
	case rankA < rankB:
		m.Winner = "a"
		m.Explanation = fmt.Sprintf("%s carries less overall risk.", nameA)
	default:
		m.Winner = "b"
		m.Explanation = fmt.Sprintf("%s carries less overall risk.", nameB)
	}

	return m
}

var dividendRank = map[string]int{"consistent": 3, "irregular": 2, "none": 1}

func compareDividends(a, b analyzer.AnalyzedCompany) Metric {
	divA, divB := a.Analysis.DividendStatus, b.Analysis.DividendStatus
	nameA, nameB := a.Company.Symbol, b.Company.Symbol

	m := Metric{
		Label:       "Dividend Status",
		Description: "Consistent dividends are better for income",
		ValueA:      divA,
		ValueB:      divB,
		DisplayA:    capitalize(divA),
		DisplayB:    capitalize(divB),
	}

	rankA := rankOrDefault(dividendRank, divA, 0)
	rankB := rankOrDefault(dividendRank, divB, 0)

	switch {
	case rankA == rankB:
		m.Winner = "tie"
		if divA == "none" {
			m.Explanation = "Neither stock pays dividends."
		} else {
			m.Explanation = "Both stocks have similar dividend track records."
		}
	case rankA > rankB:
		m.Winner = "a"
		if divB == "none" {
			m.Explanation = fmt.Sprintf("%s pays dividends, %s does not.", nameA, nameB)
		} else {
			m.Explanation = fmt.Sprintf("%s has a more reliable dividend history.", nameA)
		}
	default:
		m.Winner = "b"
		if divA == "none" {
			m.Explanation = fmt.Sprintf("%s pays dividends, %s does not.", nameB, nameA)
		} else {
			m.Explanation = fmt.Sprintf("%s has a more reliable dividend history.", nameB)
		}
	}

	return m
}

// verdict names the leading side and lists the metrics the trailing side
// nonetheless led.
func verdict(metrics []Metric, scoreA, scoreB int, nameA, nameB string) string {
	var aWins, bWins []string
	for _, m := range metrics {
		switch m.Winner {
		case "a":
			aWins = append(aWins, m.Label)
		case "b":
			bWins = append(bWins, m.Label)
		}
	}

	var lead, detail string
	switch {
	case scoreA > scoreB:
		lead = fmt.Sprintf("%s comes out ahead overall, winning %d out of 7 metrics.", nameA, scoreA)
		if len(bWins) > 0 {
			detail = fmt.Sprintf("However, %s is stronger in %s.", nameB, summarizeWins(bWins))
		} else {
			detail = fmt.Sprintf("%s did not lead in any metric.", nameB)
		}
	case scoreB > scoreA:
		lead = fmt.Sprintf("%s comes out ahead overall, winning %d out of 7 metrics.", nameB, scoreB)
		if len(aWins) > 0 {
			detail = fmt.Sprintf("However, %s is stronger in %s.", nameA, summarizeWins(aWins))
		} else {
			detail = fmt.Sprintf("%s did not lead in any metric.", nameA)
		}
	default:
		lead = fmt.Sprintf("Both stocks are evenly matched, each winning %d metric(s).", scoreA)
		detail = "The best choice depends on what matters most to you as an investor."
	}

	return lead + " " + detail
}

func summarizeWins(wins []string) string {
	lowered := make([]string, len(wins))
	for i, w := range wins {
		lowered[i] = strings.ToLower(w)
	}
	if len(lowered) == 1 {
		return lowered[0]
	}
	return strings.Join(lowered[:len(lowered)-1], ", ") + " and " + lowered[len(lowered)-1]
}

func rankOrDefault(ranks map[string]int, label string, fallback int) int {
	if rank, ok := ranks[label]; ok {
		return rank
	}
	return fallback
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func fmtValue(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func fmtPercent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *v)
}

func fmtSignedPercent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	sign := ""
	if *v > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, *v)
}
