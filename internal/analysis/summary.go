package analysis

import (
	"github.com/shopspring/decimal"
)

const summaryPlaces = 4

// Summary aggregates evaluated results.
type Summary struct {
	Evaluated int `json:"evaluated"`
	Covered   int `json:"covered"`
	// CoverageRate is Covered / Evaluated.
	CoverageRate decimal.Decimal `json:"coverage_rate"`
	// MeanDrawsUntilCoverage averages over covered evaluations only.
	MeanDrawsUntilCoverage decimal.Decimal `json:"mean_draws_until_coverage"`
	MinDrawsUntilCoverage  int             `json:"min_draws_until_coverage"`
	MaxDrawsUntilCoverage  int             `json:"max_draws_until_coverage"`
	// Groups counts recorded co-occurrence subsets by size.
	Groups map[int]int `json:"groups"`
}

func summarize(evals []Evaluation) Summary {
	s := Summary{
		CoverageRate:           decimal.Zero,
		MeanDrawsUntilCoverage: decimal.Zero,
		Groups:                 make(map[int]int),
	}
	total := decimal.Zero
	for _, e := range evals {
		if e.Result == nil {
			continue
		}
		s.Evaluated++
		for size, groups := range e.Result.Groups {
			s.Groups[size] += len(groups)
		}
		if !e.Result.Covered() {
			continue
		}
		d := e.Result.DrawsUntilCoverage
		if s.Covered == 0 || d < s.MinDrawsUntilCoverage {
			s.MinDrawsUntilCoverage = d
		}
		if d > s.MaxDrawsUntilCoverage {
			s.MaxDrawsUntilCoverage = d
		}
		s.Covered++
		total = total.Add(decimal.NewFromInt(int64(d)))
	}
	if s.Evaluated > 0 {
		s.CoverageRate = decimal.NewFromInt(int64(s.Covered)).
			DivRound(decimal.NewFromInt(int64(s.Evaluated)), summaryPlaces)
	}
	if s.Covered > 0 {
		s.MeanDrawsUntilCoverage = total.DivRound(decimal.NewFromInt(int64(s.Covered)), summaryPlaces)
	}
	return s
}
