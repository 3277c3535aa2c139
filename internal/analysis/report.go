package analysis

import (
	"sort"
	"time"

	"github.com/kengiroy2-g/kenobase-sub007/internal/combo"
	"github.com/kengiroy2-g/kenobase-sub007/internal/match"
)

// Evaluation pairs a combination with its match result. Exactly one of
// Result and Err is set; Err marks a combination that could not be
// evaluated and is never dropped from a report.
type Evaluation struct {
	Combination combo.Combination `json:"combination"`
	Result      *match.Result     `json:"result,omitempty"`
	Err         string            `json:"error,omitempty"`
}

func (e Evaluation) Failed() bool {
	return e.Err != ""
}

type Counters struct {
	// Generated counts candidates that passed the predicate.
	Generated int `json:"generated"`
	// Rejected counts candidates removed by the containment filter.
	Rejected    int `json:"rejected"`
	Evaluated   int `json:"evaluated"`
	Unevaluated int `json:"unevaluated"`
	Batches     int `json:"batches"`
	// FailedBatches counts batches whose handler failed as a whole.
	FailedBatches int `json:"failed_batches"`
}

type Report struct {
	Name        string       `json:"name"`
	Evaluations []Evaluation `json:"evaluations"`
	Unevaluated []Evaluation `json:"unevaluated"`
	Counters    Counters     `json:"counters"`
	Summary     Summary      `json:"summary"`
	// Cancelled marks a report that stopped before every candidate was
	// generated, by cancellation or by a panicking candidate source.
	Cancelled bool          `json:"cancelled"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Sort orders both lists by combination so parallel and sequential runs
// print identically.
func (r *Report) Sort() {
	byCombo := func(list []Evaluation) {
		sort.Slice(list, func(i, j int) bool {
			return combo.Compare(list[i].Combination, list[j].Combination) < 0
		})
	}
	byCombo(r.Evaluations)
	byCombo(r.Unevaluated)
}

// Best returns up to n covered evaluations with the fewest draws until
// coverage, ties broken by combination order.
func (r *Report) Best(n int) []Evaluation {
	covered := make([]Evaluation, 0, len(r.Evaluations))
	for _, e := range r.Evaluations {
		if e.Result != nil && e.Result.Covered() {
			covered = append(covered, e)
		}
	}
	sort.Slice(covered, func(i, j int) bool {
		a, b := covered[i].Result.DrawsUntilCoverage, covered[j].Result.DrawsUntilCoverage
		if a != b {
			return a < b
		}
		return combo.Compare(covered[i].Combination, covered[j].Combination) < 0
	})
	if n > 0 && n < len(covered) {
		covered = covered[:n]
	}
	return covered
}

// add folds one evaluated batch into the report.
func (r *Report) add(evals []Evaluation) {
	for _, e := range evals {
		if e.Failed() {
			r.Unevaluated = append(r.Unevaluated, e)
			r.Counters.Unevaluated++
			continue
		}
		r.Evaluations = append(r.Evaluations, e)
		r.Counters.Evaluated++
	}
}

// addFailedBatch marks every combination of a failed batch as unevaluated.
func (r *Report) addFailedBatch(items []combo.Combination, err error) {
	r.Counters.FailedBatches++
	for _, c := range items {
		r.Unevaluated = append(r.Unevaluated, Evaluation{Combination: c, Err: err.Error()})
		r.Counters.Unevaluated++
	}
}
