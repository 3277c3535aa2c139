package match

import (
	"errors"
	"fmt"

	"github.com/kengiroy2-g/kenobase-sub007/internal/combo"
	"github.com/kengiroy2-g/kenobase-sub007/internal/draw"
	"github.com/kengiroy2-g/kenobase-sub007/internal/pool"
)

// ErrEmptyHistory means the scan window holds no draws. It is distinct from a
// scan that found zero matches.
var ErrEmptyHistory = errors.New("scan window contains no draws")

// NotCovered is the DrawsUntilCoverage value of a scan that reached the end
// of its window before every member appeared.
const NotCovered = -1

// DefaultGroupSizes are the co-occurrence subset sizes recorded by a scan.
var DefaultGroupSizes = []int{2, 3, 4}

// Window selects the draws a scan walks: [Start, End) in history order, with
// an optional target draw skipped. The zero value covers the whole history.
type Window struct {
	Start int
	End   int // exclusive; 0 means the end of the history

	exclude int // index+1 of the skipped draw, 0 for none
}

// Excluding returns w with the draw at index i skipped, typically the draw a
// combination was taken from.
func (w Window) Excluding(i int) Window {
	w.exclude = i + 1
	return w
}

// Excluded reports the skipped index, if any.
func (w Window) Excluded() (int, bool) {
	return w.exclude - 1, w.exclude > 0
}

func (w Window) bounds(h *draw.History) (from, to int) {
	from, to = w.Start, w.End
	if to <= 0 || to > h.Len() {
		to = h.Len()
	}
	if from < 0 {
		from = 0
	}
	if from > to {
		from = to
	}
	return from, to
}

// Size is the number of draws the window would examine.
func (w Window) Size(h *draw.History) int {
	if h == nil {
		return 0
	}
	from, to := w.bounds(h)
	n := to - from
	if idx, ok := w.Excluded(); ok && idx >= from && idx < to {
		n--
	}
	return n
}

type ScanOptions struct {
	// PerDrawGroups records a co-occurrence subset once per draw it appears
	// in instead of once per scan.
	PerDrawGroups bool
	// GroupSizes overrides DefaultGroupSizes.
	GroupSizes []int
}

// Result holds the statistics of one combination against one window.
type Result struct {
	// DrawsUntilCoverage counts draws examined until every member appeared,
	// or NotCovered.
	DrawsUntilCoverage int `json:"draws_until_coverage"`
	// Examined is the number of draws actually scanned.
	Examined       int                         `json:"examined"`
	PerNumberCount map[int]int                 `json:"per_number_count"`
	Groups         map[int][]combo.Combination `json:"co_occurrence_groups"`
}

func (r *Result) Covered() bool {
	return r.DrawsUntilCoverage != NotCovered
}

// Scan walks the window forward and stops as soon as every member of c has
// appeared at least once.
func Scan(c combo.Combination, h *draw.History, w Window, opts ScanOptions) (*Result, error) {
	if len(c) == 0 {
		return nil, fmt.Errorf("%w: empty combination", combo.ErrInvalidArity)
	}
	if w.Size(h) <= 0 {
		return nil, fmt.Errorf("%w: window [%d,%d) of %d draws", ErrEmptyHistory, w.Start, w.End, h.Len())
	}
	if err := checkMembers(c, h.Game()); err != nil {
		return nil, err
	}

	sizes := opts.GroupSizes
	if sizes == nil {
		sizes = DefaultGroupSizes
	}

	res := &Result{
		DrawsUntilCoverage: NotCovered,
		PerNumberCount:     make(map[int]int, len(c)),
		Groups:             make(map[int][]combo.Combination, len(sizes)),
	}
	for _, n := range c {
		res.PerNumberCount[n] = 0
	}

	seen := make(map[string]struct{})
	cm := c.Mask()
	missing := cm
	skip, hasSkip := w.Excluded()
	from, to := w.bounds(h)

	for i := from; i < to; i++ {
		if hasSkip && i == skip {
			continue
		}
		res.Examined++

		overlap := cm.And(h.Mask(i))
		if overlap.IsEmpty() {
			continue
		}
		members := overlap.Numbers()
		for _, n := range members {
			res.PerNumberCount[n]++
		}
		for _, size := range sizes {
			if len(members) < size {
				continue
			}
			for sub := range combo.Subsets(members, size) {
				if !opts.PerDrawGroups {
					key := sub.Key()
					if _, ok := seen[key]; ok {
						continue
					}
					seen[key] = struct{}{}
				}
				res.Groups[size] = append(res.Groups[size], sub)
			}
		}

		missing = missing.AndNot(overlap)
		if missing.IsEmpty() {
			res.DrawsUntilCoverage = res.Examined
			break
		}
	}

	return res, nil
}

// checkMembers rejects numbers the game cannot draw and repeated members.
// Either would let a scan report coverage for a member that never appeared.
func checkMembers(c combo.Combination, g draw.Game) error {
	var m draw.Mask
	for _, n := range c {
		if !g.InRange(n) {
			return fmt.Errorf("%w: %d outside %d..%d", pool.ErrInvalidPool, n, g.Min, g.Max)
		}
		if m.Has(n) {
			return fmt.Errorf("%w: %d repeated in %s", combo.ErrInvalidArity, n, c.Key())
		}
		m = m.With(n)
	}
	return nil
}
