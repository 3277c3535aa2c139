package stats

import (
	"fmt"
	"sort"

	"github.com/kengiroy2-g/kenobase-sub007/internal/draw"
	"github.com/kengiroy2-g/kenobase-sub007/internal/match"
	"github.com/samber/lo"
)

type NumberCount struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}

// Frequency counts appearances per game number over the last window draws
// (0 or more than the history means all of it). Entries are ordered by count
// descending, then number ascending.
func Frequency(h *draw.History, window int) ([]NumberCount, error) {
	if h.Len() == 0 {
		return nil, fmt.Errorf("%w: frequency needs at least one draw", match.ErrEmptyHistory)
	}
	from := 0
	if window > 0 && window < h.Len() {
		from = h.Len() - window
	}

	counts := make(map[int]int)
	for i := from; i < h.Len(); i++ {
		for _, n := range h.At(i).Numbers {
			counts[n]++
		}
	}

	out := lo.Map(h.Game().Numbers(), func(n int, _ int) NumberCount {
		return NumberCount{Number: n, Count: counts[n]}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

type Gap struct {
	Number int `json:"number"`
	// Since is the number of draws after the last appearance; -1 if the
	// number never appeared.
	Since int `json:"since"`
}

// Gaps reports, for every game number, how many draws have passed since it
// was last drawn. Entries are in number order.
func Gaps(h *draw.History) ([]Gap, error) {
	if h.Len() == 0 {
		return nil, fmt.Errorf("%w: gaps need at least one draw", match.ErrEmptyHistory)
	}
	last := h.Len() - 1
	out := lo.Map(h.Game().Numbers(), func(n int, _ int) Gap {
		return Gap{Number: n, Since: -1}
	})
	for i := last; i >= 0; i-- {
		m := h.Mask(i)
		for j := range out {
			if out[j].Since < 0 && m.Has(out[j].Number) {
				out[j].Since = last - i
			}
		}
	}
	return out, nil
}

// Top returns at most n entries from the head of counts.
func Top(counts []NumberCount, n int) []NumberCount {
	if n <= 0 || n >= len(counts) {
		return counts
	}
	return counts[:n]
}
