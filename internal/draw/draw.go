package draw

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"
)

var (
	ErrInvalidGame = errors.New("invalid game")
	ErrInvalidDraw = errors.New("invalid draw")
)

// Draw is one historical result: a calendar date and the set of numbers drawn.
type Draw struct {
	Date    time.Time
	Numbers []int
	mask    Mask
}

// NewDraw validates nums against the game and normalises date to midnight UTC.
func NewDraw(g Game, date time.Time, nums []int) (Draw, error) {
	if len(nums) != g.DrawSize {
		return Draw{}, fmt.Errorf("%w: %s has %d numbers, want %d", ErrInvalidDraw, date.Format(time.DateOnly), len(nums), g.DrawSize)
	}
	sorted := slices.Clone(nums)
	slices.Sort(sorted)
	var m Mask
	for i, n := range sorted {
		if !g.InRange(n) {
			return Draw{}, fmt.Errorf("%w: %s number %d outside %d..%d", ErrInvalidDraw, date.Format(time.DateOnly), n, g.Min, g.Max)
		}
		if i > 0 && sorted[i-1] == n {
			return Draw{}, fmt.Errorf("%w: %s duplicate number %d", ErrInvalidDraw, date.Format(time.DateOnly), n)
		}
		m = m.With(n)
	}
	return Draw{Date: DateOf(date), Numbers: sorted, mask: m}, nil
}

func (d Draw) Mask() Mask {
	return d.mask
}

func (d Draw) Contains(n int) bool {
	return d.mask.Has(n)
}

// DateOf strips the time of day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// History is an immutable, date-ordered sequence of draws for one game.
// It is safe for concurrent readers.
type History struct {
	game  Game
	draws []Draw
}

// NewHistory copies draws and orders them by date. Equal dates keep their
// input order; they are never merged.
func NewHistory(g Game, draws []Draw) (*History, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	out := make([]Draw, len(draws))
	for i, d := range draws {
		nd, err := NewDraw(g, d.Date, d.Numbers)
		if err != nil {
			return nil, fmt.Errorf("draw %d: %w", i, err)
		}
		out[i] = nd
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return &History{game: g, draws: out}, nil
}

func (h *History) Game() Game {
	return h.game
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.draws)
}

func (h *History) At(i int) Draw {
	return h.draws[i]
}

func (h *History) Mask(i int) Mask {
	return h.draws[i].mask
}

// Draws returns a copy of the draws.
func (h *History) Draws() []Draw {
	return slices.Clone(h.draws)
}

// Span returns the half-open index range [from, to) of draws dated within
// [start, end] inclusive. from == to when nothing falls in range.
func (h *History) Span(start, end time.Time) (from, to int) {
	start, end = DateOf(start), DateOf(end)
	from = sort.Search(len(h.draws), func(i int) bool {
		return !h.draws[i].Date.Before(start)
	})
	to = sort.Search(len(h.draws), func(i int) bool {
		return h.draws[i].Date.After(end)
	})
	if to < from {
		to = from
	}
	return from, to
}

// IndexOf returns the first draw dated on or after date.
func (h *History) IndexOf(date time.Time) int {
	date = DateOf(date)
	return sort.Search(len(h.draws), func(i int) bool {
		return !h.draws[i].Date.Before(date)
	})
}

// DuplicateDates lists dates that occur more than once.
func (h *History) DuplicateDates() []time.Time {
	var out []time.Time
	for i := 1; i < len(h.draws); i++ {
		if h.draws[i].Date.Equal(h.draws[i-1].Date) {
			if len(out) == 0 || !out[len(out)-1].Equal(h.draws[i].Date) {
				out = append(out, h.draws[i].Date)
			}
		}
	}
	return out
}

// First and Last return the date bounds; both are zero for an empty history.
func (h *History) First() time.Time {
	if h.Len() == 0 {
		return time.Time{}
	}
	return h.draws[0].Date
}

func (h *History) Last() time.Time {
	if h.Len() == 0 {
		return time.Time{}
	}
	return h.draws[len(h.draws)-1].Date
}
