package pool

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/kengiroy2-g/kenobase-sub007/internal/draw"
	"github.com/samber/lo"
)

var (
	ErrInvalidPool = errors.New("invalid pool")
	ErrEmptyRange  = errors.New("no draws in date range")
)

// Pool is an immutable set of candidate numbers.
type Pool struct {
	game    draw.Game
	numbers []int
	mask    draw.Mask
}

// FromLiteral builds a pool from an explicit list. Repeated numbers collapse.
func FromLiteral(g draw.Game, numbers []int) (*Pool, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPool, err)
	}
	if len(numbers) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPool)
	}
	for _, n := range numbers {
		if !g.InRange(n) {
			return nil, fmt.Errorf("%w: %d outside %d..%d", ErrInvalidPool, n, g.Min, g.Max)
		}
	}
	nums := lo.Uniq(numbers)
	slices.Sort(nums)
	return &Pool{game: g, numbers: nums, mask: draw.MaskOf(nums)}, nil
}

// FromHistoryRange unions the numbers of every draw dated within
// [start, end] inclusive.
func FromHistoryRange(h *draw.History, start, end time.Time) (*Pool, error) {
	if h == nil || h.Len() == 0 {
		return nil, fmt.Errorf("%w: history is empty", ErrEmptyRange)
	}
	from, to := h.Span(start, end)
	if from == to {
		return nil, fmt.Errorf("%w: %s..%s", ErrEmptyRange, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	var m draw.Mask
	for i := from; i < to; i++ {
		m = m.Or(h.Mask(i))
	}
	return &Pool{game: h.Game(), numbers: m.Numbers(), mask: m}, nil
}

func (p *Pool) Game() draw.Game {
	return p.game
}

// Numbers returns the members in ascending order.
func (p *Pool) Numbers() []int {
	return slices.Clone(p.numbers)
}

func (p *Pool) Size() int {
	return len(p.numbers)
}

func (p *Pool) Contains(n int) bool {
	return p.mask.Has(n)
}

func (p *Pool) Mask() draw.Mask {
	return p.mask
}

func (p *Pool) String() string {
	return fmt.Sprintf("%v", p.numbers)
}
