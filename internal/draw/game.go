package draw

import (
	"fmt"

	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/enum"
)

// Game describes the number range and draw size of a lottery.
type Game struct {
	Name     string
	Min      int
	Max      int
	DrawSize int
}

var (
	Keno = Game{Name: string(enum.GameTypeKeno), Min: 1, Max: 70, DrawSize: 20}
	// EuroJackpot covers the five main numbers; the two euro numbers use a
	// separate 1..12 range and are not part of a draw set.
	EuroJackpot = Game{Name: string(enum.GameTypeEuroJackpot), Min: 1, Max: 50, DrawSize: 5}
	Lotto6aus49 = Game{Name: string(enum.GameTypeLotto6aus49), Min: 1, Max: 49, DrawSize: 6}
)

// GameFor resolves a built-in game by type.
func GameFor(t enum.GameType) (Game, error) {
	switch t {
	case enum.GameTypeKeno:
		return Keno, nil
	case enum.GameTypeEuroJackpot:
		return EuroJackpot, nil
	case enum.GameTypeLotto6aus49:
		return Lotto6aus49, nil
	default:
		return Game{}, fmt.Errorf("unsupported game type: %s", t)
	}
}

func (g Game) Validate() error {
	if g.Min < 1 || g.Max > MaxNumber || g.Min > g.Max {
		return fmt.Errorf("%w: range %d..%d must lie within 1..%d", ErrInvalidGame, g.Min, g.Max, MaxNumber)
	}
	if g.DrawSize <= 0 || g.DrawSize > g.Max-g.Min+1 {
		return fmt.Errorf("%w: draw size %d does not fit range %d..%d", ErrInvalidGame, g.DrawSize, g.Min, g.Max)
	}
	return nil
}

func (g Game) InRange(n int) bool {
	return n >= g.Min && n <= g.Max
}

// Numbers returns every number of the game range.
func (g Game) Numbers() []int {
	out := make([]int, 0, g.Max-g.Min+1)
	for n := g.Min; n <= g.Max; n++ {
		out = append(out, n)
	}
	return out
}
