package combo

import (
	"errors"
	"fmt"
	"iter"
	"math/big"
	"slices"

	"github.com/kengiroy2-g/kenobase-sub007/internal/draw"
	"github.com/kengiroy2-g/kenobase-sub007/internal/pool"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/utils"
)

var ErrInvalidArity = errors.New("invalid combination size")

// Combination is an ascending set of pool members. Values handed out by the
// generator are never modified afterwards.
type Combination []int

func New(nums ...int) Combination {
	c := Combination(slices.Clone(nums))
	slices.Sort(c)
	return c
}

// Key is a stable textual identity, e.g. "1-5-12".
func (c Combination) Key() string {
	return utils.JoinInts(c, "-")
}

func (c Combination) Mask() draw.Mask {
	return draw.MaskOf(c)
}

func (c Combination) Sum() int {
	s := 0
	for _, n := range c {
		s += n
	}
	return s
}

func (c Combination) Equal(o Combination) bool {
	return slices.Equal(c, o)
}

// Compare orders combinations lexicographically.
func Compare(a, b Combination) int {
	return slices.Compare(a, b)
}

func checkArity(n, k int) error {
	if k <= 0 || k > n {
		return fmt.Errorf("%w: k=%d with pool size %d", ErrInvalidArity, k, n)
	}
	return nil
}

// Generate yields every k-subset of the pool in lexicographic order of the
// pool's sorted members. The sequence restarts from the beginning each time
// it is ranged over.
func Generate(p *pool.Pool, k int) (iter.Seq[Combination], error) {
	return GenerateFiltered(p, k, nil)
}

// GenerateFiltered is Generate with candidates failing pred skipped. A nil
// pred accepts everything.
func GenerateFiltered(p *pool.Pool, k int, pred Predicate) (iter.Seq[Combination], error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil pool", pool.ErrInvalidPool)
	}
	members := p.Numbers()
	if err := checkArity(len(members), k); err != nil {
		return nil, err
	}
	return func(yield func(Combination) bool) {
		enumerate(members, k, pred, yield)
	}, nil
}

func enumerate(members []int, k int, pred Predicate, yield func(Combination) bool) {
	n := len(members)
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	// scratch lets the predicate reject without allocating
	scratch := make(Combination, k)
	for {
		for i, j := range idx {
			scratch[i] = members[j]
		}
		if pred == nil || pred(scratch) {
			if !yield(slices.Clone(scratch)) {
				return
			}
		}

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Subsets yields every k-subset of members, which must be ascending.
// Invalid k yields nothing.
func Subsets(members []int, k int) iter.Seq[Combination] {
	return func(yield func(Combination) bool) {
		if k <= 0 || k > len(members) {
			return
		}
		enumerate(members, k, nil, yield)
	}
}

// Count is the binomial coefficient C(n, k).
func Count(n, k int) *big.Int {
	if k < 0 || k > n {
		return big.NewInt(0)
	}
	return new(big.Int).Binomial(int64(n), int64(k))
}

// CountUint64 returns C(n, k) and false when it does not fit in a uint64.
func CountUint64(n, k int) (uint64, bool) {
	c := Count(n, k)
	if !c.IsUint64() {
		return 0, false
	}
	return c.Uint64(), true
}
