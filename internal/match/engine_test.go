package match

import (
	"testing"
	"time"

	"github.com/kengiroy2-g/kenobase-sub007/internal/combo"
	"github.com/kengiroy2-g/kenobase-sub007/internal/draw"
	"github.com/kengiroy2-g/kenobase-sub007/internal/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var toyGame = draw.Game{Name: "toy", Min: 1, Max: 20, DrawSize: 10}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}

// threeDraws is D1={1..10}, D2={5..14}, D3={11..20}.
func threeDraws(t *testing.T) *draw.History {
	t.Helper()
	h, err := draw.NewHistory(toyGame, []draw.Draw{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Numbers: seq(1, 10)},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Numbers: seq(5, 14)},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Numbers: seq(11, 20)},
	})
	require.NoError(t, err)
	return h
}

func keys(cs []combo.Combination) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Key()
	}
	return out
}

func TestScan_FullCoverageAfterThreeDraws(t *testing.T) {
	h := threeDraws(t)
	c := combo.New(5, 6, 11, 12, 1, 15)

	res, err := Scan(c, h, Window{}, ScanOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, res.DrawsUntilCoverage)
	assert.Equal(t, 3, res.Examined)
	assert.True(t, res.Covered())
	assert.Equal(t, map[int]int{1: 1, 5: 2, 6: 2, 11: 2, 12: 2, 15: 1}, res.PerNumberCount)

	assert.Equal(t, []string{
		"1-5", "1-6", "5-6",
		"5-11", "5-12", "6-11", "6-12", "11-12",
		"11-15", "12-15",
	}, keys(res.Groups[2]))
	assert.Equal(t, []string{
		"1-5-6",
		"5-6-11", "5-6-12", "5-11-12", "6-11-12",
		"11-12-15",
	}, keys(res.Groups[3]))
	assert.Equal(t, []string{"5-6-11-12"}, keys(res.Groups[4]))
}

func TestScan_PartialCounts(t *testing.T) {
	h := threeDraws(t)
	c := combo.New(5, 6, 11, 12, 1, 15)

	afterOne, err := Scan(c, h, Window{End: 1}, ScanOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 5: 1, 6: 1, 11: 0, 12: 0, 15: 0}, afterOne.PerNumberCount)
	assert.Equal(t, NotCovered, afterOne.DrawsUntilCoverage)

	afterTwo, err := Scan(c, h, Window{End: 2}, ScanOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 5: 2, 6: 2, 11: 1, 12: 1, 15: 0}, afterTwo.PerNumberCount)
	assert.Equal(t, NotCovered, afterTwo.DrawsUntilCoverage)
	assert.Equal(t, 2, afterTwo.Examined)
	assert.False(t, afterTwo.Covered())
}

func TestScan_PerDrawGroups(t *testing.T) {
	h := threeDraws(t)
	c := combo.New(5, 6, 11, 12, 1, 15)

	res, err := Scan(c, h, Window{}, ScanOptions{PerDrawGroups: true})
	require.NoError(t, err)
	// 5-6 and 11-12 recur, so they are logged twice
	assert.Len(t, res.Groups[2], 12)
	assert.Len(t, res.Groups[3], 6)
}

func TestScan_StopsAtCoverage(t *testing.T) {
	h := threeDraws(t)

	res, err := Scan(combo.New(1, 2), h, Window{}, ScanOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.DrawsUntilCoverage)
	assert.Equal(t, 1, res.Examined)
	// D2 was never examined
	assert.Equal(t, map[int]int{1: 1, 2: 1}, res.PerNumberCount)
}

func TestScan_ExcludesTargetDraw(t *testing.T) {
	h := threeDraws(t)
	c := combo.New(1, 2, 3, 4, 5, 6)

	res, err := Scan(c, h, Window{}, ScanOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.DrawsUntilCoverage)

	res, err = Scan(c, h, Window{}.Excluding(0), ScanOptions{})
	require.NoError(t, err)
	assert.Equal(t, NotCovered, res.DrawsUntilCoverage)
	assert.Equal(t, 2, res.Examined)
	assert.Equal(t, 0, res.PerNumberCount[1])
	assert.Equal(t, 1, res.PerNumberCount[5])

	idx, ok := Window{}.Excluding(0).Excluded()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	_, ok = Window{}.Excluded()
	assert.False(t, ok)
}

func TestScan_StartIndex(t *testing.T) {
	h := threeDraws(t)
	res, err := Scan(combo.New(11, 20), h, Window{Start: 2}, ScanOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.DrawsUntilCoverage)
}

func TestScan_EmptyWindowIsAnError(t *testing.T) {
	h := threeDraws(t)
	c := combo.New(1, 2)

	for name, w := range map[string]Window{
		"start past end":    {Start: 3},
		"only target draw":  Window{End: 1}.Excluding(0),
		"start beyond size": {Start: 10, End: 12},
	} {
		t.Run(name, func(t *testing.T) {
			res, err := Scan(c, h, w, ScanOptions{})
			assert.ErrorIs(t, err, ErrEmptyHistory)
			assert.Nil(t, res)
		})
	}

	empty, err := draw.NewHistory(toyGame, nil)
	require.NoError(t, err)
	_, err = Scan(c, empty, Window{}, ScanOptions{})
	assert.ErrorIs(t, err, ErrEmptyHistory)

	_, err = Scan(nil, h, Window{}, ScanOptions{})
	assert.ErrorIs(t, err, combo.ErrInvalidArity)
}

func TestScan_RejectsInvalidMembers(t *testing.T) {
	h := threeDraws(t)

	tests := []struct {
		name string
		c    combo.Combination
		want error
	}{
		{"above game max", combo.New(1, 200), pool.ErrInvalidPool},
		{"inside mask range but above game max", combo.New(1, 21), pool.ErrInvalidPool},
		{"below game min", combo.New(0, 5), pool.ErrInvalidPool},
		{"repeated member", combo.New(3, 3, 7), combo.ErrInvalidArity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Scan(tt.c, h, Window{}, ScanOptions{})
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, res)
		})
	}
}

func TestScan_Idempotent(t *testing.T) {
	h := threeDraws(t)
	c := combo.New(2, 7, 13, 19)

	first, err := Scan(c, h, Window{}, ScanOptions{})
	require.NoError(t, err)
	second, err := Scan(c, h, Window{}, ScanOptions{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScan_CustomGroupSizes(t *testing.T) {
	h := threeDraws(t)
	res, err := Scan(combo.New(5, 6, 11, 12), h, Window{}, ScanOptions{GroupSizes: []int{4}})
	require.NoError(t, err)
	assert.Empty(t, res.Groups[2])
	assert.Equal(t, []string{"5-6-11-12"}, keys(res.Groups[4]))
}

func TestWindowSize(t *testing.T) {
	h := threeDraws(t)
	assert.Equal(t, 3, Window{}.Size(h))
	assert.Equal(t, 2, Window{}.Excluding(1).Size(h))
	assert.Equal(t, 2, Window{Start: 1}.Size(h))
	// exclusion outside the window changes nothing
	assert.Equal(t, 2, Window{Start: 1}.Excluding(0).Size(h))
	assert.Equal(t, 0, Window{}.Size(nil))
}
