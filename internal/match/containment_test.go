package match

import (
	"testing"
	"time"

	"github.com/kengiroy2-g/kenobase-sub007/internal/combo"
	"github.com/kengiroy2-g/kenobase-sub007/internal/draw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasses_IdenticalDrawIsRejected(t *testing.T) {
	g := draw.Game{Name: "six", Min: 1, Max: 49, DrawSize: 6}
	c := combo.New(3, 11, 19, 27, 38, 45)
	h, err := draw.NewHistory(g, []draw.Draw{
		{Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Numbers: c},
	})
	require.NoError(t, err)

	for maxShared := 0; maxShared < len(c); maxShared++ {
		assert.False(t, Passes(c, h, maxShared), "max_shared=%d", maxShared)
	}
	assert.True(t, Passes(c, h, len(c)))
}

func TestPasses_Threshold(t *testing.T) {
	h := threeDraws(t)
	// overlaps: D1=2 (1,2), D2=1 (14), D3=2 (14,20)
	c := combo.New(1, 2, 14, 20)

	assert.False(t, Passes(c, h, 1))
	assert.True(t, Passes(c, h, 2))

	shared, idx := MaxShared(c, h)
	assert.Equal(t, 2, shared)
	assert.Equal(t, 0, idx)
}

func TestPasses_EmptyHistory(t *testing.T) {
	empty, err := draw.NewHistory(toyGame, nil)
	require.NoError(t, err)
	assert.True(t, Passes(combo.New(1, 2), empty, 0))

	shared, idx := MaxShared(combo.New(1, 2), empty)
	assert.Equal(t, 0, shared)
	assert.Equal(t, -1, idx)
}
