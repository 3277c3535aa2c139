package kvstore

import (
	"testing"

	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/config"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newStore(t *testing.T, prefix string) *BadgerStore {
	t.Helper()
	s, err := NewBadgerStore(BadgerOptions{Directory: t.TempDir(), Prefix: prefix})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBadgerStore_SetGet(t *testing.T) {
	s := newStore(t, "kb")

	require.NoError(t, s.Set("a", "1"))
	v, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.ErrorIs(t, s.Set("", "x"), ErrKeyEmpty)
	assert.Equal(t, "badger", s.GetName())
}

func TestBadgerStore_AnyRoundTrip(t *testing.T) {
	s := newStore(t, "")

	require.NoError(t, s.SetAny("runs/r1", record{Name: "r1", Count: 3}))
	var got record
	found, err := s.GetAny("runs/r1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, record{Name: "r1", Count: 3}, got)

	found, err = s.GetAny("runs/none", &got)
	require.NoError(t, err)
	assert.False(t, found)

	assert.Error(t, s.SetAny("k", nil))
}

func TestBadgerStore_SetManyAndList(t *testing.T) {
	s := newStore(t, "kb")

	require.NoError(t, s.SetManyAny(map[string]any{
		"runs/a/eval/1-2": record{Name: "1-2"},
		"runs/a/eval/1-3": record{Name: "1-3"},
		"runs/b/eval/2-3": record{Name: "2-3"},
	}))

	pairs, err := s.List("runs/a/")
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "runs/a/eval/1-2", pairs[0].Key)
	assert.Equal(t, "runs/a/eval/1-3", pairs[1].Key)

	_, err = s.List("")
	assert.Error(t, err)

	require.NoError(t, s.Delete("runs/a/eval/1-2"))
	pairs, err = s.List("runs/a/")
	require.NoError(t, err)
	assert.Len(t, pairs, 1)
}

func TestNewFromConfig(t *testing.T) {
	s, err := NewFromConfig(config.KVSConfig{
		Type:   enum.KVStoreTypeBadger,
		Badger: config.BadgerConfig{InMemory: true, Prefix: "kb"},
	})
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Set("x", "y"))

	_, err = NewFromConfig(config.KVSConfig{Type: "etcd"})
	assert.ErrorContains(t, err, "unsupported kvstore type")
}
