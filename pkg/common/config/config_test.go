package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
env: dev
game:
  type: keno
history:
  path: data/keno.csv
defaults:
  k: 6
  max_shared: 4
  batch_size: 50
analyses:
  Hot6:
    pool:
      source: literal
      numbers: [1, 2, 3, 4, 5, 6, 7, 8]
    filter:
      min_sum: 20
  wide:
    k: 7
    max_shared: 2
    batch_size: 10
    pool:
      source: history
      from_date: 2024-01-01
services:
  kvstore:
    type: badger
    badger:
      directory: ./data/kv
`

func TestParse_MergesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, DevEnv, cfg.Environment)
	assert.Equal(t, enum.GameTypeKeno, cfg.Game.Type)
	assert.Equal(t, []string{"Hot6", "wide"}, cfg.Analyses.Names())

	hot, err := cfg.Analyses.Get("Hot6")
	require.NoError(t, err)
	assert.Equal(t, "hot6", hot.Name)
	assert.Equal(t, 6, hot.K)
	require.NotNil(t, hot.MaxShared)
	assert.Equal(t, 4, *hot.MaxShared)
	assert.Equal(t, 50, hot.BatchSize)
	assert.Equal(t, 20, hot.Filter.MinSum)

	wide, err := cfg.Analyses.Get("wide")
	require.NoError(t, err)
	assert.Equal(t, 7, wide.K)
	assert.Equal(t, 2, *wide.MaxShared)
	assert.Equal(t, 10, wide.BatchSize)
	assert.Equal(t, enum.PoolSourceHistory, wide.Pool.Source)
	assert.Equal(t, "2024-01-01", wide.Pool.From)

	assert.Equal(t, enum.KVStoreTypeBadger, cfg.Services.KVS.Type)
	assert.False(t, cfg.Services.Nats.Enabled)
}

func TestParse_MaxSharedUnset(t *testing.T) {
	cfg, err := Parse([]byte(`
env: prod
game: {type: lotto6aus49}
history: {path: lotto.csv}
analyses:
  a:
    k: 3
    pool: {source: literal, numbers: [1, 2, 3, 4]}
`))
	require.NoError(t, err)
	a, err := cfg.Analyses.Get("a")
	require.NoError(t, err)
	assert.Nil(t, a.MaxShared)
}

func TestParse_AnalysisTurnsOffInheritedSwitches(t *testing.T) {
	cfg, err := Parse([]byte(`
env: dev
game: {type: keno}
history: {path: k.csv}
defaults:
  k: 4
  max_shared: 3
  sequential: true
  scan: {per_draw_groups: true}
analyses:
  inherit:
    pool: {source: literal, numbers: [1, 2, 3, 4, 5]}
  off:
    max_shared: -1
    sequential: false
    scan: {per_draw_groups: false}
    pool: {source: literal, numbers: [1, 2, 3, 4, 5]}
  strict:
    max_shared: 0
    pool: {source: literal, numbers: [1, 2, 3, 4, 5]}
`))
	require.NoError(t, err)

	inherit, err := cfg.Analyses.Get("inherit")
	require.NoError(t, err)
	assert.Equal(t, 3, *inherit.MaxShared)
	assert.True(t, *inherit.Sequential)
	assert.True(t, *inherit.Scan.PerDrawGroups)

	off, err := cfg.Analyses.Get("off")
	require.NoError(t, err)
	assert.Equal(t, -1, *off.MaxShared)
	assert.False(t, *off.Sequential)
	assert.False(t, *off.Scan.PerDrawGroups)

	strict, err := cfg.Analyses.Get("strict")
	require.NoError(t, err)
	assert.Equal(t, 0, *strict.MaxShared)
	assert.True(t, *strict.Sequential)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad env", `
env: staging
game: {type: keno}
history: {path: k.csv}
analyses: {a: {k: 2, pool: {source: literal, numbers: [1, 2]}}}
`},
		{"unknown game", `
env: dev
game: {type: bingo}
history: {path: k.csv}
analyses: {a: {k: 2, pool: {source: literal, numbers: [1, 2]}}}
`},
		{"no analyses", `
env: dev
game: {type: keno}
history: {path: k.csv}
`},
		{"missing k", `
env: dev
game: {type: keno}
history: {path: k.csv}
analyses: {a: {pool: {source: literal, numbers: [1, 2]}}}
`},
		{"literal pool without numbers", `
env: dev
game: {type: keno}
history: {path: k.csv}
analyses: {a: {k: 2, pool: {source: literal}}}
`},
		{"max shared below -1", `
env: dev
game: {type: keno}
history: {path: k.csv}
analyses: {a: {k: 2, max_shared: -2, pool: {source: literal, numbers: [1, 2]}}}
`},
		{"history pool without date", `
env: dev
game: {type: keno}
history: {path: k.csv}
analyses: {a: {k: 2, pool: {source: history}}}
`},
		{"nats without url", `
env: dev
game: {type: keno}
history: {path: k.csv}
analyses: {a: {k: 2, pool: {source: literal, numbers: [1, 2]}}}
services: {nats: {enabled: true, subject_prefix: k}}
`},
		{"badger without directory", `
env: dev
game: {type: keno}
history: {path: k.csv}
analyses: {a: {k: 2, pool: {source: literal, numbers: [1, 2]}}}
services: {kvstore: {type: badger}}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	a := Analyses{"one": {}, "two": {}}
	_, err := a.Get("three")
	assert.ErrorContains(t, err, "one, two")
}

func TestLoad_ExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "configs", "config.example.yaml"))
	require.NoError(t, err)
	assert.Len(t, cfg.Analyses, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
