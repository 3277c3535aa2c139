package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/imdario/mergo"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/enum"
)

type Analyses map[string]AnalysisConfig

// AnalysisConfig describes one named run. Unset fields are taken from the
// top-level defaults block. Switches that a default may turn on are pointers
// so an analysis can turn them off again.
type AnalysisConfig struct {
	Name string `yaml:"name"`
	K    int    `yaml:"k"           validate:"required,min=1,max=128"`
	// MaxShared is nil or -1 when containment filtering is off.
	MaxShared  *int         `yaml:"max_shared" validate:"omitempty,min=-1"`
	Workers    int          `yaml:"workers"    validate:"min=0"`
	BatchSize  int          `yaml:"batch_size" validate:"min=0"`
	Sequential *bool        `yaml:"sequential"`
	Pool       PoolConfig   `yaml:"pool"`
	Filter     FilterConfig `yaml:"filter"`
	Window     WindowConfig `yaml:"window"`
	Scan       ScanConfig   `yaml:"scan"`
}

type PoolConfig struct {
	Source  enum.PoolSource `yaml:"source"     validate:"required,oneof=literal history"`
	Numbers []int           `yaml:"numbers"    validate:"required_if=Source literal,dive,min=1,max=128"`
	From    string          `yaml:"from_date"  validate:"required_if=Source history"`
	To      string          `yaml:"to_date"`
}

// FilterConfig holds the structural predicates. Zero values are disabled.
type FilterConfig struct {
	MinSum       int `yaml:"min_sum"        validate:"min=0"`
	MaxSum       int `yaml:"max_sum"        validate:"min=0"`
	MaxPerDecade int `yaml:"max_per_decade" validate:"min=0"`
	LowLimit     int `yaml:"low_limit"      validate:"min=0"`
	MinLow       int `yaml:"min_low"        validate:"min=0"`
}

type WindowConfig struct {
	StartDate   string `yaml:"start_date"`
	EndDate     string `yaml:"end_date"`
	ExcludeDate string `yaml:"exclude_date"`
}

type ScanConfig struct {
	PerDrawGroups *bool `yaml:"per_draw_groups"`
	GroupSizes    []int `yaml:"group_sizes" validate:"dive,min=1"`
}

// ApplyDefaults fills every unset analysis field from defaults and names each
// analysis after its key.
func (a Analyses) ApplyDefaults(defaults AnalysisConfig) error {
	for name, ac := range a {
		// a set pointer is kept even when it points at false or 0
		if err := mergo.Merge(&ac, defaults, mergo.WithoutDereference); err != nil {
			return fmt.Errorf("merge defaults into %s: %w", name, err)
		}
		ac.Name = strings.ToLower(name)
		a[name] = ac
	}
	return nil
}

// Names returns the analysis keys in sorted order.
func (a Analyses) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a Analyses) Get(name string) (AnalysisConfig, error) {
	if ac, ok := a[name]; ok {
		return ac, nil
	}
	return AnalysisConfig{}, fmt.Errorf("analysis %s not found (have %s)", name, strings.Join(a.Names(), ", "))
}
