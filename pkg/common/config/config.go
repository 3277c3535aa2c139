package config

import (
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/enum"
)

type Env string

const (
	DevEnv  Env = "dev"
	ProdEnv Env = "prod"
)

type Config struct {
	Environment Env            `yaml:"env"      validate:"required,oneof=dev prod"`
	Game        GameConfig     `yaml:"game"     validate:"required"`
	History     HistoryConfig  `yaml:"history"  validate:"required"`
	Defaults    AnalysisConfig `yaml:"defaults" validate:"-"`
	Analyses    Analyses       `yaml:"analyses" validate:"required,min=1"`
	Services    Services       `yaml:"services"`
}

// GameConfig selects a built-in game. Min, Max and DrawSize are only read
// for the custom type.
type GameConfig struct {
	Type     enum.GameType `yaml:"type"      validate:"required,oneof=keno eurojackpot lotto6aus49 custom"`
	Min      int           `yaml:"min"       validate:"omitempty,min=1,max=128"`
	Max      int           `yaml:"max"       validate:"omitempty,min=1,max=128"`
	DrawSize int           `yaml:"draw_size" validate:"omitempty,min=1"`
}

type HistoryConfig struct {
	Path              string `yaml:"path"                validate:"required"`
	Delimiter         string `yaml:"delimiter"           validate:"omitempty,len=1"`
	DateColumn        int    `yaml:"date_column"         validate:"min=0"`
	FirstNumberColumn int    `yaml:"first_number_column" validate:"min=0"`
}
