package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// apply defaults
	if err := cfg.Analyses.ApplyDefaults(cfg.Defaults); err != nil {
		return nil, err
	}

	// validate
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("struct validation failed: %w", err)
	}
	for name, ac := range cfg.Analyses {
		if err := validate.Struct(ac); err != nil {
			return nil, fmt.Errorf("analysis %s validation failed: %w", name, err)
		}
	}
	if cfg.Services.KVS.Type != "" && !cfg.Services.KVS.Badger.InMemory && cfg.Services.KVS.Badger.Directory == "" {
		return nil, fmt.Errorf("kvstore badger directory is required")
	}

	return &cfg, nil
}
