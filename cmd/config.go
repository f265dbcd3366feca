package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config lists the feeds to import.
type Config struct {
	Agencies []AgencyEntry `yaml:"agencies" validate:"required,min=1,dive"`
}

type AgencyEntry struct {
	AgencyKey string   `yaml:"agencyKey" validate:"required"`
	Path      string   `yaml:"path" validate:"required"`
	Exclude   []string `yaml:"exclude"`
}

func loadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
