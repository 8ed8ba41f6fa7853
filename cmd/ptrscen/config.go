// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string `yaml:"log_level"`
	Metrics  bool   `yaml:"metrics"`
	Stress   Stress `yaml:"stress"`
}

// Stress sizes the concurrent Lock-vs-Reset run.
type Stress struct {
	Workers int `yaml:"workers"` // concurrent rounds
	Rounds  int `yaml:"rounds"`  // rounds per worker
	Lockers int `yaml:"lockers"` // weak observers racing each round's last Reset
}

func defaultConfig() Config {
	return Config{
		LogLevel: "info",
		Stress: Stress{
			Workers: 4,
			Rounds:  1000,
			Lockers: 4,
		},
	}
}

// loadConfig reads the yaml file at path, if any, then applies
// PTRSCEN_* environment overrides.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
		}
	}

	if v := os.Getenv("PTRSCEN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PTRSCEN_METRICS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("PTRSCEN_METRICS: %w", err)
		}
		cfg.Metrics = b
	}
	for name, dst := range map[string]*int{
		"PTRSCEN_STRESS_WORKERS": &cfg.Stress.Workers,
		"PTRSCEN_STRESS_ROUNDS":  &cfg.Stress.Rounds,
		"PTRSCEN_STRESS_LOCKERS": &cfg.Stress.Lockers,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Stress.Workers < 0 || cfg.Stress.Rounds < 0 || cfg.Stress.Lockers < 0 {
		return fmt.Errorf("stress: negative size %+v", cfg.Stress)
	}
	return nil
}
