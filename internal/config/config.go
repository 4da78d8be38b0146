// Package config loads gridsense settings from YAML and command-line flags.
package config

import "github.com/Faultbox/gridsense/pkg/engine"

// Config holds all settings.
type Config struct {
	Engine  engine.Limits `yaml:"engine"`
	Random  RandomConfig  `yaml:"random"`
	Logging LoggingConfig `yaml:"logging"`
}

// RandomConfig controls the scatter random source.
type RandomConfig struct {
	Seed uint64 `yaml:"seed"` // 0 picks a fresh seed per run
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock engine limits.
func Default() *Config {
	return &Config{
		Engine: engine.DefaultLimits(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// EngineOptions turns the config into engine options.
func (c *Config) EngineOptions() []engine.Option {
	opts := []engine.Option{engine.WithLimits(c.Engine)}
	if c.Random.Seed != 0 {
		opts = append(opts, engine.WithSeed(c.Random.Seed))
	}
	return opts
}
