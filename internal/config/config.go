// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when the environment cannot be decoded
var ErrParsingConfig = errors.New("failed to parse configuration")

// Config holds the settings shared by the command-line tools
type Config struct {
	LogLevel  string        `env:"AUTOMATON_LOG_LEVEL" envDefault:"info"`
	LogFile   string        `env:"AUTOMATON_LOG_FILE"`
	Separator string        `env:"AUTOMATON_SEPARATOR" envDefault:","`
	Timeout   time.Duration `env:"AUTOMATON_TIMEOUT" envDefault:"5s"`
	MaxInput  int           `env:"AUTOMATON_MAX_INPUT" envDefault:"100000"`
}

// Load reads the optional .env files, then parses the environment.
// Variables already set in the environment win over .env values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		// A missing default .env file is not an error
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if cfg.MaxInput < 0 {
		return Config{}, errors.Join(ErrParsingConfig, errors.New("AUTOMATON_MAX_INPUT must not be negative"))
	}
	return cfg, nil
}
