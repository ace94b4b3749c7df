// Package config loads alefba settings from flags, ALEFBA_* environment
// variables, an optional config.yaml in the data directory, and defaults,
// in that order of precedence.
package config

import (
	"github.com/abhisek/alefba/internal/llm"
	"github.com/abhisek/alefba/internal/session"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Session  session.Config `mapstructure:"session"`
	LLM      llm.Config     `mapstructure:"llm"`
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LogConfig controls the log file. The TUI owns the terminal, so logs never
// go to stderr while playing.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	File  string `mapstructure:"file" validate:"required"`
}
