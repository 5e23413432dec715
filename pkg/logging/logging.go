package logging

import (
	"errors"
	"io"
	"log/slog"
	"os"
)

// Name is the name of the application that the logger is for.
type Name string

// Config is the configuration for a logger.
type Config struct {
	// name is the application name appended to every log line.
	name Name

	// w is the destination for log output.
	w io.Writer

	// level is the minimum level that will be logged.
	level slog.Leveler
}

// NewConfig creates a logging configuration with the default output and level.
func NewConfig(name Name) *Config {
	return &Config{
		name:  name,
		w:     os.Stdout,
		level: slog.LevelDebug,
	}
}

// WithWriter sets the output writer for the logger.
func (c *Config) WithWriter(w io.Writer) *Config {
	c.w = w
	return c
}

// WithLevel sets the minimum log level.
func (c *Config) WithLevel(level slog.Leveler) *Config {
	c.level = level
	return c
}

// CommonLogger creates the shared application logger. The returned logger is
// also installed as the slog default.
func CommonLogger(c *Config) (*slog.Logger, error) {
	if c == nil {
		return nil, errors.New("nil logging config")
	}

	h := slog.NewJSONHandler(c.w, &slog.HandlerOptions{
		Level: c.level,
	})

	l := slog.New(h).With(slog.String(KeyAppName, string(c.name)))
	slog.SetDefault(l)
	return l, nil
}
