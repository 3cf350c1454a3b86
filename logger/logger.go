// Package logger builds the game's logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// New builds a logger writing to stdout. LOG_LEVEL and LOG_FORMAT override
// the configured values; an unknown level falls back to info.
func New(cfg Config) *logrus.Logger {
	return newWithOutput(cfg, os.Stdout)
}

func newWithOutput(cfg Config, out io.Writer) *logrus.Logger {
	log := logrus.New()

	level := cfg.Level
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	format := cfg.Format
	if env := os.Getenv("LOG_FORMAT"); env != "" {
		format = env
	}
	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	log.SetOutput(out)
	return log
}

// Discard is a logger for tools and tests that should stay quiet.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
