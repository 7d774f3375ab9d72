package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LoggingConfig selects the log level, output format and optional file sink.
type LoggingConfig struct {
	Level  string `env:"NEONRAID_LOG_LEVEL" envDefault:"info"`
	Format string `env:"NEONRAID_LOG_FORMAT" envDefault:"text"` // text, json or logfmt
	File   string `env:"NEONRAID_LOG_FILE"`
}

// NewLogger builds a structured logger writing to w.
func NewLogger(cfg LoggingConfig, w io.Writer) (*log.Logger, error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	var formatter log.Formatter
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("log format %q: want text, json or logfmt", cfg.Format)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}), nil
}
