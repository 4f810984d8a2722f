// Package logging builds the service logger
package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/lumberjack.v2"

	"github.com/Kamar-Folarin/coverage-monitor/internal/config"
)

// New returns a JSON logger writing to stdout and the optional rotated file
func New(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetOutput(Writer(cfg, os.Stdout))
	if err != nil && cfg.Level != "" {
		logger.WithField("level", cfg.Level).Warn("Unknown log level, using info")
	}
	return logger
}

// Writer returns console, or console plus a rotated file when configured
func Writer(cfg config.LogConfig, console io.Writer) io.Writer {
	if cfg.File == "" {
		return console
	}
	return io.MultiWriter(console, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		LocalTime:  true,
	})
}
