package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

// InitLogger mengatur output, format dan level kedua logger.
// format "json" dipakai di production, selain itu text dengan timestamp penuh.
func InitLogger(opts ...LoggerOption) {
	cfg := loggerConfig{level: "info", format: "text"}
	for _, opt := range opts {
		opt(&cfg)
	}

	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	// Set output untuk InfoLogger ke stdout
	InfoLogger.SetOutput(os.Stdout)
	// Set output untuk ErrorLogger ke stderr
	ErrorLogger.SetOutput(os.Stderr)

	var formatter logrus.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if strings.EqualFold(cfg.format, "json") {
		formatter = &logrus.JSONFormatter{}
	}
	InfoLogger.SetFormatter(formatter)
	ErrorLogger.SetFormatter(formatter)

	level, err := logrus.ParseLevel(cfg.level)
	if err != nil {
		level = logrus.InfoLevel
	}
	InfoLogger.SetLevel(level)
	ErrorLogger.SetLevel(logrus.WarnLevel)
}

type loggerConfig struct {
	level  string
	format string
}

type LoggerOption func(*loggerConfig)

func WithLevel(level string) LoggerOption {
	return func(c *loggerConfig) {
		if level != "" {
			c.level = level
		}
	}
}

func WithFormat(format string) LoggerOption {
	return func(c *loggerConfig) {
		if format != "" {
			c.format = format
		}
	}
}
