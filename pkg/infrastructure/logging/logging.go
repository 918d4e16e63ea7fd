// Package logging builds the structured loggers used across the campaign
package logging

import (
	"go.uber.org/zap"
)

// Config holds logging configuration
type Config struct {
	Level       string            `json:"level"`
	Format      string            `json:"format"` // "json" or "console"
	OutputPath  string            `json:"output_path"`
	Fields      map[string]string `json:"fields"`
	Development bool              `json:"development"`
}

// NewLogger creates a zap logger from the configuration
func NewLogger(config Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	if config.Format == "console" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	if config.OutputPath != "" {
		zapConfig.OutputPaths = []string{config.OutputPath}
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	fields := make([]zap.Field, 0, len(config.Fields))
	for k, v := range config.Fields {
		fields = append(fields, zap.String(k, v))
	}
	return logger.With(fields...), nil
}

// NewDefaultLogger creates a console logger at info level on stderr
func NewDefaultLogger() *zap.Logger {
	logger, err := NewLogger(Config{
		Level:      "info",
		Format:     "console",
		OutputPath: "stderr",
		Fields:     map[string]string{"service": "mekparts"},
	})
	if err != nil {
		fallback, _ := zap.NewProduction()
		return fallback
	}
	return logger
}

// PartFields returns the standard fields identifying a part on a unit
func PartFields(unit, part, kind string, location int) []zap.Field {
	return []zap.Field{
		zap.String("unit", unit),
		zap.String("part", part),
		zap.String("kind", kind),
		zap.Int("location", location),
	}
}
