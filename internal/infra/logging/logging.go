// Package logging builds the service's zap logger.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a development logger for mode "dev"/"development" and a JSON
// production logger otherwise.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "dev", "development":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	return cfg.Build()
}

// Secret logs only whether a credential is set and its last four characters.
func Secret(key, value string) zap.Field {
	switch {
	case value == "":
		return zap.String(key, "<unset>")
	case len(value) <= 4:
		return zap.String(key, "[REDACTED]")
	default:
		return zap.String(key, "…"+value[len(value)-4:])
	}
}
