package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a zap logger. "prod" and "production" get JSON output at info
// level; anything else gets the console development config.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
