package logger

import (
	"log"

	"go.uber.org/zap"
)

// New builds a zap logger for the given environment: human-readable output
// in local development, JSON in production.
func New(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	switch env {
	case "local", "dev":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	return logger
}
