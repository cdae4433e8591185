package services

import (
	"context"
	"testing"

	"lead-connector/internal/config"
	"lead-connector/internal/infra/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return logger.NewLogger(context.Background(), &config.Config{LogLevel: "error"})
}
