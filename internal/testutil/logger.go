package testutil

import (
	"io"

	"github.com/dtroode/letterbox-server/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0, logger.FormatText)
}
