package canvasdoc

import (
	"log/slog"

	"github.com/gogpu/folio"
)

// slogger returns the package logger.
func slogger() *slog.Logger {
	return folio.Logger()
}
