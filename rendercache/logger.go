package rendercache

import (
	"log/slog"

	"github.com/gogpu/folio"
)

// slogger returns the logger shared with the root package.
func slogger() *slog.Logger { return folio.Logger() }
