package rendercache

import "errors"

// ErrClosed is returned by SetDocument after Close.
var ErrClosed = errors.New("rendercache: cache is closed")
