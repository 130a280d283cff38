package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc receives every emitted log entry. Used to forward logs to an
// external sink (OpenTelemetry logs) without coupling this package to it.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

var logMirror atomic.Pointer[MirrorFunc]

// SetMirror installs fn as the global log mirror. Passing nil removes it.
func SetMirror(fn MirrorFunc) {
	if fn == nil {
		logMirror.Store(nil)
		return
	}
	logMirror.Store(&fn)
}

func mirrorEmit(ctx context.Context, level Level, msg string, args ...any) {
	fn := logMirror.Load()
	if fn == nil {
		return
	}
	(*fn)(ctx, level, msg, args...)
}
