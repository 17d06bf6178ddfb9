package rmidx

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DebugLog is an optional, mutex-guarded diagnostic sink. The builder and
// lookup engine emit lines to it at key decision points (the number of
// analysis tasks prepared, each segment's selected model and certificate,
// and each Find hit or miss) when one is supplied.
//
// DebugLog is a borrowed parameter, never a package-global: callers that
// want diagnostics construct one with [NewDebugLog] and pass it in via
// [Config]; callers that don't care use [NewNopDebugLog] (the default),
// which costs nothing beyond a single interface-shaped field.
type DebugLog struct {
	mu      sync.Mutex
	buf     strings.Builder
	logger  *zap.Logger
	enabled bool
}

// NewDebugLog returns a DebugLog that records lines (retrievable via Get)
// and also forwards them to logger. Pass zap.NewNop() (or nil) for logger
// if only the in-memory buffer is wanted.
func NewDebugLog(logger *zap.Logger) *DebugLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DebugLog{logger: logger, enabled: true}
}

// NewNopDebugLog returns a DebugLog that discards everything. It is the
// zero-cost default used when Config.Logger is left unset.
func NewNopDebugLog() *DebugLog {
	return &DebugLog{logger: zap.NewNop(), enabled: false}
}

// Debugf appends a formatted line to the buffer and forwards it to the
// underlying zap logger at debug level. A no-op DebugLog skips the
// buffer write entirely.
func (d *DebugLog) Debugf(format string, args ...any) {
	if d == nil {
		return
	}
	d.logger.Sugar().Debugf(format, args...)
	if !d.enabled {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.buf.Len() > 0 {
		d.buf.WriteByte('\n')
	}
	d.buf.WriteString(fmt.Sprintf(format, args...))
}

// Get returns a snapshot of everything recorded so far. Returns "" for a
// no-op or nil DebugLog.
func (d *DebugLog) Get() string {
	if d == nil || !d.enabled {
		return ""
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.String()
}

// Clear discards everything recorded so far.
func (d *DebugLog) Clear() {
	if d == nil || !d.enabled {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buf.Reset()
}
