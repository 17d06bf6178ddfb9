package rmidx

import "fmt"

// Config configures a build. The zero value is not valid; use one of the
// preset constructors ([TinyConfig] .. [MaxConfig]) or set MaxSegments
// directly and call [Config.Validate].
type Config struct {
	// MaxSegments bounds the number of segments the builder partitions the
	// key range into. Must be in [1, MaxSegmentsLimit].
	MaxSegments int

	// Logger receives build- and lookup-decision diagnostics. Nil means no
	// diagnostics are recorded (the zero-cost path).
	Logger *DebugLog
}

// TinyConfig, SmallConfig, ..., MaxConfig are the named MaxSegments presets.
func TinyConfig() Config    { return Config{MaxSegments: TinySegments} }
func SmallConfig() Config   { return Config{MaxSegments: SmallSegments} }
func MediumConfig() Config  { return Config{MaxSegments: MediumSegments} }
func LargeConfig() Config   { return Config{MaxSegments: LargeSegments} }
func XLargeConfig() Config  { return Config{MaxSegments: XLargeSegments} }
func XXLargeConfig() Config { return Config{MaxSegments: XXLargeSegments} }
func MaxConfig() Config     { return Config{MaxSegments: MaxSegments} }

// Validate checks the config and returns a wrapped [ErrInvalidConfig] if
// it is unusable.
func (c Config) Validate() error {
	if c.MaxSegments < 1 || c.MaxSegments > MaxSegmentsLimit {
		return fmt.Errorf("%w: MaxSegments %d outside [1, %d]", ErrInvalidConfig, c.MaxSegments, MaxSegmentsLimit)
	}
	return nil
}

// logger returns c.Logger, or a no-op sink if none was configured.
func (c Config) logger() *DebugLog {
	if c.Logger != nil {
		return c.Logger
	}
	return NewNopDebugLog()
}
