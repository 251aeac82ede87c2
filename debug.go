package cadence

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// logger is the package logger. Hosts replace it with SetLogger.
var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Str("lib", "cadence").Logger().
	Level(zerolog.WarnLevel)

// SetLogger replaces the package logger.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Logger returns the package logger.
func Logger() *zerolog.Logger {
	return &logger
}

// debugStats holds per-tick timing and work counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	animateTime  time.Duration
	composeTime  time.Duration
	animations   int
	objects      int
	interpolated int
	failures     int
}

// debugLog writes tick stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	logger.Debug().
		Dur("animate", stats.animateTime).
		Dur("compose", stats.composeTime).
		Dur("total", stats.animateTime+stats.composeTime).
		Int("animations", stats.animations).
		Int("objects", stats.objects).
		Int("interpolated", stats.interpolated).
		Int("failures", stats.failures).
		Msg("tick")
}

// debugMaxChainDepth is the chain length above which AddObject warns in
// debug mode.
const debugMaxChainDepth = 32

func debugCheckChainDepth(o *LevelObject) {
	if n := len(o.chain); n > debugMaxChainDepth {
		logger.Warn().Str("object", o.ID).Int("depth", n).Int("threshold", debugMaxChainDepth).
			Msg("chain depth exceeds threshold")
	}
}
