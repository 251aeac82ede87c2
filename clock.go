package cadence

import "time"

// Clock supplies the current time in seconds. Animations read it once per
// Update.
type Clock interface {
	Now() float64
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() float64

// Now calls f.
func (f ClockFunc) Now() float64 { return f() }

// RealClock reports wall-clock seconds since it was created.
type RealClock struct {
	start time.Time
}

// NewRealClock creates a RealClock starting at zero now.
func NewRealClock() *RealClock {
	return &RealClock{start: time.Now()}
}

// Now returns the seconds elapsed since NewRealClock.
func (c *RealClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// ExternalClock is a clock the host drives, typically from the music
// playback position, so audio-synced animations pause and seek with the song.
type ExternalClock struct {
	t float64
}

// Now returns the last time set by the host.
func (c *ExternalClock) Now() float64 {
	return c.t
}

// Set moves the clock to t seconds.
func (c *ExternalClock) Set(t float64) {
	c.t = t
}

// Advance moves the clock forward by dt seconds.
func (c *ExternalClock) Advance(dt float64) {
	c.t += dt
}
