package core

import (
	"fmt"
	"math"
	"time"
)

// FrameClock measures simulated time for a game.
// It tracks two independent values: the raw delta between consecutive
// CalcDeltaTime calls, and the level time, which excludes paused spans.
//
// CalcDeltaTime must be called exactly once per tick before Delta or
// LevelTime are read. The clock is written only by the tick driver.
type FrameClock struct {
	now func() time.Time

	started     bool
	inLevel     bool // StartLevel has run
	lastRaw     time.Time
	delta       float64
	lastUnpause time.Time
	banked      time.Duration // level time accumulated before the last pause
	paused      bool
	levelTime   float64
}

// NewFrameClock creates a clock reading time from now.
// A nil now uses time.Now.
func NewFrameClock(now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	return &FrameClock{now: now}
}

// Start captures the current time as the raw delta baseline.
func (c *FrameClock) Start() {
	c.lastRaw = c.now()
	c.started = true
	c.delta = 0
}

// CalcDeltaTime recomputes the raw delta and, unless paused, the level time.
// Calling it before Start starts the raw timer and yields a zero delta.
// Level time stays 0 until StartLevel.
func (c *FrameClock) CalcDeltaTime() {
	now := c.now()
	if !c.started {
		c.lastRaw = now
		c.started = true
	}
	c.delta = seconds(now.Sub(c.lastRaw))
	c.lastRaw = now

	if c.inLevel && !c.paused {
		c.levelTime = seconds(c.banked + now.Sub(c.lastUnpause))
	}
}

// Delta returns the seconds elapsed between the two most recent ticks.
func (c *FrameClock) Delta() float64 {
	return c.delta
}

// StartLevel resets the level time to zero and unpauses it.
func (c *FrameClock) StartLevel() {
	c.inLevel = true
	c.banked = 0
	c.lastUnpause = c.now()
	c.paused = false
	c.levelTime = 0
}

// SetPause freezes (true) or resumes (false) the level time.
// Repeating the current state is a no-op.
func (c *FrameClock) SetPause(pause bool) {
	if pause == c.paused {
		return
	}
	now := c.now()
	if pause && c.inLevel {
		c.banked += now.Sub(c.lastUnpause)
		c.levelTime = seconds(c.banked)
	} else {
		c.lastUnpause = now
	}
	c.paused = pause
}

// Paused reports whether level time is frozen.
func (c *FrameClock) Paused() bool {
	return c.paused
}

// LevelTime returns the level time in seconds as of the last CalcDeltaTime.
func (c *FrameClock) LevelTime() float64 {
	return c.levelTime
}

// seconds converts d to seconds at millisecond resolution.
func seconds(d time.Duration) float64 {
	return float64(d.Milliseconds()) / 1000.0
}

// maxFormatSeconds keeps hundredths within int64.
const maxFormatSeconds = 1e15

// FormatLevelTime renders seconds as m:ss.cc.
// Minutes are unbounded; negative and non-finite input renders as 0:00.00,
// larger values are capped.
func FormatLevelTime(t float64) string {
	switch {
	case math.IsNaN(t) || math.IsInf(t, 0) || t < 0:
		t = 0
	case t > maxFormatSeconds:
		t = maxFormatSeconds
	}
	// work in hundredths so 59.999 doesn't render as 0:60.00
	total := int64(t*100 + 0.5)
	minutes := total / 6000
	secs := (total / 100) % 60
	hundredths := total % 100
	return fmt.Sprintf("%d:%02d.%02d", minutes, secs, hundredths)
}
