package game

import "time"

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// fpsCounter averages frame rate over roughly one second windows.
type fpsCounter struct {
	windowStart time.Time
	frames      int
	fps         float64
}

// tick records a frame at now and reports whether a window just closed.
func (c *fpsCounter) tick(now time.Time) bool {
	if c.windowStart.IsZero() {
		c.windowStart = now
	}
	c.frames++
	elapsed := now.Sub(c.windowStart)
	if elapsed < time.Second {
		return false
	}
	c.fps = float64(c.frames) / elapsed.Seconds()
	c.frames = 0
	c.windowStart = now
	return true
}
