package tetris

import "time"

// Gravity remembers when the falling piece last moved down. It never fires on
// its own: callers sample it with the current time.
type Gravity struct {
	last time.Time
}

// Reset restarts the interval from now.
func (g *Gravity) Reset(now time.Time) {
	g.last = now
}

// Due reports whether more than the level's interval has elapsed since the
// last reset. A clock that went backwards is never due.
func (g *Gravity) Due(now time.Time, level int) bool {
	return now.Sub(g.last) > Interval(level)
}
