package tetris

import "time"

// levels holds, per level, the lines that must be exceeded to move on and the
// gravity interval. Levels past the end of the table keep the last entry.
var levels = [...]struct {
	lines    int
	interval time.Duration
}{
	{20, 1000 * time.Millisecond},
	{40, 850 * time.Millisecond},
	{60, 700 * time.Millisecond},
	{80, 600 * time.Millisecond},
	{100, 500 * time.Millisecond},
	{120, 400 * time.Millisecond},
	{140, 300 * time.Millisecond},
	{160, 250 * time.Millisecond},
	{180, 221 * time.Millisecond},
	{200, 190 * time.Millisecond},
}

func levelEntry(level int) int {
	switch {
	case level < 1:
		return 0
	case level > len(levels):
		return len(levels) - 1
	}
	return level - 1
}

// LevelLines returns the cumulative line count a game must exceed to leave
// the given level.
func LevelLines(level int) int {
	return levels[levelEntry(level)].lines
}

// Interval returns how long a piece hangs on a row at the given level before
// gravity pulls it down.
func Interval(level int) time.Duration {
	return levels[levelEntry(level)].interval
}
