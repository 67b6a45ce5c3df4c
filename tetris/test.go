package tetris

import (
	"sync"
	"time"
)

// MockTicker is a mock implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker           { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time  { return m.ch }
func (m *MockTicker) Tick()                { m.ch <- time.Now() }
func (m *MockTicker) TickAt(now time.Time) { m.ch <- now }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}
func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// FixedRand returns the shapes in order, cycling when it runs out.
type FixedRand struct {
	shapes []ShapeID
	i      int
}

func NewFixedRand(shapes ...ShapeID) *FixedRand { return &FixedRand{shapes: shapes} }

func (f *FixedRand) IntN(n int) int {
	s := f.shapes[f.i%len(f.shapes)]
	f.i++
	return (int(s) - 1) % n
}

// NewTestTetris creates a session with the given shape in play at the spawn
// location and the same shape queued next.
func NewTestTetris(shape ShapeID) *Tetris {
	t := New(WithRand(NewFixedRand(shape)))
	t.Tetromino = NewTetromino(shape)
	return t
}

// NewTestGame creates a game around a specific Tetris and returns it with a
// manual ticker.
func NewTestGame(t *Tetris) (*Game, *MockTicker) {
	ticker := NewMockTicker()
	g := NewConfigurableGame(ticker)
	g.tetris = t
	return g, ticker
}
