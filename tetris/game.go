package tetris

import (
	"time"
)

// frameRate is how often the runner samples the gravity clock.
const frameRate = 16 * time.Millisecond

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Game drives a Tetris session from a single goroutine. Player actions and
// frame ticks are handled one at a time, and every visible change is
// published on UpdateCh as a detached copy.
type Game struct {
	UpdateCh chan *Tetris

	actionCh chan Action
	doneCh   chan struct{}
	tetris   *Tetris
	ticker   Ticker
	now      func() time.Time
}

func NewGame(opts ...Option) *Game {
	return NewConfigurableGame(newWrappedTicker(frameRate), opts...)
}

func NewConfigurableGame(ticker Ticker, opts ...Option) *Game {
	return &Game{
		UpdateCh: make(chan *Tetris),
		actionCh: make(chan Action),
		doneCh:   make(chan struct{}),
		tetris:   New(opts...),
		ticker:   ticker,
		now:      time.Now,
	}
}

// Start publishes the initial state and begins processing in the background.
func (g *Game) Start() {
	g.ticker.Reset(frameRate)
	go g.listen()
}

// Stop ends the background loop. The game must have been started.
func (g *Game) Stop() {
	g.ticker.Stop()
	g.doneCh <- struct{}{}
}

func (g *Game) Action(a Action) {
	g.actionCh <- a
}

func (g *Game) listen() {
	g.publish()
	for {
		var changed bool
		select {
		case now := <-g.ticker.C():
			changed = g.tetris.Tick(now)
		case a := <-g.actionCh:
			changed = g.tetris.Apply(a, g.now())
		case <-g.doneCh:
			return
		}
		if changed && !g.publish() {
			return
		}
	}
}

// publish hands a copy to the reader, giving up if Stop is called first.
func (g *Game) publish() bool {
	select {
	case g.UpdateCh <- g.tetris.copy():
		return true
	case <-g.doneCh:
		return false
	}
}
