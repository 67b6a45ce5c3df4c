// Package tetris contains the logic of the game: the piece catalog, the
// board, collisions, line clearing, scoring and the gravity check.
package tetris

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// emptyBoardBonus is awarded when a lock clears every row of the board.
const emptyBoardBonus = 1000

type Action string

const (
	MoveLeft  Action = "left"    // Moves the Tetromino one step to the left.
	MoveRight Action = "right"   // Moves the Tetromino one step to the right.
	MoveDown  Action = "down"    // Moves the Tetromino one step down, locking it if blocked.
	DropDown  Action = "drop"    // Drops the Tetromino down the board and locks it.
	Rotate    Action = "rotate"  // Rotates the Tetromino to its next state.
	Quit      Action = "quit"    // Ends the current game without locking.
	Restart   Action = "restart" // Starts a new game once the current one is over.
)

// Phase is where a session is in its turn cycle.
type Phase int

const (
	NoPiece Phase = iota
	Falling
	Over
)

func (p Phase) String() string {
	switch p {
	case NoPiece:
		return "no-piece"
	case Falling:
		return "falling"
	case Over:
		return "game-over"
	}
	return "unknown"
}

// Randomizer picks the next shape. *rand.Rand satisfies it.
type Randomizer interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Tetris is a single game session. It is not safe for concurrent use; Game
// serializes access to it.
type Tetris struct {
	ID uuid.UUID

	// Board holds the locked cells. See Board for the axes.
	Board Board

	Tetromino     *Tetromino // nil between a lock and the next spawn and after game over.
	NextTetromino *Tetromino

	Score    int
	Lines    int
	Level    int
	GameOver bool

	gravity Gravity
	rand    Randomizer
	logger  *slog.Logger
}

type Option func(*Tetris)

// WithRand sets the source used to pick upcoming shapes.
func WithRand(r Randomizer) Option {
	return func(t *Tetris) { t.rand = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Tetris) { t.logger = l }
}

// New returns a session with an empty board, level 1 and no piece in play.
// The first piece spawns on the first Tick or Apply.
func New(opts ...Option) *Tetris {
	t := &Tetris{
		rand:   globalRand{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.reset()
	return t
}

func (t *Tetris) reset() {
	t.ID = uuid.New()
	t.Board = Board{}
	t.Tetromino = nil
	t.NextTetromino = t.draw()
	t.Score = 0
	t.Lines = 0
	t.Level = 1
	t.GameOver = false
	t.logger.Debug("new game", slog.String("session", t.ID.String()))
}

func (t *Tetris) draw() *Tetromino {
	return NewTetromino(ShapeID(t.rand.IntN(NumShapes) + 1))
}

// Phase returns the current state of the turn cycle.
func (t *Tetris) Phase() Phase {
	switch {
	case t.GameOver:
		return Over
	case t.Tetromino == nil:
		return NoPiece
	}
	return Falling
}

// Apply runs a player command to completion. It reports whether anything
// visible changed.
func (t *Tetris) Apply(a Action, now time.Time) bool {
	switch a {
	case Restart:
		if !t.GameOver {
			return false
		}
		t.reset()
		t.gravity.Reset(now)
		return true
	case Quit:
		if t.GameOver {
			return false
		}
		t.end("quit")
		return true
	}

	if t.GameOver {
		return false
	}
	spawned := false
	if t.Tetromino == nil {
		spawned = true
		if !t.spawn(now) {
			return true
		}
	}

	switch a {
	case MoveLeft:
		return t.Tetromino.TryMove(&t.Board, -1, 0) || spawned
	case MoveRight:
		return t.Tetromino.TryMove(&t.Board, 1, 0) || spawned
	case Rotate:
		return t.Tetromino.TryRotate(&t.Board) || spawned
	case MoveDown:
		t.gravity.Reset(now)
		if !t.Tetromino.TryMove(&t.Board, 0, 1) {
			t.lock(now)
		}
		return true
	case DropDown:
		t.Tetromino.HardDrop(&t.Board)
		t.lock(now)
		return true
	}
	return spawned
}

// Tick samples the gravity clock. It spawns the next piece when none is in
// play and pulls the current one down once its interval has elapsed, locking
// it if it cannot fall. It reports whether anything visible changed.
func (t *Tetris) Tick(now time.Time) bool {
	if t.GameOver {
		return false
	}
	changed := false
	if t.Tetromino == nil {
		changed = true
		if !t.spawn(now) {
			return true
		}
	}
	if !t.gravity.Due(now, t.Level) {
		return changed
	}
	if !t.Tetromino.TryMove(&t.Board, 0, 1) {
		t.lock(now)
	}
	t.gravity.Reset(now)
	return true
}

// spawn promotes the next piece. When it does not fit the game is over and
// the piece is discarded.
func (t *Tetris) spawn(now time.Time) bool {
	piece := t.NextTetromino
	t.NextTetromino = nil
	if !piece.Fits(&t.Board) {
		t.end("blocked spawn")
		return false
	}
	t.Tetromino = piece
	t.NextTetromino = t.draw()
	if t.gravity.last.IsZero() {
		t.gravity.Reset(now)
	}
	t.logger.Debug("spawn",
		slog.String("session", t.ID.String()),
		slog.String("shape", piece.Shape.Name),
		slog.String("next", t.NextTetromino.Shape.Name),
	)
	return true
}

func (t *Tetris) end(reason string) {
	t.Tetromino = nil
	t.GameOver = true
	if t.NextTetromino == nil {
		t.NextTetromino = t.draw()
	}
	t.logger.Info("game over",
		slog.String("session", t.ID.String()),
		slog.String("reason", reason),
		slog.Int("score", t.Score),
		slog.Int("lines", t.Lines),
		slog.Int("level", t.Level),
	)
}

// lock merges the current piece into the board, scores it and clears lines.
func (t *Tetris) lock(now time.Time) {
	t.Board.Lock(t.Tetromino)
	t.Score += t.Level
	t.logger.Debug("lock",
		slog.String("session", t.ID.String()),
		slog.String("shape", t.Tetromino.Shape.Name),
		slog.Int("x", t.Tetromino.X),
		slog.Int("y", t.Tetromino.Y),
	)
	t.clearLines()
	t.Tetromino = nil
	t.gravity.Reset(now)
}

// clearLines removes complete rows and scores them at the current level, with
// a bonus when the whole board goes. Every refilled row counts as a cleared
// line and may raise the level.
func (t *Tetris) clearLines() (lines, score int) {
	lines = t.Board.RemoveComplete()
	if lines == 0 {
		return 0, 0
	}
	score = lines * t.Level
	if lines == Rows {
		score += emptyBoardBonus
	}
	t.Score += score
	for range lines {
		t.lineGained()
	}
	t.logger.Debug("lines cleared",
		slog.String("session", t.ID.String()),
		slog.Int("lines", lines),
		slog.Int("score", score),
	)
	return lines, score
}

func (t *Tetris) lineGained() {
	t.Lines++
	if t.Lines > LevelLines(t.Level) {
		t.Level++
		t.logger.Debug("level up", slog.String("session", t.ID.String()), slog.Int("level", t.Level))
	}
}

// GhostY returns the row the current piece would land on, or -1 when no piece
// is in play.
func (t *Tetris) GhostY() int {
	if t.Tetromino == nil {
		return -1
	}
	return t.Tetromino.landingY(&t.Board)
}

// copy returns a detached copy for readers. It carries no random source,
// logger or clock.
func (t *Tetris) copy() *Tetris {
	return &Tetris{
		ID:            t.ID,
		Board:         t.Board,
		Tetromino:     t.Tetromino.copy(),
		NextTetromino: t.NextTetromino.copy(),
		Score:         t.Score,
		Lines:         t.Lines,
		Level:         t.Level,
		GameOver:      t.GameOver,
	}
}
