package terminal

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"termtetris/highscore"
	"termtetris/tetris"

	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	blueCell  = "\x1b[7m\x1b[34m[]\x1b[0m"
	cyanCell  = "\x1b[7m\x1b[36m[]\x1b[0m"
	greenCell = "\x1b[7m\x1b[32m[]\x1b[0m"
)

func emptyRender() [tetris.Rows][tetris.Cols]string {
	want := [tetris.Rows][tetris.Cols]string{}
	for y := range want {
		for x := range want[y] {
			want[y][x] = "  "
		}
	}
	return want
}

func newTestTerminal(t *testing.T) (*Terminal, *bytes.Buffer) {
	t.Helper()
	tp, err := loadTemplate()
	require.NoError(t, err)
	var buf bytes.Buffer
	return &Terminal{
		writer:     &buf,
		template:   tp,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		scoresFile: filepath.Join(t.TempDir(), highscore.DefaultFile),
		td:         &templateData{},
	}, &buf
}

func TestLocalBoard(t *testing.T) {
	t.Run("piece and ghost", func(t *testing.T) {
		td := &templateData{Local: tetris.NewTestTetris(tetris.J)}
		want := emptyRender()
		want[0][4], want[0][5], want[0][6], want[1][6] = blueCell, blueCell, blueCell, blueCell
		want[14][4], want[14][5], want[14][6], want[15][6] = "[]", "[]", "[]", "[]"
		got := board(td)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("want %v, got %v", want, got)
		}
	})

	t.Run("no ghost", func(t *testing.T) {
		td := &templateData{Local: tetris.NewTestTetris(tetris.J), NoGhost: true}
		want := emptyRender()
		want[0][4], want[0][5], want[0][6], want[1][6] = blueCell, blueCell, blueCell, blueCell
		got := board(td)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("want %v, got %v", want, got)
		}
	})

	t.Run("locked cells without a piece", func(t *testing.T) {
		local := tetris.New()
		local.Board[15][0] = uint8(tetris.S)
		want := emptyRender()
		want[15][0] = greenCell
		got := board(&templateData{Local: local})
		if !reflect.DeepEqual(got, want) {
			t.Errorf("want %v, got %v", want, got)
		}
	})

	t.Run("nothing to draw yet", func(t *testing.T) {
		assert.Equal(t, emptyRender(), board(&templateData{}))
	})
}

func TestNextPiece(t *testing.T) {
	tests := []struct {
		shape tetris.ShapeID
		want  []string
	}{
		{tetris.J, []string{blueCell + blueCell + blueCell + "  ", "    " + blueCell + "  "}},
		{tetris.O, []string{"\x1b[7m\x1b[33m[]\x1b[0m\x1b[7m\x1b[33m[]\x1b[0m    ", "\x1b[7m\x1b[33m[]\x1b[0m\x1b[7m\x1b[33m[]\x1b[0m    "}},
		{tetris.I, []string{cyanCell + cyanCell + cyanCell + cyanCell, "        "}},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			td := &templateData{Local: tetris.NewTestTetris(tt.shape)}
			got := []string{nextPiece(td, 0), nextPiece(td, 1)}
			if !reflect.DeepEqual(tt.want, got) {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSide(t *testing.T) {
	local := tetris.NewTestTetris(tetris.T)
	local.Score, local.Lines, local.Level = 120, 30, 2
	td := &templateData{Local: local}

	assert.Equal(t, "Score: 120", side(td, 2))
	assert.Equal(t, "Lines: 30", side(td, 3))
	assert.Equal(t, "Level: 2", side(td, 4))
	assert.Equal(t, "Esc to end", side(td, 10))
	assert.Empty(t, side(td, 13))

	local.GameOver = true
	td.Result = &highscore.Result{NewScore: true}
	assert.Equal(t, "Game Over", side(td, 10))
	assert.Equal(t, "[NEW HIGHSCORE]", side(td, 13))
	assert.Empty(t, side(td, 14))
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name   string
		event  keyboard.KeyEvent
		want   tetris.Action
		wantOK bool
	}{
		{"arrow down", keyboard.KeyEvent{Key: keyboard.KeyArrowDown}, tetris.MoveDown, true},
		{"s", keyboard.KeyEvent{Rune: 's'}, tetris.MoveDown, true},
		{"arrow left", keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}, tetris.MoveLeft, true},
		{"d", keyboard.KeyEvent{Rune: 'd'}, tetris.MoveRight, true},
		{"arrow up", keyboard.KeyEvent{Key: keyboard.KeyArrowUp}, tetris.Rotate, true},
		{"space", keyboard.KeyEvent{Key: keyboard.KeySpace}, tetris.DropDown, true},
		{"esc", keyboard.KeyEvent{Key: keyboard.KeyEsc}, tetris.Quit, true},
		{"f1", keyboard.KeyEvent{Key: keyboard.KeyF1}, tetris.Restart, true},
		{"r", keyboard.KeyEvent{Rune: 'r'}, tetris.Restart, true},
		{"unbound", keyboard.KeyEvent{Rune: 'x'}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyAction(tt.event)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdateRecordsOnce(t *testing.T) {
	term, _ := newTestTerminal(t)
	over := tetris.New()
	over.Apply(tetris.Quit, time.Now())

	term.update(over)
	b, err := os.ReadFile(term.scoresFile)
	require.NoError(t, err)
	assert.Equal(t, "0\n0\n", string(b))
	require.NotNil(t, term.td.Result)
	assert.True(t, term.td.Result.NewScore)
	assert.True(t, term.over.Load())

	require.NoError(t, os.Remove(term.scoresFile))
	term.update(over)
	_, err = os.Stat(term.scoresFile)
	assert.True(t, os.IsNotExist(err), "expected no second record for the same game")
	assert.NotNil(t, term.td.Result)

	term.update(tetris.New())
	assert.False(t, term.over.Load())
	assert.Nil(t, term.td.Result)
	assert.False(t, term.recorded)
}

func TestRenderGame(t *testing.T) {
	term, buf := newTestTerminal(t)
	term.update(tetris.NewTestTetris(tetris.L))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, resetPos))
	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "Level: 1")
	assert.Contains(t, out, "Esc to end")
	assert.Equal(t, tetris.Rows+2, strings.Count(out, "\r\n"))
	assert.Equal(t, tetris.Rows+2, strings.Count(out, clearLine))
}
