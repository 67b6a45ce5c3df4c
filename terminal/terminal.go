package terminal

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"text/template"

	"termtetris/highscore"
	"termtetris/tetris"

	"github.com/eiannone/keyboard"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos  = "\033[H"  // Reset cursor position to 0,0
	clearLine = "\033[K"  // Clear from the cursor to the end of the line
	clearAll  = "\033[2J" // Clear the whole screen
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.ShapeID]string{
	tetris.I: Cyan,
	tetris.J: Blue,
	tetris.L: Orange,
	tetris.O: Yellow,
	tetris.S: Green,
	tetris.Z: Red,
	tetris.T: Magenta,
}

type templateData struct {
	Local   *tetris.Tetris
	Result  *highscore.Result
	NoGhost bool

	mu sync.Mutex
}

type Terminal struct {
	writer       io.Writer
	tetris       *tetris.Game
	template     *template.Template
	logger       *slog.Logger
	keysEventsCh <-chan keyboard.KeyEvent
	doneCh       chan struct{}
	over         atomic.Bool
	recorded     bool
	scoresFile   string
	td           *templateData
}

type Options struct {
	Writer     io.Writer
	Logger     *slog.Logger
	NoGhost    bool
	ScoresFile string
}

func (o *Options) withDefaults() *Options {
	c := *o
	if c.Writer == nil {
		c.Writer = os.Stdout
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.ScoresFile == "" {
		c.ScoresFile = highscore.DefaultFile
	}
	return &c
}

func New(o *Options) (*Terminal, error) {
	o = o.withDefaults()
	tp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("unable to load template: %w", err)
	}
	kc, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	return &Terminal{
		writer:       o.Writer,
		tetris:       tetris.NewGame(tetris.WithLogger(o.Logger)),
		template:     tp,
		logger:       o.Logger,
		keysEventsCh: kc,
		doneCh:       make(chan struct{}),
		scoresFile:   o.ScoresFile,
		td:           &templateData{NoGhost: o.NoGhost},
	}, nil
}

// Start runs the game until the player exits.
func (t *Terminal) Start() {
	fmt.Fprint(t.writer, clearAll)
	t.tetris.Start()
	go t.listenTetris()
	t.listenKB()
	close(t.doneCh)
	t.tetris.Stop()
	if err := keyboard.Close(); err != nil {
		t.logger.Error("unable to close keyboard", slog.String("error", err.Error()))
	}
}

func (t *Terminal) listenTetris() {
	for {
		select {
		case u := <-t.tetris.UpdateCh:
			t.update(u)
		case <-t.doneCh:
			return
		}
	}
}

// update records a finished game once and redraws.
func (t *Terminal) update(u *tetris.Tetris) {
	t.over.Store(u.GameOver)
	var result *highscore.Result
	switch {
	case u.GameOver && !t.recorded:
		t.recorded = true
		r, err := highscore.Record(t.scoresFile, u.Score, u.Lines)
		if err != nil {
			t.logger.Error("unable to record highscores", slog.String("error", err.Error()))
		}
		result = &r
		t.logger.Info("game recorded",
			slog.String("session", u.ID.String()),
			slog.Int("score", u.Score),
			slog.Bool("new_score", r.NewScore),
			slog.Int("lines", u.Lines),
			slog.Bool("new_lines", r.NewLines),
		)
	case u.GameOver:
		result = t.td.Result
	default:
		t.recorded = false
	}

	t.td.mu.Lock()
	t.td.Local = u
	t.td.Result = result
	t.td.mu.Unlock()
	t.renderGame(t.td)
}

func (t *Terminal) listenKB() {
	for {
		event, ok := <-t.keysEventsCh
		if !ok {
			t.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			t.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC {
			return
		}
		// Esc ends the game first, a second press leaves.
		if event.Key == keyboard.KeyEsc && t.over.Load() {
			return
		}
		if a, ok := keyAction(event); ok {
			t.tetris.Action(a)
		}
	}
}

func keyAction(event keyboard.KeyEvent) (tetris.Action, bool) {
	switch {
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.MoveDown, true
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft, true
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight, true
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'w' || event.Rune == 'e':
		return tetris.Rotate, true
	case event.Key == keyboard.KeySpace:
		return tetris.DropDown, true
	case event.Key == keyboard.KeyEsc:
		return tetris.Quit, true
	case event.Key == keyboard.KeyF1 || event.Rune == 'r':
		return tetris.Restart, true
	}
	return "", false
}

func (t *Terminal) renderGame(td *templateData) {
	fmt.Fprint(t.writer, resetPos)
	td.mu.Lock()
	defer td.mu.Unlock()
	if err := t.template.Execute(t.writer, td); err != nil {
		t.logger.Error("Unable to execute template", slog.String("error", err.Error()))
	}
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"board": board,
		"side":  side,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", clearLine+"\r\n")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func cell(id uint8) string {
	c, ok := colorMap[tetris.ShapeID(id)]
	if !ok {
		return "  "
	}
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", c)
}

func board(td *templateData) [tetris.Rows][tetris.Cols]string {
	rendered := [tetris.Rows][tetris.Cols]string{}
	if td.Local == nil {
		for y := range rendered {
			for x := range rendered[y] {
				rendered[y][x] = "  "
			}
		}
		return rendered
	}

	for y, row := range td.Local.Board {
		for x, v := range row {
			rendered[y][x] = cell(v)
		}
	}

	// renders the current tetromino and its landing spot if it exists
	p := td.Local.Tetromino
	if p == nil {
		return rendered
	}
	ghost := td.Local.GhostY()
	paint := func(y int, s string) {
		for iy, r := range p.State() {
			for ix, c := range r {
				cx, cy := p.X+ix, y+iy
				if c && cx >= 0 && cx < tetris.Cols && cy >= 0 && cy < tetris.Rows {
					rendered[cy][cx] = s
				}
			}
		}
	}
	if !td.NoGhost {
		paint(ghost, "[]")
	}
	paint(p.Y, cell(uint8(p.Shape.ID)))
	return rendered
}

func nextPiece(td *templateData, row int) string {
	out := []string{"  ", "  ", "  ", "  "}
	if td.Local == nil || td.Local.NextTetromino == nil {
		return strings.Join(out, "")
	}
	n := td.Local.NextTetromino
	for i, v := range n.State()[row] {
		if v {
			out[i] = cell(uint8(n.Shape.ID))
		}
	}
	return strings.Join(out, "")
}

// side returns the panel text printed next to a board row.
func side(td *templateData, y int) string {
	if td.Local == nil {
		return ""
	}
	switch y {
	case 0:
		return "\033[1mTerminal Tetris\033[0m"
	case 2:
		return fmt.Sprintf("Score: %d", td.Local.Score)
	case 3:
		return fmt.Sprintf("Lines: %d", td.Local.Lines)
	case 4:
		return fmt.Sprintf("Level: %d", td.Local.Level)
	case 6:
		return "Next:"
	case 7, 8:
		return nextPiece(td, y-7)
	case 10:
		if td.Local.GameOver {
			return "Game Over"
		}
		return "Esc to end"
	case 11:
		if td.Local.GameOver {
			return "r to restart, Esc to exit"
		}
	case 13:
		if td.Local.GameOver && td.Result != nil && td.Result.NewScore {
			return "[NEW HIGHSCORE]"
		}
	case 14:
		if td.Local.GameOver && td.Result != nil && td.Result.NewLines {
			return "[NEW LINES]"
		}
	}
	return ""
}
