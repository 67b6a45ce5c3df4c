package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"termtetris/terminal"

	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[19;0H\n\r\033[?25h"
)

func main() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal("tetris needs an interactive terminal")
	}

	logger, closeLog, err := newLogger(os.Getenv("TETRIS_LOG"))
	if err != nil {
		log.Fatalf("unable to open log file: %v", err)
	}
	defer closeLog()

	restore := startRawConsole()
	defer restore()

	t, err := terminal.New(&terminal.Options{
		Logger:     logger,
		NoGhost:    os.Getenv("TETRIS_NOGHOST") != "",
		ScoresFile: os.Getenv("TETRIS_SCORES"),
	})
	if err != nil {
		logger.Error("unable to start", slog.String("error", err.Error()))
		restore()
		closeLog()
		log.Fatal(err)
	}
	t.Start()
}

// newLogger writes JSON logs to path, or discards them when path is empty
// since the game owns the screen.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	l := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return l, func() { f.Close() }, nil
}

func startRawConsole() func() {
	fmt.Print(hideCursor)
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("Error setting terminal to raw mode: %v", err)
	}

	return func() {
		if err := term.Restore(int(os.Stdin.Fd()), oldState); err != nil {
			log.Fatalf("unable to restore the terminal original state: %v", err)
		}
		fmt.Print(showCursor)
	}
}
