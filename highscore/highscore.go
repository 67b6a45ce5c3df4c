// Package highscore keeps the best scores and line counts in a two line text
// file: the first line holds scores, the second line counts, each as space
// separated integers.
package highscore

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultFile is where the terminal game keeps its records.
const DefaultFile = "scores.txt"

// Max is how many entries each list holds.
const Max = 5

var ErrMalformed = errors.New("highscore file must have two lines")

// Table is the on-disk content.
type Table struct {
	Scores []int
	Lines  []int
}

// Result tells which lists a game made it into.
type Result struct {
	NewScore bool
	NewLines bool
}

// Load reads the table at path.
func Load(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read highscores: %w", err)
	}
	return Parse(string(b))
}

// Parse decodes file content. Tokens that are not numbers are skipped.
func Parse(content string) (*Table, error) {
	lines := strings.SplitN(content, "\n", 3)
	if len(lines) < 3 {
		return nil, ErrMalformed
	}
	return &Table{Scores: parseLine(lines[0]), Lines: parseLine(lines[1])}, nil
}

func parseLine(line string) []int {
	var out []int
	for _, f := range strings.Fields(line) {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (t *Table) String() string {
	return join(t.Scores) + "\n" + join(t.Lines) + "\n"
}

func join(v []int) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, " ")
}

// Save writes the table to path, replacing what was there.
func (t *Table) Save(path string) error {
	if err := os.WriteFile(path, []byte(t.String()), 0o644); err != nil {
		return fmt.Errorf("unable to save highscores: %w", err)
	}
	return nil
}

// Update offers value to list. A short list takes it at the end. A full list
// puts it in place of the first entry it beats, which is not necessarily the
// smallest one. It reports whether the list changed.
func Update(list *[]int, value int) bool {
	if len(*list) < Max {
		*list = append(*list, value)
		return true
	}
	for i, v := range *list {
		if value > v {
			(*list)[i] = value
			return true
		}
	}
	return false
}

// Record merges a finished game into the file at path. Without a readable
// file the game starts a new one and counts as a record on both lists. The
// returned error only reports persistence trouble; the Result is valid either
// way.
func Record(path string, score, lines int) (Result, error) {
	t, err := Load(path)
	if err != nil {
		t = &Table{Scores: []int{score}, Lines: []int{lines}}
		if serr := t.Save(path); serr != nil {
			return Result{NewScore: true, NewLines: true}, errors.Join(err, serr)
		}
		return Result{NewScore: true, NewLines: true}, nil
	}
	r := Result{
		NewScore: Update(&t.Scores, score),
		NewLines: Update(&t.Lines, lines),
	}
	if r.NewScore || r.NewLines {
		if err := t.Save(path); err != nil {
			return r, err
		}
	}
	return r, nil
}
