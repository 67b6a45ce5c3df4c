package tetris

const (
	Rows = 16
	Cols = 10
)

// Board is the playfield. Rows are 0 > 15 top to bottom, columns are 0 > 9
// left to right. A zero cell is empty, otherwise it holds the ShapeID of the
// piece that locked there.
type Board [Rows][Cols]uint8

// CanPlace reports whether every occupied cell of the given rotation state,
// with its top-left corner at (x, y), lands on an empty cell inside the board.
// Cells above row 0 count as free so pieces can be checked while partially
// out of the top.
func (b *Board) CanPlace(s *Shape, rotation, x, y int) bool {
	for iy, row := range s.States[rotation] {
		for ix, c := range row {
			if !c {
				continue
			}
			cx, cy := x+ix, y+iy
			if cx < 0 || cx >= Cols || cy >= Rows {
				return false
			}
			if cy >= 0 && b[cy][cx] != 0 {
				return false
			}
		}
	}
	return true
}

// Lock writes the piece's occupied cells into the board. Cells falling
// outside the board are ignored.
func (b *Board) Lock(t *Tetromino) {
	for iy, row := range t.State() {
		for ix, c := range row {
			cx, cy := t.X+ix, t.Y+iy
			if !c || cx < 0 || cx >= Cols || cy < 0 || cy >= Rows {
				continue
			}
			b[cy][cx] = uint8(t.Shape.ID)
		}
	}
}

// RemoveComplete drops every full row, shifts the remaining rows down and
// fills the top with empty rows. It returns how many rows were removed.
func (b *Board) RemoveComplete() int {
	var kept Board
	k := Rows - 1
	for y := Rows - 1; y >= 0; y-- {
		if b.complete(y) {
			continue
		}
		kept[k] = b[y]
		k--
	}
	removed := k + 1
	if removed > 0 {
		*b = kept
	}
	return removed
}

func (b *Board) complete(y int) bool {
	for _, c := range b[y] {
		if c == 0 {
			return false
		}
	}
	return true
}

// Empty reports whether no cell is occupied.
func (b *Board) Empty() bool {
	return *b == Board{}
}
