package tetris

const (
	spawnX = 4
	spawnY = 0
)

// Tetromino is a live piece: a catalog shape, its rotation and the board
// position of the top-left corner of its 4x4 frame.
type Tetromino struct {
	Shape    *Shape
	Rotation int
	X, Y     int
}

// NewTetromino returns a piece of the given shape at the spawn location.
func NewTetromino(id ShapeID) *Tetromino {
	return &Tetromino{Shape: id.Shape(), X: spawnX, Y: spawnY}
}

// State returns the occupied pattern of the current rotation.
func (t *Tetromino) State() State {
	return t.Shape.States[t.Rotation]
}

// Fits reports whether the piece can stay where it is.
func (t *Tetromino) Fits(b *Board) bool {
	return b.CanPlace(t.Shape, t.Rotation, t.X, t.Y)
}

// TryMove shifts the piece by dx, dy if the destination is free.
func (t *Tetromino) TryMove(b *Board, dx, dy int) bool {
	if !b.CanPlace(t.Shape, t.Rotation, t.X+dx, t.Y+dy) {
		return false
	}
	t.X += dx
	t.Y += dy
	return true
}

// TryRotate advances to the next rotation state in place. There are no wall
// kicks: a colliding rotation is simply refused.
func (t *Tetromino) TryRotate(b *Board) bool {
	next := (t.Rotation + 1) % len(t.Shape.States)
	if !b.CanPlace(t.Shape, next, t.X, t.Y) {
		return false
	}
	t.Rotation = next
	return true
}

// HardDrop moves the piece down until it rests and returns the landing row.
func (t *Tetromino) HardDrop(b *Board) int {
	for t.TryMove(b, 0, 1) {
	}
	return t.Y
}

// landingY returns the row HardDrop would stop at without moving the piece.
func (t *Tetromino) landingY(b *Board) int {
	y := t.Y
	for b.CanPlace(t.Shape, t.Rotation, t.X, y+1) {
		y++
	}
	return y
}

func (t *Tetromino) copy() *Tetromino {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
