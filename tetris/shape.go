package tetris

import "fmt"

// ShapeID identifies one of the seven tetrominos. It doubles as the material
// id written to the board when a piece locks, so it is never 0.
type ShapeID uint8

const (
	I ShapeID = iota + 1
	J
	L
	O
	S
	Z
	T
)

// NumShapes is the size of the catalog.
const NumShapes = 7

// State is one orientation of a shape. All states share the same 4x4 frame
// so rotating in place never needs new bounds.
type State [4][4]bool

// Shape is immutable catalog data shared by every Tetromino of that kind.
type Shape struct {
	ID     ShapeID
	Name   string
	States []State
}

func (id ShapeID) String() string {
	if id < I || id > T {
		return fmt.Sprintf("ShapeID(%d)", uint8(id))
	}
	return catalog[id-1].Name
}

// Shape returns the catalog entry for id. It panics on an unknown id.
func (id ShapeID) Shape() *Shape {
	if id < I || id > T {
		panic(fmt.Sprintf("tetris: unknown shape id %d", uint8(id)))
	}
	return catalog[id-1]
}

// Shapes returns the seven catalog entries ordered by ShapeID.
func Shapes() [NumShapes]*Shape {
	return catalog
}

// grid builds a State from four rows where '#' marks an occupied cell.
func grid(rows ...string) State {
	var s State
	for y, r := range rows {
		for x, c := range r {
			s[y][x] = c == '#'
		}
	}
	return s
}

/*
.	Spawn Location			.	States

.	0 1 2 3 4 5 6 7 8 9		.	0 1 2 3		0 1 2 3

0	. . . . O O O O . .		0	O O O O		. O . .

1	. . . . . . . . . .		1	. . . .		. O . .

.							2	. . . .		. O . .

.							3	. . . .		. O . .
*/
var catalog = [NumShapes]*Shape{
	{
		ID:   I,
		Name: "I",
		States: []State{
			grid("####", "....", "....", "...."),
			grid(".#..", ".#..", ".#..", ".#.."),
		},
	},
	{
		ID:   J,
		Name: "J",
		States: []State{
			grid("###.", "..#.", "....", "...."),
			grid(".#..", ".#..", "##..", "...."),
			grid("#...", "###.", "....", "...."),
			grid("##..", "#...", "#...", "...."),
		},
	},
	{
		ID:   L,
		Name: "L",
		States: []State{
			grid("###.", "#...", "....", "...."),
			grid("##..", ".#..", ".#..", "...."),
			grid("..#.", "###.", "....", "...."),
			grid("#...", "#...", "##..", "...."),
		},
	},
	{
		ID:   O,
		Name: "O",
		States: []State{
			grid("##..", "##..", "....", "...."),
		},
	},
	{
		ID:   S,
		Name: "S",
		States: []State{
			grid(".##.", "##..", "....", "...."),
			grid("#...", "##..", ".#..", "...."),
		},
	},
	{
		ID:   Z,
		Name: "Z",
		States: []State{
			grid("##..", ".##.", "....", "...."),
			grid(".#..", "##..", "#...", "...."),
		},
	},
	{
		ID:   T,
		Name: "T",
		States: []State{
			grid("###.", ".#..", "....", "...."),
			grid(".#..", "##..", ".#..", "...."),
			grid(".#..", "###.", "....", "...."),
			grid("#...", "##..", "#...", "...."),
		},
	},
}
