// Package grid provides the cell map, flag model and line geometry shared by
// the visibility, pathing and projection packages.
package grid

// Point is a cell coordinate. Row grows downward, Col grows to the right.
type Point struct {
	Row, Col int
}

// Pt is shorthand for Point{Row: row, Col: col}.
func Pt(row, col int) Point {
	return Point{Row: row, Col: col}
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{p.Row + o.Row, p.Col + o.Col}
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{p.Row - o.Row, p.Col - o.Col}
}

// Less orders points by row, then column.
func (p Point) Less(o Point) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Neighbors lists the eight unit steps in scan order: the four orthogonal
// moves first, then the diagonals.
var Neighbors = [8]Point{
	{-1, 0},  // N
	{1, 0},   // S
	{0, -1},  // W
	{0, 1},   // E
	{-1, -1}, // NW
	{-1, 1},  // NE
	{1, -1},  // SW
	{1, 1},   // SE
}

// IsDiagonal reports whether a unit step moves along both axes.
func IsDiagonal(step Point) bool {
	return step.Row != 0 && step.Col != 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
