package fov

import "github.com/Faultbox/gridsense/pkg/grid"

// Segments are walked in quarter-cell units so that sample points inside a
// cell never sit on a grid line.
const quarter = 4

var (
	centreSample = [][2]int{{2, 2}}

	permissiveSamples = [][2]int{{2, 2}, {1, 1}, {1, 3}, {3, 1}, {3, 3}}
)

// castDigital marks a cell when the segment between the two cell centres
// crosses no opaque cell.
func castDigital(s *scan) {
	s.sampleCells(centreSample)
}

// castPermissive marks a cell when a clear segment from the origin centre
// reaches its centre or any of four points a quarter cell in from its
// corners.
func castPermissive(s *scan) {
	s.sampleCells(permissiveSamples)
}

func (s *scan) sampleCells(samples [][2]int) {
	o := s.origin
	for row := o.Row - s.radius; row <= o.Row+s.radius; row++ {
		for col := o.Col - s.radius; col <= o.Col+s.radius; col++ {
			p := grid.Point{Row: row, Col: col}
			if p == o || !s.inMap(p) || !s.inDisc(p) {
				continue
			}
			for _, off := range samples {
				if s.segmentClear(p, off[0], off[1]) {
					s.vis.set(p)
					break
				}
			}
		}
	}
}

// segmentClear walks every cell crossed by the segment from the origin
// centre to the given point of target. Only the cells strictly before target
// must be open. Where the segment passes exactly through a grid corner it is
// blocked only if both cells beside the corner are opaque.
func (s *scan) segmentClear(target grid.Point, offRow, offCol int) bool {
	o := s.origin
	py, px := o.Row*quarter+quarter/2, o.Col*quarter+quarter/2
	qy, qx := target.Row*quarter+offRow, target.Col*quarter+offCol
	ady, adx := abs(qy-py), abs(qx-px)
	sy, sx := sign(qy-py), sign(qx-px)
	gapY, gapX := gridGap(py, sy), gridGap(px, sx)

	cell := o
	for steps := 0; cell != target; steps++ {
		if steps > abs(target.Row-o.Row)+abs(target.Col-o.Col) {
			return false
		}
		var lhs, rhs int
		switch {
		case adx == 0:
			lhs, rhs = 1, 0
		case ady == 0:
			lhs, rhs = 0, 1
		default:
			lhs, rhs = gapX*ady, gapY*adx
		}
		switch {
		case lhs < rhs:
			cell.Col += sx
			gapX += quarter
		case lhs > rhs:
			cell.Row += sy
			gapY += quarter
		default:
			if !s.open(grid.Point{Row: cell.Row, Col: cell.Col + sx}) &&
				!s.open(grid.Point{Row: cell.Row + sy, Col: cell.Col}) {
				return false
			}
			cell.Row += sy
			cell.Col += sx
			gapX += quarter
			gapY += quarter
		}
		if cell == target {
			return true
		}
		if !s.open(cell) {
			return false
		}
	}
	return true
}

// gridGap is the distance from coordinate v to the next grid line in
// direction dir.
func gridGap(v, dir int) int {
	if dir < 0 {
		return v % quarter
	}
	return quarter - v%quarter
}
