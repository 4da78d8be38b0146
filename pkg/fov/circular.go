package fov

import "github.com/Faultbox/gridsense/pkg/grid"

// castCircular sends a Bresenham ray from the origin toward every cell of the
// bounding square. A ray ends at the disc edge, the map edge, or just after
// the first opaque cell it meets.
func castCircular(s *scan) {
	o := s.origin
	for row := o.Row - s.radius; row <= o.Row+s.radius; row++ {
		for col := o.Col - s.radius; col <= o.Col+s.radius; col++ {
			target := grid.Point{Row: row, Col: col}
			if target == o {
				continue
			}
			s.castRay(target)
		}
	}
}

func (s *scan) castRay(target grid.Point) {
	line := grid.TraceLine(s.origin, target)
	for _, p := range line[1:] {
		if !s.inMap(p) || !s.inDisc(p) {
			return
		}
		s.vis.set(p)
		if !s.g.IsOpen(p) {
			return
		}
	}
}
