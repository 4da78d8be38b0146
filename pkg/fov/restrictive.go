package fov

import "github.com/Faultbox/gridsense/pkg/grid"

var quadrants = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// castRestrictive is restrictive precise angle shadowcasting (MRPAS). Lines
// are scanned out to the full radius square and the result is clipped to the
// disc afterwards, so the obstacle bookkeeping does not depend on the radius.
func castRestrictive(s *scan) {
	s.vis.set(s.origin)
	for _, q := range quadrants {
		s.restrictiveOctant(q[0], q[1], false)
		s.restrictiveOctant(q[0], q[1], true)
	}
	for _, p := range s.vis.Points() {
		if !s.inDisc(p) {
			s.vis.unset(p)
		}
	}
}

// restrictiveOctant scans one octant of the quadrant (dx, dy). Lines run
// along rows unless horizontal is set, in which case they run along columns.
func (s *scan) restrictiveOctant(dx, dy int, horizontal bool) {
	o := s.origin
	at := func(line, cell int) grid.Point {
		if horizontal {
			return grid.Point{Row: o.Row + cell*dy, Col: o.Col + line*dx}
		}
		return grid.Point{Row: o.Row + line*dy, Col: o.Col + cell*dx}
	}
	seenOrOpen := func(p grid.Point) bool {
		return s.vis.Has(p) || s.open(p)
	}

	var startAngle, endAngle []float64
	minAngle := 0.0
	lastLine := 0

	for line := 1; line <= s.radius; line++ {
		if !s.inMap(at(line, 0)) {
			return
		}
		slopesPerCell := 1.0 / float64(line+1)
		halfSlopes := slopesPerCell * 0.5
		anyVisible := false

		for cell := int(minAngle / slopesPerCell); cell <= line; cell++ {
			p := at(line, cell)
			if !s.inMap(p) {
				break
			}
			startSlope := float64(cell) * slopesPerCell
			centreSlope := startSlope + halfSlopes
			endSlope := startSlope + slopesPerCell

			visible := true
			if lastLine > 0 && !s.vis.Has(p) {
				for i := 0; visible && i < lastLine; i++ {
					if s.g.IsOpen(p) {
						if centreSlope > startAngle[i] && centreSlope < endAngle[i] {
							visible = false
						}
					} else if startSlope >= startAngle[i] && endSlope <= endAngle[i] {
						visible = false
					}
					behind := at(line-1, cell-1)
					if visible && !seenOrOpen(at(line-1, cell)) && s.inMap(behind) && !seenOrOpen(behind) {
						visible = false
					}
				}
			}

			if visible {
				s.vis.set(p)
				anyVisible = true
				if !s.g.IsOpen(p) {
					if minAngle >= startSlope {
						minAngle = endSlope
					} else {
						startAngle = append(startAngle, startSlope)
						endAngle = append(endAngle, endSlope)
					}
				}
			}
		}

		lastLine = len(startAngle)
		if !anyVisible || minAngle == 1.0 {
			return
		}
	}
}
