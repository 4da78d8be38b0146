package fov

import "github.com/Faultbox/gridsense/pkg/grid"

// octants maps the local (dx, dy) scan frame onto the eight octants.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// castShadow is recursive shadowcasting over the eight octants.
func castShadow(s *scan) {
	for _, m := range octants {
		s.castLight(1, 1.0, 0.0, m[0], m[1], m[2], m[3])
	}
}

// castLight scans rows outward from row, lighting cells between the start
// and end slopes and recursing under every run of opaque cells.
func (s *scan) castLight(row int, start, end float64, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	var newStart float64
	for j := row; j <= s.radius; j++ {
		blocked := false
		dy := -j
		for dx := -j; dx <= 0; dx++ {
			p := grid.Point{
				Row: s.origin.Row + dx*yx + dy*yy,
				Col: s.origin.Col + dx*xx + dy*xy,
			}
			leftSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rightSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
			if start < rightSlope {
				continue
			}
			if end > leftSlope {
				break
			}

			s.light(p)
			opaque := !s.open(p)
			switch {
			case blocked && opaque:
				newStart = rightSlope
			case blocked:
				blocked = false
				start = newStart
			case opaque && j < s.radius:
				blocked = true
				s.castLight(j+1, start, leftSlope, xx, xy, yx, yy)
				newStart = rightSlope
			}
		}
		if blocked {
			return
		}
	}
}
