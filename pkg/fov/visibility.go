package fov

import "github.com/Faultbox/gridsense/pkg/grid"

// Visibility is the set of cells one field-of-view pass found visible.
type Visibility struct {
	width  int
	height int
	cells  []bool
	count  int
}

func newVisibility(width, height int) *Visibility {
	return &Visibility{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

func (v *Visibility) set(p grid.Point) {
	i := p.Row*v.width + p.Col
	if !v.cells[i] {
		v.cells[i] = true
		v.count++
	}
}

func (v *Visibility) unset(p grid.Point) {
	i := p.Row*v.width + p.Col
	if v.cells[i] {
		v.cells[i] = false
		v.count--
	}
}

// Has reports whether p is visible.
func (v *Visibility) Has(p grid.Point) bool {
	if p.Row < 0 || p.Row >= v.height || p.Col < 0 || p.Col >= v.width {
		return false
	}
	return v.cells[p.Row*v.width+p.Col]
}

// Len returns the number of visible cells.
func (v *Visibility) Len() int {
	return v.count
}

// Points returns the visible cells in row-major order.
func (v *Visibility) Points() []grid.Point {
	pts := make([]grid.Point, 0, v.count)
	for i, ok := range v.cells {
		if ok {
			pts = append(pts, grid.Point{Row: i / v.width, Col: i % v.width})
		}
	}
	return pts
}
