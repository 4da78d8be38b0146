package fov

import "github.com/Faultbox/gridsense/pkg/grid"

// diamondRay carries the obscurity vector and Bresenham error of one cell
// during diamond raycasting. Coordinates are relative to the origin.
type diamondRay struct {
	x, y       int
	xob, yob   int
	xerr, yerr int
	xin, yin   *diamondRay
	added      bool
	ignore     bool
}

func (r *diamondRay) obscure() bool {
	return (r.xerr > 0 && r.xerr <= r.xob) || (r.yerr > 0 && r.yerr <= r.yob)
}

type diamondCast struct {
	*scan
	rays  []*diamondRay
	perim []*diamondRay
}

// castDiamond grows a diamond-shaped wavefront out of the origin. Each cell
// inherits obscurity from the one or two cells feeding it.
func castDiamond(s *scan) {
	d := &diamondCast{
		scan: s,
		rays: make([]*diamondRay, s.g.Width()*s.g.Height()),
	}
	d.expand(&diamondRay{})
	for i := 0; i < len(d.perim); i++ {
		r := d.perim[i]
		if r.x*r.x+r.y*r.y > s.r2 {
			r.ignore = true
			continue
		}
		d.merge(r)
		if !r.ignore {
			d.expand(r)
		}
	}

	for _, r := range d.perim {
		if !r.ignore && !r.obscure() {
			s.vis.set(grid.Point{Row: s.origin.Row + r.y, Col: s.origin.Col + r.x})
		}
	}
}

func (d *diamondCast) ray(x, y int) *diamondRay {
	p := grid.Point{Row: d.origin.Row + y, Col: d.origin.Col + x}
	if !d.inMap(p) {
		return nil
	}
	i := p.Row*d.g.Width() + p.Col
	if d.rays[i] == nil {
		d.rays[i] = &diamondRay{x: x, y: y}
	}
	return d.rays[i]
}

func (d *diamondCast) expand(r *diamondRay) {
	if r.x >= 0 {
		d.feed(d.ray(r.x+1, r.y), r)
	}
	if r.x <= 0 {
		d.feed(d.ray(r.x-1, r.y), r)
	}
	if r.y >= 0 {
		d.feed(d.ray(r.x, r.y+1), r)
	}
	if r.y <= 0 {
		d.feed(d.ray(r.x, r.y-1), r)
	}
}

func (d *diamondCast) feed(next, from *diamondRay) {
	if next == nil {
		return
	}
	if next.y == from.y {
		next.xin = from
	} else {
		next.yin = from
	}
	if !next.added {
		next.added = true
		d.perim = append(d.perim, next)
	}
}

func (d *diamondCast) merge(r *diamondRay) {
	xi, yi := r.xin, r.yin
	if xi != nil {
		mergeX(r, xi)
	}
	if yi != nil {
		mergeY(r, yi)
	}
	switch {
	case xi == nil:
		r.ignore = yi.obscure()
	case yi == nil:
		r.ignore = xi.obscure()
	default:
		r.ignore = xi.obscure() && yi.obscure()
	}

	p := grid.Point{Row: d.origin.Row + r.y, Col: d.origin.Col + r.x}
	if !r.ignore && !d.g.IsOpen(p) {
		r.xerr, r.xob = abs(r.x), abs(r.x)
		r.yerr, r.yob = abs(r.y), abs(r.y)
	}
}

func mergeX(r, in *diamondRay) {
	if in.xob == 0 && in.yob == 0 {
		return
	}
	if (in.xerr > 0 && r.xob == 0) || (in.yerr <= 0 && in.yob > 0 && in.xerr > 0) {
		r.xerr = in.xerr - in.yob
		r.yerr = in.yerr + in.yob
		r.xob, r.yob = in.xob, in.yob
	}
}

func mergeY(r, in *diamondRay) {
	if in.xob == 0 && in.yob == 0 {
		return
	}
	if (in.yerr > 0 && r.yob == 0) || (in.xerr <= 0 && in.xob > 0 && in.yerr > 0) {
		r.yerr = in.yerr - in.xob
		r.xerr = in.xerr + in.xob
		r.xob, r.yob = in.xob, in.yob
	}
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
