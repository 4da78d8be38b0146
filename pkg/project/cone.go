package project

import (
	"github.com/Faultbox/gridsense/pkg/grid"
	"github.com/Faultbox/gridsense/pkg/math"
)

// Cone sweeps rays from origin across a sector aimed at target. The sector
// is radius cells wide on either side at the target's distance and reaches
// min(Distance(origin, target)+radius, rng). Every ray stops like a beam.
// Aiming at the origin itself gives a radius 1 cloud.
func (pr *Projector) Cone(origin, target grid.Point, radius, rng int, flags grid.ProjectFlag) []grid.Point {
	if origin == target {
		return pr.Cloud(origin, 1, flags)
	}

	a := newAffected()
	a.add(origin)

	aim := offset(origin, target)
	half := math.HalfAngle(float64(radius), aim.Length())
	length := min(grid.Distance(origin, target)+radius, rng)

	for row := origin.Row - length; row <= origin.Row+length; row++ {
		for col := origin.Col - length; col <= origin.Col+length; col++ {
			p := grid.Point{Row: row, Col: col}
			if p == origin || !pr.m.InBounds(p) {
				continue
			}
			off := offset(origin, p)
			if off.Length() > float64(length)+math.Epsilon {
				continue
			}
			if aim.AngleTo(off) > half+math.Epsilon {
				continue
			}
			pr.castTo(a, origin, p, flags)
		}
	}
	return a.pts
}

// castTo follows the line from origin to p until it is blocked.
func (pr *Projector) castTo(a *affected, origin, p grid.Point, flags grid.ProjectFlag) {
	for _, q := range grid.TraceLine(origin, p)[1:] {
		if !pr.enterable(q, flags) {
			return
		}
		a.add(q)
		if flags.Has(grid.ProjectStop) && pr.m.Has(q, grid.CellOcup) {
			return
		}
	}
}

func offset(from, to grid.Point) math.Vec2 {
	return cellVec(to).Sub(cellVec(from))
}

func cellVec(p grid.Point) math.Vec2 {
	return math.Vec2{X: float64(p.Col), Y: float64(p.Row)}
}
