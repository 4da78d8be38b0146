package project

import "github.com/Faultbox/gridsense/pkg/grid"

// Ball fires a beam at target and bursts at the cell where it stopped. Cells
// of the burst must be open and in line of sight of the centre unless
// grid.ProjectThru is set.
func (pr *Projector) Ball(origin, target grid.Point, radius, rng int, flags grid.ProjectFlag) []grid.Point {
	a := newAffected()
	centre := pr.trace(a, origin, target, rng, flags&^(grid.ProjectPass|grid.ProjectRefl))
	pr.burst(a, centre, radius, flags)
	return a.pts
}

// Cloud bursts around origin without a beam.
func (pr *Projector) Cloud(origin grid.Point, radius int, flags grid.ProjectFlag) []grid.Point {
	a := newAffected()
	pr.burst(a, origin, radius, flags)
	return a.pts
}

// burst adds rings of increasing distance around centre. grid.ProjectShel
// keeps only the outermost ring.
func (pr *Projector) burst(a *affected, centre grid.Point, radius int, flags grid.ProjectFlag) {
	for d := 0; d <= radius; d++ {
		if flags.Has(grid.ProjectShel) && d != radius {
			continue
		}
		for row := centre.Row - d; row <= centre.Row+d; row++ {
			for col := centre.Col - d; col <= centre.Col+d; col++ {
				p := grid.Point{Row: row, Col: col}
				if !pr.m.InBounds(p) || ringDistance(centre, p, flags) != d {
					continue
				}
				if pr.reaches(centre, p, flags) {
					a.add(p)
				}
			}
		}
	}
}

func (pr *Projector) reaches(centre, p grid.Point, flags grid.ProjectFlag) bool {
	if flags.Has(grid.ProjectThru) {
		return !pr.m.Has(p, grid.CellPerm)
	}
	return pr.m.IsOpen(p) && grid.LOS(pr.m, centre, p)
}

func ringDistance(a, b grid.Point, flags grid.ProjectFlag) int {
	dr, dc := abs(a.Row-b.Row), abs(a.Col-b.Col)
	switch {
	case flags.Has(grid.ProjectDiamond):
		return dr + dc
	case flags.Has(grid.ProjectSquare):
		return max(dr, dc)
	}
	return grid.Distance(a, b)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
