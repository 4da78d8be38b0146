package flowfield

import "github.com/Faultbox/gridsense/pkg/grid"

// Step picks the reached neighbour of p with the lowest value, or the highest
// when away is set. Neighbours are scanned in grid.Neighbors order and the
// first best wins. Step always moves: on a goal or at a local extreme it
// still returns the best neighbour.
func (f *Field) Step(p grid.Point, away bool) (grid.Point, error) {
	var (
		best    grid.Point
		bestVal float64
		found   bool
	)
	for _, step := range grid.Neighbors {
		n := p.Add(step)
		d, ok := f.Distance(n)
		if !ok {
			continue
		}
		if grid.IsDiagonal(step) && f.cutsCorner(p, step) {
			continue
		}
		if !found || (away && d > bestVal) || (!away && d < bestVal) {
			best, bestVal, found = n, d, true
		}
	}
	if !found {
		return p, ErrNoStep
	}
	return best, nil
}

// Descend follows Step toward lower values from start for at most limit
// moves and returns the cells visited, excluding start. The walk stops on a
// cell no neighbour improves on, such as a goal, or when no neighbour has
// been reached.
func (f *Field) Descend(start grid.Point, limit int) []grid.Point {
	var path []grid.Point
	p := start
	for len(path) < limit {
		next, err := f.Step(p, false)
		if err != nil {
			break
		}
		if cur, ok := f.Distance(p); ok && f.dist[f.index(next)] >= cur {
			break
		}
		path = append(path, next)
		p = next
	}
	return path
}
