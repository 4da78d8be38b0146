package engine

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gridsense/pkg/fov"
	"github.com/Faultbox/gridsense/pkg/grid"
)

// LOS reports whether every cell strictly between a and b is open.
func (e *Engine) LOS(h int, a, b grid.Point) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookupAt(h, a, b)
	if err != nil {
		return false, err
	}
	return grid.LOS(s.m, a, b), nil
}

// FOV recomputes what origin sees. CellSeen and CellLit are cleared across
// the map first, then every visible cell gains CellSeen and CellMemo. A
// radius of 0 is unlimited.
func (e *Engine) FOV(h int, origin grid.Point, radius int, alg fov.Algorithm, lightWalls bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookupAt(h, origin)
	if err != nil {
		return err
	}
	if radius < 0 || radius >= e.limits.MaxRadius {
		return ErrIllegalRadius
	}
	if !alg.Valid() {
		return ErrInvalidAlgorithm
	}

	s.m.ClearAll(grid.CellSeen | grid.CellLit)
	vis, err := fov.Compute(s.m, origin, radius, alg, lightWalls)
	if err != nil {
		return ErrInvalidAlgorithm
	}
	for _, p := range vis.Points() {
		s.m.Set(p, grid.CellFOV)
	}
	return nil
}

// Scatter picks a random cell within rng of origin that carries every bit of
// required and, when needLOS is set, is visible from origin. A negative rng
// uses the engine maximum.
func (e *Engine) Scatter(h int, origin grid.Point, rng int, required grid.Flag, needLOS bool) (grid.Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookupAt(h, origin)
	if err != nil {
		return grid.Point{}, err
	}
	if err := checkFlag(required); err != nil {
		return grid.Point{}, err
	}

	q := grid.ScatterQuery{
		Origin:   origin,
		Range:    e.rangeOrMax(rng),
		Required: required,
		NeedLOS:  needLOS,
		Attempts: e.limits.ScatterAttempts,
	}
	p, ok := grid.Scatter(s.m, q, e.rnd)
	if !ok {
		e.log.Warn("scatter found no location",
			zap.Int("handle", h),
			zap.Int("row", origin.Row),
			zap.Int("col", origin.Col),
			zap.Int("range", q.Range),
			zap.Int("attempts", q.Attempts))
		return grid.Point{}, ErrNoLocation
	}
	return p, nil
}
