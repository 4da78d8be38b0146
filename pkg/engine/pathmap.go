package engine

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/gridsense/pkg/flowfield"
	"github.com/Faultbox/gridsense/pkg/grid"
)

// PathFillMap floods a distance map outward from origin and returns its
// handle. Diagonal steps cost max(1+stretch, 0.1).
func (e *Engine) PathFillMap(h int, origin grid.Point, stretch float64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookupAt(h, origin)
	if err != nil {
		return -1, err
	}
	return e.fill(h, s, origin, stretch, s.m.IsWalkable, func(f *flowfield.Field) {
		f.Flood([]grid.Point{origin})
	})
}

// PathFillSafetyMap builds a flee map around origin. Stepping toward lower
// values on it moves away from origin.
func (e *Engine) PathFillSafetyMap(h int, origin grid.Point, stretch float64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookupAt(h, origin)
	if err != nil {
		return -1, err
	}
	return e.fill(h, s, origin, stretch, s.m.IsWalkable, func(f *flowfield.Field) {
		f.Flood([]grid.Point{origin})
		f.Safety()
	})
}

// PathFillAutoexploreMap floods from every passable cell that is not yet
// remembered and from every cell carrying flags. CellPass cells count as
// passable here.
func (e *Engine) PathFillAutoexploreMap(h int, flags grid.Flag, stretch float64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookup(h)
	if err != nil {
		return -1, err
	}
	if err := checkFlag(flags); err != nil {
		return -1, err
	}

	passable := func(p grid.Point) bool {
		return s.m.IsWalkable(p) || (s.m.InBounds(p) && s.m.Has(p, grid.CellPass))
	}
	goals := cellsWhere(s.m, func(p grid.Point) bool {
		return (passable(p) && !s.m.Has(p, grid.CellMemo)) || s.m.Has(p, flags)
	})
	return e.fill(h, s, firstOr(goals), stretch, passable, func(f *flowfield.Field) {
		f.Flood(goals)
	})
}

// PathFillCustomMap floods from every cell carrying any of flags, or
// CellGoal when flags is zero.
func (e *Engine) PathFillCustomMap(h int, flags grid.Flag, stretch float64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookup(h)
	if err != nil {
		return -1, err
	}
	if err := checkFlag(flags); err != nil {
		return -1, err
	}
	if flags == grid.CellNone {
		flags = grid.CellGoal
	}

	goals := cellsWhere(s.m, func(p grid.Point) bool { return s.m.Has(p, flags) })
	return e.fill(h, s, firstOr(goals), stretch, s.m.IsWalkable, func(f *flowfield.Field) {
		f.Flood(goals)
	})
}

// fill reserves a path map slot on s, builds the field and stores it.
func (e *Engine) fill(h int, s *slot, origin grid.Point, stretch float64, passable flowfield.Passable, build func(*flowfield.Field)) (int, error) {
	pm := -1
	for i, f := range s.paths {
		if f == nil {
			pm = i
			break
		}
	}
	if pm < 0 {
		e.log.Debug("path map registry full", zap.Int("handle", h), zap.Int("capacity", len(s.paths)))
		return -1, ErrTooManyPathMaps
	}

	f := flowfield.New(s.m.Width(), s.m.Height(), origin, stretch, passable)
	build(f)
	s.paths[pm] = f
	e.log.Debug("path map filled",
		zap.Int("handle", h),
		zap.Int("pathmap", pm),
		zap.Float64("stretch", stretch),
		zap.Int("reached", f.Reached()))
	return pm, nil
}

// PathStepMap returns the neighbour of p to move to on path map pm: the
// lowest value, or the highest when away is set. Ties go to the first
// neighbour in N, S, W, E, NW, NE, SW, SE order.
func (e *Engine) PathStepMap(h, pm int, p grid.Point, away bool) (grid.Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookupAt(h, p)
	if err != nil {
		return grid.Point{}, err
	}
	f, err := s.pathMap(pm)
	if err != nil {
		return grid.Point{}, err
	}

	next, err := f.Step(p, away)
	if errors.Is(err, flowfield.ErrNoStep) {
		return grid.Point{}, ErrNoPath
	}
	return next, err
}

// PathMapDistance returns the value path map pm holds for p. ok is false
// for cells the flood never reached.
func (e *Engine) PathMapDistance(h, pm int, p grid.Point) (d float64, ok bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookupAt(h, p)
	if err != nil {
		return 0, false, err
	}
	f, err := s.pathMap(pm)
	if err != nil {
		return 0, false, err
	}
	d, ok = f.Distance(p)
	return d, ok, nil
}

// PathClearMap frees path map pm. It reports false when pm was not in use.
func (e *Engine) PathClearMap(h, pm int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookup(h)
	if err != nil {
		return false, err
	}
	if _, err := s.pathMap(pm); err != nil {
		return false, nil
	}
	s.paths[pm] = nil
	return true, nil
}

// PathClearAllMaps frees every path map of h.
func (e *Engine) PathClearAllMaps(h int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookup(h)
	if err != nil {
		return err
	}
	for i := range s.paths {
		s.paths[i] = nil
	}
	return nil
}

func (s *slot) pathMap(pm int) (*flowfield.Field, error) {
	if pm < 0 || pm >= len(s.paths) || s.paths[pm] == nil {
		return nil, ErrUninitializedPathMap
	}
	return s.paths[pm], nil
}

func cellsWhere(m *grid.Map, keep func(grid.Point) bool) []grid.Point {
	var out []grid.Point
	for row := 0; row < m.Height(); row++ {
		for col := 0; col < m.Width(); col++ {
			if p := grid.Pt(row, col); keep(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

func firstOr(pts []grid.Point) grid.Point {
	if len(pts) == 0 {
		return grid.Point{}
	}
	return pts[0]
}
