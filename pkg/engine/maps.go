package engine

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gridsense/pkg/flowfield"
	"github.com/Faultbox/gridsense/pkg/grid"
)

// CreateMap allocates a width x height map in the lowest free slot and
// returns its handle. Border cells start out permanent.
func (e *Engine) CreateMap(width, height int) (int, error) {
	if width < 1 || width > e.limits.MaxWidth || height < 1 || height > e.limits.MaxHeight {
		return -1, ErrInvalidMapSize
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store(grid.New(width, height))
}

// AddMap registers an existing map, such as one built by grid.Parse. The
// engine takes ownership of m.
func (e *Engine) AddMap(m *grid.Map) (int, error) {
	if m == nil || m.Width() < 1 || m.Width() > e.limits.MaxWidth ||
		m.Height() < 1 || m.Height() > e.limits.MaxHeight {
		return -1, ErrInvalidMapSize
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store(m)
}

func (e *Engine) store(m *grid.Map) (int, error) {
	for h, s := range e.maps {
		if s != nil {
			continue
		}
		e.maps[h] = &slot{m: m, paths: make([]*flowfield.Field, e.limits.MaxPaths)}
		e.log.Debug("map created",
			zap.Int("handle", h),
			zap.Int("width", m.Width()),
			zap.Int("height", m.Height()))
		return h, nil
	}
	e.log.Debug("map registry full", zap.Int("capacity", len(e.maps)))
	return -1, ErrTooManyMaps
}

// DeleteMap frees h and its path maps. It reports false when h was not
// allocated.
func (e *Engine) DeleteMap(h int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.lookup(h); err != nil {
		return false
	}
	e.maps[h] = nil
	e.log.Debug("map deleted", zap.Int("handle", h))
	return true
}

// DeleteAllMaps frees every slot.
func (e *Engine) DeleteAllMaps() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for h := range e.maps {
		e.maps[h] = nil
	}
	e.log.Debug("all maps deleted")
}

// MapSize returns the dimensions of h.
func (e *Engine) MapSize(h int) (width, height int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookup(h)
	if err != nil {
		return 0, 0, err
	}
	return s.m.Width(), s.m.Height(), nil
}

// SetFlag ORs f into the cell at p.
func (e *Engine) SetFlag(h int, p grid.Point, f grid.Flag) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookupAt(h, p)
	if err != nil {
		return err
	}
	if err := checkFlag(f); err != nil {
		return err
	}
	s.m.Set(p, f)
	return nil
}

// ClearFlag removes f from the cell at p. Permanent marks stay.
func (e *Engine) ClearFlag(h int, p grid.Point, f grid.Flag) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookupAt(h, p)
	if err != nil {
		return err
	}
	if err := checkFlag(f); err != nil {
		return err
	}
	s.m.Clear(p, f)
	return nil
}

// HasFlag reports whether the cell at p carries any bit of f.
func (e *Engine) HasFlag(h int, p grid.Point, f grid.Flag) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookupAt(h, p)
	if err != nil {
		return false, err
	}
	if err := checkFlag(f); err != nil {
		return false, err
	}
	return s.m.Has(p, f), nil
}

// GetFlags returns the full flag word at p.
func (e *Engine) GetFlags(h int, p grid.Point) (grid.Flag, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookupAt(h, p)
	if err != nil {
		return grid.CellNone, err
	}
	return s.m.Flags(p), nil
}

// FillMap ORs f into every cell that is not permanent.
func (e *Engine) FillMap(h int, f grid.Flag) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookup(h)
	if err != nil {
		return err
	}
	if err := checkFlag(f); err != nil {
		return err
	}
	s.m.Fill(f)
	return nil
}

// ClearMap removes every flag but CellPerm from every cell.
func (e *Engine) ClearMap(h int) error {
	return e.ClearMapFlags(h, grid.CellMask)
}

// ClearMapFlags removes f from every cell. CellPerm is kept.
func (e *Engine) ClearMapFlags(h int, f grid.Flag) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookup(h)
	if err != nil {
		return err
	}
	if err := checkFlag(f); err != nil {
		return err
	}
	s.m.ClearAll(f)
	return nil
}

// Render draws h as text, overlaying marks.
func (e *Engine) Render(h int, marks map[grid.Point]byte) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.lookup(h)
	if err != nil {
		return "", err
	}
	return grid.Render(s.m, marks), nil
}
