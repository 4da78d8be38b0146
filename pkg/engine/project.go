package engine

import (
	"github.com/Faultbox/gridsense/pkg/grid"
	"github.com/Faultbox/gridsense/pkg/project"
)

// projector validates a projection request and returns a projector for it.
func (e *Engine) projector(h int, origin, target grid.Point) (*project.Projector, error) {
	s, err := e.lookup(h)
	if err != nil {
		return nil, err
	}
	if !s.m.InBounds(origin) {
		return nil, ErrProjectionOrigin
	}
	if !s.m.InBounds(target) {
		return nil, ErrProjectionDestination
	}
	return project.New(s.m), nil
}

func (e *Engine) checkRadius(radius int) error {
	if radius < 0 || radius > e.limits.MaxRadius {
		return ErrIllegalRadius
	}
	return nil
}

// ProjectBeam traces a beam from origin toward target for at most rng cells.
// The result starts with origin.
func (e *Engine) ProjectBeam(h int, origin, target grid.Point, rng int, flags grid.ProjectFlag) ([]grid.Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pr, err := e.projector(h, origin, target)
	if err != nil {
		return nil, err
	}
	return pr.Beam(origin, target, e.rangeOrMax(rng), flags), nil
}

// ProjectBolt is ProjectBeam stopping at the first occupied cell.
func (e *Engine) ProjectBolt(h int, origin, target grid.Point, rng int, flags grid.ProjectFlag) ([]grid.Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pr, err := e.projector(h, origin, target)
	if err != nil {
		return nil, err
	}
	return pr.Bolt(origin, target, e.rangeOrMax(rng), flags), nil
}

// ProjectBall fires a beam at target and bursts with the given radius where
// it stops.
func (e *Engine) ProjectBall(h int, origin, target grid.Point, radius, rng int, flags grid.ProjectFlag) ([]grid.Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pr, err := e.projector(h, origin, target)
	if err != nil {
		return nil, err
	}
	if err := e.checkRadius(radius); err != nil {
		return nil, err
	}
	return pr.Ball(origin, target, radius, e.rangeOrMax(rng), flags), nil
}

// ProjectCloud bursts around origin.
func (e *Engine) ProjectCloud(h int, origin grid.Point, radius int, flags grid.ProjectFlag) ([]grid.Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pr, err := e.projector(h, origin, origin)
	if err != nil {
		return nil, err
	}
	if err := e.checkRadius(radius); err != nil {
		return nil, err
	}
	return pr.Cloud(origin, radius, flags), nil
}

// ProjectCone sweeps a cone from origin toward target.
func (e *Engine) ProjectCone(h int, origin, target grid.Point, radius, rng int, flags grid.ProjectFlag) ([]grid.Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pr, err := e.projector(h, origin, target)
	if err != nil {
		return nil, err
	}
	if err := e.checkRadius(radius); err != nil {
		return nil, err
	}
	return pr.Cone(origin, target, radius, e.rangeOrMax(rng), flags), nil
}
