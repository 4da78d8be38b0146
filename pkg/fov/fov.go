// Package fov computes field of view on a grid with one of six
// interchangeable algorithms.
package fov

import (
	"errors"
	"math"

	"github.com/Faultbox/gridsense/pkg/grid"
)

// Algorithm selects a field-of-view strategy.
type Algorithm int

// Algorithms. The numeric values are part of the external interface.
const (
	Circular Algorithm = iota + 1
	Diamond
	Shadow
	Digital
	Restrictive
	Permissive
)

var algorithmNames = map[Algorithm]string{
	Circular:    "circular",
	Diamond:     "diamond",
	Shadow:      "shadow",
	Digital:     "digital",
	Restrictive: "restrictive",
	Permissive:  "permissive",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether a names a known algorithm.
func (a Algorithm) Valid() bool {
	_, ok := strategies[a]
	return ok
}

// ParseAlgorithm looks an algorithm up by name.
func ParseAlgorithm(name string) (Algorithm, bool) {
	for a, n := range algorithmNames {
		if n == name {
			return a, true
		}
	}
	return 0, false
}

// ErrUnknownAlgorithm is returned by Compute for an unrecognised Algorithm.
var ErrUnknownAlgorithm = errors.New("fov: unknown algorithm")

var strategies = map[Algorithm]func(*scan){
	Circular:    castCircular,
	Diamond:     castDiamond,
	Shadow:      castShadow,
	Digital:     castDigital,
	Restrictive: castRestrictive,
	Permissive:  castPermissive,
}

// Grid is the map view the algorithms read.
type Grid interface {
	Width() int
	Height() int
	IsOpen(p grid.Point) bool
}

// UnlimitedRadius returns a radius that covers the whole grid from origin.
func UnlimitedRadius(g Grid, origin grid.Point) int {
	mx := max(origin.Col, g.Width()-1-origin.Col)
	my := max(origin.Row, g.Height()-1-origin.Row)
	return int(math.Sqrt(float64(mx*mx+my*my))) + 1
}

// Compute returns the cells visible from origin. A radius of zero or less
// means unlimited. With lightWalls, opaque cells bordering visible floor are
// included; without it opaque cells never are. The origin is always visible.
func Compute(g Grid, origin grid.Point, radius int, alg Algorithm, lightWalls bool) (*Visibility, error) {
	run, ok := strategies[alg]
	if !ok {
		return nil, ErrUnknownAlgorithm
	}
	if radius <= 0 {
		radius = UnlimitedRadius(g, origin)
	}

	s := &scan{
		g:      g,
		origin: origin,
		radius: radius,
		r2:     radius * radius,
		vis:    newVisibility(g.Width(), g.Height()),
	}
	run(s)

	if lightWalls {
		s.illuminateWalls()
	} else {
		s.dropWalls()
	}
	s.vis.set(origin)
	return s.vis, nil
}

// scan holds the state shared by one Compute call.
type scan struct {
	g      Grid
	origin grid.Point
	radius int
	r2     int
	vis    *Visibility
}

func (s *scan) inMap(p grid.Point) bool {
	return p.Row >= 0 && p.Row < s.g.Height() && p.Col >= 0 && p.Col < s.g.Width()
}

func (s *scan) open(p grid.Point) bool {
	return s.inMap(p) && s.g.IsOpen(p)
}

func (s *scan) inDisc(p grid.Point) bool {
	dr, dc := p.Row-s.origin.Row, p.Col-s.origin.Col
	return dr*dr+dc*dc <= s.r2
}

// light marks p when it lies inside both the grid and the disc.
func (s *scan) light(p grid.Point) {
	if s.inMap(p) && s.inDisc(p) {
		s.vis.set(p)
	}
}

// illuminateWalls marks opaque cells that border a visible floor cell on the
// side facing away from the origin.
func (s *scan) illuminateWalls() {
	for _, c := range s.vis.Points() {
		if !s.open(c) {
			continue
		}
		for _, sr := range awaySigns(c.Row - s.origin.Row) {
			for _, sc := range awaySigns(c.Col - s.origin.Col) {
				for _, n := range [3]grid.Point{
					{Row: c.Row + sr, Col: c.Col},
					{Row: c.Row, Col: c.Col + sc},
					{Row: c.Row + sr, Col: c.Col + sc},
				} {
					if s.inMap(n) && !s.g.IsOpen(n) {
						s.light(n)
					}
				}
			}
		}
	}
}

func awaySigns(d int) []int {
	switch {
	case d > 0:
		return []int{1}
	case d < 0:
		return []int{-1}
	}
	return []int{-1, 1}
}

func (s *scan) dropWalls() {
	for _, p := range s.vis.Points() {
		if !s.g.IsOpen(p) {
			s.vis.unset(p)
		}
	}
}
