// Package flowfield builds Dijkstra distance fields over a grid and answers
// "which way next" queries against them.
package flowfield

import (
	"errors"
	"math"

	"github.com/MobRulesGames/GoLLRB/llrb"

	"github.com/Faultbox/gridsense/pkg/grid"
)

// MinDiagonalWeight is the floor applied to 1+stretch.
const MinDiagonalWeight = 0.1

// Safety transform constants.
const (
	safetyKnee  = 50.0
	safetyScale = -3.5
)

// ErrNoStep is returned by Step when no neighbour has been reached.
var ErrNoStep = errors.New("flowfield: no reachable neighbour")

// Passable reports whether a flood may enter p.
type Passable func(p grid.Point) bool

// Field is a per-cell distance map. Unreached cells hold +Inf.
type Field struct {
	width    int
	height   int
	origin   grid.Point
	stretch  float64
	passable Passable
	dist     []float64
}

// New allocates an empty field.
func New(width, height int, origin grid.Point, stretch float64, passable Passable) *Field {
	f := &Field{
		width:    width,
		height:   height,
		origin:   origin,
		stretch:  stretch,
		passable: passable,
		dist:     make([]float64, width*height),
	}
	f.reset()
	return f
}

// Origin returns the point the field was built around.
func (f *Field) Origin() grid.Point { return f.origin }

// Stretch returns the diagonal stretch the field was built with.
func (f *Field) Stretch() float64 { return f.stretch }

// DiagonalWeight is the cost of one diagonal step.
func (f *Field) DiagonalWeight() float64 {
	return max(1+f.stretch, MinDiagonalWeight)
}

// Distance returns the value stored for p. ok is false when p was never
// reached or lies outside the field.
func (f *Field) Distance(p grid.Point) (d float64, ok bool) {
	if !f.inBounds(p) {
		return 0, false
	}
	d = f.dist[f.index(p)]
	return d, !math.IsInf(d, 1)
}

// Reached counts the cells holding a finite value.
func (f *Field) Reached() int {
	n := 0
	for _, d := range f.dist {
		if !math.IsInf(d, 1) {
			n++
		}
	}
	return n
}

// Flood clears the field and fills it outward from every passable goal.
func (f *Field) Flood(goals []grid.Point) {
	f.reset()
	for _, g := range goals {
		if f.inBounds(g) && f.passable(g) {
			f.dist[f.index(g)] = 0
		}
	}
	f.relax()
}

// Safety turns a flooded field into a flee map: distances are squashed into
// large negative values that favour far-away cells and then relaxed again, so
// descending the field leads away from the goals around obstacles.
func (f *Field) Safety() {
	for i, d := range f.dist {
		if !math.IsInf(d, 1) {
			f.dist[i] = d / (safetyKnee + d) * safetyKnee * safetyScale
		}
	}
	f.relax()
}

type frontierItem struct {
	dist float64
	idx  int
}

func frontierLess(a, b interface{}) bool {
	x, y := a.(frontierItem), b.(frontierItem)
	if x.dist != y.dist {
		return x.dist < y.dist
	}
	return x.idx < y.idx
}

// relax runs Dijkstra using every finite cell as a source with its current
// value.
func (f *Field) relax() {
	open := llrb.New(frontierLess)
	for i, d := range f.dist {
		if !math.IsInf(d, 1) {
			open.ReplaceOrInsert(frontierItem{d, i})
		}
	}

	diag := f.DiagonalWeight()
	for open.Len() > 0 {
		cur := open.DeleteMin().(frontierItem)
		p := f.point(cur.idx)
		for _, step := range grid.Neighbors {
			n := p.Add(step)
			if !f.inBounds(n) || !f.passable(n) {
				continue
			}
			w := 1.0
			if grid.IsDiagonal(step) {
				if f.cutsCorner(p, step) {
					continue
				}
				w = diag
			}
			ni := f.index(n)
			nd := cur.dist + w
			if nd >= f.dist[ni] {
				continue
			}
			if !math.IsInf(f.dist[ni], 1) {
				open.Delete(frontierItem{f.dist[ni], ni})
			}
			f.dist[ni] = nd
			open.ReplaceOrInsert(frontierItem{nd, ni})
		}
	}
}

// cutsCorner reports whether a diagonal step from p squeezes between two
// blocked orthogonal cells.
func (f *Field) cutsCorner(p, step grid.Point) bool {
	a := grid.Point{Row: p.Row + step.Row, Col: p.Col}
	b := grid.Point{Row: p.Row, Col: p.Col + step.Col}
	return !f.inBounds(a) || !f.inBounds(b) || !f.passable(a) || !f.passable(b)
}

func (f *Field) reset() {
	for i := range f.dist {
		f.dist[i] = math.Inf(1)
	}
}

func (f *Field) inBounds(p grid.Point) bool {
	return p.Row >= 0 && p.Row < f.height && p.Col >= 0 && p.Col < f.width
}

func (f *Field) index(p grid.Point) int {
	return p.Row*f.width + p.Col
}

func (f *Field) point(i int) grid.Point {
	return grid.Point{Row: i / f.width, Col: i % f.width}
}
