// Package pathfind finds direct paths between two cells.
package pathfind

import (
	"container/heap"

	"github.com/Faultbox/gridsense/pkg/flowfield"
	"github.com/Faultbox/gridsense/pkg/grid"
)

// Algorithm selects a path search.
type Algorithm int

// Path algorithms. The numeric values are part of the external interface.
const (
	Basic Algorithm = 1 // greedy descent of a one-shot distance field
	AStar Algorithm = 2
)

// Valid reports whether a names a known algorithm.
func (a Algorithm) Valid() bool {
	return a == Basic || a == AStar
}

func (a Algorithm) String() string {
	switch a {
	case Basic:
		return "basic"
	case AStar:
		return "astar"
	}
	return "unknown"
}

// Options tunes one search. Range must already be positive.
type Options struct {
	Algorithm    Algorithm
	Range        int
	Flags        grid.ProjectFlag
	DiagonalCost float64
}

// PathNode represents a node in the A* search.
type PathNode struct {
	Pos    grid.Point
	G      float64 // cost from origin
	H      float64 // heuristic to destination
	F      float64 // G + H
	Seq    int     // insertion order, breaks ties on F
	Parent *PathNode
	Index  int // index in heap
}

// PathHeap is the A* open set ordered by F, then insertion order.
type PathHeap []*PathNode

func (h PathHeap) Len() int { return len(h) }
func (h PathHeap) Less(i, j int) bool {
	if h[i].F != h[j].F {
		return h[i].F < h[j].F
	}
	return h[i].Seq < h[j].Seq
}
func (h PathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index = i
	h[j].Index = j
}

func (h *PathHeap) Push(x interface{}) {
	n := len(*h)
	node := x.(*PathNode)
	node.Index = n
	*h = append(*h, node)
}

func (h *PathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.Index = -1
	*h = old[0 : n-1]
	return node
}

// PathFinder searches paths on one map.
type PathFinder struct {
	m *grid.Map
}

// NewPathFinder creates a new pathfinder.
func NewPathFinder(m *grid.Map) *PathFinder {
	if m == nil {
		return nil
	}
	return &PathFinder{m: m}
}

// IsWalkable reports whether a path may enter p. With grid.ProjectThru every
// cell except permanent ones is walkable.
func (pf *PathFinder) IsWalkable(p grid.Point, flags grid.ProjectFlag) bool {
	if !pf.m.InBounds(p) {
		return false
	}
	if flags.Has(grid.ProjectThru) {
		return !pf.m.Has(p, grid.CellPerm)
	}
	return pf.m.IsWalkable(p)
}

// FindPath returns the cells from origin to dest, excluding origin and
// including dest. It returns nil when origin equals dest, when dest cannot be
// entered, or when no path exists within range.
func (pf *PathFinder) FindPath(origin, dest grid.Point, opts Options) []grid.Point {
	if pf == nil || origin == dest || !pf.IsWalkable(dest, opts.Flags) {
		return nil
	}
	switch opts.Algorithm {
	case Basic:
		return pf.descend(origin, dest, opts)
	case AStar:
		return pf.astar(origin, dest, opts)
	}
	return nil
}

// descend floods a distance field out of dest and walks it downhill from
// origin.
func (pf *PathFinder) descend(origin, dest grid.Point, opts Options) []grid.Point {
	walkable := func(p grid.Point) bool { return pf.IsWalkable(p, opts.Flags) }
	field := flowfield.New(pf.m.Width(), pf.m.Height(), dest, 0, walkable)
	field.Flood([]grid.Point{dest})

	path := field.Descend(origin, opts.Range)
	if len(path) == 0 || path[len(path)-1] != dest {
		return nil
	}
	return path
}

// Flee walks down a safety field built around threat for at most rng steps.
// It returns nil when origin is already as safe as its neighbourhood allows.
func (pf *PathFinder) Flee(origin, threat grid.Point, rng int) []grid.Point {
	if pf == nil {
		return nil
	}
	field := flowfield.New(pf.m.Width(), pf.m.Height(), threat, 0, pf.m.IsWalkable)
	field.Flood([]grid.Point{threat})
	field.Safety()
	return field.Descend(origin, rng)
}

func (pf *PathFinder) astar(origin, dest grid.Point, opts Options) []grid.Point {
	openSet := &PathHeap{}
	heap.Init(openSet)

	cells := pf.m.Width() * pf.m.Height()
	closed := make([]bool, cells)
	nodes := make([]*PathNode, cells)
	seq := 0

	start := &PathNode{
		Pos: origin,
		H:   heuristic(origin, dest, opts.DiagonalCost),
		Seq: seq,
	}
	start.F = start.H
	heap.Push(openSet, start)
	nodes[pf.m.Index(origin)] = start

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*PathNode)
		if current.Pos == dest {
			return reconstructPath(current)
		}
		closed[pf.m.Index(current.Pos)] = true

		for _, step := range grid.Neighbors {
			next := current.Pos.Add(step)
			if !pf.IsWalkable(next, opts.Flags) {
				continue
			}
			idx := pf.m.Index(next)
			if closed[idx] || grid.Distance(origin, next) > opts.Range {
				continue
			}

			moveCost := 1.0
			if grid.IsDiagonal(step) {
				moveCost = opts.DiagonalCost
			}
			g := current.G + moveCost

			neighbor := nodes[idx]
			switch {
			case neighbor == nil:
				seq++
				neighbor = &PathNode{
					Pos:    next,
					G:      g,
					H:      heuristic(next, dest, opts.DiagonalCost),
					Seq:    seq,
					Parent: current,
				}
				neighbor.F = neighbor.G + neighbor.H
				nodes[idx] = neighbor
				heap.Push(openSet, neighbor)
			case g < neighbor.G:
				seq++
				neighbor.G = g
				neighbor.F = neighbor.G + neighbor.H
				neighbor.Seq = seq
				neighbor.Parent = current
				heap.Fix(openSet, neighbor.Index)
			}
		}
	}

	// No path found
	return nil
}

// heuristic is a lower bound on the cost from a to b given the diagonal
// step cost: octile distance when a diagonal costs between one and two
// straight steps, Chebyshev distance scaled by the cost when it is cheaper.
func heuristic(a, b grid.Point, diagonal float64) float64 {
	dr := abs(a.Row - b.Row)
	dc := abs(a.Col - b.Col)
	long, short := max(dr, dc), min(dr, dc)
	if diagonal < 1 {
		return float64(long) * max(diagonal, 0)
	}
	return float64(long-short) + float64(short)*min(diagonal, 2)
}

// reconstructPath walks parents back to the origin, which is left out.
func reconstructPath(node *PathNode) []grid.Point {
	var path []grid.Point
	for ; node.Parent != nil; node = node.Parent {
		path = append(path, node.Pos)
	}
	// Reverse path (it's built from goal to start)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
