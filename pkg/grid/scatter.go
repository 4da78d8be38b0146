package grid

// Rand is the uniform random source used by Scatter. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// ScatterQuery describes where Scatter may land.
type ScatterQuery struct {
	Origin   Point
	Range    int
	Required Flag // every bit must be present on the chosen cell
	NeedLOS  bool
	Attempts int
}

// Scatter samples cells uniformly from the square of half-width q.Range
// around q.Origin, clipped to m, and returns the first one that satisfies
// the query. ok is false once q.Attempts samples have been rejected.
func Scatter(m *Map, q ScatterQuery, rnd Rand) (p Point, ok bool) {
	rowLo, rowHi := scatterSpan(q.Origin.Row, q.Range, m.height)
	colLo, colHi := scatterSpan(q.Origin.Col, q.Range, m.width)

	for try := 0; try < q.Attempts; try++ {
		p = Point{
			Row: rowLo + rnd.IntN(rowHi-rowLo),
			Col: colLo + rnd.IntN(colHi-colLo),
		}
		if !m.HasAll(p, q.Required) {
			continue
		}
		if q.NeedLOS && !LOS(m, q.Origin, p) {
			continue
		}
		return p, true
	}
	return Point{}, false
}

// scatterSpan returns the half-open interval [center-rng, center+rng) clipped
// to [0, limit). An empty interval collapses onto center.
func scatterSpan(center, rng, limit int) (lo, hi int) {
	lo = max(center-rng, 0)
	hi = min(center+rng, limit)
	if hi <= lo {
		return center, center + 1
	}
	return lo, hi
}
