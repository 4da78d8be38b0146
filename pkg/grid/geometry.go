package grid

// Distance is the tile metric used across the engine: the longer axis plus
// half the shorter one.
func Distance(a, b Point) int {
	dr := abs(a.Row - b.Row)
	dc := abs(a.Col - b.Col)
	if dr > dc {
		return dr + dc/2
	}
	return dc + dr/2
}

// TraceLine returns the Bresenham line from a to b, both endpoints included.
// The line is rasterised from the smaller endpoint, so TraceLine(b, a) is
// TraceLine(a, b) reversed.
func TraceLine(a, b Point) []Point {
	if b.Less(a) {
		line := bresenham(b, a)
		for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
			line[i], line[j] = line[j], line[i]
		}
		return line
	}
	return bresenham(a, b)
}

func bresenham(a, b Point) []Point {
	dr := abs(b.Row - a.Row)
	dc := abs(b.Col - a.Col)
	sr := sign(b.Row - a.Row)
	sc := sign(b.Col - a.Col)

	line := make([]Point, 0, max(dr, dc)+1)
	err := dc - dr
	p := a
	for {
		line = append(line, p)
		if p == b {
			return line
		}
		e2 := 2 * err
		if e2 > -dr {
			err -= dr
			p.Col += sc
		}
		if e2 < dc {
			err += dc
			p.Row += sr
		}
	}
}

// Ray walks the line from an origin through a second point and beyond,
// repeating the step pattern of TraceLine(from, through).
type Ray struct {
	from    Point
	delta   Point
	pattern []Point
	step    int
}

// NewRay starts a ray at from heading through the given point. A ray whose
// two points coincide yields nothing.
func NewRay(from, through Point) *Ray {
	delta := through.Sub(from)
	r := &Ray{from: from, delta: delta}
	if delta != (Point{}) {
		line := TraceLine(Point{}, delta)
		r.pattern = line[1:]
	}
	return r
}

// Delta returns the direction vector of the ray.
func (r *Ray) Delta() Point {
	return r.delta
}

// Next returns the next cell of the ray. ok is false for a degenerate ray.
func (r *Ray) Next() (p Point, ok bool) {
	if len(r.pattern) == 0 {
		return r.from, false
	}
	n := len(r.pattern)
	lap := r.step / n
	off := r.pattern[r.step%n]
	r.step++
	return Point{
		Row: r.from.Row + off.Row + lap*r.delta.Row,
		Col: r.from.Col + off.Col + lap*r.delta.Col,
	}, true
}
