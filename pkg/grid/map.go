package grid

// Map stores one flag word per cell.
type Map struct {
	width  int
	height int
	cells  []Flag
}

// New creates a width x height map with its border cells marked permanent.
func New(width, height int) *Map {
	m := &Map{
		width:  width,
		height: height,
		cells:  make([]Flag, width*height),
	}
	for col := 0; col < width; col++ {
		m.cells[col] |= CellPerm
		m.cells[(height-1)*width+col] |= CellPerm
	}
	for row := 0; row < height; row++ {
		m.cells[row*width] |= CellPerm
		m.cells[row*width+width-1] |= CellPerm
	}
	return m
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// InBounds reports whether p addresses a cell of m.
func (m *Map) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < m.height && p.Col >= 0 && p.Col < m.width
}

// Index returns the storage index of p. p must be in bounds.
func (m *Map) Index(p Point) int {
	return p.Row*m.width + p.Col
}

// PointAt is the inverse of Index.
func (m *Map) PointAt(idx int) Point {
	return Point{idx / m.width, idx % m.width}
}

// Flags returns the flag word of p.
func (m *Map) Flags(p Point) Flag {
	return m.cells[m.Index(p)]
}

// Has reports whether p carries any of f.
func (m *Map) Has(p Point, f Flag) bool {
	return m.cells[m.Index(p)]&f != 0
}

// HasAll reports whether p carries every bit of f.
func (m *Map) HasAll(p Point, f Flag) bool {
	return m.cells[m.Index(p)]&f == f
}

// Set ORs f into p.
func (m *Map) Set(p Point, f Flag) {
	m.cells[m.Index(p)] |= f
}

// Clear removes f from p. CellPerm is never removed.
func (m *Map) Clear(p Point, f Flag) {
	m.cells[m.Index(p)] &^= f &^ CellPerm
}

// Fill ORs f into every cell that is not permanent.
func (m *Map) Fill(f Flag) {
	for i, c := range m.cells {
		if c&CellPerm == 0 {
			m.cells[i] = c | f
		}
	}
}

// ClearAll removes f from every cell, keeping CellPerm.
func (m *Map) ClearAll(f Flag) {
	f &^= CellPerm
	for i := range m.cells {
		m.cells[i] &^= f
	}
}

// IsOpen reports whether p is in bounds and transparent.
func (m *Map) IsOpen(p Point) bool {
	return m.InBounds(p) && m.cells[m.Index(p)]&CellOpen != 0
}

// IsWalkable reports whether p is in bounds and carries CellOpen or CellWalk.
func (m *Map) IsWalkable(p Point) bool {
	return m.InBounds(p) && m.cells[m.Index(p)]&(CellOpen|CellWalk) != 0
}
