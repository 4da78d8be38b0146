package grid

// LOS reports whether every cell strictly between a and b is open. Both
// points must be inside m.
func LOS(m *Map, a, b Point) bool {
	line := TraceLine(a, b)
	if len(line) <= 2 {
		return true
	}
	for _, p := range line[1 : len(line)-1] {
		if !m.IsOpen(p) {
			return false
		}
	}
	return true
}
