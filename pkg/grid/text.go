package grid

import "strings"

// Glyphs used by Parse and Render.
const (
	GlyphWall     = '#'
	GlyphFloor    = '.'
	GlyphMirror   = '*'
	GlyphOccupied = 'M'
	GlyphGoal     = 'G'
	GlyphKnown    = ','
)

// Parse builds a map from rows of glyphs. Floors are open and walkable,
// mirrors are reflective walls, 'M' marks an occupied floor, 'G' a goal floor
// and ',' a remembered floor. Anything else is a wall. Short rows are padded
// with walls.
func Parse(rows []string) *Map {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	m := New(width, len(rows))
	for row, line := range rows {
		for col := 0; col < len(line); col++ {
			p := Point{row, col}
			switch line[col] {
			case GlyphFloor:
				m.Set(p, CellOpen|CellWalk)
			case GlyphMirror:
				m.Set(p, CellRefl)
			case GlyphOccupied:
				m.Set(p, CellOpen|CellWalk|CellOcup)
			case GlyphGoal:
				m.Set(p, CellOpen|CellWalk|CellGoal)
			case GlyphKnown:
				m.Set(p, CellOpen|CellWalk|CellMemo)
			}
		}
	}
	return m
}

// Render draws m using the Parse glyphs, overlaying marks on top.
func Render(m *Map, marks map[Point]byte) string {
	var b strings.Builder
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			p := Point{row, col}
			if c, ok := marks[p]; ok {
				b.WriteByte(c)
				continue
			}
			b.WriteByte(glyph(m.Flags(p)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func glyph(f Flag) byte {
	switch {
	case f&CellRefl != 0:
		return GlyphMirror
	case f&CellOpen == 0:
		return GlyphWall
	case f&CellOcup != 0:
		return GlyphOccupied
	case f&CellGoal != 0:
		return GlyphGoal
	}
	return GlyphFloor
}
