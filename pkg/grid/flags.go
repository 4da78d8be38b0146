package grid

// Flag is a set of cell attribute bits.
type Flag uint32

// Cell attribute bits.
const (
	CellNone Flag = 0
	CellDark Flag = 0x0001 // unlit
	CellOpen Flag = 0x0002 // transparent; blocks nothing
	CellView Flag = 0x0004
	CellLit  Flag = 0x0008
	CellWalk Flag = 0x0010 // walkable
	CellMemo Flag = 0x0020 // remembered
	CellSeen Flag = 0x0040 // visible this turn
	CellRoom Flag = 0x0080
	CellGlow Flag = 0x0100
	CellPath Flag = 0x0200
	CellOcup Flag = 0x0400 // occupied by an actor
	CellRefl Flag = 0x0800 // reflects beams
	CellPerm Flag = 0x1000 // permanent; cannot be cleared
	CellGoal Flag = 0x2000
	CellPass Flag = 0x4000 // passable for autoexplore
	CellMark Flag = 0x8000

	// CellFOV is what a field-of-view pass sets on visible cells.
	CellFOV = CellSeen | CellMemo

	// CellMask covers every defined cell bit.
	CellMask = CellDark | CellOpen | CellView | CellLit | CellWalk | CellMemo |
		CellSeen | CellRoom | CellGlow | CellPath | CellOcup | CellRefl |
		CellPerm | CellGoal | CellPass | CellMark
)

// Valid reports whether f only uses defined cell bits.
func (f Flag) Valid() bool {
	return f&^CellMask == 0
}

// ProjectFlag modifies how paths and projections travel.
type ProjectFlag uint32

// Projection and path modifiers.
const (
	ProjectStop    ProjectFlag = 0x0002 // stop at the first occupied cell
	ProjectThru    ProjectFlag = 0x0020 // pass through non-permanent obstacles
	ProjectPass    ProjectFlag = 0x0100 // continue past the target
	ProjectShel    ProjectFlag = 0x0200 // ball: outer ring only
	ProjectDiamond ProjectFlag = 0x0400 // ball: diamond rings
	ProjectSquare  ProjectFlag = 0x0800 // ball: square rings
	ProjectRefl    ProjectFlag = 0x1000 // beams bounce off reflective cells
)

// Has reports whether every bit of o is set in f.
func (f ProjectFlag) Has(o ProjectFlag) bool {
	return f&o == o
}
