package engine

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/gridsense/pkg/fov"
	"github.com/Faultbox/gridsense/pkg/grid"
)

const room = `
###########
#.........#
#.........#
#.........#
#.........#
#.........#
#.........#
#.........#
###########`

func load(t *testing.T, e *Engine, layout string) int {
	t.Helper()
	h, err := e.AddMap(grid.Parse(strings.Split(strings.TrimSpace(layout), "\n")))
	require.NoError(t, err)
	return h
}

func countFlag(t *testing.T, e *Engine, h int, f grid.Flag) int {
	t.Helper()
	w, ht, err := e.MapSize(h)
	require.NoError(t, err)
	n := 0
	for row := 0; row < ht; row++ {
		for col := 0; col < w; col++ {
			ok, err := e.HasFlag(h, grid.Pt(row, col), f)
			require.NoError(t, err)
			if ok {
				n++
			}
		}
	}
	return n
}

func TestCreateMapHandles(t *testing.T) {
	e := New(WithLimits(Limits{MaxMaps: 3}))

	for want := 0; want < 3; want++ {
		h, err := e.CreateMap(10, 10)
		require.NoError(t, err)
		assert.Equal(t, want, h)
	}

	_, err := e.CreateMap(10, 10)
	assert.ErrorIs(t, err, ErrTooManyMaps)

	_, err = e.CreateMap(0, 10)
	assert.ErrorIs(t, err, ErrInvalidMapSize, "size is checked before capacity")

	assert.True(t, e.DeleteMap(1))
	assert.False(t, e.DeleteMap(1))
	assert.False(t, e.DeleteMap(-1))
	assert.False(t, e.DeleteMap(7))

	h, err := e.CreateMap(4, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, h, "lowest free slot is reused")

	e.DeleteAllMaps()
	_, _, err = e.MapSize(0)
	assert.ErrorIs(t, err, ErrMapNotInitialized)
}

func TestCreateMapSizes(t *testing.T) {
	e := New(WithLimits(Limits{MaxWidth: 20, MaxHeight: 30}))

	tests := []struct {
		w, h int
		ok   bool
	}{
		{1, 1, true},
		{20, 30, true},
		{21, 30, false},
		{20, 31, false},
		{-1, 5, false},
		{5, 0, false},
	}
	for _, tt := range tests {
		_, err := e.CreateMap(tt.w, tt.h)
		if tt.ok {
			assert.NoError(t, err, "%dx%d", tt.w, tt.h)
		} else {
			assert.ErrorIs(t, err, ErrInvalidMapSize, "%dx%d", tt.w, tt.h)
		}
	}
}

func TestFlags(t *testing.T) {
	e := New()
	h, err := e.CreateMap(5, 4)
	require.NoError(t, err)

	w, ht, err := e.MapSize(h)
	require.NoError(t, err)
	assert.Equal(t, 5, w)
	assert.Equal(t, 4, ht)

	p := grid.Pt(1, 2)
	require.NoError(t, e.SetFlag(h, p, grid.CellOpen|grid.CellLit))
	got, err := e.GetFlags(h, p)
	require.NoError(t, err)
	assert.Equal(t, grid.CellOpen|grid.CellLit, got)

	ok, err := e.HasFlag(h, p, grid.CellLit|grid.CellGoal)
	require.NoError(t, err)
	assert.True(t, ok, "any bit is enough")

	require.NoError(t, e.ClearFlag(h, p, grid.CellLit))
	got, _ = e.GetFlags(h, p)
	assert.Equal(t, grid.CellOpen, got)

	border := grid.Pt(0, 0)
	require.NoError(t, e.ClearFlag(h, border, grid.CellPerm))
	ok, _ = e.HasFlag(h, border, grid.CellPerm)
	assert.True(t, ok, "permanent border survives ClearFlag")
}

func TestFillAndClearMap(t *testing.T) {
	e := New()
	h, err := e.CreateMap(6, 5)
	require.NoError(t, err)

	require.NoError(t, e.FillMap(h, grid.CellOpen))
	assert.Equal(t, 4*3, countFlag(t, e, h, grid.CellOpen), "permanent cells are not filled")
	assert.Equal(t, 2*6+2*3, countFlag(t, e, h, grid.CellPerm))

	require.NoError(t, e.FillMap(h, grid.CellLit))
	require.NoError(t, e.ClearMapFlags(h, grid.CellLit))
	assert.Zero(t, countFlag(t, e, h, grid.CellLit))
	assert.Equal(t, 12, countFlag(t, e, h, grid.CellOpen))

	require.NoError(t, e.ClearMap(h))
	assert.Zero(t, countFlag(t, e, h, grid.CellMask&^grid.CellPerm))
	assert.Equal(t, 18, countFlag(t, e, h, grid.CellPerm))
}

func TestValidationOrder(t *testing.T) {
	e := New()
	h, err := e.CreateMap(5, 5)
	require.NoError(t, err)
	bad := grid.Flag(1 << 20)
	out := grid.Pt(9, 9)

	assert.ErrorIs(t, e.SetFlag(3, out, bad), ErrMapNotInitialized)
	assert.ErrorIs(t, e.SetFlag(h, out, bad), ErrOutOfBounds)
	assert.ErrorIs(t, e.SetFlag(h, grid.Pt(1, 1), bad), ErrInvalidFlag)
	assert.ErrorIs(t, e.FillMap(h, bad), ErrInvalidFlag)
	_, err = e.HasFlag(h, grid.Pt(-1, 0), grid.CellOpen)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = e.GetFlags(h, grid.Pt(0, 5))
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestLOS(t *testing.T) {
	e := New()
	h := load(t, e, `
#######
#.....#
#..#..#
#.....#
#######`)

	ok, err := e.LOS(h, grid.Pt(2, 1), grid.Pt(2, 5))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = e.LOS(h, grid.Pt(1, 1), grid.Pt(1, 5))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = e.LOS(h, grid.Pt(1, 1), grid.Pt(1, 9))
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestFOV(t *testing.T) {
	e := New()
	rows := []string{"###########"}
	for i := 0; i < 9; i++ {
		rows = append(rows, "#.........#")
	}
	rows = append(rows, "###########")
	h, err := e.AddMap(grid.Parse(rows))
	require.NoError(t, err)
	origin := grid.Pt(5, 5)

	require.NoError(t, e.FOV(h, origin, 3, fov.Shadow, false))
	assert.Equal(t, 29, countFlag(t, e, h, grid.CellSeen))
	assert.Equal(t, 29, countFlag(t, e, h, grid.CellMemo))

	require.NoError(t, e.FOV(h, origin, 1, fov.Shadow, false))
	assert.Equal(t, 5, countFlag(t, e, h, grid.CellSeen), "previous view is cleared")
	assert.Equal(t, 29, countFlag(t, e, h, grid.CellMemo), "memory is kept")

	require.NoError(t, e.FOV(h, origin, 0, fov.Permissive, true))
	assert.Equal(t, 121, countFlag(t, e, h, grid.CellSeen))

	assert.ErrorIs(t, e.FOV(h, origin, -1, fov.Shadow, false), ErrIllegalRadius)
	assert.ErrorIs(t, e.FOV(h, origin, 60, fov.Shadow, false), ErrIllegalRadius)
	assert.ErrorIs(t, e.FOV(h, origin, 3, fov.Algorithm(9), false), ErrInvalidAlgorithm)
	assert.ErrorIs(t, e.FOV(h, grid.Pt(20, 0), 3, fov.Algorithm(9), false), ErrOutOfBounds)
}

func TestScatter(t *testing.T) {
	e := New(WithSeed(42), WithLimits(Limits{ScatterAttempts: 50}))
	h := load(t, e, room)
	origin := grid.Pt(4, 5)

	for i := 0; i < 20; i++ {
		p, err := e.Scatter(h, origin, 2, grid.CellOpen, true)
		require.NoError(t, err)
		assert.True(t, p.Row >= 2 && p.Row < 6 && p.Col >= 3 && p.Col < 7, "%v outside the square", p)
		ok, _ := e.HasFlag(h, p, grid.CellOpen)
		assert.True(t, ok)
	}

	_, err := e.Scatter(h, origin, 3, grid.CellGoal, false)
	assert.ErrorIs(t, err, ErrNoLocation)

	_, err = e.Scatter(h, origin, 3, grid.Flag(1<<30), false)
	assert.ErrorIs(t, err, ErrInvalidFlag)
}

func TestScatterIsSeeded(t *testing.T) {
	draw := func() []grid.Point {
		e := New(WithSeed(7))
		h := load(t, e, room)
		var out []grid.Point
		for i := 0; i < 5; i++ {
			p, err := e.Scatter(h, grid.Pt(4, 5), -1, grid.CellWalk, false)
			require.NoError(t, err)
			out = append(out, p)
		}
		return out
	}
	assert.Equal(t, draw(), draw())
}

func TestPath(t *testing.T) {
	e := New()
	h := load(t, e, room)
	origin, dest := grid.Pt(1, 1), grid.Pt(1, 5)

	for _, alg := range []PathOptions{
		DefaultPathOptions(),
		{Algorithm: PathAStar, Range: -1, DiagonalCost: 1},
	} {
		path, err := e.Path(h, origin, dest, alg)
		require.NoError(t, err)
		require.Len(t, path, 4, alg.Algorithm.String())
		assert.Equal(t, dest, path[len(path)-1])
		assert.NotContains(t, path, origin)
	}

	path, err := e.Path(h, origin, origin, DefaultPathOptions())
	require.NoError(t, err)
	assert.Nil(t, path)

	path, err = e.Path(h, origin, grid.Pt(0, 3), DefaultPathOptions())
	require.NoError(t, err)
	assert.Nil(t, path, "walls cannot be entered")

	_, err = e.Path(h, origin, dest, PathOptions{Algorithm: 7})
	assert.ErrorIs(t, err, ErrInvalidAlgorithm)
	_, err = e.Path(h, origin, grid.Pt(40, 0), PathOptions{Algorithm: 7})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestPathAway(t *testing.T) {
	e := New()
	h := load(t, e, room)
	threat := grid.Pt(4, 2)

	path, err := e.PathAway(h, grid.Pt(4, 3), threat, 3)
	require.NoError(t, err)
	require.Len(t, path, 3)
	assert.Greater(t, grid.Distance(path[2], threat), grid.Distance(grid.Pt(4, 3), threat))
}

func TestPathMaps(t *testing.T) {
	e := New(WithLimits(Limits{MaxPaths: 2}))
	h := load(t, e, room)

	pm, err := e.PathFillMap(h, grid.Pt(4, 5), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, pm)

	next, err := e.PathStepMap(h, pm, grid.Pt(4, 1), false)
	require.NoError(t, err)
	assert.Equal(t, grid.Pt(4, 2), next)

	next, err = e.PathStepMap(h, pm, grid.Pt(4, 1), true)
	require.NoError(t, err)
	assert.Equal(t, grid.Pt(3, 1), next, "first of the highest neighbours, even when none is higher")

	d, ok, err := e.PathMapDistance(h, pm, grid.Pt(1, 1))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4.0, d)

	_, ok, err = e.PathMapDistance(h, pm, grid.Pt(0, 0))
	require.NoError(t, err)
	assert.False(t, ok)

	safe, err := e.PathFillSafetyMap(h, grid.Pt(4, 2), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, safe)

	from := grid.Pt(4, 3)
	next, err = e.PathStepMap(h, safe, from, false)
	require.NoError(t, err)
	assert.Greater(t, grid.Distance(next, grid.Pt(4, 2)), grid.Distance(from, grid.Pt(4, 2)))

	_, err = e.PathFillMap(h, grid.Pt(4, 5), 0)
	assert.ErrorIs(t, err, ErrTooManyPathMaps)
	assert.Equal(t, "Unable to create pathmap: Too many maps", Message(err))

	cleared, err := e.PathClearMap(h, pm)
	require.NoError(t, err)
	assert.True(t, cleared)
	cleared, err = e.PathClearMap(h, pm)
	require.NoError(t, err)
	assert.False(t, cleared)

	_, err = e.PathStepMap(h, pm, grid.Pt(4, 1), false)
	assert.ErrorIs(t, err, ErrUninitializedPathMap)

	pm, err = e.PathFillMap(h, grid.Pt(4, 5), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, pm)

	require.NoError(t, e.PathClearAllMaps(h))
	_, err = e.PathStepMap(h, safe, from, false)
	assert.ErrorIs(t, err, ErrUninitializedPathMap)
}

func TestPathStepMapAlwaysMoves(t *testing.T) {
	e := New()
	h := load(t, e, `
#####
#...#
#...#
#...#
#####`)
	centre := grid.Pt(2, 2)

	pm, err := e.PathFillMap(h, centre, 0)
	require.NoError(t, err)
	next, err := e.PathStepMap(h, pm, centre, false)
	require.NoError(t, err)
	assert.Equal(t, grid.Pt(1, 2), next)
	d, _, err := e.PathMapDistance(h, pm, next)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)

	safe, err := e.PathFillSafetyMap(h, centre, 0)
	require.NoError(t, err)
	next, err = e.PathStepMap(h, safe, grid.Pt(1, 1), false)
	require.NoError(t, err)
	assert.NotEqual(t, grid.Pt(1, 1), next)
}

func TestPathMapErrors(t *testing.T) {
	e := New()
	h := load(t, e, room)

	_, err := e.PathStepMap(5, 0, grid.Pt(99, 0), false)
	assert.ErrorIs(t, err, ErrMapNotInitialized)
	_, err = e.PathStepMap(h, 0, grid.Pt(99, 0), false)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = e.PathStepMap(h, 0, grid.Pt(1, 1), false)
	assert.ErrorIs(t, err, ErrUninitializedPathMap)
	_, err = e.PathFillMap(h, grid.Pt(-1, 1), 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = e.PathFillCustomMap(h, grid.Flag(1<<17), 0)
	assert.ErrorIs(t, err, ErrInvalidFlag)
	_, err = e.PathClearMap(9, 0)
	assert.ErrorIs(t, err, ErrMapNotInitialized)

	isolated := load(t, e, `
#####
#.#.#
#####`)
	pm, err := e.PathFillMap(isolated, grid.Pt(1, 1), 0)
	require.NoError(t, err)
	_, err = e.PathStepMap(isolated, pm, grid.Pt(1, 3), false)
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestAutoexploreAndCustomMaps(t *testing.T) {
	e := New()
	h := load(t, e, `
########
#,,,,.G#
########`)

	pm, err := e.PathFillAutoexploreMap(h, 0, 0)
	require.NoError(t, err)
	d, ok, err := e.PathMapDistance(h, pm, grid.Pt(1, 1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4.0, d, "nearest unexplored cell")

	next, err := e.PathStepMap(h, pm, grid.Pt(1, 1), false)
	require.NoError(t, err)
	assert.Equal(t, grid.Pt(1, 2), next)

	custom, err := e.PathFillCustomMap(h, 0, 0)
	require.NoError(t, err)
	d, _, err = e.PathMapDistance(h, custom, grid.Pt(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 5.0, d, "goal cell by default")

	require.NoError(t, e.FillMap(h, grid.CellMemo))
	explored, err := e.PathFillAutoexploreMap(h, grid.CellGoal, 0)
	require.NoError(t, err)
	d, _, err = e.PathMapDistance(h, explored, grid.Pt(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 5.0, d, "only the flagged goal is left")
}

func TestProjections(t *testing.T) {
	e := New()
	h := load(t, e, room)

	beam, err := e.ProjectBeam(h, grid.Pt(4, 2), grid.Pt(4, 6), -1, 0)
	require.NoError(t, err)
	assert.Len(t, beam, 5)

	ball, err := e.ProjectBall(h, grid.Pt(4, 1), grid.Pt(4, 5), 2, 10, 0)
	require.NoError(t, err)
	assert.Len(t, ball, 23)

	cloud, err := e.ProjectCloud(h, grid.Pt(4, 5), 2, grid.ProjectSquare)
	require.NoError(t, err)
	assert.Len(t, cloud, 25)

	cone, err := e.ProjectCone(h, grid.Pt(4, 1), grid.Pt(4, 5), 2, 10, 0)
	require.NoError(t, err)
	assert.Len(t, cone, 21)

	bolt, err := e.ProjectBolt(h, grid.Pt(4, 2), grid.Pt(4, 6), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, beam, bolt)
}

func TestProjectionErrors(t *testing.T) {
	e := New()
	h := load(t, e, room)

	_, err := e.ProjectBeam(4, grid.Pt(-1, 0), grid.Pt(1, 1), 5, 0)
	assert.ErrorIs(t, err, ErrMapNotInitialized)

	_, err = e.ProjectBeam(h, grid.Pt(-1, 0), grid.Pt(50, 1), 5, 0)
	assert.ErrorIs(t, err, ErrProjectionOrigin)
	assert.ErrorIs(t, err, ErrProjectionFailed)
	assert.Equal(t, "Projection failed: origin invalid", Message(err))

	_, err = e.ProjectCone(h, grid.Pt(1, 1), grid.Pt(50, 1), 2, 5, 0)
	assert.ErrorIs(t, err, ErrProjectionDestination)
	assert.Equal(t, "Projection failed: destination invalid", Message(err))

	_, err = e.ProjectBall(h, grid.Pt(1, 1), grid.Pt(2, 2), 61, 5, 0)
	assert.ErrorIs(t, err, ErrIllegalRadius)
	_, err = e.ProjectCloud(h, grid.Pt(1, 1), -1, 0)
	assert.ErrorIs(t, err, ErrIllegalRadius)
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrMapNotInitialized, "Map not initialized"},
		{ErrInvalidMapSize, "Invalid map size"},
		{ErrTooManyMaps, "Too many maps"},
		{ErrOutOfBounds, "Location out of bounds"},
		{ErrInvalidFlag, "Invalid flag used"},
		{ErrUninitializedPathMap, "Uninitialized pathmap used"},
		{ErrNoPath, "Found no path"},
		{ErrIllegalRadius, "Illegal radius"},
		{ErrInvalidAlgorithm, "Invalid algorithm"},
		{ErrNoLocation, "Found no location"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Message(tt.err))
	}
}

func TestLogsRegistryEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := New(WithLogger(zap.New(core)), WithLimits(Limits{MaxMaps: 1, ScatterAttempts: 3}))

	h, err := e.CreateMap(8, 6)
	require.NoError(t, err)
	_, err = e.CreateMap(8, 6)
	require.ErrorIs(t, err, ErrTooManyMaps)
	_, err = e.Scatter(h, grid.Pt(2, 2), 2, grid.CellGoal, false)
	require.ErrorIs(t, err, ErrNoLocation)

	created := logs.FilterMessage("map created").All()
	require.Len(t, created, 1)
	assert.Equal(t, int64(8), created[0].ContextMap()["width"])
	assert.Equal(t, 1, logs.FilterMessage("map registry full").Len())

	warned := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warned, 1)
	assert.Equal(t, "scatter found no location", warned[0].Message)
}

func TestConcurrentCreate(t *testing.T) {
	e := New()
	n := e.Limits().MaxMaps

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		handles []int
	)
	for i := 0; i < n+4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := e.CreateMap(16, 16)
			if err != nil {
				return
			}
			mu.Lock()
			handles = append(handles, h)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Ints(handles)
	require.Len(t, handles, n)
	for i, h := range handles {
		assert.Equal(t, i, h)
	}
}
