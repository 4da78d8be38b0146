// gridsense runs spatial queries against ASCII maps.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/gridsense/internal/config"
	"github.com/Faultbox/gridsense/internal/logger"
	"github.com/Faultbox/gridsense/pkg/engine"
	"github.com/Faultbox/gridsense/pkg/fov"
	"github.com/Faultbox/gridsense/pkg/grid"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	opts := logger.Options{Level: cfg.Logging.Level, Console: os.Stderr}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	log := logger.Init(opts)
	defer logger.Sync()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	e := engine.New(append(cfg.EngineOptions(), engine.WithLogger(log))...)
	logger.Sugar.Debugf("limits: %+v", e.Limits())

	command, rest := args[0], args[1:]
	switch command {
	case "fov":
		err = cmdFOV(e, rest)
	case "path":
		err = cmdPath(e, rest)
	case "los":
		err = cmdLOS(e, rest)
	case "project", "proj":
		err = cmdProject(e, rest)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %s\n", engine.Message(err))
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`gridsense - spatial queries on ASCII tile maps

Usage:
  gridsense [--config file] [--debug] [--seed n] <command> [options] <map.txt> <points...>

Map glyphs:
  #  wall    .  floor    *  mirror    M  occupied    G  goal    ,  remembered

Commands:
  fov <map> <row> <col>                   Mark what the cell sees
  path <map> <row> <col> <row> <col>      Find a path
  los <map> <row> <col> <row> <col>       Test line of sight
  project <map> <row> <col> <row> <col>   Trace a beam, bolt, ball or cone

Examples:
  gridsense fov -alg permissive -r 8 -walls cave.txt 5 5
  gridsense path -astar cave.txt 1 1 7 12
  gridsense project -kind ball -radius 2 room.txt 4 1 4 5`)
}

func cmdFOV(e *engine.Engine, args []string) error {
	fs := flag.NewFlagSet("fov", flag.ExitOnError)
	alg := fs.String("alg", "shadow", "Algorithm: circular, diamond, shadow, digital, restrictive, permissive")
	radius := fs.Int("r", 0, "Radius (0 = unlimited)")
	walls := fs.Bool("walls", false, "Light walls next to visible floor")
	fs.Parse(args)

	a, ok := fov.ParseAlgorithm(*alg)
	if !ok {
		return engine.ErrInvalidAlgorithm
	}
	h, pts, err := loadWithPoints(e, fs.Args(), 1)
	if err != nil {
		return err
	}
	if err := e.FOV(h, pts[0], *radius, a, *walls); err != nil {
		return err
	}

	marks := map[grid.Point]byte{pts[0]: '@'}
	w, ht, _ := e.MapSize(h)
	for row := 0; row < ht; row++ {
		for col := 0; col < w; col++ {
			p := grid.Pt(row, col)
			if seen, _ := e.HasFlag(h, p, grid.CellSeen); seen && p != pts[0] {
				marks[p] = 'o'
			}
		}
	}
	return show(e, h, marks)
}

func cmdPath(e *engine.Engine, args []string) error {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	astar := fs.Bool("astar", false, "Use A* instead of greedy descent")
	rng := fs.Int("range", 30, "Maximum path length (-1 = engine maximum)")
	thru := fs.Bool("thru", false, "Walk through walls")
	diag := fs.Float64("diag", 1.0, "A* diagonal step cost")
	fs.Parse(args)

	h, pts, err := loadWithPoints(e, fs.Args(), 2)
	if err != nil {
		return err
	}

	opts := engine.DefaultPathOptions()
	opts.Range = *rng
	opts.DiagonalCost = *diag
	if *astar {
		opts.Algorithm = engine.PathAStar
	}
	if *thru {
		opts.Flags |= grid.ProjectThru
	}

	path, err := e.Path(h, pts[0], pts[1], opts)
	if err != nil {
		return err
	}
	if path == nil {
		return engine.ErrNoPath
	}
	fmt.Printf("%d steps\n", len(path))
	return show(e, h, trail(pts[0], path))
}

func cmdLOS(e *engine.Engine, args []string) error {
	h, pts, err := loadWithPoints(e, args, 2)
	if err != nil {
		return err
	}
	ok, err := e.LOS(h, pts[0], pts[1])
	if err != nil {
		return err
	}
	fmt.Println(ok)
	return nil
}

func cmdProject(e *engine.Engine, args []string) error {
	fs := flag.NewFlagSet("project", flag.ExitOnError)
	kind := fs.String("kind", "beam", "Shape: beam, bolt, ball, cone")
	rng := fs.Int("range", -1, "Range (-1 = engine maximum)")
	radius := fs.Int("radius", 1, "Ball or cone radius")
	pass := fs.Bool("pass", false, "Continue past the target")
	refl := fs.Bool("refl", false, "Bounce off mirrors")
	thru := fs.Bool("thru", false, "Pass through walls")
	fs.Parse(args)

	h, pts, err := loadWithPoints(e, fs.Args(), 2)
	if err != nil {
		return err
	}

	var flags grid.ProjectFlag
	if *pass {
		flags |= grid.ProjectPass
	}
	if *refl {
		flags |= grid.ProjectRefl
	}
	if *thru {
		flags |= grid.ProjectThru
	}

	var cells []grid.Point
	switch *kind {
	case "beam":
		cells, err = e.ProjectBeam(h, pts[0], pts[1], *rng, flags)
	case "bolt":
		cells, err = e.ProjectBolt(h, pts[0], pts[1], *rng, flags)
	case "ball":
		cells, err = e.ProjectBall(h, pts[0], pts[1], *radius, *rng, flags)
	case "cone":
		cells, err = e.ProjectCone(h, pts[0], pts[1], *radius, *rng, flags)
	default:
		return fmt.Errorf("unknown projection %q", *kind)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%d cells\n", len(cells))
	marks := make(map[grid.Point]byte, len(cells))
	for _, p := range cells {
		marks[p] = 'x'
	}
	marks[pts[0]] = '@'
	return show(e, h, marks)
}

// loadWithPoints reads the map named by args[0] into e and parses n points
// from the remaining arguments.
func loadWithPoints(e *engine.Engine, args []string, n int) (int, []grid.Point, error) {
	if len(args) != 1+2*n {
		return -1, nil, fmt.Errorf("expected a map file and %d coordinates", 2*n)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return -1, nil, err
	}
	rows := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	h, err := e.AddMap(grid.Parse(rows))
	if err != nil {
		return -1, nil, err
	}

	pts := make([]grid.Point, n)
	for i := range pts {
		row, err1 := strconv.Atoi(args[1+2*i])
		col, err2 := strconv.Atoi(args[2+2*i])
		if err := errors.Join(err1, err2); err != nil {
			return -1, nil, fmt.Errorf("point %d: %w", i+1, err)
		}
		pts[i] = grid.Pt(row, col)
	}
	return h, pts, nil
}

func trail(origin grid.Point, path []grid.Point) map[grid.Point]byte {
	marks := map[grid.Point]byte{origin: '@'}
	for _, p := range path {
		marks[p] = 'o'
	}
	marks[path[len(path)-1]] = 'X'
	return marks
}

func show(e *engine.Engine, h int, marks map[grid.Point]byte) error {
	out, err := e.Render(h, marks)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
