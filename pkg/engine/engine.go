// Package engine is the handle-based front of gridsense. An Engine owns a
// fixed number of map slots, each with its own path map slots, and
// serialises every call.
package engine

import (
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/gridsense/pkg/flowfield"
	"github.com/Faultbox/gridsense/pkg/grid"
)

// Limits caps what one engine will allocate or accept.
type Limits struct {
	MaxMaps         int `yaml:"max_maps"`
	MaxPaths        int `yaml:"max_paths"` // path maps per map
	MaxRange        int `yaml:"max_range"`
	MaxRadius       int `yaml:"max_radius"`
	MaxWidth        int `yaml:"max_width"`
	MaxHeight       int `yaml:"max_height"`
	ScatterAttempts int `yaml:"scatter_attempts"`
}

// DefaultLimits returns the stock capacities.
func DefaultLimits() Limits {
	return Limits{
		MaxMaps:         12,
		MaxPaths:        12,
		MaxRange:        60,
		MaxRadius:       60,
		MaxWidth:        5000,
		MaxHeight:       5000,
		ScatterAttempts: 5000,
	}
}

// withDefaults replaces unset or negative limits with the stock ones.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	pick := func(v, def int) int {
		if v <= 0 {
			return def
		}
		return v
	}
	return Limits{
		MaxMaps:         pick(l.MaxMaps, d.MaxMaps),
		MaxPaths:        pick(l.MaxPaths, d.MaxPaths),
		MaxRange:        pick(l.MaxRange, d.MaxRange),
		MaxRadius:       pick(l.MaxRadius, d.MaxRadius),
		MaxWidth:        pick(l.MaxWidth, d.MaxWidth),
		MaxHeight:       pick(l.MaxHeight, d.MaxHeight),
		ScatterAttempts: pick(l.ScatterAttempts, d.ScatterAttempts),
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLimits overrides the capacities. Zero fields keep their defaults.
func WithLimits(l Limits) Option {
	return func(e *Engine) { e.limits = l.withDefaults() }
}

// WithLogger sets the logger for registry events.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithRand sets the random source used by Scatter.
func WithRand(rnd grid.Rand) Option {
	return func(e *Engine) {
		if rnd != nil {
			e.rnd = rnd
		}
	}
}

// WithSeed makes Scatter deterministic.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// slot is one allocated map and its path maps.
type slot struct {
	m     *grid.Map
	paths []*flowfield.Field
}

// Engine is the explicit context behind the handle API.
type Engine struct {
	mu     sync.Mutex
	limits Limits
	log    *zap.Logger
	rnd    grid.Rand
	maps   []*slot
}

// New returns an engine with no maps.
func New(opts ...Option) *Engine {
	e := &Engine{
		limits: DefaultLimits(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e.maps = make([]*slot, e.limits.MaxMaps)
	return e
}

// Limits returns the capacities in effect.
func (e *Engine) Limits() Limits {
	return e.limits
}

// lookup returns the slot behind handle h. The caller holds e.mu.
func (e *Engine) lookup(h int) (*slot, error) {
	if h < 0 || h >= len(e.maps) || e.maps[h] == nil {
		return nil, ErrMapNotInitialized
	}
	return e.maps[h], nil
}

// lookupAt resolves h and checks that every point lies on its map.
func (e *Engine) lookupAt(h int, pts ...grid.Point) (*slot, error) {
	s, err := e.lookup(h)
	if err != nil {
		return nil, err
	}
	for _, p := range pts {
		if !s.m.InBounds(p) {
			return nil, ErrOutOfBounds
		}
	}
	return s, nil
}

func checkFlag(f grid.Flag) error {
	if !f.Valid() {
		return ErrInvalidFlag
	}
	return nil
}

// rangeOrMax maps a negative range to the engine maximum.
func (e *Engine) rangeOrMax(rng int) int {
	if rng < 0 {
		return e.limits.MaxRange
	}
	return rng
}
