// Package tower assembles generated floors into levels and towers.
//
// A tower is built from the top down. The lair is generated first around
// the centre of the map, and every floor below only uses rooms overlapping
// what the floors above occupy, so each floor is supported by the one
// beneath it.
package tower

import (
	"fmt"
	"math/rand"
	"slices"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
	"github.com/lawnchairsociety/towergen/internal/connect"
	"github.com/lawnchairsociety/towergen/internal/logger"
	"github.com/lawnchairsociety/towergen/internal/maze"
	"github.com/lawnchairsociety/towergen/internal/offgrid"
)

// lairRooms is the number of rooms a lair has.
const lairRooms = 3

// Tower is a stack of floors, ground floor first.
type Tower struct {
	Seed   int64
	Config Config
	Floors []*Floor
}

// Maps returns the floor layouts, ground floor first.
func (t *Tower) Maps() []*maze.BaseMap {
	maps := make([]*maze.BaseMap, len(t.Floors))
	for i, f := range t.Floors {
		maps[i] = f.Map
	}
	return maps
}

// Generator produces floors from a seeded random source. Every call draws
// from the same source, so a sequence of calls is reproducible from the
// seed.
type Generator struct {
	config Config
	seed   int64
	rng    *rand.Rand
}

// NewGenerator creates a generator for the given configuration and seed.
func NewGenerator(config Config, seed int64) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		config: config,
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// GenerateLevel builds a single connected floor. It panics on an invalid
// shape or box size.
func GenerateLevel(shape gruid.Point, boxSize int, seed int64) *maze.BaseMap {
	cfg := DefaultConfig(shape)
	cfg.BoxSize = boxSize
	g, err := NewGenerator(cfg, seed)
	if err != nil {
		panic(err)
	}
	return g.Level()
}

// GenerateTower builds a tower of the given number of stories and returns
// its floors, ground floor first.
func GenerateTower(shape gruid.Point, stories, boxSize int, seed int64) ([]*maze.BaseMap, error) {
	cfg := DefaultConfig(shape)
	cfg.BoxSize = boxSize
	g, err := NewGenerator(cfg, seed)
	if err != nil {
		return nil, err
	}
	t, err := g.Tower(stories)
	if err != nil {
		return nil, err
	}
	return t.Maps(), nil
}

// Level builds a single floor covering the usable area, with every room
// reachable.
func (g *Generator) Level() *maze.BaseMap {
	raster := maze.Rasterize(g.config.Shape, g.candidateRects())
	b := g.builder(raster)
	g.connect(b)
	m := b.Build()
	logger.Debug("generated level", "rooms", m.RoomCount(), "walls", len(m.Walls()))
	return m
}

// Tower builds a tower of the given number of stories.
func (g *Generator) Tower(stories int) (*Tower, error) {
	if stories < 1 {
		return nil, fmt.Errorf("%w: %d stories, want at least 1", ErrInvalidConfig, stories)
	}

	mask := NewFootprint(g.config.Shape)
	mask.AddRange(centredRange(g.config.Shape, g.config.LairCore))

	top, err := g.lair(mask)
	if err != nil {
		return nil, err
	}
	floors := []*Floor{top}
	mask.AddRaster(top.raster)

	for len(floors) < stories {
		f, err := g.floorBelow(floors[len(floors)-1], mask, stories-len(floors)-1)
		if err != nil {
			return nil, err
		}
		floors = append(floors, f)
		mask.AddRaster(f.raster)
	}

	slices.Reverse(floors)
	for i, f := range floors {
		f.Number = i
	}
	if err := connect.PlaceExteriorEntrance(floors[0].Map, g.rng); err != nil {
		return nil, fmt.Errorf("failed to place entrance: %w", err)
	}

	logger.Debug("generated tower", "stories", stories, "seed", g.seed)
	return &Tower{Seed: g.seed, Config: g.config, Floors: floors}, nil
}

// lair draws layouts around the centre of mask until one has exactly three
// rooms and connects as a lair.
func (g *Generator) lair(mask *Footprint) (*Floor, error) {
	for attempt := 1; attempt <= g.config.MaxLairAttempts; attempt++ {
		rects := FilterRects(g.candidateRects(), mask)
		if len(rects) != lairRooms {
			continue
		}
		raster := maze.Rasterize(g.config.Shape, rects)
		b := g.builder(raster)
		if len(b.Rooms()) != lairRooms || !connect.SolveLair(b, g.rng) {
			continue
		}
		logger.Debug("generated lair", "attempts", attempt)
		return &Floor{Map: b.Build(), Lair: true, Attempts: attempt, raster: raster}, nil
	}
	return nil, fmt.Errorf("failed after %d attempts: %w", g.config.MaxLairAttempts, ErrLairUnsolvable)
}

// floorBelow generates the floor under above, restricted to rooms that
// overlap mask, and joins the two with a stair.
func (g *Generator) floorBelow(above *Floor, mask *Footprint, number int) (*Floor, error) {
	var lastErr error
	for attempt := 1; attempt <= g.config.MaxFloorAttempts; attempt++ {
		raster := maze.Rasterize(g.config.Shape, FilterRects(g.candidateRects(), mask))
		b := g.builder(raster)
		g.connect(b)
		m := b.Build()

		if err := connect.PlaceJoiningStair(above.Map, m, g.rng); err != nil {
			lastErr = err
			logger.Debug("discarding floor", "floor", number, "attempt", attempt, "error", err)
			continue
		}
		logger.Debug("generated floor", "floor", number, "rooms", m.RoomCount(), "attempts", attempt)
		return &Floor{Map: m, Attempts: attempt, raster: raster}, nil
	}
	return nil, fmt.Errorf("floor %d: failed after %d attempts: %w", number, g.config.MaxFloorAttempts, lastErr)
}

// candidateRects draws a fresh offset-grid layout. It is generated at half
// resolution and doubled, so every rect keeps room for a wall on each side,
// then clipped to the usable area.
func (g *Generator) candidateRects() []gruid.Range {
	seed := offgrid.Hash64(g.rng.Int63n(0xFFFFFFFF))
	shape := g.config.Shape
	box := max(1, g.config.BoxSize/2)
	area := UsableArea(shape)

	var rects []gruid.Range
	for r := range offgrid.Rects(shape.X/2, shape.Y/2, box, seed, g.config.Edge) {
		doubled := gruid.Range{Min: r.Min.Mul(2), Max: r.Max.Mul(2)}
		if c, ok := clip(doubled, area); ok {
			rects = append(rects, c)
		}
	}
	return rects
}

func (g *Generator) builder(raster rl.Grid) *maze.Builder {
	b := maze.NewBuilder(g.config.Shape)
	maze.ApplyRaster(raster, b)
	return b
}

func (g *Generator) connect(b *maze.Builder) {
	connect.EnsureFullyConnected(b, g.rng)
	connect.AddRedundantConnections(b, g.rng)
	connect.FixCorridorEndpoints(b)
}
