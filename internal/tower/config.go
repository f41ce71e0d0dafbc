package tower

import (
	"errors"
	"fmt"

	"codeberg.org/anaseto/gruid"
)

// Generation defaults.
const (
	DefaultEdge             = 0.08
	DefaultLairCore         = 2
	DefaultMaxLairAttempts  = 1000
	DefaultMaxFloorAttempts = 50

	// minSide is the smallest map side that leaves room for a walled room
	// inside the void border.
	minSide = 8
)

var (
	// ErrInvalidConfig is returned for generation parameters that cannot
	// produce a map.
	ErrInvalidConfig = errors.New("tower: invalid config")

	// ErrLairUnsolvable is returned when no lair layout was found within the
	// attempt limit.
	ErrLairUnsolvable = errors.New("tower: lair unsolvable")
)

// Config holds the parameters of a Generator.
type Config struct {
	Shape            gruid.Point // map size in tiles
	BoxSize          int         // nominal room size in tiles
	Edge             float64     // jitter margin in [0, 0.5)
	LairCore         int         // side of the centred area the lair must cover
	MaxLairAttempts  int         // lair layouts tried before giving up
	MaxFloorAttempts int         // layouts tried per floor before giving up
}

// DefaultConfig returns the default configuration for a map of the given
// size.
func DefaultConfig(shape gruid.Point) Config {
	return Config{
		Shape:            shape,
		BoxSize:          DefaultBoxSize(shape),
		Edge:             DefaultEdge,
		LairCore:         DefaultLairCore,
		MaxLairAttempts:  DefaultMaxLairAttempts,
		MaxFloorAttempts: DefaultMaxFloorAttempts,
	}
}

// DefaultBoxSize scales the room size with the map: a sixteenth of the
// width plus height, at least 4.
func DefaultBoxSize(shape gruid.Point) int {
	return max(4, (shape.X+shape.Y)/16)
}

// Validate checks that the configuration can produce a map.
func (c Config) Validate() error {
	switch {
	case c.Shape.X < minSide || c.Shape.Y < minSide:
		return fmt.Errorf("%w: shape %dx%d, want at least %dx%d", ErrInvalidConfig, c.Shape.X, c.Shape.Y, minSide, minSide)
	case c.BoxSize < 2:
		return fmt.Errorf("%w: box size %d, want at least 2", ErrInvalidConfig, c.BoxSize)
	case c.Edge < 0 || c.Edge >= 0.5:
		return fmt.Errorf("%w: edge %v outside [0, 0.5)", ErrInvalidConfig, c.Edge)
	case c.LairCore < 1:
		return fmt.Errorf("%w: lair core %d, want at least 1", ErrInvalidConfig, c.LairCore)
	case c.MaxLairAttempts < 1 || c.MaxFloorAttempts < 1:
		return fmt.Errorf("%w: attempt limits must be positive", ErrInvalidConfig)
	}
	return nil
}
