package maze

import (
	"fmt"
	"slices"

	"codeberg.org/anaseto/gruid"
	"github.com/zyedidia/generic/mapset"
)

// wallKey is the order-independent identity of a wall.
type wallKey struct {
	a RoomID
	b Side
}

func keyFor(a RoomID, b Side) wallKey {
	if id, ok := b.Room(); ok && id < a {
		return wallKey{a: id, b: In(a)}
	}
	return wallKey{a: a, b: b}
}

// Wall is the run of wall tiles separating two rooms, or a room from the
// outside. It holds at most one doorway.
type Wall struct {
	key     wallKey
	tiles   []gruid.Point
	tileSet mapset.Set[gruid.Point]
	doorway gruid.Point
	hasDoor bool
}

func newWall(key wallKey) *Wall {
	return &Wall{key: key, tileSet: mapset.New[gruid.Point]()}
}

// A returns the lower room id of the pair.
func (w *Wall) A() RoomID { return w.key.a }

// B returns the other side of the wall, which may be Outside.
func (w *Wall) B() Side { return w.key.b }

// Exterior reports whether the wall faces the outside.
func (w *Wall) Exterior() bool {
	_, ok := w.key.b.Room()
	return !ok
}

// Adjoins reports whether room id is on either side of the wall.
func (w *Wall) Adjoins(id RoomID) bool {
	if w.key.a == id {
		return true
	}
	b, ok := w.key.b.Room()
	return ok && b == id
}

// Other returns the room across the wall from id.
func (w *Wall) Other(id RoomID) Side {
	switch {
	case w.key.a == id:
		return w.key.b
	case w.Adjoins(id):
		return In(w.key.a)
	}
	panic(fmt.Sprintf("maze: wall %v does not adjoin room %d", w, id))
}

// Tiles returns the wall tiles in placement order.
func (w *Wall) Tiles() []gruid.Point { return slices.Clone(w.tiles) }

// Area returns the number of wall tiles.
func (w *Wall) Area() int { return len(w.tiles) }

// Contains reports whether p is one of the wall's tiles.
func (w *Wall) Contains(p gruid.Point) bool { return w.tileSet.Has(p) }

// HasDoorway reports whether the wall has been opened.
func (w *Wall) HasDoorway() bool { return w.hasDoor }

// Doorway returns the opened tile, if any.
func (w *Wall) Doorway() (gruid.Point, bool) { return w.doorway, w.hasDoor }

// String renders the wall's pair for diagnostics.
func (w *Wall) String() string {
	return fmt.Sprintf("wall(room %d, %v)", w.key.a, w.key.b)
}

func (w *Wall) addTile(p gruid.Point) {
	if w.tileSet.Has(p) {
		return
	}
	w.tileSet.Put(p)
	w.tiles = append(w.tiles, p)
}

func (w *Wall) clone() *Wall {
	c := newWall(w.key)
	for _, p := range w.tiles {
		c.addTile(p)
	}
	c.doorway, c.hasDoor = w.doorway, w.hasDoor
	return c
}
