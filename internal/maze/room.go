package maze

import (
	"fmt"
	"math/rand"
	"slices"

	"codeberg.org/anaseto/gruid"
	"github.com/zyedidia/generic/mapset"
)

// corridorMinLength is the tile count a straight room must exceed to count
// as a corridor.
const corridorMinLength = 4

// RoomID identifies a room within one floor. Valid ids start at 1.
type RoomID int

// Side is what lies on one side of a boundary: a room, or nothing.
type Side struct {
	id RoomID
	ok bool
}

// Outside is the side with no room, the void around and between rooms.
var Outside = Side{}

// In returns the side occupied by room id.
func In(id RoomID) Side {
	if id < 1 {
		panic(fmt.Sprintf("maze: room id %d, want >= 1", id))
	}
	return Side{id: id, ok: true}
}

// Room returns the room on this side, if any.
func (s Side) Room() (RoomID, bool) {
	return s.id, s.ok
}

// String renders the side for diagnostics.
func (s Side) String() string {
	if !s.ok {
		return "outside"
	}
	return fmt.Sprintf("room %d", s.id)
}

// Room is a set of floor tiles and its relations to the rooms around it.
// Neighbors share a wall with the room; connections are neighbors joined
// through an opened doorway.
type Room struct {
	id          RoomID
	tiles       []gruid.Point
	tileSet     mapset.Set[gruid.Point]
	neighbors   mapset.Set[RoomID]
	connections mapset.Set[RoomID]
}

func newRoom(id RoomID) *Room {
	return &Room{
		id:          id,
		tileSet:     mapset.New[gruid.Point](),
		neighbors:   mapset.New[RoomID](),
		connections: mapset.New[RoomID](),
	}
}

// ID returns the room id.
func (r *Room) ID() RoomID { return r.id }

// Tiles returns the room's floor tiles in placement order.
func (r *Room) Tiles() []gruid.Point { return slices.Clone(r.tiles) }

// Size returns the number of floor tiles.
func (r *Room) Size() int { return len(r.tiles) }

// Contains reports whether p is one of the room's floor tiles.
func (r *Room) Contains(p gruid.Point) bool { return r.tileSet.Has(p) }

// NeighborIDs returns the ids of rooms sharing a wall with r, ascending.
func (r *Room) NeighborIDs() []RoomID { return sortedIDs(r.neighbors) }

// ConnectionIDs returns the ids of rooms joined to r by a doorway, ascending.
func (r *Room) ConnectionIDs() []RoomID { return sortedIDs(r.connections) }

// IsNeighbor reports whether id shares a wall with r.
func (r *Room) IsNeighbor(id RoomID) bool { return r.neighbors.Has(id) }

// IsConnected reports whether id is joined to r by a doorway.
func (r *Room) IsConnected(id RoomID) bool { return r.connections.Has(id) }

// UnconnectedNeighborIDs returns neighbors not yet joined to r, ascending.
func (r *Room) UnconnectedNeighborIDs() []RoomID {
	var ids []RoomID
	for _, id := range r.NeighborIDs() {
		if !r.connections.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Bounds returns the smallest range containing every tile of r.
func (r *Room) Bounds() gruid.Range {
	if len(r.tiles) == 0 {
		return gruid.Range{}
	}
	lo, hi := r.tiles[0], r.tiles[0]
	for _, p := range r.tiles[1:] {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	return gruid.Range{Min: lo, Max: hi.Add(gruid.Point{X: 1, Y: 1})}
}

// IsCorridor reports whether the room is a straight line of more than four
// tiles.
func (r *Room) IsCorridor() bool {
	if len(r.tiles) <= corridorMinLength {
		return false
	}
	size := r.Bounds().Size()
	return size.X == 1 || size.Y == 1
}

// RandomLocation returns one of the room's tiles chosen uniformly.
func (r *Room) RandomLocation(rng *rand.Rand) gruid.Point {
	if len(r.tiles) == 0 {
		panic(fmt.Sprintf("maze: room %d has no tiles", r.id))
	}
	return r.tiles[rng.Intn(len(r.tiles))]
}

func (r *Room) addTile(p gruid.Point) {
	if r.tileSet.Has(p) {
		return
	}
	r.tileSet.Put(p)
	r.tiles = append(r.tiles, p)
}

func (r *Room) clone() *Room {
	c := newRoom(r.id)
	for _, p := range r.tiles {
		c.addTile(p)
	}
	r.neighbors.Each(func(id RoomID) { c.neighbors.Put(id) })
	r.connections.Each(func(id RoomID) { c.connections.Put(id) })
	return c
}

func sortedIDs(s mapset.Set[RoomID]) []RoomID {
	ids := make([]RoomID, 0, s.Size())
	s.Each(func(id RoomID) { ids = append(ids, id) })
	slices.Sort(ids)
	return ids
}
