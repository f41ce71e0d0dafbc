package maze

import (
	"fmt"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// BaseMap is a finished floor: its tiles, rooms and walls, plus the entry
// and exit stairs. Only the entry and exit may change after Build, and each
// only once.
type BaseMap struct {
	tiles  rl.Grid
	owners rl.Grid // room id per floor tile, 0 elsewhere
	rooms  []*Room // indexed by RoomID
	walls  []*Wall

	entry, exit       gruid.Point
	hasEntry, hasExit bool
}

func newBaseMap(tiles rl.Grid, rooms []*Room, walls []*Wall) *BaseMap {
	size := tiles.Size()
	owners := rl.NewGrid(size.X, size.Y)
	for _, r := range rooms {
		if r == nil {
			continue
		}
		for _, p := range r.tiles {
			owners.Set(p, rl.Cell(r.id))
		}
	}
	return &BaseMap{tiles: tiles, owners: owners, rooms: rooms, walls: walls}
}

// Size returns the grid size.
func (m *BaseMap) Size() gruid.Point { return m.tiles.Size() }

// At returns the tile at p, or TileVoid outside the grid.
func (m *BaseMap) At(p gruid.Point) rl.Cell {
	if !p.In(m.tiles.Range()) {
		return TileVoid
	}
	return m.tiles.At(p)
}

// Tiles returns a copy of the tile grid.
func (m *BaseMap) Tiles() rl.Grid {
	size := m.tiles.Size()
	gd := rl.NewGrid(size.X, size.Y)
	gd.Copy(m.tiles)
	return gd
}

// Rooms returns the rooms by ascending id.
func (m *BaseMap) Rooms() []*Room {
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		if r != nil {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// RoomCount returns the number of rooms.
func (m *BaseMap) RoomCount() int {
	n := 0
	for _, r := range m.rooms {
		if r != nil {
			n++
		}
	}
	return n
}

// Room returns the room with the given id.
func (m *BaseMap) Room(id RoomID) (*Room, bool) {
	if id < 1 || int(id) >= len(m.rooms) || m.rooms[id] == nil {
		return nil, false
	}
	return m.rooms[id], true
}

// RoomAt returns the room whose floor contains p. Doorways belong to no room.
func (m *BaseMap) RoomAt(p gruid.Point) (*Room, bool) {
	if !p.In(m.owners.Range()) {
		return nil, false
	}
	return m.Room(RoomID(m.owners.At(p)))
}

// LargestRoom returns the room with the most tiles, the lowest id winning
// ties.
func (m *BaseMap) LargestRoom() (*Room, bool) {
	return LargestRoom(m.Rooms())
}

// Walls returns the walls in creation order.
func (m *BaseMap) Walls() []*Wall {
	return append([]*Wall(nil), m.walls...)
}

// WallBetween returns the wall separating rooms a and c, if they touch.
func (m *BaseMap) WallBetween(a, c RoomID) (*Wall, bool) {
	key := keyFor(a, In(c))
	for _, w := range m.walls {
		if w.key == key {
			return w, true
		}
	}
	return nil, false
}

// Entry returns the arrival stair, if placed.
func (m *BaseMap) Entry() (gruid.Point, bool) { return m.entry, m.hasEntry }

// Exit returns the stair leading up, if placed.
func (m *BaseMap) Exit() (gruid.Point, bool) { return m.exit, m.hasExit }

// SetEntry records the arrival stair. It panics if one is already set.
func (m *BaseMap) SetEntry(p gruid.Point) {
	if m.hasEntry {
		panic(fmt.Sprintf("maze: set entry %v: entry already at %v", p, m.entry))
	}
	m.entry, m.hasEntry = p, true
}

// SetExit records the stair leading up. It panics if one is already set.
func (m *BaseMap) SetExit(p gruid.Point) {
	if m.hasExit {
		panic(fmt.Sprintf("maze: set exit %v: exit already at %v", p, m.exit))
	}
	m.exit, m.hasExit = p, true
}

// Occupied reports whether p holds anything other than Void.
func (m *BaseMap) Occupied(p gruid.Point) bool {
	return m.At(p) != TileVoid
}

// LargestRoom returns the room with the most tiles among rooms, the lowest
// id winning ties.
func LargestRoom(rooms []*Room) (*Room, bool) {
	var best *Room
	for _, r := range rooms {
		if best == nil || r.Size() > best.Size() {
			best = r
		}
	}
	return best, best != nil
}
