package maze

import (
	"fmt"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// Builder stages a floor. It owns the tile grid being written and is the
// only place Rooms and Walls are created, so every room id and room pair
// maps to exactly one object.
//
// All placement methods require the target tile to be Void and all opening
// methods require a consistent room graph. A violated precondition is a bug
// in the caller and panics.
type Builder struct {
	tiles rl.Grid
	rooms []*Room // indexed by RoomID; index 0 is never used
	walls map[wallKey]*Wall
	order []*Wall
}

// NewBuilder returns a Builder for an all-Void grid of the given size.
func NewBuilder(size gruid.Point) *Builder {
	if size.X < 1 || size.Y < 1 {
		panic(fmt.Sprintf("maze: builder size %v, want positive", size))
	}
	return &Builder{
		tiles: rl.NewGrid(size.X, size.Y),
		rooms: make([]*Room, 1),
		walls: make(map[wallKey]*Wall),
	}
}

// Size returns the grid size.
func (b *Builder) Size() gruid.Point { return b.tiles.Size() }

// At returns the tile at p.
func (b *Builder) At(p gruid.Point) rl.Cell { return b.tiles.At(p) }

// Rooms returns every room referenced so far, by ascending id.
func (b *Builder) Rooms() []*Room {
	rooms := make([]*Room, 0, len(b.rooms))
	for _, r := range b.rooms {
		if r != nil {
			rooms = append(rooms, r)
		}
	}
	return rooms
}

// Room returns the room with the given id, if it has been referenced.
func (b *Builder) Room(id RoomID) (*Room, bool) {
	if id < 1 || int(id) >= len(b.rooms) || b.rooms[id] == nil {
		return nil, false
	}
	return b.rooms[id], true
}

// Walls returns every wall in creation order.
func (b *Builder) Walls() []*Wall {
	return append([]*Wall(nil), b.order...)
}

// WallBetween returns the wall separating rooms a and b, if they touch.
func (b *Builder) WallBetween(a, c RoomID) (*Wall, bool) {
	w, ok := b.walls[keyFor(a, In(c))]
	return w, ok
}

// PlaceFloor writes Floor at p and adds it to the room on side s. Placing
// Outside leaves the tile Void.
func (b *Builder) PlaceFloor(p gruid.Point, s Side) {
	b.requireVoid(p, "place floor")
	id, ok := s.Room()
	if !ok {
		return
	}
	b.tiles.Set(p, TileFloor)
	b.room(id).addTile(p)
}

// PlaceHorizontalWall writes a wall tile at p separating the side above from
// the side below.
func (b *Builder) PlaceHorizontalWall(p gruid.Point, above, below Side) {
	b.placeWall(p, above, below, "place horizontal wall")
}

// PlaceVerticalWall writes a wall tile at p separating the side to the left
// from the side to the right.
func (b *Builder) PlaceVerticalWall(p gruid.Point, left, right Side) {
	b.placeWall(p, left, right, "place vertical wall")
}

// PlacePillar writes a wall tile that belongs to no wall, used where more
// than two sides meet.
func (b *Builder) PlacePillar(p gruid.Point) {
	b.requireVoid(p, "place pillar")
	b.tiles.Set(p, TileWall)
}

// OpenDoor turns wall tile p between rooms a and c into a Door.
func (b *Builder) OpenDoor(p gruid.Point, a, c RoomID) {
	b.open(p, a, c, TileDoor, "open door")
}

// OpenPassage turns wall tile p between rooms a and c into Floor.
func (b *Builder) OpenPassage(p gruid.Point, a, c RoomID) {
	b.open(p, a, c, TileFloor, "open passage")
}

// Build returns a snapshot of the floor. Later changes to the Builder do not
// affect it.
func (b *Builder) Build() *BaseMap {
	size := b.tiles.Size()
	tiles := rl.NewGrid(size.X, size.Y)
	tiles.Copy(b.tiles)

	rooms := make([]*Room, len(b.rooms))
	for id, r := range b.rooms {
		if r != nil {
			rooms[id] = r.clone()
		}
	}
	walls := make([]*Wall, len(b.order))
	for i, w := range b.order {
		walls[i] = w.clone()
	}
	return newBaseMap(tiles, rooms, walls)
}

func (b *Builder) room(id RoomID) *Room {
	for int(id) >= len(b.rooms) {
		b.rooms = append(b.rooms, nil)
	}
	if b.rooms[id] == nil {
		b.rooms[id] = newRoom(id)
	}
	return b.rooms[id]
}

func (b *Builder) placeWall(p gruid.Point, s1, s2 Side, op string) {
	b.requireVoid(p, op)
	b.tiles.Set(p, TileWall)

	id1, ok1 := s1.Room()
	id2, ok2 := s2.Room()
	switch {
	case ok1 && ok2:
		if id1 == id2 {
			panic(fmt.Sprintf("maze: %s at %v: room %d on both sides", op, p, id1))
		}
		b.room(id1).neighbors.Put(id2)
		b.room(id2).neighbors.Put(id1)
		b.wall(keyFor(id1, s2)).addTile(p)
	case ok1:
		b.room(id1)
		b.wall(keyFor(id1, Outside)).addTile(p)
	case ok2:
		b.room(id2)
		b.wall(keyFor(id2, Outside)).addTile(p)
	}
}

func (b *Builder) wall(key wallKey) *Wall {
	w, ok := b.walls[key]
	if !ok {
		w = newWall(key)
		b.walls[key] = w
		b.order = append(b.order, w)
	}
	return w
}

func (b *Builder) open(p gruid.Point, a, c RoomID, tile rl.Cell, op string) {
	if t := b.tiles.At(p); t != TileWall || !p.In(b.tiles.Range()) {
		panic(fmt.Sprintf("maze: %s at %v: tile is %s, want Wall", op, p, TileName(t)))
	}
	ra, okA := b.Room(a)
	rc, okC := b.Room(c)
	if !okA || !okC {
		panic(fmt.Sprintf("maze: %s at %v: unknown room in pair (%d, %d)", op, p, a, c))
	}
	if a == c || !ra.neighbors.Has(c) || !rc.neighbors.Has(a) {
		panic(fmt.Sprintf("maze: %s at %v: rooms %d and %d are not neighbors", op, p, a, c))
	}
	w, ok := b.WallBetween(a, c)
	if !ok || !w.Contains(p) {
		panic(fmt.Sprintf("maze: %s at %v: tile is not on the wall between rooms %d and %d", op, p, a, c))
	}
	if w.hasDoor {
		panic(fmt.Sprintf("maze: %s at %v: %v already has a doorway at %v", op, p, w, w.doorway))
	}

	w.doorway, w.hasDoor = p, true
	b.tiles.Set(p, tile)
	ra.connections.Put(c)
	rc.connections.Put(a)
}

func (b *Builder) requireVoid(p gruid.Point, op string) {
	if !p.In(b.tiles.Range()) {
		panic(fmt.Sprintf("maze: %s at %v: outside %v grid", op, p, b.tiles.Size()))
	}
	if t := b.tiles.At(p); t != TileVoid {
		panic(fmt.Sprintf("maze: %s at %v: tile is %s, want Void", op, p, TileName(t)))
	}
}
