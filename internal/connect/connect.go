// Package connect opens doorways through the walls of a floor until its
// rooms are reachable, and picks sites for stairs and the tower entrance.
package connect

import (
	"fmt"
	"math/rand"

	"github.com/lawnchairsociety/towergen/internal/logger"
	"github.com/lawnchairsociety/towergen/internal/maze"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"
)

// Graph is the read side of a floor's room graph. Both *maze.Builder and
// *maze.BaseMap implement it.
type Graph interface {
	Rooms() []*maze.Room
	Room(id maze.RoomID) (*maze.Room, bool)
}

// ConnectedSet returns the rooms reachable from start through opened
// doorways, start included.
func ConnectedSet(g Graph, start maze.RoomID) mapset.Set[maze.RoomID] {
	seen := mapset.New[maze.RoomID]()
	todo := stack.New[maze.RoomID]()
	todo.Push(start)
	for todo.Size() > 0 {
		id := todo.Pop()
		if seen.Has(id) {
			continue
		}
		seen.Put(id)
		r, ok := g.Room(id)
		if !ok {
			panic(fmt.Sprintf("connect: connection to unknown room %d", id))
		}
		for _, c := range r.ConnectionIDs() {
			if !seen.Has(c) {
				todo.Push(c)
			}
		}
	}
	return seen
}

// EnsureFullyConnected opens doorways until every room can reach every
// other. Starting from a random room, it repeatedly joins the reachable set
// to one random neighbor outside it.
//
// It panics if the neighbor graph itself is disconnected, since no sequence
// of doorways could then succeed.
func EnsureFullyConnected(b *maze.Builder, rng *rand.Rand) {
	rooms := b.Rooms()
	if len(rooms) == 0 {
		return
	}
	start := rooms[rng.Intn(len(rooms))].ID()

	type pair struct{ inside, outside maze.RoomID }
	for {
		reached := ConnectedSet(b, start)
		if reached.Size() == len(rooms) {
			return
		}

		var frontier []pair
		for _, r := range rooms {
			if !reached.Has(r.ID()) {
				continue
			}
			for _, n := range r.NeighborIDs() {
				if !reached.Has(n) {
					frontier = append(frontier, pair{r.ID(), n})
				}
			}
		}
		if len(frontier) == 0 {
			panic(fmt.Sprintf("connect: %d of %d rooms reachable and no neighbor outside", reached.Size(), len(rooms)))
		}
		p := frontier[rng.Intn(len(frontier))]
		openRandom(b, p.inside, p.outside, rng)
	}
}

// AddRedundantConnections opens extra doorways so the floor has loops.
// Between a quarter and three quarters of the room count, random rooms each
// get one more doorway to a neighbor they are not joined to yet.
func AddRedundantConnections(b *maze.Builder, rng *rand.Rand) {
	rooms := b.Rooms()
	n := len(rooms)
	if n < 2 {
		return
	}
	lo := n / 4
	hi := n - lo
	count := lo + rng.Intn(hi-lo)

	opened := 0
	for i := 0; i < count; i++ {
		r := rooms[rng.Intn(n)]
		options := r.UnconnectedNeighborIDs()
		if len(options) == 0 {
			continue
		}
		openRandom(b, r.ID(), options[rng.Intn(len(options))], rng)
		opened++
	}
	logger.Debug("redundant connections", "attempts", count, "opened", opened)
}

// FixCorridorEndpoints opens a door in every single-tile wall of a corridor
// that has none, so corridors never dead-end where their end meets a room.
func FixCorridorEndpoints(b *maze.Builder) {
	for _, r := range b.Rooms() {
		if !r.IsCorridor() {
			continue
		}
		for _, w := range b.Walls() {
			if w.Exterior() || !w.Adjoins(r.ID()) || w.Area() != 1 || w.HasDoorway() {
				continue
			}
			other, _ := w.Other(r.ID()).Room()
			b.OpenDoor(w.Tiles()[0], r.ID(), other)
		}
	}
}

// SolveLair connects a lair floor: the largest room gets doors to two of
// its neighbors. It reports false, changing nothing, if any room is a
// corridor or the largest room has fewer than two neighbors.
func SolveLair(b *maze.Builder, rng *rand.Rand) bool {
	rooms := b.Rooms()
	for _, r := range rooms {
		if r.IsCorridor() {
			return false
		}
	}
	hall, ok := maze.LargestRoom(rooms)
	if !ok {
		return false
	}
	neighbors := hall.NeighborIDs()
	if len(neighbors) < 2 {
		return false
	}

	for _, i := range rng.Perm(len(neighbors))[:2] {
		w, _ := b.WallBetween(hall.ID(), neighbors[i])
		tiles := w.Tiles()
		b.OpenDoor(tiles[rng.Intn(len(tiles))], hall.ID(), neighbors[i])
	}
	return true
}

// openRandom opens a random tile of the wall between a and c, as a door or
// a passage with equal odds.
func openRandom(b *maze.Builder, a, c maze.RoomID, rng *rand.Rand) {
	w, ok := b.WallBetween(a, c)
	if !ok {
		panic(fmt.Sprintf("connect: rooms %d and %d share no wall", a, c))
	}
	tiles := w.Tiles()
	p := tiles[rng.Intn(len(tiles))]
	if rng.Intn(2) == 0 {
		b.OpenDoor(p, a, c)
	} else {
		b.OpenPassage(p, a, c)
	}
}
