package connect

import (
	"errors"
	"fmt"
	"math/rand"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"codeberg.org/anaseto/gruid/rl"
	"github.com/lawnchairsociety/towergen/internal/logger"
	"github.com/lawnchairsociety/towergen/internal/maze"
	"github.com/zyedidia/generic/queue"
)

var (
	// ErrNoStairSite is returned when two floors share no legal stair tile.
	ErrNoStairSite = errors.New("connect: no legal stair site")

	// ErrNoEntranceSite is returned when the ground floor has no outer wall
	// facing a floor tile.
	ErrNoEntranceSite = errors.New("connect: no exterior entrance site")
)

// StairScores rates every tile of m as a stair site. Illegal tiles score 0:
// anything but Floor, wall tiles, tiles within one step of a doorway and,
// in rooms one tile wide or tall, tiles other than the ends. A legal tile
// scores 1 plus the number of Wall tiles beside it, favouring alcoves.
func StairScores(m *maze.BaseMap) rl.Grid {
	size := m.Size()
	area := gruid.NewRange(0, 0, size.X, size.Y)
	legal := rl.NewGrid(size.X, size.Y)
	for p, c := range m.Tiles().All() {
		if c == maze.TileFloor {
			legal.Set(p, 1)
		}
	}

	for _, w := range m.Walls() {
		for _, p := range w.Tiles() {
			legal.Set(p, 0)
		}
		if d, ok := w.Doorway(); ok {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if q := d.Shift(dx, dy); q.In(area) {
						legal.Set(q, 0)
					}
				}
			}
		}
	}

	for _, r := range m.Rooms() {
		bb := r.Bounds()
		if dim := bb.Size(); dim.X != 1 && dim.Y != 1 {
			continue
		}
		for _, p := range r.Tiles() {
			endX := p.X == bb.Min.X || p.X == bb.Max.X-1
			endY := p.Y == bb.Min.Y || p.Y == bb.Max.Y-1
			if !endX || !endY {
				legal.Set(p, 0)
			}
		}
	}

	var nbs paths.Neighbors
	scores := rl.NewGrid(size.X, size.Y)
	for p, c := range legal.All() {
		if c == 0 {
			continue
		}
		walls := nbs.Cardinal(p, func(q gruid.Point) bool {
			return m.At(q) == maze.TileWall
		})
		scores.Set(p, rl.Cell(1+len(walls)))
	}
	return scores
}

// RoomRemoteness labels each room with its distance, in doorways, from a
// reference room: the room holding m's exit if set, otherwise the largest
// room. Rooms that cannot be reached are absent and read as 0.
func RoomRemoteness(m *maze.BaseMap) map[maze.RoomID]int {
	dist := make(map[maze.RoomID]int)
	root, ok := remotenessRoot(m)
	if !ok {
		return dist
	}

	dist[root] = 0
	todo := queue.New[maze.RoomID]()
	todo.Enqueue(root)
	for !todo.Empty() {
		id := todo.Dequeue()
		r, _ := m.Room(id)
		for _, c := range r.ConnectionIDs() {
			if _, seen := dist[c]; !seen {
				dist[c] = dist[id] + 1
				todo.Enqueue(c)
			}
		}
	}
	return dist
}

func remotenessRoot(m *maze.BaseMap) (maze.RoomID, bool) {
	if p, ok := m.Exit(); ok {
		if r, ok := m.RoomAt(p); ok {
			return r.ID(), true
		}
	}
	r, ok := m.LargestRoom()
	if !ok {
		return 0, false
	}
	return r.ID(), true
}

// RemotenessGrid spreads RoomRemoteness over the tiles of each room.
func RemotenessGrid(m *maze.BaseMap) rl.Grid {
	size := m.Size()
	gd := rl.NewGrid(size.X, size.Y)
	dist := RoomRemoteness(m)
	for _, r := range m.Rooms() {
		for _, p := range r.Tiles() {
			gd.Set(p, rl.Cell(dist[r.ID()]))
		}
	}
	return gd
}

// PlaceJoiningStair links two stacked floors with a stair on a tile legal
// in both. Sites score the product of both floors' StairScores times the
// upper floor's remoteness, so the way further up lands far from where the
// upper floor is left. If every site of a remote room is illegal, the
// remoteness factor is dropped. It sets above's entry and below's exit.
func PlaceJoiningStair(above, below *maze.BaseMap, rng *rand.Rand) error {
	if above.Size() != below.Size() {
		panic(fmt.Sprintf("connect: joining floors of size %v and %v", above.Size(), below.Size()))
	}
	sa := StairScores(above)
	sb := StairScores(below)
	remote := RemotenessGrid(above)

	weighted := func(p gruid.Point) int {
		return int(sa.At(p)) * int(sb.At(p)) * int(remote.At(p))
	}
	plain := func(p gruid.Point) int {
		return int(sa.At(p)) * int(sb.At(p))
	}

	sites := gridPoints(above.Size())
	site, ok := bestSite(sites, weighted, rng)
	if !ok {
		logger.Debug("no remote stair site, ignoring remoteness")
		site, ok = bestSite(sites, plain, rng)
	}
	if !ok {
		return ErrNoStairSite
	}
	if above.At(site) != maze.TileFloor || below.At(site) != maze.TileFloor {
		panic(fmt.Sprintf("connect: stair site %v is %s above and %s below", site,
			maze.TileName(above.At(site)), maze.TileName(below.At(site))))
	}

	above.SetEntry(site)
	below.SetExit(site)
	logger.Debug("placed stair", "x", site.X, "y", site.Y)
	return nil
}

// PlaceExteriorEntrance puts the ground floor's entry in an outer wall: a
// wall tile with Void or the map edge on one vertical side and Floor on the
// other. The candidate whose floor side is most remote wins.
func PlaceExteriorEntrance(m *maze.BaseMap, rng *rand.Rand) error {
	dist := RoomRemoteness(m)

	var candidates []gruid.Point
	score := make(map[gruid.Point]int)
	for p, c := range m.Tiles().All() {
		if c != maze.TileWall {
			continue
		}
		up, down := p.Shift(0, -1), p.Shift(0, 1)
		var inner gruid.Point
		switch {
		case m.At(up) == maze.TileVoid && m.At(down) == maze.TileFloor:
			inner = down
		case m.At(down) == maze.TileVoid && m.At(up) == maze.TileFloor:
			inner = up
		default:
			continue
		}
		candidates = append(candidates, p)
		if r, ok := m.RoomAt(inner); ok {
			score[p] = dist[r.ID()]
		}
	}
	if len(candidates) == 0 {
		return ErrNoEntranceSite
	}

	// Every candidate is legal, so a zero score still counts.
	site, _ := bestSite(candidates, func(p gruid.Point) int { return score[p] + 1 }, rng)
	m.SetEntry(site)
	logger.Debug("placed entrance", "x", site.X, "y", site.Y)
	return nil
}

// bestSite returns a uniformly random point among those with the highest
// positive score.
func bestSite(points []gruid.Point, score func(gruid.Point) int, rng *rand.Rand) (gruid.Point, bool) {
	best := 0
	var ties []gruid.Point
	for _, p := range points {
		s := score(p)
		switch {
		case s > best:
			best = s
			ties = append(ties[:0], p)
		case s == best && s > 0:
			ties = append(ties, p)
		}
	}
	if len(ties) == 0 {
		return gruid.Point{}, false
	}
	return ties[rng.Intn(len(ties))], true
}

func gridPoints(size gruid.Point) []gruid.Point {
	points := make([]gruid.Point, 0, size.X*size.Y)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			points = append(points, gruid.Point{X: x, Y: y})
		}
	}
	return points
}
