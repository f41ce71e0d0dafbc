package connect

import (
	"errors"
	"math/rand"
	"testing"

	"codeberg.org/anaseto/gruid"
	"github.com/lawnchairsociety/towergen/internal/maze"
)

func TestStairScoresSingleRoom(t *testing.T) {
	m := layout(pt(14, 10), gruid.NewRange(2, 2, 12, 8)).Build()
	scores := StairScores(m)

	tests := []struct {
		name string
		p    gruid.Point
		want int
	}{
		{"corner alcove", pt(2, 2), 3},
		{"far corner", pt(10, 6), 3},
		{"along the top wall", pt(5, 2), 2},
		{"open floor", pt(5, 4), 1},
		{"wall", pt(1, 3), 0},
		{"void", pt(0, 0), 0},
	}
	for _, tt := range tests {
		if got := int(scores.At(tt.p)); got != tt.want {
			t.Errorf("%s: score at %v = %d, want %d", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestStairScoresAvoidDoorways(t *testing.T) {
	b := layout(pt(16, 10), gruid.NewRange(2, 2, 8, 8), gruid.NewRange(8, 2, 14, 8))
	b.OpenPassage(pt(7, 4), 1, 2)
	scores := StairScores(b.Build())

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if p := pt(7+dx, 4+dy); scores.At(p) != 0 {
				t.Errorf("score at %v next to doorway = %d, want 0", p, scores.At(p))
			}
		}
	}
	if scores.At(pt(6, 2)) == 0 {
		t.Error("score at (6,2) = 0, want a legal site two rows from the doorway")
	}
}

func TestStairScoresNarrowRooms(t *testing.T) {
	m := corridorLayout().Build()
	scores := StairScores(m)

	if scores.At(pt(8, 2)) == 0 || scores.At(pt(8, 10)) == 0 {
		t.Error("corridor ends should be legal stair sites")
	}
	for y := 3; y <= 9; y++ {
		if scores.At(pt(8, y)) != 0 {
			t.Errorf("score at corridor middle (8,%d) = %d, want 0", y, scores.At(pt(8, y)))
		}
	}
}

func TestRoomRemoteness(t *testing.T) {
	b := chain()
	connectChain(b)
	m := b.Build()

	dist := RoomRemoteness(m)
	for id, want := range map[maze.RoomID]int{1: 0, 2: 1, 3: 2, 4: 3} {
		if dist[id] != want {
			t.Errorf("from largest: room %d remoteness = %d, want %d", id, dist[id], want)
		}
	}

	m.SetExit(pt(15, 4))
	dist = RoomRemoteness(m)
	for id, want := range map[maze.RoomID]int{1: 3, 2: 2, 3: 1, 4: 0} {
		if dist[id] != want {
			t.Errorf("from exit: room %d remoteness = %d, want %d", id, dist[id], want)
		}
	}
}

func TestRoomRemotenessUnreached(t *testing.T) {
	b := chain()
	b.OpenDoor(pt(5, 4), 1, 2)
	dist := RoomRemoteness(b.Build())
	if _, ok := dist[4]; ok {
		t.Errorf("room 4 has remoteness %d, want absent", dist[4])
	}
	if dist[2] != 1 {
		t.Errorf("room 2 remoteness = %d, want 1", dist[2])
	}
}

func TestPlaceJoiningStair(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		top := chain()
		connectChain(top)
		above := top.Build()

		bottom := chain()
		connectChain(bottom)
		below := bottom.Build()

		if err := PlaceJoiningStair(above, below, rand.New(rand.NewSource(seed))); err != nil {
			t.Fatalf("seed %d: PlaceJoiningStair: %v", seed, err)
		}
		entry, ok := above.Entry()
		if !ok {
			t.Fatalf("seed %d: above has no entry", seed)
		}
		exit, ok := below.Exit()
		if !ok || exit != entry {
			t.Fatalf("seed %d: below exit = %v, %v, want %v", seed, exit, ok, entry)
		}
		if above.At(entry) != maze.TileFloor || below.At(exit) != maze.TileFloor {
			t.Errorf("seed %d: stair at %v is not Floor on both floors", seed, entry)
		}
		if r, ok := above.RoomAt(entry); !ok || r.ID() != 4 {
			t.Errorf("seed %d: stair in room %v, want the most remote room 4", seed, r)
		}
		if StairScores(above).At(entry) == 0 || StairScores(below).At(exit) == 0 {
			t.Errorf("seed %d: stair at %v is not a legal site", seed, entry)
		}
	}
}

func TestPlaceJoiningStairNoOverlap(t *testing.T) {
	above := layout(pt(20, 10), gruid.NewRange(2, 2, 6, 8)).Build()
	below := layout(pt(20, 10), gruid.NewRange(12, 2, 18, 8)).Build()

	err := PlaceJoiningStair(above, below, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoStairSite) {
		t.Fatalf("PlaceJoiningStair error = %v, want ErrNoStairSite", err)
	}
	if _, ok := above.Entry(); ok {
		t.Error("failed PlaceJoiningStair set an entry")
	}
}

func TestPlaceJoiningStairIgnoresRemotenessWhenNeeded(t *testing.T) {
	// A single room has remoteness 0 everywhere.
	above := layout(pt(14, 10), gruid.NewRange(2, 2, 12, 8)).Build()
	below := layout(pt(14, 10), gruid.NewRange(2, 2, 12, 8)).Build()

	if err := PlaceJoiningStair(above, below, rand.New(rand.NewSource(3))); err != nil {
		t.Fatalf("PlaceJoiningStair: %v", err)
	}
	entry, _ := above.Entry()
	if StairScores(above).At(entry) != 3 {
		t.Errorf("stair at %v, want a corner alcove", entry)
	}
}

func TestPlaceExteriorEntrance(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		b := chain()
		connectChain(b)
		m := b.Build()
		m.SetExit(pt(3, 4))

		if err := PlaceExteriorEntrance(m, rand.New(rand.NewSource(seed))); err != nil {
			t.Fatalf("seed %d: PlaceExteriorEntrance: %v", seed, err)
		}
		entry, ok := m.Entry()
		if !ok {
			t.Fatalf("seed %d: no entry placed", seed)
		}
		if m.At(entry) != maze.TileWall {
			t.Errorf("seed %d: entry %v is %s, want Wall", seed, entry, maze.TileName(m.At(entry)))
		}
		if entry.Y != 1 && entry.Y != 7 {
			t.Errorf("seed %d: entry %v not on the top or bottom outer wall", seed, entry)
		}
		if entry.X < 14 || entry.X > 16 {
			t.Errorf("seed %d: entry %v not beside the most remote room", seed, entry)
		}
	}
}

func TestPlaceExteriorEntranceNoCandidates(t *testing.T) {
	m := maze.NewBuilder(pt(6, 6)).Build()
	if err := PlaceExteriorEntrance(m, rand.New(rand.NewSource(1))); !errors.Is(err, ErrNoEntranceSite) {
		t.Errorf("PlaceExteriorEntrance error = %v, want ErrNoEntranceSite", err)
	}
}
