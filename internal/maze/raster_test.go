package maze

import (
	"testing"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

func TestRasterizeSkipsUnusableRects(t *testing.T) {
	size := pt(10, 8)
	raster := Rasterize(size, []gruid.Range{
		gruid.NewRange(0, 1, 4, 4),  // touches column 0
		gruid.NewRange(1, 1, 4, 4),  // kept as 1
		gruid.NewRange(6, 1, 11, 4), // past the right edge
		gruid.NewRange(5, 5, 6, 8),  // one cell wide
		gruid.NewRange(4, 4, 10, 8), // kept as 2
	})

	if got := raster.Size(); got != pt(11, 9) {
		t.Fatalf("raster size = %v, want (11,9)", got)
	}
	tests := []struct {
		p    gruid.Point
		want rl.Cell
	}{
		{pt(0, 1), 0},
		{pt(1, 1), 1},
		{pt(3, 3), 1},
		{pt(4, 3), 0},
		{pt(4, 4), 2},
		{pt(9, 7), 2},
		{pt(10, 8), 0},
		{pt(7, 2), 0},
	}
	for _, tt := range tests {
		if got := raster.At(tt.p); got != tt.want {
			t.Errorf("raster.At(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestApplyRaster(t *testing.T) {
	b := twoRooms(t)
	m := b.Build()

	tests := []struct {
		p    gruid.Point
		want rl.Cell
	}{
		{pt(0, 0), TileWall},  // corner pillar
		{pt(1, 0), TileWall},  // exterior wall above room 1
		{pt(1, 1), TileFloor}, // room 1
		{pt(3, 3), TileFloor},
		{pt(4, 2), TileWall}, // shared wall
		{pt(5, 2), TileFloor},
		{pt(8, 2), TileWall}, // exterior wall right of room 2
		{pt(9, 2), TileVoid},
		{pt(2, 5), TileVoid},
	}
	for _, tt := range tests {
		if got := m.At(tt.p); got != tt.want {
			t.Errorf("At(%v) = %s, want %s", tt.p, TileName(got), TileName(tt.want))
		}
	}

	if n := m.RoomCount(); n != 2 {
		t.Fatalf("RoomCount() = %d, want 2", n)
	}
	for _, r := range m.Rooms() {
		if r.Size() != 9 {
			t.Errorf("room %d size = %d, want 9", r.ID(), r.Size())
		}
	}
	w, ok := m.WallBetween(1, 2)
	if !ok {
		t.Fatal("no wall between rooms 1 and 2")
	}
	if w.Area() != 3 {
		t.Errorf("shared wall area = %d, want 3", w.Area())
	}

	exterior := 0
	for _, w := range m.Walls() {
		if w.Exterior() {
			exterior++
		}
	}
	if exterior != 2 {
		t.Errorf("exterior walls = %d, want 2", exterior)
	}
}

func TestApplyRasterSizeMismatch(t *testing.T) {
	b := NewBuilder(pt(5, 5))
	mustPanic(t, "ApplyRaster with a same-size raster", func() {
		ApplyRaster(rl.NewGrid(5, 5), b)
	})
}

func TestUnreachable(t *testing.T) {
	b := twoRooms(t)
	if lost := b.Build().Unreachable(); len(lost) != 9 {
		t.Errorf("closed rooms: %d unreachable tiles, want 9", len(lost))
	}

	b.OpenDoor(pt(4, 3), 1, 2)
	if lost := b.Build().Unreachable(); len(lost) != 0 {
		t.Errorf("after door: unreachable tiles %v, want none", lost)
	}

	if lost := NewBuilder(pt(3, 3)).Build().Unreachable(); lost != nil {
		t.Errorf("empty map: unreachable tiles %v, want nil", lost)
	}
}
