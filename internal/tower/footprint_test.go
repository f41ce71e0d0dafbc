package tower

import (
	"slices"
	"testing"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
	"github.com/lawnchairsociety/towergen/internal/maze"
)

func TestFootprint(t *testing.T) {
	f := NewFootprint(pt(10, 8))
	if n := f.Count(); n != 0 {
		t.Fatalf("new footprint Count() = %d, want 0", n)
	}

	f.AddRange(gruid.NewRange(2, 2, 4, 4))
	f.AddRange(gruid.NewRange(20, 20, 25, 25)) // off the map
	f.AddRange(gruid.NewRange(9, 7, 15, 15))   // clipped to the 11x9 raster
	if n := f.Count(); n != 8 {
		t.Errorf("Count() = %d, want 8", n)
	}

	raster := rl.NewGrid(11, 9)
	raster.Set(pt(5, 5), 3)
	f.AddRaster(raster)

	tests := []struct {
		p    gruid.Point
		want bool
	}{
		{pt(2, 2), true},
		{pt(3, 3), true},
		{pt(4, 4), false},
		{pt(10, 8), true},
		{pt(5, 5), true},
		{pt(-1, 0), false},
		{pt(11, 8), false},
	}
	for _, tt := range tests {
		if got := f.Has(tt.p); got != tt.want {
			t.Errorf("Has(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestFilterRects(t *testing.T) {
	f := NewFootprint(pt(10, 8))
	f.AddRange(gruid.NewRange(2, 2, 4, 4))
	f.AddRange(gruid.NewRange(9, 7, 11, 9))

	rects := []gruid.Range{
		gruid.NewRange(0, 0, 2, 2),
		gruid.NewRange(8, 6, 10, 8),
		gruid.NewRange(2, 0, 4, 2),
		gruid.NewRange(3, 3, 6, 6),
		gruid.NewRange(4, 4, 8, 8),
		gruid.NewRange(-5, -5, 0, 0),
	}
	want := []gruid.Range{rects[1], rects[3]}
	if got := FilterRects(rects, f); !slices.Equal(got, want) {
		t.Errorf("FilterRects() = %v, want %v", got, want)
	}
	if got := FilterRects(nil, f); len(got) != 0 {
		t.Errorf("FilterRects(nil) = %v, want none", got)
	}
}

func TestUsableArea(t *testing.T) {
	tests := []struct {
		shape gruid.Point
		want  gruid.Range
	}{
		{pt(40, 24), gruid.NewRange(2, 2, 38, 22)},
		{pt(41, 25), gruid.NewRange(2, 2, 40, 24)},
		{pt(8, 8), gruid.NewRange(2, 2, 6, 6)},
	}
	for _, tt := range tests {
		if got := UsableArea(tt.shape); got != tt.want {
			t.Errorf("UsableArea(%v) = %v, want %v", tt.shape, got, tt.want)
		}
	}
}

func TestCentredRange(t *testing.T) {
	tests := []struct {
		shape gruid.Point
		side  int
		want  gruid.Range
	}{
		{pt(40, 24), 2, gruid.NewRange(19, 11, 21, 13)},
		{pt(80, 50), 2, gruid.NewRange(39, 23, 41, 25)},
		{pt(80, 50), 4, gruid.NewRange(38, 22, 42, 26)},
		{pt(41, 27), 1, gruid.NewRange(20, 12, 21, 13)},
	}
	for _, tt := range tests {
		if got := centredRange(tt.shape, tt.side); got != tt.want {
			t.Errorf("centredRange(%v, %d) = %v, want %v", tt.shape, tt.side, got, tt.want)
		}
	}
}

func TestFloorAccessors(t *testing.T) {
	g, err := NewGenerator(DefaultConfig(pt(40, 24)), 7)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	tw, err := g.Tower(3)
	if err != nil {
		t.Fatalf("Tower: %v", err)
	}

	ground, top := tw.Floors[0], tw.Floors[len(tw.Floors)-1]
	if !top.Lair || ground.Lair {
		t.Errorf("Lair flags: ground %v, top %v, want false, true", ground.Lair, top.Lair)
	}
	if _, ok := ground.StairDown(); !ok {
		t.Error("ground floor has no entrance")
	}
	if _, ok := top.StairUp(); ok {
		t.Error("top floor has a stair up")
	}

	for _, f := range tw.Floors {
		if f.Attempts < 1 {
			t.Errorf("floor %d: Attempts = %d", f.Number, f.Attempts)
		}
		tiles := f.Footprint()
		if len(tiles) == 0 {
			t.Errorf("floor %d: empty footprint", f.Number)
		}
		for _, p := range tiles {
			if f.Map.At(p) == maze.TileVoid {
				t.Errorf("floor %d: footprint tile %v is Void", f.Number, p)
				break
			}
		}
		if f.Number+1 < len(tw.Floors) {
			up, _ := f.StairUp()
			down, _ := tw.Floors[f.Number+1].StairDown()
			if up != down {
				t.Errorf("floor %d stair up %v, floor above entered at %v", f.Number, up, down)
			}
		}
	}
}
