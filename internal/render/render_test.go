package render

import (
	"strings"
	"testing"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
	"github.com/gookit/color"
	"github.com/lawnchairsociety/towergen/internal/maze"
)

// grid builds tiles from rows of export codes.
func grid(rows ...string) rl.Grid {
	gd := rl.NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			var c rl.Cell
			switch ch {
			case '#':
				c = maze.TileWall
			case '.':
				c = maze.TileFloor
			case '+':
				c = maze.TileDoor
			}
			gd.Set(gruid.Point{X: x, Y: y}, c)
		}
	}
	return gd
}

func TestFloorUnicode(t *testing.T) {
	r := New(Unicode, false)
	got := r.Floor(Floor{Tiles: grid(
		"#####",
		"#..+#",
		"#####",
	)})
	want := "" +
		"╔═══╗\n" +
		"║..┆║\n" +
		"╚═══╝\n"
	if got != want {
		t.Errorf("Floor() =\n%s\nwant\n%s", got, want)
	}
}

func TestWallGlyphs(t *testing.T) {
	r := New(Unicode, false)
	gd := grid(
		" # ",
		"###",
		" # ",
		"   ",
		"#  ",
	)
	tests := []struct {
		name string
		p    gruid.Point
		want rune
	}{
		{"crossing", gruid.Point{X: 1, Y: 1}, '╬'},
		{"left arm", gruid.Point{X: 0, Y: 1}, '╞'},
		{"right arm", gruid.Point{X: 2, Y: 1}, '╡'},
		{"top arm", gruid.Point{X: 1, Y: 0}, '╥'},
		{"bottom arm", gruid.Point{X: 1, Y: 2}, '╨'},
		{"pillar", gruid.Point{X: 0, Y: 4}, '▣'},
		{"void", gruid.Point{X: 2, Y: 4}, ' '},
	}
	for _, tt := range tests {
		if got := r.Glyph(gd, tt.p); got != tt.want {
			t.Errorf("%s: Glyph(%v) = %q, want %q", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestDoorGlyphs(t *testing.T) {
	gd := grid(
		"#+#",
		"...",
		"#.#",
		"+.#",
		"#..",
	)
	tests := []struct {
		name    string
		palette Palette
		p       gruid.Point
		want    rune
	}{
		{"horizontal wall", Unicode, gruid.Point{X: 1, Y: 0}, '┈'},
		{"vertical wall", Unicode, gruid.Point{X: 0, Y: 3}, '┆'},
		{"horizontal wall ascii", ASCII, gruid.Point{X: 1, Y: 0}, '-'},
		{"vertical wall ascii", ASCII, gruid.Point{X: 0, Y: 3}, '|'},
	}
	for _, tt := range tests {
		if got := New(tt.palette, false).Glyph(gd, tt.p); got != tt.want {
			t.Errorf("%s: Glyph(%v) = %q, want %q", tt.name, tt.p, got, tt.want)
		}
	}

	lone := grid("...", ".+.", "...")
	if got := New(Unicode, false).Glyph(lone, gruid.Point{X: 1, Y: 1}); got != '+' {
		t.Errorf("door without walls = %q, want '+'", got)
	}
}

func TestFloorStairs(t *testing.T) {
	r := New(ASCII, false)
	got := r.Floor(Floor{
		Tiles:    grid("####", "#..#", "####"),
		Entry:    gruid.Point{X: 1, Y: 0},
		HasEntry: true,
		Exit:     gruid.Point{X: 2, Y: 1},
		HasExit:  true,
	})
	want := "#>##\n#.<#\n####\n"
	if got != want {
		t.Errorf("Floor() = %q, want %q", got, want)
	}
}

func TestTower(t *testing.T) {
	r := New(ASCII, false)
	floors := []Floor{
		{Tiles: grid("###", "#.#", "###")},
		{Tiles: grid("   ", " # ", "   ")},
	}
	want := "###\n#.#\n###\n---\n   \n # \n   \n---\n"
	if got := r.Tower(floors); got != want {
		t.Errorf("Tower() = %q, want %q", got, want)
	}
}

func TestColoredMatchesPlain(t *testing.T) {
	f := Floor{
		Tiles:    grid("#####", "#..+.", "#####"),
		Entry:    gruid.Point{X: 1, Y: 1},
		HasEntry: true,
	}
	plain := New(Unicode, false).Floor(f)
	colored := New(Unicode, true).Floor(f)
	if got := color.ClearCode(colored); got != plain {
		t.Errorf("colored output without codes = %q, want %q", got, plain)
	}
}

func TestMaps(t *testing.T) {
	b := maze.NewBuilder(gruid.Point{X: 6, Y: 5})
	raster := maze.Rasterize(b.Size(), []gruid.Range{gruid.NewRange(2, 2, 5, 4)})
	maze.ApplyRaster(raster, b)
	m := b.Build()
	m.SetExit(gruid.Point{X: 2, Y: 2})

	out := New(ASCII, false).Maps([]*maze.BaseMap{m})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 5 rows and a separator:\n%s", len(lines), out)
	}
	if lines[5] != "------" {
		t.Errorf("separator = %q, want 6 dashes", lines[5])
	}
	if !strings.Contains(lines[2], "<") {
		t.Errorf("row 2 = %q, want the exit marker", lines[2])
	}
}
