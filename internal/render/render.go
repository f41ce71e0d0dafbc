// Package render draws floors as text, one glyph per tile.
package render

import (
	"slices"
	"strings"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
	"github.com/gookit/color"
	"github.com/lawnchairsociety/towergen/internal/maze"
)

// Wall neighbor bits, indexing Palette.Walls.
const (
	wallBelow = 1 << iota
	wallRight
	wallAbove
	wallLeft
)

// Palette maps tiles to glyphs. Walls is indexed by which cardinal
// neighbors are also walls: left 8, above 4, right 2, below 1.
type Palette struct {
	Void, Floor  rune
	Entry, Exit  rune
	Door         rune // a door with no walls on either side
	DoorH, DoorV rune // doors in horizontal and vertical walls
	Walls        [16]rune
}

// Unicode draws walls with double-line box drawing characters.
var Unicode = Palette{
	Void:  ' ',
	Floor: '.',
	Entry: '>',
	Exit:  '<',
	Door:  '+',
	DoorH: '┈',
	DoorV: '┆',
	Walls: [16]rune{
		'▣', '╥', '╞', '╔',
		'╨', '║', '╚', '╠',
		'╡', '╗', '═', '╦',
		'╝', '╣', '╩', '╬',
	},
}

// ASCII is for terminals without box drawing characters.
var ASCII = Palette{
	Void:  ' ',
	Floor: '.',
	Entry: '>',
	Exit:  '<',
	Door:  '+',
	DoorH: '-',
	DoorV: '|',
	Walls: [16]rune{
		'#', '#', '#', '#', '#', '#', '#', '#',
		'#', '#', '#', '#', '#', '#', '#', '#',
	},
}

// Floor is what gets drawn for one story: its tiles and stair positions.
type Floor struct {
	Tiles    rl.Grid
	Entry    gruid.Point
	Exit     gruid.Point
	HasEntry bool
	HasExit  bool
}

// FromMap collects what is drawn of a generated map.
func FromMap(m *maze.BaseMap) Floor {
	f := Floor{Tiles: m.Tiles()}
	f.Entry, f.HasEntry = m.Entry()
	f.Exit, f.HasExit = m.Exit()
	return f
}

// Renderer turns floors into text.
type Renderer struct {
	palette Palette
	colored bool
	styles  map[rl.Cell]color.Style
	stairs  color.Style
}

// New creates a renderer. With colored set, glyphs are wrapped in terminal
// color codes.
func New(p Palette, colored bool) *Renderer {
	return &Renderer{
		palette: p,
		colored: colored,
		styles: map[rl.Cell]color.Style{
			maze.TileFloor: {color.FgGray},
			maze.TileWall:  {color.FgWhite, color.OpBold},
			maze.TileDoor:  {color.FgYellow, color.OpBold},
		},
		stairs: color.Style{color.FgGreen, color.OpBold},
	}
}

// Glyph returns the glyph for tile p of gd, ignoring stairs.
func (r *Renderer) Glyph(gd rl.Grid, p gruid.Point) rune {
	switch gd.At(p) {
	case maze.TileFloor:
		return r.palette.Floor
	case maze.TileDoor:
		return r.doorGlyph(gd, p)
	case maze.TileWall:
		return r.palette.Walls[wallBits(gd, p)]
	default:
		return r.palette.Void
	}
}

func isWall(gd rl.Grid, p gruid.Point) bool {
	return p.In(gd.Range()) && gd.At(p) == maze.TileWall
}

func (r *Renderer) doorGlyph(gd rl.Grid, p gruid.Point) rune {
	switch {
	case isWall(gd, p.Shift(0, -1)) && isWall(gd, p.Shift(0, 1)):
		return r.palette.DoorV
	case isWall(gd, p.Shift(-1, 0)) && isWall(gd, p.Shift(1, 0)):
		return r.palette.DoorH
	}
	return r.palette.Door
}

func wallBits(gd rl.Grid, p gruid.Point) int {
	bits := 0
	if isWall(gd, p.Shift(-1, 0)) {
		bits |= wallLeft
	}
	if isWall(gd, p.Shift(0, -1)) {
		bits |= wallAbove
	}
	if isWall(gd, p.Shift(1, 0)) {
		bits |= wallRight
	}
	if isWall(gd, p.Shift(0, 1)) {
		bits |= wallBelow
	}
	return bits
}

// Floor draws one story, a line per row. Stairs are drawn over the tile
// they stand on.
func (r *Renderer) Floor(f Floor) string {
	var sb strings.Builder
	size := f.Tiles.Size()
	for y := 0; y < size.Y; y++ {
		var run strings.Builder
		var runStyle color.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if r.colored && len(runStyle) > 0 {
				sb.WriteString(runStyle.Sprint(run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}

		for x := 0; x < size.X; x++ {
			p := gruid.Point{X: x, Y: y}
			g, style := r.Glyph(f.Tiles, p), r.styles[f.Tiles.At(p)]
			switch {
			case f.HasEntry && p == f.Entry:
				g, style = r.palette.Entry, r.stairs
			case f.HasExit && p == f.Exit:
				g, style = r.palette.Exit, r.stairs
			}
			if !slices.Equal(style, runStyle) {
				flush()
				runStyle = style
			}
			run.WriteRune(g)
		}
		flush()
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Tower draws floors ground first, each followed by a line of dashes as
// wide as the map.
func (r *Renderer) Tower(floors []Floor) string {
	var sb strings.Builder
	for _, f := range floors {
		sb.WriteString(r.Floor(f))
		sb.WriteString(strings.Repeat("-", f.Tiles.Size().X))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Map draws a generated map.
func (r *Renderer) Map(m *maze.BaseMap) string {
	return r.Floor(FromMap(m))
}

// Maps draws generated floors as a tower.
func (r *Renderer) Maps(maps []*maze.BaseMap) string {
	floors := make([]Floor, len(maps))
	for i, m := range maps {
		floors[i] = FromMap(m)
	}
	return r.Tower(floors)
}
