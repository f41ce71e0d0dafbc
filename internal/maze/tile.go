// Package maze holds the room-graph model of a generated floor: the tile
// grid, rooms, the walls between them and the Builder that creates them.
package maze

import "codeberg.org/anaseto/gruid/rl"

// Tile kinds stored in a map's rl.Grid.
const (
	TileVoid rl.Cell = iota
	TileWall
	TileFloor
	TileDoor
)

// TileName returns a human readable name for a tile kind.
func TileName(c rl.Cell) string {
	switch c {
	case TileVoid:
		return "Void"
	case TileWall:
		return "Wall"
	case TileFloor:
		return "Floor"
	case TileDoor:
		return "Door"
	default:
		return "Unknown"
	}
}

// Passable reports whether a tile can be walked through.
func Passable(c rl.Cell) bool {
	return c == TileFloor || c == TileDoor
}
