package tower

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
	"github.com/lawnchairsociety/towergen/internal/maze"
)

// Floor is one story of a tower.
type Floor struct {
	Number   int           // 0 is the ground floor
	Map      *maze.BaseMap // the generated layout
	Lair     bool          // true for the top floor
	Attempts int           // layouts generated before this one was kept

	raster rl.Grid // room-id raster the map was built from
}

// Footprint returns the tiles of the floor that are not Void.
func (f *Floor) Footprint() []gruid.Point {
	var tiles []gruid.Point
	for p := range f.Map.Tiles().All() {
		if f.Map.Occupied(p) {
			tiles = append(tiles, p)
		}
	}
	return tiles
}

// StairUp returns where the stair to the floor above is, if any.
func (f *Floor) StairUp() (gruid.Point, bool) {
	return f.Map.Exit()
}

// StairDown returns where the floor is entered, by the stair from the floor
// below or, on the ground floor, the entrance.
func (f *Floor) StairDown() (gruid.Point, bool) {
	return f.Map.Entry()
}
