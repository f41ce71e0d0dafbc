package maze

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

// walker moves between passable tiles of a map.
type walker struct {
	m   *BaseMap
	nbs paths.Neighbors
}

func (w *walker) Neighbors(p gruid.Point) []gruid.Point {
	if !Passable(w.m.At(p)) {
		return nil
	}
	return w.nbs.Cardinal(p, func(q gruid.Point) bool {
		return Passable(w.m.At(q))
	})
}

// Unreachable returns the passable tiles that cannot be walked to from the
// first passable tile in row-major order. A fully connected floor returns
// nil.
func (m *BaseMap) Unreachable() []gruid.Point {
	size := m.Size()
	var start gruid.Point
	found := false
	for p, c := range m.tiles.All() {
		if Passable(c) {
			start, found = p, true
			break
		}
	}
	if !found {
		return nil
	}

	pr := paths.NewPathRange(gruid.NewRange(0, 0, size.X, size.Y))
	pr.CCMap(&walker{m: m}, start)

	var lost []gruid.Point
	for p, c := range m.tiles.All() {
		if Passable(c) && pr.CCMapAt(p) == -1 {
			lost = append(lost, p)
		}
	}
	return lost
}
