package tower

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lawnchairsociety/towergen/internal/maze"
)

func TestSaveAndLoadTower(t *testing.T) {
	tmpDir := t.TempDir()
	towerFile := filepath.Join(tmpDir, "tower.yaml")

	floors, err := GenerateTower(pt(40, 24), 3, 4, 12345)
	if err != nil {
		t.Fatalf("GenerateTower: %v", err)
	}
	data := NewTowerData(floors, Params{Seed: 12345, BoxSize: 4, Edge: DefaultEdge})

	if err := SaveTower(towerFile, data); err != nil {
		t.Fatalf("Failed to save tower: %v", err)
	}
	if !TowerFileExists(towerFile) {
		t.Fatal("Tower file should exist after save")
	}

	loaded, err := LoadTower(towerFile)
	if err != nil {
		t.Fatalf("Failed to load tower: %v", err)
	}

	if loaded.Seed != 12345 {
		t.Errorf("Seed = %d, want 12345", loaded.Seed)
	}
	if loaded.Width != 40 || loaded.Height != 24 {
		t.Errorf("size = %dx%d, want 40x24", loaded.Width, loaded.Height)
	}
	if loaded.BoxSize != 4 || loaded.Edge != DefaultEdge {
		t.Errorf("params = box %d edge %v, want box 4 edge %v", loaded.BoxSize, loaded.Edge, DefaultEdge)
	}
	if len(loaded.Floors) != 3 {
		t.Fatalf("loaded %d floors, want 3", len(loaded.Floors))
	}
	if got, want := Fingerprint(loaded), Fingerprint(data); got != want {
		t.Errorf("Fingerprint after load = %s, want %s", got, want)
	}

	for i, fd := range loaded.Floors {
		gd, err := fd.Tiles()
		if err != nil {
			t.Fatalf("floor %d: Tiles: %v", i, err)
		}
		for p, c := range gd.All() {
			if want := floors[i].At(p); c != want {
				t.Fatalf("floor %d tile %v = %s, want %s", i, p, maze.TileName(c), maze.TileName(want))
			}
		}
		if len(fd.Rooms) != floors[i].RoomCount() {
			t.Errorf("floor %d: %d rooms, want %d", i, len(fd.Rooms), floors[i].RoomCount())
		}
		if len(fd.Walls) != len(floors[i].Walls()) {
			t.Errorf("floor %d: %d walls, want %d", i, len(fd.Walls), len(floors[i].Walls()))
		}
		if entry, _ := floors[i].Entry(); fd.Entry == nil || fd.Entry.Point() != entry {
			t.Errorf("floor %d: entry = %v, want %v", i, fd.Entry, entry)
		}
	}
	if loaded.Floors[2].Exit != nil {
		t.Errorf("top floor exit = %v, want none", loaded.Floors[2].Exit)
	}
}

func TestLoadTowerMissingFile(t *testing.T) {
	_, err := LoadTower(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadTower error = %v, want a not-exist error", err)
	}
}

func TestDecodeTowerRejectsBadFloors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"wrong height", "width: 3\nheight: 2\nfloors:\n- number: 0\n  rows: ['###']\n"},
		{"wrong width", "width: 3\nheight: 1\nfloors:\n- number: 0\n  rows: ['####']\n"},
		{"out of order", "width: 1\nheight: 1\nfloors:\n- number: 1\n  rows: ['#']\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTower([]byte(tt.yaml)); !errors.Is(err, ErrBadExport) {
				t.Errorf("DecodeTower error = %v, want ErrBadExport", err)
			}
		})
	}

	if _, err := DecodeTower([]byte("floors: [")); err == nil || errors.Is(err, ErrBadExport) {
		t.Errorf("DecodeTower of broken YAML = %v, want a parse error", err)
	}
}

func TestFloorDataTiles(t *testing.T) {
	fd := FloorData{Rows: []string{" #+", "#.#"}}
	gd, err := fd.Tiles()
	if err != nil {
		t.Fatalf("Tiles: %v", err)
	}
	tests := []struct {
		x, y int
		want string
	}{
		{0, 0, "Void"},
		{1, 0, "Wall"},
		{2, 0, "Door"},
		{1, 1, "Floor"},
	}
	for _, tt := range tests {
		if got := maze.TileName(gd.At(pt(tt.x, tt.y))); got != tt.want {
			t.Errorf("tile (%d,%d) = %s, want %s", tt.x, tt.y, got, tt.want)
		}
	}

	bad := []FloorData{
		{},
		{Rows: []string{"##", "#"}},
		{Rows: []string{"#x"}},
	}
	for i, fd := range bad {
		if _, err := fd.Tiles(); !errors.Is(err, ErrBadExport) {
			t.Errorf("bad floor %d: error = %v, want ErrBadExport", i, err)
		}
	}
}

func TestFingerprint(t *testing.T) {
	floors, err := GenerateTower(pt(40, 24), 2, 4, 5)
	if err != nil {
		t.Fatalf("GenerateTower: %v", err)
	}
	a := NewTowerData(floors, Params{Seed: 5})
	b := NewTowerData(floors, Params{Seed: 99, BoxSize: 8})

	fp := Fingerprint(a)
	if len(fp) != 64 || strings.Trim(fp, "0123456789abcdef") != "" {
		t.Errorf("Fingerprint = %q, want 64 hex digits", fp)
	}
	if Fingerprint(b) != fp {
		t.Error("Fingerprint depends on parameters, want layout only")
	}

	b.Floors[0].Rows[1] = strings.Repeat("#", a.Width)
	if Fingerprint(b) == fp {
		t.Error("Fingerprint unchanged after editing a row")
	}
}
