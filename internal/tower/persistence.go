package tower

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
	"github.com/lawnchairsociety/towergen/internal/maze"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// ErrBadExport is returned when an exported tower does not describe a valid
// set of floors.
var ErrBadExport = errors.New("tower: malformed export")

// Tile codes used in exported rows.
const (
	CodeVoid  = ' '
	CodeWall  = '#'
	CodeFloor = '.'
	CodeDoor  = '+'
)

// Params are the generation parameters recorded with an export.
type Params struct {
	Seed    int64
	BoxSize int
	Edge    float64
}

// TowerData represents the serialized tower structure for export.
type TowerData struct {
	Seed    int64       `yaml:"seed"`
	Width   int         `yaml:"width"`
	Height  int         `yaml:"height"`
	BoxSize int         `yaml:"box_size"`
	Edge    float64     `yaml:"edge"`
	SavedAt time.Time   `yaml:"saved_at"`
	Floors  []FloorData `yaml:"floors"`
}

// FloorData represents a serialized floor. Rows hold one character per tile.
type FloorData struct {
	Number int        `yaml:"number"`
	Entry  *PointData `yaml:"entry,omitempty"`
	Exit   *PointData `yaml:"exit,omitempty"`
	Rows   []string   `yaml:"rows"`
	Rooms  []RoomData `yaml:"rooms"`
	Walls  []WallData `yaml:"walls"`
}

// PointData is a serialized tile position.
type PointData struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// RoomData represents a serialized room.
type RoomData struct {
	ID          int    `yaml:"id"`
	Size        int    `yaml:"size"`
	Bounds      [4]int `yaml:"bounds,flow"` // min x, min y, max x, max y
	Connections []int  `yaml:"connections,flow,omitempty"`
}

// WallData represents a serialized wall. B is 0 for an exterior wall.
type WallData struct {
	A       int        `yaml:"a"`
	B       int        `yaml:"b"`
	Area    int        `yaml:"area"`
	Doorway *PointData `yaml:"doorway,omitempty"`
}

func pointData(p gruid.Point, ok bool) *PointData {
	if !ok {
		return nil
	}
	return &PointData{X: p.X, Y: p.Y}
}

// Point converts back to a grid point.
func (p PointData) Point() gruid.Point {
	return gruid.Point{X: p.X, Y: p.Y}
}

// NewTowerData serializes floors, ground floor first.
func NewTowerData(maps []*maze.BaseMap, params Params) TowerData {
	data := TowerData{
		Seed:    params.Seed,
		BoxSize: params.BoxSize,
		Edge:    params.Edge,
		SavedAt: time.Now().UTC(),
		Floors:  make([]FloorData, 0, len(maps)),
	}
	if len(maps) > 0 {
		size := maps[0].Size()
		data.Width, data.Height = size.X, size.Y
	}
	for i, m := range maps {
		data.Floors = append(data.Floors, serializeFloor(i, m))
	}
	return data
}

// serializeFloor converts a floor map to FloorData
func serializeFloor(number int, m *maze.BaseMap) FloorData {
	size := m.Size()
	fd := FloorData{
		Number: number,
		Entry:  pointData(m.Entry()),
		Exit:   pointData(m.Exit()),
		Rows:   make([]string, size.Y),
	}

	var sb strings.Builder
	for y := 0; y < size.Y; y++ {
		sb.Reset()
		for x := 0; x < size.X; x++ {
			sb.WriteByte(tileCode(m.At(gruid.Point{X: x, Y: y})))
		}
		fd.Rows[y] = sb.String()
	}

	for _, r := range m.Rooms() {
		bb := r.Bounds()
		rd := RoomData{
			ID:     int(r.ID()),
			Size:   r.Size(),
			Bounds: [4]int{bb.Min.X, bb.Min.Y, bb.Max.X, bb.Max.Y},
		}
		for _, c := range r.ConnectionIDs() {
			rd.Connections = append(rd.Connections, int(c))
		}
		fd.Rooms = append(fd.Rooms, rd)
	}

	for _, w := range m.Walls() {
		wd := WallData{A: int(w.A()), Area: w.Area(), Doorway: pointData(w.Doorway())}
		if id, ok := w.B().Room(); ok {
			wd.B = int(id)
		}
		fd.Walls = append(fd.Walls, wd)
	}
	return fd
}

func tileCode(c rl.Cell) byte {
	switch c {
	case maze.TileWall:
		return CodeWall
	case maze.TileFloor:
		return CodeFloor
	case maze.TileDoor:
		return CodeDoor
	default:
		return CodeVoid
	}
}

// Tiles rebuilds the tile grid of an exported floor.
func (fd FloorData) Tiles() (rl.Grid, error) {
	if len(fd.Rows) == 0 {
		return rl.Grid{}, fmt.Errorf("%w: floor %d has no rows", ErrBadExport, fd.Number)
	}
	width := len(fd.Rows[0])
	gd := rl.NewGrid(width, len(fd.Rows))
	for y, row := range fd.Rows {
		if len(row) != width {
			return rl.Grid{}, fmt.Errorf("%w: floor %d row %d has width %d, want %d", ErrBadExport, fd.Number, y, len(row), width)
		}
		for x := 0; x < len(row); x++ {
			var c rl.Cell
			switch row[x] {
			case CodeVoid:
				c = maze.TileVoid
			case CodeWall:
				c = maze.TileWall
			case CodeFloor:
				c = maze.TileFloor
			case CodeDoor:
				c = maze.TileDoor
			default:
				return rl.Grid{}, fmt.Errorf("%w: floor %d has unknown tile %q at (%d,%d)", ErrBadExport, fd.Number, row[x], x, y)
			}
			gd.Set(gruid.Point{X: x, Y: y}, c)
		}
	}
	return gd, nil
}

// EncodeTower marshals tower data to YAML.
func EncodeTower(data TowerData) ([]byte, error) {
	out, err := yaml.Marshal(&data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tower data: %w", err)
	}
	return out, nil
}

// DecodeTower parses and checks YAML tower data.
func DecodeTower(in []byte) (TowerData, error) {
	var data TowerData
	if err := yaml.Unmarshal(in, &data); err != nil {
		return TowerData{}, fmt.Errorf("failed to parse tower YAML: %w", err)
	}
	for i, fd := range data.Floors {
		if fd.Number != i {
			return TowerData{}, fmt.Errorf("%w: floor %d stored at position %d", ErrBadExport, fd.Number, i)
		}
		if len(fd.Rows) != data.Height || (data.Height > 0 && len(fd.Rows[0]) != data.Width) {
			return TowerData{}, fmt.Errorf("%w: floor %d is not %dx%d", ErrBadExport, i, data.Width, data.Height)
		}
	}
	return data, nil
}

// SaveTower writes tower data to a YAML file.
func SaveTower(filename string, data TowerData) error {
	out, err := EncodeTower(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, out, 0644); err != nil {
		return fmt.Errorf("failed to write tower file: %w", err)
	}
	return nil
}

// LoadTower reads tower data from a YAML file.
func LoadTower(filename string) (TowerData, error) {
	in, err := os.ReadFile(filename)
	if err != nil {
		return TowerData{}, fmt.Errorf("failed to read tower file: %w", err)
	}
	return DecodeTower(in)
}

// Fingerprint identifies a layout: the hex blake2b-256 digest of its size,
// rows and stair positions. Save time and generation parameters are not
// part of it, so the same layout always gets the same fingerprint.
func Fingerprint(data TowerData) string {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err) // only fails for an oversized key
	}
	fmt.Fprintf(h, "%dx%d\n", data.Width, data.Height)
	for _, fd := range data.Floors {
		fmt.Fprintf(h, "floor %d %s %s\n", fd.Number, pointKey(fd.Entry), pointKey(fd.Exit))
		for _, row := range fd.Rows {
			h.Write([]byte(row))
			h.Write([]byte{'\n'})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func pointKey(p *PointData) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// TowerFileExists checks if a tower export file exists
func TowerFileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
