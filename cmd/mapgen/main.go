// Command mapgen renders a tower exported by towergen.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/lawnchairsociety/towergen/internal/render"
	"github.com/lawnchairsociety/towergen/internal/tower"
)

func main() {
	inputFile := flag.String("input", "tower.yaml", "Path to exported tower YAML file")
	floorNum := flag.Int("floor", -1, "Floor number to display (-1 for all floors)")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	ascii := flag.Bool("ascii", false, "Render with ASCII instead of box-drawing characters")
	colored := flag.Bool("color", term.IsTerminal(int(os.Stdout.Fd())), "Colorize output (ignored with -output)")
	showLegend := flag.Bool("legend", true, "Show legend")
	flag.Parse()

	data, err := tower.LoadTower(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading tower: %v\n", err)
		os.Exit(1)
	}

	floors, err := selectFloors(data, *floorNum)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	palette := render.Unicode
	if *ascii {
		palette = render.ASCII
	}
	r := render.New(palette, *colored && *outputFile == "")

	var output strings.Builder
	fmt.Fprintf(&output, "Tower (seed: %d, %dx%d, box_size: %d, floors: %d)\n",
		data.Seed, data.Width, data.Height, data.BoxSize, len(data.Floors))
	fmt.Fprintf(&output, "Saved: %s\n", data.SavedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&output, "Fingerprint: %s\n", tower.Fingerprint(data))
	output.WriteString(strings.Repeat("=", max(data.Width, 40)) + "\n")

	for i, f := range floors {
		fd := data.Floors[f.index]
		fmt.Fprintf(&output, "Floor %d (%d rooms, %d walls)\n", fd.Number, len(fd.Rooms), len(fd.Walls))
		output.WriteString(r.Floor(f.floor))
		if i < len(floors)-1 {
			output.WriteString("\n")
		}
	}

	if *showLegend {
		output.WriteString(legend(palette))
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", *outputFile)
	} else {
		fmt.Print(output.String())
	}
}

type selected struct {
	index int
	floor render.Floor
}

// selectFloors rebuilds the drawable floors of data, all of them when
// number is negative.
func selectFloors(data tower.TowerData, number int) ([]selected, error) {
	var floors []selected
	for i, fd := range data.Floors {
		if number >= 0 && fd.Number != number {
			continue
		}
		tiles, err := fd.Tiles()
		if err != nil {
			return nil, err
		}
		f := render.Floor{Tiles: tiles}
		if fd.Entry != nil {
			f.Entry, f.HasEntry = fd.Entry.Point(), true
		}
		if fd.Exit != nil {
			f.Exit, f.HasExit = fd.Exit.Point(), true
		}
		floors = append(floors, selected{index: i, floor: f})
	}
	if len(floors) == 0 {
		return nil, fmt.Errorf("no floor %d in a tower of %d floors", number, len(data.Floors))
	}
	return floors, nil
}

func legend(p render.Palette) string {
	return fmt.Sprintf(`
Legend:
  %c  Entry (stair down, or the entrance on the ground floor)
  %c  Exit (stair up)
  %c  Floor
  %c  Wall
  %c %c Door
`, p.Entry, p.Exit, p.Floor, p.Walls[15], p.DoorH, p.DoorV)
}
