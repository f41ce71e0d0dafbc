// Command towergen generates a level or a tower, prints it, and optionally
// exports it to YAML and records it in the tower archive.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/lawnchairsociety/towergen/internal/config"
	"github.com/lawnchairsociety/towergen/internal/database"
	"github.com/lawnchairsociety/towergen/internal/logger"
	"github.com/lawnchairsociety/towergen/internal/maze"
	"github.com/lawnchairsociety/towergen/internal/render"
	"github.com/lawnchairsociety/towergen/internal/tower"
)

func main() {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	var width, height int
	seed := flag.Int64("seed", 0, "Generation seed (default: random based on current time)")
	flag.IntVar(&width, "x", 0, "Map width (default from config: 80)")
	flag.IntVar(&width, "width", 0, "Alias for -x")
	flag.IntVar(&height, "y", 0, "Map height (default from config: 50)")
	flag.IntVar(&height, "height", 0, "Alias for -y")
	boxSize := flag.Int("box_size", 0, "Nominal room size (default: max(4, (width+height)/16))")
	stories := flag.Int("stories", -1, "Tower stories; 0 generates a single level (default from config)")
	configFile := flag.String("config", "towergen.yaml", "Path to config YAML file")
	ascii := flag.Bool("ascii", false, "Render with ASCII instead of box-drawing characters")
	colored := flag.Bool("color", isTTY, "Colorize output")
	exportFile := flag.String("export", "", "Write the generated floors to this YAML file")
	archive := flag.Bool("archive", false, "Record the generated floors in the tower archive")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fatal("Failed to load config", err)
	}

	logConfig, err := logger.LoadConfig(cfg.LoggingPath(*configFile))
	if err != nil {
		fatal("Failed to load logging config", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		fatal("Failed to initialize logger", err)
	}

	// Flags override config values.
	if width > 0 {
		cfg.Generator.Width = width
	}
	if height > 0 {
		cfg.Generator.Height = height
	}
	if *boxSize > 0 {
		cfg.Generator.BoxSize = *boxSize
	}
	if *stories >= 0 {
		cfg.Generator.Stories = *stories
	}
	if *archive {
		cfg.Archive.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		fatal("Invalid config", err)
	}

	genSeed := *seed
	if genSeed == 0 {
		genSeed = time.Now().UnixNano()
		logger.Always("Seed selected", "seed", genSeed, "random", true)
	} else {
		logger.Always("Seed selected", "seed", genSeed, "random", false)
	}

	towerConfig := cfg.Generator.Tower()
	gen, err := tower.NewGenerator(towerConfig, genSeed)
	if err != nil {
		fatal("Invalid generator settings", err)
	}

	start := time.Now()
	var maps []*maze.BaseMap
	if cfg.Generator.Stories == 0 {
		maps = []*maze.BaseMap{gen.Level()}
	} else {
		t, err := gen.Tower(cfg.Generator.Stories)
		if err != nil {
			fatal("Failed to generate tower", err)
		}
		maps = t.Maps()
	}
	logger.Info("Generated", "floors", len(maps), "elapsed", time.Since(start))

	if isTTY {
		if cols, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && cols < towerConfig.Shape.X {
			logger.Warning("Terminal narrower than the map, lines will wrap", "columns", cols, "width", towerConfig.Shape.X)
		}
	}

	palette := render.Unicode
	if *ascii {
		palette = render.ASCII
	}
	r := render.New(palette, *colored)

	fmt.Printf("seed: %d; x,y=(%d,%d); box_size=%d\n", genSeed, towerConfig.Shape.X, towerConfig.Shape.Y, towerConfig.BoxSize)
	fmt.Print(r.Maps(maps))

	if *exportFile == "" && !cfg.Archive.Enabled {
		return
	}

	data := tower.NewTowerData(maps, tower.Params{Seed: genSeed, BoxSize: towerConfig.BoxSize, Edge: towerConfig.Edge})
	fingerprint := tower.Fingerprint(data)
	fmt.Printf("fingerprint: %s\n", fingerprint)

	if *exportFile != "" {
		if err := tower.SaveTower(*exportFile, data); err != nil {
			fatal("Failed to export tower", err)
		}
		logger.Info("Tower exported", "path", *exportFile)
	}

	if cfg.Archive.Enabled {
		if err := archiveTower(cfg.Database(), data, fingerprint, cfg.Generator.Stories); err != nil {
			fatal("Failed to archive tower", err)
		}
	}
}

func archiveTower(dbConfig database.Config, data tower.TowerData, fingerprint string, stories int) error {
	layout, err := tower.EncodeTower(data)
	if err != nil {
		return err
	}

	db, err := database.Open(dbConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	id, created, err := db.RecordTower(database.TowerRecord{
		Fingerprint: fingerprint,
		Seed:        data.Seed,
		Width:       data.Width,
		Height:      data.Height,
		BoxSize:     data.BoxSize,
		Stories:     stories,
		Edge:        data.Edge,
		Layout:      string(layout),
	})
	if err != nil {
		return err
	}
	if created {
		logger.Info("Tower archived", "id", id, "driver", dbConfig.Driver)
	} else {
		logger.Info("Tower already archived", "id", id, "driver", dbConfig.Driver)
	}
	return nil
}

func fatal(msg string, err error) {
	logger.Error(msg, "error", err)
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
