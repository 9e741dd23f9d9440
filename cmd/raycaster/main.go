package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"chosenoffset.com/raycaster/internal/game"
	"chosenoffset.com/raycaster/internal/render"
	ebitenrender "chosenoffset.com/raycaster/internal/render/ebiten"
	tcellrender "chosenoffset.com/raycaster/internal/render/tcell"
	"chosenoffset.com/raycaster/internal/simulation"
	"chosenoffset.com/raycaster/internal/world/levels"
	"chosenoffset.com/raycaster/internal/world/maploader"
)

const (
	backendEbiten = "ebiten"
	backendTcell  = "tcell"
)

// options holds the parsed command line.
type options struct {
	level     string
	config    string
	data      string
	list      bool
	backend   string
	style     string
	fov       float64
	shadows   bool
	collision string
	debug     bool

	// set records which flags were given explicitly.
	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("raycaster", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{set: make(map[string]bool)}
	fs.StringVar(&opts.level, "level", "", "level name from the data directory or path to a level file")
	fs.StringVar(&opts.config, "config", "config.json", "path to the JSON config")
	fs.StringVar(&opts.data, "data", "data", "data directory scanned for levels")
	fs.BoolVar(&opts.list, "list", false, "list available levels and exit")
	fs.StringVar(&opts.backend, "backend", backendEbiten, "presentation backend: ebiten or tcell")
	fs.StringVar(&opts.style, "style", game.StyleAtlas, "wall style: atlas or color")
	fs.Float64Var(&opts.fov, "fov", 0, "horizontal field of view in degrees")
	fs.BoolVar(&opts.shadows, "shadows", true, "cast shadow rays towards the level light")
	fs.StringVar(&opts.collision, "collision", "", "collision mode: slide or assert")
	fs.BoolVar(&opts.debug, "debug", false, "enable invariant assertions, FPS and minimap")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	switch opts.backend {
	case backendEbiten, backendTcell:
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.backend)
	}
	return opts, nil
}

// applyOverrides copies explicitly set flags onto cfg and revalidates it.
func applyOverrides(cfg *simulation.Config, opts *options) error {
	if opts.set["fov"] {
		cfg.Render.FOVDegrees = opts.fov
	}
	if opts.set["shadows"] {
		cfg.Render.Shadows = opts.shadows
	}
	if opts.set["collision"] {
		mode, err := simulation.ParseCollisionMode(opts.collision)
		if err != nil {
			return err
		}
		cfg.Movement.Collision = mode
	}
	if opts.debug {
		cfg.Debug.AssertInvariants = true
		cfg.Debug.ShowFPS = true
		cfg.Debug.Minimap = true
		cfg.Debug.Crosshair = true
	}
	return cfg.Validate()
}

// resolveLevel finds the level file for query. A query naming an existing
// file is used as is; otherwise it is looked up by name in the data
// directory. An empty query picks the first level found.
func resolveLevel(dataDir, query string) (string, error) {
	if query != "" {
		if info, err := os.Stat(query); err == nil && !info.IsDir() {
			return query, nil
		}
	}

	found, err := levels.ScanDataDirectory(dataDir)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return "", fmt.Errorf("no levels found in %s", dataDir)
	}
	if query == "" {
		return found[0].Path, nil
	}
	e, ok := levels.Find(found, query)
	if !ok {
		return "", fmt.Errorf("level %q not found in %s", query, dataDir)
	}
	return e.Path, nil
}

func listLevels(w io.Writer, dataDir string) error {
	found, err := levels.ScanDataDirectory(dataDir)
	if err != nil {
		return err
	}
	for _, e := range found {
		fmt.Fprintf(w, "%-20s %-9s %s\n", e.Name, e.Format, e.Path)
	}
	return nil
}

func newEngine(backend string) render.Engine {
	if backend == backendTcell {
		return tcellrender.NewEngine()
	}
	return ebitenrender.NewEngine()
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if opts.list {
		if err := listLevels(os.Stdout, opts.data); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if f := setupLogging(opts.backend, opts.debug); f != nil {
		defer f.Close()
	}

	cfg, err := simulation.LoadConfig(opts.config)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := applyOverrides(cfg, opts); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	levelPath, err := resolveLevel(opts.data, opts.level)
	if err != nil {
		log.Fatalf("Failed to find level: %v", err)
	}
	log.Printf("Loading level %s", levelPath)
	level, err := maploader.Load(levelPath, cfg.Caster.CellSize)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}

	engine := newEngine(opts.backend)
	style, wallAtlas, err := game.LoadWallStyle(opts.style, level, engine.Loader())
	if err != nil {
		log.Fatalf("Failed to load wall style: %v", err)
	}

	g, err := game.New(level, cfg, style, engine.Input())
	if err != nil {
		log.Fatalf("Failed to start level: %v", err)
	}
	g.Atlas = wallAtlas

	engine.SetWindowSize(cfg.Screen.Width*cfg.Screen.Scale, cfg.Screen.Height*cfg.Screen.Scale)
	engine.SetWindowTitle(fmt.Sprintf("%s - %s", cfg.Screen.Title, filepath.Base(level.Name)))
	engine.SetWindowResizable(true)

	log.Printf("Starting %s on the %s backend", level.Name, opts.backend)
	if err := engine.RunGame(g); err != nil {
		if errors.Is(err, simulation.ErrPlayerInWall) || errors.Is(err, simulation.ErrPlayerOutOfBounds) {
			log.Fatalf("Invariant violated: %v", err)
		}
		log.Fatal(err)
	}
	log.Println("Exited cleanly")
}
