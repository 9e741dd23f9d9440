package game

import (
	"fmt"
	"log"

	"chosenoffset.com/raycaster/internal/placeholders"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/view"
	"chosenoffset.com/raycaster/internal/world/atlas"
	"chosenoffset.com/raycaster/internal/world/maploader"
)

// Wall style names accepted by LoadWallStyle.
const (
	StyleAtlas = "atlas"
	StyleColor = "color"
)

// LoadWallStyle builds the wall style for a level. The atlas style uses the
// level's atlas when it names one and the generated placeholder atlas
// otherwise. The returned atlas is nil for the colour style.
func LoadWallStyle(name string, level *maploader.Level, loader render.ResourceLoader) (view.WallStyle, *atlas.Atlas, error) {
	switch name {
	case StyleColor:
		values := level.Grid.Values()
		return view.NewColorStyle(values...), nil, nil
	case StyleAtlas, "":
	default:
		return nil, nil, fmt.Errorf("unknown wall style %q", name)
	}

	if level.AtlasPath == "" {
		log.Printf("Level %s has no atlas, using generated placeholder walls", level.Name)
		a, err := placeholders.WallAtlas()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build placeholder atlas: %w", err)
		}
		return view.NewAtlasStyle(a), a, nil
	}

	a, err := atlas.LoadAtlas(level.AtlasPath, loader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load atlas for level %s: %w", level.Name, err)
	}
	for _, v := range level.Grid.Values() {
		if !a.Has(int(v)) {
			log.Printf("WARNING: wall value %d has no tile in atlas %s", v, a.Config.Name)
		}
	}
	return view.NewAtlasStyle(a), a, nil
}
