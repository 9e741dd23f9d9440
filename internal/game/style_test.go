package game

import (
	"testing"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/render/view"
)

func TestLoadWallStyle(t *testing.T) {
	level := testLevel(t, geom.Vector2{X: 450, Y: 450}, 0)

	style, a, err := LoadWallStyle(StyleColor, level, nil)
	if err != nil {
		t.Fatalf("LoadWallStyle(color) failed: %v", err)
	}
	if _, ok := style.(*view.ColorStyle); !ok {
		t.Errorf("Expected *view.ColorStyle, got %T", style)
	}
	if a != nil {
		t.Error("Expected no atlas for the colour style")
	}

	style, a, err = LoadWallStyle(StyleAtlas, level, nil)
	if err != nil {
		t.Fatalf("LoadWallStyle(atlas) failed: %v", err)
	}
	if _, ok := style.(*view.AtlasStyle); !ok {
		t.Errorf("Expected *view.AtlasStyle, got %T", style)
	}
	if a == nil || !a.Has(1) {
		t.Error("Expected the placeholder atlas to cover wall value 1")
	}

	if _, _, err := LoadWallStyle("plasma", level, nil); err == nil {
		t.Error("Expected an error for an unknown style")
	}
}
