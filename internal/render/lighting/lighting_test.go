package lighting

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/raycaster/internal/core/geom"
)

func TestManagerLightLifecycle(t *testing.T) {
	m := NewManager()
	if _, ok := m.Light(); ok {
		t.Fatal("Expected no light on a new manager")
	}

	m.SetLight(geom.Vector2{X: 450, Y: 250}, 1, colorful.Color{R: 1, G: 1, B: 1})
	light, ok := m.Light()
	if !ok {
		t.Fatal("Expected SetLight to enable the light")
	}
	if light.Position != (geom.Vector2{X: 450, Y: 250}) {
		t.Errorf("Expected light at (450, 250), got %+v", light.Position)
	}

	if m.ToggleLight() {
		t.Error("Expected toggle to switch the light off")
	}
	if _, ok := m.Light(); ok {
		t.Error("Expected no active light while switched off")
	}
	if !m.HasLight() {
		t.Error("Expected HasLight while switched off")
	}
	if !m.ToggleLight() {
		t.Error("Expected toggle to switch the light back on")
	}

	m.MoveLight(geom.Vector2{X: 10, Y: 20})
	light, _ = m.Light()
	if light.Position != (geom.Vector2{X: 10, Y: 20}) {
		t.Errorf("Expected moved light, got %+v", light.Position)
	}

	m.RemoveLight()
	if m.IsLightOn() {
		t.Error("Expected RemoveLight to switch the light off")
	}
}

func TestNilManagerHasNoLight(t *testing.T) {
	var m *Manager
	if _, ok := m.Light(); ok {
		t.Error("Expected a nil manager to report no light")
	}
}

func TestAmbientLightClamped(t *testing.T) {
	m := NewManager()
	if m.AmbientLight() != DefaultAmbientLight {
		t.Errorf("Expected default ambient %v, got %v", DefaultAmbientLight, m.AmbientLight())
	}
	m.SetAmbientLight(2)
	if m.AmbientLight() != 1 {
		t.Errorf("Expected ambient clamped to 1, got %v", m.AmbientLight())
	}
	m.SetAmbientLight(-1)
	if m.AmbientLight() != 0 {
		t.Errorf("Expected ambient clamped to 0, got %v", m.AmbientLight())
	}
}

func TestShade(t *testing.T) {
	wall := colorful.Color{R: 0.8, G: 0.4, B: 0.2}

	m := NewManager()
	if got := m.Shade(wall, true); got != wall {
		t.Errorf("Expected no shading without a light, got %v", got)
	}

	m.SetLight(geom.Vector2{}, 1, colorful.Color{R: 1, G: 1, B: 1})
	m.SetAmbientLight(0.5)

	if got := m.Shade(wall, false); !got.AlmostEqualRgb(wall) {
		t.Errorf("Expected a white light to leave the colour unchanged, got %v", got)
	}
	got := m.Shade(wall, true)
	if math.Abs(got.R-0.4) > 1e-9 || math.Abs(got.G-0.2) > 1e-9 || math.Abs(got.B-0.1) > 1e-9 {
		t.Errorf("Expected half brightness in shadow, got %v", got)
	}
}
