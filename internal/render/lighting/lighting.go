package lighting

import (
	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/raycaster/internal/core/geom"
)

// DefaultAmbientLight is the brightness left on surfaces that are in shadow.
const DefaultAmbientLight = 0.15

// LightSource is a point light in world space.
type LightSource struct {
	Position  geom.Vector2   // World position (in world units)
	Intensity float64        // Light intensity (0.0 to 1.0)
	Color     colorful.Color // Light color
}

// Manager holds the level's shadow-casting light and the global ambient level.
type Manager struct {
	light        *LightSource
	lightOn      bool
	ambientLight float64 // Global ambient light level (0.0 = pitch black, 1.0 = fully lit)
}

// NewManager creates a lighting manager with no light.
func NewManager() *Manager {
	return &Manager{ambientLight: DefaultAmbientLight}
}

// SetAmbientLight sets the global ambient light level, clamped to [0, 1].
func (m *Manager) SetAmbientLight(level float64) {
	m.ambientLight = min(max(level, 0), 1)
}

// AmbientLight returns the current ambient light level.
func (m *Manager) AmbientLight() float64 {
	return m.ambientLight
}

// SetLight places the light and turns it on.
func (m *Manager) SetLight(pos geom.Vector2, intensity float64, col colorful.Color) {
	m.light = &LightSource{Position: pos, Intensity: intensity, Color: col}
	m.lightOn = true
}

// MoveLight repositions the light. It does nothing when no light is set.
func (m *Manager) MoveLight(pos geom.Vector2) {
	if m.light != nil {
		m.light.Position = pos
	}
}

// RemoveLight drops the light (called when loading a new level).
func (m *Manager) RemoveLight() {
	m.light = nil
	m.lightOn = false
}

// EnableLight turns the light on or off.
func (m *Manager) EnableLight(enabled bool) {
	m.lightOn = enabled
}

// ToggleLight flips the light and returns the new state.
func (m *Manager) ToggleLight() bool {
	m.lightOn = !m.lightOn
	return m.lightOn
}

// HasLight reports whether a light is set, on or off.
func (m *Manager) HasLight() bool {
	return m != nil && m.light != nil
}

// IsLightOn returns whether the light is on.
func (m *Manager) IsLightOn() bool {
	return m.lightOn
}

// Light returns the active light. ok is false when there is no light or it
// is switched off.
func (m *Manager) Light() (light LightSource, ok bool) {
	if m == nil || m.light == nil || !m.lightOn {
		return LightSource{}, false
	}
	return *m.light, true
}

// Shade darkens a surface colour towards black, leaving the ambient share of
// its brightness. Lit surfaces are tinted by the light colour scaled by its
// intensity.
func (m *Manager) Shade(c colorful.Color, shadowed bool) colorful.Color {
	light, ok := m.Light()
	if !ok {
		return c
	}
	if shadowed {
		return colorful.Color{}.BlendRgb(c, m.ambientLight)
	}
	tint := colorful.Color{R: 1, G: 1, B: 1}.BlendRgb(light.Color, light.Intensity)
	return colorful.Color{R: c.R * tint.R, G: c.G * tint.G, B: c.B * tint.B}
}
