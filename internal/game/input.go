package game

import (
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/simulation"
)

// Key bindings for continuous movement. Arrows and WASD are equivalent.
var (
	turnLeftKeys  = []render.Key{render.KeyLeft, render.KeyA}
	turnRightKeys = []render.Key{render.KeyRight, render.KeyD}
	forwardKeys   = []render.Key{render.KeyUp, render.KeyW}
	backKeys      = []render.Key{render.KeyDown, render.KeyS}
)

// ReadInput samples the held movement keys.
func ReadInput(in render.InputManager) simulation.InputState {
	return simulation.InputState{
		TurnLeft:  anyPressed(in, turnLeftKeys),
		TurnRight: anyPressed(in, turnRightKeys),
		Forward:   anyPressed(in, forwardKeys),
		Back:      anyPressed(in, backKeys),
	}
}

func anyPressed(in render.InputManager, keys []render.Key) bool {
	for _, k := range keys {
		if in.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
