package tcell

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/raycaster/internal/render"
)

// Terminals report presses and auto-repeats but never releases, so a key
// counts as held for a while after each event. The first event holds longer
// to bridge the auto-repeat delay.
const (
	// DefaultInitialHold is how long a fresh press counts as held.
	DefaultInitialHold = 600 * time.Millisecond
	// DefaultHoldTime is how long a key stays held after an auto-repeat.
	DefaultHoldTime = 150 * time.Millisecond
	// DefaultRepeatDelay is the longest gap between two events of one key
	// that still reads as auto-repeat rather than a new press.
	DefaultRepeatDelay = 700 * time.Millisecond
)

type keyState struct {
	deadline time.Time // held until
	last     time.Time // most recent event
}

// InputManager latches terminal key events into held and just-pressed state.
// Events arrive on the poll goroutine; queries come from the game loop.
type InputManager struct {
	mu          sync.Mutex
	keys        map[render.Key]keyState
	just        map[render.Key]bool
	initialHold time.Duration
	holdTime    time.Duration
	repeatDelay time.Duration
	now         func() time.Time
}

// NewInputManager creates an input manager using the default timings.
func NewInputManager() *InputManager {
	return &InputManager{
		keys:        make(map[render.Key]keyState),
		just:        make(map[render.Key]bool),
		initialHold: DefaultInitialHold,
		holdTime:    DefaultHoldTime,
		repeatDelay: DefaultRepeatDelay,
		now:         time.Now,
	}
}

// Press records a key event. An auto-repeat of a held key extends the hold
// without counting as a new press.
func (m *InputManager) Press(k render.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	st, ok := m.keys[k]
	if !ok || now.Sub(st.last) > m.repeatDelay {
		m.just[k] = true
		st.deadline = now.Add(m.initialHold)
	} else if d := now.Add(m.holdTime); d.After(st.deadline) {
		st.deadline = d
	}
	st.last = now
	m.keys[k] = st
}

// IsKeyPressed returns whether k is within its hold window.
func (m *InputManager) IsKeyPressed(k render.Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.keys[k]
	return ok && m.now().Before(st.deadline)
}

// IsKeyJustPressed returns whether k was pressed since the last EndFrame.
func (m *InputManager) IsKeyJustPressed(k render.Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.just[k]
}

// EndFrame clears just-pressed state and forgets keys idle past the repeat
// delay.
func (m *InputManager) EndFrame() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.just)
	now := m.now()
	for k, st := range m.keys {
		if now.Sub(st.last) > m.repeatDelay && !now.Before(st.deadline) {
			delete(m.keys, k)
		}
	}
}

// translateKey maps a tcell key and rune to a render.Key.
func translateKey(key tcell.Key, r rune) (render.Key, bool) {
	switch key {
	case tcell.KeyUp:
		return render.KeyUp, true
	case tcell.KeyDown:
		return render.KeyDown, true
	case tcell.KeyLeft:
		return render.KeyLeft, true
	case tcell.KeyRight:
		return render.KeyRight, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return render.KeyEscape, true
	case tcell.KeyRune:
	default:
		return 0, false
	}

	switch r {
	case 'w', 'W':
		return render.KeyW, true
	case 'a', 'A':
		return render.KeyA, true
	case 's', 'S':
		return render.KeyS, true
	case 'd', 'D':
		return render.KeyD, true
	case 'l', 'L':
		return render.KeyL, true
	case 'm', 'M':
		return render.KeyM, true
	case ' ':
		return render.KeySpace, true
	case 'q', 'Q':
		return render.KeyEscape, true
	default:
		return 0, false
	}
}
