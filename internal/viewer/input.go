package viewer

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is an editor command produced from input.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResize
	ActionDrag
	ActionDragEnd
	ActionStrokeBegin
	ActionStroke
	ActionStrokeEnd
	ActionZoom
	ActionDrawCircle
	ActionToggleGrid
	ActionExport
	ActionTransfer
	ActionCubeToEquirect
	ActionScreenshot
)

var actionNames = map[Action]string{
	ActionNone:           "none",
	ActionQuit:           "quit",
	ActionResize:         "resize",
	ActionDrag:           "drag",
	ActionDragEnd:        "drag-end",
	ActionStrokeBegin:    "stroke-begin",
	ActionStroke:         "stroke",
	ActionStrokeEnd:      "stroke-end",
	ActionZoom:           "zoom",
	ActionDrawCircle:     "draw-circle",
	ActionToggleGrid:     "toggle-grid",
	ActionExport:         "export",
	ActionTransfer:       "transfer",
	ActionCubeToEquirect: "cube-to-equirect",
	ActionScreenshot:     "screenshot",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// Event is one translated input event. Only the fields relevant to Action are
// set: X/Y for pointer positions, DX/DY for drags, Zoom for wheel notches and
// Width/Height for resizes.
type Event struct {
	Action        Action
	X, Y          float64
	DX, DY        float64
	Zoom          float64
	Width, Height int
}

// keyActions binds keys to editor commands.
var keyActions = map[sdl.Keycode]Action{
	sdl.K_ESCAPE: ActionQuit,
	sdl.K_c:      ActionDrawCircle,
	sdl.K_g:      ActionToggleGrid,
	sdl.K_s:      ActionExport,
	sdl.K_t:      ActionTransfer,
	sdl.K_6:      ActionCubeToEquirect,
	sdl.K_p:      ActionScreenshot,
}

// Input turns SDL events into editor events. The left button drags the view,
// the right button paints.
type Input struct {
	events   []Event
	dragging bool
	stroking bool
}

// NewInput creates an input translator.
func NewInput() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update polls pending SDL events. It returns true when the window was asked
// to close.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if e, ok := i.translate(ev); ok {
			i.events = append(i.events, e)
			quit = quit || e.Action == ActionQuit
		}
	}
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

func (i *Input) translate(ev sdl.Event) (Event, bool) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return Event{Action: ActionQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED || e.Event == sdl.WINDOWEVENT_RESIZED {
			return Event{Action: ActionResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return Event{}, false
		}
		if a, ok := keyActions[e.Keysym.Sym]; ok {
			return Event{Action: a}, true
		}

	case *sdl.MouseButtonEvent:
		x, y := float64(e.X), float64(e.Y)
		down := e.Type == sdl.MOUSEBUTTONDOWN
		switch {
		case e.Button == sdl.BUTTON_LEFT && down && !i.stroking:
			i.dragging = true
		case e.Button == sdl.BUTTON_LEFT && !down && i.dragging:
			i.dragging = false
			return Event{Action: ActionDragEnd, X: x, Y: y}, true
		case e.Button == sdl.BUTTON_RIGHT && down && !i.dragging:
			i.stroking = true
			return Event{Action: ActionStrokeBegin, X: x, Y: y}, true
		case e.Button == sdl.BUTTON_RIGHT && !down && i.stroking:
			i.stroking = false
			return Event{Action: ActionStrokeEnd, X: x, Y: y}, true
		}

	case *sdl.MouseMotionEvent:
		switch {
		case i.dragging:
			return Event{Action: ActionDrag, X: float64(e.X), Y: float64(e.Y), DX: float64(e.XRel), DY: float64(e.YRel)}, true
		case i.stroking:
			return Event{Action: ActionStroke, X: float64(e.X), Y: float64(e.Y)}, true
		}

	case *sdl.MouseWheelEvent:
		notches := float64(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			notches = -notches
		}
		if notches != 0 {
			return Event{Action: ActionZoom, Zoom: notches}, true
		}
	}
	return Event{}, false
}
