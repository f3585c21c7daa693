package viewer

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func key(sym sdl.Keycode) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sym}}
}

func button(typ uint32, b uint8, x, y int32) *sdl.MouseButtonEvent {
	return &sdl.MouseButtonEvent{Type: typ, Button: b, X: x, Y: y}
}

func TestTranslateKeys(t *testing.T) {
	tests := []struct {
		sym  sdl.Keycode
		want Action
	}{
		{sdl.K_c, ActionDrawCircle},
		{sdl.K_g, ActionToggleGrid},
		{sdl.K_s, ActionExport},
		{sdl.K_t, ActionTransfer},
		{sdl.K_6, ActionCubeToEquirect},
		{sdl.K_ESCAPE, ActionQuit},
	}
	in := NewInput()
	for _, tt := range tests {
		got, ok := in.translate(key(tt.sym))
		if !ok || got.Action != tt.want {
			t.Errorf("key %v -> %v (%v), want %v", tt.sym, got.Action, ok, tt.want)
		}
	}

	if _, ok := in.translate(key(sdl.K_z)); ok {
		t.Error("unbound key produced an event")
	}
	repeat := key(sdl.K_c)
	repeat.Repeat = 1
	if _, ok := in.translate(repeat); ok {
		t.Error("key repeat produced an event")
	}
	if _, ok := in.translate(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Sym: sdl.K_c}}); ok {
		t.Error("key release produced an event")
	}
}

func TestTranslateDrag(t *testing.T) {
	in := NewInput()

	if _, ok := in.translate(&sdl.MouseMotionEvent{X: 5, Y: 5, XRel: 1}); ok {
		t.Error("motion without a button produced an event")
	}
	if _, ok := in.translate(button(sdl.MOUSEBUTTONDOWN, sdl.BUTTON_LEFT, 10, 10)); ok {
		t.Error("left press should not emit an event by itself")
	}

	got, ok := in.translate(&sdl.MouseMotionEvent{X: 14, Y: 7, XRel: 4, YRel: -3})
	if !ok || got.Action != ActionDrag || got.DX != 4 || got.DY != -3 {
		t.Errorf("drag motion = %+v, %v", got, ok)
	}

	// right button is ignored while dragging
	if _, ok := in.translate(button(sdl.MOUSEBUTTONDOWN, sdl.BUTTON_RIGHT, 14, 7)); ok {
		t.Error("stroke started during drag")
	}

	got, ok = in.translate(button(sdl.MOUSEBUTTONUP, sdl.BUTTON_LEFT, 14, 7))
	if !ok || got.Action != ActionDragEnd {
		t.Errorf("release = %+v, %v", got, ok)
	}
	if _, ok := in.translate(&sdl.MouseMotionEvent{XRel: 1}); ok {
		t.Error("motion after release produced an event")
	}
}

func TestTranslateStroke(t *testing.T) {
	in := NewInput()
	got, ok := in.translate(button(sdl.MOUSEBUTTONDOWN, sdl.BUTTON_RIGHT, 3, 4))
	if !ok || got.Action != ActionStrokeBegin || got.X != 3 || got.Y != 4 {
		t.Fatalf("right press = %+v, %v", got, ok)
	}
	got, ok = in.translate(&sdl.MouseMotionEvent{X: 8, Y: 9})
	if !ok || got.Action != ActionStroke || got.X != 8 || got.Y != 9 {
		t.Errorf("stroke motion = %+v, %v", got, ok)
	}
	got, ok = in.translate(button(sdl.MOUSEBUTTONUP, sdl.BUTTON_RIGHT, 8, 9))
	if !ok || got.Action != ActionStrokeEnd {
		t.Errorf("right release = %+v, %v", got, ok)
	}
}

func TestTranslateWheelAndWindow(t *testing.T) {
	in := NewInput()
	got, ok := in.translate(&sdl.MouseWheelEvent{Y: 2})
	if !ok || got.Action != ActionZoom || got.Zoom != 2 {
		t.Errorf("wheel = %+v, %v", got, ok)
	}
	got, _ = in.translate(&sdl.MouseWheelEvent{Y: 1, Direction: sdl.MOUSEWHEEL_FLIPPED})
	if got.Zoom != -1 {
		t.Errorf("flipped wheel zoom = %v, want -1", got.Zoom)
	}

	got, ok = in.translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600})
	if !ok || got.Action != ActionResize || got.Width != 800 || got.Height != 600 {
		t.Errorf("resize = %+v, %v", got, ok)
	}
	if got, ok := in.translate(&sdl.QuitEvent{}); !ok || got.Action != ActionQuit {
		t.Errorf("quit = %+v, %v", got, ok)
	}
}

func TestFlipRows(t *testing.T) {
	// two rows, bottom row first
	pixels := []byte{
		1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4,
	}
	img := FlipRows(pixels, 2, 2)
	if img.Pix[0] != 3 || img.Pix[4] != 4 || img.Pix[8] != 1 || img.Pix[12] != 2 {
		t.Errorf("unexpected rows %v", img.Pix)
	}
}

func TestActionString(t *testing.T) {
	if ActionCubeToEquirect.String() != "cube-to-equirect" || Action(99).String() != "unknown" {
		t.Error("unexpected action names")
	}
}
