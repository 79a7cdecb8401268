package rlhost

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Pointer reads the mouse. raylib already reports button presses as edges, once per frame.
type Pointer struct{}

// CursorPosition returns the mouse position in window pixels, or false when it is off the window.
func (Pointer) CursorPosition() (mgl32.Vec2, bool) {
	if !rl.IsCursorOnScreen() {
		return mgl32.Vec2{}, false
	}
	p := rl.GetMousePosition()
	return mgl32.Vec2{p.X, p.Y}, true
}

// PrimaryJustPressed reports a left button press this frame.
func (Pointer) PrimaryJustPressed() bool {
	return rl.IsMouseButtonPressed(rl.MouseButtonLeft)
}
