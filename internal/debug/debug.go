package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gizmo-overlay/internal/gizmo"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	logSize    = 14
	logLines   = 8
	// updateInterval: text is rebuilt every N frames to limit allocations.
	updateInterval = 30
)

// Debug draws the on-screen HUD: FPS and overlay statistics top-right, the log tail
// bottom-left. Everything is off until enabled.
type Debug struct {
	ShowFPS   bool
	ShowStats bool
	ShowLog   bool

	// Stats and Log feed the HUD; either may be nil.
	Stats func() gizmo.Stats
	Log   func(n int) []string

	frameCount uint32
	lines      []string
}

// New returns a HUD with every panel hidden.
func New() *Debug {
	return &Debug{}
}

// Draw renders the enabled panels. Call last in the draw stage, outside 3D mode.
func (d *Debug) Draw() {
	d.frameCount++
	if d.frameCount%updateInterval == 1 || d.lines == nil {
		d.lines = d.text()
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range d.lines {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}

	if d.ShowLog && d.Log != nil {
		tail := d.Log(logLines)
		y = int32(rl.GetScreenHeight()) - padding - int32(len(tail))*(logSize+2)
		for _, line := range tail {
			rl.DrawText(line, padding, y, logSize, rl.LightGray)
			y += logSize + 2
		}
	}
}

func (d *Debug) text() []string {
	lines := []string{}
	if d.ShowFPS {
		lines = append(lines, fmt.Sprintf("FPS: %d", rl.GetFPS()))
	}
	if d.ShowStats && d.Stats != nil {
		st := d.Stats()
		lines = append(lines,
			fmt.Sprintf("Gizmos: %d (%d persistent)", st.Objects, st.Persistent),
			fmt.Sprintf("Materials: %d  Meshes: %d", st.Materials, st.Meshes),
			fmt.Sprintf("Interactive: %d (%d orphaned)", st.Registrations, st.Orphaned),
			fmt.Sprintf("Dropped: %d  Panics: %d", st.Dropped, st.Panics),
		)
	}
	return lines
}
