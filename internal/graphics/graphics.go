package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"gizmo-overlay/internal/config"
	"gizmo-overlay/internal/gizmo"
	"gizmo-overlay/internal/schedule"
)

// Run opens the window and drives s once per frame until the window is closed: the
// pre-update, update and post-update stages first, then the draw stage between
// BeginDrawing and EndDrawing. shutdown runs before the window and its GL context go away.
func Run(w config.Window, s *schedule.Schedule, shutdown func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()
	if shutdown != nil {
		defer shutdown()
	}
	rl.SetTargetFPS(w.TargetFPS)

	for !rl.WindowShouldClose() {
		s.RunStage(gizmo.StagePreUpdate)
		s.RunStage(gizmo.StageUpdate)
		s.RunStage(gizmo.StagePostUpdate)

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 24, 28, 255))
		s.RunStage(gizmo.StageDraw)
		rl.EndDrawing()
	}
}
