package main

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"gizmo-overlay/internal/config"
	"gizmo-overlay/internal/debug"
	"gizmo-overlay/internal/demo"
	"gizmo-overlay/internal/gizmo"
	"gizmo-overlay/internal/graphics"
	"gizmo-overlay/internal/logger"
	"gizmo-overlay/internal/rlhost"
	"gizmo-overlay/internal/scene"
	"gizmo-overlay/internal/schedule"
)

func runWindow(cfg config.Config, sink *logger.Logger, log *slog.Logger, connect bool) error {
	host := rlhost.NewBackend(cfg.Meshes)
	scn := scene.New()
	scn.GridVisible = cfg.Debug.GridVisible
	d := demo.New(log, connect)

	opts := append(overlayOptions(cfg, log),
		gizmo.WithCameras(scn),
		gizmo.WithPointer(rlhost.Pointer{}),
		gizmo.WithState(d),
	)
	o := gizmo.New(host, opts...)
	o.RegisterShape(demo.ConeShape, func(gizmo.Backend) (gizmo.MeshHandle, error) {
		return host.AddMesh(rl.GenMeshCone(0.5, 1, int(cfg.Meshes.CapsuleSlices)), mgl32.Vec3{0, 0.5, 0}), nil
	})

	hud := debug.New()
	hud.ShowFPS = cfg.Debug.ShowFPS
	hud.ShowStats = cfg.Debug.ShowStats
	hud.ShowLog = cfg.Debug.ShowLog
	hud.Stats = o.Stats
	hud.Log = sink.Tail

	s := schedule.New()
	o.Install(s)
	s.AddPhase(gizmo.StageUpdate, "scene.update", scn.Update)
	s.AddPhase(gizmo.StageUpdate, "demo.update", func() {
		d.Advance(rl.GetFrameTime())
		d.Submit(o.Queue())
	})
	s.AddPhase(gizmo.StageDraw, "scene.draw", func() {
		host.SetView(scn.ViewPos(), [3]float32{0.5, 1, 0.5})
		scn.Draw(host.Draw)
	})
	s.AddPhase(gizmo.StageDraw, "debug.draw", hud.Draw)

	graphics.Run(cfg.Window, s, func() {
		o.Close()
		host.Close()
		log.Info("window closed", "clicks", d.Clicks())
	})
	return nil
}
