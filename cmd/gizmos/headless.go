package main

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"gizmo-overlay/internal/config"
	"gizmo-overlay/internal/demo"
	"gizmo-overlay/internal/gizmo"
	"gizmo-overlay/internal/headless"
	"gizmo-overlay/internal/schedule"
)

const headlessStep = float32(1) / 60

// runHeadless drives the demo for ticks ticks with producers goroutines submitting
// alongside it. A scripted pointer clicks the sphere every second.
func runHeadless(cfg config.Config, log *slog.Logger, ticks, producers int, connect bool) error {
	b := headless.NewBackend()
	d := demo.New(log, connect)
	cam := headless.NewCamera(mgl32.Vec3{0, 8, 12}, mgl32.Vec3{}, float32(cfg.Window.Width), float32(cfg.Window.Height))
	ptr := &headless.Pointer{}

	opts := append(overlayOptions(cfg, log),
		gizmo.WithCameras(cam),
		gizmo.WithPointer(ptr),
		gizmo.WithState(d),
	)
	o := gizmo.New(b, opts...)
	defer o.Close()
	o.RegisterShape(demo.ConeShape, func(be gizmo.Backend) (gizmo.MeshHandle, error) {
		return be.CreateMesh(gizmo.MeshDesc{Primitive: gizmo.ShapeCustom})
	})

	var tick int
	s := schedule.New()
	o.Install(s)
	s.AddPhase(gizmo.StageUpdate, "demo.update", func() {
		// aim at the sphere spawned this tick and press once a second
		if pos, ok := cam.WorldToViewport(d.Position(0)); ok {
			ptr.MoveTo(pos)
		} else {
			ptr.Leave()
		}
		ptr.SetDown(tick%60 == 0)
		ptr.Poll()
		d.Advance(headlessStep)
		d.Submit(o.Queue())
	})

	for ; tick < ticks; tick++ {
		// producers submit concurrently and must finish before the tick drains
		var g errgroup.Group
		for p := 0; p < producers; p++ {
			g.Go(func() error {
				d.SubmitRing(o.Queue(), p, 12)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		s.Run()
	}

	st := o.Stats()
	fmt.Printf("ticks=%d objects=%d persistent=%d materials=%d meshes=%d registrations=%d dropped=%d clicks=%d\n",
		st.Ticks, st.Objects, st.Persistent, st.Materials, st.Meshes, st.Registrations, st.Dropped, d.Clicks())
	return nil
}
