package schedule

import (
	"sort"
	"sync"

	"gizmo-overlay/internal/gizmo"
)

// Phase is one named function run once per tick.
type Phase struct {
	Stage gizmo.Stage
	Name  string
	Run   func()
}

// Schedule runs phases stage by stage (pre-update, update, post-update, draw), in
// registration order within a stage. It implements gizmo.Scheduler.
type Schedule struct {
	mu     sync.Mutex
	phases []Phase
}

// New returns an empty schedule.
func New() *Schedule {
	return &Schedule{}
}

// AddPhase appends fn to stage. nil functions are ignored.
func (s *Schedule) AddPhase(stage gizmo.Stage, name string, fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phases = append(s.phases, Phase{Stage: stage, Name: name, Run: fn})
	// stable: keeps registration order inside a stage
	sort.SliceStable(s.phases, func(i, j int) bool { return s.phases[i].Stage < s.phases[j].Stage })
}

// Phases returns the phases in run order.
func (s *Schedule) Phases() []Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Phase(nil), s.phases...)
}

// Run executes one tick. Phases added while running take effect next tick.
func (s *Schedule) Run() {
	for _, p := range s.Phases() {
		p.Run()
	}
}

// RunStage executes only the phases of one stage. Hosts that split update and draw
// (e.g. raylib's BeginDrawing/EndDrawing) use this.
func (s *Schedule) RunStage(stage gizmo.Stage) {
	for _, p := range s.Phases() {
		if p.Stage == stage {
			p.Run()
		}
	}
}
