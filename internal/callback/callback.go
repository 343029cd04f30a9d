// Package callback provides diagnostic observers for the callbacks module.
package callback

import (
	"github.com/pierremaillar/rodsim/internal/simulation"
	"github.com/pierremaillar/rodsim/internal/vecmat"
)

// Sample is one recorded observation of a system.
type Sample struct {
	Time       float64
	Step       int
	Positions  []vecmat.Vec3
	Velocities []vecmat.Vec3
}

// Recorder samples node positions and velocities every SkipSteps steps into
// an in-memory history. State is copied at observation time; samples never
// alias the live arrays.
type Recorder struct {
	SkipSteps int
	History   []Sample
}

// NewRecorder records every skipSteps-th step (every step when skipSteps
// is <= 1).
func NewRecorder(skipSteps int) *Recorder {
	if skipSteps < 1 {
		skipSteps = 1
	}
	return &Recorder{SkipSteps: skipSteps}
}

// Factory adapts the recorder to the callbacks module.
func (r *Recorder) Factory() simulation.CallbackFactory {
	return func(simulation.System) (simulation.Callback, error) {
		return r, nil
	}
}

func (r *Recorder) Observe(sys simulation.System, time float64, step int) {
	if step%r.SkipSteps != 0 {
		return
	}
	s := Sample{
		Time:       time,
		Step:       step,
		Positions:  append([]vecmat.Vec3(nil), sys.Positions()...),
		Velocities: append([]vecmat.Vec3(nil), sys.Velocities()...),
	}
	r.History = append(r.History, s)
}

// TipSeries extracts a single coordinate of the last node over the recorded
// history, handy for plotting.
func (r *Recorder) TipSeries(axis int) []float64 {
	out := make([]float64, 0, len(r.History))
	for _, s := range r.History {
		if len(s.Positions) == 0 {
			continue
		}
		out = append(out, s.Positions[len(s.Positions)-1][axis])
	}
	return out
}
