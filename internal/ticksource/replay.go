package ticksource

// Purpose:	Drive a Sink from a pre-parsed waveform sample sequence
//		instead of a live receiver, for offline analysis
//		(cmd/irmp-analyze) and replay-file runs of cmd/irmpd,
//		through the same entry point a live driver would use.

import (
	"context"
	"time"

	"github.com/wk2k/irmp-go/internal/waveform"
)

// Replay feeds a fixed slice of samples to a Sink, either as fast as
// possible (Run) or paced at a given sample rate (RunPaced, useful for
// a demo that wants to visibly match real time).
type Replay struct {
	samples []waveform.Sample
	sink    Sink
}

// NewReplay builds a Replay over samples, calling sink for each.
func NewReplay(samples []waveform.Sample, sink Sink) *Replay {
	return &Replay{samples: samples, sink: sink}
}

// Run feeds every sample to the sink immediately, returning the number
// of ticks on which the sink reported a latched frame.
func (r *Replay) Run() int {
	latched := 0
	for _, s := range r.samples {
		if r.sink(s.Level) {
			latched++
		}
	}
	return latched
}

// RunPaced is like Run but sleeps between samples to approximate
// fInterrupts Hz real time; ctx cancellation stops early.
func (r *Replay) RunPaced(ctx context.Context, fInterrupts int) (int, error) {
	if fInterrupts <= 0 {
		fInterrupts = 10000
	}
	interval := time.Second / time.Duration(fInterrupts)
	latched := 0
	for _, s := range r.samples {
		select {
		case <-ctx.Done():
			return latched, ctx.Err()
		default:
		}
		if r.sink(s.Level) {
			latched++
		}
		time.Sleep(interval)
	}
	return latched, nil
}
