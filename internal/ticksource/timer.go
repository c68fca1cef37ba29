// Package ticksource provides reference drivers for irmp.Decoder.Tick:
// a GPIO poller, a software timer, and a waveform-file replay source.
// None of this is part of the decoder core (spec.md §1 scopes "the
// board-specific signal-acquisition glue" out) — these are the
// external collaborators spec.md says to "specify only interfaces"
// for, built here as concrete reference implementations the way the
// teacher's cmd/ tools exercise src/'s IO code.
package ticksource

import (
	"context"
	"time"
)

// Sink receives one sample per call; irmp.Decoder.Tick has exactly
// this signature, so the method value decoder.Tick can be passed
// directly as a Sink.
type Sink func(level bool) bool

// Level is anything that can report the current instantaneous IR
// receiver level — a GPIO line or a software test fixture. Replay
// (replay.go) does not use Level; it feeds its samples to the Sink
// directly.
type Level func() (bool, error)

// Timer drives sink at a fixed rate read from level, the software
// equivalent of the hardware timer interrupt spec.md §5 assumes.
// Grounded on BigBossBoolingB-VDATABPro's devices/pit.go: an emulated
// Intel 8254 PIT that ticks a counter and invokes a callback at a
// programmed rate. Here the "programmed rate" is F_INTERRUPTS and the
// "callback" is sink.
type Timer struct {
	interval time.Duration
	level    Level
	sink     Sink
}

// NewTimer builds a Timer that samples level and calls sink
// fInterrupts times per second.
func NewTimer(fInterrupts int, level Level, sink Sink) *Timer {
	if fInterrupts <= 0 {
		fInterrupts = 10000
	}
	return &Timer{
		interval: time.Second / time.Duration(fInterrupts),
		level:    level,
		sink:     sink,
	}
}

// Run blocks, ticking sink at the configured rate until ctx is
// cancelled. Errors from level are treated as "no carrier" (level=true)
// for that sample — a transient read failure should not wedge the
// decoder into believing a pulse never ended.
func (t *Timer) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			lvl, err := t.level()
			if err != nil {
				lvl = true
			}
			t.sink(lvl)
		}
	}
}
