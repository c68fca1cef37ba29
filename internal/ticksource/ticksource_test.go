package ticksource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wk2k/irmp-go/internal/waveform"
)

func TestReplayRun(t *testing.T) {
	samples := []waveform.Sample{{Level: false}, {Level: false}, {Level: true}}
	var got []bool
	r := NewReplay(samples, func(level bool) bool {
		got = append(got, level)
		return false
	})
	latched := r.Run()
	assert.Equal(t, 0, latched)
	require.Len(t, got, 3)
	assert.Equal(t, []bool{false, false, true}, got)
}

func TestReplayRunCountsLatches(t *testing.T) {
	samples := []waveform.Sample{{Level: false}, {Level: true}, {Level: false}}
	i := 0
	r := NewReplay(samples, func(level bool) bool {
		i++
		return i%2 == 0
	})
	assert.Equal(t, 1, r.Run())
}

func TestTimerRunRespectsContext(t *testing.T) {
	calls := 0
	tm := NewTimer(100000, func() (bool, error) { return true, nil }, func(bool) bool {
		calls++
		return false
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := tm.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, calls, 0)
}
