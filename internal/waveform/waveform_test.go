package waveform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuns(t *testing.T) {
	in := "___---\n__----\n"
	runs, err := ParseRuns(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, Run{PulseTicks: 3, PauseTicks: 3 + newlineGapTicks}, runs[0])
	assert.Equal(t, Run{PulseTicks: 2, PauseTicks: 4 + newlineGapTicks}, runs[1])
}

func TestParseAcceptsAlternateGlyphs(t *testing.T) {
	samples, err := Parse(strings.NewReader("001011"))
	require.NoError(t, err)
	want := []bool{false, false, true, false, true, true}
	require.Len(t, samples, len(want))
	for i, w := range want {
		assert.Equal(t, w, samples[i].Level, "sample %d", i)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(strings.NewReader("__xx--"))
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	runs := []Run{{PulseTicks: 90, PauseTicks: 45}, {PulseTicks: 6, PauseTicks: 17}}
	s := EncodeString(runs)
	got, err := ParseRuns(strings.NewReader(s))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, runs[0].PulseTicks, got[0].PulseTicks)
	assert.Equal(t, runs[1].PulseTicks, got[1].PulseTicks)
}
