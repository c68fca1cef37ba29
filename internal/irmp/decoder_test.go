package irmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// feedRun drives d with one run: pulseTicks ticks of carrier
// (level=false) followed by pauseTicks ticks of idle (level=true), the
// low-level building block for the hand-assembled waveforms below.
func feedRun(d *Decoder, pulseTicks, pauseTicks uint32) {
	for i := uint32(0); i < pulseTicks; i++ {
		d.Tick(false)
	}
	for i := uint32(0); i < pauseTicks; i++ {
		d.Tick(true)
	}
}

func newTestDecoder(protocols ...Protocol) *Decoder {
	cfg := DefaultConfig()
	cfg.Protocols = protocols
	return NewDecoder(cfg)
}

// encodeDistanceFrame builds the run sequence for a generic
// pulse-distance protocol from its descriptor, MSB/LSB order respected,
// using the descriptor's own nominal (Min+Max)/2 tick width for every
// run so it always lands mid-window regardless of tolerance.
func mid(w Window) uint32 { return (w.Min + w.Max) / 2 }

func encodeDistanceFrame(d *Decoder, p Protocol, bits []int) {
	desc := d.table.Get(p)
	feedRun(d, mid(desc.StartPulse), mid(desc.StartPause))
	for _, b := range bits {
		if b != 0 {
			feedRun(d, mid(desc.Pulse1), mid(desc.Pause1))
		} else {
			feedRun(d, mid(desc.Pulse0), mid(desc.Pause0))
		}
	}
	if desc.StopBit {
		// Stop pulse: any width inside Pulse0, followed by a few idle
		// ticks; finishStopPulse fires on the first of them, so the
		// frame publishes without needing more input.
		for i := uint32(0); i < mid(desc.Pulse0); i++ {
			d.Tick(false)
		}
		for i := uint32(0); i < 3; i++ {
			d.Tick(true)
		}
	}
}

func bitsMSBFirst(v uint32, n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = int((v >> uint(n-1-i)) & 1)
	}
	return out
}

func bitsLSBFirst(v uint32, n int) []int {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = int((v >> uint(i)) & 1)
	}
	return out
}

func TestNECFrame(t *testing.T) {
	d := newTestDecoder(ProtocolNEC)

	// address 0x00FF, command 0x12 (LSB-first, matches spec.md §8
	// scenario 1's frame shape: 16-bit address then 16-bit
	// command/~command pair).
	address := uint32(0x00FF)
	cmdLow := uint32(0x12)
	cmdHigh := (^cmdLow) & 0xFF
	bits := append(bitsLSBFirst(address, 16), bitsLSBFirst(cmdLow, 8)...)
	bits = append(bits, bitsLSBFirst(cmdHigh, 8)...)

	encodeDistanceFrame(d, ProtocolNEC, bits)

	var f Frame
	ok := d.GetData(&f)
	require.True(t, ok, "expected a latched frame")
	assert.Equal(t, ProtocolNEC, f.Protocol)
	assert.Equal(t, uint16(address), f.Address)
	assert.Equal(t, uint16(cmdLow), f.Command)
	assert.Zero(t, f.Flags&FlagCRCError)
}

func TestNECRepeatAfterFrame(t *testing.T) {
	d := newTestDecoder(ProtocolNEC)

	address := uint32(0x00FF)
	cmdLow := uint32(0x12)
	cmdHigh := (^cmdLow) & 0xFF
	bits := append(bitsLSBFirst(address, 16), bitsLSBFirst(cmdLow, 8)...)
	bits = append(bits, bitsLSBFirst(cmdHigh, 8)...)
	encodeDistanceFrame(d, ProtocolNEC, bits)

	var f Frame
	require.True(t, d.GetData(&f))

	rep := d.table.Get(ProtocolNECRepeat)
	feedRun(d, mid(rep.StartPulse), mid(rep.RepeatPause))
	for i := uint32(0); i < mid(rep.StartPulse); i++ {
		d.Tick(false)
	}
	for i := uint32(0); i < 3; i++ {
		d.Tick(true)
	}

	var f2 Frame
	require.True(t, d.GetData(&f2))
	assert.Equal(t, f.Address, f2.Address)
	assert.Equal(t, f.Command, f2.Command)
	assert.NotZero(t, f2.Flags&FlagRepetition)
}

func TestSamsung32Frame(t *testing.T) {
	// Unlike Samsung, Samsung32 has no inverted-command check and
	// publishes its full 16-bit command unreduced, so the two command
	// bytes here are deliberately unrelated.
	d := newTestDecoder(ProtocolSamsung, ProtocolSamsung32)

	address := uint32(0x0707)
	cmdLow := uint32(0x1E)
	cmdHigh := uint32(0x00)
	bits := append(bitsLSBFirst(address, 16), bitsLSBFirst(cmdLow, 8)...)
	bits = append(bits, bitsLSBFirst(cmdHigh, 8)...)

	encodeDistanceFrame(d, ProtocolSamsung32, bits)

	var f Frame
	require.True(t, d.GetData(&f))
	assert.Equal(t, ProtocolSamsung32, f.Protocol)
	assert.Equal(t, uint16(address), f.Address)
	assert.Equal(t, uint16(cmdLow|(cmdHigh<<8)), f.Command)
}

func TestKaseikyoFrame(t *testing.T) {
	d := newTestDecoder(ProtocolKaseikyo)
	desc := d.table.Get(ProtocolKaseikyo)

	bits := make([]int, desc.CompleteLen)
	bits[21] = 1 // one bit set inside the command's high nibble range
	bits[26] = 1 // one bit set inside the command's low byte range
	// Parity byte 5 must equal the XOR of bytes 0..4 (0x20 ^ 0x04).
	bits[42] = 1
	bits[45] = 1

	encodeDistanceFrame(d, ProtocolKaseikyo, bits)

	var f Frame
	require.True(t, d.GetData(&f))
	assert.Equal(t, ProtocolKaseikyo, f.Protocol)
}

func TestRC5Frame(t *testing.T) {
	d := newTestDecoder(ProtocolRC5)
	desc := d.table.Get(ProtocolRC5)

	// Classifier consumes the leading start half-bit; feed it as a
	// short pulse/pause pair (logical 1, no double-length marker).
	feedRun(d, mid(desc.StartPulse), mid(desc.StartPause))

	// Feed the remaining 13 half-bits at the nominal short width.
	// storeManchesterBit's "previous pause short -> repeat last_value"
	// rule means a uniform run of short pulse/pause pairs decodes to a
	// fixed, deterministic bit pattern; this test exercises that the
	// frame completes and latches rather than asserting a specific
	// address/command (spec.md doesn't pin RC5's bit-for-bit mapping
	// down to a single worked example the way it does for NEC).
	for i := 0; i < desc.CompleteLen; i++ {
		feedRun(d, mid(desc.Pulse1), mid(desc.Pause1))
	}
	// RC5 has no stop bit: the frame closes once the trailing pause
	// exceeds twice the half-bit window (checkImpliedStop).
	for i := uint32(0); i < 2*desc.Pause1.Max; i++ {
		d.Tick(true)
	}

	var f Frame
	ok := d.GetData(&f)
	require.True(t, ok, "expected an RC5 frame to latch")
	assert.Equal(t, ProtocolRC5, f.Protocol)
}

// TestToleranceWindowScaling is a property test (spec.md §8's
// "tolerance-scaled waveform decoding" invariant): any NEC frame
// encoded with run widths drawn from inside the descriptor's tolerance
// windows decodes to the same address/command as one encoded at the
// nominal width.
func TestToleranceWindowScaling(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := newTestDecoder(ProtocolNEC)
		desc := d.table.Get(ProtocolNEC)

		address := uint32(rapid.Uint16().Draw(rt, "address"))
		cmdLow := uint32(rapid.Uint8().Draw(rt, "cmd"))
		cmdHigh := (^cmdLow) & 0xFF

		bits := append(bitsLSBFirst(address, 16), bitsLSBFirst(cmdLow, 8)...)
		bits = append(bits, bitsLSBFirst(cmdHigh, 8)...)

		within := func(w Window) uint32 {
			return uint32(rapid.Uint32Range(w.Min, w.Max).Draw(rt, "tick"))
		}

		feedRun(d, within(desc.StartPulse), within(desc.StartPause))
		for _, b := range bits {
			if b != 0 {
				feedRun(d, within(desc.Pulse1), within(desc.Pause1))
			} else {
				feedRun(d, within(desc.Pulse0), within(desc.Pause0))
			}
		}
		for i := uint32(0); i < within(desc.Pulse0); i++ {
			d.Tick(false)
		}
		for i := uint32(0); i < 3; i++ {
			d.Tick(true)
		}

		var f Frame
		require.True(rt, d.GetData(&f))
		assert.Equal(rt, uint16(address), f.Address)
		assert.Equal(rt, uint16(cmdLow), f.Command)
	})
}

// TestGetDataIsIdempotent checks spec.md §3's "observable only once"
// invariant: a second GetData call without an intervening frame
// returns false.
func TestGetDataIsIdempotent(t *testing.T) {
	d := newTestDecoder(ProtocolNEC)
	address := uint32(0x1)
	cmdLow := uint32(0x2)
	cmdHigh := (^cmdLow) & 0xFF
	bits := append(bitsLSBFirst(address, 16), bitsLSBFirst(cmdLow, 8)...)
	bits = append(bits, bitsLSBFirst(cmdHigh, 8)...)
	encodeDistanceFrame(d, ProtocolNEC, bits)

	var f Frame
	require.True(t, d.GetData(&f))
	require.False(t, d.GetData(&f))
}

// TestNoStartPairNeverLatches checks that a run of carrier that never
// resembles any enabled protocol's start window leaves the decoder idle
// and never latches a frame (spec.md §7 "no matching start pair").
func TestNoStartPairNeverLatches(t *testing.T) {
	d := newTestDecoder(ProtocolNEC)
	for i := 0; i < 5; i++ {
		d.Tick(false)
	}
	for i := 0; i < 5; i++ {
		d.Tick(true)
	}
	var f Frame
	assert.False(t, d.GetData(&f))
}
