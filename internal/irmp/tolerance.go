package irmp

// Purpose:	Scale nominal per-protocol microsecond timings into
//		integer tick windows for a given sample rate.
//
// Description:	spec.md §9 ("Tolerance arithmetic") calls out that the
//		source computes window bounds from floating-point
//		constants with a round-to-nearest "+0.5" cast to an
//		8-bit integer, and recommends a reimplementation
//		precompute these as integer constants at build time to
//		preserve exact boundary behavior. Config is a runtime
//		value here (F_INTERRUPTS is configurable, not a #define),
//		so "build time" becomes "once, at table-build time" —
//		BuildTable is called exactly once per Decoder
//		construction, never per tick.
//
//		The narrow 8-bit pause counter the source uses for most
//		protocols, conditionally widened to 16 bits for Bang &
//		Olufsen and Nikon, is replaced unconditionally by a
//		wider integer type (§9, "8- vs 16-bit pause counters") —
//		the narrow type was a microcontroller RAM optimization
//		that has no bearing on a hosted Go implementation.
type Window struct {
	Min uint32
	Max uint32
}

// Contains reports whether ticks falls within the inclusive window.
// A Window whose Max is 0 is treated as "never matches" (used for
// unused bounds in sparse descriptors).
func (w Window) Contains(ticks uint32) bool {
	if w.Max == 0 {
		return false
	}
	return ticks >= w.Min && ticks <= w.Max
}

// ticksFor converts a nominal microsecond duration to a tick count at
// the given sample rate, rounding to nearest (the "+0.5" cast from the
// source).
func ticksFor(us float64, fInterrupts int) uint32 {
	t := us*float64(fInterrupts)/1_000_000 + 0.5
	if t < 0 {
		return 0
	}
	return uint32(t)
}

// scaledWindow computes a tolerance window around a nominal microsecond
// value. tolMinPct/tolMaxPct are percentages (5, 10, 20, 30, 40, 50, 60,
// 70 are the values the source's per-protocol tables actually use —
// spec.md §4.2); asymmetric tolerances are common (e.g. a pause's lower
// bound kept tight while its upper bound is loose) because adjacent
// protocols' windows are deliberately tuned not to collide.
func scaledWindow(nominalUs float64, tolMinPct, tolMaxPct int, fInterrupts int) Window {
	min := ticksFor(nominalUs*(1-float64(tolMinPct)/100), fInterrupts)
	max := ticksFor(nominalUs*(1+float64(tolMaxPct)/100), fInterrupts)
	if min > 0 {
		min--
	}
	return Window{Min: min, Max: max}
}

// fixedWindow is for bounds that are not computed from tolerance
// percentages but given directly in microseconds (RC6's start pulse and
// start pause, nominal ± 266 µs). The SIRCS start-pause tightening uses
// scaledWindow with a 5% upper tolerance instead.
func fixedWindow(minUs, maxUs float64, fInterrupts int) Window {
	return Window{Min: ticksFor(minUs, fInterrupts), Max: ticksFor(maxUs, fInterrupts)}
}
