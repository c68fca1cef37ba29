package irmp

// Purpose:	Pulse-width decoder family (spec.md §4.5): Nubert, SIRCS.
//
// Description:	Same run-pair consumption as the pulse-distance family,
//		but the bit value comes from the *pulse* duration; 0 and 1
//		use distinct pulse widths and distinct (but usually
//		similar) pause widths. SIRCS additionally has a variable
//		frame length of 12, 15, or 20 bits, closed by an
//		over-long pause once at least 12 bits have been received.
func (d *Decoder) storePulseWidthBit(pulseTicks, pauseTicks uint32) {
	a := &d.active

	var bit int
	switch {
	case a.Pulse1.Contains(pulseTicks):
		bit = 1
	case a.Pulse0.Contains(pulseTicks):
		bit = 0
	default:
		d.abortFrame()
		return
	}

	if a.Protocol != ProtocolSIRCS && !a.Pause0.Contains(pauseTicks) && !a.Pause1.Contains(pauseTicks) {
		d.abortFrame()
		return
	}

	d.storeBitAt(d.bitIndex, bit, a)
	d.bitIndex++

	if a.Protocol == ProtocolSIRCS {
		d.maybeCloseSIRCS(pauseTicks)
		return
	}

	if d.bitIndex >= a.CompleteLen {
		d.completeFrame()
	}
}

// maybeCloseSIRCS implements spec.md §4.5's variable SIRCS frame
// length: the frame closes once a pause exceeds pause_max and at least
// 12 bits have been received, packing the extra bit count (beyond the
// nominal 12) into the upper byte of tmp_address. The command window
// is not widened: it stays bits 0..6, and bits past index 11 land in
// neither the address nor the command.
func (d *Decoder) maybeCloseSIRCS(pauseTicks uint32) {
	const sircsMinLen = 12
	const sircsMaxLen = 20

	if pauseTicks > d.active.Pause0.Max && d.bitIndex >= sircsMinLen {
		extra := d.bitIndex - sircsMinLen
		d.tmpAddress |= uint32(extra) << 8
		d.completeFrame()
		return
	}
	if d.bitIndex >= sircsMaxLen {
		d.completeFrame()
	}
}
