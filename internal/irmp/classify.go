package irmp

// Purpose:	Start-bit classifier (spec.md §4.3).
//
// Description:	Given the first (pulse, pause) pair observed after
//		Idle, select a candidate protocol by walking the fixed
//		priority order (table.go classifyOrder) and taking the
//		first whose start pulse *and* start pause windows both
//		cover the observed values. Ties are never re-evaluated;
//		the only way the active candidate later changes is an
//		explicit promotion (promote.go).
func (d *Decoder) classify(pulseTicks, pauseTicks uint32) bool {
	for _, p := range d.table.classifyOrd {
		desc := d.table.Get(p)
		if desc == nil {
			continue
		}

		switch p {
		case ProtocolNEC:
			if desc.StartPulse.Contains(pulseTicks) {
				if rep := d.table.Get(ProtocolNECRepeat); rep != nil &&
					rep.StartPulse.Contains(pulseTicks) && rep.RepeatPause.Contains(pauseTicks) {
					d.installCandidate(*rep)
					d.awaitingStop = true
					return true
				}
				if desc.StartPause.Contains(pauseTicks) {
					if d.prevCompletedProtocol == ProtocolJVC {
						// JVC continuation (spec.md §4.3): pulse
						// matches NEC, pause matches JVC's repeat
						// start; load NEC to decode the upcoming
						// frame as a JVC repeat.
						if jvc := d.table.Get(ProtocolJVC); jvc != nil && jvc.RepeatPause.Contains(pauseTicks) {
							d.installCandidate(*desc)
							return true
						}
					}
					d.installCandidate(*desc)
					return true
				}
			}

		case ProtocolRC5:
			if desc.StartPulse.Contains(pulseTicks) && desc.StartPause.Contains(pauseTicks) {
				d.installRC5Start(*desc, pulseTicks, pauseTicks)
				// RC5 overlaps FDC/RCCAR start timing: install
				// whichever of those is also enabled as a
				// secondary shadow candidate (spec.md §4.3).
				if fdc := d.table.Get(ProtocolFDC); fdc != nil &&
					fdc.StartPulse.Contains(pulseTicks) && fdc.StartPause.Contains(pauseTicks) {
					d.installSecondary(*fdc)
				} else if rccar := d.table.Get(ProtocolRCCAR); rccar != nil &&
					rccar.StartPulse.Contains(pulseTicks) && rccar.StartPause.Contains(pauseTicks) {
					d.installSecondary(*rccar)
				}
				return true
			}

		case ProtocolGrundig:
			if desc.StartPulse.Contains(pulseTicks) && desc.StartPause.Contains(pauseTicks) {
				d.installCandidate(*desc)
				d.lastValue = true
				d.lastPause = pauseTicks
				return true
			}

		case ProtocolRuwido:
			if desc.StartPulse.Contains(pulseTicks) && desc.StartPause.Contains(pauseTicks) {
				d.installCandidate(*desc)
				d.lastValue = true
				d.lastPause = pauseTicks
				return true
			}

		default:
			if desc.StartPulse.Contains(pulseTicks) && desc.StartPause.Contains(pauseTicks) {
				d.installCandidate(*desc)
				return true
			}
		}
	}
	return false
}

func (d *Decoder) installCandidate(desc Descriptor) {
	d.active = desc
	d.bitIndex = 0
	d.tmpAddress, d.tmpCommand = 0, 0
	d.tmpAddress2, d.tmpCommand2 = 0, 0
	d.tmpID = 0
	d.xorCheck = [6]byte{}
	d.secActive = false
	d.secondary = nil
	d.firstBit = 0
	d.rc5CmdBit6 = 0
	d.lastValue = false
}

func (d *Decoder) installSecondary(desc Descriptor) {
	cp := desc
	d.secondary = &cp
	d.secActive = true
	d.secBitIx = 0
	d.secAddress, d.secCommand = 0, 0
}

// installRC5Start applies spec.md §4.3's "RC5 double-length start"
// rule: if the observed pulse or pause is near 2x the half-bit window,
// the inferred first bit is 0 and the inverted MSB holder is set;
// otherwise the first bit is 1.
func (d *Decoder) installRC5Start(desc Descriptor, pulseTicks, pauseTicks uint32) {
	d.installCandidate(desc)
	doubleLen := desc.Pulse1.Max + desc.Pulse1.Max/2
	if pulseTicks > doubleLen || pauseTicks > doubleLen {
		d.lastValue = false
		d.rc5CmdBit6 = 1
	} else {
		d.lastValue = true
		d.rc5CmdBit6 = 0
	}
	// The start pulse itself is the first Manchester half-bit; prime
	// bitIndex so the *next* delivered run resumes mid-symbol.
	d.bitIndex = 0
}
