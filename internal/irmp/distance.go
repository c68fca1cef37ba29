package irmp

// Purpose:	Pulse-distance decoder family (spec.md §4.4): NEC, NEC16,
//		NEC42, SIRCS's sibling protocols that share pulse-distance
//		timing, Samsung, Matsushita, Kaseikyo, RECS80/EXT, Denon,
//		Thomson, FDC, RCCAR, JVC, Nikon, Kathrein, LEGO.
//
// Description:	Each subsequent (pulse, pause) run is classified by
//		comparing it against the active descriptor's pulse/pause
//		windows for bit value 1 then bit value 0. Bit storage
//		respects LSBFirst (spec.md §4.4).

func (d *Decoder) storeDistanceBit(pulseTicks, pauseTicks uint32) {
	a := &d.active

	var bit int
	switch {
	case a.Pulse1.Contains(pulseTicks) && a.Pause1.Contains(pauseTicks):
		bit = 1
	case a.Pulse0.Contains(pulseTicks) && a.Pause0.Contains(pauseTicks):
		bit = 0
	default:
		if d.tryDistancePromotion(pulseTicks, pauseTicks) {
			return
		}
		d.abortFrame()
		return
	}

	d.storeBitAt(d.bitIndex, bit, a)
	d.bitIndex++

	d.tryMidFramePromotion()

	if d.bitIndex >= a.CompleteLen {
		if a.StopBit {
			d.awaitingStop = true
		} else {
			d.completeFrame()
		}
	}
}

// accumulate folds one bit into an accumulator at relative position
// relPos, respecting bit order (spec.md §4.4: "LSB-first shifts ORing
// into progressively higher positions; MSB-first left-shifts the
// accumulator and ORs into bit 0").
func accumulate(acc *uint32, relPos, bit int, lsbFirst bool) {
	if lsbFirst {
		if bit != 0 {
			*acc |= 1 << uint(relPos)
		}
		return
	}
	*acc = (*acc << 1) | uint32(bit&1)
}

// storeBitAt routes one decoded bit into the address/command
// accumulators (and protocol-specific extra accumulators), per the
// active descriptor's field ranges and the special cases spec.md §4.4
// documents by name.
func (d *Decoder) storeBitAt(pos, bit int, a *Descriptor) {
	switch a.Protocol {
	case ProtocolNEC42:
		if pos >= 13 && pos < 25 {
			accumulate(&d.tmpAddress2, pos-13, bit, a.LSBFirst)
			return
		}

	case ProtocolSamsung, ProtocolSamsung32:
		const samsungIDOffset = 16
		const samsungIDLen = 4
		if pos >= samsungIDOffset && pos < samsungIDOffset+samsungIDLen {
			accumulate(&d.tmpID, pos-samsungIDOffset, bit, a.LSBFirst)
		}

	case ProtocolKaseikyo:
		if pos < len(d.xorCheck)*8 {
			byteIx, bitIx := pos/8, pos%8
			if bit != 0 {
				d.xorCheck[byteIx] |= 1 << uint(bitIx)
			}
		}
		if pos >= 20 && pos < 24 {
			if bit != 0 {
				d.tmpCommand |= 1 << uint(8+(pos-20))
			}
			return
		}
	}

	if !emptyRange(a.AddressOffset, a.AddressEnd) && pos >= a.AddressOffset && pos < a.AddressEnd {
		accumulate(&d.tmpAddress, pos-a.AddressOffset, bit, a.LSBFirst)
	}
	if !emptyRange(a.CommandOffset, a.CommandEnd) && pos >= a.CommandOffset && pos < a.CommandEnd {
		accumulate(&d.tmpCommand, pos-a.CommandOffset, bit, a.LSBFirst)
	}
}

// tryDistancePromotion handles the documented special cases where a
// run matches neither the bit-1 nor bit-0 window outright but still
// identifies a valid mid-frame protocol promotion (spec.md §4.8),
// rather than a timing error.
func (d *Decoder) tryDistancePromotion(pulseTicks, pauseTicks uint32) bool {
	a := &d.active

	switch a.Protocol {
	case ProtocolSamsung:
		if d.bitIndex == 16 && (a.Pulse1.Contains(pulseTicks) || a.Pulse0.Contains(pulseTicks)) {
			if s32 := d.table.Get(ProtocolSamsung32); s32 != nil {
				geom := *s32
				geom.Protocol = ProtocolSamsung32
				d.active = geom
				bit := 0
				if a.Pulse1.Contains(pulseTicks) {
					bit = 1
				}
				d.storeBitAt(d.bitIndex, bit, &d.active)
				d.bitIndex++
				if d.bitIndex >= d.active.CompleteLen {
					d.awaitingStop = d.active.StopBit
					if !d.active.StopBit {
						d.completeFrame()
					}
				}
				return true
			}
		}

	case ProtocolNEC, ProtocolNEC42:
		if d.bitIndex == 8 {
			if nec := d.table.Get(ProtocolNEC); nec != nil && nec.StartPause.Contains(pauseTicks) &&
				a.Pulse0.Contains(pulseTicks) {
				if nec16 := d.table.Get(ProtocolNEC16); nec16 != nil {
					preservedAddr := d.tmpAddress
					geom := *nec16
					d.active = geom
					d.tmpAddress = preservedAddr
					d.bitIndex = 8
					return true
				}
			}
		}

		if a.Protocol == ProtocolNEC42 && d.bitIndex == 16 && a.Pulse0.Contains(pulseTicks) {
			d.promoteNEC42ToJVC()
			d.completeFrame()
			return true
		}
		if a.Protocol == ProtocolNEC42 && d.bitIndex == 32 && a.Pulse0.Contains(pulseTicks) {
			d.promoteNEC42ToNEC()
			d.completeFrame()
			return true
		}
		if a.Protocol == ProtocolNEC && (d.bitIndex == 16 || d.bitIndex == 17) &&
			a.Pulse0.Contains(pulseTicks) && d.prevCompletedProtocol == ProtocolJVC {
			d.promoteNECToJVC()
			d.completeFrame()
			return true
		}
	}

	return false
}

// tryMidFramePromotion is called after every successfully stored bit
// to apply promotions that trigger on reaching a specific bit index
// rather than on a failed timing match (spec.md §4.8).
func (d *Decoder) tryMidFramePromotion() {
	d.applyPromotions()
}
