package irmp

// Purpose:	Per-protocol post-decode validation and field extraction
//		(spec.md §4.9). Checksums, parity, and toggle/release bits
//		are all applied here, at frame-completion time, rather than
//		mixed into the tick-time bit stores.
//
// Description:	validate takes the raw (address, command) pair
//		accumulated from the bitstream plus whatever
//		protocol-specific scratch state was collected alongside it,
//		and returns the frame IRMP actually publishes. A protocol
//		that fails an integrity check it cannot recover from is
//		dropped silently (ok=false); one whose check is advisory
//		only publishes anyway with Flags marking the failure, so a
//		caller that doesn't care about CRCs still gets the frame.
func (d *Decoder) validate(f Frame) (Frame, bool) {
	switch f.Protocol {
	case ProtocolNEC:
		// The command field is transmitted twice, the second time
		// bitwise-complemented; a frame that doesn't round-trip is
		// either an Apple frame (identified by its fixed address)
		// or garbage.
		cmdLow := uint16(d.tmpCommand & 0xFF)
		cmdHigh := uint16((d.tmpCommand >> 8) & 0xFF)
		if cmdHigh == (^cmdLow)&0xFF {
			f.Command = cmdLow
			return f, true
		}
		if d.tmpAddress == 0x87EE {
			f.Protocol = ProtocolApple
			f.Address = uint16((d.tmpCommand & 0xFF00) >> 8)
			f.Command = uint16(d.tmpCommand & 0x00FF)
			return f, true
		}
		return f, false

	case ProtocolNEC16, ProtocolNEC42, ProtocolJVC, ProtocolApple, ProtocolSamsung32:
		return f, true

	case ProtocolSamsung:
		cmdLow := uint16(d.tmpCommand & 0xFF)
		cmdHigh := uint16((d.tmpCommand >> 8) & 0xFF)
		if cmdHigh != (^cmdLow)&0xFF {
			return f, false
		}
		f.Command = cmdLow | (uint16(d.tmpID&0xFF) << 8)
		return f, true

	case ProtocolKaseikyo:
		var parity byte
		for i := 0; i < 5; i++ {
			parity ^= d.xorCheck[i]
		}
		if parity != d.xorCheck[5] {
			return f, false
		}
		return f, true

	case ProtocolRC5:
		// Clear the toggle bit folded into bit 5 of the 6-bit raw
		// address accumulator (classify.go installRC5Start /
		// storeManchesterBit stored toggle as the MSB of that
		// 6-bit field).
		f.Address = uint16(d.tmpAddress &^ 0x20)
		return f, true

	case ProtocolSiemens, ProtocolRuwido:
		// Bit 0 is a repeat indicator that must equal the complement
		// of bit 1; a frame that fails this check is dropped rather
		// than shifted and published.
		if (d.tmpCommand>>1)&1 != (^d.tmpCommand)&1 {
			return f, false
		}
		f.Command = uint16(d.tmpCommand >> 1)
		return f, true

	case ProtocolIR60:
		if f.Command == 0x7D {
			return f, false
		}
		return f, true

	case ProtocolGrundig, ProtocolNokia:
		if f.Command == 0 && f.Address == 0 {
			// All-zero command is the Grundig/Nokia start frame,
			// never a real keypress.
			return f, false
		}
		return f, true

	case ProtocolKathrein:
		if f.Command == 0 {
			return f, false
		}
		return f, true

	case ProtocolRCCAR:
		// The 13 raw bits interleave a 2-bit channel field with an
		// 8-bit data field and a trailing marker bit; reassemble
		// each from its scattered source bits.
		raw := d.tmpAddress
		f.Address = uint16((raw & 0x000C) >> 2)
		f.Command = uint16(((raw & 0x1000) >> 2) | ((raw & 0x0003) << 8) | ((raw & 0x0FF0) >> 4))
		return f, true

	case ProtocolNetbox:
		// Bit 12 marks the final burst of a frame; only then do the
		// low 5 bits hold a recognized key-press (10101) or
		// key-release (10000) pattern. Anything else, including
		// bit 12 clear, is dropped.
		raw := d.tmpCommand
		if raw&0x1000 == 0 {
			return f, false
		}
		switch raw & 0x1F {
		case 0x15:
			f.Command = uint16((raw >> 5) & 0x7F)
			return f, true
		case 0x10:
			f.Command = uint16(((raw >> 5) & 0x7F) | 0x80)
			return f, true
		default:
			return f, false
		}

	case ProtocolLEGO:
		// The low 8 bits of the 12-bit command field are the real
		// payload; its top nibble is a checksum over the address and
		// payload (spec.md §4.9).
		data := uint16(d.tmpCommand & 0xFF)
		check := uint16((d.tmpCommand >> 8) & 0xF)
		sum := (f.Address + data) & 0xF
		f.Command = data
		if sum != check {
			f.Flags |= FlagCRCError
		}
		return f, true

	case ProtocolDenon:
		return d.validateDenon(f)

	default:
		return f, true
	}
}

// validateDenon implements spec.md §4.9's Denon pairing rule: a Denon
// remote sends every keypress twice in immediate succession, the
// second time with the command bitwise-complemented, as the only
// integrity check the protocol has. The first half is held back
// (denonPending) until its complement arrives to confirm it.
func (d *Decoder) validateDenon(f Frame) (Frame, bool) {
	if !d.denonPending {
		d.denonPending = true
		d.denonFirstCmd = f.Command
		d.denonFirstAddr = f.Address
		return f, false
	}

	d.denonPending = false
	if f.Address != d.denonFirstAddr {
		return f, false
	}
	if f.Command&0x3FF != (^d.denonFirstCmd)&0x3FF {
		return f, false
	}
	f.Command = d.denonFirstCmd
	return f, true
}
