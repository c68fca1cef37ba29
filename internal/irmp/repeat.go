package irmp

// Purpose:	Frame completion, repetition detection, and auto-repeat
//		burst suppression (spec.md §4.10). This is the single
//		point every decode family funnels through once a frame's
//		bits are fully accumulated.
//
// Description:	Three distinct kinds of "repeat" are handled here, and
//		spec.md is explicit that they are not the same thing:
//		  - the NEC dedicated repeat burst (a whole separate,
//		    data-less descriptor, ProtocolNECRepeat) just republishes
//		    whatever was last published, flagged as a repetition;
//		  - a handful of protocols always send a short fixed burst
//		    of 2-3 identical frames per keypress (SIRCS, Kaseikyo,
//		    Samsung32, Nubert); the redundant copies (SIRCS #2 and
//		    #3, Kaseikyo #2, every second Samsung32/Nubert frame)
//		    are suppressed outright, never handed to the caller;
//		  - everything else just gets FlagRepetition set when the
//		    same (protocol, address, command) repeats inside the
//		    ~150ms human key-repeat window, but is still published.
func (d *Decoder) completeFrame() {
	if d.active.Protocol == ProtocolNECRepeat {
		d.publishNativeRepeat()
		d.toIdle()
		return
	}

	frame := Frame{
		Protocol: d.active.Protocol,
		Address:  uint16(d.tmpAddress & 0xFFFF),
		Command:  uint16(d.tmpCommand & 0xFFFF),
	}

	frame, ok := d.validate(frame)
	if !ok {
		d.toIdle()
		return
	}

	if d.suppressAutoRepeatBurst(frame) {
		d.toIdle()
		return
	}

	d.publish(frame)
	d.toIdle()
}

// publishNativeRepeat implements the NEC repeat-burst descriptor: it
// carries no address/command of its own, so it just republishes the
// last published frame, whatever its protocol, marked as a
// repetition. A repeat burst with nothing to repeat is dropped.
func (d *Decoder) publishNativeRepeat() {
	if !d.haveLast {
		return
	}
	d.publishRaw(Frame{
		Protocol: d.prevCompletedProtocol,
		Address:  d.lastAddress,
		Command:  d.lastCommand,
		Flags:    FlagRepetition,
	})
}

// suppressAutoRepeatBurst implements the fixed-burst protocols: the
// transmitter always sends 2 or 3 back-to-back copies of a keypress
// with no way to tell "still held down" from "burst in progress".
// Counting identical frames inside the repeat window, it drops SIRCS
// copies #2 and #3, Kaseikyo copy #2, and every second Samsung32 or
// Nubert copy.
func (d *Decoder) suppressAutoRepeatBurst(frame Frame) bool {
	sameAsLast := d.haveLast && d.lastAddress == frame.Address &&
		d.lastCommand == frame.Command && d.prevCompletedProtocol == frame.Protocol

	if sameAsLast && d.repetitionLen <= d.repeatWindowTicks {
		d.repetitionFrameNumber++
	} else {
		d.repetitionFrameNumber = 0
	}

	switch frame.Protocol {
	case ProtocolSIRCS:
		return d.repetitionFrameNumber == 1 || d.repetitionFrameNumber == 2
	case ProtocolKaseikyo:
		return d.repetitionFrameNumber == 1
	case ProtocolSamsung32, ProtocolNubert:
		return d.repetitionFrameNumber%2 == 1
	default:
		return false
	}
}

// publish is the only place a frame becomes observable to GetData. It
// flags generic key-repetition (spec.md §4.10's ~150ms window) before
// handing off to publishRaw.
func (d *Decoder) publish(frame Frame) {
	sameAsLast := d.haveLast && d.lastAddress == frame.Address &&
		d.lastCommand == frame.Command && d.prevCompletedProtocol == frame.Protocol
	if sameAsLast && d.repetitionLen <= d.repeatWindowTicks {
		frame.Flags |= FlagRepetition
	}
	d.publishRaw(frame)
}

func (d *Decoder) publishRaw(frame Frame) {
	d.out = frame
	d.latched = true
	d.justLatched = true
	d.lastAddress = frame.Address
	d.lastCommand = frame.Command
	d.prevCompletedProtocol = frame.Protocol
	d.haveLast = true
	d.repetitionLen = 0
}

// GetData retrieves the latched frame, if any, clearing the latch
// (spec.md §6 get_data(): "observable only once, cleared on
// retrieval").
func (d *Decoder) GetData(out *Frame) bool {
	if !d.latched {
		return false
	}
	*out = d.out
	d.latched = false
	return true
}
