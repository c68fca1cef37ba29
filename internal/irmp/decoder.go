package irmp

// Purpose:	The tick-driven decoder state machine (spec.md §3, §4.1,
//		§5, §6).
//
// Description:	Decoder is a single mutable value owned by the caller
//		(spec.md §9, "Global mutable state" — respecified as a
//		caller-owned value instead of module globals). Tick and
//		GetData are the only two entry points and are the only
//		shared-state touchpoints (spec.md §5): Tick is meant to
//		be driven from an interrupt handler, a GPIO poll loop, or
//		a waveform replay driver (see internal/ticksource);
//		GetData is called from application context to retrieve
//		the latched frame. Neither blocks, allocates on the hot
//		path, or recurses.
type phase int

const (
	phaseIdle phase = iota
	phaseAwaitingStartPause
	phaseDecoding
)

// Callback is the optional "level changed" hook (spec.md §5, §6
// set_callback). It is invoked synchronously inside Tick with the new
// *inverted* input level (true = carrier present) and must not call
// back into the Decoder.
type Callback func(newInvertedLevel bool)

// Decoder holds all mutable decode state for one IR receiver channel.
// The zero value is not usable; construct with NewDecoder.
type Decoder struct {
	cfg   Config
	table *Table

	timeoutTicks     uint32
	repeatWindowTicks uint32

	callback Callback

	phase phase

	pulseTicks uint32
	pauseTicks uint32
	inPause    bool

	awaitingStop bool

	active    Descriptor // mutable working copy; promotions rewrite this
	secondary *Descriptor
	secActive bool

	bitIndex int
	secBitIx int

	tmpAddress  uint32
	tmpCommand  uint32
	tmpAddress2 uint32
	tmpCommand2 uint32
	tmpID       uint32
	secAddress  uint32
	secCommand  uint32

	xorCheck [6]byte

	lastValue bool
	lastPause uint32
	firstBit  int

	rc5CmdBit6 uint32

	// JVC continuation / NEC->JVC promotion memory (spec.md §4.3,
	// §4.8): what protocol the previously *completed* decode was.
	prevCompletedProtocol Protocol

	// Denon half-frame pairing memory (spec.md §4.9).
	denonPending     bool
	denonFirstCmd    uint16
	denonFirstAddr   uint16

	// Repetition detection memory (spec.md §4.10).
	repetitionLen          uint32
	repetitionFrameNumber  int
	lastAddress, lastCommand uint16
	haveLast                 bool

	// Output latch (spec.md §3 invariant: observable only when
	// latched; cleared on retrieval).
	out     Frame
	latched bool

	justLatched bool

	hasPrevLevel bool
	prevInverted bool
}

// NewDecoder builds a Decoder for cfg. The protocol table is computed
// once here (table.go BuildTable), never recomputed per tick.
func NewDecoder(cfg Config) *Decoder {
	d := &Decoder{
		cfg:   cfg,
		table: BuildTable(cfg),
	}
	d.timeoutTicks = ticksFor(16500, cfg.interruptsOrDefault())
	if cfg.enabled(ProtocolNikon) {
		nikonTimeout := ticksFor(60000, cfg.interruptsOrDefault())
		if nikonTimeout > d.timeoutTicks {
			d.timeoutTicks = nikonTimeout
		}
	}
	d.repeatWindowTicks = ticksFor(150000, cfg.interruptsOrDefault())
	return d
}

// SetCallback installs the optional level-change callback (spec.md §6
// set_callback). Only invoked when Config.UseCallback is set.
func (d *Decoder) SetCallback(cb Callback) { d.callback = cb }

// Init zeroes the decoder state; idempotent (spec.md §6 init()).
func (d *Decoder) Init() {
	table := d.table
	cfg := d.cfg
	cb := d.callback
	timeout := d.timeoutTicks
	repeatWindow := d.repeatWindowTicks
	*d = Decoder{cfg: cfg, table: table, callback: cb, timeoutTicks: timeout, repeatWindowTicks: repeatWindow}
}

func (d *Decoder) toIdle() {
	d.phase = phaseIdle
	d.pulseTicks = 0
	d.pauseTicks = 0
	d.inPause = false
	d.awaitingStop = false
	d.secActive = false
	d.secondary = nil
	d.bitIndex = 0
	d.tmpAddress, d.tmpCommand = 0, 0
	d.tmpAddress2, d.tmpCommand2 = 0, 0
	d.tmpID = 0
	d.secAddress, d.secCommand = 0, 0
	d.secBitIx = 0
	d.xorCheck = [6]byte{}
	d.lastValue = false
	d.lastPause = 0
	d.firstBit = 0
	d.rc5CmdBit6 = 0
}

// Tick consumes one sample (spec.md §6 tick()). level=false means the
// carrier is present (active-low receiver output); level=true means no
// carrier. Returns true iff a frame was latched during this call.
func (d *Decoder) Tick(level bool) bool {
	d.justLatched = false

	if d.cfg.UseCallback && d.callback != nil {
		inverted := !level
		if d.hasPrevLevel && inverted != d.prevInverted {
			d.callback(inverted)
		}
		d.prevInverted = inverted
		d.hasPrevLevel = true
	}

	switch d.phase {
	case phaseIdle:
		d.tickIdle(level)
	case phaseAwaitingStartPause:
		d.tickAwaitingStartPause(level)
	case phaseDecoding:
		d.tickDecoding(level)
	}

	d.repetitionLen++
	if d.repetitionLen == 0 {
		d.repetitionLen = ^uint32(0) // saturate rather than wrap
	}

	return d.justLatched
}

func (d *Decoder) tickIdle(level bool) {
	if !level {
		if d.pulseTicks == 0 {
			d.pulseTicks = 1
		} else {
			d.pulseTicks++
		}
		return
	}
	if d.pulseTicks == 0 {
		return
	}
	d.phase = phaseAwaitingStartPause
	d.pauseTicks = 1
}

func (d *Decoder) tickAwaitingStartPause(level bool) {
	if level {
		d.pauseTicks++
		if d.pauseTicks > d.timeoutTicks {
			d.toIdle()
		}
		return
	}
	matched := d.classify(d.pulseTicks, d.pauseTicks)
	if !matched {
		d.toIdle()
		d.pulseTicks = 1
		return
	}
	d.phase = phaseDecoding
	d.pulseTicks = 1
	d.pauseTicks = 0
	d.inPause = false
}

func (d *Decoder) tickDecoding(level bool) {
	if !level {
		if d.inPause {
			d.inPause = false
			finishedPulse := d.pulseTicks
			finishedPause := d.pauseTicks
			d.pulseTicks = 1
			d.pauseTicks = 0
			d.deliverRun(finishedPulse, finishedPause)
			return
		}
		d.pulseTicks++
		return
	}

	if !d.inPause {
		d.inPause = true
		if d.awaitingStop {
			d.finishStopPulse(d.pulseTicks)
			d.pauseTicks = 1
			return
		}
		d.pauseTicks = 1
		return
	}

	d.pauseTicks++

	if d.active.IsManchester || d.active.IsSerial {
		if d.checkImpliedStop() {
			return
		}
	}

	if d.pauseTicks > d.timeoutTicks {
		d.toIdle()
	}
}

// deliverRun dispatches one completed (pulse, pause) run to the active
// family decoder, and to the secondary shadow decoder if one is
// running in parallel (spec.md §4.3 "RC5/FDC/RCCAR overlap").
func (d *Decoder) deliverRun(pulseTicks, pauseTicks uint32) {
	switch {
	case d.active.IsManchester:
		d.storeManchesterBit(pulseTicks, pauseTicks)
	case d.active.IsSerial:
		d.storeSerialBits(pulseTicks, pauseTicks)
	case d.active.IsPulseWidth:
		d.storePulseWidthBit(pulseTicks, pauseTicks)
	default:
		d.storeDistanceBit(pulseTicks, pauseTicks)
	}

	if d.secActive && d.secondary != nil {
		d.storeSecondaryBit(pulseTicks, pauseTicks)
	}
}

// finishStopPulse is called when a pulse ends while awaitingStop is
// set: the frame completes on the stop pulse's own timing, without
// waiting to observe the length of whatever pause follows it (spec.md
// §4.4 "Stop-bit handling").
func (d *Decoder) finishStopPulse(pulseTicks uint32) {
	d.awaitingStop = false
	if d.active.CompleteLen == 0 {
		// Zero-length descriptors (the dedicated NEC repeat burst)
		// have no stop-pulse window of their own; the start pulse
		// already matched in classify.go is the only check.
		d.completeFrame()
		return
	}
	if !d.active.Pulse0.Contains(pulseTicks) && !(d.active.IsManchester || d.active.IsSerial) {
		d.toIdle()
		return
	}
	d.completeFrame()
}

// abortFrame drops the in-progress frame silently and returns to Idle
// (spec.md §7 "Timing mismatch"/"Frame too short or too long").
func (d *Decoder) abortFrame() {
	d.toIdle()
}
