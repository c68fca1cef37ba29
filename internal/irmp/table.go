package irmp

// Purpose:	The protocol table: a read-only catalog mapping each
//		protocol to its timing windows, frame geometry, and
//		feature flags (spec.md §3, §4.2).
//
// Description:	A descriptor is built once per Decoder (via BuildTable)
//		from nominal microsecond constants scaled to the
//		configured sample rate — never mutated afterwards except
//		in the decoder's local *working copy*, which promotions
//		rewrite in place (spec.md §4.8, §9 "Cyclic/per-protocol
//		dispatch").
type Descriptor struct {
	Protocol Protocol

	StartPulse, StartPause Window
	Pulse1, Pause1         Window
	Pulse0, Pause0         Window

	// RepeatPause is only set for ProtocolNECRepeat: the pause
	// window of a dedicated repeat-burst start pair.
	RepeatPause Window

	AddressOffset, AddressEnd int
	CommandOffset, CommandEnd int
	CompleteLen               int

	StopBit  bool
	LSBFirst bool

	IsManchester    bool
	IsSerial        bool
	IsPulseWidth    bool
	FirstPulseIsOne bool
}

// emptyRange reports whether the descriptor carries no address or
// command bits in this position (spec.md §3 invariant: "ranges may be
// empty for some protocols").
func emptyRange(offset, end int) bool { return end <= offset }

// Table is the full set of descriptors, keyed by Protocol, built for a
// specific sample rate and enable-flag configuration.
type Table struct {
	byProtocol  map[Protocol]*Descriptor
	classifyOrd []Protocol
}

func (t *Table) Get(p Protocol) *Descriptor { return t.byProtocol[p] }

// classifyOrder is the fixed priority order the start-bit classifier
// walks (spec.md §4.3: "the order of the source's if/else chain").
// Protocols omitted by Config are skipped, not reordered.
var classifyOrder = []Protocol{
	ProtocolSIRCS,
	ProtocolNEC42,
	ProtocolNEC,
	ProtocolSamsung,
	ProtocolMatsushita,
	ProtocolKaseikyo,
	ProtocolRecs80,
	ProtocolRecs80Ext,
	ProtocolRC5,
	ProtocolFDC,
	ProtocolRCCAR,
	ProtocolDenon,
	ProtocolThomson,
	ProtocolNubert,
	ProtocolBangOlufsen,
	ProtocolGrundig,
	ProtocolSiemens,
	ProtocolRuwido,
	ProtocolNikon,
	ProtocolKathrein,
	ProtocolNetbox,
	ProtocolLEGO,
	ProtocolRC6,
}

// BuildTable computes the integer tick windows for every protocol at
// cfg's sample rate, honoring cfg's per-protocol enable flags and the
// tolerance-tightening rules spec.md §4.2 documents explicitly
// (SIRCS/FDC start windows tightened when Netbox or RC6 are enabled).
func BuildTable(cfg Config) *Table {
	fi := cfg.interruptsOrDefault()
	w := func(nominalUs float64, tolMin, tolMax int) Window {
		return scaledWindow(nominalUs, tolMin, tolMax, fi)
	}
	fw := func(minUs, maxUs float64) Window { return fixedWindow(minUs, maxUs, fi) }

	t := &Table{byProtocol: make(map[Protocol]*Descriptor, protocolCount)}

	add := func(enabled bool, d Descriptor) {
		if !enabled {
			return
		}
		cp := d
		t.byProtocol[d.Protocol] = &cp
	}

	// --- NEC family -----------------------------------------------------
	sircsTightened := cfg.enabled(ProtocolNetbox) || cfg.enabled(ProtocolRC6)
	necStartPause := w(4500, 10, 10)

	add(cfg.enabled(ProtocolNEC), Descriptor{
		Protocol:      ProtocolNEC,
		StartPulse:    w(9000, 5, 5),
		StartPause:    necStartPause,
		Pulse1:        w(560, 30, 30),
		Pulse0:        w(560, 30, 30),
		Pause0:        w(560, 30, 30),
		Pause1:        w(1690, 20, 20),
		AddressOffset: 0, AddressEnd: 16,
		CommandOffset: 16, CommandEnd: 32,
		CompleteLen: 32,
		StopBit:     true,
		LSBFirst:    true,
	})
	add(cfg.enabled(ProtocolNEC), Descriptor{
		// nec_rep: same start pulse window, a narrower dedicated
		// repeat-burst pause window (spec.md §4.3, §4.10).
		Protocol:    ProtocolNECRepeat,
		StartPulse:  w(9000, 5, 5),
		RepeatPause: w(2250, 15, 15),
		CompleteLen: 0,
		StopBit:     true,
		LSBFirst:    true,
	})
	add(cfg.enabled(ProtocolNEC16), Descriptor{
		Protocol:      ProtocolNEC16,
		StartPulse:    w(9000, 5, 5),
		StartPause:    necStartPause,
		Pulse1:        w(560, 30, 30),
		Pulse0:        w(560, 30, 30),
		Pause0:        w(560, 30, 30),
		Pause1:        w(1690, 20, 20),
		AddressOffset: 0, AddressEnd: 8,
		CommandOffset: 8, CommandEnd: 16,
		CompleteLen: 16,
		StopBit:     true,
		LSBFirst:    true,
	})
	add(cfg.enabled(ProtocolNEC42), Descriptor{
		Protocol:      ProtocolNEC42,
		StartPulse:    w(9000, 5, 5),
		StartPause:    necStartPause,
		Pulse1:        w(560, 30, 30),
		Pulse0:        w(560, 30, 30),
		Pause0:        w(560, 30, 30),
		Pause1:        w(1690, 20, 20),
		AddressOffset: 0, AddressEnd: 13,
		CommandOffset: 25, CommandEnd: 42,
		CompleteLen: 42,
		StopBit:     true,
		LSBFirst:    true,
	})
	add(cfg.enabled(ProtocolJVC), Descriptor{
		Protocol:      ProtocolJVC,
		StartPulse:    w(9000, 5, 5),
		StartPause:    w(4500, 10, 10),
		RepeatPause:   w(560, 30, 30),
		Pulse1:        w(560, 30, 30),
		Pulse0:        w(560, 30, 30),
		Pause0:        w(560, 30, 30),
		Pause1:        w(1690, 20, 20),
		AddressOffset: 0, AddressEnd: 4,
		CommandOffset: 4, CommandEnd: 16,
		CompleteLen: 16,
		StopBit:     true,
		LSBFirst:    true,
	})
	add(cfg.enabled(ProtocolApple), Descriptor{
		// Apple is only ever reached via post-decode promotion
		// from NEC (spec.md §4.8); it has no start window of its
		// own in the classifier.
		Protocol:      ProtocolApple,
		AddressOffset: 0, AddressEnd: 8,
		CommandOffset: 8, CommandEnd: 16,
		CompleteLen: 32,
		StopBit:     true,
		LSBFirst:    true,
	})

	// --- Samsung ---------------------------------------------------------
	add(cfg.enabled(ProtocolSamsung), Descriptor{
		Protocol:      ProtocolSamsung,
		StartPulse:    w(4500, 10, 10),
		StartPause:    w(4500, 10, 10),
		Pulse1:        w(560, 30, 30),
		Pulse0:        w(560, 30, 30),
		Pause0:        w(560, 30, 30),
		Pause1:        w(1690, 20, 20),
		AddressOffset: 0, AddressEnd: 16,
		CommandOffset: 16, CommandEnd: 32,
		CompleteLen: 32,
		StopBit:     true,
		LSBFirst:    true,
	})
	add(cfg.enabled(ProtocolSamsung32), Descriptor{
		Protocol:      ProtocolSamsung32,
		StartPulse:    w(4500, 10, 10),
		StartPause:    w(4500, 10, 10),
		Pulse1:        w(560, 30, 30),
		Pulse0:        w(560, 30, 30),
		Pause0:        w(560, 30, 30),
		Pause1:        w(1690, 20, 20),
		AddressOffset: 0, AddressEnd: 16,
		CommandOffset: 16, CommandEnd: 32,
		CompleteLen: 32,
		StopBit:     true,
		LSBFirst:    true,
	})

	// --- Matsushita --------------------------------------------------
	add(cfg.enabled(ProtocolMatsushita), Descriptor{
		Protocol:      ProtocolMatsushita,
		StartPulse:    w(3500, 10, 10),
		StartPause:    w(3500, 10, 10),
		Pulse1:        w(480, 30, 30),
		Pulse0:        w(480, 30, 30),
		Pause0:        w(480, 30, 30),
		Pause1:        w(1360, 20, 20),
		AddressOffset: 0, AddressEnd: 11,
		CommandOffset: 11, CommandEnd: 24,
		CompleteLen: 24,
		StopBit:     true,
		LSBFirst:    true,
	})

	// --- Kaseikyo ------------------------------------------------------
	add(cfg.enabled(ProtocolKaseikyo), Descriptor{
		Protocol:      ProtocolKaseikyo,
		StartPulse:    w(3400, 10, 10),
		StartPause:    w(1600, 10, 10),
		Pulse1:        w(420, 30, 30),
		Pulse0:        w(420, 30, 30),
		Pause0:        w(420, 30, 30),
		Pause1:        w(1300, 20, 20),
		AddressOffset: 0, AddressEnd: 16,
		CommandOffset: 24, CommandEnd: 32,
		CompleteLen: 48,
		StopBit:     true,
		LSBFirst:    true,
	})

	// --- RECS80 / RECS80EXT -------------------------------------------
	add(cfg.enabled(ProtocolRecs80), Descriptor{
		Protocol:      ProtocolRecs80,
		StartPulse:    w(158, 20, 20),
		StartPause:    w(7900, 10, 10),
		Pulse1:        w(158, 30, 30),
		Pulse0:        w(158, 30, 30),
		Pause0:        w(4510, 20, 20),
		Pause1:        w(7900, 20, 20),
		AddressOffset: 0, AddressEnd: 3,
		CommandOffset: 3, CommandEnd: 9,
		CompleteLen: 9,
		StopBit:     false,
		LSBFirst:    true,
	})
	add(cfg.enabled(ProtocolRecs80Ext), Descriptor{
		Protocol:      ProtocolRecs80Ext,
		StartPulse:    w(158, 20, 20),
		StartPause:    w(3950, 10, 10),
		Pulse1:        w(158, 30, 30),
		Pulse0:        w(158, 30, 30),
		Pause0:        w(4510, 20, 20),
		Pause1:        w(7900, 20, 20),
		AddressOffset: 0, AddressEnd: 4,
		CommandOffset: 4, CommandEnd: 10,
		CompleteLen: 10,
		StopBit:     false,
		LSBFirst:    true,
	})

	// --- Denon -----------------------------------------------------------
	add(cfg.enabled(ProtocolDenon), Descriptor{
		Protocol:      ProtocolDenon,
		StartPulse:    w(310, 30, 30),
		StartPause:    w(745, 30, 30),
		Pulse1:        w(310, 30, 30),
		Pulse0:        w(310, 30, 30),
		Pause0:        w(745, 30, 30),
		Pause1:        w(1780, 20, 20),
		AddressOffset: 0, AddressEnd: 5,
		CommandOffset: 5, CommandEnd: 15,
		CompleteLen: 15,
		StopBit:     false,
		LSBFirst:    true,
	})

	// --- Thomson -----------------------------------------------------
	add(cfg.enabled(ProtocolThomson), Descriptor{
		Protocol:      ProtocolThomson,
		StartPulse:    w(6000, 10, 10),
		StartPause:    w(3000, 10, 10),
		Pulse1:        w(500, 30, 30),
		Pulse0:        w(500, 30, 30),
		Pause0:        w(2000, 20, 20),
		Pause1:        w(4000, 20, 20),
		AddressOffset: 0, AddressEnd: 4,
		CommandOffset: 4, CommandEnd: 11,
		CompleteLen: 11,
		StopBit:     true,
		LSBFirst:    false,
	})

	// --- Nubert (pulse-width) ------------------------------------------
	add(cfg.enabled(ProtocolNubert), Descriptor{
		Protocol:      ProtocolNubert,
		StartPulse:    w(1300, 20, 20),
		StartPause:    w(600, 30, 30),
		Pulse1:        w(750, 30, 30),
		Pulse0:        w(350, 30, 30),
		Pause0:        w(360, 30, 30),
		Pause1:        w(360, 30, 30),
		AddressOffset: 0, AddressEnd: 6,
		CommandOffset: 6, CommandEnd: 12,
		CompleteLen:  12,
		StopBit:      false,
		LSBFirst:     true,
		IsPulseWidth: true,
	})

	// --- SIRCS (pulse-width, variable length) ---------------------------
	sircsPauseMaxTol := 60
	if sircsTightened {
		sircsPauseMaxTol = 5
	}
	add(cfg.enabled(ProtocolSIRCS), Descriptor{
		Protocol:        ProtocolSIRCS,
		StartPulse:      w(2400, 20, 20),
		StartPause:      w(600, 20, sircsPauseMaxTol),
		Pulse1:          w(1200, 20, 20),
		Pulse0:          w(600, 20, 20),
		Pause0:          w(600, 40, 40),
		Pause1:          w(600, 40, 40),
		AddressOffset:   7, AddressEnd: 12,
		CommandOffset:   0, CommandEnd: 7,
		CompleteLen:     12,
		StopBit:         false,
		LSBFirst:        true,
		IsPulseWidth:    true,
		FirstPulseIsOne: true,
	})

	// --- Bang & Olufsen --------------------------------------------------
	add(cfg.enabled(ProtocolBangOlufsen), Descriptor{
		Protocol:      ProtocolBangOlufsen,
		StartPulse:    w(210, 30, 30),
		StartPause:    w(3125, 10, 10),
		Pulse1:        w(210, 30, 30),
		Pulse0:        w(210, 30, 30),
		Pause0:        w(2250, 20, 20),
		Pause1:        w(3125, 20, 20),
		AddressOffset: 0, AddressEnd: 4,
		CommandOffset: 4, CommandEnd: 20,
		CompleteLen: 20,
		StopBit:     true,
		LSBFirst:    true,
	})

	// --- Manchester family ------------------------------------------------
	add(cfg.enabled(ProtocolRC5), Descriptor{
		Protocol:        ProtocolRC5,
		StartPulse:      w(889, 30, 30),
		StartPause:      w(889, 30, 30),
		Pulse1:          w(889, 30, 30),
		Pause1:          w(889, 30, 30),
		AddressOffset:   1, AddressEnd: 7,
		CommandOffset:   7, CommandEnd: 13,
		CompleteLen:     13,
		IsManchester:    true,
		FirstPulseIsOne: true,
		LSBFirst:        false,
	})
	add(cfg.enabled(ProtocolRC6), Descriptor{
		Protocol:        ProtocolRC6,
		StartPulse:      fw(2666-266, 2666+266),
		StartPause:      fw(889-266, 889+266),
		Pulse1:          w(444, 40, 40),
		Pause1:          w(444, 40, 40),
		AddressOffset:   5, AddressEnd: 13,
		CommandOffset:   13, CommandEnd: 21,
		CompleteLen:     21,
		IsManchester:    true,
		FirstPulseIsOne: true,
		LSBFirst:        false,
	})
	add(cfg.enabled(ProtocolRC6), Descriptor{
		Protocol:        ProtocolRC6A,
		StartPulse:      fw(2666-266, 2666+266),
		StartPause:      fw(889-266, 889+266),
		Pulse1:          w(444, 40, 40),
		Pause1:          w(444, 40, 40),
		AddressOffset:   5, AddressEnd: 20,
		CommandOffset:   21, CommandEnd: 37,
		CompleteLen:     37,
		IsManchester:    true,
		FirstPulseIsOne: true,
		LSBFirst:        false,
	})

	add(cfg.enabled(ProtocolGrundig), Descriptor{
		Protocol:        ProtocolGrundig,
		StartPulse:      w(528, 30, 30),
		StartPause:      w(528, 30, 30),
		Pulse1:          w(528, 30, 30),
		Pause1:          w(528, 30, 30),
		AddressOffset:   0, AddressEnd: 0,
		CommandOffset:   0, CommandEnd: 9,
		CompleteLen:     9,
		IsManchester:    true,
		FirstPulseIsOne: true,
	})
	add(cfg.enabled(ProtocolNokia), Descriptor{
		Protocol:        ProtocolNokia,
		Pulse1:          w(528, 30, 30),
		Pause1:          w(528, 30, 30),
		AddressOffset:   8, AddressEnd: 10,
		CommandOffset:   0, CommandEnd: 10,
		CompleteLen:     10,
		IsManchester:    true,
		FirstPulseIsOne: true,
	})
	add(cfg.enabled(ProtocolIR60), Descriptor{
		Protocol:        ProtocolIR60,
		Pulse1:          w(528, 30, 30),
		Pause1:          w(528, 30, 30),
		AddressOffset:   0, AddressEnd: 0,
		CommandOffset:   0, CommandEnd: 7,
		CompleteLen:     7,
		IsManchester:    true,
		FirstPulseIsOne: true,
	})

	add(cfg.enabled(ProtocolRuwido), Descriptor{
		Protocol:        ProtocolRuwido,
		StartPulse:      w(535, 30, 30),
		StartPause:      w(535, 30, 30),
		Pulse1:          w(535, 30, 30),
		Pause1:          w(535, 30, 30),
		AddressOffset:   0, AddressEnd: 8,
		CommandOffset:   8, CommandEnd: 16,
		CompleteLen:     16,
		IsManchester:    true,
		FirstPulseIsOne: true,
	})
	add(cfg.enabled(ProtocolRuwido), Descriptor{
		Protocol:        ProtocolSiemens,
		Pulse1:          w(535, 30, 30),
		Pause1:          w(535, 30, 30),
		AddressOffset:   0, AddressEnd: 10,
		CommandOffset:   10, CommandEnd: 22,
		CompleteLen:     22,
		IsManchester:    true,
		FirstPulseIsOne: true,
	})

	// --- RC5/FDC/RCCAR overlap -------------------------------------------
	fdcStartTol := 10
	if cfg.enabled(ProtocolNetbox) {
		fdcStartTol = 5
	}
	add(cfg.enabled(ProtocolFDC), Descriptor{
		Protocol:      ProtocolFDC,
		StartPulse:    w(889, fdcStartTol, fdcStartTol),
		StartPause:    w(889, fdcStartTol, fdcStartTol),
		Pulse1:        w(889, 30, 30),
		Pulse0:        w(889, 30, 30),
		Pause0:        w(889, 30, 30),
		Pause1:        w(1778, 30, 30),
		AddressOffset: 0, AddressEnd: 8,
		CommandOffset: 8, CommandEnd: 14,
		CompleteLen: 14,
		StopBit:     true,
		LSBFirst:    true,
	})
	add(cfg.enabled(ProtocolRCCAR), Descriptor{
		Protocol:      ProtocolRCCAR,
		StartPulse:    w(510, 10, 10),
		StartPause:    w(510, 10, 10),
		Pulse1:        w(510, 30, 30),
		Pulse0:        w(510, 30, 30),
		Pause0:        w(510, 30, 30),
		Pause1:        w(1020, 30, 30),
		AddressOffset: 0, AddressEnd: 13,
		CommandOffset: 0, CommandEnd: 0,
		CompleteLen: 13,
		StopBit:     true,
		LSBFirst:    true,
	})

	// --- Nikon -------------------------------------------------------
	add(cfg.enabled(ProtocolNikon), Descriptor{
		Protocol:      ProtocolNikon,
		StartPulse:    w(2000, 20, 20),
		StartPause:    w(27830, 10, 10),
		Pulse1:        w(500, 30, 30),
		Pulse0:        w(500, 30, 30),
		Pause0:        w(1500, 20, 20),
		Pause1:        w(3500, 20, 20),
		AddressOffset: 0, AddressEnd: 0,
		CommandOffset: 0, CommandEnd: 2,
		CompleteLen: 2,
		StopBit:     true,
		LSBFirst:    true,
	})

	// --- Kathrein ------------------------------------------------------
	add(cfg.enabled(ProtocolKathrein), Descriptor{
		Protocol:      ProtocolKathrein,
		StartPulse:    w(210, 30, 30),
		StartPause:    w(2210, 20, 20),
		Pulse1:        w(210, 30, 30),
		Pulse0:        w(210, 30, 30),
		Pause0:        w(1400, 20, 20),
		Pause1:        w(2210, 20, 20),
		AddressOffset: 0, AddressEnd: 0,
		CommandOffset: 0, CommandEnd: 12,
		CompleteLen: 12,
		StopBit:     true,
		LSBFirst:    false,
	})

	// --- Netbox (serial-burst) -------------------------------------------
	add(cfg.enabled(ProtocolNetbox), Descriptor{
		// The full 13-bit raw value (last-frame marker in bit 12,
		// press/release pattern in the low 5 bits, payload above
		// that) has to reach validate() intact, so it all lands in
		// the command accumulator; there is no separate address
		// field.
		Protocol:      ProtocolNetbox,
		StartPulse:    w(2000, 20, 20),
		StartPause:    w(1000, 20, 20),
		Pulse1:        w(1000, 20, 20),
		Pause1:        w(1000, 20, 20),
		AddressOffset: 0, AddressEnd: 0,
		CommandOffset: 0, CommandEnd: 13,
		CompleteLen: 13,
		IsSerial:    true,
		LSBFirst:    true,
	})

	// --- LEGO ------------------------------------------------------------
	add(cfg.enabled(ProtocolLEGO), Descriptor{
		Protocol:      ProtocolLEGO,
		StartPulse:    w(158, 20, 20),
		StartPause:    w(1026, 20, 20),
		Pulse1:        w(158, 30, 30),
		Pulse0:        w(158, 30, 30),
		Pause0:        w(421, 30, 30),
		Pause1:        w(711, 30, 30),
		AddressOffset: 0, AddressEnd: 4,
		CommandOffset: 4, CommandEnd: 16,
		CompleteLen: 16,
		StopBit:     true,
		LSBFirst:    true,
	})

	t.classifyOrd = make([]Protocol, 0, len(classifyOrder))
	for _, p := range classifyOrder {
		if _, ok := t.byProtocol[p]; ok {
			t.classifyOrd = append(t.classifyOrd, p)
		}
	}
	return t
}
