package irmp

// Purpose:	Protocol name table. It is always present;
//		Config.ProtocolNames does not gate it.
var protocolNames = [protocolCount]string{
	ProtocolUnknown:     "UNKNOWN",
	ProtocolSIRCS:       "SIRCS",
	ProtocolNEC:         "NEC",
	ProtocolNECRepeat:   "NEC",
	ProtocolNEC16:       "NEC16",
	ProtocolNEC42:       "NEC42",
	ProtocolSamsung:     "SAMSUNG",
	ProtocolSamsung32:   "SAMSUNG32",
	ProtocolMatsushita:  "MATSUSHITA",
	ProtocolKaseikyo:    "KASEIKYO",
	ProtocolRecs80:      "RECS80",
	ProtocolRecs80Ext:   "RECS80EXT",
	ProtocolRC5:         "RC5",
	ProtocolRC6:         "RC6",
	ProtocolRC6A:        "RC6A",
	ProtocolDenon:       "DENON",
	ProtocolApple:       "APPLE",
	ProtocolNubert:      "NUBERT",
	ProtocolBangOlufsen: "BANG_OLUFSEN",
	ProtocolGrundig:     "GRUNDIG",
	ProtocolNokia:       "NOKIA",
	ProtocolIR60:        "IR60",
	ProtocolSiemens:     "SIEMENS",
	ProtocolRuwido:      "RUWIDO",
	ProtocolFDC:         "FDC",
	ProtocolRCCAR:       "RCCAR",
	ProtocolJVC:         "JVC",
	ProtocolNikon:       "NIKON",
	ProtocolKathrein:    "KATHREIN",
	ProtocolNetbox:      "NETBOX",
	ProtocolLEGO:        "LEGO",
	ProtocolThomson:     "THOMSON",
}

// Name returns the protocol's canonical name, or "UNKNOWN" for an
// out-of-range value, whatever Config.ProtocolNames says; the daemon,
// analyzer and frame log always print names.
func (p Protocol) Name() string {
	if int(p) < 0 || int(p) >= len(protocolNames) || protocolNames[p] == "" {
		return "UNKNOWN"
	}
	return protocolNames[p]
}

func (p Protocol) String() string { return p.Name() }
