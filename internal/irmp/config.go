package irmp

// Purpose:	Compile-time configuration, rendered as a runtime value.
//
// Description:	spec.md §6 lists "the recognized options a consumer sets
//		before instantiating the decoder": F_INTERRUPTS (sample
//		rate), a per-protocol SUPPORT_xxx enable flag, USE_CALLBACK,
//		LOGGING, and PROTOCOL_NAMES. The source expresses these as
//		C preprocessor defines (so an unsupported protocol's
//		descriptor is compiled out entirely); Go has no equivalent
//		of conditional compilation that a library consumer would
//		reach for, so Config is a plain struct read once by
//		BuildTable and NewDecoder. cmd/irmpd loads it from YAML;
//		cmd/irmp-analyze starts from DefaultConfig
//		(internal/irmp/config.go itself has no YAML dependency —
//		see LoadConfig in cmd/irmpd for the loader, which is what actually imports
//		gopkg.in/yaml.v3; the core package stays dependency-free
//		beyond the standard library, matching "the core is a pure
//		reducer").
type Config struct {
	// FInterrupts is the sample rate in Hz. All timing windows
	// scale with it. Zero defaults to the canonical 10000 Hz.
	FInterrupts int

	// Protocols lists the enabled protocols. A nil or empty slice
	// enables every protocol the table knows about — the common
	// case for a hosted decoder with no RAM pressure to economize
	// against, unlike the embedded source.
	Protocols []Protocol

	// UseCallback mirrors USE_CALLBACK: whether Tick invokes the
	// optional level-change callback (decoder.go, SetCallback).
	UseCallback bool

	// ProtocolNames mirrors PROTOCOL_NAMES. It is carried but not
	// read: Protocol.Name always works, and no front-end in this
	// module checks the flag.
	ProtocolNames bool
}

func (c Config) interruptsOrDefault() int {
	if c.FInterrupts <= 0 {
		return 10000
	}
	return c.FInterrupts
}

func (c Config) enabled(p Protocol) bool {
	if len(c.Protocols) == 0 {
		return true
	}
	for _, q := range c.Protocols {
		if q == p {
			return true
		}
	}
	return false
}

// DefaultConfig returns the canonical 10 kHz, all-protocols-enabled
// configuration.
func DefaultConfig() Config {
	return Config{FInterrupts: 10000, ProtocolNames: true}
}
