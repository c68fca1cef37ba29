package irmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// These drive (*Decoder).validate directly against the accumulator
// state irmp_get_data works from in original_source/libraries/ir/irmp.c,
// rather than round-tripping a full waveform, since the formulas being
// checked are pure bit arithmetic over that state.

func TestValidateNECAppleRoundTrip(t *testing.T) {
	d := newTestDecoder(ProtocolNEC)
	d.tmpAddress = 0x87EE
	d.tmpCommand = 0x1234 // cmdHigh != ^cmdLow, so the NEC check fails first

	f, ok := d.validate(Frame{Protocol: ProtocolNEC})
	assert.True(t, ok)
	assert.Equal(t, ProtocolApple, f.Protocol)
	assert.EqualValues(t, 0x12, f.Address)
	assert.EqualValues(t, 0x34, f.Command)
}

func TestValidateNECDropsOnBadComplementNonApple(t *testing.T) {
	d := newTestDecoder(ProtocolNEC)
	d.tmpAddress = 0x00FF
	d.tmpCommand = 0x1234 // not a valid complement pair, and not 0x87EE

	_, ok := d.validate(Frame{Protocol: ProtocolNEC})
	assert.False(t, ok)
}

func TestValidateNECPublishesOnGoodComplement(t *testing.T) {
	d := newTestDecoder(ProtocolNEC)
	d.tmpAddress = 0x00FF
	d.tmpCommand = 0xED12 // low byte 0x12, high byte is its complement

	f, ok := d.validate(Frame{Protocol: ProtocolNEC})
	assert.True(t, ok)
	assert.Equal(t, ProtocolNEC, f.Protocol)
	assert.EqualValues(t, 0x12, f.Command)
}

func TestValidateSamsungMergesDeviceIDAndDropsOnBadCheck(t *testing.T) {
	d := newTestDecoder(ProtocolSamsung)
	d.tmpCommand = 0xE11E // low byte 0x1E, high byte its complement
	d.tmpID = 0x07

	f, ok := d.validate(Frame{Protocol: ProtocolSamsung})
	assert.True(t, ok)
	assert.EqualValues(t, 0x071E, f.Command)

	d2 := newTestDecoder(ProtocolSamsung)
	d2.tmpCommand = 0x001E // high byte does not complement the low byte
	_, ok2 := d2.validate(Frame{Protocol: ProtocolSamsung})
	assert.False(t, ok2)
}

func TestValidateSiemensRuwidoRepeatBitCheck(t *testing.T) {
	d := newTestDecoder(ProtocolSiemens)
	d.tmpCommand = 0b10 // bit1=1, bit0=0; the two are complementary, passes
	f, ok := d.validate(Frame{Protocol: ProtocolSiemens})
	assert.True(t, ok)
	assert.EqualValues(t, 0b1, f.Command)

	d2 := newTestDecoder(ProtocolSiemens)
	d2.tmpCommand = 0b11 // bit1=1, bit0=1; not complementary, fails
	_, ok2 := d2.validate(Frame{Protocol: ProtocolSiemens})
	assert.False(t, ok2)
}

func TestValidateRCCARBitLayout(t *testing.T) {
	d := newTestDecoder(ProtocolRCCAR)
	d.tmpAddress = 0x1CF3 // 0001 1100 1111 0011

	f, ok := d.validate(Frame{Protocol: ProtocolRCCAR})
	assert.True(t, ok)
	assert.EqualValues(t, 0x0, f.Address)
	assert.EqualValues(t, 0x7CF, f.Command)
}

func TestValidateNetboxKeyPressAndRelease(t *testing.T) {
	d := newTestDecoder(ProtocolNetbox)
	d.tmpCommand = 0x1000 | (0x2A << 5) | 0x15 // press pattern
	f, ok := d.validate(Frame{Protocol: ProtocolNetbox})
	assert.True(t, ok)
	assert.EqualValues(t, 0x2A, f.Command)

	d2 := newTestDecoder(ProtocolNetbox)
	d2.tmpCommand = 0x1000 | (0x2A << 5) | 0x10 // release pattern
	f2, ok2 := d2.validate(Frame{Protocol: ProtocolNetbox})
	assert.True(t, ok2)
	assert.EqualValues(t, 0xAA, f2.Command) // 0x2A | 0x80

	d3 := newTestDecoder(ProtocolNetbox)
	d3.tmpCommand = 0x1000 | (0x2A << 5) | 0x03 // neither pattern
	_, ok3 := d3.validate(Frame{Protocol: ProtocolNetbox})
	assert.False(t, ok3)

	d4 := newTestDecoder(ProtocolNetbox)
	d4.tmpCommand = (0x2A << 5) | 0x15 // bit 12 not set
	_, ok4 := d4.validate(Frame{Protocol: ProtocolNetbox})
	assert.False(t, ok4)
}
