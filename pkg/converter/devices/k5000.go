// Package devices provides device-specific SysEx message layouts
package devices

import (
	"errors"
	"fmt"

	"github.com/james-see/k5000wave/pkg/converter"
	"github.com/james-see/k5000wave/pkg/harmonic"
	"gitlab.com/gomidi/midi/v2"
)

// K5000 SysEx header constants
const (
	KawaiID          = converter.KawaiManufacturerID
	FunctionNumber   = 0x10 // one block data send
	SynthGroup       = 0x00
	MachineK5000     = 0x0a
	ADDWaveParameter = 0x02 // "Single Tone ADD Wave Parameter"
	GroupBase        = 0x40
)

// HarmonicPayloadSize is the message length without F0/F7
const HarmonicPayloadSize = 12

var ErrNotHarmonicMessage = errors.New("not a K5000 harmonic level message")

// K5000 implements the converter.Device interface for the Kawai K5000 series
type K5000 struct{}

// NewK5000 creates a new K5000 device handler
func NewK5000() *K5000 {
	return &K5000{}
}

// Name returns the device name
func (k *K5000) Name() string {
	return "Kawai K5000"
}

// ManufacturerID returns the Kawai manufacturer ID
func (k *K5000) ManufacturerID() uint8 {
	return KawaiID
}

// HarmonicPayload builds the harmonic level message without framing:
//
//	[40][ch][10][00][0a][02][40+group][source][harmonic][00][00][level]
//
// Arguments are not range checked.
func (k *K5000) HarmonicPayload(harmonic, channel, level, group, source uint8) []byte {
	return []byte{
		KawaiID,
		channel,
		FunctionNumber,
		SynthGroup,
		MachineK5000,
		ADDWaveParameter,
		GroupBase + group,
		source,
		harmonic,
		0x00,
		0x00,
		level,
	}
}

// HarmonicMessage builds the complete F0 ... F7 harmonic level message
func (k *K5000) HarmonicMessage(harmonic, channel, level, group, source uint8) midi.Message {
	return midi.SysEx(k.HarmonicPayload(harmonic, channel, level, group, source))
}

// ParseHarmonic decodes an unframed harmonic level message
func (k *K5000) ParseHarmonic(payload []byte) (converter.HarmonicParam, error) {
	if len(payload) != HarmonicPayloadSize {
		return converter.HarmonicParam{}, fmt.Errorf("%w: got %d bytes, want %d", ErrNotHarmonicMessage, len(payload), HarmonicPayloadSize)
	}
	if err := converter.ValidateData(payload); err != nil {
		return converter.HarmonicParam{}, fmt.Errorf("%w: %w", ErrNotHarmonicMessage, err)
	}

	header := []struct {
		name string
		pos  int
		want byte
	}{
		{"manufacturer", 0, KawaiID},
		{"function", 2, FunctionNumber},
		{"synth group", 3, SynthGroup},
		{"machine", 4, MachineK5000},
		{"parameter", 5, ADDWaveParameter},
		{"reserved", 9, 0x00},
		{"reserved", 10, 0x00},
	}
	for _, h := range header {
		if payload[h.pos] != h.want {
			return converter.HarmonicParam{}, fmt.Errorf("%w: %s byte 0x%02x, want 0x%02x", ErrNotHarmonicMessage, h.name, payload[h.pos], h.want)
		}
	}
	if payload[6] < GroupBase {
		return converter.HarmonicParam{}, fmt.Errorf("%w: group byte 0x%02x below 0x%02x", ErrNotHarmonicMessage, payload[6], GroupBase)
	}
	if int(payload[8]) >= harmonic.HarmonicCount {
		return converter.HarmonicParam{}, fmt.Errorf("%w: harmonic index %d", ErrNotHarmonicMessage, payload[8])
	}

	return converter.HarmonicParam{
		Channel:  payload[1],
		Group:    payload[6] - GroupBase,
		Source:   payload[7],
		Harmonic: payload[8],
		Level:    payload[11],
	}, nil
}
