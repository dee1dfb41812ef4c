package devices

import (
	"testing"

	"github.com/james-see/k5000wave/pkg/converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestK5000Name(t *testing.T) {
	k := NewK5000()
	assert.Equal(t, "Kawai K5000", k.Name())
	assert.Equal(t, uint8(0x40), k.ManufacturerID())
}

func TestK5000HarmonicPayloadLayout(t *testing.T) {
	k := NewK5000()

	got := k.HarmonicPayload(0, 0, 127, 0, 0)
	want := []byte{0x40, 0x00, 0x10, 0x00, 0x0a, 0x02, 0x40, 0x00, 0x00, 0x00, 0x00, 0x7f}
	assert.Equal(t, want, got)

	got = k.HarmonicPayload(63, 15, 31, 1, 5)
	want = []byte{0x40, 0x0f, 0x10, 0x00, 0x0a, 0x02, 0x41, 0x05, 0x3f, 0x00, 0x00, 0x1f}
	assert.Equal(t, want, got)
}

func TestK5000HarmonicMessageFraming(t *testing.T) {
	k := NewK5000()
	msg := k.HarmonicMessage(10, 3, 99, 0, 2).Bytes()

	require.Len(t, msg, HarmonicPayloadSize+2)
	assert.Equal(t, byte(converter.SysExStart), msg[0])
	assert.Equal(t, byte(converter.SysExEnd), msg[len(msg)-1])
	assert.NoError(t, converter.ValidateSyx(msg))
	assert.NoError(t, converter.CheckManufacturer(msg, KawaiID))
}

func TestK5000FramedAndRawAgree(t *testing.T) {
	k := NewK5000()
	for h := uint8(0); h < 64; h++ {
		raw := k.HarmonicPayload(h, 2, 127-h, 0, 1)
		stripped, err := converter.Strip(k.HarmonicMessage(h, 2, 127-h, 0, 1).Bytes())
		require.NoError(t, err)
		assert.Equal(t, raw, stripped, "harmonic index %d", h)
	}
}

func TestK5000ParseHarmonic(t *testing.T) {
	k := NewK5000()

	p, err := k.ParseHarmonic(k.HarmonicPayload(12, 4, 88, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, converter.HarmonicParam{Channel: 4, Group: 2, Source: 3, Harmonic: 12, Level: 88}, p)
}

func TestK5000ParseHarmonicRejects(t *testing.T) {
	k := NewK5000()
	valid := k.HarmonicPayload(0, 0, 127, 0, 0)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"short", func(b []byte) []byte { return b[:5] }},
		{"manufacturer", func(b []byte) []byte { b[0] = 0x41; return b }},
		{"function", func(b []byte) []byte { b[2] = 0x11; return b }},
		{"machine", func(b []byte) []byte { b[4] = 0x0b; return b }},
		{"parameter", func(b []byte) []byte { b[5] = 0x01; return b }},
		{"group", func(b []byte) []byte { b[6] = 0x3f; return b }},
		{"8-bit level", func(b []byte) []byte { b[11] = 0xff; return b }},
		{"8-bit harmonic", func(b []byte) []byte { b[8] = 0x80; return b }},
		{"harmonic index", func(b []byte) []byte { b[8] = 0x40; return b }},
		{"reserved byte 9", func(b []byte) []byte { b[9] = 0x01; return b }},
		{"reserved byte 10", func(b []byte) []byte { b[10] = 0x7f; return b }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append([]byte(nil), valid...)
			_, err := k.ParseHarmonic(tt.mutate(data))
			assert.ErrorIs(t, err, ErrNotHarmonicMessage)
		})
	}
}

func TestK5000ParseHarmonicRejectsEightBitData(t *testing.T) {
	k := NewK5000()
	data := k.HarmonicPayload(0, 0, 127, 0, 0)
	data[11] = 0xff

	_, err := k.ParseHarmonic(data)
	assert.ErrorIs(t, err, ErrNotHarmonicMessage)
	assert.ErrorIs(t, err, converter.ErrInvalidSysEx)
}

func TestK5000ImplementsDevice(t *testing.T) {
	var _ converter.Device = NewK5000()
}
