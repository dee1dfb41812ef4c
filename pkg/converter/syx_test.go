package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSyx(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{"valid", []byte{0xF0, 0x40, 0x00, 0xF7}, false},
		{"empty body", []byte{0xF0, 0xF7}, false},
		{"too short", []byte{0xF0}, true},
		{"missing start", []byte{0x40, 0x00, 0xF7}, true},
		{"missing end", []byte{0xF0, 0x40, 0x00}, true},
		{"8-bit data", []byte{0xF0, 0x40, 0x80, 0xF7}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSyx(tt.data)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSysEx)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStripAndFrame(t *testing.T) {
	payload := []byte{0x40, 0x00, 0x10, 0x7F}
	framed := Frame(payload)
	assert.Equal(t, []byte{0xF0, 0x40, 0x00, 0x10, 0x7F, 0xF7}, framed)

	stripped, err := Strip(framed)
	require.NoError(t, err)
	assert.Equal(t, payload, stripped)

	// Strip must not alias the input
	stripped[0] = 0x00
	assert.Equal(t, byte(0x40), framed[1])

	_, err = Strip(payload)
	assert.ErrorIs(t, err, ErrInvalidSysEx)
}

func TestSplitSyx(t *testing.T) {
	stream := append(Frame([]byte{0x01, 0x02}), Frame([]byte{0x03})...)
	frames, err := SplitSyx(stream)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, []byte{0xF0, 0x01, 0x02, 0xF7}, frames[0])
	assert.Equal(t, []byte{0xF0, 0x03, 0xF7}, frames[1])

	bad := [][]byte{
		{0xF0, 0x01},
		{0x01, 0xF0, 0xF7},
		{0xF0, 0x01, 0xF0, 0xF7},
		{0xF7},
	}
	for _, b := range bad {
		_, err := SplitSyx(b)
		assert.ErrorIs(t, err, ErrInvalidSysEx, "% x", b)
	}

	frames, err = SplitSyx(nil)
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestExtractManufacturerID(t *testing.T) {
	id, err := ExtractManufacturerID([]byte{0xF0, 0x40, 0x00, 0xF7})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x40}, id)

	id, err = ExtractManufacturerID([]byte{0xF0, 0x00, 0x20, 0x32, 0x00, 0xF7})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x20, 0x32}, id)

	_, err = ExtractManufacturerID([]byte{0x40, 0x00, 0x00})
	assert.ErrorIs(t, err, ErrInvalidSysEx)

	_, err = ExtractManufacturerID([]byte{0xF0, 0x00, 0x20})
	assert.ErrorIs(t, err, ErrInvalidSysEx)
}

func TestCheckManufacturer(t *testing.T) {
	assert.NoError(t, CheckManufacturer([]byte{0xF0, 0x40, 0x00, 0xF7}, KawaiManufacturerID))

	err := CheckManufacturer([]byte{0xF0, 0x3E, 0x13, 0xF7}, KawaiManufacturerID)
	assert.ErrorIs(t, err, ErrForeignManufacturer)
	assert.ErrorContains(t, err, "3E")

	err = CheckManufacturer([]byte{0xF0, 0x00, 0x20, 0x32, 0xF7}, KawaiManufacturerID)
	assert.ErrorIs(t, err, ErrForeignManufacturer)

	assert.ErrorIs(t, CheckManufacturer([]byte{0xF0}, KawaiManufacturerID), ErrInvalidSysEx)
}

func TestValidateData(t *testing.T) {
	assert.NoError(t, ValidateData([]byte{0x00, 0x40, 0x7F}))
	assert.NoError(t, ValidateData(nil))

	err := ValidateData([]byte{0x40, 0x00, 0xFF})
	assert.ErrorIs(t, err, ErrInvalidSysEx)
	assert.ErrorContains(t, err, "data byte 2")
}
