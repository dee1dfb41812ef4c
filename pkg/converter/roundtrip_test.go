package converter_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/james-see/k5000wave/pkg/converter"
	"github.com/james-see/k5000wave/pkg/converter/devices"
	"github.com/james-see/k5000wave/pkg/harmonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

func TestK5000HexTransmission(t *testing.T) {
	conv := converter.New(devices.NewK5000())

	lines, err := conv.HexLines(harmonic.Sine(), converter.Address{})
	require.NoError(t, err)
	require.Len(t, lines, harmonic.HarmonicCount)
	assert.Equal(t, "40 00 10 00 0a 02 40 00 00 00 00 7f", lines[0])
	assert.Equal(t, "40 00 10 00 0a 02 40 00 3f 00 00 00", lines[63])
}

func TestK5000RoundTripFormats(t *testing.T) {
	conv := converter.New(devices.NewK5000())
	levels := harmonic.Random(harmonic.NewSource(99))
	addr := converter.Address{Channel: 5, Group: 1, Source: 2}

	for _, format := range converter.GetSupportedFormats() {
		t.Run(string(format), func(t *testing.T) {
			data, err := conv.Export(format, levels, addr, converter.Options{MIDIDevice: "K5000"})
			require.NoError(t, err)

			params, err := conv.Decode(format, data)
			require.NoError(t, err)
			require.Len(t, params, harmonic.HarmonicCount)
			for _, p := range params {
				assert.Equal(t, addr.Channel, p.Channel)
				assert.Equal(t, addr.Group, p.Group)
				assert.Equal(t, addr.Source, p.Source)
			}

			got, err := converter.LevelsFrom(params)
			require.NoError(t, err)
			assert.Equal(t, levels, got)
		})
	}
}

func TestK5000SyxStream(t *testing.T) {
	conv := converter.New(devices.NewK5000())
	data := conv.Syx(harmonic.Triangle(), converter.Address{})
	assert.Len(t, data, harmonic.HarmonicCount*(devices.HarmonicPayloadSize+2))

	frames, err := converter.SplitSyx(data)
	require.NoError(t, err)
	for _, f := range frames {
		assert.NoError(t, converter.ValidateSyx(f))
		assert.NoError(t, converter.CheckManufacturer(f, converter.KawaiManufacturerID))
	}
}

func TestK5000SendMIDIDevice(t *testing.T) {
	conv := converter.New(devices.NewK5000())
	data, err := conv.Export(converter.FormatSendMIDI, harmonic.Saw(), converter.Address{}, converter.Options{MIDIDevice: "K5000S"})
	require.NoError(t, err)
	first := strings.SplitN(string(data), "\n", 2)[0]
	assert.Equal(t, `sendmidi dev "K5000S" hex syx 40 00 10 00 0a 02 40 00 00 00 00 7f`, first)
}

func TestExportFile(t *testing.T) {
	conv := converter.New(devices.NewK5000())
	dir := t.TempDir()

	path := filepath.Join(dir, "square.syx")
	require.NoError(t, conv.ExportFile(path, harmonic.Square(), converter.Address{}, converter.Options{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, converter.FormatSyx, converter.DetectFormatFromContent(data))

	path = filepath.Join(dir, "square.mid")
	require.NoError(t, conv.ExportFile(path, harmonic.Square(), converter.Address{}, converter.Options{}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, converter.FormatMIDI, converter.DetectFormatFromContent(data))

	err = conv.ExportFile(filepath.Join(dir, "square.seq"), harmonic.Square(), converter.Address{}, converter.Options{})
	assert.Error(t, err)
}

func TestK5000DecodeRejectsEightBitLevel(t *testing.T) {
	conv := converter.New(devices.NewK5000())
	lines, err := conv.HexLines(harmonic.Sine(), converter.Address{})
	require.NoError(t, err)
	lines[0] = "40 00 10 00 0a 02 40 00 00 00 00 ff"

	_, err = conv.Decode(converter.FormatHex, []byte(strings.Join(lines, "\n")))
	assert.ErrorIs(t, err, converter.ErrInvalidSysEx)
	assert.ErrorContains(t, err, "message 1")
}

func TestK5000DecodeRejectsForeignMIDI(t *testing.T) {
	foreign := converter.NewMIDIConverter()
	data, err := foreign.GenerateMIDI([]midi.Message{midi.SysEx([]byte{0x3E, 0x13, 0x00, 0x01})})
	require.NoError(t, err)

	_, err = converter.New(devices.NewK5000()).Decode(converter.FormatMIDI, data)
	assert.ErrorIs(t, err, converter.ErrForeignManufacturer)
}
