package converter

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-see/k5000wave/pkg/harmonic"
	"gitlab.com/gomidi/midi/v2"
)

// Format represents an output format for a harmonic transmission
type Format string

const (
	FormatHex      Format = "hex"
	FormatSendMIDI Format = "sendmidi"
	FormatSyx      Format = "syx"
	FormatMIDI     Format = "midi"
	FormatUnknown  Format = "unknown"
)

// DefaultMIDIDevice is the sendmidi output port used when none is given
const DefaultMIDIDevice = "MIDI Out"

// ParseFormat resolves a format name
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "hex":
		return FormatHex, nil
	case "sendmidi":
		return FormatSendMIDI, nil
	case "syx", "sysex":
		return FormatSyx, nil
	case "midi", "mid", "smf":
		return FormatMIDI, nil
	default:
		return FormatUnknown, fmt.Errorf("unsupported format %q", name)
	}
}

// DetectFormat detects the format of a file based on extension
func DetectFormat(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".mid", ".midi":
		return FormatMIDI
	case ".syx":
		return FormatSyx
	case ".txt", ".hex":
		return FormatHex
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent detects format from file content
func DetectFormatFromContent(data []byte) Format {
	if len(data) < 4 {
		return FormatUnknown
	}

	// Check for MIDI file signature "MThd"
	if string(data[:4]) == "MThd" {
		return FormatMIDI
	}

	// Check for SysEx (starts with F0)
	if data[0] == SysExStart {
		return FormatSyx
	}

	if strings.HasPrefix(string(data), "sendmidi") {
		return FormatSendMIDI
	}

	return FormatHex
}

// Messages encodes one framed message per harmonic, in ascending order
func (c *Converter) Messages(levels harmonic.Levels, addr Address) []midi.Message {
	messages := make([]midi.Message, harmonic.HarmonicCount)
	for i, level := range levels {
		messages[i] = c.device.HarmonicMessage(uint8(i), addr.Channel, level, addr.Group, addr.Source)
	}
	return messages
}

// Payloads returns the messages with their SysEx framing removed
func (c *Converter) Payloads(levels harmonic.Levels, addr Address) ([][]byte, error) {
	payloads := make([][]byte, 0, harmonic.HarmonicCount)
	for i, msg := range c.Messages(levels, addr) {
		payload, err := Strip(msg.Bytes())
		if err != nil {
			return nil, fmt.Errorf("harmonic %d: %w", i+1, err)
		}
		payloads = append(payloads, payload)
	}
	return payloads, nil
}

// HexString renders bytes as lowercase two digit hex tokens separated by spaces
func HexString(data []byte) string {
	tokens := make([]string, len(data))
	for i, b := range data {
		tokens[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(tokens, " ")
}

// HexLines returns one hex payload line per harmonic
func (c *Converter) HexLines(levels harmonic.Levels, addr Address) ([]string, error) {
	payloads, err := c.Payloads(levels, addr)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(payloads))
	for i, p := range payloads {
		lines[i] = HexString(p)
	}
	return lines, nil
}

// SendMIDILines returns one sendmidi invocation per harmonic
func (c *Converter) SendMIDILines(levels harmonic.Levels, addr Address, device string) ([]string, error) {
	if device == "" {
		device = DefaultMIDIDevice
	}
	lines, err := c.HexLines(levels, addr)
	if err != nil {
		return nil, err
	}
	for i, l := range lines {
		lines[i] = fmt.Sprintf("sendmidi dev %q hex syx %s", device, l)
	}
	return lines, nil
}

// Syx returns the concatenated framed messages as a .syx stream
func (c *Converter) Syx(levels harmonic.Levels, addr Address) []byte {
	var buf bytes.Buffer
	for _, msg := range c.Messages(levels, addr) {
		buf.Write(msg.Bytes())
	}
	return buf.Bytes()
}

// MIDI returns a Standard MIDI File with one SysEx event per harmonic
func (c *Converter) MIDI(levels harmonic.Levels, addr Address) ([]byte, error) {
	return NewMIDIConverter().GenerateMIDI(c.Messages(levels, addr))
}

// Options tune text output
type Options struct {
	MIDIDevice string // sendmidi port name
}

// Export renders levels in the requested format
func (c *Converter) Export(format Format, levels harmonic.Levels, addr Address, opts Options) ([]byte, error) {
	switch format {
	case FormatHex:
		lines, err := c.HexLines(levels, addr)
		if err != nil {
			return nil, err
		}
		return []byte(strings.Join(lines, "\n") + "\n"), nil
	case FormatSendMIDI:
		lines, err := c.SendMIDILines(levels, addr, opts.MIDIDevice)
		if err != nil {
			return nil, err
		}
		return []byte(strings.Join(lines, "\n") + "\n"), nil
	case FormatSyx:
		return c.Syx(levels, addr), nil
	case FormatMIDI:
		return c.MIDI(levels, addr)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Write renders levels in the requested format to w
func (c *Converter) Write(w io.Writer, format Format, levels harmonic.Levels, addr Address, opts Options) error {
	data, err := c.Export(format, levels, addr, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ExportFile writes levels to path, choosing the format from its extension
func (c *Converter) ExportFile(path string, levels harmonic.Levels, addr Address, opts Options) error {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return errors.New("cannot determine output format from filename")
	}

	data, err := c.Export(format, levels, addr, opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// Decode parses harmonic messages from data in the given format. Hex and
// sendmidi input holds one message per line; blank lines are skipped. Every
// message must carry the device's manufacturer ID.
func (c *Converter) Decode(format Format, data []byte) ([]HarmonicParam, error) {
	var frames [][]byte

	switch format {
	case FormatSyx:
		var err error
		frames, err = SplitSyx(data)
		if err != nil {
			return nil, err
		}
	case FormatMIDI:
		payloads, err := NewMIDIConverter().ParseMIDI(data)
		if err != nil {
			return nil, err
		}
		for _, p := range payloads {
			frames = append(frames, Frame(p))
		}
	case FormatHex, FormatSendMIDI:
		for n, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			p, err := DecodeHex(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n+1, err)
			}
			frames = append(frames, Frame(p))
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	params := make([]HarmonicParam, 0, len(frames))
	for i, f := range frames {
		if err := CheckManufacturer(f, c.device.ManufacturerID()); err != nil {
			return nil, fmt.Errorf("message %d: %w", i+1, err)
		}
		payload, err := Strip(f)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i+1, err)
		}
		hp, err := c.device.ParseHarmonic(payload)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i+1, err)
		}
		params = append(params, hp)
	}
	return params, nil
}

// DecodeHex parses a line of hex tokens. A leading sendmidi command and any
// F0/F7 framing are dropped.
func DecodeHex(line string) ([]byte, error) {
	if i := strings.LastIndex(line, " syx "); i >= 0 {
		line = line[i+len(" syx "):]
	}
	data, err := hex.DecodeString(strings.Join(strings.Fields(line), ""))
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	if len(data) > 0 && data[0] == SysExStart {
		return Strip(data)
	}
	return data, nil
}

// LevelsFrom rebuilds a table from decoded messages. Every harmonic must
// appear exactly once and all messages must share one address.
func LevelsFrom(params []HarmonicParam) (harmonic.Levels, error) {
	var levels harmonic.Levels
	var seen [harmonic.HarmonicCount]bool
	for _, p := range params {
		if p.Address() != params[0].Address() {
			return harmonic.Levels{}, fmt.Errorf("harmonic %d addressed to %s, want %s", p.Harmonic+1, p.Address(), params[0].Address())
		}
		if int(p.Harmonic) >= harmonic.HarmonicCount {
			return harmonic.Levels{}, fmt.Errorf("harmonic index %d out of range", p.Harmonic)
		}
		if seen[p.Harmonic] {
			return harmonic.Levels{}, fmt.Errorf("duplicate harmonic %d", p.Harmonic+1)
		}
		seen[p.Harmonic] = true
		if p.Level > harmonic.MaxLevel {
			return harmonic.Levels{}, fmt.Errorf("harmonic %d level %d out of range", p.Harmonic+1, p.Level)
		}
		levels[p.Harmonic] = p.Level
	}
	for i, ok := range seen {
		if !ok {
			return harmonic.Levels{}, fmt.Errorf("missing harmonic %d", i+1)
		}
	}
	return levels, nil
}

// GetSupportedFormats returns the output formats Export understands
func GetSupportedFormats() []Format {
	return []Format{FormatHex, FormatSendMIDI, FormatSyx, FormatMIDI}
}
