package converter

import (
	"bytes"
	"errors"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// MIDIConverter writes and reads Standard MIDI Files carrying SysEx events
type MIDIConverter struct {
	ticksPerQuarter uint16
	tempo           float64
	spacing         uint32 // ticks between consecutive SysEx events
}

// NewMIDIConverter creates a new MIDI converter
func NewMIDIConverter() *MIDIConverter {
	return &MIDIConverter{
		ticksPerQuarter: 480,
		tempo:           120.0,
		spacing:         10,
	}
}

// GenerateMIDI creates a single track SMF with one SysEx event per message.
// Events are spaced a few ticks apart so the synth has time to apply each one.
func (m *MIDIConverter) GenerateMIDI(messages []midi.Message) ([]byte, error) {
	if len(messages) == 0 {
		return nil, errors.New("no messages to write")
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(m.ticksPerQuarter)

	var track smf.Track

	// Add tempo meta event
	microsecondsPerBeat := uint32(60000000.0 / m.tempo)
	tempoData := smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	})
	track.Add(0, tempoData)

	for i, msg := range messages {
		if err := ValidateSyx(msg.Bytes()); err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		var delta uint32
		if i > 0 {
			delta = m.spacing
		}
		track.Add(delta, msg)
	}

	// Add end of track
	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	// Write to buffer
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}

	return buf.Bytes(), nil
}

// ParseMIDI reads an SMF and returns the payload of every SysEx event in
// track order, without F0/F7 framing.
func (m *MIDIConverter) ParseMIDI(data []byte) ([][]byte, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	var payloads [][]byte
	for _, track := range s.Tracks {
		for _, ev := range track {
			msg := []byte(ev.Message)
			if len(msg) < 2 || msg[0] != SysExStart {
				continue
			}
			// The reader may or may not keep the trailing F7
			body := msg[1:]
			if body[len(body)-1] == SysExEnd {
				body = body[:len(body)-1]
			}
			payload := make([]byte, len(body))
			copy(payload, body)
			payloads = append(payloads, payload)
		}
	}

	if len(payloads) == 0 {
		return nil, errors.New("no SysEx events in MIDI data")
	}
	return payloads, nil
}
