package converter

import (
	"errors"
	"fmt"
)

// SysEx constants
const (
	SysExStart = 0xF0
	SysExEnd   = 0xF7
)

// KawaiManufacturerID is the single byte MMA ID assigned to Kawai
const KawaiManufacturerID = 0x40

var (
	ErrInvalidSysEx        = errors.New("invalid SysEx")
	ErrForeignManufacturer = errors.New("message from another manufacturer")
)

// ValidateSyx validates a single framed SysEx message
func ValidateSyx(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("%w: data too short", ErrInvalidSysEx)
	}

	if data[0] != SysExStart {
		return fmt.Errorf("%w: expected start byte 0x%02X, got 0x%02X", ErrInvalidSysEx, SysExStart, data[0])
	}

	if data[len(data)-1] != SysExEnd {
		return fmt.Errorf("%w: expected end byte 0x%02X, got 0x%02X", ErrInvalidSysEx, SysExEnd, data[len(data)-1])
	}

	return ValidateData(data[1 : len(data)-1])
}

// ValidateData checks that every byte of an unframed body is 7-bit MIDI data
func ValidateData(body []byte) error {
	for i, b := range body {
		if b > 0x7F {
			return fmt.Errorf("%w: data byte %d is > 127 (0x%02X)", ErrInvalidSysEx, i, b)
		}
	}
	return nil
}

// Strip validates a framed message and returns the bytes between F0 and F7
func Strip(data []byte) ([]byte, error) {
	if err := ValidateSyx(data); err != nil {
		return nil, err
	}
	payload := make([]byte, len(data)-2)
	copy(payload, data[1:len(data)-1])
	return payload, nil
}

// Frame wraps a payload in F0 ... F7
func Frame(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+2)
	out = append(out, SysExStart)
	out = append(out, payload...)
	return append(out, SysExEnd)
}

// SplitSyx splits a .syx stream of concatenated messages into frames
func SplitSyx(data []byte) ([][]byte, error) {
	var frames [][]byte
	start := -1
	for i, b := range data {
		switch {
		case b == SysExStart:
			if start >= 0 {
				return nil, fmt.Errorf("%w: unterminated message at offset %d", ErrInvalidSysEx, start)
			}
			start = i
		case b == SysExEnd:
			if start < 0 {
				return nil, fmt.Errorf("%w: end byte without start at offset %d", ErrInvalidSysEx, i)
			}
			frames = append(frames, data[start:i+1])
			start = -1
		case start < 0:
			return nil, fmt.Errorf("%w: stray byte 0x%02X at offset %d", ErrInvalidSysEx, b, i)
		}
	}
	if start >= 0 {
		return nil, fmt.Errorf("%w: unterminated message at offset %d", ErrInvalidSysEx, start)
	}
	return frames, nil
}

// ExtractManufacturerID returns the one or three byte manufacturer ID that
// follows F0. Three byte IDs start with 00.
func ExtractManufacturerID(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != SysExStart {
		return nil, fmt.Errorf("%w: no manufacturer ID", ErrInvalidSysEx)
	}
	n := 1
	if data[1] == 0x00 {
		n = 3
	}
	if len(data) < 1+n {
		return nil, fmt.Errorf("%w: truncated %d byte manufacturer ID", ErrInvalidSysEx, n)
	}
	return data[1 : 1+n], nil
}

// CheckManufacturer fails unless the framed message carries the single byte
// manufacturer ID want
func CheckManufacturer(data []byte, want uint8) error {
	id, err := ExtractManufacturerID(data)
	if err != nil {
		return err
	}
	if len(id) != 1 || id[0] != want {
		return fmt.Errorf("%w: manufacturer ID % X, want %02X", ErrForeignManufacturer, id, want)
	}
	return nil
}
