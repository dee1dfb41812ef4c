// Package converter turns harmonic level tables into SysEx transmissions
package converter

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// Address selects where on the synth a batch of harmonic messages lands
type Address struct {
	Channel uint8 // MIDI channel 0-15
	Group   uint8 // tone group, added to the device group base
	Source  uint8 // ADD source 0-5
}

func (a Address) String() string {
	return fmt.Sprintf("channel %d group %d source %d", int(a.Channel)+1, a.Group, a.Source)
}

// HarmonicParam is one decoded harmonic level message
type HarmonicParam struct {
	Channel  uint8 `json:"channel"`
	Group    uint8 `json:"group"`
	Source   uint8 `json:"source"`
	Harmonic uint8 `json:"harmonic"` // 0-63
	Level    uint8 `json:"level"`
}

// Address returns where the message was sent
func (p HarmonicParam) Address() Address {
	return Address{Channel: p.Channel, Group: p.Group, Source: p.Source}
}

// Device interface for device-specific harmonic message layouts
type Device interface {
	Name() string
	ManufacturerID() uint8
	// HarmonicPayload returns the message without SysEx framing
	HarmonicPayload(harmonic, channel, level, group, source uint8) []byte
	// HarmonicMessage returns the complete F0 ... F7 message
	HarmonicMessage(harmonic, channel, level, group, source uint8) midi.Message
	ParseHarmonic(payload []byte) (HarmonicParam, error)
}

// Converter handles encoding level tables for a device
type Converter struct {
	device Device
}

// New creates a new Converter with the specified device
func New(device Device) *Converter {
	return &Converter{device: device}
}

// GetDevice returns the current device
func (c *Converter) GetDevice() Device {
	return c.device
}
