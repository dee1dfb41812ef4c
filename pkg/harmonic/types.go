// Package harmonic computes K5000 harmonic level tables from waveform models
package harmonic

import (
	"errors"
	"fmt"
	"strings"
)

// Table dimensions and level range of the K5000 ADD source
const (
	HarmonicCount = 64
	MaxLevel      = 127
)

// Levels holds one level (0-127) per harmonic; index 0 is harmonic 1
type Levels [HarmonicCount]uint8

// Ints returns the table as a plain int slice
func (l Levels) Ints() []int {
	out := make([]int, len(l))
	for i, v := range l {
		out[i] = int(v)
	}
	return out
}

// Waveform selects the model used to build a level table
type Waveform string

const (
	WaveformSine     Waveform = "sine"
	WaveformSaw      Waveform = "saw"
	WaveformSquare   Waveform = "square"
	WaveformTriangle Waveform = "triangle"
	WaveformCustom   Waveform = "custom"
	WaveformRandom   Waveform = "random"
)

var (
	ErrUnsupportedWaveform = errors.New("unsupported waveform")
	ErrMissingParams       = errors.New("custom waveform requires 7 parameters")
	ErrDomain              = errors.New("amplitude out of domain")
)

// Waveforms returns the supported waveform selectors in display order
func Waveforms() []Waveform {
	return []Waveform{
		WaveformSine,
		WaveformSaw,
		WaveformSquare,
		WaveformTriangle,
		WaveformCustom,
		WaveformRandom,
	}
}

// ParseWaveform resolves a selector string, accepting "sawtooth" for saw
func ParseWaveform(s string) (Waveform, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "sawtooth" {
		return WaveformSaw, nil
	}
	for _, w := range Waveforms() {
		if string(w) == name {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedWaveform, s)
}

// Description returns a short human readable summary of the model
func (w Waveform) Description() string {
	switch w {
	case WaveformSine:
		return "Fundamental only"
	case WaveformSaw:
		return "All harmonics at 1/n"
	case WaveformSquare:
		return "Odd harmonics at 1/n"
	case WaveformTriangle:
		return "Odd harmonics at 1/n², alternating sign"
	case WaveformCustom:
		return "Parametric formula (a,b,c,xp,d,e,yp)"
	case WaveformRandom:
		return "Uniform random levels"
	default:
		return ""
	}
}

// Compute builds the level table for w. params is required for WaveformCustom
// and ignored otherwise; src is only used by WaveformRandom and may be nil.
func Compute(w Waveform, params *Params, src Source) (Levels, error) {
	switch w {
	case WaveformSine:
		return Sine(), nil
	case WaveformSaw:
		return Saw(), nil
	case WaveformSquare:
		return Square(), nil
	case WaveformTriangle:
		return Triangle(), nil
	case WaveformCustom:
		if params == nil {
			return Levels{}, ErrMissingParams
		}
		return Custom(*params)
	case WaveformRandom:
		return Random(src), nil
	default:
		return Levels{}, fmt.Errorf("%w: %q", ErrUnsupportedWaveform, string(w))
	}
}
