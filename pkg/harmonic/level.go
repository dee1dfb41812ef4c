package harmonic

import "math"

// Calibration of the K5000 level curve: 8 level steps per octave of amplitude
// below full scale.
const (
	levelsPerOctave = 8.0
	levelOffset     = MaxLevel
)

// LevelOf returns floor(log2(|a|)*8 + 127) without clamping. Values outside
// 0-127 are possible for amplitudes above 1 or below about 2^-16.
func LevelOf(a float64) int {
	return int(math.Floor(math.Log2(math.Abs(a))*levelsPerOctave + levelOffset))
}

// Quantize converts an amplitude to a device level, clamped to 0-127.
// A zero amplitude is silent and maps to level 0.
func Quantize(a float64) uint8 {
	if a == 0 {
		return 0
	}
	return clamp(LevelOf(a))
}

func clamp(level int) uint8 {
	switch {
	case level < 0:
		return 0
	case level > MaxLevel:
		return MaxLevel
	default:
		return uint8(level)
	}
}
