package harmonic

// Sine returns the fundamental at full level with every other harmonic off
func Sine() Levels {
	var levels Levels
	levels[0] = MaxLevel
	return levels
}

// SawAmplitude is 1/n for every harmonic
func SawAmplitude(n int) float64 {
	return 1.0 / float64(n)
}

// SquareAmplitude is 1/n for odd harmonics and 0 for even ones
func SquareAmplitude(n int) float64 {
	if n%2 == 0 {
		return 0
	}
	return SawAmplitude(n)
}

// TriangleAmplitude is ±1/n² for odd harmonics, starting positive at the
// fundamental and flipping sign on each following odd harmonic. Even
// harmonics are 0.
func TriangleAmplitude(n int) float64 {
	if n%2 == 0 {
		return 0
	}
	a := 1.0 / float64(n*n)
	// n = 1, 5, 9, ... are positive; n = 3, 7, 11, ... negative
	if (n/2)%2 == 1 {
		a = -a
	}
	return a
}

// Saw returns levels for amplitude 1/n on every harmonic
func Saw() Levels {
	return fromAmplitudes(SawAmplitude)
}

// Square keeps the odd harmonics of Saw and silences the even ones
func Square() Levels {
	return fromAmplitudes(SquareAmplitude)
}

// Triangle returns levels for amplitude 1/n² on odd harmonics. The level
// depends only on |a|, so the alternating sign does not change the table.
func Triangle() Levels {
	return fromAmplitudes(TriangleAmplitude)
}

func fromAmplitudes(amplitude func(n int) float64) Levels {
	var levels Levels
	for i := range levels {
		levels[i] = Quantize(amplitude(i + 1))
	}
	return levels
}
