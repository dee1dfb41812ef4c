package harmonic

import (
	"fmt"
	"log/slog"
	"math"
)

// Params are the seven coefficients of the custom waveform formula
//
//	a(n) = (1/a^n) · sin(nπ·xp)^b · cos(nπ·xp)^c · sin(nπ·yp)^d · cos(nπ·yp)^e
type Params struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	C  float64 `json:"c"`
	XP float64 `json:"xp"`
	D  float64 `json:"d"`
	E  float64 `json:"e"`
	YP float64 `json:"yp"`
}

// CustomAmplitude evaluates the custom formula for harmonic n. It fails with
// ErrDomain when a is zero or any term leaves the real numbers (a negative
// base raised to a fractional power, zero raised to a negative power).
func CustomAmplitude(n int, p Params) (float64, error) {
	if p.A == 0 {
		return 0, fmt.Errorf("%w: harmonic %d: a must not be zero", ErrDomain, n)
	}

	x := float64(n) * math.Pi * p.XP
	y := float64(n) * math.Pi * p.YP

	scale := 1.0 / math.Pow(p.A, float64(n))
	xTerm := math.Pow(math.Sin(x), p.B) * math.Pow(math.Cos(x), p.C)
	yTerm := math.Pow(math.Sin(y), p.D) * math.Pow(math.Cos(y), p.E)

	a := scale * xTerm * yTerm
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0, fmt.Errorf("%w: harmonic %d: amplitude is %v", ErrDomain, n, a)
	}
	return a, nil
}

// Custom evaluates the custom formula for every harmonic. The first domain
// error aborts the whole table.
func Custom(p Params) (Levels, error) {
	var levels Levels
	for i := range levels {
		n := i + 1
		a, err := CustomAmplitude(n, p)
		if err != nil {
			return Levels{}, err
		}
		levels[i] = Quantize(a)
		slog.Debug("custom harmonic", "n", n, "amplitude", a, "level", levels[i])
	}
	return levels, nil
}
