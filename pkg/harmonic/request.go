package harmonic

import (
	"log/slog"
	"strings"
)

// Request describes a table as supplied by a caller: a selector, the custom
// parameter string (or preset name) and an optional random seed.
type Request struct {
	Waveform string
	Params   string
	Seed     uint64 // 0 means time seeded
}

// Resolve parses the request and computes its level table
func (r Request) Resolve() (Waveform, Levels, error) {
	w, err := ParseWaveform(r.Waveform)
	if err != nil {
		return "", Levels{}, err
	}

	var params *Params
	if w == WaveformCustom {
		if strings.TrimSpace(r.Params) == "" {
			return w, Levels{}, ErrMissingParams
		}
		p, err := ResolveParams(r.Params)
		if err != nil {
			return w, Levels{}, err
		}
		params = &p
		slog.Debug("custom parameters", "params", p.String())
	}

	var src Source
	if r.Seed != 0 {
		src = NewSource(r.Seed)
	}

	levels, err := Compute(w, params, src)
	if err != nil {
		return w, Levels{}, err
	}
	return w, levels, nil
}
