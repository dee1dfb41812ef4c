package harmonic

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParamCount is the number of comma separated values ParseParams expects
const ParamCount = 7

var ErrParamCount = fmt.Errorf("expected %d comma separated values", ParamCount)

var paramNames = [ParamCount]string{"a", "b", "c", "xp", "d", "e", "yp"}

// ParseError reports which custom parameter token could not be used.
// Index is -1 when the token count itself is wrong.
type ParseError struct {
	Index int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid custom parameters %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("invalid custom parameter %s (#%d) %q: %v", paramNames[e.Index], e.Index+1, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseParams parses "a,b,c,xp,d,e,yp". All seven values are mandatory.
func ParseParams(s string) (Params, error) {
	tokens := strings.Split(s, ",")
	if len(tokens) != ParamCount {
		return Params{}, &ParseError{Index: -1, Token: s, Err: ErrParamCount}
	}

	var values [ParamCount]float64
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) {
				err = numErr.Err
			}
			return Params{}, &ParseError{Index: i, Token: tok, Err: err}
		}
		values[i] = v
	}

	return Params{
		A:  values[0],
		B:  values[1],
		C:  values[2],
		XP: values[3],
		D:  values[4],
		E:  values[5],
		YP: values[6],
	}, nil
}

// String formats p in the form accepted by ParseParams
func (p Params) String() string {
	values := []float64{p.A, p.B, p.C, p.XP, p.D, p.E, p.YP}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

var presets = map[string]Params{
	"saw":      {A: 1},
	"square":   {A: 1, B: 1, XP: 0.5},
	"triangle": {A: 2, B: 1, XP: 0.5},
	"pulse20":  {A: 1, B: 1, XP: 0.2},
}

// Presets returns the names of the built-in custom parameter sets, sorted
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParamsFor looks up a built-in custom parameter set by name
func ParamsFor(name string) (Params, bool) {
	p, ok := presets[strings.ToLower(name)]
	return p, ok
}

// ResolveParams accepts either a preset name or a 7-value parameter list
func ResolveParams(s string) (Params, error) {
	if p, ok := ParamsFor(strings.TrimSpace(s)); ok {
		return p, nil
	}
	return ParseParams(s)
}
