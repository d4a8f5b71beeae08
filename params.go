package qtermsim

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// piAngleRegex matches pi, 2pi, 2*pi, pi/2, 3*pi/4, -pi/2 and so on.
var piAngleRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// ParseAngle parses a gate parameter written as a plain number or as a pi
// expression ("pi", "pi/2", "3*pi/4", "-2pi").
func ParseAngle(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty angle")
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}

	m := piAngleRegex.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, errors.Errorf("invalid angle %q", s)
	}
	v := math.Pi
	if m[2] != "" {
		coeff, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid angle %q", s)
		}
		v *= coeff
	}
	if m[3] != "" {
		denom, err := strconv.ParseFloat(m[3], 64)
		if err != nil || denom == 0 {
			return 0, errors.Errorf("invalid angle denominator in %q", s)
		}
		v /= denom
	}
	if m[1] == "-" {
		v = -v
	}
	return v, nil
}

// parseAngles parses a comma-separated parameter list.
func parseAngles(list string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(list, ",") {
		v, err := ParseAngle(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// piForms are the fractions of pi formatParam prints symbolically.
var piForms = []struct {
	value   float64
	display string
}{
	{2 * math.Pi, "2*pi"},
	{math.Pi, "pi"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 8, "pi/8"},
	{3 * math.Pi / 4, "3*pi/4"},
	{3 * math.Pi / 2, "3*pi/2"},
	{2 * math.Pi / 3, "2*pi/3"},
}

// formatParam prints an angle, using pi notation for common fractions.
func formatParam(v float64) string {
	for _, pf := range piForms {
		if math.Abs(v-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(v+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
