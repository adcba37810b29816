package sdr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Frequency is a frequency in Hz that unmarshals from either a plain number
// or an SI string like "433.92 MHz".
type Frequency float64

// Hz returns the frequency as a plain float64 in Hz.
func (f Frequency) Hz() float64 {
	return float64(f)
}

func (f *Frequency) UnmarshalYAML(value *yaml.Node) error {
	raw := strings.TrimSpace(value.Value)

	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*f = Frequency(v)
		return nil
	}

	v, unit, err := humanize.ParseSI(raw)
	if err != nil {
		return fmt.Errorf("sdr.Frequency: failed to parse %q: %w", raw, err)
	}
	if unit != "Hz" && unit != "" {
		return fmt.Errorf("sdr.Frequency: unexpected unit %q in %q", unit, raw)
	}

	*f = Frequency(v)
	return nil
}

func (f Frequency) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}

func (f Frequency) String() string {
	fract, suffix := humanize.ComputeSI(float64(f))
	return fmt.Sprintf("%g %sHz", fract, suffix)
}
