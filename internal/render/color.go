package render

import (
	"image/color"
	"math"
	"sort"
)

// Theme selects the power-to-color scheme of the waterfall.
type Theme string

const (
	ClassicTheme   Theme = "classic"   // blue to red transition
	GrayscaleTheme Theme = "grayscale" // black to white transition
	ThermalTheme   Theme = "thermal"   // black to red to yellow to white

	colorMapSize = 256
)

// PowerBounds is the dB range mapped onto the color scale.
type PowerBounds struct {
	Min float64
	Max float64
}

// boundsFromPowers derives display bounds from the 5th and 95th power
// percentiles, so a few hot bins don't wash out the picture.
func boundsFromPowers(powers []float64) PowerBounds {
	if len(powers) == 0 {
		return PowerBounds{Min: -120, Max: -20}
	}

	sorted := make([]float64, len(powers))
	copy(sorted, powers)
	sort.Float64s(sorted)

	lo := sorted[len(sorted)*5/100]
	hi := sorted[len(sorted)*95/100]
	if hi-lo < 10 {
		mid := (hi + lo) / 2
		lo, hi = mid-5, mid+5
	}
	return PowerBounds{Min: lo, Max: hi}
}

// colorMapper maps power values onto a pre-computed color scale.
type colorMapper struct {
	colors        []color.Color
	boundsMin     float64
	powerPerIndex float64
}

func newColorMapper(theme Theme, bounds PowerBounds) *colorMapper {
	fn := themeFunc(theme)

	cm := colorMapper{
		colors:        make([]color.Color, colorMapSize),
		boundsMin:     bounds.Min,
		powerPerIndex: (bounds.Max - bounds.Min) / float64(colorMapSize-1),
	}
	for i := range cm.colors {
		cm.colors[i] = fn(float64(i) / float64(colorMapSize-1))
	}
	return &cm
}

func (cm *colorMapper) colorFor(power float64) color.Color {
	index := int((power - cm.boundsMin) / cm.powerPerIndex)
	if index < 0 {
		return cm.colors[0]
	}
	if index >= len(cm.colors) {
		return cm.colors[len(cm.colors)-1]
	}
	return cm.colors[index]
}

func themeFunc(theme Theme) func(float64) color.Color {
	switch theme {
	case GrayscaleTheme:
		return func(p float64) color.Color {
			v := uint8(math.Pow(p, 0.7) * 255)
			return color.RGBA{R: v, G: v, B: v, A: 255}
		}

	case ThermalTheme:
		return func(p float64) color.Color {
			switch {
			case p < 0.33:
				return color.RGBA{R: uint8(p * 3 * 255), A: 255}
			case p < 0.66:
				return color.RGBA{R: 255, G: uint8((p - 0.33) * 3 * 255), A: 255}
			default:
				return color.RGBA{R: 255, G: 255, B: uint8((p - 0.66) * 3 * 255), A: 255}
			}
		}

	default: // ClassicTheme
		return func(p float64) color.Color {
			return hsv{
				h: 240 - (p * 240),
				s: 0.9 + (p * 0.1),
				v: math.Pow(p, 0.7),
			}.rgb()
		}
	}
}

// hsv is a color in hue/saturation/value space.
type hsv struct {
	h float64 // degrees [0-360]
	s float64 // [0-1]
	v float64 // [0-1]
}

func (c hsv) rgb() color.Color {
	if c.s <= 0 {
		v := uint8(c.v * 255)
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}

	h := c.h
	if h >= 360 {
		h -= 360
	}
	h /= 60

	i := int(h)
	f := h - float64(i)

	v := uint8(c.v * 255)
	p := uint8((c.v * (1 - c.s)) * 255)
	q := uint8((c.v * (1 - (c.s * f))) * 255)
	t := uint8((c.v * (1 - (c.s * (1 - f)))) * 255)

	switch i {
	case 0:
		return color.RGBA{R: v, G: t, B: p, A: 255}
	case 1:
		return color.RGBA{R: q, G: v, B: p, A: 255}
	case 2:
		return color.RGBA{R: p, G: v, B: t, A: 255}
	case 3:
		return color.RGBA{R: p, G: q, B: v, A: 255}
	case 4:
		return color.RGBA{R: t, G: p, B: v, A: 255}
	default:
		return color.RGBA{R: v, G: p, B: q, A: 255}
	}
}
