// Package render draws waterfall images from stored power spectra: one
// pixel row block per recorded spectrum, frequency on the X axis, time
// flowing down the Y axis.
package render

import (
	"fmt"
	"image"
	"time"

	"github.com/Ben-Santana/RF-Security/internal/storage"
)

// WithTheme sets the color scheme of the waterfall.
func WithTheme(theme Theme) func(*Waterfall) {
	return func(w *Waterfall) {
		w.theme = theme
	}
}

// WithRowHeight sets how many pixel rows each spectrum occupies.
func WithRowHeight(px int) func(*Waterfall) {
	return func(w *Waterfall) {
		if px > 0 {
			w.rowHeight = px
		}
	}
}

// WithFont enables axis annotation using the given TTF font data.
func WithFont(fontBytes []byte) func(*Waterfall) {
	return func(w *Waterfall) {
		w.fontBytes = fontBytes
	}
}

// Waterfall renders spectral rows into an RGBA image.
type Waterfall struct {
	theme     Theme
	rowHeight int
	fontBytes []byte
}

// NewWaterfall creates a renderer with the classic theme and single-pixel
// rows unless overridden.
func NewWaterfall(options ...func(*Waterfall)) *Waterfall {
	w := Waterfall{
		theme:     ClassicTheme,
		rowHeight: 1,
	}

	for _, option := range options {
		option(&w)
	}

	return &w
}

// line is one recorded spectrum reassembled from its bin rows.
type line struct {
	timestamp time.Time
	freqMin   float64
	freqMax   float64
	powers    []float64
}

// Render draws the waterfall for rows ordered by timestamp then frequency,
// as returned by storage.SpectralRows.
func (w *Waterfall) Render(rows []storage.SpectralRow) (*image.RGBA, error) {
	lines := groupLines(rows)
	if len(lines) == 0 {
		return nil, fmt.Errorf("render: no spectra to draw")
	}

	width := 0
	var powers []float64
	for _, l := range lines {
		if len(l.powers) > width {
			width = len(l.powers)
		}
		powers = append(powers, l.powers...)
	}

	mapper := newColorMapper(w.theme, boundsFromPowers(powers))

	img := image.NewRGBA(image.Rect(0, 0, width, len(lines)*w.rowHeight))
	for li, l := range lines {
		for x, power := range l.powers {
			c := mapper.colorFor(power)
			for dy := 0; dy < w.rowHeight; dy++ {
				img.Set(x, li*w.rowHeight+dy, c)
			}
		}
	}

	if w.fontBytes != nil {
		a, err := newAnnotator(w.fontBytes)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		if err := a.annotate(img, lines); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
	}

	return img, nil
}

func groupLines(rows []storage.SpectralRow) []line {
	var lines []line
	for _, r := range rows {
		n := len(lines)
		if n == 0 || !lines[n-1].timestamp.Equal(r.Timestamp) {
			lines = append(lines, line{
				timestamp: r.Timestamp,
				freqMin:   r.Frequency,
				freqMax:   r.Frequency,
			})
			n++
		}

		l := &lines[n-1]
		l.powers = append(l.powers, r.Power)
		if r.Frequency < l.freqMin {
			l.freqMin = r.Frequency
		}
		if r.Frequency > l.freqMax {
			l.freqMax = r.Frequency
		}
	}
	return lines
}
