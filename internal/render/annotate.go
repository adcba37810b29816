package render

import (
	"fmt"
	"image"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"golang.org/x/image/font"
)

const (
	fontDPI     = 72
	fontSize    = 12
	labelPitchX = 250 // px between frequency labels
	labelPitchY = 100 // px between time labels
)

type annotator struct {
	context *freetype.Context
}

func newAnnotator(fontBytes []byte) (*annotator, error) {
	parsedFont, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	context := freetype.NewContext()
	context.SetDPI(fontDPI)
	context.SetFont(parsedFont)
	context.SetFontSize(fontSize)
	context.SetSrc(image.White)
	context.SetHinting(font.HintingFull)

	return &annotator{context: context}, nil
}

func (a *annotator) annotate(img *image.RGBA, lines []line) error {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)

	if err := a.drawFrequencyScale(img, lines[0]); err != nil {
		return fmt.Errorf("drawing frequency scale: %w", err)
	}
	if err := a.drawTimeScale(img, lines); err != nil {
		return fmt.Errorf("drawing time scale: %w", err)
	}
	return nil
}

func (a *annotator) drawFrequencyScale(img *image.RGBA, first line) error {
	width := img.Bounds().Dx()
	count := width / labelPitchX
	if count == 0 {
		count = 1
	}

	hzPerLabel := (first.freqMax - first.freqMin) / float64(count)
	for si := 0; si < count; si++ {
		hz := first.freqMin + float64(si)*hzPerLabel
		px := si * labelPitchX

		// guideline on the exact frequency
		for y := 0; y < 20; y++ {
			img.Set(px, y, image.White)
		}

		fract, suffix := humanize.ComputeSI(hz)
		pt := freetype.Pt(px+4, 14)
		if _, err := a.context.DrawString(fmt.Sprintf("%0.3f %sHz", fract, suffix), pt); err != nil {
			return err
		}
	}
	return nil
}

func (a *annotator) drawTimeScale(img *image.RGBA, lines []line) error {
	height := img.Bounds().Dy()
	linesPerPx := float64(len(lines)) / float64(height)

	for py := labelPitchY; py < height; py += labelPitchY {
		li := int(float64(py) * linesPerPx)
		if li >= len(lines) {
			break
		}

		for x := 0; x < 40; x++ {
			img.Set(x, py, image.White)
		}

		pt := freetype.Pt(3, py-3)
		if _, err := a.context.DrawString(lines[li].timestamp.Format("15:04:05"), pt); err != nil {
			return err
		}
	}
	return nil
}
