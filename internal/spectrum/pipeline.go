// Package spectrum turns raw IQ batches into power-per-bin spectra and
// extracts peaks above an estimated noise floor. The power spectrum comes
// from a proper FFT of the complex baseband samples, so peak bin positions
// map to real frequency offsets from the tuned center.
package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// DefaultWindowSize is the number of IQ samples per analysis window.
	DefaultWindowSize = 2048

	// DefaultSampleRate is the capture sample rate in Hz used to map FFT
	// bins to frequency offsets.
	DefaultSampleRate = 2_048_000

	// DefaultNoisePercentile is the percentile of the sorted power spectrum
	// used as the noise floor estimate.
	DefaultNoisePercentile = 25

	// DefaultDetectionMarginDB is added to the noise floor to form the peak
	// detection threshold.
	DefaultDetectionMarginDB = 6.0

	// DefaultFallbackFloorDB is returned as the noise floor when there is no
	// spectrum to estimate from.
	DefaultFallbackFloorDB = -90.0

	powerEpsilon = 1e-10 // keeps log10 finite for empty bins
)

// ErrInsufficientData is returned when an IQ batch is smaller than the
// analysis window.
var ErrInsufficientData = errors.New("spectrum: batch smaller than analysis window")

// Config holds the tunable parameters of the analysis pipeline. The zero
// value of any field selects its default.
type Config struct {
	WindowSize        int     // FFT window size in samples
	SampleRate        float64 // capture sample rate in Hz
	NoisePercentile   int     // noise floor percentile, 0-100
	DetectionMarginDB float64 // dB above noise floor for peak detection
	FallbackFloorDB   float64 // noise floor for empty spectra
}

func (c Config) withDefaults() Config {
	if c.WindowSize <= 0 {
		c.WindowSize = DefaultWindowSize
	}
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.NoisePercentile <= 0 || c.NoisePercentile >= 100 {
		c.NoisePercentile = DefaultNoisePercentile
	}
	if c.DetectionMarginDB == 0 {
		c.DetectionMarginDB = DefaultDetectionMarginDB
	}
	if c.FallbackFloorDB == 0 {
		c.FallbackFloorDB = DefaultFallbackFloorDB
	}
	return c
}

// Pipeline computes power spectra, noise floor estimates and spectral peaks
// from IQ sample batches. It is not safe for concurrent use: the FFT plan
// and scratch buffers are reused between calls.
type Pipeline struct {
	cfg Config

	fft    *fourier.CmplxFFT
	coeffs []complex128
}

// New creates a pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg = cfg.withDefaults()
	return &Pipeline{
		cfg:    cfg,
		fft:    fourier.NewCmplxFFT(cfg.WindowSize),
		coeffs: make([]complex128, cfg.WindowSize),
	}
}

// WindowSize returns the FFT window size in samples.
func (p *Pipeline) WindowSize() int { return p.cfg.WindowSize }

// SampleRate returns the configured sample rate in Hz.
func (p *Pipeline) SampleRate() float64 { return p.cfg.SampleRate }

// BinWidth returns the frequency width of one FFT bin in Hz.
func (p *Pipeline) BinWidth() float64 {
	return p.cfg.SampleRate / float64(p.cfg.WindowSize)
}

// PowerSpectrum computes the per-bin power in dB for one window of IQ
// samples. The result is FFT-shifted: bin 0 is the lowest frequency of the
// span, bin N/2 the tuned center. Returns nil if the batch is smaller than
// the window; extra samples beyond the window are ignored.
func (p *Pipeline) PowerSpectrum(iq []complex128) []float64 {
	n := p.cfg.WindowSize
	if len(iq) < n {
		return nil
	}

	p.fft.Coefficients(p.coeffs, iq[:n])

	spectrum := make([]float64, n)
	scale := float64(n)
	for i := 0; i < n; i++ {
		// Shift so negative frequencies come first.
		raw := p.coeffs[(i+n/2)%n]
		mag := cmplx.Abs(raw) / scale
		spectrum[i] = 10 * math.Log10(mag*mag+powerEpsilon)
	}
	return spectrum
}

// NoiseFloor estimates the background noise level of a power spectrum as
// its configured percentile. Returns the fallback constant for an empty
// spectrum.
func (p *Pipeline) NoiseFloor(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return p.cfg.FallbackFloorDB
	}

	sorted := make([]float64, len(spectrum))
	copy(sorted, spectrum)
	sort.Float64s(sorted)

	idx := len(sorted) * p.cfg.NoisePercentile / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// DetectionThreshold returns the peak detection threshold for the given
// noise floor.
func (p *Pipeline) DetectionThreshold(noiseFloor float64) float64 {
	return noiseFloor + p.cfg.DetectionMarginDB
}

// FindPeaks returns the interior bins whose power exceeds thresholdDB and
// is strictly greater than both neighbors. centerHz is the tuned center
// frequency used to map bins to absolute frequencies; pass 0 for baseband
// offsets only.
func (p *Pipeline) FindPeaks(spectrum []float64, thresholdDB, centerHz float64) []Peak {
	var peaks []Peak
	for i := 1; i < len(spectrum)-1; i++ {
		if spectrum[i] > thresholdDB &&
			spectrum[i] > spectrum[i-1] &&
			spectrum[i] > spectrum[i+1] {
			peaks = append(peaks, Peak{
				Bin:       i,
				Frequency: p.BinFrequency(i, centerHz),
				Power:     spectrum[i],
			})
		}
	}
	return peaks
}

// BinFrequency maps a shifted FFT bin index to an absolute frequency around
// the given center. Bin N/2 maps to the center itself.
func (p *Pipeline) BinFrequency(bin int, centerHz float64) float64 {
	n := p.cfg.WindowSize
	return centerHz + float64(bin-n/2)*p.cfg.SampleRate/float64(n)
}
