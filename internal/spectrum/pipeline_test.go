package spectrum

import (
	"math"
	"testing"
)

// tone synthesizes n IQ samples of a complex exponential that lands exactly
// in shifted FFT bin, with the given linear amplitude.
func tone(n, bin int, amp float64) []complex128 {
	iq := make([]complex128, n)
	for k := range iq {
		phase := 2 * math.Pi * float64(bin-n/2) * float64(k) / float64(n)
		iq[k] = complex(amp*math.Cos(phase), amp*math.Sin(phase))
	}
	return iq
}

func TestPipelinePowerSpectrum(t *testing.T) {
	p := New(Config{})
	n := p.WindowSize()

	t.Run("undersized batch", func(t *testing.T) {
		if got := p.PowerSpectrum(make([]complex128, n-1)); got != nil {
			t.Errorf("PowerSpectrum returned %d bins for an undersized batch, want nil", len(got))
		}
	})

	t.Run("tone lands in its bin", func(t *testing.T) {
		bin := 1224
		spec := p.PowerSpectrum(tone(n, bin, 0.01))
		if len(spec) != n {
			t.Fatalf("spectrum has %d bins, want %d", len(spec), n)
		}

		// A normalized 0.01 amplitude tone is -40 dB.
		if got := spec[bin]; math.Abs(got-(-40)) > 0.5 {
			t.Errorf("spectrum[%d] = %f dB, want -40", bin, got)
		}
		// Empty bins sit at the epsilon floor of -100 dB.
		if got := spec[500]; math.Abs(got-(-100)) > 0.5 {
			t.Errorf("spectrum[500] = %f dB, want -100", got)
		}
	})

	t.Run("zero offset tone lands at center bin", func(t *testing.T) {
		spec := p.PowerSpectrum(tone(n, n/2, 0.1))
		peakBin := 0
		for i, v := range spec {
			if v > spec[peakBin] {
				peakBin = i
			}
		}
		if peakBin != n/2 {
			t.Errorf("peak at bin %d, want center bin %d", peakBin, n/2)
		}
	})

	t.Run("extra samples beyond the window are ignored", func(t *testing.T) {
		iq := tone(n, 1224, 0.01)
		iq = append(iq, make([]complex128, 500)...)
		spec := p.PowerSpectrum(iq)
		if len(spec) != n {
			t.Fatalf("spectrum has %d bins, want %d", len(spec), n)
		}
		if got := spec[1224]; math.Abs(got-(-40)) > 0.5 {
			t.Errorf("spectrum[1224] = %f dB, want -40", got)
		}
	})
}

func TestPipelineNoiseFloor(t *testing.T) {
	p := New(Config{})

	t.Run("empty spectrum falls back", func(t *testing.T) {
		if got := p.NoiseFloor(nil); got != DefaultFallbackFloorDB {
			t.Errorf("NoiseFloor(nil) = %f, want %f", got, DefaultFallbackFloorDB)
		}
	})

	t.Run("25th percentile", func(t *testing.T) {
		spec := make([]float64, 100)
		for i := range spec {
			spec[i] = float64(99 - i) // reversed, NoiseFloor sorts a copy
		}
		if got := p.NoiseFloor(spec); got != 25 {
			t.Errorf("NoiseFloor = %f, want 25", got)
		}
		// The input order must be untouched.
		if spec[0] != 99 {
			t.Error("NoiseFloor sorted the caller's spectrum")
		}
	})

	t.Run("custom percentile", func(t *testing.T) {
		p := New(Config{NoisePercentile: 50})
		spec := make([]float64, 10)
		for i := range spec {
			spec[i] = float64(i)
		}
		if got := p.NoiseFloor(spec); got != 5 {
			t.Errorf("NoiseFloor = %f, want 5", got)
		}
	})
}

func TestPipelineDetectionThreshold(t *testing.T) {
	p := New(Config{})
	if got := p.DetectionThreshold(-90); got != -84 {
		t.Errorf("DetectionThreshold(-90) = %f, want -84", got)
	}

	p = New(Config{DetectionMarginDB: 10})
	if got := p.DetectionThreshold(-90); got != -80 {
		t.Errorf("DetectionThreshold(-90) = %f, want -80 with a 10 dB margin", got)
	}
}

func TestPipelineFindPeaks(t *testing.T) {
	p := New(Config{WindowSize: 16})

	spec := make([]float64, 16)
	for i := range spec {
		spec[i] = -100
	}
	spec[5] = -30
	spec[0] = -10  // edge bins never qualify
	spec[15] = -10 // same for the upper edge
	spec[9] = -20  // plateau, not a strict maximum
	spec[10] = -20

	peaks := p.FindPeaks(spec, -94, 0)
	if len(peaks) != 1 {
		t.Fatalf("FindPeaks returned %d peaks, want 1: %+v", len(peaks), peaks)
	}
	if peaks[0].Bin != 5 || peaks[0].Power != -30 {
		t.Errorf("peak = %+v, want bin 5 at -30 dB", peaks[0])
	}

	// Below the threshold nothing is a peak.
	if peaks := p.FindPeaks(spec, -20, 0); len(peaks) != 0 {
		t.Errorf("FindPeaks above the spectrum returned %+v", peaks)
	}
}

func TestPipelineBinFrequency(t *testing.T) {
	p := New(Config{})
	n := p.WindowSize()
	center := 433_920_000.0

	tests := []struct {
		name string
		bin  int
		want float64
	}{
		{"center bin maps to the tuned frequency", n / 2, center},
		{"bin zero maps to the span's lower edge", 0, center - 1_024_000},
		{"100 bins above center", n/2 + 100, center + 100_000},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := p.BinFrequency(test.bin, center); got != test.want {
				t.Errorf("BinFrequency(%d) = %f, want %f", test.bin, got, test.want)
			}
		})
	}

	if got := p.BinFrequency(n/2+100, 0); got != 100_000 {
		t.Errorf("BinFrequency with zero center = %f, want the baseband offset", got)
	}
}

func TestPipelineBinWidth(t *testing.T) {
	p := New(Config{})
	if got := p.BinWidth(); got != 1000 {
		t.Errorf("BinWidth = %f, want 1000 at 2.048 MHz over 2048 bins", got)
	}
}
