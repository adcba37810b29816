// Package simrf provides a simulated IQ capture device: configured tone
// emitters over a Gaussian noise floor. It lets the monitor loop and tests
// run the full detection chain without radio hardware.
package simrf

import (
	"context"
	"math"
	"math/rand"
)

// Device synthesizes IQ batches at its tuned center frequency. It
// implements sdr.Capture. Not safe for concurrent use; the monitor loop is
// the single owner.
type Device struct {
	cfg    Config
	rng    *rand.Rand
	center float64
	phases []float64 // per-emitter phase accumulators, radians
}

// New creates a simulated capture device.
func New(cfg Config) (*Device, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	center := cfg.InitialFrequency.Hz()
	if center == 0 && len(cfg.Emitters) > 0 {
		center = cfg.Emitters[0].Frequency.Hz()
	}

	return &Device{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		center: center,
		phases: make([]float64, len(cfg.Emitters)),
	}, nil
}

// SetFrequency tunes the simulated front end.
func (d *Device) SetFrequency(hz float64) error {
	d.center = hz
	return nil
}

// Frequency returns the tuned center frequency in Hz.
func (d *Device) Frequency() float64 { return d.center }

// SampleRate returns the simulated sample rate in Hz.
func (d *Device) SampleRate() float64 { return d.cfg.SampleRate.Hz() }

// ReadBatch synthesizes one batch of normalized IQ samples: every in-band
// emitter contributes a phase-continuous complex tone at its baseband
// offset, on top of Gaussian noise.
func (d *Device) ReadBatch(ctx context.Context) ([]complex128, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch := make([]complex128, d.cfg.BatchSize)

	sigma := math.Pow(10, d.cfg.NoiseAmplitudeDB/20)
	for i := range batch {
		batch[i] = complex(d.rng.NormFloat64()*sigma, d.rng.NormFloat64()*sigma)
	}

	halfBand := d.cfg.SampleRate.Hz() / 2
	for ei, e := range d.cfg.Emitters {
		offset := e.Frequency.Hz() - d.center
		if math.Abs(offset) >= halfBand {
			continue
		}

		amp := math.Pow(10, e.PowerDB/20)
		phaseStep := 2 * math.Pi * offset / d.cfg.SampleRate.Hz()

		phase := d.phases[ei]
		for i := range batch {
			batch[i] += complex(amp*math.Cos(phase), amp*math.Sin(phase))
			phase += phaseStep
		}
		d.phases[ei] = math.Mod(phase, 2*math.Pi)
	}

	return batch, nil
}
