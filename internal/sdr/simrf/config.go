package simrf

import (
	"fmt"

	"github.com/Ben-Santana/RF-Security/internal/sdr"
)

const (
	// DefaultSampleRate matches the analysis pipeline's bin mapping.
	DefaultSampleRate = 2_048_000

	// DefaultBatchSize is the number of IQ samples per batch.
	DefaultBatchSize = 4096

	// DefaultNoiseAmplitudeDB is the time-domain noise amplitude.
	DefaultNoiseAmplitudeDB = -80.0
)

// Emitter is one simulated transmitter: a continuous tone at a fixed RF
// frequency. It only appears in batches whose tuned span covers it.
type Emitter struct {
	Frequency sdr.Frequency `yaml:"frequency"` // RF frequency
	PowerDB   float64       `yaml:"power"`     // tone amplitude in dB, <= 0
}

// Config describes the simulated front end.
type Config struct {
	SampleRate       sdr.Frequency `yaml:"sampleRate"`
	BatchSize        int           `yaml:"batchSize"`
	InitialFrequency sdr.Frequency `yaml:"initialFrequency"`
	NoiseAmplitudeDB float64       `yaml:"noiseAmplitude"`
	Seed             int64         `yaml:"seed"`
	Emitters         []Emitter     `yaml:"emitters"`
}

func (c Config) withDefaults() Config {
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.NoiseAmplitudeDB == 0 {
		c.NoiseAmplitudeDB = DefaultNoiseAmplitudeDB
	}
	return c
}

// Validate checks the configuration for values the device cannot simulate.
func (c *Config) Validate() error {
	if c.SampleRate < 0 {
		return fmt.Errorf("simrf: sample rate must be positive: %f", c.SampleRate)
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("simrf: batch size must be positive: %d", c.BatchSize)
	}
	for i, e := range c.Emitters {
		if e.Frequency <= 0 {
			return fmt.Errorf("simrf: emitter %d: frequency must be positive: %f", i, e.Frequency)
		}
		if e.PowerDB > 0 {
			return fmt.Errorf("simrf: emitter %d: power must be <= 0 dB for normalized samples: %f", i, e.PowerDB)
		}
	}
	return nil
}
