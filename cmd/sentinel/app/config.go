package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Ben-Santana/RF-Security/internal/sdr"
	"github.com/Ben-Santana/RF-Security/internal/sdr/simrf"
)

// Duration is a time.Duration that unmarshals from strings like "10m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	duration, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("app.Duration: failed to parse: %w", err)
	}

	*d = Duration(duration)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config is the main application configuration.
type Config struct {
	Settings   Settings          `yaml:"settings"`
	Capture    simrf.Config      `yaml:"capture"`
	Analysis   AnalysisConfig    `yaml:"analysis"`
	Tracker    TrackerConfig     `yaml:"tracker"`
	Scan       ScanConfig        `yaml:"scan"`
	Storage    StorageConfig     `yaml:"storage"`
	Signatures []SignatureConfig `yaml:"signatures"`
}

// Settings holds global application settings.
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// AnalysisConfig tunes the spectrum analysis pipeline.
type AnalysisConfig struct {
	FFTSize         int           `yaml:"fftSize"`         // analysis window, samples
	SampleRate      sdr.Frequency `yaml:"sampleRate"`      // bin mapping sample rate
	DetectionMargin float64       `yaml:"detectionMargin"` // dB above noise floor
	NoisePercentile int           `yaml:"noisePercentile"` // noise floor percentile
}

// TrackerConfig tunes the device registry.
type TrackerConfig struct {
	MergeTolerance sdr.Frequency `yaml:"mergeTolerance"` // same-device frequency distance
	StaleTimeout   Duration      `yaml:"staleTimeout"`   // inactivity eviction timeout
}

// ScanRange is one sweep band.
type ScanRange struct {
	Min sdr.Frequency `yaml:"min"`
	Max sdr.Frequency `yaml:"max"`
}

// ScanConfig holds the sweep plan and cadences driven by the monitor loop.
type ScanConfig struct {
	Ranges     []ScanRange   `yaml:"ranges"`
	Step       sdr.Frequency `yaml:"step"`
	StepEvery  int           `yaml:"stepEvery"`  // capture cycles between scan steps
	EvictEvery int           `yaml:"evictEvery"` // capture cycles between stale sweeps
}

// StorageConfig controls the sqlite detection log.
type StorageConfig struct {
	Enabled       bool   `yaml:"enabled"`
	DataDirectory string `yaml:"dataDirectory"`
	SpectrumEvery int    `yaml:"spectrumEvery"` // capture cycles between stored spectra, 0 disables
}

// SignatureConfig adds a custom protocol signature to the catalog. The
// protocol field names one of the built-in types ("security-sensor",
// "tpms", ...).
type SignatureConfig struct {
	Protocol      string        `yaml:"protocol"`
	Name          string        `yaml:"name"`
	Description   string        `yaml:"description"`
	FreqMin       sdr.Frequency `yaml:"freqMin"`
	FreqMax       sdr.Frequency `yaml:"freqMax"`
	Bandwidth     sdr.Frequency `yaml:"bandwidth"`
	Modulation    string        `yaml:"modulation"`
	BurstMode     bool          `yaml:"burstMode"`
	SecurityNotes string        `yaml:"securityNotes"`
}

// LoadConfig reads and validates the YAML configuration at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks cross-field constraints the component configs cannot see.
func (c *Config) Validate() error {
	if err := c.Capture.Validate(); err != nil {
		return err
	}
	for i, r := range c.Scan.Ranges {
		if r.Min >= r.Max {
			return fmt.Errorf("scan range %d: min %s must be below max %s", i, r.Min, r.Max)
		}
	}
	for i, s := range c.Signatures {
		if s.FreqMin > s.FreqMax {
			return fmt.Errorf("signature %d (%s): freqMin above freqMax", i, s.Name)
		}
	}
	return nil
}
