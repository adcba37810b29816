// Package scan steps a tunable frequency across configured bands. The
// controller only drives the capture device's tuning; it is independent of
// the classification pipeline and advances on the caller's cadence.
package scan

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Ben-Santana/RF-Security/internal/sdr"
)

// DefaultStep is the frequency increment per scan step in Hz.
const DefaultStep = 250_000

// ErrHardwareUnavailable is returned by Start when no capture device is
// bound to the controller.
var ErrHardwareUnavailable = errors.New("scan: no capture device bound")

// Range is one frequency band to sweep, bounds in Hz.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// DefaultRanges returns the built-in sweep bands covering the catalog's
// protocol ranges.
func DefaultRanges() []Range {
	return []Range{
		{433_050_000, 434_790_000}, // 433 MHz ISM band (ITU Region 1)
		{868_000_000, 868_600_000}, // 868 MHz ISM band (Europe)
		{902_000_000, 928_000_000}, // 915 MHz ISM band (Americas)
		{863_000_000, 870_000_000}, // extended 868 MHz band for LoRa
		{314_000_000, 315_000_000}, // 315 MHz (garage doors, car remotes)
		{390_000_000, 392_000_000}, // 390 MHz (some weather stations)
	}
}

// Config holds the sweep plan. Zero values select the defaults.
type Config struct {
	Ranges []Range `yaml:"ranges"`
	StepHz float64 `yaml:"step"`
}

func (c Config) withDefaults() Config {
	if len(c.Ranges) == 0 {
		c.Ranges = DefaultRanges()
	}
	if c.StepHz <= 0 {
		c.StepHz = DefaultStep
	}
	return c
}

// WithLogger sets the logger for the controller.
func WithLogger(logger *slog.Logger) func(*Controller) {
	return func(c *Controller) {
		c.logger = logger
	}
}

// Controller owns the scan state machine: Idle until started, Scanning
// until stopped. While scanning, the current frequency always lies within
// the active range. Not safe for concurrent use.
type Controller struct {
	tuner  sdr.Tuner
	cfg    Config
	logger *slog.Logger

	scanning bool
	index    int
	freq     float64
}

// New creates a controller bound to the given tuner. A nil tuner is
// allowed; Start will then fail with ErrHardwareUnavailable.
func New(tuner sdr.Tuner, cfg Config, options ...func(*Controller)) *Controller {
	c := Controller{
		tuner:  tuner,
		cfg:    cfg.withDefaults(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&c)
	}

	c.freq = c.cfg.Ranges[0].Min
	return &c
}

// Start begins a sweep from the first range's lower bound and tunes the
// capture device. Returns ErrHardwareUnavailable and stays idle when no
// tuner is bound.
func (c *Controller) Start() error {
	if c.tuner == nil {
		return ErrHardwareUnavailable
	}

	c.scanning = true
	c.index = 0
	c.freq = c.cfg.Ranges[0].Min

	c.logger.Info("starting frequency scan",
		slog.Float64("minMHz", c.cfg.Ranges[0].Min/1e6),
		slog.Float64("maxMHz", c.cfg.Ranges[0].Max/1e6),
		slog.Float64("stepKHz", c.cfg.StepHz/1e3))

	if err := c.tuner.SetFrequency(c.freq); err != nil {
		return fmt.Errorf("tuning to %.3f MHz: %w", c.freq/1e6, err)
	}
	return nil
}

// Stop halts the sweep. It is idempotent and callable from any state.
func (c *Controller) Stop() {
	if c.scanning {
		c.logger.Info("frequency scan stopped")
	}
	c.scanning = false
}

// Step advances the sweep by one step and re-tunes the capture device.
// Past a range's upper bound the next range becomes active, wrapping to the
// first range after the last. No-op unless scanning. The caller controls
// the step cadence.
func (c *Controller) Step() {
	if !c.scanning || c.tuner == nil {
		return
	}

	c.freq += c.cfg.StepHz

	if c.freq > c.cfg.Ranges[c.index].Max {
		c.index++
		if c.index >= len(c.cfg.Ranges) {
			c.index = 0
			c.logger.Info("completed scan cycle, restarting")
		}

		c.freq = c.cfg.Ranges[c.index].Min
		c.logger.Debug("scanning range",
			slog.Int("range", c.index+1),
			slog.Float64("minMHz", c.cfg.Ranges[c.index].Min/1e6),
			slog.Float64("maxMHz", c.cfg.Ranges[c.index].Max/1e6))
	}

	if err := c.tuner.SetFrequency(c.freq); err != nil {
		c.logger.Warn("retuning failed",
			slog.Float64("frequencyMHz", c.freq/1e6),
			slog.String("error", err.Error()))
	}
}

// IsScanning reports whether a sweep is active.
func (c *Controller) IsScanning() bool { return c.scanning }

// Frequency returns the current scan frequency in Hz.
func (c *Controller) Frequency() float64 { return c.freq }

// RangeIndex returns the index of the active sweep range.
func (c *Controller) RangeIndex() int { return c.index }
