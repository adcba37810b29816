// Package analyzer is the protocol classification engine: it ties the
// spectrum pipeline, signature catalog, device tracker and scan controller
// into one explicitly constructed instance with no global state.
package analyzer

import (
	"io"
	"log/slog"
	"time"

	"github.com/Ben-Santana/RF-Security/internal/catalog"
	"github.com/Ben-Santana/RF-Security/internal/scan"
	"github.com/Ben-Santana/RF-Security/internal/sdr"
	"github.com/Ben-Santana/RF-Security/internal/spectrum"
	"github.com/Ben-Santana/RF-Security/internal/tracker"
)

const (
	// Placeholder estimates carried over until real bandwidth and symbol
	// rate measurement lands; see the matching TODO in AnalyzeSignal.
	placeholderBandwidth     = 25_000 // Hz
	placeholderSymbolRate    = 1_000  // symbols/s
	placeholderBurstDuration = 0.1    // seconds
)

// Detection is one classified signal observation from a batch.
type Detection struct {
	Signal   spectrum.SignalCharacteristics
	Protocol catalog.ProtocolType
	DeviceID string
}

// BatchResult holds everything derived from one IQ batch.
type BatchResult struct {
	Spectrum   []float64 // shifted power spectrum in dB
	NoiseFloor float64   // estimated noise floor in dB
	Threshold  float64   // peak detection threshold in dB
	Center     float64   // center frequency the batch was captured at, Hz
	Peaks      []spectrum.Peak
	Detections []Detection
}

// WithLogger sets the logger for the analyzer.
func WithLogger(logger *slog.Logger) func(*Analyzer) {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithCapture binds the capture device whose tuned frequency anchors the
// spectrum's bin-to-frequency mapping.
func WithCapture(capture sdr.Capture) func(*Analyzer) {
	return func(a *Analyzer) {
		a.capture = capture
	}
}

// WithClock overrides the time source for detection timestamps.
func WithClock(now func() time.Time) func(*Analyzer) {
	return func(a *Analyzer) {
		a.now = now
	}
}

// Analyzer runs detection over IQ batches and exposes the device registry
// and scan controls to the host. All mutating methods must be called from a
// single goroutine; the data model provides no internal synchronization.
type Analyzer struct {
	catalog  *catalog.Catalog
	pipeline *spectrum.Pipeline
	tracker  *tracker.Tracker
	scanner  *scan.Controller

	capture sdr.Capture
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an analyzer over the given components.
func New(cat *catalog.Catalog, pipe *spectrum.Pipeline, trk *tracker.Tracker, ctrl *scan.Controller, options ...func(*Analyzer)) *Analyzer {
	a := Analyzer{
		catalog:  cat,
		pipeline: pipe,
		tracker:  trk,
		scanner:  ctrl,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}

	for _, option := range options {
		option(&a)
	}

	return &a
}

// ProcessBatch runs the full detection chain over one IQ batch: power
// spectrum, noise floor, peak extraction, per-peak classification and
// device tracking. Returns spectrum.ErrInsufficientData when the batch is
// smaller than the analysis window.
func (a *Analyzer) ProcessBatch(iq []complex128) (*BatchResult, error) {
	spec := a.pipeline.PowerSpectrum(iq)
	if len(spec) == 0 {
		return nil, spectrum.ErrInsufficientData
	}

	floor := a.pipeline.NoiseFloor(spec)
	threshold := a.pipeline.DetectionThreshold(floor)

	var center float64
	if a.capture != nil {
		center = a.capture.Frequency()
	}

	result := BatchResult{
		Spectrum:   spec,
		NoiseFloor: floor,
		Threshold:  threshold,
		Center:     center,
		Peaks:      a.pipeline.FindPeaks(spec, threshold, center),
	}

	for _, peak := range result.Peaks {
		sig := a.AnalyzeSignal(peak.Frequency, peak.Power, floor)

		proto := a.Classify(sig)
		if proto == catalog.Unknown {
			continue
		}

		dev := a.tracker.Observe(sig, proto)
		result.Detections = append(result.Detections, Detection{
			Signal:   sig,
			Protocol: proto,
			DeviceID: dev.ID,
		})

		a.logger.Info("signal detected",
			slog.String("protocol", a.catalog.Name(proto)),
			slog.Float64("frequencyMHz", sig.Frequency/1e6),
			slog.Float64("powerDB", sig.Power),
			slog.Float64("snrDB", sig.SNR))
	}

	return &result, nil
}

// DetectSignals reports whether at least one classifiable signal is present
// in the batch, feeding every classified detection into the device tracker.
// An undersized batch yields (false, spectrum.ErrInsufficientData).
func (a *Analyzer) DetectSignals(iq []complex128) (bool, error) {
	result, err := a.ProcessBatch(iq)
	if err != nil {
		return false, err
	}
	return len(result.Detections) > 0, nil
}

// AnalyzeSignal builds the characteristics record for one spectral peak.
// Bandwidth, symbol rate and burst duration are fixed placeholders.
// TODO: estimate bandwidth from the -3dB points around the peak instead of
// the fixed placeholder.
func (a *Analyzer) AnalyzeSignal(peakFreq, peakPower, noiseFloor float64) spectrum.SignalCharacteristics {
	sig := spectrum.SignalCharacteristics{
		Frequency:     peakFreq,
		Power:         peakPower,
		SNR:           peakPower - noiseFloor,
		Bandwidth:     placeholderBandwidth,
		SymbolRate:    placeholderSymbolRate,
		Burst:         true,
		BurstDuration: placeholderBurstDuration,
		DetectedAt:    a.now(),
	}

	switch {
	case sig.SNR > 20:
		sig.Modulation = "Strong signal - likely FSK/PSK"
	case sig.SNR > 10:
		sig.Modulation = "Medium signal - likely OOK/ASK"
	default:
		sig.Modulation = "Weak signal - unknown modulation"
	}

	return sig
}

// Classify maps a signal to a protocol type via the catalog's frequency
// ranges.
func (a *Analyzer) Classify(sig spectrum.SignalCharacteristics) catalog.ProtocolType {
	return a.catalog.Classify(sig.Frequency)
}

// StartScan begins the frequency sweep.
func (a *Analyzer) StartScan() error { return a.scanner.Start() }

// StopScan halts the frequency sweep.
func (a *Analyzer) StopScan() { a.scanner.Stop() }

// StepScan advances the sweep by one step.
func (a *Analyzer) StepScan() { a.scanner.Step() }

// IsScanning reports whether a sweep is active.
func (a *Analyzer) IsScanning() bool { return a.scanner.IsScanning() }

// ScanFrequency returns the current scan frequency in Hz.
func (a *Analyzer) ScanFrequency() float64 { return a.scanner.Frequency() }

// Devices returns a snapshot of all tracked devices in detection order.
func (a *Analyzer) Devices() []tracker.Device { return a.tracker.Devices() }

// UnauthorizedDevices returns the unauthorized devices in detection order.
func (a *Analyzer) UnauthorizedDevices() []tracker.Device { return a.tracker.Unauthorized() }

// Alerts returns the current security alert lines.
func (a *Analyzer) Alerts() []string { return a.tracker.Alerts() }

// Authorize marks a device as authorized.
func (a *Analyzer) Authorize(deviceID string) error { return a.tracker.Authorize(deviceID) }

// RemoveDevice deletes a device from the registry.
func (a *Analyzer) RemoveDevice(deviceID string) error { return a.tracker.Remove(deviceID) }

// EvictStale removes devices not seen for longer than the stale timeout and
// returns how many were dropped.
func (a *Analyzer) EvictStale(now time.Time) int { return a.tracker.EvictStale(now) }

// ProtocolName returns the display name for a protocol type.
func (a *Analyzer) ProtocolName(t catalog.ProtocolType) string { return a.catalog.Name(t) }

// ProtocolDescription returns the description for a protocol type.
func (a *Analyzer) ProtocolDescription(t catalog.ProtocolType) string { return a.catalog.Description(t) }
