package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ben-Santana/RF-Security/internal/analyzer"
	"github.com/Ben-Santana/RF-Security/internal/sdr"
	"github.com/Ben-Santana/RF-Security/internal/spectrum"
	"github.com/Ben-Santana/RF-Security/internal/storage"
)

const (
	defaultStepEvery  = 10  // capture cycles between scan steps
	defaultEvictEvery = 200 // capture cycles between stale-device sweeps
)

// WithCadence sets how many capture cycles pass between scan steps and
// between stale-device sweeps. Zero keeps the default.
func WithCadence(stepEvery, evictEvery int) func(*Monitor) {
	return func(m *Monitor) {
		if stepEvery > 0 {
			m.stepEvery = stepEvery
		}
		if evictEvery > 0 {
			m.evictEvery = evictEvery
		}
	}
}

// WithSpectrumEvery enables spectrum recording every n capture cycles.
func WithSpectrumEvery(n int) func(*Monitor) {
	return func(m *Monitor) {
		m.spectrumEvery = n
	}
}

// WithBinWidth sets the bin width recorded alongside stored spectra.
func WithBinWidth(hz float64) func(*Monitor) {
	return func(m *Monitor) {
		m.binWidth = hz
	}
}

// Monitor is the single control loop: it alternates between pulling an IQ
// batch, running detection, stepping the scan and sweeping stale devices.
// All engine mutation happens on this one goroutine, which is the
// serialization model the core requires.
type Monitor struct {
	engine  *analyzer.Analyzer
	capture sdr.Capture
	logger  *slog.Logger

	store     storage.Store
	sessionID int64

	stepEvery     int
	evictEvery    int
	spectrumEvery int
	binWidth      float64
}

// NewMonitor creates the control loop around an analyzer and its capture
// device.
func NewMonitor(engine *analyzer.Analyzer, capture sdr.Capture, logger *slog.Logger, options ...func(*Monitor)) *Monitor {
	m := Monitor{
		engine:     engine,
		capture:    capture,
		logger:     logger,
		stepEvery:  defaultStepEvery,
		evictEvery: defaultEvictEvery,
	}

	for _, option := range options {
		option(&m)
	}

	return &m
}

// BindStore attaches a detection log for the given session.
func (m *Monitor) BindStore(store storage.Store, sessionID int64) {
	m.store = store
	m.sessionID = sessionID
}

// Run drives the loop until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor loop started")

	for cycle := 1; ; cycle++ {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor loop stopped", slog.Int("cycles", cycle-1))
			return nil
		default:
		}

		batch, err := m.capture.ReadBatch(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			return fmt.Errorf("reading batch: %w", err)
		}

		result, err := m.engine.ProcessBatch(batch)
		if err != nil {
			if errors.Is(err, spectrum.ErrInsufficientData) {
				m.logger.Debug("skipping undersized batch", slog.Int("samples", len(batch)))
				continue
			}
			return fmt.Errorf("processing batch: %w", err)
		}

		now := time.Now()
		m.record(ctx, cycle, now, result)

		if cycle%m.stepEvery == 0 {
			m.engine.StepScan()
		}

		if cycle%m.evictEvery == 0 {
			if evicted := m.engine.EvictStale(now); evicted > 0 {
				m.logger.Info("evicted stale devices", slog.Int("count", evicted))
			}
			m.logAlerts()
		}
	}
}

func (m *Monitor) record(ctx context.Context, cycle int, now time.Time, result *analyzer.BatchResult) {
	if m.store == nil {
		return
	}

	if len(result.Detections) > 0 {
		if err := m.store.StoreDetections(ctx, m.sessionID, now, result.Detections); err != nil {
			m.logger.Error("storing detections", slog.String("error", err.Error()))
		}
	}

	if m.spectrumEvery > 0 && cycle%m.spectrumEvery == 0 {
		if err := m.store.StoreSpectrum(ctx, m.sessionID, now, result.Center, m.binWidth, result.Spectrum); err != nil {
			m.logger.Error("storing spectrum", slog.String("error", err.Error()))
		}
	}
}

func (m *Monitor) logAlerts() {
	alerts := m.engine.Alerts()
	if len(alerts) == 0 {
		return
	}

	m.logger.Warn("security alerts", slog.Int("count", len(alerts)))
	for _, alert := range alerts {
		m.logger.Warn(alert)
	}
}
