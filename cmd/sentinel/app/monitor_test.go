package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Ben-Santana/RF-Security/internal/analyzer"
	"github.com/Ben-Santana/RF-Security/internal/catalog"
	"github.com/Ben-Santana/RF-Security/internal/scan"
	"github.com/Ben-Santana/RF-Security/internal/spectrum"
	"github.com/Ben-Santana/RF-Security/internal/storage"
	"github.com/Ben-Santana/RF-Security/internal/tracker"
)

// cancellingCapture serves a fixed IQ batch a limited number of times, then
// cancels the monitor's context.
type cancellingCapture struct {
	center float64
	batch  []complex128
	limit  int
	reads  int
	cancel context.CancelFunc
}

func (c *cancellingCapture) SetFrequency(hz float64) error { c.center = hz; return nil }
func (c *cancellingCapture) Frequency() float64            { return c.center }
func (c *cancellingCapture) SampleRate() float64           { return 2_048_000 }

func (c *cancellingCapture) ReadBatch(ctx context.Context) ([]complex128, error) {
	c.reads++
	if c.reads > c.limit {
		c.cancel()
		return nil, ctx.Err()
	}
	return c.batch, nil
}

// recordingStore counts what the monitor writes.
type recordingStore struct {
	detectionCalls int
	detections     int
	spectrumCalls  int
}

func (r *recordingStore) CreateSession(context.Context, string, any) (int64, error) { return 1, nil }

func (r *recordingStore) Sessions(context.Context) ([]storage.Session, error) { return nil, nil }

func (r *recordingStore) StoreDetections(_ context.Context, _ int64, _ time.Time, detections []analyzer.Detection) error {
	r.detectionCalls++
	r.detections += len(detections)
	return nil
}

func (r *recordingStore) StoreSpectrum(context.Context, int64, time.Time, float64, float64, []float64) error {
	r.spectrumCalls++
	return nil
}

func (r *recordingStore) SpectralRows(context.Context, int64) ([]storage.SpectralRow, error) {
	return nil, nil
}

func (r *recordingStore) Close() error { return nil }

// centerTone is a zero-offset baseband tone: a constant at the tuned center.
func centerTone(n int, amp float64) []complex128 {
	iq := make([]complex128, n)
	for k := range iq {
		iq[k] = complex(amp, 0)
	}
	return iq
}

func TestMonitorRun(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	n := spectrum.DefaultWindowSize

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	capture := &cancellingCapture{
		center: 433_920_000,
		batch:  centerTone(n, 0.01),
		limit:  12,
		cancel: cancel,
	}

	cat := catalog.Default()
	engine := analyzer.New(cat,
		spectrum.New(spectrum.Config{}),
		tracker.New(cat),
		scan.New(capture, scan.Config{}),
		analyzer.WithCapture(capture))

	store := &recordingStore{}
	monitor := NewMonitor(engine, capture, logger,
		WithCadence(5, 10),
		WithSpectrumEvery(4),
		WithBinWidth(1000))
	monitor.BindStore(store, 1)

	if err := monitor.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Every batch carries the 433.92 MHz tone, so every cycle stores one
	// detection; spectra go out every fourth cycle.
	if store.detectionCalls != 12 || store.detections != 12 {
		t.Errorf("store saw %d detection calls with %d detections, want 12 and 12",
			store.detectionCalls, store.detections)
	}
	if store.spectrumCalls != 3 {
		t.Errorf("store saw %d spectrum calls, want 3", store.spectrumCalls)
	}

	devices := engine.Devices()
	if len(devices) != 1 {
		t.Fatalf("tracked %d devices, want the merged garage remote", len(devices))
	}
	if devices[0].Protocol != catalog.GarageDoor {
		t.Errorf("Protocol = %s, want %s", devices[0].Protocol, catalog.GarageDoor)
	}
	if devices[0].PacketCount != 12 {
		t.Errorf("PacketCount = %d, want 12", devices[0].PacketCount)
	}
}

func TestMonitorSkipsUndersizedBatches(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	capture := &cancellingCapture{
		center: 433_920_000,
		batch:  make([]complex128, 16), // below the analysis window
		limit:  3,
		cancel: cancel,
	}

	cat := catalog.Default()
	engine := analyzer.New(cat,
		spectrum.New(spectrum.Config{}),
		tracker.New(cat),
		scan.New(capture, scan.Config{}),
		analyzer.WithCapture(capture))

	monitor := NewMonitor(engine, capture, logger)
	if err := monitor.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(engine.Devices()); got != 0 {
		t.Errorf("tracked %d devices from undersized batches", got)
	}
}
