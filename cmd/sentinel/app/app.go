package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Ben-Santana/RF-Security/internal/analyzer"
	"github.com/Ben-Santana/RF-Security/internal/catalog"
	"github.com/Ben-Santana/RF-Security/internal/scan"
	"github.com/Ben-Santana/RF-Security/internal/sdr/simrf"
	"github.com/Ben-Santana/RF-Security/internal/spectrum"
	"github.com/Ben-Santana/RF-Security/internal/storage"
	"github.com/Ben-Santana/RF-Security/internal/tracker"
)

const storageDir = "data"

// Run wires the detection engine from the configuration and drives the
// monitor loop until the context is cancelled.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	capture, err := simrf.New(config.Capture)
	if err != nil {
		return fmt.Errorf("creating capture device: %w", err)
	}

	cat, err := buildCatalog(config.Signatures)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}
	logger.Info("protocol catalog loaded", slog.Int("signatures", cat.Len()))

	pipeline := spectrum.New(spectrum.Config{
		WindowSize:        config.Analysis.FFTSize,
		SampleRate:        config.Analysis.SampleRate.Hz(),
		NoisePercentile:   config.Analysis.NoisePercentile,
		DetectionMarginDB: config.Analysis.DetectionMargin,
	})

	var trackerOptions []func(*tracker.Tracker)
	trackerOptions = append(trackerOptions, tracker.WithLogger(logger))
	if config.Tracker.MergeTolerance > 0 {
		trackerOptions = append(trackerOptions, tracker.WithMergeTolerance(config.Tracker.MergeTolerance.Hz()))
	}
	if config.Tracker.StaleTimeout > 0 {
		trackerOptions = append(trackerOptions, tracker.WithStaleTimeout(time.Duration(config.Tracker.StaleTimeout)))
	}
	registry := tracker.New(cat, trackerOptions...)

	controller := scan.New(capture, scanConfig(config.Scan), scan.WithLogger(logger))

	engine := analyzer.New(cat, pipeline, registry, controller,
		analyzer.WithLogger(logger),
		analyzer.WithCapture(capture))

	monitor := NewMonitor(engine, capture, logger,
		WithCadence(config.Scan.StepEvery, config.Scan.EvictEvery),
		WithSpectrumEvery(config.Storage.SpectrumEvery),
		WithBinWidth(pipeline.BinWidth()))

	if config.Storage.Enabled {
		store, err := createStorage(&config.Storage)
		if err != nil {
			return fmt.Errorf("creating storage: %w", err)
		}
		defer store.Close()

		sessionID, err := store.CreateSession(ctx, "simrf", config.Capture)
		if err != nil {
			return fmt.Errorf("creating session: %w", err)
		}
		monitor.BindStore(store, sessionID)
	}

	if err = engine.StartScan(); err != nil {
		return fmt.Errorf("starting scan: %w", err)
	}
	defer engine.StopScan()

	return monitor.Run(ctx)
}

func buildCatalog(custom []SignatureConfig) (*catalog.Catalog, error) {
	cat := catalog.Default()
	for i, s := range custom {
		proto, ok := catalog.ParseProtocolType(s.Protocol)
		if !ok {
			return nil, fmt.Errorf("signature %d: unknown protocol type %q", i, s.Protocol)
		}

		cat.Add(catalog.Signature{
			Type:          proto,
			Name:          s.Name,
			Description:   s.Description,
			FreqMin:       s.FreqMin.Hz(),
			FreqMax:       s.FreqMax.Hz(),
			Bandwidth:     s.Bandwidth.Hz(),
			Modulation:    s.Modulation,
			BurstMode:     s.BurstMode,
			SecurityNotes: s.SecurityNotes,
		})
	}
	return cat, nil
}

func scanConfig(c ScanConfig) scan.Config {
	cfg := scan.Config{StepHz: c.Step.Hz()}
	for _, r := range c.Ranges {
		cfg.Ranges = append(cfg.Ranges, scan.Range{Min: r.Min.Hz(), Max: r.Max.Hz()})
	}
	return cfg
}

func createStorage(config *StorageConfig) (storage.Store, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	dbPath := filepath.Join(wd, storageDir)
	if config.DataDirectory != "" {
		dbPath = filepath.Join(wd, config.DataDirectory)
	}

	stat, err := os.Stat(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage directory %q: %w", dbPath, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("invalid storage directory %q", dbPath)
	}

	dbPath = filepath.Join(dbPath, fmt.Sprintf("rf_session_%s.sqlite", time.Now().UTC().Format("20060102_150405")))
	return storage.NewSqliteStore(dbPath), nil
}
