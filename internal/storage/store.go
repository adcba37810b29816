package storage

import (
	"context"
	"time"

	"github.com/Ben-Santana/RF-Security/internal/analyzer"
	_ "github.com/mattn/go-sqlite3"
)

// Store records what the monitor observed: capture sessions, classified
// detections and raw power spectra for offline waterfall rendering. It is
// an observability log, not registry persistence — the device tracker still
// starts empty on every run.
type Store interface {
	// CreateSession registers a new capture session and returns its ID.
	// config may be a string, []byte or any JSON-serializable value.
	CreateSession(ctx context.Context, device string, config any) (sessionID int64, err error)

	// Sessions returns all recorded sessions ordered by start time.
	Sessions(ctx context.Context) ([]Session, error)

	// StoreDetections saves the classified detections of one batch in a
	// single transaction.
	StoreDetections(ctx context.Context, sessionID int64, at time.Time, detections []analyzer.Detection) error

	// StoreSpectrum saves one power spectrum row set: bin i becomes a row at
	// centerHz + (i - len/2) * binWidth.
	StoreSpectrum(ctx context.Context, sessionID int64, at time.Time, centerHz, binWidth float64, powers []float64) error

	// SpectralRows returns a session's stored spectrum bins ordered by
	// timestamp, then frequency.
	SpectralRows(ctx context.Context, sessionID int64) ([]SpectralRow, error)

	// Close releases the database connections. Safe to call multiple times.
	Close() error
}
