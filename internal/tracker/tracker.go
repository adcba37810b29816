// Package tracker maintains the registry of devices observed on air.
// Repeated detections near the same frequency merge into a single device
// record; devices not seen for a configurable timeout are evicted by the
// host on its own cadence.
package tracker

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/Ben-Santana/RF-Security/internal/catalog"
	"github.com/Ben-Santana/RF-Security/internal/spectrum"
)

const (
	// DefaultMergeTolerance is the frequency distance in Hz within which two
	// detections are considered the same device.
	DefaultMergeTolerance = 50_000

	// DefaultStaleTimeout is the inactivity period after which a device is
	// removed by EvictStale.
	DefaultStaleTimeout = 10 * time.Minute
)

// ErrDeviceNotFound is returned when an operation targets a device ID that
// is not in the registry.
var ErrDeviceNotFound = errors.New("tracker: device not found")

// Device is one tracked transmitter. Its identity is the frequency cluster
// it occupies; the stored signal snapshot is always the latest detection.
type Device struct {
	ID            string
	Protocol      catalog.ProtocolType
	Signal        spectrum.SignalCharacteristics
	Authorized    bool
	FirstSeen     time.Time
	LastSeen      time.Time
	PacketCount   int
	SecurityFlags []string
}

// WithLogger sets the logger for the tracker.
func WithLogger(logger *slog.Logger) func(*Tracker) {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithMergeTolerance overrides the frequency merge tolerance in Hz.
func WithMergeTolerance(hz float64) func(*Tracker) {
	return func(t *Tracker) {
		t.tolerance = hz
	}
}

// WithStaleTimeout overrides the inactivity timeout used by EvictStale.
func WithStaleTimeout(d time.Duration) func(*Tracker) {
	return func(t *Tracker) {
		t.timeout = d
	}
}

// Tracker is the in-memory device registry. It provides no internal
// synchronization: all mutating calls must come from a single goroutine or
// be externally serialized.
type Tracker struct {
	catalog   *catalog.Catalog
	tolerance float64
	timeout   time.Duration
	logger    *slog.Logger

	devices []*Device
}

// New creates a tracker backed by the given catalog for protocol names and
// security flags.
func New(cat *catalog.Catalog, options ...func(*Tracker)) *Tracker {
	t := Tracker{
		catalog:   cat,
		tolerance: DefaultMergeTolerance,
		timeout:   DefaultStaleTimeout,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&t)
	}

	return &t
}

// Observe merges a classified detection into the registry. A device whose
// stored frequency lies within the merge tolerance of the detection is
// updated in place (first match wins); otherwise a new unauthorized device
// is created. Returns the affected device.
func (t *Tracker) Observe(sig spectrum.SignalCharacteristics, proto catalog.ProtocolType) *Device {
	if d := t.findByFrequency(sig.Frequency); d != nil {
		d.LastSeen = sig.DetectedAt
		d.PacketCount++
		d.Signal = sig // last detection wins, no averaging
		return d
	}

	d := &Device{
		ID:            DeviceID(t.catalog.Name(proto), sig.Frequency),
		Protocol:      proto,
		Signal:        sig,
		Authorized:    false,
		FirstSeen:     sig.DetectedAt,
		LastSeen:      sig.DetectedAt,
		PacketCount:   1,
		SecurityFlags: t.catalog.SecurityFlags(proto),
	}
	t.devices = append(t.devices, d)

	t.logger.Info("new device detected",
		slog.String("id", d.ID),
		slog.String("protocol", t.catalog.Name(proto)),
		slog.Float64("frequencyMHz", sig.Frequency/1e6))
	return d
}

// Authorize marks the device with the given ID as authorized. Returns
// ErrDeviceNotFound for an unknown ID.
func (t *Tracker) Authorize(id string) error {
	for _, d := range t.devices {
		if d.ID == id {
			d.Authorized = true
			t.logger.Info("device authorized", slog.String("id", id))
			return nil
		}
	}
	return fmt.Errorf("authorizing %q: %w", id, ErrDeviceNotFound)
}

// Remove deletes the device with the given ID from the registry. Returns
// ErrDeviceNotFound for an unknown ID.
func (t *Tracker) Remove(id string) error {
	for i, d := range t.devices {
		if d.ID == id {
			t.devices = append(t.devices[:i], t.devices[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("removing %q: %w", id, ErrDeviceNotFound)
}

// EvictStale removes every device whose last detection is older than the
// stale timeout relative to now. It is a pure filter over the registry and
// is idempotent between detections; the host decides the sweep cadence.
func (t *Tracker) EvictStale(now time.Time) int {
	kept := t.devices[:0]
	evicted := 0
	for _, d := range t.devices {
		if now.Sub(d.LastSeen) > t.timeout {
			evicted++
			t.logger.Debug("evicting stale device", slog.String("id", d.ID))
			continue
		}
		kept = append(kept, d)
	}
	for i := len(kept); i < len(t.devices); i++ {
		t.devices[i] = nil
	}
	t.devices = kept
	return evicted
}

// Devices returns a snapshot of the registry in detection order.
func (t *Tracker) Devices() []Device {
	out := make([]Device, len(t.devices))
	for i, d := range t.devices {
		out[i] = *d
	}
	return out
}

// Unauthorized returns the unauthorized devices in detection order.
func (t *Tracker) Unauthorized() []Device {
	var out []Device
	for _, d := range t.devices {
		if !d.Authorized {
			out = append(out, *d)
		}
	}
	return out
}

// Suspicious reports whether a device warrants immediate attention: it is
// unauthorized and carries at least one critical security flag.
func (t *Tracker) Suspicious(d Device) bool {
	if d.Authorized {
		return false
	}
	for _, flag := range d.SecurityFlags {
		if strings.HasPrefix(flag, "CRITICAL") {
			return true
		}
	}
	return false
}

// Alerts renders the current security alerts. For every unauthorized device
// one alert line is emitted, followed by one line per stored security flag
// of any device. Ordering follows detection order; there is no severity
// ranking.
func (t *Tracker) Alerts() []string {
	var alerts []string
	for _, d := range t.devices {
		if !d.Authorized {
			alerts = append(alerts, fmt.Sprintf("UNAUTHORIZED DEVICE: %s (%s) at %.3f MHz",
				d.ID, t.catalog.Name(d.Protocol), d.Signal.Frequency/1e6))
		}
		for _, flag := range d.SecurityFlags {
			alerts = append(alerts, fmt.Sprintf("%s: %s", d.ID, flag))
		}
	}
	return alerts
}

func (t *Tracker) findByFrequency(freqHz float64) *Device {
	for _, d := range t.devices {
		if math.Abs(d.Signal.Frequency-freqHz) < t.tolerance {
			return d
		}
	}
	return nil
}

// DeviceID derives a stable device identifier from the protocol name and
// detection frequency. The hash runs over the frequency quantized to whole
// kHz so equal clusters produce equal IDs on every platform.
func DeviceID(protocolName string, freqHz float64) string {
	kHz := int64(math.Round(freqHz / 1e3))

	h := fnv.New32a()
	_, _ = io.WriteString(h, protocolName)
	_, _ = fmt.Fprintf(h, ":%d", kHz)

	return fmt.Sprintf("%s_%.3fMHz_%08x", protocolName, freqHz/1e6, h.Sum32())
}
