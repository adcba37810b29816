package storage

import "time"

// Session is one recorded capture session.
type Session struct {
	ID        int64
	Token     string // UUID assigned at creation
	StartTime time.Time
	Device    string
	Config    *string // device configuration as JSON, if provided
}

// SpectralRow is one stored spectrum bin.
type SpectralRow struct {
	Timestamp time.Time
	Frequency float64 // bin center frequency in Hz
	BinWidth  float64 // bin width in Hz
	Power     float64 // power in dB
}

// DetectionRow is one stored classified detection.
type DetectionRow struct {
	Timestamp time.Time
	Frequency float64
	Power     float64
	SNR       float64
	Protocol  string
	DeviceKey string
}
