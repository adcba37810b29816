package spectrum

import "time"

// Peak is a single spectral peak above the detection threshold.
type Peak struct {
	Bin       int     // shifted FFT bin index
	Frequency float64 // absolute frequency in Hz
	Power     float64 // power level in dB
}

// SignalCharacteristics captures the measured properties of one detected
// signal. It is produced fresh for every peak; the device tracker retains
// only the latest snapshot per device.
type SignalCharacteristics struct {
	Frequency     float64   // center frequency in Hz
	Power         float64   // signal power in dB
	SNR           float64   // signal-to-noise ratio in dB
	Bandwidth     float64   // bandwidth estimate in Hz
	Modulation    string    // modulation guess derived from SNR
	SymbolRate    float64   // symbol rate estimate in symbols/s
	Burst         bool      // burst transmission
	BurstDuration float64   // burst duration estimate in seconds
	DetectedAt    time.Time // detection timestamp
}
