package sdr

import "context"

// Tuner is the tunable part of a capture device. SetFrequency is assumed
// synchronous: once it returns, subsequent batches are captured at the new
// center frequency.
type Tuner interface {
	SetFrequency(hz float64) error
	Frequency() float64
}

// Capture provides IQ sample batches from a radio front end. Samples are
// normalized complex baseband values in [-1, 1]. ReadBatch blocks until a
// batch is available or the context is cancelled; it is the only blocking
// operation the analysis core depends on.
type Capture interface {
	Tuner

	SampleRate() float64
	ReadBatch(ctx context.Context) ([]complex128, error)
}
