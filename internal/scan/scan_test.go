package scan

import (
	"errors"
	"testing"
)

// fakeTuner records every frequency it is asked to tune to.
type fakeTuner struct {
	tuned []float64
	err   error
}

func (f *fakeTuner) SetFrequency(hz float64) error {
	if f.err != nil {
		return f.err
	}
	f.tuned = append(f.tuned, hz)
	return nil
}

func (f *fakeTuner) Frequency() float64 {
	if len(f.tuned) == 0 {
		return 0
	}
	return f.tuned[len(f.tuned)-1]
}

func TestControllerStartWithoutTuner(t *testing.T) {
	c := New(nil, Config{})

	if err := c.Start(); !errors.Is(err, ErrHardwareUnavailable) {
		t.Errorf("Start() = %v, want ErrHardwareUnavailable", err)
	}
	if c.IsScanning() {
		t.Error("controller must stay idle after a failed start")
	}
}

func TestControllerStartStop(t *testing.T) {
	tuner := &fakeTuner{}
	c := New(tuner, Config{})

	if c.IsScanning() {
		t.Fatal("new controller must be idle")
	}

	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !c.IsScanning() {
		t.Error("controller not scanning after Start")
	}
	if got := c.Frequency(); got != 433_050_000 {
		t.Errorf("Frequency = %f, want the first default range's lower bound", got)
	}
	if len(tuner.tuned) != 1 || tuner.tuned[0] != 433_050_000 {
		t.Errorf("Start tuned to %v, want [433050000]", tuner.tuned)
	}

	c.Stop()
	if c.IsScanning() {
		t.Error("controller still scanning after Stop")
	}
	c.Stop() // idempotent
}

func TestControllerStartTuneError(t *testing.T) {
	boom := errors.New("usb gone")
	c := New(&fakeTuner{err: boom}, Config{})

	if err := c.Start(); !errors.Is(err, boom) {
		t.Errorf("Start() = %v, want the tuner error wrapped", err)
	}
}

func TestControllerStep(t *testing.T) {
	cfg := Config{
		Ranges: []Range{
			{Min: 100_000_000, Max: 100_500_000},
			{Min: 200_000_000, Max: 200_250_000},
		},
	}

	t.Run("no-op while idle", func(t *testing.T) {
		tuner := &fakeTuner{}
		c := New(tuner, cfg)

		c.Step()
		if len(tuner.tuned) != 0 {
			t.Errorf("idle Step tuned to %v", tuner.tuned)
		}
	})

	t.Run("advances by the step size", func(t *testing.T) {
		tuner := &fakeTuner{}
		c := New(tuner, cfg)
		if err := c.Start(); err != nil {
			t.Fatal(err)
		}

		c.Step()
		if got := c.Frequency(); got != 100_250_000 {
			t.Errorf("Frequency = %f after one step, want 100250000", got)
		}
		if got := tuner.Frequency(); got != 100_250_000 {
			t.Errorf("tuner at %f, want every step to re-tune", got)
		}
	})

	t.Run("rolls into the next range past the upper bound", func(t *testing.T) {
		tuner := &fakeTuner{}
		c := New(tuner, cfg)
		if err := c.Start(); err != nil {
			t.Fatal(err)
		}

		// 100.0 -> 100.25 -> 100.5 -> past max, so range 1 at 200.0.
		c.Step()
		c.Step()
		c.Step()

		if got := c.RangeIndex(); got != 1 {
			t.Errorf("RangeIndex = %d, want 1", got)
		}
		if got := c.Frequency(); got != 200_000_000 {
			t.Errorf("Frequency = %f, want the second range's lower bound", got)
		}
	})

	t.Run("wraps to the first range after the last", func(t *testing.T) {
		tuner := &fakeTuner{}
		c := New(tuner, cfg)
		if err := c.Start(); err != nil {
			t.Fatal(err)
		}

		// Three steps finish range 0, two more finish range 1.
		for i := 0; i < 5; i++ {
			c.Step()
		}

		if got := c.RangeIndex(); got != 0 {
			t.Errorf("RangeIndex = %d, want wrap to 0", got)
		}
		if got := c.Frequency(); got != 100_000_000 {
			t.Errorf("Frequency = %f, want the first range's lower bound", got)
		}
		// Start plus five steps, one retune each.
		if len(tuner.tuned) != 6 {
			t.Errorf("tuner saw %d retunes, want 6", len(tuner.tuned))
		}
	})

	t.Run("restart resets to the first range", func(t *testing.T) {
		tuner := &fakeTuner{}
		c := New(tuner, cfg)
		if err := c.Start(); err != nil {
			t.Fatal(err)
		}
		c.Step()
		c.Step()
		c.Step()
		c.Stop()

		if err := c.Start(); err != nil {
			t.Fatal(err)
		}
		if got, idx := c.Frequency(), c.RangeIndex(); got != 100_000_000 || idx != 0 {
			t.Errorf("after restart Frequency = %f RangeIndex = %d, want 100000000 and 0", got, idx)
		}
	})
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if len(cfg.Ranges) != 6 {
		t.Errorf("default config has %d ranges, want 6", len(cfg.Ranges))
	}
	if cfg.StepHz != DefaultStep {
		t.Errorf("default step = %f, want %f", cfg.StepHz, float64(DefaultStep))
	}
}
