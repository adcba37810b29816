package catalog

import "testing"

func TestCatalogClassify(t *testing.T) {
	cat := Default()

	tests := []struct {
		name   string
		freqHz float64
		want   ProtocolType
	}{
		{
			name:   "garage door at exactly 433.92 MHz",
			freqHz: 433_920_000,
			want:   GarageDoor,
		},
		{
			name:   "weather station inside its narrow band",
			freqHz: 433_900_000,
			want:   WeatherStation,
		},
		{
			name:   "433 MHz band outside the narrow signatures",
			freqHz: 433_100_000,
			want:   ISM433OOK,
		},
		{
			name:   "433 MHz band lower bound inclusive",
			freqHz: 433_050_000,
			want:   ISM433OOK,
		},
		{
			name:   "433 MHz band upper bound inclusive",
			freqHz: 434_790_000,
			want:   ISM433OOK,
		},
		{
			name:   "wireless M-Bus wins inside the 868 MHz band",
			freqHz: 869_000_000,
			want:   WirelessMBus,
		},
		{
			name:   "868 MHz OOK below the M-Bus range",
			freqHz: 868_300_000,
			want:   ISM868OOK,
		},
		{
			name:   "LoRa 868 covers the gap below 868 MHz",
			freqHz: 865_000_000,
			want:   LoRa868,
		},
		{
			name:   "915 MHz band",
			freqHz: 910_000_000,
			want:   ISM915OOK,
		},
		{
			name:   "just past the 915 MHz band upper bound",
			freqHz: 928_000_001,
			want:   Unknown,
		},
		{
			name:   "315 MHz has no signature",
			freqHz: 314_500_000,
			want:   Unknown,
		},
		{
			name:   "far outside every band",
			freqHz: 100_000_000,
			want:   Unknown,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := cat.Classify(test.freqHz); got != test.want {
				t.Errorf("Classify(%f) = %s, want %s", test.freqHz, got, test.want)
			}
		})
	}
}

func TestCatalogFirstMatchWins(t *testing.T) {
	narrow := Signature{
		Type:    GarageDoor,
		Name:    "Narrow",
		FreqMin: 433_920_000,
		FreqMax: 433_920_000,
	}
	broad := Signature{
		Type:    ISM433OOK,
		Name:    "Broad",
		FreqMin: 433_050_000,
		FreqMax: 434_790_000,
	}

	t.Run("narrow declared first", func(t *testing.T) {
		cat := New(narrow, broad)
		if got := cat.Classify(433_920_000); got != GarageDoor {
			t.Errorf("Classify = %s, want %s", got, GarageDoor)
		}
	})

	t.Run("broad declared first shadows narrow", func(t *testing.T) {
		cat := New(broad, narrow)
		if got := cat.Classify(433_920_000); got != ISM433OOK {
			t.Errorf("Classify = %s, want %s", got, ISM433OOK)
		}
	})
}

func TestCatalogNameAndDescription(t *testing.T) {
	cat := Default()

	if got := cat.Name(GarageDoor); got != "Garage Door Remote" {
		t.Errorf("Name(GarageDoor) = %q", got)
	}
	if got := cat.Name(Unknown); got != "Unknown Protocol" {
		t.Errorf("Name(Unknown) = %q", got)
	}
	if got := cat.Name(TPMS); got != "Unknown Protocol" {
		t.Errorf("Name(TPMS) = %q, want fallback for type without an entry", got)
	}
	if got := cat.Description(Unknown); got != "Unknown protocol type" {
		t.Errorf("Description(Unknown) = %q", got)
	}
	if got := cat.Description(GarageDoor); got == "Unknown protocol type" {
		t.Error("Description(GarageDoor) returned the fallback")
	}
}

func TestCatalogSecurityFlags(t *testing.T) {
	cat := Default()

	flags := cat.SecurityFlags(GarageDoor)
	if len(flags) != 1 {
		t.Fatalf("SecurityFlags(GarageDoor) returned %d flags, want 1", len(flags))
	}
	if flags[0] != "CRITICAL: Garage door remote - replay attack risk" {
		t.Errorf("unexpected flag %q", flags[0])
	}

	// Mutating the returned slice must not leak into the catalog.
	flags[0] = "mutated"
	if again := cat.SecurityFlags(GarageDoor); again[0] != "CRITICAL: Garage door remote - replay attack risk" {
		t.Errorf("SecurityFlags returned a shared slice: %q", again[0])
	}

	if flags := cat.SecurityFlags(ISM433OOK); flags != nil {
		t.Errorf("SecurityFlags(ISM433OOK) = %v, want nil", flags)
	}
}

func TestCatalogAdd(t *testing.T) {
	cat := Default()
	before := cat.Len()

	cat.Add(Signature{
		Type:        SecuritySensor,
		Name:        "Driveway Sensor",
		Description: "Proprietary driveway alarm",
		FreqMin:     390_000_000,
		FreqMax:     392_000_000,
	})

	if cat.Len() != before+1 {
		t.Fatalf("Len = %d, want %d", cat.Len(), before+1)
	}
	if got := cat.Classify(391_000_000); got != SecuritySensor {
		t.Errorf("Classify(391 MHz) = %s, want %s", got, SecuritySensor)
	}
	if got := cat.Name(SecuritySensor); got != "Driveway Sensor" {
		t.Errorf("Name(SecuritySensor) = %q", got)
	}
}

func TestParseProtocolType(t *testing.T) {
	for pt := ISM433OOK; pt <= SecuritySensor; pt++ {
		got, ok := ParseProtocolType(pt.String())
		if !ok || got != pt {
			t.Errorf("ParseProtocolType(%q) = %s, %t", pt.String(), got, ok)
		}
	}

	if _, ok := ParseProtocolType("not-a-protocol"); ok {
		t.Error("ParseProtocolType accepted an unknown identifier")
	}
	if _, ok := ParseProtocolType("unknown"); ok {
		t.Error("ParseProtocolType accepted the unknown placeholder")
	}
}
