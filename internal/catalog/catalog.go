// Package catalog holds the static database of radio protocol signatures
// used to classify detected signals. The catalog is ordered: classification
// returns the first signature whose frequency range contains the signal,
// so narrower (more specific) signatures must be declared before broad
// band-wide entries.
package catalog

// ProtocolType identifies a known short-range radio protocol family.
type ProtocolType int

const (
	Unknown ProtocolType = iota
	ISM433OOK
	ISM433FSK
	ISM915OOK
	ISM868OOK
	Zigbee915
	Zigbee868
	LoRa433
	LoRa868
	LoRa915
	WirelessMBus
	TPMS
	WeatherStation
	GarageDoor
	SecuritySensor
)

const (
	unknownName        = "Unknown Protocol"
	unknownDescription = "Unknown protocol type"
)

// String returns a short stable identifier for the protocol type, suitable
// for logs and storage keys.
func (t ProtocolType) String() string {
	switch t {
	case ISM433OOK:
		return "ism-433-ook"
	case ISM433FSK:
		return "ism-433-fsk"
	case ISM915OOK:
		return "ism-915-ook"
	case ISM868OOK:
		return "ism-868-ook"
	case Zigbee915:
		return "zigbee-915"
	case Zigbee868:
		return "zigbee-868"
	case LoRa433:
		return "lora-433"
	case LoRa868:
		return "lora-868"
	case LoRa915:
		return "lora-915"
	case WirelessMBus:
		return "wireless-mbus"
	case TPMS:
		return "tpms"
	case WeatherStation:
		return "weather-station"
	case GarageDoor:
		return "garage-door"
	case SecuritySensor:
		return "security-sensor"
	default:
		return "unknown"
	}
}

// ParseProtocolType maps a string identifier produced by
// ProtocolType.String back to its type. Returns Unknown and false for
// unrecognized identifiers.
func ParseProtocolType(s string) (ProtocolType, bool) {
	for t := ISM433OOK; t <= SecuritySensor; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return Unknown, false
}

// Signature describes the expected radio characteristics of one protocol.
type Signature struct {
	Type          ProtocolType
	Name          string
	Description   string
	FreqMin       float64 // Hz
	FreqMax       float64 // Hz
	Bandwidth     float64 // typical bandwidth, Hz
	Modulation    string
	SymbolRateMin float64 // symbols/s
	SymbolRateMax float64 // symbols/s
	BurstMode     bool
	CommonDevices []string
	SecurityNotes string
}

// Contains reports whether the frequency falls within the signature's range,
// bounds inclusive.
func (s Signature) Contains(freqHz float64) bool {
	return freqHz >= s.FreqMin && freqHz <= s.FreqMax
}

// securityFlags maps protocol types to the security flags attached to every
// newly tracked device of that type.
var securityFlags = map[ProtocolType][]string{
	GarageDoor:     {"CRITICAL: Garage door remote - replay attack risk"},
	WeatherStation: {"INFO: Unencrypted sensor data"},
}

// Catalog is an ordered, effectively immutable set of protocol signatures.
// Classification walks the signatures in declaration order and the first
// containing range wins; this tie-break policy is deliberate and must be
// stable for reproducible results.
type Catalog struct {
	signatures []Signature
	names      map[ProtocolType]string
	descs      map[ProtocolType]string
}

// New creates a catalog from the given signatures, preserving their order.
func New(signatures ...Signature) *Catalog {
	c := Catalog{
		signatures: make([]Signature, 0, len(signatures)),
		names:      make(map[ProtocolType]string, len(signatures)),
		descs:      make(map[ProtocolType]string, len(signatures)),
	}
	for _, s := range signatures {
		c.add(s)
	}
	return &c
}

// Default returns the catalog of built-in signatures for the supported ISM
// bands. Within each band, exact-frequency and narrow-band protocols come
// before the band-wide entries so they win classification.
func Default() *Catalog {
	return New(defaultSignatures()...)
}

// Add appends a custom signature to the catalog. It must only be called
// during setup, before classification starts: the catalog is read without
// synchronization afterwards.
func (c *Catalog) Add(s Signature) {
	c.add(s)
}

func (c *Catalog) add(s Signature) {
	c.signatures = append(c.signatures, s)
	if _, ok := c.names[s.Type]; !ok {
		c.names[s.Type] = s.Name
		c.descs[s.Type] = s.Description
	}
}

// Classify returns the type of the first signature whose frequency range
// contains freqHz, or Unknown if no signature matches.
func (c *Catalog) Classify(freqHz float64) ProtocolType {
	for _, s := range c.signatures {
		if s.Contains(freqHz) {
			return s.Type
		}
	}
	return Unknown
}

// Name returns the display name of the protocol type, or a fixed fallback
// for types without a catalog entry.
func (c *Catalog) Name(t ProtocolType) string {
	if name, ok := c.names[t]; ok {
		return name
	}
	return unknownName
}

// Description returns the description of the protocol type, or a fixed
// fallback for types without a catalog entry.
func (c *Catalog) Description(t ProtocolType) string {
	if desc, ok := c.descs[t]; ok {
		return desc
	}
	return unknownDescription
}

// SecurityFlags returns the flags attached to new devices of the given
// protocol type. The returned slice is a copy.
func (c *Catalog) SecurityFlags(t ProtocolType) []string {
	flags := securityFlags[t]
	if len(flags) == 0 {
		return nil
	}
	out := make([]string, len(flags))
	copy(out, flags)
	return out
}

// Signatures returns a copy of the catalog entries in declaration order.
func (c *Catalog) Signatures() []Signature {
	out := make([]Signature, len(c.signatures))
	copy(out, c.signatures)
	return out
}

// Len returns the number of signatures in the catalog.
func (c *Catalog) Len() int {
	return len(c.signatures)
}
