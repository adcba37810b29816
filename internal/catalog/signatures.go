package catalog

// defaultSignatures returns the built-in protocol signature set. Order
// matters: garage door remotes and weather stations sit inside the 433 MHz
// ISM range and must be declared first to win classification, same for
// Wireless M-Bus inside the 868 MHz band.
func defaultSignatures() []Signature {
	return []Signature{
		{
			Type:          GarageDoor,
			Name:          "Garage Door Remote",
			Description:   "Garage door opener remote controls",
			FreqMin:       433_920_000,
			FreqMax:       433_920_000, // almost always exactly 433.92 MHz
			Bandwidth:     20_000,
			Modulation:    "OOK",
			SymbolRateMin: 500,
			SymbolRateMax: 2_000,
			BurstMode:     true,
			CommonDevices: []string{"Chamberlain", "LiftMaster", "Genie", "Craftsman"},
			SecurityNotes: "Critical security risk - often fixed codes, vulnerable to replay",
		},
		{
			Type:          WeatherStation,
			Name:          "Weather Station",
			Description:   "Wireless weather station protocols (Acurite, Oregon Scientific, etc.)",
			FreqMin:       433_800_000,
			FreqMax:       434_000_000,
			Bandwidth:     10_000,
			Modulation:    "OOK",
			SymbolRateMin: 1_000,
			SymbolRateMax: 5_000,
			BurstMode:     true,
			CommonDevices: []string{"Acurite sensors", "Oregon Scientific", "Ambient Weather", "La Crosse"},
			SecurityNotes: "Usually unencrypted sensor data, privacy concerns",
		},
		{
			Type:          ISM433OOK,
			Name:          "433MHz OOK",
			Description:   "On-Off Keying protocols at 433MHz - garage doors, weather stations, sensors",
			FreqMin:       433_050_000,
			FreqMax:       434_790_000,
			Bandwidth:     25_000,
			Modulation:    "OOK",
			SymbolRateMin: 100,
			SymbolRateMax: 10_000,
			BurstMode:     true,
			CommonDevices: []string{"Weather stations", "Garage door remotes", "Wireless doorbells", "Security sensors"},
			SecurityNotes: "Often unencrypted, vulnerable to replay attacks",
		},
		{
			Type:          ISM433FSK,
			Name:          "433MHz FSK",
			Description:   "Frequency Shift Keying protocols at 433MHz - more robust than OOK",
			FreqMin:       433_050_000,
			FreqMax:       434_790_000,
			Bandwidth:     50_000,
			Modulation:    "FSK",
			SymbolRateMin: 1_000,
			SymbolRateMax: 50_000,
			BurstMode:     true,
			CommonDevices: []string{"Smart meters", "Industrial sensors", "Remote controls"},
			SecurityNotes: "Better resistance to interference, may have encryption",
		},
		{
			Type:          WirelessMBus,
			Name:          "Wireless M-Bus",
			Description:   "Wireless meter reading protocol (European standard)",
			FreqMin:       868_950_000,
			FreqMax:       869_525_000,
			Bandwidth:     50_000,
			Modulation:    "FSK",
			SymbolRateMin: 32_768,
			SymbolRateMax: 100_000,
			BurstMode:     true,
			CommonDevices: []string{"Smart water meters", "Gas meters", "Heat meters", "Electricity meters"},
			SecurityNotes: "Contains sensitive consumption data, encryption varies",
		},
		{
			Type:          ISM868OOK,
			Name:          "868MHz OOK (EU)",
			Description:   "European ISM band On-Off Keying protocols",
			FreqMin:       868_000_000,
			FreqMax:       868_600_000,
			Bandwidth:     25_000,
			Modulation:    "OOK",
			SymbolRateMin: 100,
			SymbolRateMax: 10_000,
			BurstMode:     true,
			CommonDevices: []string{"European weather stations", "Home automation", "Security systems"},
			SecurityNotes: "European equivalent of 433MHz protocols",
		},
		{
			Type:          Zigbee868,
			Name:          "Zigbee 868MHz",
			Description:   "Zigbee mesh networking protocol - European band",
			FreqMin:       868_000_000,
			FreqMax:       868_600_000,
			Bandwidth:     600_000,
			Modulation:    "OQPSK",
			SymbolRateMin: 20_000,
			SymbolRateMax: 20_000,
			BurstMode:     false, // continuous mesh traffic
			CommonDevices: []string{"Smart home devices", "Industrial automation", "Smart lighting"},
			SecurityNotes: "AES-128 encryption available but not always enabled",
		},
		{
			Type:          LoRa868,
			Name:          "LoRa 868MHz",
			Description:   "Long Range IoT protocol - European band",
			FreqMin:       863_000_000,
			FreqMax:       870_000_000,
			Bandwidth:     125_000,
			Modulation:    "LoRa CSS",
			SymbolRateMin: 250,
			SymbolRateMax: 5_500, // SF12 to SF7
			BurstMode:     true,
			CommonDevices: []string{"IoT sensors", "Smart city", "Agricultural monitoring", "Asset tracking"},
			SecurityNotes: "Application-layer encryption varies by implementation",
		},
		{
			Type:          ISM915OOK,
			Name:          "915MHz OOK (US)",
			Description:   "American ISM band On-Off Keying protocols",
			FreqMin:       902_000_000,
			FreqMax:       928_000_000,
			Bandwidth:     25_000,
			Modulation:    "OOK",
			SymbolRateMin: 100,
			SymbolRateMax: 10_000,
			BurstMode:     true,
			CommonDevices: []string{"US weather stations", "Sensors", "Remote controls"},
			SecurityNotes: "American equivalent of 433MHz protocols",
		},
		{
			Type:          Zigbee915,
			Name:          "Zigbee 915MHz",
			Description:   "Zigbee mesh networking protocol - American band",
			FreqMin:       902_000_000,
			FreqMax:       928_000_000,
			Bandwidth:     2_000_000,
			Modulation:    "OQPSK",
			SymbolRateMin: 40_000,
			SymbolRateMax: 40_000,
			BurstMode:     false,
			CommonDevices: []string{"Smart home devices", "Industrial sensors", "Medical devices"},
			SecurityNotes: "AES-128 encryption capability, implementation varies",
		},
		{
			Type:          LoRa915,
			Name:          "LoRa 915MHz",
			Description:   "Long Range IoT protocol - American band",
			FreqMin:       902_000_000,
			FreqMax:       928_000_000,
			Bandwidth:     125_000,
			Modulation:    "LoRa CSS",
			SymbolRateMin: 980,
			SymbolRateMax: 21_900,
			BurstMode:     true,
			CommonDevices: []string{"IoT networks", "Smart agriculture", "Industrial monitoring"},
			SecurityNotes: "LoRaWAN security depends on proper key management",
		},
	}
}
