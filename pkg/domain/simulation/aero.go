package simulation

// Aerospace armor arcs
const (
	AeroNose = iota
	AeroLeftWing
	AeroRightWing
	AeroAft
	AeroNumLocations
)

var aeroLocationNames = [AeroNumLocations]string{"Nose", "Left Wing", "Right Wing", "Aft"}

// Maximum hits tracked on aerospace critical systems
const (
	MaxAvionicsHits   = 3
	MaxFCSHits        = 3
	MaxAeroSensorHits = 3
	MaxAeroEngineHits = 3
)

// AeroConfig describes an aerospace unit to build
type AeroConfig struct {
	Name         string
	Tonnage      int
	Clan         bool
	EngineRating int
	EngineType   string
	ArmorType    string
	HeatSinks    int
	HeatSinkType string
	SI           int
	LargeCraft   bool
}

// Aero is a simulated aerospace fighter or small craft
type Aero struct {
	equipmentList

	config AeroConfig

	armor  [AeroNumLocations]int
	oArmor [AeroNumLocations]int

	si  int
	osi int

	avionicsHits int
	fcsHits      int
	sensorHits   int
	engineHits   int
	gearHit      bool

	heatSinkDamaged []bool
}

// NewAero builds an aerospace unit with full structural integrity and armor
func NewAero(cfg AeroConfig) *Aero {
	if cfg.EngineType == "" {
		cfg.EngineType = "Standard"
	}
	if cfg.ArmorType == "" {
		cfg.ArmorType = "Standard"
	}
	if cfg.HeatSinkType == "" {
		cfg.HeatSinkType = "Single"
	}
	if cfg.SI <= 0 {
		cfg.SI = (cfg.Tonnage + 9) / 10
	}
	if cfg.HeatSinks <= 0 {
		cfg.HeatSinks = 10
	}
	a := &Aero{
		config:          cfg,
		si:              cfg.SI,
		osi:             cfg.SI,
		heatSinkDamaged: make([]bool, cfg.HeatSinks),
	}
	for loc := 0; loc < AeroNumLocations; loc++ {
		v := cfg.Tonnage / 4
		if loc == AeroNose {
			v = cfg.Tonnage / 3
		}
		a.armor[loc], a.oArmor[loc] = v, v
	}
	return a
}

// Config returns the configuration the unit was built from
func (a *Aero) Config() AeroConfig { return a.config }
func (a *Aero) Type() Type { return AeroType }
func (a *Aero) Name() string { return a.config.Name }
func (a *Aero) Weight() int { return a.config.Tonnage }
func (a *Aero) IsClan() bool { return a.config.Clan }
func (a *Aero) ArmorType() string { return a.config.ArmorType }
func (a *Aero) IsLargeCraft() bool { return a.config.LargeCraft }
func (a *Aero) NumLocations() int { return AeroNumLocations }

func (a *Aero) LocationName(loc int) string {
	if loc < 0 || loc >= AeroNumLocations {
		return "Unknown Location"
	}
	return aeroLocationNames[loc]
}

// Arcs are never breached or destroyed; damage goes to structural integrity
func (a *Aero) IsLocationBreached(loc int) bool { return false }
func (a *Aero) IsLocationDestroyed(loc int) bool { return false }

func (a *Aero) HasRearArmor(loc int) bool { return false }

func (a *Aero) Armor(loc int, rear bool) int {
	if loc < 0 || loc >= AeroNumLocations || rear {
		return 0
	}
	return a.armor[loc]
}

func (a *Aero) OArmor(loc int, rear bool) int {
	if loc < 0 || loc >= AeroNumLocations || rear {
		return 0
	}
	return a.oArmor[loc]
}

func (a *Aero) SetArmor(loc int, rear bool, value int) {
	if loc >= 0 && loc < AeroNumLocations && !rear {
		a.armor[loc] = clamp(value, 0, a.oArmor[loc])
	}
}

func (a *Aero) SI() int { return a.si }
func (a *Aero) OSI() int { return a.osi }
func (a *Aero) SetSI(v int) { a.si = clamp(v, 0, a.osi) }

func (a *Aero) AvionicsHits() int { return a.avionicsHits }
func (a *Aero) SetAvionicsHits(v int) { a.avionicsHits = clamp(v, 0, MaxAvionicsHits) }

func (a *Aero) FCSHits() int { return a.fcsHits }
func (a *Aero) SetFCSHits(v int) { a.fcsHits = clamp(v, 0, MaxFCSHits) }

func (a *Aero) SensorHits() int { return a.sensorHits }
func (a *Aero) SetSensorHits(v int) { a.sensorHits = clamp(v, 0, MaxAeroSensorHits) }

func (a *Aero) EngineHits() int { return a.engineHits }
func (a *Aero) SetEngineHits(v int) { a.engineHits = clamp(v, 0, MaxAeroEngineHits) }

func (a *Aero) IsGearHit() bool { return a.gearHit }
func (a *Aero) SetGearHit(hit bool) { a.gearHit = hit }

// HeatSinks returns the number of heat sinks the unit was built with
func (a *Aero) HeatSinks() int { return len(a.heatSinkDamaged) }

// ActiveHeatSinks returns the number of heat sinks still working
func (a *Aero) ActiveHeatSinks() int {
	n := 0
	for _, damaged := range a.heatSinkDamaged {
		if !damaged {
			n++
		}
	}
	return n
}

func (a *Aero) IsHeatSinkDamaged(i int) bool {
	return i >= 0 && i < len(a.heatSinkDamaged) && a.heatSinkDamaged[i]
}

func (a *Aero) SetHeatSinkDamaged(i int, damaged bool) {
	if i >= 0 && i < len(a.heatSinkDamaged) {
		a.heatSinkDamaged[i] = damaged
	}
}
