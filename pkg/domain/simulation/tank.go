package simulation

// Tank locations. VTOLs use the rotor slot in place of a turret.
const (
	TankBody = iota
	TankFront
	TankRight
	TankLeft
	TankRear
	TankTurret
	TankNumLocations
)

// TankRotor shares the sixth location slot on VTOLs
const TankRotor = TankTurret

// RotorStructure is the internal structure of a VTOL rotor
const RotorStructure = 2

// Maximum motive damage and sensor hits a vehicle record tracks
const (
	MaxMotiveDamage  = 4
	MaxVeeSensorHits = 3
)

// TankConfig describes a combat vehicle to build
type TankConfig struct {
	Name         string
	Tonnage      int
	Clan         bool
	EngineRating int
	EngineType   string
	ArmorType    string
	Turret       bool
	VTOL         bool
}

// Tank is a simulated combat vehicle
type Tank struct {
	equipmentList

	config TankConfig

	internal   [TankNumLocations]int
	oInternal  [TankNumLocations]int
	armor      [TankNumLocations]int
	oArmor     [TankNumLocations]int
	destroyed  [TankNumLocations]bool
	stabiliser [TankNumLocations]bool

	motiveDamage  int
	motivePenalty int
	sensorHits    int
	engineHit     bool
}

// NewTank builds a vehicle with full structure and armor
func NewTank(cfg TankConfig) *Tank {
	if cfg.EngineType == "" {
		cfg.EngineType = "Standard"
	}
	if cfg.ArmorType == "" {
		cfg.ArmorType = "Standard"
	}
	t := &Tank{config: cfg}
	structure := (cfg.Tonnage + 9) / 10
	for loc := 0; loc < TankNumLocations; loc++ {
		if !t.hasLocation(loc) {
			continue
		}
		is := structure
		if cfg.VTOL && loc == TankRotor {
			is = RotorStructure
		}
		t.internal[loc], t.oInternal[loc] = is, is
		if loc != TankBody {
			a := t.defaultArmor(loc)
			t.armor[loc], t.oArmor[loc] = a, a
		}
	}
	return t
}

func (t *Tank) defaultArmor(loc int) int {
	switch loc {
	case TankFront:
		return t.config.Tonnage / 3
	case TankRear:
		return t.config.Tonnage / 5
	case TankTurret:
		if t.config.VTOL {
			return RotorStructure
		}
		return t.config.Tonnage / 4
	default:
		return t.config.Tonnage / 4
	}
}

func (t *Tank) hasLocation(loc int) bool {
	if loc == TankTurret {
		return t.config.Turret || t.config.VTOL
	}
	return loc >= 0 && loc < TankTurret
}

// Config returns the configuration the tank was built from
func (t *Tank) Config() TankConfig { return t.config }
func (t *Tank) Type() Type { return TankType }
func (t *Tank) Name() string { return t.config.Name }
func (t *Tank) Weight() int { return t.config.Tonnage }
func (t *Tank) IsClan() bool { return t.config.Clan }
func (t *Tank) ArmorType() string { return t.config.ArmorType }
func (t *Tank) IsVTOL() bool { return t.config.VTOL }
func (t *Tank) HasTurret() bool { return t.config.Turret && !t.config.VTOL }

func (t *Tank) NumLocations() int {
	if t.config.Turret || t.config.VTOL {
		return TankNumLocations
	}
	return TankTurret
}

func (t *Tank) LocationName(loc int) string {
	switch loc {
	case TankBody:
		return "Body"
	case TankFront:
		return "Front"
	case TankRight:
		return "Right"
	case TankLeft:
		return "Left"
	case TankRear:
		return "Rear"
	case TankTurret:
		if t.config.VTOL {
			return "Rotor"
		}
		return "Turret"
	default:
		return "Unknown Location"
	}
}

// Vehicles have no hull breaches to track
func (t *Tank) IsLocationBreached(loc int) bool { return false }

func (t *Tank) IsLocationDestroyed(loc int) bool {
	if !t.hasLocation(loc) {
		return false
	}
	return t.destroyed[loc] || (t.oInternal[loc] > 0 && t.internal[loc] == 0)
}

func (t *Tank) SetLocationBreached(loc int, breached bool) {}

func (t *Tank) SetLocationDestroyed(loc int, destroyed bool) {
	if t.hasLocation(loc) {
		t.destroyed[loc] = destroyed
	}
}

func (t *Tank) Internal(loc int) int {
	if !t.hasLocation(loc) {
		return 0
	}
	return t.internal[loc]
}

func (t *Tank) OInternal(loc int) int {
	if !t.hasLocation(loc) {
		return 0
	}
	return t.oInternal[loc]
}

func (t *Tank) SetInternal(loc, value int) {
	if t.hasLocation(loc) {
		t.internal[loc] = clamp(value, 0, t.oInternal[loc])
	}
}

func (t *Tank) HasRearArmor(loc int) bool { return false }

func (t *Tank) Armor(loc int, rear bool) int {
	if !t.hasLocation(loc) || rear {
		return 0
	}
	return t.armor[loc]
}

func (t *Tank) OArmor(loc int, rear bool) int {
	if !t.hasLocation(loc) || rear {
		return 0
	}
	return t.oArmor[loc]
}

func (t *Tank) SetArmor(loc int, rear bool, value int) {
	if t.hasLocation(loc) && !rear {
		t.armor[loc] = clamp(value, 0, t.oArmor[loc])
	}
}

func (t *Tank) MotiveDamage() int { return t.motiveDamage }
func (t *Tank) MotivePenalty() int { return t.motivePenalty }

func (t *Tank) SetMotiveDamage(v int) {
	t.motiveDamage = clamp(v, 0, MaxMotiveDamage)
}

func (t *Tank) SetMotivePenalty(v int) {
	if v < 0 {
		v = 0
	}
	t.motivePenalty = v
}

func (t *Tank) SensorHits() int { return t.sensorHits }

func (t *Tank) SetSensorHits(v int) {
	t.sensorHits = clamp(v, 0, MaxVeeSensorHits)
}

// IsStabiliserHit reports a hit turret or side stabiliser in the location
func (t *Tank) IsStabiliserHit(loc int) bool {
	return t.hasLocation(loc) && t.stabiliser[loc]
}

func (t *Tank) SetStabiliserHit(loc int, hit bool) {
	if t.hasLocation(loc) {
		t.stabiliser[loc] = hit
	}
}

func (t *Tank) IsEngineHit() bool { return t.engineHit }
func (t *Tank) SetEngineHit(hit bool) { t.engineHit = hit }
