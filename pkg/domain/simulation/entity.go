// Package simulation models the simulated units whose per-slot damage counters
// drive, and are driven by, the campaign's part records. Only the narrow
// accessors the part lifecycle needs are exposed.
package simulation

import "fmt"

// Type identifies the simulated unit family
type Type int

const (
	MekType Type = iota
	TankType
	AeroType
	ProtomekType
)

// String method for Type enum
func (t Type) String() string {
	switch t {
	case MekType:
		return "Mek"
	case TankType:
		return "Tank"
	case AeroType:
		return "Aero"
	case ProtomekType:
		return "Protomek"
	default:
		return "Unknown"
	}
}

// ParseType converts a family name into a Type
func ParseType(s string) (Type, error) {
	switch s {
	case "Mek", "mek":
		return MekType, nil
	case "Tank", "tank":
		return TankType, nil
	case "Aero", "aero":
		return AeroType, nil
	case "Protomek", "protomek":
		return ProtomekType, nil
	default:
		return 0, fmt.Errorf("unknown entity type %q", s)
	}
}

// LocationNone addresses every location at once in aggregate accessors
const LocationNone = -1

// Entity is the surface shared by every simulated unit
type Entity interface {
	Type() Type
	Name() string
	Weight() int
	IsClan() bool
	NumLocations() int
	LocationName(loc int) string
	IsLocationBreached(loc int) bool
	IsLocationDestroyed(loc int) bool
}

// LocationController lets maintenance mark locations sealed, breached,
// restored or blown off
type LocationController interface {
	SetLocationBreached(loc int, breached bool)
	SetLocationDestroyed(loc int, destroyed bool)
}

// StructureCarrier exposes internal structure per location
type StructureCarrier interface {
	Internal(loc int) int
	OInternal(loc int) int
	SetInternal(loc, value int)
}

// ArmorCarrier exposes armor points per location and facing
type ArmorCarrier interface {
	ArmorType() string
	HasRearArmor(loc int) bool
	Armor(loc int, rear bool) int
	OArmor(loc int, rear bool) int
	SetArmor(loc int, rear bool, value int)
}

// EquipmentCarrier exposes mounted equipment by equipment number
type EquipmentCarrier interface {
	Equipment() []*Mounted
	Mounted(num int) (*Mounted, bool)
}

// CriticalCarrier exposes critical-slot systems by location. Passing
// LocationNone aggregates over every location.
type CriticalCarrier interface {
	SystemSlots(sys System, loc int) int
	SystemHits(sys System, loc int) int
	SetSystemHits(sys System, loc, hits int)
	IsSystemMissing(sys System, loc int) bool
	SetSystemMissing(sys System, loc int, missing bool)
}

// System identifies a critical-slot system
type System int

const (
	SystemShoulder System = iota
	SystemUpperArm
	SystemLowerArm
	SystemHand
	SystemHip
	SystemUpperLeg
	SystemLowerLeg
	SystemFoot
	SystemEngine
	SystemGyro
	SystemSensors
	SystemLifeSupport
	SystemCockpit
	SystemLimb
)

var systemNames = map[System]string{
	SystemShoulder:    "Shoulder",
	SystemUpperArm:    "Upper Arm",
	SystemLowerArm:    "Lower Arm",
	SystemHand:        "Hand",
	SystemHip:         "Hip",
	SystemUpperLeg:    "Upper Leg",
	SystemLowerLeg:    "Lower Leg",
	SystemFoot:        "Foot",
	SystemEngine:      "Engine",
	SystemGyro:        "Gyro",
	SystemSensors:     "Sensors",
	SystemLifeSupport: "Life Support",
	SystemCockpit:     "Cockpit",
	SystemLimb:        "Limb Actuator",
}

// String method for System enum
func (s System) String() string {
	if name, ok := systemNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ParseSystem converts a system name ("upper_arm", "Upper Arm") into a System
func ParseSystem(s string) (System, error) {
	for sys, name := range systemNames {
		if s == name || s == snake(name) {
			return sys, nil
		}
	}
	return 0, fmt.Errorf("unknown system %q", s)
}

// IsActuator reports whether the system is a Mek limb actuator
func (s System) IsActuator() bool {
	return s >= SystemShoulder && s <= SystemFoot
}

// EquipmentType classifies mounted equipment
type EquipmentType int

const (
	EquipWeapon EquipmentType = iota
	EquipHeatSink
	EquipJumpJet
	EquipAmmo
	EquipMisc
)

// String method for EquipmentType enum
func (t EquipmentType) String() string {
	switch t {
	case EquipWeapon:
		return "weapon"
	case EquipHeatSink:
		return "heat_sink"
	case EquipJumpJet:
		return "jump_jet"
	case EquipAmmo:
		return "ammo"
	case EquipMisc:
		return "misc"
	default:
		return "unknown"
	}
}

// ParseEquipmentType converts a name produced by String back into a type
func ParseEquipmentType(s string) (EquipmentType, error) {
	for _, t := range []EquipmentType{EquipWeapon, EquipHeatSink, EquipJumpJet, EquipAmmo, EquipMisc} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown equipment type %q", s)
}

// Mounted is one piece of equipment mounted on a simulated unit
type Mounted struct {
	Num      int
	Name     string
	Type     EquipmentType
	Location int
	Rear     bool
	Slots    int
	Hits     int
	Missing  bool
	Weight   float64
	Cost     int64

	// Heat sinks
	HeatSinkType string

	// Ammunition
	AmmoType  string
	Capacity  int
	ShotsLeft int
	OneShot   bool
}

// IsDestroyed reports whether every slot of the mount is hit or the mount is gone
func (m *Mounted) IsDestroyed() bool {
	return m.Missing || m.Hits >= m.Slots
}

// equipmentList is embedded by every unit type that mounts equipment
type equipmentList struct {
	mounts []*Mounted
}

// Equipment returns mounted equipment in mount order
func (l *equipmentList) Equipment() []*Mounted {
	return l.mounts
}

// Mounted returns the mount with the given equipment number
func (l *equipmentList) Mounted(num int) (*Mounted, bool) {
	if num < 0 || num >= len(l.mounts) {
		return nil, false
	}
	return l.mounts[num], true
}

// AddEquipment mounts a piece of equipment and assigns its equipment number
func (l *equipmentList) AddEquipment(m Mounted) *Mounted {
	m.Num = len(l.mounts)
	if m.Slots < 1 {
		m.Slots = 1
	}
	if m.Type == EquipAmmo && m.ShotsLeft == 0 {
		m.ShotsLeft = m.Capacity
	}
	mounted := &m
	l.mounts = append(l.mounts, mounted)
	return mounted
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func snake(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '-':
			out = append(out, '_')
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
