package entities

import (
	"fmt"

	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

// Kind identifies the concrete component species of a part record
type Kind int

const (
	MekActuator Kind = iota
	MekLocation
	Armor
	Engine
	MekGyro
	MekSensor
	MekLifeSupport
	MekCockpit
	HeatSink
	JumpJet
	Equipment
	AmmoBin
	TankLocation
	Turret
	Rotor
	MotiveSystem
	VeeSensor
	VeeStabiliser
	Avionics
	FireControlSystem
	AeroSensor
	StructuralIntegrity
	LandingGear
	AeroHeatSink
	ProtomekActuator
	ProtomekSensor
)

// Kinds lists every kind in declaration order
var Kinds = []Kind{
	MekActuator, MekLocation, Armor, Engine, MekGyro, MekSensor, MekLifeSupport,
	MekCockpit, HeatSink, JumpJet, Equipment, AmmoBin, TankLocation, Turret, Rotor,
	MotiveSystem, VeeSensor, VeeStabiliser, Avionics, FireControlSystem, AeroSensor,
	StructuralIntegrity, LandingGear, AeroHeatSink, ProtomekActuator, ProtomekSensor,
}

// Task is one entry of a base time/difficulty table
type Task struct {
	Minutes    int
	Difficulty int
}

// kindInfo is the per-kind behavior table
type kindInfo struct {
	name string

	// hasMissing is false for kinds that never leave their slot empty
	hasMissing bool
	fungible   bool
	tonnage    bool
	neverScrap bool
	destroys   bool

	maxHits func(p *Part) int

	// repair is indexed by repairStep; perHit multiplies the time by hits
	repair  []Task
	perHit  bool
	salvage Task
	replace Task
}

func fixedHits(n int) func(*Part) int {
	return func(*Part) int { return n }
}

func slotHits(p *Part) int {
	return max(1, p.Slots)
}

func locationStructure(p *Part) int {
	return max(1, (p.UnitTonnage()+9)/10)
}

var kindTable = map[Kind]kindInfo{
	MekActuator: {
		name: "Actuator", hasMissing: true, fungible: true, tonnage: true, destroys: true,
		maxHits: fixedHits(1),
		repair:  []Task{{120, 0}},
		salvage: Task{90, -2}, replace: Task{90, -3},
	},
	MekLocation: {
		name: "Location", hasMissing: true, tonnage: true,
		maxHits: func(p *Part) int {
			if p.location < 0 || p.location >= simulation.MekNumLocations {
				return 1
			}
			return simulation.MekStructure(p.UnitTonnage())[p.location]
		},
		repair:  []Task{{90, -2}, {180, 0}, {270, 1}, {360, 2}},
		salvage: Task{240, 3}, replace: Task{240, 3},
	},
	Armor: {
		name: "Armor", fungible: true,
		maxHits: func(p *Part) int { return max(0, p.Capacity) },
		repair:  []Task{{5, -2}}, perHit: true,
		salvage: Task{5, -2},
	},
	Engine: {
		name: "Engine", hasMissing: true, tonnage: true, destroys: true,
		maxHits: func(p *Part) int {
			if p.Subtype == simulation.TankType.String() {
				return 1
			}
			return 3
		},
		repair:  []Task{{100, -1}, {200, 0}, {300, 2}},
		salvage: Task{360, -1}, replace: Task{360, -1},
	},
	MekGyro: {
		name: "Gyro", hasMissing: true, destroys: true,
		maxHits: func(p *Part) int {
			if p.Model == "Heavy Duty" {
				return 3
			}
			return 2
		},
		repair:  []Task{{100, 1}, {200, 3}, {300, 4}},
		salvage: Task{200, 0}, replace: Task{200, 0},
	},
	MekSensor: {
		name: "Sensors", hasMissing: true, fungible: true, tonnage: true, destroys: true,
		maxHits: fixedHits(2),
		repair:  []Task{{75, -1}, {150, 0}},
		salvage: Task{260, 0}, replace: Task{260, 0},
	},
	MekLifeSupport: {
		name: "Life Support", hasMissing: true, fungible: true, destroys: true,
		maxHits: fixedHits(2),
		repair:  []Task{{60, -1}, {120, 0}},
		salvage: Task{180, -1}, replace: Task{180, -1},
	},
	MekCockpit: {
		name: "Cockpit", hasMissing: true, destroys: true,
		maxHits: fixedHits(1),
		repair:  []Task{{200, 1}},
		salvage: Task{300, 0}, replace: Task{300, 0},
	},
	HeatSink: {
		name: "Heat Sink", hasMissing: true, fungible: true, destroys: true,
		maxHits: slotHits,
		repair:  []Task{{120, -1}},
		salvage: Task{90, -2}, replace: Task{90, -2},
	},
	JumpJet: {
		name: "Jump Jet", hasMissing: true, fungible: true, tonnage: true, destroys: true,
		maxHits: fixedHits(1),
		repair:  []Task{{60, 0}},
		salvage: Task{60, 0}, replace: Task{60, 0},
	},
	Equipment: {
		name: "Equipment", hasMissing: true, fungible: true, destroys: true,
		maxHits: slotHits,
		repair:  []Task{{120, 1}},
		salvage: Task{120, 0}, replace: Task{120, 0},
	},
	AmmoBin: {
		name: "Ammo Bin", hasMissing: true, fungible: true, destroys: true,
		maxHits: fixedHits(1),
		repair:  []Task{{15, -2}},
		salvage: Task{120, 0}, replace: Task{120, 0},
	},
	TankLocation: {
		name: "Vehicle Location", tonnage: true, neverScrap: true,
		maxHits: locationStructure,
		repair:  []Task{{60, 0}}, perHit: true,
	},
	Turret: {
		name: "Turret", hasMissing: true, tonnage: true,
		maxHits: locationStructure,
		repair:  []Task{{60, 0}, {120, 1}, {180, 2}},
		salvage: Task{160, -1}, replace: Task{160, -1},
	},
	Rotor: {
		name: "Rotor", hasMissing: true, fungible: true, tonnage: true,
		maxHits: fixedHits(simulation.RotorStructure),
		repair:  []Task{{120, 0}},
		salvage: Task{300, 0}, replace: Task{300, 0},
	},
	MotiveSystem: {
		name: "Motive System", neverScrap: true,
		maxHits: fixedHits(simulation.MaxMotiveDamage),
		repair:  []Task{{60, -1}},
	},
	VeeSensor: {
		name: "Vehicle Sensors", hasMissing: true, fungible: true, destroys: true,
		maxHits: fixedHits(simulation.MaxVeeSensorHits),
		repair:  []Task{{75, 0}},
		salvage: Task{260, 0}, replace: Task{260, 0},
	},
	VeeStabiliser: {
		name: "Stabiliser", hasMissing: true, fungible: true, destroys: true,
		maxHits: fixedHits(1),
		repair:  []Task{{60, 1}},
		salvage: Task{60, 0}, replace: Task{60, 0},
	},
	Avionics: {
		name: "Avionics", hasMissing: true, fungible: true, destroys: true,
		maxHits: fixedHits(simulation.MaxAvionicsHits),
		repair:  []Task{{120, -1}, {240, 0}, {360, 1}},
		salvage: Task{240, 0}, replace: Task{240, 0},
	},
	FireControlSystem: {
		name: "Fire Control System", hasMissing: true, fungible: true, destroys: true,
		maxHits: fixedHits(simulation.MaxFCSHits),
		repair:  []Task{{120, 0}, {240, 1}, {360, 2}},
		salvage: Task{4800, 0}, replace: Task{4800, 0},
	},
	AeroSensor: {
		name: "Aero Sensors", hasMissing: true, fungible: true, destroys: true,
		maxHits: fixedHits(simulation.MaxAeroSensorHits),
		repair:  []Task{{75, -1}, {150, 0}, {225, 1}},
		salvage: Task{260, 0}, replace: Task{260, 0},
	},
	StructuralIntegrity: {
		name: "Structural Integrity", neverScrap: true,
		maxHits: func(p *Part) int { return max(0, p.Capacity) },
		repair:  []Task{{100, 1}}, perHit: true,
	},
	LandingGear: {
		name: "Landing Gear", hasMissing: true, fungible: true, tonnage: true, destroys: true,
		maxHits: fixedHits(1),
		repair:  []Task{{120, 0}},
		salvage: Task{1200, 0}, replace: Task{1200, 0},
	},
	AeroHeatSink: {
		name: "Aero Heat Sink", hasMissing: true, fungible: true, destroys: true,
		maxHits: fixedHits(1),
		repair:  []Task{{90, -2}},
		salvage: Task{90, -2}, replace: Task{90, -2},
	},
	ProtomekActuator: {
		name: "Protomek Actuator", hasMissing: true, fungible: true, tonnage: true, destroys: true,
		maxHits: slotHits,
		repair:  []Task{{120, 0}},
		salvage: Task{120, 0}, replace: Task{120, 0},
	},
	ProtomekSensor: {
		name: "Protomek Sensors", hasMissing: true, fungible: true, tonnage: true, destroys: true,
		maxHits: fixedHits(2),
		repair:  []Task{{75, 0}, {150, 1}},
		salvage: Task{120, 0}, replace: Task{120, 0},
	},
}

func (k Kind) info() kindInfo {
	return kindTable[k]
}

// String method for Kind enum
func (k Kind) String() string {
	switch k {
	case MekActuator:
		return "mek_actuator"
	case MekLocation:
		return "mek_location"
	case Armor:
		return "armor"
	case Engine:
		return "engine"
	case MekGyro:
		return "mek_gyro"
	case MekSensor:
		return "mek_sensor"
	case MekLifeSupport:
		return "mek_life_support"
	case MekCockpit:
		return "mek_cockpit"
	case HeatSink:
		return "heat_sink"
	case JumpJet:
		return "jump_jet"
	case Equipment:
		return "equipment"
	case AmmoBin:
		return "ammo_bin"
	case TankLocation:
		return "tank_location"
	case Turret:
		return "turret"
	case Rotor:
		return "rotor"
	case MotiveSystem:
		return "motive_system"
	case VeeSensor:
		return "vee_sensor"
	case VeeStabiliser:
		return "vee_stabiliser"
	case Avionics:
		return "avionics"
	case FireControlSystem:
		return "fire_control_system"
	case AeroSensor:
		return "aero_sensor"
	case StructuralIntegrity:
		return "structural_integrity"
	case LandingGear:
		return "landing_gear"
	case AeroHeatSink:
		return "aero_heat_sink"
	case ProtomekActuator:
		return "protomek_actuator"
	case ProtomekSensor:
		return "protomek_sensor"
	default:
		return "unknown"
	}
}

// ParseKind converts a kind discriminator back into a Kind
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown part kind %q", s)
}

// HasMissingVariant reports whether a slot of this kind can be left empty
func (k Kind) HasMissingVariant() bool { return k.info().hasMissing }

// IsFungible reports whether spares of this kind stack by quantity
func (k Kind) IsFungible() bool { return k.info().fungible }

// IsTonnageLimited reports whether compatibility depends on unit tonnage
func (k Kind) IsTonnageLimited() bool { return k.info().tonnage }

// IsNeverScrap reports whether parts of this kind can never be removed
func (k Kind) IsNeverScrap() bool { return k.info().neverScrap }

// ChecksForDestruction reports whether fresh damage can destroy the part outright
func (k Kind) ChecksForDestruction() bool { return k.info().destroys }
