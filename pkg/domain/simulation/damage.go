package simulation

import "fmt"

// DamageTarget names what a damage event strikes
type DamageTarget int

const (
	TargetArmor DamageTarget = iota
	TargetStructure
	TargetBreach
	TargetSystem
	TargetEquipment
	TargetAmmoUsed
	TargetEngine
	TargetSensors
	TargetMotive
	TargetStabiliser
	TargetAvionics
	TargetFCS
	TargetSI
	TargetGear
	TargetHeatSink
)

var targetNames = map[DamageTarget]string{
	TargetArmor:      "armor",
	TargetStructure:  "structure",
	TargetBreach:     "breach",
	TargetSystem:     "system",
	TargetEquipment:  "equipment",
	TargetAmmoUsed:   "ammo_used",
	TargetEngine:     "engine",
	TargetSensors:    "sensors",
	TargetMotive:     "motive",
	TargetStabiliser: "stabiliser",
	TargetAvionics:   "avionics",
	TargetFCS:        "fcs",
	TargetSI:         "si",
	TargetGear:       "gear",
	TargetHeatSink:   "heat_sink",
}

// String method for DamageTarget enum
func (t DamageTarget) String() string {
	if name, ok := targetNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseDamageTarget converts a target name into a DamageTarget
func ParseDamageTarget(s string) (DamageTarget, error) {
	for t, name := range targetNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown damage target %q", s)
}

// Damage is one resolved combat result against a simulated unit
type Damage struct {
	Target    DamageTarget
	Location  int
	Rear      bool
	System    System
	Equipment int
	Amount    int
}

// Apply mutates the entity as combat resolution would. It is the only writer
// of damage; maintenance writes go through the narrow accessors instead.
func Apply(e Entity, d Damage) error {
	if d.Amount <= 0 {
		d.Amount = 1
	}

	switch d.Target {
	case TargetArmor:
		a, ok := e.(ArmorCarrier)
		if !ok {
			return unsupported(e, d)
		}
		a.SetArmor(d.Location, d.Rear, a.Armor(d.Location, d.Rear)-d.Amount)
		return nil

	case TargetStructure:
		s, ok := e.(StructureCarrier)
		if !ok {
			return unsupported(e, d)
		}
		s.SetInternal(d.Location, s.Internal(d.Location)-d.Amount)
		return nil

	case TargetBreach:
		c, ok := e.(LocationController)
		if !ok {
			return unsupported(e, d)
		}
		c.SetLocationBreached(d.Location, true)
		return nil

	case TargetSystem:
		c, ok := e.(CriticalCarrier)
		if !ok {
			return unsupported(e, d)
		}
		c.SetSystemHits(d.System, d.Location, c.SystemHits(d.System, d.Location)+d.Amount)
		return nil

	case TargetEquipment, TargetAmmoUsed:
		c, ok := e.(EquipmentCarrier)
		if !ok {
			return unsupported(e, d)
		}
		m, ok := c.Mounted(d.Equipment)
		if !ok {
			return fmt.Errorf("%s has no equipment number %d", e.Name(), d.Equipment)
		}
		if d.Target == TargetAmmoUsed {
			m.ShotsLeft = clamp(m.ShotsLeft-d.Amount, 0, m.Capacity)
			return nil
		}
		m.Hits = clamp(m.Hits+d.Amount, 0, m.Slots)
		return nil
	}

	switch u := e.(type) {
	case *Mek:
		switch d.Target {
		case TargetEngine:
			u.SetSystemHits(SystemEngine, LocationNone, u.SystemHits(SystemEngine, LocationNone)+d.Amount)
			return nil
		case TargetSensors:
			u.SetSystemHits(SystemSensors, MekHead, u.SystemHits(SystemSensors, MekHead)+d.Amount)
			return nil
		}

	case *Tank:
		switch d.Target {
		case TargetEngine:
			u.SetEngineHit(true)
			return nil
		case TargetSensors:
			u.SetSensorHits(u.SensorHits() + d.Amount)
			return nil
		case TargetMotive:
			u.SetMotiveDamage(u.MotiveDamage() + d.Amount)
			u.SetMotivePenalty(u.MotivePenalty() + d.Amount)
			return nil
		case TargetStabiliser:
			u.SetStabiliserHit(d.Location, true)
			return nil
		}

	case *Aero:
		switch d.Target {
		case TargetEngine:
			u.SetEngineHits(u.EngineHits() + d.Amount)
			return nil
		case TargetSensors:
			u.SetSensorHits(u.SensorHits() + d.Amount)
			return nil
		case TargetAvionics:
			u.SetAvionicsHits(u.AvionicsHits() + d.Amount)
			return nil
		case TargetFCS:
			u.SetFCSHits(u.FCSHits() + d.Amount)
			return nil
		case TargetSI:
			u.SetSI(u.SI() - d.Amount)
			return nil
		case TargetGear:
			u.SetGearHit(true)
			return nil
		case TargetHeatSink:
			remaining := d.Amount
			for i := 0; i < u.HeatSinks() && remaining > 0; i++ {
				if !u.IsHeatSinkDamaged(i) {
					u.SetHeatSinkDamaged(i, true)
					remaining--
				}
			}
			return nil
		}

	case *Protomek:
		if d.Target == TargetSensors {
			u.SetSystemHits(SystemSensors, ProtoHead, u.SystemHits(SystemSensors, ProtoHead)+d.Amount)
			return nil
		}
	}

	return unsupported(e, d)
}

func unsupported(e Entity, d Damage) error {
	return fmt.Errorf("damage target %s is not supported on %s units", d.Target, e.Type())
}
