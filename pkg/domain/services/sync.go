package services

import (
	"fmt"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

// Reading is the condition the simulated entity reports for a part's slot
type Reading struct {
	Hits        int
	Penalty     int
	ShotsNeeded int
	Breached    bool
	// Destroyed is set when the slot is gone from the entity's point of
	// view: the mount is missing or its location was blown off
	Destroyed bool
}

// EntitySync moves condition between part records and the simulated entity.
// Pull is authoritative after combat; Push is authoritative after a
// maintenance action. After a Push, callers must not Pull again before the
// next damage tick or the maintenance result is overwritten.
type EntitySync struct{}

// NewEntitySync creates a new entity sync
func NewEntitySync() *EntitySync {
	return &EntitySync{}
}

// Pull reads the entity's damage counters for the part's slot
func (s *EntitySync) Pull(p *entities.Part) (Reading, error) {
	e := p.Entity()
	if e == nil {
		return Reading{}, entities.ErrNotInstalled
	}
	loc := p.MainLocation()
	var r Reading

	switch p.Kind {
	case entities.MekActuator, entities.MekGyro, entities.MekSensor, entities.MekLifeSupport,
		entities.MekCockpit, entities.ProtomekActuator, entities.ProtomekSensor:
		c, sys, err := criticalSlot(e, p)
		if err != nil {
			return r, err
		}
		r.Hits = c.SystemHits(sys, loc)
		r.Destroyed = c.IsSystemMissing(sys, loc) || e.IsLocationDestroyed(loc)

	case entities.MekLocation, entities.TankLocation, entities.Turret, entities.Rotor:
		st, ok := e.(simulation.StructureCarrier)
		if !ok {
			return r, unsupported(e, p)
		}
		r.Hits = st.OInternal(loc) - st.Internal(loc)
		r.Breached = e.IsLocationBreached(loc)
		r.Destroyed = e.IsLocationDestroyed(loc)

	case entities.Armor:
		a, ok := e.(simulation.ArmorCarrier)
		if !ok {
			return r, unsupported(e, p)
		}
		r.Hits = a.OArmor(loc, p.Rear) - a.Armor(loc, p.Rear)

	case entities.Engine:
		switch u := e.(type) {
		case *simulation.Mek:
			r.Hits = u.SystemHits(simulation.SystemEngine, simulation.LocationNone)
			r.Destroyed = u.IsSystemMissing(simulation.SystemEngine, simulation.LocationNone)
		case *simulation.Tank:
			r.Hits = boolHits(u.IsEngineHit())
		case *simulation.Aero:
			r.Hits = u.EngineHits()
		default:
			return r, unsupported(e, p)
		}

	case entities.HeatSink, entities.JumpJet, entities.Equipment, entities.AmmoBin:
		m, err := mount(e, p)
		if err != nil {
			return r, err
		}
		r.Hits = m.Hits
		r.Destroyed = m.Missing || e.IsLocationDestroyed(m.Location)
		if p.Kind == entities.AmmoBin {
			r.ShotsNeeded = max(0, m.Capacity-m.ShotsLeft)
		}

	case entities.MotiveSystem, entities.VeeSensor, entities.VeeStabiliser:
		t, ok := e.(*simulation.Tank)
		if !ok {
			return r, unsupported(e, p)
		}
		switch p.Kind {
		case entities.MotiveSystem:
			r.Hits = t.MotiveDamage()
			r.Penalty = t.MotivePenalty()
		case entities.VeeSensor:
			r.Hits = t.SensorHits()
		default:
			r.Hits = boolHits(t.IsStabiliserHit(loc))
			r.Destroyed = t.IsLocationDestroyed(loc)
		}

	case entities.Avionics, entities.FireControlSystem, entities.AeroSensor,
		entities.StructuralIntegrity, entities.LandingGear, entities.AeroHeatSink:
		a, ok := e.(*simulation.Aero)
		if !ok {
			return r, unsupported(e, p)
		}
		switch p.Kind {
		case entities.Avionics:
			r.Hits = a.AvionicsHits()
		case entities.FireControlSystem:
			r.Hits = a.FCSHits()
		case entities.AeroSensor:
			r.Hits = a.SensorHits()
		case entities.StructuralIntegrity:
			r.Hits = a.OSI() - a.SI()
		case entities.LandingGear:
			r.Hits = boolHits(a.IsGearHit())
		default:
			r.Hits = boolHits(a.IsHeatSinkDamaged(p.EquipmentNum))
		}

	default:
		return r, unsupported(e, p)
	}

	r.Hits = max(0, r.Hits)
	return r, nil
}

// Push writes the record's condition to the entity. A missing record pushes
// the maximum-damage state of its slot. Push only sets absolute values, so
// repeating it without a state change leaves the entity unchanged.
func (s *EntitySync) Push(p *entities.Part) error {
	e := p.Entity()
	if e == nil {
		return entities.ErrNotInstalled
	}
	loc := p.MainLocation()
	missing := p.IsMissing()
	hits := p.Hits()

	switch p.Kind {
	case entities.MekActuator, entities.MekGyro, entities.MekSensor, entities.MekLifeSupport,
		entities.MekCockpit, entities.ProtomekActuator, entities.ProtomekSensor:
		c, sys, err := criticalSlot(e, p)
		if err != nil {
			return err
		}
		if missing {
			hits = c.SystemSlots(sys, loc)
		}
		c.SetSystemHits(sys, loc, hits)
		c.SetSystemMissing(sys, loc, missing)

	case entities.MekLocation, entities.TankLocation, entities.Turret, entities.Rotor:
		st, ok := e.(simulation.StructureCarrier)
		if !ok {
			return unsupported(e, p)
		}
		ctl, _ := e.(simulation.LocationController)
		if missing {
			st.SetInternal(loc, 0)
			if ctl != nil {
				ctl.SetLocationBreached(loc, false)
				ctl.SetLocationDestroyed(loc, true)
			}
			return nil
		}
		st.SetInternal(loc, st.OInternal(loc)-hits)
		if ctl != nil {
			ctl.SetLocationBreached(loc, p.Breached)
			ctl.SetLocationDestroyed(loc, false)
		}

	case entities.Armor:
		a, ok := e.(simulation.ArmorCarrier)
		if !ok {
			return unsupported(e, p)
		}
		a.SetArmor(loc, p.Rear, a.OArmor(loc, p.Rear)-hits)

	case entities.Engine:
		switch u := e.(type) {
		case *simulation.Mek:
			if missing {
				hits = u.SystemSlots(simulation.SystemEngine, simulation.LocationNone)
			}
			u.SetSystemHits(simulation.SystemEngine, simulation.LocationNone, hits)
			u.SetSystemMissing(simulation.SystemEngine, simulation.LocationNone, missing)
		case *simulation.Tank:
			u.SetEngineHit(missing || hits > 0)
		case *simulation.Aero:
			if missing {
				hits = simulation.MaxAeroEngineHits
			}
			u.SetEngineHits(hits)
		default:
			return unsupported(e, p)
		}

	case entities.HeatSink, entities.JumpJet, entities.Equipment, entities.AmmoBin:
		m, err := mount(e, p)
		if err != nil {
			return err
		}
		m.Missing = missing
		if missing {
			m.Hits = m.Slots
			if p.Kind == entities.AmmoBin {
				m.ShotsLeft = 0
			}
			return nil
		}
		m.Hits = min(hits, m.Slots)
		if p.Kind == entities.AmmoBin {
			m.ShotsLeft = max(0, m.Capacity-p.ShotsNeeded)
		}

	case entities.MotiveSystem, entities.VeeSensor, entities.VeeStabiliser:
		t, ok := e.(*simulation.Tank)
		if !ok {
			return unsupported(e, p)
		}
		switch p.Kind {
		case entities.MotiveSystem:
			t.SetMotiveDamage(hits)
			t.SetMotivePenalty(p.Penalty)
		case entities.VeeSensor:
			if missing {
				hits = simulation.MaxVeeSensorHits
			}
			t.SetSensorHits(hits)
		default:
			t.SetStabiliserHit(loc, missing || hits > 0)
		}

	case entities.Avionics, entities.FireControlSystem, entities.AeroSensor,
		entities.StructuralIntegrity, entities.LandingGear, entities.AeroHeatSink:
		a, ok := e.(*simulation.Aero)
		if !ok {
			return unsupported(e, p)
		}
		if missing {
			hits = p.MaxHits()
		}
		switch p.Kind {
		case entities.Avionics:
			a.SetAvionicsHits(hits)
		case entities.FireControlSystem:
			a.SetFCSHits(hits)
		case entities.AeroSensor:
			a.SetSensorHits(hits)
		case entities.StructuralIntegrity:
			a.SetSI(a.OSI() - hits)
		case entities.LandingGear:
			a.SetGearHit(hits > 0)
		default:
			a.SetHeatSinkDamaged(p.EquipmentNum, hits > 0)
		}

	default:
		return unsupported(e, p)
	}
	return nil
}

// ApplyReading copies a reading into the record, clamping hits
func ApplyReading(p *entities.Part, r Reading) {
	p.SetHits(r.Hits)
	switch p.Kind {
	case entities.MotiveSystem:
		p.Penalty = max(0, r.Penalty)
	case entities.AmmoBin:
		p.ShotsNeeded = max(0, min(r.ShotsNeeded, p.Capacity))
	case entities.MekLocation:
		p.Breached = r.Breached
	}
}

// criticalSystem maps a critical-slot kind to the entity system it occupies
func criticalSystem(p *entities.Part) (simulation.System, error) {
	switch p.Kind {
	case entities.MekActuator:
		return simulation.ParseSystem(p.Subtype)
	case entities.MekGyro:
		return simulation.SystemGyro, nil
	case entities.MekSensor, entities.ProtomekSensor:
		return simulation.SystemSensors, nil
	case entities.MekLifeSupport:
		return simulation.SystemLifeSupport, nil
	case entities.MekCockpit:
		return simulation.SystemCockpit, nil
	case entities.ProtomekActuator:
		return simulation.SystemLimb, nil
	default:
		return 0, fmt.Errorf("%s has no critical system", p.Kind)
	}
}

func criticalSlot(e simulation.Entity, p *entities.Part) (simulation.CriticalCarrier, simulation.System, error) {
	c, ok := e.(simulation.CriticalCarrier)
	if !ok {
		return nil, 0, unsupported(e, p)
	}
	sys, err := criticalSystem(p)
	if err != nil {
		return nil, 0, err
	}
	return c, sys, nil
}

func mount(e simulation.Entity, p *entities.Part) (*simulation.Mounted, error) {
	c, ok := e.(simulation.EquipmentCarrier)
	if !ok {
		return nil, unsupported(e, p)
	}
	m, ok := c.Mounted(p.EquipmentNum)
	if !ok {
		return nil, fmt.Errorf("%s: %s has no equipment number %d", p.Name(), e.Name(), p.EquipmentNum)
	}
	return m, nil
}

func boolHits(hit bool) int {
	if hit {
		return 1
	}
	return 0
}

func unsupported(e simulation.Entity, p *entities.Part) error {
	return fmt.Errorf("%s parts cannot be installed on %s units", p.Kind, e.Type())
}
