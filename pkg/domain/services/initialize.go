package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

// partBuilder accumulates the canonical records for one entity
type partBuilder struct {
	tonnage int
	parts   []*entities.Part
	err     error
}

func (b *partBuilder) add(kind entities.Kind, def entities.Definition, loc int, secondary ...int) *entities.Part {
	if b.err != nil {
		return nil
	}
	p, err := entities.NewPart(kind, def)
	if err != nil {
		b.err = fmt.Errorf("failed to build %s: %w", kind, err)
		return nil
	}
	p.SetLocations(loc, secondary...)
	p.SetUnitTonnage(b.tonnage)
	b.parts = append(b.parts, p)
	return p
}

// BuildParts creates one undamaged record for every slot of the entity
func BuildParts(e simulation.Entity) ([]*entities.Part, error) {
	b := &partBuilder{tonnage: e.Weight()}

	switch u := e.(type) {
	case *simulation.Mek:
		buildMek(b, u)
	case *simulation.Tank:
		buildTank(b, u)
	case *simulation.Aero:
		buildAero(b, u)
	case *simulation.Protomek:
		buildProtomek(b, u)
	default:
		return nil, fmt.Errorf("no part layout for %s units", e.Type())
	}
	if a, ok := e.(simulation.ArmorCarrier); ok {
		buildArmor(b, e, a)
	}
	if c, ok := e.(simulation.EquipmentCarrier); ok {
		buildEquipment(b, e, c)
	}

	if b.err != nil {
		return nil, b.err
	}
	return b.parts, nil
}

// InitializeParts installs the canonical record set on a unit that has none
func InitializeParts(unit *entities.Unit) error {
	if len(unit.Parts()) > 0 {
		return fmt.Errorf("unit %s already has parts", unit.Name)
	}
	parts, err := BuildParts(unit.Entity())
	if err != nil {
		return fmt.Errorf("failed to initialize %s: %w", unit.Name, err)
	}
	for _, p := range parts {
		if err := unit.AddPart(p); err != nil {
			return err
		}
	}
	return nil
}

var mekActuators = []simulation.System{
	simulation.SystemShoulder, simulation.SystemUpperArm, simulation.SystemLowerArm, simulation.SystemHand,
	simulation.SystemHip, simulation.SystemUpperLeg, simulation.SystemLowerLeg, simulation.SystemFoot,
}

func buildMek(b *partBuilder, m *simulation.Mek) {
	cfg := m.Config()

	for loc := 0; loc < simulation.MekNumLocations; loc++ {
		p := b.add(entities.MekLocation, entities.Definition{
			Subtype: cfg.StructureType,
			Clan:    cfg.Clan,
			TSM:     cfg.TSM,
		}, loc)
		// the center torso holds the unit together
		if p != nil && loc == simulation.MekCenterTorso {
			p.Flags |= entities.FlagNeverScrap
		}
	}

	b.add(entities.Engine, entities.Definition{
		Subtype: simulation.MekType.String(),
		Model:   cfg.EngineType,
		Rating:  cfg.EngineRating,
		Clan:    cfg.Clan,
	}, simulation.LocationNone)
	b.add(entities.MekGyro, entities.Definition{
		Model:  cfg.GyroType,
		Rating: cfg.EngineRating,
		Weight: entities.GyroWeight(cfg.GyroType, cfg.EngineRating),
	}, simulation.MekCenterTorso)
	b.add(entities.MekSensor, entities.Definition{}, simulation.MekHead)
	b.add(entities.MekLifeSupport, entities.Definition{}, simulation.MekHead)
	b.add(entities.MekCockpit, entities.Definition{Model: cfg.CockpitType}, simulation.MekHead)

	for loc := simulation.MekRightArm; loc <= simulation.MekLeftLeg; loc++ {
		for _, sys := range mekActuators {
			if m.HasSystem(sys, loc) {
				b.add(entities.MekActuator, entities.Definition{Subtype: sys.String()}, loc)
			}
		}
	}
}

func buildTank(b *partBuilder, t *simulation.Tank) {
	cfg := t.Config()

	for loc := simulation.TankBody; loc < simulation.TankTurret; loc++ {
		b.add(entities.TankLocation, entities.Definition{}, loc)
	}
	switch {
	case t.IsVTOL():
		b.add(entities.Rotor, entities.Definition{}, simulation.TankRotor)
	case t.HasTurret():
		b.add(entities.Turret, entities.Definition{
			Weight: decimal.NewFromInt(int64(max(1, cfg.Tonnage/10))),
		}, simulation.TankTurret)
	}

	b.add(entities.Engine, entities.Definition{
		Subtype: simulation.TankType.String(),
		Model:   cfg.EngineType,
		Rating:  max(cfg.EngineRating, cfg.Tonnage),
		Clan:    cfg.Clan,
	}, simulation.LocationNone)
	b.add(entities.MotiveSystem, entities.Definition{}, simulation.LocationNone)
	b.add(entities.VeeSensor, entities.Definition{}, simulation.LocationNone)

	for loc := simulation.TankFront; loc < t.NumLocations(); loc++ {
		if loc == simulation.TankRotor && t.IsVTOL() {
			continue
		}
		b.add(entities.VeeStabiliser, entities.Definition{}, loc)
	}
}

func buildAero(b *partBuilder, a *simulation.Aero) {
	cfg := a.Config()
	large := a.IsLargeCraft()

	b.add(entities.StructuralIntegrity, entities.Definition{Capacity: a.OSI()}, simulation.LocationNone)
	b.add(entities.Engine, entities.Definition{
		Subtype: simulation.AeroType.String(),
		Model:   cfg.EngineType,
		Rating:  max(cfg.EngineRating, cfg.Tonnage),
		Clan:    cfg.Clan,
	}, simulation.LocationNone)
	b.add(entities.Avionics, entities.Definition{LargeCraft: large}, simulation.LocationNone)
	b.add(entities.FireControlSystem, entities.Definition{LargeCraft: large}, simulation.LocationNone)
	b.add(entities.AeroSensor, entities.Definition{LargeCraft: large}, simulation.LocationNone)
	b.add(entities.LandingGear, entities.Definition{}, simulation.LocationNone)

	for i := 0; i < a.HeatSinks(); i++ {
		b.add(entities.AeroHeatSink, entities.Definition{
			Model:        cfg.HeatSinkType,
			Clan:         cfg.Clan,
			EquipmentNum: i,
		}, simulation.LocationNone)
	}
}

func buildProtomek(b *partBuilder, p *simulation.Protomek) {
	b.add(entities.ProtomekSensor, entities.Definition{}, simulation.ProtoHead)
	for _, loc := range []int{simulation.ProtoRightArm, simulation.ProtoLeftArm, simulation.ProtoLegs} {
		b.add(entities.ProtomekActuator, entities.Definition{
			Subtype: entities.ProtomekLimb(loc),
			Slots:   p.SystemSlots(simulation.SystemLimb, loc),
		}, loc)
	}
}

func buildArmor(b *partBuilder, e simulation.Entity, a simulation.ArmorCarrier) {
	for loc := 0; loc < e.NumLocations(); loc++ {
		for _, rear := range []bool{false, true} {
			if rear && !a.HasRearArmor(loc) {
				continue
			}
			points := a.OArmor(loc, rear)
			if points <= 0 {
				continue
			}
			b.add(entities.Armor, entities.Definition{
				Subtype:  a.ArmorType(),
				Clan:     e.IsClan(),
				Rear:     rear,
				Capacity: points,
			}, loc)
		}
	}
}

func buildEquipment(b *partBuilder, e simulation.Entity, c simulation.EquipmentCarrier) {
	for _, m := range c.Equipment() {
		def := entities.Definition{
			Slots:        m.Slots,
			Rear:         m.Rear,
			EquipmentNum: m.Num,
			Clan:         e.IsClan(),
			Weight:       decimal.NewFromFloat(m.Weight),
		}
		var kind entities.Kind
		switch m.Type {
		case simulation.EquipHeatSink:
			kind = entities.HeatSink
			def.Model = m.HeatSinkType
			if def.Model == "" {
				def.Model = "Single"
			}
		case simulation.EquipJumpJet:
			kind = entities.JumpJet
			def.Model = m.Name
		case simulation.EquipAmmo:
			kind = entities.AmmoBin
			def.Model = m.AmmoType
			def.Capacity = m.Capacity
		default:
			kind = entities.Equipment
			def.Model = m.Name
			def.Price = decimal.NewFromInt(m.Cost)
		}
		p := b.add(kind, def, m.Location)
		if p != nil && m.OneShot {
			p.Flags |= entities.FlagOneShot
		}
	}
}
