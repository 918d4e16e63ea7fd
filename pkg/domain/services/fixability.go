package services

import (
	"fmt"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

// Kinds whose slot is a location rather than something mounted in one
var locationKinds = map[entities.Kind]bool{
	entities.MekLocation:  true,
	entities.TankLocation: true,
	entities.Turret:       true,
	entities.Rotor:        true,
}

// Kinds that are not mounted in any location
var unlocatedKinds = map[entities.Kind]bool{
	entities.Engine:              true,
	entities.MotiveSystem:        true,
	entities.VeeSensor:           true,
	entities.Avionics:            true,
	entities.FireControlSystem:   true,
	entities.AeroSensor:          true,
	entities.StructuralIntegrity: true,
	entities.LandingGear:         true,
	entities.AeroHeatSink:        true,
}

// CheckFixable returns a human-readable reason the next maintenance task on
// the part cannot be done right now, or "" when it can
func CheckFixable(p *entities.Part) string {
	unit := p.Unit()
	if unit == nil || unit.Entity() == nil {
		return ""
	}
	e := unit.Entity()

	if p.IsSalvaging() {
		if p.IsMissing() {
			return ""
		}
		if p.Kind == entities.MekLocation {
			return checkLocationSalvage(unit, p)
		}
		if p.IsNeverScrap() {
			return fmt.Sprintf("%s cannot be removed.", p.Name())
		}
		return ""
	}

	if p.Kind == entities.MekLocation {
		return checkLocationRepair(unit, p)
	}

	if locationKinds[p.Kind] {
		if p.Kind == entities.Turret && p.IsPresent() && p.Hits() >= p.MaxHits() {
			return fmt.Sprintf("%s is destroyed and must be replaced.", e.LocationName(p.MainLocation()))
		}
		return ""
	}

	if unlocatedKinds[p.Kind] {
		return ""
	}

	for _, loc := range p.Locations() {
		if loc == simulation.LocationNone {
			continue
		}
		if unit.IsLocationBreached(loc) {
			return fmt.Sprintf("%s is breached.", e.LocationName(loc))
		}
		if unit.IsLocationDestroyed(loc) {
			return fmt.Sprintf("%s is destroyed.", e.LocationName(loc))
		}
	}
	return ""
}

func checkLocationSalvage(unit *entities.Unit, p *entities.Part) string {
	loc := p.MainLocation()
	if loc == simulation.MekCenterTorso {
		return "Cannot salvage the center torso."
	}

	var arm int
	switch loc {
	case simulation.MekRightTorso:
		arm = simulation.MekRightArm
	case simulation.MekLeftTorso:
		arm = simulation.MekLeftArm
	default:
		arm = simulation.LocationNone
	}
	if arm != simulation.LocationNone {
		if a, ok := unit.FindPart(entities.MekLocation, arm); ok && a.IsPresent() {
			return fmt.Sprintf("You must salvage the %s first.", simulation.MekLocationName(arm))
		}
	}

	for _, other := range unit.PartsAt(loc) {
		if other == p || other.IsMissing() {
			continue
		}
		if other.Kind == entities.MekLocation || other.Kind == entities.Armor {
			continue
		}
		return "You must salvage all equipment in this location first."
	}
	return ""
}

func checkLocationRepair(unit *entities.Unit, p *entities.Part) string {
	loc := p.MainLocation()
	if p.IsMissing() {
		transfer := simulation.MekTransferLocation(loc)
		if transfer == simulation.LocationNone {
			return ""
		}
		if t, ok := unit.FindPart(entities.MekLocation, transfer); ok && t.IsMissing() {
			return fmt.Sprintf("You must replace the %s first.", simulation.MekLocationName(transfer))
		}
		return ""
	}
	if p.Hits() >= p.MaxHits() {
		return fmt.Sprintf("%s is destroyed and must be replaced.", simulation.MekLocationName(loc))
	}
	return ""
}
