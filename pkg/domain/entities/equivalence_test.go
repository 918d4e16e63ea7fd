package entities

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

func TestIsSamePartType_ReflexiveAndSymmetric(t *testing.T) {
	var parts []*Part
	for _, kind := range Kinds {
		parts = append(parts, samplePart(t, kind))
	}
	heavier := samplePart(t, MekActuator)
	heavier.SetUnitTonnage(75)
	parts = append(parts, heavier)

	for _, a := range parts {
		if !IsSamePartType(a, a) {
			t.Errorf("Expected %s to be the same type as itself", a.Name())
		}
		for _, b := range parts {
			if IsSamePartType(a, b) != IsSamePartType(b, a) {
				t.Errorf("Expected symmetry between %s and %s", a.Name(), b.Name())
			}
		}
	}
}

func TestIsSamePartType_IgnoresDamageAndVariant(t *testing.T) {
	a := samplePart(t, MekActuator)
	b := samplePart(t, MekActuator)
	b.SetHits(1)
	missing, _ := a.MissingCopy()

	if !IsSamePartType(a, b) {
		t.Error("Expected damage to be ignored")
	}
	if !IsSamePartType(a, missing) {
		t.Error("Expected variant to be ignored")
	}
}

func TestIsSamePartType_StructuralFields(t *testing.T) {
	testCases := []struct {
		name   string
		kind   Kind
		mutate func(p *Part)
	}{
		{"actuator tonnage", MekActuator, func(p *Part) { p.SetUnitTonnage(75) }},
		{"actuator joint", MekActuator, func(p *Part) { p.Subtype = "Lower Arm" }},
		{"location", MekLocation, func(p *Part) { p.SetLocations(simulation.MekLeftArm) }},
		{"engine rating", Engine, func(p *Part) { p.Rating = 250 }},
		{"engine tech base", Engine, func(p *Part) { p.Clan = true }},
		{"heat sink type", HeatSink, func(p *Part) { p.Model = "Single" }},
		{"equipment name", Equipment, func(p *Part) { p.Model = "Large Laser" }},
		{"armor type", Armor, func(p *Part) { p.Subtype = "Ferro-Fibrous" }},
		{"ammo type", AmmoBin, func(p *Part) { p.Model = "AC/20" }},
		{"protomek limb", ProtomekActuator, func(p *Part) { p.Subtype = LimbLegs }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := samplePart(t, tc.kind)
			b := samplePart(t, tc.kind)
			tc.mutate(b)
			if IsSamePartType(a, b) {
				t.Errorf("Expected %s to distinguish part types", tc.name)
			}
		})
	}
}

func TestIsSamePartType_IgnoresUntrackedTonnage(t *testing.T) {
	a := samplePart(t, MekLifeSupport)
	b := samplePart(t, MekLifeSupport)
	b.SetUnitTonnage(100)

	if !IsSamePartType(a, b) {
		t.Error("Expected life support to fit any tonnage")
	}
}

func TestIsSameStatus(t *testing.T) {
	a := samplePart(t, HeatSink)
	b := samplePart(t, HeatSink)

	if !IsSameStatus(a, b) {
		t.Fatal("Expected identical undamaged sinks to merge")
	}

	b.SetHits(1)
	if IsSameStatus(a, b) {
		t.Error("Expected damaged sink not to merge")
	}

	b.SetHits(0)
	b.Flags |= FlagOneShot
	if IsSameStatus(a, b) {
		t.Error("Expected differing flags not to merge")
	}

	b.Flags = a.Flags
	b.SetSalvaging(true)
	if !IsSameStatus(a, b) {
		t.Error("Expected salvage mode to be ignored")
	}

	b.Price = a.Price.Add(decimal.NewFromInt(1000))
	if IsSameStatus(a, b) {
		t.Error("Expected differing prices not to merge")
	}
}

func TestIsAcceptableReplacement(t *testing.T) {
	testCases := []struct {
		name   string
		kind   Kind
		mutate func(candidate *Part)
		refit  bool
		expect bool
	}{
		{"identical", MekActuator, func(*Part) {}, false, true},
		{"damaged outside refit", MekActuator, func(c *Part) { c.SetHits(1) }, false, true},
		{"damaged in refit", MekActuator, func(c *Part) { c.SetHits(1) }, true, false},
		{"actuator tonnage", MekActuator, func(c *Part) { c.SetUnitTonnage(55) }, false, false},
		{"actuator joint", MekActuator, func(c *Part) { c.Subtype = "Hand" }, false, false},
		{"equipment price parity", Equipment, func(c *Part) { c.Price = decimal.NewFromInt(35000) }, false, false},
		{"engine type", Engine, func(c *Part) { c.Model = "Standard" }, false, false},
		{"one-shot mode", AmmoBin, func(c *Part) { c.Flags |= FlagOneShot }, false, false},
		{"protomek limb", ProtomekActuator, func(c *Part) { c.Subtype = LimbLegs }, false, false},
		{"stabiliser any location", VeeStabiliser, func(c *Part) { c.SetLocations(simulation.TankLeft) }, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			installed := samplePart(t, tc.kind)
			if tc.kind == ProtomekActuator {
				installed.SetLocations(simulation.ProtoRightArm)
			}
			missing, err := installed.MissingCopy()
			if err != nil {
				t.Fatalf("MissingCopy failed: %v", err)
			}
			candidate := installed.Clone()
			tc.mutate(candidate)

			if got := IsAcceptableReplacement(missing, candidate, tc.refit); got != tc.expect {
				t.Errorf("Expected %v, got %v", tc.expect, got)
			}
		})
	}
}

func TestIsAcceptableReplacement_Direction(t *testing.T) {
	installed := samplePart(t, MekActuator)
	missing, _ := installed.MissingCopy()
	candidate := installed.Clone()

	if IsAcceptableReplacement(candidate, missing, false) {
		t.Error("Expected a missing record never to be a candidate")
	}
	if IsAcceptableReplacement(installed, candidate, false) {
		t.Error("Expected a present slot not to accept replacements")
	}
}
