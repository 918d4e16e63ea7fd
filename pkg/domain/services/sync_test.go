package services

import (
	"errors"
	"testing"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

func TestEntitySync_PullReadsSlotDamage(t *testing.T) {
	s := NewEntitySync()
	unit, mek := newMekUnit(t, 50)

	tests := []struct {
		name     string
		kind     entities.Kind
		loc      int
		damage   simulation.Damage
		expected int
	}{
		{
			name:     "actuator",
			kind:     entities.MekActuator,
			loc:      simulation.MekRightArm,
			damage:   simulation.Damage{Target: simulation.TargetSystem, Location: simulation.MekRightArm, System: simulation.SystemShoulder},
			expected: 1,
		},
		{
			name:     "structure",
			kind:     entities.MekLocation,
			loc:      simulation.MekLeftLeg,
			damage:   simulation.Damage{Target: simulation.TargetStructure, Location: simulation.MekLeftLeg, Amount: 5},
			expected: 5,
		},
		{
			name:     "sensors",
			kind:     entities.MekSensor,
			loc:      simulation.MekHead,
			damage:   simulation.Damage{Target: simulation.TargetSensors},
			expected: 1,
		},
		{
			name:     "engine",
			kind:     entities.Engine,
			loc:      simulation.LocationNone,
			damage:   simulation.Damage{Target: simulation.TargetEngine, Amount: 2},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := simulation.Apply(mek, tt.damage); err != nil {
				t.Fatalf("Expected damage to apply: %v", err)
			}
			p := findPart(t, unit, tt.kind, tt.loc)
			if tt.kind == entities.MekActuator {
				p = findActuator(t, unit, tt.loc, simulation.SystemShoulder)
			}
			r, err := s.Pull(p)
			if err != nil {
				t.Fatalf("Expected Pull to succeed: %v", err)
			}
			if r.Hits != tt.expected {
				t.Errorf("Expected %d hits, got %d", tt.expected, r.Hits)
			}
		})
	}
}

func findActuator(t *testing.T, unit *entities.Unit, loc int, sys simulation.System) *entities.Part {
	t.Helper()
	for _, p := range unit.PartsAt(loc) {
		if p.Kind == entities.MekActuator && p.Subtype == sys.String() {
			return p
		}
	}
	t.Fatalf("Expected a %s actuator at location %d", sys, loc)
	return nil
}

func TestEntitySync_PushIsIdempotent(t *testing.T) {
	s := NewEntitySync()
	unit, mek := newMekUnit(t, 50)

	arm := findPart(t, unit, entities.MekLocation, simulation.MekRightArm)
	arm.SetHits(3)
	arm.Breached = true
	hip := findActuator(t, unit, simulation.MekLeftLeg, simulation.SystemHip)
	hip.SetHits(1)

	for i := 0; i < 2; i++ {
		if err := s.Push(arm); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
		if err := s.Push(hip); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
		if got := mek.Internal(simulation.MekRightArm); got != 5 {
			t.Errorf("Push %d: expected 5 structure left, got %d", i+1, got)
		}
		if !mek.IsLocationBreached(simulation.MekRightArm) {
			t.Errorf("Push %d: expected breached arm", i+1)
		}
		if got := mek.SystemHits(simulation.SystemHip, simulation.MekLeftLeg); got != 1 {
			t.Errorf("Push %d: expected 1 hip hit, got %d", i+1, got)
		}
	}
}

func TestEntitySync_PushMissingRecordDestroysSlot(t *testing.T) {
	s := NewEntitySync()
	unit, mek := newMekUnit(t, 50)

	hand := findActuator(t, unit, simulation.MekLeftArm, simulation.SystemHand)
	missing, err := hand.MissingCopy()
	if err != nil {
		t.Fatalf("MissingCopy failed: %v", err)
	}
	_ = unit.ReplacePart(hand, missing)
	if err := s.Push(missing); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	if !mek.IsSystemMissing(simulation.SystemHand, simulation.MekLeftArm) {
		t.Error("Expected the hand to be missing on the entity")
	}
	r, _ := s.Pull(missing)
	if !r.Destroyed || r.Hits != 1 {
		t.Errorf("Expected a destroyed reading with 1 hit, got %+v", r)
	}
}

func TestEntitySync_TankAndAero(t *testing.T) {
	s := NewEntitySync()

	tank := simulation.NewTank(simulation.TankConfig{Name: "Vedette", Tonnage: 50, EngineRating: 250, Turret: true})
	tankUnit := newUnit(t, "Vedette", tank)
	_ = simulation.Apply(tank, simulation.Damage{Target: simulation.TargetMotive, Amount: 2})

	motive := findPart(t, tankUnit, entities.MotiveSystem, simulation.LocationNone)
	r, err := s.Pull(motive)
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	if r.Hits != 2 || r.Penalty != 2 {
		t.Errorf("Expected motive damage 2 and penalty 2, got %+v", r)
	}
	ApplyReading(motive, r)
	if !motive.NeedsFixing() {
		t.Error("Expected damaged motive system to need fixing")
	}

	aero := simulation.NewAero(simulation.AeroConfig{Name: "Sparrowhawk", Tonnage: 30, EngineRating: 210})
	aeroUnit := newUnit(t, "Sparrowhawk", aero)
	_ = simulation.Apply(aero, simulation.Damage{Target: simulation.TargetSI, Amount: 2})

	si := findPart(t, aeroUnit, entities.StructuralIntegrity, simulation.LocationNone)
	r, _ = s.Pull(si)
	if r.Hits != 2 {
		t.Errorf("Expected 2 points of structural integrity lost, got %d", r.Hits)
	}

	si.SetHits(0)
	if err := s.Push(si); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if aero.SI() != aero.OSI() {
		t.Errorf("Expected structural integrity restored, got %d of %d", aero.SI(), aero.OSI())
	}
}

func TestEntitySync_NotInstalled(t *testing.T) {
	s := NewEntitySync()
	p, err := entities.NewPart(entities.MekSensor, entities.Definition{})
	if err != nil {
		t.Fatalf("NewPart failed: %v", err)
	}

	if _, err := s.Pull(p); !errors.Is(err, entities.ErrNotInstalled) {
		t.Errorf("Expected ErrNotInstalled from Pull, got %v", err)
	}
	if err := s.Push(p); !errors.Is(err, entities.ErrNotInstalled) {
		t.Errorf("Expected ErrNotInstalled from Push, got %v", err)
	}
}
