package entities

import (
	"testing"

	"github.com/google/uuid"

	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

func newTestUnit(t *testing.T, tonnage int) *Unit {
	t.Helper()
	unit, err := NewUnit(uuid.New(), "Test Mek", simulation.NewMek(simulation.MekConfig{Tonnage: tonnage}))
	if err != nil {
		t.Fatalf("Expected unit creation to succeed: %v", err)
	}
	return unit
}

func TestNewUnit_Validation(t *testing.T) {
	if _, err := NewUnit(uuid.New(), "", simulation.NewMek(simulation.MekConfig{Tonnage: 20})); err == nil {
		t.Error("Expected error for empty unit name")
	}
	if _, err := NewUnit(uuid.New(), "Ghost", nil); err == nil {
		t.Error("Expected error for unit without entity")
	}
}

func TestUnit_ReplacePartKeepsSlotOccupied(t *testing.T) {
	unit := newTestUnit(t, 50)
	part := samplePart(t, MekActuator)
	if err := unit.AddPart(part); err != nil {
		t.Fatalf("AddPart failed: %v", err)
	}

	missing, _ := part.MissingCopy()
	if err := unit.ReplacePart(part, missing); err != nil {
		t.Fatalf("ReplacePart failed: %v", err)
	}

	parts := unit.Parts()
	if len(parts) != 1 || parts[0] != missing {
		t.Fatalf("Expected the missing record alone in the slot, got %d parts", len(parts))
	}
	if part.Unit() != nil || part.IsInstalled() {
		t.Error("Expected the replaced record to be detached")
	}
	if missing.Unit() != unit {
		t.Error("Expected the missing record to be attached")
	}

	if err := unit.ReplacePart(part, missing); err == nil {
		t.Error("Expected replacing a detached record to fail")
	}
}

func TestUnit_AddPartGuards(t *testing.T) {
	a := newTestUnit(t, 50)
	b := newTestUnit(t, 50)
	part := samplePart(t, MekSensor)

	if err := a.AddPart(part); err != nil {
		t.Fatalf("AddPart failed: %v", err)
	}
	if err := a.AddPart(part); err == nil {
		t.Error("Expected duplicate install to fail")
	}
	if err := b.AddPart(part); err == nil {
		t.Error("Expected install on a second unit to fail")
	}
	if !a.RemovePart(part) {
		t.Fatal("Expected RemovePart to succeed")
	}
	if err := b.AddPart(part); err != nil {
		t.Errorf("Expected install after removal to succeed: %v", err)
	}
}

func TestUnit_SalvageModePropagates(t *testing.T) {
	unit := newTestUnit(t, 50)
	part := samplePart(t, JumpJet)
	_ = unit.AddPart(part)

	unit.SetSalvage(true)
	if !part.IsSalvaging() {
		t.Error("Expected part to follow unit salvage mode")
	}

	late := samplePart(t, JumpJet)
	_ = unit.AddPart(late)
	if !late.IsSalvaging() {
		t.Error("Expected newly installed part to follow unit salvage mode")
	}

	unit.RemovePart(late)
	if late.IsSalvaging() {
		t.Error("Expected detached part to leave salvage mode")
	}
}

func TestUnit_IsLocationDestroyedByMissingRecord(t *testing.T) {
	unit := newTestUnit(t, 50)
	arm := samplePart(t, MekLocation)
	arm.SetLocations(simulation.MekLeftArm)
	_ = unit.AddPart(arm)

	if unit.IsLocationDestroyed(simulation.MekLeftArm) {
		t.Fatal("Expected intact arm")
	}

	missing, _ := arm.MissingCopy()
	_ = unit.ReplacePart(arm, missing)
	if !unit.IsLocationDestroyed(simulation.MekLeftArm) {
		t.Error("Expected missing arm record to mark the location destroyed")
	}
}
