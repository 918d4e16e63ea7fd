package services

import (
	"testing"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

func TestSlotValidator_ValidateUnit(t *testing.T) {
	validator := NewSlotValidator()

	t.Run("initialized unit is valid", func(t *testing.T) {
		unit, _ := newMekUnit(t, 50)
		result := validator.ValidateUnit(unit)
		if !result.IsValid() {
			t.Fatalf("Expected initialized unit to be valid, got %v", result.Errors)
		}
	})

	t.Run("empty slot is reported", func(t *testing.T) {
		unit, _ := newMekUnit(t, 50)
		gyro := findPart(t, unit, entities.MekGyro, simulation.MekCenterTorso)
		unit.RemovePart(gyro)

		result := validator.ValidateUnit(unit)
		if result.IsValid() {
			t.Fatal("Expected unit without a gyro record to be invalid")
		}
		if len(result.EmptySlots) != 1 || result.EmptySlots[0].Kind != entities.MekGyro {
			t.Errorf("Expected one empty gyro slot, got %v", result.EmptySlots)
		}
	})

	t.Run("doubly occupied slot is reported", func(t *testing.T) {
		unit, _ := newMekUnit(t, 50)
		gyro := findPart(t, unit, entities.MekGyro, simulation.MekCenterTorso)
		spare := gyro.Clone()
		spare.SetLocations(simulation.MekCenterTorso)
		if err := unit.AddPart(spare); err != nil {
			t.Fatalf("Expected second gyro to install: %v", err)
		}

		result := validator.ValidateUnit(unit)
		if len(result.DuplicateSlots) != 1 {
			t.Errorf("Expected one duplicate slot, got %v", result.DuplicateSlots)
		}
	})
}

func TestSlotValidator_ValidateWarehouse(t *testing.T) {
	validator := NewSlotValidator()

	armor, err := entities.NewPart(entities.Armor, entities.Definition{Subtype: "Standard"})
	if err != nil {
		t.Fatalf("Expected armor creation to succeed: %v", err)
	}
	armor.SetQuantity(40)

	missing, err := entities.NewMissingPart(entities.MekSensor, entities.Definition{})
	if err != nil {
		t.Fatalf("Expected missing sensor creation to succeed: %v", err)
	}

	unit, _ := newMekUnit(t, 50)
	installed := findPart(t, unit, entities.MekGyro, simulation.MekCenterTorso)

	tests := []struct {
		name   string
		parts  []*entities.Part
		errors int
	}{
		{"stacked armor", []*entities.Part{armor}, 0},
		{"missing record", []*entities.Part{missing}, 1},
		{"installed record", []*entities.Part{installed}, 1},
		{"mixed", []*entities.Part{armor, missing, installed}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.ValidateWarehouse(tt.parts)
			if len(result.Errors) != tt.errors {
				t.Errorf("Expected %d errors, got %d: %v", tt.errors, len(result.Errors), result.Errors)
			}
		})
	}
}
