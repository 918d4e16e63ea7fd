package services

import (
	"fmt"

	"github.com/vsinha/mekparts/pkg/domain/entities"
)

// SlotValidator checks slot occupancy and record placement rules
type SlotValidator struct{}

// NewSlotValidator creates a new slot validator
func NewSlotValidator() *SlotValidator {
	return &SlotValidator{}
}

// SlotKey identifies one slot on a unit
type SlotKey struct {
	Kind         entities.Kind
	Location     int
	Rear         bool
	EquipmentNum int
	Subtype      string
}

func (k SlotKey) String() string {
	s := fmt.Sprintf("%s@%d", k.Kind, k.Location)
	if k.Rear {
		s += "r"
	}
	switch k.Kind {
	case entities.MekActuator:
		s += "/" + k.Subtype
	case entities.HeatSink, entities.JumpJet, entities.Equipment, entities.AmmoBin, entities.AeroHeatSink:
		s += fmt.Sprintf("#%d", k.EquipmentNum)
	}
	return s
}

// SlotOf returns the slot a record occupies
func SlotOf(p *entities.Part) SlotKey {
	k := SlotKey{Kind: p.Kind, Location: p.MainLocation(), Rear: p.Rear}
	switch p.Kind {
	case entities.MekActuator:
		k.Subtype = p.Subtype
	case entities.HeatSink, entities.JumpJet, entities.Equipment, entities.AmmoBin, entities.AeroHeatSink:
		k.EquipmentNum = p.EquipmentNum
	}
	return k
}

// ValidationResult contains the results of slot validation
type ValidationResult struct {
	DuplicateSlots []SlotKey
	EmptySlots     []SlotKey
	Errors         []string
}

// IsValid reports whether validation found no errors
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ValidateUnit checks that every slot of the unit's entity holds exactly one
// record and that installed records point back at the unit
func (v *SlotValidator) ValidateUnit(unit *entities.Unit) *ValidationResult {
	result := &ValidationResult{
		DuplicateSlots: make([]SlotKey, 0),
		EmptySlots:     make([]SlotKey, 0),
		Errors:         make([]string, 0),
	}

	occupants := make(map[SlotKey]int)
	for _, p := range unit.Parts() {
		key := SlotOf(p)
		occupants[key]++
		if occupants[key] == 2 {
			result.DuplicateSlots = append(result.DuplicateSlots, key)
		}

		id := p.UnitID()
		if !id.Valid || id.UUID != unit.ID || p.Unit() != unit {
			result.Errors = append(result.Errors, fmt.Sprintf("%s is listed on %s but not attached to it", p.Describe(), unit.Name))
		}
		if p.Hits() < 0 || p.Hits() > p.MaxHits() {
			result.Errors = append(result.Errors, fmt.Sprintf("%s has %d hits, maximum is %d", p.Describe(), p.Hits(), p.MaxHits()))
		}
	}

	expected, err := BuildParts(unit.Entity())
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot build slot layout: %v", err))
	} else {
		for _, p := range expected {
			key := SlotOf(p)
			if occupants[key] == 0 {
				result.EmptySlots = append(result.EmptySlots, key)
			}
		}
	}

	for _, key := range result.DuplicateSlots {
		result.Errors = append(result.Errors, fmt.Sprintf("Slot %s is occupied by %d records", key, occupants[key]))
	}
	for _, key := range result.EmptySlots {
		result.Errors = append(result.Errors, fmt.Sprintf("Slot %s has no record", key))
	}

	return result
}

// ValidateWarehouse checks that spare records are unattached and that only
// fungible kinds stack
func (v *SlotValidator) ValidateWarehouse(parts []*entities.Part) *ValidationResult {
	result := &ValidationResult{
		DuplicateSlots: make([]SlotKey, 0),
		EmptySlots:     make([]SlotKey, 0),
		Errors:         make([]string, 0),
	}

	for _, p := range parts {
		if p.IsInstalled() {
			result.Errors = append(result.Errors, fmt.Sprintf("Spare %s (%s) references a unit", p.Name(), p.ID))
		}
		if p.IsMissing() {
			result.Errors = append(result.Errors, fmt.Sprintf("Spare %s (%s) is a missing record", p.Name(), p.ID))
		}
		if p.Quantity() < 1 {
			result.Errors = append(result.Errors, fmt.Sprintf("Spare %s (%s) has quantity %d", p.Name(), p.ID, p.Quantity()))
		}
		if p.Quantity() > 1 && !p.Kind.IsFungible() {
			result.Errors = append(result.Errors, fmt.Sprintf("Spare %s (%s) is not stackable but has quantity %d", p.Name(), p.ID, p.Quantity()))
		}
	}

	return result
}
