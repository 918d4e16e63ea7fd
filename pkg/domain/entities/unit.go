package entities

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

// Unit is a campaign unit: a simulated entity plus the part records that
// occupy its slots
type Unit struct {
	ID   uuid.UUID
	Name string

	entity  simulation.Entity
	parts   []*Part
	salvage bool
}

// NewUnit creates a validated Unit wrapping a simulated entity
func NewUnit(id uuid.UUID, name string, entity simulation.Entity) (*Unit, error) {
	if name == "" {
		return nil, fmt.Errorf("unit name cannot be empty")
	}
	if entity == nil {
		return nil, fmt.Errorf("unit %s has no simulated entity", name)
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Unit{ID: id, Name: name, entity: entity}, nil
}

// Entity returns the simulated model of the unit
func (u *Unit) Entity() simulation.Entity {
	return u.entity
}

// Parts returns the unit's part records in installation order
func (u *Unit) Parts() []*Part {
	return slices.Clone(u.parts)
}

// Part looks up an installed record by ID
func (u *Unit) Part(id uuid.UUID) (*Part, bool) {
	for _, p := range u.parts {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// AddPart installs the record on the unit
func (u *Unit) AddPart(p *Part) error {
	if id := p.UnitID(); id.Valid && id.UUID != u.ID {
		return fmt.Errorf("part %s belongs to another unit", p.ID)
	}
	if _, exists := u.Part(p.ID); exists {
		return fmt.Errorf("part %s is already installed", p.ID)
	}
	p.SetUnit(u)
	p.quantity = 1
	p.SetSalvaging(u.salvage)
	u.parts = append(u.parts, p)
	return nil
}

// RemovePart detaches the record from the unit
func (u *Unit) RemovePart(p *Part) bool {
	i := slices.Index(u.parts, p)
	if i < 0 {
		return false
	}
	u.parts = slices.Delete(u.parts, i, i+1)
	p.SetUnit(nil)
	p.SetSalvaging(false)
	return true
}

// ReplacePart swaps the occupant of a slot in place so the slot is never
// empty and never doubly occupied
func (u *Unit) ReplacePart(old, replacement *Part) error {
	i := slices.Index(u.parts, old)
	if i < 0 {
		return fmt.Errorf("part %s is not installed on %s", old.ID, u.Name)
	}
	if id := replacement.UnitID(); id.Valid && id.UUID != u.ID {
		return fmt.Errorf("part %s belongs to another unit", replacement.ID)
	}
	replacement.SetUnit(u)
	replacement.quantity = 1
	replacement.SetSalvaging(u.salvage)
	u.parts[i] = replacement
	old.SetUnit(nil)
	old.SetSalvaging(false)
	return nil
}

// IsSalvage reports whether the unit is being stripped for parts
func (u *Unit) IsSalvage() bool {
	return u.salvage
}

// SetSalvage toggles salvage mode on the unit and every part on it
func (u *Unit) SetSalvage(salvage bool) {
	u.salvage = salvage
	for _, p := range u.parts {
		p.SetSalvaging(salvage)
	}
}

// PartsAt returns the records whose main location is loc
func (u *Unit) PartsAt(loc int) []*Part {
	var out []*Part
	for _, p := range u.parts {
		if p.location == loc {
			out = append(out, p)
		}
	}
	return out
}

// FindPart returns the first record of the kind in the location
func (u *Unit) FindPart(kind Kind, loc int) (*Part, bool) {
	for _, p := range u.parts {
		if p.Kind == kind && p.location == loc {
			return p, true
		}
	}
	return nil, false
}

// IsLocationDestroyed combines the entity's view with missing location
// records
func (u *Unit) IsLocationDestroyed(loc int) bool {
	if u.entity != nil && u.entity.IsLocationDestroyed(loc) {
		return true
	}
	for _, kind := range []Kind{MekLocation, Turret, Rotor} {
		if p, ok := u.FindPart(kind, loc); ok && p.IsMissing() {
			return true
		}
	}
	return false
}

// IsLocationBreached reports a hull breach in the location
func (u *Unit) IsLocationBreached(loc int) bool {
	return u.entity != nil && u.entity.IsLocationBreached(loc)
}
