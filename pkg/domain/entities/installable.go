package entities

import (
	"slices"

	"github.com/google/uuid"

	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

// Installable carries the mounting metadata shared by every part kind: the
// slot location(s), the tonnage class the part was built for, and the unit it
// is installed on. All accessors are total.
type Installable struct {
	location       int
	secondary      []int
	unitTonnage    int
	tonnageLimited bool

	unit   *Unit
	unitID uuid.NullUUID
}

func newInstallable() Installable {
	return Installable{location: simulation.LocationNone}
}

// SetLocations sets the main location and any secondary locations
func (i *Installable) SetLocations(main int, secondary ...int) {
	i.location = main
	i.secondary = slices.Clone(secondary)
}

// MainLocation returns the main location, or simulation.LocationNone
func (i *Installable) MainLocation() int {
	return i.location
}

// SecondaryLocations returns a copy of the secondary locations
func (i *Installable) SecondaryLocations() []int {
	return slices.Clone(i.secondary)
}

// Locations returns the main location followed by the secondary ones
func (i *Installable) Locations() []int {
	if i.location == simulation.LocationNone {
		return slices.Clone(i.secondary)
	}
	return append([]int{i.location}, i.secondary...)
}

func (i *Installable) SetUnitTonnage(tonnage int) {
	i.unitTonnage = max(0, tonnage)
}

func (i *Installable) UnitTonnage() int {
	return i.unitTonnage
}

func (i *Installable) SetTonnageLimited(limited bool) {
	i.tonnageLimited = limited
}

// IsTonnageLimited reports whether the part only fits units of its tonnage
func (i *Installable) IsTonnageLimited() bool {
	return i.tonnageLimited
}

// Unit returns the owning unit, or nil for warehouse records
func (i *Installable) Unit() *Unit {
	return i.unit
}

// SetUnit attaches the record to a unit; nil detaches it. Attaching also
// captures the unit's tonnage.
func (i *Installable) SetUnit(u *Unit) {
	i.unit = u
	if u == nil {
		i.unitID = uuid.NullUUID{}
		return
	}
	i.unitID = uuid.NullUUID{UUID: u.ID, Valid: true}
	if e := u.Entity(); e != nil {
		i.unitTonnage = e.Weight()
	}
}

// UnitID returns the owning unit's identifier. Records loaded from storage
// report their persisted unit until they are attached.
func (i *Installable) UnitID() uuid.NullUUID {
	if i.unit != nil {
		return uuid.NullUUID{UUID: i.unit.ID, Valid: true}
	}
	return i.unitID
}

// IsInstalled reports whether the record belongs to a unit
func (i *Installable) IsInstalled() bool {
	return i.UnitID().Valid
}

// Entity returns the simulated model of the owning unit, or nil
func (i *Installable) Entity() simulation.Entity {
	if i.unit == nil {
		return nil
	}
	return i.unit.Entity()
}

// GetEntity returns the owning unit's simulated model as T. It reports false
// when the part is not installed, the unit has no model, or the model is not
// a T.
func GetEntity[T simulation.Entity](p *Part) (T, bool) {
	var zero T
	if p == nil {
		return zero, false
	}
	e := p.Entity()
	if e == nil {
		return zero, false
	}
	typed, ok := e.(T)
	return typed, ok
}
