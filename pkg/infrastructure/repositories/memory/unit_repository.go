package memory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/repositories"
)

// UnitRepository provides in-memory unit storage
type UnitRepository struct {
	units    []*entities.Unit
	unitsMap map[uuid.UUID]int
}

// NewUnitRepository creates a new in-memory unit repository
func NewUnitRepository(expectedUnits int) *UnitRepository {
	return &UnitRepository{
		units:    make([]*entities.Unit, 0, expectedUnits),
		unitsMap: make(map[uuid.UUID]int, expectedUnits),
	}
}

// Verify interface compliance
var _ repositories.UnitRepository = (*UnitRepository)(nil)

// LoadUnits loads units into the repository
func (r *UnitRepository) LoadUnits(units []*entities.Unit) error {
	for _, unit := range units {
		if err := r.SaveUnit(unit); err != nil {
			return err
		}
	}
	return nil
}

// GetUnit returns a unit by ID
func (r *UnitRepository) GetUnit(id uuid.UUID) (*entities.Unit, error) {
	index, exists := r.unitsMap[id]
	if !exists {
		return nil, fmt.Errorf("unit not found: %s", id)
	}
	return r.units[index], nil
}

// GetAllUnits returns all units in load order
func (r *UnitRepository) GetAllUnits() ([]*entities.Unit, error) {
	units := make([]*entities.Unit, len(r.units))
	copy(units, r.units)
	return units, nil
}

// SaveUnit stores a unit, replacing any unit with the same ID
func (r *UnitRepository) SaveUnit(unit *entities.Unit) error {
	if unit == nil {
		return fmt.Errorf("unit cannot be nil")
	}
	if index, exists := r.unitsMap[unit.ID]; exists {
		r.units[index] = unit
		return nil
	}
	r.unitsMap[unit.ID] = len(r.units)
	r.units = append(r.units, unit)
	return nil
}
