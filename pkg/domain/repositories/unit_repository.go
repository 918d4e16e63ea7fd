package repositories

import (
	"github.com/google/uuid"

	"github.com/vsinha/mekparts/pkg/domain/entities"
)

// UnitRepository provides access to campaign units
type UnitRepository interface {
	GetUnit(id uuid.UUID) (*entities.Unit, error)
	GetAllUnits() ([]*entities.Unit, error)
	SaveUnit(unit *entities.Unit) error
	LoadUnits(units []*entities.Unit) error
}
