package repositories

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/mekparts/pkg/domain/entities"
)

// Warehouse is the campaign's shared spare-parts pool. Every mutation is
// atomic with respect to a single fix or remove.
type Warehouse interface {
	// CheckForExistingSparePart returns a stored record p could be merged into
	CheckForExistingSparePart(p *entities.Part) (*entities.Part, bool)
	// FindReplacement returns the best acceptable spare for a missing slot
	// without consuming it
	FindReplacement(missing *entities.Part, refit bool) (*entities.Part, bool)
	// TakeReplacement finds and consumes one acceptable spare, returning an
	// uninstalled record of quantity one
	TakeReplacement(missing *entities.Part, refit bool) (*entities.Part, bool)
	// AddPart stores an uninstalled record, merging it into a matching stack
	// when allowed, and returns the record that now holds it
	AddPart(p *entities.Part) (*entities.Part, error)
	// RemovePart deletes a stored record outright
	RemovePart(p *entities.Part) error
	// Take consumes up to n units from records of the same type as template
	// and returns how many were taken
	Take(template *entities.Part, n int) int
	Get(id uuid.UUID) (*entities.Part, bool)
	Parts() []*entities.Part
	Count(template *entities.Part) int
	TotalValue() decimal.Decimal
}
