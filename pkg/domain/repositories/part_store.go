package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/vsinha/mekparts/pkg/domain/entities"
)

// PartStore persists part records in their flattened form
type PartStore interface {
	Migrate(ctx context.Context) error
	// SaveRecords replaces the stored campaign snapshot with records
	SaveRecords(ctx context.Context, records []entities.PartRecord) error
	LoadRecords(ctx context.Context) ([]entities.PartRecord, error)
	LoadUnitRecords(ctx context.Context, unitID uuid.UUID) ([]entities.PartRecord, error)
	Close() error
}
