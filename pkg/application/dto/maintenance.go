package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RepairTask is the scheduler-facing view of one part that needs work
type RepairTask struct {
	PartID     uuid.UUID `json:"part_id"`
	UnitID     uuid.UUID `json:"unit_id"`
	Slot       string    `json:"slot"`
	Name       string    `json:"name"`
	Kind       string    `json:"kind"`
	Location   string    `json:"location,omitempty"`
	Variant    string    `json:"variant"`
	Hits       int       `json:"hits"`
	MaxHits    int       `json:"max_hits"`
	BaseTime   int       `json:"base_time"`
	Difficulty int       `json:"difficulty"`
	Salvage    bool      `json:"salvage,omitempty"`
	// Blocked is the reason the task cannot be done now, empty when it can
	Blocked string `json:"blocked,omitempty"`
}

// MaintenanceEntry is the final result of maintenance on one slot
type MaintenanceEntry struct {
	Slot   string    `json:"slot"`
	PartID uuid.UUID `json:"part_id"`
	Name   string    `json:"name"`
	Status string    `json:"status"`
	Reason string    `json:"reason,omitempty"`
}

// MaintenanceReport summarizes a maintenance pass over one unit
type MaintenanceReport struct {
	UnitID   uuid.UUID          `json:"unit_id"`
	Unit     string             `json:"unit"`
	Salvage  bool               `json:"salvage,omitempty"`
	Passes   int                `json:"passes"`
	Entries  []MaintenanceEntry `json:"entries"`
	Repaired int                `json:"repaired"`
	Replaced int                `json:"replaced"`
	Removed  int                `json:"removed"`
	Blocked  int                `json:"blocked"`
	// Remaining lists the tasks still open after the pass
	Remaining []RepairTask `json:"remaining"`
}

// WarehouseLine is one spare record in a warehouse listing
type WarehouseLine struct {
	PartID   uuid.UUID       `json:"part_id"`
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Tonnage  int             `json:"tonnage,omitempty"`
	Hits     int             `json:"hits"`
	Quantity int             `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// WarehouseReport lists the spare pool
type WarehouseReport struct {
	Lines      []WarehouseLine `json:"lines"`
	TotalValue decimal.Decimal `json:"total_value"`
}
