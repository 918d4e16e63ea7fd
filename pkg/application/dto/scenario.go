package dto

import "github.com/google/uuid"

// UnitCondition is one unit's state after damage was read back from its
// entity, and after maintenance when that ran
type UnitCondition struct {
	UnitID uuid.UUID `json:"unit_id"`
	Unit   string    `json:"unit"`
	// Damaged and Destroyed count records changed by reading the entity
	Damaged   int `json:"damaged"`
	Destroyed int `json:"destroyed"`
	// Tasks is the open work before maintenance
	Tasks       []RepairTask       `json:"tasks"`
	Maintenance *MaintenanceReport `json:"maintenance,omitempty"`
}

// ScenarioResult is everything a scenario run reports
type ScenarioResult struct {
	Units     []UnitCondition  `json:"units"`
	Warehouse *WarehouseReport `json:"warehouse"`
	// Records is the number of part records in the final snapshot
	Records int `json:"records"`
}
