package events

import (
	"github.com/google/uuid"
)

const (
	PartInstalledEvent = "part.installed"
	PartDamagedEvent   = "part.damaged"
	PartRepairedEvent  = "part.repaired"
	PartSalvagedEvent  = "part.salvaged"
	PartScrappedEvent  = "part.scrapped"
	PartDestroyedEvent = "part.destroyed"
	PartReplacedEvent  = "part.replaced"

	SpareDepositedEvent = "spare.deposited"
	SpareConsumedEvent  = "spare.consumed"

	RepairBlockedEvent = "repair.blocked"
)

// AllPartEvents lists every event type the maintenance service emits
var AllPartEvents = []string{
	PartInstalledEvent, PartDamagedEvent, PartRepairedEvent, PartSalvagedEvent,
	PartScrappedEvent, PartDestroyedEvent, PartReplacedEvent,
	SpareDepositedEvent, SpareConsumedEvent, RepairBlockedEvent,
}

// WarehouseStream is the stream ID for spare pool events
const WarehouseStream = "warehouse"

type PartInstalled struct {
	UnitID uuid.UUID `json:"unit_id"`
	PartID uuid.UUID `json:"part_id"`
	Name   string    `json:"name"`
}

type PartDamaged struct {
	UnitID   uuid.UUID `json:"unit_id"`
	PartID   uuid.UUID `json:"part_id"`
	Name     string    `json:"name"`
	OldHits  int       `json:"old_hits"`
	NewHits  int       `json:"new_hits"`
	Location string    `json:"location,omitempty"`
}

type PartRepaired struct {
	UnitID  uuid.UUID `json:"unit_id"`
	PartID  uuid.UUID `json:"part_id"`
	Name    string    `json:"name"`
	OldHits int       `json:"old_hits"`
	NewHits int       `json:"new_hits"`
}

// PartRemoved is the payload of salvaged and scrapped events
type PartRemoved struct {
	UnitID    uuid.UUID `json:"unit_id"`
	PartID    uuid.UUID `json:"part_id"`
	MissingID uuid.UUID `json:"missing_id"`
	Name      string    `json:"name"`
}

type PartDestroyed struct {
	UnitID uuid.UUID `json:"unit_id"`
	PartID uuid.UUID `json:"part_id"`
	Name   string    `json:"name"`
	Roll   int       `json:"roll"`
	Target int       `json:"target"`
}

type PartReplaced struct {
	UnitID    uuid.UUID `json:"unit_id"`
	MissingID uuid.UUID `json:"missing_id"`
	PartID    uuid.UUID `json:"part_id"`
	SpareID   uuid.UUID `json:"spare_id"`
	Name      string    `json:"name"`
}

// SpareMoved is the payload of deposited and consumed events
type SpareMoved struct {
	PartID   uuid.UUID `json:"part_id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
}

type RepairBlocked struct {
	UnitID uuid.UUID `json:"unit_id"`
	PartID uuid.UUID `json:"part_id"`
	Name   string    `json:"name"`
	Reason string    `json:"reason"`
}
