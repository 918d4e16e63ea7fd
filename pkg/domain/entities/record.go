package entities

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartRecord is the persisted form of a part: one row per record
type PartRecord struct {
	ID                 uuid.UUID       `json:"id"`
	Kind               string          `json:"kind"`
	Variant            string          `json:"variant"`
	Hits               int             `json:"hits"`
	Location           int             `json:"location"`
	SecondaryLocations []int           `json:"secondary_locations,omitempty"`
	UnitID             uuid.NullUUID   `json:"unit_id"`
	UnitTonnage        int             `json:"unit_tonnage"`
	Quantity           int             `json:"quantity"`
	Flags              Flags           `json:"flags"`
	Subtype            string          `json:"subtype,omitempty"`
	Model              string          `json:"model,omitempty"`
	Rating             int             `json:"rating,omitempty"`
	Slots              int             `json:"slots,omitempty"`
	Clan               bool            `json:"clan,omitempty"`
	TSM                bool            `json:"tsm,omitempty"`
	Rear               bool            `json:"rear,omitempty"`
	EquipmentNum       int             `json:"equipment_num"`
	Weight             decimal.Decimal `json:"weight"`
	Price              decimal.Decimal `json:"price"`
	Capacity           int             `json:"capacity,omitempty"`
	LargeCraft         bool            `json:"large_craft,omitempty"`
	Breached           bool            `json:"breached,omitempty"`
	Penalty            int             `json:"penalty,omitempty"`
	ShotsNeeded        int             `json:"shots_needed,omitempty"`
}

// ToRecord flattens a part into its persisted form
func ToRecord(p *Part) PartRecord {
	flags := p.Flags
	if p.tonnageLimited {
		flags |= FlagTonnageLimited
	} else {
		flags &^= FlagTonnageLimited
	}
	return PartRecord{
		ID:                 p.ID,
		Kind:               p.Kind.String(),
		Variant:            p.Variant.String(),
		Hits:               p.hits,
		Location:           p.location,
		SecondaryLocations: slices.Clone(p.secondary),
		UnitID:             p.UnitID(),
		UnitTonnage:        p.unitTonnage,
		Quantity:           p.Quantity(),
		Flags:              flags,
		Subtype:            p.Subtype,
		Model:              p.Model,
		Rating:             p.Rating,
		Slots:              p.Slots,
		Clan:               p.Clan,
		TSM:                p.TSM,
		Rear:               p.Rear,
		EquipmentNum:       p.EquipmentNum,
		Weight:             p.Weight,
		Price:              p.Price,
		Capacity:           p.Capacity,
		LargeCraft:         p.LargeCraft,
		Breached:           p.Breached,
		Penalty:            p.Penalty,
		ShotsNeeded:        p.ShotsNeeded,
	}
}

// FromRecord rebuilds a part from its persisted form. Malformed definitions
// fail; out-of-range hits and quantities are clamped. The part keeps its
// persisted unit ID until it is attached to a unit.
func FromRecord(r PartRecord) (*Part, error) {
	kind, err := ParseKind(r.Kind)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}
	variant, err := ParseVariant(r.Variant)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}
	if variant == Absent && !kind.HasMissingVariant() {
		return nil, fmt.Errorf("record %s: %s: %w", r.ID, kind, ErrNoMissing)
	}
	if r.ID == uuid.Nil {
		return nil, fmt.Errorf("record of kind %s has no id", kind)
	}

	p, err := NewPart(kind, Definition{
		Subtype:      r.Subtype,
		Model:        r.Model,
		Rating:       r.Rating,
		Slots:        r.Slots,
		Clan:         r.Clan,
		TSM:          r.TSM,
		Rear:         r.Rear,
		EquipmentNum: r.EquipmentNum,
		Weight:       r.Weight,
		Price:        r.Price,
		Capacity:     r.Capacity,
		LargeCraft:   r.LargeCraft,
	})
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}

	p.ID = r.ID
	p.Variant = variant
	p.Flags = r.Flags &^ FlagTonnageLimited
	if kind.IsNeverScrap() {
		p.Flags |= FlagNeverScrap
	}
	p.tonnageLimited = r.Flags.Has(FlagTonnageLimited)
	p.SetLocations(r.Location, r.SecondaryLocations...)
	p.SetUnitTonnage(r.UnitTonnage)
	p.unitID = r.UnitID
	p.Breached = r.Breached
	p.Penalty = max(0, r.Penalty)
	p.ShotsNeeded = max(0, min(r.ShotsNeeded, r.Capacity))
	p.SetHits(r.Hits)
	if r.UnitID.Valid {
		p.quantity = 1
	} else {
		p.SetQuantity(r.Quantity)
	}
	return p, nil
}
