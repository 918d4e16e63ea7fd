package entities

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

func TestRecord_RoundTrip(t *testing.T) {
	mek := simulation.NewMek(simulation.MekConfig{Tonnage: 50})
	unit, err := NewUnit(uuid.New(), "Hunchback HBK-4G", mek)
	if err != nil {
		t.Fatalf("Expected unit creation to succeed: %v", err)
	}

	installed := samplePart(t, Equipment)
	installed.SetLocations(simulation.MekRightTorso, simulation.MekCenterTorso)
	installed.SetHits(1)
	if err := unit.AddPart(installed); err != nil {
		t.Fatalf("AddPart failed: %v", err)
	}

	spare := samplePart(t, HeatSink)
	spare.SetQuantity(7)

	missing, _ := samplePart(t, MekActuator).MissingCopy()

	for _, p := range []*Part{installed, spare, missing} {
		t.Run(p.Name(), func(t *testing.T) {
			data, err := json.Marshal(ToRecord(p))
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			var record PartRecord
			if err := json.Unmarshal(data, &record); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			got, err := FromRecord(record)
			if err != nil {
				t.Fatalf("FromRecord failed: %v", err)
			}

			if got.ID != p.ID {
				t.Errorf("Expected id %s, got %s", p.ID, got.ID)
			}
			if got.Hits() != p.Hits() {
				t.Errorf("Expected hits %d, got %d", p.Hits(), got.Hits())
			}
			if got.MainLocation() != p.MainLocation() || !slices.Equal(got.SecondaryLocations(), p.SecondaryLocations()) {
				t.Errorf("Expected locations %v, got %v", p.Locations(), got.Locations())
			}
			if got.UnitID() != p.UnitID() {
				t.Errorf("Expected unit %v, got %v", p.UnitID(), got.UnitID())
			}
			if got.Quantity() != p.Quantity() {
				t.Errorf("Expected quantity %d, got %d", p.Quantity(), got.Quantity())
			}
			if got.Variant != p.Variant || got.Flags != p.Flags || got.IsTonnageLimited() != p.IsTonnageLimited() {
				t.Errorf("Expected variant %s flags %d, got %s flags %d", p.Variant, p.Flags, got.Variant, got.Flags)
			}
			if !IsSamePartType(got, p) {
				t.Error("Expected the same part type after round-trip")
			}
		})
	}
}

func TestFromRecord_FailsFast(t *testing.T) {
	testCases := []struct {
		name   string
		record PartRecord
	}{
		{"unknown kind", PartRecord{ID: uuid.New(), Kind: "battle_armor_suit", Variant: "present"}},
		{"unknown variant", PartRecord{ID: uuid.New(), Kind: "mek_sensor", Variant: "broken"}},
		{"missing id", PartRecord{Kind: "mek_sensor", Variant: "present"}},
		{"absent tank location", PartRecord{ID: uuid.New(), Kind: "tank_location", Variant: "absent"}},
		{"engine without rating", PartRecord{ID: uuid.New(), Kind: "engine", Variant: "present", Subtype: "Mek", Model: "XL"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromRecord(tc.record); err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
		})
	}
}

func TestFromRecord_ClampsRanges(t *testing.T) {
	record := PartRecord{
		ID:       uuid.New(),
		Kind:     "mek_sensor",
		Variant:  "present",
		Hits:     9,
		Location: simulation.MekHead,
		Quantity: -2,
	}

	p, err := FromRecord(record)
	if err != nil {
		t.Fatalf("FromRecord failed: %v", err)
	}
	if p.Hits() != 2 {
		t.Errorf("Expected hits clamped to 2, got %d", p.Hits())
	}
	if p.Quantity() != 1 {
		t.Errorf("Expected quantity clamped to 1, got %d", p.Quantity())
	}
}
