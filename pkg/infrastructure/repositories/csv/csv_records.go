package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vsinha/mekparts/pkg/domain/entities"
)

var partsHeader = []string{
	"id", "kind", "variant", "hits", "location", "secondary_locations", "unit_id", "unit_tonnage",
	"quantity", "flags", "subtype", "model", "rating", "slots", "clan", "tsm", "rear",
	"equipment_num", "weight", "price", "capacity", "large_craft", "breached", "penalty", "shots_needed",
}

// WritePartRecords writes part records to a CSV file, one row per record
func WritePartRecords(filename string, records []entities.PartRecord) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create parts file %s: %w", filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(partsHeader); err != nil {
		return fmt.Errorf("failed to write parts CSV header: %w", err)
	}
	for _, r := range records {
		if err := writer.Write(formatRecord(r)); err != nil {
			return fmt.Errorf("failed to write part %s: %w", r.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write parts CSV: %w", err)
	}
	return file.Close()
}

// LoadPartRecords reads part records written by WritePartRecords
func (l *Loader) LoadPartRecords(filename string) ([]entities.PartRecord, error) {
	rows, err := readTable(filename, "parts", partsHeader, true)
	if err != nil {
		return nil, err
	}

	records := make([]entities.PartRecord, 0, len(rows))
	for i, row := range rows {
		r, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("parts CSV row %d: %w", i+2, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func formatRecord(r entities.PartRecord) []string {
	secondary := make([]string, len(r.SecondaryLocations))
	for i, loc := range r.SecondaryLocations {
		secondary[i] = strconv.Itoa(loc)
	}
	unitID := ""
	if r.UnitID.Valid {
		unitID = r.UnitID.UUID.String()
	}
	return []string{
		r.ID.String(),
		r.Kind,
		r.Variant,
		strconv.Itoa(r.Hits),
		strconv.Itoa(r.Location),
		strings.Join(secondary, ";"),
		unitID,
		strconv.Itoa(r.UnitTonnage),
		strconv.Itoa(r.Quantity),
		strconv.Itoa(int(r.Flags)),
		r.Subtype,
		r.Model,
		strconv.Itoa(r.Rating),
		strconv.Itoa(r.Slots),
		strconv.FormatBool(r.Clan),
		strconv.FormatBool(r.TSM),
		strconv.FormatBool(r.Rear),
		strconv.Itoa(r.EquipmentNum),
		r.Weight.String(),
		r.Price.String(),
		strconv.Itoa(r.Capacity),
		strconv.FormatBool(r.LargeCraft),
		strconv.FormatBool(r.Breached),
		strconv.Itoa(r.Penalty),
		strconv.Itoa(r.ShotsNeeded),
	}
}

func parseRecord(row []string) (entities.PartRecord, error) {
	var r entities.PartRecord
	var err error

	if r.ID, err = uuid.Parse(row[0]); err != nil {
		return r, fmt.Errorf("invalid id: %s", row[0])
	}
	r.Kind = row[1]
	r.Variant = row[2]
	if r.Hits, err = parseInt("hits", row[3]); err != nil {
		return r, err
	}
	if r.Location, err = parseInt("location", row[4]); err != nil {
		return r, err
	}
	if s := strings.TrimSpace(row[5]); s != "" {
		for _, part := range strings.Split(s, ";") {
			loc, err := parseInt("secondary_locations", part)
			if err != nil {
				return r, err
			}
			r.SecondaryLocations = append(r.SecondaryLocations, loc)
		}
	}
	if s := strings.TrimSpace(row[6]); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return r, fmt.Errorf("invalid unit_id: %s", s)
		}
		r.UnitID = uuid.NullUUID{UUID: id, Valid: true}
	}
	if r.UnitTonnage, err = parseInt("unit_tonnage", row[7]); err != nil {
		return r, err
	}
	if r.Quantity, err = parseInt("quantity", row[8]); err != nil {
		return r, err
	}
	flags, err := parseInt("flags", row[9])
	if err != nil {
		return r, err
	}
	r.Flags = entities.Flags(flags)
	r.Subtype = row[10]
	r.Model = row[11]
	if r.Rating, err = parseInt("rating", row[12]); err != nil {
		return r, err
	}
	if r.Slots, err = parseInt("slots", row[13]); err != nil {
		return r, err
	}
	if r.Clan, err = parseBool("clan", row[14]); err != nil {
		return r, err
	}
	if r.TSM, err = parseBool("tsm", row[15]); err != nil {
		return r, err
	}
	if r.Rear, err = parseBool("rear", row[16]); err != nil {
		return r, err
	}
	if r.EquipmentNum, err = parseInt("equipment_num", row[17]); err != nil {
		return r, err
	}
	if r.Weight, err = parseDecimal("weight", row[18]); err != nil {
		return r, err
	}
	if r.Price, err = parseDecimal("price", row[19]); err != nil {
		return r, err
	}
	if r.Capacity, err = parseInt("capacity", row[20]); err != nil {
		return r, err
	}
	if r.LargeCraft, err = parseBool("large_craft", row[21]); err != nil {
		return r, err
	}
	if r.Breached, err = parseBool("breached", row[22]); err != nil {
		return r, err
	}
	if r.Penalty, err = parseInt("penalty", row[23]); err != nil {
		return r, err
	}
	if r.ShotsNeeded, err = parseInt("shots_needed", row[24]); err != nil {
		return r, err
	}
	return r, nil
}
