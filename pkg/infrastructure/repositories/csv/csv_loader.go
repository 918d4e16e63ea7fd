package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

// Loader handles loading scenario data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// Hit is one damage row resolved against its unit
type Hit struct {
	Unit   *entities.Unit
	Damage simulation.Damage
}

var (
	unitsHeader     = []string{"unit_id", "name", "type", "tonnage", "clan", "engine_rating", "engine_type", "armor_type", "turret", "vtol", "heat_sinks", "large_craft", "salvage"}
	equipmentHeader = []string{"unit_id", "name", "type", "location", "rear", "slots", "weight", "cost", "heat_sink_type", "ammo_type", "capacity", "one_shot"}
	damageHeader    = []string{"unit_id", "target", "location", "rear", "system", "equipment", "amount"}
	warehouseHeader = []string{"kind", "subtype", "model", "tonnage", "rating", "slots", "clan", "weight", "price", "capacity", "hits", "quantity"}
)

// LoadUnits loads units and their simulated entities. Parts are not built;
// equipment has to be mounted first.
func (l *Loader) LoadUnits(filename string) ([]*entities.Unit, error) {
	rows, err := readTable(filename, "units", unitsHeader, false)
	if err != nil {
		return nil, err
	}

	var units []*entities.Unit
	for i, record := range rows {
		unit, err := parseUnit(record)
		if err != nil {
			return nil, fmt.Errorf("units CSV row %d: %w", i+2, err)
		}
		units = append(units, unit)
	}
	return units, nil
}

// LoadEquipment mounts equipment rows on the matching units' entities
func (l *Loader) LoadEquipment(filename string, units []*entities.Unit) error {
	rows, err := readTable(filename, "equipment", equipmentHeader, true)
	if err != nil {
		return err
	}
	byID := indexUnits(units)

	for i, record := range rows {
		unit, err := lookupUnit(byID, record[0])
		if err != nil {
			return fmt.Errorf("equipment CSV row %d: %w", i+2, err)
		}
		carrier, ok := unit.Entity().(interface {
			AddEquipment(m simulation.Mounted) *simulation.Mounted
		})
		if !ok {
			return fmt.Errorf("equipment CSV row %d: %s cannot mount equipment", i+2, unit.Name)
		}
		mounted, err := parseMounted(unit.Entity(), record)
		if err != nil {
			return fmt.Errorf("equipment CSV row %d: %w", i+2, err)
		}
		carrier.AddEquipment(mounted)
	}
	return nil
}

// LoadDamage loads damage rows and resolves their locations on each unit
func (l *Loader) LoadDamage(filename string, units []*entities.Unit) ([]Hit, error) {
	rows, err := readTable(filename, "damage", damageHeader, true)
	if err != nil {
		return nil, err
	}
	byID := indexUnits(units)

	var hits []Hit
	for i, record := range rows {
		unit, err := lookupUnit(byID, record[0])
		if err != nil {
			return nil, fmt.Errorf("damage CSV row %d: %w", i+2, err)
		}
		damage, err := parseDamage(unit.Entity(), record)
		if err != nil {
			return nil, fmt.Errorf("damage CSV row %d: %w", i+2, err)
		}
		hits = append(hits, Hit{Unit: unit, Damage: damage})
	}
	return hits, nil
}

// LoadWarehouse loads spare part stacks
func (l *Loader) LoadWarehouse(filename string) ([]*entities.Part, error) {
	rows, err := readTable(filename, "warehouse", warehouseHeader, true)
	if err != nil {
		return nil, err
	}

	var parts []*entities.Part
	for i, record := range rows {
		p, err := parseSpare(record)
		if err != nil {
			return nil, fmt.Errorf("warehouse CSV row %d: %w", i+2, err)
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// readTable reads a CSV file, validates its header and returns the data rows
func readTable(filename, name string, expectedHeader []string, allowEmpty bool) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", name, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", name, err)
	}

	if len(records) == 0 || (len(records) < 2 && !allowEmpty) {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", name)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", name, expectedHeader, header)
	}

	rows := records[1:]
	for i, record := range rows {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", name, i+2, len(expectedHeader), len(record))
		}
	}
	return rows, nil
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseUnit(record []string) (*entities.Unit, error) {
	id := uuid.New()
	if s := strings.TrimSpace(record[0]); s != "" {
		parsed, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid unit_id: %s", s)
		}
		id = parsed
	}
	name := record[1]

	unitType, err := simulation.ParseType(strings.TrimSpace(record[2]))
	if err != nil {
		return nil, err
	}
	tonnage, err := parseInt("tonnage", record[3])
	if err != nil {
		return nil, err
	}
	if tonnage <= 0 {
		return nil, fmt.Errorf("invalid tonnage: %s", record[3])
	}
	clan, err := parseBool("clan", record[4])
	if err != nil {
		return nil, err
	}
	engineRating, err := parseInt("engine_rating", record[5])
	if err != nil {
		return nil, err
	}
	engineType := record[6]
	armorType := record[7]
	turret, err := parseBool("turret", record[8])
	if err != nil {
		return nil, err
	}
	vtol, err := parseBool("vtol", record[9])
	if err != nil {
		return nil, err
	}
	heatSinks, err := parseInt("heat_sinks", record[10])
	if err != nil {
		return nil, err
	}
	largeCraft, err := parseBool("large_craft", record[11])
	if err != nil {
		return nil, err
	}
	salvage, err := parseBool("salvage", record[12])
	if err != nil {
		return nil, err
	}

	var e simulation.Entity
	switch unitType {
	case simulation.MekType:
		e = simulation.NewMek(simulation.MekConfig{
			Name: name, Tonnage: tonnage, Clan: clan,
			EngineRating: engineRating, EngineType: engineType, ArmorType: armorType,
		})
	case simulation.TankType:
		e = simulation.NewTank(simulation.TankConfig{
			Name: name, Tonnage: tonnage, Clan: clan,
			EngineRating: engineRating, EngineType: engineType, ArmorType: armorType,
			Turret: turret, VTOL: vtol,
		})
	case simulation.AeroType:
		e = simulation.NewAero(simulation.AeroConfig{
			Name: name, Tonnage: tonnage, Clan: clan,
			EngineRating: engineRating, EngineType: engineType, ArmorType: armorType,
			HeatSinks: heatSinks, LargeCraft: largeCraft,
		})
	case simulation.ProtomekType:
		e = simulation.NewProtomek(simulation.ProtomekConfig{Name: name, Tonnage: tonnage, ArmorType: armorType})
	}

	unit, err := entities.NewUnit(id, name, e)
	if err != nil {
		return nil, err
	}
	unit.SetSalvage(salvage)
	return unit, nil
}

func parseMounted(e simulation.Entity, record []string) (simulation.Mounted, error) {
	equipType, err := simulation.ParseEquipmentType(strings.TrimSpace(record[2]))
	if err != nil {
		return simulation.Mounted{}, err
	}
	location, err := resolveLocation(e, record[3])
	if err != nil {
		return simulation.Mounted{}, err
	}
	rear, err := parseBool("rear", record[4])
	if err != nil {
		return simulation.Mounted{}, err
	}
	slots, err := parseInt("slots", record[5])
	if err != nil {
		return simulation.Mounted{}, err
	}
	weight := 0.0
	if s := strings.TrimSpace(record[6]); s != "" {
		weight, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return simulation.Mounted{}, fmt.Errorf("invalid weight: %s", s)
		}
	}
	cost := int64(0)
	if s := strings.TrimSpace(record[7]); s != "" {
		cost, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return simulation.Mounted{}, fmt.Errorf("invalid cost: %s", s)
		}
	}
	capacity, err := parseInt("capacity", record[10])
	if err != nil {
		return simulation.Mounted{}, err
	}
	oneShot, err := parseBool("one_shot", record[11])
	if err != nil {
		return simulation.Mounted{}, err
	}

	return simulation.Mounted{
		Name:         record[1],
		Type:         equipType,
		Location:     location,
		Rear:         rear,
		Slots:        slots,
		Weight:       weight,
		Cost:         cost,
		HeatSinkType: record[8],
		AmmoType:     record[9],
		Capacity:     capacity,
		OneShot:      oneShot,
	}, nil
}

func parseDamage(e simulation.Entity, record []string) (simulation.Damage, error) {
	target, err := simulation.ParseDamageTarget(strings.ToLower(strings.TrimSpace(record[1])))
	if err != nil {
		return simulation.Damage{}, err
	}
	location, err := resolveLocation(e, record[2])
	if err != nil {
		return simulation.Damage{}, err
	}
	rear, err := parseBool("rear", record[3])
	if err != nil {
		return simulation.Damage{}, err
	}
	var system simulation.System
	if s := strings.TrimSpace(record[4]); s != "" {
		system, err = simulation.ParseSystem(s)
		if err != nil {
			return simulation.Damage{}, err
		}
	}
	equipment, err := parseInt("equipment", record[5])
	if err != nil {
		return simulation.Damage{}, err
	}
	amount, err := parseInt("amount", record[6])
	if err != nil {
		return simulation.Damage{}, err
	}

	return simulation.Damage{
		Target:    target,
		Location:  location,
		Rear:      rear,
		System:    system,
		Equipment: equipment,
		Amount:    amount,
	}, nil
}

func parseSpare(record []string) (*entities.Part, error) {
	kind, err := entities.ParseKind(strings.TrimSpace(record[0]))
	if err != nil {
		return nil, err
	}
	tonnage, err := parseInt("tonnage", record[3])
	if err != nil {
		return nil, err
	}
	rating, err := parseInt("rating", record[4])
	if err != nil {
		return nil, err
	}
	slots, err := parseInt("slots", record[5])
	if err != nil {
		return nil, err
	}
	clan, err := parseBool("clan", record[6])
	if err != nil {
		return nil, err
	}
	weight, err := parseDecimal("weight", record[7])
	if err != nil {
		return nil, err
	}
	price, err := parseDecimal("price", record[8])
	if err != nil {
		return nil, err
	}
	capacity, err := parseInt("capacity", record[9])
	if err != nil {
		return nil, err
	}
	hits, err := parseInt("hits", record[10])
	if err != nil {
		return nil, err
	}
	quantity, err := parseInt("quantity", record[11])
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, fmt.Errorf("invalid quantity: %s", record[11])
	}

	p, err := entities.NewPart(kind, entities.Definition{
		Subtype:  record[1],
		Model:    record[2],
		Rating:   rating,
		Slots:    slots,
		Clan:     clan,
		Weight:   weight,
		Price:    price,
		Capacity: capacity,
	})
	if err != nil {
		return nil, err
	}
	p.SetUnitTonnage(tonnage)
	p.SetHits(hits)
	p.SetQuantity(quantity)
	return p, nil
}

// resolveLocation accepts a location name of the entity, a location index,
// or an empty string for no location
func resolveLocation(e simulation.Entity, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return simulation.LocationNone, nil
	}
	for loc := 0; loc < e.NumLocations(); loc++ {
		if strings.EqualFold(e.LocationName(loc), s) {
			return loc, nil
		}
	}
	loc, err := strconv.Atoi(s)
	if err != nil || loc < 0 || loc >= e.NumLocations() {
		return 0, fmt.Errorf("invalid location for %s: %s", e.Name(), s)
	}
	return loc, nil
}

func indexUnits(units []*entities.Unit) map[uuid.UUID]*entities.Unit {
	byID := make(map[uuid.UUID]*entities.Unit, len(units))
	for _, u := range units {
		byID[u.ID] = u
	}
	return byID
}

func lookupUnit(byID map[uuid.UUID]*entities.Unit, s string) (*entities.Unit, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid unit_id: %s", s)
	}
	unit, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown unit_id: %s", s)
	}
	return unit, nil
}

func parseInt(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", field, s)
	}
	return v, nil
}

func parseBool(field, s string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %s", field, s)
	}
	return v, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %s", field, s)
	}
	return v, nil
}
