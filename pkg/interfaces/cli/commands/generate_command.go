package commands

import (
	"context"
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"maps"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Units     int     // Number of units in the campaign
	Hits      int     // Damage rows per unit
	Spares    float64 // Warehouse multiplier (e.g., 0.5 = one spare per two damaged joints)
	Salvage   float64 // Share of units marked for salvage
	OutputDir string  // Output directory for generated files
	Seed      uint64  // Random seed for reproducible generation
	Help      bool    // Show help
	Verbose   bool    // Verbose output
}

// GenerateCommand writes a random but loadable scenario directory
type GenerateCommand struct {
	config GenerateConfig
	source *rand.ChaCha8
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	source := rand.NewChaCha8(key)
	return &GenerateCommand{
		config: config,
		source: source,
		rand:   rand.New(source),
	}
}

// genUnit is one generated unit with the entity used to name its locations
type genUnit struct {
	id      uuid.UUID
	entity  simulation.Entity
	engine  int
	turret  bool
	salvage bool
	mounts  []genMount
}

type genMount struct {
	name     string
	kind     simulation.EquipmentType
	location int
	slots    int
	weight   int
	cost     int
	ammoType string
	capacity int
}

var mekChassis = []struct {
	name    string
	tonnage int
}{
	{"Locust LCT-1V", 20}, {"Jenner JR7-D", 35}, {"Hunchback HBK-4G", 50},
	{"Shadow Hawk SHD-2H", 55}, {"Thunderbolt TDR-5S", 65}, {"Atlas AS7-D", 100},
}

var weapons = []genMount{
	{name: "Medium Laser", kind: simulation.EquipWeapon, slots: 1, weight: 1, cost: 40000},
	{name: "LRM 10", kind: simulation.EquipWeapon, slots: 2, weight: 5, cost: 100000},
	{name: "AC/10", kind: simulation.EquipWeapon, slots: 7, weight: 12, cost: 200000},
}

var armJoints = []simulation.System{simulation.SystemShoulder, simulation.SystemUpperArm, simulation.SystemLowerArm, simulation.SystemHand}
var legJoints = []simulation.System{simulation.SystemHip, simulation.SystemUpperLeg, simulation.SystemLowerLeg, simulation.SystemFoot}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}
	if cmd.config.OutputDir == "" {
		return fmt.Errorf("validation error: must specify an -output directory")
	}
	if cmd.config.Units <= 0 {
		return fmt.Errorf("validation error: units must be positive, got %d", cmd.config.Units)
	}

	if cmd.config.Verbose {
		fmt.Printf("🔧 Generating scenario with %d units, %d hits each, %.1fx spares\n",
			cmd.config.Units, cmd.config.Hits, cmd.config.Spares)
		fmt.Printf("📁 Output directory: %s\n", cmd.config.OutputDir)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	units := make([]*genUnit, cmd.config.Units)
	for i := range units {
		units[i] = cmd.generateUnit(i)
	}
	damage := make([][]string, 0, len(units)*cmd.config.Hits)
	joints := make(map[jointKey]int)
	for _, u := range units {
		for h := 0; h < cmd.config.Hits; h++ {
			row, joint := cmd.generateHit(u)
			damage = append(damage, row)
			if joint.joint != "" {
				joints[joint]++
			}
		}
	}

	files := []struct {
		name string
		rows [][]string
	}{
		{UnitsFile, cmd.unitRows(units)},
		{EquipmentFile, cmd.equipmentRows(units)},
		{DamageFile, append([][]string{{"unit_id", "target", "location", "rear", "system", "equipment", "amount"}}, damage...)},
		{WarehouseFile, cmd.warehouseRows(joints)},
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeRows(filepath.Join(cmd.config.OutputDir, f.name), f.rows); err != nil {
			return fmt.Errorf("failed to generate %s: %w", f.name, err)
		}
		if cmd.config.Verbose {
			fmt.Printf("📦 Wrote %s (%d rows)\n", f.name, len(f.rows)-1)
		}
	}

	if cmd.config.Verbose {
		fmt.Printf("✅ Scenario generated successfully in %s\n", cmd.config.OutputDir)
	}
	return nil
}

func (cmd *GenerateCommand) generateUnit(i int) *genUnit {
	// Unit ids come from the seeded stream so a seed reproduces the files
	id, err := uuid.NewRandomFromReader(cmd.source)
	if err != nil {
		id = uuid.New()
	}
	u := &genUnit{
		id:      id,
		salvage: cmd.rand.Float64() < cmd.config.Salvage,
	}

	roll := cmd.rand.Float64()
	switch {
	case roll < 0.6:
		chassis := mekChassis[cmd.rand.IntN(len(mekChassis))]
		u.engine = min(chassis.tonnage*(4+cmd.rand.IntN(3)), 400)
		u.entity = simulation.NewMek(simulation.MekConfig{
			Name: chassis.name, Tonnage: chassis.tonnage, EngineRating: u.engine,
			EngineType: "Standard", ArmorType: "Standard",
		})
		u.mounts = cmd.generateMounts()
	case roll < 0.85:
		tonnage := 20 + 5*cmd.rand.IntN(12)
		u.engine = tonnage * 4
		u.turret = cmd.rand.IntN(2) == 0
		u.entity = simulation.NewTank(simulation.TankConfig{
			Name: fmt.Sprintf("Vehicle %03d", i+1), Tonnage: tonnage, EngineRating: u.engine,
			EngineType: "Standard", ArmorType: "Standard", Turret: u.turret,
		})
	case roll < 0.95:
		tonnage := 20 + 5*cmd.rand.IntN(17)
		u.engine = min(tonnage*6, 400)
		u.entity = simulation.NewAero(simulation.AeroConfig{
			Name: fmt.Sprintf("Fighter %03d", i+1), Tonnage: tonnage, EngineRating: u.engine,
			EngineType: "Standard", ArmorType: "Standard", HeatSinks: 10,
		})
	default:
		u.entity = simulation.NewProtomek(simulation.ProtomekConfig{
			Name: fmt.Sprintf("Protomek %03d", i+1), Tonnage: 2 + cmd.rand.IntN(8), ArmorType: "Standard",
		})
	}
	return u
}

func (cmd *GenerateCommand) generateMounts() []genMount {
	locations := []int{simulation.MekRightArm, simulation.MekLeftArm, simulation.MekRightTorso, simulation.MekLeftTorso}
	var mounts []genMount
	for n := cmd.rand.IntN(4); n > 0; n-- {
		m := weapons[cmd.rand.IntN(len(weapons))]
		m.location = locations[cmd.rand.IntN(len(locations))]
		mounts = append(mounts, m)
		if m.name == "LRM 10" {
			mounts = append(mounts, genMount{
				name: "LRM 10 Ammo", kind: simulation.EquipAmmo, location: simulation.MekLeftTorso,
				slots: 1, weight: 1, cost: 30000, ammoType: "LRM 10", capacity: 12,
			})
		}
	}
	return mounts
}

// jointKey identifies an actuator spare by joint and unit tonnage
type jointKey struct {
	joint   string
	tonnage int
}

// generateHit returns one damage row and, for actuator hits, the spare the
// hit may later need
func (cmd *GenerateCommand) generateHit(u *genUnit) ([]string, jointKey) {
	e := u.entity
	row := func(target simulation.DamageTarget, loc int, system string, equipment, amount int) []string {
		location := ""
		if loc != simulation.LocationNone {
			location = e.LocationName(loc)
		}
		equip := ""
		if equipment >= 0 {
			equip = strconv.Itoa(equipment)
		}
		return []string{u.id.String(), target.String(), location, "false", system, equip, strconv.Itoa(amount)}
	}

	switch e.Type() {
	case simulation.MekType:
		switch r := cmd.rand.IntN(10); {
		case r < 4:
			return row(simulation.TargetArmor, cmd.rand.IntN(simulation.MekNumLocations), "", -1, 1+cmd.rand.IntN(8)), jointKey{}
		case r < 6:
			return row(simulation.TargetStructure, simulation.MekRightArm+cmd.rand.IntN(4), "", -1, 1), jointKey{}
		case r < 8:
			loc, joints := simulation.MekRightArm+cmd.rand.IntN(2), armJoints
			if cmd.rand.IntN(2) == 0 {
				loc, joints = simulation.MekRightLeg+cmd.rand.IntN(2), legJoints
			}
			joint := joints[cmd.rand.IntN(len(joints))].String()
			return row(simulation.TargetSystem, loc, joint, -1, 1), jointKey{joint, e.Weight()}
		case r < 9 && len(u.mounts) > 0:
			return row(simulation.TargetEquipment, simulation.LocationNone, "", cmd.rand.IntN(len(u.mounts)), 1), jointKey{}
		default:
			return row(simulation.TargetSensors, simulation.LocationNone, "", -1, 1), jointKey{}
		}

	case simulation.TankType:
		locs := []int{simulation.TankFront, simulation.TankRight, simulation.TankLeft, simulation.TankRear}
		if u.turret {
			locs = append(locs, simulation.TankTurret)
		}
		switch r := cmd.rand.IntN(10); {
		case r < 5:
			return row(simulation.TargetArmor, locs[cmd.rand.IntN(len(locs))], "", -1, 1+cmd.rand.IntN(6)), jointKey{}
		case r < 7:
			return row(simulation.TargetStructure, locs[cmd.rand.IntN(len(locs))], "", -1, 1), jointKey{}
		case r < 9:
			return row(simulation.TargetMotive, simulation.LocationNone, "", -1, 1), jointKey{}
		default:
			return row(simulation.TargetSensors, simulation.LocationNone, "", -1, 1), jointKey{}
		}

	case simulation.AeroType:
		targets := []simulation.DamageTarget{simulation.TargetSI, simulation.TargetAvionics, simulation.TargetFCS, simulation.TargetSensors, simulation.TargetGear, simulation.TargetHeatSink}
		if cmd.rand.IntN(2) == 0 {
			return row(simulation.TargetArmor, cmd.rand.IntN(simulation.AeroNumLocations), "", -1, 1+cmd.rand.IntN(6)), jointKey{}
		}
		return row(targets[cmd.rand.IntN(len(targets))], simulation.LocationNone, "", -1, 1), jointKey{}

	default:
		if cmd.rand.IntN(3) == 0 {
			return row(simulation.TargetSensors, simulation.LocationNone, "", -1, 1), jointKey{}
		}
		return row(simulation.TargetArmor, simulation.ProtoTorso, "", -1, 1+cmd.rand.IntN(3)), jointKey{}
	}
}

func (cmd *GenerateCommand) unitRows(units []*genUnit) [][]string {
	rows := [][]string{{"unit_id", "name", "type", "tonnage", "clan", "engine_rating", "engine_type", "armor_type", "turret", "vtol", "heat_sinks", "large_craft", "salvage"}}
	for _, u := range units {
		e := u.entity
		heatSinks := ""
		if e.Type() == simulation.AeroType {
			heatSinks = "10"
		}
		engine := ""
		if u.engine > 0 {
			engine = strconv.Itoa(u.engine)
		}
		rows = append(rows, []string{
			u.id.String(), e.Name(), e.Type().String(), strconv.Itoa(e.Weight()), "false",
			engine, "Standard", "Standard", strconv.FormatBool(u.turret), "false", heatSinks, "false",
			strconv.FormatBool(u.salvage),
		})
	}
	return rows
}

func (cmd *GenerateCommand) equipmentRows(units []*genUnit) [][]string {
	rows := [][]string{{"unit_id", "name", "type", "location", "rear", "slots", "weight", "cost", "heat_sink_type", "ammo_type", "capacity", "one_shot"}}
	for _, u := range units {
		for _, m := range u.mounts {
			capacity := ""
			if m.capacity > 0 {
				capacity = strconv.Itoa(m.capacity)
			}
			rows = append(rows, []string{
				u.id.String(), m.name, m.kind.String(), u.entity.LocationName(m.location), "false",
				strconv.Itoa(m.slots), strconv.Itoa(m.weight), strconv.Itoa(m.cost), "", m.ammoType, capacity, "false",
			})
		}
	}
	return rows
}

// warehouseRows stocks actuators for the joints the damage may destroy,
// scaled by the spares multiplier, plus a stack of armor
func (cmd *GenerateCommand) warehouseRows(joints map[jointKey]int) [][]string {
	rows := [][]string{{"kind", "subtype", "model", "tonnage", "rating", "slots", "clan", "weight", "price", "capacity", "hits", "quantity"}}
	keys := slices.SortedFunc(maps.Keys(joints), func(a, b jointKey) int {
		if a.joint != b.joint {
			return strings.Compare(a.joint, b.joint)
		}
		return a.tonnage - b.tonnage
	})
	for _, key := range keys {
		if qty := int(float64(joints[key])*cmd.config.Spares + 0.5); qty > 0 {
			rows = append(rows, []string{entities.MekActuator.String(), key.joint, "", strconv.Itoa(key.tonnage), "", "", "", "", "", "", "", strconv.Itoa(qty)})
		}
	}
	if armor := int(200 * cmd.config.Spares); armor > 0 {
		rows = append(rows, []string{entities.Armor.String(), "Standard", "", "", "", "", "", "", "", "", "", strconv.Itoa(armor)})
	}
	return rows
}

func writeRows(filename string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return file.Close()
}

func (cmd *GenerateCommand) printHelp() {
	fmt.Printf(`mekparts generate - random campaign scenario generator

USAGE:
    mekparts generate -output <directory> [options]

OPTIONS:
    -output <dir>     Output directory for the scenario CSV files
    -units <n>        Number of units (default: 8)
    -hits <n>         Damage rows per unit (default: 6)
    -spares <x>       Warehouse multiplier (default: 1.0)
    -salvage <x>      Share of units marked for salvage (default: 0.1)
    -seed <n>         Random seed for reproducible scenarios (0 draws one)
    -verbose          Enable verbose output
    -help             Show this help message

EXAMPLES:
    mekparts generate -output scenarios/random -seed 42
    mekparts -scenario scenarios/random -verbose
`)
}
