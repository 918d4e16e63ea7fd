package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vsinha/mekparts/pkg/application/dto"
	"github.com/vsinha/mekparts/pkg/application/services/maintenance"
	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/repositories"
	"github.com/vsinha/mekparts/pkg/domain/services"
	"github.com/vsinha/mekparts/pkg/domain/simulation"
	"github.com/vsinha/mekparts/pkg/infrastructure/config"
	"github.com/vsinha/mekparts/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/mekparts/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/mekparts/pkg/infrastructure/repositories/postgres"
	"github.com/vsinha/mekparts/pkg/infrastructure/repositories/sqlite"
	"github.com/vsinha/mekparts/pkg/interfaces/cli/output"
)

// Input files looked up in a scenario directory. Only units are required.
const (
	UnitsFile     = "units.csv"
	EquipmentFile = "equipment.csv"
	DamageFile    = "damage.csv"
	WarehouseFile = "warehouse.csv"
)

// Config holds configuration for the scenario command
type Config struct {
	ScenarioDir string
	OutputDir   string
	Format      string
	// Plan lists the open tasks without running maintenance
	Plan bool
	// ExportFile, when set, receives the final part records as CSV
	ExportFile  string
	MetricsFile string
	Verbose     bool
	Help        bool
	Options     config.CampaignOptions
	Logger      *zap.Logger
}

// ScenarioCommand loads a campaign from CSV, applies its damage and runs
// maintenance over every unit
type ScenarioCommand struct {
	config Config
	logger *zap.Logger
}

// NewScenarioCommand creates a new scenario command with the given configuration
func NewScenarioCommand(cfg Config) *ScenarioCommand {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScenarioCommand{config: cfg, logger: logger}
}

// Execute runs the scenario and writes its report
func (c *ScenarioCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	result, err := c.Run(ctx)
	if err != nil {
		return err
	}

	err = output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(c.config.MetricsFile, prometheus.DefaultGatherer); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// Run executes the scenario and returns its result without printing it
func (c *ScenarioCommand) Run(ctx context.Context) (*dto.ScenarioResult, error) {
	if c.config.ScenarioDir == "" {
		return nil, fmt.Errorf("validation error: must specify a -scenario directory")
	}
	files, err := c.resolveInputFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input files: %w", err)
	}

	loader := csv.NewLoader()
	units, err := loader.LoadUnits(files[UnitsFile])
	if err != nil {
		return nil, fmt.Errorf("error loading units: %w", err)
	}
	if path, ok := files[EquipmentFile]; ok {
		if err := loader.LoadEquipment(path, units); err != nil {
			return nil, fmt.Errorf("error loading equipment: %w", err)
		}
	}
	var spares []*entities.Part
	if path, ok := files[WarehouseFile]; ok {
		if spares, err = loader.LoadWarehouse(path); err != nil {
			return nil, fmt.Errorf("error loading warehouse: %w", err)
		}
	}

	warehouse := memory.NewWarehouse()
	svc := maintenance.NewServiceWithConfig(warehouse, services.NewRandomRoller(c.config.Options.RandomSeed), maintenance.Config{
		Campaign:          filepath.Base(c.config.ScenarioDir),
		DestroyPartTarget: c.config.Options.DestroyPartTarget,
		Logger:            c.logger,
	})

	validator := services.NewSlotValidator()
	c.warn("warehouse", validator.ValidateWarehouse(spares))
	if err := warehouse.LoadParts(spares); err != nil {
		return nil, fmt.Errorf("failed to load warehouse: %w", err)
	}

	unitRepo := memory.NewUnitRepository(len(units))
	if err := unitRepo.LoadUnits(units); err != nil {
		return nil, fmt.Errorf("failed to load units into repository: %w", err)
	}
	for _, unit := range units {
		if err := svc.InitializeUnit(unit); err != nil {
			return nil, fmt.Errorf("failed to initialize %s: %w", unit.Name, err)
		}
		c.warn(unit.Name, validator.ValidateUnit(unit))
	}

	// Damage lands on the entities before any record reads it back
	if path, ok := files[DamageFile]; ok {
		hits, err := loader.LoadDamage(path, units)
		if err != nil {
			return nil, fmt.Errorf("error loading damage: %w", err)
		}
		for _, hit := range hits {
			if err := simulation.Apply(hit.Unit.Entity(), hit.Damage); err != nil {
				return nil, fmt.Errorf("failed to apply damage to %s: %w", hit.Unit.Name, err)
			}
		}
		c.logger.Info("damage applied", zap.Int("hits", len(hits)))
	}
	svc.DamageTick()

	result := &dto.ScenarioResult{}
	for _, unit := range units {
		condition, err := c.runUnit(ctx, svc, unit)
		if err != nil {
			return nil, err
		}
		result.Units = append(result.Units, condition)
		if err := unitRepo.SaveUnit(unit); err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", unit.Name, err)
		}
	}
	result.Warehouse = svc.WarehouseReport()

	records, err := snapshot(unitRepo, warehouse)
	if err != nil {
		return nil, err
	}
	result.Records = len(records)
	if err := c.persist(ctx, records); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *ScenarioCommand) runUnit(ctx context.Context, svc *maintenance.Service, unit *entities.Unit) (dto.UnitCondition, error) {
	condition := dto.UnitCondition{UnitID: unit.ID, Unit: unit.Name}

	for _, p := range unit.Parts() {
		outcome, err := svc.UpdateConditionFromEntity(ctx, p, true)
		if err != nil {
			return condition, fmt.Errorf("failed to read %s on %s: %w", p.Name(), unit.Name, err)
		}
		switch outcome.Status {
		case maintenance.Damaged:
			condition.Damaged++
		case maintenance.Destroyed:
			condition.Destroyed++
		}
	}
	condition.Tasks = svc.Tasks(unit)

	if c.config.Plan {
		return condition, nil
	}
	report, err := svc.Run(ctx, unit)
	if err != nil {
		return condition, fmt.Errorf("maintenance on %s failed: %w", unit.Name, err)
	}
	condition.Maintenance = report
	return condition, nil
}

// snapshot flattens every installed and spare record, units first
func snapshot(units repositories.UnitRepository, warehouse repositories.Warehouse) ([]entities.PartRecord, error) {
	all, err := units.GetAllUnits()
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	var records []entities.PartRecord
	for _, unit := range all {
		for _, p := range unit.Parts() {
			records = append(records, entities.ToRecord(p))
		}
	}
	for _, p := range warehouse.Parts() {
		records = append(records, entities.ToRecord(p))
	}
	return records, nil
}

func (c *ScenarioCommand) persist(ctx context.Context, records []entities.PartRecord) error {
	if c.config.ExportFile != "" {
		if err := csv.WritePartRecords(c.config.ExportFile, records); err != nil {
			return fmt.Errorf("failed to export parts: %w", err)
		}
	}

	opts := c.config.Options
	if opts.SQLitePath != "" {
		store, err := sqlite.Open(opts.SQLitePath, c.logger)
		if err != nil {
			return err
		}
		if err := save(ctx, store, records, opts); err != nil {
			return fmt.Errorf("failed to save to sqlite: %w", err)
		}
	}
	if opts.PostgresDSN != "" {
		store, err := postgres.New(ctx, opts.PostgresDSN, c.logger)
		if err != nil {
			return err
		}
		if err := save(ctx, store, records, opts); err != nil {
			return fmt.Errorf("failed to save to postgres: %w", err)
		}
	}
	return nil
}

func save(ctx context.Context, store repositories.PartStore, records []entities.PartRecord, opts config.CampaignOptions) (err error) {
	defer func() {
		err = errors.Join(err, store.Close())
	}()
	if opts.StoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.StoreTimeout)
		defer cancel()
	}
	if err := store.Migrate(ctx); err != nil {
		return err
	}
	return store.SaveRecords(ctx, records)
}

func (c *ScenarioCommand) warn(scope string, result *services.ValidationResult) {
	for _, msg := range result.Errors {
		c.logger.Warn("slot validation", zap.String("scope", scope), zap.String("error", msg))
	}
}

// resolveInputFiles finds the scenario's CSV files, skipping optional ones
// that are absent
func (c *ScenarioCommand) resolveInputFiles() (map[string]string, error) {
	files := make(map[string]string)
	for _, name := range []string{UnitsFile, EquipmentFile, DamageFile, WarehouseFile} {
		path := filepath.Join(c.config.ScenarioDir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) && name != UnitsFile {
				continue
			}
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
		files[name] = path
	}
	return files, nil
}

// showHelp displays the help message
func (c *ScenarioCommand) showHelp() {
	fmt.Printf(`mekparts - campaign part maintenance

USAGE:
    mekparts -scenario <directory> [options]

OPTIONS:
    -scenario <dir>       Scenario directory containing CSV files
    -output <dir>         Output directory for results (optional)
    -format <fmt>         Output format: text, json, csv, html (default: text)
    -plan                 List open tasks without running maintenance
    -export <file>        Write the final part records to a CSV file
    -sqlite <file>        Save the final part records to a SQLite database
    -postgres <dsn>       Save the final part records to PostgreSQL
    -seed <n>             Dice seed for destruction checks (0 draws one)
    -destroy-target <n>   2d6 roll a damaged part must reach to survive (default: 10)
    -metrics <file>       Write Prometheus metrics in text format
    -verbose              Enable verbose output
    -help                 Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── units.csv         # Units and their simulated entities
    ├── equipment.csv     # Mounted equipment (optional)
    ├── damage.csv        # Combat results to apply (optional)
    └── warehouse.csv     # Spare parts (optional)

CSV FILE FORMATS:

units.csv:
    unit_id,name,type,tonnage,clan,engine_rating,engine_type,armor_type,turret,vtol,heat_sinks,large_craft,salvage
    ,Hunchback HBK-4G,Mek,50,false,200,Standard,Standard,,,,,

equipment.csv:
    unit_id,name,type,location,rear,slots,weight,cost,heat_sink_type,ammo_type,capacity,one_shot
    <unit id>,AC/20,weapon,Right Torso,,10,14,300000,,,,

damage.csv:
    unit_id,target,location,rear,system,equipment,amount
    <unit id>,armor,Center Torso,true,,,4

warehouse.csv:
    kind,subtype,model,tonnage,rating,slots,clan,weight,price,capacity,hits,quantity
    mek_actuator,Shoulder,,50,,,,,,,,2

ENVIRONMENT:
    MEKPARTS_DESTROY_PART_TARGET, MEKPARTS_RANDOM_SEED, MEKPARTS_LOG_LEVEL,
    MEKPARTS_LOG_FORMAT, MEKPARTS_SQLITE_PATH, MEKPARTS_POSTGRES_DSN,
    MEKPARTS_STORE_TIMEOUT

EXAMPLES:
    mekparts -scenario scenarios/hunchback_salvage -verbose
    mekparts -scenario scenarios/hunchback_salvage -plan -format json
    mekparts -scenario scenarios/hunchback_salvage -sqlite campaign.db
    mekparts generate -output scenarios/random -seed 42
`)
}
