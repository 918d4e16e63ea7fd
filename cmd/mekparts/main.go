package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/vsinha/mekparts/pkg/infrastructure/config"
	"github.com/vsinha/mekparts/pkg/infrastructure/logging"
	"github.com/vsinha/mekparts/pkg/interfaces/cli/commands"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "generate" {
		runGenerate(os.Args[2:])
		return
	}

	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		outputDir     = flag.String("output", "", "Output directory for results (optional)")
		format        = flag.String("format", "text", "Output format: text, json, csv, html")
		plan          = flag.Bool("plan", false, "List open tasks without running maintenance")
		exportFile    = flag.String("export", "", "Write the final part records to a CSV file")
		sqlitePath    = flag.String("sqlite", "", "Save the final part records to a SQLite database")
		postgresDSN   = flag.String("postgres", "", "Save the final part records to PostgreSQL")
		seed          = flag.Uint64("seed", 0, "Dice seed for destruction checks (0 draws one)")
		destroyTarget = flag.Int("destroy-target", 0, "2d6 roll a damaged part must reach to survive")
		metricsFile   = flag.String("metrics", "", "Write Prometheus metrics in text format")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags win over the environment
	if *sqlitePath != "" {
		cfg.Set(config.EnvSQLitePath, *sqlitePath)
	}
	if *postgresDSN != "" {
		cfg.Set(config.EnvPostgresDSN, *postgresDSN)
	}
	if *seed != 0 {
		cfg.Set(config.EnvRandomSeed, strconv.FormatUint(*seed, 10))
	}
	if *destroyTarget != 0 {
		cfg.Set(config.EnvDestroyPartTarget, strconv.Itoa(*destroyTarget))
	}
	if *verbose {
		cfg.Set(config.EnvLogLevel, "debug")
	}
	opts := cfg.CampaignOptions()

	logger, err := logging.NewLogger(logging.Config{
		Level:       opts.LogLevel,
		Format:      opts.LogFormat,
		OutputPath:  "stderr",
		Development: opts.LogDevelopment,
		Fields:      map[string]string{"service": "mekparts"},
	})
	if err != nil {
		logger = logging.NewDefaultLogger()
	}
	defer logger.Sync()

	// Create command configuration
	cmdConfig := commands.Config{
		ScenarioDir: *scenarioDir,
		OutputDir:   *outputDir,
		Format:      *format,
		Plan:        *plan,
		ExportFile:  *exportFile,
		MetricsFile: *metricsFile,
		Verbose:     *verbose,
		Help:        *help,
		Options:     opts,
		Logger:      logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Create and execute command
	cmd := commands.NewScenarioCommand(cmdConfig)
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// runGenerate handles "mekparts generate", which writes a random scenario
func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		outputDir = fs.String("output", "", "Output directory for the scenario CSV files")
		units     = fs.Int("units", 8, "Number of units")
		hits      = fs.Int("hits", 6, "Damage rows per unit")
		spares    = fs.Float64("spares", 1.0, "Warehouse multiplier")
		salvage   = fs.Float64("salvage", 0.1, "Share of units marked for salvage")
		seed      = fs.Uint64("seed", 0, "Random seed for reproducible scenarios (0 draws one)")
		verbose   = fs.Bool("verbose", false, "Enable verbose output")
		help      = fs.Bool("help", false, "Show help message")
	)
	_ = fs.Parse(args)

	cmd := commands.NewGenerateCommand(commands.GenerateConfig{
		Units:     *units,
		Hits:      *hits,
		Spares:    *spares,
		Salvage:   *salvage,
		OutputDir: *outputDir,
		Seed:      *seed,
		Help:      *help,
		Verbose:   *verbose,
	})
	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
