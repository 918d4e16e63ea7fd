package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vsinha/mekparts/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate creates output in the specified format
func Generate(result *dto.ScenarioResult, config Config) error {
	switch config.Format {
	case "", "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	case "html":
		return generateHTMLOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput prints a human-readable report to stdout
func generateTextOutput(result *dto.ScenarioResult, config Config) error {
	fmt.Printf("🔧 Maintenance Summary\n")
	fmt.Printf("======================\n\n")

	for _, unit := range result.Units {
		fmt.Printf("%s: %d damaged, %d destroyed, %d open tasks\n",
			unit.Unit, unit.Damaged, unit.Destroyed, len(unit.Tasks))

		if report := unit.Maintenance; report != nil {
			mode := "repair"
			if report.Salvage {
				mode = "salvage"
			}
			fmt.Printf("  Mode: %s  Passes: %d  Repaired: %d  Replaced: %d  Removed: %d  Blocked: %d\n",
				mode, report.Passes, report.Repaired, report.Replaced, report.Removed, report.Blocked)
			printEntries(report.Entries)
			printTasks("Remaining", report.Remaining)
		} else {
			printTasks("Tasks", unit.Tasks)
		}
		fmt.Println()
	}

	if wh := result.Warehouse; wh != nil && len(wh.Lines) > 0 {
		fmt.Printf("📦 Warehouse:\n")
		fmt.Printf("%-36s %-22s %-8s %-5s %-14s\n", "Part", "Kind", "Tonnage", "Qty", "Value")
		fmt.Printf("%-36s %-22s %-8s %-5s %-14s\n",
			"------------------------------------", "----------------------", "--------", "-----", "--------------")
		for _, line := range wh.Lines {
			fmt.Printf("%-36s %-22s %-8d %-5d %-14s\n",
				line.Name, line.Kind, line.Tonnage, line.Quantity, line.Value.StringFixed(0))
		}
		fmt.Printf("Total value: %s C-bills\n\n", wh.TotalValue.StringFixed(0))
	}

	fmt.Printf("Records: %d\n", result.Records)

	if config.OutputDir != "" {
		return writeJSON(result, config, "maintenance_results.json")
	}
	return nil
}

func printEntries(entries []dto.MaintenanceEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Printf("  %-36s %-10s %s\n", "Part", "Status", "Reason")
	for _, entry := range entries {
		fmt.Printf("  %-36s %-10s %s\n", entry.Name, entry.Status, entry.Reason)
	}
}

func printTasks(title string, tasks []dto.RepairTask) {
	if len(tasks) == 0 {
		return
	}
	fmt.Printf("  %s:\n", title)
	for _, task := range tasks {
		state := fmt.Sprintf("%dm, %+d", task.BaseTime, task.Difficulty)
		if task.Blocked != "" {
			state = task.Blocked
		}
		fmt.Printf("    %-34s %-14s %s\n", task.Name, task.Location, state)
	}
}

// generateJSONOutput prints the result as JSON, or saves it when an output
// directory is set
func generateJSONOutput(result *dto.ScenarioResult, config Config) error {
	if config.OutputDir == "" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonData))
		return nil
	}
	return writeJSON(result, config, "maintenance_results.json")
}

func writeJSON(result *dto.ScenarioResult, config Config, name string) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, name)
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Printf("💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes the task list, the maintenance entries and the
// warehouse as CSV files
func generateCSVOutput(result *dto.ScenarioResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tasksFile := filepath.Join(config.OutputDir, "tasks.csv")
	if err := writeTasksCSV(result.Units, tasksFile); err != nil {
		return fmt.Errorf("failed to write tasks CSV: %w", err)
	}

	entriesFile := filepath.Join(config.OutputDir, "maintenance.csv")
	if err := writeEntriesCSV(result.Units, entriesFile); err != nil {
		return fmt.Errorf("failed to write maintenance CSV: %w", err)
	}

	warehouseFile := filepath.Join(config.OutputDir, "warehouse.csv")
	if err := writeWarehouseCSV(result.Warehouse, warehouseFile); err != nil {
		return fmt.Errorf("failed to write warehouse CSV: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 CSV results saved to:\n")
		fmt.Printf("  Tasks: %s\n", tasksFile)
		fmt.Printf("  Maintenance: %s\n", entriesFile)
		fmt.Printf("  Warehouse: %s\n", warehouseFile)
	}
	return nil
}

func writeTasksCSV(units []dto.UnitCondition, filename string) error {
	rows := [][]string{{"unit", "part_id", "slot", "name", "kind", "location", "variant", "hits", "max_hits", "base_time", "difficulty", "salvage", "blocked"}}
	for _, unit := range units {
		for _, task := range unit.Tasks {
			rows = append(rows, []string{
				unit.Unit,
				task.PartID.String(),
				task.Slot,
				task.Name,
				task.Kind,
				task.Location,
				task.Variant,
				strconv.Itoa(task.Hits),
				strconv.Itoa(task.MaxHits),
				strconv.Itoa(task.BaseTime),
				strconv.Itoa(task.Difficulty),
				strconv.FormatBool(task.Salvage),
				task.Blocked,
			})
		}
	}
	return writeCSV(filename, rows)
}

func writeEntriesCSV(units []dto.UnitCondition, filename string) error {
	rows := [][]string{{"unit", "slot", "part_id", "name", "status", "reason"}}
	for _, unit := range units {
		if unit.Maintenance == nil {
			continue
		}
		for _, entry := range unit.Maintenance.Entries {
			rows = append(rows, []string{unit.Unit, entry.Slot, entry.PartID.String(), entry.Name, entry.Status, entry.Reason})
		}
	}
	return writeCSV(filename, rows)
}

func writeWarehouseCSV(report *dto.WarehouseReport, filename string) error {
	rows := [][]string{{"part_id", "name", "kind", "tonnage", "hits", "quantity", "value"}}
	if report != nil {
		for _, line := range report.Lines {
			rows = append(rows, []string{
				line.PartID.String(),
				line.Name,
				line.Kind,
				strconv.Itoa(line.Tonnage),
				strconv.Itoa(line.Hits),
				strconv.Itoa(line.Quantity),
				line.Value.String(),
			})
		}
	}
	return writeCSV(filename, rows)
}

func writeCSV(filename string, rows [][]string) error {
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
