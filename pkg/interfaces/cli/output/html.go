package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/vsinha/mekparts/pkg/application/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateData contains all data for rendering the HTML report
type TemplateData struct {
	*dto.ScenarioResult
	Chart       template.HTML
	GeneratedAt string
}

// GenerateHTML renders the scenario result as a standalone HTML page
func GenerateHTML(result *dto.ScenarioResult) (string, error) {
	chart := NewGanttChart(result)

	// The chart escapes every label it writes
	data := &TemplateData{
		ScenarioResult: result,
		Chart:          template.HTML(chart.GenerateSVG(result)),
		GeneratedAt:    time.Now().Format("2006-01-02 15:04:05"),
	}

	tmpl, err := template.ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// generateHTMLOutput writes the HTML report into the output directory
func generateHTMLOutput(result *dto.ScenarioResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for HTML format")
	}

	page, err := GenerateHTML(result)
	if err != nil {
		return fmt.Errorf("failed to generate HTML report: %w", err)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "maintenance_report.html")
	if err := os.WriteFile(filename, []byte(page), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("🌐 HTML report saved to: %s\n", filename)
	}
	return nil
}
