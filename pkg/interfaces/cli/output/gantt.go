package output

import (
	"fmt"
	"html"
	"strings"

	"github.com/vsinha/mekparts/pkg/application/dto"
	"github.com/vsinha/mekparts/pkg/domain/entities"
)

// GanttChart lays each unit's open tasks end to end, one row per unit, the
// way a single tech team would work through them
type GanttChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	RowHeight    int
	// TotalMinutes is the longest row, which sets the time scale
	TotalMinutes int
}

// GanttBar represents a single task in the chart
type GanttBar struct {
	Task  dto.RepairTask
	X     int
	Width int
	Color string
}

// NewGanttChart sizes a chart for the result's task lists
func NewGanttChart(result *dto.ScenarioResult) *GanttChart {
	rowHeight := 30
	total := 0
	for _, unit := range result.Units {
		total = max(total, rowMinutes(unit.Tasks))
	}
	return &GanttChart{
		Width:        1200,
		Height:       len(result.Units)*rowHeight + 140,
		MarginLeft:   200,
		MarginTop:    60,
		MarginRight:  100,
		MarginBottom: 80,
		RowHeight:    rowHeight,
		TotalMinutes: total,
	}
}

func rowMinutes(tasks []dto.RepairTask) int {
	total := 0
	for _, task := range tasks {
		total += task.BaseTime
	}
	return total
}

// GenerateSVG creates an SVG representation of the chart
func (gc *GanttChart) GenerateSVG(result *dto.ScenarioResult) string {
	if gc.TotalMinutes == 0 {
		return gc.generateEmptyChart()
	}

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, gc.Width, gc.Height))
	svg.WriteString(`<defs><style>`)
	svg.WriteString(`.unit-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.time-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.task-bar { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`</style></defs>`)
	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, gc.Width, gc.Height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title" text-anchor="middle">Open Maintenance Work</text>`, gc.Width/2))

	gc.drawTimeAxis(&svg, len(result.Units))
	for i, unit := range result.Units {
		gc.drawUnitRow(&svg, unit, gc.MarginTop+i*gc.RowHeight)
	}
	gc.drawLegend(&svg)

	svg.WriteString(`</svg>`)
	return svg.String()
}

// createBars places a unit's tasks back to back on the time scale
func (gc *GanttChart) createBars(tasks []dto.RepairTask) []GanttBar {
	plotWidth := gc.Width - gc.MarginLeft - gc.MarginRight
	bars := make([]GanttBar, 0, len(tasks))
	elapsed := 0
	for _, task := range tasks {
		x := gc.MarginLeft + elapsed*plotWidth/gc.TotalMinutes
		width := max(task.BaseTime*plotWidth/gc.TotalMinutes, 2)
		bars = append(bars, GanttBar{Task: task, X: x, Width: width, Color: gc.getBarColor(task)})
		elapsed += task.BaseTime
	}
	return bars
}

func (gc *GanttChart) drawUnitRow(svg *strings.Builder, unit dto.UnitCondition, y int) {
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="unit-label" text-anchor="end">%s</text>`,
		gc.MarginLeft-15, y+gc.RowHeight/2+4, html.EscapeString(unit.Unit)))
	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
		gc.MarginLeft, y+gc.RowHeight, gc.Width-gc.MarginRight, y+gc.RowHeight))

	for _, bar := range gc.createBars(unit.Tasks) {
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="task-bar">`,
			bar.X, y+2, bar.Width, gc.RowHeight-4, bar.Color))
		tooltip := fmt.Sprintf("%s, %d minutes, difficulty %+d", bar.Task.Name, bar.Task.BaseTime, bar.Task.Difficulty)
		if bar.Task.Blocked != "" {
			tooltip += ": " + bar.Task.Blocked
		}
		svg.WriteString(fmt.Sprintf(`<title>%s</title></rect>`, html.EscapeString(tooltip)))
	}
}

// drawTimeAxis draws hour ticks under the rows
func (gc *GanttChart) drawTimeAxis(svg *strings.Builder, rows int) {
	axisY := gc.MarginTop + rows*gc.RowHeight + 10
	plotWidth := gc.Width - gc.MarginLeft - gc.MarginRight
	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333"/>`,
		gc.MarginLeft, axisY, gc.Width-gc.MarginRight, axisY))

	step := 60
	for step*20 < gc.TotalMinutes {
		step *= 2
	}
	for m := 0; m <= gc.TotalMinutes; m += step {
		x := gc.MarginLeft + m*plotWidth/gc.TotalMinutes
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			x, gc.MarginTop, x, axisY))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="time-label" text-anchor="middle">%dh</text>`,
			x, axisY+15, m/60))
	}
}

// drawLegend draws a legend explaining the colors
func (gc *GanttChart) drawLegend(svg *strings.Builder) {
	legendX := gc.Width - gc.MarginRight - 200
	legendY := gc.Height - gc.MarginBottom + 20

	items := []struct {
		color string
		label string
	}{
		{"#4CAF50", "Repair"},
		{"#2196F3", "Replace"},
		{"#FF9800", "Salvage"},
		{"#F44336", "Blocked"},
	}
	for i, item := range items {
		itemY := legendY + i*12
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="12" height="8" fill="%s"/>`,
			legendX, itemY, item.color))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="time-label">%s</text>`,
			legendX+20, itemY+7, item.label))
	}
}

// getBarColor returns the color for the kind of work a task is
func (gc *GanttChart) getBarColor(task dto.RepairTask) string {
	switch {
	case task.Blocked != "":
		return "#F44336"
	case task.Salvage:
		return "#FF9800"
	case task.Variant == entities.Absent.String():
		return "#2196F3"
	default:
		return "#4CAF50"
	}
}

// generateEmptyChart creates an empty chart when no work is open
func (gc *GanttChart) generateEmptyChart() string {
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
		<rect width="%d" height="%d" fill="white"/>
		<text x="%d" y="%d" class="title" text-anchor="middle">No Open Maintenance Work</text>
		<style>
			.title { font-family: Arial, sans-serif; font-size: 16px; fill: #666; }
		</style>
	</svg>`, gc.Width, gc.Height, gc.Width, gc.Height, gc.Width/2, gc.Height/2)
}
