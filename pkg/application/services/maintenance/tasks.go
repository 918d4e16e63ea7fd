package maintenance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/mekparts/pkg/application/dto"
	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/services"
)

// maxPasses bounds Run; each pass can only unblock tasks gated on work done
// in the previous one
const maxPasses = 16

// Tasks lists the open maintenance tasks on the unit in slot order. A unit
// in salvage mode lists everything that can still be taken off it.
func (s *Service) Tasks(unit *entities.Unit) []dto.RepairTask {
	var tasks []dto.RepairTask
	for _, p := range unit.Parts() {
		if unit.IsSalvage() {
			// kinds that never come off are not tasks; a pinned record like the
			// center torso stays listed as blocked
			if p.IsMissing() || p.Kind.IsNeverScrap() {
				continue
			}
			if p.Kind == entities.Armor && p.ArmorPoints() == 0 {
				continue
			}
		} else if !p.NeedsFixing() {
			continue
		}
		tasks = append(tasks, taskOf(unit, p))
	}
	return tasks
}

func taskOf(unit *entities.Unit, p *entities.Part) dto.RepairTask {
	return dto.RepairTask{
		PartID:     p.ID,
		UnitID:     unit.ID,
		Slot:       services.SlotOf(p).String(),
		Name:       p.Describe(),
		Kind:       p.Kind.String(),
		Location:   locationName(p),
		Variant:    p.Variant.String(),
		Hits:       p.Hits(),
		MaxHits:    p.MaxHits(),
		BaseTime:   p.BaseTime(),
		Difficulty: p.Difficulty(),
		Salvage:    p.IsSalvaging(),
		Blocked:    services.CheckFixable(p),
	}
}

// Run works through the unit's tasks until nothing more can be done. Later
// passes pick up tasks that were waiting on earlier ones, such as equipment
// that can only be replaced once its location is.
func (s *Service) Run(ctx context.Context, unit *entities.Unit) (*dto.MaintenanceReport, error) {
	report := &dto.MaintenanceReport{
		UnitID:  unit.ID,
		Unit:    unit.Name,
		Salvage: unit.IsSalvage(),
	}
	index := make(map[string]int)

	for report.Passes < maxPasses {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		tasks := s.Tasks(unit)
		if len(tasks) == 0 {
			break
		}
		report.Passes++

		progressed := false
		for _, task := range tasks {
			p, ok := unit.Part(task.PartID)
			if !ok {
				continue
			}
			outcome, err := s.Fix(ctx, p)
			if err != nil {
				return report, fmt.Errorf("maintenance on %s failed: %w", task.Name, err)
			}
			if outcome.Status.Progressed() {
				progressed = true
			}
			switch outcome.Status {
			case Repaired:
				report.Repaired++
			case Replaced:
				report.Replaced++
			case Removed:
				report.Removed++
			}

			entry := dto.MaintenanceEntry{
				Slot:   task.Slot,
				PartID: outcome.Part.ID,
				Name:   outcome.Part.Describe(),
				Status: outcome.Status.String(),
				Reason: outcome.Reason,
			}
			if i, seen := index[task.Slot]; seen {
				report.Entries[i] = entry
			} else {
				index[task.Slot] = len(report.Entries)
				report.Entries = append(report.Entries, entry)
			}
		}
		if !progressed {
			break
		}
	}

	for _, entry := range report.Entries {
		if entry.Status == Blocked.String() {
			report.Blocked++
		}
	}
	report.Remaining = s.Tasks(unit)

	s.logger.Info("maintenance finished",
		zap.String("unit", unit.Name),
		zap.Int("passes", report.Passes),
		zap.Int("repaired", report.Repaired),
		zap.Int("replaced", report.Replaced),
		zap.Int("removed", report.Removed),
		zap.Int("blocked", report.Blocked))
	return report, nil
}

// WarehouseReport lists the spare pool with per-record values
func (s *Service) WarehouseReport() *dto.WarehouseReport {
	report := &dto.WarehouseReport{}
	for _, p := range s.warehouse.Parts() {
		value := p.Value()
		tonnage := 0
		if p.IsTonnageLimited() {
			tonnage = p.UnitTonnage()
		}
		report.Lines = append(report.Lines, dto.WarehouseLine{
			PartID:   p.ID,
			Name:     p.Name(),
			Kind:     p.Kind.String(),
			Tonnage:  tonnage,
			Hits:     p.Hits(),
			Quantity: p.Quantity(),
			Value:    value,
		})
	}
	report.TotalValue = s.warehouse.TotalValue()
	return report
}
