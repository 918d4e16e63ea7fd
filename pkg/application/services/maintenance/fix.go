package maintenance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/services"
	"github.com/vsinha/mekparts/pkg/infrastructure/events"
)

// Fix performs the part's next maintenance task. A missing slot is filled
// from the warehouse, a part marked for salvage is removed into it, and a
// damaged part is repaired in place. Tasks that cannot be done now come
// back as Blocked with the reason; they are not errors.
func (s *Service) Fix(ctx context.Context, p *entities.Part) (Outcome, error) {
	if p.Unit() == nil {
		return Outcome{}, fmt.Errorf("%s: %w", p.Name(), entities.ErrNotInstalled)
	}
	if reason := services.CheckFixable(p); reason != "" {
		return s.blocked(p, reason), nil
	}

	switch {
	case p.IsSalvaging() && p.IsMissing():
		return Outcome{Status: Unchanged, Part: p}, nil
	case p.IsSalvaging():
		return s.Remove(ctx, p, true)
	case p.IsMissing():
		return s.Replace(ctx, p, false)
	default:
		return s.repair(ctx, p)
	}
}

// Replace fills a missing slot with the best acceptable spare. Refits only
// accept undamaged spares. The warehouse is untouched when nothing fits.
func (s *Service) Replace(ctx context.Context, missing *entities.Part, refit bool) (Outcome, error) {
	if !missing.IsMissing() {
		return Outcome{}, fmt.Errorf("%s: %w", missing.Name(), entities.ErrNotMissing)
	}
	unit := missing.Unit()
	if unit == nil {
		return Outcome{}, fmt.Errorf("%s: %w", missing.Name(), entities.ErrNotInstalled)
	}
	if _, err := s.lifecycle.Fire(ctx, missing, services.EventReplace); err != nil {
		return Outcome{}, err
	}

	stack, ok := s.warehouse.FindReplacement(missing, refit)
	if !ok {
		return s.blocked(missing, fmt.Sprintf("No replacement for %s in the warehouse.", missing.Describe())), nil
	}
	stackID := stack.ID
	spare, ok := s.warehouse.TakeReplacement(missing, refit)
	if !ok {
		return s.blocked(missing, fmt.Sprintf("No replacement for %s in the warehouse.", missing.Describe())), nil
	}

	spare.TakeSlot(missing)
	if err := unit.ReplacePart(missing, spare); err != nil {
		if _, restoreErr := s.warehouse.AddPart(spare); restoreErr != nil {
			s.logger.Error("failed to return spare to the warehouse",
				zap.String("part_id", spare.ID.String()),
				zap.Error(restoreErr))
		}
		return Outcome{}, fmt.Errorf("failed to replace %s: %w", missing.Name(), err)
	}
	if err := s.UpdateConditionFromPart(spare); err != nil {
		return Outcome{Status: Replaced, Part: spare}, fmt.Errorf("failed to write %s to %s: %w", spare.Name(), unit.Name, err)
	}

	s.publish(events.WarehouseStream, events.SpareConsumedEvent, events.SpareMoved{
		PartID: stackID, Name: spare.Name(), Quantity: 1,
	})
	s.publish(unit.ID.String(), events.PartReplacedEvent, events.PartReplaced{
		UnitID: unit.ID, MissingID: missing.ID, PartID: spare.ID, SpareID: stackID, Name: spare.Name(),
	})
	s.config.Metrics.RecordReplacement(spare.Kind.String())
	s.updateSpareGauge()
	s.logger.Info("part replaced", append(s.fields(spare),
		zap.Int("hits", spare.Hits()),
		zap.Bool("refit", refit))...)

	return Outcome{Status: Replaced, Part: spare}, nil
}

// repair does one repair step on a present record. Most kinds are restored
// in one go; rotors recover one hit per step, breached locations are sealed
// before their structure is repaired, and armor is limited by the points
// the warehouse holds.
func (s *Service) repair(ctx context.Context, p *entities.Part) (Outcome, error) {
	if !p.NeedsFixing() {
		return Outcome{Status: Unchanged, Part: p}, nil
	}
	transition, err := s.lifecycle.Fire(ctx, p, services.EventRepair)
	if err != nil {
		return Outcome{}, err
	}

	oldHits := p.Hits()
	switch p.Kind {
	case entities.MekLocation:
		if p.Breached {
			p.Breached = false
		} else {
			p.SetHits(0)
		}
	case entities.Rotor:
		p.SetHits(oldHits - 1)
	case entities.Armor:
		taken := s.warehouse.Take(p, oldHits)
		if taken == 0 {
			return s.blocked(p, fmt.Sprintf("No %s in the warehouse.", p.Name())), nil
		}
		p.SetHits(oldHits - taken)
		s.publish(events.WarehouseStream, events.SpareConsumedEvent, events.SpareMoved{
			PartID: p.ID, Name: p.Name(), Quantity: taken,
		})
		s.updateSpareGauge()
	case entities.AmmoBin:
		if oldHits == 0 && p.IsOneShot() {
			return s.blocked(p, fmt.Sprintf("%s is one-shot and cannot be reloaded.", p.Name())), nil
		}
		p.SetHits(0)
		if !p.IsOneShot() {
			p.ShotsNeeded = 0
		}
	case entities.MotiveSystem:
		p.SetHits(0)
		p.Penalty = 0
	default:
		p.SetHits(0)
	}

	if err := s.UpdateConditionFromPart(p); err != nil {
		return Outcome{}, fmt.Errorf("failed to write %s: %w", p.Name(), err)
	}

	status := Repaired
	if p.NeedsFixing() {
		status = Partial
	}
	s.publish(streamOf(p), events.PartRepairedEvent, events.PartRepaired{
		UnitID: p.Unit().ID, PartID: p.ID, Name: p.Name(), OldHits: oldHits, NewHits: p.Hits(),
	})
	s.config.Metrics.RecordRepair(p.Kind.String())
	s.logger.Info("part repaired", append(s.fields(p),
		zap.String("from", transition.From),
		zap.String("to", services.StateOf(p)),
		zap.Int("old_hits", oldHits),
		zap.Int("hits", p.Hits()))...)

	return Outcome{Status: status, Part: p}, nil
}

func (s *Service) blocked(p *entities.Part, reason string) Outcome {
	unitID := p.UnitID().UUID
	s.publish(streamOf(p), events.RepairBlockedEvent, events.RepairBlocked{
		UnitID: unitID, PartID: p.ID, Name: p.Name(), Reason: reason,
	})
	s.config.Metrics.RecordBlocked(p.Kind.String())
	s.logger.Debug("maintenance blocked", append(s.fields(p), zap.String("reason", reason))...)
	return Outcome{Status: Blocked, Part: p, Reason: reason}
}
