package maintenance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/services"
	"github.com/vsinha/mekparts/pkg/infrastructure/events"
)

// Remove takes a part off its unit, leaving a missing record in the slot.
// With salvage set an undamaged equivalent goes to the warehouse; otherwise
// the part is scrapped. Armor has no missing record: its points are
// stripped and, when salvaging, deposited as a spare stack.
func (s *Service) Remove(ctx context.Context, p *entities.Part, salvage bool) (Outcome, error) {
	unit := p.Unit()
	if unit == nil {
		return Outcome{}, fmt.Errorf("%s: %w", p.Name(), entities.ErrNotInstalled)
	}
	if p.IsMissing() {
		return Outcome{}, fmt.Errorf("%s: %w", p.Name(), ErrAlreadyMissing)
	}
	if p.IsNeverScrap() {
		return Outcome{}, fmt.Errorf("%s: %w", p.Name(), entities.ErrNeverScrap)
	}
	if p.Kind == entities.Armor {
		return s.stripArmor(p, salvage)
	}

	missing, err := s.detach(ctx, p)
	if err != nil {
		return Outcome{}, err
	}
	if salvage {
		if err := s.deposit(p); err != nil {
			return Outcome{Status: Removed, Part: missing}, err
		}
	}

	eventType := events.PartScrappedEvent
	if salvage {
		eventType = events.PartSalvagedEvent
	}
	s.publish(unit.ID.String(), eventType, events.PartRemoved{
		UnitID: unit.ID, PartID: p.ID, MissingID: missing.ID, Name: p.Name(),
	})
	s.config.Metrics.RecordRemoval(p.Kind.String(), salvage)
	s.logger.Info("part removed", append(s.fields(missing), zap.Bool("salvage", salvage))...)

	return Outcome{Status: Removed, Part: missing}, nil
}

// UpdateConditionFromEntity reads the entity's damage into the record. When
// checkForDestruction is set, a part whose slot is gone is destroyed
// outright, and a part that took new hits is destroyed on a 2d6 roll below
// the campaign target.
func (s *Service) UpdateConditionFromEntity(ctx context.Context, p *entities.Part, checkForDestruction bool) (Outcome, error) {
	if _, written := s.written[p.ID]; written {
		return Outcome{}, fmt.Errorf("%s: %w", p.Name(), ErrStaleRead)
	}
	if p.IsMissing() {
		return Outcome{Status: Unchanged, Part: p}, nil
	}
	reading, err := s.sync.Pull(p)
	if err != nil {
		return Outcome{}, err
	}

	oldHits := p.Hits()
	services.ApplyReading(p, reading)
	status := Unchanged
	if p.Hits() > oldHits {
		status = Damaged
		s.publish(streamOf(p), events.PartDamagedEvent, events.PartDamaged{
			UnitID:   p.UnitID().UUID,
			PartID:   p.ID,
			Name:     p.Name(),
			OldHits:  oldHits,
			NewHits:  p.Hits(),
			Location: locationName(p),
		})
	}

	if !checkForDestruction || p.IsNeverScrap() || !p.Kind.HasMissingVariant() {
		return Outcome{Status: status, Part: p}, nil
	}
	if reading.Destroyed {
		return s.destroy(ctx, p, 0)
	}
	if status == Damaged && p.Kind.ChecksForDestruction() {
		if roll := s.roller.Roll2D6(); roll < s.config.DestroyPartTarget {
			return s.destroy(ctx, p, roll)
		}
	}
	return Outcome{Status: status, Part: p}, nil
}

func (s *Service) destroy(ctx context.Context, p *entities.Part, roll int) (Outcome, error) {
	unit := p.Unit()
	missing, err := s.detach(ctx, p)
	if err != nil {
		return Outcome{}, err
	}
	s.publish(unit.ID.String(), events.PartDestroyedEvent, events.PartDestroyed{
		UnitID: unit.ID, PartID: p.ID, Name: p.Name(), Roll: roll, Target: s.config.DestroyPartTarget,
	})
	s.config.Metrics.RecordDestruction(p.Kind.String())
	s.logger.Warn("part destroyed", append(s.fields(missing),
		zap.Int("roll", roll),
		zap.Int("target", s.config.DestroyPartTarget))...)
	return Outcome{Status: Destroyed, Part: missing}, nil
}

// detach swaps the part for its missing record and writes the empty slot
// to the entity
func (s *Service) detach(ctx context.Context, p *entities.Part) (*entities.Part, error) {
	unit := p.Unit()
	if _, err := s.lifecycle.Fire(ctx, p, services.EventRemove); err != nil {
		return nil, err
	}
	missing, err := p.MissingCopy()
	if err != nil {
		return nil, err
	}
	if err := unit.ReplacePart(p, missing); err != nil {
		return nil, err
	}
	if err := s.UpdateConditionFromPart(missing); err != nil {
		return missing, fmt.Errorf("failed to write missing %s to %s: %w", p.Name(), unit.Name, err)
	}
	return missing, nil
}

// deposit stores an undamaged equivalent of the removed part
func (s *Service) deposit(p *entities.Part) error {
	spare := p.Clone()
	spare.SetHits(0)
	spare.Penalty = 0
	spare.ShotsNeeded = 0
	spare.Breached = false

	stored, err := s.warehouse.AddPart(spare)
	if err != nil {
		return fmt.Errorf("failed to store salvaged %s: %w", p.Name(), err)
	}
	s.publish(events.WarehouseStream, events.SpareDepositedEvent, events.SpareMoved{
		PartID: stored.ID, Name: stored.Name(), Quantity: stored.Quantity(),
	})
	s.updateSpareGauge()
	return nil
}

func (s *Service) stripArmor(p *entities.Part, salvage bool) (Outcome, error) {
	unit := p.Unit()
	points := p.ArmorPoints()

	if salvage && points > 0 {
		spare, err := entities.NewPart(entities.Armor, entities.Definition{Subtype: p.Subtype, Clan: p.Clan})
		if err != nil {
			return Outcome{}, err
		}
		spare.SetQuantity(points)
		stored, err := s.warehouse.AddPart(spare)
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to store salvaged %s: %w", p.Name(), err)
		}
		s.publish(events.WarehouseStream, events.SpareDepositedEvent, events.SpareMoved{
			PartID: stored.ID, Name: stored.Name(), Quantity: points,
		})
		s.updateSpareGauge()
	}

	p.SetHits(p.MaxHits())
	if err := s.UpdateConditionFromPart(p); err != nil {
		return Outcome{}, fmt.Errorf("failed to write %s: %w", p.Name(), err)
	}

	eventType := events.PartScrappedEvent
	if salvage {
		eventType = events.PartSalvagedEvent
	}
	s.publish(unit.ID.String(), eventType, events.PartRemoved{
		UnitID: unit.ID, PartID: p.ID, MissingID: p.ID, Name: p.Name(),
	})
	s.config.Metrics.RecordRemoval(p.Kind.String(), salvage)
	s.logger.Info("armor stripped", append(s.fields(p),
		zap.Int("points", points),
		zap.Bool("salvage", salvage))...)
	return Outcome{Status: Removed, Part: p}, nil
}
