package entities

// BaseTime returns the base minutes of the next maintenance task on the
// part: salvage when the part is marked for salvage, replacement when it is
// missing, and repair otherwise. Values are derived from kind, damage and
// salvage state only.
func (p *Part) BaseTime() int {
	return p.task().Minutes
}

// Difficulty returns the skill modifier of the next maintenance task
func (p *Part) Difficulty() int {
	return p.task().Difficulty
}

func (p *Part) task() Task {
	info := p.Kind.info()
	switch {
	case p.IsMissing():
		return info.replace
	case p.IsSalvaging():
		t := info.salvage
		if p.Kind == Armor {
			t.Minutes *= max(0, p.Capacity-p.hits)
		}
		return t
	}

	if len(info.repair) == 0 {
		return Task{}
	}
	if p.Kind == MekLocation && p.Breached {
		return Task{Minutes: 60, Difficulty: 0}
	}
	if p.Kind == AmmoBin && p.hits == 0 {
		return info.repair[0]
	}

	t := info.repair[min(p.repairStep(), len(info.repair)-1)]
	if info.perHit {
		t.Minutes *= max(1, p.hits)
	}
	return t
}

// repairStep picks the row of the kind's repair table. Locations scale by
// the fraction of structure lost; everything else by hit count.
func (p *Part) repairStep() int {
	if p.Kind == MekLocation {
		maxHits := p.MaxHits()
		if maxHits <= 0 {
			return 0
		}
		pct := float64(p.hits) / float64(maxHits)
		switch {
		case pct < 0.25:
			return 0
		case pct < 0.5:
			return 1
		case pct < 0.75:
			return 2
		default:
			return 3
		}
	}
	return max(0, p.hits-1)
}
