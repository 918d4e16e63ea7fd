package entities

import "github.com/vsinha/mekparts/pkg/domain/simulation"

// TypeKey is the structural identity of a part kind's sub-variant. Two
// records with equal keys are the same kind of component; the warehouse
// indexes spares by it.
type TypeKey struct {
	Kind       Kind
	Subtype    string
	Model      string
	Location   int
	Tonnage    int
	Rating     int
	Slots      int
	Capacity   int
	Weight     string
	Clan       bool
	TSM        bool
	LargeCraft bool
}

// Key builds the type key from the fields that matter for the part's kind
func (p *Part) Key() TypeKey {
	k := TypeKey{Kind: p.Kind, Location: simulation.LocationNone}
	if p.tonnageLimited {
		k.Tonnage = p.unitTonnage
	}
	switch p.Kind {
	case MekActuator:
		k.Subtype = p.Subtype
	case MekLocation:
		k.Location = p.location
		k.Subtype = p.Subtype
		k.TSM = p.TSM
		k.Clan = p.Clan
	case Armor:
		k.Subtype = p.Subtype
		k.Clan = p.Clan
	case Engine:
		k.Subtype = p.Subtype
		k.Model = p.Model
		k.Rating = p.Rating
		k.Clan = p.Clan
	case MekGyro:
		k.Model = p.Model
		k.Weight = p.Weight.String()
	case MekCockpit:
		k.Model = p.Model
	case HeatSink, AeroHeatSink:
		k.Model = p.Model
		k.Clan = p.Clan
	case JumpJet:
		k.Model = p.Model
	case Equipment:
		k.Model = p.Model
		k.Weight = p.Weight.String()
		k.Slots = p.Slots
	case AmmoBin:
		k.Model = p.Model
		k.Capacity = p.Capacity
	case TankLocation:
		k.Location = p.location
	case Turret:
		k.Weight = p.Weight.String()
	case StructuralIntegrity:
		k.Capacity = p.Capacity
	case Avionics, FireControlSystem, AeroSensor:
		k.LargeCraft = p.LargeCraft
	case ProtomekActuator:
		k.Subtype = p.Subtype
	}
	return k
}

// IsSamePartType reports whether a and b are the same kind of component,
// ignoring damage, variant and installation state
func IsSamePartType(a, b *Part) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Key() == b.Key()
}

// IsSameStatus reports whether two records may be merged into a single
// stacked warehouse entry. Only identical, undamaged records qualify.
func IsSameStatus(a, b *Part) bool {
	if !IsSamePartType(a, b) {
		return false
	}
	if a.hits != 0 || b.hits != 0 {
		return false
	}
	if a.Variant != b.Variant {
		return false
	}
	if a.Flags&^FlagSalvaging != b.Flags&^FlagSalvaging {
		return false
	}
	// price variants of one item stack apart so each can refill its own slot
	if !a.Price.Equal(b.Price) {
		return false
	}
	return a.ShotsNeeded == b.ShotsNeeded && a.Penalty == b.Penalty && a.Breached == b.Breached
}

// IsAcceptableReplacement reports whether candidate can be installed into
// the slot described by missing. In refit mode the candidate must also be
// undamaged.
func IsAcceptableReplacement(missing, candidate *Part, refit bool) bool {
	if missing == nil || candidate == nil {
		return false
	}
	if !missing.IsMissing() || !candidate.IsPresent() {
		return false
	}
	if refit && candidate.hits > 0 {
		return false
	}
	if !IsSamePartType(missing, candidate) {
		return false
	}

	switch missing.Kind {
	case Equipment:
		// a cheaper or dearer variant of the same item is not a substitute
		return missing.Price.Equal(candidate.Price)
	case Engine:
		return missing.Rating == candidate.Rating &&
			missing.Model == candidate.Model &&
			missing.Clan == candidate.Clan
	case MekActuator:
		return missing.Subtype == candidate.Subtype &&
			missing.unitTonnage == candidate.unitTonnage
	case AmmoBin:
		return missing.IsOneShot() == candidate.IsOneShot()
	case ProtomekActuator:
		limb := ProtomekLimb(missing.location)
		return limb == "" || limb == candidate.Subtype
	}
	return true
}
