package entities

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

// Variant distinguishes a functioning component from an empty slot
type Variant int

const (
	Present Variant = iota
	Absent
)

// String method for Variant enum
func (v Variant) String() string {
	switch v {
	case Present:
		return "present"
	case Absent:
		return "absent"
	default:
		return "unknown"
	}
}

// ParseVariant converts a variant name into a Variant
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "present":
		return Present, nil
	case "absent":
		return Absent, nil
	default:
		return 0, fmt.Errorf("unknown part variant %q", s)
	}
}

// Flags is a bitmask of part state flags
type Flags uint8

const (
	FlagSalvaging Flags = 1 << iota
	FlagNeverScrap
	FlagOneShot
	FlagTonnageLimited
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// Errors returned by guarded part operations
var (
	ErrNotInstalled = errors.New("part is not installed on a unit")
	ErrNeverScrap   = errors.New("part can never be removed")
	ErrNotMissing   = errors.New("part is not missing")
	ErrNoMissing    = errors.New("part kind has no missing variant")
)

// Definition holds the kind-specific fields that identify what a part is.
// Not every field applies to every kind.
type Definition struct {
	// Subtype is the actuator joint, armor type, engine host type or protomek
	// limb category
	Subtype string
	// Model is the engine, gyro, cockpit, heat sink or jump jet type, the
	// equipment name or the ammo type
	Model        string
	Rating       int
	Slots        int
	Clan         bool
	TSM          bool
	Rear         bool
	EquipmentNum int
	Weight       decimal.Decimal
	Price        decimal.Decimal
	// Capacity is the full shot count of an ammo bin, the full point count
	// of installed armor, or the base structural integrity
	Capacity   int
	LargeCraft bool
}

// Part is one component record, either a functioning (possibly damaged)
// component or an empty slot awaiting a replacement
type Part struct {
	Installable
	Definition

	ID      uuid.UUID
	Kind    Kind
	Variant Variant
	Flags   Flags

	hits     int
	quantity int

	// Breached is set on sealed-off Mek locations awaiting repair
	Breached bool
	// Penalty is the motive system's accumulated movement penalty
	Penalty int
	// ShotsNeeded is the number of rounds an ammo bin needs to be full
	ShotsNeeded int
}

// NewPart creates a validated, undamaged Present record of the given kind
func NewPart(kind Kind, def Definition) (*Part, error) {
	if _, ok := kindTable[kind]; !ok {
		return nil, fmt.Errorf("unknown part kind %d", kind)
	}
	p := &Part{
		Installable: newInstallable(),
		Definition:  def,
		ID:          uuid.New(),
		Kind:        kind,
		Variant:     Present,
		quantity:    1,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	p.tonnageLimited = kind.IsTonnageLimited()
	if kind.IsNeverScrap() {
		p.Flags |= FlagNeverScrap
	}
	return p, nil
}

// NewMissingPart creates an Absent record of the given kind
func NewMissingPart(kind Kind, def Definition) (*Part, error) {
	p, err := NewPart(kind, def)
	if err != nil {
		return nil, err
	}
	if !kind.HasMissingVariant() {
		return nil, fmt.Errorf("%s: %w", kind, ErrNoMissing)
	}
	p.Variant = Absent
	return p, nil
}

func (p *Part) validate() error {
	switch p.Kind {
	case MekActuator:
		sys, err := simulation.ParseSystem(p.Subtype)
		if err != nil || !sys.IsActuator() {
			return fmt.Errorf("actuator joint %q is not valid", p.Subtype)
		}
	case Armor:
		if p.Subtype == "" {
			return fmt.Errorf("armor type cannot be empty")
		}
	case Engine:
		if _, err := simulation.ParseType(p.Subtype); err != nil {
			return fmt.Errorf("engine host type: %w", err)
		}
		if p.Model == "" {
			return fmt.Errorf("engine type cannot be empty")
		}
		if p.Rating <= 0 {
			return fmt.Errorf("engine rating must be positive, got %d", p.Rating)
		}
	case MekGyro, MekCockpit, HeatSink, AeroHeatSink:
		if p.Model == "" {
			return fmt.Errorf("%s type cannot be empty", p.Kind)
		}
	case Equipment:
		if p.Model == "" {
			return fmt.Errorf("equipment name cannot be empty")
		}
		if p.Price.IsNegative() {
			return fmt.Errorf("equipment price cannot be negative")
		}
	case AmmoBin:
		if p.Model == "" {
			return fmt.Errorf("ammo type cannot be empty")
		}
		if p.Capacity <= 0 {
			return fmt.Errorf("ammo bin capacity must be positive, got %d", p.Capacity)
		}
	case StructuralIntegrity:
		if p.Capacity <= 0 {
			return fmt.Errorf("structural integrity must be positive, got %d", p.Capacity)
		}
	case ProtomekActuator:
		if p.Subtype != LimbArm && p.Subtype != LimbLegs {
			return fmt.Errorf("protomek limb %q is not valid", p.Subtype)
		}
	}
	if p.Weight.IsNegative() {
		return fmt.Errorf("weight cannot be negative")
	}
	return nil
}

// Protomek actuator limb categories
const (
	LimbArm  = "Arm"
	LimbLegs = "Legs"
)

// ProtomekLimb returns the limb category a protomek location takes
func ProtomekLimb(loc int) string {
	switch loc {
	case simulation.ProtoRightArm, simulation.ProtoLeftArm:
		return LimbArm
	case simulation.ProtoLegs:
		return LimbLegs
	default:
		return ""
	}
}

// Hits returns the damage level
func (p *Part) Hits() int {
	return p.hits
}

// MaxHits returns the kind-specific damage ceiling
func (p *Part) MaxHits() int {
	return p.Kind.info().maxHits(p)
}

// SetHits sets the damage level, clamped to 0..MaxHits
func (p *Part) SetHits(hits int) {
	p.hits = max(0, min(hits, p.MaxHits()))
}

// Quantity returns the stack size; installed records are always 1
func (p *Part) Quantity() int {
	if p.IsInstalled() {
		return 1
	}
	return p.quantity
}

// SetQuantity sets the stack size. Non-fungible and installed records
// always hold exactly one.
func (p *Part) SetQuantity(q int) {
	if p.IsInstalled() || !p.Kind.IsFungible() {
		p.quantity = 1
		return
	}
	p.quantity = max(1, q)
}

func (p *Part) IsPresent() bool { return p.Variant == Present }
func (p *Part) IsMissing() bool { return p.Variant == Absent }

// IsSalvaging reports whether the part is being worked on in salvage mode
func (p *Part) IsSalvaging() bool {
	return p.Flags.Has(FlagSalvaging)
}

func (p *Part) SetSalvaging(salvaging bool) {
	if salvaging {
		p.Flags |= FlagSalvaging
	} else {
		p.Flags &^= FlagSalvaging
	}
}

func (p *Part) IsNeverScrap() bool {
	return p.Flags.Has(FlagNeverScrap)
}

func (p *Part) IsOneShot() bool {
	return p.Flags.Has(FlagOneShot)
}

// NeedsFixing reports whether the record needs maintenance work. The motive
// system and ammo bins have counters besides hits.
func (p *Part) NeedsFixing() bool {
	if p.IsMissing() {
		return true
	}
	switch p.Kind {
	case MotiveSystem:
		return p.hits > 0 || p.Penalty > 0
	case MekLocation:
		return p.hits > 0 || p.Breached
	case AmmoBin:
		return p.hits > 0 || p.ShotsNeeded > 0
	default:
		return p.hits > 0
	}
}

// Name returns a human-readable description of the part
func (p *Part) Name() string {
	info := p.Kind.info()
	var name string
	switch p.Kind {
	case MekActuator:
		name = p.Subtype + " Actuator"
	case MekLocation:
		name = simulation.MekLocationName(p.location)
	case Armor:
		name = p.Subtype + " Armor"
		if p.Rear {
			name += " (Rear)"
		}
	case Engine:
		name = fmt.Sprintf("%d %s Engine", p.Rating, p.Model)
	case MekGyro:
		name = p.Model + " Gyro"
	case MekCockpit:
		name = p.Model + " Cockpit"
	case HeatSink, AeroHeatSink:
		name = p.Model + " Heat Sink"
	case Equipment:
		name = p.Model
	case AmmoBin:
		name = p.Model + " Ammo"
	case ProtomekActuator:
		name = "Protomek " + p.Subtype + " Actuator"
	default:
		name = info.name
	}
	if p.IsMissing() {
		return "Missing " + name
	}
	return name
}

// Describe returns the name with location, for task listings
func (p *Part) Describe() string {
	var b strings.Builder
	b.WriteString(p.Name())
	if e := p.Entity(); e != nil && p.location != simulation.LocationNone && p.Kind != MekLocation {
		fmt.Fprintf(&b, " (%s)", e.LocationName(p.location))
	}
	return b.String()
}

// Clone returns an uninstalled copy with a fresh identifier. Locations are
// only kept where they are part of the type key; salvage state is dropped.
func (p *Part) Clone() *Part {
	loc := simulation.LocationNone
	if p.Kind == MekLocation || p.Kind == TankLocation {
		loc = p.location
	}
	c := &Part{
		Installable: Installable{
			location:       loc,
			unitTonnage:    p.unitTonnage,
			tonnageLimited: p.tonnageLimited,
		},
		Definition:  p.Definition,
		ID:          uuid.New(),
		Kind:        p.Kind,
		Variant:     p.Variant,
		Flags:       p.Flags &^ FlagSalvaging,
		hits:        p.hits,
		quantity:    1,
		Penalty:     p.Penalty,
		ShotsNeeded: p.ShotsNeeded,
	}
	c.EquipmentNum = 0
	return c
}

// MissingCopy builds the Absent record that takes this part's slot when it
// is removed. Location, tonnage and definition are kept.
func (p *Part) MissingCopy() (*Part, error) {
	if !p.Kind.HasMissingVariant() {
		return nil, fmt.Errorf("%s: %w", p.Kind, ErrNoMissing)
	}
	m := &Part{
		Installable: Installable{
			location:       p.location,
			secondary:      slices.Clone(p.secondary),
			unitTonnage:    p.unitTonnage,
			tonnageLimited: p.tonnageLimited,
		},
		Definition: p.Definition,
		ID:         uuid.New(),
		Kind:       p.Kind,
		Variant:    Absent,
		Flags:      p.Flags &^ FlagSalvaging,
		quantity:   1,
	}
	return m, nil
}

// TakeSlot moves this record into the slot described by other: location,
// secondary locations and mount number
func (p *Part) TakeSlot(other *Part) {
	p.location = other.location
	p.secondary = slices.Clone(other.secondary)
	p.EquipmentNum = other.EquipmentNum
	p.Rear = other.Rear
	if p.Kind == Armor {
		p.Capacity = other.Capacity
	}
}
