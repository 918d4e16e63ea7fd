package simulation

// Protomek locations
const (
	ProtoHead = iota
	ProtoTorso
	ProtoRightArm
	ProtoLeftArm
	ProtoLegs
	ProtoMainGun
	ProtoNumLocations
)

var protoLocationNames = [ProtoNumLocations]string{
	"Head", "Torso", "Right Arm", "Left Arm", "Legs", "Main Gun",
}

// ProtomekConfig describes a protomek to build
type ProtomekConfig struct {
	Name      string
	Tonnage   int
	ArmorType string
	MainGun   bool
}

// Protomek is a simulated protomek, always Clan technology
type Protomek struct {
	equipmentList

	config ProtomekConfig

	internal  [ProtoNumLocations]int
	oInternal [ProtoNumLocations]int
	armor     [ProtoNumLocations]int
	oArmor    [ProtoNumLocations]int
	destroyed [ProtoNumLocations]bool

	crits map[critKey]*critState
}

// NewProtomek builds a protomek with full structure and armor
func NewProtomek(cfg ProtomekConfig) *Protomek {
	if cfg.ArmorType == "" {
		cfg.ArmorType = "Standard"
	}
	p := &Protomek{config: cfg, crits: make(map[critKey]*critState)}
	t := cfg.Tonnage
	structure := [ProtoNumLocations]int{1 + t/3, t, max(1, t/2), max(1, t/2), t, 0}
	if cfg.MainGun {
		structure[ProtoMainGun] = max(1, t/3)
	}
	for loc, is := range structure {
		p.internal[loc], p.oInternal[loc] = is, is
		p.armor[loc], p.oArmor[loc] = is, is
	}
	p.crits[critKey{SystemSensors, ProtoHead}] = &critState{slots: 2}
	p.crits[critKey{SystemLimb, ProtoRightArm}] = &critState{slots: 1}
	p.crits[critKey{SystemLimb, ProtoLeftArm}] = &critState{slots: 1}
	p.crits[critKey{SystemLimb, ProtoLegs}] = &critState{slots: 3}
	return p
}

// Config returns the configuration the protomek was built from
func (p *Protomek) Config() ProtomekConfig { return p.config }
func (p *Protomek) Type() Type { return ProtomekType }
func (p *Protomek) Name() string { return p.config.Name }
func (p *Protomek) Weight() int { return p.config.Tonnage }
func (p *Protomek) IsClan() bool { return true }
func (p *Protomek) ArmorType() string { return p.config.ArmorType }

func (p *Protomek) NumLocations() int {
	if p.config.MainGun {
		return ProtoNumLocations
	}
	return ProtoMainGun
}

func (p *Protomek) validLoc(loc int) bool {
	return loc >= 0 && loc < p.NumLocations()
}

func (p *Protomek) LocationName(loc int) string {
	if !p.validLoc(loc) {
		return "Unknown Location"
	}
	return protoLocationNames[loc]
}

func (p *Protomek) IsLocationBreached(loc int) bool { return false }

func (p *Protomek) IsLocationDestroyed(loc int) bool {
	if !p.validLoc(loc) {
		return false
	}
	return p.destroyed[loc] || (p.oInternal[loc] > 0 && p.internal[loc] == 0)
}

func (p *Protomek) SetLocationBreached(loc int, breached bool) {}

func (p *Protomek) SetLocationDestroyed(loc int, destroyed bool) {
	if p.validLoc(loc) {
		p.destroyed[loc] = destroyed
	}
}

func (p *Protomek) Internal(loc int) int {
	if !p.validLoc(loc) {
		return 0
	}
	return p.internal[loc]
}

func (p *Protomek) OInternal(loc int) int {
	if !p.validLoc(loc) {
		return 0
	}
	return p.oInternal[loc]
}

func (p *Protomek) SetInternal(loc, value int) {
	if p.validLoc(loc) {
		p.internal[loc] = clamp(value, 0, p.oInternal[loc])
	}
}

func (p *Protomek) HasRearArmor(loc int) bool { return false }

func (p *Protomek) Armor(loc int, rear bool) int {
	if !p.validLoc(loc) || rear {
		return 0
	}
	return p.armor[loc]
}

func (p *Protomek) OArmor(loc int, rear bool) int {
	if !p.validLoc(loc) || rear {
		return 0
	}
	return p.oArmor[loc]
}

func (p *Protomek) SetArmor(loc int, rear bool, value int) {
	if p.validLoc(loc) && !rear {
		p.armor[loc] = clamp(value, 0, p.oArmor[loc])
	}
}

func (p *Protomek) matching(sys System, loc int) []*critState {
	if loc != LocationNone {
		if c, ok := p.crits[critKey{sys, loc}]; ok {
			return []*critState{c}
		}
		return nil
	}
	var out []*critState
	for l := 0; l < ProtoNumLocations; l++ {
		if c, ok := p.crits[critKey{sys, l}]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (p *Protomek) SystemSlots(sys System, loc int) int {
	total := 0
	for _, c := range p.matching(sys, loc) {
		total += c.slots
	}
	return total
}

func (p *Protomek) SystemHits(sys System, loc int) int {
	total := 0
	for _, c := range p.matching(sys, loc) {
		total += c.hits
	}
	return total
}

func (p *Protomek) SetSystemHits(sys System, loc, hits int) {
	remaining := hits
	for _, c := range p.matching(sys, loc) {
		n := clamp(remaining, 0, c.slots)
		c.hits = n
		remaining -= n
	}
}

func (p *Protomek) IsSystemMissing(sys System, loc int) bool {
	states := p.matching(sys, loc)
	if len(states) == 0 {
		return false
	}
	for _, c := range states {
		if !c.missing {
			return false
		}
	}
	return true
}

func (p *Protomek) SetSystemMissing(sys System, loc int, missing bool) {
	for _, c := range p.matching(sys, loc) {
		c.missing = missing
	}
}
