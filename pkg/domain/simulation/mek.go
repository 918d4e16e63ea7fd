package simulation

// Mek locations in record-sheet order
const (
	MekHead = iota
	MekCenterTorso
	MekRightTorso
	MekLeftTorso
	MekRightArm
	MekLeftArm
	MekRightLeg
	MekLeftLeg
	MekNumLocations
)

var mekLocationNames = [MekNumLocations]string{
	"Head", "Center Torso", "Right Torso", "Left Torso",
	"Right Arm", "Left Arm", "Right Leg", "Left Leg",
}

// MekLocationName returns the display name of a Mek location
func MekLocationName(loc int) string {
	if loc < 0 || loc >= MekNumLocations {
		return "Unknown Location"
	}
	return mekLocationNames[loc]
}

// MekTransferLocation returns the location damage transfers to, which is also
// the location that must be intact before loc can be replaced
func MekTransferLocation(loc int) int {
	switch loc {
	case MekRightArm, MekRightLeg:
		return MekRightTorso
	case MekLeftArm, MekLeftLeg:
		return MekLeftTorso
	case MekRightTorso, MekLeftTorso, MekHead:
		return MekCenterTorso
	default:
		return LocationNone
	}
}

// Standard internal structure by tonnage, record-sheet location order
var mekStructureTable = map[int][MekNumLocations]int{
	20:  {3, 6, 5, 5, 3, 3, 4, 4},
	25:  {3, 8, 6, 6, 4, 4, 6, 6},
	30:  {3, 10, 7, 7, 5, 5, 7, 7},
	35:  {3, 11, 8, 8, 6, 6, 8, 8},
	40:  {3, 12, 10, 10, 6, 6, 10, 10},
	45:  {3, 14, 11, 11, 7, 7, 11, 11},
	50:  {3, 16, 12, 12, 8, 8, 12, 12},
	55:  {3, 18, 13, 13, 9, 9, 13, 13},
	60:  {3, 20, 14, 14, 10, 10, 14, 14},
	65:  {3, 21, 15, 15, 10, 10, 15, 15},
	70:  {3, 22, 15, 15, 11, 11, 15, 15},
	75:  {3, 23, 16, 16, 12, 12, 16, 16},
	80:  {3, 25, 17, 17, 13, 13, 17, 17},
	85:  {3, 27, 18, 18, 14, 14, 18, 18},
	90:  {3, 29, 19, 19, 15, 15, 19, 19},
	95:  {3, 30, 20, 20, 16, 16, 20, 20},
	100: {3, 31, 21, 21, 17, 17, 21, 21},
}

// MekStructure returns standard internal structure for a tonnage, falling
// back to the nearest lighter table entry
func MekStructure(tonnage int) [MekNumLocations]int {
	if v, ok := mekStructureTable[tonnage]; ok {
		return v
	}
	best := 20
	for t := range mekStructureTable {
		if t <= tonnage && t > best {
			best = t
		}
	}
	return mekStructureTable[best]
}

// Engine slot layout per side torso by engine type
var sideTorsoEngineSlots = map[string][2]int{
	"Standard": {0, 0},
	"XL":       {3, 2},
	"Light":    {2, 2},
	"XXL":      {6, 4},
	"Compact":  {0, 0},
}

var gyroSlots = map[string]int{
	"Standard":   4,
	"XL":         6,
	"Compact":    2,
	"Heavy Duty": 4,
}

// MekConfig describes a Mek to build
type MekConfig struct {
	Name          string
	Tonnage       int
	Clan          bool
	EngineRating  int
	EngineType    string
	GyroType      string
	CockpitType   string
	StructureType string
	ArmorType     string
	TSM           bool
	// NoHands/NoLowerArms are indexed 0 right, 1 left
	NoHands     [2]bool
	NoLowerArms [2]bool
}

type critKey struct {
	sys System
	loc int
}

type critState struct {
	slots   int
	hits    int
	missing bool
}

// Mek is a simulated BattleMek
type Mek struct {
	equipmentList

	config MekConfig

	internal  [MekNumLocations]int
	oInternal [MekNumLocations]int
	armor     [MekNumLocations]int
	oArmor    [MekNumLocations]int
	rearArmor [MekNumLocations]int
	oRear     [MekNumLocations]int
	breached  [MekNumLocations]bool
	destroyed [MekNumLocations]bool

	crits map[critKey]*critState
}

// NewMek builds a Mek with full structure, maximum standard armor and the
// critical systems implied by its configuration
func NewMek(cfg MekConfig) *Mek {
	if cfg.EngineType == "" {
		cfg.EngineType = "Standard"
	}
	if cfg.GyroType == "" {
		cfg.GyroType = "Standard"
	}
	if cfg.CockpitType == "" {
		cfg.CockpitType = "Standard"
	}
	if cfg.StructureType == "" {
		cfg.StructureType = "Standard"
	}
	if cfg.ArmorType == "" {
		cfg.ArmorType = "Standard"
	}
	if cfg.EngineRating <= 0 {
		cfg.EngineRating = cfg.Tonnage * 4
	}

	m := &Mek{config: cfg, crits: make(map[critKey]*critState)}

	structure := MekStructure(cfg.Tonnage)
	for loc := 0; loc < MekNumLocations; loc++ {
		m.internal[loc] = structure[loc]
		m.oInternal[loc] = structure[loc]
		maxArmor := structure[loc] * 2
		if loc == MekHead {
			maxArmor = 9
		}
		if m.HasRearArmor(loc) {
			rear := maxArmor / 4
			m.rearArmor[loc], m.oRear[loc] = rear, rear
			maxArmor -= rear
		}
		m.armor[loc], m.oArmor[loc] = maxArmor, maxArmor
	}

	m.addSystem(SystemSensors, MekHead, 2)
	m.addSystem(SystemLifeSupport, MekHead, 2)
	m.addSystem(SystemCockpit, MekHead, 1)

	ctEngine := 6
	if cfg.EngineType == "Compact" {
		ctEngine = 3
	}
	m.addSystem(SystemEngine, MekCenterTorso, ctEngine)
	if side, ok := sideTorsoEngineSlots[cfg.EngineType]; ok {
		n := side[0]
		if cfg.Clan {
			n = side[1]
		}
		if n > 0 {
			m.addSystem(SystemEngine, MekRightTorso, n)
			m.addSystem(SystemEngine, MekLeftTorso, n)
		}
	}
	if slots, ok := gyroSlots[cfg.GyroType]; ok {
		m.addSystem(SystemGyro, MekCenterTorso, slots)
	} else {
		m.addSystem(SystemGyro, MekCenterTorso, 4)
	}

	for i, arm := range []int{MekRightArm, MekLeftArm} {
		m.addSystem(SystemShoulder, arm, 1)
		m.addSystem(SystemUpperArm, arm, 1)
		if !cfg.NoLowerArms[i] {
			m.addSystem(SystemLowerArm, arm, 1)
			if !cfg.NoHands[i] {
				m.addSystem(SystemHand, arm, 1)
			}
		}
	}
	for _, leg := range []int{MekRightLeg, MekLeftLeg} {
		m.addSystem(SystemHip, leg, 1)
		m.addSystem(SystemUpperLeg, leg, 1)
		m.addSystem(SystemLowerLeg, leg, 1)
		m.addSystem(SystemFoot, leg, 1)
	}
	return m
}

func (m *Mek) addSystem(sys System, loc, slots int) {
	m.crits[critKey{sys, loc}] = &critState{slots: slots}
}

// Config returns the configuration the Mek was built from
func (m *Mek) Config() MekConfig { return m.config }
func (m *Mek) Type() Type { return MekType }
func (m *Mek) Name() string { return m.config.Name }
func (m *Mek) Weight() int { return m.config.Tonnage }
func (m *Mek) IsClan() bool { return m.config.Clan }
func (m *Mek) NumLocations() int { return MekNumLocations }
func (m *Mek) ArmorType() string { return m.config.ArmorType }
func (m *Mek) LocationName(loc int) string { return MekLocationName(loc) }

func (m *Mek) validLoc(loc int) bool {
	return loc >= 0 && loc < MekNumLocations
}

// IsLocationBreached reports a hull breach in the location
func (m *Mek) IsLocationBreached(loc int) bool {
	return m.validLoc(loc) && m.breached[loc]
}

// IsLocationDestroyed reports a location blown off or with no structure left
func (m *Mek) IsLocationDestroyed(loc int) bool {
	if !m.validLoc(loc) {
		return false
	}
	return m.destroyed[loc] || (m.oInternal[loc] > 0 && m.internal[loc] == 0)
}

func (m *Mek) SetLocationBreached(loc int, breached bool) {
	if m.validLoc(loc) {
		m.breached[loc] = breached
	}
}

func (m *Mek) SetLocationDestroyed(loc int, destroyed bool) {
	if m.validLoc(loc) {
		m.destroyed[loc] = destroyed
	}
}

func (m *Mek) Internal(loc int) int {
	if !m.validLoc(loc) {
		return 0
	}
	return m.internal[loc]
}

func (m *Mek) OInternal(loc int) int {
	if !m.validLoc(loc) {
		return 0
	}
	return m.oInternal[loc]
}

func (m *Mek) SetInternal(loc, value int) {
	if m.validLoc(loc) {
		m.internal[loc] = clamp(value, 0, m.oInternal[loc])
	}
}

// HasRearArmor is true for the three torso locations
func (m *Mek) HasRearArmor(loc int) bool {
	return loc == MekCenterTorso || loc == MekRightTorso || loc == MekLeftTorso
}

func (m *Mek) Armor(loc int, rear bool) int {
	if !m.validLoc(loc) {
		return 0
	}
	if rear {
		return m.rearArmor[loc]
	}
	return m.armor[loc]
}

func (m *Mek) OArmor(loc int, rear bool) int {
	if !m.validLoc(loc) {
		return 0
	}
	if rear {
		return m.oRear[loc]
	}
	return m.oArmor[loc]
}

func (m *Mek) SetArmor(loc int, rear bool, value int) {
	if !m.validLoc(loc) {
		return
	}
	if rear {
		m.rearArmor[loc] = clamp(value, 0, m.oRear[loc])
		return
	}
	m.armor[loc] = clamp(value, 0, m.oArmor[loc])
}

func (m *Mek) matching(sys System, loc int) []*critState {
	if loc != LocationNone {
		if c, ok := m.crits[critKey{sys, loc}]; ok {
			return []*critState{c}
		}
		return nil
	}
	var out []*critState
	// deterministic order: center torso first, then the rest by location
	for _, l := range []int{MekCenterTorso, MekHead, MekRightTorso, MekLeftTorso, MekRightArm, MekLeftArm, MekRightLeg, MekLeftLeg} {
		if c, ok := m.crits[critKey{sys, l}]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (m *Mek) SystemSlots(sys System, loc int) int {
	total := 0
	for _, c := range m.matching(sys, loc) {
		total += c.slots
	}
	return total
}

func (m *Mek) SystemHits(sys System, loc int) int {
	total := 0
	for _, c := range m.matching(sys, loc) {
		total += c.hits
	}
	return total
}

// SetSystemHits sets the hit count; aggregate writes fill the center torso
// first and spill over into the remaining locations
func (m *Mek) SetSystemHits(sys System, loc, hits int) {
	remaining := hits
	for _, c := range m.matching(sys, loc) {
		n := clamp(remaining, 0, c.slots)
		c.hits = n
		remaining -= n
	}
}

func (m *Mek) IsSystemMissing(sys System, loc int) bool {
	states := m.matching(sys, loc)
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

func (m *Mek) SetSystemMissing(sys System, loc int, missing bool) {
	for _, c := range m.matching(sys, loc) {
		c.missing = missing
	}
}

// HasSystem reports whether the system occupies slots in the location
func (m *Mek) HasSystem(sys System, loc int) bool {
	return len(m.matching(sys, loc)) > 0
}
