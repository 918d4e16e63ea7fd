package simulation

import "testing"

func TestNewMek_StructureAndSystems(t *testing.T) {
	m := NewMek(MekConfig{Name: "Centurion CN9-A", Tonnage: 50, EngineRating: 200, EngineType: "XL"})

	if m.OInternal(MekCenterTorso) != 16 {
		t.Errorf("Expected center torso structure 16, got %d", m.OInternal(MekCenterTorso))
	}
	if m.SystemSlots(SystemEngine, LocationNone) != 12 {
		t.Errorf("Expected 12 engine slots for an IS XL engine, got %d", m.SystemSlots(SystemEngine, LocationNone))
	}
	if m.SystemSlots(SystemGyro, MekCenterTorso) != 4 {
		t.Errorf("Expected 4 gyro slots, got %d", m.SystemSlots(SystemGyro, MekCenterTorso))
	}
	if !m.HasSystem(SystemHand, MekLeftArm) {
		t.Error("Expected a left hand actuator")
	}
	if m.OArmor(MekCenterTorso, true) == 0 {
		t.Error("Expected rear armor on the center torso")
	}
}

func TestMek_NoLowerArm(t *testing.T) {
	m := NewMek(MekConfig{Tonnage: 75, NoLowerArms: [2]bool{true, false}})

	if m.HasSystem(SystemLowerArm, MekRightArm) || m.HasSystem(SystemHand, MekRightArm) {
		t.Error("Expected right arm without lower arm or hand actuators")
	}
	if !m.HasSystem(SystemLowerArm, MekLeftArm) {
		t.Error("Expected left lower arm actuator")
	}
}

func TestMek_AggregateSystemHitsSpillOver(t *testing.T) {
	m := NewMek(MekConfig{Tonnage: 50, EngineType: "XL"})

	m.SetSystemHits(SystemEngine, LocationNone, 8)

	if got := m.SystemHits(SystemEngine, MekCenterTorso); got != 6 {
		t.Errorf("Expected center torso to absorb 6 hits, got %d", got)
	}
	if got := m.SystemHits(SystemEngine, LocationNone); got != 8 {
		t.Errorf("Expected 8 total engine hits, got %d", got)
	}

	m.SetSystemHits(SystemEngine, LocationNone, 0)
	if got := m.SystemHits(SystemEngine, LocationNone); got != 0 {
		t.Errorf("Expected engine hits cleared, got %d", got)
	}
}

func TestMek_LocationDestroyed(t *testing.T) {
	m := NewMek(MekConfig{Tonnage: 50})

	if m.IsLocationDestroyed(MekLeftArm) {
		t.Fatal("Expected intact left arm")
	}
	m.SetInternal(MekLeftArm, 0)
	if !m.IsLocationDestroyed(MekLeftArm) {
		t.Error("Expected left arm with no structure to be destroyed")
	}
	m.SetInternal(MekLeftArm, 8)
	m.SetLocationDestroyed(MekLeftArm, true)
	if !m.IsLocationDestroyed(MekLeftArm) {
		t.Error("Expected blown off left arm to be destroyed")
	}
}

func TestApply_Targets(t *testing.T) {
	mek := NewMek(MekConfig{Tonnage: 50})
	laser := mek.AddEquipment(Mounted{Name: "Medium Laser", Type: EquipWeapon, Location: MekRightArm, Slots: 1})
	tank := NewTank(TankConfig{Tonnage: 40, Turret: true})
	aero := NewAero(AeroConfig{Tonnage: 50, HeatSinks: 10})

	tests := []struct {
		name   string
		entity Entity
		damage Damage
		check  func() bool
	}{
		{
			name:   "mek armor",
			entity: mek,
			damage: Damage{Target: TargetArmor, Location: MekLeftArm, Amount: 5},
			check:  func() bool { return mek.Armor(MekLeftArm, false) == mek.OArmor(MekLeftArm, false)-5 },
		},
		{
			name:   "mek actuator",
			entity: mek,
			damage: Damage{Target: TargetSystem, System: SystemShoulder, Location: MekLeftArm},
			check:  func() bool { return mek.SystemHits(SystemShoulder, MekLeftArm) == 1 },
		},
		{
			name:   "mek equipment",
			entity: mek,
			damage: Damage{Target: TargetEquipment, Equipment: laser.Num},
			check:  func() bool { return laser.IsDestroyed() },
		},
		{
			name:   "mek breach",
			entity: mek,
			damage: Damage{Target: TargetBreach, Location: MekRightLeg},
			check:  func() bool { return mek.IsLocationBreached(MekRightLeg) },
		},
		{
			name:   "tank motive",
			entity: tank,
			damage: Damage{Target: TargetMotive, Amount: 2},
			check:  func() bool { return tank.MotiveDamage() == 2 && tank.MotivePenalty() == 2 },
		},
		{
			name:   "tank stabiliser",
			entity: tank,
			damage: Damage{Target: TargetStabiliser, Location: TankTurret},
			check:  func() bool { return tank.IsStabiliserHit(TankTurret) },
		},
		{
			name:   "aero structural integrity",
			entity: aero,
			damage: Damage{Target: TargetSI, Amount: 2},
			check:  func() bool { return aero.SI() == aero.OSI()-2 },
		},
		{
			name:   "aero heat sinks",
			entity: aero,
			damage: Damage{Target: TargetHeatSink, Amount: 3},
			check:  func() bool { return aero.ActiveHeatSinks() == 7 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Apply(tt.entity, tt.damage); err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if !tt.check() {
				t.Errorf("Expected %s damage to be applied", tt.damage.Target)
			}
		})
	}
}

func TestApply_UnsupportedTarget(t *testing.T) {
	mek := NewMek(MekConfig{Tonnage: 50})

	if err := Apply(mek, Damage{Target: TargetMotive}); err == nil {
		t.Error("Expected motive damage on a Mek to fail")
	}
	if err := Apply(mek, Damage{Target: TargetEquipment, Equipment: 42}); err == nil {
		t.Error("Expected damage to a missing mount to fail")
	}
}

func TestParseNames(t *testing.T) {
	sys, err := ParseSystem("upper_arm")
	if err != nil || sys != SystemUpperArm {
		t.Errorf("Expected upper_arm to parse as %v, got %v (%v)", SystemUpperArm, sys, err)
	}
	target, err := ParseDamageTarget("heat_sink")
	if err != nil || target != TargetHeatSink {
		t.Errorf("Expected heat_sink to parse, got %v (%v)", target, err)
	}
	if _, err := ParseType("Battle Armor"); err == nil {
		t.Error("Expected unknown entity type to fail")
	}
}
