package maintenance

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/services"
	"github.com/vsinha/mekparts/pkg/domain/simulation"
	"github.com/vsinha/mekparts/pkg/infrastructure/events"
	"github.com/vsinha/mekparts/pkg/infrastructure/repositories/memory"
)

type fixture struct {
	svc       *Service
	warehouse *memory.Warehouse
	store     *events.InMemoryEventStore
	unit      *entities.Unit
	mek       *simulation.Mek
}

func newFixture(t *testing.T, tonnage int, rolls ...int) *fixture {
	t.Helper()
	warehouse := memory.NewWarehouse()
	store := events.NewInMemoryEventStore(zap.NewNop())
	svc := NewServiceWithConfig(warehouse, services.NewFixedRoller(rolls...), Config{
		Campaign: "test",
		Events:   store,
	})

	mek := simulation.NewMek(simulation.MekConfig{Name: "Test Mek", Tonnage: tonnage})
	unit, err := entities.NewUnit(uuid.New(), "Test Mek", mek)
	require.NoError(t, err)
	require.NoError(t, svc.InitializeUnit(unit))

	return &fixture{svc: svc, warehouse: warehouse, store: store, unit: unit, mek: mek}
}

func (f *fixture) actuator(t *testing.T, loc int, joint string) *entities.Part {
	t.Helper()
	for _, p := range f.unit.Parts() {
		if p.Kind == entities.MekActuator && p.MainLocation() == loc && p.Subtype == joint {
			return p
		}
	}
	t.Fatalf("no %s actuator at location %d", joint, loc)
	return nil
}

func (f *fixture) part(t *testing.T, kind entities.Kind, loc int) *entities.Part {
	t.Helper()
	p, ok := f.unit.FindPart(kind, loc)
	require.True(t, ok, "no %s at location %d", kind, loc)
	return p
}

// eventTypes returns the event types appended since position
func (f *fixture) eventTypes(t *testing.T, position int) []string {
	t.Helper()
	all, err := f.store.ReadAllEvents(position)
	require.NoError(t, err)
	types := make([]string, 0, len(all))
	for _, e := range all {
		types = append(types, e.Type())
	}
	return types
}

func spareActuator(t *testing.T, joint string, tonnage int) *entities.Part {
	t.Helper()
	p, err := entities.NewPart(entities.MekActuator, entities.Definition{Subtype: joint})
	require.NoError(t, err)
	p.SetUnitTonnage(tonnage)
	return p
}

func TestService_SalvageThenFixRestoresSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 12)
	shoulder := f.actuator(t, simulation.MekRightArm, "Shoulder")
	template := spareActuator(t, "Shoulder", 50)
	before := f.warehouse.Count(template)

	require.NoError(t, simulation.Apply(f.mek, simulation.Damage{
		Target: simulation.TargetSystem, Location: simulation.MekRightArm, System: simulation.SystemShoulder,
	}))
	outcome, err := f.svc.UpdateConditionFromEntity(ctx, shoulder, false)
	require.NoError(t, err)
	assert.Equal(t, Damaged, outcome.Status)
	assert.Equal(t, 1, shoulder.Hits())

	position := f.store.Position()
	removed, err := f.svc.Remove(ctx, shoulder, true)
	require.NoError(t, err)
	require.Equal(t, Removed, removed.Status)

	missing := removed.Part
	assert.True(t, missing.IsMissing())
	assert.Same(t, f.unit, missing.Unit())
	assert.Nil(t, shoulder.Unit(), "the removed record leaves the unit")
	assert.Equal(t, simulation.MekRightArm, missing.MainLocation())
	assert.True(t, f.mek.IsSystemMissing(simulation.SystemShoulder, simulation.MekRightArm))
	assert.Equal(t, before+1, f.warehouse.Count(template), "an undamaged shoulder joins the spare pool")

	fixed, err := f.svc.Fix(ctx, missing)
	require.NoError(t, err)
	require.Equal(t, Replaced, fixed.Status)

	replacement := fixed.Part
	assert.True(t, replacement.IsPresent())
	assert.Equal(t, 0, replacement.Hits())
	assert.Equal(t, simulation.MekRightArm, replacement.MainLocation())
	assert.True(t, entities.IsSamePartType(shoulder, replacement))
	assert.Equal(t, before, f.warehouse.Count(template))
	assert.False(t, f.mek.IsSystemMissing(simulation.SystemShoulder, simulation.MekRightArm))
	assert.Equal(t, 0, f.mek.SystemHits(simulation.SystemShoulder, simulation.MekRightArm))

	got, ok := f.unit.Part(replacement.ID)
	require.True(t, ok)
	assert.Same(t, replacement, got)

	assert.Equal(t, []string{
		events.SpareDepositedEvent,
		events.PartSalvagedEvent,
		events.SpareConsumedEvent,
		events.PartReplacedEvent,
	}, f.eventTypes(t, position))
}

func TestService_SalvageThenFixMatchesLaserPrice(t *testing.T) {
	ctx := context.Background()
	warehouse := memory.NewWarehouse()
	svc := NewServiceWithConfig(warehouse, services.NewFixedRoller(12), Config{Campaign: "test"})

	full, err := entities.NewPart(entities.Equipment, entities.Definition{
		Model:  "Medium Laser",
		Slots:  1,
		Weight: decimal.NewFromFloat(1),
		Price:  decimal.NewFromInt(40000),
	})
	require.NoError(t, err)
	full.SetQuantity(2)
	stack, err := warehouse.AddPart(full)
	require.NoError(t, err)

	mek := simulation.NewMek(simulation.MekConfig{Name: "Test Mek", Tonnage: 50})
	mek.AddEquipment(simulation.Mounted{
		Name: "Medium Laser", Type: simulation.EquipWeapon, Location: simulation.MekRightArm,
		Slots: 1, Weight: 1, Cost: 30000,
	})
	unit, err := entities.NewUnit(uuid.New(), "Test Mek", mek)
	require.NoError(t, err)
	require.NoError(t, svc.InitializeUnit(unit))
	laser, ok := unit.FindPart(entities.Equipment, simulation.MekRightArm)
	require.True(t, ok)

	removed, err := svc.Remove(ctx, laser, true)
	require.NoError(t, err)
	require.Equal(t, Removed, removed.Status)
	assert.Len(t, warehouse.Parts(), 2, "the salvaged laser does not join the 40000 stack")
	assert.Equal(t, 2, stack.Quantity())

	outcome, err := svc.Fix(ctx, removed.Part)
	require.NoError(t, err)
	require.Equal(t, Replaced, outcome.Status)
	assert.True(t, outcome.Part.Price.Equal(decimal.NewFromInt(30000)), "got %s", outcome.Part.Price)
	assert.Equal(t, 2, stack.Quantity(), "the 40000 stack is untouched")
	assert.Len(t, warehouse.Parts(), 1)
	assert.False(t, mek.Equipment()[0].Missing)
}

func TestService_DestructionRollRemovesPart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 2)
	shoulder := f.actuator(t, simulation.MekRightArm, "Shoulder")

	require.NoError(t, simulation.Apply(f.mek, simulation.Damage{
		Target: simulation.TargetSystem, Location: simulation.MekRightArm, System: simulation.SystemShoulder,
	}))
	position := f.store.Position()
	outcome, err := f.svc.UpdateConditionFromEntity(ctx, shoulder, true)
	require.NoError(t, err)

	assert.Equal(t, Destroyed, outcome.Status)
	assert.True(t, outcome.Part.IsMissing())
	assert.Equal(t, simulation.MekRightArm, outcome.Part.MainLocation())
	assert.Empty(t, f.warehouse.Parts(), "a destroyed part never reaches the warehouse")
	assert.True(t, f.mek.IsSystemMissing(simulation.SystemShoulder, simulation.MekRightArm))
	assert.Equal(t, []string{events.PartDamagedEvent, events.PartDestroyedEvent}, f.eventTypes(t, position))

	all, _ := f.store.ReadAllEvents(position + 1)
	destroyed := all[0].Data().(events.PartDestroyed)
	assert.Equal(t, 2, destroyed.Roll)
	assert.Equal(t, 10, destroyed.Target)
}

func TestService_DestructionRollSurvives(t *testing.T) {
	tests := []struct {
		name     string
		roll     int
		check    bool
		expected Status
	}{
		{name: "roll at target", roll: 10, check: true, expected: Damaged},
		{name: "roll below target without check", roll: 2, check: false, expected: Damaged},
		{name: "roll below target", roll: 9, check: true, expected: Destroyed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 50, tt.roll)
			hip := f.actuator(t, simulation.MekLeftLeg, "Hip")
			require.NoError(t, simulation.Apply(f.mek, simulation.Damage{
				Target: simulation.TargetSystem, Location: simulation.MekLeftLeg, System: simulation.SystemHip,
			}))

			outcome, err := f.svc.UpdateConditionFromEntity(context.Background(), hip, tt.check)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, outcome.Status)
		})
	}
}

func TestService_NoDestructionRollWithoutNewHits(t *testing.T) {
	f := newFixture(t, 50, 2)
	hip := f.actuator(t, simulation.MekLeftLeg, "Hip")

	outcome, err := f.svc.UpdateConditionFromEntity(context.Background(), hip, true)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, outcome.Status)
	assert.True(t, hip.IsPresent())
}

func TestService_ReplaceBlockedLeavesWarehouseUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 12)
	hand := spareActuator(t, "Hand", 50)
	_, err := f.warehouse.AddPart(hand)
	require.NoError(t, err)

	removed, err := f.svc.Remove(ctx, f.actuator(t, simulation.MekLeftArm, "Shoulder"), false)
	require.NoError(t, err)
	assert.Len(t, f.warehouse.Parts(), 1, "scrapping deposits nothing")

	outcome, err := f.svc.Fix(ctx, removed.Part)
	require.NoError(t, err)
	assert.Equal(t, Blocked, outcome.Status)
	assert.NotEmpty(t, outcome.Reason)
	assert.Same(t, removed.Part, outcome.Part)
	assert.Equal(t, 1, f.warehouse.Count(hand))
}

func TestService_RefitNeedsUndamagedSpare(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 12)
	damaged := spareActuator(t, "Foot", 50)
	damaged.SetHits(1)
	_, err := f.warehouse.AddPart(damaged)
	require.NoError(t, err)

	removed, err := f.svc.Remove(ctx, f.actuator(t, simulation.MekRightLeg, "Foot"), false)
	require.NoError(t, err)

	outcome, err := f.svc.Replace(ctx, removed.Part, true)
	require.NoError(t, err)
	assert.Equal(t, Blocked, outcome.Status)

	outcome, err = f.svc.Replace(ctx, removed.Part, false)
	require.NoError(t, err)
	require.Equal(t, Replaced, outcome.Status)
	assert.Equal(t, 1, outcome.Part.Hits(), "a damaged spare goes in damaged")
	assert.Equal(t, 1, f.mek.SystemHits(simulation.SystemFoot, simulation.MekRightLeg))
}

func TestService_RemoveErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 12)

	_, err := f.svc.Remove(ctx, spareActuator(t, "Hand", 50), true)
	assert.ErrorIs(t, err, entities.ErrNotInstalled)

	removed, err := f.svc.Remove(ctx, f.actuator(t, simulation.MekRightArm, "Hand"), false)
	require.NoError(t, err)
	_, err = f.svc.Remove(ctx, removed.Part, false)
	assert.ErrorIs(t, err, ErrAlreadyMissing)

	_, err = f.svc.Replace(ctx, f.actuator(t, simulation.MekLeftArm, "Hand"), false)
	assert.ErrorIs(t, err, entities.ErrNotMissing)

	tank := simulation.NewTank(simulation.TankConfig{Name: "Scorpion", Tonnage: 25})
	unit, err := entities.NewUnit(uuid.New(), "Scorpion", tank)
	require.NoError(t, err)
	require.NoError(t, f.svc.InitializeUnit(unit))
	motive, ok := unit.FindPart(entities.MotiveSystem, simulation.LocationNone)
	require.True(t, ok)

	_, err = f.svc.Remove(ctx, motive, true)
	assert.ErrorIs(t, err, entities.ErrNeverScrap)
	assert.Same(t, unit, motive.Unit())

	ct := f.part(t, entities.MekLocation, simulation.MekCenterTorso)
	_, err = f.svc.Remove(ctx, ct, true)
	assert.ErrorIs(t, err, entities.ErrNeverScrap)
	assert.True(t, ct.IsPresent())
}

func TestService_StaleReadAfterWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 12)
	hand := f.actuator(t, simulation.MekLeftArm, "Hand")
	require.NoError(t, simulation.Apply(f.mek, simulation.Damage{
		Target: simulation.TargetSystem, Location: simulation.MekLeftArm, System: simulation.SystemHand,
	}))
	_, err := f.svc.UpdateConditionFromEntity(ctx, hand, false)
	require.NoError(t, err)

	outcome, err := f.svc.Fix(ctx, hand)
	require.NoError(t, err)
	require.Equal(t, Repaired, outcome.Status)

	_, err = f.svc.UpdateConditionFromEntity(ctx, hand, false)
	assert.True(t, errors.Is(err, ErrStaleRead))

	f.svc.DamageTick()
	outcome, err = f.svc.UpdateConditionFromEntity(ctx, hand, false)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, outcome.Status)
	assert.Equal(t, 0, hand.Hits())
}

func TestService_BreachSealedBeforeStructure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 12)
	arm := f.part(t, entities.MekLocation, simulation.MekLeftArm)

	require.NoError(t, simulation.Apply(f.mek, simulation.Damage{Target: simulation.TargetBreach, Location: simulation.MekLeftArm}))
	require.NoError(t, simulation.Apply(f.mek, simulation.Damage{Target: simulation.TargetStructure, Location: simulation.MekLeftArm, Amount: 3}))
	_, err := f.svc.UpdateConditionFromEntity(ctx, arm, false)
	require.NoError(t, err)
	require.True(t, arm.Breached)
	require.Equal(t, 3, arm.Hits())

	hand := f.actuator(t, simulation.MekLeftArm, "Hand")
	assert.NotEmpty(t, f.svc.CheckFixable(hand), "nothing in a breached location can be worked on")

	outcome, err := f.svc.Fix(ctx, arm)
	require.NoError(t, err)
	assert.Equal(t, Partial, outcome.Status)
	assert.False(t, arm.Breached)
	assert.Equal(t, 3, arm.Hits())
	assert.False(t, f.mek.IsLocationBreached(simulation.MekLeftArm))
	assert.Empty(t, f.svc.CheckFixable(hand))

	outcome, err = f.svc.Fix(ctx, arm)
	require.NoError(t, err)
	assert.Equal(t, Repaired, outcome.Status)
	assert.Equal(t, 0, arm.Hits())
	assert.Equal(t, f.mek.OInternal(simulation.MekLeftArm), f.mek.Internal(simulation.MekLeftArm))
}

func TestService_ArmorRepairDrawsWarehousePoints(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 12)
	armor := f.part(t, entities.Armor, simulation.MekLeftLeg)
	full := f.mek.OArmor(simulation.MekLeftLeg, false)
	require.GreaterOrEqual(t, full, 10)

	require.NoError(t, simulation.Apply(f.mek, simulation.Damage{Target: simulation.TargetArmor, Location: simulation.MekLeftLeg, Amount: 10}))
	_, err := f.svc.UpdateConditionFromEntity(ctx, armor, false)
	require.NoError(t, err)
	require.Equal(t, 10, armor.Hits())

	outcome, err := f.svc.Fix(ctx, armor)
	require.NoError(t, err)
	assert.Equal(t, Blocked, outcome.Status, "no armor points in the warehouse")

	stock, err := entities.NewPart(entities.Armor, entities.Definition{Subtype: "Standard"})
	require.NoError(t, err)
	stock.SetQuantity(6)
	_, err = f.warehouse.AddPart(stock)
	require.NoError(t, err)

	outcome, err = f.svc.Fix(ctx, armor)
	require.NoError(t, err)
	assert.Equal(t, Partial, outcome.Status)
	assert.Equal(t, 4, armor.Hits())
	assert.Equal(t, full-4, f.mek.Armor(simulation.MekLeftLeg, false))
	assert.Empty(t, f.warehouse.Parts())
}

func TestService_ArmorSalvageDepositsPoints(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 12)
	f.unit.SetSalvage(true)
	armor := f.part(t, entities.Armor, simulation.MekRightLeg)
	points := armor.ArmorPoints()
	require.Positive(t, points)

	outcome, err := f.svc.Fix(ctx, armor)
	require.NoError(t, err)
	assert.Equal(t, Removed, outcome.Status)
	assert.Same(t, armor, outcome.Part, "armor keeps its record when stripped")
	assert.Equal(t, 0, armor.ArmorPoints())
	assert.Equal(t, 0, f.mek.Armor(simulation.MekRightLeg, false))
	assert.Equal(t, points, f.warehouse.Count(armor))
}

func TestService_AmmoReload(t *testing.T) {
	ctx := context.Background()
	warehouse := memory.NewWarehouse()
	svc := NewService(warehouse, services.NewFixedRoller())

	mek := simulation.NewMek(simulation.MekConfig{Name: "Hunchback", Tonnage: 50})
	bin := mek.AddEquipment(simulation.Mounted{Name: "AC/20 Ammo", Type: simulation.EquipAmmo, Location: simulation.MekLeftTorso, AmmoType: "AC/20", Capacity: 5})
	rocketPack := mek.AddEquipment(simulation.Mounted{Name: "Rocket Pack", Type: simulation.EquipAmmo, Location: simulation.MekRightTorso, AmmoType: "RL-10", Capacity: 10, OneShot: true})
	unit, err := entities.NewUnit(uuid.New(), "Hunchback HBK-4G", mek)
	require.NoError(t, err)
	require.NoError(t, svc.InitializeUnit(unit))

	for _, m := range []*simulation.Mounted{bin, rocketPack} {
		require.NoError(t, simulation.Apply(mek, simulation.Damage{Target: simulation.TargetAmmoUsed, Equipment: m.Num, Amount: 3}))
	}
	var ammo, oneShot *entities.Part
	for _, p := range unit.Parts() {
		if p.Kind != entities.AmmoBin {
			continue
		}
		_, err := svc.UpdateConditionFromEntity(ctx, p, false)
		require.NoError(t, err)
		if p.IsOneShot() {
			oneShot = p
		} else {
			ammo = p
		}
	}
	require.NotNil(t, ammo)
	require.NotNil(t, oneShot)
	require.Equal(t, 3, ammo.ShotsNeeded)

	outcome, err := svc.Fix(ctx, ammo)
	require.NoError(t, err)
	assert.Equal(t, Repaired, outcome.Status)
	assert.Equal(t, 5, bin.ShotsLeft)

	outcome, err = svc.Fix(ctx, oneShot)
	require.NoError(t, err)
	assert.Equal(t, Blocked, outcome.Status)
	assert.Equal(t, 7, rocketPack.ShotsLeft)
}

func TestService_RunRepairsUnit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 12)

	damage := []simulation.Damage{
		{Target: simulation.TargetSystem, Location: simulation.MekRightArm, System: simulation.SystemLowerArm},
		{Target: simulation.TargetStructure, Location: simulation.MekRightLeg, Amount: 2},
		{Target: simulation.TargetSensors},
		{Target: simulation.TargetEngine},
	}
	for _, d := range damage {
		require.NoError(t, simulation.Apply(f.mek, d))
	}
	for _, p := range f.unit.Parts() {
		_, err := f.svc.UpdateConditionFromEntity(ctx, p, false)
		require.NoError(t, err)
	}
	require.Len(t, f.svc.Tasks(f.unit), 4)

	report, err := f.svc.Run(ctx, f.unit)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Repaired)
	assert.Equal(t, 0, report.Blocked)
	assert.Empty(t, report.Remaining)
	assert.Equal(t, 1, report.Passes)
	for _, p := range f.unit.Parts() {
		assert.False(t, p.NeedsFixing(), "%s still needs work", p.Describe())
	}
}

func TestService_RunSalvageStripsAllButCenterTorso(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 12)
	f.unit.SetSalvage(true)

	report, err := f.svc.Run(ctx, f.unit)
	require.NoError(t, err)
	assert.True(t, report.Salvage)
	assert.Equal(t, 1, report.Blocked)
	require.Len(t, report.Remaining, 1)
	assert.Equal(t, "Cannot salvage the center torso.", report.Remaining[0].Blocked)

	for _, p := range f.unit.Parts() {
		switch {
		case p.Kind == entities.MekLocation && p.MainLocation() == simulation.MekCenterTorso:
			assert.True(t, p.IsPresent())
		case p.Kind == entities.Armor:
			assert.Equal(t, 0, p.ArmorPoints())
		default:
			assert.True(t, p.IsMissing(), "%s should have been salvaged", p.Describe())
		}
	}
	assert.NotEmpty(t, f.warehouse.Parts())
	assert.True(t, f.warehouse.TotalValue().IsPositive())

	listing := f.svc.WarehouseReport()
	assert.Len(t, listing.Lines, len(f.warehouse.Parts()))
	assert.True(t, listing.TotalValue.Equal(f.warehouse.TotalValue()))
}

func TestService_TasksDescribeNextStep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50, 12)
	assert.Empty(t, f.svc.Tasks(f.unit))

	removed, err := f.svc.Remove(ctx, f.actuator(t, simulation.MekLeftLeg, "Upper Leg"), false)
	require.NoError(t, err)

	tasks := f.svc.Tasks(f.unit)
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, removed.Part.ID, task.PartID)
	assert.Equal(t, entities.Absent.String(), task.Variant)
	assert.Equal(t, removed.Part.BaseTime(), task.BaseTime)
	assert.Equal(t, "Left Leg", task.Location)
	assert.False(t, task.Salvage)
	assert.Empty(t, task.Blocked)
}
