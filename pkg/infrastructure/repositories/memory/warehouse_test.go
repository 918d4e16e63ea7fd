package memory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

func actuator(t *testing.T, joint string, tonnage int) *entities.Part {
	t.Helper()
	p, err := entities.NewPart(entities.MekActuator, entities.Definition{Subtype: joint})
	require.NoError(t, err)
	p.SetUnitTonnage(tonnage)
	return p
}

func missingActuator(t *testing.T, joint string, tonnage int) *entities.Part {
	t.Helper()
	p, err := entities.NewMissingPart(entities.MekActuator, entities.Definition{Subtype: joint})
	require.NoError(t, err)
	p.SetLocations(simulation.MekRightArm)
	p.SetUnitTonnage(tonnage)
	return p
}

func TestWarehouse_AddPartMergesStacks(t *testing.T) {
	w := NewWarehouse()

	first, err := w.AddPart(actuator(t, "Shoulder", 50))
	require.NoError(t, err)
	merged, err := w.AddPart(actuator(t, "Shoulder", 50))
	require.NoError(t, err)

	assert.Same(t, first, merged)
	assert.Equal(t, 2, first.Quantity())
	assert.Len(t, w.Parts(), 1)

	_, err = w.AddPart(actuator(t, "Shoulder", 55))
	require.NoError(t, err)
	damaged := actuator(t, "Shoulder", 50)
	damaged.SetHits(1)
	_, err = w.AddPart(damaged)
	require.NoError(t, err)

	assert.Len(t, w.Parts(), 3, "different tonnage and damaged spares keep their own records")
	assert.Equal(t, 2, w.Count(first))
}

func TestWarehouse_AddPartRejectsSlotRecords(t *testing.T) {
	w := NewWarehouse()

	_, err := w.AddPart(missingActuator(t, "Hand", 50))
	assert.Error(t, err)

	unit, err := entities.NewUnit(uuid.New(), "Test", simulation.NewMek(simulation.MekConfig{Tonnage: 50}))
	require.NoError(t, err)
	installed := actuator(t, "Hand", 50)
	require.NoError(t, unit.AddPart(installed))

	_, err = w.AddPart(installed)
	assert.Error(t, err)
	assert.Empty(t, w.Parts())
}

func TestWarehouse_NonFungibleDoesNotStack(t *testing.T) {
	w := NewWarehouse()
	def := entities.Definition{Subtype: "Mek", Model: "Standard", Rating: 200}

	for i := 0; i < 2; i++ {
		engine, err := entities.NewPart(entities.Engine, def)
		require.NoError(t, err)
		engine.SetUnitTonnage(50)
		_, err = w.AddPart(engine)
		require.NoError(t, err)
	}

	assert.Len(t, w.Parts(), 2)
	for _, p := range w.Parts() {
		assert.Equal(t, 1, p.Quantity())
	}
}

func TestWarehouse_TakeReplacement(t *testing.T) {
	w := NewWarehouse()
	missing := missingActuator(t, "Shoulder", 50)

	_, ok := w.TakeReplacement(missing, false)
	assert.False(t, ok, "empty warehouse has no replacement")

	_, _ = w.AddPart(actuator(t, "Hand", 50))
	_, ok = w.FindReplacement(missing, false)
	assert.False(t, ok, "wrong joint is not acceptable")

	stack, _ := w.AddPart(actuator(t, "Shoulder", 50))
	_, _ = w.AddPart(actuator(t, "Shoulder", 50))

	taken, ok := w.TakeReplacement(missing, false)
	require.True(t, ok)
	assert.NotEqual(t, stack.ID, taken.ID, "a split stack yields a fresh record")
	assert.Equal(t, 1, taken.Quantity())
	assert.Equal(t, 1, stack.Quantity())

	last, ok := w.TakeReplacement(missing, false)
	require.True(t, ok)
	assert.Equal(t, stack.ID, last.ID, "the last unit is the stored record itself")
	_, stored := w.Get(stack.ID)
	assert.False(t, stored)
}

func TestWarehouse_FindReplacementPrefersUndamaged(t *testing.T) {
	w := NewWarehouse()
	missing := missingActuator(t, "Hip", 50)

	damaged := actuator(t, "Hip", 50)
	damaged.SetHits(1)
	_, _ = w.AddPart(damaged)
	clean, _ := w.AddPart(actuator(t, "Hip", 50))

	best, ok := w.FindReplacement(missing, false)
	require.True(t, ok)
	assert.Equal(t, clean.ID, best.ID)

	require.NoError(t, w.RemovePart(clean))
	best, ok = w.FindReplacement(missing, false)
	require.True(t, ok)
	assert.Equal(t, damaged.ID, best.ID)

	_, ok = w.FindReplacement(missing, true)
	assert.False(t, ok, "refits need an undamaged spare")
	assert.Error(t, w.RemovePart(clean))
}

func TestWarehouse_TakeArmorPoints(t *testing.T) {
	w := NewWarehouse()
	armor, err := entities.NewPart(entities.Armor, entities.Definition{Subtype: "Standard"})
	require.NoError(t, err)
	armor.SetQuantity(10)
	_, err = w.AddPart(armor)
	require.NoError(t, err)

	assert.Equal(t, 4, w.Take(armor, 4))
	assert.Equal(t, 6, w.Count(armor))
	assert.Equal(t, 6, w.Take(armor, 20))
	assert.Empty(t, w.Parts())
}

func TestWarehouse_TotalValue(t *testing.T) {
	w := NewWarehouse()
	laser, err := entities.NewPart(entities.Equipment, entities.Definition{
		Model: "Medium Laser",
		Slots: 1,
		Price: decimal.NewFromInt(40000),
	})
	require.NoError(t, err)
	laser.SetQuantity(3)
	_, _ = w.AddPart(laser)

	assert.True(t, w.TotalValue().Equal(decimal.NewFromInt(120000)), "got %s", w.TotalValue())
}

func TestWarehouse_PriceVariantsStackApart(t *testing.T) {
	w := NewWarehouse()
	laser := func(price int64) *entities.Part {
		p, err := entities.NewPart(entities.Equipment, entities.Definition{
			Model:  "Medium Laser",
			Slots:  1,
			Weight: decimal.NewFromInt(1),
			Price:  decimal.NewFromInt(price),
		})
		require.NoError(t, err)
		return p
	}

	full, err := w.AddPart(laser(40000))
	require.NoError(t, err)
	cheap, err := w.AddPart(laser(30000))
	require.NoError(t, err)

	assert.NotEqual(t, full.ID, cheap.ID, "a cheaper laser keeps its own record")
	assert.Len(t, w.Parts(), 2)
	assert.Equal(t, 1, full.Quantity())
	assert.True(t, full.Price.Equal(decimal.NewFromInt(40000)))

	missing, err := entities.NewMissingPart(entities.Equipment, entities.Definition{
		Model:  "Medium Laser",
		Slots:  1,
		Weight: decimal.NewFromInt(1),
		Price:  decimal.NewFromInt(30000),
	})
	require.NoError(t, err)
	missing.SetLocations(simulation.MekRightArm)

	best, ok := w.FindReplacement(missing, false)
	require.True(t, ok, "the 30000 spare fills the 30000 slot")
	assert.Equal(t, cheap.ID, best.ID)

	taken, ok := w.TakeReplacement(missing, false)
	require.True(t, ok)
	assert.True(t, taken.Price.Equal(decimal.NewFromInt(30000)))
	_, ok = w.FindReplacement(missing, false)
	assert.False(t, ok, "the 40000 laser is not a match")
	assert.Equal(t, 1, full.Quantity())
}
