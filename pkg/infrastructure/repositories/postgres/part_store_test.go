package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/simulation"
)

// openStore connects to MEKPARTS_TEST_PG_DSN; the table is dropped and
// recreated so each test starts from an empty snapshot
func openStore(t *testing.T) *PartStore {
	t.Helper()
	dsn := os.Getenv("MEKPARTS_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("MEKPARTS_TEST_PG_DSN not set")
	}

	ctx := context.Background()
	store, err := New(ctx, dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.pool.Exec(ctx, `DROP TABLE IF EXISTS parts`)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestPartStore_RoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	unitID := uuid.New()

	gyro, err := entities.NewPart(entities.MekGyro, entities.Definition{Model: "Standard"})
	require.NoError(t, err)
	gyro.SetLocations(simulation.MekCenterTorso)
	gyro.SetUnitTonnage(65)

	armor, err := entities.NewPart(entities.Armor, entities.Definition{Subtype: "Ferro-Fibrous", Capacity: 20, Price: decimal.RequireFromString("12.5")})
	require.NoError(t, err)

	installed := entities.ToRecord(gyro)
	installed.UnitID = uuid.NullUUID{UUID: unitID, Valid: true}
	records := []entities.PartRecord{installed, entities.ToRecord(armor)}
	require.NoError(t, store.SaveRecords(ctx, records))

	loaded, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for i := range records {
		assert.True(t, records[i].Weight.Equal(loaded[i].Weight))
		assert.True(t, records[i].Price.Equal(loaded[i].Price))
		records[i].Weight, loaded[i].Weight = decimal.Zero, decimal.Zero
		records[i].Price, loaded[i].Price = decimal.Zero, decimal.Zero
	}
	assert.Equal(t, records, loaded)

	unitRecords, err := store.LoadUnitRecords(ctx, unitID)
	require.NoError(t, err)
	require.Len(t, unitRecords, 1)
	assert.Equal(t, gyro.ID, unitRecords[0].ID)

	require.NoError(t, store.SaveRecords(ctx, nil))
	loaded, err = store.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
