package events

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	types []string
	seen  []Event
	err   error
}

func (r *recorder) Handle(event Event) error {
	r.seen = append(r.seen, event)
	return r.err
}

func (r *recorder) CanHandle(eventType string) bool {
	for _, t := range r.types {
		if t == eventType {
			return true
		}
	}
	return false
}

func TestInMemoryEventStore_VersionsPerStream(t *testing.T) {
	store := NewInMemoryEventStore(zap.NewNop())
	unit := uuid.New().String()

	require.NoError(t, store.AppendEvent(unit, NewEvent(PartDamagedEvent, unit, PartDamaged{NewHits: 1})))
	require.NoError(t, store.AppendEvent(unit, NewEvent(PartRepairedEvent, unit, PartRepaired{})))
	require.NoError(t, store.AppendEvent(WarehouseStream, NewEvent(SpareDepositedEvent, WarehouseStream, SpareMoved{Quantity: 1})))

	stream, err := store.ReadEvents(unit, 0)
	require.NoError(t, err)
	require.Len(t, stream, 2)
	assert.Equal(t, 1, stream[0].Version())
	assert.Equal(t, 2, stream[1].Version())

	tail, _ := store.ReadEvents(unit, 2)
	assert.Len(t, tail, 1)
	none, _ := store.ReadEvents("unknown", 1)
	assert.Empty(t, none)

	all, _ := store.ReadAllEvents(1)
	assert.Len(t, all, 2)
	assert.Equal(t, 3, store.Position())
}

func TestInMemoryEventStore_NotifiesSynchronously(t *testing.T) {
	store := NewInMemoryEventStore(nil)
	rec := &recorder{types: []string{PartScrappedEvent}}
	require.NoError(t, store.Subscribe([]string{PartScrappedEvent, PartSalvagedEvent}, rec))

	_ = store.AppendEvent("u", NewEvent(PartScrappedEvent, "u", PartRemoved{Name: "Hand Actuator"}))
	_ = store.AppendEvent("u", NewEvent(PartSalvagedEvent, "u", PartRemoved{}))
	_ = store.AppendEvent("u", NewEvent(PartRepairedEvent, "u", PartRepaired{}))

	require.Len(t, rec.seen, 1, "handler runs before AppendEvent returns and only for events it can handle")
	assert.Equal(t, "Hand Actuator", rec.seen[0].Data().(PartRemoved).Name)

	require.NoError(t, store.Unsubscribe(rec))
	_ = store.AppendEvent("u", NewEvent(PartScrappedEvent, "u", PartRemoved{}))
	assert.Len(t, rec.seen, 1)
}

func TestInMemoryEventStore_HandlerErrorDoesNotFailAppend(t *testing.T) {
	store := NewInMemoryEventStore(zap.NewNop())
	rec := &recorder{types: []string{RepairBlockedEvent}, err: errors.New("boom")}
	_ = store.Subscribe([]string{RepairBlockedEvent}, rec)

	assert.NoError(t, store.AppendEvent("u", NewEvent(RepairBlockedEvent, "u", RepairBlocked{Reason: "no spare"})))
	assert.Len(t, rec.seen, 1)
}
