package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/vsinha/mekparts/pkg/domain/entities"
)

// Part lifecycle states
const (
	StateFunctional = "functional"
	StateDamaged    = "damaged"
	StateMissing    = "missing"
)

// Part lifecycle events
const (
	EventDamage     = "damage"
	EventRepair     = "repair"
	EventRepairStep = "repair_step"
	EventRemove     = "remove"
	EventReplace    = "replace"
)

var lifecycleEvents = fsm.Events{
	{Name: EventDamage, Src: []string{StateFunctional, StateDamaged}, Dst: StateDamaged},
	{Name: EventRepair, Src: []string{StateDamaged}, Dst: StateFunctional},
	{Name: EventRepairStep, Src: []string{StateDamaged}, Dst: StateDamaged},
	{Name: EventRemove, Src: []string{StateFunctional, StateDamaged}, Dst: StateMissing},
	{Name: EventReplace, Src: []string{StateMissing}, Dst: StateFunctional},
}

// Transition records one lifecycle step
type Transition struct {
	Event string
	From  string
	To    string
}

// StateOf derives the lifecycle state of a part record
func StateOf(p *entities.Part) string {
	switch {
	case p.IsMissing():
		return StateMissing
	case p.NeedsFixing():
		return StateDamaged
	default:
		return StateFunctional
	}
}

// Lifecycle guards maintenance actions with the part state machine
type Lifecycle struct{}

// NewLifecycle creates a new lifecycle guard
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// Fire checks that the event is allowed from the part's current state and
// returns the resulting transition. Self-transitions are allowed.
func (l *Lifecycle) Fire(ctx context.Context, p *entities.Part, event string) (Transition, error) {
	from := StateOf(p)
	t := Transition{Event: event, From: from, To: from}

	machine := fsm.NewFSM(from, lifecycleEvents, fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			t.To = e.Dst
		},
	})

	err := machine.Event(ctx, event)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		return t, fmt.Errorf("%s cannot %s while %s: %w", p.Name(), event, from, err)
	}
	return t, nil
}
