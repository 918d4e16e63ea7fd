package maintenance

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/repositories"
	"github.com/vsinha/mekparts/pkg/domain/services"
	"github.com/vsinha/mekparts/pkg/domain/simulation"
	"github.com/vsinha/mekparts/pkg/infrastructure/config"
	"github.com/vsinha/mekparts/pkg/infrastructure/events"
	"github.com/vsinha/mekparts/pkg/infrastructure/logging"
	"github.com/vsinha/mekparts/pkg/infrastructure/metrics"
)

var (
	ErrAlreadyMissing = errors.New("part is already missing")
	// ErrStaleRead is returned when a part is read back from the entity
	// after a maintenance write and before the next damage tick
	ErrStaleRead = errors.New("part was written since the last damage tick")
)

// Status is the result of a single maintenance action
type Status int

const (
	Unchanged Status = iota
	Repaired
	Partial
	Replaced
	Removed
	Destroyed
	Damaged
	Blocked
)

// String method for Status enum
func (s Status) String() string {
	switch s {
	case Unchanged:
		return "unchanged"
	case Repaired:
		return "repaired"
	case Partial:
		return "partial"
	case Replaced:
		return "replaced"
	case Removed:
		return "removed"
	case Destroyed:
		return "destroyed"
	case Damaged:
		return "damaged"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Progressed reports whether the action changed the unit
func (s Status) Progressed() bool {
	switch s {
	case Repaired, Partial, Replaced, Removed, Destroyed:
		return true
	default:
		return false
	}
}

// Outcome describes what a maintenance action did. Part is the record that
// occupies the slot afterwards.
type Outcome struct {
	Status Status
	Part   *entities.Part
	Reason string
}

// Config holds the collaborators and campaign options of the service
type Config struct {
	Campaign          string
	DestroyPartTarget int
	Logger            *zap.Logger
	Events            events.EventStore
	Metrics           *metrics.MaintenanceMetrics
}

// Service runs the maintenance lifecycle: reading damage from the entity,
// repairing, removing for salvage or scrap, and replacing missing parts
// from the warehouse
type Service struct {
	config    Config
	warehouse repositories.Warehouse
	roller    services.Roller
	sync      *services.EntitySync
	lifecycle *services.Lifecycle
	logger    *zap.Logger

	// written holds the records pushed to their entity since the last
	// damage tick
	written map[uuid.UUID]struct{}
}

// NewService creates a maintenance service with default configuration
func NewService(warehouse repositories.Warehouse, roller services.Roller) *Service {
	return NewServiceWithConfig(warehouse, roller, Config{
		Campaign:          "default",
		DestroyPartTarget: config.DefaultDestroyPartTarget,
	})
}

// NewServiceWithConfig creates a maintenance service with custom configuration
func NewServiceWithConfig(warehouse repositories.Warehouse, roller services.Roller, cfg Config) *Service {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Events == nil {
		cfg.Events = events.NewInMemoryEventStore(cfg.Logger)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewMaintenanceMetrics(cfg.Campaign)
	}
	if cfg.DestroyPartTarget == 0 {
		cfg.DestroyPartTarget = config.DefaultDestroyPartTarget
	}
	if roller == nil {
		roller = services.NewRandomRoller(0)
	}
	return &Service{
		config:    cfg,
		warehouse: warehouse,
		roller:    roller,
		sync:      services.NewEntitySync(),
		lifecycle: services.NewLifecycle(),
		logger:    cfg.Logger,
		written:   make(map[uuid.UUID]struct{}),
	}
}

// Events returns the store the service publishes to
func (s *Service) Events() events.EventStore {
	return s.config.Events
}

// Warehouse returns the spare pool the service draws from
func (s *Service) Warehouse() repositories.Warehouse {
	return s.warehouse
}

// DamageTick marks the start of a new combat round. Records written since
// the previous tick may be read from their entity again afterwards.
func (s *Service) DamageTick() {
	clear(s.written)
}

// UpdateConditionFromPart writes the record's condition to its entity
func (s *Service) UpdateConditionFromPart(p *entities.Part) error {
	if err := s.sync.Push(p); err != nil {
		return err
	}
	s.written[p.ID] = struct{}{}
	return nil
}

// Install puts a new record on the unit and writes it to the entity
func (s *Service) Install(unit *entities.Unit, p *entities.Part) error {
	if err := unit.AddPart(p); err != nil {
		return err
	}
	if err := s.UpdateConditionFromPart(p); err != nil {
		unit.RemovePart(p)
		return fmt.Errorf("failed to install %s: %w", p.Name(), err)
	}
	s.publish(unit.ID.String(), events.PartInstalledEvent, events.PartInstalled{
		UnitID: unit.ID, PartID: p.ID, Name: p.Name(),
	})
	return nil
}

// InitializeUnit builds the full part set for a unit's entity and installs it
func (s *Service) InitializeUnit(unit *entities.Unit) error {
	if len(unit.Parts()) > 0 {
		return fmt.Errorf("unit %s already has parts", unit.Name)
	}
	parts, err := services.BuildParts(unit.Entity())
	if err != nil {
		return err
	}
	for _, p := range parts {
		if err := unit.AddPart(p); err != nil {
			return err
		}
		s.publish(unit.ID.String(), events.PartInstalledEvent, events.PartInstalled{
			UnitID: unit.ID, PartID: p.ID, Name: p.Name(),
		})
	}
	s.logger.Info("unit initialized",
		zap.String("unit", unit.Name),
		zap.Int("parts", len(parts)))
	return nil
}

// CheckFixable returns the reason the part's next task cannot be done now,
// or "" when it can
func (s *Service) CheckFixable(p *entities.Part) string {
	return services.CheckFixable(p)
}

func (s *Service) publish(stream, eventType string, data any) {
	if err := s.config.Events.AppendEvent(stream, events.NewEvent(eventType, stream, data)); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}

func (s *Service) fields(p *entities.Part) []zap.Field {
	unit := ""
	if u := p.Unit(); u != nil {
		unit = u.Name
	}
	return logging.PartFields(unit, p.Name(), p.Kind.String(), p.MainLocation())
}

func (s *Service) updateSpareGauge() {
	s.config.Metrics.SetWarehouseSpares(len(s.warehouse.Parts()))
}

func streamOf(p *entities.Part) string {
	if id := p.UnitID(); id.Valid {
		return id.UUID.String()
	}
	return events.WarehouseStream
}

func locationName(p *entities.Part) string {
	e := p.Entity()
	if e == nil || p.MainLocation() == simulation.LocationNone {
		return ""
	}
	return e.LocationName(p.MainLocation())
}
