// Package postgres stores part records in a shared PostgreSQL database
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/repositories"
)

const schema = `CREATE TABLE IF NOT EXISTS parts (
	id UUID PRIMARY KEY,
	kind TEXT NOT NULL,
	variant TEXT NOT NULL,
	hits INTEGER NOT NULL DEFAULT 0,
	location INTEGER NOT NULL,
	secondary_locations INTEGER[] NOT NULL DEFAULT '{}',
	unit_id UUID,
	unit_tonnage INTEGER NOT NULL DEFAULT 0,
	quantity INTEGER NOT NULL DEFAULT 1,
	flags INTEGER NOT NULL DEFAULT 0,
	subtype TEXT NOT NULL DEFAULT '',
	model TEXT NOT NULL DEFAULT '',
	rating INTEGER NOT NULL DEFAULT 0,
	slots INTEGER NOT NULL DEFAULT 0,
	clan BOOLEAN NOT NULL DEFAULT FALSE,
	tsm BOOLEAN NOT NULL DEFAULT FALSE,
	rear BOOLEAN NOT NULL DEFAULT FALSE,
	equipment_num INTEGER NOT NULL DEFAULT 0,
	weight NUMERIC NOT NULL DEFAULT 0,
	price NUMERIC NOT NULL DEFAULT 0,
	capacity INTEGER NOT NULL DEFAULT 0,
	large_craft BOOLEAN NOT NULL DEFAULT FALSE,
	breached BOOLEAN NOT NULL DEFAULT FALSE,
	penalty INTEGER NOT NULL DEFAULT 0,
	shots_needed INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL
)`

const insertPart = `INSERT INTO parts (id, kind, variant, hits, location, secondary_locations,
	unit_id, unit_tonnage, quantity, flags, subtype, model, rating, slots, clan, tsm, rear,
	equipment_num, weight, price, capacity, large_craft, breached, penalty, shots_needed, position)
	VALUES ($1::uuid, $2, $3, $4, $5, $6, $7::uuid, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
	$18, $19::numeric, $20::numeric, $21, $22, $23, $24, $25, $26)`

const selectParts = `SELECT id::text, kind, variant, hits, location, secondary_locations,
	unit_id::text, unit_tonnage, quantity, flags, subtype, model, rating, slots, clan, tsm, rear,
	equipment_num, weight::text, price::text, capacity, large_craft, breached, penalty, shots_needed
	FROM parts`

// PartStore is a repositories.PartStore backed by a pgx connection pool
type PartStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

var _ repositories.PartStore = (*PartStore)(nil)

// New connects to the database named by dsn
func New(ctx context.Context, dsn string, logger *zap.Logger) (*PartStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &PartStore{pool: pool, logger: logger}, nil
}

func (s *PartStore) Migrate(ctx context.Context) error {
	for _, ddl := range []string{
		schema,
		`CREATE INDEX IF NOT EXISTS parts_unit_id ON parts (unit_id)`,
	} {
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("failed to migrate postgres: %w", err)
		}
	}
	return nil
}

func (s *PartStore) SaveRecords(ctx context.Context, records []entities.PartRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM parts`); err != nil {
		return fmt.Errorf("failed to clear parts: %w", err)
	}

	batch := &pgx.Batch{}
	for i, r := range records {
		var unitID *string
		if r.UnitID.Valid {
			id := r.UnitID.UUID.String()
			unitID = &id
		}
		secondary := r.SecondaryLocations
		if secondary == nil {
			secondary = []int{}
		}
		batch.Queue(insertPart,
			r.ID.String(), r.Kind, r.Variant, r.Hits, r.Location, secondary,
			unitID, r.UnitTonnage, r.Quantity, int(r.Flags), r.Subtype, r.Model, r.Rating, r.Slots,
			r.Clan, r.TSM, r.Rear, r.EquipmentNum, r.Weight.String(), r.Price.String(), r.Capacity,
			r.LargeCraft, r.Breached, r.Penalty, r.ShotsNeeded, i,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert parts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit parts: %w", err)
	}
	s.logger.Debug("saved part records", zap.Int("records", len(records)))
	return nil
}

func (s *PartStore) LoadRecords(ctx context.Context) ([]entities.PartRecord, error) {
	return s.query(ctx, selectParts+` ORDER BY position`)
}

func (s *PartStore) LoadUnitRecords(ctx context.Context, unitID uuid.UUID) ([]entities.PartRecord, error) {
	return s.query(ctx, selectParts+` WHERE unit_id = $1::uuid ORDER BY position`, unitID.String())
}

func (s *PartStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PartStore) query(ctx context.Context, sql string, args ...any) ([]entities.PartRecord, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parts: %w", err)
	}
	defer rows.Close()

	var records []entities.PartRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parts: %w", err)
	}
	return records, nil
}

func scanRecord(rows pgx.Rows) (entities.PartRecord, error) {
	var (
		r             entities.PartRecord
		id            string
		unitID        *string
		secondary     []int
		flags         int
		weight, price string
	)
	err := rows.Scan(
		&id, &r.Kind, &r.Variant, &r.Hits, &r.Location, &secondary, &unitID, &r.UnitTonnage,
		&r.Quantity, &flags, &r.Subtype, &r.Model, &r.Rating, &r.Slots, &r.Clan, &r.TSM, &r.Rear,
		&r.EquipmentNum, &weight, &price, &r.Capacity, &r.LargeCraft, &r.Breached, &r.Penalty, &r.ShotsNeeded,
	)
	if err != nil {
		return r, fmt.Errorf("failed to scan part: %w", err)
	}

	if r.ID, err = uuid.Parse(id); err != nil {
		return r, fmt.Errorf("part id %q: %w", id, err)
	}
	if unitID != nil {
		parsed, err := uuid.Parse(*unitID)
		if err != nil {
			return r, fmt.Errorf("part %s unit id %q: %w", id, *unitID, err)
		}
		r.UnitID = uuid.NullUUID{UUID: parsed, Valid: true}
	}
	if len(secondary) > 0 {
		r.SecondaryLocations = secondary
	}
	if r.Weight, err = decimal.NewFromString(weight); err != nil {
		return r, fmt.Errorf("part %s weight: %w", id, err)
	}
	if r.Price, err = decimal.NewFromString(price); err != nil {
		return r, fmt.Errorf("part %s price: %w", id, err)
	}
	r.Flags = entities.Flags(flags)
	return r, nil
}
