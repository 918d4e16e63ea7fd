// Package sqlite stores part records in an embedded SQLite database
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/repositories"
)

const schema = `CREATE TABLE IF NOT EXISTS parts (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	variant TEXT NOT NULL,
	hits INTEGER NOT NULL DEFAULT 0,
	location INTEGER NOT NULL,
	secondary_locations TEXT NOT NULL DEFAULT '',
	unit_id TEXT,
	unit_tonnage INTEGER NOT NULL DEFAULT 0,
	quantity INTEGER NOT NULL DEFAULT 1,
	flags INTEGER NOT NULL DEFAULT 0,
	subtype TEXT NOT NULL DEFAULT '',
	model TEXT NOT NULL DEFAULT '',
	rating INTEGER NOT NULL DEFAULT 0,
	slots INTEGER NOT NULL DEFAULT 0,
	clan INTEGER NOT NULL DEFAULT 0,
	tsm INTEGER NOT NULL DEFAULT 0,
	rear INTEGER NOT NULL DEFAULT 0,
	equipment_num INTEGER NOT NULL DEFAULT 0,
	weight TEXT NOT NULL DEFAULT '0',
	price TEXT NOT NULL DEFAULT '0',
	capacity INTEGER NOT NULL DEFAULT 0,
	large_craft INTEGER NOT NULL DEFAULT 0,
	breached INTEGER NOT NULL DEFAULT 0,
	penalty INTEGER NOT NULL DEFAULT 0,
	shots_needed INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL
)`

const columns = `id, kind, variant, hits, location, secondary_locations, unit_id, unit_tonnage,
	quantity, flags, subtype, model, rating, slots, clan, tsm, rear, equipment_num,
	weight, price, capacity, large_craft, breached, penalty, shots_needed`

// PartStore is a repositories.PartStore backed by a SQLite file
type PartStore struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ repositories.PartStore = (*PartStore)(nil)

// Open opens or creates the database at path
func Open(path string, logger *zap.Logger) (*PartStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &PartStore{db: db, logger: logger}, nil
}

func (s *PartStore) Migrate(ctx context.Context) error {
	for _, ddl := range []string{
		schema,
		`CREATE INDEX IF NOT EXISTS parts_unit_id ON parts (unit_id)`,
	} {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

func (s *PartStore) SaveRecords(ctx context.Context, records []entities.PartRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM parts`); err != nil {
		return fmt.Errorf("clear parts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO parts (`+columns+`, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		var unitID any
		if r.UnitID.Valid {
			unitID = r.UnitID.UUID.String()
		}
		_, err := stmt.ExecContext(ctx,
			r.ID.String(), r.Kind, r.Variant, r.Hits, r.Location, joinLocations(r.SecondaryLocations),
			unitID, r.UnitTonnage, r.Quantity, int(r.Flags), r.Subtype, r.Model, r.Rating, r.Slots,
			r.Clan, r.TSM, r.Rear, r.EquipmentNum, r.Weight.String(), r.Price.String(), r.Capacity,
			r.LargeCraft, r.Breached, r.Penalty, r.ShotsNeeded, i,
		)
		if err != nil {
			return fmt.Errorf("insert part %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug("saved part records", zap.Int("records", len(records)))
	return nil
}

func (s *PartStore) LoadRecords(ctx context.Context) ([]entities.PartRecord, error) {
	return s.query(ctx, `SELECT `+columns+` FROM parts ORDER BY position`)
}

func (s *PartStore) LoadUnitRecords(ctx context.Context, unitID uuid.UUID) ([]entities.PartRecord, error) {
	return s.query(ctx, `SELECT `+columns+` FROM parts WHERE unit_id = ? ORDER BY position`, unitID.String())
}

func (s *PartStore) Close() error {
	return s.db.Close()
}

func (s *PartStore) query(ctx context.Context, query string, args ...any) ([]entities.PartRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query parts: %w", err)
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

func scanRecord(rows *sql.Rows) (entities.PartRecord, error) {
	var (
		r                      entities.PartRecord
		id, secondary          string
		unitID                 sql.NullString
		flags                  int
		weight, price          string
		clan, tsm, rear        bool
		largeCraft, isBreached bool
	)
	err := rows.Scan(
		&id, &r.Kind, &r.Variant, &r.Hits, &r.Location, &secondary, &unitID, &r.UnitTonnage,
		&r.Quantity, &flags, &r.Subtype, &r.Model, &r.Rating, &r.Slots, &clan, &tsm, &rear,
		&r.EquipmentNum, &weight, &price, &r.Capacity, &largeCraft, &isBreached, &r.Penalty, &r.ShotsNeeded,
	)
	if err != nil {
		return r, fmt.Errorf("scan part: %w", err)
	}

	if r.ID, err = uuid.Parse(id); err != nil {
		return r, fmt.Errorf("part id %q: %w", id, err)
	}
	if unitID.Valid {
		parsed, err := uuid.Parse(unitID.String)
		if err != nil {
			return r, fmt.Errorf("part %s unit id %q: %w", id, unitID.String, err)
		}
		r.UnitID = uuid.NullUUID{UUID: parsed, Valid: true}
	}
	if r.SecondaryLocations, err = splitLocations(secondary); err != nil {
		return r, fmt.Errorf("part %s: %w", id, err)
	}
	if r.Weight, err = decimal.NewFromString(weight); err != nil {
		return r, fmt.Errorf("part %s weight: %w", id, err)
	}
	if r.Price, err = decimal.NewFromString(price); err != nil {
		return r, fmt.Errorf("part %s price: %w", id, err)
	}
	r.Flags = entities.Flags(flags)
	r.Clan, r.TSM, r.Rear = clan, tsm, rear
	r.LargeCraft, r.Breached = largeCraft, isBreached
	return r, nil
}

func joinLocations(locs []int) string {
	parts := make([]string, len(locs))
	for i, loc := range locs {
		parts[i] = strconv.Itoa(loc)
	}
	return strings.Join(parts, ";")
}

func splitLocations(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var locs []int
	for _, part := range strings.Split(s, ";") {
		loc, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("secondary location %q: %w", part, err)
		}
		locs = append(locs, loc)
	}
	return locs, nil
}
