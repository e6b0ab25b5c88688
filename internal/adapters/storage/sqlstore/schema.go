package sqlstore

import (
	"context"
	"fmt"
)

// Los instantes se guardan en UTC. En SQLite como TEXT de ancho fijo (ver instantLayout).
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS feed_types (
		id           TEXT PRIMARY KEY,
		manufacturer TEXT NOT NULL,
		product_name TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS feeding_schedules (
		id          TEXT PRIMARY KEY,
		time_of_day TEXT NOT NULL,
		is_active   INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS feeding_records (
		id           TEXT PRIMARY KEY,
		feed_type_id TEXT NOT NULL REFERENCES feed_types(id),
		feeding_time TEXT NOT NULL,
		consumed     INTEGER,
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_feeding_records_time ON feeding_records(feeding_time)`,
	`CREATE TABLE IF NOT EXISTS pets (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS weight_records (
		id            TEXT PRIMARY KEY,
		pet_id        TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		weight        REAL NOT NULL CHECK (weight > 0),
		measured_date TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_weight_records_date ON weight_records(measured_date)`,
	`CREATE TABLE IF NOT EXISTS maintenance_records (
		id           TEXT PRIMARY KEY,
		type         TEXT NOT NULL CHECK (type IN ('water_filter', 'litter_box', 'nail_clipping')),
		performed_at TEXT NOT NULL,
		notes        TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS feed_types (
		id           TEXT PRIMARY KEY,
		manufacturer TEXT NOT NULL,
		product_name TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS feeding_schedules (
		id          TEXT PRIMARY KEY,
		time_of_day TEXT NOT NULL,
		is_active   BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS feeding_records (
		id           TEXT PRIMARY KEY,
		feed_type_id TEXT NOT NULL REFERENCES feed_types(id),
		feeding_time TIMESTAMPTZ NOT NULL,
		consumed     BOOLEAN,
		created_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_feeding_records_time ON feeding_records(feeding_time)`,
	`CREATE TABLE IF NOT EXISTS pets (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS weight_records (
		id            TEXT PRIMARY KEY,
		pet_id        TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		weight        DOUBLE PRECISION NOT NULL CHECK (weight > 0),
		measured_date DATE NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_weight_records_date ON weight_records(measured_date)`,
	`CREATE TABLE IF NOT EXISTS maintenance_records (
		id           TEXT PRIMARY KEY,
		type         TEXT NOT NULL CHECK (type IN ('water_filter', 'litter_box', 'nail_clipping')),
		performed_at TIMESTAMPTZ NOT NULL,
		notes        TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema crea tablas e índices si no existen. Cada sentencia es idempotente.
func EnsureSchema(ctx context.Context, db *DB) error {
	stmts := sqliteSchema
	if db.driver == DriverPostgres {
		stmts = postgresSchema
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema (statement %d): %w", i+1, err)
		}
	}
	return nil
}
