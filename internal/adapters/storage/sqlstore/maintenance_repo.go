package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-care-log/internal/domain/maintenance"
)

type MaintenanceRepo struct {
	db *DB
}

func NewMaintenanceRepo(db *DB) *MaintenanceRepo {
	return &MaintenanceRepo{db: db}
}

func (r *MaintenanceRepo) Create(ctx context.Context, rec maintenance.Record) error {
	_, err := r.db.ExecContext(ctx, r.db.rebind(`
		INSERT INTO maintenance_records (id, type, performed_at, notes, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), rec.ID, string(rec.Type), r.db.instant(rec.PerformedAt), rec.Notes, r.db.instant(rec.CreatedAt))
	return err
}

func (r *MaintenanceRepo) Update(ctx context.Context, rec maintenance.Record) error {
	res, err := r.db.ExecContext(ctx, r.db.rebind(`
		UPDATE maintenance_records
		SET type = ?, performed_at = ?, notes = ?
		WHERE id = ?
	`), string(rec.Type), r.db.instant(rec.PerformedAt), rec.Notes, rec.ID)
	return notFound(res, err, maintenance.ErrNotFound)
}

func (r *MaintenanceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.rebind(`DELETE FROM maintenance_records WHERE id = ?`), id)
	return notFound(res, err, maintenance.ErrNotFound)
}

func (r *MaintenanceRepo) GetByID(ctx context.Context, id string) (maintenance.Record, error) {
	row := r.db.QueryRowContext(ctx, r.db.rebind(`
		SELECT id, type, performed_at, notes, created_at
		FROM maintenance_records
		WHERE id = ?
	`), id)

	rec, err := scanMaintenance(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return maintenance.Record{}, maintenance.ErrNotFound
		}
		return maintenance.Record{}, err
	}
	return rec, nil
}

func (r *MaintenanceRepo) List(ctx context.Context, typ maintenance.Type) ([]maintenance.Record, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT id, type, performed_at, notes, created_at
		FROM maintenance_records
	`)
	args := []any{}
	if typ != "" {
		sb.WriteString(" WHERE type = ?")
		args = append(args, string(typ))
	}
	sb.WriteString(" ORDER BY performed_at DESC, id DESC")

	rows, err := r.db.QueryContext(ctx, r.db.rebind(sb.String()), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]maintenance.Record, 0)
	for rows.Next() {
		rec, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanMaintenance(s scanner) (maintenance.Record, error) {
	var (
		rec maintenance.Record
		typ string
	)
	if err := s.Scan(&rec.ID, &typ, instantCol{&rec.PerformedAt}, &rec.Notes, instantCol{&rec.CreatedAt}); err != nil {
		return maintenance.Record{}, err
	}
	rec.Type = maintenance.Type(typ)
	return rec, nil
}
