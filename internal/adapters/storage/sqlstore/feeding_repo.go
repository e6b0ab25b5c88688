package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-care-log/internal/domain/feeding"
)

type FeedingRepo struct {
	db *DB
}

func NewFeedingRepo(db *DB) *FeedingRepo {
	return &FeedingRepo{db: db}
}

func (r *FeedingRepo) CreateFeedType(ctx context.Context, f feeding.FeedType) error {
	_, err := r.db.ExecContext(ctx, r.db.rebind(`
		INSERT INTO feed_types (id, manufacturer, product_name, created_at)
		VALUES (?, ?, ?, ?)
	`), f.ID, f.Manufacturer, f.ProductName, r.db.instant(f.CreatedAt))
	return err
}

func (r *FeedingRepo) GetFeedType(ctx context.Context, id string) (feeding.FeedType, error) {
	row := r.db.QueryRowContext(ctx, r.db.rebind(`
		SELECT id, manufacturer, product_name, created_at
		FROM feed_types
		WHERE id = ?
	`), id)

	var f feeding.FeedType
	if err := row.Scan(&f.ID, &f.Manufacturer, &f.ProductName, instantCol{&f.CreatedAt}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return feeding.FeedType{}, feeding.ErrFeedTypeNotFound
		}
		return feeding.FeedType{}, err
	}
	return f, nil
}

func (r *FeedingRepo) ListFeedTypes(ctx context.Context) ([]feeding.FeedType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, manufacturer, product_name, created_at
		FROM feed_types
		ORDER BY manufacturer ASC, product_name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feeding.FeedType, 0)
	for rows.Next() {
		var f feeding.FeedType
		if err := rows.Scan(&f.ID, &f.Manufacturer, &f.ProductName, instantCol{&f.CreatedAt}); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// -------------------------
// Schedules
// -------------------------

func (r *FeedingRepo) CreateSchedule(ctx context.Context, s feeding.Schedule) error {
	_, err := r.db.ExecContext(ctx, r.db.rebind(`
		INSERT INTO feeding_schedules (id, time_of_day, is_active, created_at)
		VALUES (?, ?, ?, ?)
	`), s.ID, s.Time, s.IsActive, r.db.instant(s.CreatedAt))
	return err
}

func (r *FeedingRepo) UpdateSchedule(ctx context.Context, s feeding.Schedule) error {
	res, err := r.db.ExecContext(ctx, r.db.rebind(`
		UPDATE feeding_schedules
		SET time_of_day = ?, is_active = ?
		WHERE id = ?
	`), s.Time, s.IsActive, s.ID)
	return notFound(res, err, feeding.ErrScheduleNotFound)
}

func (r *FeedingRepo) DeleteSchedule(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.rebind(`DELETE FROM feeding_schedules WHERE id = ?`), id)
	return notFound(res, err, feeding.ErrScheduleNotFound)
}

func (r *FeedingRepo) GetSchedule(ctx context.Context, id string) (feeding.Schedule, error) {
	row := r.db.QueryRowContext(ctx, r.db.rebind(`
		SELECT id, time_of_day, is_active, created_at
		FROM feeding_schedules
		WHERE id = ?
	`), id)

	var s feeding.Schedule
	if err := row.Scan(&s.ID, &s.Time, &s.IsActive, instantCol{&s.CreatedAt}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return feeding.Schedule{}, feeding.ErrScheduleNotFound
		}
		return feeding.Schedule{}, err
	}
	return s, nil
}

func (r *FeedingRepo) ListSchedules(ctx context.Context) ([]feeding.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, time_of_day, is_active, created_at
		FROM feeding_schedules
		ORDER BY time_of_day ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feeding.Schedule, 0)
	for rows.Next() {
		var s feeding.Schedule
		if err := rows.Scan(&s.ID, &s.Time, &s.IsActive, instantCol{&s.CreatedAt}); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// -------------------------
// Records
// -------------------------

func (r *FeedingRepo) CreateRecord(ctx context.Context, rec feeding.Record) error {
	_, err := r.db.ExecContext(ctx, r.db.rebind(`
		INSERT INTO feeding_records (id, feed_type_id, feeding_time, consumed, created_at)
		VALUES (?, ?, ?, ?, ?)
	`),
		rec.ID,
		rec.FeedTypeID,
		r.db.instant(rec.FeedingTime),
		nullBool(rec.Consumed),
		r.db.instant(rec.CreatedAt),
	)
	return err
}

func (r *FeedingRepo) UpdateRecord(ctx context.Context, rec feeding.Record) error {
	res, err := r.db.ExecContext(ctx, r.db.rebind(`
		UPDATE feeding_records
		SET feed_type_id = ?, feeding_time = ?, consumed = ?
		WHERE id = ?
	`),
		rec.FeedTypeID,
		r.db.instant(rec.FeedingTime),
		nullBool(rec.Consumed),
		rec.ID,
	)
	return notFound(res, err, feeding.ErrNotFound)
}

func (r *FeedingRepo) DeleteRecord(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.rebind(`DELETE FROM feeding_records WHERE id = ?`), id)
	return notFound(res, err, feeding.ErrNotFound)
}

func (r *FeedingRepo) GetRecord(ctx context.Context, id string) (feeding.Record, error) {
	row := r.db.QueryRowContext(ctx, r.db.rebind(`
		SELECT id, feed_type_id, feeding_time, consumed, created_at
		FROM feeding_records
		WHERE id = ?
	`), id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return feeding.Record{}, feeding.ErrNotFound
		}
		return feeding.Record{}, err
	}
	return rec, nil
}

func (r *FeedingRepo) ListRecords(ctx context.Context, f feeding.RecordFilter) ([]feeding.Record, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT id, feed_type_id, feeding_time, consumed, created_at
		FROM feeding_records
		WHERE 1 = 1
	`)
	args := []any{}

	if f.From != nil {
		sb.WriteString(" AND feeding_time >= ?")
		args = append(args, r.db.instant(*f.From))
	}
	if f.To != nil {
		sb.WriteString(" AND feeding_time <= ?")
		args = append(args, r.db.instant(*f.To))
	}
	if f.UnrecordedOnly {
		sb.WriteString(" AND consumed IS NULL")
	}

	sb.WriteString(" ORDER BY feeding_time DESC, created_at DESC, id DESC")
	if f.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.db.rebind(sb.String()), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feeding.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (feeding.Record, error) {
	var (
		rec      feeding.Record
		consumed sql.NullBool
	)
	if err := s.Scan(
		&rec.ID,
		&rec.FeedTypeID,
		instantCol{&rec.FeedingTime},
		&consumed,
		instantCol{&rec.CreatedAt},
	); err != nil {
		return feeding.Record{}, err
	}
	rec.Consumed = boolPtr(consumed)
	return rec, nil
}
