package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-care-log/internal/domain/pets"
)

type PetsRepo struct {
	db *DB
}

func NewPetsRepo(db *DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, r.db.rebind(`
		INSERT INTO pets (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`), p.ID, p.Name, r.db.instant(p.CreatedAt), r.db.instant(p.UpdatedAt))
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, r.db.rebind(`
		UPDATE pets
		SET name = ?, updated_at = ?
		WHERE id = ?
	`), p.Name, r.db.instant(p.UpdatedAt), p.ID)
	return notFound(res, err, pets.ErrNotFound)
}

// Delete borra pesos y mascota en una transacción (no depende de que el motor tenga
// las foreign keys activas).
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, r.db.rebind(`DELETE FROM weight_records WHERE pet_id = ?`), id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, r.db.rebind(`DELETE FROM pets WHERE id = ?`), id)
	if err := notFound(res, err, pets.ErrNotFound); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, r.db.rebind(`
		SELECT id, name, created_at, updated_at
		FROM pets
		WHERE id = ?
	`), id)

	var p pets.Pet
	if err := row.Scan(&p.ID, &p.Name, instantCol{&p.CreatedAt}, instantCol{&p.UpdatedAt}); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM pets
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var p pets.Pet
		if err := rows.Scan(&p.ID, &p.Name, instantCol{&p.CreatedAt}, instantCol{&p.UpdatedAt}); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) CreateWeight(ctx context.Context, w pets.WeightRecord) error {
	_, err := r.db.ExecContext(ctx, r.db.rebind(`
		INSERT INTO weight_records (id, pet_id, weight, measured_date, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), w.ID, w.PetID, w.Weight, r.db.date(w.MeasuredDate), r.db.instant(w.CreatedAt))
	return err
}

func (r *PetsRepo) ListWeights(ctx context.Context, f pets.WeightFilter) ([]pets.WeightRecord, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT id, pet_id, weight, measured_date, created_at
		FROM weight_records
		WHERE 1 = 1
	`)
	args := []any{}

	if f.PetID != "" {
		sb.WriteString(" AND pet_id = ?")
		args = append(args, f.PetID)
	}
	if f.From != nil {
		sb.WriteString(" AND measured_date >= ?")
		args = append(args, r.db.date(*f.From))
	}
	if f.To != nil {
		sb.WriteString(" AND measured_date <= ?")
		args = append(args, r.db.date(*f.To))
	}

	sb.WriteString(" ORDER BY measured_date DESC, created_at DESC")
	if f.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.db.rebind(sb.String()), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.WeightRecord, 0)
	for rows.Next() {
		var w pets.WeightRecord
		if err := rows.Scan(
			&w.ID,
			&w.PetID,
			&w.Weight,
			dateCol{&w.MeasuredDate},
			instantCol{&w.CreatedAt},
		); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
