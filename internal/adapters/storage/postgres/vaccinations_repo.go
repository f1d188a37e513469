package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pets-api/internal/domain/vaccinations"
)

type VaccinationsRepo struct {
	db *sql.DB
}

func NewVaccinationsRepo(db *sql.DB) *VaccinationsRepo {
	return &VaccinationsRepo{db: db}
}

const vaccinationColumns = `
	v.id, v.pet_id, v.name, v.date, v.next_due_date,
	v.veterinarian, v.clinic, v.notes, v.created_at
`

func (r *VaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccinations (
			id, pet_id, name, date, next_due_date,
			veterinarian, clinic, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		v.ID,
		v.PetID,
		v.Name,
		v.Date,
		v.NextDueDate,
		v.Veterinarian,
		v.Clinic,
		v.Notes,
		v.CreatedAt,
	)
	return err
}

func (r *VaccinationsRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations v
		WHERE v.id = $1
	`, id)

	v, err := scanVaccination(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vaccinations.Vaccination{}, vaccinations.ErrNotFound
		}
		return vaccinations.Vaccination{}, err
	}
	return v, nil
}

func (r *VaccinationsRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vaccinations
		SET
			name = $2,
			date = $3,
			next_due_date = $4,
			veterinarian = $5,
			clinic = $6,
			notes = $7
		WHERE id = $1
	`,
		v.ID,
		v.Name,
		v.Date,
		v.NextDueDate,
		v.Veterinarian,
		v.Clinic,
		v.Notes,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vaccinations.ErrNotFound
	}
	return nil
}

func (r *VaccinationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vaccinations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vaccinations.ErrNotFound
	}
	return nil
}

func (r *VaccinationsRepo) ListByPet(ctx context.Context, petID string) ([]vaccinations.Vaccination, error) {
	return r.query(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations v
		WHERE v.pet_id = $1
		ORDER BY v.next_due_date ASC
	`, petID)
}

func (r *VaccinationsRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]vaccinations.Vaccination, error) {
	return r.query(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations v
		JOIN pets p ON p.id = v.pet_id
		WHERE p.owner_email = $1
		ORDER BY v.next_due_date ASC
	`, ownerEmail)
}

func (r *VaccinationsRepo) ListOverdue(ctx context.Context, today time.Time) ([]vaccinations.Vaccination, error) {
	return r.query(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations v
		WHERE v.next_due_date < $1
		ORDER BY v.next_due_date ASC
	`, today)
}

func (r *VaccinationsRepo) ListOverdueByOwner(ctx context.Context, ownerEmail string, today time.Time) ([]vaccinations.Vaccination, error) {
	return r.query(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations v
		JOIN pets p ON p.id = v.pet_id
		WHERE p.owner_email = $1 AND v.next_due_date < $2
		ORDER BY v.next_due_date ASC
	`, ownerEmail, today)
}

func (r *VaccinationsRepo) ListOverdueByPet(ctx context.Context, petID string, today time.Time) ([]vaccinations.Vaccination, error) {
	return r.query(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations v
		WHERE v.pet_id = $1 AND v.next_due_date < $2
		ORDER BY v.next_due_date ASC
	`, petID, today)
}

func (r *VaccinationsRepo) ListDueSoon(ctx context.Context, today time.Time) ([]vaccinations.Vaccination, error) {
	return r.query(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations v
		WHERE v.next_due_date >= $1 AND v.next_due_date <= $2
		ORDER BY v.next_due_date ASC
	`, today, dueSoonLimit(today))
}

func (r *VaccinationsRepo) ListDueSoonByOwner(ctx context.Context, ownerEmail string, today time.Time) ([]vaccinations.Vaccination, error) {
	return r.query(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations v
		JOIN pets p ON p.id = v.pet_id
		WHERE p.owner_email = $1 AND v.next_due_date >= $2 AND v.next_due_date <= $3
		ORDER BY v.next_due_date ASC
	`, ownerEmail, today, dueSoonLimit(today))
}

func (r *VaccinationsRepo) ListDueSoonByPet(ctx context.Context, petID string, today time.Time) ([]vaccinations.Vaccination, error) {
	return r.query(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations v
		WHERE v.pet_id = $1 AND v.next_due_date >= $2 AND v.next_due_date <= $3
		ORDER BY v.next_due_date ASC
	`, petID, today, dueSoonLimit(today))
}

// dueSoonLimit devuelve el borde superior inclusivo de la ventana.
func dueSoonLimit(today time.Time) time.Time {
	return today.AddDate(0, 0, vaccinations.DueSoonWindowDays)
}

func (r *VaccinationsRepo) query(ctx context.Context, q string, args ...any) ([]vaccinations.Vaccination, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccinations.Vaccination, 0)
	for rows.Next() {
		v, err := scanVaccination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanVaccination(row rowScanner) (vaccinations.Vaccination, error) {
	var v vaccinations.Vaccination
	if err := row.Scan(
		&v.ID,
		&v.PetID,
		&v.Name,
		&v.Date,
		&v.NextDueDate,
		&v.Veterinarian,
		&v.Clinic,
		&v.Notes,
		&v.CreatedAt,
	); err != nil {
		return vaccinations.Vaccination{}, err
	}
	return v, nil
}
