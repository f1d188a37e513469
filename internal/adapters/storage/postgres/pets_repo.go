package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pets-api/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, name, species, breed,
	birth_date, weight_kg, color,
	microchip_number, photo_url,
	owner_name, owner_phone, owner_email,
	created_at
`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, name, species, breed,
			birth_date, weight_kg, color,
			microchip_number, photo_url, image_data,
			owner_name, owner_phone, owner_email,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		toNullDate(p.BirthDate),
		toNullFloat(p.WeightKg),
		p.Color,
		p.MicrochipNumber,
		p.PhotoURL,
		p.ImageData,
		p.OwnerName,
		p.OwnerPhone,
		p.OwnerEmail,
		p.CreatedAt,
	)
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`, image_data
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPetWithImage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			birth_date = $5,
			weight_kg = $6,
			color = $7,
			microchip_number = $8,
			photo_url = $9,
			owner_name = $10,
			owner_phone = $11,
			owner_email = $12
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		toNullDate(p.BirthDate),
		toNullFloat(p.WeightKg),
		p.Color,
		p.MicrochipNumber,
		p.PhotoURL,
		p.OwnerName,
		p.OwnerPhone,
		p.OwnerEmail,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

// Delete borra la mascota en una transacción; events, vaccinations,
// posts y post_likes caen por las FK ON DELETE CASCADE. Los likes que
// la mascota dejó en posts ajenos quedan colgando a propósito.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}

	return tx.Commit()
}

func (r *PetsRepo) SetImage(ctx context.Context, id string, data []byte) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pets SET image_data = $2 WHERE id = $1`, id, data)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		ORDER BY created_at ASC
	`)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]pets.Pet, error) {
	return r.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_email = $1
		ORDER BY created_at ASC
	`, ownerEmail)
}

func (r *PetsRepo) ListBySpecies(ctx context.Context, species pets.Species) ([]pets.Pet, error) {
	return r.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE species = $1
		ORDER BY created_at ASC
	`, string(species))
}

func (r *PetsRepo) SearchByBreed(ctx context.Context, breed string) ([]pets.Pet, error) {
	return r.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE strpos(breed, $1) > 0
		ORDER BY created_at ASC
	`, breed)
}

func (r *PetsRepo) SearchByName(ctx context.Context, name string) ([]pets.Pet, error) {
	return r.query(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE strpos(name, $1) > 0
		ORDER BY created_at ASC
	`, name)
}

func (r *PetsRepo) query(ctx context.Context, q string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var bd sql.NullTime
	var weight sql.NullFloat64
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&bd,
		&weight,
		&p.Color,
		&p.MicrochipNumber,
		&p.PhotoURL,
		&p.OwnerName,
		&p.OwnerPhone,
		&p.OwnerEmail,
		&p.CreatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	if bd.Valid {
		p.BirthDate = bd.Time
	}
	if weight.Valid {
		p.WeightKg = weight.Float64
	}
	return p, nil
}

func scanPetWithImage(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var bd sql.NullTime
	var weight sql.NullFloat64
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&bd,
		&weight,
		&p.Color,
		&p.MicrochipNumber,
		&p.PhotoURL,
		&p.OwnerName,
		&p.OwnerPhone,
		&p.OwnerEmail,
		&p.CreatedAt,
		&p.ImageData,
	); err != nil {
		return pets.Pet{}, err
	}
	if bd.Valid {
		p.BirthDate = bd.Time
	}
	if weight.Valid {
		p.WeightKg = weight.Float64
	}
	return p, nil
}
