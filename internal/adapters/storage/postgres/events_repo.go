package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pets-api/internal/domain/events"
)

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

const eventColumns = `
	e.id, e.pet_id, e.title, e.date, e.type,
	e.description, e.location, e.contact, e.created_at
`

func (r *EventsRepo) Create(ctx context.Context, e events.Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (
			id, pet_id, title, date, type,
			description, location, contact, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		e.ID,
		e.PetID,
		e.Title,
		e.Date,
		string(e.Type),
		e.Description,
		e.Location,
		e.Contact,
		e.CreatedAt,
	)
	return err
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		WHERE e.id = $1
	`, id)

	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return events.Event{}, events.ErrNotFound
		}
		return events.Event{}, err
	}
	return e, nil
}

func (r *EventsRepo) Update(ctx context.Context, e events.Event) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET
			title = $2,
			date = $3,
			type = $4,
			description = $5,
			location = $6,
			contact = $7
		WHERE id = $1
	`,
		e.ID,
		e.Title,
		e.Date,
		string(e.Type),
		e.Description,
		e.Location,
		e.Contact,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return events.ErrNotFound
	}
	return nil
}

func (r *EventsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return events.ErrNotFound
	}
	return nil
}

func (r *EventsRepo) ListByPet(ctx context.Context, petID string) ([]events.Event, error) {
	return r.query(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		WHERE e.pet_id = $1
		ORDER BY e.date ASC
	`, petID)
}

func (r *EventsRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]events.Event, error) {
	return r.query(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		JOIN pets p ON p.id = e.pet_id
		WHERE p.owner_email = $1
		ORDER BY e.date ASC
	`, ownerEmail)
}

func (r *EventsRepo) ListUpcoming(ctx context.Context, today time.Time) ([]events.Event, error) {
	return r.query(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		WHERE e.date >= $1
		ORDER BY e.date ASC
	`, today)
}

func (r *EventsRepo) ListUpcomingByOwner(ctx context.Context, ownerEmail string, today time.Time) ([]events.Event, error) {
	return r.query(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		JOIN pets p ON p.id = e.pet_id
		WHERE p.owner_email = $1 AND e.date >= $2
		ORDER BY e.date ASC
	`, ownerEmail, today)
}

func (r *EventsRepo) ListUpcomingByPet(ctx context.Context, petID string, today time.Time) ([]events.Event, error) {
	return r.query(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		WHERE e.pet_id = $1 AND e.date >= $2
		ORDER BY e.date ASC
	`, petID, today)
}

func (r *EventsRepo) ListByTypeAndOwner(ctx context.Context, t events.EventType, ownerEmail string) ([]events.Event, error) {
	return r.query(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		JOIN pets p ON p.id = e.pet_id
		WHERE e.type = $1 AND p.owner_email = $2
		ORDER BY e.date ASC
	`, string(t), ownerEmail)
}

func (r *EventsRepo) query(ctx context.Context, q string, args ...any) ([]events.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]events.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEvent(row rowScanner) (events.Event, error) {
	var e events.Event
	if err := row.Scan(
		&e.ID,
		&e.PetID,
		&e.Title,
		&e.Date,
		&e.Type,
		&e.Description,
		&e.Location,
		&e.Contact,
		&e.CreatedAt,
	); err != nil {
		return events.Event{}, err
	}
	return e, nil
}
