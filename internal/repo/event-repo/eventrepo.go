package eventrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/pg"
)

const eventColumns = `id, title, slug, description, location, capacity, volunteer_count,
	starts_at, ends_at, signup_deadline, status, category, created_by, created_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.Location, &e.Capacity, &e.VolunteerCount,
		&e.StartsAt, &e.EndsAt, &e.SignupDeadline, &e.Status, &e.Category, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Event, error) {
	query := `
        SELECT ` + eventColumns + `
        FROM events
        WHERE id = $1
    `
	event, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find event", zap.Error(err))
		return nil, err
	}
	return event, nil
}

// FindByIDForUpdate row-locks the event so concurrent signups can't both pass
// the capacity check.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int) (*domain.Event, error) {
	query := `
        SELECT ` + eventColumns + `
        FROM events
        WHERE id = $1
        FOR UPDATE
    `
	event, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock event", zap.Error(err))
		return nil, err
	}
	return event, nil
}

func (r *Repository) FindBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `
        SELECT ` + eventColumns + `
        FROM events
        WHERE slug = $1
    `
	event, err := scanEvent(r.db.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find event by slug", zap.Error(err))
		return nil, err
	}
	return event, nil
}

func (r *Repository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM events WHERE slug = $1)`
	if err := r.db.QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		zap.L().Error("can't check event slug", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) Save(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	query := `
        INSERT INTO events (title, slug, description, location, capacity, starts_at,
            ends_at, signup_deadline, status, category, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, created_at
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query,
			event.Title, event.Slug, event.Description, event.Location, event.Capacity,
			event.StartsAt, event.EndsAt, event.SignupDeadline, event.Status, event.Category, event.CreatedBy,
		)
		if err := row.Scan(&event.ID, &event.CreatedAt); err != nil {
			zap.L().Error("can't save event", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *Repository) Update(ctx context.Context, event *domain.Event) error {
	query := `
        UPDATE events
        SET title = $1, description = $2, location = $3, capacity = $4, starts_at = $5,
            ends_at = $6, signup_deadline = $7, status = $8, category = $9
        WHERE id = $10
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			event.Title, event.Description, event.Location, event.Capacity, event.StartsAt,
			event.EndsAt, event.SignupDeadline, event.Status, event.Category, event.ID,
		)
		if err != nil {
			zap.L().Error("failed to update event", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) List(ctx context.Context, status string) ([]domain.Event, error) {
	query := `
        SELECT ` + eventColumns + `
        FROM events
        WHERE ($1 = '' OR status = $1)
        ORDER BY starts_at ASC
    `
	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		zap.L().Error("can't list events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			zap.L().Error("can't scan event row", zap.Error(err))
			return nil, err
		}
		events = append(events, *event)
	}
	return events, nil
}

func (r *Repository) UpdateVolunteerCount(ctx context.Context, eventID, count int) error {
	query := `UPDATE events SET volunteer_count = $1 WHERE id = $2`
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, count, eventID)
		if err != nil {
			zap.L().Error("failed to update volunteer count", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}
