package volunteerrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/pg"
)

const volunteerColumns = `id, user_id, event_id, status, volunteer_name, volunteer_email,
	volunteer_phone, message, confirmed_at, cancelled_at, completed_at, created_at`

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

func scanVolunteer(row pgx.Row) (*domain.Volunteer, error) {
	var v domain.Volunteer
	err := row.Scan(
		&v.ID, &v.UserID, &v.EventID, &v.Status, &v.VolunteerName, &v.VolunteerEmail,
		&v.VolunteerPhone, &v.Message, &v.ConfirmedAt, &v.CancelledAt, &v.CompletedAt, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Volunteer, error) {
	query := `
        SELECT ` + volunteerColumns + `
        FROM volunteers
        WHERE id = $1
    `
	volunteer, err := scanVolunteer(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find volunteer", zap.Error(err))
		return nil, err
	}
	return volunteer, nil
}

func (r *Repository) FindByUserAndEvent(ctx context.Context, userID, eventID int) (*domain.Volunteer, error) {
	query := `
        SELECT ` + volunteerColumns + `
        FROM volunteers
        WHERE user_id = $1 AND event_id = $2
    `
	volunteer, err := scanVolunteer(r.db.QueryRow(ctx, query, userID, eventID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find volunteer signup", zap.Error(err))
		return nil, err
	}
	return volunteer, nil
}

func (r *Repository) Save(ctx context.Context, volunteer *domain.Volunteer) (*domain.Volunteer, error) {
	query := `
        INSERT INTO volunteers (user_id, event_id, status, volunteer_name, volunteer_email,
            volunteer_phone, message)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query,
			volunteer.UserID, volunteer.EventID, volunteer.Status, volunteer.VolunteerName,
			volunteer.VolunteerEmail, volunteer.VolunteerPhone, volunteer.Message,
		)
		if err := row.Scan(&volunteer.ID, &volunteer.CreatedAt); err != nil {
			zap.L().Error("can't save volunteer", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return volunteer, nil
}

func (r *Repository) Update(ctx context.Context, volunteer *domain.Volunteer) error {
	query := `
        UPDATE volunteers
        SET status = $1, confirmed_at = $2, cancelled_at = $3, completed_at = $4
        WHERE id = $5
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			volunteer.Status, volunteer.ConfirmedAt, volunteer.CancelledAt,
			volunteer.CompletedAt, volunteer.ID,
		)
		if err != nil {
			zap.L().Error("failed to update volunteer", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) FindByEventID(ctx context.Context, eventID int) ([]domain.Volunteer, error) {
	query := `
        SELECT ` + volunteerColumns + `
        FROM volunteers
        WHERE event_id = $1
        ORDER BY created_at ASC
    `
	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		zap.L().Error("can't get volunteers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var volunteers []domain.Volunteer
	for rows.Next() {
		volunteer, err := scanVolunteer(rows)
		if err != nil {
			zap.L().Error("can't scan volunteer row", zap.Error(err))
			return nil, err
		}
		volunteers = append(volunteers, *volunteer)
	}
	return volunteers, nil
}

// CountActive counts signups that still hold a spot.
func (r *Repository) CountActive(ctx context.Context, eventID int) (int, error) {
	var count int
	query := `
        SELECT COUNT(*)
        FROM volunteers
        WHERE event_id = $1 AND status IN ('pending', 'confirmed')
    `
	if err := r.db.QueryRow(ctx, query, eventID).Scan(&count); err != nil {
		zap.L().Error("can't count volunteers", zap.Error(err))
		return 0, err
	}
	return count, nil
}
