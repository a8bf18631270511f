package campaignrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/pg"
)

const campaignColumns = `id, title, slug, summary, target_amount, current_amount, status,
	category, start_at, end_at, donor_count, average_donation, created_by, created_at`

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

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.Summary, &c.TargetAmount, &c.CurrentAmount, &c.Status,
		&c.Category, &c.StartAt, &c.EndAt, &c.DonorCount, &c.AverageDonation, &c.CreatedBy, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Campaign, error) {
	query := `
        SELECT ` + campaignColumns + `
        FROM campaigns
        WHERE id = $1
    `
	campaign, err := scanCampaign(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find campaign", zap.Error(err))
		return nil, err
	}
	return campaign, nil
}

func (r *Repository) FindBySlug(ctx context.Context, slug string) (*domain.Campaign, error) {
	query := `
        SELECT ` + campaignColumns + `
        FROM campaigns
        WHERE slug = $1
    `
	campaign, err := scanCampaign(r.db.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find campaign by slug", zap.Error(err))
		return nil, err
	}
	return campaign, nil
}

func (r *Repository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM campaigns WHERE slug = $1)`
	if err := r.db.QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		zap.L().Error("can't check campaign slug", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) Save(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	query := `
        INSERT INTO campaigns (title, slug, summary, target_amount, status, category,
            start_at, end_at, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query,
			campaign.Title, campaign.Slug, campaign.Summary, campaign.TargetAmount,
			campaign.Status, campaign.Category, campaign.StartAt, campaign.EndAt, campaign.CreatedBy,
		)
		if err := row.Scan(&campaign.ID, &campaign.CreatedAt); err != nil {
			zap.L().Error("can't save campaign", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

func (r *Repository) Update(ctx context.Context, campaign *domain.Campaign) error {
	query := `
        UPDATE campaigns
        SET title = $1, summary = $2, target_amount = $3, status = $4, category = $5,
            start_at = $6, end_at = $7
        WHERE id = $8
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			campaign.Title, campaign.Summary, campaign.TargetAmount, campaign.Status,
			campaign.Category, campaign.StartAt, campaign.EndAt, campaign.ID,
		)
		if err != nil {
			zap.L().Error("failed to update campaign", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) List(ctx context.Context, status, category, q string) ([]domain.Campaign, error) {
	query := `
        SELECT ` + campaignColumns + `
        FROM campaigns
        WHERE ($1 = '' OR status = $1)
          AND ($2 = '' OR category = $2)
          AND ($3 = '' OR title ILIKE '%' || $3 || '%')
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, status, category, q)
	if err != nil {
		zap.L().Error("can't list campaigns", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			zap.L().Error("can't scan campaign row", zap.Error(err))
			return nil, err
		}
		campaigns = append(campaigns, *campaign)
	}
	return campaigns, nil
}

// AggregateDonations recomputes the campaign's totals from its completed
// donations.
func (r *Repository) AggregateDonations(ctx context.Context, campaignID int) (*domain.CampaignTotals, error) {
	var totals domain.CampaignTotals
	query := `
        SELECT COALESCE(SUM(amount), 0), COUNT(*), COALESCE(AVG(amount), 0)
        FROM donations
        WHERE campaign_id = $1 AND status = 'completed'
    `
	err := r.db.QueryRow(ctx, query, campaignID).Scan(
		&totals.CurrentAmount, &totals.DonorCount, &totals.AverageDonation,
	)
	if err != nil {
		zap.L().Error("can't aggregate donations", zap.Error(err))
		return nil, err
	}
	return &totals, nil
}

func (r *Repository) UpdateTotals(ctx context.Context, campaignID int, totals *domain.CampaignTotals, status string) error {
	query := `
        UPDATE campaigns
        SET current_amount = $1, donor_count = $2, average_donation = $3, status = $4
        WHERE id = $5
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			totals.CurrentAmount, totals.DonorCount, totals.AverageDonation, status, campaignID,
		)
		if err != nil {
			zap.L().Error("failed to update campaign totals", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}
