package donationrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/pg"
)

const donationColumns = `id, user_id, campaign_id, amount, currency, payment_provider,
	transaction_id, status, metadata, donor_name, donor_email, donor_phone,
	donor_message, anonymous, recurring, receipt_number, completed_at, failed_at, created_at`

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

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var d domain.Donation
	err := row.Scan(
		&d.ID, &d.UserID, &d.CampaignID, &d.Amount, &d.Currency, &d.PaymentProvider,
		&d.TransactionID, &d.Status, &d.Metadata, &d.DonorName, &d.DonorEmail, &d.DonorPhone,
		&d.DonorMessage, &d.Anonymous, &d.Recurring, &d.ReceiptNumber, &d.CompletedAt, &d.FailedAt, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Donation, error) {
	query := `
        SELECT ` + donationColumns + `
        FROM donations
        WHERE id = $1
    `
	donation, err := scanDonation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find donation", zap.Error(err))
		return nil, err
	}
	return donation, nil
}

// FindByIDForUpdate row-locks the donation. Callers must already be inside a
// TXManager transaction; concurrent finalizations serialize on this lock.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int) (*domain.Donation, error) {
	query := `
        SELECT ` + donationColumns + `
        FROM donations
        WHERE id = $1
        FOR UPDATE
    `
	donation, err := scanDonation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock donation", zap.Error(err))
		return nil, err
	}
	return donation, nil
}

func (r *Repository) Save(ctx context.Context, donation *domain.Donation) (*domain.Donation, error) {
	query := `
        INSERT INTO donations (user_id, campaign_id, amount, currency, payment_provider,
            transaction_id, status, metadata, donor_name, donor_email, donor_phone,
            donor_message, anonymous, recurring)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING id, created_at
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query,
			donation.UserID, donation.CampaignID, donation.Amount, donation.Currency,
			donation.PaymentProvider, donation.TransactionID, donation.Status, donation.Metadata,
			donation.DonorName, donation.DonorEmail, donation.DonorPhone, donation.DonorMessage,
			donation.Anonymous, donation.Recurring,
		)
		if err := row.Scan(&donation.ID, &donation.CreatedAt); err != nil {
			zap.L().Error("can't save donation", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return donation, nil
}

func (r *Repository) Update(ctx context.Context, donation *domain.Donation) error {
	query := `
        UPDATE donations
        SET status = $1, metadata = $2, receipt_number = $3, completed_at = $4, failed_at = $5
        WHERE id = $6
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			donation.Status, donation.Metadata, donation.ReceiptNumber,
			donation.CompletedAt, donation.FailedAt, donation.ID,
		)
		if err != nil {
			zap.L().Error("failed to update donation", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM donations WHERE transaction_id = $1)`
	if err := r.db.QueryRow(ctx, query, transactionID).Scan(&exists); err != nil {
		zap.L().Error("can't check transaction id", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) ExistsByReceiptNumber(ctx context.Context, receiptNumber string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM donations WHERE receipt_number = $1)`
	if err := r.db.QueryRow(ctx, query, receiptNumber).Scan(&exists); err != nil {
		zap.L().Error("can't check receipt number", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Donation, error) {
	query := `
        SELECT ` + donationColumns + `
        FROM donations
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get donations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectDonations(rows)
}

// FindRecentCompleted lists the latest completed, non-anonymous donations for
// the campaign's public ticker.
func (r *Repository) FindRecentCompleted(ctx context.Context, campaignID, limit int) ([]domain.Donation, error) {
	query := `
        SELECT ` + donationColumns + `
        FROM donations
        WHERE campaign_id = $1 AND status = 'completed' AND anonymous = FALSE
        ORDER BY completed_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, campaignID, limit)
	if err != nil {
		zap.L().Error("can't get recent donations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectDonations(rows)
}

// FindStalePending returns pending donations created before the cutoff, for
// reconciliation against the providers.
func (r *Repository) FindStalePending(ctx context.Context, before time.Time, limit uint32) ([]domain.Donation, error) {
	query := `
        SELECT ` + donationColumns + `
        FROM donations
        WHERE status = 'pending' AND created_at < $1
        ORDER BY created_at ASC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, before, int(limit))
	if err != nil {
		zap.L().Error("can't get stale pending donations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectDonations(rows)
}

func collectDonations(rows pgx.Rows) ([]domain.Donation, error) {
	var donations []domain.Donation
	for rows.Next() {
		donation, err := scanDonation(rows)
		if err != nil {
			zap.L().Error("can't scan donation row", zap.Error(err))
			return nil, err
		}
		donations = append(donations, *donation)
	}
	return donations, nil
}
