package campaignrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/pg"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func campaignRows(c *domain.Campaign) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "title", "slug", "summary", "target_amount", "current_amount", "status",
		"category", "start_at", "end_at", "donor_count", "average_donation", "created_by", "created_at",
	}).AddRow(
		c.ID, c.Title, c.Slug, c.Summary, c.TargetAmount, c.CurrentAmount, c.Status,
		c.Category, c.StartAt, c.EndAt, c.DonorCount, c.AverageDonation, c.CreatedBy, c.CreatedAt,
	)
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()
	campaign := &domain.Campaign{
		ID:           7,
		Title:        "Clean Water for Khayelitsha",
		Slug:         "clean-water-for-khayelitsha",
		TargetAmount: 50000.0,
		Status:       domain.CampaignStatusActive,
		Category:     "water",
		CreatedAt:    now,
	}

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
		result    *domain.Campaign
	}{
		{
			name: "Campaign exists",
			id:   7,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM campaigns")).
					WithArgs(7).
					WillReturnRows(campaignRows(campaign))
			},
			result: campaign,
		},
		{
			name: "Campaign does not exist",
			id:   999,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM campaigns")).
					WithArgs(999).
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			id:   7,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM campaigns")).
					WithArgs(7).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			got, err := repo.FindByID(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_AggregateDonations(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.CampaignTotals
	}{
		{
			name: "Campaign with donations",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("status = 'completed'")).
					WithArgs(7).
					WillReturnRows(pgxmock.NewRows([]string{"sum", "count", "avg"}).
						AddRow(1500.0, 3, 500.0))
			},
			result: &domain.CampaignTotals{CurrentAmount: 1500.0, DonorCount: 3, AverageDonation: 500.0},
		},
		{
			name: "Campaign with no donations",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("status = 'completed'")).
					WithArgs(7).
					WillReturnRows(pgxmock.NewRows([]string{"sum", "count", "avg"}).
						AddRow(0.0, 0, 0.0))
			},
			result: &domain.CampaignTotals{},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("status = 'completed'")).
					WithArgs(7).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			got, err := repo.AggregateDonations(context.Background(), 7)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpdateTotals(t *testing.T) {
	repo, mock, mockTxManager := NewMock(t)
	totals := &domain.CampaignTotals{CurrentAmount: 52000.0, DonorCount: 41, AverageDonation: 1268.29}

	mockTxManager.EXPECT().
		Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
	mock.ExpectExec(regexp.QuoteMeta("UPDATE campaigns")).
		WithArgs(52000.0, 41, 1268.29, domain.CampaignStatusCompleted, 7).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateTotals(context.Background(), 7, totals, domain.CampaignStatusCompleted)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistsBySlug(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE slug = $1")).
		WithArgs("clean-water-for-khayelitsha").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsBySlug(context.Background(), "clean-water-for-khayelitsha")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()
	campaign := &domain.Campaign{
		ID:           7,
		Title:        "Clean Water for Khayelitsha",
		Slug:         "clean-water-for-khayelitsha",
		TargetAmount: 50000.0,
		Status:       domain.CampaignStatusActive,
		Category:     "water",
		CreatedAt:    now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM campaigns")).
		WithArgs(domain.CampaignStatusActive, "", "").
		WillReturnRows(campaignRows(campaign))

	got, err := repo.List(context.Background(), domain.CampaignStatusActive, "", "")
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, *campaign, got[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}
