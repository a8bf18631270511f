package volunteerrepo

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

func volunteerRows(v *domain.Volunteer) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "user_id", "event_id", "status", "volunteer_name", "volunteer_email",
		"volunteer_phone", "message", "confirmed_at", "cancelled_at", "completed_at", "created_at",
	}).AddRow(
		v.ID, v.UserID, v.EventID, v.Status, v.VolunteerName, v.VolunteerEmail,
		v.VolunteerPhone, v.Message, v.ConfirmedAt, v.CancelledAt, v.CompletedAt, v.CreatedAt,
	)
}

func TestRepository_FindByUserAndEvent(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()
	userID := 4
	volunteer := &domain.Volunteer{
		ID:             9,
		UserID:         &userID,
		EventID:        2,
		Status:         domain.VolunteerStatusPending,
		VolunteerName:  "Sipho N",
		VolunteerEmail: "sipho@example.com",
		CreatedAt:      now,
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Volunteer
	}{
		{
			name: "Signup exists",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND event_id = $2")).
					WithArgs(4, 2).
					WillReturnRows(volunteerRows(volunteer))
			},
			result: volunteer,
		},
		{
			name: "No signup",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND event_id = $2")).
					WithArgs(4, 2).
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND event_id = $2")).
					WithArgs(4, 2).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			got, err := repo.FindByUserAndEvent(context.Background(), 4, 2)
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

func TestRepository_Save(t *testing.T) {
	repo, mock, mockTxManager := NewMock(t)
	now := time.Now()
	userID := 4
	volunteer := &domain.Volunteer{
		UserID:         &userID,
		EventID:        2,
		Status:         domain.VolunteerStatusPending,
		VolunteerName:  "Sipho N",
		VolunteerEmail: "sipho@example.com",
	}

	mockTxManager.EXPECT().
		Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO volunteers")).
		WithArgs(&userID, 2, domain.VolunteerStatusPending, "Sipho N", "sipho@example.com", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(9, now))

	got, err := repo.Save(context.Background(), volunteer)
	assert.NoError(t, err)
	assert.Equal(t, 9, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountActive(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("status IN ('pending', 'confirmed')")).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.CountActive(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, 12, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
