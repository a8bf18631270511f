package eventservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockEventRepo, *MockVolunteerRepo) {
	ctrl := gomock.NewController(t)
	events := NewMockEventRepo(ctrl)
	volunteers := NewMockVolunteerRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().
		Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
	service := New(events, volunteers, txManager)
	defer ctrl.Finish()
	return service, events, volunteers
}

func activeEvent(capacity int) *domain.Event {
	now := time.Now()
	return &domain.Event{
		ID:       2,
		Title:    "Beach Cleanup",
		Status:   domain.EventStatusActive,
		Capacity: &capacity,
		StartsAt: now.Add(48 * time.Hour),
		EndsAt:   now.Add(52 * time.Hour),
	}
}

func TestSignUp(t *testing.T) {
	service, events, volunteers := NewMock(t)
	userID := 4

	tests := []struct {
		name          string
		req           SignUpRequest
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Guest signup succeeds",
			req:  SignUpRequest{EventID: 2, Name: "Sipho N", Email: "sipho@example.com"},
			prepareMock: func() {
				events.EXPECT().FindByIDForUpdate(gomock.Any(), 2).Return(activeEvent(20), nil)
				volunteers.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, v *domain.Volunteer) (*domain.Volunteer, error) {
						v.ID = 9
						return v, nil
					})
				volunteers.EXPECT().CountActive(gomock.Any(), 2).Return(13, nil)
				events.EXPECT().UpdateVolunteerCount(gomock.Any(), 2, 13).Return(nil)
			},
		},
		{
			name: "Duplicate signup rejected",
			req:  SignUpRequest{EventID: 2, UserID: &userID, Name: "Sipho N"},
			prepareMock: func() {
				events.EXPECT().FindByIDForUpdate(gomock.Any(), 2).Return(activeEvent(20), nil)
				volunteers.EXPECT().FindByUserAndEvent(gomock.Any(), 4, 2).
					Return(&domain.Volunteer{ID: 9, Status: domain.VolunteerStatusPending}, nil)
			},
			expectedError: ErrAlreadySignedUp,
		},
		{
			name: "Cancelled signup can sign up again",
			req:  SignUpRequest{EventID: 2, UserID: &userID, Name: "Sipho N"},
			prepareMock: func() {
				events.EXPECT().FindByIDForUpdate(gomock.Any(), 2).Return(activeEvent(20), nil)
				volunteers.EXPECT().FindByUserAndEvent(gomock.Any(), 4, 2).
					Return(&domain.Volunteer{ID: 9, Status: domain.VolunteerStatusCancelled}, nil)
				volunteers.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, v *domain.Volunteer) (*domain.Volunteer, error) {
						v.ID = 10
						return v, nil
					})
				volunteers.EXPECT().CountActive(gomock.Any(), 2).Return(14, nil)
				events.EXPECT().UpdateVolunteerCount(gomock.Any(), 2, 14).Return(nil)
			},
		},
		{
			name: "Full event rejected",
			req:  SignUpRequest{EventID: 2, Name: "Sipho N"},
			prepareMock: func() {
				event := activeEvent(10)
				event.VolunteerCount = 10
				events.EXPECT().FindByIDForUpdate(gomock.Any(), 2).Return(event, nil)
			},
			expectedError: ErrEventFull,
		},
		{
			name: "Draft event rejected",
			req:  SignUpRequest{EventID: 2, Name: "Sipho N"},
			prepareMock: func() {
				event := activeEvent(20)
				event.Status = domain.EventStatusDraft
				events.EXPECT().FindByIDForUpdate(gomock.Any(), 2).Return(event, nil)
			},
			expectedError: ErrEventNotAccepting,
		},
		{
			name: "Past signup deadline rejected",
			req:  SignUpRequest{EventID: 2, Name: "Sipho N"},
			prepareMock: func() {
				event := activeEvent(20)
				deadline := time.Now().Add(-time.Hour)
				event.SignupDeadline = &deadline
				events.EXPECT().FindByIDForUpdate(gomock.Any(), 2).Return(event, nil)
			},
			expectedError: ErrEventNotAccepting,
		},
		{
			name: "Missing event",
			req:  SignUpRequest{EventID: 999, Name: "Sipho N"},
			prepareMock: func() {
				events.EXPECT().FindByIDForUpdate(gomock.Any(), 999).Return(nil, nil)
			},
			expectedError: ErrEventNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			got, err := service.SignUp(context.Background(), tt.req)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.VolunteerStatusPending, got.Status)
			}
		})
	}
}

func TestCancelSignup(t *testing.T) {
	service, events, volunteers := NewMock(t)
	userID := 4

	t.Run("Owner cancels", func(t *testing.T) {
		volunteers.EXPECT().FindByID(gomock.Any(), 9).
			Return(&domain.Volunteer{ID: 9, UserID: &userID, EventID: 2, Status: domain.VolunteerStatusConfirmed}, nil)
		volunteers.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		volunteers.EXPECT().CountActive(gomock.Any(), 2).Return(12, nil)
		events.EXPECT().UpdateVolunteerCount(gomock.Any(), 2, 12).Return(nil)

		got, err := service.CancelSignup(context.Background(), 9, 4, false)
		assert.NoError(t, err)
		assert.Equal(t, domain.VolunteerStatusCancelled, got.Status)
		assert.NotNil(t, got.CancelledAt)
	})

	t.Run("Another user can't cancel", func(t *testing.T) {
		volunteers.EXPECT().FindByID(gomock.Any(), 9).
			Return(&domain.Volunteer{ID: 9, UserID: &userID, EventID: 2, Status: domain.VolunteerStatusConfirmed}, nil)

		got, err := service.CancelSignup(context.Background(), 9, 5, false)
		assert.ErrorIs(t, err, ErrNotSignupOwner)
		assert.Nil(t, got)
	})

	t.Run("Already cancelled is a no-op", func(t *testing.T) {
		volunteers.EXPECT().FindByID(gomock.Any(), 9).
			Return(&domain.Volunteer{ID: 9, UserID: &userID, EventID: 2, Status: domain.VolunteerStatusCancelled}, nil)

		got, err := service.CancelSignup(context.Background(), 9, 4, false)
		assert.NoError(t, err)
		assert.Equal(t, domain.VolunteerStatusCancelled, got.Status)
	})
}

func TestCreate(t *testing.T) {
	service, events, _ := NewMock(t)
	now := time.Now()

	t.Run("Successful creation", func(t *testing.T) {
		events.EXPECT().ExistsBySlug(gomock.Any(), "beach-cleanup").Return(false, nil)
		events.EXPECT().Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *domain.Event) (*domain.Event, error) {
				e.ID = 2
				return e, nil
			})

		got, err := service.Create(context.Background(), CreateRequest{
			Title:    "Beach Cleanup",
			StartsAt: now.Add(48 * time.Hour),
			EndsAt:   now.Add(52 * time.Hour),
		})
		assert.NoError(t, err)
		assert.Equal(t, "beach-cleanup", got.Slug)
		assert.Equal(t, domain.EventStatusDraft, got.Status)
	})

	t.Run("Duplicate slug", func(t *testing.T) {
		events.EXPECT().ExistsBySlug(gomock.Any(), "beach-cleanup").Return(true, nil)

		got, err := service.Create(context.Background(), CreateRequest{Title: "Beach Cleanup"})
		assert.ErrorIs(t, err, ErrEventExists)
		assert.Nil(t, got)
	})
}
