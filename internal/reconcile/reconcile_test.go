package reconcile

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/givehub-za/givehub/internal/config"
	"github.com/givehub-za/givehub/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockDonationService) {
	cfg := &config.Config{
		ReconcileInterval: time.Minute,
		PendingGrace:      10 * time.Minute,
		PendingExpiry:     24 * time.Hour,
	}
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	donations := NewMockDonationService(ctrl)
	service := New(cfg, donations)
	return service, donations
}

func TestService_Start(t *testing.T) {
	service, _ := NewMock(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()
}

func TestService_processPending(t *testing.T) {
	tests := []struct {
		name             string
		mockStalePending func(ctx context.Context, before time.Time, limit uint32) ([]domain.Donation, error)
		mockAddTask      func(ctx context.Context, task Task) error
		donationCount    int
	}{
		{
			name: "reconciles stale donations",
			mockStalePending: func(ctx context.Context, before time.Time, limit uint32) ([]domain.Donation, error) {
				return []domain.Donation{
					{ID: 42, Status: domain.DonationStatusPending, PaymentProvider: "yoco"},
					{ID: 43, Status: domain.DonationStatusPending, PaymentProvider: "ozow"},
				}, nil
			},
			mockAddTask: func(ctx context.Context, task Task) error {
				return nil
			},
			donationCount: 2,
		},
		{
			name: "fails fetching stale donations",
			mockStalePending: func(ctx context.Context, before time.Time, limit uint32) ([]domain.Donation, error) {
				return nil, fmt.Errorf("failed to fetch pending donations")
			},
			mockAddTask: func(ctx context.Context, task Task) error {
				return nil
			},
			donationCount: 0,
		},
		{
			name: "error in workerPool AddTask",
			mockStalePending: func(ctx context.Context, before time.Time, limit uint32) ([]domain.Donation, error) {
				return []domain.Donation{
					{ID: 42, Status: domain.DonationStatusPending, PaymentProvider: "yoco"},
				}, nil
			},
			mockAddTask: func(ctx context.Context, task Task) error {
				return fmt.Errorf("failed to add task to worker pool")
			},
			donationCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			donations := NewMockDonationService(ctrl)
			workerPool := NewMockWorkerPoolI(ctrl)

			donations.EXPECT().
				StalePending(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(tt.mockStalePending).
				Times(1)
			for i := 0; i < tt.donationCount; i++ {
				workerPool.EXPECT().
					AddTask(gomock.Any(), gomock.Any()).
					DoAndReturn(tt.mockAddTask).
					AnyTimes()
			}

			service := &Service{
				donations:     donations,
				workerPool:    workerPool,
				limit:         2,
				pendingGrace:  10 * time.Minute,
				pendingExpiry: 24 * time.Hour,
			}

			logger := zap.NewExample()
			zap.ReplaceGlobals(logger)

			ctx := context.Background()
			service.processPending(ctx)
		})
	}
}

func TestService_processPendingSkipsInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	donations := NewMockDonationService(ctrl)
	workerPool := NewMockWorkerPoolI(ctrl)

	donation := domain.Donation{ID: 77, Status: domain.DonationStatusPending, PaymentProvider: "yoco"}
	donations.EXPECT().
		StalePending(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.Donation{donation}, nil).
		Times(1)

	workerPool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Times(0)

	service := &Service{
		donations:     donations,
		workerPool:    workerPool,
		limit:         10,
		pendingGrace:  10 * time.Minute,
		pendingExpiry: 24 * time.Hour,
	}
	// A previous cycle is still holding this donation.
	service.inFlight.Store(77, struct{}{})

	service.processPending(context.Background())
}

func TestService_taskRunsReconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	donations := NewMockDonationService(ctrl)
	donation := domain.Donation{ID: 42, Status: domain.DonationStatusPending, PaymentProvider: "yoco"}

	donations.EXPECT().
		StalePending(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.Donation{donation}, nil).
		Times(1)
	donations.EXPECT().
		Reconcile(gomock.Any(), donation, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Donation, expiredBefore time.Time) error {
			assert.True(t, expiredBefore.Before(time.Now()))
			return nil
		}).
		Times(1)

	workerPool := NewMockWorkerPoolI(ctrl)
	workerPool.EXPECT().
		AddTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task Task) error {
			return task()
		}).
		Times(1)

	service := &Service{
		donations:     donations,
		workerPool:    workerPool,
		limit:         10,
		pendingGrace:  10 * time.Minute,
		pendingExpiry: 24 * time.Hour,
	}
	service.processPending(context.Background())

	// The in-flight guard must be released once the task finishes.
	_, loaded := service.inFlight.Load(42)
	assert.False(t, loaded)
}
