package reconcile

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/givehub-za/givehub/internal/config"
	"github.com/givehub-za/givehub/internal/domain"
)

//go:generate mockgen -source=reconcile.go -destination=mock_reconcile.go -package=reconcile

type DonationService interface {
	StalePending(ctx context.Context, before time.Time, limit uint32) ([]domain.Donation, error)
	Reconcile(ctx context.Context, donation domain.Donation, expiredBefore time.Time) error
}

// Service periodically re-checks pending donations whose redirect or webhook
// never arrived, verifying them with the provider or expiring them.
type Service struct {
	donations     DonationService
	limit         uint32
	workerPool    WorkerPoolI
	interval      time.Duration
	pendingGrace  time.Duration
	pendingExpiry time.Duration

	// inFlight guards donations a previous cycle is still reconciling.
	inFlight sync.Map
}

func New(cfg *config.Config, donations DonationService) *Service {
	return &Service{
		donations:     donations,
		limit:         1000,
		workerPool:    NewWorkerPool(10),
		interval:      cfg.ReconcileInterval,
		pendingGrace:  cfg.PendingGrace,
		pendingExpiry: cfg.PendingExpiry,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Reconcile service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping service")
			return
		case <-ticker.C:
			s.processPending(ctx)
		}
	}
}

func (s *Service) processPending(ctx context.Context) {
	now := time.Now()
	donations, err := s.donations.StalePending(ctx, now.Add(-s.pendingGrace), atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch pending donations for reconciliation", zap.Error(err))
		return
	}
	expiredBefore := now.Add(-s.pendingExpiry)

	var g errgroup.Group
	for _, donation := range donations {
		donation := donation

		if _, loaded := s.inFlight.LoadOrStore(donation.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer s.inFlight.Delete(donation.ID)
				return s.donations.Reconcile(ctx, donation, expiredBefore)
			})
			if err != nil {
				s.inFlight.Delete(donation.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error reconciling donations", zap.Error(err))
	}
}
