package donationservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/payment"
	"github.com/givehub-za/givehub/internal/pg"
	"github.com/givehub-za/givehub/pkg/utils"
	"github.com/givehub-za/givehub/pkg/validate"
)

//go:generate mockgen -source=donationservice.go -destination=mock_donationservice.go -package=donationservice

type Repo interface {
	FindByID(ctx context.Context, id int) (*domain.Donation, error)
	FindByIDForUpdate(ctx context.Context, id int) (*domain.Donation, error)
	Save(ctx context.Context, donation *domain.Donation) (*domain.Donation, error)
	Update(ctx context.Context, donation *domain.Donation) error
	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)
	ExistsByReceiptNumber(ctx context.Context, receiptNumber string) (bool, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Donation, error)
	FindRecentCompleted(ctx context.Context, campaignID, limit int) ([]domain.Donation, error)
	FindStalePending(ctx context.Context, before time.Time, limit uint32) ([]domain.Donation, error)
}

type CampaignService interface {
	Get(ctx context.Context, id int) (*domain.Campaign, error)
	RecalculateTotals(ctx context.Context, campaignID int) error
}

type Providers interface {
	Resolve(name string) (payment.Provider, error)
}

type Service struct {
	repo        Repo
	campaigns   CampaignService
	providers   Providers
	txManager   pg.TXManager
	currency    string
	minDonation float64
	maxDonation float64
}

func New(repo Repo, campaigns CampaignService, providers Providers, txManager pg.TXManager, currency string, minDonation, maxDonation float64) *Service {
	return &Service{
		repo:        repo,
		campaigns:   campaigns,
		providers:   providers,
		txManager:   txManager,
		currency:    currency,
		minDonation: minDonation,
		maxDonation: maxDonation,
	}
}

var (
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrCampaignNotAccepting = errors.New("campaign is not accepting donations")
	ErrAmountOutOfRange     = errors.New("donation amount out of range")
	ErrDonationNotFound     = errors.New("donation not found")
	ErrDonationNotPending   = errors.New("donation is not pending")
	ErrDonationNotCompleted = errors.New("donation is not completed")
	ErrNotDonationOwner     = errors.New("donation belongs to another user")
	ErrPaymentInitFailed    = errors.New("payment initialization failed")
	ErrRefundRejected       = errors.New("refund rejected by provider")
	ErrNoReceipt            = errors.New("receipt not available")
)

const transactionIDAttempts = 3

type SubmitRequest struct {
	CampaignID   int
	Amount       float64
	Provider     string
	UserID       *int
	DonorName    string
	DonorEmail   string
	DonorPhone   string
	DonorMessage string
	Anonymous    bool
	Recurring    bool
}

type SubmitResult struct {
	Donation    *domain.Donation
	PaymentURL  string
	RedirectURL string
}

// Submit creates a pending donation and initializes payment with the chosen
// provider. The insert and the provider call share one transaction so a failed
// initialization leaves no orphaned pending row.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if req.Amount < s.minDonation || req.Amount > s.maxDonation {
		return nil, ErrAmountOutOfRange
	}
	provider, err := s.providers.Resolve(req.Provider)
	if err != nil {
		return nil, err
	}
	campaign, err := s.campaigns.Get(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if !campaign.IsAcceptingDonations(time.Now()) {
		return nil, ErrCampaignNotAccepting
	}

	transactionID, err := s.newTransactionID(ctx)
	if err != nil {
		return nil, err
	}

	donation := &domain.Donation{
		UserID:          req.UserID,
		CampaignID:      campaign.ID,
		Amount:          req.Amount,
		Currency:        s.currency,
		PaymentProvider: provider.Name(),
		TransactionID:   transactionID,
		Status:          domain.DonationStatusPending,
		Metadata:        map[string]any{},
		DonorName:       req.DonorName,
		DonorEmail:      req.DonorEmail,
		DonorPhone:      req.DonorPhone,
		DonorMessage:    req.DonorMessage,
		Anonymous:       req.Anonymous,
		Recurring:       req.Recurring,
	}

	var result *SubmitResult
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.repo.Save(ctx, donation); err != nil {
			return err
		}
		initResult := provider.Initialize(ctx, donation, campaign)
		if !initResult.Success {
			zap.L().Warn("payment initialization failed",
				zap.String("provider", provider.Name()),
				zap.String("transaction_id", transactionID),
				zap.String("message", initResult.Message))
			return fmt.Errorf("%w: %s", ErrPaymentInitFailed, initResult.Message)
		}
		if err := s.repo.Update(ctx, donation); err != nil {
			return err
		}
		result = &SubmitResult{
			Donation:    donation,
			PaymentURL:  initResult.PaymentURL,
			RedirectURL: initResult.RedirectURL,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) newTransactionID(ctx context.Context) (string, error) {
	for i := 0; i < transactionIDAttempts; i++ {
		token, err := utils.RandomToken(6)
		if err != nil {
			return "", err
		}
		id := fmt.Sprintf("TXN-%d-%s", time.Now().Unix(), token)
		exists, err := s.repo.ExistsByTransactionID(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", errors.New("can't generate unique transaction id")
}

// HandleReturn finalizes a donation after the donor lands on the success
// callback. The provider is asked to confirm before anything is marked paid.
// An unverified return leaves the donation pending; a webhook or a retried
// verification can still finalize it.
func (s *Service) HandleReturn(ctx context.Context, donationID int, params map[string]string) (*domain.Donation, error) {
	donation, err := s.repo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, ErrDonationNotFound
	}
	if !donation.IsPending() {
		return donation, nil
	}

	provider, err := s.providers.Resolve(donation.PaymentProvider)
	if err != nil {
		return nil, err
	}
	if !provider.Verify(ctx, donation, params) {
		zap.L().Warn("payment verification inconclusive",
			zap.Int("donation_id", donationID),
			zap.String("provider", donation.PaymentProvider))
		return donation, nil
	}
	return s.ConfirmSuccess(ctx, donationID, donation.Metadata)
}

// ConfirmSuccess marks a pending donation completed, assigns its receipt
// number and refreshes the campaign totals. Calls on an already finalized
// donation are no-ops, so replayed webhooks and double callbacks are safe.
func (s *Service) ConfirmSuccess(ctx context.Context, donationID int, metadata map[string]any) (*domain.Donation, error) {
	var confirmed *domain.Donation
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		donation, err := s.repo.FindByIDForUpdate(ctx, donationID)
		if err != nil {
			return err
		}
		if donation == nil {
			return ErrDonationNotFound
		}
		if !donation.IsPending() {
			confirmed = donation
			return nil
		}

		receipt, err := s.newReceiptNumber(ctx)
		if err != nil {
			return err
		}
		now := time.Now()
		donation.Status = domain.DonationStatusCompleted
		donation.ReceiptNumber = &receipt
		donation.CompletedAt = &now
		donation.MergeMetadata(metadata)
		if err := s.repo.Update(ctx, donation); err != nil {
			return err
		}
		if err := s.campaigns.RecalculateTotals(ctx, donation.CampaignID); err != nil {
			return err
		}
		zap.L().Info("donation completed",
			zap.Int("donation_id", donation.ID),
			zap.String("transaction_id", donation.TransactionID),
			zap.String("receipt_number", receipt))
		confirmed = donation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

func (s *Service) newReceiptNumber(ctx context.Context) (string, error) {
	for i := 0; i < transactionIDAttempts; i++ {
		receipt := validate.GenerateReceiptNumber(time.Now())
		exists, err := s.repo.ExistsByReceiptNumber(ctx, receipt)
		if err != nil {
			return "", err
		}
		if !exists {
			return receipt, nil
		}
	}
	return "", errors.New("can't generate unique receipt number")
}

// ConfirmFailure marks a pending donation failed. Completed donations stay
// completed even if a late failure notification arrives.
func (s *Service) ConfirmFailure(ctx context.Context, donationID int, reason string) (*domain.Donation, error) {
	var failed *domain.Donation
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		donation, err := s.repo.FindByIDForUpdate(ctx, donationID)
		if err != nil {
			return err
		}
		if donation == nil {
			return ErrDonationNotFound
		}
		if !donation.IsPending() {
			failed = donation
			return nil
		}

		now := time.Now()
		donation.Status = domain.DonationStatusFailed
		donation.FailedAt = &now
		donation.MergeMetadata(map[string]any{"failure_reason": reason})
		if err := s.repo.Update(ctx, donation); err != nil {
			return err
		}
		zap.L().Info("donation failed",
			zap.Int("donation_id", donation.ID),
			zap.String("reason", reason))
		failed = donation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return failed, nil
}

// Cancel lets the donor abandon a pending donation.
func (s *Service) Cancel(ctx context.Context, donationID int, userID int, admin bool) (*domain.Donation, error) {
	var cancelled *domain.Donation
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		donation, err := s.repo.FindByIDForUpdate(ctx, donationID)
		if err != nil {
			return err
		}
		if donation == nil {
			return ErrDonationNotFound
		}
		if !admin {
			if donation.UserID == nil || *donation.UserID != userID {
				return ErrNotDonationOwner
			}
		}
		if !donation.IsPending() {
			return ErrDonationNotPending
		}

		donation.Status = domain.DonationStatusCancelled
		if err := s.repo.Update(ctx, donation); err != nil {
			return err
		}
		cancelled = donation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// Refund reverses a completed donation through its provider and pulls the
// amount back out of the campaign totals.
func (s *Service) Refund(ctx context.Context, donationID int, amount float64) (*domain.Donation, error) {
	var refunded *domain.Donation
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		donation, err := s.repo.FindByIDForUpdate(ctx, donationID)
		if err != nil {
			return err
		}
		if donation == nil {
			return ErrDonationNotFound
		}
		if !donation.IsCompleted() {
			return ErrDonationNotCompleted
		}
		if amount <= 0 || amount > donation.Amount {
			amount = donation.Amount
		}

		provider, err := s.providers.Resolve(donation.PaymentProvider)
		if err != nil {
			return err
		}
		result := provider.Refund(ctx, donation, amount)
		if !result.Success {
			return fmt.Errorf("%w: %s", ErrRefundRejected, result.Message)
		}

		donation.Status = domain.DonationStatusRefunded
		if err := s.repo.Update(ctx, donation); err != nil {
			return err
		}
		if err := s.campaigns.RecalculateTotals(ctx, donation.CampaignID); err != nil {
			return err
		}
		zap.L().Info("donation refunded",
			zap.Int("donation_id", donation.ID),
			zap.Float64("amount", amount))
		refunded = donation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refunded, nil
}

func (s *Service) Get(ctx context.Context, donationID int) (*domain.Donation, error) {
	donation, err := s.repo.FindByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, ErrDonationNotFound
	}
	return donation, nil
}

// Receipt returns a completed donation for its owner or an admin.
func (s *Service) Receipt(ctx context.Context, donationID, userID int, admin bool) (*domain.Donation, error) {
	donation, err := s.Get(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if !admin {
		if donation.UserID == nil || *donation.UserID != userID {
			return nil, ErrNotDonationOwner
		}
	}
	if !donation.IsCompleted() || donation.ReceiptNumber == nil {
		return nil, ErrNoReceipt
	}
	return donation, nil
}

func (s *Service) History(ctx context.Context, userID int) ([]domain.Donation, error) {
	donations, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get donations", zap.Error(err))
		return nil, err
	}
	return donations, nil
}

func (s *Service) RecentForCampaign(ctx context.Context, campaignID, limit int) ([]domain.Donation, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	return s.repo.FindRecentCompleted(ctx, campaignID, limit)
}

// StalePending lists pending donations older than the cutoff for the
// reconciliation loop.
func (s *Service) StalePending(ctx context.Context, before time.Time, limit uint32) ([]domain.Donation, error) {
	return s.repo.FindStalePending(ctx, before, limit)
}

// Reconcile re-checks one stale pending donation against its provider.
// Donations the provider confirms are completed; donations pending past the
// expiry cutoff are failed.
func (s *Service) Reconcile(ctx context.Context, donation domain.Donation, expiredBefore time.Time) error {
	provider, err := s.providers.Resolve(donation.PaymentProvider)
	if err != nil {
		return err
	}
	if provider.Verify(ctx, &donation, nil) {
		_, err = s.ConfirmSuccess(ctx, donation.ID, donation.Metadata)
		return err
	}
	if donation.CreatedAt.Before(expiredBefore) {
		_, err = s.ConfirmFailure(ctx, donation.ID, "Payment expired")
		return err
	}
	return nil
}
