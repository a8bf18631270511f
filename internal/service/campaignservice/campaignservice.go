package campaignservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/pkg/validate"
)

//go:generate mockgen -source=campaignservice.go -destination=mock_campaignservice.go -package=campaignservice

type Repo interface {
	FindByID(ctx context.Context, id int) (*domain.Campaign, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Campaign, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error)
	Update(ctx context.Context, campaign *domain.Campaign) error
	List(ctx context.Context, status, category, q string) ([]domain.Campaign, error)
	AggregateDonations(ctx context.Context, campaignID int) (*domain.CampaignTotals, error)
	UpdateTotals(ctx context.Context, campaignID int, totals *domain.CampaignTotals, status string) error
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

var (
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrInvalidTarget     = errors.New("target amount must be positive")
	ErrCampaignNotActive = errors.New("campaign is not active")
)

type CreateRequest struct {
	Title        string
	Summary      string
	Category     string
	TargetAmount float64
	StartAt      *time.Time
	EndAt        *time.Time
	CreatedBy    *int
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Campaign, error) {
	if req.TargetAmount <= 0 {
		return nil, ErrInvalidTarget
	}
	slug, err := s.uniqueSlug(ctx, validate.Slugify(req.Title))
	if err != nil {
		return nil, err
	}

	campaign := &domain.Campaign{
		Title:        req.Title,
		Slug:         slug,
		Summary:      req.Summary,
		Category:     req.Category,
		TargetAmount: req.TargetAmount,
		Status:       domain.CampaignStatusDraft,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		CreatedBy:    req.CreatedBy,
	}
	return s.repo.Save(ctx, campaign)
}

// uniqueSlug appends a numeric suffix until the slug is free, so two
// campaigns may share a title.
func (s *Service) uniqueSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		exists, err := s.repo.ExistsBySlug(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Campaign, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Campaign, error) {
	campaign, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *Service) List(ctx context.Context, status, category, q string) ([]domain.Campaign, error) {
	return s.repo.List(ctx, status, category, q)
}

func (s *Service) Activate(ctx context.Context, id int) (*domain.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	campaign.Status = domain.CampaignStatusActive
	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *Service) Archive(ctx context.Context, id int) (*domain.Campaign, error) {
	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	campaign.Status = domain.CampaignStatusArchived
	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// RecalculateTotals rebuilds the campaign's running totals from its completed
// donations. A campaign that reaches its target is moved to completed. The
// lifecycle only moves forward; a refund dropping the totals back under
// target does not reopen the campaign.
func (s *Service) RecalculateTotals(ctx context.Context, campaignID int) error {
	campaign, err := s.repo.FindByID(ctx, campaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrCampaignNotFound
	}

	totals, err := s.repo.AggregateDonations(ctx, campaignID)
	if err != nil {
		return err
	}

	status := campaign.Status
	if status == domain.CampaignStatusActive && totals.CurrentAmount >= campaign.TargetAmount {
		status = domain.CampaignStatusCompleted
		zap.L().Info("campaign reached its target",
			zap.Int("campaign_id", campaignID),
			zap.Float64("current_amount", totals.CurrentAmount))
	}

	return s.repo.UpdateTotals(ctx, campaignID, totals, status)
}
