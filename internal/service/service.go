package service

import (
	"github.com/givehub-za/givehub/internal/config"
	"github.com/givehub-za/givehub/internal/pg"
	"github.com/givehub-za/givehub/internal/repo"
	"github.com/givehub-za/givehub/internal/service/authservice"
	"github.com/givehub-za/givehub/internal/service/campaignservice"
	"github.com/givehub-za/givehub/internal/service/donationservice"
	"github.com/givehub-za/givehub/internal/service/eventservice"
	pkgauth "github.com/givehub-za/givehub/pkg/auth"
)

// Services holds concrete service types: the donation service alone backs
// three handler-side interfaces, so callers narrow it themselves.
type Services struct {
	AuthService     *authservice.Service
	CampaignService *campaignservice.Service
	DonationService *donationservice.Service
	EventService    *eventservice.Service
}

func New(repo *repo.Repositories, cfg *config.Config, txManager pg.TXManager, providers donationservice.Providers) *Services {
	campaignService := campaignservice.New(repo.CampaignRepo)
	donationService := donationservice.New(
		repo.DonationRepo, campaignService, providers, txManager,
		cfg.Currency, cfg.MinDonation, cfg.MaxDonation,
	)
	eventService := eventservice.New(repo.EventRepo, repo.VolunteerRepo, txManager)
	authService := authservice.New(repo.UserRepo, &pkgauth.HashService{}, &pkgauth.JWTService{})

	return &Services{
		AuthService:     authService,
		CampaignService: campaignService,
		DonationService: donationService,
		EventService:    eventService,
	}
}
