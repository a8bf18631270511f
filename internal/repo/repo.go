package repo

import (
	"github.com/givehub-za/givehub/internal/pg"
	campaignrepo "github.com/givehub-za/givehub/internal/repo/campaign-repo"
	donationrepo "github.com/givehub-za/givehub/internal/repo/donation-repo"
	eventrepo "github.com/givehub-za/givehub/internal/repo/event-repo"
	userrepo "github.com/givehub-za/givehub/internal/repo/user-repo"
	volunteerrepo "github.com/givehub-za/givehub/internal/repo/volunteer-repo"
	"github.com/givehub-za/givehub/internal/service/authservice"
	"github.com/givehub-za/givehub/internal/service/campaignservice"
	"github.com/givehub-za/givehub/internal/service/donationservice"
	"github.com/givehub-za/givehub/internal/service/eventservice"
)

type Repositories struct {
	UserRepo      authservice.Repo
	CampaignRepo  campaignservice.Repo
	DonationRepo  donationservice.Repo
	EventRepo     eventservice.EventRepo
	VolunteerRepo eventservice.VolunteerRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	userRepo := userrepo.New(conn)
	campaignRepo := campaignrepo.New(conn, txManager)
	donationRepo := donationrepo.New(conn, txManager)
	eventRepo := eventrepo.New(conn, txManager)
	volunteerRepo := volunteerrepo.New(conn, txManager)

	return &Repositories{
		UserRepo:      userRepo,
		CampaignRepo:  campaignRepo,
		DonationRepo:  donationRepo,
		EventRepo:     eventRepo,
		VolunteerRepo: volunteerRepo,
	}
}
