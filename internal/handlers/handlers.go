package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/givehub-za/givehub/docs"
	authhandlers "github.com/givehub-za/givehub/internal/handlers/auth"
	campaignhandlers "github.com/givehub-za/givehub/internal/handlers/campaigns"
	donationhandlers "github.com/givehub-za/givehub/internal/handlers/donations"
	eventhandlers "github.com/givehub-za/givehub/internal/handlers/events"
	webhookhandlers "github.com/givehub-za/givehub/internal/handlers/webhooks"
	"github.com/givehub-za/givehub/internal/service"
	"github.com/givehub-za/givehub/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type CampaignHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	Archive(w http.ResponseWriter, r *http.Request)
	RecentDonations(w http.ResponseWriter, r *http.Request)
}

type DonationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Success(w http.ResponseWriter, r *http.Request)
	Failure(w http.ResponseWriter, r *http.Request)
	Receipt(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Refund(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type EventHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Publish(w http.ResponseWriter, r *http.Request)
	SignUp(w http.ResponseWriter, r *http.Request)
	CancelSignup(w http.ResponseWriter, r *http.Request)
	ConfirmSignup(w http.ResponseWriter, r *http.Request)
	Volunteers(w http.ResponseWriter, r *http.Request)
}

type WebhookHandler interface {
	Receive(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	CampaignHandler CampaignHandler
	DonationHandler DonationHandler
	EventHandler    EventHandler
	WebhookHandler  WebhookHandler
}

func New(s *service.Services, registry webhookhandlers.Registry) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		CampaignHandler: campaignhandlers.New(s.CampaignService, s.DonationService),
		DonationHandler: donationhandlers.New(s.DonationService),
		EventHandler:    eventhandlers.New(s.EventService),
		WebhookHandler:  webhookhandlers.New(registry, s.DonationService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)
	})

	r.Route("/api/campaigns", func(r chi.Router) {
		r.Get("/", h.CampaignHandler.List)
		r.Get("/{slug}", h.CampaignHandler.Get)
		r.Get("/{slug}/donations/recent", h.CampaignHandler.RecentDonations)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware, auth.RequireAdmin)
			r.Post("/", h.CampaignHandler.Create)
			r.Post("/{slug}/activate", h.CampaignHandler.Activate)
			r.Post("/{slug}/archive", h.CampaignHandler.Archive)
		})
	})

	r.Route("/api/donations", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuthMiddleware)
			r.Post("/", h.DonationHandler.Submit)
		})
		r.Get("/{id}/status", h.DonationHandler.Status)
		r.Get("/{id}/success", h.DonationHandler.Success)
		r.Get("/{id}/failure", h.DonationHandler.Failure)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Get("/history", h.DonationHandler.History)
			r.Get("/{id}/receipt", h.DonationHandler.Receipt)
			r.Post("/{id}/cancel", h.DonationHandler.Cancel)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware, auth.RequireAdmin)
			r.Post("/{id}/refund", h.DonationHandler.Refund)
		})
	})

	r.Post("/api/webhooks/{provider}", h.WebhookHandler.Receive)

	r.Route("/api/events", func(r chi.Router) {
		r.Get("/", h.EventHandler.List)
		r.Get("/{slug}", h.EventHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuthMiddleware)
			r.Post("/{slug}/volunteers", h.EventHandler.SignUp)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware, auth.RequireAdmin)
			r.Post("/", h.EventHandler.Create)
			r.Post("/{slug}/publish", h.EventHandler.Publish)
			r.Get("/{slug}/volunteers", h.EventHandler.Volunteers)
		})
	})

	r.Route("/api/volunteers", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Post("/{id}/cancel", h.EventHandler.CancelSignup)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware, auth.RequireAdmin)
			r.Post("/{id}/confirm", h.EventHandler.ConfirmSignup)
		})
	})

	return r
}
