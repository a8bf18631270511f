package webhooks

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/payment"
	donationservice "github.com/givehub-za/givehub/internal/service/donationservice"
	"github.com/givehub-za/givehub/pkg/utils"
)

//go:generate mockgen -source=webhooks.go -destination=mock_webhooks.go -package=webhooks

type Registry interface {
	Resolve(name string) (payment.Provider, error)
}

type DonationService interface {
	ConfirmSuccess(ctx context.Context, donationID int, metadata map[string]any) (*domain.Donation, error)
	ConfirmFailure(ctx context.Context, donationID int, reason string) (*domain.Donation, error)
}

type WebhookHandler struct {
	registry        Registry
	donationService DonationService
}

func New(registry Registry, donationService DonationService) *WebhookHandler {
	return &WebhookHandler{
		registry:        registry,
		donationService: donationService,
	}
}

// Receive godoc
//
//	@Summary		Payment provider webhook
//	@Description	Accept asynchronous payment notifications; authenticated payloads are routed to the donation lifecycle
//	@Tags			Webhooks
//	@Accept			json
//	@Produce		json
//	@Param			provider	path		string	true	"Provider name (yoco, ozow)"
//	@Success		200			{object}	utils.Response	"Notification processed"
//	@Failure		400			{object}	utils.Response	"Unparseable or unauthenticated payload"
//	@Failure		404			{object}	utils.Response	"Unknown provider"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/webhooks/{provider} [post]
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	providerName := chi.URLParam(r, "provider")
	provider, err := h.registry.Resolve(providerName)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown provider")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	event, err := provider.ParseWebhook(body)
	if err != nil {
		zap.L().Warn("webhook rejected",
			zap.String("provider", providerName),
			zap.Error(err))
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	metadata := make(map[string]any, len(event.Fields))
	for k, v := range event.Fields {
		metadata[providerName+"_"+k] = v
	}

	if event.Succeeded {
		_, err = h.donationService.ConfirmSuccess(r.Context(), event.DonationID, metadata)
	} else {
		_, err = h.donationService.ConfirmFailure(r.Context(), event.DonationID, event.Reason)
	}
	if err != nil {
		// Unknown donation ids get a success response so the provider
		// stops retrying a notification we can never apply.
		if errors.Is(err, donationservice.ErrDonationNotFound) {
			zap.L().Warn("webhook for unknown donation",
				zap.String("provider", providerName),
				zap.Int("donation_id", event.DonationID))
			utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "OK"})
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "OK"})
}
