package donations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/dto"
	"github.com/givehub-za/givehub/internal/service/donationservice"
	"github.com/givehub-za/givehub/pkg/auth"
	"github.com/givehub-za/givehub/pkg/utils"
)

//go:generate mockgen -source=donations.go -destination=mock_donations.go -package=donations

type Service interface {
	Submit(ctx context.Context, req donationservice.SubmitRequest) (*donationservice.SubmitResult, error)
	HandleReturn(ctx context.Context, donationID int, params map[string]string) (*domain.Donation, error)
	ConfirmFailure(ctx context.Context, donationID int, reason string) (*domain.Donation, error)
	Cancel(ctx context.Context, donationID, userID int, admin bool) (*domain.Donation, error)
	Refund(ctx context.Context, donationID int, amount float64) (*domain.Donation, error)
	Get(ctx context.Context, donationID int) (*domain.Donation, error)
	Receipt(ctx context.Context, donationID, userID int, admin bool) (*domain.Donation, error)
	History(ctx context.Context, userID int) ([]domain.Donation, error)
}

type DonationHandler struct {
	donationService Service
}

func New(donationService Service) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
	}
}

// Submit godoc
//
//	@Summary		Start a donation
//	@Description	Create a pending donation for a campaign and initialize payment with the chosen provider
//	@Tags			Donations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SubmitDonationRequestDTO	true	"Donation request body"
//	@Success		201		{object}	dto.SubmitDonationResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body or amount"
//	@Failure		404		{object}	utils.Response	"Campaign not found"
//	@Failure		409		{object}	utils.Response	"Campaign is not accepting donations"
//	@Failure		502		{object}	utils.Response	"Payment initialization failed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/donations [post]
func (h *DonationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitDonationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	submitReq := donationservice.SubmitRequest{
		CampaignID:   req.CampaignID,
		Amount:       req.Amount,
		Provider:     req.Provider,
		DonorName:    req.DonorName,
		DonorEmail:   req.DonorEmail,
		DonorPhone:   req.DonorPhone,
		DonorMessage: req.DonorMessage,
		Anonymous:    req.Anonymous,
		Recurring:    req.Recurring,
	}
	if userID := auth.UserIDFromContext(r.Context()); userID != 0 {
		submitReq.UserID = &userID
	}

	result, err := h.donationService.Submit(r.Context(), submitReq)
	if err != nil {
		switch {
		case errors.Is(err, donationservice.ErrAmountOutOfRange):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, donationservice.ErrCampaignNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, donationservice.ErrCampaignNotAccepting):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, donationservice.ErrPaymentInitFailed):
			utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dto.SubmitDonationResponseDTO{
		DonationID:    result.Donation.ID,
		TransactionID: result.Donation.TransactionID,
		Status:        result.Donation.Status,
		PaymentURL:    result.PaymentURL,
		RedirectURL:   result.RedirectURL,
	})
}

// Success godoc
//
//	@Summary		Payment success callback
//	@Description	Landing endpoint for the provider's success redirect; verifies the payment before completing the donation
//	@Tags			Donations
//	@Produce		json
//	@Param			id	path		int	true	"Donation ID"
//	@Success		200	{object}	dto.DonationStatusResponseDTO
//	@Failure		404	{object}	utils.Response	"Donation not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/donations/{id}/success [get]
func (h *DonationHandler) Success(w http.ResponseWriter, r *http.Request) {
	id, ok := donationID(w, r)
	if !ok {
		return
	}

	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	donation, err := h.donationService.HandleReturn(r.Context(), id, params)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, statusDTO(donation))
}

// Failure godoc
//
//	@Summary		Payment failure callback
//	@Description	Landing endpoint for the provider's cancel or error redirect; marks a pending donation failed
//	@Tags			Donations
//	@Produce		json
//	@Param			id	path		int	true	"Donation ID"
//	@Success		200	{object}	dto.DonationStatusResponseDTO
//	@Failure		404	{object}	utils.Response	"Donation not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/donations/{id}/failure [get]
func (h *DonationHandler) Failure(w http.ResponseWriter, r *http.Request) {
	id, ok := donationID(w, r)
	if !ok {
		return
	}

	reason := r.URL.Query().Get("reason")
	if reason == "" {
		reason = "Payment was cancelled or failed"
	}
	donation, err := h.donationService.ConfirmFailure(r.Context(), id, reason)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, statusDTO(donation))
}

// Status godoc
//
//	@Summary		Donation status
//	@Description	Poll the current state of a donation
//	@Tags			Donations
//	@Produce		json
//	@Param			id	path		int	true	"Donation ID"
//	@Success		200	{object}	dto.DonationStatusResponseDTO
//	@Failure		404	{object}	utils.Response	"Donation not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/donations/{id}/status [get]
func (h *DonationHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, ok := donationID(w, r)
	if !ok {
		return
	}
	donation, err := h.donationService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, statusDTO(donation))
}

// Receipt godoc
//
//	@Summary		Donation receipt
//	@Description	Retrieve the receipt for a completed donation
//	@Tags			Donations
//	@Produce		json
//	@Param			id	path		int	true	"Donation ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.ReceiptResponseDTO
//	@Failure		403	{object}	utils.Response	"Donation belongs to another user"
//	@Failure		404	{object}	utils.Response	"Donation not found or receipt not available"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/donations/{id}/receipt [get]
func (h *DonationHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, ok := donationID(w, r)
	if !ok {
		return
	}
	userID := auth.UserIDFromContext(r.Context())
	donation, err := h.donationService.Receipt(r.Context(), id, userID, auth.IsAdmin(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ReceiptResponseDTO{
		ReceiptNumber: *donation.ReceiptNumber,
		DonorName:     donation.DonorDisplayName(),
		Amount:        donation.Amount,
		Currency:      donation.Currency,
		CampaignID:    donation.CampaignID,
		CompletedAt:   donation.CompletedAt.Format(time.RFC3339),
	})
}

// Cancel godoc
//
//	@Summary		Cancel a pending donation
//	@Description	Allow the donation's owner to abandon a pending donation
//	@Tags			Donations
//	@Produce		json
//	@Param			id	path		int	true	"Donation ID"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.DonationStatusResponseDTO
//	@Failure		403	{object}	utils.Response	"Donation belongs to another user"
//	@Failure		404	{object}	utils.Response	"Donation not found"
//	@Failure		409	{object}	utils.Response	"Donation is not pending"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/donations/{id}/cancel [post]
func (h *DonationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := donationID(w, r)
	if !ok {
		return
	}
	userID := auth.UserIDFromContext(r.Context())
	donation, err := h.donationService.Cancel(r.Context(), id, userID, auth.IsAdmin(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, statusDTO(donation))
}

// Refund godoc
//
//	@Summary		Refund a completed donation
//	@Description	Reverse a completed donation through its payment provider
//	@Tags			Donations
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int						true	"Donation ID"
//	@Param			request	body	dto.RefundRequestDTO	false	"Optional partial amount"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.DonationStatusResponseDTO
//	@Failure		404	{object}	utils.Response	"Donation not found"
//	@Failure		409	{object}	utils.Response	"Donation is not completed"
//	@Failure		502	{object}	utils.Response	"Refund rejected by provider"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/donations/{id}/refund [post]
func (h *DonationHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, ok := donationID(w, r)
	if !ok {
		return
	}
	var req dto.RefundRequestDTO
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	donation, err := h.donationService.Refund(r.Context(), id, req.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, statusDTO(donation))
}

// History godoc
//
//	@Summary		Donation history
//	@Description	List the authenticated user's donations, newest first
//	@Tags			Donations
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.DonationStatusResponseDTO
//	@Failure		204	{object}	utils.Response	"No data available"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/donations/history [get]
func (h *DonationHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	donations, err := h.donationService.History(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(donations) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	var response []dto.DonationStatusResponseDTO
	for i := range donations {
		response = append(response, statusDTO(&donations[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func donationID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid donation id")
		return 0, false
	}
	return id, true
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, donationservice.ErrDonationNotFound), errors.Is(err, donationservice.ErrNoReceipt):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, donationservice.ErrNotDonationOwner):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, donationservice.ErrDonationNotPending), errors.Is(err, donationservice.ErrDonationNotCompleted):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, donationservice.ErrRefundRejected):
		utils.RespondWithError(w, http.StatusBadGateway, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func statusDTO(d *domain.Donation) dto.DonationStatusResponseDTO {
	resp := dto.DonationStatusResponseDTO{
		DonationID:    d.ID,
		TransactionID: d.TransactionID,
		CampaignID:    d.CampaignID,
		Amount:        d.Amount,
		Currency:      d.Currency,
		Provider:      d.PaymentProvider,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
	if d.ReceiptNumber != nil {
		resp.ReceiptNumber = *d.ReceiptNumber
	}
	if d.CompletedAt != nil {
		resp.CompletedAt = d.CompletedAt.Format(time.RFC3339)
	}
	if d.FailedAt != nil {
		resp.FailedAt = d.FailedAt.Format(time.RFC3339)
	}
	return resp
}
