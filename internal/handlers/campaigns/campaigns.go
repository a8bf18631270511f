package campaigns

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
	"github.com/givehub-za/givehub/internal/service/campaignservice"
	"github.com/givehub-za/givehub/pkg/auth"
	"github.com/givehub-za/givehub/pkg/utils"
)

//go:generate mockgen -source=campaigns.go -destination=mock_campaigns.go -package=campaigns

type Service interface {
	Create(ctx context.Context, req campaignservice.CreateRequest) (*domain.Campaign, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Campaign, error)
	List(ctx context.Context, status, category, q string) ([]domain.Campaign, error)
	Activate(ctx context.Context, id int) (*domain.Campaign, error)
	Archive(ctx context.Context, id int) (*domain.Campaign, error)
}

type DonationService interface {
	RecentForCampaign(ctx context.Context, campaignID, limit int) ([]domain.Donation, error)
}

type CampaignHandler struct {
	campaignService Service
	donationService DonationService
}

func New(campaignService Service, donationService DonationService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		donationService: donationService,
	}
}

// List godoc
//
//	@Summary		List campaigns
//	@Description	List campaigns with optional status, category and title filters
//	@Tags			Campaigns
//	@Produce		json
//	@Param			status		query	string	false	"Campaign status"
//	@Param			category	query	string	false	"Campaign category"
//	@Param			q			query	string	false	"Title search"
//	@Success		200	{array}		dto.CampaignResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/campaigns [get]
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaignService.List(r.Context(),
		r.URL.Query().Get("status"),
		r.URL.Query().Get("category"),
		r.URL.Query().Get("q"),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.CampaignResponseDTO, 0, len(campaigns))
	for i := range campaigns {
		response = append(response, campaignDTO(&campaigns[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Get godoc
//
//	@Summary		Get a campaign
//	@Description	Retrieve one campaign by slug
//	@Tags			Campaigns
//	@Produce		json
//	@Param			slug	path		string	true	"Campaign slug"
//	@Success		200		{object}	dto.CampaignResponseDTO
//	@Failure		404		{object}	utils.Response	"Campaign not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/campaigns/{slug} [get]
func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.bySlug(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, campaignDTO(campaign))
}

// Create godoc
//
//	@Summary		Create a campaign
//	@Description	Create a new draft campaign
//	@Tags			Campaigns
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.CreateCampaignRequestDTO	true	"Campaign request body"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.CampaignResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body or target amount"
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/campaigns [post]
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCampaignRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	createReq := campaignservice.CreateRequest{
		Title:        req.Title,
		Summary:      req.Summary,
		Category:     req.Category,
		TargetAmount: req.TargetAmount,
	}
	if startAt, err := time.Parse(time.RFC3339, req.StartAt); err == nil && req.StartAt != "" {
		createReq.StartAt = &startAt
	}
	if endAt, err := time.Parse(time.RFC3339, req.EndAt); err == nil && req.EndAt != "" {
		createReq.EndAt = &endAt
	}
	if userID := auth.UserIDFromContext(r.Context()); userID != 0 {
		createReq.CreatedBy = &userID
	}

	campaign, err := h.campaignService.Create(r.Context(), createReq)
	if err != nil {
		if errors.Is(err, campaignservice.ErrInvalidTarget) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, campaignDTO(campaign))
}

// Activate godoc
//
//	@Summary		Activate a campaign
//	@Description	Open a draft campaign for donations
//	@Tags			Campaigns
//	@Produce		json
//	@Param			slug	path	string	true	"Campaign slug"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.CampaignResponseDTO
//	@Failure		404	{object}	utils.Response	"Campaign not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/campaigns/{slug}/activate [post]
func (h *CampaignHandler) Activate(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.bySlug(w, r)
	if !ok {
		return
	}
	updated, err := h.campaignService.Activate(r.Context(), campaign.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, campaignDTO(updated))
}

// Archive godoc
//
//	@Summary		Archive a campaign
//	@Description	Close a campaign to further donations
//	@Tags			Campaigns
//	@Produce		json
//	@Param			slug	path	string	true	"Campaign slug"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.CampaignResponseDTO
//	@Failure		404	{object}	utils.Response	"Campaign not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/campaigns/{slug}/archive [post]
func (h *CampaignHandler) Archive(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.bySlug(w, r)
	if !ok {
		return
	}
	updated, err := h.campaignService.Archive(r.Context(), campaign.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, campaignDTO(updated))
}

// RecentDonations godoc
//
//	@Summary		Recent donations
//	@Description	List the latest completed, non-anonymous donations for a campaign
//	@Tags			Campaigns
//	@Produce		json
//	@Param			slug	path	string	true	"Campaign slug"
//	@Param			limit	query	int		false	"How many donations to return"
//	@Success		200	{array}		dto.RecentDonationDTO
//	@Failure		404	{object}	utils.Response	"Campaign not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/campaigns/{slug}/donations/recent [get]
func (h *CampaignHandler) RecentDonations(w http.ResponseWriter, r *http.Request) {
	campaign, ok := h.bySlug(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	donations, err := h.donationService.RecentForCampaign(r.Context(), campaign.ID, limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.RecentDonationDTO, 0, len(donations))
	for i := range donations {
		d := &donations[i]
		item := dto.RecentDonationDTO{
			DonorName: d.DonorDisplayName(),
			Amount:    d.Amount,
			Message:   d.DonorMessage,
		}
		if d.CompletedAt != nil {
			item.CompletedAt = d.CompletedAt.Format(time.RFC3339)
		}
		response = append(response, item)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *CampaignHandler) bySlug(w http.ResponseWriter, r *http.Request) (*domain.Campaign, bool) {
	campaign, err := h.campaignService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, campaignservice.ErrCampaignNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return nil, false
	}
	return campaign, true
}

func campaignDTO(c *domain.Campaign) dto.CampaignResponseDTO {
	resp := dto.CampaignResponseDTO{
		ID:              c.ID,
		Title:           c.Title,
		Slug:            c.Slug,
		Summary:         c.Summary,
		Category:        c.Category,
		TargetAmount:    c.TargetAmount,
		CurrentAmount:   c.CurrentAmount,
		DonorCount:      c.DonorCount,
		AverageDonation: c.AverageDonation,
		Status:          c.Status,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
	if c.TargetAmount > 0 {
		resp.Progress = c.CurrentAmount / c.TargetAmount * 100
	}
	if c.StartAt != nil {
		resp.StartAt = c.StartAt.Format(time.RFC3339)
	}
	if c.EndAt != nil {
		resp.EndAt = c.EndAt.Format(time.RFC3339)
	}
	return resp
}
