package campaigns

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/dto"
	"github.com/givehub-za/givehub/internal/service/campaignservice"
	"github.com/givehub-za/givehub/pkg/utils"
)

type mocks struct {
	campaigns *MockService
	donations *MockDonationService
}

func NewMock(t *testing.T) (*CampaignHandler, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		campaigns: NewMockService(ctrl),
		donations: NewMockDonationService(ctrl),
	}
	handler := New(m.campaigns, m.donations)
	defer ctrl.Finish()
	return handler, m
}

func withSlug(req *http.Request, slug string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", slug)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func activeCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:            7,
		Title:         "Clean Water for Khayelitsha",
		Slug:          "clean-water-for-khayelitsha",
		TargetAmount:  50000,
		CurrentAmount: 1500,
		DonorCount:    3,
		Status:        domain.CampaignStatusActive,
		CreatedAt:     time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestListHandler(t *testing.T) {
	handler, m := NewMock(t)

	m.campaigns.EXPECT().
		List(gomock.Any(), "active", "water", "").
		Return([]domain.Campaign{*activeCampaign()}, nil)

	req := httptest.NewRequest("GET", "/api/campaigns?status=active&category=water", nil)
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []dto.CampaignResponseDTO
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "clean-water-for-khayelitsha", resp[0].Slug)
	assert.InDelta(t, 3.0, resp[0].Progress, 0.001)
}

func TestGetHandler(t *testing.T) {
	handler, m := NewMock(t)

	tests := []struct {
		name          string
		slug          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Campaign found",
			slug: "clean-water-for-khayelitsha",
			prepareMock: func() {
				m.campaigns.EXPECT().GetBySlug(gomock.Any(), "clean-water-for-khayelitsha").Return(activeCampaign(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Campaign not found",
			slug: "missing",
			prepareMock: func() {
				m.campaigns.EXPECT().GetBySlug(gomock.Any(), "missing").Return(nil, campaignservice.ErrCampaignNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: campaignservice.ErrCampaignNotFound.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", "/api/campaigns/"+tt.slug, nil)
			req = withSlug(req, tt.slug)
			rr := httptest.NewRecorder()

			handler.Get(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestCreateHandler(t *testing.T) {
	handler, m := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful create",
			body: `{"title":"Clean Water for Khayelitsha","target_amount":50000}`,
			prepareMock: func() {
				m.campaigns.EXPECT().
					Create(gomock.Any(), campaignservice.CreateRequest{
						Title:        "Clean Water for Khayelitsha",
						TargetAmount: 50000,
					}).
					Return(activeCampaign(), nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Non-positive target",
			body: `{"title":"Bad","target_amount":0}`,
			prepareMock: func() {
				m.campaigns.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, campaignservice.ErrInvalidTarget)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: campaignservice.ErrInvalidTarget.Error(),
		},
		{
			name: "Invalid request body",
			body: `{invalid json`,
			prepareMock: func() {
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/campaigns", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Create(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestArchiveHandler(t *testing.T) {
	handler, m := NewMock(t)

	archived := activeCampaign()
	archived.Status = domain.CampaignStatusArchived

	m.campaigns.EXPECT().GetBySlug(gomock.Any(), "clean-water-for-khayelitsha").Return(activeCampaign(), nil)
	m.campaigns.EXPECT().Archive(gomock.Any(), 7).Return(archived, nil)

	req := httptest.NewRequest("POST", "/api/campaigns/clean-water-for-khayelitsha/archive", nil)
	req = withSlug(req, "clean-water-for-khayelitsha")
	rr := httptest.NewRecorder()

	handler.Archive(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp dto.CampaignResponseDTO
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, "archived", resp.Status)
}

func TestRecentDonationsHandler(t *testing.T) {
	handler, m := NewMock(t)

	completedAt := time.Date(2026, 8, 31, 16, 9, 57, 0, time.UTC)
	donations := []domain.Donation{
		{ID: 42, Amount: 250, DonorName: "Thandi M", Status: domain.DonationStatusCompleted, CompletedAt: &completedAt},
		{ID: 43, Amount: 100, Anonymous: true, Status: domain.DonationStatusCompleted, CompletedAt: &completedAt},
	}

	m.campaigns.EXPECT().GetBySlug(gomock.Any(), "clean-water-for-khayelitsha").Return(activeCampaign(), nil)
	m.donations.EXPECT().RecentForCampaign(gomock.Any(), 7, 0).Return(donations, nil)

	req := httptest.NewRequest("GET", "/api/campaigns/clean-water-for-khayelitsha/donations/recent", nil)
	req = withSlug(req, "clean-water-for-khayelitsha")
	rr := httptest.NewRecorder()

	handler.RecentDonations(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []dto.RecentDonationDTO
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "Thandi M", resp[0].DonorName)
	assert.Equal(t, "Anonymous Donor", resp[1].DonorName)
}
