package events

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
	"github.com/givehub-za/givehub/internal/service/eventservice"
	"github.com/givehub-za/givehub/pkg/auth"
	"github.com/givehub-za/givehub/pkg/utils"
)

func NewMock(t *testing.T) (*EventHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func withSlug(req *http.Request, slug string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", slug)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func activeEvent() *domain.Event {
	capacity := 20
	return &domain.Event{
		ID:             2,
		Title:          "Beach Cleanup",
		Slug:           "beach-cleanup",
		Capacity:       &capacity,
		VolunteerCount: 13,
		StartsAt:       time.Date(2026, 9, 12, 8, 0, 0, 0, time.UTC),
		EndsAt:         time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC),
		Status:         domain.EventStatusActive,
	}
}

func TestListHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().List(gomock.Any(), "active").Return([]domain.Event{*activeEvent()}, nil)

	req := httptest.NewRequest("GET", "/api/events?status=active", nil)
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []dto.EventResponseDTO
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "beach-cleanup", resp[0].Slug)
	assert.Equal(t, 13, resp[0].VolunteerCount)
}

func TestGetHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		slug          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Event found",
			slug: "beach-cleanup",
			prepareMock: func() {
				service.EXPECT().GetBySlug(gomock.Any(), "beach-cleanup").Return(activeEvent(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Event not found",
			slug: "missing",
			prepareMock: func() {
				service.EXPECT().GetBySlug(gomock.Any(), "missing").Return(nil, eventservice.ErrEventNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: eventservice.ErrEventNotFound.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", "/api/events/"+tt.slug, nil)
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
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful create",
			body: `{"title":"Beach Cleanup","starts_at":"2026-09-12T08:00:00Z","ends_at":"2026-09-12T12:00:00Z"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), eventservice.CreateRequest{
					Title:    "Beach Cleanup",
					StartsAt: time.Date(2026, 9, 12, 8, 0, 0, 0, time.UTC),
					EndsAt:   time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC),
				}).Return(activeEvent(), nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Duplicate title",
			body: `{"title":"Beach Cleanup","starts_at":"2026-09-12T08:00:00Z","ends_at":"2026-09-12T12:00:00Z"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, eventservice.ErrEventExists)
			},
			expectedCode:  http.StatusConflict,
			expectedError: eventservice.ErrEventExists.Error(),
		},
		{
			name: "Missing starts_at",
			body: `{"title":"Beach Cleanup"}`,
			prepareMock: func() {
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid starts_at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/events", bytes.NewReader([]byte(tt.body)))
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

func TestSignUpHandler(t *testing.T) {
	handler, service := NewMock(t)

	signup := &domain.Volunteer{ID: 9, EventID: 2, Status: domain.VolunteerStatusPending}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Guest signup",
			body: `{"name":"Sipho N","email":"sipho@example.com"}`,
			prepareMock: func() {
				service.EXPECT().GetBySlug(gomock.Any(), "beach-cleanup").Return(activeEvent(), nil)
				service.EXPECT().SignUp(gomock.Any(), eventservice.SignUpRequest{
					EventID: 2,
					Name:    "Sipho N",
					Email:   "sipho@example.com",
				}).Return(signup, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Event full",
			body: `{"name":"Sipho N","email":"sipho@example.com"}`,
			prepareMock: func() {
				service.EXPECT().GetBySlug(gomock.Any(), "beach-cleanup").Return(activeEvent(), nil)
				service.EXPECT().SignUp(gomock.Any(), gomock.Any()).Return(nil, eventservice.ErrEventFull)
			},
			expectedCode:  http.StatusConflict,
			expectedError: eventservice.ErrEventFull.Error(),
		},
		{
			name: "Already signed up",
			body: `{"name":"Sipho N","email":"sipho@example.com"}`,
			prepareMock: func() {
				service.EXPECT().GetBySlug(gomock.Any(), "beach-cleanup").Return(activeEvent(), nil)
				service.EXPECT().SignUp(gomock.Any(), gomock.Any()).Return(nil, eventservice.ErrAlreadySignedUp)
			},
			expectedCode:  http.StatusConflict,
			expectedError: eventservice.ErrAlreadySignedUp.Error(),
		},
		{
			name: "Invalid request body",
			body: `{invalid json`,
			prepareMock: func() {
				service.EXPECT().GetBySlug(gomock.Any(), "beach-cleanup").Return(activeEvent(), nil)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/events/beach-cleanup/volunteers", bytes.NewReader([]byte(tt.body)))
			req = withSlug(req, "beach-cleanup")
			rr := httptest.NewRecorder()

			handler.SignUp(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
			if tt.expectedCode == http.StatusCreated {
				var resp dto.SignUpResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 9, resp.SignupID)
				assert.Equal(t, "pending", resp.Status)
			}
		})
	}
}

func TestCancelSignupHandler(t *testing.T) {
	handler, service := NewMock(t)

	cancelled := &domain.Volunteer{ID: 9, EventID: 2, Status: domain.VolunteerStatusCancelled}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Owner cancels",
			prepareMock: func() {
				service.EXPECT().CancelSignup(gomock.Any(), 9, 3, false).Return(cancelled, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Not the owner",
			prepareMock: func() {
				service.EXPECT().CancelSignup(gomock.Any(), 9, 3, false).Return(nil, eventservice.ErrNotSignupOwner)
			},
			expectedCode:  http.StatusForbidden,
			expectedError: eventservice.ErrNotSignupOwner.Error(),
		},
		{
			name: "Signup not found",
			prepareMock: func() {
				service.EXPECT().CancelSignup(gomock.Any(), 9, 3, false).Return(nil, eventservice.ErrSignupNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: eventservice.ErrSignupNotFound.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/volunteers/9/cancel", nil)
			req = req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, 3))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "9")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rr := httptest.NewRecorder()

			handler.CancelSignup(rr, req)

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
