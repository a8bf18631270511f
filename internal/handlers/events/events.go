package events

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
	"github.com/givehub-za/givehub/internal/service/eventservice"
	"github.com/givehub-za/givehub/pkg/auth"
	"github.com/givehub-za/givehub/pkg/utils"
)

//go:generate mockgen -source=events.go -destination=mock_events.go -package=events

type Service interface {
	Create(ctx context.Context, req eventservice.CreateRequest) (*domain.Event, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Event, error)
	List(ctx context.Context, status string) ([]domain.Event, error)
	Publish(ctx context.Context, id int) (*domain.Event, error)
	SignUp(ctx context.Context, req eventservice.SignUpRequest) (*domain.Volunteer, error)
	CancelSignup(ctx context.Context, signupID, userID int, admin bool) (*domain.Volunteer, error)
	ConfirmSignup(ctx context.Context, signupID int) (*domain.Volunteer, error)
	Volunteers(ctx context.Context, eventID int) ([]domain.Volunteer, error)
}

type EventHandler struct {
	eventService Service
}

func New(eventService Service) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List godoc
//
//	@Summary		List events
//	@Description	List volunteer events, optionally filtered by status
//	@Tags			Events
//	@Produce		json
//	@Param			status	query	string	false	"Event status"
//	@Success		200	{array}		dto.EventResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/events [get]
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.EventResponseDTO, 0, len(events))
	for i := range events {
		response = append(response, eventDTO(&events[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Get godoc
//
//	@Summary		Get an event
//	@Description	Retrieve one event by slug
//	@Tags			Events
//	@Produce		json
//	@Param			slug	path		string	true	"Event slug"
//	@Success		200		{object}	dto.EventResponseDTO
//	@Failure		404		{object}	utils.Response	"Event not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/events/{slug} [get]
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, ok := h.bySlug(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, eventDTO(event))
}

// Create godoc
//
//	@Summary		Create an event
//	@Description	Create a new draft volunteer event
//	@Tags			Events
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.CreateEventRequestDTO	true	"Event request body"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.EventResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		409	{object}	utils.Response	"Event with this title already exists"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/events [post]
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid starts_at")
		return
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ends_at")
		return
	}

	createReq := eventservice.CreateRequest{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Capacity:    req.Capacity,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
	}
	if deadline, err := time.Parse(time.RFC3339, req.SignupDeadline); err == nil && req.SignupDeadline != "" {
		createReq.SignupDeadline = &deadline
	}
	if userID := auth.UserIDFromContext(r.Context()); userID != 0 {
		createReq.CreatedBy = &userID
	}

	event, err := h.eventService.Create(r.Context(), createReq)
	if err != nil {
		if errors.Is(err, eventservice.ErrEventExists) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, eventDTO(event))
}

// Publish godoc
//
//	@Summary		Publish an event
//	@Description	Open a draft event for volunteer signups
//	@Tags			Events
//	@Produce		json
//	@Param			slug	path	string	true	"Event slug"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.EventResponseDTO
//	@Failure		404	{object}	utils.Response	"Event not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/events/{slug}/publish [post]
func (h *EventHandler) Publish(w http.ResponseWriter, r *http.Request) {
	event, ok := h.bySlug(w, r)
	if !ok {
		return
	}
	updated, err := h.eventService.Publish(r.Context(), event.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, eventDTO(updated))
}

// SignUp godoc
//
//	@Summary		Sign up as a volunteer
//	@Description	Register for an event; authentication is optional
//	@Tags			Events
//	@Accept			json
//	@Produce		json
//	@Param			slug	path	string	true	"Event slug"
//	@Param			request	body	dto.SignUpRequestDTO	true	"Volunteer details"
//	@Success		201	{object}	dto.SignUpResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		404	{object}	utils.Response	"Event not found"
//	@Failure		409	{object}	utils.Response	"Event full, closed or already signed up"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/events/{slug}/volunteers [post]
func (h *EventHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	event, ok := h.bySlug(w, r)
	if !ok {
		return
	}
	var req dto.SignUpRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	signUpReq := eventservice.SignUpRequest{
		EventID: event.ID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if userID := auth.UserIDFromContext(r.Context()); userID != 0 {
		signUpReq.UserID = &userID
	}

	signup, err := h.eventService.SignUp(r.Context(), signUpReq)
	if err != nil {
		switch {
		case errors.Is(err, eventservice.ErrEventNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, eventservice.ErrEventNotAccepting),
			errors.Is(err, eventservice.ErrEventFull),
			errors.Is(err, eventservice.ErrAlreadySignedUp):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.SignUpResponseDTO{
		SignupID: signup.ID,
		EventID:  signup.EventID,
		Status:   signup.Status,
	})
}

// CancelSignup godoc
//
//	@Summary		Cancel a signup
//	@Description	Cancel a volunteer signup; only the owner or an admin may cancel
//	@Tags			Events
//	@Produce		json
//	@Param			id	path	int	true	"Signup id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.SignUpResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid signup id"
//	@Failure		403	{object}	utils.Response	"Signup belongs to another user"
//	@Failure		404	{object}	utils.Response	"Signup not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/volunteers/{id}/cancel [post]
func (h *EventHandler) CancelSignup(w http.ResponseWriter, r *http.Request) {
	signupID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid signup id")
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	signup, err := h.eventService.CancelSignup(r.Context(), signupID, userID, auth.IsAdmin(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, eventservice.ErrSignupNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, eventservice.ErrNotSignupOwner):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SignUpResponseDTO{
		SignupID: signup.ID,
		EventID:  signup.EventID,
		Status:   signup.Status,
	})
}

// ConfirmSignup godoc
//
//	@Summary		Confirm a signup
//	@Description	Mark a pending volunteer signup as confirmed
//	@Tags			Events
//	@Produce		json
//	@Param			id	path	int	true	"Signup id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.SignUpResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid signup id"
//	@Failure		404	{object}	utils.Response	"Signup not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/volunteers/{id}/confirm [post]
func (h *EventHandler) ConfirmSignup(w http.ResponseWriter, r *http.Request) {
	signupID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid signup id")
		return
	}

	signup, err := h.eventService.ConfirmSignup(r.Context(), signupID)
	if err != nil {
		if errors.Is(err, eventservice.ErrSignupNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SignUpResponseDTO{
		SignupID: signup.ID,
		EventID:  signup.EventID,
		Status:   signup.Status,
	})
}

// Volunteers godoc
//
//	@Summary		List volunteers
//	@Description	List signups for an event
//	@Tags			Events
//	@Produce		json
//	@Param			slug	path	string	true	"Event slug"
//	@Security		BearerAuth
//	@Success		200	{array}		dto.SignUpResponseDTO
//	@Failure		404	{object}	utils.Response	"Event not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/events/{slug}/volunteers [get]
func (h *EventHandler) Volunteers(w http.ResponseWriter, r *http.Request) {
	event, ok := h.bySlug(w, r)
	if !ok {
		return
	}
	volunteers, err := h.eventService.Volunteers(r.Context(), event.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.SignUpResponseDTO, 0, len(volunteers))
	for _, v := range volunteers {
		response = append(response, dto.SignUpResponseDTO{
			SignupID: v.ID,
			EventID:  v.EventID,
			Status:   v.Status,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *EventHandler) bySlug(w http.ResponseWriter, r *http.Request) (*domain.Event, bool) {
	event, err := h.eventService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, eventservice.ErrEventNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return nil, false
	}
	return event, true
}

func eventDTO(e *domain.Event) dto.EventResponseDTO {
	resp := dto.EventResponseDTO{
		ID:             e.ID,
		Title:          e.Title,
		Slug:           e.Slug,
		Description:    e.Description,
		Location:       e.Location,
		Category:       e.Category,
		Capacity:       e.Capacity,
		VolunteerCount: e.VolunteerCount,
		StartsAt:       e.StartsAt.Format(time.RFC3339),
		EndsAt:         e.EndsAt.Format(time.RFC3339),
		Status:         e.Status,
	}
	if e.SignupDeadline != nil {
		resp.SignupDeadline = e.SignupDeadline.Format(time.RFC3339)
	}
	return resp
}
