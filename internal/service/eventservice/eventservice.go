package eventservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/pg"
	"github.com/givehub-za/givehub/pkg/validate"
)

//go:generate mockgen -source=eventservice.go -destination=mock_eventservice.go -package=eventservice

type EventRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Event, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Event, error)
	FindByIDForUpdate(ctx context.Context, id int) (*domain.Event, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	List(ctx context.Context, status string) ([]domain.Event, error)
	UpdateVolunteerCount(ctx context.Context, eventID, count int) error
}

type VolunteerRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Volunteer, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID int) (*domain.Volunteer, error)
	Save(ctx context.Context, volunteer *domain.Volunteer) (*domain.Volunteer, error)
	Update(ctx context.Context, volunteer *domain.Volunteer) error
	FindByEventID(ctx context.Context, eventID int) ([]domain.Volunteer, error)
	CountActive(ctx context.Context, eventID int) (int, error)
}

type Service struct {
	events     EventRepo
	volunteers VolunteerRepo
	txManager  pg.TXManager
}

func New(events EventRepo, volunteers VolunteerRepo, txManager pg.TXManager) *Service {
	return &Service{
		events:     events,
		volunteers: volunteers,
		txManager:  txManager,
	}
}

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventExists       = errors.New("event with this title already exists")
	ErrEventNotAccepting = errors.New("event is not accepting signups")
	ErrEventFull         = errors.New("event is full")
	ErrAlreadySignedUp   = errors.New("already signed up for this event")
	ErrSignupNotFound    = errors.New("signup not found")
	ErrNotSignupOwner    = errors.New("signup belongs to another user")
)

type CreateRequest struct {
	Title          string
	Description    string
	Location       string
	Category       string
	Capacity       *int
	StartsAt       time.Time
	EndsAt         time.Time
	SignupDeadline *time.Time
	CreatedBy      *int
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Event, error) {
	slug := validate.Slugify(req.Title)
	exists, err := s.events.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEventExists
	}

	event := &domain.Event{
		Title:          req.Title,
		Slug:           slug,
		Description:    req.Description,
		Location:       req.Location,
		Category:       req.Category,
		Capacity:       req.Capacity,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		SignupDeadline: req.SignupDeadline,
		Status:         domain.EventStatusDraft,
		CreatedBy:      req.CreatedBy,
	}
	return s.events.Save(ctx, event)
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	event, err := s.events.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *Service) List(ctx context.Context, status string) ([]domain.Event, error) {
	return s.events.List(ctx, status)
}

func (s *Service) Publish(ctx context.Context, id int) (*domain.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Status = domain.EventStatusActive
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

type SignUpRequest struct {
	EventID int
	UserID  *int
	Name    string
	Email   string
	Phone   string
	Message string
}

// SignUp registers a volunteer for an event. The event row is locked for the
// duration so the capacity check holds under concurrent signups.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*domain.Volunteer, error) {
	var signup *domain.Volunteer
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		event, err := s.events.FindByIDForUpdate(ctx, req.EventID)
		if err != nil {
			return err
		}
		if event == nil {
			return ErrEventNotFound
		}
		if !event.IsAcceptingSignups(time.Now()) {
			return ErrEventNotAccepting
		}
		if event.IsFull() {
			return ErrEventFull
		}
		if req.UserID != nil {
			existing, err := s.volunteers.FindByUserAndEvent(ctx, *req.UserID, req.EventID)
			if err != nil {
				return err
			}
			if existing != nil && existing.Status != domain.VolunteerStatusCancelled {
				return ErrAlreadySignedUp
			}
		}

		volunteer := &domain.Volunteer{
			UserID:         req.UserID,
			EventID:        req.EventID,
			Status:         domain.VolunteerStatusPending,
			VolunteerName:  req.Name,
			VolunteerEmail: req.Email,
			VolunteerPhone: req.Phone,
			Message:        req.Message,
		}
		if _, err := s.volunteers.Save(ctx, volunteer); err != nil {
			return err
		}
		if err := s.refreshCount(ctx, req.EventID); err != nil {
			return err
		}
		zap.L().Info("volunteer signed up",
			zap.Int("event_id", req.EventID),
			zap.Int("volunteer_id", volunteer.ID))
		signup = volunteer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return signup, nil
}

func (s *Service) refreshCount(ctx context.Context, eventID int) error {
	count, err := s.volunteers.CountActive(ctx, eventID)
	if err != nil {
		return err
	}
	return s.events.UpdateVolunteerCount(ctx, eventID, count)
}

// CancelSignup releases the volunteer's spot.
func (s *Service) CancelSignup(ctx context.Context, signupID, userID int, admin bool) (*domain.Volunteer, error) {
	var cancelled *domain.Volunteer
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		volunteer, err := s.volunteers.FindByID(ctx, signupID)
		if err != nil {
			return err
		}
		if volunteer == nil {
			return ErrSignupNotFound
		}
		if !admin {
			if volunteer.UserID == nil || *volunteer.UserID != userID {
				return ErrNotSignupOwner
			}
		}
		if volunteer.Status == domain.VolunteerStatusCancelled {
			cancelled = volunteer
			return nil
		}

		now := time.Now()
		volunteer.Status = domain.VolunteerStatusCancelled
		volunteer.CancelledAt = &now
		if err := s.volunteers.Update(ctx, volunteer); err != nil {
			return err
		}
		if err := s.refreshCount(ctx, volunteer.EventID); err != nil {
			return err
		}
		cancelled = volunteer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (s *Service) ConfirmSignup(ctx context.Context, signupID int) (*domain.Volunteer, error) {
	volunteer, err := s.volunteers.FindByID(ctx, signupID)
	if err != nil {
		return nil, err
	}
	if volunteer == nil {
		return nil, ErrSignupNotFound
	}
	now := time.Now()
	volunteer.Status = domain.VolunteerStatusConfirmed
	volunteer.ConfirmedAt = &now
	if err := s.volunteers.Update(ctx, volunteer); err != nil {
		return nil, err
	}
	return volunteer, nil
}

func (s *Service) Volunteers(ctx context.Context, eventID int) ([]domain.Volunteer, error) {
	return s.volunteers.FindByEventID(ctx, eventID)
}
