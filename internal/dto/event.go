package dto

type CreateEventRequestDTO struct {
	Title          string `json:"title" example:"Beach Cleanup"`
	Description    string `json:"description,omitempty"`
	Location       string `json:"location,omitempty" example:"Muizenberg"`
	Category       string `json:"category,omitempty" example:"environment"`
	Capacity       *int   `json:"capacity,omitempty" example:"20"`
	StartsAt       string `json:"starts_at" example:"2026-09-12T08:00:00+02:00"`
	EndsAt         string `json:"ends_at" example:"2026-09-12T12:00:00+02:00"`
	SignupDeadline string `json:"signup_deadline,omitempty"`
}

type EventResponseDTO struct {
	ID             int    `json:"id" example:"2"`
	Title          string `json:"title" example:"Beach Cleanup"`
	Slug           string `json:"slug" example:"beach-cleanup"`
	Description    string `json:"description,omitempty"`
	Location       string `json:"location,omitempty" example:"Muizenberg"`
	Category       string `json:"category,omitempty"`
	Capacity       *int   `json:"capacity,omitempty" example:"20"`
	VolunteerCount int    `json:"volunteer_count" example:"13"`
	StartsAt       string `json:"starts_at"`
	EndsAt         string `json:"ends_at"`
	SignupDeadline string `json:"signup_deadline,omitempty"`
	Status         string `json:"status" example:"active"`
}

type SignUpRequestDTO struct {
	Name    string `json:"name" example:"Sipho N"`
	Email   string `json:"email" example:"sipho@example.com"`
	Phone   string `json:"phone,omitempty" example:"+27829876543"`
	Message string `json:"message,omitempty"`
}

type SignUpResponseDTO struct {
	SignupID int    `json:"signup_id" example:"9"`
	EventID  int    `json:"event_id" example:"2"`
	Status   string `json:"status" example:"pending"`
}
