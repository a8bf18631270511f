package domain

import "time"

type User struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	Phone        string    `db:"phone"`
	CreatedAt    time.Time `db:"created_at"`
}

type Campaign struct {
	ID              int        `db:"id"`
	Title           string     `db:"title"`
	Slug            string     `db:"slug"`
	Summary         string     `db:"summary"`
	TargetAmount    float64    `db:"target_amount"`
	CurrentAmount   float64    `db:"current_amount"`
	Status          string     `db:"status"`
	Category        string     `db:"category"`
	StartAt         *time.Time `db:"start_at"`
	EndAt           *time.Time `db:"end_at"`
	DonorCount      int        `db:"donor_count"`
	AverageDonation float64    `db:"average_donation"`
	CreatedBy       *int       `db:"created_by"`
	CreatedAt       time.Time  `db:"created_at"`
}

type Donation struct {
	ID              int            `db:"id"`
	UserID          *int           `db:"user_id"`
	CampaignID      int            `db:"campaign_id"`
	Amount          float64        `db:"amount"`
	Currency        string         `db:"currency"`
	PaymentProvider string         `db:"payment_provider"`
	TransactionID   string         `db:"transaction_id"`
	Status          string         `db:"status"`
	Metadata        map[string]any `db:"metadata"`
	DonorName       string         `db:"donor_name"`
	DonorEmail      string         `db:"donor_email"`
	DonorPhone      string         `db:"donor_phone"`
	DonorMessage    string         `db:"donor_message"`
	Anonymous       bool           `db:"anonymous"`
	Recurring       bool           `db:"recurring"`
	ReceiptNumber   *string        `db:"receipt_number"`
	CompletedAt     *time.Time     `db:"completed_at"`
	FailedAt        *time.Time     `db:"failed_at"`
	CreatedAt       time.Time      `db:"created_at"`
}

type CampaignTotals struct {
	CurrentAmount   float64
	DonorCount      int
	AverageDonation float64
}

type Event struct {
	ID             int        `db:"id"`
	Title          string     `db:"title"`
	Slug           string     `db:"slug"`
	Description    string     `db:"description"`
	Location       string     `db:"location"`
	Capacity       *int       `db:"capacity"`
	VolunteerCount int        `db:"volunteer_count"`
	StartsAt       time.Time  `db:"starts_at"`
	EndsAt         time.Time  `db:"ends_at"`
	SignupDeadline *time.Time `db:"signup_deadline"`
	Status         string     `db:"status"`
	Category       string     `db:"category"`
	CreatedBy      *int       `db:"created_by"`
	CreatedAt      time.Time  `db:"created_at"`
}

type Volunteer struct {
	ID             int        `db:"id"`
	UserID         *int       `db:"user_id"`
	EventID        int        `db:"event_id"`
	Status         string     `db:"status"`
	VolunteerName  string     `db:"volunteer_name"`
	VolunteerEmail string     `db:"volunteer_email"`
	VolunteerPhone string     `db:"volunteer_phone"`
	Message        string     `db:"message"`
	ConfirmedAt    *time.Time `db:"confirmed_at"`
	CancelledAt    *time.Time `db:"cancelled_at"`
	CompletedAt    *time.Time `db:"completed_at"`
	CreatedAt      time.Time  `db:"created_at"`
}
