package domain

import "time"

const (
	// DonationStatusPending payment initiated, no provider confirmation yet.
	DonationStatusPending   string = "pending"
	DonationStatusCompleted string = "completed"
	DonationStatusFailed    string = "failed"
	DonationStatusRefunded  string = "refunded"
	DonationStatusCancelled string = "cancelled"
)

const (
	ProviderYoco string = "yoco"
	ProviderOzow string = "ozow"
)

func (d *Donation) IsPending() bool {
	return d.Status == DonationStatusPending
}

func (d *Donation) IsCompleted() bool {
	return d.Status == DonationStatusCompleted
}

// IsTerminal reports whether the donation left the pending state. No
// transition leads back into pending.
func (d *Donation) IsTerminal() bool {
	return d.Status != DonationStatusPending
}

// MergeMetadata appends provider-namespaced keys into the metadata map.
// Existing keys are overwritten only by the same provider writing the same
// key again; providers must prefix their keys ("yoco_", "ozow_").
func (d *Donation) MergeMetadata(patch map[string]any) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any, len(patch))
	}
	for k, v := range patch {
		d.Metadata[k] = v
	}
}

// DonorDisplayName resolves the public name shown on recent-donation lists.
func (d *Donation) DonorDisplayName() string {
	if d.Anonymous || d.DonorName == "" {
		return "Anonymous Donor"
	}
	return d.DonorName
}

const (
	CampaignStatusDraft     string = "draft"
	CampaignStatusActive    string = "active"
	CampaignStatusCompleted string = "completed"
	CampaignStatusArchived  string = "archived"
)

// IsAcceptingDonations reports whether the campaign is active and inside its
// optional [StartAt, EndAt] window.
func (c *Campaign) IsAcceptingDonations(now time.Time) bool {
	if c.Status != CampaignStatusActive {
		return false
	}
	if c.StartAt != nil && now.Before(*c.StartAt) {
		return false
	}
	if c.EndAt != nil && now.After(*c.EndAt) {
		return false
	}
	return true
}

func (c *Campaign) IsFullyFunded() bool {
	return c.CurrentAmount >= c.TargetAmount
}

const (
	EventStatusDraft     string = "draft"
	EventStatusActive    string = "active"
	EventStatusCompleted string = "completed"
	EventStatusCancelled string = "cancelled"
)

const (
	VolunteerStatusPending   string = "pending"
	VolunteerStatusConfirmed string = "confirmed"
	VolunteerStatusCancelled string = "cancelled"
	VolunteerStatusCompleted string = "completed"
	VolunteerStatusNoShow    string = "no_show"
)

// IsAcceptingSignups reports whether the event still takes volunteers.
func (e *Event) IsAcceptingSignups(now time.Time) bool {
	if e.Status != EventStatusActive {
		return false
	}
	if e.SignupDeadline != nil && now.After(*e.SignupDeadline) {
		return false
	}
	return now.Before(e.StartsAt)
}

func (e *Event) IsFull() bool {
	return e.Capacity != nil && e.VolunteerCount >= *e.Capacity
}
