package dto

type CreateCampaignRequestDTO struct {
	Title        string  `json:"title" example:"Clean Water for Khayelitsha"`
	Summary      string  `json:"summary,omitempty"`
	Category     string  `json:"category,omitempty" example:"water"`
	TargetAmount float64 `json:"target_amount" example:"50000"`
	StartAt      string  `json:"start_at,omitempty" example:"2026-09-01T00:00:00+02:00"`
	EndAt        string  `json:"end_at,omitempty" example:"2026-12-01T00:00:00+02:00"`
}

type CampaignResponseDTO struct {
	ID              int     `json:"id" example:"7"`
	Title           string  `json:"title" example:"Clean Water for Khayelitsha"`
	Slug            string  `json:"slug" example:"clean-water-for-khayelitsha"`
	Summary         string  `json:"summary,omitempty"`
	Category        string  `json:"category,omitempty" example:"water"`
	TargetAmount    float64 `json:"target_amount" example:"50000"`
	CurrentAmount   float64 `json:"current_amount" example:"1500"`
	DonorCount      int     `json:"donor_count" example:"3"`
	AverageDonation float64 `json:"average_donation" example:"500"`
	Progress        float64 `json:"progress" example:"3"`
	Status          string  `json:"status" example:"active"`
	StartAt         string  `json:"start_at,omitempty"`
	EndAt           string  `json:"end_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}
