package dto

type SubmitDonationRequestDTO struct {
	CampaignID   int     `json:"campaign_id" example:"7"`
	Amount       float64 `json:"amount" example:"250"`
	Provider     string  `json:"provider" example:"yoco"`
	DonorName    string  `json:"donor_name" example:"Thandi M"`
	DonorEmail   string  `json:"donor_email" example:"thandi@example.com"`
	DonorPhone   string  `json:"donor_phone,omitempty" example:"+27821234567"`
	DonorMessage string  `json:"donor_message,omitempty"`
	Anonymous    bool    `json:"anonymous,omitempty"`
	Recurring    bool    `json:"recurring,omitempty"`
}

type SubmitDonationResponseDTO struct {
	DonationID    int    `json:"donation_id" example:"42"`
	TransactionID string `json:"transaction_id" example:"TXN-1700000000-ABC123"`
	Status        string `json:"status" example:"pending"`
	PaymentURL    string `json:"payment_url,omitempty"`
	RedirectURL   string `json:"redirect_url,omitempty"`
}

type DonationStatusResponseDTO struct {
	DonationID    int     `json:"donation_id" example:"42"`
	TransactionID string  `json:"transaction_id" example:"TXN-1700000000-ABC123"`
	CampaignID    int     `json:"campaign_id" example:"7"`
	Amount        float64 `json:"amount" example:"250"`
	Currency      string  `json:"currency" example:"ZAR"`
	Provider      string  `json:"provider" example:"yoco"`
	Status        string  `json:"status" example:"completed"`
	ReceiptNumber string  `json:"receipt_number,omitempty" example:"REC-2026-7992739875"`
	CompletedAt   string  `json:"completed_at,omitempty" example:"2026-08-31T16:09:57+02:00"`
	FailedAt      string  `json:"failed_at,omitempty"`
	CreatedAt     string  `json:"created_at" example:"2026-08-31T16:05:00+02:00"`
}

type ReceiptResponseDTO struct {
	ReceiptNumber string  `json:"receipt_number" example:"REC-2026-7992739875"`
	DonorName     string  `json:"donor_name" example:"Thandi M"`
	Amount        float64 `json:"amount" example:"250"`
	Currency      string  `json:"currency" example:"ZAR"`
	CampaignID    int     `json:"campaign_id" example:"7"`
	CompletedAt   string  `json:"completed_at" example:"2026-08-31T16:09:57+02:00"`
}

type RecentDonationDTO struct {
	DonorName   string  `json:"donor_name" example:"Thandi M"`
	Amount      float64 `json:"amount" example:"250"`
	Message     string  `json:"message,omitempty"`
	CompletedAt string  `json:"completed_at" example:"2026-08-31T16:09:57+02:00"`
}

type RefundRequestDTO struct {
	Amount float64 `json:"amount,omitempty" example:"250"`
}
