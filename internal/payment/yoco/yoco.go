package yoco

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/givehub-za/givehub/internal/config"
	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/payment"
	"github.com/givehub-za/givehub/pkg/clients"
)

const (
	statusSuccessful = "successful"

	eventPaymentSucceeded = "payment.succeeded"
	eventPaymentFailed    = "payment.failed"
)

// Provider charges cards through Yoco's hosted checkout. The charge is
// created server-side; the donor finishes on the returned redirect URL.
type Provider struct {
	apiURL    string
	secretKey string
	baseURL   string
	client    clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Provider {
	return &Provider{
		apiURL:    cfg.YocoAPIURL,
		secretKey: cfg.YocoSecretKey,
		baseURL:   cfg.BaseURL,
		client:    client,
	}
}

func (p *Provider) Name() string {
	return domain.ProviderYoco
}

type chargeRequest struct {
	Amount     int               `json:"amount"`
	Currency   string            `json:"currency"`
	Metadata   map[string]string `json:"metadata"`
	SuccessURL string            `json:"success_url"`
	FailureURL string            `json:"failure_url"`
	CancelURL  string            `json:"cancel_url"`
	WebhookURL string            `json:"webhook_url"`
}

type chargeResponse struct {
	ID          string `json:"id"`
	CheckoutID  string `json:"checkoutId"`
	Status      string `json:"status"`
	RedirectURL string `json:"redirectUrl"`
}

func (p *Provider) Initialize(ctx context.Context, donation *domain.Donation, campaign *domain.Campaign) *payment.InitResult {
	correlationID := uuid.NewString()

	if p.secretKey == "" {
		zap.L().Error("yoco API key not configured", zap.String("correlationID", correlationID))
		return &payment.InitResult{Success: false, Message: "Payment configuration error"}
	}

	req := chargeRequest{
		Amount:   minorUnits(donation.Amount),
		Currency: donation.Currency,
		Metadata: map[string]string{
			"donation_id":    strconv.Itoa(donation.ID),
			"campaign_id":    strconv.Itoa(campaign.ID),
			"campaign_title": campaign.Title,
		},
		SuccessURL: fmt.Sprintf("%s/api/donations/%d/success", p.baseURL, donation.ID),
		FailureURL: fmt.Sprintf("%s/api/donations/%d/failure", p.baseURL, donation.ID),
		CancelURL:  fmt.Sprintf("%s/api/campaigns/%s", p.baseURL, campaign.Slug),
		WebhookURL: fmt.Sprintf("%s/api/webhooks/%s", p.baseURL, domain.ProviderYoco),
	}

	body, err := json.Marshal(req)
	if err != nil {
		return &payment.InitResult{Success: false, Message: "Payment initialization failed"}
	}

	statusCode, respBody, err := p.client.Post(p.apiURL+"/charges", p.headers(), body)
	if err != nil {
		zap.L().Error("yoco charge request failed",
			zap.Error(err),
			zap.Int("donationID", donation.ID),
			zap.String("correlationID", correlationID),
		)
		return &payment.InitResult{Success: false, Message: "Payment initialization failed"}
	}

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		zap.L().Error("yoco payment initialization failed",
			zap.Int("status", statusCode),
			zap.ByteString("body", respBody),
			zap.Int("donationID", donation.ID),
			zap.String("correlationID", correlationID),
		)
		return &payment.InitResult{Success: false, Message: "Failed to initialize payment with Yoco"}
	}

	var resp chargeResponse
	if err := json.Unmarshal(respBody, &resp); err != nil || resp.RedirectURL == "" {
		zap.L().Error("yoco charge response missing redirect URL",
			zap.Int("donationID", donation.ID),
			zap.String("correlationID", correlationID),
		)
		return &payment.InitResult{Success: false, Message: "Failed to initialize payment with Yoco"}
	}

	donation.MergeMetadata(map[string]any{
		"yoco_charge_id":   resp.ID,
		"yoco_checkout_id": resp.CheckoutID,
	})

	return &payment.InitResult{
		Success:     true,
		PaymentURL:  resp.RedirectURL,
		RedirectURL: resp.RedirectURL,
	}
}

// Verify re-fetches the charge by the stored id and requires the provider-side
// "successful" marker. The callback payload itself is never trusted.
func (p *Provider) Verify(ctx context.Context, donation *domain.Donation, callback map[string]string) bool {
	chargeID, _ := donation.Metadata["yoco_charge_id"].(string)
	if chargeID == "" {
		zap.L().Error("no yoco charge ID found for verification", zap.Int("donationID", donation.ID))
		return false
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+p.secretKey)
	statusCode, respBody, _, err := p.client.Get(p.apiURL+"/charges/"+chargeID, headers)
	if err != nil {
		zap.L().Error("yoco charge fetch failed", zap.Error(err), zap.Int("donationID", donation.ID))
		return false
	}
	if statusCode != http.StatusOK {
		zap.L().Error("yoco payment verification failed",
			zap.String("chargeID", chargeID),
			zap.Int("status", statusCode),
			zap.Int("donationID", donation.ID),
		)
		return false
	}

	var charge chargeResponse
	if err := json.Unmarshal(respBody, &charge); err != nil {
		return false
	}
	if charge.Status != statusSuccessful {
		zap.L().Error("yoco charge not successful",
			zap.String("chargeID", chargeID),
			zap.String("status", charge.Status),
			zap.Int("donationID", donation.ID),
		)
		return false
	}

	donation.MergeMetadata(map[string]any{
		"yoco_charge_status": charge.Status,
		"yoco_verified_at":   time.Now().UTC().Format(time.RFC3339),
	})

	return true
}

type webhookPayload struct {
	Type    string `json:"type"`
	Payload struct {
		ID            string         `json:"id"`
		FailureReason string         `json:"failure_reason"`
		Metadata      map[string]any `json:"metadata"`
	} `json:"payload"`
}

func (p *Provider) ParseWebhook(body []byte) (*payment.WebhookEvent, error) {
	var wh webhookPayload
	if err := json.Unmarshal(body, &wh); err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrBadPayload, err)
	}

	donationID := donationIDFromMetadata(wh.Payload.Metadata)
	if donationID == 0 {
		return nil, fmt.Errorf("%w: no donation reference", payment.ErrBadPayload)
	}

	switch wh.Type {
	case eventPaymentSucceeded:
		return &payment.WebhookEvent{DonationID: donationID, Succeeded: true}, nil
	case eventPaymentFailed:
		reason := wh.Payload.FailureReason
		if reason == "" {
			reason = "Payment failed"
		}
		return &payment.WebhookEvent{DonationID: donationID, Succeeded: false, Reason: reason}, nil
	default:
		return nil, fmt.Errorf("%w: unhandled event type %q", payment.ErrBadPayload, wh.Type)
	}
}

type refundResponse struct {
	ID             string `json:"id"`
	DisplayMessage string `json:"displayMessage"`
}

func (p *Provider) Refund(ctx context.Context, donation *domain.Donation, amount float64) *payment.RefundResult {
	chargeID, _ := donation.Metadata["yoco_charge_id"].(string)
	if chargeID == "" {
		return &payment.RefundResult{Success: false, Message: "No charge ID found"}
	}

	body, _ := json.Marshal(map[string]int{"amount": minorUnits(amount)})
	statusCode, respBody, err := p.client.Post(p.apiURL+"/charges/"+chargeID+"/refunds", p.headers(), body)
	if err != nil {
		zap.L().Error("yoco refund failed", zap.Error(err), zap.Int("donationID", donation.ID))
		return &payment.RefundResult{Success: false, Message: "Refund processing failed"}
	}

	var resp refundResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		resp = refundResponse{}
	}

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		message := resp.DisplayMessage
		if message == "" {
			message = "Unknown error"
		}
		return &payment.RefundResult{Success: false, Message: "Refund failed: " + message}
	}

	donation.MergeMetadata(map[string]any{
		"yoco_refund_id":     resp.ID,
		"yoco_refund_amount": amount,
		"yoco_refunded_at":   time.Now().UTC().Format(time.RFC3339),
	})

	return &payment.RefundResult{Success: true, RefundID: resp.ID}
}

func (p *Provider) headers() http.Header {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+p.secretKey)
	headers.Set("Content-Type", "application/json")
	return headers
}

func minorUnits(amount float64) int {
	return int(math.Round(amount * 100))
}

func donationIDFromMetadata(metadata map[string]any) int {
	switch v := metadata["donation_id"].(type) {
	case string:
		id, _ := strconv.Atoi(v)
		return id
	case float64:
		return int(v)
	default:
		return 0
	}
}
