package ozow

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/givehub-za/givehub/internal/config"
	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/payment"
	"github.com/givehub-za/givehub/pkg/clients"
)

const (
	statusComplete   = "Complete"
	statusSuccessful = "Successful"
)

// Provider runs bank-EFT payments through Ozow's redirect flow. There is no
// API-key scheme; every request and callback is authenticated by a SHA-512
// hash over an ordered field list keyed with the shared private key.
type Provider struct {
	apiURL     string
	siteCode   string
	privateKey string
	baseURL    string
	testMode   bool
	client     clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Provider {
	return &Provider{
		apiURL:     cfg.OzowAPIURL,
		siteCode:   cfg.OzowSiteCode,
		privateKey: cfg.OzowPrivateKey,
		baseURL:    cfg.BaseURL,
		testMode:   cfg.TestMode,
		client:     client,
	}
}

func (p *Provider) Name() string {
	return domain.ProviderOzow
}

type paymentRequest struct {
	SiteCode             string `json:"SiteCode"`
	TransactionReference string `json:"TransactionReference"`
	Amount               string `json:"Amount"`
	CurrencyCode         string `json:"CurrencyCode"`
	IsTest               bool   `json:"IsTest"`
	HashCheck            string `json:"HashCheck"`
	SuccessURL           string `json:"SuccessUrl"`
	CancelURL            string `json:"CancelUrl"`
	ErrorURL             string `json:"ErrorUrl"`
	NotifyURL            string `json:"NotifyUrl"`
	Optional1            string `json:"Optional1"`
	Optional2            string `json:"Optional2"`
	Optional3            string `json:"Optional3"`
	Optional4            string `json:"Optional4"`
	Optional5            string `json:"Optional5"`
}

type paymentResponse struct {
	URL string `json:"url"`
}

func (p *Provider) Initialize(ctx context.Context, donation *domain.Donation, campaign *domain.Campaign) *payment.InitResult {
	correlationID := uuid.NewString()

	if p.siteCode == "" || p.privateKey == "" {
		zap.L().Error("ozow credentials not configured", zap.String("correlationID", correlationID))
		return &payment.InitResult{Success: false, Message: "Payment configuration error"}
	}

	amount := fmt.Sprintf("%.2f", donation.Amount)
	hashCheck := p.requestHash(donation.TransactionID, amount, donation.Currency)

	req := paymentRequest{
		SiteCode:             p.siteCode,
		TransactionReference: donation.TransactionID,
		Amount:               amount,
		CurrencyCode:         donation.Currency,
		IsTest:               p.testMode,
		HashCheck:            hashCheck,
		SuccessURL:           fmt.Sprintf("%s/api/donations/%d/success", p.baseURL, donation.ID),
		CancelURL:            fmt.Sprintf("%s/api/campaigns/%s", p.baseURL, campaign.Slug),
		ErrorURL:             fmt.Sprintf("%s/api/donations/%d/failure", p.baseURL, donation.ID),
		NotifyURL:            fmt.Sprintf("%s/api/webhooks/%s", p.baseURL, domain.ProviderOzow),
		Optional1:            strconv.Itoa(donation.ID),
		Optional2:            strconv.Itoa(campaign.ID),
		Optional3:            campaign.Title,
		Optional4:            donation.DonorDisplayName(),
		Optional5:            donation.DonorEmail,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return &payment.InitResult{Success: false, Message: "Payment initialization failed"}
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	statusCode, respBody, err := p.client.Post(p.apiURL+"/postpaymentrequest", headers, body)
	if err != nil {
		zap.L().Error("ozow payment request failed",
			zap.Error(err),
			zap.Int("donationID", donation.ID),
			zap.String("correlationID", correlationID),
		)
		return &payment.InitResult{Success: false, Message: "Payment initialization failed"}
	}

	var resp paymentResponse
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		if err := json.Unmarshal(respBody, &resp); err == nil && resp.URL != "" {
			donation.MergeMetadata(map[string]any{
				"ozow_transaction_reference": donation.TransactionID,
				"ozow_hash_check":            hashCheck,
			})
			return &payment.InitResult{
				Success:     true,
				PaymentURL:  resp.URL,
				RedirectURL: resp.URL,
			}
		}
	}

	zap.L().Error("ozow payment initialization failed",
		zap.Int("status", statusCode),
		zap.ByteString("body", respBody),
		zap.Int("donationID", donation.ID),
		zap.String("correlationID", correlationID),
	)
	return &payment.InitResult{Success: false, Message: "Failed to initialize payment with Ozow"}
}

// Verify recomputes the callback hash and fails closed on any mismatch.
// Without callback fields there is nothing to authenticate; Ozow has no
// server-side lookup, so re-verification has to wait for a notification.
func (p *Provider) Verify(ctx context.Context, donation *domain.Donation, callback map[string]string) bool {
	if len(callback) == 0 {
		return false
	}

	expectedHash := p.callbackHash(callback)
	receivedHash := callback["HashCheck"]

	if subtle.ConstantTimeCompare([]byte(expectedHash), []byte(strings.ToLower(receivedHash))) != 1 {
		// Expected and received go to the log for forensics; the private key
		// never does.
		zap.L().Error("ozow hash verification failed",
			zap.String("expected", expectedHash),
			zap.String("received", receivedHash),
			zap.Int("donationID", donation.ID),
		)
		return false
	}

	status := callback["Status"]
	if status != statusComplete && status != statusSuccessful {
		zap.L().Info("ozow payment not successful",
			zap.String("status", status),
			zap.String("message", callback["StatusMessage"]),
			zap.Int("donationID", donation.ID),
		)
		return false
	}

	donation.MergeMetadata(map[string]any{
		"ozow_status":         status,
		"ozow_bank_reference": callback["BankReference"],
		"ozow_verified_at":    time.Now().UTC().Format(time.RFC3339),
	})

	return true
}

// ParseWebhook decodes the form-encoded notification and authenticates it
// before anything else looks at it. A tampered field fails the hash and the
// payload is rejected outright.
func (p *Provider) ParseWebhook(body []byte) (*payment.WebhookEvent, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrBadPayload, err)
	}

	fields := make(map[string]string, len(values))
	for key := range values {
		fields[key] = values.Get(key)
	}

	expectedHash := p.callbackHash(fields)
	receivedHash := fields["HashCheck"]
	if subtle.ConstantTimeCompare([]byte(expectedHash), []byte(strings.ToLower(receivedHash))) != 1 {
		zap.L().Error("ozow webhook hash verification failed",
			zap.String("expected", expectedHash),
			zap.String("received", receivedHash),
		)
		return nil, fmt.Errorf("%w: hash mismatch", payment.ErrBadPayload)
	}

	donationID, err := strconv.Atoi(fields["Optional1"])
	if err != nil || donationID == 0 {
		return nil, fmt.Errorf("%w: no donation reference", payment.ErrBadPayload)
	}

	status := fields["Status"]
	if status == statusComplete || status == statusSuccessful {
		return &payment.WebhookEvent{DonationID: donationID, Succeeded: true, Fields: fields}, nil
	}

	reason := fields["StatusMessage"]
	if reason == "" {
		reason = "Payment failed"
	}
	return &payment.WebhookEvent{DonationID: donationID, Succeeded: false, Reason: reason, Fields: fields}, nil
}

// Refund is not supported programmatically; Ozow handles refunds manually
// through their support channel.
func (p *Provider) Refund(ctx context.Context, donation *domain.Donation, amount float64) *payment.RefundResult {
	return &payment.RefundResult{
		Success: false,
		Message: "Ozow refunds must be processed manually. Please contact Ozow support.",
	}
}

// requestHash signs the outbound payment request: site code, transaction
// reference, amount as a fixed 2-decimal string, currency and the test flag,
// lower-cased, with the private key appended.
func (p *Provider) requestHash(transactionReference, amount, currency string) string {
	data := strings.Join([]string{
		p.siteCode,
		transactionReference,
		amount,
		currency,
		strconv.FormatBool(p.testMode),
	}, "")
	return sha512Lower(data + p.privateKey)
}

// callbackHash covers the longer inbound field list in provider-mandated
// order, including the five optional passthrough fields and bank reference.
func (p *Provider) callbackHash(fields map[string]string) string {
	data := strings.Join([]string{
		fields["SiteCode"],
		fields["TransactionReference"],
		fields["Amount"],
		fields["Status"],
		fields["StatusMessage"],
		fields["DateTime"],
		fields["Optional1"],
		fields["Optional2"],
		fields["Optional3"],
		fields["Optional4"],
		fields["Optional5"],
		fields["CurrencyCode"],
		fields["IsTest"],
		fields["BankReference"],
	}, "")
	return sha512Lower(data + p.privateKey)
}

func sha512Lower(data string) string {
	sum := sha512.Sum512([]byte(strings.ToLower(data)))
	return hex.EncodeToString(sum[:])
}
