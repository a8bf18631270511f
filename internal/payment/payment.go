package payment

import (
	"context"
	"errors"

	"github.com/givehub-za/givehub/internal/domain"
)

var (
	ErrUnknownProvider = errors.New("unknown payment provider")
	// ErrBadPayload signals a webhook body that failed parsing or
	// authentication. Unauthenticated payloads must never reach donation
	// state.
	ErrBadPayload = errors.New("invalid webhook payload")
)

// InitResult is the structured outcome of a payment initialization. Network
// errors, missing credentials and provider rejections all surface here, never
// as panics or unhandled errors past the adapter.
type InitResult struct {
	Success     bool
	PaymentURL  string
	RedirectURL string
	Message     string
}

// WebhookEvent is a provider notification reduced to the common shape the
// dispatcher routes on.
type WebhookEvent struct {
	DonationID int
	Succeeded  bool
	Reason     string
	// Fields carries the raw callback fields for later verification.
	Fields map[string]string
}

type RefundResult struct {
	Success  bool
	RefundID string
	Message  string
}

//go:generate mockgen -source=payment.go -destination=mock_payment.go -package=payment
type Provider interface {
	Name() string
	// Initialize starts a payment for a pending donation. Provider
	// correlation ids are merged into the donation metadata; the caller
	// persists them.
	Initialize(ctx context.Context, donation *domain.Donation, campaign *domain.Campaign) *InitResult
	// Verify authenticates a success callback. It fails closed: any doubt
	// returns false.
	Verify(ctx context.Context, donation *domain.Donation, callback map[string]string) bool
	// ParseWebhook decodes and authenticates an inbound notification body.
	ParseWebhook(payload []byte) (*WebhookEvent, error)
	Refund(ctx context.Context, donation *domain.Donation, amount float64) *RefundResult
}

// Registry resolves providers by name so callers never branch on provider
// identity. Adding a provider means registering one more implementation.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

func (r *Registry) Resolve(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
