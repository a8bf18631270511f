package yoco

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/givehub-za/givehub/internal/config"
	"github.com/givehub-za/givehub/internal/domain"
	"github.com/givehub-za/givehub/internal/payment"
	"github.com/givehub-za/givehub/pkg/clients"
)

func NewMock(t *testing.T) (*Provider, *clients.MockHTTPClientI) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := clients.NewMockHTTPClientI(ctrl)
	provider := New(&config.Config{
		YocoSecretKey: "sk_test_key",
		YocoAPIURL:    "https://online.yoco.test/v1",
		BaseURL:       "https://give.example.org",
	}, client)
	return provider, client
}

func testDonation() (*domain.Donation, *domain.Campaign) {
	donation := &domain.Donation{
		ID:            7,
		CampaignID:    3,
		Amount:        150.50,
		Currency:      "ZAR",
		TransactionID: "TXN-1758369600-AB12CD",
		Status:        domain.DonationStatusPending,
	}
	campaign := &domain.Campaign{ID: 3, Title: "Clean Water", Slug: "clean-water"}
	return donation, campaign
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(client *clients.MockHTTPClientI)
		wantSuccess bool
		wantURL     string
		wantMessage string
	}{
		{
			name: "successful charge creation",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().
					Post("https://online.yoco.test/v1/charges", gomock.Any(), gomock.Any()).
					Return(http.StatusCreated, []byte(`{"id":"ch_1","checkoutId":"co_1","redirectUrl":"https://pay.yoco.test/co_1"}`), nil)
			},
			wantSuccess: true,
			wantURL:     "https://pay.yoco.test/co_1",
		},
		{
			name: "provider rejects charge",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().
					Post(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(http.StatusUnprocessableEntity, []byte(`{"message":"invalid amount"}`), nil)
			},
			wantSuccess: false,
			wantMessage: "Failed to initialize payment with Yoco",
		},
		{
			name: "missing redirect URL treated as failure",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().
					Post(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(http.StatusOK, []byte(`{"id":"ch_1"}`), nil)
			},
			wantSuccess: false,
			wantMessage: "Failed to initialize payment with Yoco",
		},
		{
			name: "network error",
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().
					Post(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(0, nil, errors.New("connection refused"))
			},
			wantSuccess: false,
			wantMessage: "Payment initialization failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, client := NewMock(t)
			tt.prepareMock(client)
			donation, campaign := testDonation()

			result := provider.Initialize(context.Background(), donation, campaign)

			assert.Equal(t, tt.wantSuccess, result.Success)
			if tt.wantSuccess {
				assert.Equal(t, tt.wantURL, result.RedirectURL)
				assert.Equal(t, "ch_1", donation.Metadata["yoco_charge_id"])
				assert.Equal(t, "co_1", donation.Metadata["yoco_checkout_id"])
			} else {
				assert.Equal(t, tt.wantMessage, result.Message)
				assert.Empty(t, donation.Metadata)
			}
		})
	}
}

func TestInitialize_MissingAPIKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := clients.NewMockHTTPClientI(ctrl)
	provider := New(&config.Config{BaseURL: "https://give.example.org"}, client)
	donation, campaign := testDonation()

	result := provider.Initialize(context.Background(), donation, campaign)

	assert.False(t, result.Success)
	assert.Equal(t, "Payment configuration error", result.Message)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name        string
		metadata    map[string]any
		prepareMock func(client *clients.MockHTTPClientI)
		want        bool
	}{
		{
			name:     "charge successful",
			metadata: map[string]any{"yoco_charge_id": "ch_1"},
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().
					Get("https://online.yoco.test/v1/charges/ch_1", gomock.Any()).
					Return(http.StatusOK, []byte(`{"id":"ch_1","status":"successful"}`), nil, nil)
			},
			want: true,
		},
		{
			name:     "charge not successful",
			metadata: map[string]any{"yoco_charge_id": "ch_1"},
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(http.StatusOK, []byte(`{"id":"ch_1","status":"failed"}`), nil, nil)
			},
			want: false,
		},
		{
			name:        "missing charge id",
			metadata:    nil,
			prepareMock: func(client *clients.MockHTTPClientI) {},
			want:        false,
		},
		{
			name:     "provider unreachable",
			metadata: map[string]any{"yoco_charge_id": "ch_1"},
			prepareMock: func(client *clients.MockHTTPClientI) {
				client.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(0, nil, nil, errors.New("timeout"))
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, client := NewMock(t)
			tt.prepareMock(client)
			donation, _ := testDonation()
			donation.Metadata = tt.metadata

			assert.Equal(t, tt.want, provider.Verify(context.Background(), donation, nil))
		})
	}
}

func TestParseWebhook(t *testing.T) {
	provider, _ := NewMock(t)

	tests := []struct {
		name          string
		body          string
		wantEvent     *payment.WebhookEvent
		wantErr       bool
		wantSucceeded bool
	}{
		{
			name:          "payment succeeded",
			body:          `{"type":"payment.succeeded","payload":{"id":"ch_1","metadata":{"donation_id":"7"}}}`,
			wantSucceeded: true,
		},
		{
			name:          "payment failed with reason",
			body:          `{"type":"payment.failed","payload":{"id":"ch_1","failure_reason":"card declined","metadata":{"donation_id":7}}}`,
			wantSucceeded: false,
		},
		{
			name:    "unhandled event type",
			body:    `{"type":"charge.updated","payload":{"metadata":{"donation_id":"7"}}}`,
			wantErr: true,
		},
		{
			name:    "missing donation reference",
			body:    `{"type":"payment.succeeded","payload":{"metadata":{}}}`,
			wantErr: true,
		},
		{
			name:    "malformed body",
			body:    `{not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := provider.ParseWebhook([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, payment.ErrBadPayload)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 7, event.DonationID)
			assert.Equal(t, tt.wantSucceeded, event.Succeeded)
			if !tt.wantSucceeded {
				assert.Equal(t, "card declined", event.Reason)
			}
		})
	}
}

func TestRefund(t *testing.T) {
	t.Run("successful refund", func(t *testing.T) {
		provider, client := NewMock(t)
		client.EXPECT().
			Post("https://online.yoco.test/v1/charges/ch_1/refunds", gomock.Any(), gomock.Any()).
			Return(http.StatusOK, []byte(`{"id":"rf_1"}`), nil)

		donation, _ := testDonation()
		donation.Metadata = map[string]any{"yoco_charge_id": "ch_1"}

		result := provider.Refund(context.Background(), donation, 150.50)

		assert.True(t, result.Success)
		assert.Equal(t, "rf_1", result.RefundID)
		assert.Equal(t, 150.50, donation.Metadata["yoco_refund_amount"])
	})

	t.Run("refund rejected by provider", func(t *testing.T) {
		provider, client := NewMock(t)
		client.EXPECT().
			Post(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(http.StatusBadRequest, []byte(`{"displayMessage":"charge already refunded"}`), nil)

		donation, _ := testDonation()
		donation.Metadata = map[string]any{"yoco_charge_id": "ch_1"}

		result := provider.Refund(context.Background(), donation, 150.50)

		assert.False(t, result.Success)
		assert.Equal(t, "Refund failed: charge already refunded", result.Message)
	})

	t.Run("no charge id", func(t *testing.T) {
		provider, _ := NewMock(t)
		donation, _ := testDonation()

		result := provider.Refund(context.Background(), donation, 150.50)

		assert.False(t, result.Success)
		assert.Equal(t, "No charge ID found", result.Message)
	})
}
