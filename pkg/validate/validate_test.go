package validate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Clean Water for Khayelitsha", "clean-water-for-khayelitsha"},
		{"  Back to School 2025!  ", "back-to-school-2025"},
		{"Trees++Everywhere", "trees-everywhere"},
		{"---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestGenerateReceiptNumber(t *testing.T) {
	now := time.Date(2025, 9, 20, 12, 0, 0, 0, time.UTC)
	number := GenerateReceiptNumber(now)

	assert.True(t, IsReceiptNumber(number), "generated number must validate: %s", number)
	assert.Contains(t, number, fmt.Sprintf("REC-%d-", now.Year()))
}

func TestIsReceiptNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{"valid check digit", "REC-2025-7992739875", true},
		{"tampered digit", "REC-2025-7992739876", false},
		{"wrong prefix", "RCT-2025-7992739875", false},
		{"wrong length", "REC-2025-79927", false},
		{"garbage", "not-a-receipt", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReceiptNumber(tt.number))
		})
	}
}
