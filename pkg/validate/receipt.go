package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/ShiraazMoollatjie/goluhn"
)

const receiptDigits = 10

// GenerateReceiptNumber builds a receipt reference of the form
// REC-<year>-<digits>, where the digit block carries a Luhn check digit.
func GenerateReceiptNumber(now time.Time) string {
	return fmt.Sprintf("REC-%d-%s", now.Year(), goluhn.Generate(receiptDigits))
}

// IsReceiptNumber reports whether s is a well-formed receipt reference with a
// valid check digit.
func IsReceiptNumber(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || parts[0] != "REC" {
		return false
	}
	if len(parts[2]) != receiptDigits {
		return false
	}
	return goluhn.Validate(parts[2]) == nil
}
