package helper

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is used when a number comes in without a country code.
// Deployments are Bangladesh-first, so bare numbers parse as BD.
const DefaultPhoneRegion = "BD"

// NormalizePhone parses and validates a phone number and returns it in E.164
// form ("+8801712345678"). Rejects anything phonenumbers considers invalid.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("phone number is empty")
	}
	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil {
		return "", fmt.Errorf("invalid phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid phone number")
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// IsPhone reports whether the contact string looks like a phone number rather
// than an email. Registration accepts either for the contact field.
func IsPhone(contact string) bool {
	contact = strings.TrimSpace(contact)
	if contact == "" || strings.ContainsRune(contact, '@') {
		return false
	}
	_, err := NormalizePhone(contact)
	return err == nil
}
