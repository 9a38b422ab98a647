package utils

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidPhoneNumber is returned when a number cannot be brought into
// the canonical +91 form.
var ErrInvalidPhoneNumber = errors.New("invalid phone number format")

var (
	separatorRegex = regexp.MustCompile(`[\s\-\(\)]`)
	canonicalRegex = regexp.MustCompile(`^\+91[1-9]\d{9,11}$`)
)

// NormalizePhoneNumber converts a phone number in any of the accepted
// formats into the canonical +91 form:
//   - 9173457840   (10 digits starting with 91 - an actual subscriber number)
//   - 917888888888 (12 digits with country code)
//   - 788888888    (without country code)
//   - +917888888888
//   - 0788888888   (leading trunk 0)
func NormalizePhoneNumber(phone string) (string, error) {
	cleaned := separatorRegex.ReplaceAllString(phone, "")
	cleaned = strings.TrimPrefix(cleaned, "+")

	var normalized string
	switch {
	case len(cleaned) == 10 && strings.HasPrefix(cleaned, "91"):
		// Exactly 10 digits starting with 91: the 91 is part of the
		// subscriber number, not a country code.
		normalized = "+91" + cleaned
	case len(cleaned) == 12 && strings.HasPrefix(cleaned, "91"):
		normalized = "+" + cleaned
	case len(cleaned) == 10:
		normalized = "+91" + cleaned
	case len(cleaned) == 11 && strings.HasPrefix(cleaned, "0"):
		normalized = "+91" + cleaned[1:]
	case len(cleaned) == 8 || len(cleaned) == 9:
		normalized = "+91" + cleaned
	default:
		cleaned = strings.TrimLeft(cleaned, "0")
		if strings.HasPrefix(cleaned, "91") {
			// Already carries the country code; prepending another 91
			// would break re-normalization of canonical numbers.
			normalized = "+" + cleaned
		} else {
			normalized = "+91" + cleaned
		}
	}

	if !canonicalRegex.MatchString(normalized) {
		return "", ErrInvalidPhoneNumber
	}
	return normalized, nil
}

// ValidatePhoneNumber reports whether the number normalizes to a valid
// canonical form.
func ValidatePhoneNumber(phone string) bool {
	_, err := NormalizePhoneNumber(phone)
	return err == nil
}
