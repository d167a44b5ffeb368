package domain

import "strings"

// NormalizePhone canonicalizes an Indian mobile number to +91XXXXXXXXXX.
//
// Accepted shapes: a bare 10-digit number, 91 + 10 digits, or +91 + 10
// digits. Separators (spaces, dashes, parentheses) are stripped first.
// Anything else is a validation failure, never a silent truncation.
// An empty input stays empty: the phone is optional until a WhatsApp
// send is requested.
func NormalizePhone(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if cleaned == "" {
		return "", nil
	}

	hadPlus := strings.HasPrefix(cleaned, "+")
	digits := strings.TrimPrefix(cleaned, "+")
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}

	switch {
	case hadPlus && len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return "+" + digits, nil
	case !hadPlus && len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return "+" + digits, nil
	case !hadPlus && len(digits) == 10:
		return "+91" + digits, nil
	default:
		return "", ErrInvalidPhone
	}
}
