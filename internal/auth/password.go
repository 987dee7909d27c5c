package auth

import (
	"strings"

	"github.com/flexnit/flexnit/internal/catalog"
)

const passwordSpecials = "@$!%*?&"

// ValidatePassword enforces the registration password policy: at least 8
// characters, with at least one letter, one digit, and one special
// character, drawn only from letters, digits, and the allowed specials.
func ValidatePassword(password string) error {
	fail := func() error {
		return &catalog.ValidationError{
			Field: "password",
			Message: "must be at least 8 characters long and include at least one letter, " +
				"one number, and one special character (e.g., @$!%*?&)",
		}
	}

	if len(password) < 8 {
		return fail()
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		default:
			// Characters outside the allowed classes invalidate the password.
			return fail()
		}
	}

	if !hasLetter || !hasDigit || !hasSpecial {
		return fail()
	}
	return nil
}
