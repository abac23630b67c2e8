package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest password registration accepts.
const MinPasswordLength = 8

const passwordRequirements = "Password must be at least 8 characters long and include " +
	"an uppercase letter, lowercase letter, number, and special character."

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validation is the outcome of a pure input check. Reason is empty when OK.
type Validation struct {
	OK     bool
	Reason string
}

func valid() Validation { return Validation{OK: true} }

func invalid(reason string) Validation { return Validation{Reason: reason} }

// ValidatePassword enforces the password strength policy: at least
// MinPasswordLength characters with one ASCII lowercase letter, one ASCII
// uppercase letter, one digit and one character that is not a letter or digit
// (underscore counts as special). Line breaks are not allowed, a carriage
// return on its own is.
func ValidatePassword(password string) Validation {
	if utf8.RuneCountInString(password) < MinPasswordLength || strings.ContainsRune(password, '\n') {
		return invalid(passwordRequirements)
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case r == '_' || !(unicode.IsLetter(r) || unicode.IsDigit(r)):
			special = true
		}
	}

	if !lower || !upper || !digit || !special {
		return invalid(passwordRequirements)
	}
	return valid()
}

// ValidateEmail is a syntactic check only. Deliverability is not verified.
func ValidateEmail(email string) Validation {
	if strings.TrimSpace(email) == "" {
		return invalid("email is required")
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return invalid("email is not a valid address")
	}
	return valid()
}
