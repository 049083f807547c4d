package services

import (
	"errors"
	"fmt"
)

// Domain errors surfaced to the presentation layer. The services never
// swallow these; handlers translate them into the JSON envelope.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGiftNotFound     = errors.New("gift not found")
	ErrFactureNotFound  = errors.New("facture not found")
	ErrCodeNotFound     = errors.New("code not found")

	// ErrInsufficientPoints means the user's balance does not cover the
	// gift's point cost. No state was mutated.
	ErrInsufficientPoints = errors.New("not enough points to redeem this gift")

	// ErrCodeConflict means token generation exhausted its retry budget.
	// With a 52^12 token space this is practically unreachable, but it is a
	// typed outcome rather than a crash.
	ErrCodeConflict = errors.New("could not generate a unique code")

	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports malformed input on a named field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
