package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrContentUnavailable indicates the itinerary for a destination and
	// tier could not be loaded. The provider's cause is wrapped alongside it.
	ErrContentUnavailable = errors.New("itinerary content unavailable")

	// ErrSyncDegraded marks a failed remote registration, progress fetch or
	// progress write. It is logged, never surfaced as a blocking error.
	ErrSyncDegraded = errors.New("remote sync degraded")
)

// ValidationError reports bad trip parameters entered by the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func quote(s string) string {
	return strconv.Quote(s)
}
