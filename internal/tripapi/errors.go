package tripapi

import (
	"errors"

	"github.com/alexanderramin/itinera/internal/app"
)

var (
	// ErrTimeout indicates the request exceeded its configured timeout.
	// It is always returned together with app.ErrUnavailable.
	ErrTimeout = errors.New("trip api request timed out")

	// ErrRejected indicates the API refused the request (4xx other than 404).
	ErrRejected = errors.New("trip api rejected request")

	// ErrInvalidResponse indicates a 2xx body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid trip api response")

	// ErrDisabled is returned by every call when the client is disabled.
	ErrDisabled = errors.New("trip api disabled")
)

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, app.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	case errors.Is(err, ErrDisabled):
		return "DISABLED"
	case errors.Is(err, app.ErrUnavailable):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
