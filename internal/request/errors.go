package request

import (
	"errors"
	"fmt"
)

// ErrNoAuth marks calls rejected with an unauthorized or forbidden status.
var ErrNoAuth = errors.New("not authorized")

// APIError is a response that arrived but whose envelope signals failure.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (HTTP %d, code %s)", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("api error (HTTP %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

// TransportError is a call that produced no usable response.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
	Extras     RequestExtras
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
