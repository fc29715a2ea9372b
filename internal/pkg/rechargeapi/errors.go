package rechargeapi

import (
	"errors"
	"fmt"
)

// ErrTransport marks failures to reach the API or to read its reply.
var ErrTransport = errors.New("recharge api unreachable")

// APIError is a well-formed reply with success=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("recharge api request failed (status %d)", e.Status)
	}
	return fmt.Sprintf("recharge api request failed (status %d): %s", e.Status, e.Message)
}

func transportError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
}

// Message returns the server-provided message of an APIError, or "".
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
