package api

import (
	"errors"
	"fmt"
)

var (
	// ErrPaymentRequired maps a 402 on message send: the server-side
	// credit balance is exhausted.
	ErrPaymentRequired = errors.New("credits exhausted")

	// ErrForbidden maps a 403 on admin reads: wrong admin key.
	ErrForbidden = errors.New("admin key rejected")

	// ErrUnauthorized maps a 401: missing or rejected bearer token.
	ErrUnauthorized = errors.New("not authenticated")
)

// StatusError carries any other non-2xx response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}
