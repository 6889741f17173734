package api

import (
	"errors"
	"fmt"
)

// Error is the typed failure for any non-2xx or malformed response from the
// remote API. Detail carries the server's human-readable message when the
// error body provided one.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
}

// Detail returns the message to surface for err: the server-provided detail
// for *Error, the plain error text otherwise.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return err.Error()
}
