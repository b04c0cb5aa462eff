package adminclient

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTenantID is returned when a tenant id is not a positive number.
	ErrInvalidTenantID = errors.New("invalid tenant id")

	// ErrMissingDeviceID is returned when a device removal has no device id.
	ErrMissingDeviceID = errors.New("device id is missing")

	// ErrInvalidInput is wrapped by request payload validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// APIError is returned when the backend answers with a non-2xx status. The
// response body is not inspected.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return "API Error: " + e.Status
}

// DecodeError is returned when a 2xx response body is not valid JSON or does
// not match the expected shape.
type DecodeError struct {
	Operation string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsAPIError reports whether err carries a backend status failure.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsDecodeError reports whether err is a response decoding failure.
func IsDecodeError(err error) bool {
	var decErr *DecodeError
	return errors.As(err, &decErr)
}
