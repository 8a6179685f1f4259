package satusehat

import (
	"errors"
	"fmt"
	"net/http"
)

// InvalidArgumentError reports a missing or empty required argument,
// detected before any network I/O.
type InvalidArgumentError struct {
	Name string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s must be provided", e.Name)
}

// ServiceError reports a non-200 response from the SatuSehat API.
// The response body is kept for caller-level diagnosis.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("satusehat API returned status %d: %s", e.Status, e.Body)
}

// ParseError reports a response body that does not have the expected
// shape, such as a search bundle with no entries.
type ParseError struct {
	Resource string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected %s response: %s", e.Resource, e.Reason)
}

// IsUnauthorized reports whether err carries an HTTP 401 from the API,
// meaning the persisted access token is missing, expired or revoked.
func IsUnauthorized(err error) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Status == http.StatusUnauthorized
}
