package domain

import "fmt"

// NotFoundError represents a failed lookup for a resource.
type NotFoundError struct {
	// ID is the key used when looking for the resource.
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("resource (%s) not found", e.ID)
}

// UpstreamRejectedError is returned when the search provider answers with a
// non-2xx status.
type UpstreamRejectedError struct {
	StatusCode int
	// StatusText is the reason phrase from the upstream status line.
	StatusText string
}

func (e UpstreamRejectedError) Error() string {
	return fmt.Sprintf("upstream rejected request: %d %s", e.StatusCode, e.StatusText)
}

// UpstreamUnreachableError is returned when the search provider could not be
// reached at all, including timeouts.
type UpstreamUnreachableError struct {
	Endpoint string
	Reason   error
}

func (e UpstreamUnreachableError) Error() string {
	return fmt.Sprintf("upstream (%s) unreachable: %v", e.Endpoint, e.Reason)
}

func (e UpstreamUnreachableError) Unwrap() error {
	return e.Reason
}

// MalformedResponseError is returned when the search provider answers with
// a success status but a body that is not JSON.
type MalformedResponseError struct {
	Reason string
}

func (e MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed upstream response: %s", e.Reason)
}
