package registry

import "fmt"

// RequestError reports a non-success HTTP status from the registry. Body
// holds the response payload truncated to errorBodyLimit bytes so failures
// stay diagnosable without logging megabytes of HTML.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("registry request failed with status %d: %s", e.StatusCode, e.Body)
}

// ResponseError reports a registry body that could not be decoded as JSON.
type ResponseError struct {
	Err error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("malformed registry response: %v", e.Err)
}

func (e *ResponseError) Unwrap() error { return e.Err }

// TransportError reports a network-level failure: timeout, connection reset,
// or a context cancelled mid-fetch.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("registry unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
