package backend

import "fmt"

// ErrorKind classifies a normalized backend failure.
type ErrorKind string

const (
	// KindStatus is a response outside the 2xx range.
	KindStatus ErrorKind = "status"
	// KindNetwork is a connection, DNS, TLS, timeout or read failure.
	KindNetwork ErrorKind = "network"
	// KindUnexpected covers everything else, e.g. a malformed JSON body.
	KindUnexpected ErrorKind = "unexpected"
)

// APIError is the single error kind returned by Client.Execute.
// Its message is human-readable and safe to surface to tool callers.
type APIError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int    // set for KindStatus only
	Body       string // raw response body, KindStatus only
	Err        error  // underlying cause, nil for KindStatus
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("API error %d at %s: %s", e.StatusCode, e.URL, e.Body)
	case KindNetwork:
		return fmt.Sprintf("Network error during request to %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("Unexpected error during request to %s: %v", e.URL, e.Err)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func statusError(url string, code int, body string) *APIError {
	return &APIError{Kind: KindStatus, URL: url, StatusCode: code, Body: body}
}

func networkError(url string, err error) *APIError {
	return &APIError{Kind: KindNetwork, URL: url, Err: err}
}

func unexpectedError(url string, err error) *APIError {
	return &APIError{Kind: KindUnexpected, URL: url, Err: err}
}
