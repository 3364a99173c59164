package tool

// Result is the outcome of a tool call: either a typed success payload or an error
// message. Callers branch on IsError rather than inspecting the payload's shape.
type Result struct {
	isError bool
	payload any
	message string
}

// Success wraps a typed payload.
func Success(payload any) Result {
	return Result{payload: payload}
}

// Failure wraps a single human-readable error line.
func Failure(message string) Result {
	return Result{isError: true, message: message}
}

// IsError reports whether r is a Failure.
func (r Result) IsError() bool { return r.isError }

// Payload returns the success payload; nil for failures.
func (r Result) Payload() any { return r.payload }

// Message returns the error text; empty for successes.
func (r Result) Message() string { return r.message }
