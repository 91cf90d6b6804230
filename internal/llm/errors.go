package llm

import "errors"

var (
	// ErrRateLimited indicates the provider rejected the call with a rate
	// limit; the client backs off and retries before surfacing this.
	ErrRateLimited = errors.New("provider rate limited")

	// ErrProvider indicates the provider is unreachable or rejected the
	// request (transport, auth, server error). Not retryable within a call.
	ErrProvider = errors.New("provider unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the provider response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all backoff retries have been spent.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
