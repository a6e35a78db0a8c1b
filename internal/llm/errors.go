package llm

import "errors"

var (
	// ErrUnavailable indicates the assistant backend is unreachable.
	ErrUnavailable = errors.New("assistant backend unavailable")

	// ErrTimeout indicates a round trip exceeded the configured timeout.
	ErrTimeout = errors.New("assistant request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("assistant retry attempts exhausted")

	// ErrNoChoices indicates the backend answered without any message.
	ErrNoChoices = errors.New("assistant returned no reply")

	// ErrUnknownProvider indicates an unsupported backend name.
	ErrUnknownProvider = errors.New("unknown assistant provider")

	// ErrMissingAPIKey indicates a backend that needs a credential got none.
	ErrMissingAPIKey = errors.New("assistant API key is required")
)
