package provider

import (
	"errors"
	"fmt"
)

// ErrUnknownProvider is returned when resolving a provider id with no registered adapter
var ErrUnknownProvider = errors.New("unknown provider")

// MisconfiguredError indicates a provider is missing required configuration.
// It is reported per request and is never fatal to the process.
type MisconfiguredError struct {
	Provider string
	Reason   string
}

func (e *MisconfiguredError) Error() string {
	return fmt.Sprintf("%s provider misconfigured: %s", e.Provider, e.Reason)
}

// UpstreamError indicates an upstream request failed.
// Status is the upstream http status code, or 0 for transport errors and timeouts.
type UpstreamError struct {
	Provider string
	Status   int
	Message  string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s upstream error: status %d: %s", e.Provider, e.Status, e.Message)
	}

	return fmt.Sprintf("%s upstream error: %s", e.Provider, e.Message)
}
