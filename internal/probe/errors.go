package probe

import "errors"

var (
	// ErrUnhealthy is returned when /healthz does not answer 200.
	ErrUnhealthy = errors.New("probe: service unhealthy")
	// ErrProbesFailed is returned when at least one probe failed.
	ErrProbesFailed = errors.New("probe: probes failed")
	// ErrUnexpected marks a response that does not look like the endpoint's output.
	ErrUnexpected = errors.New("probe: unexpected response")
)
