package provider

import "errors"

// Error taxonomy for provider operations. Single-provider failures are
// absorbed by callers into per-provider status, never propagated as-is.
var (
	ErrNotConnected  = errors.New("provider not connected")
	ErrRefreshFailed = errors.New("provider token refresh failed")
	ErrTimeout       = errors.New("provider call timed out")
	ErrRejected      = errors.New("provider rejected the request")
)
