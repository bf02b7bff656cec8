package credential

import "errors"

// Domain-specific errors for the credential package.
var (
	ErrNotConnected    = errors.New("provider not connected for user")
	ErrRefreshFailed   = errors.New("token refresh failed, re-authorization required")
	ErrUnknownProvider = errors.New("unknown calendar provider")
)
