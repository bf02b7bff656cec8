package middleware

import (
	pkgLog "sales-scheduler/pkg/log"
)

// Config holds middleware settings.
type Config struct {
	RateLimitPerMin int
}

type Middleware struct {
	l   pkgLog.Logger
	cfg Config

	rateLimiter *rateLimiter
}

func New(l pkgLog.Logger, cfg Config) Middleware {
	return Middleware{
		l:           l,
		cfg:         cfg,
		rateLimiter: newRateLimiter(cfg.RateLimitPerMin),
	}
}
