package provider

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"sales-scheduler/internal/model"
)

// Throttle paces calls per (user, provider) so a single user cannot burst
// against one provider's rate limits. Burst of 1 keeps same-key calls
// effectively sequential.
type Throttle struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
}

// NewThrottle creates a keyed throttle allowing callsPerSecond per key.
func NewThrottle(callsPerSecond float64) *Throttle {
	if callsPerSecond <= 0 {
		callsPerSecond = 5
	}
	return &Throttle{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,
			nil,
			10*time.Minute,
		),
		rate: rate.Limit(callsPerSecond),
	}
}

// Wait blocks until the (user, provider) key may proceed, or ctx expires.
func (t *Throttle) Wait(ctx context.Context, userID string, providerID model.ProviderID) error {
	key := userID + "/" + string(providerID)

	limiter, ok := t.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(t.rate, 1)
		t.limiters.Add(key, limiter)
	}
	return limiter.Wait(ctx)
}
