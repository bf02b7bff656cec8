package google

import (
	"context"
	"time"

	"sales-scheduler/internal/credential"
	"sales-scheduler/internal/provider"
	"sales-scheduler/pkg/gcal"
	pkgLog "sales-scheduler/pkg/log"
)

// Client is the subset of the gcal client the adapter needs.
type Client interface {
	ListEvents(ctx context.Context, req gcal.ListEventsRequest) ([]gcal.Event, error)
	CreateEvent(ctx context.Context, req gcal.CreateEventRequest) (*gcal.Event, error)
}

// ClientFactory builds a calendar client for one access token.
type ClientFactory func(ctx context.Context, accessToken string) (Client, error)

// Config holds adapter settings.
type Config struct {
	CalendarID  string        // defaults to "primary"
	CallTimeout time.Duration // defaults to 10s
	Timezone    string        // IANA name for created events
}

type implProvider struct {
	l        pkgLog.Logger
	creds    credential.Store
	throttle *provider.Throttle
	factory  ClientFactory
	cfg      Config
}

var _ provider.CalendarProvider = (*implProvider)(nil)

// New creates the Google Calendar provider adapter.
func New(l pkgLog.Logger, creds credential.Store, throttle *provider.Throttle, cfg Config) *implProvider {
	return NewWithFactory(l, creds, throttle, cfg, func(ctx context.Context, accessToken string) (Client, error) {
		return gcal.NewClientFromToken(ctx, accessToken)
	})
}

// NewWithFactory creates the adapter with a custom client factory (tests).
func NewWithFactory(l pkgLog.Logger, creds credential.Store, throttle *provider.Throttle, cfg Config, factory ClientFactory) *implProvider {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 10 * time.Second
	}
	if cfg.CalendarID == "" {
		cfg.CalendarID = "primary"
	}
	return &implProvider{
		l:        l,
		creds:    creds,
		throttle: throttle,
		factory:  factory,
		cfg:      cfg,
	}
}
