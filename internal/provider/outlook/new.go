package outlook

import (
	"context"
	"time"

	"sales-scheduler/internal/credential"
	"sales-scheduler/internal/provider"
	pkgLog "sales-scheduler/pkg/log"
	"sales-scheduler/pkg/msgraph"
)

// Client is the subset of the msgraph client the adapter needs.
type Client interface {
	ListEvents(ctx context.Context, req msgraph.ListEventsRequest) ([]msgraph.Event, error)
	CreateEvent(ctx context.Context, req msgraph.CreateEventRequest) (*msgraph.Event, error)
}

// ClientFactory builds a Graph client for one access token.
type ClientFactory func(accessToken string) Client

// Config holds adapter settings.
type Config struct {
	CallTimeout time.Duration // defaults to 10s
	Timezone    string
}

type implProvider struct {
	l        pkgLog.Logger
	creds    credential.Store
	throttle *provider.Throttle
	factory  ClientFactory
	cfg      Config
}

var _ provider.CalendarProvider = (*implProvider)(nil)

// New creates the Outlook calendar provider adapter.
func New(l pkgLog.Logger, creds credential.Store, throttle *provider.Throttle, cfg Config) *implProvider {
	return NewWithFactory(l, creds, throttle, cfg, func(accessToken string) Client {
		return msgraph.NewClient(accessToken)
	})
}

// NewWithFactory creates the adapter with a custom client factory (tests).
func NewWithFactory(l pkgLog.Logger, creds credential.Store, throttle *provider.Throttle, cfg Config, factory ClientFactory) *implProvider {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 10 * time.Second
	}
	return &implProvider{
		l:        l,
		creds:    creds,
		throttle: throttle,
		factory:  factory,
		cfg:      cfg,
	}
}
