package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/oauth2"

	"sales-scheduler/internal/credential"
	"sales-scheduler/internal/model"
	pkgLog "sales-scheduler/pkg/log"
)

// Handler exposes the OAuth connect flow for calendar providers.
type Handler interface {
	Connect(c *gin.Context)
	Callback(c *gin.Context)
}

type handler struct {
	l            pkgLog.Logger
	store        credential.Store
	oauthConfigs map[model.ProviderID]*oauth2.Config

	// Pending authorization states, keyed by the state token sent to the
	// provider. Entries expire with the authorization window.
	states *expirable.LRU[string, string]
}

// New creates the connect-flow HTTP handler.
func New(l pkgLog.Logger, store credential.Store, oauthConfigs map[model.ProviderID]*oauth2.Config) *handler {
	return &handler{
		l:            l,
		store:        store,
		oauthConfigs: oauthConfigs,
		states:       expirable.NewLRU[string, string](500, nil, 10*time.Minute),
	}
}
