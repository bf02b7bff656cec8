package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"sales-scheduler/internal/credential"
	"sales-scheduler/internal/middleware"
	"sales-scheduler/internal/model"
	"sales-scheduler/pkg/response"
)

// Connect godoc
// @Summary     Start provider authorization
// @Description Returns the OAuth authorization URL for the given calendar provider.
// @Tags        Connect
// @Produce     json
// @Param       provider path string true "Provider ID (google/outlook)"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Unknown provider"
// @Router      /api/v1/connect/{provider} [GET]
func (h *handler) Connect(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFromContext(c)

	provider := model.ProviderID(c.Param("provider"))
	cfg, ok := h.oauthConfigs[provider]
	if !ok {
		response.Error(c, credential.ErrUnknownProvider, nil)
		return
	}

	state := uuid.New().String()
	h.states.Add(state, sc.UserID)

	// Offline access + forced consent so the provider returns a refresh token.
	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)

	h.l.Infof(ctx, "connect: issued authorization URL for user=%s provider=%s", sc.UserID, provider)
	response.OK(c, gin.H{
		"authorization_url": authURL,
		"state":             state,
	})
}

// Callback godoc
// @Summary     Complete provider authorization
// @Description Exchanges the authorization code and stores the credential.
// @Tags        Connect
// @Produce     json
// @Param       provider path  string true "Provider ID (google/outlook)"
// @Param       code     query string true "Authorization code"
// @Param       state    query string true "State token from Connect"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Invalid code or state"
// @Router      /api/v1/connect/{provider}/callback [GET]
func (h *handler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFromContext(c)

	provider := model.ProviderID(c.Param("provider"))
	cfg, ok := h.oauthConfigs[provider]
	if !ok {
		response.Error(c, credential.ErrUnknownProvider, nil)
		return
	}

	state := c.Query("state")
	owner, ok := h.states.Get(state)
	if !ok || owner != sc.UserID {
		response.Error(c, errors.New("invalid or expired state token"), nil)
		return
	}
	h.states.Remove(state)

	code := c.Query("code")
	if code == "" {
		response.Error(c, errors.New("authorization code is required"), nil)
		return
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		h.l.Errorf(ctx, "connect: code exchange failed for user=%s provider=%s: %v", sc.UserID, provider, err)
		response.Error(c, errors.New("authorization code exchange failed"), nil)
		return
	}

	cred := model.CalendarCredential{
		UserID:       sc.UserID,
		Provider:     provider,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
		Scope:        strings.Join(cfg.Scopes, " "),
	}
	if err := h.store.Save(ctx, sc, cred); err != nil {
		h.l.Errorf(ctx, "connect: failed to save credential for user=%s provider=%s: %v", sc.UserID, provider, err)
		response.InternalError(c, err)
		return
	}

	h.l.Infof(ctx, "connect: provider %s connected for user=%s", provider, sc.UserID)
	response.OK(c, gin.H{
		"provider":  provider,
		"connected": true,
	})
}
