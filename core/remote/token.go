package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"data-reconciler/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenProvider obtains the bearer token sent with every page request.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider returning a fixed token.
type StaticToken string

// Token returns t.
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// OAuthTokenProvider requests a token with the OAuth2 client credentials grant.
// Credentials are sent as form parameters.
type OAuthTokenProvider struct {
	conf   *clientcredentials.Config
	client *http.Client
	log    *zap.Logger
}

// NewTokenProvider returns a StaticToken when cfg has one, and an
// OAuthTokenProvider otherwise.
func NewTokenProvider(cfg AuthConfig, client *http.Client, log *zap.Logger) (TokenProvider, error) {
	if cfg.StaticToken != "" {
		return StaticToken(cfg.StaticToken), nil
	}
	if cfg.TokenURL == "" {
		return nil, reconcile.ConfigurationError("token provider", fmt.Errorf("auth.token_url is not set"))
	}
	if cfg.ClientID == "" {
		return nil, reconcile.ConfigurationError("token provider", fmt.Errorf("auth.client_id is not set"))
	}
	if log == nil {
		log = zap.NewNop()
	}

	conf := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       splitScopes(cfg.Scopes),
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	if cfg.GrantType != "" && cfg.GrantType != "client_credentials" {
		conf.EndpointParams = url.Values{"grant_type": {cfg.GrantType}}
	}

	return &OAuthTokenProvider{conf: conf, client: client, log: log}, nil
}

// Token performs one token request.
func (p *OAuthTokenProvider) Token(ctx context.Context) (string, error) {
	if p.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	}

	p.log.Debug("Requesting access token", zap.String("token_url", p.conf.TokenURL))

	tok, err := p.conf.Token(ctx)
	if err != nil {
		return "", classifyTokenError(err)
	}
	if tok.AccessToken == "" {
		return "", reconcile.ProtocolError("token", fmt.Errorf("token response has no access_token"))
	}

	p.log.Debug("Access token acquired", zap.String("token_type", tok.Type()), zap.Time("expiry", tok.Expiry))
	return tok.AccessToken, nil
}

func classifyTokenError(err error) error {
	var retrieve *oauth2.RetrieveError
	if errors.As(err, &retrieve) {
		status := 0
		if retrieve.Response != nil {
			status = retrieve.Response.StatusCode
		}
		return reconcile.ProtocolError("token", fmt.Errorf("token endpoint returned status %d: %s", status, snippet(retrieve.Body)))
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return reconcile.ConnectivityError("token", fmt.Errorf("failed to reach token endpoint: %w", err))
	}

	return reconcile.ProtocolError("token", fmt.Errorf("failed to obtain token: %w", err))
}

func splitScopes(s string) []string {
	var scopes []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			scopes = append(scopes, part)
		}
	}
	return scopes
}
