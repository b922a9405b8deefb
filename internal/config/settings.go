package config

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingDomain    = errors.New("identity provider domain is required")
	ErrMissingClientID  = errors.New("client id is required")
	ErrInvalidRedirect  = errors.New("redirect uri does not match the configured scheme")
	ErrMissingRedirects = errors.New("login and logout redirect uris are required")
)

// DefaultScopes are requested when the host does not override them.
var DefaultScopes = []string{"openid", "offline", "email", "profile"}

const (
	defaultRedirectScheme  = "auth.client://"
	defaultRefreshBuffer   = 10 * time.Second
	defaultRetryDelay      = 10 * time.Second
	defaultHTTPTimeout     = 10 * time.Second
	defaultClaimsCacheTTL  = 60 * time.Second
	defaultSDKVersionLabel = "Go/1.0"
)

// Settings is the host-facing configuration surface. Hosts populate it
// programmatically; there is no file or environment source because the
// embedding application owns configuration delivery.
type Settings struct {
	Domain         string
	ClientID       string
	Audience       string
	LoginRedirect  string
	LogoutRedirect string

	// RedirectScheme is the URI scheme both redirects must use.
	RedirectScheme string

	Scopes []string

	RefreshBuffer  time.Duration
	RetryDelay     time.Duration
	HTTPTimeout    time.Duration
	ClaimsCacheTTL time.Duration

	// SDKVersion is sent on token endpoint calls.
	SDKVersion string
}

func (s Settings) withDefaults() Settings {
	if s.RedirectScheme == "" {
		s.RedirectScheme = defaultRedirectScheme
	}
	if len(s.Scopes) == 0 {
		s.Scopes = DefaultScopes
	}
	if s.RefreshBuffer == 0 {
		s.RefreshBuffer = defaultRefreshBuffer
	}
	if s.RetryDelay == 0 {
		s.RetryDelay = defaultRetryDelay
	}
	if s.HTTPTimeout == 0 {
		s.HTTPTimeout = defaultHTTPTimeout
	}
	if s.ClaimsCacheTTL == 0 {
		s.ClaimsCacheTTL = defaultClaimsCacheTTL
	}
	if s.SDKVersion == "" {
		s.SDKVersion = defaultSDKVersionLabel
	}
	return s
}

func (s Settings) validate() error {
	if strings.TrimSpace(s.Domain) == "" {
		return ErrMissingDomain
	}
	if strings.TrimSpace(s.ClientID) == "" {
		return ErrMissingClientID
	}
	if s.LoginRedirect == "" || s.LogoutRedirect == "" {
		return ErrMissingRedirects
	}
	if !strings.HasPrefix(s.LoginRedirect, s.RedirectScheme) ||
		!strings.HasPrefix(s.LogoutRedirect, s.RedirectScheme) {
		return ErrInvalidRedirect
	}
	return nil
}
