package session

import (
	"context"
	"time"

	errs "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/oauthmodel"
	"github.com/jrsteele09/go-auth-client/token"
	"golang.org/x/oauth2"
)

// refreshFlightKey coalesces every concurrent refresh attempt onto one
// in-flight token exchange; the session holds a single refresh credential.
const refreshFlightKey = "refresh"

// ExchangeCode performs the authorization-code grant. Exchange requests
// are not subject to refresh mutual exclusion. A failed exchange forces
// the logged-out state.
func (m *Manager) ExchangeCode(ctx context.Context, code, codeVerifier string) error {
	opts := []oauth2.AuthCodeOption{}
	if codeVerifier != "" {
		opts = append(opts, oauth2.VerifierOption(codeVerifier))
	}

	tok, err := m.oauth.Exchange(m.oauthContext(ctx), code, opts...)
	if err != nil {
		detail, _ := oauthmodel.Classify(err)
		m.listener.OnException(errs.NewTokenError(detail.Code, detail.Description, detail.URI))
		m.Reset()
		return err
	}

	m.applyToken(tok, true)
	return nil
}

// Refresh performs a manual refresh-token grant. Any failure of a manual
// refresh is fatal and forces logout. Concurrent callers block until the
// in-flight refresh resolves and share its outcome rather than issuing a
// duplicate exchange.
func (m *Manager) Refresh(ctx context.Context) error {
	return m.refresh(ctx, true)
}

func (m *Manager) refresh(ctx context.Context, manual bool) error {
	_, err, _ := m.refreshGroup.Do(refreshFlightKey, func() (any, error) {
		return nil, m.doRefresh(ctx, manual)
	})
	return err
}

func (m *Manager) doRefresh(ctx context.Context, manual bool) error {
	m.mu.Lock()
	refreshToken := m.session.RefreshToken
	if refreshToken == "" {
		m.mu.Unlock()
		return errs.ErrNotAuthorized
	}
	m.state = Refreshing
	m.mu.Unlock()

	source := m.oauth.TokenSource(m.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})
	tok, err := source.Token()
	if err != nil {
		detail, fatal := oauthmodel.Classify(err)
		m.listener.OnException(errs.NewTokenError(detail.Code, detail.Description, detail.URI))

		// invalid_grant and 401 mean the refresh credential itself is dead.
		// Other failures are transient: keep the stale token and retry,
		// unless the refresh was user-requested.
		if fatal || manual {
			m.Reset()
			return err
		}

		m.mu.Lock()
		m.state = Authenticated
		m.scheduleRetryLocked()
		m.mu.Unlock()
		return err
	}

	// Persist before returning so every caller unblocked by this flight
	// observes the fresh token.
	m.applyToken(tok, false)
	return nil
}

// applyToken installs a token endpoint result: mutates the session,
// persists it, swaps the bearer credential, and re-arms the proactive
// refresh, all under one lock so no partial update is observable.
func (m *Manager) applyToken(tok *oauth2.Token, notify bool) {
	m.mu.Lock()
	m.session.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		m.session.RefreshToken = tok.RefreshToken
	}
	if idToken, ok := tok.Extra("id_token").(string); ok && idToken != "" {
		m.session.IDToken = idToken
	}
	m.state = Authenticated

	if serialized, err := m.session.Marshal(); err == nil {
		m.store.SaveState(serialized)
	}
	m.apic.SetBearerToken(m.session.AccessToken)
	m.scheduleRefreshLocked()
	accessToken := m.session.AccessToken
	m.mu.Unlock()

	if notify && accessToken != "" {
		m.listener.OnNewToken(accessToken)
	}
}

// scheduleRefreshLocked arms a one-shot refresh at exp minus the buffer,
// or immediately when already inside the window. Nothing is scheduled
// while paused or when the exp claim is unreadable; in the latter case
// the host must re-authenticate on the next failed call.
func (m *Manager) scheduleRefreshLocked() {
	m.cancelTimerLocked()
	if m.paused {
		return
	}

	exp, ok := token.ExpiryEpochSeconds(m.session.AccessToken)
	if !ok {
		m.log.Warn().Msg("access token exp claim unreadable, proactive refresh disabled")
		return
	}

	delay := RefreshDelay(exp, m.nowFunc(), m.cfg.GetRefreshBuffer())
	m.log.Debug().Dur("delay", delay).Msg("scheduling token refresh")
	m.cancelTimer = m.schedule(delay, m.backgroundRefresh)
}

func (m *Manager) scheduleRetryLocked() {
	m.cancelTimerLocked()
	if m.paused {
		return
	}
	m.cancelTimer = m.schedule(m.cfg.GetRetryDelay(), m.backgroundRefresh)
}

func (m *Manager) backgroundRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.GetHTTPTimeout())
	defer cancel()
	_ = m.refresh(ctx, false)
}

// oauthContext routes token endpoint calls through the manager's HTTP
// client so they carry its timeout and SDK-version header behavior.
func (m *Manager) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
}

// RefreshDelay computes how long to wait before proactively refreshing a
// token expiring at exp (epoch seconds): the remaining lifetime minus the
// buffer, floored at zero for tokens already inside the window.
func RefreshDelay(exp int64, now time.Time, buffer time.Duration) time.Duration {
	refreshAt := time.Unix(exp, 0).Add(-buffer)
	delay := refreshAt.Sub(now)
	if delay < 0 {
		return 0
	}
	return delay
}
