package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/jrsteele09/go-auth-client/api"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/store"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/token/keys"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// Scheduler arms a one-shot deferred task and returns its cancel.
// Hosts with their own timer facilities (event-loop bindings) may
// substitute the default time.AfterFunc implementation.
type Scheduler func(delay time.Duration, task func()) (cancel func())

func defaultSchedule(delay time.Duration, task func()) func() {
	t := time.AfterFunc(delay, task)
	return func() { t.Stop() }
}

// Manager owns the current auth state: it executes token exchange and
// refresh calls, enforces at-most-one-concurrent-refresh, schedules
// proactive refresh ahead of expiry, and reacts to host foreground and
// background transitions. All invariants are held in-process; there is
// no server-side coordination.
type Manager struct {
	cfg      config.Config
	log      zerolog.Logger
	store    *store.DomainStore
	apic     *api.Client
	listener Listener
	oauth    *oauth2.Config

	nowFunc    func() time.Time
	schedule   Scheduler
	loopCheck  func() bool
	httpClient *http.Client

	refreshGroup singleflight.Group

	mu          sync.Mutex
	session     Session
	state       State
	paused      bool
	cancelTimer func()
	resetHooks  []func()
}

type ManagerOption func(*Manager)

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func WithLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// WithBlockedLoopCheck installs the cooperative-scheduling guard: when the
// predicate reports that the caller is on the host's designated event-loop
// goroutine, blocking calls fail fast with ErrWrongThread instead of
// stalling the loop.
func WithBlockedLoopCheck(check func() bool) ManagerOption {
	return func(m *Manager) {
		m.loopCheck = check
	}
}

func WithHTTPClient(httpClient *http.Client) ManagerOption {
	return func(m *Manager) {
		m.httpClient = httpClient
	}
}

// WithScheduler substitutes the deferred-task scheduler driving
// proactive refresh.
func WithScheduler(schedule Scheduler) ManagerOption {
	return func(m *Manager) {
		m.schedule = schedule
	}
}

// New builds a Manager, restoring any persisted session for the configured
// domain. A restored authorized session immediately re-attaches the bearer
// credential, notifies the listener, and arms the proactive refresh;
// otherwise the listener observes a logout.
func New(cfg config.Config, secureStore store.Store, listener Listener, options ...ManagerOption) *Manager {
	m := &Manager{
		cfg:      cfg,
		log:      zerolog.Nop(),
		store:    store.NewDomainStore(secureStore, cfg.GetDomain()),
		listener: listener,
		nowFunc:  time.Now,
		schedule: defaultSchedule,
		state:    Unauthenticated,
		oauth: &oauth2.Config{
			ClientID:    cfg.GetClientID(),
			RedirectURL: cfg.GetLoginRedirect(),
			Scopes:      cfg.GetScopes(),
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.GetAuthURL(),
				TokenURL:  cfg.GetTokenURL(),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}

	for _, opt := range options {
		opt(m)
	}

	if m.httpClient == nil {
		m.httpClient = &http.Client{Timeout: cfg.GetHTTPTimeout()}
	}
	m.apic = api.NewClient(cfg.GetBaseURL(),
		api.WithHTTPClient(m.httpClient),
		api.WithSDKVersion(cfg.GetSDKVersion()),
		api.WithLogger(m.log),
	)

	m.restore()
	m.warmKeys()

	return m
}

// API exposes the provider REST client bound to this session's bearer
// credential.
func (m *Manager) API() *api.Client {
	return m.apic
}

// OAuthConfig returns the endpoint configuration shared with the
// authorization flow controller.
func (m *Manager) OAuthConfig() *oauth2.Config {
	return m.oauth
}

// Token returns the requested token by type, or "" when absent.
// Satisfies the claims resolver's token-provider capability.
func (m *Manager) Token(t token.Type) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t == token.IDToken {
		return m.session.IDToken
	}
	return m.session.AccessToken
}

// RefreshToken returns the current refresh token, or "".
func (m *Manager) RefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.RefreshToken
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated reports whether the session is authorized and its access
// token verifies against the cached signing keys. Purely local; key
// material is never re-fetched here.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	authorized := m.session.Authorized()
	accessToken := m.session.AccessToken
	m.mu.Unlock()

	if !authorized {
		return false
	}

	keySet, err := m.cachedKeys()
	if err != nil {
		m.listener.OnException(err)
		return false
	}

	valid, err := token.Verify(accessToken, keySet)
	if err != nil {
		m.listener.OnException(err)
		return false
	}
	return valid
}

// ClearKeys drops the cached signing keys. The provider key set is never
// refreshed automatically after a rotation; hosts call this to force a
// re-fetch on the next warm-up.
func (m *Manager) ClearKeys() {
	m.store.ClearKeys()
}

// RegisterResetHook adds a callback invoked on every logout or reset,
// after local state has been cleared. Used to invalidate derived caches.
func (m *Manager) RegisterResetHook(hook func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetHooks = append(m.resetHooks, hook)
}

// Pause cancels the pending proactive refresh and suspends automatic
// refreshing until Resume. Idempotent.
func (m *Manager) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = true
	m.cancelTimerLocked()
}

// Resume re-syncs the in-memory session from the persisted store (picking
// up mutations made while suspended) and re-arms the proactive refresh if
// the session is still authorized.
func (m *Manager) Resume() {
	m.mu.Lock()
	m.paused = false
	if serialized, ok := m.store.GetState(); ok {
		if restored, err := ParseSession(serialized); err == nil {
			m.session = restored
			m.apic.SetBearerToken(restored.AccessToken)
		}
	}
	authorized := m.session.Authorized()
	if authorized {
		m.state = Authenticated
		m.scheduleRefreshLocked()
	}
	m.mu.Unlock()
}

// Reset clears all local authentication state: cancels the pending
// refresh, invalidates the bearer credential, removes the persisted
// session, runs reset hooks, and notifies the listener. Safe to call
// repeatedly; every call ends in the logged-out state.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.cancelTimerLocked()
	m.session = Session{}
	m.state = LoggedOut
	m.store.ClearState()
	hooks := make([]func(), len(m.resetHooks))
	copy(hooks, m.resetHooks)
	m.mu.Unlock()

	m.apic.SetBearerToken("")
	for _, hook := range hooks {
		hook()
	}
	m.listener.OnLogout()
}

// restore loads the persisted session at construction.
func (m *Manager) restore() {
	serialized, ok := m.store.GetState()
	if !ok {
		m.listener.OnLogout()
		return
	}

	restored, err := ParseSession(serialized)
	if err != nil {
		m.log.Warn().Err(err).Msg("discarding unreadable persisted session")
		m.store.ClearState()
		m.listener.OnLogout()
		return
	}

	m.mu.Lock()
	m.session = restored
	authorized := restored.Authorized()
	if authorized {
		m.state = Authenticated
		m.apic.SetBearerToken(restored.AccessToken)
		m.scheduleRefreshLocked()
	}
	accessToken := restored.AccessToken
	m.mu.Unlock()

	if authorized {
		m.listener.OnNewToken(accessToken)
	} else {
		m.listener.OnLogout()
	}
}

// warmKeys fetches the signing keys in the background when none are
// cached. Keys persist indefinitely once stored.
func (m *Manager) warmKeys() {
	if _, ok := m.store.GetKeys(); ok {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.GetHTTPTimeout())
		defer cancel()

		keySet, err := m.apic.GetKeys(ctx)
		if err != nil {
			m.listener.OnException(err)
			return
		}
		serialized, err := keySet.Marshal()
		if err != nil {
			m.listener.OnException(err)
			return
		}
		m.store.SaveKeys(serialized)
	}()
}

func (m *Manager) cachedKeys() (*keys.KeySet, error) {
	serialized, ok := m.store.GetKeys()
	if !ok {
		return nil, nil
	}
	return keys.Parse([]byte(serialized))
}

func (m *Manager) cancelTimerLocked() {
	if m.cancelTimer != nil {
		m.cancelTimer()
		m.cancelTimer = nil
	}
}

// CancelScheduledRefresh drops any pending proactive refresh without
// touching the rest of the session state. Canceling when nothing is
// scheduled is a no-op.
func (m *Manager) CancelScheduledRefresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelTimerLocked()
}
