package session_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-auth-client/internal/config"
	errs "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/session"
	"github.com/jrsteele09/go-auth-client/store"
	"github.com/jrsteele09/go-auth-client/store/storefakes"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/jrsteele09/go-auth-client/token/keys"
	"github.com/stretchr/testify/require"
)

const (
	testDomain   = "example.auth.com"
	testClientID = "client-1"

	// Any cached key set suppresses the background JWKS fetch at
	// construction, keeping fixtures offline.
	placeholderKeys = `{"keys":[{"e":"AQAB","n":"sXchQ","alg":"RS256","kid":"key-1","kty":"RSA"}]}`
)

// fakeListener records every callback for assertion.
type fakeListener struct {
	mu         sync.Mutex
	tokens     []string
	logouts    int
	exceptions []error
}

func (l *fakeListener) OnNewToken(accessToken string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = append(l.tokens, accessToken)
}

func (l *fakeListener) OnLogout() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logouts++
}

func (l *fakeListener) OnException(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.exceptions = append(l.exceptions, err)
}

func (l *fakeListener) Tokens() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.tokens...)
}

func (l *fakeListener) Logouts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logouts
}

func (l *fakeListener) Exceptions() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]error{}, l.exceptions...)
}

// fakeScheduler captures scheduled refreshes instead of arming timers.
type fakeScheduler struct {
	mu       sync.Mutex
	delays   []time.Duration
	tasks    []func()
	canceled int
}

func (s *fakeScheduler) Schedule(delay time.Duration, task func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, delay)
	s.tasks = append(s.tasks, task)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.canceled++
	}
}

func (s *fakeScheduler) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration{}, s.delays...)
}

func (s *fakeScheduler) LastTask() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tasks) == 0 {
		return nil
	}
	return s.tasks[len(s.tasks)-1]
}

func (s *fakeScheduler) Canceled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canceled
}

type managerFixture struct {
	backing   *storefakes.FakeStore
	domain    *store.DomainStore
	listener  *fakeListener
	scheduler *fakeScheduler
	manager   *session.Manager
}

// setupManager builds a Manager over an in-memory store. A non-nil seed
// is persisted before construction so restore picks it up; serverURL
// redirects the token endpoint to a local test server.
func setupManager(t *testing.T, serverURL string, seed *session.Session, options ...session.ManagerOption) *managerFixture {
	t.Helper()

	cfg, err := config.New(config.Settings{
		Domain:         testDomain,
		ClientID:       testClientID,
		RedirectScheme: "test.app://",
		LoginRedirect:  "test.app://callback",
		LogoutRedirect: "test.app://logged_out",
	})
	require.NoError(t, err)

	backing := storefakes.NewFakeStore()
	domainStore := store.NewDomainStore(backing, testDomain)
	domainStore.SaveKeys(placeholderKeys)
	if seed != nil {
		serialized, err := seed.Marshal()
		require.NoError(t, err)
		domainStore.SaveState(serialized)
	}

	listener := &fakeListener{}
	scheduler := &fakeScheduler{}
	opts := append([]session.ManagerOption{session.WithScheduler(scheduler.Schedule)}, options...)
	manager := session.New(cfg, backing, listener, opts...)
	if serverURL != "" {
		manager.OAuthConfig().Endpoint.TokenURL = serverURL + "/oauth2/token"
	}

	return &managerFixture{
		backing:   backing,
		domain:    domainStore,
		listener:  listener,
		scheduler: scheduler,
		manager:   manager,
	}
}

// accessTokenExpiring builds an unsigned JWT whose exp claim drives the
// refresh scheduling under test.
func accessTokenExpiring(t *testing.T, exp time.Time) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{"sub": "user_1", "exp": exp.Unix()})
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".c2lnbmF0dXJl"
}

func tokenResponse(accessToken, refreshToken string) string {
	return fmt.Sprintf(`{"access_token":%q,"token_type":"Bearer","expires_in":3600,"refresh_token":%q}`,
		accessToken, refreshToken)
}

// tokenServer counts token endpoint hits and serves the given responder.
func tokenServer(t *testing.T, respond http.HandlerFunc) (*httptest.Server, *sync.Mutex, *int) {
	t.Helper()

	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		respond(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &mu, &calls
}

func TestRestorePersistedSession(t *testing.T) {
	accessToken := accessTokenExpiring(t, time.Now().Add(time.Hour))
	f := setupManager(t, "", &session.Session{AccessToken: accessToken, RefreshToken: "refresh-1"})

	require.Equal(t, session.Authenticated, f.manager.State())
	require.Equal(t, accessToken, f.manager.Token(token.AccessToken))
	require.Equal(t, "refresh-1", f.manager.RefreshToken())
	require.Equal(t, []string{accessToken}, f.listener.Tokens())
	require.Zero(t, f.listener.Logouts())
	require.Equal(t, accessToken, f.manager.API().BearerToken())

	delays := f.scheduler.Delays()
	require.Len(t, delays, 1)
	require.InDelta(t, float64(3590*time.Second), float64(delays[0]), float64(5*time.Second))
}

func TestRestoreEmptyStore(t *testing.T) {
	f := setupManager(t, "", nil)

	require.Equal(t, session.Unauthenticated, f.manager.State())
	require.Empty(t, f.manager.Token(token.AccessToken))
	require.Equal(t, 1, f.listener.Logouts())
	require.Empty(t, f.scheduler.Delays())
}

func TestRestoreCorruptState(t *testing.T) {
	cfg, err := config.New(config.Settings{
		Domain:         testDomain,
		ClientID:       testClientID,
		RedirectScheme: "test.app://",
		LoginRedirect:  "test.app://callback",
		LogoutRedirect: "test.app://logged_out",
	})
	require.NoError(t, err)

	backing := storefakes.NewFakeStore()
	domainStore := store.NewDomainStore(backing, testDomain)
	domainStore.SaveKeys(placeholderKeys)
	domainStore.SaveState("{{not json")

	listener := &fakeListener{}
	manager := session.New(cfg, backing, listener)

	require.Equal(t, session.Unauthenticated, manager.State())
	require.Equal(t, 1, listener.Logouts())
	_, ok := domainStore.GetState()
	require.False(t, ok)
}

func TestExchangeCode(t *testing.T) {
	accessToken := accessTokenExpiring(t, time.Now().Add(time.Hour))
	server, _, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		require.Equal(t, "code-1", r.Form.Get("code"))
		require.Equal(t, testClientID, r.Form.Get("client_id"))
		require.NotEmpty(t, r.Form.Get("code_verifier"))
		fmt.Fprint(w, tokenResponse(accessToken, "refresh-1"))
	})

	f := setupManager(t, server.URL, nil)
	err := f.manager.ExchangeCode(context.Background(), "code-1", "verifier-1")
	require.NoError(t, err)

	require.Equal(t, session.Authenticated, f.manager.State())
	require.Equal(t, accessToken, f.manager.Token(token.AccessToken))
	require.Equal(t, "refresh-1", f.manager.RefreshToken())
	require.Equal(t, []string{accessToken}, f.listener.Tokens())

	serialized, ok := f.domain.GetState()
	require.True(t, ok)
	restored, err := session.ParseSession(serialized)
	require.NoError(t, err)
	require.Equal(t, accessToken, restored.AccessToken)
	require.Equal(t, "refresh-1", restored.RefreshToken)

	delays := f.scheduler.Delays()
	require.Len(t, delays, 1)
	require.InDelta(t, float64(3590*time.Second), float64(delays[0]), float64(5*time.Second))
}

func TestExchangeCodeFailureForcesLogout(t *testing.T) {
	server, _, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_grant","error_description":"code already used"}`)
	})

	f := setupManager(t, server.URL, nil)
	err := f.manager.ExchangeCode(context.Background(), "code-1", "")
	require.Error(t, err)

	require.Equal(t, session.LoggedOut, f.manager.State())
	require.Empty(t, f.manager.Token(token.AccessToken))

	exceptions := f.listener.Exceptions()
	require.Len(t, exceptions, 1)
	var tokenErr *errs.TokenError
	require.ErrorAs(t, exceptions[0], &tokenErr)
	require.Equal(t, "invalid_grant", tokenErr.Code)
}

func TestRefreshCoalescesConcurrentCallers(t *testing.T) {
	oldToken := accessTokenExpiring(t, time.Now().Add(time.Minute))
	newToken := accessTokenExpiring(t, time.Now().Add(time.Hour))
	server, mu, calls := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		time.Sleep(150 * time.Millisecond)
		fmt.Fprint(w, tokenResponse(newToken, "refresh-2"))
	})

	f := setupManager(t, server.URL, &session.Session{AccessToken: oldToken, RefreshToken: "refresh-1"})

	const callers = 8
	var wg sync.WaitGroup
	start := make(chan struct{})
	errors := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errors[i] = f.manager.Refresh(context.Background())
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errors[i])
	}

	mu.Lock()
	require.Equal(t, 1, *calls)
	mu.Unlock()

	require.Equal(t, newToken, f.manager.Token(token.AccessToken))
	require.Equal(t, "refresh-2", f.manager.RefreshToken())
	require.Equal(t, session.Authenticated, f.manager.State())
}

func TestRefreshKeepsRefreshTokenWhenOmitted(t *testing.T) {
	oldToken := accessTokenExpiring(t, time.Now().Add(time.Minute))
	newToken := accessTokenExpiring(t, time.Now().Add(time.Hour))
	server, _, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"access_token":%q,"token_type":"Bearer","expires_in":3600}`, newToken)
	})

	f := setupManager(t, server.URL, &session.Session{AccessToken: oldToken, RefreshToken: "refresh-1"})
	require.NoError(t, f.manager.Refresh(context.Background()))

	require.Equal(t, newToken, f.manager.Token(token.AccessToken))
	require.Equal(t, "refresh-1", f.manager.RefreshToken())
}

func TestManualRefreshFailureForcesLogout(t *testing.T) {
	oldToken := accessTokenExpiring(t, time.Now().Add(time.Minute))
	server, _, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error":"temporarily_unavailable"}`)
	})

	f := setupManager(t, server.URL, &session.Session{AccessToken: oldToken, RefreshToken: "refresh-1"})
	err := f.manager.Refresh(context.Background())
	require.Error(t, err)

	require.Equal(t, session.LoggedOut, f.manager.State())
	require.Empty(t, f.manager.Token(token.AccessToken))
	require.Equal(t, 1, f.listener.Logouts())
	_, ok := f.domain.GetState()
	require.False(t, ok)
}

func TestBackgroundRefreshTransientFailureRetries(t *testing.T) {
	// Token already inside the refresh window, so restore schedules an
	// immediate refresh.
	oldToken := accessTokenExpiring(t, time.Now().Add(5*time.Second))
	server, _, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error":"temporarily_unavailable"}`)
	})

	f := setupManager(t, server.URL, &session.Session{AccessToken: oldToken, RefreshToken: "refresh-1"})

	delays := f.scheduler.Delays()
	require.Len(t, delays, 1)
	require.Equal(t, time.Duration(0), delays[0])

	f.scheduler.LastTask()()

	require.Equal(t, session.Authenticated, f.manager.State())
	require.Equal(t, oldToken, f.manager.Token(token.AccessToken))
	require.Equal(t, "refresh-1", f.manager.RefreshToken())
	require.Zero(t, f.listener.Logouts())

	exceptions := f.listener.Exceptions()
	require.Len(t, exceptions, 1)
	var tokenErr *errs.TokenError
	require.ErrorAs(t, exceptions[0], &tokenErr)

	delays = f.scheduler.Delays()
	require.Len(t, delays, 2)
	require.Equal(t, 10*time.Second, delays[1])
}

func TestBackgroundRefreshFatalFailureForcesLogout(t *testing.T) {
	oldToken := accessTokenExpiring(t, time.Now().Add(5*time.Second))
	server, _, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_grant"}`)
	})

	f := setupManager(t, server.URL, &session.Session{AccessToken: oldToken, RefreshToken: "refresh-1"})
	f.scheduler.LastTask()()

	require.Equal(t, session.LoggedOut, f.manager.State())
	require.Empty(t, f.manager.Token(token.AccessToken))
	require.Equal(t, 1, f.listener.Logouts())
	_, ok := f.domain.GetState()
	require.False(t, ok)
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	f := setupManager(t, "", nil)
	err := f.manager.Refresh(context.Background())
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
}

func TestRefreshDelay(t *testing.T) {
	now := time.Now()
	buffer := 10 * time.Second

	t.Run("token with an hour left", func(t *testing.T) {
		delay := session.RefreshDelay(now.Add(time.Hour).Unix(), now, buffer)
		require.InDelta(t, float64(3590*time.Second), float64(delay), float64(time.Second))
	})

	t.Run("token inside the buffer window", func(t *testing.T) {
		delay := session.RefreshDelay(now.Add(5*time.Second).Unix(), now, buffer)
		require.Equal(t, time.Duration(0), delay)
	})

	t.Run("already expired token", func(t *testing.T) {
		delay := session.RefreshDelay(now.Add(-time.Minute).Unix(), now, buffer)
		require.Equal(t, time.Duration(0), delay)
	})
}

func TestPauseAndResume(t *testing.T) {
	accessToken := accessTokenExpiring(t, time.Now().Add(time.Hour))
	f := setupManager(t, "", &session.Session{AccessToken: accessToken, RefreshToken: "refresh-1"})
	require.Len(t, f.scheduler.Delays(), 1)

	f.manager.Pause()
	require.Equal(t, 1, f.scheduler.Canceled())

	// Mutations made while suspended are picked up on resume.
	replacement := accessTokenExpiring(t, time.Now().Add(2*time.Hour))
	serialized, err := (session.Session{AccessToken: replacement, RefreshToken: "refresh-2"}).Marshal()
	require.NoError(t, err)
	f.domain.SaveState(serialized)

	f.manager.Resume()
	require.Equal(t, replacement, f.manager.Token(token.AccessToken))
	require.Equal(t, session.Authenticated, f.manager.State())

	delays := f.scheduler.Delays()
	require.Len(t, delays, 2)
	require.InDelta(t, float64(7190*time.Second), float64(delays[1]), float64(5*time.Second))
}

func TestPauseSuppressesScheduling(t *testing.T) {
	accessToken := accessTokenExpiring(t, time.Now().Add(time.Hour))
	newToken := accessTokenExpiring(t, time.Now().Add(time.Hour))
	server, _, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, tokenResponse(newToken, "refresh-2"))
	})

	f := setupManager(t, server.URL, &session.Session{AccessToken: accessToken, RefreshToken: "refresh-1"})
	f.manager.Pause()

	require.NoError(t, f.manager.Refresh(context.Background()))
	// The refresh succeeded but no new timer was armed while paused.
	require.Len(t, f.scheduler.Delays(), 1)
}

func TestResetIsIdempotent(t *testing.T) {
	accessToken := accessTokenExpiring(t, time.Now().Add(time.Hour))
	f := setupManager(t, "", &session.Session{AccessToken: accessToken, RefreshToken: "refresh-1"})

	hookRuns := 0
	f.manager.RegisterResetHook(func() { hookRuns++ })

	f.manager.Reset()
	f.manager.Reset()

	require.Equal(t, session.LoggedOut, f.manager.State())
	require.Empty(t, f.manager.Token(token.AccessToken))
	require.Empty(t, f.manager.API().BearerToken())
	require.Equal(t, 2, hookRuns)
	require.Equal(t, 2, f.listener.Logouts())
	_, ok := f.domain.GetState()
	require.False(t, ok)
}

func TestCancelScheduledRefresh(t *testing.T) {
	accessToken := accessTokenExpiring(t, time.Now().Add(time.Hour))
	f := setupManager(t, "", &session.Session{AccessToken: accessToken, RefreshToken: "refresh-1"})

	f.manager.CancelScheduledRefresh()
	require.Equal(t, 1, f.scheduler.Canceled())

	f.manager.CancelScheduledRefresh()
	require.Equal(t, 1, f.scheduler.Canceled())
}

func TestDo(t *testing.T) {
	t.Run("fails fast without a session", func(t *testing.T) {
		f := setupManager(t, "", nil)
		invoked := 0
		err := f.manager.Do(context.Background(), func(ctx context.Context) error {
			invoked++
			return nil
		})
		require.ErrorIs(t, err, errs.ErrNotAuthorized)
		require.Zero(t, invoked)
	})

	t.Run("fails fast on the designated loop", func(t *testing.T) {
		accessToken := accessTokenExpiring(t, time.Now().Add(time.Hour))
		f := setupManager(t, "", &session.Session{AccessToken: accessToken},
			session.WithBlockedLoopCheck(func() bool { return true }))

		err := f.manager.Do(context.Background(), func(ctx context.Context) error { return nil })
		require.ErrorIs(t, err, errs.ErrWrongThread)
	})

	t.Run("refreshes and retries once on expiry rejection", func(t *testing.T) {
		oldToken := accessTokenExpiring(t, time.Now().Add(time.Minute))
		newToken := accessTokenExpiring(t, time.Now().Add(time.Hour))
		server, mu, calls := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, tokenResponse(newToken, "refresh-2"))
		})

		f := setupManager(t, server.URL, &session.Session{AccessToken: oldToken, RefreshToken: "refresh-1"})

		invoked := 0
		err := f.manager.Do(context.Background(), func(ctx context.Context) error {
			invoked++
			if invoked == 1 {
				return errs.ErrTokenExpired
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 2, invoked)
		require.Equal(t, newToken, f.manager.Token(token.AccessToken))

		mu.Lock()
		require.Equal(t, 1, *calls)
		mu.Unlock()
	})

	t.Run("retries exactly once", func(t *testing.T) {
		oldToken := accessTokenExpiring(t, time.Now().Add(time.Minute))
		newToken := accessTokenExpiring(t, time.Now().Add(time.Hour))
		server, _, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, tokenResponse(newToken, "refresh-2"))
		})

		f := setupManager(t, server.URL, &session.Session{AccessToken: oldToken, RefreshToken: "refresh-1"})

		invoked := 0
		err := f.manager.Do(context.Background(), func(ctx context.Context) error {
			invoked++
			return errs.ErrTokenExpired
		})
		require.ErrorIs(t, err, errs.ErrTokenExpired)
		require.Equal(t, 2, invoked)
	})

	t.Run("surfaces the original error when refresh fails", func(t *testing.T) {
		oldToken := accessTokenExpiring(t, time.Now().Add(time.Minute))
		server, _, _ := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"error":"temporarily_unavailable"}`)
		})

		f := setupManager(t, server.URL, &session.Session{AccessToken: oldToken, RefreshToken: "refresh-1"})

		invoked := 0
		err := f.manager.Do(context.Background(), func(ctx context.Context) error {
			invoked++
			return errs.ErrTokenExpired
		})
		require.ErrorIs(t, err, errs.ErrTokenExpired)
		require.Equal(t, 1, invoked)
	})

	t.Run("passes through non-expiry errors", func(t *testing.T) {
		accessToken := accessTokenExpiring(t, time.Now().Add(time.Hour))
		f := setupManager(t, "", &session.Session{AccessToken: accessToken})

		callErr := fmt.Errorf("boom")
		invoked := 0
		err := f.manager.Do(context.Background(), func(ctx context.Context) error {
			invoked++
			return callErr
		})
		require.ErrorIs(t, err, callErr)
		require.Equal(t, 1, invoked)
	})
}

func TestIsAuthenticated(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, jwtlib.MapClaims{
		"sub": "user_1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(privateKey)
	require.NoError(t, err)

	keySet := &keys.KeySet{Keys: []keys.Key{{
		Exponent:  base64.RawURLEncoding.EncodeToString(big.NewInt(int64(privateKey.PublicKey.E)).Bytes()),
		Modulus:   base64.RawURLEncoding.EncodeToString(privateKey.PublicKey.N.Bytes()),
		Algorithm: keys.RS256,
		KeyID:     "key-1",
		KeyType:   "RSA",
	}}}
	serializedKeys, err := keySet.Marshal()
	require.NoError(t, err)

	f := setupManager(t, "", &session.Session{AccessToken: signed, RefreshToken: "refresh-1"})
	f.domain.SaveKeys(serializedKeys)

	t.Run("verifies against cached keys", func(t *testing.T) {
		require.True(t, f.manager.IsAuthenticated())
	})

	t.Run("rejects after key cache cleared", func(t *testing.T) {
		f.manager.ClearKeys()
		require.False(t, f.manager.IsAuthenticated())
		f.domain.SaveKeys(serializedKeys)
	})

	t.Run("rejects without a session", func(t *testing.T) {
		f.manager.Reset()
		require.False(t, f.manager.IsAuthenticated())
	})
}

func TestSessionRoundTrip(t *testing.T) {
	original := session.Session{AccessToken: "at", IDToken: "idt", RefreshToken: "rt"}
	serialized, err := original.Marshal()
	require.NoError(t, err)

	restored, err := session.ParseSession(serialized)
	require.NoError(t, err)
	require.Equal(t, original, restored)

	_, err = session.ParseSession("{{")
	require.Error(t, err)
}
