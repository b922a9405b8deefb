// Package authclient is a client-side authentication session manager for
// applications integrating with an OAuth2/OIDC identity provider. It
// drives the authorization-code (with optional PKCE) flow, persists and
// refreshes tokens, verifies token signatures locally, and resolves
// claims, permissions, roles, and feature flags from token contents or
// the provider's account API.
package authclient

import (
	"context"

	"github.com/jrsteele09/go-auth-client/api"
	"github.com/jrsteele09/go-auth-client/claims"
	"github.com/jrsteele09/go-auth-client/flow"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/session"
	"github.com/jrsteele09/go-auth-client/store"
	"github.com/rs/zerolog"
)

// Settings is the host-facing configuration for one identity-provider
// domain.
type Settings = config.Settings

// SDK ties the session manager, the authorization flow controller, and
// the claims resolver together for one identity-provider domain.
type SDK struct {
	Session *session.Manager
	Flow    *flow.Controller
	Claims  *claims.Resolver
}

type Option func(*options)

type options struct {
	log            zerolog.Logger
	loopCheck      func() bool
	sessionOptions []session.ManagerOption
}

// WithLogger sets the logger shared by all components.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithBlockedLoopCheck installs the cooperative guard that makes blocking
// calls fail fast when invoked from the host's designated event-loop
// goroutine.
func WithBlockedLoopCheck(check func() bool) Option {
	return func(o *options) {
		o.loopCheck = check
	}
}

// WithSessionOptions forwards extra options to the session manager.
func WithSessionOptions(opts ...session.ManagerOption) Option {
	return func(o *options) {
		o.sessionOptions = append(o.sessionOptions, opts...)
	}
}

// New validates the settings and assembles the SDK. Restoring a persisted
// session, warming the signing-key cache, and the initial listener
// notification all happen here.
func New(settings Settings, secureStore store.Store, launcher flow.Launcher, listener session.Listener, opts ...Option) (*SDK, error) {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := config.New(settings)
	if err != nil {
		return nil, err
	}

	managerOpts := append([]session.ManagerOption{session.WithLogger(o.log)}, o.sessionOptions...)
	if o.loopCheck != nil {
		managerOpts = append(managerOpts, session.WithBlockedLoopCheck(o.loopCheck))
	}
	manager := session.New(cfg, secureStore, listener, managerOpts...)

	controller := flow.NewController(cfg, manager, launcher, listener, flow.WithLogger(o.log))

	resolver := claims.NewResolver(manager, manager.API(),
		claims.WithCacheTTL(cfg.GetClaimsCacheTTL()),
		claims.WithLogger(o.log),
	)
	manager.RegisterResetHook(resolver.ClearCache)

	return &SDK{
		Session: manager,
		Flow:    controller,
		Claims:  resolver,
	}, nil
}

// Login starts the browser-based login flow.
func (s *SDK) Login(grant flow.GrantType, opts flow.LoginOptions) {
	s.Flow.StartLogin(grant, opts)
}

// Register starts a login flow landing on the registration page.
func (s *SDK) Register(grant flow.GrantType, opts flow.RegisterOptions) {
	s.Flow.StartRegister(grant, opts)
}

// CreateOrg starts a registration flow that creates a new organization.
func (s *SDK) CreateOrg(grant flow.GrantType, opts flow.CreateOrgOptions) {
	s.Flow.StartCreateOrg(grant, opts)
}

// Logout starts the end-session flow.
func (s *SDK) Logout() {
	s.Flow.StartLogout()
}

// IsAuthenticated reports whether an authorized session is held and its
// access token verifies against the cached signing keys.
func (s *SDK) IsAuthenticated() bool {
	return s.Session.IsAuthenticated()
}

// GetUser fetches the v1 user profile, refreshing the token once on an
// expiry-class rejection.
func (s *SDK) GetUser(ctx context.Context) (*api.UserProfile, error) {
	var profile *api.UserProfile
	err := s.Session.Do(ctx, func(ctx context.Context) error {
		p, err := s.Session.API().GetUser(ctx)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	return profile, err
}

// GetUserProfileV2 fetches the OIDC-shaped user profile.
func (s *SDK) GetUserProfileV2(ctx context.Context) (*api.UserProfileV2, error) {
	var profile *api.UserProfileV2
	err := s.Session.Do(ctx, func(ctx context.Context) error {
		p, err := s.Session.API().GetUserProfileV2(ctx)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	return profile, err
}

// CreateUser provisions a user through the management API.
func (s *SDK) CreateUser(ctx context.Context, request *api.CreateUserRequest) (*api.CreateUserResponse, error) {
	var created *api.CreateUserResponse
	err := s.Session.Do(ctx, func(ctx context.Context) error {
		c, err := s.Session.API().CreateUser(ctx, request)
		if err != nil {
			return err
		}
		created = c
		return nil
	})
	return created, err
}

// GetUsers lists users through the management API.
func (s *SDK) GetUsers(ctx context.Context, opts api.ListUsersOptions) ([]api.User, error) {
	var users []api.User
	err := s.Session.Do(ctx, func(ctx context.Context) error {
		u, err := s.Session.API().GetUsers(ctx, opts)
		if err != nil {
			return err
		}
		users = u
		return nil
	})
	return users, err
}
