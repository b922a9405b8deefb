// Package flow drives the browser-based authorization and end-session
// flows: it builds the requests handed to the host's launcher, correlates
// the asynchronous results, and triggers the token exchange.
package flow

import (
	"context"
	"net/url"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-client/internal/config"
	errs "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/session"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// GrantType selects how the authorization request binds the eventual code
// exchange.
type GrantType int

const (
	// GrantDefault performs a plain authorization-code flow.
	GrantDefault GrantType = iota

	// GrantPKCE binds a freshly generated code verifier to the request
	// (S256 challenge).
	GrantPKCE
)

// State is the controller's flow state.
type State int

const (
	Idle State = iota
	AwaitingAuthorizationResult
	AwaitingTokenExchange
	AwaitingEndSessionResult
)

const (
	audienceParam         = "audience"
	orgCodeParam          = "org_code"
	loginHintParam        = "login_hint"
	redirectParam         = "redirect"
	postLogoutParam       = "post_logout_redirect_uri"
	registrationPageParam = "start_page"
	registrationPageValue = "registration"
	createOrgParam        = "is_create_org"
	orgNameParam          = "org_name"
	pricingTableKeyParam  = "pricing_table_key"
	planInterestParam     = "plan_interest"
)

type LoginOptions struct {
	OrgCode     string
	LoginHint   string
	ExtraParams map[string]string
}

type RegisterOptions struct {
	OrgCode         string
	LoginHint       string
	PricingTableKey string
	PlanInterest    string
}

type CreateOrgOptions struct {
	OrgName         string
	PricingTableKey string
	PlanInterest    string
}

// Controller builds authorization and end-session requests, hands them to
// the launcher, and consumes the launcher's tagged results.
type Controller struct {
	cfg      config.Config
	manager  *session.Manager
	launcher Launcher
	listener session.Listener
	log      zerolog.Logger

	// Invitations tracks single-consumption invitation codes alongside
	// the flow; reset on logout.
	Invitations *InvitationState

	mu              sync.Mutex
	state           State
	pendingState    string
	pendingVerifier string
}

type ControllerOption func(*Controller)

func WithLogger(log zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.log = log
	}
}

func NewController(cfg config.Config, manager *session.Manager, launcher Launcher, listener session.Listener, options ...ControllerOption) *Controller {
	c := &Controller{
		cfg:         cfg,
		manager:     manager,
		launcher:    launcher,
		listener:    listener,
		log:         zerolog.Nop(),
		Invitations: NewInvitationState(),
		state:       Idle,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// State returns the controller's current flow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// DiscoverEndpoints replaces the fixed endpoint templates with the
// issuer's published OIDC discovery document. Optional; the templates
// remain in effect when discovery is unavailable.
func (c *Controller) DiscoverEndpoints(ctx context.Context) error {
	provider, err := oidc.NewProvider(ctx, c.cfg.GetIssuer())
	if err != nil {
		return errs.Wrapf(err, "flow: discovering issuer endpoints")
	}
	endpoint := provider.Endpoint()
	endpoint.AuthStyle = oauth2.AuthStyleInParams
	c.manager.OAuthConfig().Endpoint = endpoint
	return nil
}

// StartLogin builds an authorization request and hands it to the
// launcher. No return value; the outcome arrives asynchronously through
// HandleAuthorizationResult.
func (c *Controller) StartLogin(grant GrantType, opts LoginOptions) {
	c.startAuthorization(grant, opts)
}

// StartRegister starts a login flow landing on the provider's
// registration page.
func (c *Controller) StartRegister(grant GrantType, opts RegisterOptions) {
	params := map[string]string{registrationPageParam: registrationPageValue}
	if opts.PricingTableKey != "" {
		params[pricingTableKeyParam] = opts.PricingTableKey
	}
	if opts.PlanInterest != "" {
		params[planInterestParam] = opts.PlanInterest
	}
	c.startAuthorization(grant, LoginOptions{
		OrgCode:     opts.OrgCode,
		LoginHint:   opts.LoginHint,
		ExtraParams: params,
	})
}

// StartCreateOrg starts a registration flow that also creates a new
// organization.
func (c *Controller) StartCreateOrg(grant GrantType, opts CreateOrgOptions) {
	params := map[string]string{
		registrationPageParam: registrationPageValue,
		createOrgParam:        "true",
		orgNameParam:          opts.OrgName,
	}
	if opts.PricingTableKey != "" {
		params[pricingTableKeyParam] = opts.PricingTableKey
	}
	if opts.PlanInterest != "" {
		params[planInterestParam] = opts.PlanInterest
	}
	c.startAuthorization(grant, LoginOptions{ExtraParams: params})
}

func (c *Controller) startAuthorization(grant GrantType, opts LoginOptions) {
	verifier := ""
	if grant == GrantPKCE {
		verifier = oauth2.GenerateVerifier()
	}
	flowState := uuid.NewString()

	authOpts := []oauth2.AuthCodeOption{}
	if verifier != "" {
		authOpts = append(authOpts, oauth2.S256ChallengeOption(verifier))
	}
	if audience := c.cfg.GetAudience(); audience != "" {
		authOpts = append(authOpts, oauth2.SetAuthURLParam(audienceParam, audience))
	}
	if opts.OrgCode != "" {
		authOpts = append(authOpts, oauth2.SetAuthURLParam(orgCodeParam, opts.OrgCode))
	}
	if opts.LoginHint != "" {
		authOpts = append(authOpts, oauth2.SetAuthURLParam(loginHintParam, opts.LoginHint))
	}
	for key, value := range opts.ExtraParams {
		authOpts = append(authOpts, oauth2.SetAuthURLParam(key, value))
	}

	authURL := c.manager.OAuthConfig().AuthCodeURL(flowState, authOpts...)

	c.mu.Lock()
	c.state = AwaitingAuthorizationResult
	c.pendingState = flowState
	c.pendingVerifier = verifier
	c.mu.Unlock()

	c.launcher.Launch(AuthorizationRequest{
		URL:          authURL,
		State:        flowState,
		CodeVerifier: verifier,
	})
}

// HandleAuthorizationResult consumes the launcher's outcome. Success
// triggers the code exchange off the calling goroutine; cancellation and
// provider errors are surfaced to the listener.
func (c *Controller) HandleAuthorizationResult(result AuthorizationResult) {
	switch result.Kind {
	case ResultCanceled:
		c.setIdle()
		c.listener.OnException(errs.NewLogoutError("login_canceled", result.ErrorDescription))

	case ResultError:
		c.setIdle()
		c.listener.OnException(errs.NewAuthError(result.ErrorCode, result.ErrorDescription))

	case ResultSuccess:
		c.mu.Lock()
		// Results the controller never asked for are dropped before they
		// can trigger an exchange or disturb a live session.
		if c.state != AwaitingAuthorizationResult || c.pendingState == "" {
			c.mu.Unlock()
			c.listener.OnException(errs.NewAuthError("unexpected_result", "no authorization request is pending"))
			return
		}
		expectedState := c.pendingState
		verifier := c.pendingVerifier
		c.state = AwaitingTokenExchange
		c.pendingState = ""
		c.pendingVerifier = ""
		c.mu.Unlock()

		if result.State != expectedState {
			c.setIdle()
			c.listener.OnException(errs.NewAuthError("state_mismatch", "authorization response state does not match request"))
			return
		}

		// Exchange is a blocking network call; never run it on the
		// launcher's callback goroutine.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), c.cfg.GetHTTPTimeout())
			defer cancel()
			if err := c.manager.ExchangeCode(ctx, result.Code, verifier); err != nil {
				c.log.Warn().Err(err).Msg("authorization code exchange failed")
			}
			c.setIdle()
		}()
	}
}

// StartLogout cancels any pending proactive refresh and launches the
// provider's end-session flow.
func (c *Controller) StartLogout() {
	c.manager.CancelScheduledRefresh()

	logoutRedirect := c.cfg.GetLogoutRedirect()
	query := url.Values{}
	query.Set(redirectParam, logoutRedirect)
	query.Set(postLogoutParam, logoutRedirect)

	c.mu.Lock()
	c.state = AwaitingEndSessionResult
	c.mu.Unlock()

	c.launcher.LaunchEndSession(EndSessionRequest{
		URL: c.cfg.GetLogoutURL() + "?" + query.Encode(),
	})
}

// HandleEndSessionResult consumes the end-session outcome. Local logout
// state always clears, even when the provider reported an error; the
// error is still surfaced to the listener.
func (c *Controller) HandleEndSessionResult(result EndSessionResult) {
	c.setIdle()
	c.Invitations.Reset()
	c.manager.Reset()
	if result.Kind == ResultError {
		c.listener.OnException(errs.NewLogoutError(result.ErrorCode, result.ErrorDescription))
	}
}

func (c *Controller) setIdle() {
	c.mu.Lock()
	c.state = Idle
	c.mu.Unlock()
}
