// Package claims unifies local claim extraction and remote account-API
// retrieval of permissions, roles, and feature flags behind one resolver.
// The default path decodes the current token with no network call; the
// forced-API path treats the server as the source of truth, with a
// time-bounded cache per resolver kind.
package claims

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/go-auth-client/api"
	"github.com/jrsteele09/go-auth-client/token"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

const (
	permissionsClaim = "permissions"
	rolesClaim       = "roles"
	orgCodeClaim     = "org_code"
	orgCodesClaim    = "org_codes"
	subClaim         = "sub"
	givenNameClaim   = "given_name"
	familyNameClaim  = "family_name"
	emailClaim       = "email"
	pictureClaim     = "picture"
	featureFlagClaim = "feature_flags"

	permissionsCacheKey  = "permissions"
	rolesCacheKey        = "roles"
	featureFlagsCacheKey = "feature_flags"

	defaultCacheTTL = 60 * time.Second
)

// TokenProvider is the capability the resolver needs from the session
// layer: the current token of a given type, or "" when absent.
type TokenProvider interface {
	Token(t token.Type) string
}

// Option adjusts a single resolution call.
type Option func(*callOptions)

type callOptions struct {
	forceAPI bool
	useCache bool
}

// ForceAPI fetches from the account API instead of token claims.
func ForceAPI() Option {
	return func(o *callOptions) {
		o.forceAPI = true
	}
}

// SkipCache bypasses the TTL cache for a forced-API call.
func SkipCache() Option {
	return func(o *callOptions) {
		o.useCache = false
	}
}

func buildOptions(opts []Option) callOptions {
	o := callOptions{useCache: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Resolver resolves identity and authorization data from the current
// tokens or, when forced, from the provider's account API.
type Resolver struct {
	provider TokenProvider
	apic     *api.Client
	cache    *gocache.Cache
	log      zerolog.Logger
}

type ResolverOption func(*resolverSettings)

type resolverSettings struct {
	ttl time.Duration
	log zerolog.Logger
}

// WithCacheTTL overrides the forced-API cache window.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(s *resolverSettings) {
		s.ttl = ttl
	}
}

func WithLogger(log zerolog.Logger) ResolverOption {
	return func(s *resolverSettings) {
		s.log = log
	}
}

func NewResolver(provider TokenProvider, apiClient *api.Client, options ...ResolverOption) *Resolver {
	settings := resolverSettings{ttl: defaultCacheTTL, log: zerolog.Nop()}
	for _, opt := range options {
		opt(&settings)
	}
	return &Resolver{
		provider: provider,
		apic:     apiClient,
		cache:    gocache.New(settings.ttl, time.Minute),
		log:      settings.log,
	}
}

// ClearCache invalidates every cached API response wholesale.
func (r *Resolver) ClearCache() {
	r.cache.Flush()
}

// GetClaim looks up a named claim in the selected token. A missing claim
// yields a Claim with a nil Value; a missing or malformed token returns
// an error.
func (r *Resolver) GetClaim(name string, t token.Type) (Claim, error) {
	raw := r.provider.Token(t)
	if raw == "" {
		return Claim{Name: name}, fmt.Errorf("claims: no %s held", t)
	}
	value, err := token.GetClaim(name, raw)
	if err != nil {
		return Claim{Name: name}, err
	}
	if !value.Exists() {
		r.log.Warn().Str("claim", name).Msg("claim does not exist in token")
	}
	return Claim{Name: name, Value: value.Raw()}, nil
}

// GetUserDetails derives the user profile from ID-token claims.
func (r *Resolver) GetUserDetails() UserDetails {
	return UserDetails{
		ID:         r.stringClaim(subClaim, token.IDToken),
		GivenName:  r.stringClaim(givenNameClaim, token.IDToken),
		FamilyName: r.stringClaim(familyNameClaim, token.IDToken),
		Email:      r.stringClaim(emailClaim, token.IDToken),
		Picture:    r.stringClaim(pictureClaim, token.IDToken),
	}
}

// GetOrganization returns the organization the current access token was
// issued for.
func (r *Resolver) GetOrganization() Organization {
	return Organization{OrgCode: r.stringClaim(orgCodeClaim, token.AccessToken)}
}

// GetUserOrganizations lists the organizations the user belongs to, from
// ID-token claims.
func (r *Resolver) GetUserOrganizations() Organizations {
	return Organizations{OrgCodes: r.listClaim(orgCodesClaim, token.IDToken)}
}

// GetPermissions resolves the user's permission set: from access-token
// claims by default, or from the account API when forced.
func (r *Resolver) GetPermissions(ctx context.Context, opts ...Option) (Permissions, error) {
	o := buildOptions(opts)
	if !o.forceAPI {
		return Permissions{
			OrgCode:     r.stringClaim(orgCodeClaim, token.AccessToken),
			Permissions: r.listClaim(permissionsClaim, token.AccessToken),
		}, nil
	}

	if o.useCache {
		if cached, ok := r.cache.Get(permissionsCacheKey); ok {
			return cached.(Permissions), nil
		}
	}

	resp, err := r.apic.GetPermissions(ctx)
	if err != nil {
		return Permissions{}, err
	}
	if !resp.Valid() {
		return Permissions{}, fmt.Errorf("claims: permissions endpoint returned unsuccessful response")
	}

	result := Permissions{OrgCode: resp.Data.OrgCode, Permissions: resp.Keys()}
	if o.useCache {
		r.cache.Set(permissionsCacheKey, result, gocache.DefaultExpiration)
	}
	return result, nil
}

// GetPermission checks a single permission key.
func (r *Resolver) GetPermission(ctx context.Context, permission string, opts ...Option) (Permission, error) {
	all, err := r.GetPermissions(ctx, opts...)
	if err != nil {
		return Permission{}, err
	}
	return Permission{
		OrgCode:   all.OrgCode,
		IsGranted: contains(all.Permissions, permission),
	}, nil
}

// GetRoles resolves the user's role set: from access-token claims by
// default, or from the account API when forced.
func (r *Resolver) GetRoles(ctx context.Context, opts ...Option) (Roles, error) {
	o := buildOptions(opts)
	if !o.forceAPI {
		return Roles{
			OrgCode: r.stringClaim(orgCodeClaim, token.AccessToken),
			Roles:   r.listClaim(rolesClaim, token.AccessToken),
		}, nil
	}

	if o.useCache {
		if cached, ok := r.cache.Get(rolesCacheKey); ok {
			return cached.(Roles), nil
		}
	}

	resp, err := r.apic.GetRoles(ctx)
	if err != nil {
		return Roles{}, err
	}
	if !resp.Valid() {
		return Roles{}, fmt.Errorf("claims: roles endpoint returned unsuccessful response")
	}

	result := Roles{OrgCode: resp.Data.OrgCode, Roles: resp.Keys()}
	if o.useCache {
		r.cache.Set(rolesCacheKey, result, gocache.DefaultExpiration)
	}
	return result, nil
}

// GetRole checks a single role key.
func (r *Resolver) GetRole(ctx context.Context, role string, opts ...Option) (Role, error) {
	all, err := r.GetRoles(ctx, opts...)
	if err != nil {
		return Role{}, err
	}
	return Role{
		OrgCode:   all.OrgCode,
		IsGranted: contains(all.Roles, role),
	}, nil
}

func (r *Resolver) stringClaim(name string, t token.Type) string {
	raw := r.provider.Token(t)
	if raw == "" {
		return ""
	}
	value, err := token.GetClaim(name, raw)
	if err != nil {
		r.log.Warn().Err(err).Str("claim", name).Msg("failed to decode token claim")
		return ""
	}
	if !value.Exists() {
		r.log.Warn().Str("claim", name).Msg("claim does not exist in token")
	}
	return value.String()
}

func (r *Resolver) listClaim(name string, t token.Type) []string {
	raw := r.provider.Token(t)
	if raw == "" {
		return []string{}
	}
	value, err := token.GetClaim(name, raw)
	if err != nil {
		r.log.Warn().Err(err).Str("claim", name).Msg("failed to decode token claim")
		return []string{}
	}
	if !value.Exists() {
		r.log.Warn().Str("claim", name).Msg("claim does not exist in token")
	}
	return value.StringSlice()
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
