package oauthmodel

// TokenResponse is the client-side view of an OAuth2 token endpoint
// response (RFC 6749). Returned from the /oauth2/token endpoint for both
// the authorization-code and refresh-token grants.
type TokenResponse struct {
	// AccessToken is the signed JWT presented to protected resources.
	AccessToken string `json:"access_token"`

	// TokenType is how the access token is used; providers return "bearer".
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the access token lifetime in seconds. A hint only:
	// the authoritative expiry is the JWT's exp claim.
	ExpiresIn int `json:"expires_in,omitempty"`

	// RefreshToken is the long-lived credential exchanged for new access
	// tokens. Only present when the offline scope was granted.
	RefreshToken string `json:"refresh_token,omitempty"`

	// IDToken carries the OpenID Connect identity claims.
	// Only present when the openid scope was requested.
	IDToken string `json:"id_token,omitempty"`

	// Scope is the space-separated list of granted scopes, which may be
	// narrower than requested.
	Scope string `json:"scope,omitempty"`
}

// OAuthError is the structured error body the token endpoint returns in
// place of token fields.
type OAuthError struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
	URI         string `json:"error_uri,omitempty"`
}

func (e *OAuthError) Error() string {
	if e.Description != "" {
		return e.Code + " " + e.Description
	}
	return e.Code
}
