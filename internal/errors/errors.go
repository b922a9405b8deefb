package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthorized is returned when a protected call is attempted with no access token.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrTokenExpired signals that the provider rejected the access token as expired.
	// Internal: callers perform exactly one silent refresh and retry before surfacing it.
	ErrTokenExpired = errors.New("token expired")

	// ErrWrongThread is returned when a blocking call is made from the host's
	// designated event-loop goroutine.
	ErrWrongThread = errors.New("blocking call on designated loop")

	// ErrMalformedToken is returned for tokens that are not structurally a JWT.
	ErrMalformedToken = errors.New("malformed token")
)

// ProviderDetail carries the structured OAuth error fields returned by the
// identity provider (RFC 6749 section 5.2).
type ProviderDetail struct {
	Code        string
	Description string
	URI         string
}

func (d ProviderDetail) message(kind string) string {
	if d.Description != "" {
		return fmt.Sprintf("%s: %s %s", kind, d.Code, d.Description)
	}
	return fmt.Sprintf("%s: %s", kind, d.Code)
}

// AuthError reports a failure during the authorization step
// (user cancellation at the provider, provider denial).
type AuthError struct {
	ProviderDetail
}

func (e *AuthError) Error() string { return e.message("auth error") }

// TokenError reports a failure returned by the token endpoint during
// code exchange or refresh.
type TokenError struct {
	ProviderDetail
}

func (e *TokenError) Error() string { return e.message("token error") }

// LogoutError reports a failure during the end-session step.
type LogoutError struct {
	ProviderDetail
}

func (e *LogoutError) Error() string { return e.message("logout error") }

// NewAuthError builds an AuthError from provider fields.
func NewAuthError(code, description string) *AuthError {
	return &AuthError{ProviderDetail{Code: code, Description: description}}
}

// NewTokenError builds a TokenError from provider fields.
func NewTokenError(code, description, uri string) *TokenError {
	return &TokenError{ProviderDetail{Code: code, Description: description, URI: uri}}
}

// NewLogoutError builds a LogoutError from provider fields.
func NewLogoutError(code, description string) *LogoutError {
	return &LogoutError{ProviderDetail{Code: code, Description: description}}
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
