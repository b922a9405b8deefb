package oauthmodel

import (
	"errors"
	"net/http"

	"golang.org/x/oauth2"
)

const invalidGrant = "invalid_grant"

// Classify extracts the structured OAuth error fields from a token
// endpoint failure. fatal reports whether the refresh credential itself
// was rejected (invalid_grant or HTTP 401), which must force a logout
// rather than a retry.
func Classify(err error) (detail OAuthError, fatal bool) {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		detail = OAuthError{
			Code:        retrieveErr.ErrorCode,
			Description: retrieveErr.ErrorDescription,
			URI:         retrieveErr.ErrorURI,
		}
		if detail.Code == "" {
			detail.Code = "server_error"
			detail.Description = err.Error()
		}
		fatal = retrieveErr.ErrorCode == invalidGrant ||
			(retrieveErr.Response != nil && retrieveErr.Response.StatusCode == http.StatusUnauthorized)
		return detail, fatal
	}

	var oauthErr *OAuthError
	if errors.As(err, &oauthErr) {
		return *oauthErr, oauthErr.Code == invalidGrant
	}

	return OAuthError{Code: "server_error", Description: err.Error()}, false
}
