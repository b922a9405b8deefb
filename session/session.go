// Package session owns the authentication state for one identity-provider
// domain: the authoritative token record, the refresh lifecycle, and the
// protected-call wrapper.
package session

import (
	"encoding/json"

	errs "github.com/jrsteele09/go-auth-client/internal/errors"
)

// Session is the authoritative record of authentication state. It is owned
// exclusively by the Manager; external reads go through accessors that
// return values, never references.
type Session struct {
	AccessToken  string `json:"access_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Authorized reports whether the session holds a usable credential.
func (s Session) Authorized() bool {
	return s.AccessToken != ""
}

// Marshal serializes the session for the secure store.
func (s Session) Marshal() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", errs.Wrapf(err, "session: serializing state")
	}
	return string(data), nil
}

// ParseSession deserializes a persisted session record.
func ParseSession(serialized string) (Session, error) {
	var s Session
	if err := json.Unmarshal([]byte(serialized), &s); err != nil {
		return Session{}, errs.Wrapf(err, "session: parsing persisted state")
	}
	return s, nil
}
