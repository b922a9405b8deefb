package token

import (
	jwtlib "github.com/golang-jwt/jwt/v5"
	errs "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/pkg/errors"
)

// ClaimValue is the result of a claim lookup. A missing claim yields a
// value whose Exists method reports false; lookups never fail for absent
// claims, only for structurally invalid tokens.
type ClaimValue struct {
	Name    string
	value   any
	present bool
}

func (v ClaimValue) Exists() bool { return v.present }

// Raw returns the decoded JSON value as-is.
func (v ClaimValue) Raw() any { return v.value }

// String returns the claim as a string, or "" for absent or non-string values.
func (v ClaimValue) String() string {
	s, _ := v.value.(string)
	return s
}

// Int64 returns the claim coerced to an integer. Providers serialize
// numeric claims as integers, floats, or numeric strings.
func (v ClaimValue) Int64() (int64, bool) {
	if !v.present {
		return 0, false
	}
	return utils.EpochSeconds(v.value)
}

// StringSlice returns the claim as an ordered list of strings.
// Non-string elements are skipped; scalar values yield an empty slice.
func (v ClaimValue) StringSlice() []string {
	list, ok := v.value.([]any)
	if !ok {
		return []string{}
	}
	return utils.ToStringSlice(list)
}

// claimParser reads claims without checking signatures; verification is
// the verifier's concern. Padded base64 segments are tolerated because
// some providers emit them.
var claimParser = jwtlib.NewParser(jwtlib.WithPaddingAllowed())

// DecodePayload parses the claims segment of a JWT as a JSON object.
// No signature check is performed.
func DecodePayload(jwt string) (map[string]any, error) {
	claims := jwtlib.MapClaims{}
	if _, _, err := claimParser.ParseUnverified(jwt, claims); err != nil {
		if errs.Is(err, jwtlib.ErrTokenMalformed) {
			return nil, errs.ErrMalformedToken
		}
		return nil, errors.Wrap(err, "error parsing JWT claims")
	}
	return claims, nil
}

// GetClaim looks up a named claim in the token's payload segment.
func GetClaim(name, jwt string) (ClaimValue, error) {
	claims, err := DecodePayload(jwt)
	if err != nil {
		return ClaimValue{Name: name}, err
	}
	value, ok := claims[name]
	if !ok {
		return ClaimValue{Name: name}, nil
	}
	return ClaimValue{Name: name, value: value, present: true}, nil
}

// ExpiryEpochSeconds reads the exp claim from a token. ok is false when
// the token is malformed or the claim is absent or non-numeric.
func ExpiryEpochSeconds(jwt string) (int64, bool) {
	claim, err := GetClaim("exp", jwt)
	if err != nil || !claim.Exists() {
		return 0, false
	}
	return claim.Int64()
}
