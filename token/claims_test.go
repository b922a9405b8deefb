package token_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	errs "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/token"
	"github.com/stretchr/testify/require"
)

var encodedHeader = base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))

// encodeJWT builds an unsigned JWT carrying the given claims. Claim
// extraction never inspects the signature segment, so a placeholder is
// enough.
func encodeJWT(t *testing.T, claims map[string]any) string {
	t.Helper()

	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return encodedHeader + "." + base64.RawURLEncoding.EncodeToString(payload) + ".c2lnbmF0dXJl"
}

func TestGetClaim(t *testing.T) {
	jwt := encodeJWT(t, map[string]any{
		"permissions": []any{"read:users", "write:users"},
		"org_code":    "org_1",
	})

	t.Run("list claim", func(t *testing.T) {
		claim, err := token.GetClaim("permissions", jwt)
		require.NoError(t, err)
		require.True(t, claim.Exists())
		require.Equal(t, []string{"read:users", "write:users"}, claim.StringSlice())
	})

	t.Run("string claim", func(t *testing.T) {
		claim, err := token.GetClaim("org_code", jwt)
		require.NoError(t, err)
		require.True(t, claim.Exists())
		require.Equal(t, "org_1", claim.String())
	})

	t.Run("absent claim", func(t *testing.T) {
		claim, err := token.GetClaim("permissions", encodeJWT(t, map[string]any{}))
		require.NoError(t, err)
		require.False(t, claim.Exists())
		require.Nil(t, claim.Raw())
		require.Empty(t, claim.StringSlice())
	})

	t.Run("non-string entries skipped", func(t *testing.T) {
		claim, err := token.GetClaim("permissions", encodeJWT(t, map[string]any{
			"permissions": []any{"read:users", 42, true},
		}))
		require.NoError(t, err)
		require.Equal(t, []string{"read:users"}, claim.StringSlice())
	})

	t.Run("single segment token", func(t *testing.T) {
		_, err := token.GetClaim("org_code", "not-a-jwt")
		require.ErrorIs(t, err, errs.ErrMalformedToken)
	})

	t.Run("payload is not base64url", func(t *testing.T) {
		_, err := token.GetClaim("org_code", encodedHeader+".!!!.signature")
		require.Error(t, err)
	})

	t.Run("payload is not a JSON object", func(t *testing.T) {
		payload := base64.RawURLEncoding.EncodeToString([]byte(`"just a string"`))
		_, err := token.GetClaim("org_code", encodedHeader+"."+payload+".signature")
		require.Error(t, err)
	})
}

func TestClaimValueInt64(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int64
		ok    bool
	}{
		{name: "float64 from JSON", value: float64(1700000000), want: 1700000000, ok: true},
		{name: "numeric string", value: "1700000000", want: 1700000000, ok: true},
		{name: "non-numeric string", value: "soon", ok: false},
		{name: "boolean", value: true, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			claim, err := token.GetClaim("exp", encodeJWT(t, map[string]any{"exp": tc.value}))
			require.NoError(t, err)

			got, ok := claim.Int64()
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.Equal(t, tc.want, got)
			}
		})
	}
}

func TestExpiryEpochSeconds(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()

	t.Run("numeric exp", func(t *testing.T) {
		got, ok := token.ExpiryEpochSeconds(encodeJWT(t, map[string]any{"exp": exp}))
		require.True(t, ok)
		require.Equal(t, exp, got)
	})

	t.Run("absent exp", func(t *testing.T) {
		_, ok := token.ExpiryEpochSeconds(encodeJWT(t, map[string]any{"sub": "user_1"}))
		require.False(t, ok)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, ok := token.ExpiryEpochSeconds("garbage")
		require.False(t, ok)
	})
}

func TestDecodePayloadPadding(t *testing.T) {
	// Some encoders emit padded base64; the decoder accepts both forms.
	payload := base64.URLEncoding.EncodeToString([]byte(`{"org_code":"org_1"}`))
	claims, err := token.DecodePayload(encodedHeader + "." + payload + ".signature")
	require.NoError(t, err)
	require.Equal(t, "org_1", claims["org_code"])
}
