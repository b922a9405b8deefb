package token

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	errs "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/token/keys"
	"github.com/pkg/errors"
)

// Verify checks the access token's signature against the first key of the
// provider's key set using SHA-256 with RSA over the header.payload
// segment. Purely local: no network I/O, safe from any goroutine.
//
// An empty or nil key set verifies as false without an error. Malformed
// tokens and rejected key material return an error.
func Verify(accessToken string, keySet *keys.KeySet) (bool, error) {
	key, ok := keySet.First()
	if !ok {
		return false, nil
	}

	lastDot := strings.LastIndex(accessToken, ".")
	if lastDot < 0 || strings.Count(accessToken, ".") != 2 {
		return false, errs.ErrMalformedToken
	}
	signedData := accessToken[:lastDot]
	signatureSegment := accessToken[lastDot+1:]

	signature, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(signatureSegment, "="))
	if err != nil {
		return false, errors.Wrap(err, "invalid signature encoding")
	}

	publicKey, err := key.PublicKey()
	if err != nil {
		return false, err
	}

	digest := sha256.Sum256([]byte(signedData))
	if err := rsa.VerifyPKCS1v15(publicKey, crypto.SHA256, digest[:], signature); err != nil {
		return false, nil
	}
	return true, nil
}
