package keys

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// JWT algorithms (string values used in JWKs and headers)
const RS256 = "RS256"

// KeySet is the provider's published JSON Web Key Set, fetched once from
// /.well-known/jwks.json and cached until explicitly cleared.
type KeySet struct {
	Keys []Key `json:"keys"`
}

// Key is a single RSA public key record from the key set.
type Key struct {
	Exponent  string `json:"e"`
	Modulus   string `json:"n"`
	Algorithm string `json:"alg"`
	KeyID     string `json:"kid"`
	KeyType   string `json:"kty"`
}

// Parse decodes a serialized key set.
func Parse(data []byte) (*KeySet, error) {
	var set KeySet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse key set: %w", err)
	}
	return &set, nil
}

// Marshal serializes the key set for caching.
func (ks *KeySet) Marshal() (string, error) {
	data, err := json.Marshal(ks)
	if err != nil {
		return "", fmt.Errorf("failed to serialize key set: %w", err)
	}
	return string(data), nil
}

// First returns the leading key of the set. Token verification uses only
// the first key; rotated key sets require a cache clear.
func (ks *KeySet) First() (Key, bool) {
	if ks == nil || len(ks.Keys) == 0 {
		return Key{}, false
	}
	return ks.Keys[0], true
}

// PublicKey reconstructs the RSA public key from the record's base64url
// modulus and exponent.
func (k Key) PublicKey() (*rsa.PublicKey, error) {
	modulus, err := decodeSegment(k.Modulus)
	if err != nil {
		return nil, fmt.Errorf("invalid key modulus: %w", err)
	}
	exponent, err := decodeSegment(k.Exponent)
	if err != nil {
		return nil, fmt.Errorf("invalid key exponent: %w", err)
	}

	e := new(big.Int).SetBytes(exponent)
	if !e.IsInt64() || e.Int64() <= 0 {
		return nil, fmt.Errorf("invalid key exponent value")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(modulus),
		E: int(e.Int64()),
	}, nil
}

func decodeSegment(segment string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(segment, "="))
}
