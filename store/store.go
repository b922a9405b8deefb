// Package store defines the secure persistence boundary. The host
// application supplies the Store implementation (typically backed by
// platform-encrypted storage); this package scopes keys per
// identity-provider domain so state never collides across domains.
package store

import "regexp"

// Store is the host-provided secure key/value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Clear(key string)
}

const (
	authStatePref = "auth_state"
	keysPref      = "keys"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeDomain maps a provider domain to a filesystem-safe identifier
// used as the key namespace prefix.
func SanitizeDomain(domain string) string {
	return unsafeChars.ReplaceAllString(domain, "_")
}

// DomainStore namespaces auth-state and signing-key records under one
// identity-provider domain.
type DomainStore struct {
	store  Store
	prefix string
}

func NewDomainStore(s Store, domain string) *DomainStore {
	return &DomainStore{
		store:  s,
		prefix: SanitizeDomain(domain) + "_",
	}
}

func (d *DomainStore) SaveState(state string) {
	d.store.Set(d.prefix+authStatePref, state)
}

func (d *DomainStore) GetState() (string, bool) {
	return d.store.Get(d.prefix + authStatePref)
}

func (d *DomainStore) ClearState() {
	d.store.Clear(d.prefix + authStatePref)
}

func (d *DomainStore) SaveKeys(keys string) {
	d.store.Set(d.prefix+keysPref, keys)
}

func (d *DomainStore) GetKeys() (string, bool) {
	return d.store.Get(d.prefix + keysPref)
}

func (d *DomainStore) ClearKeys() {
	d.store.Clear(d.prefix + keysPref)
}
