package storefakes

import "sync"

// FakeStore is an in-memory Store for tests and demos. Real hosts back
// the interface with platform-encrypted storage.
type FakeStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewFakeStore() *FakeStore {
	return &FakeStore{values: make(map[string]string)}
}

func (f *FakeStore) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *FakeStore) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

func (f *FakeStore) Clear(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
}

// Len reports the number of stored entries.
func (f *FakeStore) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.values)
}
