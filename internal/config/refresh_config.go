package config

import "time"

type RefreshConfig interface {
	// GetRefreshBuffer is subtracted from the token expiry to decide when
	// the proactive refresh fires.
	GetRefreshBuffer() time.Duration

	// GetRetryDelay is the backoff applied after a transient refresh failure.
	GetRetryDelay() time.Duration

	GetHTTPTimeout() time.Duration
}

type Refresh struct {
	settings Settings
}

var _ RefreshConfig = Refresh{}

func (r Refresh) GetRefreshBuffer() time.Duration {
	return r.settings.RefreshBuffer
}

func (r Refresh) GetRetryDelay() time.Duration {
	return r.settings.RetryDelay
}

func (r Refresh) GetHTTPTimeout() time.Duration {
	return r.settings.HTTPTimeout
}
