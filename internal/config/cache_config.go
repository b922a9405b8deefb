package config

import "time"

type CacheConfig interface {
	GetClaimsCacheTTL() time.Duration
}

type Cache struct {
	settings Settings
}

var _ CacheConfig = Cache{}

func (c Cache) GetClaimsCacheTTL() time.Duration {
	return c.settings.ClaimsCacheTTL
}
