package config

type Config interface {
	ProviderConfig
	FlowConfig
	RefreshConfig
	CacheConfig
}

type mainConfig struct {
	Provider
	Flow
	Refresh
	Cache
}

// New assembles a validated Config from host-supplied settings.
// Zero-value fields fall back to defaults; invalid redirects are rejected
// up front so misconfiguration surfaces at construction, not mid-flow.
func New(settings Settings) (Config, error) {
	settings = settings.withDefaults()
	if err := settings.validate(); err != nil {
		return nil, err
	}
	return mainConfig{
		Provider: Provider{settings},
		Flow:     Flow{settings},
		Refresh:  Refresh{settings},
		Cache:    Cache{settings},
	}, nil
}
