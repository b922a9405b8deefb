package claims

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jrsteele09/go-auth-client/token"
	gocache "github.com/patrickmn/go-cache"
)

const (
	flagTypeField  = "t"
	flagValueField = "v"
)

// GetAllFlags resolves every feature flag: from the access token's
// feature_flags claim by default, or from the account API when forced.
func (r *Resolver) GetAllFlags(ctx context.Context, opts ...Option) (map[string]Flag, error) {
	o := buildOptions(opts)
	if !o.forceAPI {
		return r.localFlags(), nil
	}

	if o.useCache {
		if cached, ok := r.cache.Get(featureFlagsCacheKey); ok {
			return cached.(map[string]Flag), nil
		}
	}

	resp, err := r.apic.GetFeatureFlags(ctx)
	if err != nil {
		return nil, err
	}
	if !resp.Valid() {
		return nil, fmt.Errorf("claims: feature flags endpoint returned unsuccessful response")
	}

	flags := make(map[string]Flag, len(resp.Data.FeatureFlags))
	for _, item := range resp.Data.FeatureFlags {
		if item.Key == "" || item.Value == nil {
			r.log.Warn().Str("flag", item.Key).Msg("skipping feature flag with missing key or value")
			continue
		}
		flagType, ok := flagTypeFromAPI(item.Type)
		if !ok {
			r.log.Warn().Str("flag", item.Key).Str("type", item.Type).Msg("skipping feature flag with unknown type")
			continue
		}
		flags[item.Key] = Flag{Code: item.Key, Type: flagType, Value: item.Value}
	}

	if o.useCache {
		r.cache.Set(featureFlagsCacheKey, flags, gocache.DefaultExpiration)
	}
	return flags, nil
}

// GetFlag resolves one feature flag. An absent flag yields the default
// value (when given) marked IsDefault; a declared-type mismatch against
// want also falls back to the default, logged rather than failed.
func (r *Resolver) GetFlag(ctx context.Context, code string, defaultValue any, want FlagType, opts ...Option) (*Flag, error) {
	flags, err := r.GetAllFlags(ctx, opts...)
	if err != nil {
		return nil, err
	}

	flag, ok := flags[code]
	if !ok {
		if defaultValue != nil {
			return &Flag{Code: code, Value: defaultValue, IsDefault: true}, nil
		}
		return nil, nil
	}

	if want != FlagTypeUnknown && flag.Type != want {
		r.log.Warn().Str("flag", code).
			Str("declared", flag.Type.Letter()).
			Str("requested", want.Letter()).
			Msg("feature flag type mismatch, falling back to default")
		if defaultValue != nil {
			return &Flag{Code: code, Value: defaultValue, IsDefault: true}, nil
		}
		return nil, nil
	}
	return &flag, nil
}

// GetBooleanFlag returns a boolean flag, or the default on absence or
// type mismatch.
func (r *Resolver) GetBooleanFlag(ctx context.Context, code string, defaultValue bool, opts ...Option) (bool, error) {
	flag, err := r.GetFlag(ctx, code, defaultValue, FlagTypeBoolean, opts...)
	if err != nil || flag == nil {
		return defaultValue, err
	}
	if v, ok := flag.Value.(bool); ok {
		return v, nil
	}
	r.log.Warn().Str("flag", code).Msg("feature flag value is not a boolean, using default")
	return defaultValue, nil
}

// GetStringFlag returns a string flag, or the default on absence or type
// mismatch.
func (r *Resolver) GetStringFlag(ctx context.Context, code string, defaultValue string, opts ...Option) (string, error) {
	flag, err := r.GetFlag(ctx, code, defaultValue, FlagTypeString, opts...)
	if err != nil || flag == nil {
		return defaultValue, err
	}
	if v, ok := flag.Value.(string); ok {
		return v, nil
	}
	r.log.Warn().Str("flag", code).Msg("feature flag value is not a string, using default")
	return defaultValue, nil
}

// GetIntegerFlag returns an integer flag, or the default on absence or
// type mismatch.
func (r *Resolver) GetIntegerFlag(ctx context.Context, code string, defaultValue int, opts ...Option) (int, error) {
	flag, err := r.GetFlag(ctx, code, defaultValue, FlagTypeInteger, opts...)
	if err != nil || flag == nil {
		return defaultValue, err
	}
	switch v := flag.Value.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), nil
		}
	}
	r.log.Warn().Str("flag", code).Msg("feature flag value is not an integer, using default")
	return defaultValue, nil
}

// localFlags parses the feature_flags claim from the access token. The
// claim is a JSON object keyed by flag code, each entry carrying a short
// type code under "t" and the value under "v"; providers encode it
// either inline or as a JSON string.
func (r *Resolver) localFlags() map[string]Flag {
	raw := r.provider.Token(token.AccessToken)
	if raw == "" {
		return map[string]Flag{}
	}

	claim, err := token.GetClaim(featureFlagClaim, raw)
	if err != nil {
		r.log.Warn().Err(err).Msg("failed to decode feature flags claim")
		return map[string]Flag{}
	}
	if !claim.Exists() {
		return map[string]Flag{}
	}

	var entries map[string]any
	switch value := claim.Raw().(type) {
	case map[string]any:
		entries = value
	case string:
		if err := json.Unmarshal([]byte(value), &entries); err != nil {
			r.log.Warn().Err(err).Msg("feature flags claim is not valid JSON")
			return map[string]Flag{}
		}
	default:
		r.log.Warn().Msg("feature flags claim has unexpected shape")
		return map[string]Flag{}
	}

	flags := make(map[string]Flag, len(entries))
	for code, entry := range entries {
		record, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		letter, _ := record[flagTypeField].(string)
		flagType, ok := FlagTypeFromLetter(letter)
		if !ok {
			r.log.Warn().Str("flag", code).Str("type", letter).Msg("skipping feature flag with unknown type code")
			continue
		}
		flags[code] = Flag{Code: code, Type: flagType, Value: record[flagValueField]}
	}
	return flags
}
