package config

import "fmt"

type ProviderConfig interface {
	GetDomain() string
	GetClientID() string
	GetAudience() string
	GetBaseURL() string
	GetAuthURL() string
	GetTokenURL() string
	GetLogoutURL() string
	GetIssuer() string
	GetSDKVersion() string
}

type Provider struct {
	settings Settings
}

var _ ProviderConfig = Provider{}

func (p Provider) GetDomain() string {
	return p.settings.Domain
}

func (p Provider) GetClientID() string {
	return p.settings.ClientID
}

func (p Provider) GetAudience() string {
	return p.settings.Audience
}

func (p Provider) GetBaseURL() string {
	return fmt.Sprintf("https://%s", p.settings.Domain)
}

func (p Provider) GetAuthURL() string {
	return fmt.Sprintf("https://%s/oauth2/auth", p.settings.Domain)
}

func (p Provider) GetTokenURL() string {
	return fmt.Sprintf("https://%s/oauth2/token", p.settings.Domain)
}

func (p Provider) GetLogoutURL() string {
	return fmt.Sprintf("https://%s/logout", p.settings.Domain)
}

func (p Provider) GetIssuer() string {
	return p.GetBaseURL()
}

func (p Provider) GetSDKVersion() string {
	return p.settings.SDKVersion
}
