package config

type FlowConfig interface {
	GetLoginRedirect() string
	GetLogoutRedirect() string
	GetScopes() []string
}

type Flow struct {
	settings Settings
}

var _ FlowConfig = Flow{}

func (f Flow) GetLoginRedirect() string {
	return f.settings.LoginRedirect
}

func (f Flow) GetLogoutRedirect() string {
	return f.settings.LogoutRedirect
}

func (f Flow) GetScopes() []string {
	scopes := make([]string, len(f.settings.Scopes))
	copy(scopes, f.settings.Scopes)
	return scopes
}
