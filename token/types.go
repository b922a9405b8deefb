package token

// Type selects which of the session's tokens a claim read targets.
type Type int

const (
	AccessToken Type = iota
	IDToken
)

func (t Type) String() string {
	switch t {
	case AccessToken:
		return "access_token"
	case IDToken:
		return "id_token"
	default:
		return "unknown"
	}
}
