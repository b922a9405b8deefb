package claims

// Closed set of claim-resolution result shapes.

// Claim is a single named claim and its decoded JSON value.
type Claim struct {
	Name  string
	Value any
}

// UserDetails is the identity profile derived from ID-token claims.
type UserDetails struct {
	ID         string
	GivenName  string
	FamilyName string
	Email      string
	Picture    string
}

// Organization is the organization the current token was issued for.
type Organization struct {
	OrgCode string
}

// Organizations lists every organization the user belongs to.
type Organizations struct {
	OrgCodes []string
}

// Permissions is the full permission set within an organization.
type Permissions struct {
	OrgCode     string
	Permissions []string
}

// Permission is a single-permission membership check.
type Permission struct {
	OrgCode   string
	IsGranted bool
}

// Roles is the full role set within an organization.
type Roles struct {
	OrgCode string
	Roles   []string
}

// Role is a single-role membership check.
type Role struct {
	OrgCode   string
	IsGranted bool
}

// FlagType is the declared type of a feature flag.
type FlagType int

const (
	// FlagTypeUnknown marks default-valued flags with no declared type.
	FlagTypeUnknown FlagType = iota
	FlagTypeBoolean
	FlagTypeString
	FlagTypeInteger
)

// Letter returns the short type code used inside the feature_flags claim.
func (t FlagType) Letter() string {
	switch t {
	case FlagTypeBoolean:
		return "b"
	case FlagTypeString:
		return "s"
	case FlagTypeInteger:
		return "i"
	default:
		return ""
	}
}

// FlagTypeFromLetter maps a claim type code to its FlagType.
func FlagTypeFromLetter(letter string) (FlagType, bool) {
	switch letter {
	case "b":
		return FlagTypeBoolean, true
	case "s":
		return FlagTypeString, true
	case "i":
		return FlagTypeInteger, true
	default:
		return FlagTypeUnknown, false
	}
}

// flagTypeFromAPI maps the account API's long-form type names.
func flagTypeFromAPI(name string) (FlagType, bool) {
	switch name {
	case "Boolean":
		return FlagTypeBoolean, true
	case "String":
		return FlagTypeString, true
	case "Integer":
		return FlagTypeInteger, true
	default:
		return FlagTypeUnknown, false
	}
}

// Flag is a resolved feature flag. IsDefault marks values substituted
// from the caller's fallback rather than the token or API.
type Flag struct {
	Code      string
	Type      FlagType
	Value     any
	IsDefault bool
}
