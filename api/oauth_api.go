package api

import "context"

// UserProfile is the v1 profile shape returned by /oauth2/user_profile.
type UserProfile struct {
	ID         string `json:"id,omitempty"`
	ProvidedID string `json:"provided_id,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Email      string `json:"preferred_email,omitempty"`
	Picture    string `json:"picture,omitempty"`
}

// UserProfileV2 is the OIDC-shaped profile returned by /oauth2/v2/user_profile.
type UserProfileV2 struct {
	Sub        string `json:"sub,omitempty"`
	ProvidedID string `json:"provided_id,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Email      string `json:"email,omitempty"`
	Picture    string `json:"picture,omitempty"`
	UpdatedAt  int64  `json:"updated_at,omitempty"`
}

func (c *Client) GetUser(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := c.get(ctx, "/oauth2/user_profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) GetUserProfileV2(ctx context.Context) (*UserProfileV2, error) {
	var profile UserProfileV2
	if err := c.get(ctx, "/oauth2/v2/user_profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
