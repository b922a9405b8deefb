package api

import "context"

// Account API responses share a {success, data} envelope. The helper
// accessors validate the envelope and drop records with missing keys,
// so resolvers never see partial entries.

type PermissionsResponse struct {
	Success bool             `json:"success"`
	Data    *PermissionsData `json:"data"`
}

type PermissionsData struct {
	OrgCode     string           `json:"org_code"`
	Permissions []PermissionItem `json:"permissions"`
}

type PermissionItem struct {
	ID   string `json:"id,omitempty"`
	Key  string `json:"key,omitempty"`
	Name string `json:"name,omitempty"`
}

func (r *PermissionsResponse) Valid() bool {
	return r != nil && r.Success && r.Data != nil
}

// Keys extracts the permission keys, skipping entries without one.
func (r *PermissionsResponse) Keys() []string {
	if !r.Valid() {
		return []string{}
	}
	keys := make([]string, 0, len(r.Data.Permissions))
	for _, p := range r.Data.Permissions {
		if p.Key != "" {
			keys = append(keys, p.Key)
		}
	}
	return keys
}

type RolesResponse struct {
	Success bool       `json:"success"`
	Data    *RolesData `json:"data"`
}

type RolesData struct {
	OrgCode string     `json:"org_code"`
	Roles   []RoleItem `json:"roles"`
}

type RoleItem struct {
	ID   string `json:"id,omitempty"`
	Key  string `json:"key,omitempty"`
	Name string `json:"name,omitempty"`
}

func (r *RolesResponse) Valid() bool {
	return r != nil && r.Success && r.Data != nil
}

// Keys extracts the role keys, skipping entries without one.
func (r *RolesResponse) Keys() []string {
	if !r.Valid() {
		return []string{}
	}
	keys := make([]string, 0, len(r.Data.Roles))
	for _, role := range r.Data.Roles {
		if role.Key != "" {
			keys = append(keys, role.Key)
		}
	}
	return keys
}

type FeatureFlagsResponse struct {
	Success bool              `json:"success"`
	Data    *FeatureFlagsData `json:"data"`
}

type FeatureFlagsData struct {
	FeatureFlags []FeatureFlagItem `json:"feature_flags"`
}

// FeatureFlagItem carries one flag record. Type uses the API's long form
// ("Boolean", "String", "Integer"), unlike the token claim's letter codes.
type FeatureFlagItem struct {
	ID    string `json:"id,omitempty"`
	Key   string `json:"key,omitempty"`
	Name  string `json:"name,omitempty"`
	Type  string `json:"type,omitempty"`
	Value any    `json:"value,omitempty"`
}

func (r *FeatureFlagsResponse) Valid() bool {
	return r != nil && r.Success && r.Data != nil
}

func (c *Client) GetPermissions(ctx context.Context) (*PermissionsResponse, error) {
	var resp PermissionsResponse
	if err := c.get(ctx, "/account_api/v1/permissions", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetRoles(ctx context.Context) (*RolesResponse, error) {
	var resp RolesResponse
	if err := c.get(ctx, "/account_api/v1/roles", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetFeatureFlags(ctx context.Context) (*FeatureFlagsResponse, error) {
	var resp FeatureFlagsResponse
	if err := c.get(ctx, "/account_api/v1/feature_flags", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
