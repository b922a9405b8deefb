package api

import (
	"context"
	"net/url"
	"strconv"
)

type User struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	IsPaused  bool   `json:"is_paused,omitempty"`
}

type CreateUserRequest struct {
	Profile    *UserProfileDetails `json:"profile,omitempty"`
	Identities []UserIdentity      `json:"identities,omitempty"`
}

type UserProfileDetails struct {
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
}

type UserIdentity struct {
	Type    string              `json:"type,omitempty"`
	Details UserIdentityDetails `json:"details,omitempty"`
}

type UserIdentityDetails struct {
	Email string `json:"email,omitempty"`
}

type CreateUserResponse struct {
	ID      string `json:"id,omitempty"`
	Created bool   `json:"created,omitempty"`
}

// ListUsersOptions are the optional query parameters for GetUsers.
type ListUsersOptions struct {
	Sort      string
	PageSize  int
	UserID    int
	NextToken string
}

func (c *Client) CreateUser(ctx context.Context, request *CreateUserRequest) (*CreateUserResponse, error) {
	var created CreateUserResponse
	if err := c.post(ctx, "/api/v1/user", request, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetUsers(ctx context.Context, opts ListUsersOptions) ([]User, error) {
	query := url.Values{}
	if opts.Sort != "" {
		query.Set("sort", opts.Sort)
	}
	if opts.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.UserID > 0 {
		query.Set("user_id", strconv.Itoa(opts.UserID))
	}
	if opts.NextToken != "" {
		query.Set("next_token", opts.NextToken)
	}

	path := "/api/v1/users"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var users []User
	if err := c.get(ctx, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}
