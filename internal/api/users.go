// ABOUTME: User management endpoints: CRUD, node binding, traffic quota
// ABOUTME: Quota adjustment is a signed delta, never an absolute overwrite

package api

import (
	"context"
	"fmt"
	"net/http"
)

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	IsAdmin      bool   `json:"isAdmin"`
	TrafficQuota int64  `json:"trafficQuota,omitempty"` // bytes; 0 means unlimited
}

// UpdateUserRequest is the payload for updating a user. Nil fields are
// left unchanged by the controller.
type UpdateUserRequest struct {
	Password *string `json:"password,omitempty"`
	IsAdmin  *bool   `json:"isAdmin,omitempty"`
}

// AdjustTrafficRequest carries a signed quota delta in gigabytes. The
// adjustment is additive so two concurrent grants do not clobber each other.
type AdjustTrafficRequest struct {
	DeltaGB int64 `json:"deltaGb"`
}

// ListUsers returns all users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a user.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/users", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates a user.
func (c *Client) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}

// ListUserNodes returns the nodes bound to a user.
func (c *Client) ListUserNodes(ctx context.Context, id int64) ([]Node, error) {
	var nodes []Node
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/clients", id), nil, nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// BindUserNode binds a node to a user.
func (c *Client) BindUserNode(ctx context.Context, userID, nodeID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%d/clients/%d", userID, nodeID), nil, nil, nil)
}

// UnbindUserNode removes a node binding from a user.
func (c *Client) UnbindUserNode(ctx context.Context, userID, nodeID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d/clients/%d", userID, nodeID), nil, nil, nil)
}

// AdjustUserTraffic applies a signed quota delta (in GB) to a user.
func (c *Client) AdjustUserTraffic(ctx context.Context, id int64, deltaGB int64) (*User, error) {
	var user User
	req := AdjustTrafficRequest{DeltaGB: deltaGB}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%d/traffic", id), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
