// ABOUTME: Node (rfrp client) management endpoints on /clients
// ABOUTME: Standard REST CRUD plus per-node proxy listing

package api

import (
	"context"
	"fmt"
	"net/http"
)

// CreateNodeRequest is the payload for registering a node.
type CreateNodeRequest struct {
	Name   string `json:"name"`
	Remark string `json:"remark,omitempty"`
}

// UpdateNodeRequest is the payload for updating a node. Nil fields are
// left unchanged by the controller.
type UpdateNodeRequest struct {
	Name   *string `json:"name,omitempty"`
	Remark *string `json:"remark,omitempty"`
}

// ListNodes returns all nodes.
func (c *Client) ListNodes(ctx context.Context) ([]Node, error) {
	var nodes []Node
	if err := c.do(ctx, http.MethodGet, "/clients", nil, nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// GetNode returns a single node by ID.
func (c *Client) GetNode(ctx context.Context, id int64) (*Node, error) {
	var node Node
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/clients/%d", id), nil, nil, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// CreateNode registers a node. The response includes the connect secret.
func (c *Client) CreateNode(ctx context.Context, req CreateNodeRequest) (*Node, error) {
	var node Node
	if err := c.do(ctx, http.MethodPost, "/clients", nil, req, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// UpdateNode updates a node.
func (c *Client) UpdateNode(ctx context.Context, id int64, req UpdateNodeRequest) (*Node, error) {
	var node Node
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/clients/%d", id), nil, req, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// DeleteNode deletes a node and its proxies.
func (c *Client) DeleteNode(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/clients/%d", id), nil, nil, nil)
}
