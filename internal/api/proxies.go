// ABOUTME: Proxy (forwarded port) management endpoints
// ABOUTME: Proxies live under /proxies with a per-node listing on /clients

package api

import (
	"context"
	"fmt"
	"net/http"
)

// CreateProxyRequest is the payload for creating a proxy.
type CreateProxyRequest struct {
	ClientID   int64  `json:"clientId"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	LocalIP    string `json:"localIp"`
	LocalPort  int    `json:"localPort"`
	RemotePort int    `json:"remotePort"`
	Domain     string `json:"domain,omitempty"`
}

// UpdateProxyRequest is the payload for updating a proxy. Nil fields are
// left unchanged by the controller.
type UpdateProxyRequest struct {
	Name       *string `json:"name,omitempty"`
	LocalIP    *string `json:"localIp,omitempty"`
	LocalPort  *int    `json:"localPort,omitempty"`
	RemotePort *int    `json:"remotePort,omitempty"`
	Domain     *string `json:"domain,omitempty"`
	Enabled    *bool   `json:"enabled,omitempty"`
}

// ListProxies returns all proxies.
func (c *Client) ListProxies(ctx context.Context) ([]Proxy, error) {
	var proxies []Proxy
	if err := c.do(ctx, http.MethodGet, "/proxies", nil, nil, &proxies); err != nil {
		return nil, err
	}
	return proxies, nil
}

// ListNodeProxies returns the proxies owned by one node.
func (c *Client) ListNodeProxies(ctx context.Context, nodeID int64) ([]Proxy, error) {
	var proxies []Proxy
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/clients/%d/proxies", nodeID), nil, nil, &proxies); err != nil {
		return nil, err
	}
	return proxies, nil
}

// CreateProxy creates a proxy.
func (c *Client) CreateProxy(ctx context.Context, req CreateProxyRequest) (*Proxy, error) {
	var proxy Proxy
	if err := c.do(ctx, http.MethodPost, "/proxies", nil, req, &proxy); err != nil {
		return nil, err
	}
	return &proxy, nil
}

// UpdateProxy updates a proxy.
func (c *Client) UpdateProxy(ctx context.Context, id int64, req UpdateProxyRequest) (*Proxy, error) {
	var proxy Proxy
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/proxies/%d", id), nil, req, &proxy); err != nil {
		return nil, err
	}
	return &proxy, nil
}

// DeleteProxy deletes a proxy.
func (c *Client) DeleteProxy(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/proxies/%d", id), nil, nil, nil)
}
