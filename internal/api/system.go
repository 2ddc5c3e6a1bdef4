// ABOUTME: System configuration endpoints: list, diff-based batch update, restart
// ABOUTME: Batch updates send only changed key/value pairs, never the full set

package api

import (
	"context"
	"net/http"
)

// batchConfigRequest is the wire shape of a batch config update.
type batchConfigRequest struct {
	Configs []ConfigUpdate `json:"configs"`
}

// ListSystemConfigs returns every system configuration item.
func (c *Client) ListSystemConfigs(ctx context.Context) ([]ConfigItem, error) {
	var items []ConfigItem
	if err := c.do(ctx, http.MethodGet, "/system/configs", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// BatchUpdateSystemConfigs applies the given key/value changes as one batch.
// Callers are expected to pass only keys that actually changed.
func (c *Client) BatchUpdateSystemConfigs(ctx context.Context, updates []ConfigUpdate) error {
	return c.do(ctx, http.MethodPost, "/system/configs/batch", nil, batchConfigRequest{Configs: updates}, nil)
}

// RestartSystem asks the controller to restart itself. The HTTP response
// arrives before the restart begins.
func (c *Client) RestartSystem(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/system/restart", nil, nil, nil)
}
