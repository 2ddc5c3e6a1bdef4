// ABOUTME: Traffic accounting and dashboard aggregate endpoints
// ABOUTME: Read-only views over the controller's traffic counters

package api

import (
	"context"
	"fmt"
	"net/http"
)

// TrafficOverviewAll returns the controller-wide traffic summary.
func (c *Client) TrafficOverviewAll(ctx context.Context) (*TrafficOverview, error) {
	var overview TrafficOverview
	if err := c.do(ctx, http.MethodGet, "/traffic/overview", nil, nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// UserTrafficOverview returns one user's traffic counters.
func (c *Client) UserTrafficOverview(ctx context.Context, userID int64) (*UserTraffic, error) {
	var traffic UserTraffic
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/traffic/user/%d", userID), nil, nil, &traffic); err != nil {
		return nil, err
	}
	return &traffic, nil
}

// Dashboard returns the aggregate stats scoped to a user.
func (c *Client) Dashboard(ctx context.Context, userID int64) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/dashboard/%d", userID), nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
