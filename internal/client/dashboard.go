package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/codelabbj/icash-admin/internal/http"
	"github.com/codelabbj/icash-admin/internal/query"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
)

// DashboardClient reads the dashboard statistics through the query store,
// so that ledger mutations mark them stale.
type DashboardClient struct {
	httpClient *http.Client
	store      *query.Store
}

// NewDashboardClient creates the dashboard client.
func NewDashboardClient(httpClient *http.Client, store *query.Store) *DashboardClient {
	return &DashboardClient{httpClient: httpClient, store: store}
}

func (c *DashboardClient) fetch(ctx context.Context) ([]byte, error) {
	resp, err := c.httpClient.Get(readContext(ctx, c.store), DashboardPath, nil)
	if err != nil {
		return nil, fmt.Errorf("getting dashboard stats: %w", err)
	}

	return resp.Body, nil
}

// Get returns the dashboard statistics.
func (c *DashboardClient) Get(ctx context.Context) (*mobcash.DashboardStats, error) {
	body, err := c.store.Fetch(ctx, query.NewKey(ResourceDashboard, nil), c.fetch)
	if err != nil {
		return nil, err //nolint:wrapcheck // already contextual
	}

	var stats mobcash.DashboardStats

	err = json.Unmarshal(body, &stats)
	if err != nil {
		return nil, fmt.Errorf("parsing dashboard stats: %w", err)
	}

	return &stats, nil
}
