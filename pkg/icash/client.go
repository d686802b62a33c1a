// Package icash provides the main entry point for creating mobcash API clients
package icash

import (
	"context"
	"fmt"
	"strings"

	"github.com/codelabbj/icash-admin/internal/client"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
)

// New creates a new mobcash API client.
func New(ctx context.Context, config *mobcash.Config) (mobcash.Client, error) {
	if config == nil {
		return nil, mobcash.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, mobcash.ErrBaseURLRequired
	}

	config.BaseURL = NormalizeBaseURL(config.BaseURL)

	c, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithEndpoint creates a client without authentication.
func NewWithEndpoint(ctx context.Context, baseURL string) (mobcash.Client, error) {
	return New(ctx, &mobcash.Config{BaseURL: baseURL})
}

// NewWithToken creates a client sending token as a bearer token.
func NewWithToken(ctx context.Context, baseURL, token string) (mobcash.Client, error) {
	return New(ctx, &mobcash.Config{BaseURL: baseURL, AccessToken: token})
}

// NormalizeBaseURL adds a scheme when missing and ends the URL with a slash.
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return strings.TrimRight(baseURL, "/") + "/"
}
