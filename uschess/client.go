/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mikeb26/boylstonchessclub-pairings/internal"
)

const DefaultAPIBase = "https://ratings-api.uschess.org/api/v1"

type EventID int

type MemID int

type Event struct {
	EndDate time.Time
	Name    string
	ID      EventID
}

type Client struct {
	httpClient *http.Client
	apiBase    string
}

// NewClient returns a Client caching the ratings API per cache. Rated
// events rarely change, so a zero MaxAge is taken as 30 days.
func NewClient(ctx context.Context, cache internal.CacheOptions) *Client {
	if cache.MaxAge == 0 {
		cache.MaxAge = 30 * 24 * time.Hour
	}

	return NewClientWithHTTP(internal.NewCachedHttpClient(ctx, cache),
		DefaultAPIBase)
}

func NewClientWithHTTP(httpClient *http.Client, apiBase string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		apiBase:    strings.TrimSuffix(apiBase, "/"),
	}
}

func (client *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		client.apiBase+path, nil)
	if err != nil {
		return fmt.Errorf("unable to create request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unable to fetch %v: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d for %v: %s", resp.StatusCode,
			path, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to parse %v: %w", path, err)
	}

	return nil
}
