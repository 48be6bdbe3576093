/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/boylstonchessclub-pairings/internal"
)

const (
	DefaultAPIBase = "https://beta.boylstonchess.org/api"
	DefaultWebBase = "https://boylstonchess.org"
)

var errNotFound = errors.New("not found")

type Source int

const (
	SourceAPI Source = iota
	SourceWebsite
	SourcePrediction
)

func (s Source) String() string {
	switch s {
	case SourceAPI:
		return "api"
	case SourceWebsite:
		return "website"
	case SourcePrediction:
		return "prediction"
	default:
		return "?"
	}
}

// Client talks to the Boylston Chess Club event API and website.
type Client struct {
	httpClient *http.Client
	apiBase    string
	webBase    string
}

type ClientOption func(*Client)

func WithAPIBase(base string) ClientOption {
	return func(c *Client) {
		c.apiBase = strings.TrimSuffix(base, "/")
	}
}

func WithWebBase(base string) ClientOption {
	return func(c *Client) {
		c.webBase = strings.TrimSuffix(base, "/")
	}
}

// NewClient returns a Client issuing requests through httpClient, which
// is usually one returned by internal.NewCachedHttpClient.
func NewClient(httpClient *http.Client, opts ...ClientOption) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient: httpClient,
		apiBase:    DefaultAPIBase,
		webBase:    DefaultWebBase,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch %v (new): %w", url, err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch %v (do): %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		err = fmt.Errorf("unable to fetch %v: http status %v", url,
			resp.StatusCode)
		if resp.StatusCode == http.StatusNotFound {
			err = fmt.Errorf("%w: %w", errNotFound, err)
		}
		return nil, err
	}

	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("unable to parse %v: %w", url, err)
	}

	return nil
}

func (c *Client) getDoc(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return goquery.NewDocumentFromReader(resp.Body)
}
