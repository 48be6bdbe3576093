/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/boylstonchessclub-pairings/s3cache"
)

// CacheOptions selects where fetched pages and API responses are cached.
type CacheOptions struct {
	// Bucket names the S3 bucket to cache in. Empty selects an in-memory
	// cache.
	Bucket string
	Gzip   bool
	MaxAge time.Duration
}

// NewCachedHttpClient returns an http.Client that caches responses for
// opts.MaxAge regardless of the origin's cache headers. The cache lives in
// S3 when a bucket is configured and reachable, and in memory otherwise.
func NewCachedHttpClient(ctx context.Context, opts CacheOptions) *http.Client {
	var cache httpcache.Cache
	if opts.Bucket != "" {
		s3c := s3cache.New(ctx, s3cache.Options{
			Bucket:    opts.Bucket,
			Gzip:      opts.Gzip,
			LogErrors: true,
		})
		if err := s3c.Init(); err != nil {
			log.Printf("httpcache: warning failed to init S3 cache: %v; falling back to memory cache", err)
		} else {
			cache = s3c
		}
	}
	if cache == nil {
		cache = httpcache.NewMemoryCache()
	}

	return newCachedClient(cache, http.DefaultTransport, opts.MaxAge)
}

func newCachedClient(cache httpcache.Cache, base http.RoundTripper,
	maxAge time.Duration) *http.Client {

	hc := httpcache.NewTransport(cache)
	// origin responses frequently forbid caching, so the TTL is imposed
	// underneath httpcache
	hc.Transport = NewHeaderOverrideTransport(base, nil,
		func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		})

	return &http.Client{Transport: hc}
}

// HeaderOverrideTransport rewrites requests and responses passing through
// the wrapped RoundTripper.
type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	wrappedRT http.RoundTripper
}

func NewHeaderOverrideTransport(rt http.RoundTripper,
	request func(req *http.Request),
	response func(resp *http.Response) error) *HeaderOverrideTransport {

	if rt == nil {
		rt = http.DefaultTransport
	}
	return &HeaderOverrideTransport{
		Request:   request,
		Response:  response,
		wrappedRT: rt,
	}
}

func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// the caller's request must not be modified
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}

// NewUserAgentTransport stamps every request with UserAgent.
func NewUserAgentTransport(rt http.RoundTripper) http.RoundTripper {
	return NewHeaderOverrideTransport(rt, func(req *http.Request) {
		req.Header.Set("User-Agent", UserAgent)
	}, nil)
}
