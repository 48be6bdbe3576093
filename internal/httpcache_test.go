/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gregjones/httpcache"
)

func TestHttpClient(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if got := r.Header.Get("User-Agent"); got != UserAgent {
			t.Errorf("User-Agent got %q; want %q", got, UserAgent)
		}
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		io.WriteString(w, "standings")
	}))
	defer srv.Close()

	client := newCachedClient(httpcache.NewMemoryCache(),
		NewUserAgentTransport(http.DefaultTransport), 5*time.Minute)

	for i := 0; i < 3; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("Failed to read response body: %v", err)
		}
		if string(data) != "standings" {
			t.Errorf("body got %q; want %q", data, "standings")
		}
		if i > 0 && resp.Header.Get("X-From-Cache") != "1" {
			t.Errorf("request %v not served from cache", i)
		}
	}

	if hits != 1 {
		t.Errorf("origin hits got %v; want 1", hits)
	}
}

func TestHeaderOverrideTransportLeavesRequestAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Seen", r.Header.Get("X-Added"))
	}))
	defer srv.Close()

	rt := NewHeaderOverrideTransport(nil, func(req *http.Request) {
		req.Header.Set("X-Added", "yes")
	}, func(resp *http.Response) error {
		resp.Header.Set("X-Rewritten", "yes")
		return nil
	})

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	resp.Body.Close()

	if resp.Header.Get("X-Seen") != "yes" {
		t.Errorf("request hook not applied")
	}
	if resp.Header.Get("X-Rewritten") != "yes" {
		t.Errorf("response hook not applied")
	}
	if req.Header.Get("X-Added") != "" {
		t.Errorf("caller's request was modified")
	}
}
