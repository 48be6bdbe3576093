/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testPublicKey = "e2a3c5f4b6d8e9f00112233445566778899aabbccddeeff00112233445566778"

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadBotConfigFromFile(t *testing.T) {
	unsetEnv(t, "DISCORD_BOT_TOKEN", "DISCORD_APP_ID", "DISCORD_PUBLIC_KEY",
		"DISCORD_TD_CMD_ID", "DISCORD_TD_CMD_HASH", "DISCORD_LISTEN_ADDR",
		"PAIRINGS_CACHE_BUCKET", "PAIRINGS_CACHE_GZIP", "PAIRINGS_CACHE_MAX_AGE")

	envFile := filepath.Join(t.TempDir(), "bot.env")
	content := strings.Join([]string{
		"DISCORD_BOT_TOKEN=secret",
		"DISCORD_APP_ID=1234",
		"DISCORD_PUBLIC_KEY=" + testPublicKey,
		"PAIRINGS_CACHE_BUCKET=none",
		"PAIRINGS_CACHE_MAX_AGE=1h",
	}, "\n")
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBotConfig(envFile, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadBotConfig failed: %v", err)
	}
	if cfg.Token != "secret" || cfg.AppID != "1234" {
		t.Errorf("got token %q app %q; want secret 1234", cfg.Token, cfg.AppID)
	}
	if len(cfg.PublicKey) != 32 {
		t.Errorf("public key length got %v; want 32", len(cfg.PublicKey))
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr got %q; want :8080", cfg.ListenAddr)
	}
	if cfg.Cache.Bucket != "" || cfg.Cache.MaxAge != time.Hour {
		t.Errorf("Cache got %+v; want memory cache with 1h max age", cfg.Cache)
	}
}

func TestLoadBotConfigMissingToken(t *testing.T) {
	unsetEnv(t, "DISCORD_BOT_TOKEN")
	t.Setenv("DISCORD_APP_ID", "1234")
	t.Setenv("DISCORD_PUBLIC_KEY", testPublicKey)

	_, err := LoadBotConfig(filepath.Join(t.TempDir(), "missing.env"))
	if !errors.Is(err, ErrMissingSetting) {
		t.Errorf("got %v; want ErrMissingSetting", err)
	}
}

func TestLoadBotConfigBadKey(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "secret")
	t.Setenv("DISCORD_APP_ID", "1234")
	t.Setenv("DISCORD_PUBLIC_KEY", "abcd")

	if _, err := LoadBotConfig(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Errorf("expected error for short public key")
	}
}

func TestLoadServiceConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	unsetEnv(t, "PAIRINGD_ADDR", "PAIRINGD_ALLOWED_ORIGINS", "PAIRINGD_TIMEOUT",
		"PAIRINGD_MAX_STEPS")
	cfg, err := LoadServiceConfig(missing)
	if err != nil {
		t.Fatalf("LoadServiceConfig failed: %v", err)
	}
	if cfg.ListenAddr != ":8080" || cfg.RequestTimeout != 30*time.Second ||
		cfg.MaxSteps != 0 {
		t.Errorf("defaults got %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins got %v; want [*]", cfg.AllowedOrigins)
	}

	t.Setenv("PAIRINGD_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PAIRINGD_TIMEOUT", "5s")
	t.Setenv("PAIRINGD_MAX_STEPS", "1000")
	cfg, err = LoadServiceConfig(missing)
	if err != nil {
		t.Fatalf("LoadServiceConfig failed: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins got %v", cfg.AllowedOrigins)
	}
	if cfg.RequestTimeout != 5*time.Second || cfg.MaxSteps != 1000 {
		t.Errorf("got timeout %v steps %v; want 5s 1000", cfg.RequestTimeout,
			cfg.MaxSteps)
	}

	t.Setenv("PAIRINGD_MAX_STEPS", "-1")
	if _, err := LoadServiceConfig(missing); err == nil {
		t.Errorf("expected error for negative max steps")
	}
}

func TestLoadCacheOptions(t *testing.T) {
	unsetEnv(t, "PAIRINGS_CACHE_BUCKET", "PAIRINGS_CACHE_GZIP",
		"PAIRINGS_CACHE_MAX_AGE")

	opts, err := LoadCacheOptions(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadCacheOptions failed: %v", err)
	}
	if opts.Bucket != DefaultWebCacheBucket || opts.Gzip || opts.MaxAge != 24*time.Hour {
		t.Errorf("got %+v; want default bucket, no gzip, 24h", opts)
	}

	t.Setenv("PAIRINGS_CACHE_GZIP", "maybe")
	if _, err := LoadCacheOptions(); err == nil {
		t.Error("expected error for invalid PAIRINGS_CACHE_GZIP")
	}
}
