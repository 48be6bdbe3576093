/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingSetting = errors.New("required setting is not set")

// BotConfig configures cmd/discordbot.
type BotConfig struct {
	Token     string
	PublicKey ed25519.PublicKey
	AppID     string
	// CmdID is the id of an already registered /td command; empty
	// registers it anew.
	CmdID string
	// CmdHash is the hash of the last registered /td definition.
	CmdHash    string
	ListenAddr string
	Cache      CacheOptions
}

// ServiceConfig configures cmd/pairingd.
type ServiceConfig struct {
	ListenAddr     string
	AllowedOrigins []string
	RequestTimeout time.Duration
	// MaxSteps caps the search performed for one request; zero keeps the
	// engine default.
	MaxSteps int
}

// loadEnvFiles merges the given files (".env" when none are given) into
// the environment. Missing files are ignored and variables already set
// take precedence.
func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("unable to load %v: %w", f, err)
		}
	}

	return nil
}

func getEnvOrDefault(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%v: %w", key, ErrMissingSetting)
	}
	return value, nil
}

func cacheOptionsFromEnv() (CacheOptions, error) {
	opts := CacheOptions{
		Bucket: getEnvOrDefault("PAIRINGS_CACHE_BUCKET", DefaultWebCacheBucket),
		MaxAge: 24 * time.Hour,
	}
	if opts.Bucket == "none" {
		opts.Bucket = ""
	}
	if v := os.Getenv("PAIRINGS_CACHE_GZIP"); v != "" {
		gz, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid PAIRINGS_CACHE_GZIP: %w", err)
		}
		opts.Gzip = gz
	}
	if v := os.Getenv("PAIRINGS_CACHE_MAX_AGE"); v != "" {
		age, err := time.ParseDuration(v)
		if err != nil {
			return opts, fmt.Errorf("invalid PAIRINGS_CACHE_MAX_AGE: %w", err)
		}
		opts.MaxAge = age
	}

	return opts, nil
}

// LoadBotConfig reads the Discord bot settings from the environment after
// merging envFiles into it.
func LoadBotConfig(envFiles ...string) (*BotConfig, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	cfg := &BotConfig{
		CmdID:      os.Getenv("DISCORD_TD_CMD_ID"),
		CmdHash:    os.Getenv("DISCORD_TD_CMD_HASH"),
		ListenAddr: getEnvOrDefault("DISCORD_LISTEN_ADDR", ":8080"),
	}

	var err error
	if cfg.Token, err = requireEnv("DISCORD_BOT_TOKEN"); err != nil {
		return nil, err
	}
	if cfg.AppID, err = requireEnv("DISCORD_APP_ID"); err != nil {
		return nil, err
	}
	keyText, err := requireEnv("DISCORD_PUBLIC_KEY")
	if err != nil {
		return nil, err
	}
	key, err := hex.DecodeString(strings.TrimSpace(keyText))
	if err != nil {
		return nil, fmt.Errorf("invalid DISCORD_PUBLIC_KEY: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid DISCORD_PUBLIC_KEY: got %v bytes; want %v",
			len(key), ed25519.PublicKeySize)
	}
	cfg.PublicKey = ed25519.PublicKey(key)

	if cfg.Cache, err = cacheOptionsFromEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadCacheOptions reads only the web cache settings shared by the
// commands that fetch from BCC and USCF.
func LoadCacheOptions(envFiles ...string) (CacheOptions, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return CacheOptions{}, err
	}

	return cacheOptionsFromEnv()
}

// LoadServiceConfig reads the pairing service settings from the
// environment after merging envFiles into it.
func LoadServiceConfig(envFiles ...string) (*ServiceConfig, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	cfg := &ServiceConfig{
		ListenAddr:     getEnvOrDefault("PAIRINGD_ADDR", ":8080"),
		RequestTimeout: 30 * time.Second,
	}

	for _, origin := range strings.Split(getEnvOrDefault("PAIRINGD_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if v := os.Getenv("PAIRINGD_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PAIRINGD_TIMEOUT: %w", err)
		}
		if timeout <= 0 {
			return nil, fmt.Errorf("PAIRINGD_TIMEOUT must be positive, got %v", timeout)
		}
		cfg.RequestTimeout = timeout
	}

	if v := os.Getenv("PAIRINGD_MAX_STEPS"); v != "" {
		steps, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PAIRINGD_MAX_STEPS: %w", err)
		}
		if steps < 0 {
			return nil, fmt.Errorf("PAIRINGD_MAX_STEPS must not be negative, got %v", steps)
		}
		cfg.MaxSteps = steps
	}

	return cfg, nil
}
