package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, envFrom(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != DefaultAddr {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.NoSeed || cfg.SeedFile != "" {
		t.Fatalf("unexpected seed settings: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("cors origins = %v", cfg.CORSOrigins)
	}
	if cfg.RateLimit != 0 || cfg.RateBurst != 20 {
		t.Fatalf("rate settings = %v/%d", cfg.RateLimit, cfg.RateBurst)
	}
	if cfg.TrustProxy {
		t.Fatalf("proxy headers must not be trusted by default")
	}
	if cfg.LogLevel != zerolog.InfoLevel {
		t.Fatalf("log level = %v", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("shutdown timeout = %v", cfg.ShutdownTimeout)
	}
}

func TestLoadEnvAndFlagPrecedence(t *testing.T) {
	env := envFrom(map[string]string{
		"BLOG_HTTP_ADDR":    "127.0.0.1:9000",
		"BLOG_CORS_ORIGINS": "http://a.test, http://b.test",
		"BLOG_RATE_LIMIT":   "2.5",
		"BLOG_LOG_LEVEL":    "DEBUG",
		"BLOG_NO_SEED":      "true",
		"BLOG_TRUST_PROXY":  "true",
	})

	cfg, err := Load([]string{"-listen", "127.0.0.1:9100", "-shutdown-secs", "1"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9100" {
		t.Fatalf("flag should win over env, addr = %q", cfg.Addr)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("cors origins = %v", cfg.CORSOrigins)
	}
	if cfg.RateLimit != 2.5 {
		t.Fatalf("rate limit = %v", cfg.RateLimit)
	}
	if cfg.LogLevel != zerolog.DebugLevel {
		t.Fatalf("log level = %v", cfg.LogLevel)
	}
	if !cfg.NoSeed {
		t.Fatalf("expected no-seed from env")
	}
	if !cfg.TrustProxy {
		t.Fatalf("expected trust-proxy from env")
	}
	if cfg.ShutdownTimeout != time.Second {
		t.Fatalf("shutdown timeout = %v", cfg.ShutdownTimeout)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := [][]string{
		{"-rate-limit", "fast"},
		{"-rate-limit", "-1"},
		{"-rate-burst", "0"},
		{"-log-level", "loud"},
		{"-shutdown-secs", "soon"},
		{"-no-seed", "maybe"},
		{"-trust-proxy", "sometimes"},
		{"-unknown-flag"},
	}
	for _, args := range cases {
		if _, err := Load(args, envFrom(nil)); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}
