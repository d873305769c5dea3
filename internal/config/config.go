// Package config resolves server settings from flags, falling back to
// BLOG_* environment variables and then to built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const DefaultAddr = "0.0.0.0:5002"

type Config struct {
	Addr            string
	SeedFile        string
	NoSeed          bool
	CORSOrigins     []string
	RateLimit       float64 // requests per second per client, 0 disables
	RateBurst       int
	TrustProxy      bool
	LogLevel        zerolog.Level
	ShutdownTimeout time.Duration
}

// Load parses args (without the program name). getenv is usually os.Getenv.
func Load(args []string, getenv func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		addr         = fs.String("listen", env("BLOG_HTTP_ADDR", DefaultAddr), "HTTP listen address")
		seedFile     = fs.String("seed-file", env("BLOG_SEED_FILE", ""), "JSON file with initial posts")
		noSeed       = fs.String("no-seed", env("BLOG_NO_SEED", "false"), "start with an empty store")
		origins      = fs.String("cors-origins", env("BLOG_CORS_ORIGINS", "*"), "comma separated allowed origins")
		rateLimit    = fs.String("rate-limit", env("BLOG_RATE_LIMIT", "0"), "requests per second per client (0 disables)")
		rateBurst    = fs.String("rate-burst", env("BLOG_RATE_BURST", "20"), "rate limiter burst size")
		trustProxy   = fs.String("trust-proxy", env("BLOG_TRUST_PROXY", "false"), "take client addresses from proxy headers")
		logLevel     = fs.String("log-level", env("BLOG_LOG_LEVEL", "info"), "debug | info | warn | error")
		shutdownSecs = fs.String("shutdown-secs", env("BLOG_SHUTDOWN_SECS", "5"), "graceful shutdown timeout in seconds")
	)
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	cfg := Config{
		Addr:     *addr,
		SeedFile: *seedFile,
	}

	var err error
	if cfg.NoSeed, err = strconv.ParseBool(*noSeed); err != nil {
		return Config{}, fmt.Errorf("no-seed: %w", err)
	}
	if cfg.TrustProxy, err = strconv.ParseBool(*trustProxy); err != nil {
		return Config{}, fmt.Errorf("trust-proxy: %w", err)
	}
	if cfg.RateLimit, err = strconv.ParseFloat(*rateLimit, 64); err != nil || cfg.RateLimit < 0 {
		return Config{}, fmt.Errorf("rate-limit: invalid value %q", *rateLimit)
	}
	if cfg.RateBurst, err = strconv.Atoi(*rateBurst); err != nil || cfg.RateBurst < 1 {
		return Config{}, fmt.Errorf("rate-burst: invalid value %q", *rateBurst)
	}
	if cfg.LogLevel, err = zerolog.ParseLevel(strings.ToLower(*logLevel)); err != nil || *logLevel == "" {
		return Config{}, fmt.Errorf("log-level: invalid value %q", *logLevel)
	}
	secs, err := strconv.Atoi(*shutdownSecs)
	if err != nil || secs < 0 {
		return Config{}, fmt.Errorf("shutdown-secs: invalid value %q", *shutdownSecs)
	}
	cfg.ShutdownTimeout = time.Duration(secs) * time.Second

	for _, o := range strings.Split(*origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	return cfg, nil
}
