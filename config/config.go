package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds SDK configuration derived from environment variables.
// Library components take their settings by injection; this package exists
// for hosts (and the bundled tools) that configure everything from the
// environment.
type Config struct {
	Profile       string
	BaseURL       string
	AccountID     string
	CampaignID    string
	Development   bool
	UserAgent     string
	FetchTimeout  time.Duration
	BeaconTimeout time.Duration
	LauncherURL   string
	ServiceName   string
	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

// Load parses environment variables and returns a Config populated with
// defaults when variables are absent.
func Load() Config {
	cfg := Config{}

	cfg.Profile = getenv("MOMENTS_PROFILE", "moments")
	cfg.BaseURL = getenv("MOMENTS_BASE_URL", "")
	cfg.AccountID = getenv("MOMENTS_ACCOUNT_ID", "")
	cfg.CampaignID = getenv("MOMENTS_CAMPAIGN_ID", "")
	cfg.Development = envBool("MOMENTS_DEV", false)
	cfg.UserAgent = getenv("MOMENTS_USER_AGENT", "moments-go/1.0")
	// zero means the transport default; beacons always get a short budget
	cfg.FetchTimeout = envDuration("MOMENTS_FETCH_TIMEOUT", 0)
	cfg.BeaconTimeout = envDuration("MOMENTS_BEACON_TIMEOUT", 3*time.Second)
	cfg.LauncherURL = getenv("MOMENTS_LAUNCHER_URL", "https://cdn.adspostx.com/launcher.min.js")
	cfg.ServiceName = getenv("SERVICE_NAME", "moments-go")

	cfg.TracingEnabled = envBool("TRACING_ENABLED", false)
	cfg.OTLPEndpoint = getenv("OTLP_ENDPOINT", "localhost:4317")
	cfg.TracingSampleRate = envFloat("TRACING_SAMPLE_RATE", 1.0)

	return cfg
}

// getenv returns the value of the environment variable if set, otherwise def.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envDuration parses an environment variable into a time.Duration.
// The value can be a duration string (e.g. "5s") or a number of seconds.
// If the variable is unset or invalid, def is returned.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

// envBool parses a boolean environment variable. Accepted values are those
// supported by strconv.ParseBool. When unset or invalid, def is returned.
func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

// envFloat parses a float64 environment variable. When unset or invalid, def is returned.
func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return def
}
