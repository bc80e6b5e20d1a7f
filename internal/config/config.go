package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// devTokenSecret is the secret used for domain verification tokens when
// DEV_INSECURE_SECRET is set. Never valid for production deployments.
const devTokenSecret = "everbloom-dev-only-secret"

type Config struct {
	DatabaseURL    string
	HTTPListenAddr string
	LogLevel       string
	ServiceName    string

	// PlatformCNAMETarget is the canonical hostname custom domains must point
	// at, e.g. "sites.everbloom.app". Deployment configuration, never hardcoded.
	PlatformCNAMETarget string
	// PlatformLBAddress is the load balancer IPv4 used as the apex-domain
	// fallback when the admin's DNS provider cannot create a CNAME.
	PlatformLBAddress string
	// SiteDomainSuffix is the suffix of the always-available default site
	// URLs, e.g. "everbloom.site".
	SiteDomainSuffix string

	DomainTokenSecret string
	// DevInsecureSecret explicitly opts in to the hardcoded development
	// token secret. Without it, a missing DOMAIN_TOKEN_SECRET is a startup error.
	DevInsecureSecret bool

	DNSLookupTimeout  time.Duration
	VerifyBudget      time.Duration
	MaxVerifyAttempts int
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		HTTPListenAddr:      getEnv("HTTP_LISTEN_ADDR", ":8080"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		ServiceName:         getEnv("SERVICE_NAME", "admin-api"),
		PlatformCNAMETarget: getEnv("PLATFORM_CNAME_TARGET", "sites.everbloom.app"),
		PlatformLBAddress:   getEnv("PLATFORM_LB_ADDRESS", ""),
		SiteDomainSuffix:    getEnv("SITE_DOMAIN_SUFFIX", "everbloom.site"),
		DomainTokenSecret:   getEnv("DOMAIN_TOKEN_SECRET", ""),
		DevInsecureSecret:   getEnvBool("DEV_INSECURE_SECRET", false),
		DNSLookupTimeout:    getEnvDuration("DNS_LOOKUP_TIMEOUT", 5*time.Second),
		VerifyBudget:        getEnvDuration("VERIFY_BUDGET", 10*time.Second),
		MaxVerifyAttempts:   getEnvInt("MAX_VERIFY_ATTEMPTS", 15),
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DomainTokenSecret == "" && !c.DevInsecureSecret {
		return fmt.Errorf("DOMAIN_TOKEN_SECRET is required (or set DEV_INSECURE_SECRET=true for local development)")
	}
	if c.MaxVerifyAttempts < 1 {
		return fmt.Errorf("MAX_VERIFY_ATTEMPTS must be at least 1")
	}
	return nil
}

// TokenSecret returns the verification token secret, falling back to the
// development secret only when DevInsecureSecret is set.
func (c *Config) TokenSecret() string {
	if c.DomainTokenSecret != "" {
		return c.DomainTokenSecret
	}
	return devTokenSecret
}

// UsingDevSecret reports whether the insecure development secret is in effect.
func (c *Config) UsingDevSecret() bool {
	return c.DomainTokenSecret == "" && c.DevInsecureSecret
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
