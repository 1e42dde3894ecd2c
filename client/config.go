package client

import (
	"net/http"
	"time"

	"github.com/johnstarich/plaid/secret"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Environment is a Plaid API environment
type Environment string

// Plaid API environments
const (
	Sandbox     Environment = "sandbox"
	Development Environment = "development"
	Production  Environment = "production"
)

// ParseEnvironment returns the Environment named s
func ParseEnvironment(s string) (Environment, error) {
	switch env := Environment(s); env {
	case Sandbox, Development, Production:
		return env, nil
	default:
		return "", errors.Errorf("Unknown Plaid environment: '%s'", s)
	}
}

// URL returns the environment's API base URL
func (e Environment) URL() (string, error) {
	if _, err := ParseEnvironment(string(e)); err != nil {
		return "", err
	}
	return "https://" + string(e) + ".plaid.com", nil
}

// Config configures a Client
type Config struct {
	Environment Environment
	ClientID    string
	Secret      secret.Secret

	// BaseURL overrides the Environment's URL when set
	BaseURL string

	// RateLimit is the number of requests per second. Zero is unlimited.
	RateLimit rate.Limit
	Burst     int

	// CacheDuration is how long get by ID responses are reused. Zero disables caching.
	CacheDuration time.Duration

	HTTPClient *http.Client
}

const defaultTimeout = 30 * time.Second

func (c Config) baseURL() (string, error) {
	if c.BaseURL != "" {
		return c.BaseURL, nil
	}
	return c.Environment.URL()
}

func (c Config) limiter() *rate.Limiter {
	if c.RateLimit <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := c.Burst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(c.RateLimit, burst)
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}
