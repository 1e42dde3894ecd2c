// Package client sends institution lookups to the Plaid API
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/johnstarich/plaid/secret"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

const (
	getInstitutionPath   = "/institutions/get_by_id"
	listInstitutionsPath = "/institutions/get"
	contentTypeJSON      = "application/json"
)

// Client makes rate limited requests to the Plaid institutions API
type Client struct {
	baseURL    string
	clientID   string
	secret     secret.Secret
	httpClient *http.Client
	logger     *zap.Logger
	limiter    *rate.Limiter
	cache      *institutionCache

	requests atomic.Int64
}

// Stats counts the requests a Client has handled
type Stats struct {
	Requests  int64
	CacheHits int64
}

// New creates a Client from config. A nil logger discards all logs.
func New(config Config, logger *zap.Logger) (*Client, error) {
	if config.ClientID == "" {
		return nil, errors.New("Plaid client ID is required")
	}
	if config.Secret.IsEmpty() {
		return nil, errors.New("Plaid secret is required")
	}
	baseURL, err := config.baseURL()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		clientID:   config.ClientID,
		secret:     config.Secret,
		httpClient: config.httpClient(),
		logger:     logger,
		limiter:    config.limiter(),
		cache:      newInstitutionCache(config.CacheDuration),
	}, nil
}

// Stats returns the current request counts
func (c *Client) Stats() Stats {
	return Stats{
		Requests:  c.requests.Load(),
		CacheHits: c.cache.Hits(),
	}
}

type requestBody interface {
	json.Marshaler
	zapcore.ObjectMarshaler
}

// post sends body to path and returns the raw response body of a successful request
func (c *Client) post(ctx context.Context, path string, body requestBody) ([]byte, error) {
	logger := c.logger.With(zap.String("endpoint", path))
	logger.Debug("Sending request", zap.Object("request", body))

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "Rate limit wait failed")
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	c.requests.Inc()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "Error sending request")
	}
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read response body")
	}
	if ce := logger.Check(zap.DebugLevel, "Received response"); ce != nil {
		ce.Write(zap.Int("status", resp.StatusCode), zap.ByteString("body", b))
	}

	if resp.StatusCode/100 != 2 {
		apiErr := decodeAPIError(resp.StatusCode, b)
		logger.Info("Plaid returned an error",
			zap.Int("status", apiErr.StatusCode),
			zap.String("type", apiErr.Type),
			zap.String("code", apiErr.Code),
			zap.String("request_id", apiErr.RequestID),
		)
		return nil, apiErr
	}
	return b, nil
}
