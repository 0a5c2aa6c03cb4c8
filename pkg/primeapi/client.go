/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package primeapi is a read-only client for the Cisco Prime Infrastructure
// REST API (webacs/api/v4). Every fetch degrades to an empty or absent
// result on failure and logs why.
package primeapi

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/carverauto/routerpoller/pkg/logger"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 8 << 20

// Client issues authenticated GET requests against the management API.
type Client struct {
	cfg        Config
	baseURL    *url.URL
	httpClient HTTPClient
	limiter    *rate.Limiter
	logger     logger.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default TLS-configured http.Client.
func WithHTTPClient(c HTTPClient) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// NewClient validates cfg and builds a client. cfg is copied; later changes
// to the caller's value have no effect.
func NewClient(cfg Config, log logger.Logger, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidBaseURL, err)
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	c := &Client{
		cfg:        cfg,
		baseURL:    base,
		httpClient: newHTTPClient(cfg.VerifyTLS),
		logger:     log,
	}

	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func newHTTPClient(verifyTLS bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	//nolint:gosec // Prime appliances commonly use self-signed certificates
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: !verifyTLS,
	}

	return &http.Client{Transport: transport}
}

// Get fetches path (relative to the base URL) with the given query and
// returns the raw JSON body. Any failure is a *TransportError.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	reqURL := c.resolve(path, query)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: reqURL, Err: err}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.RequestTimeout))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}

	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{URL: reqURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{URL: reqURL, StatusCode: resp.StatusCode, Err: errUnexpectedStatusCode}
	}

	if !json.Valid(body) {
		return nil, &TransportError{URL: reqURL, StatusCode: resp.StatusCode, Err: errInvalidJSON}
	}

	return json.RawMessage(body), nil
}

// resolve joins an escaped relative path onto the base URL. Segments that
// were escaped by the caller are sent as-is, not escaped again.
func (c *Client) resolve(path string, query url.Values) string {
	ref := &url.URL{Path: path}
	if unescaped, err := url.PathUnescape(path); err == nil {
		ref = &url.URL{Path: unescaped, RawPath: path}
	}

	u := c.baseURL.ResolveReference(ref)

	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

// getInto fetches path and decodes it into dst. A body of the wrong shape
// is reported as ErrMissingData.
func (c *Client) getInto(ctx context.Context, path string, query url.Values, dst interface{}) (string, error) {
	reqURL := c.resolve(path, query)

	body, err := c.Get(ctx, path, query)
	if err != nil {
		return reqURL, err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return reqURL, fmt.Errorf("%w: %w", ErrMissingData, err)
	}

	return reqURL, nil
}
