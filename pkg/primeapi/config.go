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

package primeapi

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/carverauto/routerpoller/pkg/models"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultLookback       = 1
)

// Config describes how to reach the management API. It is read once at
// startup and never modified afterwards.
type Config struct {
	// BaseURL is the API root, e.g. https://prime.example.com/webacs/api/v4/
	BaseURL  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password" sensitive:"true"`
	// VerifyTLS turns certificate verification on. Prime appliances ship
	// with self-signed certificates, so it is off unless requested.
	VerifyTLS      bool            `json:"verify_tls"`
	RequestTimeout models.Duration `json:"request_timeout"`
	// Lookback is the "range" query parameter of the trend endpoints.
	Lookback int `json:"lookback"`
	// RateLimit caps requests per second; 0 disables limiting.
	RateLimit float64 `json:"rate_limit"`
}

// Validate applies defaults and rejects unusable settings.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errBaseURLRequired
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", errInvalidBaseURL, c.BaseURL)
	}

	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}

	if c.Username == "" || c.Password == "" {
		return errCredentialsRequired
	}

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = models.Duration(defaultRequestTimeout)
	}

	if c.Lookback < 0 {
		return errInvalidLookback
	}

	if c.Lookback == 0 {
		c.Lookback = defaultLookback
	}

	if c.RateLimit < 0 {
		c.RateLimit = 0
	}

	return nil
}
