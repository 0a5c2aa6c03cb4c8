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

package poller

import (
	"fmt"
	"time"

	"github.com/carverauto/routerpoller/pkg/logger"
	"github.com/carverauto/routerpoller/pkg/models"
	"github.com/carverauto/routerpoller/pkg/primeapi"
)

const (
	defaultPollInterval   = 60 * time.Second
	defaultConcurrency    = 1
	defaultMetricsAddr    = "otelcollector:4317"
	defaultServiceName    = "router-monitoring"
	defaultExportInterval = 5 * time.Second
)

// MetricsConfig describes the OTLP metrics pipeline. The zero value exports
// to otelcollector:4317 over plaintext gRPC every 5s.
type MetricsConfig struct {
	Disabled       bool              `json:"disabled"`
	Endpoint       string            `json:"endpoint"`
	Secure         bool              `json:"secure"`
	Headers        map[string]string `json:"headers,omitempty"`
	TLS            *logger.TLSConfig `json:"tls,omitempty"`
	ServiceName    string            `json:"service_name"`
	ExportInterval models.Duration   `json:"export_interval"`
}

// OTel converts the metrics settings into the exporter configuration.
func (m *MetricsConfig) OTel() *logger.OTelConfig {
	return &logger.OTelConfig{
		Enabled:     !m.Disabled,
		Endpoint:    m.Endpoint,
		Headers:     m.Headers,
		ServiceName: m.ServiceName,
		Insecure:    !m.Secure,
		TLS:         m.TLS,
	}
}

// Config represents poller configuration.
type Config struct {
	API                primeapi.Config `json:"api"`
	PollInterval       models.Duration `json:"poll_interval"`
	Concurrency        int             `json:"concurrency"`
	RediscoverInterval models.Duration `json:"rediscover_interval"`
	Metrics            MetricsConfig   `json:"metrics"`
	Logging            *logger.Config  `json:"logging,omitempty"`
}

// Validate implements config.Validator interface.
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}

	switch {
	case c.PollInterval < 0:
		return fmt.Errorf("%w: %s", errInvalidPollInterval, c.PollInterval)
	case c.PollInterval == 0:
		c.PollInterval = models.Duration(defaultPollInterval)
	}

	switch {
	case c.Concurrency < 0:
		return fmt.Errorf("%w: %d", errInvalidConcurrency, c.Concurrency)
	case c.Concurrency == 0:
		c.Concurrency = defaultConcurrency
	}

	if c.RediscoverInterval < 0 {
		return fmt.Errorf("%w: %s", errInvalidRediscover, c.RediscoverInterval)
	}

	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = defaultMetricsAddr
	}

	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = defaultServiceName
	}

	if c.Metrics.ExportInterval <= 0 {
		c.Metrics.ExportInterval = models.Duration(defaultExportInterval)
	}

	return nil
}
