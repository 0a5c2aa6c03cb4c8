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
	"testing"
	"time"

	"github.com/carverauto/routerpoller/pkg/models"
	"github.com/carverauto/routerpoller/pkg/primeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAPI() primeapi.Config {
	return primeapi.Config{
		BaseURL:  "https://prime.example/webacs/api/v4/",
		Username: "svc",
		Password: "secret",
	}
}

func TestConfig_ValidateDefaults(t *testing.T) {
	cfg := Config{API: validAPI()}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, models.Duration(60*time.Second), cfg.PollInterval)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, models.Duration(0), cfg.RediscoverInterval)
	assert.Equal(t, "otelcollector:4317", cfg.Metrics.Endpoint)
	assert.Equal(t, "router-monitoring", cfg.Metrics.ServiceName)
	assert.Equal(t, models.Duration(5*time.Second), cfg.Metrics.ExportInterval)
	assert.Equal(t, models.Duration(30*time.Second), cfg.API.RequestTimeout)

	otelCfg := cfg.Metrics.OTel()
	assert.True(t, otelCfg.Enabled)
	assert.True(t, otelCfg.Insecure)
	assert.Equal(t, "otelcollector:4317", otelCfg.Endpoint)
}

func TestConfig_ValidateKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		API:                validAPI(),
		PollInterval:       models.Duration(5 * time.Minute),
		Concurrency:        8,
		RediscoverInterval: models.Duration(time.Hour),
		Metrics: MetricsConfig{
			Disabled: true,
			Endpoint: "collector:4317",
			Secure:   true,
		},
	}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, models.Duration(5*time.Minute), cfg.PollInterval)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "collector:4317", cfg.Metrics.Endpoint)
	assert.False(t, cfg.Metrics.OTel().Enabled)
	assert.False(t, cfg.Metrics.OTel().Insecure)
}

func TestConfig_ValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"negative poll interval", Config{API: validAPI(), PollInterval: -1}, errInvalidPollInterval},
		{"negative concurrency", Config{API: validAPI(), Concurrency: -2}, errInvalidConcurrency},
		{"negative rediscover", Config{API: validAPI(), RediscoverInterval: -1}, errInvalidRediscover},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.cfg.Validate(), tt.want)
		})
	}

	missing := Config{}
	require.Error(t, missing.Validate())
}
