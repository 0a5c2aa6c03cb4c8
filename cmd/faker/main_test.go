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

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/carverauto/routerpoller/pkg/logger"
	"github.com/carverauto/routerpoller/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWhenPathEmpty(t *testing.T) {
	cfg, err := loadConfig(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, defaultListenAddress, cfg.Server.ListenAddress)
	assert.Equal(t, defaultBasePath, cfg.Server.BasePath)
	assert.Equal(t, models.Duration(defaultReadTimeout), cfg.Server.ReadTimeout)
	assert.Equal(t, defaultTotalDevices, cfg.Simulation.TotalDevices)
	assert.Equal(t, defaultUnreachable, cfg.Simulation.UnreachablePercent)
	assert.Equal(t, defaultMissing, cfg.Simulation.MissingDevices)
	assert.False(t, cfg.Simulation.Flap.Enabled)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, defaultUsername, cfg.Auth.Username)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "file")

	path := filepath.Join(t.TempDir(), "faker.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server": {"listen_address": ":9090", "read_timeout": "2s"},
		"simulation": {"total_devices": 3, "unreachable_percent": 0, "missing_devices": 0,
			"flap": {"enabled": true, "interval": "10s", "percentage": 50}}
	}`), 0o600))

	cfg, err := loadConfig(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.ListenAddress)
	assert.Equal(t, models.Duration(2*time.Second), cfg.Server.ReadTimeout)
	assert.Equal(t, models.Duration(defaultWriteTimeout), cfg.Server.WriteTimeout)
	assert.Equal(t, 3, cfg.Simulation.TotalDevices)
	assert.Zero(t, cfg.Simulation.UnreachablePercent)
	assert.Zero(t, cfg.Simulation.MissingDevices)
	assert.Equal(t, models.Duration(10*time.Second), cfg.Simulation.Flap.Interval)
	assert.Equal(t, 50, cfg.Simulation.Flap.Percentage)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{"defaults", func(*Config) {}, nil},
		{"no listen address", func(c *Config) { c.Server.ListenAddress = "" }, errListenAddressRequired},
		{"relative base path", func(c *Config) { c.Server.BasePath = "webacs/api/v4/" }, errBasePathInvalid},
		{"base path without trailing slash", func(c *Config) { c.Server.BasePath = "/webacs/api/v4" }, errBasePathInvalid},
		{"no password", func(c *Config) { c.Auth.Password = "" }, errCredentialsRequired},
		{"no devices", func(c *Config) { c.Simulation.TotalDevices = 0 }, errTotalDevicesInvalid},
		{"percent over 100", func(c *Config) { c.Simulation.UnreachablePercent = 101 }, errUnreachablePercentInvalid},
		{"negative missing", func(c *Config) { c.Simulation.MissingDevices = -1 }, errMissingDevicesInvalid},
		{"flap without interval", func(c *Config) {
			c.Simulation.Flap.Enabled = true
			c.Simulation.Flap.Interval = 0
		}, errFlapIntervalInvalid},
		{"flap zero percent", func(c *Config) {
			c.Simulation.Flap.Enabled = true
			c.Simulation.Flap.Percentage = 0
		}, errFlapPercentageInvalid},
		{"disabled flap ignores percentage", func(c *Config) { c.Simulation.Flap.Percentage = 0 }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.err == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestApiServer_StopBeforeStart(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	svc := newAPIServer(cfg, NewRouterGenerator(cfg.Simulation), logger.NewTestLogger())
	require.NoError(t, svc.Stop(context.Background()))
}
