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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carverauto/routerpoller/pkg/logger"
	"github.com/carverauto/routerpoller/pkg/metricvalue"
	"github.com/carverauto/routerpoller/pkg/models"
	"github.com/carverauto/routerpoller/pkg/primeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakePrime(t *testing.T, sim SimulationConfig) (*httptest.Server, *RouterGenerator, *Config) {
	t.Helper()

	cfg := &Config{}
	cfg.applyDefaults()
	cfg.Simulation = sim

	gen := NewRouterGenerator(sim)
	srv := httptest.NewServer(newHandler(cfg, gen, logger.NewTestLogger()))
	t.Cleanup(srv.Close)

	return srv, gen, cfg
}

func newPrimeClient(t *testing.T, srv *httptest.Server, cfg *Config, password string) *primeapi.Client {
	t.Helper()

	client, err := primeapi.NewClient(primeapi.Config{
		BaseURL:  srv.URL + cfg.Server.BasePath,
		Username: cfg.Auth.Username,
		Password: password,
	}, logger.NewTestLogger())
	require.NoError(t, err)

	return client
}

func TestFakePrime_EndToEnd(t *testing.T) {
	srv, gen, cfg := newFakePrime(t, simConfig(5, 20, 1))
	client := newPrimeClient(t, srv, cfg, cfg.Auth.Password)
	ctx := context.Background()

	ids := client.ListDeviceIDs(ctx)
	require.Len(t, ids, 6)

	reachable, unreachable := 0, 0

	for _, router := range gen.Routers() {
		rec, ok := client.FetchDetail(ctx, models.DeviceID(router.ID))
		require.True(t, ok, "router %s", router.ID)

		ip, hasIP := rec.IP()
		require.True(t, hasIP)
		assert.Equal(t, router.IPAddress, ip)
		require.NotNil(t, rec.SerialNumber)
		assert.Equal(t, router.SerialNumber, *rec.SerialNumber)

		uptime, ok := client.FetchUptime(ctx, models.DeviceID(router.ID))
		require.True(t, ok)
		assert.Positive(t, uptime)

		sample := client.FetchUtilization(ctx, ip)
		if !router.Reachable {
			unreachable++

			assert.Empty(t, sample)

			continue
		}

		reachable++

		require.Len(t, sample, 2)

		cpu := metricvalue.Utilization(models.EndpointCPUUtilTrend, sample[models.EndpointCPUUtilTrend])
		mem := metricvalue.Utilization(models.EndpointMemoryUtilTrend, sample[models.EndpointMemoryUtilTrend])

		assert.InDelta(t, router.CPU, cpu, utilJitter)
		assert.InDelta(t, router.Memory, mem, utilJitter)
	}

	assert.Equal(t, 4, reachable)
	assert.Equal(t, 1, unreachable)
}

func TestFakePrime_MissingDeviceHasNoEntity(t *testing.T) {
	srv, gen, cfg := newFakePrime(t, simConfig(1, 0, 1))
	client := newPrimeClient(t, srv, cfg, cfg.Auth.Password)

	missing := gen.Listing()[1]

	_, ok := client.FetchDetail(context.Background(), models.DeviceID(missing))
	assert.False(t, ok)

	_, ok = client.FetchUptime(context.Background(), models.DeviceID(missing))
	assert.False(t, ok)
}

func TestFakePrime_RejectsBadCredentials(t *testing.T) {
	srv, _, cfg := newFakePrime(t, simConfig(2, 0, 0))
	client := newPrimeClient(t, srv, cfg, "wrong")

	assert.Empty(t, client.ListDeviceIDs(context.Background()))

	resp, err := http.Get(srv.URL + cfg.Server.BasePath + "data/Devices.json")
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFakePrime_UnknownResources(t *testing.T) {
	srv, _, cfg := newFakePrime(t, simConfig(1, 0, 0))

	paths := map[string]int{
		"data/Devices/999.json":                         http.StatusNotFound,
		"data/Devices/610000":                           http.StatusNotFound,
		"op/statisticsService/device/diskTrend.json":    http.StatusNotFound,
		"op/statisticsService/device/cpuUtilTrend.json": http.StatusBadRequest,
		"data/InventoryDetails/610000.json":             http.StatusOK,
	}

	for path, want := range paths {
		req, err := http.NewRequest(http.MethodGet, srv.URL+cfg.Server.BasePath+path, nil)
		require.NoError(t, err)
		req.SetBasicAuth(cfg.Auth.Username, cfg.Auth.Password)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, want, resp.StatusCode, path)
	}
}
