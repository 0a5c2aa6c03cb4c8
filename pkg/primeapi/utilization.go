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
	"context"
	"net/url"
	"strconv"

	"github.com/carverauto/routerpoller/pkg/models"
)

// utilizationEndpoints is the fixed query order of the trend endpoints.
//
//nolint:gochecknoglobals // immutable endpoint table
var utilizationEndpoints = []models.EndpointKey{
	models.EndpointCPUUtilTrend,
	models.EndpointMemoryUtilTrend,
}

func trendPath(key models.EndpointKey) string {
	return "op/statisticsService/device/" + string(key) + ".json"
}

// FetchUtilization queries both trend endpoints for ip. Each endpoint is
// independent: a failure only drops that endpoint's key. An empty ip yields
// an empty sample without any request.
func (c *Client) FetchUtilization(ctx context.Context, ip string) models.UtilizationSample {
	sample := make(models.UtilizationSample, len(utilizationEndpoints))

	if ip == "" {
		return sample
	}

	for _, key := range utilizationEndpoints {
		value, reqURL, err := c.fetchTrendValue(ctx, key, ip)
		if err != nil {
			c.logger.Debug().
				Err(err).
				Str("url", reqURL).
				Str("ip_address", ip).
				Str("endpoint", string(key)).
				Msg("No utilization value")

			continue
		}

		sample[key] = value
	}

	return sample
}

func (c *Client) fetchTrendValue(ctx context.Context, key models.EndpointKey, ip string) (string, string, error) {
	query := url.Values{
		"ipAddress": {ip},
		"range":     {strconv.Itoa(c.cfg.Lookback)},
	}

	var env statisticsEnvelope

	reqURL, err := c.getInto(ctx, trendPath(key), query, &env)
	if err != nil {
		return "", reqURL, err
	}

	value, ok := env.entryValue()
	if !ok {
		return "", reqURL, ErrMissingData
	}

	return value, reqURL, nil
}
