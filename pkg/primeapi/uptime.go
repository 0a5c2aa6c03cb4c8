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
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/carverauto/routerpoller/pkg/models"
)

func inventoryPath(id models.DeviceID) string {
	return "data/InventoryDetails/" + url.PathEscape(string(id)) + ".json"
}

// FetchUptime returns the device uptime in milliseconds as reported by the
// inventory summary. Missing, non-positive, or non-numeric values yield false.
func (c *Client) FetchUptime(ctx context.Context, id models.DeviceID) (int64, bool) {
	ms, reqURL, err := c.fetchUptime(ctx, id)
	if err != nil {
		level := c.logger.Debug

		var terr *TransportError
		if errors.As(err, &terr) {
			level = c.logger.Warn
		}

		level().Err(err).
			Str("url", reqURL).
			Str("device_id", string(id)).
			Msg("No uptime")

		return 0, false
	}

	return ms, true
}

func (c *Client) fetchUptime(ctx context.Context, id models.DeviceID) (int64, string, error) {
	var env queryEnvelope[inventoryEntity]

	reqURL, err := c.getInto(ctx, inventoryPath(id), nil, &env)
	if err != nil {
		return 0, reqURL, err
	}

	entity, ok := env.firstEntity()
	if !ok {
		return 0, reqURL, ErrMissingData
	}

	upTime, ok := entity.upTime()
	if !ok {
		return 0, reqURL, ErrMissingData
	}

	raw, _ := upTime.raw()

	ms, err := parseMillis(raw)
	if err != nil {
		return 0, reqURL, err
	}

	if ms <= 0 {
		return 0, reqURL, fmt.Errorf("%w: non-positive uptime %d", ErrMissingData, ms)
	}

	return ms, reqURL, nil
}

// parseMillis accepts integer or decimal literals; fractions are truncated.
func parseMillis(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)

	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ms, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%w: %q", ErrParse, raw)
	}

	return int64(f), nil
}
