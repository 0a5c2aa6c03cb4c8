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
	"strings"

	"github.com/carverauto/routerpoller/pkg/models"
)

const devicesPath = "data/Devices.json"

// ListDeviceIDs returns the identifiers of every device the API knows,
// duplicates removed, in listing order. Failures yield an empty slice.
func (c *Client) ListDeviceIDs(ctx context.Context) []models.DeviceID {
	ids, reqURL, err := c.listDeviceIDs(ctx)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("url", reqURL).
			Msg("Device discovery failed")

		return []models.DeviceID{}
	}

	c.logger.Debug().Int("count", len(ids)).Msg("Discovered devices")

	return ids
}

func (c *Client) listDeviceIDs(ctx context.Context) ([]models.DeviceID, string, error) {
	var env queryEnvelope[struct{}]

	reqURL, err := c.getInto(ctx, devicesPath, nil, &env)
	if err != nil {
		return nil, reqURL, err
	}

	refs := env.entityRefs()
	ids := make([]models.DeviceID, 0, len(refs))
	seen := make(map[models.DeviceID]struct{}, len(refs))

	for _, ref := range refs {
		id := deviceIDFromURL(ref.URL)
		if id == "" {
			continue
		}

		if _, dup := seen[id]; dup {
			continue
		}

		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids, reqURL, nil
}

// deviceIDFromURL returns the unescaped last path segment of a device self URL.
func deviceIDFromURL(raw string) models.DeviceID {
	raw, _, _ = strings.Cut(raw, "?")
	segment := raw[strings.LastIndex(raw, "/")+1:]

	if id, err := url.PathUnescape(segment); err == nil {
		return models.DeviceID(id)
	}

	return models.DeviceID(segment)
}
