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
	"net/url"

	"github.com/carverauto/routerpoller/pkg/models"
)

func detailPath(id models.DeviceID) string {
	return "data/Devices/" + url.PathEscape(string(id)) + ".json"
}

// FetchDetail resolves one device into a record. It returns false when the
// request fails or the response carries no device entity.
func (c *Client) FetchDetail(ctx context.Context, id models.DeviceID) (*models.DeviceRecord, bool) {
	rec, reqURL, err := c.fetchDetail(ctx, id)
	if err != nil {
		level := c.logger.Warn
		if errors.Is(err, ErrMissingData) {
			level = c.logger.Info
		}

		level().Err(err).
			Str("url", reqURL).
			Str("device_id", string(id)).
			Msg("No device detail")

		return nil, false
	}

	return rec, true
}

func (c *Client) fetchDetail(ctx context.Context, id models.DeviceID) (*models.DeviceRecord, string, error) {
	var env queryEnvelope[deviceEntity]

	reqURL, err := c.getInto(ctx, detailPath(id), nil, &env)
	if err != nil {
		return nil, reqURL, err
	}

	entity, ok := env.firstEntity()
	if !ok || entity.DevicesDTO == nil {
		return nil, reqURL, ErrMissingData
	}

	return recordFromDTO(id, entity.DevicesDTO), reqURL, nil
}

func recordFromDTO(id models.DeviceID, dto *devicesDTO) *models.DeviceRecord {
	rec := &models.DeviceRecord{
		DeviceID:         id,
		IPAddress:        dto.IPAddress.ptr(),
		CollectionStatus: dto.CollectionStatus.ptr(),
		CollectionTime:   dto.CollectionTime.ptr(),
		SoftwareVersion:  dto.SoftwareVersion.ptr(),
		DeviceName:       dto.DeviceName.ptr(),
		Location:         dto.Location.ptr(),
		Reachability:     dto.Reachability.ptr(),
	}

	if nr, ok := dto.partNr(); ok {
		rec.SerialNumber = nr.SerialNumber.ptr()
		rec.PartNumber = nr.PartNumber.ptr()
	}

	return rec
}
