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

//go:generate mockgen -destination=mock_poller.go -package=poller github.com/carverauto/routerpoller/pkg/poller Clock,DeviceSource,Emitter

import (
	"context"
	"time"

	"github.com/carverauto/routerpoller/pkg/models"
)

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// DeviceSource is the read side of the management API. Implementations
// degrade instead of failing: empty lists, false, or empty samples.
type DeviceSource interface {
	ListDeviceIDs(ctx context.Context) []models.DeviceID
	FetchDetail(ctx context.Context, id models.DeviceID) (*models.DeviceRecord, bool)
	FetchUtilization(ctx context.Context, ip string) models.UtilizationSample
	FetchUptime(ctx context.Context, id models.DeviceID) (int64, bool)
}

// Emitter publishes gauge observations.
type Emitter interface {
	Emit(ctx context.Context, obs models.GaugeObservation) error
}
