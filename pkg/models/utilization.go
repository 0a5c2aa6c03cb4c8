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

package models

// EndpointKey names a utilization trend endpoint by the stem of its path,
// e.g. "cpuUtilTrend" for op/statisticsService/device/cpuUtilTrend.json.
type EndpointKey string

const (
	EndpointCPUUtilTrend    EndpointKey = "cpuUtilTrend"
	EndpointMemoryUtilTrend EndpointKey = "memoryUtilTrend"
)

// UtilizationSample holds the raw textual value reported by each trend
// endpoint for one device. A missing key means the endpoint had no data.
type UtilizationSample map[EndpointKey]string

// Empty reports whether no endpoint returned a value.
func (s UtilizationSample) Empty() bool {
	return len(s) == 0
}

// Value returns the raw value for key and whether it was present.
func (s UtilizationSample) Value(key EndpointKey) (string, bool) {
	v, ok := s[key]

	return v, ok
}
