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

import "math"

// MetricName is the exported name of one router gauge.
type MetricName string

const (
	MetricCPUUtilization    MetricName = "router_cpu_utilization"
	MetricMemoryUtilization MetricName = "router_memory_utilization"
	MetricUptime            MetricName = "router_uptime"
	MetricReachability      MetricName = "router_reachability"
)

// GaugeObservation is a single gauge value with the labels of the device it
// was observed on.
type GaugeObservation struct {
	Metric MetricName     `json:"metric"`
	Value  float64        `json:"value"`
	Labels MetricLabelSet `json:"labels"`
}

// Valid reports whether the value is finite and non-negative.
func (o GaugeObservation) Valid() bool {
	return !math.IsNaN(o.Value) && !math.IsInf(o.Value, 0) && o.Value >= 0
}
