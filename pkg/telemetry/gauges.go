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

// Package telemetry owns the router gauge instruments and records
// observations against them.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/carverauto/routerpoller/pkg/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ScopeName is the instrumentation scope of the router meter.
const ScopeName = "github.com/carverauto/routerpoller/pkg/telemetry"

var (
	errInvalidObservation = errors.New("observation value must be finite and non-negative")
	errUnknownMetric      = errors.New("unknown metric")
)

type gaugeDef struct {
	name        models.MetricName
	unit        string
	description string
}

//nolint:gochecknoglobals // fixed instrument table
var gaugeDefs = []gaugeDef{
	{models.MetricMemoryUtilization, "percent", "Memory Utilization of routers"},
	{models.MetricCPUUtilization, "percent", "CPU Utilization of routers"},
	{models.MetricUptime, "milliseconds", "Uptime of routers"},
	{models.MetricReachability, "binary", "Reachability of routers"},
}

// Gauges holds one synchronous gauge per router metric. Instruments are
// created once and reused for the life of the process.
type Gauges struct {
	instruments map[models.MetricName]metric.Int64Gauge
}

// NewGauges registers the four router gauges on meter.
func NewGauges(meter metric.Meter) (*Gauges, error) {
	g := &Gauges{instruments: make(map[models.MetricName]metric.Int64Gauge, len(gaugeDefs))}

	for _, def := range gaugeDefs {
		inst, err := meter.Int64Gauge(string(def.name),
			metric.WithUnit(def.unit),
			metric.WithDescription(def.description),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create gauge %s: %w", def.name, err)
		}

		g.instruments[def.name] = inst
	}

	return g, nil
}

// Emit records obs on its gauge with the observation's label set.
func (g *Gauges) Emit(ctx context.Context, obs models.GaugeObservation) error {
	inst, ok := g.instruments[obs.Metric]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownMetric, obs.Metric)
	}

	if !obs.Valid() {
		return fmt.Errorf("%w: %s=%v", errInvalidObservation, obs.Metric, obs.Value)
	}

	inst.Record(ctx, int64(math.Round(obs.Value)), metric.WithAttributes(Attributes(obs.Labels)...))

	return nil
}

// Attributes converts a label set into OTel attributes, in label order.
func Attributes(labels models.MetricLabelSet) []attribute.KeyValue {
	pairs := labels.Pairs()
	attrs := make([]attribute.KeyValue, 0, len(pairs))

	for _, p := range pairs {
		attrs = append(attrs, attribute.String(p[0], p[1]))
	}

	return attrs
}
