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

// Package poller runs the collection loop: discover devices once, then on
// every cycle fetch each device's detail, utilization and uptime and emit
// the router gauges, sleeping poll_interval between cycles.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/carverauto/routerpoller/pkg/logger"
	"github.com/carverauto/routerpoller/pkg/metricvalue"
	"github.com/carverauto/routerpoller/pkg/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const uptimeUnknown = "unknown"

type outcome int

const (
	outcomeReachable outcome = iota
	outcomeUnreachable
	outcomeSkipped
	outcomeFailed
	outcomeCancelled
)

// CycleSummary describes one pass over the device set.
type CycleSummary struct {
	ID          string
	Devices     int
	Reachable   int
	Unreachable int
	Skipped     int
	Failed      int
	Duration    time.Duration
}

func (s *CycleSummary) add(o outcome) {
	switch o {
	case outcomeReachable:
		s.Reachable++
	case outcomeUnreachable:
		s.Unreachable++
	case outcomeSkipped:
		s.Skipped++
	case outcomeFailed:
		s.Failed++
	case outcomeCancelled:
	}
}

// Poller represents the router poller.
type Poller struct {
	config    Config
	source    DeviceSource
	emitter   Emitter
	clock     Clock
	logger    logger.Logger
	mu        sync.RWMutex
	devices   []models.DeviceID
	lastFound time.Time
	runMu     sync.Mutex // orders wg.Add in Start against close(done) in Stop
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a new poller instance. config is expected to be validated.
func New(config *Config, source DeviceSource, emitter Emitter, clock Clock, log logger.Logger) (*Poller, error) {
	if source == nil {
		return nil, errSourceRequired
	}

	if emitter == nil {
		return nil, errEmitterRequired
	}

	if clock == nil {
		clock = realClock{}
	}

	if log == nil {
		log = logger.NewTestLogger()
	}

	p := &Poller{
		config:  *config,
		source:  source,
		emitter: emitter,
		clock:   clock,
		logger:  log,
		done:    make(chan struct{}),
	}

	if p.config.PollInterval <= 0 {
		p.config.PollInterval = models.Duration(defaultPollInterval)
	}

	if p.config.Concurrency <= 0 {
		p.config.Concurrency = defaultConcurrency
	}

	return p, nil
}

// Start discovers the device set and runs collection cycles until ctx is
// cancelled or Stop is called. It returns ctx.Err() when the parent
// context ended the loop and nil after Stop. Start after Stop returns nil
// without polling.
func (p *Poller) Start(ctx context.Context) error {
	p.runMu.Lock()
	select {
	case <-p.done:
		p.runMu.Unlock()
		return nil
	default:
	}
	p.wg.Add(1)
	p.runMu.Unlock()

	defer p.wg.Done()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-p.done:
			cancel()
		case <-runCtx.Done():
		}
	}()

	interval := time.Duration(p.config.PollInterval)

	p.logger.Info().
		Dur("interval", interval).
		Int("concurrency", p.config.Concurrency).
		Msg("Starting poller")

	p.Discover(runCtx)

	for runCtx.Err() == nil {
		p.maybeRediscover(runCtx)
		p.RunCycle(runCtx)

		select {
		case <-runCtx.Done():
		case <-p.clock.After(interval):
		}
	}

	return ctx.Err()
}

// Stop ends a running Start loop and waits for it to return.
func (p *Poller) Stop(ctx context.Context) error {
	p.runMu.Lock()
	p.closeOnce.Do(func() { close(p.done) })
	p.runMu.Unlock()

	finished := make(chan struct{})

	go func() {
		p.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Devices returns a copy of the current device set.
func (p *Poller) Devices() []models.DeviceID {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]models.DeviceID(nil), p.devices...)
}

// Discover replaces the device set with the API's current listing.
func (p *Poller) Discover(ctx context.Context) {
	ids := p.source.ListDeviceIDs(ctx)

	p.mu.Lock()
	p.devices = ids
	p.lastFound = p.clock.Now()
	p.mu.Unlock()

	if len(ids) == 0 {
		p.logger.Warn().Msg("No devices discovered")
		return
	}

	p.logger.Info().Int("devices", len(ids)).Msg("Discovered devices")
}

// maybeRediscover refreshes the device set once rediscover_interval has
// elapsed. An empty listing keeps the previous set.
func (p *Poller) maybeRediscover(ctx context.Context) {
	every := time.Duration(p.config.RediscoverInterval)
	if every <= 0 {
		return
	}

	p.mu.RLock()
	due := p.clock.Now().Sub(p.lastFound) >= every
	p.mu.RUnlock()

	if !due {
		return
	}

	ids := p.source.ListDeviceIDs(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastFound = p.clock.Now()

	if len(ids) == 0 {
		p.logger.Warn().Int("devices", len(p.devices)).Msg("Rediscovery returned no devices, keeping previous set")
		return
	}

	p.devices = ids
	p.logger.Info().Int("devices", len(ids)).Msg("Rediscovered devices")
}

// RunCycle polls every device in the current set once.
func (p *Poller) RunCycle(ctx context.Context) CycleSummary {
	devices := p.Devices()
	start := p.clock.Now()

	summary := CycleSummary{
		ID:      uuid.NewString(),
		Devices: len(devices),
	}

	var mu sync.Mutex

	var g errgroup.Group

	g.SetLimit(p.config.Concurrency)

	for _, id := range devices {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			o := p.pollDeviceSafe(ctx, id)

			mu.Lock()
			summary.add(o)
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()

	summary.Duration = p.clock.Now().Sub(start)

	p.logger.Info().
		Str("cycle_id", summary.ID).
		Int("devices", summary.Devices).
		Int("reachable", summary.Reachable).
		Int("unreachable", summary.Unreachable).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Dur("duration", summary.Duration).
		Msg("Collection cycle complete")

	return summary
}

func (p *Poller) pollDeviceSafe(ctx context.Context, id models.DeviceID) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().
				Str("device_id", string(id)).
				Interface("panic", r).
				Msg("Recovered from panic while polling device")

			o = outcomeFailed
		}
	}()

	return p.pollDevice(ctx, id)
}

func (p *Poller) pollDevice(ctx context.Context, id models.DeviceID) outcome {
	rec, ok := p.source.FetchDetail(ctx, id)
	if ctx.Err() != nil {
		return outcomeCancelled
	}

	if !ok {
		p.logger.Info().Str("device_id", string(id)).Msg("Skipping device without detail")
		return outcomeSkipped
	}

	labels := rec.Labels()

	sample := models.UtilizationSample{}
	if ip, hasIP := rec.IP(); hasIP {
		sample = p.source.FetchUtilization(ctx, ip)
	}

	if ctx.Err() != nil {
		return outcomeCancelled
	}

	if sample.Empty() {
		p.emit(ctx, models.MetricReachability, 0, labels)

		p.logger.Info().
			Str("device_id", labels.DeviceID).
			Str("device_name", labels.DeviceName).
			Str("ip_address", labels.IPAddress).
			Msg("Device unreachable")

		return outcomeUnreachable
	}

	cpuRaw, _ := sample.Value(models.EndpointCPUUtilTrend)
	memRaw, _ := sample.Value(models.EndpointMemoryUtilTrend)

	cpu := metricvalue.Utilization(models.EndpointCPUUtilTrend, cpuRaw)
	mem := metricvalue.Utilization(models.EndpointMemoryUtilTrend, memRaw)

	if cpu > metricvalue.MaxPercent || mem > metricvalue.MaxPercent {
		p.logger.Warn().
			Str("device_id", labels.DeviceID).
			Str("cpu_raw", cpuRaw).
			Str("memory_raw", memRaw).
			Msg("Utilization above 100 percent")
	}

	uptime, hasUptime := p.source.FetchUptime(ctx, id)
	if ctx.Err() != nil {
		return outcomeCancelled
	}

	p.emit(ctx, models.MetricMemoryUtilization, float64(mem), labels)
	p.emit(ctx, models.MetricCPUUtilization, float64(cpu), labels)

	uptimeText := uptimeUnknown
	if hasUptime {
		p.emit(ctx, models.MetricUptime, float64(uptime), labels)
		uptimeText = metricvalue.FormatUptime(uptime)
	}

	p.emit(ctx, models.MetricReachability, 1, labels)

	p.logger.Info().
		Str("device_id", labels.DeviceID).
		Str("device_name", labels.DeviceName).
		Str("ip_address", labels.IPAddress).
		Int64("cpu", cpu).
		Int64("memory", mem).
		Str("uptime", uptimeText).
		Msg("Device polled")

	return outcomeReachable
}

func (p *Poller) emit(ctx context.Context, metric models.MetricName, value float64, labels models.MetricLabelSet) {
	obs := models.GaugeObservation{Metric: metric, Value: value, Labels: labels}

	if err := p.emitter.Emit(ctx, obs); err != nil {
		p.logger.Warn().
			Err(err).
			Str("device_id", labels.DeviceID).
			Str("metric", string(metric)).
			Msg("Failed to emit gauge")
	}
}
