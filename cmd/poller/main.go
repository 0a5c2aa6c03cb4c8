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
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/carverauto/routerpoller/pkg/config"
	"github.com/carverauto/routerpoller/pkg/lifecycle"
	"github.com/carverauto/routerpoller/pkg/logger"
	"github.com/carverauto/routerpoller/pkg/models"
	"github.com/carverauto/routerpoller/pkg/poller"
	"github.com/carverauto/routerpoller/pkg/primeapi"
	"github.com/carverauto/routerpoller/pkg/telemetry"
	"github.com/carverauto/routerpoller/pkg/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const shutdownTimeout = 15 * time.Second

var (
	errFailedToLoadConfig = fmt.Errorf("failed to load config")
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/routerpoller/poller.json", "Path to poller config file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Fprintln(os.Stdout, version.GetFullVersion())
		return nil
	}

	ctx := context.Background()

	var cfg poller.Config

	if err := config.NewConfig(nil).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = &logger.Config{
			Level:  "info",
			Output: "stdout",
		}
	}

	pollerLogger, err := lifecycle.CreateComponentLogger(ctx, "poller", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defer func() {
		if err := lifecycle.ShutdownLogger(); err != nil {
			log.Printf("Failed to flush telemetry: %v", err)
		}
	}()

	if redacted, err := models.FilterSensitiveFields(&cfg); err == nil {
		pollerLogger.Info().
			Str("version", version.GetFullVersion()).
			Interface("config", redacted).
			Msg("Starting router poller")
	}

	meter, err := setupMetrics(ctx, &cfg, pollerLogger)
	if err != nil {
		return err
	}

	gauges, err := telemetry.NewGauges(meter)
	if err != nil {
		return fmt.Errorf("failed to create gauges: %w", err)
	}

	client, err := primeapi.NewClient(cfg.API, pollerLogger)
	if err != nil {
		return fmt.Errorf("failed to create prime client: %w", err)
	}

	p, err := poller.New(&cfg, client, gauges, nil, pollerLogger)
	if err != nil {
		return err
	}

	return lifecycle.RunService(ctx, &lifecycle.ServiceOptions{
		ServiceName:     cfg.Metrics.ServiceName,
		Service:         p,
		ShutdownTimeout: shutdownTimeout,
	}, pollerLogger)
}

// setupMetrics starts the OTLP metrics pipeline. With exporting disabled the
// gauges go to the global provider, which is a no-op unless something else
// installed one.
func setupMetrics(ctx context.Context, cfg *poller.Config, log logger.Logger) (metric.Meter, error) {
	_, err := logger.InitializeMetrics(ctx, logger.MetricsConfig{
		ServiceName:    cfg.Metrics.ServiceName,
		ServiceVersion: version.GetVersion(),
		OTel:           cfg.Metrics.OTel(),
		ExportInterval: time.Duration(cfg.Metrics.ExportInterval),
	})

	switch {
	case errors.Is(err, logger.ErrOTelMetricsDisabled):
		log.Warn().Msg("Metrics export disabled; gauges will not leave the process")
	case err != nil:
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	default:
		log.Info().
			Str("endpoint", cfg.Metrics.Endpoint).
			Dur("export_interval", time.Duration(cfg.Metrics.ExportInterval)).
			Msg("Metrics exporter started")
	}

	return otel.GetMeterProvider().Meter(telemetry.ScopeName), nil
}
