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

package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carverauto/routerpoller/pkg/logger"
)

const defaultShutdownTimeout = 10 * time.Second

// Service is a long-running component with an explicit shutdown hook.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// ServiceOptions configures RunService.
type ServiceOptions struct {
	ServiceName     string
	Service         Service
	ShutdownTimeout time.Duration
	// Signals defaults to SIGINT and SIGTERM.
	Signals []os.Signal
}

// RunService starts opts.Service and blocks until it returns or a shutdown
// signal arrives. A signal, or cancellation of ctx, is a clean exit and
// returns nil after Stop completes.
func RunService(ctx context.Context, opts *ServiceOptions, log logger.Logger) error {
	signals := opts.Signals
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	sigCtx, stop := signal.NotifyContext(ctx, signals...)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		errCh <- opts.Service.Start(sigCtx)
	}()

	log.Info().Str("service", opts.ServiceName).Msg("Service started")

	returned := false

	select {
	case err := <-errCh:
		if sigCtx.Err() == nil {
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("%s stopped: %w", opts.ServiceName, err)
			}

			return nil
		}

		returned = true
	case <-sigCtx.Done():
	}

	log.Info().Str("service", opts.ServiceName).Msg("shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := opts.Service.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Str("service", opts.ServiceName).Msg("Error during shutdown")
	}

	if returned {
		return nil
	}

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Str("service", opts.ServiceName).Msg("Service returned error while stopping")
		}
	case <-shutdownCtx.Done():
		log.Warn().Str("service", opts.ServiceName).Msg("Timed out waiting for service to stop")
	}

	return nil
}
