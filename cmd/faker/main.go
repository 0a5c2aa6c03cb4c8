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

// Package main runs a fake management API that serves Prime-shaped JSON for
// a fleet of synthetic routers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/carverauto/routerpoller/pkg/config"
	"github.com/carverauto/routerpoller/pkg/lifecycle"
	"github.com/carverauto/routerpoller/pkg/logger"
	"github.com/carverauto/routerpoller/pkg/models"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to faker config file (defaults are used when empty or missing)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := loadConfig(ctx, *configPath)
	if err != nil {
		return err
	}

	fakerLogger, err := lifecycle.CreateComponentLogger(ctx, "faker", &logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	gen := NewRouterGenerator(cfg.Simulation)

	fakerLogger.Info().
		Int("routers", len(gen.Routers())).
		Str("listen_address", cfg.Server.ListenAddress).
		Str("base_path", cfg.Server.BasePath).
		Msg("Fake Prime API starting")

	svc := newAPIServer(cfg, gen, fakerLogger)

	return lifecycle.RunService(ctx, &lifecycle.ServiceOptions{
		ServiceName: "faker",
		Service:     svc,
	}, fakerLogger)
}

// loadConfig reads path through the shared config loader. An empty or
// missing path falls back to the built-in defaults.
func loadConfig(ctx context.Context, path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	if path == "" {
		return cfg, cfg.Validate()
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Printf("Config file %s not found; using defaults", path)

		return cfg, cfg.Validate()
	}

	if err := config.NewConfig(nil).LoadAndValidate(ctx, path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// apiServer adapts the HTTP server and the flap simulation to lifecycle.Service.
type apiServer struct {
	cfg    *Config
	gen    *RouterGenerator
	logger logger.Logger
	server *http.Server
}

func newAPIServer(cfg *Config, gen *RouterGenerator, log logger.Logger) *apiServer {
	return &apiServer{
		cfg:    cfg,
		gen:    gen,
		logger: log,
		server: &http.Server{
			Addr:         cfg.Server.ListenAddress,
			Handler:      newHandler(cfg, gen, log),
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout),
		},
	}
}

func (a *apiServer) Start(ctx context.Context) error {
	if flap := a.cfg.Simulation.Flap; flap.Enabled {
		a.logger.Info().
			Int("percentage", flap.Percentage).
			Dur("interval", time.Duration(flap.Interval)).
			Msg("Reachability flapping enabled")

		go a.gen.Flap(ctx, time.Duration(flap.Interval), flap.Percentage, a.logger)
	}

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (a *apiServer) Stop(ctx context.Context) error {
	if a.server == nil {
		return nil
	}

	return a.server.Shutdown(ctx)
}

// Config holds the configuration for the faker service.
type Config struct {
	Server struct {
		ListenAddress string          `json:"listen_address"`
		BasePath      string          `json:"base_path"`
		ReadTimeout   models.Duration `json:"read_timeout"`
		WriteTimeout  models.Duration `json:"write_timeout"`
		IdleTimeout   models.Duration `json:"idle_timeout"`
	} `json:"server"`
	Auth struct {
		Username string `json:"username"`
		Password string `json:"password" sensitive:"true"`
	} `json:"auth"`
	Simulation SimulationConfig `json:"simulation"`
	LogLevel   string           `json:"log_level"`
}

// SimulationConfig shapes the synthetic fleet.
type SimulationConfig struct {
	TotalDevices       int   `json:"total_devices"`
	UnreachablePercent int   `json:"unreachable_percent"`
	MissingDevices     int   `json:"missing_devices"`
	Seed               int64 `json:"seed"`
	Flap               struct {
		Enabled    bool            `json:"enabled"`
		Interval   models.Duration `json:"interval"`
		Percentage int             `json:"percentage"`
	} `json:"flap"`
}

var (
	errListenAddressRequired     = errors.New("server.listen_address is required")
	errBasePathInvalid           = errors.New("server.base_path must start and end with '/'")
	errCredentialsRequired       = errors.New("auth.username and auth.password are required")
	errTotalDevicesInvalid       = errors.New("simulation.total_devices must be > 0")
	errUnreachablePercentInvalid = errors.New("simulation.unreachable_percent must be between 0 and 100")
	errMissingDevicesInvalid     = errors.New("simulation.missing_devices must be >= 0")
	errFlapIntervalInvalid       = errors.New("simulation.flap.interval must be positive")
	errFlapPercentageInvalid     = errors.New("simulation.flap.percentage must be between 1 and 100")
)

const (
	defaultListenAddress = ":8080"
	defaultBasePath      = "/webacs/api/v4/"
	defaultReadTimeout   = 10 * time.Second
	defaultWriteTimeout  = 30 * time.Second
	defaultIdleTimeout   = 30 * time.Second
	defaultTotalDevices  = 25
	defaultUnreachable   = 20
	defaultMissing       = 1
	defaultFlapInterval  = 60 * time.Second
	defaultFlapPercent   = 10
	defaultUsername      = "monitor"
	defaultPassword      = "changeme"
	percentageBase       = 100
)

// applyDefaults seeds every field before the config file is decoded over it,
// so an explicit zero in the file is kept.
func (c *Config) applyDefaults() {
	c.Server.ListenAddress = defaultListenAddress
	c.Server.BasePath = defaultBasePath
	c.Server.ReadTimeout = models.Duration(defaultReadTimeout)
	c.Server.WriteTimeout = models.Duration(defaultWriteTimeout)
	c.Server.IdleTimeout = models.Duration(defaultIdleTimeout)
	c.Auth.Username = defaultUsername
	c.Auth.Password = defaultPassword
	c.Simulation.TotalDevices = defaultTotalDevices
	c.Simulation.UnreachablePercent = defaultUnreachable
	c.Simulation.MissingDevices = defaultMissing
	c.Simulation.Flap.Interval = models.Duration(defaultFlapInterval)
	c.Simulation.Flap.Percentage = defaultFlapPercent
	c.LogLevel = "info"
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.Server.ListenAddress == "" {
		return errListenAddressRequired
	}

	if !strings.HasPrefix(c.Server.BasePath, "/") || !strings.HasSuffix(c.Server.BasePath, "/") {
		return errBasePathInvalid
	}

	if c.Auth.Username == "" || c.Auth.Password == "" {
		return errCredentialsRequired
	}

	return c.Simulation.validate()
}

func (s *SimulationConfig) validate() error {
	switch {
	case s.TotalDevices <= 0:
		return errTotalDevicesInvalid
	case s.UnreachablePercent < 0 || s.UnreachablePercent > percentageBase:
		return errUnreachablePercentInvalid
	case s.MissingDevices < 0:
		return errMissingDevicesInvalid
	case s.Flap.Enabled && s.Flap.Interval <= 0:
		return errFlapIntervalInvalid
	case s.Flap.Enabled && (s.Flap.Percentage <= 0 || s.Flap.Percentage > percentageBase):
		return errFlapPercentageInvalid
	}

	return nil
}
