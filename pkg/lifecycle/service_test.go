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
	"sync/atomic"
	"testing"
	"time"

	"github.com/carverauto/routerpoller/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type fakeService struct {
	startErr error
	stopped  atomic.Bool
	block    bool
}

func (f *fakeService) Start(ctx context.Context) error {
	if !f.block {
		return f.startErr
	}

	<-ctx.Done()

	return ctx.Err()
}

func (f *fakeService) Stop(context.Context) error {
	f.stopped.Store(true)
	return nil
}

func TestRunService_ContextCancelIsCleanShutdown(t *testing.T) {
	svc := &fakeService{block: true}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- RunService(ctx, &ServiceOptions{ServiceName: "router-poller", Service: svc}, logger.NewTestLogger())
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunService did not return")
	}

	assert.True(t, svc.stopped.Load())
}

func TestRunService_StartError(t *testing.T) {
	svc := &fakeService{startErr: errBoom}

	err := RunService(context.Background(), &ServiceOptions{ServiceName: "router-poller", Service: svc}, logger.NewTestLogger())
	require.ErrorIs(t, err, errBoom)
	assert.False(t, svc.stopped.Load())
}

func TestRunService_StartReturnsNil(t *testing.T) {
	svc := &fakeService{}

	err := RunService(context.Background(), &ServiceOptions{ServiceName: "router-poller", Service: svc}, logger.NewTestLogger())
	require.NoError(t, err)
}
