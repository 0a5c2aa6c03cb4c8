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
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/carverauto/routerpoller/pkg/logger"
	"github.com/carverauto/routerpoller/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testUser     = "svc"
	testPassword = "s3cret"
	apiPrefix    = "/webacs/api/v4/"
)

// fakePrime serves canned bodies keyed by path relative to the API root.
type fakePrime struct {
	mu       sync.Mutex
	bodies   map[string]string
	statuses map[string]int
	requests []*url.URL
}

func (f *fakePrime) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL)
	f.mu.Unlock()

	user, pass, ok := r.BasicAuth()
	if !ok || user != testUser || pass != testPassword {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	rel := strings.TrimPrefix(r.URL.Path, apiPrefix)

	if status, ok := f.statuses[rel]; ok {
		w.WriteHeader(status)
		return
	}

	body, ok := f.bodies[rel]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func (f *fakePrime) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

func (f *fakePrime) request(i int) *url.URL {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.requests[i]
}

func newFakeClient(t *testing.T, bodies map[string]string) (*Client, *fakePrime) {
	t.Helper()

	fake := &fakePrime{bodies: bodies, statuses: map[string]int{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:  srv.URL + apiPrefix,
		Username: testUser,
		Password: testPassword,
	}, logger.NewTestLogger())
	require.NoError(t, err)

	return client, fake
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{BaseURL: "https://prime.example/webacs/api/v4", Username: "u", Password: "p"}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://prime.example/webacs/api/v4/", cfg.BaseURL)
	assert.Equal(t, models.Duration(30*time.Second), cfg.RequestTimeout)
	assert.Equal(t, 1, cfg.Lookback)
	assert.False(t, cfg.VerifyTLS)
}

func TestConfig_ValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"missing base url", Config{Username: "u", Password: "p"}, errBaseURLRequired},
		{"relative base url", Config{BaseURL: "webacs/api/v4/", Username: "u", Password: "p"}, errInvalidBaseURL},
		{"ftp base url", Config{BaseURL: "ftp://prime/", Username: "u", Password: "p"}, errInvalidBaseURL},
		{"missing password", Config{BaseURL: "https://prime/", Username: "u"}, errCredentialsRequired},
		{"negative lookback", Config{BaseURL: "https://prime/", Username: "u", Password: "p", Lookback: -1}, errInvalidLookback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			require.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestClient_GetSendsBasicAuthAndQuery(t *testing.T) {
	client, fake := newFakeClient(t, map[string]string{
		"op/statisticsService/device/cpuUtilTrend.json": `{"ok":true}`,
	})

	body, err := client.Get(context.Background(), "op/statisticsService/device/cpuUtilTrend.json",
		url.Values{"ipAddress": {"10.0.0.1"}, "range": {"1"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	require.Equal(t, 1, fake.requestCount())
	assert.Equal(t, "ipAddress=10.0.0.1&range=1", fake.request(0).RawQuery)
}

func TestClient_GetTransportErrors(t *testing.T) {
	client, fake := newFakeClient(t, map[string]string{
		"data/Broken.json": `{"queryResponse":`,
	})
	fake.statuses["data/Devices.json"] = http.StatusInternalServerError

	_, err := client.Get(context.Background(), "data/Devices.json", nil)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusInternalServerError, terr.StatusCode)
	assert.True(t, strings.HasSuffix(terr.URL, "/webacs/api/v4/data/Devices.json"))
	assert.ErrorIs(t, err, errUnexpectedStatusCode)

	_, err = client.Get(context.Background(), "data/Broken.json", nil)
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, errInvalidJSON)

	_, err = client.Get(context.Background(), "data/Missing.json", nil)
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusNotFound, terr.StatusCode)
}

func TestClient_GetWrongCredentials(t *testing.T) {
	fake := &fakePrime{bodies: map[string]string{"data/Devices.json": `{}`}, statuses: map[string]int{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL + apiPrefix, Username: "x", Password: "y"}, nil)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "data/Devices.json", nil)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusUnauthorized, terr.StatusCode)
}

var errDialFailed = errors.New("dial tcp: connection refused")

func TestClient_GetNetworkFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockHTTP := NewMockHTTPClient(ctrl)
	mockHTTP.EXPECT().Do(gomock.Any()).Return(nil, errDialFailed)

	client, err := NewClient(Config{
		BaseURL:  "https://prime.example/webacs/api/v4/",
		Username: testUser,
		Password: testPassword,
	}, logger.NewTestLogger(), WithHTTPClient(mockHTTP))
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "data/Devices.json", nil)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "https://prime.example/webacs/api/v4/data/Devices.json", terr.URL)
	assert.Zero(t, terr.StatusCode)
	assert.ErrorIs(t, err, errDialFailed)
}

func TestClient_GetAppliesRequestTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockHTTP := NewMockHTTPClient(ctrl)
	mockHTTP.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		deadline, ok := req.Context().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(150*time.Millisecond), deadline, 100*time.Millisecond)

		<-req.Context().Done()

		return nil, req.Context().Err()
	})

	client, err := NewClient(Config{
		BaseURL:        "https://prime.example/webacs/api/v4/",
		Username:       testUser,
		Password:       testPassword,
		RequestTimeout: models.Duration(150 * time.Millisecond),
	}, nil, WithHTTPClient(mockHTTP))
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "data/Devices.json", nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_RateLimitHonoursCancellation(t *testing.T) {
	client, fake := newFakeClient(t, map[string]string{"data/Devices.json": `{}`})
	client.cfg.RateLimit = 0.001

	client2, err := NewClient(client.cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, client2.limiter)

	_, err = client2.Get(context.Background(), "data/Devices.json", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client2.Get(ctx, "data/Devices.json", nil)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 1, fake.requestCount())
}

func TestTransportError_Message(t *testing.T) {
	err := &TransportError{URL: "https://p/x.json", StatusCode: 503, Err: errUnexpectedStatusCode}
	assert.Equal(t, "GET https://p/x.json: status 503: unexpected status code", err.Error())

	err = &TransportError{URL: "https://p/x.json", Err: errDialFailed}
	assert.Equal(t, "GET https://p/x.json: dial tcp: connection refused", err.Error())
}
