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

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceRecord_Labels(t *testing.T) {
	rec := &DeviceRecord{
		DeviceID:        "D1",
		IPAddress:       StringPtr("10.0.0.1"),
		SerialNumber:    StringPtr("S1"),
		PartNumber:      StringPtr("P1"),
		SoftwareVersion: StringPtr("17.3"),
		DeviceName:      StringPtr("r1"),
		Location:        StringPtr("L1"),
		Reachability:    StringPtr("REACHABLE"),
	}

	labels := rec.Labels()

	assert.Equal(t, MetricLabelSet{
		DeviceID:        "D1",
		DeviceName:      "r1",
		PartNumber:      "P1",
		Location:        "L1",
		Reachability:    "REACHABLE",
		SerialNumber:    "S1",
		IPAddress:       "10.0.0.1",
		SoftwareVersion: "17.3",
	}, labels)

	pairs := labels.Pairs()
	require.Len(t, pairs, 8)
	assert.Equal(t, [2]string{LabelDeviceID, "D1"}, pairs[0])
	assert.Equal(t, [2]string{LabelSoftwareVersion, "17.3"}, pairs[7])
}

func TestDeviceRecord_LabelsAbsentFields(t *testing.T) {
	rec := &DeviceRecord{DeviceID: "D2"}

	labels := rec.Labels()

	assert.Equal(t, "D2", labels.DeviceID)
	assert.Empty(t, labels.IPAddress)
	assert.Empty(t, labels.SerialNumber)
	assert.Empty(t, labels.Reachability)
}

func TestDeviceRecord_IP(t *testing.T) {
	ip, ok := (&DeviceRecord{IPAddress: StringPtr("10.0.0.2")}).IP()
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.2", ip)

	_, ok = (&DeviceRecord{}).IP()
	assert.False(t, ok)

	empty := ""
	_, ok = (&DeviceRecord{IPAddress: &empty}).IP()
	assert.False(t, ok)

	var nilRec *DeviceRecord
	_, ok = nilRec.IP()
	assert.False(t, ok)
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	require.NotNil(t, StringPtr("x"))
	assert.Equal(t, "x", *StringPtr("x"))
}

func TestGaugeObservation_Valid(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  bool
	}{
		{"zero", 0, true},
		{"percent", 42, true},
		{"uptime", 90061000, true},
		{"negative", -1, false},
		{"nan", math.NaN(), false},
		{"inf", math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := GaugeObservation{Metric: MetricCPUUtilization, Value: tt.value}
			assert.Equal(t, tt.want, obs.Valid())
		})
	}
}

func TestUtilizationSample(t *testing.T) {
	var empty UtilizationSample
	assert.True(t, empty.Empty())

	s := UtilizationSample{EndpointCPUUtilTrend: "host:7"}
	assert.False(t, s.Empty())

	v, ok := s.Value(EndpointCPUUtilTrend)
	assert.True(t, ok)
	assert.Equal(t, "host:7", v)

	_, ok = s.Value(EndpointMemoryUtilTrend)
	assert.False(t, ok)
}

func TestDuration_JSON(t *testing.T) {
	var d Duration

	require.NoError(t, json.Unmarshal([]byte(`"60s"`), &d))
	assert.Equal(t, Duration(time.Minute), d)

	require.NoError(t, json.Unmarshal([]byte(`30000000000`), &d))
	assert.Equal(t, Duration(30*time.Second), d)

	require.Error(t, json.Unmarshal([]byte(`"eventually"`), &d))
	require.Error(t, json.Unmarshal([]byte(`true`), &d))

	out, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(out))
}

type secretAPI struct {
	BaseURL  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password" sensitive:"true"`
}

type secretConfig struct {
	API     secretAPI         `json:"api"`
	Devices []string          `json:"devices,omitempty"`
	Headers map[string]string `json:"headers"`
	Skipped string            `json:"-"`
	NoTag   int
}

func TestFilterSensitiveFields(t *testing.T) {
	cfg := &secretConfig{
		API:     secretAPI{BaseURL: "https://prime/", Username: "u", Password: "hunter2"},
		Devices: []string{"D1"},
		Headers: map[string]string{"x": "y"},
		Skipped: "nope",
		NoTag:   3,
	}

	got, err := FilterSensitiveFields(cfg)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"api": map[string]interface{}{
			"base_url": "https://prime/",
			"username": "u",
		},
		"devices": []interface{}{"D1"},
		"headers": map[string]interface{}{"x": "y"},
		"NoTag":   3,
	}, got)
}

func TestFilterSensitiveFields_NonStruct(t *testing.T) {
	_, err := FilterSensitiveFields("plain")
	require.ErrorIs(t, err, errInputNotStruct)

	got, err := FilterSensitiveFields(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	var nilCfg *secretConfig
	got, err = FilterSensitiveFields(nilCfg)
	require.NoError(t, err)
	assert.Empty(t, got)
}
