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

// Package models holds the device, label, and observation types shared by
// the API client, the collection loop, and the gauge emitter.
package models

// DeviceID identifies a device in the management API. It is the trailing
// path segment of the device's self URL and is stable across polls.
type DeviceID string

// DeviceRecord is the per-cycle view of a single device built from a detail
// fetch. Every field except DeviceID may be absent (nil).
type DeviceRecord struct {
	DeviceID         DeviceID `json:"device_id"`
	IPAddress        *string  `json:"ip_address,omitempty"`
	CollectionStatus *string  `json:"collection_status,omitempty"`
	CollectionTime   *string  `json:"collection_time,omitempty"`
	SerialNumber     *string  `json:"serial_number,omitempty"`
	PartNumber       *string  `json:"part_number,omitempty"`
	SoftwareVersion  *string  `json:"software_version,omitempty"`
	DeviceName       *string  `json:"device_name,omitempty"`
	Location         *string  `json:"location,omitempty"`
	Reachability     *string  `json:"reachability,omitempty"`
}

// MetricLabelSet is the identifying attribute set attached to every gauge
// observation for one device.
type MetricLabelSet struct {
	DeviceID        string `json:"device_id"`
	DeviceName      string `json:"device_name"`
	PartNumber      string `json:"part_number"`
	Location        string `json:"location"`
	Reachability    string `json:"reachability"`
	SerialNumber    string `json:"serial_number"`
	IPAddress       string `json:"ip_address"`
	SoftwareVersion string `json:"software_version"`
}

// Label keys, in emission order.
const (
	LabelDeviceID        = "device_id"
	LabelDeviceName      = "device_name"
	LabelPartNumber      = "part_number"
	LabelLocation        = "location"
	LabelReachability    = "reachability"
	LabelSerialNumber    = "serial_number"
	LabelIPAddress       = "ip_address"
	LabelSoftwareVersion = "software_version"
)

// IP returns the device address and whether it was present upstream.
func (r *DeviceRecord) IP() (string, bool) {
	if r == nil || r.IPAddress == nil || *r.IPAddress == "" {
		return "", false
	}

	return *r.IPAddress, true
}

// Labels builds the label set for this record. All labels come from the same
// record so the resulting time series stay correlated; absent fields become "".
func (r *DeviceRecord) Labels() MetricLabelSet {
	return MetricLabelSet{
		DeviceID:        string(r.DeviceID),
		DeviceName:      deref(r.DeviceName),
		PartNumber:      deref(r.PartNumber),
		Location:        deref(r.Location),
		Reachability:    deref(r.Reachability),
		SerialNumber:    deref(r.SerialNumber),
		IPAddress:       deref(r.IPAddress),
		SoftwareVersion: deref(r.SoftwareVersion),
	}
}

// Pairs returns the label set as ordered key/value pairs.
func (l MetricLabelSet) Pairs() [][2]string {
	return [][2]string{
		{LabelDeviceID, l.DeviceID},
		{LabelDeviceName, l.DeviceName},
		{LabelPartNumber, l.PartNumber},
		{LabelLocation, l.Location},
		{LabelReachability, l.Reachability},
		{LabelSerialNumber, l.SerialNumber},
		{LabelIPAddress, l.IPAddress},
		{LabelSoftwareVersion, l.SoftwareVersion},
	}
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
