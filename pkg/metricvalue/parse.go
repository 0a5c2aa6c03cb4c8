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

// Package metricvalue turns the loosely formatted strings reported by the
// utilization endpoints into integers, and formats uptimes for logs.
// Nothing here returns an error; unreadable input becomes 0.
package metricvalue

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/carverauto/routerpoller/pkg/models"
)

// MaxPercent is the largest plausible utilization value. Parsing does not
// enforce it; callers use it to flag suspect readings.
const MaxPercent = 100

//nolint:gochecknoglobals // compiled once
var digitRun = regexp.MustCompile(`\b(\d+)\b`)

// Digits returns the first standalone run of digits in raw, or 0.
func Digits(raw string) int64 {
	m := digitRun.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}

	return atoi(m[1])
}

// AfterColon returns the integer after the last ':' in raw, or the whole
// string when there is no colon. Anything other than plain digits is 0.
func AfterColon(raw string) int64 {
	tail := raw[strings.LastIndex(raw, ":")+1:]
	if tail == "" {
		return 0
	}

	for _, r := range tail {
		if r < '0' || r > '9' {
			return 0
		}
	}

	return atoi(tail)
}

// Utilization parses raw using the format of the endpoint it came from.
// The value is reported as found, even above MaxPercent.
func Utilization(key models.EndpointKey, raw string) int64 {
	switch key {
	case models.EndpointCPUUtilTrend:
		return AfterColon(raw)
	case models.EndpointMemoryUtilTrend:
		return Digits(raw)
	default:
		return Digits(raw)
	}
}

// atoi parses a digit string; overflow saturates.
func atoi(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt64
	}

	if err != nil {
		return 0
	}

	return v
}

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// FormatUptime renders milliseconds as DD:HH:MM:SS. Days grow past two
// digits as needed; negative input is treated as zero.
func FormatUptime(ms int64) string {
	if ms < 0 {
		ms = 0
	}

	days := ms / msPerDay
	hours := ms % msPerDay / msPerHour
	minutes := ms % msPerHour / msPerMinute
	seconds := ms % msPerMinute / msPerSecond

	return fmt.Sprintf("%02d:%02d:%02d:%02d", days, hours, minutes, seconds)
}
