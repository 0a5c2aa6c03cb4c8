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
	"errors"
	"fmt"
)

var (
	// ErrMissingData means the response decoded but the expected path was absent.
	ErrMissingData = errors.New("expected data missing from response")
	// ErrParse means a value was present but could not be read as a number.
	ErrParse = errors.New("value is not numeric")

	errUnexpectedStatusCode = errors.New("unexpected status code")
	errInvalidJSON          = errors.New("response body is not valid JSON")
	errBaseURLRequired      = errors.New("api base_url is required")
	errCredentialsRequired  = errors.New("api username and password are required")
	errInvalidBaseURL       = errors.New("api base_url must be an absolute http(s) URL")
	errInvalidLookback      = errors.New("api lookback must not be negative")
)

// TransportError reports a failed request: a network failure, a non-2xx
// status, or a body that is not JSON.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
