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

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/carverauto/routerpoller/pkg/logger"
	"github.com/rs/zerolog"
)

var (
	// ErrDstMustBeNonNilPointer indicates that the destination must be a non-nil pointer.
	ErrDstMustBeNonNilPointer = errors.New("dst must be a non-nil pointer")
	// ErrDstMustBePointerToStruct indicates that the destination must be a pointer to a struct.
	ErrDstMustBePointerToStruct = errors.New("dst must be a pointer to a struct")

	errUnsupportedKind = errors.New("unsupported field kind")
)

// EnvConfigLoader fills a config struct from environment variables named
// after its json tags, upper-cased and joined with underscores:
// ROUTERPOLLER_API_BASE_URL sets API.BaseURL.
type EnvConfigLoader struct {
	logger logger.Logger
	prefix string
}

// NewEnvConfigLoader creates a loader reading variables that start with prefix.
func NewEnvConfigLoader(log logger.Logger, prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{
		logger: log,
		prefix: prefix,
	}
}

// Load implements ConfigLoader. A <prefix>CONFIG_JSON variable, when set,
// holds the whole document and wins over per-field variables.
func (e *EnvConfigLoader) Load(_ context.Context, _ string, dst interface{}) error {
	if raw := os.Getenv(e.prefix + "CONFIG_JSON"); raw != "" {
		if err := json.Unmarshal([]byte(raw), dst); err != nil {
			return fmt.Errorf("failed to unmarshal %sCONFIG_JSON: %w", e.prefix, err)
		}

		e.debug().Msg("Loaded configuration from CONFIG_JSON")

		return nil
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrDstMustBeNonNilPointer
	}

	if v.Elem().Kind() != reflect.Struct {
		return ErrDstMustBePointerToStruct
	}

	n := e.loadStruct(v.Elem(), e.prefix)

	e.debug().Int("fields", n).Msg("Loaded configuration from environment")

	return nil
}

// loadStruct walks the tagged fields of v and returns how many were set.
// Values that fail to parse are logged and leave the field untouched.
func (e *EnvConfigLoader) loadStruct(v reflect.Value, prefix string) int {
	t := v.Type()
	set := 0

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}

		envName := prefix + strings.ToUpper(name)

		switch {
		case field.Kind() == reflect.Struct && !isUnmarshaler(field):
			set += e.loadStruct(field, envName+"_")

			continue
		case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct:
			set += e.loadStructPtr(field, envName+"_")

			continue
		}

		value, ok := os.LookupEnv(envName)
		if !ok || value == "" {
			continue
		}

		if err := setField(field, value); err != nil {
			e.debug().Str("env", envName).Err(err).Msg("Ignoring environment variable")

			continue
		}

		set++
	}

	return set
}

// loadStructPtr only allocates a nil pointer when a nested variable is set,
// so optional sections such as tls stay nil.
func (e *EnvConfigLoader) loadStructPtr(field reflect.Value, prefix string) int {
	if !field.IsNil() {
		return e.loadStruct(field.Elem(), prefix)
	}

	fresh := reflect.New(field.Type().Elem())

	n := e.loadStruct(fresh.Elem(), prefix)
	if n > 0 {
		field.Set(fresh)
	}

	return n
}

func (e *EnvConfigLoader) debug() *zerolog.Event {
	if e.logger == nil {
		return nil
	}

	return e.logger.Debug()
}

func isUnmarshaler(field reflect.Value) bool {
	if !field.CanAddr() {
		return false
	}

	_, ok := field.Addr().Interface().(json.Unmarshaler)

	return ok
}

// setField parses value into field. Types with their own UnmarshalJSON,
// such as models.Duration, accept both "60s" and a bare number; maps take
// a JSON object.
func setField(field reflect.Value, value string) error {
	if isUnmarshaler(field) {
		raw := []byte(value)
		if !json.Valid(raw) {
			raw = []byte(strconv.Quote(value))
		}

		return field.Addr().Interface().(json.Unmarshaler).UnmarshalJSON(raw)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}

		field.SetBool(b)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}

		field.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}

		field.SetFloat(f)
	case reflect.Map:
		return json.Unmarshal([]byte(value), field.Addr().Interface())
	default:
		return fmt.Errorf("%w: %s", errUnsupportedKind, field.Kind())
	}

	return nil
}
