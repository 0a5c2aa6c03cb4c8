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
	"errors"
	"reflect"
	"strings"
)

var errInputNotStruct = errors.New("input must be a struct or pointer to struct")

// FilterSensitiveFields converts a struct into a JSON-keyed map, dropping
// fields tagged `sensitive:"true"` at any depth. The result is safe to log.
func FilterSensitiveFields(input interface{}) (map[string]interface{}, error) {
	if input == nil {
		return make(map[string]interface{}), nil
	}

	result := filterRecursively(input)
	if result == nil {
		return make(map[string]interface{}), nil
	}

	if resultMap, ok := result.(map[string]interface{}); ok {
		return resultMap, nil
	}

	return nil, errInputNotStruct
}

func filterRecursively(input interface{}) interface{} {
	if input == nil {
		return nil
	}

	rv := reflect.ValueOf(input)
	rt := reflect.TypeOf(input)

	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}

		rv = rv.Elem()
		rt = rt.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		result := make(map[string]interface{})

		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			fieldValue := rv.Field(i)

			if !fieldValue.CanInterface() || field.Tag.Get("sensitive") == "true" {
				continue
			}

			name, ok := jsonFieldName(&field)
			if !ok {
				continue
			}

			result[name] = filterRecursively(fieldValue.Interface())
		}

		return result

	case reflect.Slice, reflect.Array:
		result := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			result[i] = filterRecursively(rv.Index(i).Interface())
		}

		return result

	case reflect.Map:
		result := make(map[string]interface{})

		for _, key := range rv.MapKeys() {
			if key.Kind() == reflect.String {
				result[key.String()] = filterRecursively(rv.MapIndex(key).Interface())
			}
		}

		return result

	default:
		return input
	}
}

func jsonFieldName(field *reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false
	}

	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}

	return field.Name, true
}
