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

// Package http holds HTTP middleware shared by the local test servers.
package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/carverauto/routerpoller/pkg/logger"
)

const defaultRealm = "Prime"

// BasicAuthOptions configures BasicAuthMiddleware.
type BasicAuthOptions struct {
	Username        string
	Password        string
	Realm           string
	ExcludePaths    []string
	LogUnauthorized bool
	Logger          logger.Logger
}

// BasicAuthMiddleware rejects requests whose basic credentials do not match
// opts with 401 and a WWW-Authenticate challenge.
func BasicAuthMiddleware(opts BasicAuthOptions) func(next http.Handler) http.Handler {
	realm := opts.Realm
	if realm == "" {
		realm = defaultRealm
	}

	challenge := `Basic realm="` + realm + `"`

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range opts.ExcludePaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			user, pass, ok := r.BasicAuth()
			if !ok || !equal(user, opts.Username) || !equal(pass, opts.Password) {
				if opts.LogUnauthorized && opts.Logger != nil {
					opts.Logger.Warn().
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("remote_addr", r.RemoteAddr).
						Msg("Unauthorized API access attempt")
				}

				w.Header().Set("WWW-Authenticate", challenge)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// RequestLogMiddleware logs every request at debug level.
func RequestLogMiddleware(log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Debug().
				Str("remote_addr", r.RemoteAddr).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Msg("HTTP request")

			next.ServeHTTP(w, r)
		})
	}
}
