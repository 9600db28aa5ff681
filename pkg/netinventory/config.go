/*
 * Copyright 2026 FleetScout Contributors.
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

package netinventory

import (
	"errors"
	"time"

	"github.com/fleetscout/fleetscout/pkg/logger"
)

var errNegativeRequestTimeout = errors.New("request_timeout must not be negative")

// Config is the agent configuration file.
type Config struct {
	// Logging controls the structured log output.
	Logging logger.Config `json:"logging"`
	// RequestTimeoutSeconds bounds each SNMP round-trip; zero means the
	// transport default.
	RequestTimeoutSeconds int `json:"request_timeout"`
	// Retries is the SNMP retry count per request; zero means the
	// transport default.
	Retries int `json:"retries"`
	// NATS enables the JetStream result submitter when present; absent
	// means results are written to the output stream.
	NATS *NATSSubmitterConfig `json:"nats,omitempty"`
}

// Validate checks the decoded configuration.
func (c *Config) Validate() error {
	if c.RequestTimeoutSeconds < 0 {
		return errNegativeRequestTimeout
	}

	if c.NATS != nil && c.NATS.URL == "" {
		return ErrNATSURLRequired
	}

	return nil
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
