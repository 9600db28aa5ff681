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

// Package models defines the data types shared across the scan engine: job
// descriptions consumed from the controlling layer, SNMP credentials, and the
// inventory payloads produced toward the result collaborator.
package models

// JobDescription is the scan request received from the controlling layer.
// Field names follow the management-protocol convention of upper-case keys.
type JobDescription struct {
	Params      JobParams     `json:"PARAMS"`
	Credentials []Credential  `json:"AUTHENTICATION"`
	Devices     []DeviceEntry `json:"DEVICE"`
}

// JobParams carries the per-job knobs recognized by the engine.
type JobParams struct {
	// PID is an opaque job identifier echoed back in results.
	PID int64 `json:"PID"`
	// Timeout is the job wall-clock budget in seconds.
	Timeout int `json:"TIMEOUT"`
	// ThreadsQuery is the worker-pool size; absent or invalid means 1.
	ThreadsQuery int `json:"THREADS_QUERY"`
	// NoStartStop suppresses the synthetic start/stop control messages
	// around the batch stream.
	NoStartStop BoolFlag `json:"NO_START_STOP"`
}

// DeviceEntry is one device the job is asked to scan.
type DeviceEntry struct {
	// ID is an optional stable identifier echoed back in the result.
	ID string `json:"ID,omitempty"`
	// IP is the target network address.
	IP string `json:"IP"`
	// Port is the SNMP port; zero means 161.
	Port uint16 `json:"PORT,omitempty"`
	// CredentialID references an AUTHENTICATION entry; empty means use the
	// default credential.
	CredentialID string `json:"AUTHSNMP_ID,omitempty"`
	// Type is an optional type hint from the controlling layer.
	Type string `json:"TYPE,omitempty"`
}

// Credential is one SNMP authentication profile. It is immutable for the
// duration of a job.
type Credential struct {
	ID        string `json:"ID"`
	Version   string `json:"VERSION"`
	Community string `json:"COMMUNITY,omitempty"`

	// SNMPv3 parameters.
	Username       string `json:"USERNAME,omitempty"`
	AuthProtocol   string `json:"AUTHPROTOCOL,omitempty"`
	AuthPassphrase string `json:"AUTHPASSPHRASE,omitempty"`
	PrivProtocol   string `json:"PRIVPROTOCOL,omitempty"`
	PrivPassphrase string `json:"PRIVPASSPHRASE,omitempty"`
}
