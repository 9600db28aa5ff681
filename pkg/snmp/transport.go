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

// Package snmp provides the transport bound to one device and credential
// pair: a scalar get and a subtree walk, both keyed by OID.
package snmp

import "errors"

var (
	ErrTargetRequired         = errors.New("target address is required")
	ErrCredentialRequired     = errors.New("credential is required")
	ErrUnsupportedSNMPVersion = errors.New("unsupported SNMP version")
	ErrSNMPConnectFailed      = errors.New("SNMP connect failed")
	ErrSNMPGetFailed          = errors.New("SNMP GET failed")
	ErrSNMPWalkFailed         = errors.New("SNMP WALK failed")
)

// Transport is the management-protocol surface the engine and handlers see.
// Get returns the scalar at oid, with ok=false when the object is absent on
// the agent. Walk returns the subtree under oid keyed by the index suffix
// relative to oid.
type Transport interface {
	Get(oid string) (value string, ok bool, err error)
	Walk(oid string) (map[string]string, error)
	Close() error
}
