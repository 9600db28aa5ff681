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

// Package mibsupport matches vendor handlers to devices and dispatches
// identification capabilities across the matched set. Handlers are
// registered once at startup, matched per device by exactly one of three
// rules, and run in ascending priority order.
package mibsupport

import "github.com/fleetscout/fleetscout/pkg/device"

// Capability names one optional identification question a handler may
// answer. The set is open: handlers can serve additional capabilities
// through the Extension interface.
type Capability string

const (
	CapType         Capability = "type"
	CapManufacturer Capability = "manufacturer"
	CapModel        Capability = "model"
	CapSerial       Capability = "serial"
	CapFirmware     Capability = "firmware"
	CapFirmwareDate Capability = "firmwaredate"
	CapMACAddress   Capability = "macaddress"
	CapHostname     Capability = "hostname"
)

// Handler is a vendor plugin bound to one device for one scan. Capability
// methods return the empty string when the handler has no answer; Run
// performs side-effect enrichment of the device record.
type Handler interface {
	Type() string
	Manufacturer() string
	Model() string
	Serial() string
	Firmware() string
	FirmwareDate() string
	MACAddress() string
	Hostname() string
	Run()
}

// Extension lets a handler answer capabilities beyond the built-in set.
type Extension interface {
	Capability(cap Capability) string
}

// Base provides no-answer defaults for every capability, so vendor handlers
// embed it and implement only what their MIB exposes.
type Base struct {
	Dev *device.Device
}

// Get reads one scalar through the device cache and canonicalises it,
// returning the empty string for absent objects.
func (b *Base) Get(oid string) string {
	v, ok := b.Dev.Get(oid)
	if !ok {
		return ""
	}

	return device.CanonicalString(v)
}

// GetRaw reads one scalar without canonicalisation.
func (b *Base) GetRaw(oid string) (string, bool) {
	return b.Dev.Get(oid)
}

// Walk reads a subtree through the device cache.
func (b *Base) Walk(oid string) map[string]string {
	return b.Dev.Walk(oid)
}

// FirstOf returns the first non-empty canonical value among the given OIDs.
func (b *Base) FirstOf(oids ...string) string {
	for _, oid := range oids {
		if v := b.Get(oid); v != "" {
			return v
		}
	}

	return ""
}

func (*Base) Type() string         { return "" }
func (*Base) Manufacturer() string { return "" }
func (*Base) Model() string        { return "" }
func (*Base) Serial() string       { return "" }
func (*Base) Firmware() string     { return "" }
func (*Base) FirmwareDate() string { return "" }
func (*Base) MACAddress() string   { return "" }
func (*Base) Hostname() string     { return "" }
func (*Base) Run()                 {}
