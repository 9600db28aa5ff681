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

// Package device holds the per-scan accumulator of inventory facts for one
// device. A Device is owned by the single worker scanning it and memoizes
// every transport round-trip so cooperating handlers never repeat a query.
package device

import (
	"github.com/fleetscout/fleetscout/pkg/logger"
	"github.com/fleetscout/fleetscout/pkg/models"
	"github.com/fleetscout/fleetscout/pkg/snmp"
)

type scalarResult struct {
	value string
	ok    bool
}

// Device is the mutable per-scan record. Scalar inventory fields follow a
// set-if-unset rule: once a handler has set a field, later (lower-priority)
// handlers cannot overwrite it.
type Device struct {
	transport snmp.Transport
	log       logger.Logger

	id string
	ip string

	scalars  map[string]scalarResult
	subtrees map[string]map[string]string

	deviceType   string
	manufacturer string
	model        string
	serial       string
	firmware     string
	firmwareDate string
	mac          string
	hostname     string
	location     string
	contact      string
	uptime       string

	firmwares    []models.Firmware
	ports        []models.Port
	cartridges   map[string]string
	pageCounters map[string]string
	info         map[string]string
}

// New creates a record bound to one transport. The id may be empty.
func New(transport snmp.Transport, log logger.Logger, id, ip string) *Device {
	return &Device{
		transport:    transport,
		log:          log,
		id:           id,
		ip:           ip,
		scalars:      make(map[string]scalarResult),
		subtrees:     make(map[string]map[string]string),
		cartridges:   make(map[string]string),
		pageCounters: make(map[string]string),
		info:         make(map[string]string),
	}
}

// ID returns the stable identifier given by the job, if any.
func (d *Device) ID() string { return d.id }

// IP returns the target network address.
func (d *Device) IP() string { return d.ip }

// Get fetches one scalar through the memoizing cache. Transport errors are
// logged and reported as an absent value so a flaky OID never aborts the
// scan of the rest of the device.
func (d *Device) Get(oid string) (string, bool) {
	if oid == "" {
		return "", false
	}

	if cached, hit := d.scalars[oid]; hit {
		return cached.value, cached.ok
	}

	value, ok, err := d.transport.Get(oid)
	if err != nil {
		d.log.Debug().Err(err).Str("oid", oid).Str("ip", d.ip).Msg("SNMP get failed")

		value, ok = "", false
	}

	d.scalars[oid] = scalarResult{value: value, ok: ok}

	return value, ok
}

// Walk fetches a subtree through the memoizing cache. The returned map is
// shared between callers and must not be mutated.
func (d *Device) Walk(oid string) map[string]string {
	if oid == "" {
		return nil
	}

	if cached, hit := d.subtrees[oid]; hit {
		return cached
	}

	subtree, err := d.transport.Walk(oid)
	if err != nil {
		d.log.Debug().Err(err).Str("oid", oid).Str("ip", d.ip).Msg("SNMP walk failed")

		subtree = nil
	}

	d.subtrees[oid] = subtree

	return subtree
}

func (d *Device) Type() string         { return d.deviceType }
func (d *Device) Manufacturer() string { return d.manufacturer }
func (d *Device) Model() string        { return d.model }
func (d *Device) Serial() string       { return d.serial }
func (d *Device) Firmware() string     { return d.firmware }
func (d *Device) FirmwareDate() string { return d.firmwareDate }
func (d *Device) MAC() string          { return d.mac }
func (d *Device) Hostname() string     { return d.hostname }

// SetType records the device type unless already set.
func (d *Device) SetType(v string) { setIfUnset(&d.deviceType, v) }

// SetManufacturer records the manufacturer unless already set.
func (d *Device) SetManufacturer(v string) { setIfUnset(&d.manufacturer, v) }

// SetModel records the model unless already set.
func (d *Device) SetModel(v string) { setIfUnset(&d.model, v) }

// SetSerial records the serial unless already set.
func (d *Device) SetSerial(v string) { setIfUnset(&d.serial, CanonicalSerial(v)) }

// SetFirmware records the main firmware version unless already set.
func (d *Device) SetFirmware(v string) { setIfUnset(&d.firmware, v) }

// SetFirmwareDate records the main firmware release date unless already set.
func (d *Device) SetFirmwareDate(v string) { setIfUnset(&d.firmwareDate, v) }

// SetMAC records the base MAC unless already set.
func (d *Device) SetMAC(v string) { setIfUnset(&d.mac, CanonicalMacAddress(v)) }

// SetHostname records the SNMP hostname unless already set.
func (d *Device) SetHostname(v string) { setIfUnset(&d.hostname, v) }

// SetLocation records sysLocation unless already set.
func (d *Device) SetLocation(v string) { setIfUnset(&d.location, v) }

// SetContact records sysContact unless already set.
func (d *Device) SetContact(v string) { setIfUnset(&d.contact, v) }

// SetUptime records sysUpTime unless already set.
func (d *Device) SetUptime(v string) { setIfUnset(&d.uptime, v) }

// ForceManufacturer overrides the manufacturer regardless of prior value.
// Reserved for identification rules that correct a bogus agent answer, such
// as the model-first-word rules.
func (d *Device) ForceManufacturer(v string) {
	if v != "" {
		d.manufacturer = v
	}
}

func setIfUnset(field *string, v string) {
	if *field != "" || v == "" {
		return
	}

	*field = v
}

// AddFirmware appends one firmware entry. Entries with an empty version and
// name are dropped.
func (d *Device) AddFirmware(fw models.Firmware) {
	if fw.Name == "" && fw.Version == "" {
		return
	}

	d.firmwares = append(d.firmwares, fw)
}

// AddPort appends one port entry.
func (d *Device) AddPort(p models.Port) {
	d.ports = append(d.ports, p)
}

// SetCartridge records one cartridge level field.
func (d *Device) SetCartridge(name, value string) {
	if name == "" {
		return
	}

	d.cartridges[name] = value
}

// SetPageCounter records one page counter field.
func (d *Device) SetPageCounter(name, value string) {
	if name == "" {
		return
	}

	d.pageCounters[name] = value
}

// SetInfo records one free-form info field.
func (d *Device) SetInfo(key, value string) {
	if key == "" {
		return
	}

	d.info[key] = value
}

// Export serializes the record into the inventory payload delivered in
// result batches.
func (d *Device) Export() models.ResolvedDevice {
	out := models.ResolvedDevice{
		ID:           d.id,
		IP:           d.ip,
		Type:         d.deviceType,
		Manufacturer: d.manufacturer,
		Model:        d.model,
		Serial:       d.serial,
		Firmware:     d.firmware,
		MAC:          d.mac,
		Hostname:     d.hostname,
		Location:     d.location,
		Contact:      d.contact,
		Uptime:       d.uptime,
		Firmwares:    append([]models.Firmware(nil), d.firmwares...),
		Ports:        append([]models.Port(nil), d.ports...),
	}

	// The scalar FIRMWARE field has no release date slot, so a dated main
	// firmware is also listed as a device entry.
	if d.firmwareDate != "" {
		out.Firmwares = append([]models.Firmware{{
			Name:         d.model,
			Description:  "device firmware",
			Type:         "device",
			Version:      d.firmware,
			Manufacturer: d.manufacturer,
			Date:         d.firmwareDate,
		}}, out.Firmwares...)
	}

	if len(d.cartridges) > 0 {
		out.Cartridges = copyMap(d.cartridges)
	}

	if len(d.pageCounters) > 0 {
		out.PageCounters = copyMap(d.pageCounters)
	}

	if len(d.info) > 0 {
		out.Info = copyMap(d.info)
	}

	return out
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))

	for k, v := range in {
		out[k] = v
	}

	return out
}
