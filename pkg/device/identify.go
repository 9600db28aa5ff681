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

package device

import (
	"sort"
	"strconv"
	"strings"

	"github.com/fleetscout/fleetscout/pkg/models"
)

// Standard identification OIDs used when no vendor handler answered.
const (
	oidSysUpTime   = ".1.3.6.1.2.1.1.3.0"
	oidSysContact  = ".1.3.6.1.2.1.1.4.0"
	oidSysName     = ".1.3.6.1.2.1.1.5.0"
	oidSysLocation = ".1.3.6.1.2.1.1.6.0"

	// PRINTER-PORT-MONITOR-MIB alternate hostname.
	oidPpmPrinterName = ".1.3.6.1.4.1.2699.1.2.1.2.1.1.2.1"

	// Printer-MIB.
	oidPrtSerialNumber    = ".1.3.6.1.2.1.43.5.1.1.17.1"
	oidPrtCurrentOperator = ".1.3.6.1.2.1.43.8.2.1.14.1.1"

	// Cisco chassis serial.
	oidCiscoChassisSerial = ".1.3.6.1.4.1.9.3.6.3.0"

	// ENTITY-MIB entPhysicalTable columns.
	oidEntPhysicalSerialNum = ".1.3.6.1.2.1.47.1.1.1.1.11"
	oidEntPhysicalModelName = ".1.3.6.1.2.1.47.1.1.1.1.13"

	// HOST-RESOURCES-MIB first device description, the usual printer model.
	oidHrDeviceDescr = ".1.3.6.1.2.1.25.3.2.1.3.1"

	// UPS-MIB model.
	oidUpsIdentModel = ".1.3.6.1.2.1.33.1.1.5.0"
)

// Manufacturer corrections keyed by the lower-cased first word of the model.
var modelFirstWordManufacturer = map[string]string{
	"dell": "Dell",
}

// CollectBaseInfo fills hostname, location, contact and uptime from the
// standard system group. Fields already set by a handler are kept.
func (d *Device) CollectBaseInfo() {
	if v, ok := d.Get(oidSysName); ok && CanonicalString(v) != "" {
		d.SetHostname(CanonicalString(v))
	} else if v, ok := d.Get(oidPpmPrinterName); ok {
		d.SetHostname(CanonicalString(v))
	}

	if v, ok := d.Get(oidSysLocation); ok {
		d.SetLocation(CanonicalString(v))
	}

	if v, ok := d.Get(oidSysContact); ok {
		d.SetContact(CanonicalString(v))
	}

	if v, ok := d.Get(oidSysUpTime); ok {
		d.SetUptime(v)
	}
}

// ResolveSerialFallback tries type-specific serial OIDs, then the first
// ENTITY-MIB physical serial, when no handler provided a serial.
func (d *Device) ResolveSerialFallback() {
	if d.serial != "" {
		return
	}

	switch d.deviceType {
	case models.TypePrinter:
		if v, ok := d.Get(oidPrtSerialNumber); ok {
			d.SetSerial(v)
		}
	case models.TypeNetworking:
		if v, ok := d.Get(oidCiscoChassisSerial); ok {
			d.SetSerial(v)
		}
	}

	if d.serial == "" {
		d.SetSerial(d.firstWalkValue(oidEntPhysicalSerialNum))
	}
}

// ResolveModelFallback tries type-specific model OIDs, then ENTITY-MIB, and
// applies the manufacturer identification rules, when no handler provided
// the fields.
func (d *Device) ResolveModelFallback() {
	if d.model == "" {
		switch d.deviceType {
		case models.TypePrinter:
			if v, ok := d.Get(oidHrDeviceDescr); ok {
				d.SetModel(CanonicalString(v))
			}
		case models.TypePower:
			if v, ok := d.Get(oidUpsIdentModel); ok {
				d.SetModel(CanonicalString(v))
			}
		}
	}

	if d.model == "" {
		d.SetModel(CanonicalString(d.firstWalkValue(oidEntPhysicalModelName)))
	}

	if d.manufacturer == "" {
		if v, ok := d.Get(oidPrtCurrentOperator); ok {
			d.SetManufacturer(CanonicalString(v))
		}
	}

	// Some agents report a model whose first word is the real vendor while
	// the manufacturer objects answer nonsense.
	if fields := strings.Fields(d.model); len(fields) > 0 {
		first := strings.ToLower(fields[0])
		if manufacturer, ok := modelFirstWordManufacturer[first]; ok {
			d.ForceManufacturer(manufacturer)
		}
	}
}

// firstWalkValue returns the value at the lowest index of the subtree under
// oid, or the empty string when the subtree is absent.
func (d *Device) firstWalkValue(oid string) string {
	subtree := d.Walk(oid)
	if len(subtree) == 0 {
		return ""
	}

	indexes := make([]string, 0, len(subtree))
	for index := range subtree {
		indexes = append(indexes, index)
	}

	sort.Slice(indexes, func(i, j int) bool {
		return CompareOIDIndex(indexes[i], indexes[j]) < 0
	})

	for _, index := range indexes {
		if v := subtree[index]; v != "" {
			return v
		}
	}

	return ""
}

// CompareOIDIndex orders dotted numeric indexes component by component so
// "2" sorts before "10".
func CompareOIDIndex(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])

		if aerr != nil || berr != nil {
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}

			continue
		}

		if an != bn {
			return an - bn
		}
	}

	return len(as) - len(bs)
}
