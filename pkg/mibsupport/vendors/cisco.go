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

package vendors

import (
	"regexp"
	"sort"

	"github.com/fleetscout/fleetscout/pkg/device"
	"github.com/fleetscout/fleetscout/pkg/mibsupport"
	"github.com/fleetscout/fleetscout/pkg/models"
)

const (
	oidCisco         = ".1.3.6.1.4.1.9"
	oidCiscoHostName = oidCisco + ".2.1.3.0"

	// ENTITY-MIB
	oidCiscoEntModelName = ".1.3.6.1.2.1.47.1.1.1.1.13"

	oidSysDescrScalar = ".1.3.6.1.2.1.1.1.0"
)

// "... IOS Software, Version 15.2(4)M7 ..." in sysDescr.
var ciscoIOSVersionRe = regexp.MustCompile(`Version ([^ ,]+)`)

func init() {
	mibsupport.Register(mibsupport.Descriptor{
		Name:        "cisco",
		SysObjectID: mibsupport.OIDPattern(oidCisco),
		Priority:    5,
		New:         newCisco,
	})
}

type cisco struct {
	mibsupport.Base
}

func newCisco(dev *device.Device) mibsupport.Handler {
	return &cisco{Base: mibsupport.Base{Dev: dev}}
}

func (*cisco) Type() string         { return models.TypeNetworking }
func (*cisco) Manufacturer() string { return "Cisco" }

// Model reads the first populated entPhysicalModelName entry, in ascending
// entity index order.
func (c *cisco) Model() string {
	table := c.Walk(oidCiscoEntModelName)
	if len(table) == 0 {
		return ""
	}

	indexes := make([]string, 0, len(table))
	for index := range table {
		indexes = append(indexes, index)
	}

	sort.Slice(indexes, func(i, j int) bool {
		return device.CompareOIDIndex(indexes[i], indexes[j]) < 0
	})

	for _, index := range indexes {
		if v := device.CanonicalString(table[index]); v != "" {
			return v
		}
	}

	return ""
}

func (c *cisco) Firmware() string {
	descr, ok := c.GetRaw(oidSysDescrScalar)
	if !ok {
		return ""
	}

	m := ciscoIOSVersionRe.FindStringSubmatch(descr)
	if m == nil {
		return ""
	}

	return m[1]
}

func (c *cisco) Hostname() string {
	return c.Get(oidCiscoHostName)
}
