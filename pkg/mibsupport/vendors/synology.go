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
	"sort"

	"github.com/fleetscout/fleetscout/pkg/device"
	"github.com/fleetscout/fleetscout/pkg/mibsupport"
	"github.com/fleetscout/fleetscout/pkg/models"
)

// SYNOLOGY-SYSTEM-MIB and SYNOLOGY-DISK-MIB. Synology NAS units answer
// with the net-snmp sysObjectID, so the DSM info group presence is the
// discriminating probe.
const (
	oidSynology      = ".1.3.6.1.4.1.6574"
	oidDSMInfoModel  = oidSynology + ".1.5.1.0"
	oidDSMInfoSerial = oidSynology + ".1.5.2.0"
	oidDSMVersion    = oidSynology + ".1.5.3.0"

	oidSynoDiskEntry = oidSynology + ".2.1.1"
	oidSynoDiskID    = oidSynoDiskEntry + ".2"
	oidSynoDiskModel = oidSynoDiskEntry + ".3"
)

func init() {
	mibsupport.Register(mibsupport.Descriptor{
		Name:       "synology",
		PrivateOID: oidDSMInfoModel,
		Priority:   2,
		New:        newSynology,
	})
}

type synology struct {
	mibsupport.Base
}

func newSynology(dev *device.Device) mibsupport.Handler {
	return &synology{Base: mibsupport.Base{Dev: dev}}
}

func (*synology) Type() string         { return models.TypeStorage }
func (*synology) Manufacturer() string { return "Synology" }

func (s *synology) Model() string {
	return s.Get(oidDSMInfoModel)
}

func (s *synology) Serial() string {
	return s.Get(oidDSMInfoSerial)
}

func (s *synology) Firmware() string {
	return s.Get(oidDSMVersion)
}

// Run lists the installed disks as INFO entries, keyed DISK_<index>.
func (s *synology) Run() {
	if v := s.Get(oidDSMVersion); v != "" {
		s.Dev.SetInfo("DSM_VERSION", v)
	}

	ids := s.Walk(oidSynoDiskID)
	if len(ids) == 0 {
		return
	}

	modelTable := s.Walk(oidSynoDiskModel)

	indexes := make([]string, 0, len(ids))
	for index := range ids {
		indexes = append(indexes, index)
	}

	sort.Slice(indexes, func(i, j int) bool {
		return device.CompareOIDIndex(indexes[i], indexes[j]) < 0
	})

	for _, index := range indexes {
		name := device.CanonicalString(ids[index])
		if name == "" {
			continue
		}

		entry := name
		if model := device.CanonicalString(modelTable[index]); model != "" {
			entry += " (" + model + ")"
		}

		s.Dev.SetInfo("DISK_"+index, entry)
	}
}
