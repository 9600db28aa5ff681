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
	"github.com/fleetscout/fleetscout/pkg/device"
	"github.com/fleetscout/fleetscout/pkg/mibsupport"
	"github.com/fleetscout/fleetscout/pkg/models"
)

// SFOS-FIREWALL-MIB
const (
	oidSophos                = ".1.3.6.1.4.1.2604"
	oidSFOSXG                = oidSophos + ".5"
	oidSFOSDeviceInfo        = oidSFOSXG + ".1.1"
	oidSFOSDeviceName        = oidSFOSDeviceInfo + ".1.0"
	oidSFOSDeviceType        = oidSFOSDeviceInfo + ".2.0"
	oidSFOSDeviceFWVersion   = oidSFOSDeviceInfo + ".3.0"
	oidSFOSWebcatVersion     = oidSFOSDeviceInfo + ".5.0"
	oidSFOSIPSVersion        = oidSFOSDeviceInfo + ".6.0"
	sophosFirewallDeviceName = "Sophos"
)

func init() {
	mibsupport.Register(mibsupport.Descriptor{
		Name:        "sophos",
		SysObjectID: mibsupport.OIDPattern(oidSFOSXG),
		Priority:    4,
		New:         newSophos,
	})
}

// sophos covers XG firewall appliances.
type sophos struct {
	mibsupport.Base
}

func newSophos(dev *device.Device) mibsupport.Handler {
	return &sophos{Base: mibsupport.Base{Dev: dev}}
}

func (*sophos) Type() string         { return models.TypeNetworking }
func (*sophos) Manufacturer() string { return sophosFirewallDeviceName }

func (s *sophos) Model() string {
	return s.Get(oidSFOSDeviceType)
}

// Serial reads the device name scalar, the only stable identifier the
// firewall exposes over SNMP.
func (s *sophos) Serial() string {
	return s.Get(oidSFOSDeviceName)
}

func (s *sophos) Firmware() string {
	return s.Get(oidSFOSDeviceFWVersion)
}

// Run records the integrated webcat and IPS component versions.
func (s *sophos) Run() {
	if v := s.Get(oidSFOSWebcatVersion); v != "" {
		s.Dev.AddFirmware(models.Firmware{
			Name:         "Sophos webcat",
			Type:         "component",
			Version:      v,
			Manufacturer: sophosFirewallDeviceName,
		})
	}

	if v := s.Get(oidSFOSIPSVersion); v != "" {
		s.Dev.AddFirmware(models.Firmware{
			Name:         "Sophos snort IPS",
			Type:         "component",
			Version:      v,
			Manufacturer: sophosFirewallDeviceName,
		})
	}
}
