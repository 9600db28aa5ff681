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

// UPS-MIB (RFC 1628). Matched through the sysORTable because UPS vendors
// report their own enterprise arc as sysObjectID while still implementing
// the standard ident group.
const (
	oidUPSMIB                = ".1.3.6.1.2.1.33"
	oidUPSIdentManufacturer  = oidUPSMIB + ".1.1.1.0"
	oidUPSIdentModelScalar   = oidUPSMIB + ".1.1.2.0"
	oidUPSIdentSoftwareVer   = oidUPSMIB + ".1.1.3.0"
	oidUPSIdentAgentSoftware = oidUPSMIB + ".1.1.4.0"
	oidUPSIdentName          = oidUPSMIB + ".1.1.5.0"

	// PowerNet-MIB (APC), still common on Eaton-managed cards.
	oidAPC               = ".1.3.6.1.4.1.318"
	oidAPCAdvIdentSerial = oidAPC + ".1.1.1.1.2.3.0"
)

func init() {
	mibsupport.Register(mibsupport.Descriptor{
		Name:     "standard-ups",
		SysORID:  oidUPSMIB,
		Priority: 1,
		New:      newStandardUPS,
	})
}

// standardUPS covers any power device implementing the standard UPS-MIB
// ident group (Eaton, APC, Riello).
type standardUPS struct {
	mibsupport.Base
}

func newStandardUPS(dev *device.Device) mibsupport.Handler {
	return &standardUPS{Base: mibsupport.Base{Dev: dev}}
}

func (*standardUPS) Type() string { return models.TypePower }

func (u *standardUPS) Manufacturer() string {
	return u.Get(oidUPSIdentManufacturer)
}

func (u *standardUPS) Model() string {
	return u.Get(oidUPSIdentModelScalar)
}

func (u *standardUPS) Serial() string {
	return u.Get(oidAPCAdvIdentSerial)
}

func (u *standardUPS) Firmware() string {
	return u.Get(oidUPSIdentSoftwareVer)
}

func (u *standardUPS) Hostname() string {
	return u.Get(oidUPSIdentName)
}

// Run records the management card agent firmware separately from the UPS
// firmware itself.
func (u *standardUPS) Run() {
	version := u.Get(oidUPSIdentAgentSoftware)
	if version == "" {
		return
	}

	u.Dev.AddFirmware(models.Firmware{
		Name:         "UPS agent software",
		Type:         "agent",
		Version:      version,
		Manufacturer: u.Manufacturer(),
	})
}
