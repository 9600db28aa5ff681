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

// Package vendors holds the built-in vendor handlers. Importing the package
// registers every handler with the mibsupport registry.
package vendors

import (
	"github.com/fleetscout/fleetscout/pkg/device"
	"github.com/fleetscout/fleetscout/pkg/mibsupport"
	"github.com/fleetscout/fleetscout/pkg/models"
)

// ESI-MIB
const (
	oidESI         = ".1.3.6.1.4.1.683"
	oidESIModel    = oidESI + ".6.2.3.2.1.15.1"
	oidESISerial   = oidESI + ".1.5.0"
	oidESIFirmware = oidESI + ".1.9.0"
)

// ZEBRA-MIB and ZEBRA-QL-MIB
const (
	oidZebra                  = ".1.3.6.1.4.1.10642"
	oidZbrGeneralModel        = oidZebra + ".1.1"
	oidZbrGeneralModelScalar  = oidZbrGeneralModel + ".0"
	oidZbrGeneralFirmware     = oidZebra + ".1.2.0"
	oidZbrGeneralName         = oidZebra + ".1.4.0"
	oidZbrGeneralUniqueID     = oidZebra + ".1.9.0"
	oidZbrGeneralCompanyName  = oidZebra + ".1.11.0"
	oidZbrGeneralLinkOS       = oidZebra + ".1.18.0"
	oidZebraQL                = oidZebra + ".200"
	oidZebraQLModel           = oidZebraQL + ".19.7.0"
	oidZebraQLSerial          = oidZebraQL + ".19.5.0"
	zebraDefaultManufacturer  = "Zebra Technologies"
	zebraFirmwareLinkOSSuffix = " LinkOS"
)

func init() {
	mibsupport.Register(mibsupport.Descriptor{
		Name:        "zebra-printer",
		SysObjectID: mibsupport.OIDPattern(oidESI),
		Priority:    7,
		New:         newZebra,
	})
	mibsupport.Register(mibsupport.Descriptor{
		Name:        "zebra-printer-zt",
		SysObjectID: mibsupport.OIDPattern(oidZbrGeneralModel),
		Priority:    7,
		New:         newZebra,
	})
}

// zebra covers Zebra label printers, including ZT models exposing the
// ZEBRA-MIB general group.
type zebra struct {
	mibsupport.Base
}

func newZebra(dev *device.Device) mibsupport.Handler {
	return &zebra{Base: mibsupport.Base{Dev: dev}}
}

func (*zebra) Type() string { return models.TypePrinter }

func (z *zebra) Manufacturer() string {
	if v := z.Get(oidZbrGeneralCompanyName); v != "" {
		return v
	}

	return zebraDefaultManufacturer
}

func (z *zebra) Model() string {
	return z.FirstOf(oidZbrGeneralModelScalar, oidESIModel, oidZebraQLModel)
}

func (z *zebra) Serial() string {
	return z.FirstOf(oidZbrGeneralUniqueID, oidZebraQLSerial, oidESISerial)
}

func (z *zebra) Firmware() string {
	return z.FirstOf(oidZbrGeneralFirmware, oidESIFirmware)
}

func (z *zebra) Hostname() string {
	return z.Get(oidZbrGeneralName)
}

// Run records the LinkOS firmware as a separate firmware entry when the
// printer reports one.
func (z *zebra) Run() {
	version := z.Get(oidZbrGeneralLinkOS)
	if version == "" {
		return
	}

	manufacturer := z.Manufacturer()

	z.Dev.AddFirmware(models.Firmware{
		Name:         manufacturer + zebraFirmwareLinkOSSuffix,
		Description:  manufacturer + " LinkOS firmware",
		Type:         "system",
		Version:      version,
		Manufacturer: manufacturer,
	})
}
