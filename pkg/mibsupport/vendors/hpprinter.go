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

// HP-LASERJET-COMMON-MIB / JETDIRECT3-MIB
const (
	oidHPPeripheral = ".1.3.6.1.4.1.11.2.3.9"
	oidHPNetPrinter = oidHPPeripheral + ".1"
	oidHPDevice     = oidHPPeripheral + ".4.2.1"

	oidHPGdStatusID = oidHPNetPrinter + ".1.7.0"

	oidHPSystemID      = oidHPDevice + ".1.3"
	oidHPModelName     = oidHPSystemID + ".2.0"
	oidHPSerialNumber  = oidHPSystemID + ".3.0"
	oidHPFwRomDatecode = oidHPSystemID + ".5.0"
	oidHPFwRom         = oidHPSystemID + ".6.0"

	oidHPPrintEngine     = oidHPDevice + ".4.1.2"
	oidHPTotalPageCount  = oidHPPrintEngine + ".5.0"
	oidHPColorPageCount  = oidHPPrintEngine + ".7.0"
	oidHPDuplexPageCount = oidHPPrintEngine + ".22.0"
)

var hpPageCounters = map[string]string{
	"TOTAL":  oidHPTotalPageCount,
	"COLOR":  oidHPColorPageCount,
	"DUPLEX": oidHPDuplexPageCount,
}

func init() {
	mibsupport.Register(mibsupport.Descriptor{
		Name:        "hp-peripheral",
		SysObjectID: mibsupport.OIDPattern(oidHPPeripheral),
		Priority:    9,
		New:         newHPPrinter,
	})
	// Some JetDirect cards answer the gdStatusId probe but report a
	// sysObjectID outside the hp enterprise arc.
	mibsupport.Register(mibsupport.Descriptor{
		Name:       "hp-peripheral-oid",
		PrivateOID: oidHPGdStatusID,
		Priority:   9,
		New:        newHPPrinter,
	})
}

type hpPrinter struct {
	mibsupport.Base
}

func newHPPrinter(dev *device.Device) mibsupport.Handler {
	return &hpPrinter{Base: mibsupport.Base{Dev: dev}}
}

func (*hpPrinter) Type() string { return models.TypePrinter }

func (h *hpPrinter) Manufacturer() string {
	if h.Dev.Manufacturer() != "" {
		return ""
	}

	return "Hewlett-Packard"
}

func (h *hpPrinter) Model() string {
	return h.Get(oidHPModelName)
}

func (h *hpPrinter) Serial() string {
	return h.Get(oidHPSerialNumber)
}

func (h *hpPrinter) Firmware() string {
	return h.Get(oidHPFwRom)
}

func (h *hpPrinter) FirmwareDate() string {
	return h.Get(oidHPFwRomDatecode)
}

// Run copies the print-engine page counters onto the device record.
func (h *hpPrinter) Run() {
	for name, oid := range hpPageCounters {
		if v := h.Get(oid); v != "" {
			h.Dev.SetPageCounter(name, v)
		}
	}
}
