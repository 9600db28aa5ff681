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
	"testing"

	"github.com/fleetscout/fleetscout/pkg/device"
	"github.com/fleetscout/fleetscout/pkg/logger"
	"github.com/fleetscout/fleetscout/pkg/mibsupport"
	"github.com/fleetscout/fleetscout/pkg/models"
	"github.com/fleetscout/fleetscout/pkg/snmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVendorDevice(mock *snmp.Mock) *device.Device {
	return device.New(mock, logger.NewTestLogger(), "", "192.0.2.30")
}

func TestRegistryHoldsBuiltinHandlers(t *testing.T) {
	table, err := mibsupport.Load(logger.NewTestLogger())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, table.Len(), 7)
}

func TestZebra(t *testing.T) {
	mock := snmp.NewMock()
	mock.Scalars[oidZbrGeneralModelScalar] = "ZT411"
	mock.Scalars[oidZbrGeneralUniqueID] = "ZBR4578291"
	mock.Scalars[oidZbrGeneralFirmware] = "V75.20.01Z"
	mock.Scalars[oidZbrGeneralLinkOS] = "6.8"

	dev := newVendorDevice(mock)
	h := newZebra(dev)

	assert.Equal(t, models.TypePrinter, h.Type())
	assert.Equal(t, "Zebra Technologies", h.Manufacturer())
	assert.Equal(t, "ZT411", h.Model())
	assert.Equal(t, "ZBR4578291", h.Serial())
	assert.Equal(t, "V75.20.01Z", h.Firmware())

	h.Run()

	out := dev.Export()
	require.Len(t, out.Firmwares, 1)
	assert.Equal(t, "Zebra Technologies LinkOS", out.Firmwares[0].Name)
	assert.Equal(t, "6.8", out.Firmwares[0].Version)
}

func TestZebraModelFallsBackToESI(t *testing.T) {
	mock := snmp.NewMock()
	mock.Scalars[oidESIModel] = "ZM400"

	h := newZebra(newVendorDevice(mock))

	assert.Equal(t, "ZM400", h.Model())
}

func TestHPPrinter(t *testing.T) {
	mock := snmp.NewMock()
	mock.Scalars[oidHPModelName] = "HP LaserJet Pro M404dn"
	mock.Scalars[oidHPSerialNumber] = "ABCD123456"
	mock.Scalars[oidHPFwRom] = "002.2208A"
	mock.Scalars[oidHPFwRomDatecode] = "20220815"
	mock.Scalars[oidHPTotalPageCount] = "12345"
	mock.Scalars[oidHPDuplexPageCount] = "2345"

	dev := newVendorDevice(mock)
	h := newHPPrinter(dev)

	assert.Equal(t, models.TypePrinter, h.Type())
	assert.Equal(t, "Hewlett-Packard", h.Manufacturer())
	assert.Equal(t, "HP LaserJet Pro M404dn", h.Model())
	assert.Equal(t, "ABCD123456", h.Serial())
	assert.Equal(t, "002.2208A", h.Firmware())
	assert.Equal(t, "20220815", h.FirmwareDate())

	h.Run()

	out := dev.Export()
	assert.Equal(t, "12345", out.PageCounters["TOTAL"])
	assert.Equal(t, "2345", out.PageCounters["DUPLEX"])
	assert.NotContains(t, out.PageCounters, "COLOR")
}

func TestHPPrinterYieldsManufacturerWhenAlreadySet(t *testing.T) {
	dev := newVendorDevice(snmp.NewMock())
	dev.SetManufacturer("Canon")

	h := newHPPrinter(dev)

	assert.Empty(t, h.Manufacturer())
}

func TestCisco(t *testing.T) {
	mock := snmp.NewMock()
	mock.Scalars[oidSysDescrScalar] = "Cisco IOS Software, C2960 Software, Version 15.2(4)M7, RELEASE"
	mock.Scalars[oidCiscoHostName] = "core-sw-01"
	mock.Subtrees[oidCiscoEntModelName] = map[string]string{
		"1001": "WS-C2960X-48TS-L",
		"2":    "",
		"3":    "Module XYZ",
	}

	h := newCisco(newVendorDevice(mock))

	assert.Equal(t, models.TypeNetworking, h.Type())
	assert.Equal(t, "Cisco", h.Manufacturer())
	assert.Equal(t, "Module XYZ", h.Model(), "lowest populated entity index wins")
	assert.Equal(t, "15.2(4)M7", h.Firmware())
	assert.Equal(t, "core-sw-01", h.Hostname())
}

func TestStandardUPS(t *testing.T) {
	mock := snmp.NewMock()
	mock.Scalars[oidUPSIdentManufacturer] = "Eaton"
	mock.Scalars[oidUPSIdentModelScalar] = "5PX 2200"
	mock.Scalars[oidUPSIdentSoftwareVer] = "02.08.0010"
	mock.Scalars[oidUPSIdentAgentSoftware] = "1.7.5"

	dev := newVendorDevice(mock)
	h := newStandardUPS(dev)

	assert.Equal(t, models.TypePower, h.Type())
	assert.Equal(t, "Eaton", h.Manufacturer())
	assert.Equal(t, "5PX 2200", h.Model())
	assert.Equal(t, "02.08.0010", h.Firmware())

	h.Run()

	out := dev.Export()
	require.Len(t, out.Firmwares, 1)
	assert.Equal(t, "UPS agent software", out.Firmwares[0].Name)
	assert.Equal(t, "1.7.5", out.Firmwares[0].Version)
}

func TestSynology(t *testing.T) {
	mock := snmp.NewMock()
	mock.Scalars[oidDSMInfoModel] = "DS920+"
	mock.Scalars[oidDSMInfoSerial] = "2030TDR9XW"
	mock.Scalars[oidDSMVersion] = "DSM 7.2-64570"
	mock.Subtrees[oidSynoDiskID] = map[string]string{
		"0": "Disk 1",
		"1": "Disk 2",
	}
	mock.Subtrees[oidSynoDiskModel] = map[string]string{
		"0": "WD40EFRX",
	}

	dev := newVendorDevice(mock)
	h := newSynology(dev)

	assert.Equal(t, models.TypeStorage, h.Type())
	assert.Equal(t, "Synology", h.Manufacturer())
	assert.Equal(t, "DS920+", h.Model())
	assert.Equal(t, "2030TDR9XW", h.Serial())
	assert.Equal(t, "DSM 7.2-64570", h.Firmware())

	h.Run()

	out := dev.Export()
	assert.Equal(t, "DSM 7.2-64570", out.Info["DSM_VERSION"])
	assert.Equal(t, "Disk 1 (WD40EFRX)", out.Info["DISK_0"])
	assert.Equal(t, "Disk 2", out.Info["DISK_1"])
}

func TestSophos(t *testing.T) {
	mock := snmp.NewMock()
	mock.Scalars[oidSFOSDeviceName] = "XG230-SN7781"
	mock.Scalars[oidSFOSDeviceType] = "XG230"
	mock.Scalars[oidSFOSDeviceFWVersion] = "SFOS 19.5.1"
	mock.Scalars[oidSFOSIPSVersion] = "4.14.21"

	dev := newVendorDevice(mock)
	h := newSophos(dev)

	assert.Equal(t, models.TypeNetworking, h.Type())
	assert.Equal(t, "XG230", h.Model())
	assert.Equal(t, "XG230-SN7781", h.Serial())
	assert.Equal(t, "SFOS 19.5.1", h.Firmware())

	h.Run()

	out := dev.Export()
	require.Len(t, out.Firmwares, 1)
	assert.Equal(t, "Sophos snort IPS", out.Firmwares[0].Name)
}

func TestMatchThroughRegistry(t *testing.T) {
	table, err := mibsupport.Load(logger.NewTestLogger())
	require.NoError(t, err)

	mock := snmp.NewMock()
	mock.Scalars[oidZbrGeneralModelScalar] = "ZT411"

	support := table.Match(oidESI+".6", newVendorDevice(mock))

	require.Equal(t, 1, support.Len())
	assert.Equal(t, []string{"zebra-printer"}, support.Names())
	assert.Equal(t, models.TypePrinter, support.Resolve(mibsupport.CapType))
	assert.Equal(t, "ZT411", support.Resolve(mibsupport.CapModel))
}
