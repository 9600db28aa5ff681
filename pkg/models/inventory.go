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

package models

import "time"

// Well-known device types assigned by handlers.
const (
	TypeNetworking = "NETWORKING"
	TypePrinter    = "PRINTER"
	TypeStorage    = "STORAGE"
	TypePower      = "POWER"
)

// Firmware is one firmware or software component discovered on a device.
type Firmware struct {
	Name         string `json:"NAME"`
	Description  string `json:"DESCRIPTION,omitempty"`
	Type         string `json:"TYPE,omitempty"`
	Version      string `json:"VERSION"`
	Manufacturer string `json:"MANUFACTURER,omitempty"`
	Date         string `json:"DATE,omitempty"`
}

// Port is one network port entry handlers may append to a device.
type Port struct {
	IfNumber int    `json:"IFNUMBER"`
	IfName   string `json:"IFNAME,omitempty"`
	IfDescr  string `json:"IFDESCR,omitempty"`
	IfType   string `json:"IFTYPE,omitempty"`
	MAC      string `json:"MAC,omitempty"`
	IP       string `json:"IP,omitempty"`
	Status   string `json:"STATUS,omitempty"`
}

// ResolvedDevice is the inventory record produced for one successfully
// scanned device.
type ResolvedDevice struct {
	ID           string `json:"ID,omitempty"`
	IP           string `json:"IP"`
	Type         string `json:"TYPE,omitempty"`
	Manufacturer string `json:"MANUFACTURER,omitempty"`
	Model        string `json:"MODEL,omitempty"`
	Serial       string `json:"SERIAL,omitempty"`
	Firmware     string `json:"FIRMWARE,omitempty"`
	MAC          string `json:"MAC,omitempty"`
	Hostname     string `json:"SNMPHOSTNAME,omitempty"`
	Location     string `json:"LOCATION,omitempty"`
	Contact      string `json:"CONTACT,omitempty"`
	Uptime       string `json:"UPTIME,omitempty"`

	Firmwares    []Firmware        `json:"FIRMWARES,omitempty"`
	Ports        []Port            `json:"PORTS,omitempty"`
	Cartridges   map[string]string `json:"CARTRIDGES,omitempty"`
	PageCounters map[string]string `json:"PAGECOUNTERS,omitempty"`
	Info         map[string]string `json:"INFO,omitempty"`
}

// Result message kinds produced toward the result collaborator.
const (
	MessageStart = "START"
	MessageBatch = "DEVICES"
	MessageStop  = "STOP"
)

// ResultMessage is one message of the batch stream: a start marker, a batch
// of resolved devices, or a stop marker.
type ResultMessage struct {
	MessageID string           `json:"MESSAGE_ID"`
	Kind      string           `json:"KIND"`
	PID       int64            `json:"PID"`
	Timestamp time.Time        `json:"TIMESTAMP"`
	Devices   []ResolvedDevice `json:"DEVICES,omitempty"`
}
