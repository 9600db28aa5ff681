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

package mibsupport

import "github.com/fleetscout/fleetscout/pkg/logger"

// Support is the set of handlers matched to one device, held in ascending
// priority order. It answers identification capabilities with the first
// handler that has one, and runs every handler's enrichment step.
type Support struct {
	log      logger.Logger
	handlers []matchedHandler
}

// Len returns the number of matched handlers.
func (s *Support) Len() int { return len(s.handlers) }

// Names lists the matched handler names in dispatch order.
func (s *Support) Names() []string {
	names := make([]string, len(s.handlers))
	for i, m := range s.handlers {
		names[i] = m.name
	}

	return names
}

// Resolve asks each handler, in priority order, for the named capability and
// returns the first non-empty answer. A handler that panics is logged and
// contributes nothing; the empty string means no handler had an answer.
func (s *Support) Resolve(cap Capability) string {
	for _, m := range s.handlers {
		if value := s.invoke(m, cap); value != "" {
			return value
		}
	}

	return ""
}

// RunAll invokes every matched handler's Run step exactly once, in priority
// order, regardless of what Resolve returned for any capability. Run exists
// purely for side effects on the device record; handler failures are
// isolated and never abort the remaining handlers.
func (s *Support) RunAll() {
	for _, m := range s.handlers {
		s.run(m)
	}
}

func (s *Support) invoke(m matchedHandler, cap Capability) (value string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn().Str("handler", m.name).Str("capability", string(cap)).
				Interface("panic", r).Msg("handler capability failed, skipping")

			value = ""
		}
	}()

	switch cap {
	case CapType:
		return m.handler.Type()
	case CapManufacturer:
		return m.handler.Manufacturer()
	case CapModel:
		return m.handler.Model()
	case CapSerial:
		return m.handler.Serial()
	case CapFirmware:
		return m.handler.Firmware()
	case CapFirmwareDate:
		return m.handler.FirmwareDate()
	case CapMACAddress:
		return m.handler.MACAddress()
	case CapHostname:
		return m.handler.Hostname()
	default:
		if ext, ok := m.handler.(Extension); ok {
			return ext.Capability(cap)
		}

		return ""
	}
}

func (s *Support) run(m matchedHandler) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn().Str("handler", m.name).
				Interface("panic", r).Msg("handler run failed, skipping")
		}
	}()

	m.handler.Run()
}
