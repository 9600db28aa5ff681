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

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/fleetscout/fleetscout/pkg/device"
	"github.com/fleetscout/fleetscout/pkg/logger"
)

// sysORID column of the standard sysORTable: the capability table matched
// by the SysORID rule.
const sysORIDOID = ".1.3.6.1.2.1.1.9.1.2"

var ErrNoHandlers = errors.New("no MIB support handlers registered")

// Descriptor declares one vendor handler: its name, exactly one matching
// rule, its priority (lower runs first, default 0), and its constructor.
type Descriptor struct {
	Name string

	// SysObjectID matches the pattern against the device's sysObjectID.
	SysObjectID *regexp.Regexp
	// PrivateOID matches when the vendor-specific scalar is present.
	PrivateOID string
	// SysORID matches when the OID appears in the device's sysORTable.
	SysORID string

	Priority int
	New      func(dev *device.Device) Handler
}

func (d *Descriptor) ruleCount() int {
	count := 0

	if d.SysObjectID != nil {
		count++
	}

	if d.PrivateOID != "" {
		count++
	}

	if d.SysORID != "" {
		count++
	}

	return count
}

// OIDPattern builds the sysObjectID matching pattern for an enterprise OID
// subtree: the OID itself or anything below it.
func OIDPattern(oid string) *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(strings.TrimSuffix(oid, ".")) + `(\.|$)`)
}

var registry struct {
	mu          sync.Mutex
	descriptors []Descriptor
	table       *Table
}

// Register adds a handler descriptor to the process-wide registry. It is
// meant to be called from vendor package init functions and panics on a
// malformed descriptor, since that is a programming error caught at startup.
func Register(desc Descriptor) {
	if desc.Name == "" {
		panic("mibsupport: Register called with empty descriptor name")
	}

	if desc.New == nil {
		panic(fmt.Sprintf("mibsupport: descriptor %q has no constructor", desc.Name))
	}

	if n := desc.ruleCount(); n != 1 {
		panic(fmt.Sprintf("mibsupport: descriptor %q declares %d matching rules, want exactly 1", desc.Name, n))
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.descriptors = append(registry.descriptors, desc)
	registry.table = nil
}

// Load snapshots the registered descriptors into an immutable table, once
// per process. Zero registered descriptors is a broken installation and is
// reported as a fatal configuration error.
func Load(log logger.Logger) (*Table, error) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if registry.table != nil {
		return registry.table, nil
	}

	if len(registry.descriptors) == 0 {
		return nil, ErrNoHandlers
	}

	table := newTable(log, registry.descriptors)
	registry.table = table

	log.Info().Int("handlers", len(table.descriptors)).Msg("MIB support handlers loaded")

	return table, nil
}

// ResetForTest drops the memoized table and any registered descriptors so a
// test can install its own fixture set.
func ResetForTest() {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.descriptors = nil
	registry.table = nil
}

// Table is the read-only descriptor index shared by all workers.
type Table struct {
	log         logger.Logger
	descriptors []Descriptor
}

// NewTable builds a table from an explicit descriptor set, bypassing the
// process-wide registry. Test fixtures use this.
func NewTable(log logger.Logger, descriptors ...Descriptor) (*Table, error) {
	if len(descriptors) == 0 {
		return nil, ErrNoHandlers
	}

	return newTable(log, descriptors), nil
}

func newTable(log logger.Logger, descriptors []Descriptor) *Table {
	return &Table{
		log:         log,
		descriptors: append([]Descriptor(nil), descriptors...),
	}
}

// Len returns the number of indexed descriptors.
func (t *Table) Len() int { return len(t.descriptors) }

// Match evaluates every descriptor against the device and returns the
// matched handlers instantiated and sorted ascending by priority, ties
// broken by registration order. Each descriptor is matched by at most one
// rule: sysObjectID pattern first, then private OID presence, then sysORID
// membership. Matching never mutates the inventory fields of the record;
// probe round-trips go through the device cache.
func (t *Table) Match(sysObjectID string, dev *device.Device) *Support {
	matched := make([]matchedHandler, 0, 4)

	for i := range t.descriptors {
		desc := &t.descriptors[i]

		switch {
		case desc.SysObjectID != nil:
			if sysObjectID != "" && desc.SysObjectID.MatchString(sysObjectID) {
				t.log.Debug().Str("handler", desc.Name).Str("ip", dev.IP()).
					Msg("sysObjectID match: MIB support enabled")
				matched = append(matched, newMatch(desc, dev))
			}
		case desc.PrivateOID != "":
			if _, ok := dev.Get(desc.PrivateOID); ok {
				t.log.Debug().Str("handler", desc.Name).Str("ip", dev.IP()).
					Msg("private OID match: MIB support enabled")
				matched = append(matched, newMatch(desc, dev))
			}
		case desc.SysORID != "":
			if index, ok := sysORTableContains(dev, desc.SysORID); ok {
				t.log.Debug().Str("handler", desc.Name).Str("ip", dev.IP()).Str("index", index).
					Msg("sysORID match: MIB support enabled")
				matched = append(matched, newMatch(desc, dev))
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].priority < matched[j].priority
	})

	return &Support{log: t.log, handlers: matched}
}

// sysORTableContains scans the device's cached sysORTable in ascending
// index order for the given OID, returning the matching index.
func sysORTableContains(dev *device.Device, oid string) (string, bool) {
	table := dev.Walk(sysORIDOID)
	if len(table) == 0 {
		return "", false
	}

	indexes := make([]string, 0, len(table))
	for index := range table {
		indexes = append(indexes, index)
	}

	sort.Slice(indexes, func(i, j int) bool {
		return device.CompareOIDIndex(indexes[i], indexes[j]) < 0
	})

	for _, index := range indexes {
		if table[index] == oid {
			return index, true
		}
	}

	return "", false
}

type matchedHandler struct {
	name     string
	priority int
	handler  Handler
}

func newMatch(desc *Descriptor, dev *device.Device) matchedHandler {
	return matchedHandler{
		name:     desc.Name,
		priority: desc.Priority,
		handler:  desc.New(dev),
	}
}
