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

package snmp

import "sync"

// Mock is a scripted Transport for tests: scalar and subtree responses are
// declared up front, and every call is counted so tests can assert that
// caching above the transport deduplicates round-trips.
type Mock struct {
	mu sync.Mutex

	// Scalars maps OID to the value returned by Get.
	Scalars map[string]string
	// Subtrees maps a root OID to the index-to-value map returned by Walk.
	Subtrees map[string]map[string]string
	// Errs maps an OID to an error injected on Get or Walk.
	Errs map[string]error

	GetCalls  map[string]int
	WalkCalls map[string]int
	Closed    bool
}

// NewMock creates an empty scripted transport.
func NewMock() *Mock {
	return &Mock{
		Scalars:   make(map[string]string),
		Subtrees:  make(map[string]map[string]string),
		Errs:      make(map[string]error),
		GetCalls:  make(map[string]int),
		WalkCalls: make(map[string]int),
	}
}

func (m *Mock) Get(oid string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls[oid]++

	if err := m.Errs[oid]; err != nil {
		return "", false, err
	}

	value, ok := m.Scalars[oid]

	return value, ok, nil
}

func (m *Mock) Walk(oid string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WalkCalls[oid]++

	if err := m.Errs[oid]; err != nil {
		return nil, err
	}

	subtree := m.Subtrees[oid]
	out := make(map[string]string, len(subtree))

	for k, v := range subtree {
		out[k] = v
	}

	return out, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Closed = true

	return nil
}
