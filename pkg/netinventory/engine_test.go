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

package netinventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/fleetscout/fleetscout/pkg/device"
	"github.com/fleetscout/fleetscout/pkg/logger"
	"github.com/fleetscout/fleetscout/pkg/mibsupport"
	"github.com/fleetscout/fleetscout/pkg/models"
	"github.com/fleetscout/fleetscout/pkg/snmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEnterpriseOID = ".1.3.6.1.4.1.9999"

var errUnreachable = errors.New("no response from target")

// staticHandler answers canned values for the capability set.
type staticHandler struct {
	mibsupport.Base

	manufacturer string
	model        string
	serial       string
	firmware     string
	firmwareDate string
}

func (h *staticHandler) Manufacturer() string { return h.manufacturer }
func (h *staticHandler) Model() string        { return h.model }
func (h *staticHandler) Serial() string       { return h.serial }
func (h *staticHandler) Firmware() string     { return h.firmware }
func (h *staticHandler) FirmwareDate() string { return h.firmwareDate }

func staticDescriptor(name string, priority int, h staticHandler) mibsupport.Descriptor {
	return mibsupport.Descriptor{
		Name:        name,
		SysObjectID: mibsupport.OIDPattern(testEnterpriseOID),
		Priority:    priority,
		New: func(dev *device.Device) mibsupport.Handler {
			bound := h
			bound.Dev = dev

			return &bound
		},
	}
}

func identifiableMock() *snmp.Mock {
	mock := snmp.NewMock()
	mock.Scalars[oidSysObjectID] = testEnterpriseOID + ".1"

	return mock
}

// mockFactory hands out per-target scripted transports.
type mockFactory struct {
	mu         sync.Mutex
	transports map[string]snmp.Transport
	errs       map[string]error
	calls      []string
}

func newMockFactory() *mockFactory {
	return &mockFactory{
		transports: make(map[string]snmp.Transport),
		errs:       make(map[string]error),
	}
}

func (f *mockFactory) factory(cfg snmp.ClientConfig, _ *models.Credential) (snmp.Transport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, cfg.Target)

	if err := f.errs[cfg.Target]; err != nil {
		return nil, err
	}

	transport, ok := f.transports[cfg.Target]
	if !ok {
		return nil, errUnreachable
	}

	return transport, nil
}

func newTestEngine(t *testing.T, factory TransportFactory, descs ...mibsupport.Descriptor) *Engine {
	t.Helper()

	table, err := mibsupport.NewTable(logger.NewTestLogger(), descs...)
	require.NoError(t, err)

	return NewEngine(logger.NewTestLogger(), table, WithTransportFactory(factory))
}

func TestEngineRejectsEmptyJob(t *testing.T) {
	engine := newTestEngine(t, newMockFactory().factory,
		staticDescriptor("acme", 0, staticHandler{}))

	job := newTestJob(models.JobParams{}, nil)
	reporter := NewReporter(logger.NewTestLogger(), &captureSubmitter{}, job)

	err := engine.Run(context.Background(), job, reporter)
	assert.ErrorIs(t, err, ErrNoDevices)
}

func TestEngineEndToEnd(t *testing.T) {
	// Three devices, two workers, one device unreachable: the two healthy
	// devices resolve, the failed one is absent from the output, and the
	// job reaches completion.
	factory := newMockFactory()
	factory.transports["192.0.2.1"] = identifiableMock()
	factory.transports["192.0.2.2"] = identifiableMock()
	factory.errs["192.0.2.3"] = errUnreachable

	engine := newTestEngine(t, factory.factory,
		staticDescriptor("acme", 0, staticHandler{
			manufacturer: "Acme",
			model:        "X-1000",
			serial:       "SN1234",
			firmware:     "4.2.1",
			firmwareDate: "20260110",
		}))

	job := newTestJob(models.JobParams{PID: 7, ThreadsQuery: 2}, nil,
		models.DeviceEntry{IP: "192.0.2.1"},
		models.DeviceEntry{IP: "192.0.2.2"},
		models.DeviceEntry{IP: "192.0.2.3"},
	)

	sub := &captureSubmitter{}
	reporter := NewReporter(logger.NewTestLogger(), sub, job)

	require.NoError(t, engine.Run(context.Background(), job, reporter))

	assert.Zero(t, job.InFlight())
	assert.True(t, job.NoMore())
	assert.Len(t, factory.calls, 3, "every device is dequeued")

	devices := sub.devices()
	require.Len(t, devices, 2)

	ips := []string{devices[0].IP, devices[1].IP}
	sort.Strings(ips)
	assert.Equal(t, []string{"192.0.2.1", "192.0.2.2"}, ips)

	for _, dev := range devices {
		assert.Equal(t, "Acme", dev.Manufacturer)
		assert.Equal(t, "X-1000", dev.Model)
		assert.Equal(t, "SN1234", dev.Serial)
		assert.Equal(t, "4.2.1", dev.Firmware)

		require.Len(t, dev.Firmwares, 1)
		assert.Equal(t, "20260110", dev.Firmwares[0].Date)
	}

	kinds := sub.kinds()
	assert.Equal(t, models.MessageStart, kinds[0])
	assert.Equal(t, models.MessageStop, kinds[len(kinds)-1])
}

func TestEnginePriorityOrderWinsScalarFields(t *testing.T) {
	factory := newMockFactory()
	factory.transports["192.0.2.1"] = identifiableMock()

	engine := newTestEngine(t, factory.factory,
		staticDescriptor("generic", 0, staticHandler{manufacturer: "Generic"}),
		staticDescriptor("acme", 8, staticHandler{manufacturer: "Acme", model: "X-1000"}),
	)

	job := newTestJob(models.JobParams{}, nil, models.DeviceEntry{IP: "192.0.2.1"})
	sub := &captureSubmitter{}

	require.NoError(t, engine.Run(context.Background(), job,
		NewReporter(logger.NewTestLogger(), sub, job)))

	devices := sub.devices()
	require.Len(t, devices, 1)
	assert.Equal(t, "Generic", devices[0].Manufacturer, "priority 0 answers first")
	assert.Equal(t, "X-1000", devices[0].Model, "lower-priority handler fills unanswered fields")
}

// countingTransport tracks how many scans are inside a round-trip at once.
type countingTransport struct {
	*snmp.Mock

	cur *int32
	max *int32
	mu  *sync.Mutex
}

func (c *countingTransport) Get(oid string) (string, bool, error) {
	c.mu.Lock()
	*c.cur++
	if *c.cur > *c.max {
		*c.max = *c.cur
	}
	c.mu.Unlock()

	time.Sleep(2 * time.Millisecond)

	c.mu.Lock()
	*c.cur--
	c.mu.Unlock()

	return c.Mock.Get(oid)
}

func TestEngineWorkerPoolInvariant(t *testing.T) {
	var (
		cur, peak int32
		mu        sync.Mutex
	)

	factory := newMockFactory()

	var entries []models.DeviceEntry

	for i := 1; i <= 8; i++ {
		ip := fmt.Sprintf("192.0.2.%d", i)
		factory.transports[ip] = &countingTransport{
			Mock: identifiableMock(),
			cur:  &cur,
			max:  &peak,
			mu:   &mu,
		}
		entries = append(entries, models.DeviceEntry{IP: ip})
	}

	engine := newTestEngine(t, factory.factory,
		staticDescriptor("acme", 0, staticHandler{manufacturer: "Acme"}))

	job := newTestJob(models.JobParams{ThreadsQuery: 2}, nil, entries...)
	sub := &captureSubmitter{}

	require.NoError(t, engine.Run(context.Background(), job,
		NewReporter(logger.NewTestLogger(), sub, job)))

	assert.LessOrEqual(t, peak, int32(2), "in-flight devices never exceed the worker count")
	assert.Len(t, sub.devices(), 8)
}

// gatedTransport blocks its first Get until released, and signals when the
// scan has started.
type gatedTransport struct {
	*snmp.Mock

	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedTransport) Get(oid string) (string, bool, error) {
	g.once.Do(func() {
		close(g.started)
		<-g.release
	})

	return g.Mock.Get(oid)
}

func TestEngineTimeoutStopsDequeuing(t *testing.T) {
	gate := &gatedTransport{
		Mock:    identifiableMock(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	factory := newMockFactory()
	factory.transports["192.0.2.1"] = gate
	factory.transports["192.0.2.2"] = identifiableMock()
	factory.transports["192.0.2.3"] = identifiableMock()

	engine := newTestEngine(t, factory.factory,
		staticDescriptor("acme", 0, staticHandler{manufacturer: "Acme"}))

	job := newTestJob(models.JobParams{ThreadsQuery: 1}, nil,
		models.DeviceEntry{IP: "192.0.2.1"},
		models.DeviceEntry{IP: "192.0.2.2"},
		models.DeviceEntry{IP: "192.0.2.3"},
	)

	sub := &captureSubmitter{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- engine.Run(ctx, job, NewReporter(logger.NewTestLogger(), sub, job))
	}()

	<-gate.started
	cancel()
	close(gate.release)

	require.NoError(t, <-done)

	// The in-flight device finished and was reported; the queued devices
	// were never dequeued.
	devices := sub.devices()
	require.Len(t, devices, 1)
	assert.Equal(t, "192.0.2.1", devices[0].IP)
	assert.Len(t, factory.calls, 1)

	kinds := sub.kinds()
	assert.Equal(t, models.MessageStop, kinds[len(kinds)-1], "results are flushed after timeout")
}

// deadlineSubmitter refuses submissions once the passed context is gone,
// like a network-backed submitter would.
type deadlineSubmitter struct {
	captureSubmitter
}

func (s *deadlineSubmitter) Submit(ctx context.Context, msg models.ResultMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.captureSubmitter.Submit(ctx, msg)
}

func TestEngineDrainFlushSurvivesTimeout(t *testing.T) {
	// A batch that fills while the pool drains after the job budget expired
	// must still reach a submitter that honours its context.
	gate := &gatedTransport{
		Mock:    identifiableMock(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	factory := newMockFactory()

	var entries []models.DeviceEntry

	for i := 1; i <= batchSize; i++ {
		ip := fmt.Sprintf("192.0.2.%d", i)
		if i == batchSize {
			factory.transports[ip] = gate
		} else {
			factory.transports[ip] = identifiableMock()
		}

		entries = append(entries, models.DeviceEntry{IP: ip})
	}

	engine := newTestEngine(t, factory.factory,
		staticDescriptor("acme", 0, staticHandler{manufacturer: "Acme"}))

	job := newTestJob(models.JobParams{ThreadsQuery: 1}, nil, entries...)
	sub := &deadlineSubmitter{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- engine.Run(ctx, job, NewReporter(logger.NewTestLogger(), sub, job))
	}()

	<-gate.started
	cancel()
	close(gate.release)

	require.NoError(t, <-done)

	// The last device filled the batch after cancellation; every device
	// still reached the submitter.
	assert.Len(t, sub.devices(), batchSize)

	kinds := sub.kinds()
	assert.Equal(t, []string{models.MessageStart, models.MessageBatch, models.MessageStop}, kinds)
}

func TestEngineScanIsIdempotent(t *testing.T) {
	scan := func() []models.ResolvedDevice {
		mock := identifiableMock()
		mock.Scalars[".1.3.6.1.2.1.1.5.0"] = "printer-42"
		mock.Scalars[".1.3.6.1.2.1.43.5.1.1.17.1"] = "SER-042"

		factory := newMockFactory()
		factory.transports["192.0.2.1"] = mock

		engine := newTestEngine(t, factory.factory,
			staticDescriptor("acme", 0, staticHandler{manufacturer: "Acme", model: "LJ-9"}))

		job := newTestJob(models.JobParams{}, nil, models.DeviceEntry{IP: "192.0.2.1"})
		sub := &captureSubmitter{}

		require.NoError(t, engine.Run(context.Background(), job,
			NewReporter(logger.NewTestLogger(), sub, job)))

		return sub.devices()
	}

	first, err := json.Marshal(scan())
	require.NoError(t, err)
	second, err := json.Marshal(scan())
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestEngineMissingCredentialFallsBack(t *testing.T) {
	factory := newMockFactory()
	factory.transports["192.0.2.1"] = identifiableMock()

	var gotCred *models.Credential

	wrapped := func(cfg snmp.ClientConfig, cred *models.Credential) (snmp.Transport, error) {
		gotCred = cred

		return factory.factory(cfg, cred)
	}

	engine := newTestEngine(t, wrapped,
		staticDescriptor("acme", 0, staticHandler{manufacturer: "Acme"}))

	job := newTestJob(models.JobParams{}, nil,
		models.DeviceEntry{IP: "192.0.2.1", CredentialID: "99"})
	sub := &captureSubmitter{}

	require.NoError(t, engine.Run(context.Background(), job,
		NewReporter(logger.NewTestLogger(), sub, job)))

	require.NotNil(t, gotCred)
	assert.Equal(t, "2c", gotCred.Version)
	assert.Equal(t, "public", gotCred.Community)
	assert.Len(t, sub.devices(), 1, "scan proceeds with the protocol defaults")
}
