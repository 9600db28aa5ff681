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
	"sync"
	"time"

	"github.com/fleetscout/fleetscout/pkg/device"
	"github.com/fleetscout/fleetscout/pkg/logger"
	"github.com/fleetscout/fleetscout/pkg/mibsupport"
	"github.com/fleetscout/fleetscout/pkg/models"
	"github.com/fleetscout/fleetscout/pkg/snmp"
)

const oidSysObjectID = ".1.3.6.1.2.1.1.2.0"

// TransportFactory opens a transport to one device. Tests inject scripted
// transports through it.
type TransportFactory func(cfg snmp.ClientConfig, cred *models.Credential) (snmp.Transport, error)

func defaultTransportFactory(cfg snmp.ClientConfig, cred *models.Credential) (snmp.Transport, error) {
	return snmp.NewClient(cfg, cred)
}

// Engine drives one or more scan jobs against the handler table with a
// bounded worker pool.
type Engine struct {
	log            logger.Logger
	table          *mibsupport.Table
	newTransport   TransportFactory
	requestTimeout time.Duration
	retries        int
}

// EngineOption adjusts the engine construction.
type EngineOption func(*Engine)

// WithTransportFactory replaces the live SNMP client factory.
func WithTransportFactory(f TransportFactory) EngineOption {
	return func(e *Engine) { e.newTransport = f }
}

// WithRequestTimeout sets the per-request transport timeout.
func WithRequestTimeout(d time.Duration) EngineOption {
	return func(e *Engine) { e.requestTimeout = d }
}

// WithRetries sets the SNMP retry count per request.
func WithRetries(n int) EngineOption {
	return func(e *Engine) { e.retries = n }
}

// NewEngine builds an engine over a loaded handler table.
func NewEngine(log logger.Logger, table *mibsupport.Table, opts ...EngineOption) *Engine {
	e := &Engine{
		log:          log,
		table:        table,
		newTransport: defaultTransportFactory,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run scans every device of the job and streams results through the
// reporter. Per-device failures are absorbed; the job always drains to
// completion unless the wall-clock budget expires, in which case no further
// devices are dequeued and in-flight scans finish at the granularity of
// their own request timeouts.
func (e *Engine) Run(ctx context.Context, job *Job, reporter *Reporter) error {
	if job.Count() == 0 {
		return ErrNoDevices
	}

	if err := reporter.Start(ctx); err != nil {
		return err
	}

	jobCtx, cancel := context.WithTimeout(ctx, job.Timeout())
	defer cancel()

	// The job budget bounds scanning only. Devices that finish while the
	// pool drains still have their batches delivered.
	reportCtx := context.WithoutCancel(ctx)

	workers := job.MaxWorkers()
	if job.Count() < workers {
		workers = job.Count()
	}

	e.log.Info().Int64("pid", job.PID()).Int("devices", job.Count()).
		Int("workers", workers).Msg("Starting network inventory job")

	devices := make(chan models.DeviceEntry)
	slotFree := make(chan struct{}, workers)

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for entry := range devices {
				e.scanDevice(reportCtx, job, entry, reporter)
				job.Done()

				select {
				case slotFree <- struct{}{}:
				default:
				}
			}
		}()
	}

	e.schedule(jobCtx, job, devices, slotFree)

	wg.Wait()

	// Results are flushed even when the job budget expired.
	if err := reporter.Stop(reportCtx); err != nil {
		return err
	}

	e.log.Info().Int64("pid", job.PID()).Msg("Network inventory job complete")

	return nil
}

// schedule feeds the worker pool, holding back whenever the in-flight count
// has reached the worker ceiling and stopping early when the job budget
// expires.
func (e *Engine) schedule(ctx context.Context, job *Job, devices chan<- models.DeviceEntry, slotFree <-chan struct{}) {
	defer close(devices)

	for {
		if ctx.Err() != nil {
			e.log.Warn().Int64("pid", job.PID()).
				Msg("Job timeout reached, draining in-flight devices")
			return
		}

		if job.NoMore() {
			return
		}

		if job.MaxInQueue() {
			select {
			case <-slotFree:
			case <-ctx.Done():
			}

			continue
		}

		entry, ok := job.NextDevice()
		if !ok {
			return
		}

		// A worker slot is guaranteed free at this point.
		devices <- entry
	}
}

// scanDevice runs the full identification pipeline for one device: open a
// transport, match handlers, resolve capabilities, apply the standard-OID
// fallbacks, enrich, and report. Any failure resolves the device as failed
// without affecting the rest of the job.
func (e *Engine) scanDevice(ctx context.Context, job *Job, entry models.DeviceEntry, reporter *Reporter) {
	log := e.log.With().Str("ip", entry.IP).Str("device_id", entry.ID).Logger()
	dlog := logger.NewWithZerolog(log)

	cred := job.Credential(entry.CredentialID)
	if cred == nil {
		// Best effort with the protocol defaults.
		cred = &models.Credential{Version: "2c", Community: "public"}
	}

	transport, err := e.newTransport(snmp.ClientConfig{
		Target:  entry.IP,
		Port:    entry.Port,
		Timeout: e.requestTimeout,
		Retries: e.retries,
	}, cred)
	if err != nil {
		dlog.Warn().Err(err).Msg("Device unreachable, skipping")
		return
	}

	defer func() {
		if err := transport.Close(); err != nil {
			dlog.Debug().Err(err).Msg("Failed to close transport")
		}
	}()

	sysObjectID, _, err := transport.Get(oidSysObjectID)
	if err != nil {
		dlog.Warn().Err(err).Msg("Device did not answer identification probe, skipping")
		return
	}

	dev := device.New(transport, dlog, entry.ID, entry.IP)

	support := e.table.Match(sysObjectID, dev)
	if support.Len() > 0 {
		dlog.Debug().Strs("handlers", support.Names()).Msg("Vendor handlers matched")
	}

	dev.SetType(support.Resolve(mibsupport.CapType))
	dev.SetManufacturer(support.Resolve(mibsupport.CapManufacturer))
	dev.SetModel(support.Resolve(mibsupport.CapModel))
	dev.SetSerial(support.Resolve(mibsupport.CapSerial))
	dev.SetFirmware(support.Resolve(mibsupport.CapFirmware))
	dev.SetFirmwareDate(support.Resolve(mibsupport.CapFirmwareDate))
	dev.SetMAC(support.Resolve(mibsupport.CapMACAddress))
	dev.SetHostname(support.Resolve(mibsupport.CapHostname))

	dev.CollectBaseInfo()

	// Controlling-layer type hint fills in only when no handler answered.
	dev.SetType(entry.Type)

	dev.ResolveSerialFallback()
	dev.ResolveModelFallback()

	support.RunAll()

	if err := reporter.Add(ctx, dev.Export()); err != nil {
		dlog.Error().Err(err).Msg("Failed to report resolved device")
	}
}
