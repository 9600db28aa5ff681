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

// Package netinventory runs scan jobs: it pulls devices off the job queue
// with a bounded worker pool, identifies each one through the handler
// registry, and streams resolved devices to a result submitter in fixed-size
// batches.
package netinventory

import (
	"sync"
	"time"

	"github.com/fleetscout/fleetscout/pkg/logger"
	"github.com/fleetscout/fleetscout/pkg/models"
)

const (
	defaultJobTimeout = 60 * time.Second
	defaultWorkers    = 1
)

// Job is one scan request: an ordered todo list of devices, the credential
// store for the job, and the in-flight bookkeeping shared by the workers.
// The queue and counters are the only mutable state; credentials and params
// are read-only after construction.
type Job struct {
	log         logger.Logger
	params      models.JobParams
	credentials []models.Credential

	count int

	mu       sync.Mutex
	todo     []models.DeviceEntry
	inFlight int
}

// NewJob builds a job from a decoded job description.
func NewJob(log logger.Logger, desc models.JobDescription) *Job {
	return &Job{
		log:         log,
		params:      desc.Params,
		credentials: desc.Credentials,
		count:       len(desc.Devices),
		todo:        append([]models.DeviceEntry(nil), desc.Devices...),
	}
}

// PID returns the opaque job identifier echoed back in results.
func (j *Job) PID() int64 { return j.params.PID }

// Timeout returns the job wall-clock budget.
func (j *Job) Timeout() time.Duration {
	if j.params.Timeout <= 0 {
		return defaultJobTimeout
	}

	return time.Duration(j.params.Timeout) * time.Second
}

// MaxWorkers returns the worker-pool size, defaulting to 1 when absent or
// invalid.
func (j *Job) MaxWorkers() int {
	if j.params.ThreadsQuery < 1 {
		return defaultWorkers
	}

	return j.params.ThreadsQuery
}

// SkipStartStop reports whether the start/stop control messages are
// suppressed.
func (j *Job) SkipStartStop() bool { return bool(j.params.NoStartStop) }

// Count returns the total number of devices the job was created with.
func (j *Job) Count() int { return j.count }

// Credential looks up a credential by ID. A nil return means the scan should
// proceed unauthenticated or fail at transport time; lookup never errors.
// An empty id selects the first credential of the job.
func (j *Job) Credential(id string) *models.Credential {
	if len(j.credentials) == 0 {
		j.log.Warn().Msg("No SNMP credential defined for this job")
		return nil
	}

	if id == "" {
		return &j.credentials[0]
	}

	for i := range j.credentials {
		if j.credentials[i].ID == id {
			return &j.credentials[i]
		}
	}

	j.log.Warn().Str("credential_id", id).Msg("No SNMP credential with this ID provided")

	return nil
}

// NextDevice pops the next device off the todo list and counts it in flight.
// ok is false when the list is empty.
func (j *Job) NextDevice() (entry models.DeviceEntry, ok bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.todo) == 0 {
		return models.DeviceEntry{}, false
	}

	entry = j.todo[0]
	j.todo = j.todo[1:]
	j.inFlight++

	return entry, true
}

// Done counts one device as resolved, success or failure alike, and reports
// whether the job is complete: nothing in flight and nothing left to do.
func (j *Job) Done() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inFlight--

	return j.inFlight == 0 && len(j.todo) == 0
}

// NoMore reports whether the todo list is empty; workers may still be busy.
func (j *Job) NoMore() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	return len(j.todo) == 0
}

// MaxInQueue reports whether the in-flight count has reached the worker
// ceiling; the scheduler must not dequeue another device while true.
func (j *Job) MaxInQueue() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.inFlight >= j.MaxWorkers()
}

// InFlight returns the number of devices currently being scanned.
func (j *Job) InFlight() int {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.inFlight
}
