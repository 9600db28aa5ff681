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

	"github.com/fleetscout/fleetscout/pkg/logger"
	"github.com/fleetscout/fleetscout/pkg/models"
	"github.com/google/uuid"
)

// batchSize is the device count per batch message.
const batchSize = 10

// Reporter groups resolved devices into fixed-size batches and hands each
// full batch to the submitter, framed by start/stop control messages unless
// the job suppresses them. Add is safe for concurrent use by the workers.
type Reporter struct {
	log       logger.Logger
	submitter Submitter
	pid       int64
	skipCtrl  bool

	mu      sync.Mutex
	pending []models.ResolvedDevice
}

// NewReporter builds a reporter for one job.
func NewReporter(log logger.Logger, submitter Submitter, job *Job) *Reporter {
	return &Reporter{
		log:       log,
		submitter: submitter,
		pid:       job.PID(),
		skipCtrl:  job.SkipStartStop(),
	}
}

// Start emits the START control message unless suppressed.
func (r *Reporter) Start(ctx context.Context) error {
	if r.skipCtrl {
		return nil
	}

	return r.submit(ctx, r.message(models.MessageStart, nil))
}

// Add queues one resolved device, flushing a full batch when it fills.
func (r *Reporter) Add(ctx context.Context, dev models.ResolvedDevice) error {
	r.mu.Lock()
	r.pending = append(r.pending, dev)

	var batch []models.ResolvedDevice
	if len(r.pending) >= batchSize {
		batch = r.pending[:batchSize]
		r.pending = append([]models.ResolvedDevice(nil), r.pending[batchSize:]...)
	}
	r.mu.Unlock()

	if batch == nil {
		return nil
	}

	return r.submit(ctx, r.message(models.MessageBatch, batch))
}

// Stop flushes the final partial batch and emits the STOP control message
// unless suppressed.
func (r *Reporter) Stop(ctx context.Context) error {
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(batch) > 0 {
		if err := r.submit(ctx, r.message(models.MessageBatch, batch)); err != nil {
			return err
		}
	}

	if r.skipCtrl {
		return nil
	}

	return r.submit(ctx, r.message(models.MessageStop, nil))
}

func (r *Reporter) message(kind string, devices []models.ResolvedDevice) models.ResultMessage {
	return models.ResultMessage{
		MessageID: uuid.New().String(),
		Kind:      kind,
		PID:       r.pid,
		Timestamp: time.Now().UTC(),
		Devices:   devices,
	}
}

func (r *Reporter) submit(ctx context.Context, msg models.ResultMessage) error {
	if err := r.submitter.Submit(ctx, msg); err != nil {
		r.log.Error().Err(err).Str("kind", msg.Kind).Int64("pid", msg.PID).
			Msg("Failed to submit result message")
		return err
	}

	return nil
}
