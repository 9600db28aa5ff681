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
	"testing"
	"time"

	"github.com/fleetscout/fleetscout/pkg/logger"
	"github.com/fleetscout/fleetscout/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJob(params models.JobParams, creds []models.Credential, devices ...models.DeviceEntry) *Job {
	return NewJob(logger.NewTestLogger(), models.JobDescription{
		Params:      params,
		Credentials: creds,
		Devices:     devices,
	})
}

func TestJobDefaults(t *testing.T) {
	job := newTestJob(models.JobParams{}, nil)

	assert.Equal(t, 1, job.MaxWorkers())
	assert.Equal(t, 60*time.Second, job.Timeout())
	assert.False(t, job.SkipStartStop())
	assert.Zero(t, job.Count())

	job = newTestJob(models.JobParams{ThreadsQuery: -3, Timeout: 120}, nil)

	assert.Equal(t, 1, job.MaxWorkers())
	assert.Equal(t, 120*time.Second, job.Timeout())
}

func TestJobQueueLifecycle(t *testing.T) {
	job := newTestJob(models.JobParams{ThreadsQuery: 1}, nil,
		models.DeviceEntry{IP: "192.0.2.1"},
		models.DeviceEntry{IP: "192.0.2.2"},
	)

	assert.Equal(t, 2, job.Count())
	assert.False(t, job.NoMore())
	assert.False(t, job.MaxInQueue())

	first, ok := job.NextDevice()
	require.True(t, ok)
	assert.Equal(t, "192.0.2.1", first.IP, "queue is FIFO")
	assert.Equal(t, 1, job.InFlight())
	assert.True(t, job.MaxInQueue())

	assert.False(t, job.Done(), "one device still queued")
	assert.False(t, job.MaxInQueue())

	second, ok := job.NextDevice()
	require.True(t, ok)
	assert.Equal(t, "192.0.2.2", second.IP)
	assert.True(t, job.NoMore())

	assert.True(t, job.Done())

	_, ok = job.NextDevice()
	assert.False(t, ok)
}

func TestJobNotDoneWhileDraining(t *testing.T) {
	job := newTestJob(models.JobParams{ThreadsQuery: 2}, nil,
		models.DeviceEntry{IP: "192.0.2.1"},
		models.DeviceEntry{IP: "192.0.2.2"},
	)

	_, ok := job.NextDevice()
	require.True(t, ok)
	_, ok = job.NextDevice()
	require.True(t, ok)

	// Todo is empty but a worker is still busy.
	assert.True(t, job.NoMore())
	assert.False(t, job.Done())

	assert.True(t, job.Done())
}

func TestJobCredential(t *testing.T) {
	creds := []models.Credential{
		{ID: "1", Version: "2c", Community: "public"},
		{ID: "7", Version: "3", Username: "ops"},
	}

	t.Run("lookup by id", func(t *testing.T) {
		job := newTestJob(models.JobParams{}, creds)

		cred := job.Credential("7")
		require.NotNil(t, cred)
		assert.Equal(t, "ops", cred.Username)
	})

	t.Run("empty id selects first", func(t *testing.T) {
		job := newTestJob(models.JobParams{}, creds)

		cred := job.Credential("")
		require.NotNil(t, cred)
		assert.Equal(t, "1", cred.ID)
	})

	t.Run("unknown id returns nil", func(t *testing.T) {
		job := newTestJob(models.JobParams{}, creds)

		assert.Nil(t, job.Credential("99"))
	})

	t.Run("empty store returns nil", func(t *testing.T) {
		job := newTestJob(models.JobParams{}, nil)

		assert.Nil(t, job.Credential("1"))
	})
}
