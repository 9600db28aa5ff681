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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fleetscout/fleetscout/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string        `json:"name"`
	Workers int           `json:"workers"`
	Nested  nestedSection `json:"nested"`
}

type nestedSection struct {
	Enabled bool `json:"enabled"`
}

var errBadWorkers = errors.New("workers must be positive")

type validatedConfig struct {
	Workers int `json:"workers"`
}

func (c *validatedConfig) Validate() error {
	if c.Workers <= 0 {
		return errBadWorkers
	}

	return nil
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAndValidate(t *testing.T) {
	loader := NewLoader(logger.NewTestLogger())

	path := writeConfigFile(t, `{"name":"scan","workers":4,"nested":{"enabled":true}}`)

	var cfg testConfig

	require.NoError(t, loader.LoadAndValidate(context.Background(), path, &cfg))
	assert.Equal(t, "scan", cfg.Name)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Nested.Enabled)
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	loader := NewLoader(nil)

	var cfg testConfig

	err := loader.LoadAndValidate(context.Background(), "/nonexistent/config.json", &cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadConfigFailed)
}

func TestLoadAndValidateRunsValidator(t *testing.T) {
	loader := NewLoader(logger.NewTestLogger())

	path := writeConfigFile(t, `{"workers":0}`)

	var cfg validatedConfig

	err := loader.LoadAndValidate(context.Background(), path, &cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBadWorkers)
}

func TestEnvOverrides(t *testing.T) {
	loader := NewLoader(logger.NewTestLogger())

	path := writeConfigFile(t, `{"name":"scan","workers":4,"nested":{"enabled":false}}`)

	t.Setenv("FLEETSCOUT_WORKERS", "8")
	t.Setenv("FLEETSCOUT_NESTED_ENABLED", "true")

	var cfg testConfig

	require.NoError(t, loader.LoadAndValidate(context.Background(), path, &cfg))
	assert.Equal(t, "scan", cfg.Name)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.Nested.Enabled)
}

func TestEnvOverrideInvalidValue(t *testing.T) {
	loader := NewLoader(logger.NewTestLogger())

	path := writeConfigFile(t, `{"workers":4}`)

	t.Setenv("FLEETSCOUT_WORKERS", "plenty")

	var cfg testConfig

	err := loader.LoadAndValidate(context.Background(), path, &cfg)
	require.Error(t, err)
}
