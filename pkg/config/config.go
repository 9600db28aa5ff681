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

// Package config loads JSON configuration files with environment overrides.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fleetscout/fleetscout/pkg/logger"
)

// EnvPrefix is prepended to every environment override variable.
const EnvPrefix = "FLEETSCOUT_"

var (
	ErrInvalidConfigPtr = errors.New("config must be a non-nil pointer")
	ErrLoadConfigFailed = errors.New("failed to load configuration")
)

// Validator is implemented by configuration types that check themselves
// after decoding.
type Validator interface {
	Validate() error
}

// Loader reads configuration files into typed destinations.
type Loader struct {
	logger logger.Logger
}

// NewLoader creates a configuration loader. A nil logger falls back to a
// no-op logger.
func NewLoader(log logger.Logger) *Loader {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Loader{logger: log}
}

// LoadAndValidate reads the JSON file at path into dst, applies environment
// overrides, and runs dst's Validate method when it has one.
func (l *Loader) LoadAndValidate(ctx context.Context, path string, dst interface{}) error {
	if dst == nil {
		return ErrInvalidConfigPtr
	}

	if err := l.loadFile(ctx, path, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrLoadConfigFailed, err)
	}

	if err := applyEnvOverrides(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrLoadConfigFailed, err)
	}

	if v, ok := dst.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrLoadConfigFailed, err)
		}
	}

	l.logger.Debug().Str("path", path).Msg("Configuration loaded")

	return nil
}

func (*Loader) loadFile(_ context.Context, path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from '%s': %w", path, err)
	}

	return nil
}
