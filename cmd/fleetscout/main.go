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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fleetscout/fleetscout/pkg/config"
	"github.com/fleetscout/fleetscout/pkg/logger"
	"github.com/fleetscout/fleetscout/pkg/mibsupport"
	_ "github.com/fleetscout/fleetscout/pkg/mibsupport/vendors"
	"github.com/fleetscout/fleetscout/pkg/models"
	"github.com/fleetscout/fleetscout/pkg/netinventory"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to agent config file (optional)")
	jobPath := flag.String("job", "", "Path to job description JSON, '-' for stdin")
	outputPath := flag.String("output", "-", "Result output path, '-' for stdout")
	flag.Parse()

	if *jobPath == "" {
		return fmt.Errorf("missing required -job flag")
	}

	ctx := context.Background()

	cfg := netinventory.Config{
		Logging: logger.Config{Output: "stderr"},
	}

	if *configPath != "" {
		loader := config.NewLoader(nil)
		if err := loader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cfg.Logging.Output == "" {
		// Keep stdout clean for results.
		cfg.Logging.Output = "stderr"
	}

	mainLogger, err := logger.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	table, err := mibsupport.Load(mainLogger)
	if err != nil {
		return fmt.Errorf("failed to load handler registry: %w", err)
	}

	desc, err := readJobDescription(*jobPath)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	job := netinventory.NewJob(mainLogger, desc)

	submitter, cleanup, err := buildSubmitter(mainLogger, &cfg, job.PID(), *outputPath)
	if err != nil {
		return err
	}
	defer cleanup()

	engine := netinventory.NewEngine(mainLogger, table,
		netinventory.WithRequestTimeout(cfg.RequestTimeout()),
		netinventory.WithRetries(cfg.Retries))

	reporter := netinventory.NewReporter(mainLogger, submitter, job)

	if err := engine.Run(ctx, job, reporter); err != nil {
		return fmt.Errorf("scan job failed: %w", err)
	}

	return nil
}

func readJobDescription(path string) (models.JobDescription, error) {
	var desc models.JobDescription

	var reader io.Reader = os.Stdin

	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return desc, err
		}
		defer f.Close()

		reader = f
	}

	if err := json.NewDecoder(reader).Decode(&desc); err != nil {
		return desc, err
	}

	return desc, nil
}

func buildSubmitter(log logger.Logger, cfg *netinventory.Config, pid int64, outputPath string) (netinventory.Submitter, func(), error) {
	if cfg.NATS != nil {
		sub, err := netinventory.NewNATSSubmitter(log, *cfg.NATS, pid)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect result submitter: %w", err)
		}

		return sub, func() { _ = sub.Close() }, nil
	}

	if outputPath == "-" {
		return netinventory.NewWriterSubmitter(os.Stdout), func() {}, nil
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open output file: %w", err)
	}

	return netinventory.NewWriterSubmitter(f), func() { _ = f.Close() }, nil
}
