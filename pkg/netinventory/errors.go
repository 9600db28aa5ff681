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

import "errors"

var (
	// ErrNoDevices indicates a job description without any device entries.
	ErrNoDevices = errors.New("job has no devices to scan")

	// ErrSubmitFailed wraps delivery failures of result messages.
	ErrSubmitFailed = errors.New("failed to submit result message")

	// ErrNATSURLRequired indicates a NATS submitter configured without a
	// server URL.
	ErrNATSURLRequired = errors.New("nats url is required")
)
