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
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/fleetscout/fleetscout/pkg/logger"
	"github.com/fleetscout/fleetscout/pkg/models"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Submitter delivers one result message to the external result collaborator.
type Submitter interface {
	Submit(ctx context.Context, msg models.ResultMessage) error
	Close() error
}

// WriterSubmitter writes each message as one JSON line, for local runs and
// piping.
type WriterSubmitter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriterSubmitter builds a submitter over w.
func NewWriterSubmitter(w io.Writer) *WriterSubmitter {
	return &WriterSubmitter{enc: json.NewEncoder(w)}
}

// Submit encodes the message as one JSON line.
func (s *WriterSubmitter) Submit(_ context.Context, msg models.ResultMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enc.Encode(msg); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	return nil
}

// Close is a no-op; the underlying writer is owned by the caller.
func (*WriterSubmitter) Close() error { return nil }

// NATSSubmitterConfig carries the JetStream connection parameters.
type NATSSubmitterConfig struct {
	// URL is the NATS server URL.
	URL string `json:"url"`
	// SubjectPrefix is prepended to the per-job subject; the full subject
	// is "<prefix>.<pid>".
	SubjectPrefix string `json:"subject_prefix"`
}

// NATSSubmitter publishes each result message to a JetStream subject keyed
// by the job PID.
type NATSSubmitter struct {
	log     logger.Logger
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
}

// NewNATSSubmitter connects to NATS and prepares the JetStream publisher
// for one job.
func NewNATSSubmitter(log logger.Logger, cfg NATSSubmitterConfig, pid int64) (*NATSSubmitter, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	prefix := cfg.SubjectPrefix
	if prefix == "" {
		prefix = "fleetscout.results"
	}

	conn, err := nats.Connect(cfg.URL, nats.Name("fleetscout-netinventory"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	return &NATSSubmitter{
		log:     log,
		conn:    conn,
		js:      js,
		subject: prefix + "." + strconv.FormatInt(pid, 10),
	}, nil
}

// Submit publishes the message to the job subject.
func (s *NATSSubmitter) Submit(ctx context.Context, msg models.ResultMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	ack, err := s.js.Publish(ctx, s.subject, payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	s.log.Debug().Str("message_id", msg.MessageID).Str("subject", s.subject).
		Uint64("seq", ack.Sequence).Msg("Published result message")

	return nil
}

// Close drains the NATS connection.
func (s *NATSSubmitter) Close() error {
	if s.conn == nil {
		return nil
	}

	s.conn.Close()

	return nil
}
