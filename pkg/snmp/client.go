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

package snmp

import (
	"fmt"
	"strings"
	"time"

	"github.com/fleetscout/fleetscout/pkg/models"
	"github.com/gosnmp/gosnmp"
)

const (
	defaultPort           = 161
	defaultRequestTimeout = 5 * time.Second
	defaultRetries        = 1
	defaultMaxRepetitions = 10
)

// ClientConfig carries the per-target connection parameters.
type ClientConfig struct {
	Target  string
	Port    uint16
	Timeout time.Duration
	Retries int
}

// Client implements Transport over a live gosnmp connection.
type Client struct {
	conn *gosnmp.GoSNMP
}

// NewClient opens a transport to cfg.Target authenticated with cred.
func NewClient(cfg ClientConfig, cred *models.Credential) (*Client, error) {
	if cfg.Target == "" {
		return nil, ErrTargetRequired
	}

	if cred == nil {
		return nil, ErrCredentialRequired
	}

	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	retries := cfg.Retries
	if retries <= 0 {
		retries = defaultRetries
	}

	conn := &gosnmp.GoSNMP{
		Target:             cfg.Target,
		Port:               port,
		Timeout:            timeout,
		Retries:            retries,
		MaxOids:            gosnmp.MaxOids,
		MaxRepetitions:     defaultMaxRepetitions,
		ExponentialTimeout: true,
	}

	if err := configureVersion(conn, cred); err != nil {
		return nil, err
	}

	if err := conn.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSNMPConnectFailed, cfg.Target, err)
	}

	return &Client{conn: conn}, nil
}

// configureVersion maps the credential onto the gosnmp connection.
func configureVersion(conn *gosnmp.GoSNMP, cred *models.Credential) error {
	switch cred.Version {
	case "1":
		conn.Version = gosnmp.Version1
		conn.Community = cred.Community
	case "", "2", "2c":
		conn.Version = gosnmp.Version2c
		conn.Community = cred.Community
	case "3":
		conn.Version = gosnmp.Version3
		conn.SecurityModel = gosnmp.UserSecurityModel

		usm := &gosnmp.UsmSecurityParameters{
			UserName: cred.Username,
		}

		configureV3Authentication(usm, cred)
		configureV3Privacy(usm, cred)

		conn.SecurityParameters = usm
		conn.MsgFlags = v3MsgFlags(usm)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedSNMPVersion, cred.Version)
	}

	return nil
}

func configureV3Authentication(usm *gosnmp.UsmSecurityParameters, cred *models.Credential) {
	switch strings.ToUpper(cred.AuthProtocol) {
	case "MD5":
		usm.AuthenticationProtocol = gosnmp.MD5
	case "SHA":
		usm.AuthenticationProtocol = gosnmp.SHA
	case "SHA224":
		usm.AuthenticationProtocol = gosnmp.SHA224
	case "SHA256":
		usm.AuthenticationProtocol = gosnmp.SHA256
	case "SHA384":
		usm.AuthenticationProtocol = gosnmp.SHA384
	case "SHA512":
		usm.AuthenticationProtocol = gosnmp.SHA512
	default:
		usm.AuthenticationProtocol = gosnmp.NoAuth
		return
	}

	usm.AuthenticationPassphrase = cred.AuthPassphrase
}

func configureV3Privacy(usm *gosnmp.UsmSecurityParameters, cred *models.Credential) {
	switch strings.ToUpper(cred.PrivProtocol) {
	case "DES":
		usm.PrivacyProtocol = gosnmp.DES
	case "AES":
		usm.PrivacyProtocol = gosnmp.AES
	case "AES192":
		usm.PrivacyProtocol = gosnmp.AES192
	case "AES256":
		usm.PrivacyProtocol = gosnmp.AES256
	default:
		usm.PrivacyProtocol = gosnmp.NoPriv
		return
	}

	usm.PrivacyPassphrase = cred.PrivPassphrase
}

func v3MsgFlags(usm *gosnmp.UsmSecurityParameters) gosnmp.SnmpV3MsgFlags {
	switch {
	case usm.PrivacyProtocol != gosnmp.NoPriv:
		return gosnmp.AuthPriv
	case usm.AuthenticationProtocol != gosnmp.NoAuth:
		return gosnmp.AuthNoPriv
	default:
		return gosnmp.NoAuthNoPriv
	}
}

// Get fetches one scalar. Absent objects (noSuchObject, noSuchInstance,
// endOfMibView) report ok=false without an error.
func (c *Client) Get(oid string) (string, bool, error) {
	packet, err := c.conn.Get([]string{oid})
	if err != nil {
		return "", false, fmt.Errorf("%w: %s: %w", ErrSNMPGetFailed, oid, err)
	}

	if packet == nil || len(packet.Variables) == 0 {
		return "", false, nil
	}

	pdu := packet.Variables[0]

	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return "", false, nil
	default:
		return canonicalValue(pdu), true, nil
	}
}

// Walk fetches the subtree under oid. Keys are the OID suffix relative to
// oid, values are canonicalised strings.
func (c *Client) Walk(oid string) (map[string]string, error) {
	results := make(map[string]string)
	root := strings.TrimSuffix(oid, ".")

	walkFn := func(pdu gosnmp.SnmpPDU) error {
		switch pdu.Type {
		case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView:
			return nil
		default:
		}

		name := pdu.Name
		if !strings.HasPrefix(name, ".") {
			name = "." + name
		}

		suffix := strings.TrimPrefix(strings.TrimPrefix(name, root), ".")
		if suffix == "" {
			return nil
		}

		results[suffix] = canonicalValue(pdu)

		return nil
	}

	var err error
	if c.conn.Version == gosnmp.Version1 {
		err = c.conn.Walk(root, walkFn)
	} else {
		err = c.conn.BulkWalk(root, walkFn)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSNMPWalkFailed, oid, err)
	}

	return results, nil
}

// Close tears down the underlying connection.
func (c *Client) Close() error {
	if c.conn == nil || c.conn.Conn == nil {
		return nil
	}

	return c.conn.Conn.Close()
}
