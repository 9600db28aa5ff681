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

package device

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	hexStringRe = regexp.MustCompile(`^0[xX]((?:[0-9A-Fa-f]{2})+)$`)
	macTextRe   = regexp.MustCompile(`^([0-9A-Fa-f]{1,2})[:-]([0-9A-Fa-f]{1,2})[:-]([0-9A-Fa-f]{1,2})[:-]([0-9A-Fa-f]{1,2})[:-]([0-9A-Fa-f]{1,2})[:-]([0-9A-Fa-f]{1,2})$`)
	junkSerial  = regexp.MustCompile(`^[0\s.]*$`)
)

// CanonicalString normalizes a raw SNMP string value: hex-string encodings
// are decoded, NULs and surrounding whitespace or quotes stripped.
func CanonicalString(value string) string {
	if m := hexStringRe.FindStringSubmatch(value); m != nil {
		if decoded, err := hex.DecodeString(m[1]); err == nil && isPrintable(decoded) {
			value = string(decoded)
		}
	}

	value = strings.ReplaceAll(value, "\x00", "")
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"'`)

	return strings.TrimSpace(value)
}

func isPrintable(b []byte) bool {
	for _, r := range string(b) {
		if r == unicode.ReplacementChar {
			return false
		}

		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}

	return true
}

// CanonicalSerial cleans a serial candidate and rejects the junk values some
// agents report, like all-zero strings.
func CanonicalSerial(value string) string {
	value = CanonicalString(value)
	if junkSerial.MatchString(value) {
		return ""
	}

	return value
}

// CanonicalMacAddress normalizes a MAC to lower-case colon-separated form.
// Accepts textual aa:bb:cc:dd:ee:ff (or dash-separated), hex-string
// encodings, and the raw six-byte form agents return for ifPhysAddress.
// Returns the empty string for anything else, including all-zero MACs.
func CanonicalMacAddress(value string) string {
	if value == "" {
		return ""
	}

	if m := macTextRe.FindStringSubmatch(value); m != nil {
		return normalizeMacBytes([]byte{
			hexByte(m[1]), hexByte(m[2]), hexByte(m[3]),
			hexByte(m[4]), hexByte(m[5]), hexByte(m[6]),
		})
	}

	if m := hexStringRe.FindStringSubmatch(value); m != nil {
		if decoded, err := hex.DecodeString(m[1]); err == nil && len(decoded) == 6 {
			return normalizeMacBytes(decoded)
		}
	}

	if len(value) == 6 {
		return normalizeMacBytes([]byte(value))
	}

	return ""
}

func hexByte(s string) byte {
	if len(s) == 1 {
		s = "0" + s
	}

	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 1 {
		return 0
	}

	return b[0]
}

func normalizeMacBytes(b []byte) string {
	allZero := true

	for _, octet := range b {
		if octet != 0 {
			allZero = false
			break
		}
	}

	if allZero {
		return ""
	}

	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", b[0], b[1], b[2], b[3], b[4], b[5])
}
