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

package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// BoolFlag accepts the loose boolean encodings seen in job descriptions:
// true/false, 0/1, and their string forms.
type BoolFlag bool

// Bool returns the flag as a plain bool.
func (f BoolFlag) Bool() bool { return bool(f) }

func (f BoolFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

func (f *BoolFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = BoolFlag(b)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = n != 0
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := strconv.ParseBool(s)
	if err != nil {
		// Unrecognized strings count as unset, matching the lenient
		// parsing of the original job descriptions.
		*f = false
		return nil
	}

	*f = BoolFlag(parsed)

	return nil
}
