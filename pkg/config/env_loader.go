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
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

var (
	ErrDstMustBeNonNilPointer   = errors.New("dst must be a non-nil pointer")
	ErrDstMustBePointerToStruct = errors.New("dst must be a pointer to a struct")
)

// applyEnvOverrides walks dst's struct fields and overrides any whose
// FLEETSCOUT_-prefixed variable is set. Nested struct fields use underscore
// separation on the upper-cased json tag, e.g. FLEETSCOUT_LOGGER_LEVEL maps
// to dst.Logger.Level.
func applyEnvOverrides(dst interface{}) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrDstMustBeNonNilPointer
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return ErrDstMustBePointerToStruct
	}

	return overrideStruct(v, EnvPrefix)
}

func overrideStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := envName(field)
		if name == "" {
			continue
		}

		fv := v.Field(i)

		if fv.Kind() == reflect.Struct {
			if err := overrideStruct(fv, prefix+name+"_"); err != nil {
				return err
			}

			continue
		}

		raw, ok := os.LookupEnv(prefix + name)
		if !ok {
			continue
		}

		if err := setField(fv, raw); err != nil {
			return fmt.Errorf("invalid value for %s%s: %w", prefix, name, err)
		}
	}

	return nil
}

// envName derives the env var segment from the json tag, falling back to the
// field name.
func envName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}

	name := strings.Split(tag, ",")[0]
	if name == "" {
		name = field.Name
	}

	return strings.ToUpper(name)
}

func setField(fv reflect.Value, raw string) error {
	if !fv.CanSet() {
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}

		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}

		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return err
		}

		fv.SetUint(n)
	default:
		// Slices, maps and other shapes stay file-driven.
	}

	return nil
}
