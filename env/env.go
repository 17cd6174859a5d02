// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import (
	"os"
	"strings"
)

// Reader defines an interface for environment variable access
type Reader interface {
	// Getenv returns the value of the variable, or "" if it is unset.
	Getenv(key string) string

	// LookupEnv returns the value of the variable and whether it is set,
	// distinguishing an unset variable from one set to the empty string.
	LookupEnv(key string) (string, bool)

	// Environ returns all variables in "KEY=VALUE" form.
	Environ() []string
}

// OSReader implements Reader using the standard os package
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// LookupEnv reports the value of the environment variable named by the key
// and whether it is present in the process environment.
func (*OSReader) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Environ returns the process environment in "KEY=VALUE" form.
func (*OSReader) Environ() []string {
	return os.Environ()
}

// MapReader implements Reader over a fixed map. It is useful for tests and
// for resolving against a mapping that is not the process environment.
type MapReader map[string]string

// Getenv returns the value for key, or "" if it has no entry.
func (m MapReader) Getenv(key string) string {
	return m[key]
}

// LookupEnv returns the value for key and whether the map has an entry for it.
func (m MapReader) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Environ returns the map contents in "KEY=VALUE" form. Order is not defined.
func (m MapReader) Environ() []string {
	entries := make([]string, 0, len(m))
	for k, v := range m {
		entries = append(entries, k+"="+v)
	}
	return entries
}

// ToMap snapshots a Reader's environment into a flat string-to-string
// mapping. Entries without an "=" separator are skipped.
func ToMap(r Reader) map[string]string {
	environ := r.Environ()
	vars := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			continue
		}
		vars[key] = value
	}
	return vars
}
