// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package secrets

import "fmt"

// ReferenceParseError is returned when a string with a recognized scheme
// does not decompose into scheme://authority/path form.
type ReferenceParseError struct {
	// URI is the string that failed to parse.
	URI string
	// Reason describes what was missing or malformed.
	Reason string
}

// Error implements the error interface.
func (e *ReferenceParseError) Error() string {
	return fmt.Sprintf("invalid secret reference %q: %s", e.URI, e.Reason)
}

// NoProviderRegisteredError is returned when a reference uses a scheme
// that is recognized by the registry but has no provider attached.
type NoProviderRegisteredError struct {
	// Scheme is the URI scheme with no provider.
	Scheme string
}

// Error implements the error interface.
func (e *NoProviderRegisteredError) Error() string {
	return fmt.Sprintf("no provider registered for scheme %q", e.Scheme)
}

// SecretResolutionFailedError is returned when a provider fails to fetch
// a reference. The provider's error is wrapped and available via Unwrap.
type SecretResolutionFailedError struct {
	// URI is the reference the provider was asked to resolve.
	URI string
	// Err is the provider's underlying error.
	Err error
}

// Error implements the error interface.
func (e *SecretResolutionFailedError) Error() string {
	return fmt.Sprintf("failed to resolve %q: %v", e.URI, e.Err)
}

// Unwrap returns the provider's underlying error for errors.Is() and
// errors.As() compatibility.
func (e *SecretResolutionFailedError) Unwrap() error {
	return e.Err
}
