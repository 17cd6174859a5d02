// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package variable provides validation functions for environment variable names.
package variable

import (
	"fmt"
	"regexp"
	"strings"
)

// maxNameLength caps variable names well beyond anything legitimate while
// keeping error messages and logs bounded.
const maxNameLength = 256

var validNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateName validates that an environment variable name starts with a
// letter or underscore and contains only letters, digits, and underscores.
// It also disallows null bytes and enforces a maximum length.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("variable name cannot be empty")
	}

	// Check for null bytes explicitly
	if strings.Contains(name, "\x00") {
		return fmt.Errorf("variable name cannot contain null bytes")
	}

	if len(name) > maxNameLength {
		return fmt.Errorf("variable name exceeds maximum length of %d bytes", maxNameLength)
	}

	if !validNameRegex.MatchString(name) {
		return fmt.Errorf("variable name must match [A-Za-z_][A-Za-z0-9_]*: %q", name)
	}

	return nil
}
