// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expand

import (
	"fmt"
	"strings"
)

// VariableNotFoundError is returned when a referenced variable has no
// entry in the mapping.
type VariableNotFoundError struct {
	// Name is the variable name that could not be resolved.
	Name string
}

// Error implements the error interface.
func (e *VariableNotFoundError) Error() string {
	return fmt.Sprintf("variable %q is not defined", e.Name)
}

// CircularReferenceError is returned when a variable or URI is re-entered
// while it is still being resolved. It is shared with the secrets package,
// which reports resolution cycles with the same chain shape.
type CircularReferenceError struct {
	// Chain is the detected cycle in traversal order. The first and last
	// elements are always equal, e.g. ["A", "B", "A"].
	Chain []string
}

// Error implements the error interface.
func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference detected: %s", strings.Join(e.Chain, " -> "))
}
