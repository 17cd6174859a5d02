// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package expand substitutes ${VAR} and $VAR placeholders in text using a
flat string-to-string mapping.

Expansion is recursive: a value that itself contains placeholders is fully
expanded before it is substituted, so nested names like ${DB_${ENV}} work
the way users expect. Curly references are always resolved before bare
$VAR references, and within each scan references are resolved left to
right, innermost first.

	result, err := expand.Expand("${DB_${ENV}}", map[string]string{
		"ENV":     "prod",
		"DB_prod": "db.internal.example.com",
	})
	// result == "db.internal.example.com"

A referenced name with no entry in the mapping fails with
[*VariableNotFoundError]. A name that references itself, directly or
through other variables, fails with [*CircularReferenceError] carrying the
full cycle chain (for example A -> B -> A). Neither condition is ever
silently ignored.

A literal $ that does not start a reference (for example "$100" or a
trailing "$") passes through unchanged. Expansion of a fixed (text,
mapping) pair is deterministic and idempotent.

All functions are pure and safe for concurrent use.
*/
package expand
