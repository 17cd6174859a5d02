// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expand

import "regexp"

var (
	// curlyRef matches an innermost ${name} reference. The name may not
	// contain braces, so a match never spans nested or unbalanced braces.
	curlyRef = regexp.MustCompile(`\$\{([^{}]+)\}`)

	// simpleRef matches a bare $name reference. The name must start with
	// a letter or underscore, so "$1" and "$100" are not references. The
	// greedy tail captures the whole identifier, so "$VAR2" is matched as
	// VAR2 and not VAR.
	simpleRef = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// reference is one placeholder occurrence within a scanned string.
type reference struct {
	// start and end delimit the full matched token, including the $ and
	// any braces.
	start int
	end   int
	// name is the captured variable name.
	name string
}

// nextReference returns the reference to resolve next in text, or ok=false
// when text contains no references. Curly references anywhere in the text
// take priority over bare references; within each form the leftmost match
// wins. Because curlyRef cannot match across braces, the leftmost curly
// match is always an innermost one.
func nextReference(text string) (reference, bool) {
	if m := curlyRef.FindStringSubmatchIndex(text); m != nil {
		return reference{start: m[0], end: m[1], name: text[m[2]:m[3]]}, true
	}
	if m := simpleRef.FindStringSubmatchIndex(text); m != nil {
		return reference{start: m[0], end: m[1], name: text[m[2]:m[3]]}, true
	}
	return reference{}, false
}

// findCurlyReferences returns all innermost ${name} occurrences in text,
// in source order.
func findCurlyReferences(text string) []reference {
	return findAll(text, curlyRef)
}

// findSimpleReferences returns all bare $name occurrences in text, in
// source order.
func findSimpleReferences(text string) []reference {
	return findAll(text, simpleRef)
}

func findAll(text string, re *regexp.Regexp) []reference {
	var refs []reference
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		refs = append(refs, reference{start: m[0], end: m[1], name: text[m[2]:m[3]]})
	}
	return refs
}
