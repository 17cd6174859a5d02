// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// schemeRegex matches the scheme token of a secret reference: a short
// lowercase alphanumeric word starting with a letter, 2 to 10 characters.
var schemeRegex = regexp.MustCompile(`^[a-z][a-z0-9]{1,9}$`)

// ParsedReference is the structured decomposition of a secret reference
// string of the form scheme://authority/path[?version=v].
type ParsedReference struct {
	// Scheme is the provider registration key, e.g. "akv".
	Scheme string

	// Authority identifies the store within the scheme, e.g. the vault
	// name for Azure Key Vault. It may be empty for schemes such as
	// "file" where the path alone identifies the resource.
	Authority string

	// Path is the resource path below the authority, without a leading
	// slash and without the query string.
	Path string

	// Version is the optional value of the "version" query parameter,
	// or "" when absent.
	Version string

	// raw is the original reference string, kept for error reporting.
	raw string
}

// String returns the original reference string.
func (r ParsedReference) String() string {
	return r.raw
}

// referenceScheme extracts the scheme token from s, returning ok=false
// when s does not have the scheme://... shape.
func referenceScheme(s string) (string, bool) {
	scheme, _, found := strings.Cut(s, "://")
	if !found || !schemeRegex.MatchString(scheme) {
		return "", false
	}
	return scheme, true
}

// ParseReference decomposes a secret reference string. It returns a
// *ReferenceParseError when the string lacks the :// separator, has an
// invalid scheme token, or names no resource at all.
func ParseReference(s string) (ParsedReference, error) {
	scheme, ok := referenceScheme(s)
	if !ok {
		return ParsedReference{}, &ReferenceParseError{URI: s, Reason: "missing scheme:// prefix"}
	}

	u, err := url.Parse(s)
	if err != nil {
		return ParsedReference{}, &ReferenceParseError{URI: s, Reason: fmt.Sprintf("malformed URI: %v", err)}
	}

	path := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" && path == "" {
		return ParsedReference{}, &ReferenceParseError{URI: s, Reason: "reference names no resource"}
	}

	return ParsedReference{
		Scheme:    scheme,
		Authority: u.Host,
		Path:      path,
		Version:   u.Query().Get("version"),
		raw:       s,
	}, nil
}
