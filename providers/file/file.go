// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package file provides the file:// secret provider, which reads values
// from local files. A reference file:///etc/secrets/token resolves to the
// contents of /etc/secrets/token with surrounding whitespace trimmed,
// matching the usual newline-terminated secret files mounted by
// orchestrators.
package file

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/stacklok/envresolve/secrets"
)

// Scheme is the registry key for this provider.
const Scheme = "file"

// Provider resolves file:// references against the local filesystem.
type Provider struct{}

// New creates a file provider.
func New() *Provider {
	return &Provider{}
}

// Fetch reads the file named by the reference path. Only local references
// are supported: the authority must be empty or "localhost".
func (*Provider) Fetch(_ context.Context, ref secrets.ParsedReference) (string, error) {
	if ref.Authority != "" && ref.Authority != "localhost" {
		return "", fmt.Errorf("reference %q: remote file references are not supported", ref)
	}
	if ref.Path == "" {
		return "", fmt.Errorf("reference %q names no file", ref)
	}

	path := "/" + ref.Path
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.TrimSpace(string(content)), nil
}
