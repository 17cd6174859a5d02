// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package envvar provides the env:// secret provider, which reads values
// from environment variables. A reference env://DATABASE_URL resolves to
// the value of DATABASE_URL.
//
// This provider exists for configurations that mix real secret-store
// references with values sourced from the environment, keeping a single
// reference syntax for both.
package envvar

import (
	"context"
	"fmt"

	"github.com/stacklok/envresolve/env"
	"github.com/stacklok/envresolve/secrets"
	"github.com/stacklok/envresolve/validation/variable"
)

// Scheme is the registry key for this provider.
const Scheme = "env"

// Provider resolves env:// references through an env.Reader.
type Provider struct {
	reader env.Reader
}

// New creates a provider reading from r. A nil r falls back to the
// process environment.
func New(r env.Reader) *Provider {
	if r == nil {
		r = &env.OSReader{}
	}
	return &Provider{reader: r}
}

// Fetch returns the value of the variable named in the reference
// authority. An unset variable is an error; a variable set to the empty
// string resolves to the empty string.
func (p *Provider) Fetch(_ context.Context, ref secrets.ParsedReference) (string, error) {
	name := ref.Authority
	if name == "" || ref.Path != "" {
		return "", fmt.Errorf("reference %q: expected env://VARIABLE_NAME", ref)
	}
	if err := variable.ValidateName(name); err != nil {
		return "", fmt.Errorf("reference %q: %w", ref, err)
	}

	value, ok := p.reader.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("environment variable %q is not set", name)
	}
	return value, nil
}
