// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package secrets

//go:generate mockgen -source=registry.go -destination=mocks/mock_provider.go -package=mocks Provider

import (
	"context"
	"fmt"
	"sort"
)

// Provider fetches the value a parsed reference points at. Implementations
// live outside this package, one per backend; the Azure Key Vault provider
// is the canonical example.
//
// Fetch may perform network I/O. Any timeout or retry policy belongs to
// the implementation; the resolver never retries.
type Provider interface {
	Fetch(ctx context.Context, ref ParsedReference) (string, error)
}

// Registry maps URI schemes to providers. It replaces a global provider
// table with an explicit value: build one, register providers, and hand it
// to NewResolver. Multiple independent registries may coexist.
//
// A scheme may also be declared without a provider, which makes references
// using it recognized (so they are not passed through as plain text) while
// resolution reports a *NoProviderRegisteredError.
//
// A Registry is not safe for concurrent mutation; register everything
// before resolving.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register attaches a provider for a scheme. The scheme must be a short
// lowercase alphanumeric token (2-10 characters, starting with a letter)
// and must not already have a provider.
func (r *Registry) Register(scheme string, p Provider) error {
	if !schemeRegex.MatchString(scheme) {
		return fmt.Errorf("invalid scheme %q: must match %s", scheme, schemeRegex)
	}
	if p == nil {
		return fmt.Errorf("provider for scheme %q is nil", scheme)
	}
	if existing, ok := r.providers[scheme]; ok && existing != nil {
		return fmt.Errorf("scheme %q already has a provider", scheme)
	}
	r.providers[scheme] = p
	return nil
}

// MustRegister is like Register but panics on error. It is intended for
// static registration at startup.
func (r *Registry) MustRegister(scheme string, p Provider) {
	if err := r.Register(scheme, p); err != nil {
		panic(err)
	}
}

// DeclareScheme marks a scheme as recognized without attaching a provider.
// Resolving a reference with a declared-only scheme fails with
// *NoProviderRegisteredError instead of passing the text through.
func (r *Registry) DeclareScheme(scheme string) error {
	if !schemeRegex.MatchString(scheme) {
		return fmt.Errorf("invalid scheme %q: must match %s", scheme, schemeRegex)
	}
	if _, ok := r.providers[scheme]; !ok {
		r.providers[scheme] = nil
	}
	return nil
}

// Recognizes reports whether s has the scheme://... shape with a scheme
// known to this registry. Strings with unknown schemes (https://...,
// postgres://...) are opaque text, not secret references.
func (r *Registry) Recognizes(s string) bool {
	scheme, ok := referenceScheme(s)
	if !ok {
		return false
	}
	_, known := r.providers[scheme]
	return known
}

// Schemes returns the recognized schemes in sorted order.
func (r *Registry) Schemes() []string {
	schemes := make([]string, 0, len(r.providers))
	for s := range r.providers {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

// provider returns the provider for a scheme. ok is false when the scheme
// is unknown or declared without a provider.
func (r *Registry) provider(scheme string) (Provider, bool) {
	p, known := r.providers[scheme]
	if !known || p == nil {
		return nil, false
	}
	return p, true
}
