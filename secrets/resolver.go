// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"context"

	"github.com/stacklok/envresolve/expand"
	"github.com/stacklok/envresolve/logger"
)

// Resolver drives a string that may be, or may expand to, a secret
// reference to a final plain value. It holds no mutable state across
// calls, so a single Resolver is safe for concurrent use as long as the
// registry is not mutated.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a resolver backed by the given registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// seenSet records the values visited during one Resolve call, in order,
// for cycle detection across chained indirections.
type seenSet struct {
	values []string
	first  map[string]int
}

func newSeenSet() *seenSet {
	return &seenSet{first: make(map[string]int)}
}

// add records value and returns ok=true, or returns the closed cycle
// chain and ok=false when value was already seen.
func (s *seenSet) add(value string) ([]string, bool) {
	if pos, seen := s.first[value]; seen {
		chain := make([]string, 0, len(s.values)-pos+1)
		chain = append(chain, s.values[pos:]...)
		chain = append(chain, value)
		return chain, false
	}
	s.first[value] = len(s.values)
	s.values = append(s.values, value)
	return nil, true
}

// Resolve expands value with env, then iteratively follows secret
// references until a stable plain value is reached.
//
// Termination is guaranteed: each round either produces a string that is
// not a recognized reference (returned as-is), a fetched value identical
// to the reference that produced it (a provider deliberately returning
// its own pointer; returned as-is), or a value already visited in this
// call, which fails with a *expand.CircularReferenceError carrying the
// URI chain.
//
// Expansion errors propagate unchanged. Provider failures are wrapped in
// a *SecretResolutionFailedError; a recognized scheme without a provider
// fails with a *NoProviderRegisteredError. Resolve performs no retries
// and caches nothing.
func (r *Resolver) Resolve(ctx context.Context, value string, env map[string]string) (string, error) {
	seen := newSeenSet()
	current := value

	for {
		if chain, ok := seen.add(current); !ok {
			return "", &expand.CircularReferenceError{Chain: chain}
		}

		expanded, err := expand.Expand(current, env)
		if err != nil {
			return "", err
		}
		current = expanded

		if !r.registry.Recognizes(current) {
			return current, nil
		}

		ref, err := ParseReference(current)
		if err != nil {
			return "", err
		}

		provider, ok := r.registry.provider(ref.Scheme)
		if !ok {
			return "", &NoProviderRegisteredError{Scheme: ref.Scheme}
		}

		logger.Debugw("fetching secret reference", "scheme", ref.Scheme, "uri", current)
		fetched, err := provider.Fetch(ctx, ref)
		if err != nil {
			return "", &SecretResolutionFailedError{URI: current, Err: err}
		}

		// A provider returning its own reference unchanged is a stable
		// fixed point, not a cycle.
		if fetched == current {
			return fetched, nil
		}
		current = fetched
	}
}
