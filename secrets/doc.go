// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package secrets resolves strings that point into external secret stores.

A secret reference is a URI of the form scheme://authority/path, for
example akv://my-vault/db-password. Providers implement the Provider
interface for one scheme and are collected in a Registry; the Registry is
an explicit value injected into the Resolver, so independent registries
can coexist without shared global state.

	registry := secrets.NewRegistry()
	registry.MustRegister(azurekv.Scheme, provider)

	resolver := secrets.NewResolver(registry)
	value, err := resolver.Resolve(ctx, "akv://${VAULT}/db-password", env)

Resolve drives its input to a final plain value. Each round first expands
${VAR} placeholders with the expand package, then checks whether the
result is a reference for a recognized scheme. A plain string passes
through untouched. A reference is fetched from its provider, and the
fetched value is fed back through the same loop, so a secret whose value
is itself another reference (or contains placeholders) is resolved
transitively. The loop terminates when a round produces a non-reference,
when a provider returns exactly the URI it was asked to resolve (a
deliberate fixed point), or with a *expand.CircularReferenceError when a
previously visited URI recurs.

The core never retries and never caches: a provider failure surfaces
immediately as a *SecretResolutionFailedError wrapping the provider's
error. Timeout and cancellation belong to the provider via the
context.Context passed through Resolve.
*/
package secrets
