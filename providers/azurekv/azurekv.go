// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package azurekv provides the Azure Key Vault secret provider for the
// akv:// scheme.
//
// A reference akv://my-vault/db-password fetches the secret db-password
// from https://my-vault.vault.azure.net. The optional ?version=... query
// parameter selects a specific secret version.
//
// Authentication uses azidentity.DefaultAzureCredential unless a
// credential is injected with WithCredential. Credential construction
// happens in New, so a misconfigured environment is reported as a typed
// error at registration time rather than on the first fetch.
package azurekv

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	"github.com/stacklok/envresolve/secrets"
)

// Scheme is the registry key for this provider.
const Scheme = "akv"

// secretGetter is the subset of the azsecrets client used by the provider,
// extracted for testing.
type secretGetter interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// clientFactory builds a secret client for one vault URL. Clients are
// created lazily, on the first reference naming the vault.
type clientFactory func(vaultURL string) (secretGetter, error)

// Provider resolves akv:// references against Azure Key Vault. It reuses
// one client per vault across fetches; secret values are never cached.
type Provider struct {
	credential azcore.TokenCredential
	newClient  clientFactory

	mu      sync.Mutex
	clients map[string]secretGetter
}

// Option configures a Provider.
type Option func(*Provider)

// WithCredential injects a token credential, bypassing
// DefaultAzureCredential. Intended for workloads with an explicit
// credential chain and for tests.
func WithCredential(cred azcore.TokenCredential) Option {
	return func(p *Provider) {
		p.credential = cred
	}
}

// New creates an Azure Key Vault provider. Without WithCredential it
// builds a DefaultAzureCredential and fails if no credential source is
// available in the environment.
func New(opts ...Option) (*Provider, error) {
	p := &Provider{clients: make(map[string]secretGetter)}
	for _, opt := range opts {
		opt(p)
	}

	if p.credential == nil {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("building Azure credential: %w", err)
		}
		p.credential = cred
	}

	if p.newClient == nil {
		p.newClient = func(vaultURL string) (secretGetter, error) {
			return azsecrets.NewClient(vaultURL, p.credential, nil)
		}
	}
	return p, nil
}

// Fetch retrieves the secret named by ref from the vault in its authority.
func (p *Provider) Fetch(ctx context.Context, ref secrets.ParsedReference) (string, error) {
	vault := ref.Authority
	if vault == "" {
		return "", fmt.Errorf("reference %q names no vault", ref)
	}
	name := ref.Path
	if name == "" {
		return "", fmt.Errorf("reference %q names no secret", ref)
	}
	if strings.Contains(name, "/") {
		return "", fmt.Errorf("reference %q: secret names cannot contain slashes", ref)
	}

	client, err := p.client(vaultURL(vault))
	if err != nil {
		return "", err
	}

	resp, err := client.GetSecret(ctx, name, ref.Version, nil)
	if err != nil {
		return "", fmt.Errorf("getting secret %q from vault %q: %w", name, vault, err)
	}
	if resp.Value == nil {
		return "", fmt.Errorf("secret %q in vault %q has no value", name, vault)
	}
	return *resp.Value, nil
}

// client returns the cached client for a vault URL, creating it on first use.
func (p *Provider) client(vaultURL string) (secretGetter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.clients[vaultURL]; ok {
		return c, nil
	}
	c, err := p.newClient(vaultURL)
	if err != nil {
		return nil, fmt.Errorf("creating client for %s: %w", vaultURL, err)
	}
	p.clients[vaultURL] = c
	return c, nil
}

// vaultURL maps a vault name to its public cloud endpoint. A full URL in
// the authority (unusual, but allowed) is used as-is.
func vaultURL(vault string) string {
	if strings.Contains(vault, ".") {
		return "https://" + vault
	}
	return fmt.Sprintf("https://%s.vault.azure.net", vault)
}
