// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package secrets_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/envresolve/expand"
	"github.com/stacklok/envresolve/secrets"
	"github.com/stacklok/envresolve/secrets/mocks"
)

// newTestResolver builds a resolver with a single mocked provider for the
// akv scheme.
func newTestResolver(t *testing.T) (*secrets.Resolver, *mocks.MockProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	registry := secrets.NewRegistry()
	require.NoError(t, registry.Register("akv", provider))
	return secrets.NewResolver(registry), provider
}

func TestResolver_PassThrough(t *testing.T) {
	t.Parallel()

	resolver, _ := newTestResolver(t)

	tests := []struct {
		name  string
		value string
	}{
		{"plain string", "plain-value"},
		{"empty string", ""},
		{"unregistered scheme", "postgres://localhost/db"},
		{"https url", "https://example.com/page"},
		{"scheme-like text without separator", "akv:vault"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// No Fetch expectation is set: any provider invocation fails
			// the test.
			got, err := resolver.Resolve(context.Background(), tt.value, nil)
			require.NoError(t, err)
			require.Equal(t, tt.value, got)
		})
	}
}

func TestResolver_SingleHop(t *testing.T) {
	t.Parallel()

	resolver, provider := newTestResolver(t)
	provider.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ref secrets.ParsedReference) (string, error) {
			require.Equal(t, "akv", ref.Scheme)
			require.Equal(t, "vault", ref.Authority)
			require.Equal(t, "secret", ref.Path)
			return "pw123", nil
		})

	got, err := resolver.Resolve(context.Background(), "akv://vault/secret", nil)
	require.NoError(t, err)
	require.Equal(t, "pw123", got)
}

func TestResolver_ExpandsBeforeResolving(t *testing.T) {
	t.Parallel()

	resolver, provider := newTestResolver(t)
	provider.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ref secrets.ParsedReference) (string, error) {
			require.Equal(t, "prod-vault", ref.Authority)
			require.Equal(t, "db-password", ref.Path)
			return "hunter2", nil
		})

	env := map[string]string{"VAULT": "prod-vault", "NAME": "db-password"}
	got, err := resolver.Resolve(context.Background(), "akv://${VAULT}/$NAME", env)
	require.NoError(t, err)
	require.Equal(t, "hunter2", got)
}

func TestResolver_ExpansionToPlainValue(t *testing.T) {
	t.Parallel()

	resolver, _ := newTestResolver(t)

	env := map[string]string{"GREETING": "hello"}
	got, err := resolver.Resolve(context.Background(), "${GREETING} world", env)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
}

func TestResolver_ChainedHop(t *testing.T) {
	t.Parallel()

	resolver, provider := newTestResolver(t)
	values := map[string]string{
		"old": "akv://vault/new",
		"new": "final",
	}
	provider.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ref secrets.ParsedReference) (string, error) {
			return values[ref.Path], nil
		}).
		Times(2)

	got, err := resolver.Resolve(context.Background(), "akv://vault/old", nil)
	require.NoError(t, err)
	require.Equal(t, "final", got)
}

func TestResolver_FetchedValueContainsPlaceholder(t *testing.T) {
	t.Parallel()

	resolver, provider := newTestResolver(t)
	provider.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return("${HOST}:5432", nil)

	env := map[string]string{"HOST": "db.internal"}
	got, err := resolver.Resolve(context.Background(), "akv://vault/dsn", env)
	require.NoError(t, err)
	require.Equal(t, "db.internal:5432", got)
}

func TestResolver_StableFixedPoint(t *testing.T) {
	t.Parallel()

	resolver, provider := newTestResolver(t)
	provider.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return("akv://v/x", nil)

	got, err := resolver.Resolve(context.Background(), "akv://v/x", nil)
	require.NoError(t, err)
	require.Equal(t, "akv://v/x", got)
}

func TestResolver_Cycle(t *testing.T) {
	t.Parallel()

	resolver, provider := newTestResolver(t)
	values := map[string]string{
		"a": "akv://v/b",
		"b": "akv://v/a",
	}
	provider.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ref secrets.ParsedReference) (string, error) {
			return values[ref.Path], nil
		}).
		AnyTimes()

	_, err := resolver.Resolve(context.Background(), "akv://v/a", nil)
	require.Error(t, err)

	var circular *expand.CircularReferenceError
	require.ErrorAs(t, err, &circular)
	require.GreaterOrEqual(t, len(circular.Chain), 3)
	require.Equal(t, circular.Chain[0], circular.Chain[len(circular.Chain)-1])
	require.Contains(t, err.Error(), "akv://v/a")
	require.Contains(t, err.Error(), "akv://v/b")
	require.Contains(t, err.Error(), " -> ")
}

func TestResolver_NoProviderRegistered(t *testing.T) {
	t.Parallel()

	registry := secrets.NewRegistry()
	require.NoError(t, registry.DeclareScheme("akv"))
	resolver := secrets.NewResolver(registry)

	_, err := resolver.Resolve(context.Background(), "akv://vault/secret", nil)
	require.Error(t, err)

	var noProvider *secrets.NoProviderRegisteredError
	require.ErrorAs(t, err, &noProvider)
	require.Equal(t, "akv", noProvider.Scheme)
}

func TestResolver_ProviderFailure(t *testing.T) {
	t.Parallel()

	resolver, provider := newTestResolver(t)
	backendErr := errors.New("secret not found in backend")
	provider.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return("", backendErr)

	_, err := resolver.Resolve(context.Background(), "akv://vault/missing", nil)
	require.Error(t, err)

	var failed *secrets.SecretResolutionFailedError
	require.ErrorAs(t, err, &failed)
	require.Equal(t, "akv://vault/missing", failed.URI)
	require.ErrorIs(t, err, backendErr)
}

func TestResolver_ExpansionErrorsPropagate(t *testing.T) {
	t.Parallel()

	resolver, _ := newTestResolver(t)

	t.Run("variable not found", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.Resolve(context.Background(), "akv://${MISSING}/secret", nil)
		require.Error(t, err)

		var notFound *expand.VariableNotFoundError
		require.ErrorAs(t, err, &notFound)
		require.Equal(t, "MISSING", notFound.Name)
	})

	t.Run("expansion cycle", func(t *testing.T) {
		t.Parallel()

		env := map[string]string{"A": "${B}", "B": "${A}"}
		_, err := resolver.Resolve(context.Background(), "${A}", env)
		require.Error(t, err)

		var circular *expand.CircularReferenceError
		require.ErrorAs(t, err, &circular)
		require.Equal(t, []string{"A", "B", "A"}, circular.Chain)
	})
}

func TestResolver_MalformedRecognizedReference(t *testing.T) {
	t.Parallel()

	resolver, _ := newTestResolver(t)

	_, err := resolver.Resolve(context.Background(), "akv://", nil)
	require.Error(t, err)

	var parseErr *secrets.ReferenceParseError
	require.ErrorAs(t, err, &parseErr)
}
