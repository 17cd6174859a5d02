// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app builds the envresolve command tree.
package app

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/stacklok/envresolve/config"
	"github.com/stacklok/envresolve/dotenv"
	"github.com/stacklok/envresolve/env"
	"github.com/stacklok/envresolve/expand"
	"github.com/stacklok/envresolve/logger"
	"github.com/stacklok/envresolve/providers/azurekv"
	"github.com/stacklok/envresolve/providers/envvar"
	"github.com/stacklok/envresolve/providers/file"
	"github.com/stacklok/envresolve/secrets"
)

// options holds the persistent flag values shared by all subcommands.
type options struct {
	configPath string
	envFile    string
}

// NewRootCommand builds the envresolve CLI.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "envresolve",
		Short:        "Expand placeholders and resolve secret references in configuration values",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "load variables from this .env file")

	rootCmd.AddCommand(newExpandCommand(opts))
	rootCmd.AddCommand(newResolveCommand(opts))
	rootCmd.AddCommand(newLoadCommand(opts))
	return rootCmd
}

func newExpandCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "expand TEXT",
		Short: "Expand ${VAR} and $VAR placeholders in TEXT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, _, _, err := opts.environment()
			if err != nil {
				return err
			}
			result, err := expand.Expand(args[0], vars)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newResolveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve VALUE",
		Short: "Expand VALUE and follow secret references to a final value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, _, cfg, err := opts.environment()
			if err != nil {
				return err
			}
			resolver, err := newResolver(cfg)
			if err != nil {
				return err
			}
			result, err := resolver.Resolve(cmd.Context(), args[0], vars)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newLoadCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load the .env file and print every entry fully resolved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, fileVars, cfg, err := opts.environment()
			if err != nil {
				return err
			}
			if fileVars == nil {
				return fmt.Errorf("no .env file: pass --env-file or set env_file in the config")
			}

			resolver, err := newResolver(cfg)
			if err != nil {
				return err
			}

			keys := make([]string, 0, len(fileVars))
			for k := range fileVars {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, key := range keys {
				value, err := resolver.Resolve(cmd.Context(), fileVars[key], vars)
				if err != nil {
					return fmt.Errorf("resolving %s: %w", key, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, value)
			}
			return nil
		},
	}
}

// environment loads the config and assembles the variable mapping: the
// process environment, overlaid by the .env file when one is configured.
// The second map holds the file's own expanded entries, nil when no .env
// file is in play; the file is read exactly once per invocation.
func (o *options) environment() (map[string]string, map[string]string, *config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	vars := env.ToMap(&env.OSReader{})

	envFile := o.envFile
	if envFile == "" {
		envFile = cfg.EnvFile
	}
	if envFile == "" {
		return vars, nil, cfg, nil
	}

	fileVars, err := dotenv.LoadAndExpand(envFile, vars)
	if err != nil {
		return nil, nil, nil, err
	}
	for k, v := range fileVars {
		vars[k] = v
	}
	return vars, fileVars, cfg, nil
}

// newResolver builds a resolver with the providers enabled in cfg.
func newResolver(cfg *config.Config) (*secrets.Resolver, error) {
	registry := secrets.NewRegistry()

	if cfg.Enabled(envvar.Scheme) {
		registry.MustRegister(envvar.Scheme, envvar.New(nil))
	}
	if cfg.Enabled(file.Scheme) {
		registry.MustRegister(file.Scheme, file.New())
	}
	if cfg.Enabled(azurekv.Scheme) {
		provider, err := azurekv.New()
		if err != nil {
			return nil, fmt.Errorf("enabling Azure Key Vault provider: %w", err)
		}
		registry.MustRegister(azurekv.Scheme, provider)
	}

	logger.Debugw("resolver configured", "schemes", registry.Schemes())
	return secrets.NewResolver(registry), nil
}
