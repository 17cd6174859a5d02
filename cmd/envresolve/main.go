// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// The envresolve command expands placeholders and resolves secret
// references in configuration values and .env files.
package main

import (
	"os"

	"github.com/stacklok/envresolve/cmd/envresolve/app"
	"github.com/stacklok/envresolve/logger"
)

func main() {
	logger.Initialize()

	if err := app.NewRootCommand().Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
