// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access, enabling dependency injection and testing isolation.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	value := reader.Getenv("MY_VAR")

Use ToMap to snapshot a Reader into the flat mapping consumed by the
expand and secrets packages:

	vars := env.ToMap(&env.OSReader{})
	result, err := expand.Expand("${HOME}/bin", vars)

# Testing

The Reader interface allows injecting a fake in tests to avoid relying on
real environment variables. MapReader covers most cases:

	reader := env.MapReader{"MY_VAR": "test-value"}

A generated gomock mock is available in the mocks sub-package for tests
that need call expectations:

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockReader(ctrl)
	mock.EXPECT().Getenv("MY_VAR").Return("test-value")

# Design

Production code accepts an env.Reader, while tests substitute MapReader or
the generated mock.
*/
package env
