// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package dotenv loads .env files into the flat mapping consumed by the
// expand and secrets packages.
//
// Parsing is delegated to github.com/joho/godotenv with its built-in
// interpolation disabled; this package adds variable-name validation,
// merging over a base environment, and placeholder expansion of the
// loaded values:
//
//	vars, err := dotenv.Load(".env")
//	expanded, err := dotenv.Expand(vars, env.ToMap(&env.OSReader{}))
//
// Nothing here touches the process environment.
package dotenv

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/stacklok/envresolve/expand"
	"github.com/stacklok/envresolve/validation/variable"
)

// dollarMask stands in for "$" while godotenv parses the file. godotenv
// interpolates $VAR and ${VAR} in unquoted and double-quoted values at
// parse time, substituting the empty string for unknown names; masking
// the dollar signs keeps the values literal so every substitution goes
// through the expand package, which reports missing names instead of
// defaulting them. The rune is from the Unicode private use area and is
// rejected by variable name validation if it ever appears in a key.
const dollarMask = "\uE000"

// Load parses the .env file at path into a map without modifying the
// process environment. Values are returned exactly as written, with
// placeholders intact. Keys that are not valid variable names are
// rejected.
func Load(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	parsed, err := godotenv.Unmarshal(strings.ReplaceAll(string(content), "$", dollarMask))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	vars := make(map[string]string, len(parsed))
	for name, value := range parsed {
		name = strings.ReplaceAll(name, dollarMask, "$")
		if err := variable.ValidateName(name); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		vars[name] = strings.ReplaceAll(value, dollarMask, "$")
	}
	return vars, nil
}

// Expand expands every value in vars against the union of base and vars,
// with vars taking precedence, and returns the expanded copy. Values may
// reference other keys from the same file as well as keys from base;
// expansion failures are reported with the offending key for context.
//
// Keys are processed in sorted order so failures are deterministic.
func Expand(vars, base map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(base)+len(vars))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	expanded := make(map[string]string, len(vars))
	for _, key := range keys {
		value, err := expand.Expand(vars[key], merged)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", key, err)
		}
		expanded[key] = value
	}
	return expanded, nil
}

// LoadAndExpand loads the .env file at path and expands its values
// against base.
func LoadAndExpand(path string, base map[string]string) (map[string]string, error) {
	vars, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Expand(vars, base)
}
