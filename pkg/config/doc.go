// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package config reads generator configuration: which specification catalog
belongs to which region, which regions to generate, how definitions are
grouped into documents, and output settings.

A configuration file (YAML, or TOML when the file name ends in .toml) is
merged over the bundled config.yml section by section. Command line
overrides are applied last. Materialize resolves the result into compiled
groups and the selected regions.
*/
package config
