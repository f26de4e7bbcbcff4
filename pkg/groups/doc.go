// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package groups splits a catalog into named subsets.

A Spec is the configured (uncompiled) form: regular expressions to include and
exclude. Materialize layers the reserved "default" group under every other
group, falls back to an "all" group when nothing is configured, and compiles each
group once into an immutable Group. Group.IsIncluded is safe for concurrent use.
*/
package groups
