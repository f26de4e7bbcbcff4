// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the build version of cfnschema.
package version

// Version is set at build time with
// -ldflags "-X carvel.dev/cfnschema/pkg/version.Version=<version>"
var Version = "develop"
