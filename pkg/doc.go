// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of
cfnschema, a compiler from the CloudFormation resource specification to JSON
Schema documents.

This codebase is organized into well-defined layers. Each package has a
concise responsibility and packages depend on each other only to the degree
required.

In the inventory, below, individual packages are named alongside their coupling
with the other packages in the codebase.

	(# of dependents) => <package name> => (# of dependencies)

Where "# of dependents" is the count of packages that import the named package
and "# of dependencies" is the count of packages that this named package
imports.

From top-down, cfnschema code is layered in this way:

# Entry Point

cfnschema is built into two executable formats:

	./cmd/cfnschema          // a command-line tool
	./cmd/cfnschema-lambda   // an AWS Lambda function serving "serve" over an ALB

# Commands

The commands are generate (the default), validate, diff, serve and version.

	(2) => pkg/cmd => (10)

The HTTP surface of "serve" is kept apart from the commands so that it can be
hosted either by a listener or by the Lambda adapter.

	(1) => pkg/server => (0)

# Configuration

Region to specification mappings, group definitions and generation settings
are read from a bundled YAML document, optionally merged with a user supplied
YAML or TOML file, and finally overridden by flags.

	(2) => pkg/config => (2)

# Generation

A specification catalog is read from a file, stdin or a URL (plain, gzip or
zip), validated and then compiled into one JSON Schema document per group.

	(1) => pkg/loader => (2)
	(1) => pkg/codegen => (6)

The emission engine turns every resource and property type into a schema
definition, and the assembler partitions them into per group documents.

	(3) => pkg/schema => (3)
	(3) => pkg/groups => (0)

# Specification Model

The catalog model holds type descriptors, shape validation and the
structural diff of two catalogs.

	(4) => pkg/catalog => (0)

# Utilities

The remainder are domain-agnostic utilities that provide either an
application-level capability or a specialized piece of logic.

	(4) => pkg/files => (0)
	(3) => pkg/orderedmap => (0)
	(1) => pkg/cmd/ui => (1)
	(1) => pkg/version => (0)

# Dependencies

Each package's dependencies on other packages within this module are as follows
(if a package is not listed, it has no dependencies on other packages within
this module):

	pkg/cmd:
	- pkg/catalog
	- pkg/cmd/ui
	- pkg/codegen
	- pkg/config
	- pkg/files
	- pkg/loader
	- pkg/orderedmap
	- pkg/schema
	- pkg/server
	- pkg/version
	pkg/codegen:
	- pkg/catalog
	- pkg/config
	- pkg/files
	- pkg/groups
	- pkg/orderedmap
	- pkg/schema
	pkg/schema:
	- pkg/catalog
	- pkg/groups
	- pkg/orderedmap
	pkg/config:
	- pkg/groups
	- pkg/schema
	pkg/loader:
	- pkg/catalog
	- pkg/files
	pkg/cmd/ui:
	- pkg/files
*/
package pkg
