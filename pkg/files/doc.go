// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files provides primitives for reading specification catalogs from
various file or file-like Source's and for writing generated schema documents
to filesystem files and directories.

Specification locations given on the command line or in configuration are
turned into a Source by NewSourceFromLocation: "-" reads standard input,
http:// and https:// locations are fetched, everything else (including
file:// URLs) is read from the local filesystem.
*/
package files
