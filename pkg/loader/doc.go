// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package loader decodes specification catalogs. Catalogs are published as
plain JSON, gzip compressed JSON or a zip archive whose first entry is the
JSON document; the format is detected from the leading bytes.
*/
package loader
