// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package codegen turns a specification catalog into the schema documents of
each configured group.

Compile validates the catalog, emits a definition per type and assembles
them into per-group documents. Render wraps each group's definitions into
a document describing a whole template and serializes it. Check compiles a
rendered document to prove it is a valid schema.
*/
package codegen
