// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package catalog models a provider's resource specification: the versioned set of
resource types and property types that templates are written against.

A Catalog is decoded once (see package loader), validated with Validate, and is
treated as immutable afterwards. Every typed property is described by a
TypeDescriptor; its Shape (Primitive, ObjectRef, List or Map) is what schema
emission switches over.

Two catalogs can be compared with Diff, which reports the resource types both
versions share whose definitions changed.
*/
package catalog
