// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a map implementation where the order of keys is
maintained (unlike the native Go map).

This flavor of map is crucial in keeping generated schema documents
deterministic and stable. Map marshals to JSON in insertion order.
*/
package orderedmap
