// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"fmt"
)

// ReferenceError reports a property whose complex type is not defined in
// the catalog's property types.
type ReferenceError struct {
	Owner     string
	Property  string
	Reference string
	// Candidates lists the keys that were looked up.
	Candidates []string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("Property type '%s' referenced by property '%s' of '%s' is not defined (looked up: %s)",
		e.Reference, e.Property, e.Owner, quoteAll(e.Candidates))
}

// DescriptorError reports a property whose descriptor does not classify
// into any shape.
type DescriptorError struct {
	Owner    string
	Property string
	Err      error
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("Malformed property '%s' of '%s': %s", e.Property, e.Owner, e.Err)
}

func (e *DescriptorError) Unwrap() error { return e.Err }

func quoteAll(items []string) string {
	result := ""
	for i, item := range items {
		if i > 0 {
			result += ", "
		}
		result += "'" + item + "'"
	}
	return result
}
