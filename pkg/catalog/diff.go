// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package catalog

// Difference records a resource type whose definition changed between two
// catalog versions.
type Difference struct {
	Name        string
	FromVersion string
	FromType    TypeDefinition
	ToVersion   string
	ToType      TypeDefinition
}

// Diff reports resource types present in both catalogs whose definitions
// differ, sorted by name. Types only present on one side are not reported.
func (c *Catalog) Diff(to *Catalog) []Difference {
	var result []Difference

	for _, name := range c.SortedResourceTypeNames() {
		toType, found := to.ResourceTypes[name]
		if !found {
			continue
		}
		fromType := c.ResourceTypes[name]
		if fromType.Equal(toType) {
			continue
		}
		result = append(result, Difference{
			Name:        name,
			FromVersion: c.Version,
			FromType:    fromType,
			ToVersion:   to.Version,
			ToType:      toType,
		})
	}

	return result
}
